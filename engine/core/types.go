package core

// -----------------------------------------------------------------------------
// Step Status
// -----------------------------------------------------------------------------

type StatusType string

const (
	StatusPending  StatusType = "PENDING"
	StatusRunning  StatusType = "RUNNING"
	StatusSuccess  StatusType = "SUCCESS"
	StatusFailed   StatusType = "FAILED"
	StatusCanceled StatusType = "CANCELED"
	StatusWaiting  StatusType = "WAITING"
)

func (s StatusType) String() string {
	return string(s)
}

// -----------------------------------------------------------------------------
// Step
// -----------------------------------------------------------------------------

// Step is a unit of work instance within a process whose stored input data can
// be queried by reference. RawInput holds the JSON document the step was
// started with; it is best-effort data and may be empty or malformed.
type Step struct {
	Ref          string     `json:"ref"`
	Status       StatusType `json:"status"`
	AssigneeID   int64      `json:"assignee_id,omitempty"`
	AssigneeName string     `json:"assignee_name,omitempty"`
	RawInput     string     `json:"raw_input,omitempty"`
}

// AssigneeUserName returns the display name recorded for the step assignee.
func (s *Step) AssigneeUserName() (string, bool) {
	if s == nil || s.AssigneeName == "" {
		return "", false
	}
	return s.AssigneeName, true
}
