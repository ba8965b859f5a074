package recipient

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// Users configuration JSON keys. memberShips keeps its historical casing; the
// key spelling is part of the task-definition contract.
const (
	fieldStepManager = "stepManager"
	fieldStepUser    = "stepUser"
	fieldMemberships = "memberShips"
)

// InvolvedUsersConfig is the parsed form of a task definition's users
// configuration. It is created once per parse and never mutated afterwards.
type InvolvedUsersConfig struct {
	StepManagerRef *string
	StepUserRef    *string
	Memberships    []string
}

// Equal compares two configurations structurally.
func (c *InvolvedUsersConfig) Equal(other *InvolvedUsersConfig) bool {
	if c == nil || other == nil {
		return c == other
	}
	if !equalStringRef(c.StepManagerRef, other.StepManagerRef) {
		return false
	}
	if !equalStringRef(c.StepUserRef, other.StepUserRef) {
		return false
	}
	if len(c.Memberships) != len(other.Memberships) {
		return false
	}
	for i := range c.Memberships {
		if c.Memberships[i] != other.Memberships[i] {
			return false
		}
	}
	return true
}

func equalStringRef(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// ParseUsersConfig turns a users-configuration JSON document into an
// InvolvedUsersConfig.
//
// The document itself is authoritative: malformed JSON, missing required
// keys, and wrong field types are fatal. The stepManager and stepUser keys
// must be present but their value may be JSON null. Blank membership entries
// are dropped while the relative order of the rest is preserved. Unknown
// keys are ignored.
func ParseUsersConfig(jsonText string) (*InvolvedUsersConfig, error) {
	if strings.TrimSpace(jsonText) == "" {
		return nil, errors.New("input cannot be null or empty")
	}
	if !gjson.Valid(jsonText) {
		return nil, errors.New("invalid JSON format")
	}
	doc := gjson.Parse(jsonText)
	managerRef, err := parseUserRef(doc, fieldStepManager)
	if err != nil {
		return nil, err
	}
	userRef, err := parseUserRef(doc, fieldStepUser)
	if err != nil {
		return nil, err
	}
	memberships, err := parseMemberships(doc)
	if err != nil {
		return nil, err
	}
	return &InvolvedUsersConfig{
		StepManagerRef: managerRef,
		StepUserRef:    userRef,
		Memberships:    memberships,
	}, nil
}

// parseUserRef reads a required key whose value must be a string or null.
// The MISSING casing is load-bearing: callers match on it.
func parseUserRef(doc gjson.Result, field string) (*string, error) {
	value := doc.Get(field)
	if !value.Exists() {
		return nil, errors.Errorf("%s is MISSING in users configuration", field)
	}
	if value.Type == gjson.Null {
		return nil, nil
	}
	if value.Type != gjson.String {
		return nil, errors.Errorf("%s is not a valid text value", field)
	}
	ref := value.String()
	return &ref, nil
}

func parseMemberships(doc gjson.Result) ([]string, error) {
	node := doc.Get(fieldMemberships)
	if !node.Exists() || !node.IsArray() {
		return nil, errors.Errorf("%s is missing or not a valid array", fieldMemberships)
	}
	elems := node.Array()
	memberships := make([]string, 0, len(elems))
	for _, elem := range elems {
		if elem.Type != gjson.String {
			continue
		}
		ref := strings.TrimSpace(elem.String())
		if ref == "" {
			continue
		}
		memberships = append(memberships, elem.String())
	}
	return memberships, nil
}
