package recipient

import (
	"context"

	"github.com/stepwire/stepwire/engine/core"
)

// The resolver has no engine dependency of its own: every lookup it needs is
// supplied by the caller through one of these one-method contracts.

// UserIDExtractor reads the user id a found step contributes as a recipient.
type UserIDExtractor interface {
	ExtractUserID(step *core.Step) (int64, bool)
}

type UserIDExtractorFunc func(step *core.Step) (int64, bool)

func (f UserIDExtractorFunc) ExtractUserID(step *core.Step) (int64, bool) {
	return f(step)
}

// ManagerLookup maps a user id to the id of that user's manager.
type ManagerLookup interface {
	ManagerOf(ctx context.Context, userID int64) (int64, bool)
}

type ManagerLookupFunc func(ctx context.Context, userID int64) (int64, bool)

func (f ManagerLookupFunc) ManagerOf(ctx context.Context, userID int64) (int64, bool) {
	return f(ctx, userID)
}

// MembershipLookup resolves a batch of "<groupId>$<roleId>" keys to the ids
// of all users holding any of those memberships.
type MembershipLookup interface {
	UserIDsForMemberships(ctx context.Context, keys []string) ([]int64, error)
}

type MembershipLookupFunc func(ctx context.Context, keys []string) ([]int64, error)

func (f MembershipLookupFunc) UserIDsForMemberships(ctx context.Context, keys []string) ([]int64, error) {
	return f(ctx, keys)
}

// StepInputExtractor reads the JSON document a step was started with.
type StepInputExtractor interface {
	ExtractStepInput(step *core.Step) (string, bool)
}

type StepInputExtractorFunc func(step *core.Step) (string, bool)

func (f StepInputExtractorFunc) ExtractStepInput(step *core.Step) (string, bool) {
	return f(step)
}

// AssigneeIDExtractor is the default UserIDExtractor: it reads the step's
// assignee id.
func AssigneeIDExtractor() UserIDExtractor {
	return UserIDExtractorFunc(func(step *core.Step) (int64, bool) {
		if step == nil || !core.IsPositiveID(step.AssigneeID) {
			return 0, false
		}
		return step.AssigneeID, true
	})
}

// RawInputExtractor is the default StepInputExtractor: it reads the step's
// stored raw input document.
func RawInputExtractor() StepInputExtractor {
	return StepInputExtractorFunc(func(step *core.Step) (string, bool) {
		if step == nil || step.RawInput == "" {
			return "", false
		}
		return step.RawInput, true
	})
}

// Collaborators bundles the lookups CollectRecipientIDs needs.
type Collaborators struct {
	Steps       core.StepLookup
	UserIDs     UserIDExtractor
	Managers    ManagerLookup
	Memberships MembershipLookup
	StepInputs  StepInputExtractor
}
