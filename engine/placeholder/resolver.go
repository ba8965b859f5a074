package placeholder

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/stepwire/stepwire/engine/core"
	"github.com/stepwire/stepwire/pkg/strutil"
)

// Resolver turns a template token into its concrete value. The boolean is
// false when the token has no value; callers decide how to render that.
type Resolver func(ctx context.Context, refStep, dataName string) (string, bool)

// AttributeKind names an identity-directory attribute. The set is open: the
// directory decides which kinds it can answer.
type AttributeKind string

const (
	AttributeEmail       AttributeKind = "email"
	AttributeDisplayName AttributeKind = "displayName"
	AttributePhone       AttributeKind = "phone"
)

// IdentityService is the directory contract for user/contact attributes.
// Implementations report a miss through the boolean and never panic.
type IdentityService interface {
	GetAttribute(ctx context.Context, userID int64, kind AttributeKind) (string, bool)
}

type IdentityServiceFunc func(ctx context.Context, userID int64, kind AttributeKind) (string, bool)

func (f IdentityServiceFunc) GetAttribute(ctx context.Context, userID int64, kind AttributeKind) (string, bool) {
	return f(ctx, userID, kind)
}

// LookupUserAttribute queries the directory for a user attribute. The
// directory is not called at all for a nil service or a non-positive user id.
func LookupUserAttribute(ctx context.Context, svc IdentityService, userID int64, kind AttributeKind) (string, bool) {
	if svc == nil || !core.IsPositiveID(userID) {
		return "", false
	}
	return svc.GetAttribute(ctx, userID, kind)
}

// Data-name categories recognized by the standard resolver.
const (
	categoryRecipient = "recipient"
	categoryTask      = "task"

	dataTaskLink = "taskLink"
	dataTaskURL  = "taskUrl"
)

// NewResolver builds the standard resolution function for a notification:
// recipient* names resolve identity attributes of the current user, task*
// names resolve link and URL generation for the current task, and everything
// else is delegated to the optional fallback.
func NewResolver(
	svc IdentityService,
	currentUserID int64,
	hostURL string,
	taskID int64,
	fallback Resolver,
) (Resolver, error) {
	if svc == nil {
		return nil, errors.New("identity service cannot be nil")
	}
	return func(ctx context.Context, refStep, dataName string) (string, bool) {
		switch {
		case strings.HasPrefix(dataName, categoryRecipient):
			if kind, ok := recipientAttribute(dataName); ok {
				return LookupUserAttribute(ctx, svc, currentUserID, kind)
			}
		case dataName == dataTaskLink:
			return GenerateTaskLink(hostURL, taskID), true
		case dataName == dataTaskURL:
			return GenerateTaskURL(hostURL, taskID)
		}
		if fallback != nil {
			return fallback(ctx, refStep, dataName)
		}
		return "", false
	}, nil
}

// recipientAttribute maps a recipientXxx data name to the directory attribute
// kind xxx. A bare "recipient" has no attribute part and does not match.
func recipientAttribute(dataName string) (AttributeKind, bool) {
	rest := strings.TrimPrefix(dataName, categoryRecipient)
	if rest == "" || rest == dataName {
		return "", false
	}
	return AttributeKind(strutil.Decapitalize(rest)), true
}

// Data names answered by the step-data resolver.
const (
	DataStepUserName = "stepUserName"
	DataStepStatus   = "stepStatus"
)

// UserNameExtractor reads the display name a step contributes.
type UserNameExtractor interface {
	ExtractUserName(step *core.Step) (string, bool)
}

type UserNameExtractorFunc func(step *core.Step) (string, bool)

func (f UserNameExtractorFunc) ExtractUserName(step *core.Step) (string, bool) {
	return f(step)
}

// StatusExtractor reads the display status a step contributes.
type StatusExtractor interface {
	ExtractStatus(step *core.Step) (string, bool)
}

type StatusExtractorFunc func(step *core.Step) (string, bool)

func (f StatusExtractorFunc) ExtractStatus(step *core.Step) (string, bool) {
	return f(step)
}

// NewStepDataResolver builds a resolver answering exactly the stepUserName
// and stepStatus data names for the referenced step. All three collaborators
// are required.
func NewStepDataResolver(
	steps core.StepLookup,
	userNames UserNameExtractor,
	statuses StatusExtractor,
) (Resolver, error) {
	if steps == nil {
		return nil, errors.New("step lookup cannot be nil")
	}
	if userNames == nil {
		return nil, errors.New("user name extractor cannot be nil")
	}
	if statuses == nil {
		return nil, errors.New("status extractor cannot be nil")
	}
	return func(ctx context.Context, refStep, dataName string) (string, bool) {
		if refStep == "" {
			return "", false
		}
		if dataName != DataStepUserName && dataName != DataStepStatus {
			return "", false
		}
		step, err := steps.LookupStep(ctx, refStep)
		if err != nil || step == nil {
			return "", false
		}
		if dataName == DataStepUserName {
			return userNames.ExtractUserName(step)
		}
		return statuses.ExtractStatus(step)
	}, nil
}
