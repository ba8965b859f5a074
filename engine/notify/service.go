// Package notify composes the recipient and placeholder cores into the
// operation host applications call: turn a task definition's users
// configuration plus a message template into a ready-to-dispatch
// notification. Dispatching itself stays with the host.
package notify

import (
	"context"
	"strconv"

	"github.com/pkg/errors"

	"github.com/stepwire/stepwire/engine/core"
	"github.com/stepwire/stepwire/engine/placeholder"
	"github.com/stepwire/stepwire/engine/recipient"
	"github.com/stepwire/stepwire/pkg/logger"
	"github.com/stepwire/stepwire/pkg/pagination"
)

// Notification is the rendered result: who to notify and what to send.
type Notification struct {
	ID         core.ID `json:"id"`
	TaskID     int64   `json:"task_id"`
	Recipients []int64 `json:"recipients"`
	Body       string  `json:"body"`
}

// Dependencies bundles every collaborator the service needs. Steps, UserIDs,
// and Identity are required; the rest degrade gracefully when nil.
type Dependencies struct {
	Steps       core.StepLookup
	UserIDs     recipient.UserIDExtractor
	Managers    recipient.ManagerLookup
	Memberships recipient.MembershipLookup
	StepInputs  recipient.StepInputExtractor
	Identity    placeholder.IdentityService
}

type Service struct {
	deps Dependencies
	opts *Options
}

func NewService(deps Dependencies, opts *Options) (*Service, error) {
	if deps.Steps == nil {
		return nil, errors.New("step lookup cannot be nil")
	}
	if deps.Identity == nil {
		return nil, errors.New("identity service cannot be nil")
	}
	if deps.UserIDs == nil {
		deps.UserIDs = recipient.AssigneeIDExtractor()
	}
	if deps.StepInputs == nil {
		deps.StepInputs = recipient.RawInputExtractor()
	}
	merged, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	return &Service{deps: deps, opts: merged}, nil
}

// BuildNotification resolves recipients from the users configuration and
// renders the message template. Configuration errors are fatal; individual
// reference misses only shrink the recipient list.
func (s *Service) BuildNotification(
	ctx context.Context,
	usersConfigJSON string,
	template string,
	taskID int64,
	currentUserID int64,
) (*Notification, error) {
	log := logger.FromContext(ctx).With("task_id", taskID)
	cfg, err := recipient.ParseUsersConfig(usersConfigJSON)
	if err != nil {
		return nil, errors.Wrap(err, "invalid users configuration")
	}
	ids := recipient.CollectRecipientIDs(ctx, cfg, recipient.Collaborators{
		Steps:       s.deps.Steps,
		UserIDs:     s.deps.UserIDs,
		Managers:    s.deps.Managers,
		Memberships: s.deps.Memberships,
		StepInputs:  s.deps.StepInputs,
	})
	body, err := s.renderBody(ctx, template, taskID, currentUserID)
	if err != nil {
		return nil, err
	}
	log.Info("notification built", "recipients", ids.Len())
	log.Debug("notification body rendered", "body", core.RedactString(body))
	return &Notification{
		ID:         core.MustNewID(),
		TaskID:     taskID,
		Recipients: ids.Values(),
		Body:       body,
	}, nil
}

func (s *Service) renderBody(ctx context.Context, template string, taskID, currentUserID int64) (string, error) {
	stepData, err := placeholder.NewStepDataResolver(
		s.deps.Steps,
		placeholder.UserNameExtractorFunc(func(step *core.Step) (string, bool) {
			return step.AssigneeUserName()
		}),
		placeholder.StatusExtractorFunc(func(step *core.Step) (string, bool) {
			if step == nil || step.Status == "" {
				return "", false
			}
			return step.Status.String(), true
		}),
	)
	if err != nil {
		return "", err
	}
	resolve, err := placeholder.NewResolver(s.deps.Identity, currentUserID, s.opts.HostURL, taskID, stepData)
	if err != nil {
		return "", err
	}
	return placeholder.SubstituteTemplate(ctx, template, resolve), nil
}

// PageRecipients returns one page of an already-resolved recipient list plus
// the cursor for the next page. The raw limit and cursor come straight from
// query parameters and are validated here.
func PageRecipients(ids []int64, rawLimit, rawCursor string, opts *Options) ([]int64, string, error) {
	merged, err := opts.withDefaults()
	if err != nil {
		return nil, "", err
	}
	limit := pagination.LimitOrDefault(rawLimit, merged.PageSize, merged.MaxPageSize)
	cursor, err := pagination.DecodeCursor(rawCursor)
	if err != nil {
		return nil, "", err
	}
	start := 0
	if !cursor.IsZero() {
		if cursor.Direction != pagination.DirectionAfter {
			return nil, "", errors.New("invalid cursor direction")
		}
		afterID, err := strconv.ParseInt(cursor.Value, 10, 64)
		if err != nil {
			return nil, "", errors.New("invalid cursor value")
		}
		for i, id := range ids {
			if id > afterID {
				start = i
				break
			}
			start = i + 1
		}
	}
	if start >= len(ids) {
		return []int64{}, "", nil
	}
	end := start + limit
	if end > len(ids) {
		end = len(ids)
	}
	page := ids[start:end]
	next := ""
	if end < len(ids) {
		next = pagination.EncodeCursor(pagination.DirectionAfter, strconv.FormatInt(page[len(page)-1], 10))
	}
	return page, next, nil
}
