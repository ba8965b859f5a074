package recipient

import (
	"context"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/stepwire/stepwire/engine/core"
	"github.com/stepwire/stepwire/pkg/logger"
)

// The resolution functions below are deliberately tolerant: a reference that
// cannot be resolved contributes nothing instead of failing the whole
// recipient collection. Only the configuration document itself is validated
// strictly, by ParseUsersConfig.

// ResolveStepUser resolves the configured stepUser reference to a recipient
// id. Absent when there is no reference, the step cannot be found, or the
// extracted id is not strictly positive.
func ResolveStepUser(
	ctx context.Context,
	cfg *InvolvedUsersConfig,
	steps core.StepLookup,
	userIDs UserIDExtractor,
) (int64, bool) {
	if cfg == nil || cfg.StepUserRef == nil {
		return 0, false
	}
	return resolveStepRecipient(ctx, *cfg.StepUserRef, steps, userIDs)
}

// ResolveStepManager resolves the configured stepManager reference. The step
// contributes its user id, which is then mapped through the caller-supplied
// managers lookup; a nil managers collaborator means the step's own user is
// the manager recipient.
func ResolveStepManager(
	ctx context.Context,
	cfg *InvolvedUsersConfig,
	steps core.StepLookup,
	userIDs UserIDExtractor,
	managers ManagerLookup,
) (int64, bool) {
	if cfg == nil || cfg.StepManagerRef == nil {
		return 0, false
	}
	id, ok := resolveStepRecipient(ctx, *cfg.StepManagerRef, steps, userIDs)
	if !ok {
		return 0, false
	}
	if managers == nil {
		return id, true
	}
	managerID, ok := managers.ManagerOf(ctx, id)
	if !ok || !core.IsPositiveID(managerID) {
		return 0, false
	}
	return managerID, true
}

func resolveStepRecipient(
	ctx context.Context,
	ref string,
	steps core.StepLookup,
	userIDs UserIDExtractor,
) (int64, bool) {
	if userIDs == nil {
		return 0, false
	}
	step := lookupStep(ctx, steps, ref)
	if step == nil {
		return 0, false
	}
	id, ok := userIDs.ExtractUserID(step)
	if !ok || !core.IsPositiveID(id) {
		return 0, false
	}
	return id, true
}

// lookupStep converts collaborator misses and errors into a nil step.
func lookupStep(ctx context.Context, steps core.StepLookup, ref string) *core.Step {
	if steps == nil || strings.TrimSpace(ref) == "" {
		return nil
	}
	step, err := steps.LookupStep(ctx, ref)
	if err != nil {
		logger.FromContext(ctx).Debug("step lookup failed", "ref", ref, "error", core.RedactError(err))
		return nil
	}
	return step
}

// ResolveMemberships resolves membership references to recipient ids.
// References in the "<stepRef>:<fieldRef>" form are first dereferenced
// through the target step's stored input; everything else is treated as a
// literal membership key. All collected keys go to the bulk lookup in one
// call. Unresolvable references are dropped, and a failed or empty bulk
// lookup yields an empty set.
func ResolveMemberships(
	ctx context.Context,
	refs []string,
	memberships MembershipLookup,
	steps core.StepLookup,
	stepInputs StepInputExtractor,
) UserIDSet {
	set := NewUserIDSet()
	if len(refs) == 0 || memberships == nil {
		return set
	}
	keys := make([]string, 0, len(refs))
	for _, ref := range refs {
		ref = strings.TrimSpace(ref)
		if ref == "" {
			continue
		}
		if _, _, ok := SplitIndirectRef(ref); ok {
			resolved, ok := ResolveIndirectMembership(ctx, ref, steps, stepInputs)
			if !ok {
				logger.FromContext(ctx).Debug("indirect membership reference dropped", "ref", ref)
				continue
			}
			keys = append(keys, resolved)
			continue
		}
		keys = append(keys, ref)
	}
	if len(keys) == 0 {
		return set
	}
	ids, err := memberships.UserIDsForMemberships(ctx, keys)
	if err != nil {
		logger.FromContext(ctx).Debug("membership lookup failed", "keys", len(keys), "error", core.RedactError(err))
		return set
	}
	set.AddAll(ids)
	return set
}

// ResolveIndirectMembership dereferences a "<stepRef>:<fieldRef>" reference:
// it reads field fieldRef from the JSON stored as step stepRef's input and
// returns its text value as a literal membership reference.
func ResolveIndirectMembership(
	ctx context.Context,
	stepFieldRef string,
	steps core.StepLookup,
	stepInputs StepInputExtractor,
) (string, bool) {
	if strings.TrimSpace(stepFieldRef) == "" || stepInputs == nil {
		return "", false
	}
	stepRef, fieldRef, ok := SplitIndirectRef(stepFieldRef)
	if !ok {
		return "", false
	}
	step := lookupStep(ctx, steps, stepRef)
	if step == nil {
		return "", false
	}
	raw, ok := stepInputs.ExtractStepInput(step)
	if !ok {
		return "", false
	}
	return ExtractField(raw, fieldRef)
}

// ExtractField returns the named field's text value from a JSON document.
// Target step data is best-effort, so malformed JSON yields absent here while
// ParseUsersConfig fails fast on it.
func ExtractField(jsonText, fieldName string) (string, bool) {
	if strings.TrimSpace(jsonText) == "" || fieldName == "" {
		return "", false
	}
	if !gjson.Valid(jsonText) {
		return "", false
	}
	value := gjson.Parse(jsonText).Get(fieldName)
	if !value.Exists() || value.Type != gjson.String {
		return "", false
	}
	return value.String(), true
}

// CollectRecipientIDs unions the step user, step manager, and membership
// recipients into one deduplicated set. This is the entry point callers use
// after parsing a users configuration; absent sources contribute nothing.
func CollectRecipientIDs(ctx context.Context, cfg *InvolvedUsersConfig, c Collaborators) UserIDSet {
	set := NewUserIDSet()
	if cfg == nil {
		return set
	}
	if id, ok := ResolveStepUser(ctx, cfg, c.Steps, c.UserIDs); ok {
		set.Add(id)
	}
	if id, ok := ResolveStepManager(ctx, cfg, c.Steps, c.UserIDs, c.Managers); ok {
		set.Add(id)
	}
	set.Union(ResolveMemberships(ctx, cfg.Memberships, c.Memberships, c.Steps, c.StepInputs))
	return set
}
