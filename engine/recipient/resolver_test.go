package recipient

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stepwire/stepwire/engine/core"
)

func stepDirectory(steps map[string]*core.Step) core.StepLookup {
	return core.StepLookupFunc(func(_ context.Context, ref string) (*core.Step, error) {
		step, ok := steps[ref]
		if !ok {
			return nil, errors.Errorf("step not found: %s", ref)
		}
		return step, nil
	})
}

func TestResolveStepUser(t *testing.T) {
	ctx := context.Background()
	steps := stepDirectory(map[string]*core.Step{
		"approve": {Ref: "approve", AssigneeID: 42},
		"orphan":  {Ref: "orphan"},
	})

	t.Run("Should resolve the step assignee id", func(t *testing.T) {
		cfg := &InvolvedUsersConfig{StepUserRef: strRef("approve")}
		id, ok := ResolveStepUser(ctx, cfg, steps, AssigneeIDExtractor())
		require.True(t, ok)
		assert.Equal(t, int64(42), id)
	})
	t.Run("Should be absent for nil config or nil ref", func(t *testing.T) {
		_, ok := ResolveStepUser(ctx, nil, steps, AssigneeIDExtractor())
		assert.False(t, ok)
		_, ok = ResolveStepUser(ctx, &InvolvedUsersConfig{}, steps, AssigneeIDExtractor())
		assert.False(t, ok)
	})
	t.Run("Should convert lookup errors to absent", func(t *testing.T) {
		cfg := &InvolvedUsersConfig{StepUserRef: strRef("missing")}
		_, ok := ResolveStepUser(ctx, cfg, steps, AssigneeIDExtractor())
		assert.False(t, ok)
	})
	t.Run("Should be absent for non-positive extracted id", func(t *testing.T) {
		cfg := &InvolvedUsersConfig{StepUserRef: strRef("orphan")}
		_, ok := ResolveStepUser(ctx, cfg, steps, AssigneeIDExtractor())
		assert.False(t, ok)
	})
	t.Run("Should be absent for nil collaborators", func(t *testing.T) {
		cfg := &InvolvedUsersConfig{StepUserRef: strRef("approve")}
		_, ok := ResolveStepUser(ctx, cfg, nil, AssigneeIDExtractor())
		assert.False(t, ok)
		_, ok = ResolveStepUser(ctx, cfg, steps, nil)
		assert.False(t, ok)
	})
}

func TestResolveStepManager(t *testing.T) {
	ctx := context.Background()
	steps := stepDirectory(map[string]*core.Step{
		"review": {Ref: "review", AssigneeID: 10},
	})
	managers := ManagerLookupFunc(func(_ context.Context, userID int64) (int64, bool) {
		if userID == 10 {
			return 77, true
		}
		return 0, false
	})

	t.Run("Should map the step user through the managers lookup", func(t *testing.T) {
		cfg := &InvolvedUsersConfig{StepManagerRef: strRef("review")}
		id, ok := ResolveStepManager(ctx, cfg, steps, AssigneeIDExtractor(), managers)
		require.True(t, ok)
		assert.Equal(t, int64(77), id)
	})
	t.Run("Should use the step user itself without a managers lookup", func(t *testing.T) {
		cfg := &InvolvedUsersConfig{StepManagerRef: strRef("review")}
		id, ok := ResolveStepManager(ctx, cfg, steps, AssigneeIDExtractor(), nil)
		require.True(t, ok)
		assert.Equal(t, int64(10), id)
	})
	t.Run("Should be absent when the manager is unknown", func(t *testing.T) {
		noManager := ManagerLookupFunc(func(context.Context, int64) (int64, bool) { return 0, false })
		cfg := &InvolvedUsersConfig{StepManagerRef: strRef("review")}
		_, ok := ResolveStepManager(ctx, cfg, steps, AssigneeIDExtractor(), noManager)
		assert.False(t, ok)
	})
	t.Run("Should be absent when the manager id is invalid", func(t *testing.T) {
		badManager := ManagerLookupFunc(func(context.Context, int64) (int64, bool) { return -1, true })
		cfg := &InvolvedUsersConfig{StepManagerRef: strRef("review")}
		_, ok := ResolveStepManager(ctx, cfg, steps, AssigneeIDExtractor(), badManager)
		assert.False(t, ok)
	})
	t.Run("Should be absent without a manager reference", func(t *testing.T) {
		_, ok := ResolveStepManager(ctx, &InvolvedUsersConfig{}, steps, AssigneeIDExtractor(), managers)
		assert.False(t, ok)
	})
}

func TestResolveMemberships(t *testing.T) {
	ctx := context.Background()
	steps := stepDirectory(map[string]*core.Step{
		"s1": {Ref: "s1", RawInput: `{"f1":"8$3"}`},
		"s2": {Ref: "s2", RawInput: `{broken`},
	})

	t.Run("Should pass literal keys to the bulk lookup", func(t *testing.T) {
		var captured []string
		bulk := MembershipLookupFunc(func(_ context.Context, keys []string) ([]int64, error) {
			captured = keys
			return []int64{1, 2}, nil
		})
		set := ResolveMemberships(ctx, []string{"1$2", "3$4"}, bulk, steps, RawInputExtractor())
		assert.Equal(t, []string{"1$2", "3$4"}, captured)
		assert.Equal(t, []int64{1, 2}, set.Values())
	})
	t.Run("Should dereference indirect references before the bulk call", func(t *testing.T) {
		var captured []string
		bulk := MembershipLookupFunc(func(_ context.Context, keys []string) ([]int64, error) {
			captured = keys
			return []int64{9}, nil
		})
		set := ResolveMemberships(ctx, []string{"s1:f1"}, bulk, steps, RawInputExtractor())
		assert.Equal(t, []string{"8$3"}, captured)
		assert.Equal(t, []int64{9}, set.Values())
	})
	t.Run("Should drop unresolvable indirect references", func(t *testing.T) {
		var captured []string
		bulk := MembershipLookupFunc(func(_ context.Context, keys []string) ([]int64, error) {
			captured = keys
			return []int64{4}, nil
		})
		set := ResolveMemberships(ctx, []string{"gone:f1", "s2:f1", "1$2"}, bulk, steps, RawInputExtractor())
		assert.Equal(t, []string{"1$2"}, captured)
		assert.Equal(t, []int64{4}, set.Values())
	})
	t.Run("Should return empty set when every reference is dropped", func(t *testing.T) {
		called := false
		bulk := MembershipLookupFunc(func(_ context.Context, keys []string) ([]int64, error) {
			called = true
			return []int64{1}, nil
		})
		set := ResolveMemberships(ctx, []string{"", "   ", "gone:f1"}, bulk, steps, RawInputExtractor())
		assert.False(t, called)
		assert.Equal(t, 0, set.Len())
	})
	t.Run("Should return empty set on bulk lookup failure", func(t *testing.T) {
		bulk := MembershipLookupFunc(func(_ context.Context, _ []string) ([]int64, error) {
			return nil, errors.New("directory unavailable")
		})
		set := ResolveMemberships(ctx, []string{"1$2"}, bulk, steps, RawInputExtractor())
		assert.Equal(t, 0, set.Len())
	})
	t.Run("Should drop non-positive ids from the bulk result", func(t *testing.T) {
		bulk := MembershipLookupFunc(func(_ context.Context, _ []string) ([]int64, error) {
			return []int64{0, -3, 6}, nil
		})
		set := ResolveMemberships(ctx, []string{"1$2"}, bulk, steps, RawInputExtractor())
		assert.Equal(t, []int64{6}, set.Values())
	})
	t.Run("Should return empty set for empty input or nil lookup", func(t *testing.T) {
		assert.Equal(t, 0, ResolveMemberships(ctx, nil, nil, steps, RawInputExtractor()).Len())
		bulk := MembershipLookupFunc(func(_ context.Context, _ []string) ([]int64, error) { return nil, nil })
		assert.Equal(t, 0, ResolveMemberships(ctx, nil, bulk, steps, RawInputExtractor()).Len())
	})
}

func TestResolveIndirectMembership(t *testing.T) {
	ctx := context.Background()
	steps := stepDirectory(map[string]*core.Step{
		"s1": {Ref: "s1", RawInput: `{"group":"5$9","count":3}`},
		"s2": {Ref: "s2", RawInput: `not json at all`},
		"s3": {Ref: "s3"},
	})

	t.Run("Should read the referenced field as text", func(t *testing.T) {
		value, ok := ResolveIndirectMembership(ctx, "s1:group", steps, RawInputExtractor())
		require.True(t, ok)
		assert.Equal(t, "5$9", value)
	})
	t.Run("Should be absent for blank reference", func(t *testing.T) {
		_, ok := ResolveIndirectMembership(ctx, "  ", steps, RawInputExtractor())
		assert.False(t, ok)
	})
	t.Run("Should be absent without a colon", func(t *testing.T) {
		_, ok := ResolveIndirectMembership(ctx, "s1group", steps, RawInputExtractor())
		assert.False(t, ok)
	})
	t.Run("Should be absent for unknown step", func(t *testing.T) {
		_, ok := ResolveIndirectMembership(ctx, "nope:group", steps, RawInputExtractor())
		assert.False(t, ok)
	})
	t.Run("Should be absent for malformed stored JSON", func(t *testing.T) {
		_, ok := ResolveIndirectMembership(ctx, "s2:group", steps, RawInputExtractor())
		assert.False(t, ok)
	})
	t.Run("Should be absent for a step without stored input", func(t *testing.T) {
		_, ok := ResolveIndirectMembership(ctx, "s3:group", steps, RawInputExtractor())
		assert.False(t, ok)
	})
	t.Run("Should be absent for non-text field", func(t *testing.T) {
		_, ok := ResolveIndirectMembership(ctx, "s1:count", steps, RawInputExtractor())
		assert.False(t, ok)
	})
}

func TestExtractField(t *testing.T) {
	t.Run("Should return text field values", func(t *testing.T) {
		value, ok := ExtractField(`{"a":"x"}`, "a")
		require.True(t, ok)
		assert.Equal(t, "x", value)
	})
	t.Run("Should be absent for blank JSON or field name", func(t *testing.T) {
		_, ok := ExtractField("", "a")
		assert.False(t, ok)
		_, ok = ExtractField(`{"a":"x"}`, "")
		assert.False(t, ok)
	})
	t.Run("Should never fail for malformed JSON", func(t *testing.T) {
		_, ok := ExtractField(`{"a":`, "a")
		assert.False(t, ok)
	})
	t.Run("Should be absent for missing or non-text fields", func(t *testing.T) {
		_, ok := ExtractField(`{"a":1}`, "a")
		assert.False(t, ok)
		_, ok = ExtractField(`{"a":"x"}`, "b")
		assert.False(t, ok)
	})
}

func TestCollectRecipientIDs(t *testing.T) {
	ctx := context.Background()

	t.Run("Should deduplicate the same id from every source", func(t *testing.T) {
		steps := stepDirectory(map[string]*core.Step{
			"u": {Ref: "u", AssigneeID: 5},
			"m": {Ref: "m", AssigneeID: 5},
		})
		c := Collaborators{
			Steps:   steps,
			UserIDs: AssigneeIDExtractor(),
			Memberships: MembershipLookupFunc(func(_ context.Context, _ []string) ([]int64, error) {
				return []int64{5}, nil
			}),
			StepInputs: RawInputExtractor(),
		}
		cfg := &InvolvedUsersConfig{
			StepUserRef:    strRef("u"),
			StepManagerRef: strRef("m"),
			Memberships:    []string{"1$2"},
		}
		set := CollectRecipientIDs(ctx, cfg, c)
		assert.Equal(t, []int64{5}, set.Values())
	})
	t.Run("Should union distinct recipients from all sources", func(t *testing.T) {
		steps := stepDirectory(map[string]*core.Step{
			"u": {Ref: "u", AssigneeID: 1},
			"m": {Ref: "m", AssigneeID: 2},
		})
		c := Collaborators{
			Steps:   steps,
			UserIDs: AssigneeIDExtractor(),
			Managers: ManagerLookupFunc(func(_ context.Context, id int64) (int64, bool) {
				return id + 100, true
			}),
			Memberships: MembershipLookupFunc(func(_ context.Context, _ []string) ([]int64, error) {
				return []int64{7, 8}, nil
			}),
			StepInputs: RawInputExtractor(),
		}
		cfg := &InvolvedUsersConfig{
			StepUserRef:    strRef("u"),
			StepManagerRef: strRef("m"),
			Memberships:    []string{"1$2"},
		}
		set := CollectRecipientIDs(ctx, cfg, c)
		assert.Equal(t, []int64{1, 7, 8, 102}, set.Values())
	})
	t.Run("Should return empty set when every source is absent", func(t *testing.T) {
		steps := stepDirectory(nil)
		c := Collaborators{
			Steps:   steps,
			UserIDs: AssigneeIDExtractor(),
			Memberships: MembershipLookupFunc(func(_ context.Context, _ []string) ([]int64, error) {
				return nil, nil
			}),
			StepInputs: RawInputExtractor(),
		}
		cfg := &InvolvedUsersConfig{
			StepUserRef:    strRef("gone"),
			StepManagerRef: strRef("gone"),
			Memberships:    []string{"missing:field"},
		}
		set := CollectRecipientIDs(ctx, cfg, c)
		assert.Equal(t, 0, set.Len())
	})
	t.Run("Should return empty set for nil config", func(t *testing.T) {
		set := CollectRecipientIDs(ctx, nil, Collaborators{})
		assert.Equal(t, 0, set.Len())
	})
}
