package keybinding

import (
	"errors"
	"testing"

	domain "github.com/inference-gateway/keybind/internal/domain"
	keystroke "github.com/inference-gateway/keybind/internal/keystroke"
	logger "github.com/inference-gateway/keybind/internal/logger"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name          string
		source        string
		raw           any
		expectedCount int
		expectedError bool
		errorContains string
	}{
		{
			name:          "Table definitions",
			source:        "wbmm",
			raw:           Table{"S": {"a": "cmd:a", "b": "cmd:b"}},
			expectedCount: 2,
		},
		{
			name:          "Plain nested map",
			source:        "wbmm",
			raw:           map[string]map[string]string{"S": {"a": "cmd:a"}},
			expectedCount: 1,
		},
		{
			name:   "Decoded yaml shape",
			source: "wbmm",
			raw: map[string]any{
				"S": map[string]any{"a": "cmd:a", "b": "cmd:b"},
				"T": map[string]any{"c": "cmd:c"},
			},
			expectedCount: 3,
		},
		{
			name:   "Generic map with any keys",
			source: "wbmm",
			raw: map[any]any{
				"S": map[any]any{"a": "cmd:a"},
			},
			expectedCount: 1,
		},
		{
			name:          "Entry list",
			source:        "wbmm",
			raw:           []domain.BindingEntry{{Selector: "S", Keystroke: "a", Command: "cmd:a"}},
			expectedCount: 1,
		},
		{
			name:          "Empty mapping is valid",
			source:        "wbmm",
			raw:           map[string]any{},
			expectedCount: 0,
		},
		{
			name:          "Empty source",
			source:        "",
			raw:           Table{},
			expectedError: true,
			errorContains: "source cannot be empty",
		},
		{
			name:          "Missing definitions",
			source:        "wbmm",
			raw:           nil,
			expectedError: true,
			errorContains: "definitions are missing",
		},
		{
			name:          "Not a mapping",
			source:        "wbmm",
			raw:           "right: wbmm:jump-right",
			expectedError: true,
			errorContains: "expected a mapping of selectors",
		},
		{
			name:          "Selector value is not a mapping",
			source:        "wbmm",
			raw:           map[string]any{"S": []any{"a"}},
			expectedError: true,
			errorContains: `at "S"`,
		},
		{
			name:          "Command is not a string",
			source:        "wbmm",
			raw:           map[string]any{"S": map[string]any{"a": 42}},
			expectedError: true,
			errorContains: "command must be a string",
		},
		{
			name:          "Selector key is not a string",
			source:        "wbmm",
			raw:           map[any]any{1: map[string]any{"a": "cmd:a"}},
			expectedError: true,
			errorContains: "selector must be a string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := Build(tt.source, tt.raw, 0)

			if tt.expectedError {
				require.Error(t, err)
				assert.Nil(t, set)
				assert.True(t, errors.Is(err, domain.ErrValidation))
				assert.Contains(t, err.Error(), tt.errorContains)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.source, set.Source())
			assert.Len(t, set.Entries(), tt.expectedCount)
			assert.False(t, set.Active())
			assert.Equal(t, keystroke.ResolverName, set.ResolverName())
		})
	}
}

func TestSourceBindingSet_ActivateTwiceKeepsOnlySecondSet(t *testing.T) {
	reg := NewRegistry()

	first, err := Build("wbmm", Table{"S": {"a": "cmd:a", "b": "cmd:b"}}, 0)
	require.NoError(t, err)
	second, err := Build("wbmm", Table{"S": {"c": "cmd:c"}}, 0)
	require.NoError(t, err)

	first.Activate(reg)
	second.Activate(reg)

	assert.Equal(t, []domain.BindingEntry{entry("S", "c", "cmd:c")}, reg.EntriesFor("wbmm"))
	assert.Equal(t, []string{keystroke.ResolverName}, reg.Resolvers())
}

func TestSourceBindingSet_ActivateRegistersResolver(t *testing.T) {
	reg := NewRegistry()
	set, err := Build("wbmm", Table{"S": {"right": "wbmm:jump-right"}}, 2)
	require.NoError(t, err)

	set.Activate(reg)

	assert.True(t, set.Active())
	res, ok := reg.Resolver(keystroke.ResolverName)
	require.True(t, ok)

	ev := domain.NewKeyEvent(domain.KeyEventConfig{Key: "ArrowRight", AltKey: true})
	assert.Equal(t, "lalt-right", res.Resolve(ev))

	priority, ok := reg.PriorityOf("wbmm")
	assert.True(t, ok)
	assert.Equal(t, 2, priority)
}

func TestSourceBindingSet_ActivateLogs(t *testing.T) {
	logs, restore := logger.Capture()
	defer restore()

	reg := NewRegistry()
	set, err := Build("wbmm", Table{"S": {"a": "cmd:a"}}, 0)
	require.NoError(t, err)

	set.Activate(reg)
	set.Deactivate(reg)

	assert.Equal(t, 1, logs.FilterMessage("Activated key bindings").Len())
	assert.Equal(t, 1, logs.FilterMessage("Deactivated key bindings").Len())
}

func TestSourceBindingSet_Deactivate(t *testing.T) {
	reg := NewRegistry()
	other, err := Build("other", Table{"X": {"q": "other:q"}}, 0)
	require.NoError(t, err)
	require.NoError(t, other.SetResolver("otherResolver", staticResolver("other")))
	other.Activate(reg)

	set, err := Build("wbmm", Table{"S": {"a": "cmd:a"}}, 0)
	require.NoError(t, err)
	set.Activate(reg)

	set.Deactivate(reg)

	assert.False(t, set.Active())
	assert.Nil(t, reg.EntriesFor("wbmm"))
	assert.Equal(t, []string{"otherResolver"}, reg.Resolvers())
	assert.Len(t, reg.EntriesFor("other"), 1)
}

func TestSourceBindingSet_DeactivateKeepsSharedResolver(t *testing.T) {
	reg := NewRegistry()
	first, err := Build("A", Table{"S": {"a": "x"}}, 1)
	require.NoError(t, err)
	second, err := Build("B", Table{"S": {"b": "y"}}, 2)
	require.NoError(t, err)

	first.Activate(reg)
	second.Activate(reg)
	assert.Equal(t, []string{keystroke.ResolverName}, reg.Resolvers())

	first.Deactivate(reg)

	assert.True(t, second.Active())
	assert.Nil(t, reg.EntriesFor("A"))
	assert.Len(t, reg.EntriesFor("B"), 1)
	assert.Equal(t, []string{keystroke.ResolverName}, reg.Resolvers())

	ev := domain.NewKeyEvent(domain.KeyEventConfig{Key: "a", CtrlKey: true})
	assert.Equal(t, "lctrl-a", reg.ResolveEvent("ctrl-a", ev, ""))

	second.Deactivate(reg)
	assert.Empty(t, reg.Resolvers())
	assert.Equal(t, "ctrl-a", reg.ResolveEvent("ctrl-a", ev, ""))
}

func TestSourceBindingSet_SetResolverWhileActive(t *testing.T) {
	reg := NewRegistry()
	set, err := Build("wbmm", Table{"S": {"a": "cmd:a"}}, 0)
	require.NoError(t, err)
	set.Activate(reg)

	err = set.SetResolver("otherResolver", staticResolver("other"))
	require.Error(t, err)
	assert.Equal(t, keystroke.ResolverName, set.ResolverName())

	set.Deactivate(reg)
	assert.Empty(t, reg.Resolvers())

	require.NoError(t, set.SetResolver("otherResolver", staticResolver("other")))
	set.Activate(reg)
	assert.Equal(t, []string{"otherResolver"}, reg.Resolvers())
}

func TestSourceBindingSet_DeactivateNeverActivatedIsNoOp(t *testing.T) {
	reg := NewRegistry()
	reg.AppendEntries([]domain.BindingEntry{entry("S", "a", "cmd:a")}, "wbmm", 0)
	require.NoError(t, reg.RegisterResolver(keystroke.ResolverName, staticResolver("x")))

	set, err := Build("wbmm", Table{"S": {"b": "cmd:b"}}, 0)
	require.NoError(t, err)

	assert.NotPanics(t, func() { set.Deactivate(reg) })
	assert.Len(t, reg.EntriesFor("wbmm"), 1)
	assert.Equal(t, []string{keystroke.ResolverName}, reg.Resolvers())

	set.Activate(reg)
	set.Deactivate(reg)
	assert.NotPanics(t, func() { set.Deactivate(reg) })
}

func TestSourceBindingSet_Replace(t *testing.T) {
	set, err := Build("wbmm", Table{"S": {"a": "cmd:a"}}, 0)
	require.NoError(t, err)

	t.Run("Valid definitions swap entries", func(t *testing.T) {
		require.NoError(t, set.Replace(Table{"S": {"b": "cmd:b"}, "T": {"c": "cmd:c"}}))
		assert.Equal(t, Table{"S": {"b": "cmd:b"}, "T": {"c": "cmd:c"}}, set.Table())
	})

	t.Run("Invalid definitions keep previous entries", func(t *testing.T) {
		before := set.Entries()

		err := set.Replace(map[string]any{"S": "not a mapping"})

		require.Error(t, err)
		var verr *domain.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "wbmm", verr.Source)
		assert.Equal(t, before, set.Entries())
	})
}

func TestSourceBindingSet_ReplaceDoesNotPublish(t *testing.T) {
	reg := NewRegistry()
	set, err := Build("wbmm", Table{"S": {"a": "cmd:a"}}, 0)
	require.NoError(t, err)
	set.Activate(reg)

	require.NoError(t, set.Replace(Table{"S": {"b": "cmd:b"}}))
	assert.Equal(t, []domain.BindingEntry{entry("S", "a", "cmd:a")}, reg.EntriesFor("wbmm"))

	set.Activate(reg)
	assert.Equal(t, []domain.BindingEntry{entry("S", "b", "cmd:b")}, reg.EntriesFor("wbmm"))
}

func TestSourceBindingSet_Describe(t *testing.T) {
	set, err := Build("wbmm", Table{"S": {"a": "cmd:a", "b": "cmd:b"}}, 0)
	require.NoError(t, err)

	text, num := set.Describe()

	assert.Equal(t, 2, num)
	assert.Contains(t, text, "S:\n  a: cmd:a\n  b: cmd:b\n")
}

func TestParseTable(t *testing.T) {
	table, err := ParseTable(map[string]any{"S": map[string]any{"a": "cmd:a"}})
	require.NoError(t, err)
	assert.Equal(t, Table{"S": {"a": "cmd:a"}}, table)

	_, err = ParseTable([]string{"a"})
	assert.True(t, errors.Is(err, domain.ErrValidation))
}
