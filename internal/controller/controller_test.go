package controller

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	config "github.com/inference-gateway/keybind/config"
	domain "github.com/inference-gateway/keybind/internal/domain"
	keybinding "github.com/inference-gateway/keybind/internal/keybinding"
	keystroke "github.com/inference-gateway/keybind/internal/keystroke"
	logger "github.com/inference-gateway/keybind/internal/logger"
	notify "github.com/inference-gateway/keybind/internal/notify"
	assert "github.com/stretchr/testify/assert"
	mock "github.com/stretchr/testify/mock"
	require "github.com/stretchr/testify/require"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Info(title, detail string) {
	m.Called(title, detail)
}

func (m *mockNotifier) Warning(title, detail string) {
	m.Called(title, detail)
}

type mockConfigWriter struct {
	mock.Mock
}

func (m *mockConfigWriter) SetValue(key string, value any) error {
	args := m.Called(key, value)
	return args.Error(0)
}

func newController(t *testing.T, opts Options) (*Controller, *keybinding.Registry) {
	t.Helper()
	if opts.Registry == nil {
		opts.Registry = keybinding.NewRegistry()
	}
	c, err := New(config.DefaultConfig(), opts)
	require.NoError(t, err)
	return c, opts.Registry
}

func TestNew(t *testing.T) {
	_, err := New(config.DefaultConfig(), Options{})
	assert.Error(t, err)

	c, reg := newController(t, Options{})

	assert.False(t, c.IsOn())
	assert.True(t, c.SubwordBoundary())
	assert.False(t, c.AutoSelect())
	assert.Equal(t, config.DefaultSource, c.Bindings().Source())
	assert.Len(t, c.Bindings().Entries(), 8)
	assert.Empty(t, reg.ActiveEntries())
}

func TestNew_UsesConfiguredSourceAndMotion(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Bindings.Source = "custom"
	cfg.Bindings.Priority = 4
	cfg.Motion.SubwordBoundary = false
	cfg.Motion.AutoSelect = true

	reg := keybinding.NewRegistry()
	c, err := New(cfg, Options{Registry: reg})
	require.NoError(t, err)
	c.On()

	priority, ok := reg.PriorityOf("custom")
	assert.True(t, ok)
	assert.Equal(t, 4, priority)
	assert.False(t, c.SubwordBoundary())
	assert.True(t, c.AutoSelect())

	c.SetSubwordBoundary(true)
	assert.True(t, c.SubwordBoundary())
}

func TestController_OnOffToggle(t *testing.T) {
	c, reg := newController(t, Options{})

	c.On()
	assert.True(t, c.IsOn())
	assert.Len(t, reg.EntriesFor(config.DefaultSource), 8)
	assert.Equal(t, []string{keystroke.ResolverName}, reg.Resolvers())

	c.On()
	assert.Len(t, reg.EntriesFor(config.DefaultSource), 8)

	c.Off()
	assert.False(t, c.IsOn())
	assert.Empty(t, reg.EntriesFor(config.DefaultSource))
	assert.Empty(t, reg.Resolvers())

	assert.True(t, c.Toggle())
	assert.True(t, c.IsOn())
	assert.False(t, c.Toggle())
	assert.False(t, c.IsOn())
}

func TestController_OffWhenNeverOnIsNoOp(t *testing.T) {
	reg := keybinding.NewRegistry()
	reg.AppendEntries([]domain.BindingEntry{{Selector: "S", Keystroke: "a", Command: "other:a"}}, "other", 0)

	c, _ := newController(t, Options{Registry: reg})
	c.Off()
	c.Shutdown()

	assert.Len(t, reg.ActiveEntries(), 1)
}

func TestController_SetKeyBindings(t *testing.T) {
	raw := keybinding.Table{"S": {"a": "cmd:a", "b": "cmd:b"}}

	t.Run("Off keeps registry untouched", func(t *testing.T) {
		c, reg := newController(t, Options{Notifier: &mockNotifier{}})

		require.NoError(t, c.SetKeyBindings(raw, false))

		assert.Empty(t, reg.ActiveEntries())
		assert.Equal(t, raw, c.Bindings().Table())
	})

	t.Run("On republishes", func(t *testing.T) {
		c, reg := newController(t, Options{Notifier: &mockNotifier{}})
		c.On()

		require.NoError(t, c.SetKeyBindings(raw, false))

		assert.Equal(t, raw, keybinding.ToTable(reg.EntriesFor(config.DefaultSource)))
	})

	t.Run("Show sends summary", func(t *testing.T) {
		n := &mockNotifier{}
		n.On("Info", "Number of Valid Key Bindings are 2", "S:\n  a: cmd:a\n  b: cmd:b\n").Once()
		c, _ := newController(t, Options{Notifier: n})

		require.NoError(t, c.SetKeyBindings(raw, true))

		n.AssertExpectations(t)
	})

	t.Run("Invalid definitions warn and keep previous bindings", func(t *testing.T) {
		n := &mockNotifier{}
		n.On("Warning", notify.LoadFailedTitle, mock.AnythingOfType("string")).Once()
		c, reg := newController(t, Options{Notifier: n})
		c.On()
		before := reg.EntriesFor(config.DefaultSource)

		err := c.SetKeyBindings(map[string]any{"S": 1}, true)

		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrValidation))
		assert.Equal(t, before, reg.EntriesFor(config.DefaultSource))
		n.AssertExpectations(t)
		n.AssertNotCalled(t, "Info", mock.Anything, mock.Anything)
	})
}

func TestController_SetKeyBindingsWarnsAboutUnknownCommands(t *testing.T) {
	logs, restore := logger.Capture()
	defer restore()

	c, _ := newController(t, Options{
		Notifier: &mockNotifier{},
		Commands: keybinding.NewCommandSet(config.Commands()...),
	})

	require.NoError(t, c.SetKeyBindings(keybinding.Table{"S": {"a": "missing:command"}}, false))

	assert.Equal(t, 1, logs.FilterMessage("Key bindings reference unknown commands").Len())
}

func TestController_ToggleAutoSelect(t *testing.T) {
	w := &mockConfigWriter{}
	w.On("SetValue", AutoSelectKey, true).Return(nil).Once()
	w.On("SetValue", AutoSelectKey, false).Return(nil).Once()

	c, reg := newController(t, Options{ConfigWriter: w})

	require.NoError(t, c.ToggleAutoSelect())
	assert.True(t, c.IsOn())
	assert.True(t, c.AutoSelect())
	assert.NotEmpty(t, reg.EntriesFor(config.DefaultSource))

	require.NoError(t, c.ToggleAutoSelect())
	assert.True(t, c.IsOn())
	assert.False(t, c.AutoSelect())

	w.AssertExpectations(t)
}

func TestController_ToggleAutoSelectWriteFailure(t *testing.T) {
	w := &mockConfigWriter{}
	w.On("SetValue", AutoSelectKey, true).Return(errors.New("read-only file system"))

	c, _ := newController(t, Options{ConfigWriter: w})

	err := c.ToggleAutoSelect()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "read-only file system")
	assert.True(t, c.AutoSelect())
}

func TestController_ToggleAutoSelectWithoutWriter(t *testing.T) {
	c, _ := newController(t, Options{})

	require.NoError(t, c.ToggleAutoSelect())
	assert.True(t, c.AutoSelect())
}

func TestController_LoadFile(t *testing.T) {
	dir := t.TempDir()
	valid := filepath.Join(dir, "wbmm.yaml")
	require.NoError(t, os.WriteFile(valid, []byte("S:\n  right: wbmm:jump-right\n"), 0644))

	t.Run("Valid file replaces bindings", func(t *testing.T) {
		c, reg := newController(t, Options{Notifier: &mockNotifier{}})
		c.On()

		require.NoError(t, c.LoadFile(context.Background(), valid, false))

		assert.Equal(t, keybinding.Table{"S": {"right": "wbmm:jump-right"}},
			keybinding.ToTable(reg.EntriesFor(config.DefaultSource)))
	})

	t.Run("Missing file warns", func(t *testing.T) {
		n := &mockNotifier{}
		n.On("Warning", notify.LoadFailedTitle, mock.AnythingOfType("string")).Once()
		c, _ := newController(t, Options{Notifier: n})

		err := c.LoadFile(context.Background(), filepath.Join(dir, "missing.yaml"), false)

		require.Error(t, err)
		assert.Len(t, c.Bindings().Entries(), 8)
		n.AssertExpectations(t)
	})
}

func TestController_ApplyFileError(t *testing.T) {
	n := &mockNotifier{}
	n.On("Warning", notify.LoadFailedTitle, "boom").Once()
	c, _ := newController(t, Options{Notifier: n})

	err := c.ApplyFile(nil, errors.New("boom"), true)

	assert.EqualError(t, err, "boom")
	n.AssertExpectations(t)
}

func TestController_Shutdown(t *testing.T) {
	c, reg := newController(t, Options{})
	c.On()

	c.Shutdown()

	assert.False(t, c.IsOn())
	assert.Empty(t, reg.ActiveEntries())
	assert.Empty(t, reg.Resolvers())
}
