package keybinding

import (
	"errors"
	"testing"

	domain "github.com/inference-gateway/keybind/internal/domain"
	assert "github.com/stretchr/testify/assert"
	mock "github.com/stretchr/testify/mock"
	require "github.com/stretchr/testify/require"
)

type mockCommandChecker struct {
	mock.Mock
}

func (m *mockCommandChecker) HasCommand(name string) bool {
	args := m.Called(name)
	return args.Bool(0)
}

func TestVerify(t *testing.T) {
	entries := []domain.BindingEntry{
		entry("S", "right", "wbmm:jump-right"),
		entry("S", "left", "wbmm:jump-left"),
		entry("T", "right", "wbmm:jump-right"),
	}

	t.Run("All commands known", func(t *testing.T) {
		checker := &mockCommandChecker{}
		checker.On("HasCommand", mock.Anything).Return(true)

		report, err := Verify(entries, checker)

		require.NoError(t, err)
		assert.Equal(t, 3, report.Total)
		assert.Empty(t, report.Unverified)
		checker.AssertNumberOfCalls(t, "HasCommand", 2)
	})

	t.Run("Unknown commands are reported", func(t *testing.T) {
		checker := &mockCommandChecker{}
		checker.On("HasCommand", "wbmm:jump-right").Return(true)
		checker.On("HasCommand", "wbmm:jump-left").Return(false)

		report, err := Verify(entries, checker)

		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrResourceUnavailable))
		assert.Equal(t, []string{"wbmm:jump-left"}, report.Unverified)
		assert.Equal(t, "1 command(s) cannot be verified yet: wbmm:jump-left", err.Error())
		checker.AssertExpectations(t)
	})

	t.Run("Nil checker verifies nothing", func(t *testing.T) {
		report, err := Verify(entries, nil)

		require.NoError(t, err)
		assert.Equal(t, 3, report.Total)
	})
}

func TestCommandSet(t *testing.T) {
	set := NewCommandSet("wbmm:jump-right", "wbmm:jump-left")

	assert.True(t, set.HasCommand("wbmm:jump-right"))
	assert.False(t, set.HasCommand("wbmm:select-left"))

	report, err := Verify([]domain.BindingEntry{entry("S", "a", "wbmm:select-left")}, set)
	require.Error(t, err)
	assert.Equal(t, []string{"wbmm:select-left"}, report.Unverified)
}
