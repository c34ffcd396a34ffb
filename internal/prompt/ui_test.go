package prompt

import (
	"errors"
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/require"
)

func stubRunForm(t *testing.T, fn func(form *huh.Form) error) *int {
	t.Helper()
	orig := runFormFunc
	calls := 0
	runFormFunc = func(form *huh.Form) error {
		calls++
		return fn(form)
	}
	t.Cleanup(func() { runFormFunc = orig })
	return &calls
}

func TestHuhUI_RequiresTerminal(t *testing.T) {
	calls := stubRunForm(t, func(*huh.Form) error { return nil })
	ui := &HuhUI{isTerminal: func() bool { return false }}

	var value string
	require.ErrorIs(t, ui.Select("Pick", []Option{{Label: "a", Value: "a"}}, &value), ErrNotInteractive)
	var ok bool
	require.ErrorIs(t, ui.Confirm("Sure?", &ok), ErrNotInteractive)
	require.Zero(t, *calls)
}

func TestHuhUI_RunsForm(t *testing.T) {
	calls := stubRunForm(t, func(*huh.Form) error { return nil })
	ui := &HuhUI{isTerminal: func() bool { return true }}

	value := "b"
	require.NoError(t, ui.Select("Pick", []Option{{Label: "A", Value: "a"}, {Label: "B", Value: "b"}}, &value))
	confirmed := true
	require.NoError(t, ui.Confirm("Sure?", &confirmed))
	require.Equal(t, 2, *calls)
}

func TestHuhUI_AbortMapsToCancelled(t *testing.T) {
	stubRunForm(t, func(*huh.Form) error { return huh.ErrUserAborted })
	ui := &HuhUI{isTerminal: func() bool { return true }}

	var ok bool
	require.ErrorIs(t, ui.Confirm("Sure?", &ok), ErrCancelled)
}

func TestHuhUI_PropagatesOtherErrors(t *testing.T) {
	boom := errors.New("tty gone")
	stubRunForm(t, func(*huh.Form) error { return boom })
	ui := &HuhUI{isTerminal: func() bool { return true }}

	var ok bool
	require.ErrorIs(t, ui.Confirm("Sure?", &ok), boom)
}
