package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vaultpass/passgen/internal/charset"
	"github.com/vaultpass/passgen/internal/crypto"
	"github.com/vaultpass/passgen/internal/strength"
)

func TestInitialState(t *testing.T) {
	s := InitialState()
	assert.Equal(t, crypto.DefaultLength, s.Options.Length)
	assert.Equal(t, charset.AllSet(), s.Options.Classes)
	assert.True(t, s.Visible)
	assert.Empty(t, s.Password)
	assert.Equal(t, strength.TierNone, s.Assessment.Tier)
}

func TestReduceSetLengthClamps(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{in: 4, want: crypto.MinLength},
		{in: 8, want: 8},
		{in: 20, want: 20},
		{in: 32, want: 32},
		{in: 99, want: crypto.MaxLength},
	}

	for _, tt := range tests {
		got := Reduce(InitialState(), SetLength{Length: tt.in})
		assert.Equal(t, tt.want, got.Options.Length, "SetLength(%d)", tt.in)
	}
}

func TestReduceToggleClassDoesNotMutateInput(t *testing.T) {
	before := InitialState()
	after := Reduce(before, ToggleClass{Class: charset.Symbols})

	assert.True(t, before.Options.Classes.Has(charset.Symbols))
	assert.False(t, after.Options.Classes.Has(charset.Symbols))

	back := Reduce(after, ToggleClass{Class: charset.Symbols})
	assert.Equal(t, before.Options, back.Options)
}

func TestReduceGenerationLifecycle(t *testing.T) {
	s := Reduce(InitialState(), GenerateRequested{})
	assert.True(t, s.Generating)

	s = Reduce(s, GenerateSucceeded{Password: "Ab3!Ab3!Ab3!Ab3!"})
	assert.False(t, s.Generating)
	assert.Equal(t, "Ab3!Ab3!Ab3!Ab3!", s.Password)
	assert.Equal(t, strength.Assess("Ab3!Ab3!Ab3!Ab3!"), s.Assessment)

	s = Reduce(s, GenerateFailed{Err: crypto.ErrEmptyClass})
	assert.ErrorIs(t, s.Err, crypto.ErrEmptyClass)
	assert.Equal(t, "Ab3!Ab3!Ab3!Ab3!", s.Password, "failure must not overwrite the password")

	s = Reduce(s, ToggleClass{Class: charset.Digits})
	assert.NoError(t, s.Err, "editing options clears the inline error")
}

func TestReduceToasts(t *testing.T) {
	s := Reduce(InitialState(), ToastShown{Toast: Toast{ID: "a", Message: "one"}})
	s = Reduce(s, ToastShown{Toast: Toast{ID: "b", Message: "two"}})
	withBoth := s

	s = Reduce(s, ToastDismissed{ID: "a"})
	assert.Len(t, s.Toasts, 1)
	assert.Equal(t, "b", s.Toasts[0].ID)
	assert.Len(t, withBoth.Toasts, 2, "earlier snapshot keeps its toasts")
	assert.Equal(t, "a", withBoth.Toasts[0].ID)

	s = Reduce(s, ToastDismissed{ID: "missing"})
	assert.Len(t, s.Toasts, 1)

	s = Reduce(s, ToastsCleared{})
	assert.Empty(t, s.Toasts)
}

func TestReduceVisibilityAndTheme(t *testing.T) {
	s := Reduce(InitialState(), VisibilityToggled{})
	assert.False(t, s.Visible)
	s = Reduce(s, VisibilityToggled{})
	assert.True(t, s.Visible)

	s = Reduce(s, ThemeSet{Dark: true})
	assert.True(t, s.Dark)
}
