// Package session holds the view state of one generator UI and the
// transitions that change it.
package session

import (
	"slices"
	"time"

	"github.com/vaultpass/passgen/internal/charset"
	"github.com/vaultpass/passgen/internal/crypto"
	"github.com/vaultpass/passgen/internal/strength"
)

// ToastKind selects how a notification is presented.
type ToastKind string

const (
	ToastSuccess  ToastKind = "success"
	ToastError    ToastKind = "error"
	ToastDownload ToastKind = "download"
)

// Toast is a transient notification.
type Toast struct {
	ID       string
	Message  string
	Kind     ToastKind
	Duration time.Duration
}

// State is the complete view state of a session.
type State struct {
	Options    crypto.Options
	Password   string
	Assessment strength.Assessment
	Generating bool
	Visible    bool
	Dark       bool
	// Err is the last validation failure, shown inline. It is never copied
	// into Password.
	Err    error
	Toasts []Toast
	// Version counts the changes a Session has applied.
	Version uint64
}

// InitialState is the state of a fresh session.
func InitialState() State {
	return State{
		Options: crypto.DefaultOptions(),
		Visible: true,
	}
}

// Action is an input to Reduce.
type Action interface {
	action()
}

type (
	// SetLength changes the requested length, clamped to the allowed range.
	SetLength struct{ Length int }
	// ToggleClass flips one character class.
	ToggleClass struct{ Class charset.Class }
	// GenerateRequested marks a generation as in flight.
	GenerateRequested struct{}
	// GenerateSucceeded surfaces a new password.
	GenerateSucceeded struct{ Password string }
	// GenerateFailed records why generation could not run.
	GenerateFailed struct{ Err error }
	// ToastShown appends a notification.
	ToastShown struct{ Toast Toast }
	// ToastDismissed removes one notification.
	ToastDismissed struct{ ID string }
	// ToastsCleared removes every notification.
	ToastsCleared struct{}
	// VisibilityToggled shows or masks the password.
	VisibilityToggled struct{}
	// ThemeSet selects the dark or light theme.
	ThemeSet struct{ Dark bool }
)

func (SetLength) action()         {}
func (ToggleClass) action()       {}
func (GenerateRequested) action() {}
func (GenerateSucceeded) action() {}
func (GenerateFailed) action()    {}
func (ToastShown) action()        {}
func (ToastDismissed) action()    {}
func (ToastsCleared) action()     {}
func (VisibilityToggled) action() {}
func (ThemeSet) action()          {}

// Reduce returns the state that results from applying a to s. s is not
// modified.
func Reduce(s State, a Action) State {
	next := s
	next.Toasts = slices.Clone(s.Toasts)

	switch a := a.(type) {
	case SetLength:
		next.Options.Length = min(max(a.Length, crypto.MinLength), crypto.MaxLength)
		next.Err = nil
	case ToggleClass:
		next.Options.Classes = s.Options.Classes.Toggle(a.Class)
		next.Err = nil
	case GenerateRequested:
		next.Generating = true
		next.Err = nil
	case GenerateSucceeded:
		next.Generating = false
		next.Err = nil
		next.Password = a.Password
		next.Assessment = strength.Assess(a.Password)
	case GenerateFailed:
		next.Generating = false
		next.Err = a.Err
	case ToastShown:
		next.Toasts = append(next.Toasts, a.Toast)
	case ToastDismissed:
		next.Toasts = slices.DeleteFunc(next.Toasts, func(t Toast) bool { return t.ID == a.ID })
	case ToastsCleared:
		next.Toasts = nil
	case VisibilityToggled:
		next.Visible = !s.Visible
	case ThemeSet:
		next.Dark = a.Dark
	}

	return next
}
