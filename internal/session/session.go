package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/vaultpass/passgen/internal/crypto"
	"github.com/vaultpass/passgen/internal/report"
	"github.com/vaultpass/passgen/internal/share"
)

const (
	DefaultGenerateDelay = 500 * time.Millisecond
	DefaultToastDuration = 3 * time.Second
)

// Notification texts.
const (
	MsgGenerated      = "New password generated!"
	MsgSelectClass    = "Select at least one character type"
	MsgInvalidLength  = "Password length must be between 8 and 32"
	MsgGenerateFailed = "Failed to generate password"
	MsgCopied         = "Password copied!"
	MsgNothingToCopy  = "No password to copy"
	MsgCopyFailed     = "Failed to copy password"
	MsgSaved          = "Password saved!"
	MsgNothingToSave  = "No password to save"
	MsgSaveFailed     = "Failed to save password"
	MsgLinkCopied     = "Link copied!"
	MsgShareFailed    = "Failed to share link"
	MsgThemeFailed    = "Failed to save theme preference"
)

var (
	ErrClosed               = errors.New("session closed")
	ErrNoPassword           = errors.New("no password generated yet")
	ErrClipboardUnavailable = errors.New("clipboard unavailable")
)

// Clipboard writes text to the user's clipboard.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// Downloader hands a file to the user.
type Downloader interface {
	Save(ctx context.Context, name string, data []byte) error
}

// ThemeStore persists the theme preference of an owner.
type ThemeStore interface {
	LoadTheme(ctx context.Context, owner string) (dark bool, found bool, err error)
	SaveTheme(ctx context.Context, owner string, dark bool) error
}

// Config wires a Session to its collaborators. Zero values select defaults;
// nil capabilities make the matching operation fail with a notification.
type Config struct {
	Owner         string
	GenerateDelay time.Duration
	ToastDuration time.Duration
	DefaultDark   bool

	Source     crypto.Source
	Clock      Clock
	Clipboard  Clipboard
	Downloader Downloader
	Themes     ThemeStore

	// OnChange, if set, receives a snapshot after every state change. It is
	// called without the session lock held, so snapshots produced on
	// different goroutines may arrive out of order; drop any whose Version
	// is not above the last one seen.
	OnChange func(State)
}

// Session owns the view state of one UI and serialises every change to it,
// including the ones made by deferred callbacks.
type Session struct {
	cfg   Config
	sched *Scheduler

	mu       sync.Mutex
	state    State
	pending  Handle
	genSeq   uint64
	toasts   map[string]Handle
	toastSeq uint64
	closed   bool
}

// New creates a session and restores the owner's theme preference.
func New(ctx context.Context, cfg Config) *Session {
	if cfg.GenerateDelay < 0 {
		cfg.GenerateDelay = 0
	} else if cfg.GenerateDelay == 0 {
		cfg.GenerateDelay = DefaultGenerateDelay
	}
	if cfg.ToastDuration <= 0 {
		cfg.ToastDuration = DefaultToastDuration
	}
	if cfg.Source == nil {
		cfg.Source = crypto.CryptoSource()
	}
	if cfg.Clock == nil {
		cfg.Clock = SystemClock()
	}

	s := &Session{
		cfg:    cfg,
		sched:  NewScheduler(cfg.Clock),
		state:  InitialState(),
		toasts: make(map[string]Handle),
	}
	s.state.Dark = cfg.DefaultDark

	if cfg.Themes != nil {
		dark, found, err := cfg.Themes.LoadTheme(ctx, cfg.Owner)
		switch {
		case err != nil:
			slog.Warn("loading theme preference failed", "owner", cfg.Owner, "error", err)
		case found:
			s.state.Dark = dark
		}
	}

	return s
}

// State returns a snapshot of the current view state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() State {
	st := s.state
	st.Toasts = slices.Clone(s.state.Toasts)
	return st
}

// Dispatch applies a to the state. Toasts added this way are not
// auto-dismissed; use Notify for that.
func (s *Session) Dispatch(a Action) State {
	s.mu.Lock()
	if s.closed {
		st := s.snapshotLocked()
		s.mu.Unlock()
		return st
	}
	if d, ok := a.(ToastDismissed); ok {
		s.cancelToastLocked(d.ID)
	}
	if _, ok := a.(ToastsCleared); ok {
		s.cancelAllToastsLocked()
	}
	st := s.applyLocked(a)
	s.mu.Unlock()

	s.changed(st)
	return st
}

func (s *Session) applyLocked(a Action) State {
	s.state = Reduce(s.state, a)
	s.state.Version++
	return s.snapshotLocked()
}

func (s *Session) changed(st State) {
	if s.cfg.OnChange != nil {
		s.cfg.OnChange(st)
	}
}

// Generate produces a password from the current options. The password
// becomes visible in the state once GenerateDelay has passed; until then
// Generating is true. A generation already in flight is replaced.
func (s *Session) Generate() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}

	opts := s.state.Options
	if err := opts.Validate(); err != nil {
		st := s.applyLocked(GenerateFailed{Err: err})
		s.mu.Unlock()
		s.changed(st)
		s.Notify(validationMessage(err), ToastError, 0)
		return err
	}

	password, err := crypto.Generate(opts, s.cfg.Source)
	if err != nil {
		st := s.applyLocked(GenerateFailed{Err: err})
		s.mu.Unlock()
		s.changed(st)
		slog.Error("password generation failed", "error", err)
		s.Notify(MsgGenerateFailed, ToastError, 0)
		return fmt.Errorf("generate password: %w", err)
	}

	// Cancel misses a callback the scheduler has already dequeued; the
	// sequence number makes that callback a no-op.
	s.pending.Cancel()
	s.genSeq++
	seq := s.genSeq
	st := s.applyLocked(GenerateRequested{})
	s.pending = s.sched.Schedule(s.cfg.GenerateDelay, func() {
		s.completeGeneration(seq, password)
	})
	s.mu.Unlock()

	s.changed(st)
	return nil
}

func (s *Session) completeGeneration(seq uint64, password string) {
	s.mu.Lock()
	if s.closed || seq != s.genSeq {
		s.mu.Unlock()
		return
	}
	s.pending = Handle{}
	st := s.applyLocked(GenerateSucceeded{Password: password})
	s.mu.Unlock()

	s.changed(st)
	s.Notify(MsgGenerated, ToastSuccess, 0)
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, crypto.ErrEmptyClass):
		return MsgSelectClass
	case errors.Is(err, crypto.ErrLengthTooShort), errors.Is(err, crypto.ErrLengthTooLong):
		return MsgInvalidLength
	default:
		return MsgGenerateFailed
	}
}

// Notify shows a toast and schedules its dismissal. A zero duration uses
// the configured default; a negative one keeps the toast until dismissed.
// It returns the toast ID.
func (s *Session) Notify(message string, kind ToastKind, d time.Duration) string {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ""
	}
	if d == 0 {
		d = s.cfg.ToastDuration
	}

	id, err := gonanoid.New()
	if err != nil {
		s.toastSeq++
		id = "toast-" + strconv.FormatUint(s.toastSeq, 10)
	}

	t := Toast{ID: id, Message: message, Kind: kind}
	if d > 0 {
		t.Duration = d
		s.toasts[id] = s.sched.Schedule(d, func() { s.expireToast(id) })
	}
	st := s.applyLocked(ToastShown{Toast: t})
	s.mu.Unlock()

	s.changed(st)
	return id
}

func (s *Session) expireToast(id string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	delete(s.toasts, id)
	st := s.applyLocked(ToastDismissed{ID: id})
	s.mu.Unlock()

	s.changed(st)
}

func (s *Session) cancelToastLocked(id string) {
	if h, ok := s.toasts[id]; ok {
		h.Cancel()
		delete(s.toasts, id)
	}
}

func (s *Session) cancelAllToastsLocked() {
	for id, h := range s.toasts {
		h.Cancel()
		delete(s.toasts, id)
	}
}

// Dismiss removes a toast before it expires.
func (s *Session) Dismiss(id string) State {
	return s.Dispatch(ToastDismissed{ID: id})
}

// DismissAll removes every toast.
func (s *Session) DismissAll() State {
	return s.Dispatch(ToastsCleared{})
}

func (s *Session) currentPassword() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Password, !s.closed
}

// Copy writes the current password to the clipboard.
func (s *Session) Copy(ctx context.Context) error {
	password, open := s.currentPassword()
	if !open {
		return ErrClosed
	}
	if password == "" {
		s.Notify(MsgNothingToCopy, ToastError, 0)
		return ErrNoPassword
	}
	if s.cfg.Clipboard == nil {
		s.Notify(MsgCopyFailed, ToastError, 0)
		return ErrClipboardUnavailable
	}
	if err := s.cfg.Clipboard.WriteText(ctx, password); err != nil {
		slog.Warn("clipboard write failed", "error", err)
		s.Notify(MsgCopyFailed, ToastError, 0)
		return fmt.Errorf("copy password: %w", err)
	}
	s.Notify(MsgCopied, ToastSuccess, 0)
	return nil
}

// Download renders the report for the current password and hands it to the
// Downloader, if one is configured. The report is returned either way.
func (s *Session) Download(ctx context.Context) (report.Report, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return report.Report{}, ErrClosed
	}
	password, assessment := s.state.Password, s.state.Assessment
	s.mu.Unlock()

	rep, err := report.Build(password, assessment, s.cfg.Clock.Now())
	if err != nil {
		if errors.Is(err, report.ErrNoPassword) {
			s.Notify(MsgNothingToSave, ToastError, 0)
			return report.Report{}, ErrNoPassword
		}
		s.Notify(MsgSaveFailed, ToastError, 0)
		return report.Report{}, err
	}

	if s.cfg.Downloader != nil {
		if err := s.cfg.Downloader.Save(ctx, rep.Filename(), rep.Bytes()); err != nil {
			slog.Warn("saving report failed", "file", rep.Filename(), "error", err)
			s.Notify(MsgSaveFailed, ToastError, 0)
			return report.Report{}, fmt.Errorf("save report: %w", err)
		}
	}

	s.Notify(MsgSaved, ToastDownload, 0)
	return rep, nil
}

// Share builds share links for pageURL and copies the page link to the
// clipboard when one is available.
func (s *Session) Share(ctx context.Context, pageURL, text string) (share.Links, error) {
	if _, open := s.currentPassword(); !open {
		return share.Links{}, ErrClosed
	}

	links, err := share.Build(pageURL, text)
	if err != nil {
		s.Notify(MsgShareFailed, ToastError, 0)
		return share.Links{}, err
	}
	if s.cfg.Clipboard == nil {
		return links, nil
	}
	if err := s.cfg.Clipboard.WriteText(ctx, links.Page); err != nil {
		slog.Warn("clipboard write failed", "error", err)
		s.Notify(MsgShareFailed, ToastError, 0)
		return links, fmt.Errorf("copy link: %w", err)
	}
	s.Notify(MsgLinkCopied, ToastSuccess, 0)
	return links, nil
}

// ToggleTheme flips the theme and persists the choice. The state keeps the
// new theme even when persisting fails.
func (s *Session) ToggleTheme(ctx context.Context) error {
	return s.setTheme(ctx, func(dark bool) bool { return !dark })
}

// SetTheme switches to the given theme and persists it.
func (s *Session) SetTheme(ctx context.Context, dark bool) error {
	return s.setTheme(ctx, func(bool) bool { return dark })
}

// setTheme decides the new theme from the current one under the lock, so
// concurrent callers cannot both act on a stale value.
func (s *Session) setTheme(ctx context.Context, next func(dark bool) bool) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	st := s.applyLocked(ThemeSet{Dark: next(s.state.Dark)})
	s.mu.Unlock()
	s.changed(st)

	if s.cfg.Themes == nil {
		return nil
	}
	if err := s.cfg.Themes.SaveTheme(ctx, s.cfg.Owner, st.Dark); err != nil {
		slog.Warn("saving theme preference failed", "owner", s.cfg.Owner, "error", err)
		s.Notify(MsgThemeFailed, ToastError, 0)
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

// Close cancels the pending generation and every toast timer. The state
// remains readable.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.pending = Handle{}
	clear(s.toasts)
	s.mu.Unlock()

	s.sched.Stop()
}
