package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vaultpass/passgen/internal/charset"
	"github.com/vaultpass/passgen/internal/crypto"
	"github.com/vaultpass/passgen/internal/model"
	"github.com/vaultpass/passgen/internal/report"
	"github.com/vaultpass/passgen/internal/session"
)

const (
	sweepInterval = 10 * time.Minute
	maxClientID   = 64
)

var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrUnknownAction      = errors.New("unknown action type")
	ErrUnknownClass       = errors.New("unknown character class")
	ErrLengthRequired     = errors.New("length is required")
	ErrToastIDRequired    = errors.New("toast_id is required")
	ErrClientIDTooLong    = errors.New("client_id must be at most 64 characters")
	ErrDarkRequired       = errors.New("dark is required")
	ErrThemesUnavailable  = errors.New("theme preferences are unavailable")
	ErrSessionSecretEmpty = errors.New("session secret is required")
)

// SessionConfig configures a SessionService.
type SessionConfig struct {
	Secret        string
	Expiry        time.Duration
	IdleTimeout   time.Duration
	GenerateDelay time.Duration
	ToastDuration time.Duration

	// Themes is optional; without it theme changes live only as long as
	// the session.
	Themes session.ThemeStore
	Source crypto.Source
}

type entry struct {
	sess     *session.Session
	owner    string
	lastSeen time.Time
	report   *report.Report
}

// SessionService keeps the server-side UI sessions, one per token.
type SessionService struct {
	cfg SessionConfig
	now func() time.Time

	mu       sync.Mutex
	sessions map[string]*entry

	stopOnce sync.Once
	stop     chan struct{}
}

// NewSessionService creates a SessionService and starts its idle sweeper.
// Call Shutdown to stop it.
func NewSessionService(cfg SessionConfig) (*SessionService, error) {
	if cfg.Secret == "" {
		return nil, ErrSessionSecretEmpty
	}
	if cfg.Expiry <= 0 {
		cfg.Expiry = 24 * time.Hour
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = sweepInterval
	}

	s := &SessionService{
		cfg:      cfg,
		now:      time.Now,
		sessions: make(map[string]*entry),
		stop:     make(chan struct{}),
	}
	go s.sweep()
	return s, nil
}

func (s *SessionService) sweep() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			if n := s.evictIdle(); n > 0 {
				slog.Info("evicted idle sessions", "count", n)
			}
		}
	}
}

func (s *SessionService) evictIdle() int {
	now := s.now()

	s.mu.Lock()
	var idle []*session.Session
	for id, e := range s.sessions {
		if now.Sub(e.lastSeen) > s.cfg.IdleTimeout {
			idle = append(idle, e.sess)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, sess := range idle {
		sess.Close()
	}
	return len(idle)
}

// Create opens a session and returns its token.
func (s *SessionService) Create(ctx context.Context, req model.CreateSessionRequest) (model.CreateSessionResponse, error) {
	if len(req.ClientID) > maxClientID {
		return model.CreateSessionResponse{}, ErrClientIDTooLong
	}

	id := uuid.NewString()
	owner := req.ClientID
	if owner == "" {
		owner = id
	}

	token, err := crypto.GenerateToken(id, s.cfg.Secret, s.cfg.Expiry)
	if err != nil {
		return model.CreateSessionResponse{}, fmt.Errorf("issue session token: %w", err)
	}

	sess := session.New(ctx, session.Config{
		Owner:         owner,
		GenerateDelay: s.cfg.GenerateDelay,
		ToastDuration: s.cfg.ToastDuration,
		DefaultDark:   req.Dark,
		Source:        s.cfg.Source,
		Themes:        s.cfg.Themes,
	})

	s.mu.Lock()
	s.sessions[id] = &entry{sess: sess, owner: owner, lastSeen: s.now()}
	s.mu.Unlock()

	slog.Debug("session created", "session_id", id)
	return model.CreateSessionResponse{
		Token: token,
		State: model.NewStateResponse(sess.State()),
	}, nil
}

func (s *SessionService) lookup(id string) (*entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	e.lastSeen = s.now()
	return e, nil
}

// State returns the current state of a session.
func (s *SessionService) State(id string) (session.State, error) {
	e, err := s.lookup(id)
	if err != nil {
		return session.State{}, err
	}
	return e.sess.State(), nil
}

// Apply performs one user action. Failures the UI reports through toasts
// or the inline error are not returned as errors.
func (s *SessionService) Apply(ctx context.Context, id string, req model.ActionRequest) (session.State, error) {
	e, err := s.lookup(id)
	if err != nil {
		return session.State{}, err
	}
	sess := e.sess

	switch req.Type {
	case model.ActionSetLength:
		if req.Length == nil {
			return session.State{}, ErrLengthRequired
		}
		return sess.Dispatch(session.SetLength{Length: *req.Length}), nil

	case model.ActionToggleClass:
		class, ok := charset.Parse(req.Class)
		if !ok {
			return session.State{}, ErrUnknownClass
		}
		return sess.Dispatch(session.ToggleClass{Class: class}), nil

	case model.ActionGenerate:
		if err := sess.Generate(); errors.Is(err, session.ErrClosed) {
			return session.State{}, ErrSessionNotFound
		}

	case model.ActionToggleVisibility:
		return sess.Dispatch(session.VisibilityToggled{}), nil

	case model.ActionToggleTheme:
		if err := sess.ToggleTheme(ctx); errors.Is(err, session.ErrClosed) {
			return session.State{}, ErrSessionNotFound
		}

	case model.ActionDismissToast:
		if req.ToastID == "" {
			return session.State{}, ErrToastIDRequired
		}
		return sess.Dismiss(req.ToastID), nil

	case model.ActionDismissAll:
		return sess.DismissAll(), nil

	case model.ActionDownload:
		rep, err := sess.Download(ctx)
		switch {
		case err == nil:
			s.mu.Lock()
			e.report = &rep
			s.mu.Unlock()
		case errors.Is(err, session.ErrClosed):
			return session.State{}, ErrSessionNotFound
		}

	default:
		return session.State{}, ErrUnknownAction
	}

	return sess.State(), nil
}

// Report returns the report of the last download, rendering one if the
// session has not downloaded yet.
func (s *SessionService) Report(ctx context.Context, id string) (report.Report, error) {
	e, err := s.lookup(id)
	if err != nil {
		return report.Report{}, err
	}

	s.mu.Lock()
	held := e.report
	s.mu.Unlock()
	if held != nil && held.Password == e.sess.State().Password {
		return *held, nil
	}

	rep, err := e.sess.Download(ctx)
	if err != nil {
		if errors.Is(err, session.ErrClosed) {
			return report.Report{}, ErrSessionNotFound
		}
		return report.Report{}, err
	}

	s.mu.Lock()
	e.report = &rep
	s.mu.Unlock()
	return rep, nil
}

// Theme reads the stored theme preference of the session owner.
func (s *SessionService) Theme(ctx context.Context, id string) (model.ThemeResponse, error) {
	if s.cfg.Themes == nil {
		return model.ThemeResponse{}, ErrThemesUnavailable
	}
	e, err := s.lookup(id)
	if err != nil {
		return model.ThemeResponse{}, err
	}

	dark, found, err := s.cfg.Themes.LoadTheme(ctx, e.owner)
	if err != nil {
		return model.ThemeResponse{}, fmt.Errorf("load theme: %w", err)
	}
	return model.ThemeResponse{Dark: dark, Found: found}, nil
}

// SetTheme selects a theme for the session and stores it.
func (s *SessionService) SetTheme(ctx context.Context, id string, req model.ThemeRequest) (session.State, error) {
	if s.cfg.Themes == nil {
		return session.State{}, ErrThemesUnavailable
	}
	if req.Dark == nil {
		return session.State{}, ErrDarkRequired
	}
	e, err := s.lookup(id)
	if err != nil {
		return session.State{}, err
	}

	if err := e.sess.SetTheme(ctx, *req.Dark); err != nil {
		if errors.Is(err, session.ErrClosed) {
			return session.State{}, ErrSessionNotFound
		}
		return session.State{}, err
	}
	return e.sess.State(), nil
}

// Close ends a session and cancels its pending work.
func (s *SessionService) Close(id string) error {
	s.mu.Lock()
	e, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	e.sess.Close()
	return nil
}

// Len is the number of open sessions.
func (s *SessionService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Shutdown stops the sweeper and closes every session.
func (s *SessionService) Shutdown() {
	s.stopOnce.Do(func() { close(s.stop) })

	s.mu.Lock()
	all := s.sessions
	s.sessions = make(map[string]*entry)
	s.mu.Unlock()

	for _, e := range all {
		e.sess.Close()
	}
}
