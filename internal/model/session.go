package model

import (
	"github.com/vaultpass/passgen/internal/charset"
	"github.com/vaultpass/passgen/internal/session"
	"github.com/vaultpass/passgen/internal/strength"
)

// Action types accepted by POST /api/v1/session/actions.
const (
	ActionSetLength        = "set_length"
	ActionToggleClass      = "toggle_class"
	ActionGenerate         = "generate"
	ActionToggleVisibility = "toggle_visibility"
	ActionToggleTheme      = "toggle_theme"
	ActionDismissToast     = "dismiss_toast"
	ActionDismissAll       = "dismiss_all"
	ActionDownload         = "download"
)

// ActionRequest is one user interaction with a session.
type ActionRequest struct {
	Type    string `json:"type"`
	Length  *int   `json:"length,omitempty"`
	Class   string `json:"class,omitempty"`
	ToastID string `json:"toast_id,omitempty"`
}

// OptionsResponse mirrors the generator options of a session.
type OptionsResponse struct {
	Length    int  `json:"length"`
	Uppercase bool `json:"uppercase"`
	Lowercase bool `json:"lowercase"`
	Numbers   bool `json:"numbers"`
	Symbols   bool `json:"symbols"`
}

// ToastResponse is a notification as seen by the client.
type ToastResponse struct {
	ID         string `json:"id"`
	Message    string `json:"message"`
	Kind       string `json:"kind"`
	DurationMS int64  `json:"duration_ms,omitempty"`
}

// StateResponse is the view state of a session.
type StateResponse struct {
	Options    OptionsResponse     `json:"options"`
	Password   string              `json:"password"`
	Strength   strength.Assessment `json:"strength"`
	Generating bool                `json:"generating"`
	Visible    bool                `json:"visible"`
	Dark       bool                `json:"dark"`
	Error      string              `json:"error,omitempty"`
	Toasts     []ToastResponse     `json:"toasts"`
	Version    uint64              `json:"version"`
}

// CreateSessionRequest opens a session. ClientID keys the stored theme
// preference across sessions; Dark is the client's preferred scheme when
// nothing is stored.
type CreateSessionRequest struct {
	ClientID string `json:"client_id"`
	Dark     bool   `json:"dark"`
}

// CreateSessionResponse is returned when a session is opened.
type CreateSessionResponse struct {
	Token string        `json:"token"`
	State StateResponse `json:"state"`
}

// ThemeRequest sets the theme of a session.
type ThemeRequest struct {
	Dark *bool `json:"dark"`
}

// ThemeResponse reports the stored theme of a session.
type ThemeResponse struct {
	Dark  bool `json:"dark"`
	Found bool `json:"found"`
}

// NewStateResponse converts a session snapshot for the wire.
func NewStateResponse(st session.State) StateResponse {
	classes := st.Options.Classes
	resp := StateResponse{
		Options: OptionsResponse{
			Length:    st.Options.Length,
			Uppercase: classes.Has(charset.Uppercase),
			Lowercase: classes.Has(charset.Lowercase),
			Numbers:   classes.Has(charset.Digits),
			Symbols:   classes.Has(charset.Symbols),
		},
		Password:   st.Password,
		Strength:   st.Assessment,
		Generating: st.Generating,
		Visible:    st.Visible,
		Dark:       st.Dark,
		Toasts:     make([]ToastResponse, 0, len(st.Toasts)),
		Version:    st.Version,
	}
	if st.Err != nil {
		resp.Error = st.Err.Error()
	}
	for _, t := range st.Toasts {
		resp.Toasts = append(resp.Toasts, ToastResponse{
			ID:         t.ID,
			Message:    t.Message,
			Kind:       string(t.Kind),
			DurationMS: t.Duration.Milliseconds(),
		})
	}
	return resp
}
