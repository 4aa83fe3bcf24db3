package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/vaultpass/passgen/internal/middleware"
	"github.com/vaultpass/passgen/internal/model"
	"github.com/vaultpass/passgen/internal/report"
	"github.com/vaultpass/passgen/internal/service"
	"github.com/vaultpass/passgen/internal/session"
)

// SessionHandler handles HTTP requests for server-side UI sessions.
type SessionHandler struct {
	service *service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(svc *service.SessionService) *SessionHandler {
	return &SessionHandler{service: svc}
}

// HandleCreate handles POST /api/v1/sessions requests.
func (h *SessionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req model.CreateSessionRequest
	if !decodeOptionalBody(w, r, &req) {
		return
	}

	resp, err := h.service.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrClientIDTooLong) {
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleState handles GET /api/v1/session requests.
func (h *SessionHandler) HandleState(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	st, err := h.service.State(id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, model.NewStateResponse(st))
}

// HandleAction handles POST /api/v1/session/actions requests.
func (h *SessionHandler) HandleAction(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	var req model.ActionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	st, err := h.service.Apply(r.Context(), id, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, model.NewStateResponse(st))
}

// HandleReport handles GET /api/v1/session/report requests. The report is
// served as a plain text attachment.
func (h *SessionHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	rep, err := h.service.Report(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	body := rep.Bytes()
	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+rep.Filename()+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// HandleClose handles DELETE /api/v1/session requests.
func (h *SessionHandler) HandleClose(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	if err := h.service.Close(id); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleGetTheme handles GET /api/v1/session/theme requests.
func (h *SessionHandler) HandleGetTheme(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	resp, err := h.service.Theme(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandlePutTheme handles PUT /api/v1/session/theme requests.
func (h *SessionHandler) HandlePutTheme(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	var req model.ThemeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	st, err := h.service.SetTheme(r.Context(), id, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, model.NewStateResponse(st))
}

func (h *SessionHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, service.ErrUnknownAction),
		errors.Is(err, service.ErrUnknownClass),
		errors.Is(err, service.ErrLengthRequired),
		errors.Is(err, service.ErrToastIDRequired),
		errors.Is(err, service.ErrDarkRequired):
		writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, session.ErrNoPassword):
		writeJSON(w, http.StatusConflict, errorResponse(err.Error()))
	case errors.Is(err, service.ErrThemesUnavailable):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse(err.Error()))
	default:
		internalError(w, r, err)
	}
}

func sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := middleware.SessionIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
	}
	return id, ok
}
