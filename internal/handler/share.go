package handler

import (
	"errors"
	"net/http"

	"github.com/vaultpass/passgen/internal/share"
)

// HandleShare handles GET /api/v1/share?url= requests.
func HandleShare(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	links, err := share.Build(q.Get("url"), q.Get("text"))
	if err != nil {
		if errors.Is(err, share.ErrInvalidURL) {
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, links)
}
