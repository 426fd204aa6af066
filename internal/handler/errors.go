package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"socialblog/internal/repository"
)

func (h *Handlers) notFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, "404.html", nil)
}

func (h *Handlers) serverError(w http.ResponseWriter, r *http.Request, err error) {
	if h.Logger != nil {
		h.Logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
	}

	body, renderErr := h.renderBytes(r, "500.html", nil)
	if renderErr != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeHTML(w, http.StatusInternalServerError, body)
}

// handleError maps a missing record to the 404 page and everything
// else to the generic 500 page.
func (h *Handlers) handleError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		h.notFound(w, r)
		return
	}
	h.serverError(w, r, err)
}

// NotFound backs the router's catch-all for unknown paths.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	h.notFound(w, r)
}
