package handler

import (
	"errors"
	"net/http"

	"braincards/internal/service"

	"github.com/go-chi/render"
	"go.uber.org/zap"
)

const (
	msgNotFound    = "Not Found"
	msgServerError = "Server Error"
)

func respondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

// respondError writes an *service.APIError with its own status and payload;
// every other error becomes a logged 500
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *service.APIError
	if errors.As(err, &apiErr) {
		h.logger.Info("Request rejected",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", apiErr.Status),
			zap.Error(err),
		)
		respondJSON(w, r, apiErr.Status, apiErr.Payload)
		return
	}

	h.logger.Error("Request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	respondJSON(w, r, http.StatusInternalServerError, service.Message{Message: msgServerError})
}

func (h *Handler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusNotFound, service.Message{Message: msgNotFound})
}
