package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// handleCreateCategory handles POST /api/category
func (h *Handler) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.respondError(w, r, fmt.Errorf("failed to read request body: %w", err))
		return
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		h.respondError(w, r, fmt.Errorf("failed to parse request body: %w", err))
		return
	}

	// non-object bodies carry no fields and fail title validation
	input, _ := payload.(map[string]any)

	category, err := h.categoryService.Create(r.Context(), input)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	w.Header().Set("Access-Control-Expose-Headers", "Location")
	w.Header().Set("Location", categoryLocation(category.ID))
	respondJSON(w, r, http.StatusCreated, category)
}

// handleListCategories handles GET /api/category
func (h *Handler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.categoryService.List(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, summaries)
}

// handleGetCategory handles GET /api/category/{id}.
// The id is the last path segment, so /category/a/b looks up "b".
func (h *Handler) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	id := lastSegment(chi.URLParam(r, "*"))

	h.logger.Debug("Looking up category", zap.String("id", id))

	category, err := h.categoryService.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, category)
}

func lastSegment(path string) string {
	return path[strings.LastIndex(path, "/")+1:]
}

func categoryLocation(id string) string {
	return APIPrefix + "/category/" + id
}
