package handler

import (
	"net/http"

	"braincards/internal/middleware"
	"braincards/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// APIPrefix is the path prefix of every API route
const APIPrefix = "/api"

// Handler serves the category HTTP API
type Handler struct {
	categoryService *service.CategoryService
	metrics         *middleware.Metrics
	logger          *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(
	categoryService *service.CategoryService,
	metrics *middleware.Metrics,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		categoryService: categoryService,
		metrics:         metrics,
		logger:          logger,
	}
}

// Router builds the HTTP routing tree.
// Anything not matched below is answered with 404 {"message":"Not Found"}.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	if h.metrics != nil {
		r.Use(h.metrics.Middleware)
	}
	r.Use(middleware.Logger(h.logger))
	r.Use(middleware.Recovery(h.logger))
	r.Use(middleware.CORS)

	r.NotFound(h.handleNotFound)
	r.MethodNotAllowed(h.handleNotFound)

	if h.metrics != nil {
		r.Get("/metrics", h.metrics.Handler().ServeHTTP)
	}

	r.Route(APIPrefix, func(r chi.Router) {
		r.NotFound(h.handleNotFound)
		r.MethodNotAllowed(h.handleNotFound)

		r.Post("/category", h.handleCreateCategory)
		r.Get("/category", h.handleListCategories)
		r.Get("/category/*", h.handleGetCategory)
	})

	return r
}
