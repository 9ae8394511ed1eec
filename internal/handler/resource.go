package handler

import (
	"log/slog"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"

	"mediquip/internal/domain"
	"mediquip/internal/httputil"
	"mediquip/internal/service"
	"mediquip/internal/service/access"
)

// ResourceHandler is the uniform HTTP surface over one entity service.
// Every read and mutation resolves an access strategy for the caller
// first; the handler itself carries no per-role logic.
type ResourceHandler[T any] struct {
	svc    service.Resource[T]
	logger *slog.Logger
}

// NewResourceHandler creates a handler over the given entity service.
func NewResourceHandler[T any](svc service.Resource[T], logger *slog.Logger) *ResourceHandler[T] {
	return &ResourceHandler[T]{
		svc:    svc,
		logger: logger,
	}
}

// Register mounts the handler's routes under /api/<path>.
func Register[T any](mux *http.ServeMux, path string, h *ResourceHandler[T]) {
	mux.HandleFunc("GET /api/"+path, h.List)
	mux.HandleFunc("POST /api/"+path, h.Create)
	mux.HandleFunc("GET /api/"+path+"/{id}", h.Get)
	mux.HandleFunc("PATCH /api/"+path+"/{id}", h.Update)
	mux.HandleFunc("DELETE /api/"+path+"/{id}", h.Delete)
}

func (h *ResourceHandler[T]) strategy(r *http.Request) (access.Strategy[T], error) {
	user, err := httputil.UserFrom(r.Context())
	if err != nil {
		return nil, err
	}
	return access.New(user, h.svc)
}

// List handles GET /api/<collection>
func (h *ResourceHandler[T]) List(w http.ResponseWriter, r *http.Request) {
	strat, err := h.strategy(r)
	if err != nil {
		httputil.RespondDomainError(w, err)
		return
	}

	page, err := strat.GetAll(r.Context(), httputil.ParseFilters(r), httputil.ParsePage(r))
	if err != nil {
		httputil.RespondDomainError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, page)
}

// Get handles GET /api/<collection>/{id}
func (h *ResourceHandler[T]) Get(w http.ResponseWriter, r *http.Request) {
	strat, err := h.strategy(r)
	if err != nil {
		httputil.RespondDomainError(w, err)
		return
	}

	doc, err := strat.GetOne(r.Context(), r.PathValue("id"))
	if err != nil {
		httputil.RespondDomainError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, doc)
}

// Create handles POST /api/<collection>
func (h *ResourceHandler[T]) Create(w http.ResponseWriter, r *http.Request) {
	if _, err := h.strategy(r); err != nil {
		httputil.RespondDomainError(w, err)
		return
	}

	var doc T
	if err := httputil.ParseJSON(w, r, &doc); err != nil {
		httputil.RespondDomainError(w, &domain.ValidationError{Message: err.Error()})
		return
	}

	created, err := h.svc.Create(r.Context(), &doc)
	if err != nil {
		httputil.RespondDomainError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, created)
}

// Update handles PATCH /api/<collection>/{id}
func (h *ResourceHandler[T]) Update(w http.ResponseWriter, r *http.Request) {
	strat, err := h.strategy(r)
	if err != nil {
		httputil.RespondDomainError(w, err)
		return
	}

	id := r.PathValue("id")
	allowed, err := strat.CanUpdate(r.Context(), id)
	if err != nil {
		httputil.RespondDomainError(w, err)
		return
	}
	if !allowed {
		httputil.RespondDomainError(w, &domain.ForbiddenError{Message: "update not permitted"})
		return
	}

	var changes bson.M
	if err := httputil.ParseJSON(w, r, &changes); err != nil {
		httputil.RespondDomainError(w, &domain.ValidationError{Message: err.Error()})
		return
	}

	doc, err := h.svc.Update(r.Context(), id, changes)
	if err != nil {
		httputil.RespondDomainError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, doc)
}

// Delete handles DELETE /api/<collection>/{id}
func (h *ResourceHandler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	strat, err := h.strategy(r)
	if err != nil {
		httputil.RespondDomainError(w, err)
		return
	}

	id := r.PathValue("id")
	allowed, err := strat.CanDelete(r.Context(), id)
	if err != nil {
		httputil.RespondDomainError(w, err)
		return
	}
	if !allowed {
		httputil.RespondDomainError(w, &domain.ForbiddenError{Message: "delete not permitted"})
		return
	}

	if _, err := h.svc.Delete(r.Context(), id); err != nil {
		httputil.RespondDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
