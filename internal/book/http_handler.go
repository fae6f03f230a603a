package book

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"bookshelf/internal/httpx"
)

const (
	defaultListOffset = 0
	defaultListLimit  = 20
)

// HTTPHandler translates HTTP requests into service calls. All domain
// logic lives in the service; handlers only parse and render.
type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// Register mounts the book routes on mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /books", h.Create)
	mux.HandleFunc("GET /books", h.List)
	mux.HandleFunc("GET /books/{id}", h.Get)
	mux.HandleFunc("PUT /books/{id}", h.Update)
	mux.HandleFunc("DELETE /books/{id}", h.Delete)
}

// Create handles POST /books.
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var data CreateBook
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		httpx.JSONMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.service.Create(r.Context(), data)
	if err != nil {
		httpx.JSONError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, created)
}

// Get handles GET /books/{id}.
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	found, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.JSONError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, found)
}

// List handles GET /books. Unparsable offset/limit values fall back to
// their defaults; the service clamps out-of-range values.
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	offset := defaultListOffset
	if v, err := strconv.Atoi(query.Get("offset")); err == nil {
		offset = v
	}
	limit := defaultListLimit
	if v, err := strconv.Atoi(query.Get("limit")); err == nil {
		limit = v
	}

	books, err := h.service.List(r.Context(), offset, limit)
	if err != nil {
		httpx.JSONError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, books)
}

// Update handles PUT /books/{id}.
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var data UpdateBook
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		httpx.JSONMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.service.Update(r.Context(), id, data)
	if err != nil {
		httpx.JSONError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /books/{id}.
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.JSONError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httpx.JSONMessage(w, http.StatusBadRequest, "invalid book id")
		return uuid.Nil, false
	}
	return id, true
}
