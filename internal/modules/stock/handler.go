package stock

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler exposes the administrative stock endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux, requireAuth func(http.Handler) http.Handler) {
	r.Route("/api/v1/stocks", func(r chi.Router) {
		r.With(requireAuth).Put("/{productNumber}", h.upsertStock) // PUT /api/v1/stocks/{productNumber}
		r.Get("/{productNumber}", h.getStock)                      // GET /api/v1/stocks/{productNumber}
	})
}

func (h *Handler) upsertStock(w http.ResponseWriter, r *http.Request) {
	productNumber := chi.URLParam(r, "productNumber")
	var req UpsertStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	s, err := h.service.UpsertStock(r.Context(), productNumber, req.Quantity)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, s)
}

func (h *Handler) getStock(w http.ResponseWriter, r *http.Request) {
	productNumber := chi.URLParam(r, "productNumber")
	s, err := h.service.GetStock(r.Context(), productNumber)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, ErrNotFound) {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, s)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
