package order

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cafekiosk/cafekiosk-backend/internal/modules/stock"
)

// Handler exposes order HTTP endpoints.
type Handler struct {
	service    Service
	statistics StatisticsService
}

func NewHandler(service Service, statistics StatisticsService) *Handler {
	return &Handler{service: service, statistics: statistics}
}

func (h *Handler) RegisterRoutes(r *chi.Mux, requireAuth func(http.Handler) http.Handler) {
	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Post("/new", h.createOrder)                                 // POST  /api/v1/orders/new
		r.Get("/{id}", h.getOrder)                                    // GET   /api/v1/orders/{id}
		r.With(requireAuth).Patch("/{id}/status", h.updateStatus)     // PATCH /api/v1/orders/{id}/status
		r.With(requireAuth).Post("/statistics/mail", h.sendStatistics) // POST /api/v1/orders/statistics/mail
	})
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	o, err := h.service.CreateOrder(r.Context(), req, time.Now())
	if err != nil {
		code := http.StatusInternalServerError
		switch {
		case errors.Is(err, ErrProductNotFound):
			code = http.StatusNotFound
		case errors.Is(err, stock.ErrInsufficient):
			code = http.StatusConflict
		case strings.Contains(err.Error(), "must not be empty"):
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, o)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	o, err := h.service.GetOrder(r.Context(), id)
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	o, err := h.service.UpdateStatus(r.Context(), id, req)
	if err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "cannot transition") {
			code = http.StatusUnprocessableEntity
		} else if strings.Contains(err.Error(), "not found") {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, o)
}

// statisticsMailRequest is the payload for triggering the daily revenue mail.
type statisticsMailRequest struct {
	Date string `json:"date"` // YYYY-MM-DD
	To   string `json:"to"`
}

func (h *Handler) sendStatistics(w http.ResponseWriter, r *http.Request) {
	var req statisticsMailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "date must be YYYY-MM-DD"})
		return
	}
	if req.To == "" {
		respond(w, http.StatusBadRequest, map[string]string{"error": "to is required"})
		return
	}

	sent, err := h.statistics.SendOrderStatisticsMail(r.Context(), date, req.To)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]bool{"sent": sent})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
