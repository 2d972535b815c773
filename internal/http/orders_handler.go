package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/fjod/go_meals/internal/domain"
	"github.com/fjod/go_meals/internal/order"
	"github.com/go-chi/chi/v5"
)

type OrdersHandler struct {
	service *order.Service
}

func NewOrdersHandler(service *order.Service) *OrdersHandler {
	return &OrdersHandler{service: service}
}

// CreateOrder validates and persists a submitted order.
func (h *OrdersHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var env order.Envelope
	if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			respondMessage(w, http.StatusRequestEntityTooLarge, "Request body too large.")
			return
		}
		respondMessage(w, http.StatusBadRequest, "Missing data.")
		return
	}

	_, err := h.service.Submit(r.Context(), &env)
	if err != nil {
		var validationErr *order.ValidationError
		if errors.As(err, &validationErr) {
			respondMessage(w, http.StatusBadRequest, validationErr.Message)
			return
		}
		log.Printf("request %s: failed to store order: %v", getRequestID(r.Context()), err)
		respondMessage(w, http.StatusInternalServerError, "Failed to store order.")
		return
	}

	respondMessage(w, http.StatusCreated, "Order created!")
}

// ListOrders returns all accepted orders in acceptance order.
func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.List(r.Context())
	if err != nil {
		log.Printf("request %s: failed to list orders: %v", getRequestID(r.Context()), err)
		respondMessage(w, http.StatusInternalServerError, "Failed to load orders.")
		return
	}

	if orders == nil {
		orders = []*domain.Order{}
	}
	respondJSON(w, http.StatusOK, orders)
}

func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "order_id")

	o, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			respondMessage(w, http.StatusNotFound, "Not found")
			return
		}
		log.Printf("request %s: failed to get order %s: %v", getRequestID(r.Context()), id, err)
		respondMessage(w, http.StatusInternalServerError, "Failed to load order.")
		return
	}

	respondJSON(w, http.StatusOK, o)
}
