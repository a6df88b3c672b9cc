package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"orderdash/internal/adapter/logger"
	"orderdash/internal/app/realtime"
	"orderdash/internal/domain"
	"orderdash/internal/interfaces"
)

// OrderHandler is the request/response entry adapter. It calls the mutation
// service directly, with no authorization gate: the REST surface is the
// public API and carries none of the channel's role checks.
type OrderHandler struct {
	service interfaces.OrderService
	router  *realtime.Router
	logger  logger.Logger
}

func NewOrderHandler(service interfaces.OrderService, router *realtime.Router, logger logger.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		router:  router,
		logger:  logger,
	}
}

func (h *OrderHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/orders", h.ListOrders)
	mux.HandleFunc("POST /api/orders", h.CreateOrder)
	mux.HandleFunc("GET /api/orders/{id}", h.GetOrder)
	mux.HandleFunc("PUT /api/orders/{id}", h.UpdateOrder)
	mux.HandleFunc("DELETE /api/orders/{id}", h.DeleteOrder)
}

type CreateOrderRequest struct {
	CustomerID   string `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	Items        string `json:"items"`
}

type UpdateOrderRequest struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	customerID := r.URL.Query().Get("customer_id")

	orders, err := h.service.ListOrders(r.Context(), customerID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if orders == nil {
		orders = []*domain.Order{}
	}

	respondJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}

	order, err := h.service.GetOrder(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	created, err := h.service.CreateOrder(r.Context(), interfaces.CreateOrderCommand{
		CustomerID:   req.CustomerID,
		CustomerName: req.CustomerName,
		Items:        req.Items,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.router.Publish(r.Context(), created, realtime.EventCreated)
	respondJSON(w, http.StatusCreated, created)
}

func (h *OrderHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}

	var req UpdateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	updated, err := h.service.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.router.Publish(r.Context(), updated, realtime.EventUpdated)
	respondJSON(w, http.StatusOK, updated)
}

func (h *OrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteOrder(r.Context(), id); err != nil {
		h.respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Order deleted successfully"})
}

func orderID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid order id"})
		return 0, false
	}
	return id, true
}

func (h *OrderHandler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		respondJSON(w, http.StatusNotFound, ErrorResponse{Error: "Order not found"})
	default:
		h.logger.Error("store_error", "Order store operation failed", "", nil, err)
		respondJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}

func respondJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}
