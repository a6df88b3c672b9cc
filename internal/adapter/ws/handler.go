package ws

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"orderdash/internal/adapter/logger"
	"orderdash/internal/app/realtime"
	"orderdash/internal/domain"
	"orderdash/internal/interfaces"
)

// Handler is the bidirectional entry adapter. It translates the websocket
// envelope protocol into registry, gate, mutation service and router calls,
// and always resolves a requested ack, success or failure.
type Handler struct {
	registry *realtime.Registry
	router   *realtime.Router
	service  interfaces.OrderService
	hub      *Hub
	logger   logger.Logger
	upgrader websocket.Upgrader
}

func NewHandler(registry *realtime.Registry, router *realtime.Router, service interfaces.OrderService, hub *Hub, lgr logger.Logger) *Handler {
	return &Handler{
		registry: registry,
		router:   router,
		service:  service,
		hub:      hub,
		logger:   lgr,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("ws_upgrade_failed", "Failed to upgrade connection", "", nil, err)
		return
	}

	id := interfaces.ConnID(uuid.NewString())
	c := &client{
		id:   id,
		conn: conn,
		send: make(chan outbound, sendBufferSize),
	}

	h.hub.add(c)
	h.registry.Connect(id)
	go c.writePump()

	h.logger.Debug("ws_connected", "Client connected", string(id), nil)

	defer func() {
		h.registry.Disconnect(id)
		h.hub.remove(id)
		conn.Close()
		h.logger.Debug("ws_disconnected", "Client disconnected", string(id), nil)
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msg inbound
		if err := json.Unmarshal(raw, &msg); err != nil {
			h.logger.Debug("ws_bad_message", "Discarding malformed message", string(id), nil)
			continue
		}

		if ack := h.handleMessage(r.Context(), id, msg); ack != nil {
			c.enqueue(*ack)
		}
	}
}

// handleMessage dispatches one inbound envelope and returns the ack to send
// back, or nil when the message carries no ack id or the event has no reply.
func (h *Handler) handleMessage(ctx context.Context, id interfaces.ConnID, msg inbound) *outbound {
	switch realtime.Operation(msg.Event) {
	case "join":
		h.handleJoin(id, msg)
		return nil
	case realtime.OpCreateOrder:
		return h.handleCreateOrder(ctx, msg)
	case realtime.OpUpdateOrderStatus:
		return h.handleUpdateStatus(ctx, id, msg)
	case realtime.OpGetAllOrders:
		return h.handleGetAllOrders(ctx, id, msg)
	case realtime.OpGetMyOrders:
		return h.handleGetMyOrders(ctx, msg)
	default:
		return ack(msg, errorAck{Success: false, Error: "unknown event"})
	}
}

func (h *Handler) handleJoin(id interfaces.ConnID, msg inbound) {
	var req joinRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		return
	}

	role := domain.Role(req.Role)
	if !h.registry.DeclareIdentity(id, req.UserID, role) {
		// Unrecognized role: no membership, no announcement.
		return
	}

	h.logger.Info("ws_joined", "User joined", string(id), map[string]interface{}{
		"user_id": req.UserID,
		"role":    req.Role,
	})
	h.router.UserConnected(req.UserID, role)
}

func (h *Handler) handleCreateOrder(ctx context.Context, msg inbound) *outbound {
	var req createOrderRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		return ack(msg, errorAck{Success: false, Error: "invalid payload"})
	}

	created, err := h.service.CreateOrder(ctx, interfaces.CreateOrderCommand{
		CustomerID:   req.CustomerID,
		CustomerName: req.CustomerName,
		Items:        req.Items,
	})
	if err != nil {
		return ack(msg, errorAck{Success: false, Error: err.Error()})
	}

	h.router.Publish(ctx, created, realtime.EventCreated)
	return ack(msg, orderAck{Success: true, Order: created})
}

func (h *Handler) handleUpdateStatus(ctx context.Context, id interfaces.ConnID, msg inbound) *outbound {
	if denied := h.authorize(id, realtime.OpUpdateOrderStatus); denied != nil {
		return ack(msg, *denied)
	}

	var req updateStatusRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		return ack(msg, errorAck{Success: false, Error: "invalid payload"})
	}

	updated, err := h.service.UpdateStatus(ctx, req.OrderID, req.Status)
	if err != nil {
		return ack(msg, errorAck{Success: false, Error: err.Error()})
	}

	h.router.Publish(ctx, updated, realtime.EventUpdated)
	return ack(msg, orderAck{Success: true, Order: updated})
}

func (h *Handler) handleGetAllOrders(ctx context.Context, id interfaces.ConnID, msg inbound) *outbound {
	if denied := h.authorize(id, realtime.OpGetAllOrders); denied != nil {
		return ack(msg, *denied)
	}

	orders, err := h.service.ListOrders(ctx, "")
	if err != nil {
		return ack(msg, errorAck{Success: false, Error: err.Error()})
	}

	return ack(msg, ordersAck{Success: true, Orders: orders})
}

func (h *Handler) handleGetMyOrders(ctx context.Context, msg inbound) *outbound {
	var req myOrdersRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		return ack(msg, errorAck{Success: false, Error: "invalid payload"})
	}

	orders, err := h.service.ListOrders(ctx, req.CustomerID)
	if err != nil {
		return ack(msg, errorAck{Success: false, Error: err.Error()})
	}

	return ack(msg, ordersAck{Success: true, Orders: orders})
}

// authorize resolves the connection's declared role and runs the gate. An
// undeclared connection carries the zero role, which the gate denies for
// privileged operations.
func (h *Handler) authorize(id interfaces.ConnID, op realtime.Operation) *errorAck {
	_, role, _ := h.registry.Identity(id)
	if err := realtime.Authorize(role, op); err != nil {
		return &errorAck{Success: false, Error: err.Error()}
	}
	return nil
}

func ack(msg inbound, data interface{}) *outbound {
	if msg.ID == 0 {
		return nil
	}
	return &outbound{Event: eventAck, ID: msg.ID, Data: data}
}
