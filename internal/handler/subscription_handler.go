package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"pinpoint-be/internal/pkg/logger"
	"pinpoint-be/internal/repository/specification"
	"pinpoint-be/internal/repository/unitofwork"
	"pinpoint-be/internal/service"
	internalWS "pinpoint-be/internal/websocket"
)

type SubscriptionHandler struct {
	subscription *service.SubscriptionService
	uowFactory   unitofwork.RepositoryFactory
	hub          *internalWS.Hub
	logger       logger.ILogger
}

func NewSubscriptionHandler(
	subscription *service.SubscriptionService,
	uowFactory unitofwork.RepositoryFactory,
	hub *internalWS.Hub,
	log logger.ILogger,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscription: subscription,
		uowFactory:   uowFactory,
		hub:          hub,
		logger:       log,
	}
}

// ServeWs handles websocket requests from the peer.
func (h *SubscriptionHandler) ServeWs(c *fiber.Ctx) error {
	sessionIDStr := c.Query("session_id")
	if sessionIDStr == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing session_id query parameter"})
	}

	sessionID, err := uuid.Parse(sessionIDStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session_id format"})
	}

	// Reject sockets for sessions that do not exist before upgrading.
	uow := h.uowFactory.NewUnitOfWork(c.UserContext())
	session, err := uow.SessionRepository().FindOne(c.UserContext(), specification.ByID{ID: sessionID})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if session == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
	}

	// Upgrade via Fiber WebSocket Middleware
	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("SubscriptionHandler", "Starting WebSocket session", map[string]interface{}{"session_id": sessionID})
			internalWS.ServeWs(h.hub, conn, sessionID, func(client *internalWS.Client) {
				// The fiber context is gone once the connection is
				// hijacked, push the initial snapshot on a fresh one.
				h.subscription.PushInitialSnapshot(context.Background(), client)
			})
			h.logger.Info("SubscriptionHandler", "WebSocket session ended", map[string]interface{}{"session_id": sessionID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// RegisterRoutes registers the subscription routes.
func (h *SubscriptionHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws", h.ServeWs)
}
