package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/ws"
	"github.com/gorilla/websocket"
)

// LiveHandler streams attendance events to admins over a websocket
type LiveHandler interface {
	GetLiveToken(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type LiveTokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

type liveHandlerImpl struct {
	hub        *ws.Hub
	jwtService jwt.Service
	upgrader   websocket.Upgrader
}

func NewLiveHandler(hub *ws.Hub, jwtService jwt.Service, allowedOrigins []string) LiveHandler {
	return &liveHandlerImpl{
		hub:        hub,
		jwtService: jwtService,
		upgrader:   ws.NewUpgrader(allowedOrigins),
	}
}

// GetLiveToken generates a short-lived token for the live-feed websocket
func (h *liveHandlerImpl) GetLiveToken(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	token, expiresIn, err := h.jwtService.GenerateLiveToken(userID)
	if err != nil {
		slog.Error("GenerateLiveToken error", "error", err)
		response.InternalServerError(w, "Failed to generate live token")
		return
	}

	response.Success(w, LiveTokenResponse{
		Token:     token,
		ExpiresIn: expiresIn,
	})
}

// Stream upgrades the connection and forwards hub events until the peer disconnects
func (h *liveHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	// Browsers cannot set headers on a websocket handshake
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		response.Unauthorized(w, "Missing token")
		return
	}

	userID, err := h.jwtService.ValidateLiveToken(tokenStr)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		slog.Warn("Live-feed upgrade failed", "user_id", userID, "error", err)
		return
	}

	client := ws.NewClient(h.hub, userID, conn)
	slog.Info("Live-feed connected", "user_id", userID, "subscribers", h.hub.TotalSubscribers())

	go client.WritePump()
	client.ReadPump()
}
