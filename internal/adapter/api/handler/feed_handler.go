package handler

import (
	"net/http"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	ws "reliefnet/internal/infrastructure/websocket"
	"reliefnet/pkg/errors"
	"reliefnet/pkg/logger"
	"reliefnet/pkg/response"
)

type FeedHandler struct {
	manager  *ws.Manager
	upgrader gorillaws.Upgrader
}

// NewFeedHandler only upgrades requests from allowedOrigins. Requests
// without an Origin header (non-browser clients) are let through.
func NewFeedHandler(manager *ws.Manager, allowedOrigins []string) *FeedHandler {
	origins := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		origins[origin] = struct{}{}
	}

	return &FeedHandler{
		manager: manager,
		upgrader: gorillaws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				_, ok := origins[origin]
				return ok
			},
		},
	}
}

func (h *FeedHandler) Subscribe(c echo.Context) error {
	userID, ok := c.Get("uid").(string)
	if !ok || userID == "" {
		return response.Error(c, errors.Unauthorized("Authentication required", nil))
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// The upgrader has already written the HTTP error
		logger.Warn("feed upgrade failed for %s: %v", userID, err)
		return nil
	}

	client := ws.NewClient(userID, conn)
	select {
	case h.manager.Register <- client:
	case <-h.manager.Done():
		conn.Close()
		return nil
	}

	go client.ReadPump(h.manager)
	go client.WritePump()

	return nil
}
