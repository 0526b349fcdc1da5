package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/OutOfFlux/newinoutboard/internal/hub"
	"github.com/OutOfFlux/newinoutboard/internal/service"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// WSHandler upgrades observer connections and hands them to the hub.
type WSHandler struct {
	hub      *hub.Hub
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

func NewWSHandler(h *hub.Hub, logger *zap.Logger) *WSHandler {
	return &WSHandler{
		hub: h,
		upgrader: websocket.Upgrader{
			// The board is served same-origin; the cookie gate covers admin
			// actions, the push channel itself is read-only.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// Serve runs the connect-time handshake: upgrade, register (which queues
// the init snapshot ahead of any live event), then block reading until the
// peer goes away.
func (h *WSHandler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", zap.Error(err))
		return
	}
	client, err := h.hub.Register(r.Context(), conn)
	if err != nil {
		h.logger.Error("observer registration failed", zap.Error(err))
		_ = conn.Close()
		return
	}
	client.ReadLoop(h.hub)
}

// Snapshot builds the hub's init payload from a fresh read of both lists.
func Snapshot(board *service.BoardService, vehicles *service.VehicleService) hub.SnapshotFunc {
	return func(ctx context.Context) ([]byte, error) {
		employees, err := board.ListEmployees(ctx)
		if err != nil {
			return nil, err
		}
		pool, err := vehicles.ListVehicles(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(hub.NewInitMessage(employees, pool))
	}
}
