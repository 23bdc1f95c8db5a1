package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Danthemainman1/debate-scheduler/scheduling"
	"github.com/Danthemainman1/debate-scheduler/services"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict to the dashboard origin once it has a fixed host.
		return true
	},
}

type WebSocketHandler struct {
	hub               *scheduling.Hub
	tournamentService services.TournamentService
	logger            *slog.Logger
}

func NewWebSocketHandler(hub *scheduling.Hub, ts services.TournamentService, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub:               hub,
		tournamentService: ts,
		logger:            logger,
	}
}

// ServeWs upgrades GET /ws/tournaments/{tournamentID} to a websocket and
// joins the client to the tournament's room.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := urlIntParam(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	if _, err := h.tournamentService.Get(r.Context(), tournamentID); err != nil {
		mapServiceErrorToHTTP(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client.
		h.logger.Error("websocket upgrade failed",
			slog.Int("tournament_id", tournamentID), slog.Any("error", err))
		return
	}

	client := scheduling.NewClient(h.hub, conn, scheduling.RoomID(tournamentID))
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
