package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/chessmate-server/internal/core"
)

// RoomHandlers provides read-only HTTP views over live rooms.
type RoomHandlers struct {
	hub *core.Hub
	log *zerolog.Logger
}

// NewRoomHandlers creates a new room handlers instance.
func NewRoomHandlers(hub *core.Hub, logger *zerolog.Logger) *RoomHandlers {
	return &RoomHandlers{
		hub: hub,
		log: logger,
	}
}

// RoomResponse represents a room in API responses.
type RoomResponse struct {
	ID             string `json:"id"`
	Status         string `json:"status"`
	Players        int    `json:"players"`
	Position       string `json:"position"`
	Moves          int    `json:"moves"`
	RatingEligible bool   `json:"ratingEligible"`
}

// GetRoom reports whether a room exists and what stage it is in, so a client
// can check a shared link before opening a socket.
// GET /api/rooms/:id
func (h *RoomHandlers) GetRoom(c *gin.Context) {
	id := c.Param("id")
	room, ok := h.hub.Rooms().Get(id)
	if !ok {
		h.log.Debug().Str("room", id).Msg("room lookup miss")
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "room not found"})
		return
	}

	snap := room.Snapshot()
	c.JSON(http.StatusOK, RoomResponse{
		ID:             room.ID,
		Status:         string(room.Status()),
		Players:        len(room.Players()),
		Position:       snap.Position,
		Moves:          len(snap.History) - 1,
		RatingEligible: room.RatingEligible(),
	})
}
