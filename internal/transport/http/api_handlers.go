package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/chessmate-server/internal/core"
	"github.com/vovakirdan/chessmate-server/internal/proto"
)

// APIHandlers provides read-only HTTP views over presence.
type APIHandlers struct {
	hub *core.Hub
	log *zerolog.Logger
}

// NewAPIHandlers creates a new API handlers instance.
func NewAPIHandlers(hub *core.Hub, logger *zerolog.Logger) *APIHandlers {
	return &APIHandlers{
		hub: hub,
		log: logger,
	}
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RosterResponse lists the identified users.
type RosterResponse struct {
	Users []proto.UserProfile `json:"users"`
}

// Roster returns the same roster that is pushed over the socket.
// GET /api/roster
func (h *APIHandlers) Roster(c *gin.Context) {
	roster := h.hub.Presence().Roster()
	users := make([]proto.UserProfile, 0, len(roster))
	for _, p := range roster {
		users = append(users, profileToProto(p))
	}
	c.JSON(http.StatusOK, RosterResponse{Users: users})
}
