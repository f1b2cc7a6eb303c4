package core

// sendChallenge delivers an invitation to a present target. Absent targets
// are dropped without telling the sender.
func (h *Hub) sendChallenge(c *Client, cmd *Command) {
	from := cmd.Profile
	if uid := c.UID(); uid != "" {
		if _, profile, ok := h.presence.Lookup(uid); ok {
			from = profile
		}
	}

	targetConn, _, ok := h.presence.Lookup(cmd.TargetUID)
	if !ok || targetConn == c.ID {
		h.log.Debug().Str("conn_id", c.ID).Str("target_uid", cmd.TargetUID).Msg("challenge target not present")
		return
	}

	h.router.SendTo(targetConn, &Event{
		Kind: EventChallengeReceived,
		Challenge: &Challenge{
			From:           from,
			ToUID:          cmd.TargetUID,
			RatingEligible: cmd.RatingEligible,
		},
	})
}

// acceptChallenge opens a room for the challenger (white) and c (black).
func (h *Hub) acceptChallenge(c *Client, cmd *Command) error {
	challengerConn, challengerProfile, ok := h.presence.Lookup(cmd.FromUID)
	if !ok || challengerConn == c.ID {
		h.log.Debug().Str("conn_id", c.ID).Str("from_uid", cmd.FromUID).Msg("challenger no longer present")
		return nil
	}
	challenger, ok := h.router.Get(challengerConn)
	if !ok {
		return nil
	}

	accepterUID := c.UID()
	room, err := h.rooms.CreateMatch(
		MatchSide{ConnID: challengerConn, UID: cmd.FromUID, Rating: challengerProfile.Rating},
		MatchSide{ConnID: c.ID, UID: accepterUID, Rating: h.presence.RatingOf(accepterUID)},
		cmd.RatingEligible,
	)
	if err != nil {
		return err
	}
	h.seat(challenger, room)
	h.seat(c, room)
	h.metrics.RoomsLive(h.rooms.Len())

	h.router.SendTo(challengerConn, &Event{
		Kind:           EventChallengeAccepted,
		Room:           room.ID,
		Color:          ColorWhite,
		RatingEligible: cmd.RatingEligible,
	})
	h.router.SendTo(c.ID, &Event{
		Kind:           EventChallengeAccepted,
		Room:           room.ID,
		Color:          ColorBlack,
		RatingEligible: cmd.RatingEligible,
	})
	h.log.Info().Str("room", room.ID).Str("challenger_uid", cmd.FromUID).Str("accepter_uid", accepterUID).
		Bool("rated", cmd.RatingEligible).Msg("challenge accepted")
	return nil
}

func (h *Hub) rejectChallenge(c *Client, cmd *Command) {
	challengerConn, _, ok := h.presence.Lookup(cmd.FromUID)
	if !ok {
		return
	}
	h.router.SendTo(challengerConn, &Event{Kind: EventChallengeRejected, UID: c.UID()})
}
