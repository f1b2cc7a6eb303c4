package core

// matchConcluded rates a finished game once. Reports for unrated rooms and
// repeated reports for the same game are ignored.
func (h *Hub) matchConcluded(c *Client, cmd *Command) error {
	room, err := h.room(cmd.Room)
	if err != nil {
		return err
	}
	outcomes, ok, err := room.Conclude(c.ID, cmd.WinnerUID, cmd.IsDraw)
	if err != nil {
		return err
	}
	if !ok {
		h.log.Debug().Str("room", room.ID).Str("conn_id", c.ID).Msg("match report ignored")
		return nil
	}

	first, second := outcomes[0], outcomes[1]
	newFirst, newSecond := RateMatch(h.ratingOf(first.Seat), h.ratingOf(second.Seat), first.Score)

	h.applyRating(room, first.Seat, newFirst)
	h.applyRating(room, second.Seat, newSecond)
	h.broadcastRoster()
	h.metrics.RatingApplied()

	h.log.Info().Str("room", room.ID).
		Str("first_uid", first.Seat.UID).Int("first_rating", newFirst).
		Str("second_uid", second.Seat.UID).Int("second_rating", newSecond).
		Msg("ratings updated")
	return nil
}

// ratingOf prefers the live presence rating and falls back to the rating the
// seat was opened with, so a player who already left is still rated fairly.
func (h *Hub) ratingOf(seat Seat) int {
	if seat.UID != "" {
		if _, profile, ok := h.presence.Lookup(seat.UID); ok {
			return profile.Rating
		}
	}
	if seat.Rating > 0 {
		return seat.Rating
	}
	return h.presence.RatingOf(seat.UID)
}

// applyRating stores the rating and tells the player's current connection.
func (h *Hub) applyRating(room *Room, seat Seat, rating int) {
	target := seat.ConnID
	if seat.UID != "" {
		room.RecordRating(seat.UID, rating)
		h.presence.UpdateRating(seat.UID, rating)
		if conn, _, ok := h.presence.Lookup(seat.UID); ok {
			target = conn
		}
	}
	h.router.SendTo(target, &Event{Kind: EventRatingUpdate, UID: seat.UID, Rating: rating})
}
