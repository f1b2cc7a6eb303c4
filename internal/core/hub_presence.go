package core

func (h *Hub) identify(c *Client, cmd *Command) {
	previous, ok := h.presence.Identify(c.ID, cmd.Profile)
	if !ok {
		return
	}
	c.setUID(cmd.Profile.UID)

	// The old connection keeps its seats; only the presence binding moves.
	if previous != "" {
		h.router.SendTo(previous, &Event{Kind: EventSessionReplaced, UID: cmd.Profile.UID})
		h.log.Info().Str("uid", cmd.Profile.UID).Str("conn_id", c.ID).Str("previous_conn_id", previous).
			Msg("identity rebound to new connection")
	}
	h.broadcastRoster()
}

func (h *Hub) broadcastRoster() {
	h.metrics.PresenceLive(h.presence.Len())
	h.router.Broadcast(&Event{Kind: EventRoster, Roster: h.presence.Roster()})
}
