package core

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// Options configures a Hub.
type Options struct {
	InitialPosition string
	DefaultRating   int
	NameAttempts    int
	RoomIdleTTL     time.Duration
	SweepInterval   time.Duration
	Logger          *zerolog.Logger
	Metrics         Metrics
	Registry        []RegistryOption
}

// Hub is the gateway between connections and the coordination state. Each
// connection dispatches its own commands; shared state is lock-guarded.
type Hub struct {
	presence *Presence
	rooms    *Registry
	router   *Router
	log      *zerolog.Logger
	metrics  Metrics

	roomTTL    time.Duration
	sweepEvery time.Duration
	now        func() time.Time
}

// NewHub creates a hub with empty presence and room registries.
func NewHub(opts Options) *Hub {
	logger := opts.Logger
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	m := opts.Metrics
	if m == nil {
		m = NopMetrics{}
	}
	sweepEvery := opts.SweepInterval
	if sweepEvery <= 0 {
		sweepEvery = time.Minute
	}

	registryOpts := append([]RegistryOption{WithNameAttempts(opts.NameAttempts)}, opts.Registry...)
	return &Hub{
		presence:   NewPresence(opts.DefaultRating),
		rooms:      NewRegistry(opts.InitialPosition, registryOpts...),
		router:     NewRouter(m),
		log:        logger,
		metrics:    m,
		roomTTL:    opts.RoomIdleTTL,
		sweepEvery: sweepEvery,
		now:        time.Now,
	}
}

// Presence exposes the directory for read-only callers.
func (h *Hub) Presence() *Presence { return h.presence }

// Rooms exposes the registry for read-only callers.
func (h *Hub) Rooms() *Registry { return h.rooms }

// Run sweeps abandoned rooms until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	if h.roomTTL <= 0 {
		<-ctx.Done()
		return
	}

	ticker := time.NewTicker(h.sweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			h.SweepIdleRooms()
		case <-ctx.Done():
			return
		}
	}
}

// SweepIdleRooms removes rooms vacant for longer than the idle TTL.
func (h *Hub) SweepIdleRooms() {
	removed := h.rooms.SweepIdle(h.now(), h.roomTTL)
	for _, id := range removed {
		h.log.Info().Str("room", id).Msg("idle room removed")
	}
	if len(removed) > 0 {
		h.metrics.RoomsLive(h.rooms.Len())
	}
}

// RegisterClient makes the connection addressable and greets it with its id.
func (h *Hub) RegisterClient(c *Client) {
	h.router.Add(c)
	h.metrics.ConnectionOpened()
	h.router.SendTo(c.ID, &Event{Kind: EventSession, ConnID: c.ID})
	h.log.Info().Str("conn_id", c.ID).Msg("client connected")
}

// UnregisterClient drops the connection from presence and vacates its seats.
// Rooms themselves stay alive for the remaining participant.
func (h *Hub) UnregisterClient(c *Client) {
	c.Close()
	h.router.Remove(c)
	h.metrics.ConnectionClosed()

	if uid, ok := h.presence.Remove(c.ID); ok {
		h.log.Info().Str("conn_id", c.ID).Str("uid", uid).Msg("presence removed")
		h.broadcastRoster()
	}

	now := h.now()
	for _, id := range c.Rooms() {
		room, ok := h.rooms.Get(id)
		if !ok {
			continue
		}
		if peers, seated := room.Disconnect(c.ID, now); seated {
			h.router.SendToMany(peers, &Event{Kind: EventUserLeft, Room: id, ConnID: c.ID})
		}
	}
	h.log.Info().Str("conn_id", c.ID).Msg("client disconnected")
}

// Dispatch executes one intent on behalf of c. Failures are reported to c
// only and leave state untouched.
func (h *Hub) Dispatch(c *Client, cmd *Command) {
	if cmd == nil {
		h.fail(c, "", InvalidIntent("empty intent"))
		return
	}

	var err error
	switch cmd.Kind {
	case CommandIdentify:
		h.identify(c, cmd)
	case CommandCreateRoom:
		err = h.createRoom(c, cmd)
	case CommandJoinRoom:
		err = h.joinRoom(c, cmd)
	case CommandSendMove:
		err = h.sendMove(c, cmd)
	case CommandSyncBoard:
		err = h.syncBoard(c, cmd)
	case CommandResign:
		err = h.resign(c, cmd)
	case CommandDrawOffer:
		err = h.relay(c, cmd, EventDrawOffered)
	case CommandDrawResponse:
		err = h.drawResponse(c, cmd)
	case CommandRematchRequest:
		err = h.relay(c, cmd, EventRematchRequested)
	case CommandRematchAccept:
		err = h.rematchAccept(c, cmd)
	case CommandSendChallenge:
		h.sendChallenge(c, cmd)
	case CommandAcceptChallenge:
		err = h.acceptChallenge(c, cmd)
	case CommandRejectChallenge:
		h.rejectChallenge(c, cmd)
	case CommandMatchConcluded:
		err = h.matchConcluded(c, cmd)
	case CommandSendMessage:
		err = h.sendMessage(c, cmd)
	default:
		err = InvalidIntent("unknown intent")
	}

	if err != nil {
		h.fail(c, cmd.Room, err)
		return
	}
	h.metrics.IntentHandled(cmd.Kind.String())
}

// Reject reports an error that was detected before dispatch.
func (h *Hub) Reject(c *Client, err *CoreError) {
	h.fail(c, "", err)
}

func (h *Hub) fail(c *Client, room string, err error) {
	var ce *CoreError
	if !errors.As(err, &ce) {
		ce = coreError(ErrCodeInvalidIntent, err.Error())
	}
	h.metrics.IntentRejected(ce.Code)
	h.log.Debug().Str("conn_id", c.ID).Str("room", room).Str("code", ce.Code).Msg(ce.Message)
	h.router.SendTo(c.ID, errorEvent(ce))
}

func (h *Hub) room(id string) (*Room, error) {
	room, ok := h.rooms.Get(id)
	if !ok {
		return nil, errRoomNotFound()
	}
	return room, nil
}

// seat records the room on the client, vacating the seat if the client is
// already gone.
func (h *Hub) seat(c *Client, room *Room) {
	if !c.addRoom(room.ID) {
		room.Disconnect(c.ID, h.now())
	}
}

func (h *Hub) createRoom(c *Client, cmd *Command) error {
	room, color, err := h.rooms.Create(cmd.Room, cmd.ColorChoice, c.ID, c.UID())
	if err != nil {
		return err
	}
	h.seat(c, room)
	h.metrics.RoomsLive(h.rooms.Len())

	h.router.SendTo(c.ID, &Event{Kind: EventRoomCreated, Room: room.ID, Color: color})
	h.log.Info().Str("room", room.ID).Str("conn_id", c.ID).Str("color", string(color)).Msg("room created")
	return nil
}

func (h *Hub) joinRoom(c *Client, cmd *Command) error {
	room, err := h.room(cmd.Room)
	if err != nil {
		return err
	}
	res, err := room.Join(c.ID, c.UID())
	if err != nil {
		return err
	}
	h.seat(c, room)

	snap := res.Snapshot
	h.router.SendTo(c.ID, &Event{Kind: EventRoomJoined, Room: room.ID, Color: res.Color, Snapshot: &snap})
	h.router.SendToMany(res.Peers, &Event{Kind: EventUserJoined, Room: room.ID, ConnID: c.ID})
	if len(res.Players) == 2 {
		h.router.SendToMany(res.Players, &Event{
			Kind:     EventGameStart,
			Room:     room.ID,
			Players:  res.Players,
			Colors:   res.Colors,
			Position: snap.Position,
		})
	}
	h.log.Info().Str("room", room.ID).Str("conn_id", c.ID).Str("color", string(res.Color)).
		Bool("reclaimed", res.Reclaimed).Msg("room joined")
	return nil
}

func (h *Hub) sendMove(c *Client, cmd *Command) error {
	room, err := h.room(cmd.Room)
	if err != nil {
		return err
	}
	peers, err := room.ApplyMove(c.ID, cmd.Position, cmd.Label)
	if err != nil {
		return err
	}
	h.router.SendToMany(peers, &Event{Kind: EventMoveReceived, Room: room.ID, Move: cmd.Move})
	return nil
}

func (h *Hub) syncBoard(c *Client, cmd *Command) error {
	room, err := h.room(cmd.Room)
	if err != nil {
		return err
	}
	snap, peers, err := room.Sync(c.ID, cmd.Position, cmd.History, cmd.Annotations)
	if err != nil {
		return err
	}
	h.router.SendToMany(peers, &Event{Kind: EventBoardSet, Room: room.ID, Snapshot: &snap})
	return nil
}

func (h *Hub) relay(c *Client, cmd *Command, kind EventKind) error {
	room, err := h.room(cmd.Room)
	if err != nil {
		return err
	}
	peers, err := room.Relay(c.ID)
	if err != nil {
		return err
	}
	h.router.SendToMany(peers, &Event{Kind: kind, Room: room.ID})
	return nil
}

func (h *Hub) resign(c *Client, cmd *Command) error {
	room, err := h.room(cmd.Room)
	if err != nil {
		return err
	}
	players, err := room.End(c.ID)
	if err != nil {
		return err
	}
	h.router.SendToMany(except(players, c.ID), &Event{Kind: EventOpponentResigned, Room: room.ID})
	return nil
}

func (h *Hub) drawResponse(c *Client, cmd *Command) error {
	if !cmd.Accepted {
		return h.relay(c, cmd, EventDrawRejected)
	}
	room, err := h.room(cmd.Room)
	if err != nil {
		return err
	}
	players, err := room.End(c.ID)
	if err != nil {
		return err
	}
	h.router.SendToMany(players, &Event{Kind: EventGameDraw, Room: room.ID})
	return nil
}

func (h *Hub) rematchAccept(c *Client, cmd *Command) error {
	room, err := h.room(cmd.Room)
	if err != nil {
		return err
	}
	colors, position, players, err := room.Rematch(c.ID)
	if err != nil {
		return err
	}
	h.router.SendToMany(players, &Event{Kind: EventGameReset, Room: room.ID, Colors: colors, Position: position})
	h.log.Info().Str("room", room.ID).Msg("rematch started")
	return nil
}

func (h *Hub) sendMessage(c *Client, cmd *Command) error {
	room, err := h.room(cmd.Room)
	if err != nil {
		return err
	}
	peers, err := room.Relay(c.ID)
	if err != nil {
		return err
	}
	chat := cmd.Chat
	h.router.SendToMany(peers, &Event{Kind: EventChatMessage, Room: room.ID, Chat: &chat})
	return nil
}

func except(ids []string, skip string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != skip {
			out = append(out, id)
		}
	}
	return out
}
