package core

import (
	"sync"
	"time"
)

// RoomStatus is the lifecycle stage of a room.
type RoomStatus string

const (
	RoomWaiting RoomStatus = "waiting"
	RoomActive  RoomStatus = "active"
	RoomEnded   RoomStatus = "ended"
)

// Seat is one participant slot. Seats keep their color and identity when the
// connection behind them closes, so the same identity can take them over.
// Rating is the last known rating of UID, kept for players who left.
type Seat struct {
	ConnID    string
	Color     Color
	UID       string
	Rating    int
	Connected bool
}

// Room is a paired match session and the authoritative copy of its state.
// The server relays positions; it never checks them.
type Room struct {
	ID string

	mu             sync.Mutex
	initial        string
	seats          []*Seat
	position       string
	history        []string
	annotations    []string
	ratingEligible bool
	ended          bool
	ratingApplied  bool
	idleSince      time.Time
}

// JoinResult describes the room as seen by a connection that just joined.
type JoinResult struct {
	Color     Color
	Snapshot  Snapshot
	Peers     []string
	Players   []string
	Colors    map[string]Color
	Reclaimed bool
}

func newRoom(id, initial string, ratingEligible bool, seats ...*Seat) *Room {
	return &Room{
		ID:             id,
		initial:        initial,
		seats:          seats,
		position:       initial,
		history:        []string{initial},
		annotations:    []string{},
		ratingEligible: ratingEligible,
	}
}

// Join seats connID. A free seat gets the color opposite the occupant's; when
// both seats are taken, a seat whose connection closed may be reclaimed by the
// identity that held it.
func (r *Room) Join(connID, uid string) (JoinResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.seatOf(connID) != nil {
		return JoinResult{}, coreError(ErrCodeAlreadyJoined, "You already joined this room")
	}

	var (
		seat      *Seat
		reclaimed bool
	)
	switch {
	case len(r.seats) == 0:
		seat = &Seat{Color: ColorWhite}
		r.seats = append(r.seats, seat)
	case len(r.seats) < 2:
		seat = &Seat{Color: r.seats[0].Color.Opposite()}
		r.seats = append(r.seats, seat)
	default:
		seat = r.reclaimableSeat(uid)
		if seat == nil {
			return JoinResult{}, errRoomFull()
		}
		reclaimed = true
	}

	seat.ConnID = connID
	seat.Connected = true
	if seat.UID == "" {
		seat.UID = uid
	}
	r.idleSince = time.Time{}

	return JoinResult{
		Color:     seat.Color,
		Snapshot:  r.snapshotLocked(),
		Peers:     r.peersLocked(connID),
		Players:   r.playersLocked(),
		Colors:    r.colorsLocked(),
		Reclaimed: reclaimed,
	}, nil
}

func (r *Room) reclaimableSeat(uid string) *Seat {
	if uid == "" {
		return nil
	}
	for _, s := range r.seats {
		if !s.Connected && s.UID == uid {
			return s
		}
	}
	return nil
}

// ApplyMove appends position to the history and returns the peers to notify.
// A missing label is stored as "" so annotations stay aligned with history[1:].
func (r *Room) ApplyMove(connID, position, label string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.seatOf(connID) == nil {
		return nil, errNotInRoom()
	}
	r.history = append(r.history, position)
	r.annotations = append(r.annotations, label)
	r.position = position
	return r.peersLocked(connID), nil
}

// Sync overwrites the room state. A nil history or nil annotations leaves the
// stored value in place. Annotations are fitted to the history length.
func (r *Room) Sync(connID, position string, history, annotations []string) (Snapshot, []string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.seatOf(connID) == nil {
		return Snapshot{}, nil, errNotInRoom()
	}

	if history != nil {
		if len(history) == 0 {
			history = []string{position}
		}
		r.history = append([]string(nil), history...)
	}
	if annotations == nil {
		annotations = r.annotations
	}
	r.annotations = fitAnnotations(annotations, len(r.history)-1)
	r.position = position

	return r.snapshotLocked(), r.peersLocked(connID), nil
}

func fitAnnotations(annotations []string, n int) []string {
	out := make([]string, n)
	copy(out, annotations)
	return out
}

// Relay checks that connID is seated and returns its peers.
func (r *Room) Relay(connID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.seatOf(connID) == nil {
		return nil, errNotInRoom()
	}
	return r.peersLocked(connID), nil
}

// End marks the current game over and returns every participant.
func (r *Room) End(connID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.seatOf(connID) == nil {
		return nil, errNotInRoom()
	}
	r.ended = true
	return r.playersLocked(), nil
}

// Rematch resets the game to the initial position and swaps every seat's color.
func (r *Room) Rematch(connID string) (map[string]Color, string, []string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.seatOf(connID) == nil {
		return nil, "", nil, errNotInRoom()
	}
	r.position = r.initial
	r.history = []string{r.initial}
	r.annotations = []string{}
	for _, s := range r.seats {
		s.Color = s.Color.Opposite()
	}
	r.ended = false
	r.ratingApplied = false
	return r.colorsLocked(), r.position, r.playersLocked(), nil
}

// Outcome is one seat's result in a concluded game.
type Outcome struct {
	Seat  Seat
	Score Score
}

// OpponentWinner is the winner value a reporter sends to concede the game.
const OpponentWinner = "opponent"

// Conclude claims the right to rate the current game. Outcomes are returned
// once per game and only for rating-eligible rooms with both seats filled.
// winnerUID names the winning seat by uid or connection id; OpponentWinner
// names the reporter's opponent.
func (r *Room) Conclude(connID, winnerUID string, isDraw bool) ([]Outcome, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	reporter := r.seatOf(connID)
	if reporter == nil {
		return nil, false, errNotInRoom()
	}
	if !r.ratingEligible || r.ratingApplied || len(r.seats) < 2 {
		return nil, false, nil
	}

	outcomes := make([]Outcome, len(r.seats))
	for i, s := range r.seats {
		outcomes[i] = Outcome{Seat: *s, Score: ScoreDraw}
	}
	if !isDraw {
		winner := -1
		for i, s := range r.seats {
			conceded := winnerUID == OpponentWinner && s != reporter
			named := winnerUID != "" && (winnerUID == s.UID || winnerUID == s.ConnID)
			if conceded || named {
				winner = i
				break
			}
		}
		if winner < 0 {
			return nil, false, InvalidIntent("winnerUid does not name a player in this room")
		}
		for i := range outcomes {
			outcomes[i].Score = ScoreLoss
		}
		outcomes[winner].Score = ScoreWin
	}

	r.ratingApplied = true
	r.ended = true
	return outcomes, true, nil
}

// RecordRating updates the rating remembered for uid's seat.
func (r *Room) RecordRating(uid string, rating int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.seats {
		if uid != "" && s.UID == uid {
			s.Rating = rating
		}
	}
}

// Disconnect marks connID's seat as vacated and returns the remaining peers.
func (r *Room) Disconnect(connID string, now time.Time) ([]string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seat := r.seatOf(connID)
	if seat == nil {
		return nil, false
	}
	seat.Connected = false
	if r.idleSince.IsZero() && !r.anyConnectedLocked() {
		r.idleSince = now
	}
	return r.peersLocked(connID), true
}

// IdleFor reports how long every seat has been vacant, or zero if any is connected.
func (r *Room) IdleFor(now time.Time) time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.idleSince.IsZero() {
		return 0
	}
	return now.Sub(r.idleSince)
}

// Snapshot returns a copy of the current game state.
func (r *Room) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

// Colors returns the color of each seated connection.
func (r *Room) Colors() map[string]Color {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.colorsLocked()
}

// Players returns seated connection ids, creator first.
func (r *Room) Players() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.playersLocked()
}

// RatingEligible reports whether the room's games are rated.
func (r *Room) RatingEligible() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ratingEligible
}

// Status derives the lifecycle stage.
func (r *Room) Status() RoomStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch {
	case r.ended:
		return RoomEnded
	case len(r.seats) < 2:
		return RoomWaiting
	default:
		return RoomActive
	}
}

func (r *Room) seatOf(connID string) *Seat {
	for _, s := range r.seats {
		if s.ConnID == connID {
			return s
		}
	}
	return nil
}

func (r *Room) anyConnectedLocked() bool {
	for _, s := range r.seats {
		if s.Connected {
			return true
		}
	}
	return false
}

func (r *Room) snapshotLocked() Snapshot {
	return Snapshot{
		Position:    r.position,
		History:     append([]string(nil), r.history...),
		Annotations: append([]string{}, r.annotations...),
	}
}

func (r *Room) peersLocked(connID string) []string {
	peers := make([]string, 0, 1)
	for _, s := range r.seats {
		if s.ConnID != connID {
			peers = append(peers, s.ConnID)
		}
	}
	return peers
}

func (r *Room) playersLocked() []string {
	players := make([]string, 0, len(r.seats))
	for _, s := range r.seats {
		players = append(players, s.ConnID)
	}
	return players
}

func (r *Room) colorsLocked() map[string]Color {
	colors := make(map[string]Color, len(r.seats))
	for _, s := range r.seats {
		colors[s.ConnID] = s.Color
	}
	return colors
}
