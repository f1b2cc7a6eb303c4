package core

import (
	"sync"
	"time"
)

const defaultNameAttempts = 16

// Registry maps room ids to live rooms and guarantees id uniqueness.
type Registry struct {
	mu       sync.RWMutex
	rooms    map[string]*Room
	initial  string
	names    *NameGenerator
	attempts int
	flip     CoinFlip
}

// RegistryOption customizes a Registry.
type RegistryOption func(*Registry)

// WithNameGenerator replaces the room name source.
func WithNameGenerator(g *NameGenerator) RegistryOption {
	return func(r *Registry) { r.names = g }
}

// WithNameAttempts bounds how many generated names are tried before giving up.
func WithNameAttempts(n int) RegistryOption {
	return func(r *Registry) {
		if n > 0 {
			r.attempts = n
		}
	}
}

// WithCoinFlip replaces the random color source.
func WithCoinFlip(flip CoinFlip) RegistryOption {
	return func(r *Registry) { r.flip = flip }
}

// NewRegistry builds an empty registry whose rooms start at initialPosition.
func NewRegistry(initialPosition string, opts ...RegistryOption) *Registry {
	r := &Registry{
		rooms:    make(map[string]*Room),
		initial:  initialPosition,
		names:    NewNameGenerator(),
		attempts: defaultNameAttempts,
		flip:     fairCoin,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create registers a new room with creatorConn in the first seat. creatorUID
// may be empty for an unidentified creator.
// An empty requestedID asks for a generated name.
func (r *Registry) Create(requestedID string, choice ColorChoice, creatorConn, creatorUID string) (*Room, Color, error) {
	color := choice.resolve(r.flip)
	seat := &Seat{ConnID: creatorConn, Color: color, UID: creatorUID, Connected: true}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := requestedID
	if id == "" {
		var err error
		if id, err = r.freeNameLocked(); err != nil {
			return nil, "", err
		}
	} else if _, exists := r.rooms[id]; exists {
		return nil, "", errRoomExists()
	}

	room := newRoom(id, r.initial, false, seat)
	r.rooms[id] = room
	return room, color, nil
}

// MatchSide is one party of an accepted challenge.
type MatchSide struct {
	ConnID string
	UID    string
	Rating int
}

func (m MatchSide) seat(color Color) *Seat {
	return &Seat{ConnID: m.ConnID, Color: color, UID: m.UID, Rating: m.Rating, Connected: true}
}

// CreateMatch registers a rating-aware room for an accepted challenge.
// The challenger always plays white.
func (r *Registry) CreateMatch(challenger, accepter MatchSide, ratingEligible bool) (*Room, error) {
	first := challenger.seat(ColorWhite)
	second := accepter.seat(ColorBlack)

	r.mu.Lock()
	defer r.mu.Unlock()

	id, err := r.freeNameLocked()
	if err != nil {
		return nil, err
	}
	room := newRoom(id, r.initial, ratingEligible, first, second)
	r.rooms[id] = room
	return room, nil
}

func (r *Registry) freeNameLocked() (string, error) {
	for range r.attempts {
		candidate := r.names.Next()
		if _, taken := r.rooms[candidate]; !taken {
			return candidate, nil
		}
	}
	return "", coreError(ErrCodeNameGenerationExhausted, "Could not generate a free room name, try again")
}

// Get looks up a live room.
func (r *Registry) Get(id string) (*Room, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.rooms[id]
	return room, ok
}

// Len reports the number of live rooms.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

// SweepIdle removes rooms whose seats have all been vacant for at least ttl.
func (r *Registry) SweepIdle(now time.Time, ttl time.Duration) []string {
	if ttl <= 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var removed []string
	for id, room := range r.rooms {
		if idle := room.IdleFor(now); idle > 0 && idle >= ttl {
			delete(r.rooms, id)
			removed = append(removed, id)
		}
	}
	return removed
}
