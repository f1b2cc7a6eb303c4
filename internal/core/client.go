package core

import "sync"

const defaultEventBuffer = 32

// Client is one live connection as seen by the core layer.
type Client struct {
	ID     string
	Events chan *Event

	mu     sync.Mutex
	uid    string
	rooms  map[string]struct{}
	closed bool
}

// NewClient constructs a client with a buffered event channel.
func NewClient(id string, buffer int) *Client {
	if buffer <= 0 {
		buffer = defaultEventBuffer
	}
	return &Client{
		ID:     id,
		Events: make(chan *Event, buffer),
		rooms:  make(map[string]struct{}),
	}
}

// UID returns the identity bound by the last identify intent, if any.
func (c *Client) UID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.uid
}

func (c *Client) setUID(uid string) {
	c.mu.Lock()
	c.uid = uid
	c.mu.Unlock()
}

// addRoom records a seat. It fails once the client is closed so the caller
// can vacate the seat it just handed out.
func (c *Client) addRoom(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	c.rooms[id] = struct{}{}
	return true
}

// Rooms returns the ids of rooms the client holds a seat in.
func (c *Client) Rooms() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	ids := make([]string, 0, len(c.rooms))
	for id := range c.rooms {
		ids = append(ids, id)
	}
	return ids
}

// deliver enqueues an event without blocking. Returns false if dropped.
func (c *Client) deliver(ev *Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.Events <- ev:
		return true
	default:
		// Drop if slow consumer.
		return false
	}
}

// Close stops further delivery and closes the event channel.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.Events)
}
