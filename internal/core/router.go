package core

import "sync"

// Router delivers events to live connections. Delivery is best effort: an
// unknown, closed or saturated connection silently misses the event.
type Router struct {
	mu      sync.RWMutex
	clients map[string]*Client
	metrics Metrics
}

// NewRouter builds an empty router.
func NewRouter(m Metrics) *Router {
	if m == nil {
		m = NopMetrics{}
	}
	return &Router{
		clients: make(map[string]*Client),
		metrics: m,
	}
}

// Add makes the client addressable by its id.
func (r *Router) Add(c *Client) {
	r.mu.Lock()
	r.clients[c.ID] = c
	r.mu.Unlock()
}

// Remove forgets the client if it is still the one registered under its id.
func (r *Router) Remove(c *Client) {
	r.mu.Lock()
	if current, ok := r.clients[c.ID]; ok && current == c {
		delete(r.clients, c.ID)
	}
	r.mu.Unlock()
}

// Get returns the live client for connID.
func (r *Router) Get(connID string) (*Client, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.clients[connID]
	return c, ok
}

// Len reports the number of live connections.
func (r *Router) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

// SendTo delivers ev to a single connection.
func (r *Router) SendTo(connID string, ev *Event) {
	c, ok := r.Get(connID)
	if !ok {
		r.metrics.EventDropped(ev.Kind.String())
		return
	}
	r.deliver(c, ev)
}

// SendToMany delivers ev to each listed connection. Callers pass a room's
// peers to reach everyone but the sender, or its players to reach everyone.
func (r *Router) SendToMany(connIDs []string, ev *Event) {
	for _, id := range connIDs {
		r.SendTo(id, ev)
	}
}

// Broadcast delivers ev to every live connection.
func (r *Router) Broadcast(ev *Event) {
	r.mu.RLock()
	targets := make([]*Client, 0, len(r.clients))
	for _, c := range r.clients {
		targets = append(targets, c)
	}
	r.mu.RUnlock()

	for _, c := range targets {
		r.deliver(c, ev)
	}
}

func (r *Router) deliver(c *Client, ev *Event) {
	if !c.deliver(ev) {
		r.metrics.EventDropped(ev.Kind.String())
	}
}
