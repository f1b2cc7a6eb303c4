package core

import (
	"sort"
	"sync"
)

// Profile is the public snapshot of an identified user.
type Profile struct {
	UID      string
	Name     string
	PhotoURL string
	Rating   int
}

type presenceEntry struct {
	connID  string
	profile Profile
}

// Presence maps durable identities to their current connection.
// At most one entry exists per uid.
type Presence struct {
	mu            sync.RWMutex
	entries       map[string]*presenceEntry
	defaultRating int
}

// NewPresence builds an empty directory. Identities without a rating get defaultRating.
func NewPresence(defaultRating int) *Presence {
	if defaultRating <= 0 {
		defaultRating = DefaultRating
	}
	return &Presence{
		entries:       make(map[string]*presenceEntry),
		defaultRating: defaultRating,
	}
}

// Identify upserts the entry for p.UID and binds it to connID.
// It returns the previously bound connection when the uid moved to a new one.
// ok is false when the profile carries no uid.
func (p *Presence) Identify(connID string, profile Profile) (previous string, ok bool) {
	if profile.UID == "" {
		return "", false
	}
	if profile.Rating <= 0 {
		profile.Rating = p.defaultRating
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// A connection holds at most one identity.
	for uid, entry := range p.entries {
		if entry.connID == connID && uid != profile.UID {
			delete(p.entries, uid)
		}
	}
	if existing, found := p.entries[profile.UID]; found && existing.connID != connID {
		previous = existing.connID
	}
	p.entries[profile.UID] = &presenceEntry{connID: connID, profile: profile}
	return previous, true
}

// Remove drops every entry bound to connID and reports the uid it held.
func (p *Presence) Remove(connID string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var (
		removed string
		found   bool
	)
	for uid, entry := range p.entries {
		if entry.connID == connID {
			delete(p.entries, uid)
			removed, found = uid, true
		}
	}
	return removed, found
}

// UpdateRating changes the rating of a present uid. Returns false if absent.
func (p *Presence) UpdateRating(uid string, rating int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	entry, ok := p.entries[uid]
	if !ok {
		return false
	}
	entry.profile.Rating = rating
	return true
}

// Lookup returns the connection and profile bound to uid.
func (p *Presence) Lookup(uid string) (string, Profile, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	entry, ok := p.entries[uid]
	if !ok {
		return "", Profile{}, false
	}
	return entry.connID, entry.profile, true
}

// RatingOf returns the live rating of uid, or the default when not present.
func (p *Presence) RatingOf(uid string) int {
	if _, profile, ok := p.Lookup(uid); ok {
		return profile.Rating
	}
	return p.defaultRating
}

// Roster returns all present profiles ordered by name, then uid.
func (p *Presence) Roster() []Profile {
	p.mu.RLock()
	roster := make([]Profile, 0, len(p.entries))
	for _, entry := range p.entries {
		roster = append(roster, entry.profile)
	}
	p.mu.RUnlock()

	sort.Slice(roster, func(i, j int) bool {
		if roster[i].Name != roster[j].Name {
			return roster[i].Name < roster[j].Name
		}
		return roster[i].UID < roster[j].UID
	})
	return roster
}

// Len reports the number of present identities.
func (p *Presence) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.entries)
}
