package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresenceIdentifyDefaultsAndRebinds(t *testing.T) {
	p := NewPresence(0)

	_, ok := p.Identify("c1", Profile{Name: "anonymous"})
	assert.False(t, ok, "identify without uid is a no-op")
	assert.Equal(t, 0, p.Len())

	prev, ok := p.Identify("c1", Profile{UID: "u1", Name: "alice"})
	require.True(t, ok)
	assert.Empty(t, prev)
	assert.Equal(t, DefaultRating, p.RatingOf("u1"))

	prev, ok = p.Identify("c2", Profile{UID: "u1", Name: "alice", Rating: 1500})
	require.True(t, ok)
	assert.Equal(t, "c1", prev)
	assert.Equal(t, 1, p.Len())

	conn, profile, ok := p.Lookup("u1")
	require.True(t, ok)
	assert.Equal(t, "c2", conn)
	assert.Equal(t, 1500, profile.Rating)
}

func TestPresenceRemoveByConnection(t *testing.T) {
	p := NewPresence(DefaultRating)
	p.Identify("c1", Profile{UID: "u1", Name: "alice"})
	p.Identify("c2", Profile{UID: "u2", Name: "bob"})

	_, ok := p.Remove("unknown")
	assert.False(t, ok)

	uid, ok := p.Remove("c2")
	require.True(t, ok)
	assert.Equal(t, "u2", uid)
	assert.Equal(t, 1, p.Len())
}

func TestPresenceSwitchingIdentityDropsThePreviousOne(t *testing.T) {
	p := NewPresence(DefaultRating)
	p.Identify("c1", Profile{UID: "u1", Name: "alice"})
	p.Identify("c1", Profile{UID: "u2", Name: "alice2"})

	_, _, ok := p.Lookup("u1")
	assert.False(t, ok, "a connection holds one identity")
	assert.Equal(t, 1, p.Len())

	uid, ok := p.Remove("c1")
	require.True(t, ok)
	assert.Equal(t, "u2", uid)
	assert.Equal(t, 0, p.Len())
}

func TestPresenceUpdateRatingAndRosterOrder(t *testing.T) {
	p := NewPresence(DefaultRating)
	p.Identify("c1", Profile{UID: "u2", Name: "bob"})
	p.Identify("c2", Profile{UID: "u1", Name: "alice"})

	assert.True(t, p.UpdateRating("u2", 410))
	assert.False(t, p.UpdateRating("ghost", 999))

	roster := p.Roster()
	require.Len(t, roster, 2)
	assert.Equal(t, "alice", roster[0].Name)
	assert.Equal(t, 410, roster[1].Rating)
	assert.Equal(t, DefaultRating, p.RatingOf("ghost"))
}
