package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestRegistryCreateRejectsDuplicateName(t *testing.T) {
	reg := NewRegistry(startFEN)

	_, _, err := reg.Create("X", ChoiceWhite, "a", "")
	require.NoError(t, err)

	_, _, err = reg.Create("X", ChoiceBlack, "b", "")
	require.ErrorIs(t, err, ErrRoomExists)
	assert.Equal(t, 1, reg.Len())
}

func TestRegistryNameGenerationExhausted(t *testing.T) {
	// A generator that always yields the same name collides after the first room.
	fixed := &NameGenerator{intN: func(int) int { return 0 }}
	reg := NewRegistry(startFEN, WithNameGenerator(fixed), WithNameAttempts(3))

	room, _, err := reg.Create("", ChoiceWhite, "a", "")
	require.NoError(t, err)
	assert.Equal(t, "amber-bishop-0000", room.ID)

	_, _, err = reg.Create("", ChoiceWhite, "b", "")
	require.ErrorIs(t, err, ErrNameGenerationExhausted)
	assert.Equal(t, 1, reg.Len())
}

func TestRegistryCreateMatchColorsAndIdentities(t *testing.T) {
	reg := NewRegistry(startFEN)

	room, err := reg.CreateMatch(MatchSide{ConnID: "a", UID: "uid-a", Rating: 1200}, MatchSide{ConnID: "b", UID: "uid-b", Rating: 1400}, true)
	require.NoError(t, err)

	assert.Equal(t, map[string]Color{"a": ColorWhite, "b": ColorBlack}, room.Colors())
	assert.True(t, room.RatingEligible())
	assert.Equal(t, RoomActive, room.Status())
}

func TestRoomJoinAssignsComplementColor(t *testing.T) {
	for _, choice := range []ColorChoice{ChoiceWhite, ChoiceBlack} {
		reg := NewRegistry(startFEN)
		room, creatorColor, err := reg.Create("X", choice, "a", "")
		require.NoError(t, err)
		assert.Equal(t, RoomWaiting, room.Status())

		res, err := room.Join("b", "")
		require.NoError(t, err)
		assert.Equal(t, creatorColor.Opposite(), res.Color)
		assert.Equal(t, []string{"a"}, res.Peers)
		assert.Equal(t, RoomActive, room.Status())
	}
}

func TestRoomJoinTwiceIsRejected(t *testing.T) {
	reg := NewRegistry(startFEN)
	room, _, err := reg.Create("X", ChoiceWhite, "a", "")
	require.NoError(t, err)

	_, err = room.Join("a", "")
	require.ErrorIs(t, err, ErrAlreadyJoined)
}

func TestRoomRatedSeatOnlyReclaimedBySameIdentity(t *testing.T) {
	reg := NewRegistry(startFEN)
	room, err := reg.CreateMatch(MatchSide{ConnID: "a", UID: "uid-a", Rating: 1200}, MatchSide{ConnID: "b", UID: "uid-b", Rating: 1400}, true)
	require.NoError(t, err)

	room.Disconnect("b", time.Now())

	_, err = room.Join("mallory", "uid-m")
	require.ErrorIs(t, err, ErrRoomFull)

	res, err := room.Join("b2", "uid-b")
	require.NoError(t, err)
	assert.True(t, res.Reclaimed)
	assert.Equal(t, ColorBlack, res.Color)
}

func TestRoomVacatedSeatIsNotTakenByStrangers(t *testing.T) {
	reg := NewRegistry(startFEN)
	room, _, err := reg.Create("X", ChoiceWhite, "a", "uid-a")
	require.NoError(t, err)
	_, err = room.Join("b", "uid-b")
	require.NoError(t, err)

	room.Disconnect("b", time.Now())

	_, err = room.Join("x", "")
	require.ErrorIs(t, err, ErrRoomFull, "unidentified joiner")
	_, err = room.Join("x", "uid-x")
	require.ErrorIs(t, err, ErrRoomFull, "different identity")

	res, err := room.Join("b2", "uid-b")
	require.NoError(t, err)
	assert.True(t, res.Reclaimed)
	assert.Equal(t, ColorBlack, res.Color)
}

func TestRoomUnidentifiedSeatCannotBeReclaimed(t *testing.T) {
	reg := NewRegistry(startFEN)
	room, _, err := reg.Create("X", ChoiceWhite, "a", "")
	require.NoError(t, err)
	_, err = room.Join("b", "")
	require.NoError(t, err)

	room.Disconnect("b", time.Now())

	_, err = room.Join("b2", "")
	require.ErrorIs(t, err, ErrRoomFull)
}

func TestRoomRecordRatingUpdatesSeat(t *testing.T) {
	reg := NewRegistry(startFEN)
	room, err := reg.CreateMatch(MatchSide{ConnID: "a", UID: "uid-a", Rating: 1200}, MatchSide{ConnID: "b", UID: "uid-b", Rating: 1400}, true)
	require.NoError(t, err)

	room.RecordRating("uid-b", 1376)

	outcomes, ok, err := room.Conclude("a", "", true)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1200, outcomes[0].Seat.Rating)
	assert.Equal(t, 1376, outcomes[1].Seat.Rating)
}

func TestRoomSyncFitsAnnotations(t *testing.T) {
	reg := NewRegistry(startFEN)
	room, _, err := reg.Create("X", ChoiceWhite, "a", "")
	require.NoError(t, err)

	snap, _, err := room.Sync("a", "p3", []string{startFEN, "p1", "p2", "p3"}, []string{"Best"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Best", "", ""}, snap.Annotations)

	snap, _, err = room.Sync("a", "p1", []string{startFEN, "p1"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Best"}, snap.Annotations)

	snap, _, err = room.Sync("a", "only", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "only", snap.Position)
	assert.Len(t, snap.History, 2)
}

func TestRoomConcludeRequiresKnownWinner(t *testing.T) {
	reg := NewRegistry(startFEN)
	room, err := reg.CreateMatch(MatchSide{ConnID: "a", UID: "uid-a", Rating: 1200}, MatchSide{ConnID: "b", UID: "uid-b", Rating: 1400}, true)
	require.NoError(t, err)

	_, ok, err := room.Conclude("a", "someone-else", false)
	require.ErrorIs(t, err, ErrInvalidIntent)
	assert.False(t, ok)

	outcomes, ok, err := room.Conclude("a", OpponentWinner, false)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, ScoreLoss, outcomes[0].Score)
	assert.Equal(t, ScoreWin, outcomes[1].Score)
	assert.Equal(t, RoomEnded, room.Status())

	_, ok, err = room.Conclude("b", "uid-b", false)
	require.NoError(t, err)
	assert.False(t, ok, "a game is rated at most once")

	_, _, _, err = room.Rematch("b")
	require.NoError(t, err)
	_, ok, err = room.Conclude("b", "", true)
	require.NoError(t, err)
	assert.True(t, ok, "rematch opens a new rated game")
}

// Any interleaving of moves, syncs and rematches keeps history one entry
// longer than annotations, and seats on opposite colors.
func TestRoomInvariantsHoldUnderRandomIntents(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		reg := NewRegistry(startFEN)
		room, _, err := reg.Create("X", ChoiceWhite, "a", "")
		if err != nil {
			t.Fatal(err)
		}
		if _, err := room.Join("b", ""); err != nil {
			t.Fatal(err)
		}

		labels := rapid.SampledFrom([]string{"", "Best", "Good", "Inaccuracy", "Blunder"})
		positions := rapid.StringMatching(`[a-h][1-8]`)
		steps := rapid.IntRange(1, 40).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			conn := rapid.SampledFrom([]string{"a", "b"}).Draw(t, "conn")
			switch rapid.IntRange(0, 3).Draw(t, "op") {
			case 0, 1:
				_, err = room.ApplyMove(conn, positions.Draw(t, "pos"), labels.Draw(t, "label"))
			case 2:
				history := rapid.SliceOf(positions).Draw(t, "history")
				var annotations []string
				if rapid.Bool().Draw(t, "withAnnotations") {
					annotations = rapid.SliceOf(labels).Draw(t, "annotations")
				}
				_, _, err = room.Sync(conn, positions.Draw(t, "syncPos"), history, annotations)
			case 3:
				_, _, _, err = room.Rematch(conn)
			}
			if err != nil {
				t.Fatalf("step %d: %v", i, err)
			}

			snap := room.Snapshot()
			if len(snap.History) != len(snap.Annotations)+1 {
				t.Fatalf("history %d vs annotations %d", len(snap.History), len(snap.Annotations))
			}
			colors := room.Colors()
			if colors["a"] == colors["b"] {
				t.Fatalf("both seats play %s", colors["a"])
			}
		}
	})
}

func TestNameGeneratorShape(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.IntRange(0, 1<<20).Draw(t, "seed")
		g := &NameGenerator{intN: func(n int) int { return seed % n }}
		name := g.Next()
		assert.Regexp(t, `^[a-z]+-[a-z]+-[0-9]{4}$`, name)
	})
}
