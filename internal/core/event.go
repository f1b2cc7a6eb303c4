package core

import "encoding/json"

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventSession greets a fresh connection with its connection id.
	EventSession EventKind = iota
	// EventRoster carries the full public presence roster.
	EventRoster
	// EventSessionReplaced tells a stale connection that its uid was bound elsewhere.
	EventSessionReplaced
	// EventRoomCreated confirms room creation to the creator.
	EventRoomCreated
	// EventRoomJoined delivers the room state to a joining connection.
	EventRoomJoined
	// EventUserJoined notifies the existing occupant that a peer joined.
	EventUserJoined
	// EventGameStart tells both participants the seats are filled.
	EventGameStart
	// EventUserLeft notifies room peers that a participant's connection closed.
	EventUserLeft
	// EventMoveReceived relays a peer's move.
	EventMoveReceived
	// EventBoardSet relays a full-state sync.
	EventBoardSet
	// EventOpponentResigned relays a resignation.
	EventOpponentResigned
	// EventDrawOffered relays a draw offer.
	EventDrawOffered
	// EventDrawRejected relays a declined draw offer.
	EventDrawRejected
	// EventGameDraw announces an agreed draw to both participants.
	EventGameDraw
	// EventRematchRequested relays a rematch request.
	EventRematchRequested
	// EventGameReset announces the rematch position and swapped colors.
	EventGameReset
	// EventChallengeReceived delivers an invitation to its target.
	EventChallengeReceived
	// EventChallengeAccepted tells each side of an accepted challenge its room and color.
	EventChallengeAccepted
	// EventChallengeRejected tells the challenger the invitation was declined.
	EventChallengeRejected
	// EventRatingUpdate delivers a player's own new rating.
	EventRatingUpdate
	// EventChatMessage relays an in-room chat line.
	EventChatMessage
	// EventError notifies clients about a domain error.
	EventError
)

var eventNames = map[EventKind]string{
	EventSession:           "session",
	EventRoster:            "roster_update",
	EventSessionReplaced:   "session_replaced",
	EventRoomCreated:       "room_created",
	EventRoomJoined:        "room_joined",
	EventUserJoined:        "user_joined",
	EventGameStart:         "game_start",
	EventUserLeft:          "user_left",
	EventMoveReceived:      "receive_move",
	EventBoardSet:          "set_board",
	EventOpponentResigned:  "opponent_resigned",
	EventDrawOffered:       "draw_offered",
	EventDrawRejected:      "draw_rejected",
	EventGameDraw:          "game_draw",
	EventRematchRequested:  "rematch_requested",
	EventGameReset:         "game_reset",
	EventChallengeReceived: "challenge_received",
	EventChallengeAccepted: "challenge_accepted",
	EventChallengeRejected: "challenge_rejected",
	EventRatingUpdate:      "rating_update",
	EventChatMessage:       "receive_message",
	EventError:             "room_error",
}

// String returns the wire name of the event.
func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return "unknown"
}

// Event is sent to clients to describe what happened in the system.
// Only the fields relevant to Kind are set.
type Event struct {
	Kind           EventKind
	Room           string
	ConnID         string
	UID            string
	Color          Color
	Colors         map[string]Color
	Players        []string
	Position       string
	Move           json.RawMessage
	Snapshot       *Snapshot
	Roster         []Profile
	Challenge      *Challenge
	RatingEligible bool
	Rating         int
	Chat           *ChatMessage
	Error          *CoreError
}

// Snapshot is the shareable part of a room's game state.
type Snapshot struct {
	Position    string
	History     []string
	Annotations []string
}

// Challenge is a transient invitation between two present users.
type Challenge struct {
	From           Profile
	ToUID          string
	RatingEligible bool
}

// ChatMessage is an in-room chat line. The core relays it untouched.
type ChatMessage struct {
	Author string
	Text   string
	Time   string
}

func errorEvent(err *CoreError) *Event {
	return &Event{Kind: EventError, Error: err}
}
