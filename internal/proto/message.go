package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	InboundTypeIdentify        = "identify"
	InboundTypeCreateRoom      = "create_room"
	InboundTypeJoinRoom        = "join_room"
	InboundTypeSendMove        = "send_move"
	InboundTypeSyncBoard       = "sync_board"
	InboundTypeResign          = "resign"
	InboundTypeDrawOffer       = "draw_offer"
	InboundTypeDrawResponse    = "draw_response"
	InboundTypeRematchRequest  = "rematch_request"
	InboundTypeRematchAccept   = "rematch_accept"
	InboundTypeSendChallenge   = "send_challenge"
	InboundTypeAcceptChallenge = "accept_challenge"
	InboundTypeRejectChallenge = "reject_challenge"
	InboundTypeMatchConcluded  = "match_concluded"
	InboundTypeSendMessage     = "send_message"

	OutboundTypeEvent = "event"
	OutboundTypeError = "error"

	ErrorEventRoom          = "room_error"
	ErrorEventInvalidIntent = "invalid_intent"
)

// IdentifyData binds a durable identity to the connection.
type IdentifyData struct {
	UID      string `json:"uid"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL"`
	Rating   *int   `json:"rating,omitempty"`
}

// CreateRoomData opens a room. An empty room asks the server for a name.
type CreateRoomData struct {
	Room  string `json:"room,omitempty"`
	Color string `json:"color,omitempty"`
}

// RoomData addresses a room without further payload.
type RoomData struct {
	Room string `json:"room"`
}

// SendMoveData carries a move and the position it produced.
type SendMoveData struct {
	Room     string          `json:"room"`
	Move     json.RawMessage `json:"move"`
	Position string          `json:"position"`
	Label    *string         `json:"label,omitempty"`
}

// SyncBoardData pushes authoritative state to the peer.
type SyncBoardData struct {
	Room        string   `json:"room"`
	Position    string   `json:"position"`
	History     []string `json:"history,omitempty"`
	Annotations []string `json:"annotations,omitempty"`
}

// DrawResponseData answers a draw offer.
type DrawResponseData struct {
	Room     string `json:"room"`
	Accepted bool   `json:"accepted"`
}

// UserProfile is the public part of an identity.
type UserProfile struct {
	UID      string `json:"uid"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL"`
	Rating   int    `json:"rating"`
}

// SendChallengeData invites a present user.
type SendChallengeData struct {
	TargetUID      string      `json:"targetUid"`
	FromUser       UserProfile `json:"fromUser"`
	RatingEligible bool        `json:"ratingEligible"`
}

// ChallengeAnswerData accepts or rejects an invitation.
type ChallengeAnswerData struct {
	FromUID        string `json:"fromUid"`
	RatingEligible bool   `json:"ratingEligible,omitempty"`
}

// MatchConcludedData reports a finished game.
type MatchConcludedData struct {
	Room      string `json:"room"`
	WinnerUID string `json:"winnerUid"`
	IsDraw    bool   `json:"isDraw"`
}

// ChatData is an in-room chat line.
type ChatData struct {
	Room    string `json:"room"`
	Author  string `json:"author"`
	Message string `json:"message"`
	Time    string `json:"time,omitempty"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Event string `json:"event,omitempty"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// EventSession greets a new connection.
type EventSession struct {
	ID string `json:"id"`
}

// EventRoster is the full public presence roster.
type EventRoster struct {
	Users []UserProfile `json:"users"`
}

// EventSessionReplaced tells a stale connection its identity moved.
type EventSessionReplaced struct {
	UID string `json:"uid"`
}

// EventRoomCreated confirms a new room to its creator.
type EventRoomCreated struct {
	Room  string `json:"room"`
	Color string `json:"color"`
}

// EventRoomJoined delivers the room state to the joiner.
type EventRoomJoined struct {
	Room        string   `json:"room"`
	Color       string   `json:"color"`
	State       string   `json:"state"`
	History     []string `json:"history"`
	Annotations []string `json:"annotations"`
}

// EventPeer names a connection that joined or left a room.
type EventPeer struct {
	Room string `json:"room"`
	ID   string `json:"id"`
}

// EventGameStart tells both participants who plays which side.
type EventGameStart struct {
	Room     string            `json:"room"`
	Players  []string          `json:"players"`
	Colors   map[string]string `json:"colors"`
	Position string            `json:"position"`
}

// EventMove relays a move.
type EventMove struct {
	Room string          `json:"room"`
	Move json.RawMessage `json:"move"`
}

// EventBoard relays a full-state sync.
type EventBoard struct {
	Room        string   `json:"room"`
	Position    string   `json:"position"`
	History     []string `json:"history"`
	Annotations []string `json:"annotations"`
}

// EventRoom is a signal scoped to a room with no further payload.
type EventRoom struct {
	Room string `json:"room"`
}

// EventGameReset announces a rematch.
type EventGameReset struct {
	Room     string            `json:"room"`
	Colors   map[string]string `json:"colors"`
	Position string            `json:"position"`
}

// EventChallengeReceived delivers an invitation.
type EventChallengeReceived struct {
	FromUser       UserProfile `json:"fromUser"`
	RatingEligible bool        `json:"ratingEligible"`
}

// EventChallengeAccepted tells each side its room and color.
type EventChallengeAccepted struct {
	Room           string `json:"room"`
	Color          string `json:"color"`
	RatingEligible bool   `json:"ratingEligible"`
}

// EventChallengeRejected tells the challenger who declined.
type EventChallengeRejected struct {
	UID string `json:"uid,omitempty"`
}

// EventRatingUpdate carries the player's own new rating.
type EventRatingUpdate struct {
	NewRating int `json:"newRating"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
