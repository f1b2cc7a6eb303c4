package core

import "encoding/json"

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandIdentify binds a durable identity to the connection.
	CommandIdentify CommandKind = iota
	// CommandCreateRoom opens a new room with the sender as its first participant.
	CommandCreateRoom
	// CommandJoinRoom takes the second seat of an existing room.
	CommandJoinRoom
	// CommandSendMove appends a position to the room history and relays the move.
	CommandSendMove
	// CommandSyncBoard overwrites the room state and relays it.
	CommandSyncBoard
	// CommandResign relays a resignation.
	CommandResign
	// CommandDrawOffer relays a draw offer.
	CommandDrawOffer
	// CommandDrawResponse answers a draw offer.
	CommandDrawResponse
	// CommandRematchRequest relays a rematch request.
	CommandRematchRequest
	// CommandRematchAccept resets the room and swaps colors.
	CommandRematchAccept
	// CommandSendChallenge invites another present user.
	CommandSendChallenge
	// CommandAcceptChallenge accepts an invitation and opens a room for both sides.
	CommandAcceptChallenge
	// CommandRejectChallenge declines an invitation.
	CommandRejectChallenge
	// CommandMatchConcluded reports a finished game for rating.
	CommandMatchConcluded
	// CommandSendMessage relays a chat line to the room peer.
	CommandSendMessage
)

var commandNames = map[CommandKind]string{
	CommandIdentify:        "identify",
	CommandCreateRoom:      "create_room",
	CommandJoinRoom:        "join_room",
	CommandSendMove:        "send_move",
	CommandSyncBoard:       "sync_board",
	CommandResign:          "resign",
	CommandDrawOffer:       "draw_offer",
	CommandDrawResponse:    "draw_response",
	CommandRematchRequest:  "rematch_request",
	CommandRematchAccept:   "rematch_accept",
	CommandSendChallenge:   "send_challenge",
	CommandAcceptChallenge: "accept_challenge",
	CommandRejectChallenge: "reject_challenge",
	CommandMatchConcluded:  "match_concluded",
	CommandSendMessage:     "send_message",
}

// String returns the wire name of the intent.
func (k CommandKind) String() string {
	if name, ok := commandNames[k]; ok {
		return name
	}
	return "unknown"
}

// Command represents an action requested by a client.
type Command struct {
	Kind CommandKind
	Room string

	// identify, send_challenge (sender profile)
	Profile Profile

	// create_room
	ColorChoice ColorChoice

	// send_move, sync_board
	Move        json.RawMessage
	Position    string
	Label       string
	History     []string
	Annotations []string

	// draw_response
	Accepted bool

	// send_challenge, accept_challenge, reject_challenge
	TargetUID      string
	FromUID        string
	RatingEligible bool

	// match_concluded
	WinnerUID string
	IsDraw    bool

	// send_message
	Chat ChatMessage
}
