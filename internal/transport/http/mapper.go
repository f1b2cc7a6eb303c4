package http

import (
	"encoding/json"
	"strings"

	"github.com/vovakirdan/chessmate-server/internal/core"
	"github.com/vovakirdan/chessmate-server/internal/proto"
)

const maxRoomNameLen = 64

// inboundToCommand maps a frame onto the closed set of intents. Anything
// outside that set, or with a malformed payload, is an invalid intent.
func inboundToCommand(inbound proto.Inbound) (*core.Command, *core.CoreError) {
	switch inbound.Type {
	case proto.InboundTypeIdentify:
		data, err := decode[proto.IdentifyData](inbound.Data)
		if err != nil {
			return nil, err
		}
		profile := core.Profile{
			UID:      strings.TrimSpace(data.UID),
			Name:     data.Name,
			PhotoURL: data.PhotoURL,
		}
		if data.Rating != nil {
			profile.Rating = *data.Rating
		}
		return &core.Command{Kind: core.CommandIdentify, Profile: profile}, nil

	case proto.InboundTypeCreateRoom:
		data, err := decode[proto.CreateRoomData](inbound.Data)
		if err != nil {
			return nil, err
		}
		room := roomID(data.Room)
		if len(room) > maxRoomNameLen {
			return nil, core.InvalidIntent("room name is too long")
		}
		choice, ok := core.ParseColorChoice(data.Color)
		if !ok {
			return nil, core.InvalidIntent("color must be white, black or random")
		}
		return &core.Command{Kind: core.CommandCreateRoom, Room: room, ColorChoice: choice}, nil

	case proto.InboundTypeJoinRoom:
		return roomCommand(inbound, core.CommandJoinRoom)

	case proto.InboundTypeSendMove:
		data, err := decode[proto.SendMoveData](inbound.Data)
		if err != nil {
			return nil, err
		}
		room := roomID(data.Room)
		if room == "" {
			return nil, errRoomRequired()
		}
		if data.Position == "" {
			return nil, core.InvalidIntent("position is required")
		}
		cmd := &core.Command{
			Kind:     core.CommandSendMove,
			Room:     room,
			Move:     data.Move,
			Position: data.Position,
		}
		if data.Label != nil {
			cmd.Label = *data.Label
		}
		return cmd, nil

	case proto.InboundTypeSyncBoard:
		data, err := decode[proto.SyncBoardData](inbound.Data)
		if err != nil {
			return nil, err
		}
		room := roomID(data.Room)
		if room == "" {
			return nil, errRoomRequired()
		}
		if data.Position == "" {
			return nil, core.InvalidIntent("position is required")
		}
		return &core.Command{
			Kind:        core.CommandSyncBoard,
			Room:        room,
			Position:    data.Position,
			History:     data.History,
			Annotations: data.Annotations,
		}, nil

	case proto.InboundTypeResign:
		return roomCommand(inbound, core.CommandResign)
	case proto.InboundTypeDrawOffer:
		return roomCommand(inbound, core.CommandDrawOffer)
	case proto.InboundTypeRematchRequest:
		return roomCommand(inbound, core.CommandRematchRequest)
	case proto.InboundTypeRematchAccept:
		return roomCommand(inbound, core.CommandRematchAccept)

	case proto.InboundTypeDrawResponse:
		data, err := decode[proto.DrawResponseData](inbound.Data)
		if err != nil {
			return nil, err
		}
		room := roomID(data.Room)
		if room == "" {
			return nil, errRoomRequired()
		}
		return &core.Command{Kind: core.CommandDrawResponse, Room: room, Accepted: data.Accepted}, nil

	case proto.InboundTypeSendChallenge:
		data, err := decode[proto.SendChallengeData](inbound.Data)
		if err != nil {
			return nil, err
		}
		if data.TargetUID == "" {
			return nil, core.InvalidIntent("targetUid is required")
		}
		return &core.Command{
			Kind:      core.CommandSendChallenge,
			TargetUID: data.TargetUID,
			Profile: core.Profile{
				UID:      data.FromUser.UID,
				Name:     data.FromUser.Name,
				PhotoURL: data.FromUser.PhotoURL,
				Rating:   data.FromUser.Rating,
			},
			RatingEligible: data.RatingEligible,
		}, nil

	case proto.InboundTypeAcceptChallenge, proto.InboundTypeRejectChallenge:
		data, err := decode[proto.ChallengeAnswerData](inbound.Data)
		if err != nil {
			return nil, err
		}
		if data.FromUID == "" {
			return nil, core.InvalidIntent("fromUid is required")
		}
		kind := core.CommandAcceptChallenge
		if inbound.Type == proto.InboundTypeRejectChallenge {
			kind = core.CommandRejectChallenge
		}
		return &core.Command{Kind: kind, FromUID: data.FromUID, RatingEligible: data.RatingEligible}, nil

	case proto.InboundTypeMatchConcluded:
		data, err := decode[proto.MatchConcludedData](inbound.Data)
		if err != nil {
			return nil, err
		}
		room := roomID(data.Room)
		if room == "" {
			return nil, errRoomRequired()
		}
		return &core.Command{
			Kind:      core.CommandMatchConcluded,
			Room:      room,
			WinnerUID: data.WinnerUID,
			IsDraw:    data.IsDraw,
		}, nil

	case proto.InboundTypeSendMessage:
		data, err := decode[proto.ChatData](inbound.Data)
		if err != nil {
			return nil, err
		}
		room := roomID(data.Room)
		if room == "" {
			return nil, errRoomRequired()
		}
		if strings.TrimSpace(data.Message) == "" {
			return nil, core.InvalidIntent("message is required")
		}
		return &core.Command{
			Kind: core.CommandSendMessage,
			Room: room,
			Chat: core.ChatMessage{Author: data.Author, Text: data.Message, Time: data.Time},
		}, nil

	default:
		return nil, core.InvalidIntent("unknown message type")
	}
}

func roomCommand(inbound proto.Inbound, kind core.CommandKind) (*core.Command, *core.CoreError) {
	data, err := decode[proto.RoomData](inbound.Data)
	if err != nil {
		return nil, err
	}
	room := roomID(data.Room)
	if room == "" {
		return nil, errRoomRequired()
	}
	return &core.Command{Kind: kind, Room: room}, nil
}

func decode[T any](raw json.RawMessage) (T, *core.CoreError) {
	var v T
	if len(raw) == 0 {
		return v, core.InvalidIntent("data is required")
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, core.InvalidIntent("malformed data: " + err.Error())
	}
	return v, nil
}

// roomID normalizes a client-supplied room id the same way for every intent.
func roomID(raw string) string {
	return strings.TrimSpace(raw)
}

func errRoomRequired() *core.CoreError {
	return core.InvalidIntent("room is required")
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	ev := func(data any) proto.Outbound {
		return proto.Outbound{Type: proto.OutboundTypeEvent, Event: event.Kind.String(), Data: data}
	}

	switch event.Kind {
	case core.EventSession:
		return ev(proto.EventSession{ID: event.ConnID})
	case core.EventRoster:
		users := make([]proto.UserProfile, 0, len(event.Roster))
		for _, p := range event.Roster {
			users = append(users, profileToProto(p))
		}
		return ev(proto.EventRoster{Users: users})
	case core.EventSessionReplaced:
		return ev(proto.EventSessionReplaced{UID: event.UID})
	case core.EventRoomCreated:
		return ev(proto.EventRoomCreated{Room: event.Room, Color: string(event.Color)})
	case core.EventRoomJoined:
		data := proto.EventRoomJoined{Room: event.Room, Color: string(event.Color)}
		if event.Snapshot != nil {
			data.State = event.Snapshot.Position
			data.History = event.Snapshot.History
			data.Annotations = event.Snapshot.Annotations
		}
		return ev(data)
	case core.EventUserJoined, core.EventUserLeft:
		return ev(proto.EventPeer{Room: event.Room, ID: event.ConnID})
	case core.EventGameStart:
		return ev(proto.EventGameStart{
			Room:     event.Room,
			Players:  event.Players,
			Colors:   colorsToProto(event.Colors),
			Position: event.Position,
		})
	case core.EventMoveReceived:
		return ev(proto.EventMove{Room: event.Room, Move: event.Move})
	case core.EventBoardSet:
		data := proto.EventBoard{Room: event.Room}
		if event.Snapshot != nil {
			data.Position = event.Snapshot.Position
			data.History = event.Snapshot.History
			data.Annotations = event.Snapshot.Annotations
		}
		return ev(data)
	case core.EventOpponentResigned, core.EventDrawOffered, core.EventDrawRejected,
		core.EventGameDraw, core.EventRematchRequested:
		return ev(proto.EventRoom{Room: event.Room})
	case core.EventGameReset:
		return ev(proto.EventGameReset{
			Room:     event.Room,
			Colors:   colorsToProto(event.Colors),
			Position: event.Position,
		})
	case core.EventChallengeReceived:
		if event.Challenge == nil {
			return ev(proto.EventChallengeReceived{})
		}
		return ev(proto.EventChallengeReceived{
			FromUser:       profileToProto(event.Challenge.From),
			RatingEligible: event.Challenge.RatingEligible,
		})
	case core.EventChallengeAccepted:
		return ev(proto.EventChallengeAccepted{
			Room:           event.Room,
			Color:          string(event.Color),
			RatingEligible: event.RatingEligible,
		})
	case core.EventChallengeRejected:
		return ev(proto.EventChallengeRejected{UID: event.UID})
	case core.EventRatingUpdate:
		return ev(proto.EventRatingUpdate{NewRating: event.Rating})
	case core.EventChatMessage:
		data := proto.ChatData{Room: event.Room}
		if event.Chat != nil {
			data.Author = event.Chat.Author
			data.Message = event.Chat.Text
			data.Time = event.Chat.Time
		}
		return ev(data)
	case core.EventError:
		if event.Error == nil {
			return proto.Outbound{Type: proto.OutboundTypeError, Event: proto.ErrorEventRoom, Error: &proto.Error{Code: "unknown", Msg: "unknown error"}}
		}
		return errorOutbound(event.Error)
	default:
		return proto.Outbound{Type: proto.OutboundTypeEvent}
	}
}

func errorOutbound(err *core.CoreError) proto.Outbound {
	name := proto.ErrorEventRoom
	if err.Code == core.ErrCodeInvalidIntent || err.Code == core.ErrCodeRateLimited {
		name = proto.ErrorEventInvalidIntent
	}
	return proto.Outbound{
		Type:  proto.OutboundTypeError,
		Event: name,
		Error: &proto.Error{Code: err.Code, Msg: err.Message},
	}
}

func profileToProto(p core.Profile) proto.UserProfile {
	return proto.UserProfile{UID: p.UID, Name: p.Name, PhotoURL: p.PhotoURL, Rating: p.Rating}
}

func colorsToProto(colors map[string]core.Color) map[string]string {
	out := make(map[string]string, len(colors))
	for id, c := range colors {
		out[id] = string(c)
	}
	return out
}
