package core

import "errors"

// Error codes for domain errors.
const (
	ErrCodeRoomNotFound            = "room_not_found"
	ErrCodeRoomFull                = "room_full"
	ErrCodeRoomExists              = "room_exists"
	ErrCodeNameGenerationExhausted = "name_generation_exhausted"
	ErrCodeAlreadyJoined           = "already_joined"
	ErrCodeNotInRoom               = "not_in_room"
	ErrCodeInvalidIntent           = "invalid_intent"
	ErrCodeRateLimited             = "rate_limited"
)

var (
	ErrRoomNotFound            = errors.New("room not found")
	ErrRoomFull                = errors.New("room is full")
	ErrRoomExists              = errors.New("room already exists")
	ErrNameGenerationExhausted = errors.New("could not generate a free room name")
	ErrAlreadyJoined           = errors.New("already joined")
	ErrNotInRoom               = errors.New("not in room")
	ErrInvalidIntent           = errors.New("invalid intent")
)

// CoreError wraps a code and human-readable message.
type CoreError struct {
	Code    string
	Message string
}

func (e *CoreError) Error() string {
	return e.Message
}

// Is lets errors.Is match a CoreError against the package sentinels by code.
func (e *CoreError) Is(target error) bool {
	sentinel, ok := sentinelByCode[e.Code]
	return ok && sentinel == target
}

var sentinelByCode = map[string]error{
	ErrCodeRoomNotFound:            ErrRoomNotFound,
	ErrCodeRoomFull:                ErrRoomFull,
	ErrCodeRoomExists:              ErrRoomExists,
	ErrCodeNameGenerationExhausted: ErrNameGenerationExhausted,
	ErrCodeAlreadyJoined:           ErrAlreadyJoined,
	ErrCodeNotInRoom:               ErrNotInRoom,
	ErrCodeInvalidIntent:           ErrInvalidIntent,
}

func coreError(code, msg string) *CoreError {
	return &CoreError{Code: code, Message: msg}
}

func errRoomNotFound() *CoreError {
	return coreError(ErrCodeRoomNotFound, "Room does not exist!")
}

func errRoomFull() *CoreError {
	return coreError(ErrCodeRoomFull, "Room is full!")
}

func errRoomExists() *CoreError {
	return coreError(ErrCodeRoomExists, "Room already exists!")
}

func errNotInRoom() *CoreError {
	return coreError(ErrCodeNotInRoom, "You are not a player in this room")
}

// InvalidIntent builds the error returned for malformed or unknown intents.
func InvalidIntent(msg string) *CoreError {
	return coreError(ErrCodeInvalidIntent, msg)
}
