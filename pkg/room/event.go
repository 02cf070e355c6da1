package room

import (
	"simplepoker-server/pkg/game"
)

// EventType identifies what happened in the room
type EventType string

// the event types published to connected clients
const (
	EventGameStarted  EventType = "game_started"
	EventPlayerAction EventType = "player_action"
	EventGameReset    EventType = "game_reset"
	EventPlayerJoined EventType = "player_joined"
	EventPlayerLeft   EventType = "player_left"
)

// Event is a message published to a room's clients.
// Every event carries the complete post-transition state; receivers replace
// their local copy wholesale rather than applying a diff
type Event struct {
	Type     EventType  `json:"type"`
	RoomID   string     `json:"roomId"`
	PlayerID string     `json:"playerId,omitempty"`
	Payload  *game.View `json:"payload"`
}

// Response is a direct reply to the client that sent a request
type Response struct {
	Key     string `json:"key"`
	Value   string `json:"value"`
	Context string `json:"context,omitempty"`
}

// OK returns a generic success response
func OK(ctx ...string) *Response {
	res := &Response{
		Key:   "status",
		Value: "OK",
	}

	if len(ctx) == 1 {
		res.Context = ctx[0]
	}

	return res
}

// Error returns an error response
func Error(err error, ctx ...string) *Response {
	res := &Response{
		Key:   "error",
		Value: err.Error(),
	}

	if len(ctx) == 1 {
		res.Context = ctx[0]
	}

	return res
}
