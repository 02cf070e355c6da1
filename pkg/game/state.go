package game

import (
	"simplepoker-server/pkg/deck"
)

// Status is the phase of a hand
type Status string

// the game statuses
const (
	StatusWaiting  Status = "waiting"
	StatusBetting  Status = "betting"
	StatusShowdown Status = "showdown"
)

// State is the serializable record of the hand in progress.
// It must round-trip losslessly through the store
type State struct {
	Status             Status    `json:"status"`
	Deck               deck.Hand `json:"deck"`
	Community          deck.Hand `json:"communityCards"`
	Pot                int       `json:"pot"`
	CurrentPlayerIndex int       `json:"currentPlayerIndex"`
	Winner             *Player   `json:"winner"`

	// Version increments on every committed transition and
	// lets the store deduplicate replayed writes
	Version int64 `json:"version"`
}

// NewState returns an empty waiting state
func NewState() *State {
	return &State{
		Status:    StatusWaiting,
		Deck:      make(deck.Hand, 0),
		Community: make(deck.Hand, 0),
	}
}

// Clone returns a deep copy of the state
func (s *State) Clone() *State {
	clone := *s
	clone.Deck = s.Deck.DeepClone()
	clone.Community = s.Community.DeepClone()
	if s.Winner != nil {
		clone.Winner = s.Winner.Clone()
	}

	return &clone
}

// View is the complete post-transition state sent to a single client.
// Receivers replace their local copy wholesale
type View struct {
	State   *State    `json:"gameState"`
	Players []*Player `json:"players"`
}
