package game

import (
	"simplepoker-server/pkg/deck"
)

// DefaultChips is the bankroll a player starts with
const DefaultChips = 1000

// Player is a participant in a game.
// Chips persist across hands; the hand and active flag reset with the game
type Player struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Chips  int       `json:"chips"`
	Hand   deck.Hand `json:"hand"`
	Active bool      `json:"isActive"`
}

// NewPlayer returns an active player with the default bankroll
func NewPlayer(id, name string) *Player {
	return &Player{
		ID:     id,
		Name:   name,
		Chips:  DefaultChips,
		Hand:   make(deck.Hand, 0),
		Active: true,
	}
}

// Clone returns a deep copy of the player
func (p *Player) Clone() *Player {
	clone := *p
	clone.Hand = p.Hand.DeepClone()
	return &clone
}
