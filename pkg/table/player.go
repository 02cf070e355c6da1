package table

import (
	"context"
	"encoding/json"
	"time"

	"simplepoker-server/pkg/db"
	"simplepoker-server/pkg/deck"
	"simplepoker-server/pkg/game"
)

const playerColumns = `
players.id,
players.room_id,
players.name,
players.chips,
players.hand,
players.is_active,
players.created`

// Player is a durable player record within a room.
// The record outlives a single hand; the bankroll persists
type Player struct {
	ID       string    `json:"id"`
	RoomID   string    `json:"roomId"`
	Name     string    `json:"name"`
	Chips    int       `json:"chips"`
	Hand     deck.Hand `json:"hand"`
	IsActive bool      `json:"isActive"`
	Created  time.Time `json:"created"`
}

// ErrRoomIsFull happens when a join would exceed the room's max player count
var ErrRoomIsFull = UserError("the room is full")

// CreatePlayer inserts a new player record into the room.
// The max player count is enforced inside the transaction so concurrent
// joins cannot overfill the room
func (r *Room) CreatePlayer(ctx context.Context, id, name string) (*Player, error) {
	if name == "" {
		return nil, UserError("player name is required")
	}

	tx, err := db.Instance().BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	const countQuery = `
SELECT COUNT(*)
FROM players
WHERE room_id = $1`

	var count int
	if err := tx.QueryRowContext(ctx, countQuery, r.ID).Scan(&count); err != nil {
		rollback(tx)
		return nil, err
	}

	if count >= r.MaxPlayers {
		rollback(tx)
		return nil, ErrRoomIsFull
	}

	const query = `
INSERT INTO players (id, room_id, name, chips, hand, is_active)
VALUES ($1, $2, $3, $4, '[]', true)
RETURNING created`

	var created time.Time
	row := tx.QueryRowContext(ctx, query, id, r.ID, name, game.DefaultChips)
	if err := row.Scan(&created); err != nil {
		rollback(tx)
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &Player{
		ID:       id,
		RoomID:   r.ID,
		Name:     name,
		Chips:    game.DefaultChips,
		Hand:     make(deck.Hand, 0),
		IsActive: true,
		Created:  created,
	}, nil
}

func playerByRow(row db.Scanner) (*Player, error) {
	var p Player
	var handJSON []byte
	if err := row.Scan(&p.ID, &p.RoomID, &p.Name, &p.Chips, &handJSON, &p.IsActive, &p.Created); err != nil {
		return nil, err
	}

	p.Hand = make(deck.Hand, 0)
	if len(handJSON) > 0 {
		if err := json.Unmarshal(handJSON, &p.Hand); err != nil {
			return nil, err
		}
	}

	return &p, nil
}

// GetPlayers returns the room's players in seating order
func (r *Room) GetPlayers(ctx context.Context) ([]*Player, error) {
	const query = `
SELECT ` + playerColumns + `
FROM players
WHERE room_id = $1
ORDER BY created, id`

	rows, err := db.Instance().QueryContext(ctx, query, r.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*Player, 0)
	for rows.Next() {
		p, err := playerByRow(rows)
		if err != nil {
			return nil, err
		}

		records = append(records, p)
	}

	return records, nil
}

// GetPlayerByID returns a player record in the room
func (r *Room) GetPlayerByID(ctx context.Context, id string) (*Player, error) {
	const query = `
SELECT ` + playerColumns + `
FROM players
WHERE room_id = $1
  AND id = $2`

	row := db.Instance().QueryRowContext(ctx, query, r.ID, id)
	return playerByRow(row)
}

// Save writes the player's mutable columns
func (p *Player) Save(ctx context.Context) error {
	handJSON, err := json.Marshal(p.Hand)
	if err != nil {
		return err
	}

	const query = `
UPDATE players
SET chips = $1, hand = $2, is_active = $3
WHERE id = $4`

	_, err = db.Instance().ExecContext(ctx, query, p.Chips, handJSON, p.IsActive, p.ID)
	return err
}

// GamePlayer converts the record into a seat at the game
func (p *Player) GamePlayer() *game.Player {
	return &game.Player{
		ID:     p.ID,
		Name:   p.Name,
		Chips:  p.Chips,
		Hand:   p.Hand.DeepClone(),
		Active: p.IsActive,
	}
}
