package table

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"simplepoker-server/pkg/db"
	"simplepoker-server/pkg/game"
)

// room size limits. Eight players is the most a single 52-card deck can cover
// with two hole cards each and a five-card community pile to spare
const (
	MinPlayers = 2
	MaxPlayers = 8
)

const roomColumns = `
rooms.id,
rooms.name,
rooms.max_players,
rooms.game_state,
rooms.created`

// Room is a hosted session with a max player count and one game state
type Room struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	MaxPlayers int         `json:"maxPlayers"`
	GameState  *game.State `json:"gameState"`
	Created    time.Time   `json:"created"`
}

// ValidateRoomOptions checks room creation input
func ValidateRoomOptions(name string, maxPlayers int) error {
	if name == "" {
		return UserError("room name is required")
	}

	if maxPlayers < MinPlayers {
		return UserError("a room must allow at least two players")
	}

	if maxPlayers > MaxPlayers {
		return UserError("a room cannot allow more than eight players")
	}

	return nil
}

// CreateRoom creates a new room with an empty waiting game state
func CreateRoom(ctx context.Context, name string, maxPlayers int) (*Room, error) {
	if err := ValidateRoomOptions(name, maxPlayers); err != nil {
		return nil, err
	}

	state := game.NewState()
	stateJSON, err := json.Marshal(state)
	if err != nil {
		return nil, err
	}

	id := uuid.New().String()
	const query = `
INSERT INTO rooms (id, name, max_players, game_state)
VALUES ($1, $2, $3, $4)
RETURNING created`

	var created time.Time
	row := db.Instance().QueryRowContext(ctx, query, id, name, maxPlayers, stateJSON)
	if err := row.Scan(&created); err != nil {
		return nil, err
	}

	return &Room{
		ID:         id,
		Name:       name,
		MaxPlayers: maxPlayers,
		GameState:  state,
		Created:    created,
	}, nil
}

func roomByRow(row db.Scanner) (*Room, error) {
	var r Room
	var stateJSON []byte
	if err := row.Scan(&r.ID, &r.Name, &r.MaxPlayers, &stateJSON, &r.Created); err != nil {
		return nil, err
	}

	state := game.NewState()
	if len(stateJSON) > 0 {
		if err := json.Unmarshal(stateJSON, state); err != nil {
			return nil, err
		}
	}

	r.GameState = state
	return &r, nil
}

// GetRoomByID returns a room by its ID
func GetRoomByID(ctx context.Context, id string) (*Room, error) {
	const query = `
SELECT ` + roomColumns + `
FROM rooms
WHERE id = $1`

	row := db.Instance().QueryRowContext(ctx, query, id)
	return roomByRow(row)
}

// GetRooms returns a page of rooms, newest first
func GetRooms(ctx context.Context, start int64, rows int) ([]*Room, error) {
	const query = `
SELECT ` + roomColumns + `
FROM rooms
ORDER BY created DESC, id
OFFSET $1 LIMIT $2`

	res, err := db.Instance().QueryContext(ctx, query, start, rows)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	records := make([]*Room, 0)
	for res.Next() {
		r, err := roomByRow(res)
		if err != nil {
			return nil, err
		}

		records = append(records, r)
	}

	return records, nil
}

// SaveGameState durably writes the game state for the room.
// The write is version-gated: a state at or behind what the store already
// holds is silently skipped, making replays after a retry idempotent
func (r *Room) SaveGameState(ctx context.Context, state *game.State) error {
	stateJSON, err := json.Marshal(state)
	if err != nil {
		return err
	}

	const query = `
UPDATE rooms
SET game_state = $1
WHERE id = $2
  AND COALESCE((game_state->>'version')::bigint, 0) < $3`

	if _, err := db.Instance().ExecContext(ctx, query, stateJSON, r.ID, state.Version); err != nil {
		return err
	}

	r.GameState = state
	return nil
}

// SaveHand writes the game state and every player record in a single
// transaction. A pot settlement can never be observed half-applied
func (r *Room) SaveHand(ctx context.Context, state *game.State, players []*game.Player) error {
	stateJSON, err := json.Marshal(state)
	if err != nil {
		return err
	}

	tx, err := db.Instance().BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	const stateQuery = `
UPDATE rooms
SET game_state = $1
WHERE id = $2
  AND COALESCE((game_state->>'version')::bigint, 0) < $3`

	res, err := tx.ExecContext(ctx, stateQuery, stateJSON, r.ID, state.Version)
	if err != nil {
		rollback(tx)
		return err
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// this version was already committed; replaying is a no-op
		rollback(tx)
		return nil
	}

	const playerQuery = `
UPDATE players
SET chips = $1, hand = $2, is_active = $3
WHERE id = $4
  AND room_id = $5`

	for _, p := range players {
		handJSON, err := json.Marshal(p.Hand)
		if err != nil {
			rollback(tx)
			return err
		}

		if _, err := tx.ExecContext(ctx, playerQuery, p.Chips, handJSON, p.Active, p.ID, r.ID); err != nil {
			rollback(tx)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	r.GameState = state
	return nil
}

// Reload will refresh the data from the database
func (r *Room) Reload(ctx context.Context) error {
	room, err := GetRoomByID(ctx, r.ID)
	if err != nil {
		return err
	}

	*r = *room
	return nil
}

func rollback(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil {
		logrus.WithError(err).Error("could not rollback transaction")
	}
}
