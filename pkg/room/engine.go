package room

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"simplepoker-server/pkg/game"
)

// ErrRoomClosed is returned for any operation on a torn-down room
var ErrRoomClosed = errors.New("room is closed")

// Store is the durable backend for a room's hand.
// The game state and the player records must commit in one transaction
type Store interface {
	SaveHand(ctx context.Context, state *game.State, players []*game.Player) error
}

const (
	persistAttempts = 3
	persistBackoff  = time.Millisecond * 100
	requestTimeout  = time.Second * 10
)

// Engine drives a single room. It is the room's one logical writer: every
// mutation and the publish that follows it run under the same lock, so turn
// validation cannot race and outbound events preserve commit order.
// The engine owns its broadcast channel; there is no shared transport
type Engine struct {
	log    logrus.FieldLogger
	roomID string
	store  Store
	game   *game.Game

	mu     sync.Mutex
	closed bool

	clientsMu sync.RWMutex
	clients   map[*Client]bool
}

// NewEngine returns an engine for the room, resuming from the stored state
func NewEngine(logger logrus.FieldLogger, roomID string, store Store, state *game.State, players []*game.Player) *Engine {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	log := logger.WithField("room", roomID)

	return &Engine{
		log:     log,
		roomID:  roomID,
		store:   store,
		game:    game.Restore(log, state, players),
		clients: make(map[*Client]bool),
	}
}

// StartGame deals a fresh hand and opens the betting round
func (e *Engine) StartGame(ctx context.Context, playerID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrRoomClosed
	}

	if err := e.game.Start(); err != nil {
		return err
	}

	if err := e.persist(ctx); err != nil {
		return err
	}

	e.publish(EventGameStarted, playerID)
	return nil
}

// PerformAction validates and applies a player action
func (e *Engine) PerformAction(ctx context.Context, playerID string, action game.Action) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrRoomClosed
	}

	if err := e.game.PerformAction(playerID, action); err != nil {
		return err
	}

	if err := e.persist(ctx); err != nil {
		return err
	}

	e.publish(EventPlayerAction, playerID)
	return nil
}

// ResetGame returns the room to the waiting state
func (e *Engine) ResetGame(ctx context.Context, playerID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrRoomClosed
	}

	e.game.Reset()

	if err := e.persist(ctx); err != nil {
		return err
	}

	e.publish(EventGameReset, playerID)
	return nil
}

// LeaveRoom marks the player inactive for the rest of the hand
func (e *Engine) LeaveRoom(ctx context.Context, playerID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrRoomClosed
	}

	if err := e.game.Leave(playerID); err != nil {
		return err
	}

	if err := e.persist(ctx); err != nil {
		return err
	}

	e.publish(EventPlayerLeft, playerID)
	return nil
}

// persist durably commits the current state before anything is published.
// Store failures get a bounded retry with doubling backoff; exhausting the
// retries surfaces a PersistenceError to the caller
func (e *Engine) persist(ctx context.Context) error {
	state := e.game.Snapshot()
	players := e.game.Players()

	backoff := persistBackoff
	var err error
	for attempt := 0; attempt < persistAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return &game.PersistenceError{Op: "save game state", Err: ctx.Err()}
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		if err = e.store.SaveHand(ctx, state, players); err == nil {
			return nil
		}

		e.log.WithError(err).WithField("attempt", attempt+1).Warn("could not save game state")
	}

	return &game.PersistenceError{Op: "save game state", Err: err}
}

// publish fans the complete post-transition state out to every connected
// client, censored per recipient. Sends are fire-and-forget
func (e *Engine) publish(eventType EventType, actorID string) {
	e.clientsMu.RLock()
	defer e.clientsMu.RUnlock()

	for client := range e.clients {
		event := &Event{
			Type:     eventType,
			RoomID:   e.roomID,
			PlayerID: actorID,
			Payload:  e.game.PlayerView(client.PlayerID()),
		}

		if !client.Send(event) {
			e.log.WithField("player", client.PlayerID()).Warn("dropping event for slow client")
		}
	}
}

// AddClient connects a client to the room. A player not yet seated is seated
// if a hand is not in progress
func (e *Engine) AddClient(client *Client) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrRoomClosed
	}

	client.engine = e

	switch err := e.game.AddPlayer(client.player.GamePlayer()); err.(type) {
	case nil, game.ValidationError, game.StateError:
		// already seated, or a hand is in progress; either way they can watch
	default:
		return err
	}

	e.clientsMu.Lock()
	e.clients[client] = true
	e.clientsMu.Unlock()

	e.publish(EventPlayerJoined, client.PlayerID())
	return nil
}

// RemoveClient disconnects a client and reports whether it was the last one
func (e *Engine) RemoveClient(client *Client) (lastClient bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.clientsMu.Lock()
	delete(e.clients, client)
	nClients := len(e.clients)
	e.clientsMu.Unlock()

	if nClients > 0 {
		e.publish(EventPlayerLeft, client.PlayerID())
		return false
	}

	return true
}

// Close tears the engine down. Remaining clients are asked to close their
// connections, and further operations fail with ErrRoomClosed
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.closed = true

	e.clientsMu.Lock()
	for client := range e.clients {
		client.CloseWithReason("room is closed")
		delete(e.clients, client)
	}
	e.clientsMu.Unlock()

	e.log.Debug("room engine closed")
}

// ReceivedMessage dispatches a client request and sends the direct response
func (e *Engine) ReceivedMessage(c *Client, req *Request) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	var err error
	switch req.Action {
	case "startGame":
		err = e.StartGame(ctx, c.PlayerID())
	case "performAction":
		var action game.Action
		if action, err = game.NewAction(req.Kind, req.Amount); err == nil {
			err = e.PerformAction(ctx, c.PlayerID(), action)
		}
	case "resetGame":
		err = e.ResetGame(ctx, c.PlayerID())
	case "leaveRoom":
		err = e.LeaveRoom(ctx, c.PlayerID())
	default:
		err = game.ValidationError("unknown request")
	}

	if err != nil {
		c.Send(Error(err, req.Context))
		return
	}

	c.Send(OK(req.Context))
}
