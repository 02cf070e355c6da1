package room

import (
	"context"

	"github.com/sirupsen/logrus"

	"simplepoker-server/pkg/game"
	"simplepoker-server/pkg/table"
)

// Floor dispatches connecting clients to their room's engine.
// An engine is created when the first client for a room arrives and torn
// down when the last one leaves
type Floor struct {
	engines    map[string]*Engine
	connect    chan *Client
	disconnect chan *Client
}

// NewFloor returns a new dispatch object
func NewFloor() *Floor {
	return &Floor{
		engines:    make(map[string]*Engine),
		connect:    make(chan *Client, 256),
		disconnect: make(chan *Client, 256),
	}
}

// Open starts the floor run loop
func (f *Floor) Open() {
	go f.runLoop()
}

func (f *Floor) runLoop() {
	for {
		select {
		case client := <-f.connect:
			logrus.WithField("client", client.String()).Debug("client connected")

			engine, found := f.engines[client.room.ID]
			if !found {
				e, err := f.newEngine(client.room)
				if err != nil {
					logrus.WithError(err).WithField("room", client.room.ID).Error("could not open room engine")
					client.Send(Error(err))
					client.CloseWithReason("could not open room")
					continue
				}

				engine = e
				f.engines[client.room.ID] = engine
			}

			if err := engine.AddClient(client); err != nil {
				logrus.WithError(err).WithField("client", client.String()).Error("could not add client")
				client.Send(Error(err))
				client.CloseWithReason(err.Error())
			}
		case client := <-f.disconnect:
			logrus.WithField("client", client.String()).Debug("client disconnected")

			engine, found := f.engines[client.room.ID]
			if !found {
				logrus.WithField("room", client.room.ID).Warn("room engine not found")
				continue
			}

			if engine.RemoveClient(client) {
				engine.Close()
				delete(f.engines, client.room.ID)
			}
		}
	}
}

func (f *Floor) newEngine(rm *table.Room) (*Engine, error) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	// the record may be stale by the time the first client connects
	if err := rm.Reload(ctx); err != nil {
		return nil, err
	}

	records, err := rm.GetPlayers(ctx)
	if err != nil {
		return nil, err
	}

	players := make([]*game.Player, len(records))
	for i, record := range records {
		players[i] = record.GamePlayer()
	}

	return NewEngine(logrus.StandardLogger(), rm.ID, rm, rm.GameState, players), nil
}

// ClientConnected is called when a client connects to the server
func (f *Floor) ClientConnected(client *Client) {
	f.connect <- client
}

// ClientDisconnected is called when a client disconnects from the server
func (f *Floor) ClientDisconnected(client *Client) {
	f.disconnect <- client
}
