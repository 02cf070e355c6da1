package room

import (
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"simplepoker-server/pkg/table"
)

// Request is the format we expect from the web client
type Request struct {
	// Action is one of startGame, performAction, resetGame, leaveRoom
	Action string `json:"action"`

	// Kind and Amount describe the player action for performAction
	Kind   string `json:"kind"`
	Amount int    `json:"amount"`

	// Context will be passed back on the direct response
	Context string `json:"context"`
}

// Client is a player connected to a room via websocket
type Client struct {
	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// Close is a channel for closing the client
	Close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error

	send   chan interface{}
	engine *Engine

	player *table.Player
	room   *table.Room
}

// NewClient returns a new client object
func NewClient(conn *websocket.Conn, player *table.Player, room *table.Room) *Client {
	return &Client{
		send:   make(chan interface{}, 256),
		Close:  make(chan string, 1),
		Conn:   conn,
		player: player,
		room:   room,
	}
}

// CloseWithReason asks the write loop to send a close frame to the web client.
// The send is non-blocking; a client already being closed keeps the first reason
func (c *Client) CloseWithReason(reason string) {
	select {
	case c.Close <- reason:
	default:
	}
}

// Send sends a message to the web client.
// The send is non-blocking and at-most-once; a slow client drops messages
// rather than stalling the room
func (c *Client) Send(msg interface{}) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// SendChan returns a read-only channel of outbound messages
func (c *Client) SendChan() <-chan interface{} {
	return c.send
}

// PlayerID returns the connected player's ID
func (c *Client) PlayerID() string {
	return c.player.ID
}

// String returns a traceable identifier for the player and room
func (c *Client) String() string {
	return fmt.Sprintf("%s:%s", c.player.ID, c.room.ID)
}

// ReceivedMessage is called when the server receives a message from a connected client
func (c *Client) ReceivedMessage(req *Request) {
	if c.engine == nil {
		logrus.WithField("req", req).Warn("received message, but engine not found")
		return
	}

	c.engine.ReceivedMessage(c, req)
}
