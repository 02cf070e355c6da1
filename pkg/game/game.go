package game

import (
	"github.com/sirupsen/logrus"

	"simplepoker-server/pkg/deck"
)

// dealing layout for a hand
const (
	cardsPerPlayer = 2
	communitySize  = 5
)

// Game is the authoritative state machine for a single room.
// It owns the only mutable aggregate; callers must serialize mutations
// and read through Snapshot(), Players(), or PlayerView()
type Game struct {
	log     logrus.FieldLogger
	players []*Player
	state   *State
	seed    int64
}

// New returns a game in the waiting state with the given players seated in order
func New(logger logrus.FieldLogger, players []*Player) *Game {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Game{
		log:     logger,
		players: players,
		state:   NewState(),
	}
}

// Restore returns a game resumed from a previously stored state
func Restore(logger logrus.FieldLogger, state *State, players []*Player) *Game {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	if state == nil {
		state = NewState()
	}

	return &Game{
		log:     logger,
		players: players,
		state:   state,
	}
}

// SetSeed sets the deck seed for the next Start().
// This should only be used by tests
func (g *Game) SetSeed(seed int64) {
	g.seed = seed
}

// AddPlayer seats a new player.
// Players can only be seated between hands
func (g *Game) AddPlayer(p *Player) error {
	if g.state.Status != StatusWaiting {
		return StateError("players can only join between hands")
	}

	if g.playerByID(p.ID) != nil {
		return ValidationError("player is already seated")
	}

	g.players = append(g.players, p)
	g.state.Version++
	return nil
}

// Start shuffles a fresh deck, deals two hole cards to every player and five
// community cards, and opens the betting round with the first player to act
func (g *Game) Start() error {
	if g.state.Status != StatusWaiting {
		return StateError("game has already started")
	}

	if len(g.players) < 2 {
		return StateError("at least two players are required")
	}

	d := deck.New()
	if g.seed > 0 {
		d.SetSeed(g.seed)
	}
	d.Shuffle()

	hands, community, err := d.Deal(len(g.players), cardsPerPlayer, communitySize)
	if err != nil {
		return err
	}

	for i, p := range g.players {
		p.Hand = hands[i]
	}

	g.state.Status = StatusBetting
	g.state.Deck = d.Cards
	g.state.Community = community
	g.state.Pot = 0
	g.state.CurrentPlayerIndex = 0
	g.state.Winner = nil
	g.state.Version++

	g.log.WithFields(logrus.Fields{
		"players": len(g.players),
		"seed":    d.GetSeed(),
		"version": g.state.Version,
	}).Info("hand started")

	return nil
}

// PerformAction validates and applies an action for the player whose turn it is.
// Validation happens before any mutation, so a failed action leaves the state untouched
func (g *Game) PerformAction(playerID string, action Action) error {
	if g.state.Status != StatusBetting {
		return StateError("no betting round in progress")
	}

	index := g.state.CurrentPlayerIndex
	if index < 0 || index >= len(g.players) {
		return InvariantViolation("current player index is out of range")
	}

	actor := g.players[index]
	if actor.ID != playerID {
		return ErrNotYourTurn
	}

	switch action.Type {
	case ActionCheck:
		// no mutation beyond the turn advance
	case ActionBet:
		if action.Amount <= 0 || action.Amount > actor.Chips {
			return ErrInvalidBetAmount
		}
	case ActionFold:
	default:
		return ErrUnknownAction
	}

	switch action.Type {
	case ActionBet:
		g.state.Pot += action.Amount
		actor.Chips -= action.Amount
	case ActionFold:
		actor.Active = false
	}

	if g.activeCount() <= 1 {
		g.settle()
	} else if err := g.advanceTurn(); err != nil {
		return err
	}

	g.state.Version++
	return nil
}

// settle ends the hand with at most one active player remaining.
// The full pot moves to the sole survivor, if there is one
func (g *Game) settle() {
	g.state.Status = StatusShowdown

	var winner *Player
	for _, p := range g.players {
		if p.Active {
			winner = p
			break
		}
	}

	if winner != nil {
		winner.Chips += g.state.Pot
		g.state.Pot = 0
		g.state.Winner = winner.Clone()

		g.log.WithFields(logrus.Fields{
			"winner": winner.ID,
			"chips":  winner.Chips,
		}).Info("pot settled")
	}
}

// advanceTurn moves the turn pointer to the next active player.
// The walk is bounded to one full cycle; if no active player is found the
// data has violated its own invariants and the turn pointer is left alone
func (g *Game) advanceTurn() error {
	n := len(g.players)
	index := g.state.CurrentPlayerIndex
	for i := 0; i < n; i++ {
		index = (index + 1) % n
		if g.players[index].Active {
			g.state.CurrentPlayerIndex = index
			return nil
		}
	}

	return ErrNoActivePlayer
}

// Reset returns the game to the waiting state.
// Hands and active flags reset; chips persist across hands.
// Reset is callable from any status and is idempotent
func (g *Game) Reset() {
	g.state.Status = StatusWaiting
	g.state.Deck = make(deck.Hand, 0)
	g.state.Community = make(deck.Hand, 0)
	g.state.Pot = 0
	g.state.CurrentPlayerIndex = 0
	g.state.Winner = nil
	g.state.Version++

	for _, p := range g.players {
		p.Hand = make(deck.Hand, 0)
		p.Active = true
	}
}

// Leave marks the player inactive. The record stays seated so their bankroll
// survives, and the hand continues until the next accepted action notices
// only one active player remains
func (g *Game) Leave(playerID string) error {
	p := g.playerByID(playerID)
	if p == nil {
		return ValidationError("unknown player")
	}

	p.Active = false
	g.state.Version++
	return nil
}

func (g *Game) playerByID(id string) *Player {
	for _, p := range g.players {
		if p.ID == id {
			return p
		}
	}

	return nil
}

func (g *Game) activeCount() int {
	count := 0
	for _, p := range g.players {
		if p.Active {
			count++
		}
	}

	return count
}

// Snapshot returns a deep copy of the current state
func (g *Game) Snapshot() *State {
	return g.state.Clone()
}

// Players returns deep copies of the seated players in order
func (g *Game) Players() []*Player {
	players := make([]*Player, len(g.players))
	for i, p := range g.players {
		players[i] = p.Clone()
	}

	return players
}

// PlayerView returns the complete state as seen by the given viewer.
// Hole cards other than the viewer's own are hidden until showdown
func (g *Game) PlayerView(viewerID string) *View {
	players := g.Players()
	if g.state.Status != StatusShowdown {
		for _, p := range players {
			if p.ID != viewerID {
				p.Hand = make(deck.Hand, 0)
			}
		}
	}

	return &View{
		State:   g.Snapshot(),
		Players: players,
	}
}
