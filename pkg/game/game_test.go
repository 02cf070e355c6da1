package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestGame(t *testing.T, names ...string) *Game {
	t.Helper()

	players := make([]*Player, len(names))
	for i, name := range names {
		players[i] = NewPlayer(name, name)
	}

	g := New(nil, players)
	g.SetSeed(1)
	return g
}

func TestGame_Start(t *testing.T) {
	g := newTestGame(t, "a", "b", "c")

	assert.NoError(t, g.Start())

	state := g.Snapshot()
	assert.Equal(t, StatusBetting, state.Status)
	assert.Equal(t, 0, state.Pot)
	assert.Equal(t, 0, state.CurrentPlayerIndex)
	assert.Nil(t, state.Winner)
	assert.Equal(t, 5, len(state.Community))
	assert.Equal(t, 52-3*2-5, len(state.Deck))

	for _, p := range g.Players() {
		assert.Equal(t, 2, len(p.Hand))
		assert.Equal(t, DefaultChips, p.Chips)
		assert.True(t, p.Active)
	}

	// starting twice is a state error
	err := g.Start()
	assert.Equal(t, StateError("game has already started"), err)
}

func TestGame_Start_needsTwoPlayers(t *testing.T) {
	g := newTestGame(t, "a")

	err := g.Start()
	assert.Equal(t, StateError("at least two players are required"), err)
	assert.Equal(t, StatusWaiting, g.Snapshot().Status)
}

func TestGame_AddPlayer(t *testing.T) {
	g := newTestGame(t, "a", "b")

	assert.NoError(t, g.AddPlayer(NewPlayer("c", "c")))
	assert.Equal(t, ValidationError("player is already seated"), g.AddPlayer(NewPlayer("c", "c")))

	assert.NoError(t, g.Start())
	err := g.AddPlayer(NewPlayer("d", "d"))
	assert.Equal(t, StateError("players can only join between hands"), err)
	assert.Equal(t, 3, len(g.Players()))
}

func TestGame_PerformAction_turnAdvance(t *testing.T) {
	g := newTestGame(t, "a", "b", "c")
	assert.NoError(t, g.Start())

	assert.NoError(t, g.PerformAction("a", Check()))
	assert.Equal(t, 1, g.Snapshot().CurrentPlayerIndex)

	assert.NoError(t, g.PerformAction("b", Check()))
	assert.Equal(t, 2, g.Snapshot().CurrentPlayerIndex)

	assert.NoError(t, g.PerformAction("c", Check()))
	assert.Equal(t, 0, g.Snapshot().CurrentPlayerIndex)
}

func TestGame_PerformAction_skipsInactive(t *testing.T) {
	g := newTestGame(t, "a", "b", "c")
	assert.NoError(t, g.Start())

	// knock out the middle player directly
	assert.NoError(t, g.Leave("b"))

	assert.NoError(t, g.PerformAction("a", Check()))
	assert.Equal(t, 2, g.Snapshot().CurrentPlayerIndex)
}

func TestGame_PerformAction_notYourTurn(t *testing.T) {
	g := newTestGame(t, "a", "b")
	assert.NoError(t, g.Start())

	err := g.PerformAction("b", Check())
	assert.Equal(t, ErrNotYourTurn, err)
	assert.Equal(t, 0, g.Snapshot().CurrentPlayerIndex)
}

func TestGame_PerformAction_wrongPhase(t *testing.T) {
	g := newTestGame(t, "a", "b")

	err := g.PerformAction("a", Check())
	assert.Equal(t, StateError("no betting round in progress"), err)
}

func TestGame_PerformAction_betValidation(t *testing.T) {
	g := newTestGame(t, "a", "b")
	assert.NoError(t, g.Start())

	assert.Equal(t, ErrInvalidBetAmount, g.PerformAction("a", Bet(0)))
	assert.Equal(t, ErrInvalidBetAmount, g.PerformAction("a", Bet(-5)))
	assert.Equal(t, ErrInvalidBetAmount, g.PerformAction("a", Bet(DefaultChips+1)))

	// failed validation leaves pot, chips, and the turn untouched
	state := g.Snapshot()
	assert.Equal(t, 0, state.Pot)
	assert.Equal(t, 0, state.CurrentPlayerIndex)
	assert.Equal(t, DefaultChips, g.Players()[0].Chips)
}

func TestGame_PerformAction_bet(t *testing.T) {
	g := newTestGame(t, "a", "b")
	assert.NoError(t, g.Start())

	assert.NoError(t, g.PerformAction("a", Bet(100)))

	state := g.Snapshot()
	assert.Equal(t, 100, state.Pot)
	assert.Equal(t, 1, state.CurrentPlayerIndex)
	assert.Equal(t, 900, g.Players()[0].Chips)
}

func TestGame_endToEnd(t *testing.T) {
	g := newTestGame(t, "a", "b")
	assert.NoError(t, g.Start())

	state := g.Snapshot()
	assert.Equal(t, StatusBetting, state.Status)
	assert.Equal(t, 0, state.Pot)
	assert.Equal(t, 0, state.CurrentPlayerIndex)
	assert.Equal(t, 5, len(state.Community))

	assert.NoError(t, g.PerformAction("a", Bet(100)))
	state = g.Snapshot()
	assert.Equal(t, 100, state.Pot)
	assert.Equal(t, 1, state.CurrentPlayerIndex)
	assert.Equal(t, 900, g.Players()[0].Chips)

	assert.NoError(t, g.PerformAction("b", Fold()))
	state = g.Snapshot()
	assert.Equal(t, StatusShowdown, state.Status)
	assert.NotNil(t, state.Winner)
	assert.Equal(t, "a", state.Winner.ID)

	// the full pot moved to the sole survivor and the pot is cleared
	assert.Equal(t, 1000, g.Players()[0].Chips)
	assert.Equal(t, 0, state.Pot)
}

func TestGame_foldToZeroSurvivors(t *testing.T) {
	g := newTestGame(t, "a", "b")
	assert.NoError(t, g.Start())

	assert.NoError(t, g.Leave("b"))
	assert.NoError(t, g.PerformAction("a", Fold()))

	state := g.Snapshot()
	assert.Equal(t, StatusShowdown, state.Status)
	assert.Nil(t, state.Winner)
}

func TestGame_advanceTurn_noActivePlayers(t *testing.T) {
	g := newTestGame(t, "a", "b")
	assert.NoError(t, g.Start())

	for _, p := range g.players {
		p.Active = false
	}

	// the walk is bounded to one full cycle and leaves the turn pointer alone
	assert.Equal(t, ErrNoActivePlayer, g.advanceTurn())
	assert.Equal(t, 0, g.Snapshot().CurrentPlayerIndex)
}

func TestGame_PerformAction_corruptTurnIndex(t *testing.T) {
	players := []*Player{NewPlayer("a", "a"), NewPlayer("b", "b")}

	// a stored state can claim a turn index past the seated players
	state := NewState()
	state.Status = StatusBetting
	state.CurrentPlayerIndex = 5
	g := Restore(nil, state, players)

	before := g.Snapshot()
	err := g.PerformAction("a", Check())
	assert.Equal(t, InvariantViolation("current player index is out of range"), err)
	assert.Equal(t, before, g.Snapshot())
}

func TestGame_Reset(t *testing.T) {
	g := newTestGame(t, "a", "b")
	assert.NoError(t, g.Start())
	assert.NoError(t, g.PerformAction("a", Bet(100)))
	assert.NoError(t, g.PerformAction("b", Fold()))

	g.Reset()

	state := g.Snapshot()
	assert.Equal(t, StatusWaiting, state.Status)
	assert.Equal(t, 0, state.Pot)
	assert.Equal(t, 0, len(state.Deck))
	assert.Equal(t, 0, len(state.Community))
	assert.Nil(t, state.Winner)

	for _, p := range g.Players() {
		assert.Equal(t, 0, len(p.Hand))
		assert.True(t, p.Active)
	}

	// chips persist across hands
	assert.Equal(t, 1000, g.Players()[0].Chips)
	assert.Equal(t, 900, g.Players()[1].Chips)

	// reset is idempotent; the version still advances because the
	// transition was committed
	first := g.Snapshot()
	g.Reset()
	second := g.Snapshot()
	assert.Equal(t, first.Version+1, second.Version)
	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, first.Deck, second.Deck)
	assert.Equal(t, first.Community, second.Community)
	assert.Equal(t, first.Pot, second.Pot)
	assert.Equal(t, first.CurrentPlayerIndex, second.CurrentPlayerIndex)
	assert.Equal(t, first.Winner, second.Winner)
}

func TestGame_Leave(t *testing.T) {
	g := newTestGame(t, "a", "b", "c")
	assert.NoError(t, g.Start())

	assert.Equal(t, ValidationError("unknown player"), g.Leave("nope"))

	// leaving does not immediately end the hand, even down to one survivor
	assert.NoError(t, g.Leave("b"))
	assert.NoError(t, g.Leave("c"))
	assert.Equal(t, StatusBetting, g.Snapshot().Status)

	// the next accepted action runs the survivor check
	assert.NoError(t, g.PerformAction("a", Check()))
	state := g.Snapshot()
	assert.Equal(t, StatusShowdown, state.Status)
	assert.Equal(t, "a", state.Winner.ID)
}

func TestGame_PlayerView(t *testing.T) {
	g := newTestGame(t, "a", "b")
	assert.NoError(t, g.Start())

	view := g.PlayerView("a")
	assert.Equal(t, 2, len(view.Players[0].Hand))
	assert.Equal(t, 0, len(view.Players[1].Hand))

	// hole cards are public at showdown
	assert.NoError(t, g.PerformAction("a", Fold()))
	view = g.PlayerView("a")
	assert.Equal(t, 2, len(view.Players[1].Hand))
}

func TestGame_versionIncrements(t *testing.T) {
	g := newTestGame(t, "a", "b")

	v := g.Snapshot().Version
	assert.NoError(t, g.Start())
	assert.Greater(t, g.Snapshot().Version, v)

	v = g.Snapshot().Version
	assert.NoError(t, g.PerformAction("a", Check()))
	assert.Greater(t, g.Snapshot().Version, v)

	// rejected actions do not commit a transition
	v = g.Snapshot().Version
	assert.Error(t, g.PerformAction("a", Bet(0)))
	assert.Equal(t, v, g.Snapshot().Version)
}
