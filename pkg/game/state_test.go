package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestState_roundTrip(t *testing.T) {
	g := newTestGame(t, "a", "b")
	assert.NoError(t, g.Start())
	assert.NoError(t, g.PerformAction("a", Bet(250)))
	assert.NoError(t, g.PerformAction("b", Fold()))

	state := g.Snapshot()

	b, err := json.Marshal(state)
	assert.NoError(t, err)

	var decoded State
	assert.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, *state, decoded)
}

func TestState_Clone(t *testing.T) {
	g := newTestGame(t, "a", "b")
	assert.NoError(t, g.Start())

	snapshot := g.Snapshot()

	// mutating the snapshot must not touch the live state
	snapshot.Pot = 9999
	snapshot.Deck[0].Rank = 0
	assert.Equal(t, 0, g.Snapshot().Pot)
	assert.NotEqual(t, 0, g.Snapshot().Deck[0].Rank)
}
