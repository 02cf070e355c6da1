package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAction(t *testing.T) {
	action, err := NewAction("bet", 100)
	assert.NoError(t, err)
	assert.Equal(t, Action{Type: ActionBet, Amount: 100}, action)

	action, err = NewAction("check", 0)
	assert.NoError(t, err)
	assert.Equal(t, Check(), action)

	action, err = NewAction("fold", 0)
	assert.NoError(t, err)
	assert.Equal(t, Fold(), action)

	_, err = NewAction("raise", 100)
	assert.Equal(t, ErrUnknownAction, err)

	_, err = NewAction("", 0)
	assert.Equal(t, ErrUnknownAction, err)
}
