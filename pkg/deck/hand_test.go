package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHand_AddCard(t *testing.T) {
	hand := make(Hand, 0)
	hand.AddCard(CardFromString("2c"))
	hand.AddCard(CardFromString("3h"))

	assert.Equal(t, "2c,3h", hand.String())
	assert.True(t, hand.HasCard(CardFromString("3h")))
	assert.False(t, hand.HasCard(CardFromString("4h")))
}

func TestHand_FirstCard(t *testing.T) {
	hand := Hand(CardsFromString("5d,6s"))
	assert.Equal(t, CardFromString("5d"), hand.FirstCard())

	empty := make(Hand, 0)
	assert.Nil(t, empty.FirstCard())
}

func TestHand_Clone(t *testing.T) {
	hand := Hand(CardsFromString("5d,6s"))
	clone := hand.Clone()

	assert.Equal(t, hand, clone)

	clone.AddCard(CardFromString("7c"))
	assert.Equal(t, 2, len(hand))
	assert.Equal(t, 3, len(clone))
}

func TestHand_DeepClone(t *testing.T) {
	hand := Hand(CardsFromString("5d,6s"))
	clone := hand.DeepClone()

	clone[0].Rank = 9
	assert.Equal(t, 5, hand[0].Rank)
}
