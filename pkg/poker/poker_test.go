package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"simplepoker-server/pkg/deck"
)

func TestEvaluate(t *testing.T) {
	community := deck.Hand(deck.CardsFromString("2c,5d,9h,11s,13c"))

	// pair within the hole cards
	rank := Evaluate(deck.CardsFromString("3c,3h"), community)
	assert.Equal(t, HandRank{Score: OnePair, Name: "One Pair"}, rank)

	// pair between hole and community
	rank = Evaluate(deck.CardsFromString("5c,7h"), community)
	assert.Equal(t, OnePair, rank.Score)

	// pair entirely within the community
	rank = Evaluate(deck.CardsFromString("3c,7h"), deck.CardsFromString("2c,2d,9h,11s,13c"))
	assert.Equal(t, OnePair, rank.Score)

	// no pair anywhere
	rank = Evaluate(deck.CardsFromString("3c,7h"), community)
	assert.Equal(t, HandRank{Score: HighCard, Name: "High Card"}, rank)
}

func TestDetermineWinners(t *testing.T) {
	community := deck.Hand(deck.CardsFromString("2c,5d,9h,11s,13c"))

	seats := []Seat{
		{PlayerID: "a", Hole: deck.CardsFromString("3c,7h")},
		{PlayerID: "b", Hole: deck.CardsFromString("5c,7d")},
		{PlayerID: "c", Hole: deck.CardsFromString("4c,8h")},
	}

	winners, results := DetermineWinners(seats, community)
	assert.Equal(t, 1, len(winners))
	assert.Equal(t, "b", winners[0].PlayerID)
	assert.Equal(t, OnePair, winners[0].Rank.Score)

	assert.Equal(t, 3, len(results))
	assert.Equal(t, "b", results[0].PlayerID)
}

func TestDetermineWinners_tie(t *testing.T) {
	community := deck.Hand(deck.CardsFromString("2c,5d,9h,11s,13c"))

	seats := []Seat{
		{PlayerID: "a", Hole: deck.CardsFromString("5c,7h")},
		{PlayerID: "b", Hole: deck.CardsFromString("3c,7d")},
		{PlayerID: "c", Hole: deck.CardsFromString("9c,8h")},
	}

	winners, _ := DetermineWinners(seats, community)
	assert.Equal(t, 2, len(winners))
	assert.Equal(t, "a", winners[0].PlayerID)
	assert.Equal(t, "c", winners[1].PlayerID)
}

func TestDetermineWinners_allHighCard(t *testing.T) {
	community := deck.Hand(deck.CardsFromString("2c,5d,9h,11s,13c"))

	seats := []Seat{
		{PlayerID: "a", Hole: deck.CardsFromString("3c,7h")},
		{PlayerID: "b", Hole: deck.CardsFromString("4c,8d")},
	}

	winners, _ := DetermineWinners(seats, community)
	assert.Equal(t, 2, len(winners))
}
