package poker

import (
	"sort"

	"simplepoker-server/pkg/deck"
)

// hand scores, from worst to best
const (
	HighCard = iota
	OnePair
)

// HandRank is a comparable score for a player's best hand
type HandRank struct {
	Score int    `json:"score"`
	Name  string `json:"name"`
}

// Seat pairs a player with their hole cards for winner determination
type Seat struct {
	PlayerID string
	Hole     deck.Hand
}

// Result is the evaluated rank for a single seat
type Result struct {
	PlayerID string   `json:"playerId"`
	Rank     HandRank `json:"rank"`
}

// Evaluate scores the seven cards formed by the hole cards and the community cards.
// The scale is deliberately shallow: one pair beats high card and nothing else exists.
func Evaluate(hole, community deck.Hand) HandRank {
	rankCounts := make(map[int]int)
	for _, card := range hole {
		rankCounts[card.Rank]++
	}
	for _, card := range community {
		rankCounts[card.Rank]++
	}

	for _, count := range rankCounts {
		if count >= 2 {
			return HandRank{Score: OnePair, Name: "One Pair"}
		}
	}

	return HandRank{Score: HighCard, Name: "High Card"}
}

// DetermineWinners evaluates every seat against the community cards and returns
// the seats sharing the best score as co-winners, along with all results sorted
// descending by score. Ties are not broken further.
func DetermineWinners(seats []Seat, community deck.Hand) ([]Result, []Result) {
	results := make([]Result, len(seats))
	for i, seat := range seats {
		results[i] = Result{
			PlayerID: seat.PlayerID,
			Rank:     Evaluate(seat.Hole, community),
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Rank.Score > results[j].Rank.Score
	})

	winners := make([]Result, 0, len(results))
	for _, result := range results {
		if result.Rank.Score < results[0].Rank.Score {
			break
		}

		winners = append(winners, result)
	}

	return winners, results
}
