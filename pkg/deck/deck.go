package deck

import (
	"crypto/sha1" // nolint:gosec
	"encoding/hex"
	"errors"
	"math/rand"
	"time"
)

// ErrEndOfDeck is an error when Draw() is attempted and there are no more cards
var ErrEndOfDeck = errors.New("end of deck reached")

// ErrInsufficientCards is an error when Deal() is attempted and not enough cards remain
var ErrInsufficientCards = errors.New("not enough cards remain to deal")

// Deck represents a playing deck
type Deck struct {
	Cards []*Card `json:"cards"`
	seed  int64
	rng   *rand.Rand
}

// New returns a new deck of cards.
// Important! this deck is unshuffled. You must call the Shuffle() method to shuffle the cards
func New() *Deck {
	d := &Deck{
		seed: -1,
	}

	d.buildDeck()
	return d
}

// SetSeed will set the seed
// This should only be used by tests. Setting the seed is normally handled when you call Shuffle()
func (d *Deck) SetSeed(seed int64) {
	d.seed = seed
	d.rng = rand.New(rand.NewSource(seed))
}

func (d *Deck) buildDeck() {
	cards := make([]*Card, 0, 52)
	for _, suit := range []Suit{Clubs, Diamonds, Hearts, Spades} {
		for rank := 1; rank <= 13; rank++ {
			cards = append(cards, &Card{
				Rank: rank,
				Suit: suit,
			})
		}
	}

	d.Cards = cards
}

// Shuffle will shuffle the deck of cards using a Fisher-Yates pass over the full length
func (d *Deck) Shuffle() {
	// we always want to shuffle from a full deck.
	// this check here is to make sure we aren't double building the deck
	if len(d.Cards) != 52 {
		d.buildDeck()
	}

	if d.rng == nil {
		d.SetSeed(time.Now().UnixNano())
	}

	for j := len(d.Cards) - 1; j > 0; j-- {
		i := d.rng.Intn(j + 1)

		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	}
}

// GetSeed returns the seed used to shuffle the deck
func (d *Deck) GetSeed() int64 {
	return d.seed
}

// HashCode returns a SHA1 hash code of the deck.
func (d *Deck) HashCode() string {
	hash := sha1.New() // nolint:gosec
	for _, card := range d.Cards {
		_, _ = hash.Write([]byte(card.String()))
	}

	return hex.EncodeToString(hash.Sum(nil)[:])
}

// Draw will draw the next card
// If there are no more cards, an ErrEndOfDeck is returned along with a nil card.
func (d *Deck) Draw() (*Card, error) {
	if len(d.Cards) <= 0 {
		return nil, ErrEndOfDeck
	}

	card := d.Cards[0]
	d.Cards = d.Cards[1:]

	return card, nil
}

// CanDraw returns true if there are {want} cards left in the deck
func (d *Deck) CanDraw(want int) bool {
	return len(d.Cards) >= want
}

// CardsLeft returns the number of cards left in the deck
func (d *Deck) CardsLeft() int {
	return len(d.Cards)
}

// Deal deals cards round-robin into playerCount hands of cardsPerPlayer cards each,
// followed by a community pile of communitySize cards.
// Every player receives a card before any player receives their next card.
// If the deck cannot cover the request, ErrInsufficientCards is returned and the deck is untouched.
func (d *Deck) Deal(playerCount, cardsPerPlayer, communitySize int) ([]Hand, Hand, error) {
	need := playerCount*cardsPerPlayer + communitySize
	if !d.CanDraw(need) {
		return nil, nil, ErrInsufficientCards
	}

	hands := make([]Hand, playerCount)
	for i := range hands {
		hands[i] = make(Hand, 0, cardsPerPlayer)
	}

	for i := 0; i < cardsPerPlayer; i++ {
		for j := 0; j < playerCount; j++ {
			card, err := d.Draw()
			if err != nil {
				return nil, nil, err
			}

			hands[j].AddCard(card)
		}
	}

	community := make(Hand, 0, communitySize)
	for i := 0; i < communitySize; i++ {
		card, err := d.Draw()
		if err != nil {
			return nil, nil, err
		}

		community.AddCard(card)
	}

	return hands, community, nil
}
