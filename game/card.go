package game

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// Effect is the closed set of card outcomes: Gain, Lose, MoveTo, MoveRelative and GoToJail.
type Effect interface {
	isEffect()
}

type Gain struct{ Amount int }

type Lose struct{ Amount int }

type MoveTo struct{ Position int }

type MoveRelative struct{ Offset int }

type GoToJail struct{}

func (Gain) isEffect()         {}
func (Lose) isEffect()         {}
func (MoveTo) isEffect()       {}
func (MoveRelative) isEffect() {}
func (GoToJail) isEffect()     {}

type Card struct {
	ID     string
	Text   string
	Effect Effect
}

type DeckKind string

const (
	ChanceDeck         DeckKind = "chance"
	CommunityChestDeck DeckKind = "community-chest"
)

var chanceCards = []Card{
	{ID: "ch1", Text: "Advance to GO. Collect $200.", Effect: MoveTo{Position: 0}},
	{ID: "ch2", Text: "Go directly to Jail. Do not pass GO.", Effect: GoToJail{}},
	{ID: "ch3", Text: "Bank pays you a dividend of $50.", Effect: Gain{Amount: 50}},
	{ID: "ch4", Text: "Go back 3 spaces.", Effect: MoveRelative{Offset: -3}},
	{ID: "ch5", Text: "Speeding fine. Pay $75.", Effect: Lose{Amount: 75}},
	{ID: "ch6", Text: "Your building loan matures. Collect $150.", Effect: Gain{Amount: 150}},
	{ID: "ch7", Text: "You have been elected chairman of the board. Pay $100.", Effect: Lose{Amount: 100}},
	{ID: "ch8", Text: "Advance to Boardwalk.", Effect: MoveTo{Position: 23}},
	{ID: "ch9", Text: "Bank error in your favor. Collect $100.", Effect: Gain{Amount: 100}},
	{ID: "ch10", Text: "Pay poor tax of $50.", Effect: Lose{Amount: 50}},
}

var communityChestCards = []Card{
	{ID: "cc1", Text: "Advance to GO. Collect $200.", Effect: MoveTo{Position: 0}},
	{ID: "cc2", Text: "Bank error in your favor. Collect $200.", Effect: Gain{Amount: 200}},
	{ID: "cc3", Text: "Doctor's fee. Pay $50.", Effect: Lose{Amount: 50}},
	{ID: "cc4", Text: "Go directly to Jail. Do not pass GO.", Effect: GoToJail{}},
	{ID: "cc5", Text: "Holiday fund matures. Collect $100.", Effect: Gain{Amount: 100}},
	{ID: "cc6", Text: "Income tax refund. Collect $20.", Effect: Gain{Amount: 20}},
	{ID: "cc7", Text: "Life insurance matures. Collect $100.", Effect: Gain{Amount: 100}},
	{ID: "cc8", Text: "Hospital fees. Pay $100.", Effect: Lose{Amount: 100}},
	{ID: "cc9", Text: "School fees. Pay $50.", Effect: Lose{Amount: 50}},
	{ID: "cc10", Text: "You inherit $100.", Effect: Gain{Amount: 100}},
}

// CardPool returns the fixed cards of a deck kind.
func CardPool(kind DeckKind) []Card {
	switch kind {
	case ChanceDeck:
		return chanceCards
	case CommunityChestDeck:
		return communityChestCards
	default:
		panic(fmt.Sprintf("unknown deck kind %q", kind))
	}
}

// Deck is an ordering of a kind's card pool plus a draw cursor. Order holds card
// ids so a deck survives a round trip through JSON.
type Deck struct {
	Kind   DeckKind `json:"kind"`
	Order  []string `json:"order"`
	Cursor int      `json:"cursor"`
}

// NewDeck returns a freshly shuffled deck of the given kind with the cursor at 0.
func NewDeck(kind DeckKind, rng *rand.Rand) Deck {
	pool := CardPool(kind)
	order := make([]string, len(pool))
	for i, c := range pool {
		order[i] = c.ID
	}
	rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	return Deck{Kind: kind, Order: order}
}

// Draw returns the card under the cursor and the deck that follows it. Drawing
// the last card yields a brand-new shuffled deck of the same kind.
func (d Deck) Draw(rng *rand.Rand) (Card, Deck) {
	if len(d.Order) == 0 || d.Cursor >= len(d.Order) {
		d = NewDeck(d.Kind, rng)
	}
	card, ok := CardByID(d.Kind, d.Order[d.Cursor])
	if !ok {
		panic(fmt.Sprintf("card %q not in %s pool", d.Order[d.Cursor], d.Kind))
	}
	if d.Cursor+1 >= len(d.Order) {
		return card, NewDeck(d.Kind, rng)
	}
	return card, Deck{Kind: d.Kind, Order: d.Order, Cursor: d.Cursor + 1}
}

// Valid reports whether the deck can be drawn from: a known kind, a cursor
// inside the order and only ids from that kind's pool.
func (d Deck) Valid() bool {
	if d.Kind != ChanceDeck && d.Kind != CommunityChestDeck {
		return false
	}
	if d.Cursor < 0 || d.Cursor >= len(d.Order) {
		return false
	}
	for _, id := range d.Order {
		if _, ok := CardByID(d.Kind, id); !ok {
			return false
		}
	}
	return true
}

// CardByID looks a card up in the pool of the given kind.
func CardByID(kind DeckKind, id string) (Card, bool) {
	for _, c := range CardPool(kind) {
		if c.ID == id {
			return c, true
		}
	}
	return Card{}, false
}
