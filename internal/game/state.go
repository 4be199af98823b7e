package game

import (
	"errors"
	"fmt"
	"strings"
)

const (
	DeckSize       = 8
	HandSize       = 4
	MaxElixir      = 10.0
	StartingElixir = 5.0
)

var (
	ErrInvalidDeck        = errors.New("deck must contain exactly 8 cards")
	ErrNotInHand          = errors.New("card is not in hand")
	ErrInsufficientElixir = errors.New("not enough elixir")
)

// Player owns a fixed deck, a four-card hand drawn from it cyclically, and
// an elixir pool capped at MaxElixir.
//
// The hand is not a separate list of cards: each slot stores an index into
// the deck, and next counts every card ever drawn. A played slot is refilled
// from deck[next % DeckSize].
type Player struct {
	Name   string
	deck   [DeckSize]*Card
	hand   [HandSize]int
	next   int
	elixir float64
}

// NewPlayer validates the deck size and deals the first four cards.
func NewPlayer(deck []*Card, name string) (*Player, error) {
	if len(deck) != DeckSize {
		return nil, fmt.Errorf("%w (got %d)", ErrInvalidDeck, len(deck))
	}
	if name == "" {
		name = "Player"
	}
	p := &Player{Name: name, elixir: StartingElixir}
	for i, c := range deck {
		if c == nil {
			return nil, fmt.Errorf("%w (slot %d is empty)", ErrInvalidDeck, i)
		}
		p.deck[i] = c
	}
	for i := range p.hand {
		p.hand[i] = i
	}
	p.next = HandSize
	return p, nil
}

func (p *Player) Elixir() float64 {
	return p.elixir
}

// AddElixir regenerates elixir, clamped to [0, MaxElixir].
func (p *Player) AddElixir(amount float64) {
	p.elixir += amount
	if p.elixir > MaxElixir {
		p.elixir = MaxElixir
	}
	if p.elixir < 0 {
		p.elixir = 0
	}
}

// Hand returns the visible cards in slot order.
func (p *Player) Hand() []*Card {
	out := make([]*Card, HandSize)
	for i, idx := range p.hand {
		out[i] = p.deck[idx]
	}
	return out
}

// Deck returns the deck in its fixed creation order.
func (p *Player) Deck() []*Card {
	out := make([]*Card, DeckSize)
	copy(out, p.deck[:])
	return out
}

// NextCard returns the card that refills the next played slot.
func (p *Player) NextCard() *Card {
	return p.deck[p.next%DeckSize]
}

// CardsDrawn is the cycle cursor: the number of cards dealt so far.
func (p *Player) CardsDrawn() int {
	return p.next
}

func (p *Player) slotOf(card *Card) int {
	for i, idx := range p.hand {
		if p.deck[idx] == card {
			return i
		}
	}
	return -1
}

// CanPlay reports whether the card is in hand and affordable.
func (p *Player) CanPlay(card *Card) bool {
	return card != nil && p.slotOf(card) >= 0 && p.elixir >= float64(card.Cost)
}

// Playable returns the hand cards that cost no more than the current elixir.
func (p *Player) Playable() []*Card {
	var out []*Card
	for _, c := range p.Hand() {
		if p.elixir >= float64(c.Cost) {
			out = append(out, c)
		}
	}
	return out
}

// Play spends the card's cost and refills its hand slot from the deck.
func (p *Player) Play(card *Card) error {
	slot := p.slotOf(card)
	if slot < 0 {
		return fmt.Errorf("%w: %s", ErrNotInHand, cardName(card))
	}
	if p.elixir < float64(card.Cost) {
		return fmt.Errorf("%w: %s costs %d, have %.1f", ErrInsufficientElixir, card.Name, card.Cost, p.elixir)
	}
	p.elixir -= float64(card.Cost)
	p.hand[slot] = p.next % DeckSize
	p.next++
	return nil
}

// AverageElixir is the mean cost of the deck.
func (p *Player) AverageElixir() float64 {
	total := 0
	for _, c := range p.deck {
		total += c.Cost
	}
	return float64(total) / DeckSize
}

// Clone returns an independent snapshot sharing the card definitions.
func (p *Player) Clone() *Player {
	cp := *p
	return &cp
}

func (p *Player) String() string {
	names := make([]string, 0, HandSize)
	for _, c := range p.Hand() {
		names = append(names, c.String())
	}
	return fmt.Sprintf("%s: [%s] (%.1f elixir)", p.Name, strings.Join(names, ", "), p.elixir)
}

func cardName(c *Card) string {
	if c == nil {
		return "(nil)"
	}
	return c.Name
}
