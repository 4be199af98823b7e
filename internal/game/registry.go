package game

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownCard   = errors.New("card not found in catalog")
	ErrDuplicateCard = errors.New("duplicate card name")
	ErrInvalidCard   = errors.New("invalid card definition")
)

// Catalog is an immutable registry of card definitions keyed by name.
// Cards returned from a catalog are shared; callers must not mutate them.
type Catalog struct {
	byName map[string]*Card
	names  []string // sorted
}

// NewCatalog builds a catalog from the given cards.
func NewCatalog(cards ...*Card) (*Catalog, error) {
	c := &Catalog{byName: make(map[string]*Card, len(cards))}
	for _, card := range cards {
		if card == nil {
			return nil, fmt.Errorf("%w: nil card", ErrInvalidCard)
		}
		if err := card.validate(); err != nil {
			return nil, err
		}
		if _, ok := c.byName[card.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateCard, card.Name)
		}
		c.byName[card.Name] = card
		c.names = append(c.names, card.Name)
	}
	sort.Strings(c.names)
	return c, nil
}

// DefaultCatalog returns the ten reference cards.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(
		Knight(),
		Archers(),
		Giant(),
		Fireball(),
		Musketeer(),
		MiniPekka(),
		HogRider(),
		Wizard(),
		Cannon(),
		InfernoTower(),
	)
	if err != nil {
		panic(fmt.Sprintf("default catalog: %v", err))
	}
	return c
}

// Lookup returns the card with the given name.
func (c *Catalog) Lookup(name string) (*Card, error) {
	card, ok := c.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCard, name)
	}
	return card, nil
}

// MustLookup is Lookup for static setups. Panics if the card is not found.
func (c *Catalog) MustLookup(name string) *Card {
	card, err := c.Lookup(name)
	if err != nil {
		panic(err.Error())
	}
	return card
}

// LookupAll resolves a list of names, failing on the first unknown one.
func (c *Catalog) LookupAll(names []string) ([]*Card, error) {
	cards := make([]*Card, 0, len(names))
	for _, n := range names {
		card, err := c.Lookup(n)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// Names returns all card names in sorted order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Cards returns all cards ordered by name.
func (c *Catalog) Cards() []*Card {
	out := make([]*Card, 0, len(c.names))
	for _, n := range c.names {
		out = append(out, c.byName[n])
	}
	return out
}

func (c *Catalog) Len() int {
	return len(c.names)
}

// --- YAML card files ---

// CatalogFile is the top-level YAML structure of a card file.
type CatalogFile struct {
	Cards []CardDef `yaml:"cards"`
}

// CardDef is one card in a card file. Enum fields use their String forms.
type CardDef struct {
	Name         string  `yaml:"name"`
	Type         string  `yaml:"type"`
	Cost         int     `yaml:"cost"`
	Rarity       string  `yaml:"rarity"`
	Target       string  `yaml:"target"`
	Damage       int     `yaml:"damage"`
	HitSpeed     float64 `yaml:"hit_speed"`
	Range        float64 `yaml:"range"`
	AreaDamage   bool    `yaml:"area_damage"`
	SplashRadius float64 `yaml:"splash_radius"`
}

// Card converts the definition into a Card.
func (d CardDef) Card() (*Card, error) {
	ct, err := ParseCardType(d.Type)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidCard, d.Name, err)
	}
	rarity, err := ParseRarity(d.Rarity)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidCard, d.Name, err)
	}
	target, err := ParseTargetType(d.Target)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidCard, d.Name, err)
	}
	return &Card{
		Name:         d.Name,
		CardType:     ct,
		Cost:         d.Cost,
		Rarity:       rarity,
		Target:       target,
		Damage:       d.Damage,
		HitSpeed:     d.HitSpeed,
		Range:        d.Range,
		AreaDamage:   d.AreaDamage,
		SplashRadius: d.SplashRadius,
	}, nil
}

// ParseCatalog decodes a YAML card file.
func ParseCatalog(data []byte) (*Catalog, error) {
	var cf CatalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse card YAML: %w", err)
	}
	cards := make([]*Card, 0, len(cf.Cards))
	for _, def := range cf.Cards {
		card, err := def.Card()
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return NewCatalog(cards...)
}

// LoadCatalogFile reads a YAML card file from disk.
func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCatalog(data)
}
