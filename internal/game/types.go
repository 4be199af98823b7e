package game

import (
	"fmt"
	"strings"
)

// --- Enums ---

type Side int

const (
	SideFriendly Side = iota
	SideEnemy
)

func (s Side) String() string {
	if s == SideEnemy {
		return "enemy"
	}
	return "friendly"
}

// Opponent returns the other side of the arena.
func (s Side) Opponent() Side {
	if s == SideFriendly {
		return SideEnemy
	}
	return SideFriendly
}

// ParseSide accepts "friendly"/"own" and "enemy"/"opposing" (case-insensitive).
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "friendly", "own", "":
		return SideFriendly, nil
	case "enemy", "opposing":
		return SideEnemy, nil
	default:
		return SideFriendly, fmt.Errorf("unknown side %q", s)
	}
}

type CardType int

const (
	CardTypeTroop CardType = iota
	CardTypeSpell
	CardTypeBuilding
)

func (ct CardType) String() string {
	switch ct {
	case CardTypeTroop:
		return "troop"
	case CardTypeSpell:
		return "spell"
	case CardTypeBuilding:
		return "building"
	default:
		return "unknown"
	}
}

// ParseCardType parses the lowercase names produced by String.
func ParseCardType(s string) (CardType, error) {
	switch strings.ToLower(s) {
	case "troop":
		return CardTypeTroop, nil
	case "spell":
		return CardTypeSpell, nil
	case "building":
		return CardTypeBuilding, nil
	default:
		return CardTypeTroop, fmt.Errorf("unknown card type %q", s)
	}
}

type Rarity int

const (
	RarityCommon Rarity = iota
	RarityRare
	RarityEpic
	RarityLegendary
)

func (r Rarity) String() string {
	switch r {
	case RarityCommon:
		return "common"
	case RarityRare:
		return "rare"
	case RarityEpic:
		return "epic"
	case RarityLegendary:
		return "legendary"
	default:
		return "unknown"
	}
}

func ParseRarity(s string) (Rarity, error) {
	switch strings.ToLower(s) {
	case "common", "":
		return RarityCommon, nil
	case "rare":
		return RarityRare, nil
	case "epic":
		return RarityEpic, nil
	case "legendary":
		return RarityLegendary, nil
	default:
		return RarityCommon, fmt.Errorf("unknown rarity %q", s)
	}
}

// TargetType is what a card can attack.
type TargetType int

const (
	TargetGround TargetType = iota
	TargetAir
	TargetBoth
	TargetBuildings
)

func (t TargetType) String() string {
	switch t {
	case TargetGround:
		return "ground"
	case TargetAir:
		return "air"
	case TargetBoth:
		return "both"
	case TargetBuildings:
		return "buildings"
	default:
		return "unknown"
	}
}

func ParseTargetType(s string) (TargetType, error) {
	switch strings.ToLower(s) {
	case "ground":
		return TargetGround, nil
	case "air":
		return TargetAir, nil
	case "both":
		return TargetBoth, nil
	case "buildings":
		return TargetBuildings, nil
	default:
		return TargetGround, fmt.Errorf("unknown target type %q", s)
	}
}

type Tower int

const (
	TowerKing Tower = iota
	TowerLeft
	TowerRight
)

func (t Tower) String() string {
	switch t {
	case TowerKing:
		return "king"
	case TowerLeft:
		return "left"
	case TowerRight:
		return "right"
	default:
		return "unknown"
	}
}

func ParseTower(s string) (Tower, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "king":
		return TowerKing, nil
	case "left":
		return TowerLeft, nil
	case "right":
		return TowerRight, nil
	default:
		return TowerKing, fmt.Errorf("%w: %q", ErrUnknownTower, s)
	}
}

// towerScanOrder is the order NearestTower considers towers in. The first
// tower wins an exact distance tie.
var towerScanOrder = [...]Tower{TowerLeft, TowerRight, TowerKing}

// --- Card definition (static, shared by reference) ---

type Card struct {
	Name         string
	CardType     CardType
	Cost         int
	Rarity       Rarity
	Target       TargetType
	Damage       int
	HitSpeed     float64 // seconds between attacks
	Range        float64 // tiles
	AreaDamage   bool
	SplashRadius float64
}

func (c *Card) String() string {
	return fmt.Sprintf("%s (%d)", c.Name, c.Cost)
}

func (c *Card) IsTroop() bool    { return c.CardType == CardTypeTroop }
func (c *Card) IsSpell() bool    { return c.CardType == CardTypeSpell }
func (c *Card) IsBuilding() bool { return c.CardType == CardTypeBuilding }

// HitsAir reports whether the card can target air units.
func (c *Card) HitsAir() bool {
	return c.Target == TargetAir || c.Target == TargetBoth
}

// TargetsBuildingsOnly reports whether the card ignores everything but buildings.
func (c *Card) TargetsBuildingsOnly() bool {
	return c.Target == TargetBuildings
}

func (c *Card) validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidCard)
	}
	if c.Cost < 1 {
		return fmt.Errorf("%w: %s has cost %d", ErrInvalidCard, c.Name, c.Cost)
	}
	return nil
}
