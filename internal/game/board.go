package game

import (
	"errors"
	"fmt"
	"math"
)

var ErrUnknownTower = errors.New("unknown tower")

// Position is a point on the arena tagged with the side it belongs to.
// It is a comparable value and can be used directly as a map key.
type Position struct {
	X    float64
	Y    float64
	Side Side
}

func Pos(x, y float64, side Side) Position {
	return Position{X: x, Y: y, Side: side}
}

func (p Position) String() string {
	return fmt.Sprintf("(%g, %g) %s", p.X, p.Y, p.Side)
}

// Coords renders the position as "(x, y)" rounded to whole tiles.
func (p Position) Coords() string {
	return fmt.Sprintf("(%.0f, %.0f)", p.X, p.Y)
}

// DistanceTo returns the Euclidean distance to another position.
func (p Position) DistanceTo(o Position) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}

// Point is an untagged zone coordinate in a Layout.
type Point struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// TowerSet holds the fixed coordinates of one side's towers.
type TowerSet struct {
	King  Point `yaml:"king" json:"king"`
	Left  Point `yaml:"left" json:"left"`
	Right Point `yaml:"right" json:"right"`
}

func (ts TowerSet) at(t Tower) Point {
	switch t {
	case TowerLeft:
		return ts.Left
	case TowerRight:
		return ts.Right
	default:
		return ts.King
	}
}

// Layout is the static arena geometry.
type Layout struct {
	Width         float64  `yaml:"width" json:"width"`
	Height        float64  `yaml:"height" json:"height"`
	Midline       float64  `yaml:"midline" json:"midline"`
	FriendlyZones []Point  `yaml:"friendly_zones" json:"friendly_zones"`
	EnemyZones    []Point  `yaml:"enemy_zones" json:"enemy_zones"`
	FriendlyTower TowerSet `yaml:"friendly_towers" json:"friendly_towers"`
	EnemyTower    TowerSet `yaml:"enemy_towers" json:"enemy_towers"`
}

// DefaultLayout is the standard 18x32 arena.
//
// The enemy zone list repeats its three bridge entries; the duplicates are
// kept so both sides offer twelve zones.
func DefaultLayout() Layout {
	return Layout{
		Width:   18,
		Height:  32,
		Midline: 16,
		FriendlyZones: []Point{
			// left lane
			{4, 4}, {4, 6}, {4, 8},
			// center
			{9, 4}, {9, 6}, {9, 8},
			// right lane
			{14, 4}, {14, 6}, {14, 8},
			// bridge
			{4, 14}, {9, 14}, {14, 14},
		},
		EnemyZones: []Point{
			{4, 18}, {4, 20}, {4, 22},
			{9, 18}, {9, 20}, {9, 22},
			{14, 18}, {14, 20}, {14, 22},
			{4, 18}, {9, 18}, {14, 18},
		},
		FriendlyTower: TowerSet{King: Point{9, 2}, Left: Point{4, 10}, Right: Point{14, 10}},
		EnemyTower:    TowerSet{King: Point{9, 30}, Left: Point{4, 22}, Right: Point{14, 22}},
	}
}

// Board is the arena plus which towers are still standing.
// Only DestroyTower mutates it.
type Board struct {
	layout   Layout
	standing [2][3]bool // [side][tower]
}

// NewBoard creates a board with every tower standing.
func NewBoard(layout Layout) *Board {
	b := &Board{layout: layout}
	for s := range b.standing {
		for t := range b.standing[s] {
			b.standing[s][t] = true
		}
	}
	return b
}

func DefaultBoard() *Board {
	return NewBoard(DefaultLayout())
}

func (b *Board) Layout() Layout {
	return b.layout
}

// Clone returns an independent copy of the board state.
func (b *Board) Clone() *Board {
	cp := *b
	return &cp
}

// DeploymentPositions returns the pre-defined zones for a side, in layout order.
func (b *Board) DeploymentPositions(side Side) []Position {
	zones := b.layout.FriendlyZones
	if side == SideEnemy {
		zones = b.layout.EnemyZones
	}
	out := make([]Position, 0, len(zones))
	for _, z := range zones {
		out = append(out, Position{X: z.X, Y: z.Y, Side: side})
	}
	return out
}

// IsValidPosition checks arena bounds and the side's half of the arena.
func (b *Board) IsValidPosition(pos Position) bool {
	if pos.X < 0 || pos.X > b.layout.Width {
		return false
	}
	if pos.Y < 0 || pos.Y > b.layout.Height {
		return false
	}
	if pos.Side == SideFriendly && pos.Y > b.layout.Midline {
		return false
	}
	if pos.Side == SideEnemy && pos.Y < b.layout.Midline {
		return false
	}
	return true
}

// TowerPosition returns the fixed coordinate of a tower, standing or not.
func (b *Board) TowerPosition(side Side, t Tower) Position {
	set := b.layout.FriendlyTower
	if side == SideEnemy {
		set = b.layout.EnemyTower
	}
	p := set.at(t)
	return Position{X: p.X, Y: p.Y, Side: side}
}

func (b *Board) TowerStanding(side Side, t Tower) bool {
	if t < TowerKing || t > TowerRight {
		return false
	}
	return b.standing[side][t]
}

// DestroyTower marks a tower destroyed. Destroying it again is a no-op.
func (b *Board) DestroyTower(side Side, t Tower) error {
	if t < TowerKing || t > TowerRight {
		return fmt.Errorf("%w: %d", ErrUnknownTower, int(t))
	}
	b.standing[side][t] = false
	return nil
}

// StandingTowers lists a side's surviving towers in scan order (left, right, king).
func (b *Board) StandingTowers(side Side) []Tower {
	var out []Tower
	for _, t := range towerScanOrder {
		if b.standing[side][t] {
			out = append(out, t)
		}
	}
	return out
}

// NearestTower returns the standing tower of side closest to pos.
// Towers are scanned left, right, king and the first one wins a tie.
// ok is false when the side has no towers left.
func (b *Board) NearestTower(pos Position, side Side) (tower Position, ok bool) {
	best := math.Inf(1)
	for _, t := range towerScanOrder {
		if !b.standing[side][t] {
			continue
		}
		tp := b.TowerPosition(side, t)
		if d := pos.DistanceTo(tp); d < best {
			best = d
			tower = tp
			ok = true
		}
	}
	return tower, ok
}

func (b *Board) String() string {
	return fmt.Sprintf("Board(%gx%g)", b.layout.Width, b.layout.Height)
}
