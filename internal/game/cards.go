package game

// Knight is a 3 elixir common melee troop.
func Knight() *Card {
	return &Card{
		Name:     "Knight",
		CardType: CardTypeTroop,
		Cost:     3,
		Rarity:   RarityCommon,
		Target:   TargetGround,
		Damage:   100,
		HitSpeed: 1.1,
		Range:    0.5,
	}
}

// Archers is a 3 elixir ranged pair, hits air and ground.
func Archers() *Card {
	return &Card{
		Name:     "Archers",
		CardType: CardTypeTroop,
		Cost:     3,
		Rarity:   RarityCommon,
		Target:   TargetBoth,
		Damage:   60,
		HitSpeed: 1.2,
		Range:    5.0,
	}
}

// Giant is a 5 elixir tank that only targets buildings.
func Giant() *Card {
	return &Card{
		Name:     "Giant",
		CardType: CardTypeTroop,
		Cost:     5,
		Rarity:   RarityRare,
		Target:   TargetBuildings,
		Damage:   120,
		HitSpeed: 1.5,
		Range:    0.5,
	}
}

// Fireball is a 4 elixir area spell.
func Fireball() *Card {
	return &Card{
		Name:         "Fireball",
		CardType:     CardTypeSpell,
		Cost:         4,
		Rarity:       RarityRare,
		Target:       TargetBoth,
		Damage:       325,
		AreaDamage:   true,
		SplashRadius: 2.5,
	}
}

// Musketeer is a 4 elixir long-range single target troop.
func Musketeer() *Card {
	return &Card{
		Name:     "Musketeer",
		CardType: CardTypeTroop,
		Cost:     4,
		Rarity:   RarityRare,
		Target:   TargetBoth,
		Damage:   100,
		HitSpeed: 1.0,
		Range:    6.0,
	}
}

// MiniPekka is a 4 elixir high damage melee troop.
func MiniPekka() *Card {
	return &Card{
		Name:     "Mini P.E.K.K.A",
		CardType: CardTypeTroop,
		Cost:     4,
		Rarity:   RarityRare,
		Target:   TargetGround,
		Damage:   400,
		HitSpeed: 1.8,
		Range:    0.5,
	}
}

// HogRider is a 4 elixir fast building-targeter.
func HogRider() *Card {
	return &Card{
		Name:     "Hog Rider",
		CardType: CardTypeTroop,
		Cost:     4,
		Rarity:   RarityRare,
		Target:   TargetBuildings,
		Damage:   150,
		HitSpeed: 1.6,
		Range:    0.5,
	}
}

// Wizard is a 5 elixir splash troop.
func Wizard() *Card {
	return &Card{
		Name:         "Wizard",
		CardType:     CardTypeTroop,
		Cost:         5,
		Rarity:       RarityRare,
		Target:       TargetBoth,
		Damage:       130,
		HitSpeed:     1.4,
		Range:        5.5,
		AreaDamage:   true,
		SplashRadius: 1.5,
	}
}

// Cannon is a 3 elixir defensive building, ground only.
func Cannon() *Card {
	return &Card{
		Name:     "Cannon",
		CardType: CardTypeBuilding,
		Cost:     3,
		Rarity:   RarityCommon,
		Target:   TargetGround,
		Damage:   60,
		HitSpeed: 0.8,
		Range:    5.5,
	}
}

// InfernoTower is a 5 elixir defensive building, hits air and ground.
func InfernoTower() *Card {
	return &Card{
		Name:     "Inferno Tower",
		CardType: CardTypeBuilding,
		Cost:     5,
		Rarity:   RarityRare,
		Target:   TargetBoth,
		Damage:   50,
		HitSpeed: 0.4,
		Range:    6.0,
	}
}
