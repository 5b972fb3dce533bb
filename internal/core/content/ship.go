package content

// ShipModel holds the immutable attributes shared by every ship of a type.
type ShipModel struct {
	Name       string
	Radius     float64
	MaxShields float64
	MaxHull    float64
	// Thrust is acceleration in units/s², Turn is degrees per second.
	Thrust   float64
	Turn     float64
	MaxSpeed float64
	Weapons  []*Outfit
	Ammo     map[*Outfit]int
}

// AsteroidBelt describes how many rocks of a size a system spawns.
type AsteroidBelt struct {
	Count  int
	Radius float64
	Speed  float64
}

// Fleet is a group of ships a system spawns on entry.
type Fleet struct {
	Government *Government
	Model      *ShipModel
	Count      int
	Names      []string
}

type System struct {
	Name      string
	Radius    float64
	Asteroids []AsteroidBelt
	Fleets    []Fleet
}

// StartShip is one ship of the player's starting fleet.
type StartShip struct {
	Name  string
	Model *ShipModel
}

// Start is the player's initial situation.
type Start struct {
	Government *Government
	System     *System
	Ships      []StartShip
}
