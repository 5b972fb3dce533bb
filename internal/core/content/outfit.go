package content

// Weapon describes what an outfit fires. Velocity is in units per second,
// Lifetime and Reload in steps.
type Weapon struct {
	Velocity     float64
	Lifetime     int
	Reload       int
	Radius       float64
	ShieldDamage float64
	HullDamage   float64
	// Ammo is consumed once per shot when set.
	Ammo *Outfit
}

type Outfit struct {
	name     string
	category string
	weapon   *Weapon
}

func NewOutfit(name, category string, weapon *Weapon) *Outfit {
	return &Outfit{name: name, category: category, weapon: weapon}
}

func (o *Outfit) Name() string     { return o.name }
func (o *Outfit) Category() string { return o.category }

// Weapon returns nil for outfits that cannot fire.
func (o *Outfit) Weapon() *Weapon { return o.weapon }
