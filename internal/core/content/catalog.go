package content

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownReference = errors.New("unknown content reference")
	ErrDuplicateName    = errors.New("duplicate content name")
	ErrInvalidContent   = errors.New("invalid content")
)

// Catalog is the resolved, read-only game content. Lookups never mutate it,
// so a catalog may be shared freely between goroutines.
type Catalog struct {
	governments map[string]*Government
	outfits     map[string]*Outfit
	ships       map[string]*ShipModel
	systems     map[string]*System
	start       Start
}

type catalogFile struct {
	Governments []governmentNode `yaml:"governments"`
	Outfits     []outfitNode     `yaml:"outfits"`
	Ships       []shipNode       `yaml:"ships"`
	Systems     []systemNode     `yaml:"systems"`
	Start       startNode        `yaml:"start"`
}

type governmentNode struct {
	Name    string   `yaml:"name"`
	Color   string   `yaml:"color"`
	Player  bool     `yaml:"player"`
	Enemies []string `yaml:"enemies"`
}

type weaponNode struct {
	Velocity     float64 `yaml:"velocity"`
	Lifetime     int     `yaml:"lifetime"`
	Reload       int     `yaml:"reload"`
	Radius       float64 `yaml:"radius"`
	ShieldDamage float64 `yaml:"shield_damage"`
	HullDamage   float64 `yaml:"hull_damage"`
	Ammo         string  `yaml:"ammo,omitempty"`
}

type outfitNode struct {
	Name     string      `yaml:"name"`
	Category string      `yaml:"category"`
	Weapon   *weaponNode `yaml:"weapon,omitempty"`
}

type shipNode struct {
	Name     string         `yaml:"name"`
	Radius   float64        `yaml:"radius"`
	Shields  float64        `yaml:"shields"`
	Hull     float64        `yaml:"hull"`
	Thrust   float64        `yaml:"thrust"`
	Turn     float64        `yaml:"turn"`
	MaxSpeed float64        `yaml:"max_speed"`
	Weapons  []string       `yaml:"weapons"`
	Ammo     map[string]int `yaml:"ammo"`
}

type beltNode struct {
	Count  int     `yaml:"count"`
	Radius float64 `yaml:"radius"`
	Speed  float64 `yaml:"speed"`
}

type fleetNode struct {
	Government string   `yaml:"government"`
	Ship       string   `yaml:"ship"`
	Count      int      `yaml:"count"`
	Names      []string `yaml:"names"`
}

type systemNode struct {
	Name      string      `yaml:"name"`
	Radius    float64     `yaml:"radius"`
	Asteroids []beltNode  `yaml:"asteroids"`
	Fleets    []fleetNode `yaml:"fleets"`
}

type startShipNode struct {
	Name  string `yaml:"name"`
	Model string `yaml:"model"`
}

type startNode struct {
	Government string          `yaml:"government"`
	System     string          `yaml:"system"`
	Ships      []startShipNode `yaml:"ships"`
}

// LoadFile reads a YAML catalog from disk.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open content %s: %w", path, err)
	}
	defer f.Close()
	return LoadYAML(f)
}

// LoadYAML decodes and resolves a catalog. Names are resolved in dependency
// order: governments, outfits, ships, systems, start.
func LoadYAML(r io.Reader) (*Catalog, error) {
	var file catalogFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	return build(file)
}

func build(file catalogFile) (*Catalog, error) {
	c := &Catalog{
		governments: make(map[string]*Government, len(file.Governments)),
		outfits:     make(map[string]*Outfit, len(file.Outfits)),
		ships:       make(map[string]*ShipModel, len(file.Ships)),
		systems:     make(map[string]*System, len(file.Systems)),
	}

	for _, g := range file.Governments {
		if g.Name == "" {
			return nil, fmt.Errorf("%w: government without name", ErrInvalidContent)
		}
		if _, dup := c.governments[g.Name]; dup {
			return nil, fmt.Errorf("%w: government %q", ErrDuplicateName, g.Name)
		}
		c.governments[g.Name] = NewGovernment(g.Name, g.Color, g.Player)
	}
	for _, g := range file.Governments {
		for _, enemy := range g.Enemies {
			other, ok := c.governments[enemy]
			if !ok {
				return nil, fmt.Errorf("%w: government %q lists enemy %q", ErrUnknownReference, g.Name, enemy)
			}
			declareWar(c.governments[g.Name], other)
		}
	}

	// Ammunition may be declared after the launcher that uses it.
	for _, o := range file.Outfits {
		if o.Name == "" {
			return nil, fmt.Errorf("%w: outfit without name", ErrInvalidContent)
		}
		if _, dup := c.outfits[o.Name]; dup {
			return nil, fmt.Errorf("%w: outfit %q", ErrDuplicateName, o.Name)
		}
		c.outfits[o.Name] = NewOutfit(o.Name, o.Category, nil)
	}
	for _, o := range file.Outfits {
		if o.Weapon == nil {
			continue
		}
		w := &Weapon{
			Velocity:     o.Weapon.Velocity,
			Lifetime:     o.Weapon.Lifetime,
			Reload:       o.Weapon.Reload,
			Radius:       o.Weapon.Radius,
			ShieldDamage: o.Weapon.ShieldDamage,
			HullDamage:   o.Weapon.HullDamage,
		}
		if w.Lifetime <= 0 {
			return nil, fmt.Errorf("%w: weapon %q needs a positive lifetime", ErrInvalidContent, o.Name)
		}
		if o.Weapon.Ammo != "" {
			ammo, ok := c.outfits[o.Weapon.Ammo]
			if !ok {
				return nil, fmt.Errorf("%w: weapon %q uses ammo %q", ErrUnknownReference, o.Name, o.Weapon.Ammo)
			}
			w.Ammo = ammo
		}
		c.outfits[o.Name].weapon = w
	}

	for _, s := range file.Ships {
		if s.Name == "" {
			return nil, fmt.Errorf("%w: ship without name", ErrInvalidContent)
		}
		if _, dup := c.ships[s.Name]; dup {
			return nil, fmt.Errorf("%w: ship %q", ErrDuplicateName, s.Name)
		}
		if s.Radius <= 0 || s.Hull <= 0 {
			return nil, fmt.Errorf("%w: ship %q needs positive radius and hull", ErrInvalidContent, s.Name)
		}
		model := &ShipModel{
			Name:       s.Name,
			Radius:     s.Radius,
			MaxShields: s.Shields,
			MaxHull:    s.Hull,
			Thrust:     s.Thrust,
			Turn:       s.Turn,
			MaxSpeed:   s.MaxSpeed,
			Ammo:       make(map[*Outfit]int, len(s.Ammo)),
		}
		for _, name := range s.Weapons {
			weapon, ok := c.outfits[name]
			if !ok {
				return nil, fmt.Errorf("%w: ship %q carries %q", ErrUnknownReference, s.Name, name)
			}
			if weapon.Weapon() == nil {
				return nil, fmt.Errorf("%w: ship %q mounts non-weapon %q", ErrInvalidContent, s.Name, name)
			}
			model.Weapons = append(model.Weapons, weapon)
		}
		for name, count := range s.Ammo {
			ammo, ok := c.outfits[name]
			if !ok {
				return nil, fmt.Errorf("%w: ship %q stocks %q", ErrUnknownReference, s.Name, name)
			}
			model.Ammo[ammo] = count
		}
		c.ships[s.Name] = model
	}

	for _, s := range file.Systems {
		if s.Name == "" {
			return nil, fmt.Errorf("%w: system without name", ErrInvalidContent)
		}
		if _, dup := c.systems[s.Name]; dup {
			return nil, fmt.Errorf("%w: system %q", ErrDuplicateName, s.Name)
		}
		sys := &System{Name: s.Name, Radius: s.Radius}
		if sys.Radius <= 0 {
			sys.Radius = 4000
		}
		for _, b := range s.Asteroids {
			sys.Asteroids = append(sys.Asteroids, AsteroidBelt{Count: b.Count, Radius: b.Radius, Speed: b.Speed})
		}
		for _, f := range s.Fleets {
			gov, ok := c.governments[f.Government]
			if !ok {
				return nil, fmt.Errorf("%w: system %q fleet government %q", ErrUnknownReference, s.Name, f.Government)
			}
			model, ok := c.ships[f.Ship]
			if !ok {
				return nil, fmt.Errorf("%w: system %q fleet ship %q", ErrUnknownReference, s.Name, f.Ship)
			}
			sys.Fleets = append(sys.Fleets, Fleet{Government: gov, Model: model, Count: max(f.Count, 1), Names: f.Names})
		}
		c.systems[s.Name] = sys
	}

	if file.Start.Government != "" || file.Start.System != "" || len(file.Start.Ships) > 0 {
		gov, ok := c.governments[file.Start.Government]
		if !ok {
			return nil, fmt.Errorf("%w: start government %q", ErrUnknownReference, file.Start.Government)
		}
		if !gov.IsPlayer() {
			return nil, fmt.Errorf("%w: start government %q is not a player government", ErrInvalidContent, gov.Name())
		}
		sys, ok := c.systems[file.Start.System]
		if !ok {
			return nil, fmt.Errorf("%w: start system %q", ErrUnknownReference, file.Start.System)
		}
		c.start = Start{Government: gov, System: sys}
		for _, s := range file.Start.Ships {
			model, ok := c.ships[s.Model]
			if !ok {
				return nil, fmt.Errorf("%w: start ship %q model %q", ErrUnknownReference, s.Name, s.Model)
			}
			c.start.Ships = append(c.start.Ships, StartShip{Name: s.Name, Model: model})
		}
	}

	return c, nil
}

func (c *Catalog) Government(name string) (*Government, bool) {
	g, ok := c.governments[name]
	return g, ok
}

func (c *Catalog) Outfit(name string) (*Outfit, bool) {
	o, ok := c.outfits[name]
	return o, ok
}

func (c *Catalog) Ship(name string) (*ShipModel, bool) {
	s, ok := c.ships[name]
	return s, ok
}

func (c *Catalog) System(name string) (*System, bool) {
	s, ok := c.systems[name]
	return s, ok
}

// Systems returns system names in lexical order.
func (c *Catalog) Systems() []string {
	names := make([]string, 0, len(c.systems))
	for name := range c.systems {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Catalog) Start() Start { return c.start }
