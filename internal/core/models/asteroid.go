package models

import (
	"math/rand/v2"

	"github.com/zeusync/skyloop/internal/core/content"
	"github.com/zeusync/skyloop/internal/core/geom"
)

type Asteroid struct {
	motion Motion
	radius float64
}

func NewAsteroid(at, velocity geom.Point, radius, spin float64) *Asteroid {
	return &Asteroid{motion: Motion{Position: at, Velocity: velocity, Spin: spin}, radius: radius}
}

func (a *Asteroid) Motion() *Motion      { return &a.motion }
func (a *Asteroid) Position() geom.Point { return a.motion.Position }
func (a *Asteroid) Radius() float64      { return a.radius }

// AsteroidField holds a system's rocks inside a square of half-width bound
// centred on the origin; rocks leaving one edge reappear on the other.
type AsteroidField struct {
	asteroids []*Asteroid
	bound     float64
}

func NewAsteroidField() *AsteroidField {
	return &AsteroidField{}
}

// Reset replaces the field with the belts of a system.
func (f *AsteroidField) Reset(sys *content.System, rng *rand.Rand) {
	f.asteroids = f.asteroids[:0]
	if sys == nil {
		f.bound = 0
		return
	}
	f.bound = sys.Radius
	for _, belt := range sys.Asteroids {
		for range belt.Count {
			at := geom.P((rng.Float64()*2-1)*f.bound, (rng.Float64()*2-1)*f.bound)
			heading := geom.NewAngle(rng.Float64() * 360)
			velocity := heading.Unit().Mul(belt.Speed * (0.5 + rng.Float64()))
			spin := (rng.Float64()*2 - 1) * 30
			f.asteroids = append(f.asteroids, NewAsteroid(at, velocity, belt.Radius, spin))
		}
	}
}

func (f *AsteroidField) All() []*Asteroid { return f.asteroids }

func (f *AsteroidField) Len() int { return len(f.asteroids) }

// Add places a single rock; used by tests and scripted systems.
func (f *AsteroidField) Add(a *Asteroid) { f.asteroids = append(f.asteroids, a) }

// Wrap folds rocks that drifted past the field edge back inside.
func (f *AsteroidField) Wrap() {
	if f.bound <= 0 {
		return
	}
	span := 2 * f.bound
	for _, a := range f.asteroids {
		p := &a.motion.Position
		for p.X < -f.bound {
			p.X += span
		}
		for p.X >= f.bound {
			p.X -= span
		}
		for p.Y < -f.bound {
			p.Y += span
		}
		for p.Y >= f.bound {
			p.Y -= span
		}
	}
}
