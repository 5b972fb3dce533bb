package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const testCatalog = `
governments:
  - name: Escort
    player: true
    color: green
  - name: Republic
    color: blue
    enemies: [Pirate]
  - name: Pirate
    color: red
    enemies: [Escort]
outfits:
  - name: Laser
    category: Guns
    weapon: {velocity: 600, lifetime: 40, reload: 10, radius: 2, shield_damage: 10, hull_damage: 5}
  - name: Missile Launcher
    category: Secondary Weapons
    weapon: {velocity: 400, lifetime: 90, reload: 30, radius: 3, shield_damage: 30, hull_damage: 30, ammo: Missile}
  - name: Missile
    category: Ammunition
ships:
  - name: Sparrow
    radius: 18
    shields: 100
    hull: 80
    thrust: 300
    turn: 200
    max_speed: 350
    weapons: [Laser, Missile Launcher]
    ammo: {Missile: 6}
systems:
  - name: Sol
    asteroids: [{count: 4, radius: 12, speed: 15}]
    fleets: [{government: Pirate, ship: Sparrow, count: 2}]
  - name: Alpha
start:
  government: Escort
  system: Sol
  ships: [{name: Kestrel, model: Sparrow}]
`

func TestLoadYAML(t *testing.T) {
	c, err := LoadYAML(strings.NewReader(testCatalog))
	require.NoError(t, err)

	t.Run("Governments and attitudes", func(t *testing.T) {
		escort, ok := c.Government("Escort")
		require.True(t, ok)
		pirate, _ := c.Government("Pirate")
		republic, _ := c.Government("Republic")

		require.True(t, escort.IsPlayer())
		require.True(t, pirate.IsEnemy(escort))
		require.True(t, escort.IsEnemy(pirate), "hostility is symmetric")
		require.True(t, republic.IsEnemy(pirate))
		require.False(t, republic.IsEnemy(escort))
		require.False(t, pirate.IsEnemy(pirate))
		require.Equal(t, GovernmentIDOf("Pirate"), pirate.ID())
	})

	t.Run("Weapons resolve ammunition declared later", func(t *testing.T) {
		launcher, ok := c.Outfit("Missile Launcher")
		require.True(t, ok)
		require.NotNil(t, launcher.Weapon())
		missile, _ := c.Outfit("Missile")
		require.Same(t, missile, launcher.Weapon().Ammo)
		require.Nil(t, missile.Weapon())
	})

	t.Run("Ships and systems", func(t *testing.T) {
		sparrow, ok := c.Ship("Sparrow")
		require.True(t, ok)
		require.Len(t, sparrow.Weapons, 2)
		missile, _ := c.Outfit("Missile")
		require.Equal(t, 6, sparrow.Ammo[missile])

		sol, ok := c.System("Sol")
		require.True(t, ok)
		require.Len(t, sol.Fleets, 1)
		require.Equal(t, 2, sol.Fleets[0].Count)
		require.Equal(t, 4000.0, sol.Radius)
		require.Equal(t, []string{"Alpha", "Sol"}, c.Systems())
	})

	t.Run("Start", func(t *testing.T) {
		start := c.Start()
		require.Equal(t, "Escort", start.Government.Name())
		require.Equal(t, "Sol", start.System.Name)
		require.Len(t, start.Ships, 1)
		require.Equal(t, "Kestrel", start.Ships[0].Name)
	})
}

func TestLoadYAMLErrors(t *testing.T) {
	cases := map[string]struct {
		doc  string
		want error
	}{
		"unknown enemy": {
			doc:  "governments: [{name: A, enemies: [B]}]",
			want: ErrUnknownReference,
		},
		"duplicate government": {
			doc:  "governments: [{name: A}, {name: A}]",
			want: ErrDuplicateName,
		},
		"ship mounts ammunition": {
			doc:  "outfits: [{name: Rock}]\nships: [{name: S, radius: 1, hull: 1, weapons: [Rock]}]",
			want: ErrInvalidContent,
		},
		"start with non-player government": {
			doc:  "governments: [{name: A}]\nsystems: [{name: Sol}]\nstart: {government: A, system: Sol}",
			want: ErrInvalidContent,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadYAML(strings.NewReader(tc.doc))
			require.ErrorIs(t, err, tc.want)
		})
	}
}
