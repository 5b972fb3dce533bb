package render

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zeusync/skyloop/internal/core/content"
	"github.com/zeusync/skyloop/internal/core/geom"
	"github.com/zeusync/skyloop/internal/core/models"
)

func TestClassify(t *testing.T) {
	escort := content.NewGovernment("Escort", "green", true)
	model := &content.ShipModel{Name: "Sparrow", Radius: 10, MaxHull: 100}
	vp := Viewport{Observer: escort}

	mine := models.NewShip("mine", model, escort)
	mine.SetYours(true)
	friend := models.NewShip("friend", model, escort)
	neutral := models.NewShip("neutral", model, content.NewGovernment("Merchant", "yellow", false))

	require.Equal(t, CategoryPlayer, vp.Classify(mine))
	require.Equal(t, CategoryFriendly, vp.Classify(friend))
	require.Equal(t, CategoryUnfriendly, vp.Classify(neutral))

	vp.Selected = neutral.ID()
	require.Equal(t, CategorySelected, vp.Classify(neutral))

	neutral.TakeDamage(0, 95)
	vp.Selected = models.NoShip
	require.Equal(t, CategoryInactive, vp.Classify(neutral))
}

func TestBuilder(t *testing.T) {
	gov := content.NewGovernment("Escort", "green", true)
	model := &content.ShipModel{Name: "Sparrow", Radius: 10, MaxHull: 100}
	r := models.NewRegistry()

	near := models.NewShip("near", model, gov)
	near.Place(geom.P(100, 0), 0)
	far := models.NewShip("far", model, gov)
	far.Place(geom.P(2000, 0), 0)
	distant := models.NewShip("distant", model, gov)
	distant.Place(geom.P(9000, 0), 0)
	r.AddShip(near)
	r.AddShip(far)
	r.AddShip(distant)
	r.AsteroidField().Add(models.NewAsteroid(geom.P(0, 50), geom.Point{}, 8, 0))
	r.AddEffect(models.NewEffect("spark", geom.P(5, 5), geom.Point{}, 3))

	vp := Viewport{Center: geom.P(0, 0), Width: 800, Height: 600, Observer: gov}
	list, radar := NewBuilder(5000).Build(r, vp)

	require.Len(t, list, 3)
	require.Equal(t, KindAsteroid, list[0].Kind)
	require.Equal(t, KindShip, list[1].Kind)
	require.Equal(t, "near", list[1].Label)
	require.Equal(t, geom.P(100, 0), list[1].Position)
	require.Equal(t, KindEffect, list[2].Kind)

	require.Len(t, radar.Blips, 3, "asteroid, near and far; distant is out of range")
	require.Equal(t, geom.P(2000, 0), radar.Blips[2].Offset)
}
