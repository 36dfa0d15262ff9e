package targeting

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-room/engine/picking"
	"github.com/Carmen-Shannon/oxy-room/engine/poi"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var active = Flags{Exploring: true, Locked: true}

func newFixture(t *testing.T) (picking.Registry, Targeter, *[]string) {
	t.Helper()
	catalog, err := poi.NewCatalog(poi.Poi{ID: "a"}, poi.Poi{ID: "b"})
	require.NoError(t, err)
	reg := picking.NewRegistry()
	reg.Register(picking.Hitbox{PoiID: "a", Center: mgl32.Vec3{0, 0, -3}, Radius: 0.3})
	reg.Register(picking.Hitbox{PoiID: "b", Center: mgl32.Vec3{0, 0, -6}, Radius: 0.3})

	tg := NewTargeter(reg, catalog)
	var events []string
	tg.OnChange(func(id string) { events = append(events, id) })
	return reg, tg, &events
}

func rayTowards(dir mgl32.Vec3) picking.Ray {
	return picking.NewRay(mgl32.Vec3{}, dir)
}

func TestTargetDebouncedAcrossFrames(t *testing.T) {
	_, tg, events := newFixture(t)
	for range 10 {
		assert.Equal(t, "a", tg.Update(rayTowards(mgl32.Vec3{0, 0, -1}), active))
	}
	assert.Equal(t, []string{"a"}, *events)
}

func TestNearestHitWins(t *testing.T) {
	_, tg, _ := newFixture(t)
	assert.Equal(t, "a", tg.Update(rayTowards(mgl32.Vec3{0, 0, -1}), active))
}

func TestMissClearsTarget(t *testing.T) {
	_, tg, events := newFixture(t)
	tg.Update(rayTowards(mgl32.Vec3{0, 0, -1}), active)
	assert.Equal(t, "", tg.Update(rayTowards(mgl32.Vec3{1, 0, 0}), active))
	assert.Equal(t, []string{"a", ""}, *events)
}

func TestInactiveFlagsClearImmediately(t *testing.T) {
	cases := []Flags{
		{Exploring: true, Locked: false},
		{Exploring: false, Locked: true},
		{Exploring: true, Locked: true, Transitioning: true},
	}
	for _, flags := range cases {
		_, tg, _ := newFixture(t)
		require.Equal(t, "a", tg.Update(rayTowards(mgl32.Vec3{0, 0, -1}), active))
		assert.Equal(t, "", tg.Update(rayTowards(mgl32.Vec3{0, 0, -1}), flags), "flags %+v", flags)
		assert.Equal(t, "", tg.Current())
	}
}

func TestRegistryChangeRefreshesHitboxes(t *testing.T) {
	reg, tg, _ := newFixture(t)
	tg.Update(rayTowards(mgl32.Vec3{0, 0, -1}), active)
	reg.Unregister("a")
	assert.Equal(t, "b", tg.Update(rayTowards(mgl32.Vec3{0, 0, -1}), active))
}

func TestStaleHitboxResolvesToEmpty(t *testing.T) {
	reg, tg, events := newFixture(t)
	reg.Register(picking.Hitbox{PoiID: "gone", Center: mgl32.Vec3{0, 0, -1}, Radius: 0.3})
	assert.Equal(t, "", tg.Update(rayTowards(mgl32.Vec3{0, 0, -1}), active))
	assert.Empty(t, *events)
}

func TestReleaseStopsEvents(t *testing.T) {
	_, tg, _ := newFixture(t)
	var count int
	release := tg.OnChange(func(string) { count++ })
	tg.Update(rayTowards(mgl32.Vec3{0, 0, -1}), active)
	release()
	tg.Update(rayTowards(mgl32.Vec3{1, 0, 0}), active)
	assert.Equal(t, 1, count)
}
