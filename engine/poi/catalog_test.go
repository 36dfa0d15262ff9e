package poi

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalogRejectsBadIDs(t *testing.T) {
	_, err := NewCatalog(Poi{ID: ""})
	assert.ErrorIs(t, err, ErrEmptyID)

	_, err = NewCatalog(Poi{ID: "a"}, Poi{ID: "a"})
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestCatalogLookup(t *testing.T) {
	c, err := NewCatalog(Poi{ID: "b", Name: "B"}, Poi{ID: "a", Name: "A"})
	require.NoError(t, err)

	p, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "A", p.Name)
	assert.False(t, c.Contains("z"))
	assert.Equal(t, 2, c.Len())

	all := c.All()
	require.Len(t, all, 2)
	assert.Equal(t, "b", all[0].ID)
	all[0].Name = "mutated"
	p, _ = c.Get("b")
	assert.Equal(t, "B", p.Name)
}

func TestNilCatalog(t *testing.T) {
	var c *Catalog
	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
	assert.Nil(t, c.All())
}

func TestDefaultCatalogShield(t *testing.T) {
	c := DefaultCatalog()
	p, ok := c.Get("detail_2")
	require.True(t, ok)
	assert.Equal(t, "Shield", p.Name)

	s := p.InspectState()
	want := mgl32.Vec3{-0.1, 0.66, 6.69}
	for i := range 3 {
		assert.InDelta(t, want[i], s.Position()[i], 1e-5)
		assert.InDelta(t, []float32{-0.1, 3.66, 1.69}[i], s.Target()[i], 1e-5)
	}
}
