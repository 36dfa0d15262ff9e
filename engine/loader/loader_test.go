package loader

import (
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quadOBJ = `# quad
mtllib quad.mtl
o Quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
usemtl red
f 1/1/1 2/2/1 3/3/1 4/4/1
`

const quadMTL = `newmtl red
Ka 0.1 0.1 0.1
Kd 1 0 0
Ns 32
d 0.5
map_Kd red.png
`

func assets() fstest.MapFS {
	return fstest.MapFS{
		"details/Quad/quad.obj":  {Data: []byte(quadOBJ)},
		"details/Quad/quad.mtl":  {Data: []byte(quadMTL)},
		"details/Quad/other.mtl": {Data: []byte("newmtl red\nKd 0 1 0\n")},
		"details/Tri/tri.obj":    {Data: []byte("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n")},
		"details/Bad/bad.obj":    {Data: []byte("v 0 0 0\nf 1 2 9\n")},
		"details/Quad/quad.fbx":  {Data: []byte{}},
	}
}

func TestParseOBJFanTriangulates(t *testing.T) {
	obj, err := parseOBJ(strings.NewReader(quadOBJ))
	require.NoError(t, err)
	require.Len(t, obj.meshes, 1)
	mesh := obj.meshes[0]
	assert.Equal(t, "red", mesh.Material)
	assert.Len(t, mesh.Positions, 4)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, mesh.Indices)
	assert.Equal(t, mgl32.Vec2{1, 1}, mesh.UVs[2])
	assert.Equal(t, []string{"quad.mtl"}, obj.mtlLibs)
}

func TestParseOBJNegativeIndices(t *testing.T) {
	obj, err := parseOBJ(strings.NewReader("v 0 0 0\nv 1 0 0\nv 0 1 0\nf -3 -2 -1\n"))
	require.NoError(t, err)
	require.Len(t, obj.meshes, 1)
	assert.Equal(t, []uint32{0, 1, 2}, obj.meshes[0].Indices)
	assert.Nil(t, obj.meshes[0].UVs)
	require.Len(t, obj.meshes[0].Normals, 3)
}

func TestParseOBJSplitsMeshesOnMaterial(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nusemtl a\nf 1 2 3\nusemtl b\nf 3 2 1\n"
	obj, err := parseOBJ(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, obj.meshes, 2)
	assert.Equal(t, "a", obj.meshes[0].Material)
	assert.Equal(t, "b", obj.meshes[1].Material)
}

func TestParseOBJErrors(t *testing.T) {
	_, err := parseOBJ(strings.NewReader("v 0 0 0\nf 1 2 9\n"))
	assert.ErrorContains(t, err, "obj line 2")

	_, err = parseOBJ(strings.NewReader("v 0 zero 0\n"))
	assert.ErrorContains(t, err, "obj line 1")

	_, err = parseOBJ(strings.NewReader("v 0 0 0\nf 1 1\n"))
	assert.Error(t, err)
}

func TestParseMTL(t *testing.T) {
	mats, err := parseMTL(strings.NewReader(quadMTL + "newmtl glass\nTr 0.75\n"))
	require.NoError(t, err)
	require.Len(t, mats, 2)
	assert.Equal(t, "red", mats[0].Name)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, mats[0].Diffuse)
	assert.Equal(t, float32(32), mats[0].Shininess)
	assert.Equal(t, float32(0.5), mats[0].Opacity)
	assert.Equal(t, "red.png", mats[0].DiffuseMap)
	assert.InDelta(t, 0.25, mats[1].Opacity, 1e-6)
}

func TestLoadResolvesMtllib(t *testing.T) {
	l := NewLoader(WithFS(assets()), WithWorkers(0))

	m, err := l.Load("/details/Quad/quad.obj", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"red"}, m.MaterialNames())
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, m.Material("red").Diffuse)
	assert.Equal(t, 4, m.VertexCount())
	assert.Equal(t, 6, m.IndexCount())
}

func TestLoadExplicitMtlOverridesMtllib(t *testing.T) {
	l := NewLoader(WithFS(assets()), WithWorkers(0))

	m, err := l.Load("/details/Quad/quad.obj", "/details/Quad/other.mtl")
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, m.Material("red").Diffuse)
}

func TestLoadCaches(t *testing.T) {
	l := NewLoader(WithFS(assets()), WithWorkers(0))

	a, err := l.Load("/details/Tri/tri.obj", "")
	require.NoError(t, err)
	b, err := l.Load("details/Tri/tri.obj", "")
	require.NoError(t, err)
	assert.Same(t, a, b)

	got, err := l.Get("/details/Tri/tri.obj", "")
	require.NoError(t, err)
	assert.Same(t, a, got)
}

func TestLoadErrors(t *testing.T) {
	l := NewLoader(WithFS(assets()), WithWorkers(0))

	_, err := l.Load("/details/Quad/quad.fbx", "")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = l.Load("/details/Missing/missing.obj", "")
	assert.Error(t, err)

	_, err = l.Load("/details/Bad/bad.obj", "")
	assert.ErrorContains(t, err, "bad.obj")

	_, err = l.Get("/details/Bad/bad.obj", "")
	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestLoadAsyncInline(t *testing.T) {
	l := NewLoader(WithFS(assets()), WithWorkers(0))
	assert.Equal(t, float32(100), l.Progress())

	l.LoadAsync("/details/Tri/tri.obj", "")
	l.LoadAsync("/details/Bad/bad.obj", "")
	assert.False(t, l.Active())
	assert.Equal(t, float32(100), l.Progress())

	results := l.Poll()
	require.Len(t, results, 2)
	assert.NoError(t, results[0].Err)
	assert.NotNil(t, results[0].Model)
	assert.Error(t, results[1].Err)
	assert.Nil(t, l.Poll())

	// Cached requests report without loading again.
	l.LoadAsync("/details/Tri/tri.obj", "")
	results = l.Poll()
	require.Len(t, results, 1)
	assert.Equal(t, "details/Tri/tri.obj|", results[0].Key())
}

func TestLoadAsyncPool(t *testing.T) {
	l := NewLoader(WithFS(assets()), WithWorkers(2))

	l.LoadAsync("/details/Quad/quad.obj", "")
	var results []Result
	assert.Eventually(t, func() bool {
		results = append(results, l.Poll()...)
		return len(results) == 1
	}, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, results[0].Err)
	assert.False(t, l.Active())
	assert.Equal(t, float32(100), l.Progress())
}

func TestCloseStopsPool(t *testing.T) {
	l := NewLoader(WithFS(assets()), WithWorkers(2))
	_, err := l.Load("/details/Tri/tri.obj", "")
	require.NoError(t, err)

	l.Close()
	assert.Nil(t, l.(*loader).pool)
	l.Close()

	l.LoadAsync("/details/Quad/quad.obj", "")
	l.LoadAsync("/details/Tri/tri.obj", "")
	results := l.Poll()
	require.Len(t, results, 2)
	assert.ErrorIs(t, results[0].Err, ErrClosed)
	assert.NoError(t, results[1].Err)
	assert.False(t, l.Active())

	_, err = l.Load("/details/Quad/quad.obj", "")
	assert.NoError(t, err)
}

func TestInvalidateDropsDependents(t *testing.T) {
	l := NewLoader(WithFS(assets()), WithWorkers(0))
	_, err := l.Load("/details/Quad/quad.obj", "")
	require.NoError(t, err)
	_, err = l.Load("/details/Tri/tri.obj", "")
	require.NoError(t, err)

	assert.Equal(t, 1, l.Invalidate("/details/Quad/quad.mtl"))
	_, err = l.Get("/details/Quad/quad.obj", "")
	assert.ErrorIs(t, err, ErrNotLoaded)
	_, err = l.Get("/details/Tri/tri.obj", "")
	assert.NoError(t, err)
	assert.Equal(t, 0, l.Invalidate("/details/Quad/quad.mtl"))
}

func TestAssetURL(t *testing.T) {
	root := t.TempDir()
	url, ok := assetURL(root, root+"/details/Shield/shield3.obj")
	require.True(t, ok)
	assert.Equal(t, "/details/Shield/shield3.obj", url)

	_, ok = assetURL(root, root)
	assert.False(t, ok)
}
