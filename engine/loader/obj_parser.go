package loader

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/oxy-room/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// objData is the parsed content of a Wavefront OBJ file.
type objData struct {
	meshes  []model.Mesh
	mtlLibs []string
}

// objVertexKey identifies a unique position/uv/normal combination within a mesh.
type objVertexKey struct {
	v, vt, vn int
}

type objBuilder struct {
	positions []mgl32.Vec3
	uvs       []mgl32.Vec2
	normals   []mgl32.Vec3

	meshes  []model.Mesh
	current *model.Mesh
	remap   map[objVertexKey]uint32
	hasUV   bool
	hasNorm bool

	name     string
	material string
}

// parseOBJ reads positions, texture coordinates, normals and faces. Polygons are
// fan-triangulated. A new mesh starts at every o, g or usemtl statement.
func parseOBJ(r io.Reader) (*objData, error) {
	b := &objBuilder{}
	out := &objData{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(stripComment(scanner.Text()))
		if len(fields) == 0 {
			continue
		}
		args := fields[1:]

		var err error
		switch fields[0] {
		case "v":
			var v mgl32.Vec3
			v, err = parseVec3(args)
			b.positions = append(b.positions, v)
		case "vt":
			var v mgl32.Vec2
			v, err = parseVec2(args)
			b.uvs = append(b.uvs, v)
		case "vn":
			var v mgl32.Vec3
			v, err = parseVec3(args)
			b.normals = append(b.normals, v)
		case "f":
			err = b.face(args)
		case "o", "g":
			b.flush()
			b.name = strings.Join(args, " ")
		case "usemtl":
			b.flush()
			b.material = strings.Join(args, " ")
		case "mtllib":
			out.mtlLibs = append(out.mtlLibs, args...)
		}
		if err != nil {
			return nil, fmt.Errorf("obj line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}
	b.flush()
	out.meshes = b.meshes
	return out, nil
}

func (b *objBuilder) face(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("face needs at least 3 vertices, got %d", len(args))
	}
	if b.current == nil {
		b.current = &model.Mesh{Name: b.name, Material: b.material}
		b.remap = make(map[objVertexKey]uint32)
		b.hasUV, b.hasNorm = false, false
	}

	indices := make([]uint32, len(args))
	for i, tok := range args {
		key, err := b.parseFaceVertex(tok)
		if err != nil {
			return err
		}
		idx, ok := b.remap[key]
		if !ok {
			idx = uint32(len(b.current.Positions))
			b.remap[key] = idx
			b.current.Positions = append(b.current.Positions, b.positions[key.v])
			uv := mgl32.Vec2{}
			if key.vt >= 0 {
				uv = b.uvs[key.vt]
				b.hasUV = true
			}
			b.current.UVs = append(b.current.UVs, uv)
			n := mgl32.Vec3{}
			if key.vn >= 0 {
				n = b.normals[key.vn]
				b.hasNorm = true
			}
			b.current.Normals = append(b.current.Normals, n)
		}
		indices[i] = idx
	}
	for i := 1; i+1 < len(indices); i++ {
		b.current.Indices = append(b.current.Indices, indices[0], indices[i], indices[i+1])
	}
	return nil
}

// parseFaceVertex decodes v, v/vt, v//vn or v/vt/vn into zero-based indices, -1 when absent.
func (b *objBuilder) parseFaceVertex(tok string) (objVertexKey, error) {
	parts := strings.Split(tok, "/")
	key := objVertexKey{v: -1, vt: -1, vn: -1}

	var err error
	if key.v, err = resolveIndex(parts[0], len(b.positions)); err != nil {
		return key, fmt.Errorf("vertex %q: %w", tok, err)
	}
	if len(parts) > 1 && parts[1] != "" {
		if key.vt, err = resolveIndex(parts[1], len(b.uvs)); err != nil {
			return key, fmt.Errorf("texcoord %q: %w", tok, err)
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if key.vn, err = resolveIndex(parts[2], len(b.normals)); err != nil {
			return key, fmt.Errorf("normal %q: %w", tok, err)
		}
	}
	return key, nil
}

// flush closes the current mesh, filling normals when the file provided none.
func (b *objBuilder) flush() {
	if b.current == nil {
		return
	}
	if len(b.current.Indices) > 0 {
		if !b.hasUV {
			b.current.UVs = nil
		}
		if !b.hasNorm {
			b.current.Normals = nil
			model.FlatNormals(b.current)
		}
		b.meshes = append(b.meshes, *b.current)
	}
	b.current = nil
	b.remap = nil
}

// resolveIndex converts a one-based (or negative, relative) OBJ index to zero-based.
func resolveIndex(s string, count int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return -1, err
	}
	switch {
	case n > 0:
		n--
	case n < 0:
		n += count
	default:
		return -1, fmt.Errorf("index 0 is invalid")
	}
	if n < 0 || n >= count {
		return -1, fmt.Errorf("index out of range (have %d)", count)
	}
	return n, nil
}

func stripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		return line[:i]
	}
	return line
}

func parseFloats(args []string, n int) ([]float32, error) {
	if len(args) < n {
		return nil, fmt.Errorf("expected %d values, got %d", n, len(args))
	}
	out := make([]float32, n)
	for i := range n {
		f, err := strconv.ParseFloat(args[i], 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(f)
	}
	return out, nil
}

func parseVec3(args []string) (mgl32.Vec3, error) {
	f, err := parseFloats(args, 3)
	if err != nil {
		return mgl32.Vec3{}, err
	}
	return mgl32.Vec3{f[0], f[1], f[2]}, nil
}

func parseVec2(args []string) (mgl32.Vec2, error) {
	f, err := parseFloats(args, 2)
	if err != nil {
		return mgl32.Vec2{}, err
	}
	return mgl32.Vec2{f[0], f[1]}, nil
}
