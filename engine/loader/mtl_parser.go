package loader

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/Carmen-Shannon/oxy-room/engine/model"
)

// parseMTL reads newmtl blocks with their colors, exponent, opacity and diffuse map.
func parseMTL(r io.Reader) ([]model.Material, error) {
	var materials []model.Material
	var current *model.Material

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(stripComment(scanner.Text()))
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "newmtl" {
			if current != nil {
				materials = append(materials, *current)
			}
			mat := model.DefaultMaterial()
			mat.Name = strings.Join(fields[1:], " ")
			current = &mat
			continue
		}
		if current == nil {
			continue
		}

		args := fields[1:]
		var err error
		switch fields[0] {
		case "Ka":
			current.Ambient, err = parseVec3(args)
		case "Kd":
			current.Diffuse, err = parseVec3(args)
		case "Ks":
			current.Specular, err = parseVec3(args)
		case "Ns":
			var f []float32
			if f, err = parseFloats(args, 1); err == nil {
				current.Shininess = f[0]
			}
		case "d":
			var f []float32
			if f, err = parseFloats(args, 1); err == nil {
				current.Opacity = f[0]
			}
		case "Tr":
			var f []float32
			if f, err = parseFloats(args, 1); err == nil {
				current.Opacity = 1 - f[0]
			}
		case "map_Kd":
			if len(args) > 0 {
				current.DiffuseMap = args[len(args)-1]
			}
		}
		if err != nil {
			return nil, fmt.Errorf("mtl line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read mtl: %w", err)
	}
	if current != nil {
		materials = append(materials, *current)
	}
	return materials, nil
}
