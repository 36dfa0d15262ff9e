package loader

import (
	"fmt"
	"io/fs"
	"path"

	"github.com/Carmen-Shannon/oxy-room/engine/model"
)

// loaderBackend turns asset files into a model for one file format.
type loaderBackend interface {
	// Load reads the model at objPath and its materials at mtlPath.
	// An empty mtlPath falls back to the mtllib statements of the model file.
	//
	// Parameters:
	//   - fsys: filesystem rooted at the asset directory
	//   - objPath: slash-separated path of the model file
	//   - mtlPath: slash-separated path of the material library, may be empty
	//
	// Returns:
	//   - model.Model: the loaded model
	//   - []string: every file path read, for cache invalidation
	//   - error: error if reading or parsing fails
	Load(fsys fs.FS, objPath, mtlPath string) (model.Model, []string, error)
}

type objLoaderBackend struct{}

var _ loaderBackend = &objLoaderBackend{}

func newOBJLoaderBackend() loaderBackend {
	return &objLoaderBackend{}
}

func (b *objLoaderBackend) Load(fsys fs.FS, objPath, mtlPath string) (model.Model, []string, error) {
	f, err := fsys.Open(objPath)
	if err != nil {
		return nil, nil, err
	}
	obj, err := parseOBJ(f)
	f.Close()
	if err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", objPath, err)
	}
	read := []string{objPath}

	libs := []string{mtlPath}
	if mtlPath == "" {
		libs = libs[:0]
		for _, lib := range obj.mtlLibs {
			libs = append(libs, path.Join(path.Dir(objPath), lib))
		}
	}

	var materials []model.Material
	for _, lib := range libs {
		mf, err := fsys.Open(lib)
		if err != nil {
			return nil, nil, err
		}
		mats, err := parseMTL(mf)
		mf.Close()
		if err != nil {
			return nil, nil, fmt.Errorf("parse %s: %w", lib, err)
		}
		materials = append(materials, mats...)
		read = append(read, lib)
	}

	m := model.NewModel(
		model.WithName(path.Base(objPath)),
		model.WithSource(objPath),
		model.WithMeshes(obj.meshes),
		model.WithMaterials(materials),
	)
	return m, read, nil
}
