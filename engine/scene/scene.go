package scene

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/Carmen-Shannon/oxy-room/common"
	"github.com/Carmen-Shannon/oxy-room/engine/camera"
	"github.com/Carmen-Shannon/oxy-room/engine/game_object"
	"github.com/Carmen-Shannon/oxy-room/engine/light"
	"github.com/Carmen-Shannon/oxy-room/engine/loader"
	"github.com/Carmen-Shannon/oxy-room/engine/picking"
	"github.com/Carmen-Shannon/oxy-room/engine/poi"
	"github.com/Carmen-Shannon/oxy-room/engine/view_state"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	markerColor      = mgl32.Vec4{0, 100 / 255.0, 200 / 255.0, 0.7}
	markerHighlight  = mgl32.Vec4{0, 150 / 255.0, 1, 0.9}
	placeholderColor = mgl32.Vec4{0, 0, 0, 0.7}
)

// Prop is a static model dressing the room, shown with the room shell.
type Prop struct {
	Name     string
	ObjURL   string
	MtlURL   string
	Position mgl32.Vec3
	Scale    mgl32.Vec3
	Rotation mgl32.Vec3
}

// scene is the implementation of the Scene interface.
type scene struct {
	mu *sync.RWMutex

	name   string
	active bool
	logger *slog.Logger

	cam      camera.Camera
	catalog  *poi.Catalog
	registry picking.Registry
	loader   loader.Loader

	width, depth, height float32
	hitboxRadius         float32

	planes   []Plane
	lights   []light.Light
	props    []game_object.GameObject
	propDefs []Prop

	roomVisible    bool
	markersVisible bool
	targetedID     string
	hitboxes       map[string]bool

	activePoi *poi.Poi
	detail    game_object.GameObject
	loading   bool
	loadErr   error
}

// Scene holds the room shell, lights, POI markers and the inspected detail model.
// Sync applies a view state; Update picks up finished asset loads; Nodes lists
// what is visible this frame.
type Scene interface {
	// Name returns the scene name.
	Name() string

	// Active reports whether the engine renders this scene.
	Active() bool

	// SetActive toggles rendering.
	SetActive(active bool)

	// Camera returns the scene camera.
	Camera() camera.Camera

	// Lights returns the scene lights.
	Lights() []light.Light

	// Planes returns the room shell planes.
	Planes() []Plane

	// RoomSize returns the room extents along X, Z and Y.
	RoomSize() (width, depth, height float32)

	// Sync applies visibility rules for the session and registers or removes POI
	// hitboxes. A change of active POI requests its model from the loader.
	//
	// Parameters:
	//   - s: the current view session
	Sync(s view_state.Session)

	// Update drains finished loads from the loader and attaches them.
	Update()

	// Nodes returns the visible nodes.
	//
	// Returns:
	//   - []Node: room planes and props, markers, and the detail or its placeholder
	Nodes() []Node

	// RoomVisible reports whether the room shell is drawn.
	RoomVisible() bool

	// MarkersVisible reports whether POI markers are drawn and their hitboxes registered.
	MarkersVisible() bool

	// DetailVisible reports whether a detail model slot exists.
	DetailVisible() bool

	// Detail returns the detail instance, nil without an active POI.
	Detail() game_object.GameObject

	// Loading returns the placeholder message while a model shown by the scene is loading.
	//
	// Returns:
	//   - string: "Loading <name>..." for the detail, "Loading Room..." for props
	//   - bool: true while loading
	Loading() (string, bool)

	// LoadError returns the last detail load failure, nil when none.
	LoadError() error
}

var _ Scene = &scene{}

// NewScene creates the room scene. Markers start hidden until the first Sync.
//
// Parameters:
//   - name: the scene name
//   - cam: the scene camera
//   - catalog: the POIs to mark
//   - registry: receives the marker hitboxes
//   - ldr: loads detail and prop models
//   - options: functional options
//
// Returns:
//   - Scene: the scene
func NewScene(name string, cam camera.Camera, catalog *poi.Catalog, registry picking.Registry, ldr loader.Loader, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}
	if registry == nil {
		panic("scene: NewScene requires a non-nil Registry")
	}
	if ldr == nil {
		panic("scene: NewScene requires a non-nil Loader")
	}

	s := &scene{
		mu:           &sync.RWMutex{},
		name:         name,
		active:       true,
		logger:       slog.Default(),
		cam:          cam,
		catalog:      catalog,
		registry:     registry,
		loader:       ldr,
		width:        common.RoomWidth,
		depth:        common.RoomDepth,
		height:       common.RoomHeight,
		hitboxRadius: common.PoiHitboxRadius,
		roomVisible:  true,
		hitboxes:     make(map[string]bool),
	}
	for _, option := range options {
		option(s)
	}

	s.planes = RoomPlanes(s.width, s.depth, s.height)
	if s.lights == nil {
		s.lights = light.RoomLights(s.width, s.height)
	}
	for _, p := range s.propDefs {
		obj := game_object.NewGameObject(
			game_object.WithID(p.Name),
			game_object.WithPosition(p.Position),
			game_object.WithRotation(p.Rotation),
			game_object.WithShadows(true, true),
		)
		obj.SetScale(unitIfZero(p.Scale))
		s.props = append(s.props, obj)
		ldr.LoadAsync(p.ObjURL, p.MtlURL)
	}
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	return s.cam
}

func (s *scene) Lights() []light.Light {
	return s.lights
}

func (s *scene) Planes() []Plane {
	return s.planes
}

func (s *scene) RoomSize() (width, depth, height float32) {
	return s.width, s.depth, s.height
}

func (s *scene) Sync(session view_state.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.roomVisible = session.IsExploring() || (session.IsTransitioning() && session.Direction == view_state.DirectionToRoom)
	s.markersVisible = session.IsExploring()
	s.targetedID = session.TargetedPoiID
	s.syncHitboxes()

	switch {
	case session.ActivePoi == nil:
		if s.activePoi != nil {
			s.logger.Debug("detail released", "poi", s.activePoi.ID)
		}
		s.activePoi = nil
		s.detail = nil
		s.loading = false
		s.loadErr = nil
	case s.activePoi == nil || s.activePoi.ID != session.ActivePoi.ID:
		p := *session.ActivePoi
		s.activePoi = &p
		s.requestDetail(p)
	}
}

// syncHitboxes makes the registry hold exactly the catalog hitboxes while markers are visible.
func (s *scene) syncHitboxes() {
	if !s.markersVisible {
		for id := range s.hitboxes {
			s.registry.Unregister(id)
		}
		clear(s.hitboxes)
		return
	}
	for _, p := range s.catalog.All() {
		s.registry.Register(picking.Hitbox{PoiID: p.ID, Center: p.Position, Radius: s.hitboxRadius})
		s.hitboxes[p.ID] = true
	}
}

func (s *scene) requestDetail(p poi.Poi) {
	s.detail = game_object.NewGameObject(
		game_object.WithID(p.ID),
		game_object.WithRotation(p.Rotation),
		game_object.WithShadows(true, true),
	)
	s.detail.SetScale(unitIfZero(p.Scale))
	s.loadErr = nil

	if m, err := s.loader.Get(p.ObjURL, p.MtlURL); err == nil {
		s.detail.SetModel(m)
		s.loading = false
		return
	}
	s.loading = true
	s.logger.Info("loading detail", "poi", p.ID, "obj", p.ObjURL)
	s.loader.LoadAsync(p.ObjURL, p.MtlURL)
}

func (s *scene) Update() {
	results := s.loader.Poll()
	if len(results) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range results {
		s.attach(r)
	}
}

// attach hands a finished load to the detail or a prop. Results for a POI that is
// no longer active are dropped; the loader keeps them cached.
func (s *scene) attach(r loader.Result) {
	if s.activePoi != nil && s.detail != nil && sameAsset(r, s.activePoi.ObjURL, s.activePoi.MtlURL) {
		s.loading = false
		if r.Err != nil {
			s.loadErr = fmt.Errorf("load %s: %w", s.activePoi.Name, r.Err)
			s.logger.Error("detail load failed", "poi", s.activePoi.ID, "err", r.Err)
			return
		}
		s.detail.SetModel(r.Model)
		return
	}
	for i, def := range s.propDefs {
		if !sameAsset(r, def.ObjURL, def.MtlURL) {
			continue
		}
		if r.Err != nil {
			s.logger.Error("prop load failed", "prop", def.Name, "err", r.Err)
			s.props[i].SetEnabled(false)
			continue
		}
		s.props[i].SetModel(r.Model)
	}
}

// unitIfZero treats an unset scale as identity.
func unitIfZero(v mgl32.Vec3) mgl32.Vec3 {
	if v == (mgl32.Vec3{}) {
		return mgl32.Vec3{1, 1, 1}
	}
	return v
}

func sameAsset(r loader.Result, objURL, mtlURL string) bool {
	return r.Key() == (loader.Result{ObjURL: objURL, MtlURL: mtlURL}).Key()
}

func (s *scene) Nodes() []Node {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var nodes []Node
	if s.roomVisible {
		for _, p := range s.planes {
			nodes = append(nodes, Node{
				Kind:          NodePlane,
				Name:          p.Name,
				Transform:     p.Transform(),
				Color:         p.Color,
				Size:          p.Size,
				ReceiveShadow: true,
			})
		}
		for _, prop := range s.props {
			if prop.Enabled() && prop.Model() != nil {
				nodes = append(nodes, modelNode(prop))
			}
		}
	}
	if s.markersVisible {
		for _, p := range s.catalog.All() {
			color := markerColor
			if p.ID == s.targetedID {
				color = markerHighlight
			}
			nodes = append(nodes, Node{
				Kind:        NodeMarker,
				Name:        p.Name,
				Transform:   mgl32.Translate3D(p.Position.X(), p.Position.Y(), p.Position.Z()),
				Color:       color,
				Radius:      s.hitboxRadius,
				Highlighted: p.ID == s.targetedID,
			})
		}
	}
	if s.detail != nil {
		if s.detail.Model() != nil {
			nodes = append(nodes, modelNode(s.detail))
		} else {
			nodes = append(nodes, Node{
				Kind:      NodePlaceholder,
				Name:      s.activePoi.Name,
				Transform: s.detail.ModelMatrix(),
				Color:     placeholderColor,
			})
		}
	}
	return nodes
}

func modelNode(obj game_object.GameObject) Node {
	return Node{
		Kind:          NodeModel,
		Name:          obj.ID(),
		Transform:     obj.ModelMatrix(),
		Color:         mgl32.Vec4{1, 1, 1, 1},
		Model:         obj.Model(),
		CastShadow:    obj.CastShadow(),
		ReceiveShadow: obj.ReceiveShadow(),
	}
}

func (s *scene) RoomVisible() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.roomVisible
}

func (s *scene) MarkersVisible() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.markersVisible
}

func (s *scene) DetailVisible() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.detail != nil
}

func (s *scene) Detail() game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.detail
}

func (s *scene) Loading() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.loading && s.activePoi != nil {
		return fmt.Sprintf("Loading %s...", s.activePoi.Name), true
	}
	if s.roomVisible {
		for _, prop := range s.props {
			if prop.Enabled() && prop.Model() == nil {
				return "Loading Room...", true
			}
		}
	}
	return "", false
}

func (s *scene) LoadError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}
