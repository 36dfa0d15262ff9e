package renderer

// headlessRendererBackend keeps the last frame and the uploaded batch versions.
type headlessRendererBackend struct {
	width, height int
	lastFrame     Frame
	uploaded      map[string]uint64
	uploads       int
	released      bool

	shadowCasters []string
	receivers     []string
}

var _ rendererBackend = &headlessRendererBackend{}

func newHeadlessRendererBackend() *headlessRendererBackend {
	return &headlessRendererBackend{uploaded: make(map[string]uint64)}
}

func (h *headlessRendererBackend) ConfigureSurface(width, height int) {
	h.width, h.height = width, height
}

func (h *headlessRendererBackend) Draw(frame Frame, batches []*batch) error {
	h.lastFrame = frame
	h.shadowCasters = h.shadowCasters[:0]
	for _, b := range shadowCasters(frame, batches) {
		h.shadowCasters = append(h.shadowCasters, b.key)
	}
	h.receivers = h.receivers[:0]
	live := make(map[string]bool, len(batches))
	for _, b := range batches {
		if b.receiveShadow && frame.Shadow.Enabled != 0 {
			h.receivers = append(h.receivers, b.key)
		}
		live[b.key] = true
		if h.uploaded[b.key] != b.version {
			h.uploaded[b.key] = b.version
			h.uploads++
		}
	}
	for key := range h.uploaded {
		if !live[key] {
			delete(h.uploaded, key)
		}
	}
	return nil
}

func (h *headlessRendererBackend) Release() {
	h.released = true
	clear(h.uploaded)
}
