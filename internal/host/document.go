package host

import (
	"sort"
	"sync"

	"github.com/san-kum/mathgallery/internal/render"
)

// Container is a sized surface a session renders into.
type Container interface {
	ID() string
	// Size is the current drawable size. Zero means not laid out.
	Size() (width, height int)
	Attach(r render.Renderer)
	Detach(r render.Renderer)
}

// Document resolves container ids, like a page looking up elements.
type Document interface {
	Container(id string) (Container, bool)
}

// Surface is an in-memory Container.
type Surface struct {
	mu       sync.Mutex
	id       string
	w, h     int
	renderer render.Renderer
}

func NewSurface(id string, w, h int) *Surface {
	return &Surface{id: id, w: w, h: h}
}

func (s *Surface) ID() string { return s.id }

func (s *Surface) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w, s.h
}

// Resize changes the measured size. It does not notify anyone; callers
// raise the resize event on the loop afterwards.
func (s *Surface) Resize(w, h int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.w, s.h = w, h
}

func (s *Surface) Attach(r render.Renderer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.renderer = r
}

func (s *Surface) Detach(r render.Renderer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.renderer == r {
		s.renderer = nil
	}
}

// Renderer is the currently attached renderer, if any.
func (s *Surface) Renderer() render.Renderer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderer
}

// Page is an in-memory Document of Surfaces.
type Page struct {
	mu       sync.Mutex
	surfaces map[string]*Surface
}

func NewPage() *Page {
	return &Page{surfaces: make(map[string]*Surface)}
}

// Add creates or resizes the surface with the given id.
func (p *Page) Add(id string, w, h int) *Surface {
	p.mu.Lock()
	defer p.mu.Unlock()
	if s, ok := p.surfaces[id]; ok {
		s.Resize(w, h)
		return s
	}
	s := NewSurface(id, w, h)
	p.surfaces[id] = s
	return s
}

func (p *Page) Remove(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.surfaces, id)
}

func (p *Page) Surface(id string) (*Surface, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.surfaces[id]
	return s, ok
}

func (p *Page) Container(id string) (Container, bool) {
	s, ok := p.Surface(id)
	if !ok {
		return nil, false
	}
	return s, true
}

func (p *Page) IDs() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	ids := make([]string, 0, len(p.surfaces))
	for id := range p.surfaces {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
