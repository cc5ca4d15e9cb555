package scene

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

type LightKind int

const (
	AmbientLight LightKind = iota
	DirectionalLight
)

type Light struct {
	Kind      LightKind
	Color     colorful.Color
	Intensity float64
}

func NewAmbientLight(c colorful.Color, intensity float64) *Node {
	n := NewGroup("ambient-light")
	n.Light = &Light{Kind: AmbientLight, Color: c, Intensity: intensity}
	return n
}

// NewDirectionalLight shines from position towards the origin.
func NewDirectionalLight(c colorful.Color, intensity float64, position Vec3) *Node {
	n := NewGroup("directional-light")
	n.Position = position
	n.Light = &Light{Kind: DirectionalLight, Color: c, Intensity: intensity}
	return n
}

// Scene is the root of a scene graph.
type Scene struct {
	Node
	Background colorful.Color
}

func New() *Scene {
	return &Scene{Node: *NewGroup("scene")}
}

// Lighting sums the scene lights into an ambient term and a list of
// directional lights, as unit vectors pointing towards each light.
func (s *Scene) Lighting() (ambient float64, dirs []Vec3, intensities []float64) {
	s.VisitVisible(func(n *Node, world Matrix) {
		if n.Light == nil {
			return
		}
		switch n.Light.Kind {
		case AmbientLight:
			ambient += n.Light.Intensity
		case DirectionalLight:
			dirs = append(dirs, world.T.Normalize())
			intensities = append(intensities, n.Light.Intensity)
		}
	})
	return ambient, dirs, intensities
}

// Stats counts nodes and vertices.
func (s *Scene) Stats() (nodes, vertices int) {
	s.Traverse(func(n *Node) {
		nodes++
		if n.Geometry != nil {
			vertices += len(n.Geometry.Positions)
		}
	})
	return nodes, vertices
}

// Dispose releases every geometry and material in the graph and empties it.
func (s *Scene) Dispose() {
	s.Traverse(func(n *Node) {
		if n.Geometry != nil {
			n.Geometry.Dispose()
		}
		if n.Material != nil {
			n.Material.Dispose()
		}
	})
	for _, c := range s.children {
		c.parent = nil
	}
	s.children = nil
}
