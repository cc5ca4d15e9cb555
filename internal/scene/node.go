package scene

// Node is an element of the scene graph. A node without geometry is a
// group; a node with geometry and material is drawable; a node with a
// light contributes to shading.
type Node struct {
	Name     string
	Position Vec3
	Rotation Vec3
	Scale    Vec3
	Visible  bool

	Geometry *Geometry
	Material *Material
	Light    *Light

	parent   *Node
	children []*Node
}

func NewGroup(name string) *Node {
	return &Node{Name: name, Scale: Vec3{1, 1, 1}, Visible: true}
}

func NewMesh(name string, g *Geometry, m *Material) *Node {
	n := NewGroup(name)
	n.Geometry, n.Material = g, m
	return n
}

// Add attaches children, detaching each from its previous parent.
func (n *Node) Add(children ...*Node) {
	for _, c := range children {
		if c == nil || c == n {
			continue
		}
		if c.parent != nil {
			c.parent.Remove(c)
		}
		c.parent = n
		n.children = append(n.children, c)
	}
}

func (n *Node) Remove(c *Node) {
	for i, child := range n.children {
		if child == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			c.parent = nil
			return
		}
	}
}

func (n *Node) Children() []*Node { return n.children }
func (n *Node) Parent() *Node     { return n.parent }

// SetScale sets a uniform scale.
func (n *Node) SetScale(s float64) { n.Scale = Vec3{s, s, s} }

func (n *Node) Matrix() Matrix { return Compose(n.Position, n.Rotation, n.Scale) }

// WorldMatrix composes the local transforms from the root down to n.
func (n *Node) WorldMatrix() Matrix {
	m := n.Matrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.Matrix().Mul(m)
	}
	return m
}

// Traverse visits n and every descendant, depth first, visible or not.
func (n *Node) Traverse(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.Traverse(fn)
	}
}

// VisitVisible visits every visible node with its world transform. A
// hidden node hides its whole subtree.
func (n *Node) VisitVisible(fn func(n *Node, world Matrix)) {
	n.visitVisible(Identity(), fn)
}

func (n *Node) visitVisible(parent Matrix, fn func(*Node, Matrix)) {
	if !n.Visible {
		return
	}
	world := parent.Mul(n.Matrix())
	fn(n, world)
	for _, c := range n.children {
		c.visitVisible(world, fn)
	}
}
