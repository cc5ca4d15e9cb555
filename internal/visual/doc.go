// Package visual implements the pattern instances hosted by the gallery.
//
// An [Instance] is built by a [Constructor] into a scene it does not own,
// exposes two normalized parameters through [Instance.Params] and advances
// one frame per [Instance.Update]. The [Factory] maps pattern ids to
// constructors and never fails: unknown ids and constructors that panic
// are replaced by a wireframe torus knot.
//
// Patterns:
//
//	hypercube   4D tesseract projected to 3D
//	clifford    Clifford strange attractor
//	fibonacci   golden spiral and squares
//	mandelbrot  escape-time fractal shader
//	lorenz      Lorenz butterfly trajectory
//	voronoi     nearest-site cell grid
//	penrose     thin and fat rhombs
//	platonic    the five regular solids
//	wave        two-source interference
//	turing      reaction-diffusion noise shader
//	lissajous   harmonic figure
//	hyperbolic  Poincare disk sketch
package visual
