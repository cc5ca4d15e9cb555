// Package scene is a small retained-mode scene graph: nodes with
// transforms, vertex-buffer geometry, materials (flat, per-vertex or
// shader driven), lights and a perspective camera.
//
// Pattern constructors populate a [Scene]; a renderer walks it once per
// frame with [Node.VisitVisible] and projects vertices through a
// [Projector] obtained from the [PerspectiveCamera].
//
// Nothing here is safe for concurrent use. Scenes are owned by the event
// loop goroutine that renders them.
package scene
