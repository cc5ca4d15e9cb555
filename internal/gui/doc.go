// Package gui shows the gallery in a raylib window. Scenes are rendered
// by the raster renderer and uploaded as a texture each frame.
package gui
