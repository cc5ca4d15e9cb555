// Package render turns a [scene.Scene] into pixels.
//
// Two software renderers implement [Renderer]:
//
//   - [Braille]: a braille-dot canvas for terminals, wireframe only
//   - [Raster]: an RGBA image with a depth buffer and Lambert shading
//
// Both evaluate shader materials through their Go fragment functions.
// The raylib window backend lives in package gui.
package render
