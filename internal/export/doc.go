// Package export writes rendered frames to SVG, GIF and PNG.
package export
