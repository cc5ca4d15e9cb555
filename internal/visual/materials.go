package visual

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/mathgallery/internal/scene"
)

func lineMaterial(c colorful.Color, opacity float64) *scene.Material {
	m := scene.NewBasicMaterial(c)
	if opacity < 1 {
		m.Transparent, m.Opacity = true, opacity
	}
	return m
}

func wireMaterial(c colorful.Color, opacity float64) *scene.Material {
	m := lineMaterial(c, opacity)
	m.Wireframe = true
	return m
}

// glowPoints is an additive point material.
func glowPoints(c colorful.Color, size, opacity float64) *scene.Material {
	m := lineMaterial(c, opacity)
	m.Size = size
	m.Blending = scene.AdditiveBlending
	return m
}

// sampleIndex maps particle i of n onto a buffer of length l.
func sampleIndex(i, n, l int) int {
	return int(float64(i) / float64(n) * float64(l))
}
