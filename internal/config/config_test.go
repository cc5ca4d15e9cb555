package config

import (
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/juju/errors"

	"github.com/san-kum/mathgallery/internal/dynamo"
	"github.com/san-kum/mathgallery/internal/pattern"
)

func TestDefaultConfig(t *testing.T) {
	c := qt.New(t)
	cfg := DefaultConfig()
	c.Assert(cfg.Validate(), qt.IsNil)
	c.Assert(cfg.DetailContainer, qt.Equals, "visualization-container")
	c.Assert(cfg.Lorenz, qt.Equals, LorenzConfig{
		Integrator: "euler", Dt: 0.005, Steps: 5000,
		Sigma: 10, Rho: 28, Beta: 8.0 / 3.0,
	})
}

func TestValidateLorenzCoefficients(t *testing.T) {
	c := qt.New(t)
	cfg := DefaultConfig()
	cfg.Lorenz.Rho = 99.96
	c.Assert(cfg.Validate(), qt.IsNil)

	cfg.Lorenz.Beta = -1
	err := cfg.Validate()
	c.Assert(errors.Cause(err), qt.Equals, dynamo.ErrParameterBounds)
	c.Assert(err, qt.ErrorMatches, "lorenz: beta -1: .*")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"fps zero", func(c *Config) { c.FPS = 0 }},
		{"fps huge", func(c *Config) { c.FPS = 1000 }},
		{"renderer", func(c *Config) { c.Renderer = "vulkan" }},
		{"width", func(c *Config) { c.Width = 0 }},
		{"preview", func(c *Config) { c.PreviewHeight = -1 }},
		{"container", func(c *Config) { c.DetailContainer = "" }},
		{"integrator", func(c *Config) { c.Lorenz.Integrator = "leapfrog" }},
		{"dt", func(c *Config) { c.Lorenz.Dt = 0 }},
		{"steps", func(c *Config) { c.Lorenz.Steps = 100 }},
		{"log level", func(c *Config) { c.LogLevel = "<root>=LOUD" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			c.Assert(err, qt.Not(qt.IsNil))
			c.Assert(errors.Cause(err), qt.Equals, ErrInvalidConfig)
		})
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	c := qt.New(t)
	path := filepath.Join(c.TempDir(), "gallery.yaml")

	cfg := DefaultConfig()
	cfg.FPS = 24
	cfg.Renderer = "raster"
	cfg.Lorenz.Integrator = "rk4"
	c.Assert(Save(path, cfg), qt.IsNil)

	got, err := Load(path)
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.DeepEquals, cfg)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	c := qt.New(t)
	path := filepath.Join(c.TempDir(), "gallery.yaml")
	c.Assert(os.WriteFile(path, []byte("fps: 12\n"), 0644), qt.IsNil)

	got, err := Load(path)
	c.Assert(err, qt.IsNil)
	c.Assert(got.FPS, qt.Equals, 12)
	c.Assert(got.Width, qt.Equals, DefaultWidth)
}

func TestLoadErrors(t *testing.T) {
	c := qt.New(t)
	dir := c.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	c.Assert(err, qt.ErrorMatches, "reading .*")

	bad := filepath.Join(dir, "bad.yaml")
	c.Assert(os.WriteFile(bad, []byte("fps: 0\n"), 0644), qt.IsNil)
	_, err = Load(bad)
	c.Assert(errors.Cause(err), qt.Equals, ErrInvalidConfig)
}

func TestPresetsCoverCatalog(t *testing.T) {
	c := qt.New(t)
	for _, id := range pattern.Default().IDs() {
		names := ListPresets(id)
		c.Assert(names, qt.Not(qt.HasLen), 0, qt.Commentf("pattern %s", id))
		for _, n := range names {
			p := GetPreset(id, n)
			c.Assert(p, qt.Not(qt.IsNil))
			c.Assert(p.Param1 >= 0 && p.Param1 <= 1 && p.Param2 >= 0 && p.Param2 <= 1, qt.IsTrue)
		}
	}
	c.Assert(len(Presets), qt.Equals, pattern.Default().Len())
}

func TestGetPresetNotFound(t *testing.T) {
	c := qt.New(t)
	c.Assert(GetPreset("lorenz", "nonexistent"), qt.IsNil)
	c.Assert(GetPreset("nonexistent", "calm"), qt.IsNil)
	c.Assert(ListPresets("nonexistent"), qt.IsNil)
	c.Assert(ListPresets("platonic"), qt.DeepEquals, []string{"cube", "dodecahedron", "icosahedron", "octahedron", "tetrahedron"})
}
