package config

import (
	"os"

	"github.com/juju/errors"
	"github.com/juju/loggo"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/mathgallery/internal/integrators"
	"github.com/san-kum/mathgallery/internal/physics"
)

const (
	DefaultFPS             = 30
	DefaultWidth           = 160
	DefaultHeight          = 96
	DefaultPreviewWidth    = 48
	DefaultPreviewHeight   = 24
	DefaultDetailContainer = "visualization-container"
	DefaultLogLevel        = "<root>=WARNING"
	DefaultListen          = "localhost:8080"

	minLorenzSteps = 101
)

var ErrInvalidConfig = errors.New("invalid config")

// Renderers lists the accepted values of Config.Renderer.
var Renderers = []string{"braille", "raster"}

type Config struct {
	FPS             int          `yaml:"fps"`
	Renderer        string       `yaml:"renderer"`
	Width           int          `yaml:"width"`
	Height          int          `yaml:"height"`
	PreviewWidth    int          `yaml:"preview_width"`
	PreviewHeight   int          `yaml:"preview_height"`
	DetailContainer string       `yaml:"detail_container"`
	Theme           string       `yaml:"theme"`
	LogLevel        string       `yaml:"log_level"`
	Seed            int64        `yaml:"seed"`
	Listen          string       `yaml:"listen"`
	Lorenz          LorenzConfig `yaml:"lorenz"`
}

// LorenzConfig controls the precomputed Lorenz trajectory.
type LorenzConfig struct {
	Integrator string  `yaml:"integrator"`
	Dt         float64 `yaml:"dt"`
	Steps      int     `yaml:"steps"`
	Sigma      float64 `yaml:"sigma"`
	Rho        float64 `yaml:"rho"`
	Beta       float64 `yaml:"beta"`
}

// Coefficients keys the system coefficients by their physics.Lorenz names.
func (l LorenzConfig) Coefficients() map[string]float64 {
	return map[string]float64{"sigma": l.Sigma, "rho": l.Rho, "beta": l.Beta}
}

func DefaultConfig() *Config {
	return &Config{
		FPS:             DefaultFPS,
		Renderer:        "braille",
		Width:           DefaultWidth,
		Height:          DefaultHeight,
		PreviewWidth:    DefaultPreviewWidth,
		PreviewHeight:   DefaultPreviewHeight,
		DetailContainer: DefaultDetailContainer,
		Theme:           "cyberpunk",
		LogLevel:        DefaultLogLevel,
		Seed:            1,
		Listen:          DefaultListen,
		Lorenz: LorenzConfig{
			Integrator: "euler",
			Dt:         0.005,
			Steps:      5000,
			Sigma:      10,
			Rho:        28,
			Beta:       8.0 / 3.0,
		},
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Annotatef(err, "reading %s", path)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Annotatef(err, "parsing %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Annotatef(err, "%s", path)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(os.WriteFile(path, data, 0644))
}

// Validate reports the first bad field, wrapped around ErrInvalidConfig.
// Lorenz coefficients are checked by physics.Lorenz and keep its errors.
func (c *Config) Validate() error {
	switch {
	case c.FPS < 1 || c.FPS > 240:
		return errors.Annotatef(ErrInvalidConfig, "fps %d out of range [1, 240]", c.FPS)
	case !contains(Renderers, c.Renderer):
		return errors.Annotatef(ErrInvalidConfig, "unknown renderer %q", c.Renderer)
	case c.Width <= 0 || c.Height <= 0:
		return errors.Annotatef(ErrInvalidConfig, "size %dx%d", c.Width, c.Height)
	case c.PreviewWidth <= 0 || c.PreviewHeight <= 0:
		return errors.Annotatef(ErrInvalidConfig, "preview size %dx%d", c.PreviewWidth, c.PreviewHeight)
	case c.DetailContainer == "":
		return errors.Annotatef(ErrInvalidConfig, "empty detail container")
	case !contains(integrators.Names(), c.Lorenz.Integrator):
		return errors.Annotatef(ErrInvalidConfig, "unknown integrator %q", c.Lorenz.Integrator)
	case c.Lorenz.Dt <= 0:
		return errors.Annotatef(ErrInvalidConfig, "lorenz dt %v", c.Lorenz.Dt)
	case c.Lorenz.Steps < minLorenzSteps:
		return errors.Annotatef(ErrInvalidConfig, "lorenz steps %d below %d", c.Lorenz.Steps, minLorenzSteps)
	}
	sys := physics.NewLorenz()
	for name, v := range c.Lorenz.Coefficients() {
		if err := sys.SetParam(name, v); err != nil {
			return errors.Annotate(err, "lorenz")
		}
	}
	if _, err := loggo.ParseConfigString(c.LogLevel); err != nil {
		return errors.Annotatef(ErrInvalidConfig, "log level %q: %v", c.LogLevel, err)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
