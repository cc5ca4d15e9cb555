package pattern

import (
	"bytes"
	_ "embed"
	"io"
	"sync"

	"github.com/juju/errors"
	colorful "github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Descriptor is the display metadata of one pattern. Values are copied out
// of the registry, so callers cannot mutate the catalog.
type Descriptor struct {
	ID                 string
	Name               string
	Description        string
	About              string
	MathSignificance   string
	NaturalOccurrences string
	Fact               string
	Color              colorful.Color
	ParamLabel1        string
	ParamLabel2        string
}

type descriptorYAML struct {
	ID                 string `yaml:"id"`
	Name               string `yaml:"name"`
	Description        string `yaml:"description"`
	About              string `yaml:"about"`
	MathSignificance   string `yaml:"math_significance"`
	NaturalOccurrences string `yaml:"natural_occurrences"`
	Fact               string `yaml:"fact"`
	Color              string `yaml:"color"`
	ParamLabel1        string `yaml:"param_label1"`
	ParamLabel2        string `yaml:"param_label2"`
}

var (
	ErrDuplicateID = errors.New("pattern: duplicate id")
	ErrMissingID   = errors.New("pattern: descriptor without id")
)

// Registry is an ordered, read-only catalog of descriptors.
type Registry struct {
	order []string
	byID  map[string]Descriptor
}

// New builds a registry, rejecting empty or repeated ids.
func New(descs []Descriptor) (*Registry, error) {
	r := &Registry{byID: make(map[string]Descriptor, len(descs))}
	for _, d := range descs {
		if d.ID == "" {
			return nil, errors.Trace(ErrMissingID)
		}
		if _, ok := r.byID[d.ID]; ok {
			return nil, errors.Annotatef(ErrDuplicateID, "%q", d.ID)
		}
		r.order = append(r.order, d.ID)
		r.byID[d.ID] = d
	}
	return r, nil
}

// Load parses a YAML catalog.
func Load(rd io.Reader) (*Registry, error) {
	var raw []descriptorYAML
	if err := yaml.NewDecoder(rd).Decode(&raw); err != nil {
		return nil, errors.Annotate(err, "decoding pattern catalog")
	}
	descs := make([]Descriptor, 0, len(raw))
	for _, y := range raw {
		c, err := colorful.Hex(y.Color)
		if err != nil {
			return nil, errors.Annotatef(err, "pattern %q color %q", y.ID, y.Color)
		}
		descs = append(descs, Descriptor{
			ID:                 y.ID,
			Name:               y.Name,
			Description:        y.Description,
			About:              y.About,
			MathSignificance:   y.MathSignificance,
			NaturalOccurrences: y.NaturalOccurrences,
			Fact:               y.Fact,
			Color:              c,
			ParamLabel1:        y.ParamLabel1,
			ParamLabel2:        y.ParamLabel2,
		})
	}
	return New(descs)
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the built-in catalog.
func Default() *Registry {
	defaultOnce.Do(func() {
		r, err := Load(bytes.NewReader(catalogYAML))
		if err != nil {
			panic(errors.ErrorStack(err))
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

func (r *Registry) Get(id string) (Descriptor, bool) {
	d, ok := r.byID[id]
	return d, ok
}

// All returns the descriptors in catalog order.
func (r *Registry) All() []Descriptor {
	out := make([]Descriptor, len(r.order))
	for i, id := range r.order {
		out[i] = r.byID[id]
	}
	return out
}

func (r *Registry) IDs() []string {
	return append([]string(nil), r.order...)
}

func (r *Registry) Len() int { return len(r.order) }

// Theme returns the pattern colour and its two companions, the hue turned
// by a third and two thirds.
func (d Descriptor) Theme() (primary, secondary, accent colorful.Color) {
	return d.Color, shiftHue(d.Color, 0.33), shiftHue(d.Color, 0.66)
}

func shiftHue(c colorful.Color, turns float64) colorful.Color {
	h, s, l := c.Hsl()
	h += turns * 360
	for h >= 360 {
		h -= 360
	}
	return colorful.Hsl(h, s, l).Clamped()
}
