package physics

import (
	"github.com/juju/errors"

	"github.com/san-kum/mathgallery/internal/dynamo"
)

// Lorenz is the Lorenz system
//
//	x' = sigma*(y - x)
//	y' = x*(rho - z) - y
//	z' = x*y - beta*z
type Lorenz struct{ Sigma, Rho, Beta float64 }

var _ dynamo.Configurable = (*Lorenz)(nil)

// NewLorenz uses the classic chaotic parameters 10, 28 and 8/3.
func NewLorenz() *Lorenz { return &Lorenz{Sigma: 10, Rho: 28, Beta: 8.0 / 3.0} }

func (l *Lorenz) StateDim() int { return 3 }

func (l *Lorenz) Derive(s dynamo.State, _ float64) dynamo.State {
	x, y, z := s[0], s[1], s[2]
	return dynamo.State{
		l.Sigma * (y - x),
		x*(l.Rho-z) - y,
		x*y - l.Beta*z,
	}
}

// DefaultState is the seed point of the gallery trajectory.
func (l *Lorenz) DefaultState() dynamo.State { return dynamo.State{0.1, 0, 0} }

func (l *Lorenz) GetParams() map[string]float64 {
	return map[string]float64{"sigma": l.Sigma, "rho": l.Rho, "beta": l.Beta}
}

func (l *Lorenz) SetParam(name string, v float64) error {
	switch name {
	case "sigma":
		l.Sigma = v
	case "rho":
		l.Rho = v
	case "beta":
		if v <= 0 {
			return errors.Annotatef(dynamo.ErrParameterBounds, "beta %v", v)
		}
		l.Beta = v
	default:
		return errors.Annotatef(dynamo.ErrUnknownParameter, "lorenz %q", name)
	}
	return nil
}
