package dynamo

import (
	"math"
	"testing"

	"github.com/juju/errors"
)

type decay struct{}

func (decay) Derive(x State, t float64) State { return State{-x[0]} }
func (decay) StateDim() int                   { return 1 }

type euler struct{}

func (euler) Step(dyn System, x State, t, dt float64) State {
	dx := dyn.Derive(x, t)
	return State{x[0] + dt*dx[0]}
}

type blowup struct{}

func (blowup) Next(x State) State { return State{x[0] * 1e300} }
func (blowup) StateDim() int      { return 1 }

func TestIntegrate(t *testing.T) {
	states, err := Integrate(decay{}, euler{}, State{1}, 0.5, 3)
	if err != nil {
		t.Fatalf("Integrate: %v", err)
	}
	if len(states) != 4 {
		t.Fatalf("expected 4 states, got %d", len(states))
	}
	want := []float64{1, 0.5, 0.25, 0.125}
	for i, s := range states {
		if s[0] != want[i] {
			t.Errorf("state %d = %v, want %v", i, s[0], want[i])
		}
	}
}

func TestIntegrateDimensionMismatch(t *testing.T) {
	_, err := Integrate(decay{}, euler{}, State{1, 2}, 0.1, 1)
	if errors.Cause(err) != ErrDimensionMismatch {
		t.Errorf("expected dimension mismatch, got %v", err)
	}
}

func TestIterateDiverges(t *testing.T) {
	visited := 0
	err := Iterate(blowup{}, State{1}, 10, func(int, State) { visited++ })
	if errors.Cause(err) != ErrInvalidState {
		t.Fatalf("expected invalid state, got %v", err)
	}
	te, ok := err.(*TrajectoryError)
	if !ok || te.Step != 2 {
		t.Errorf("expected failure at step 2, got %v", err)
	}
	if visited != 1 {
		t.Errorf("visited %d states before divergence, want 1", visited)
	}
}

func TestStateHelpers(t *testing.T) {
	s := State{3, 4}
	if !s.IsValid() || (State{math.NaN()}).IsValid() {
		t.Error("IsValid misreports")
	}
	c := s.Clone()
	c[0] = 9
	if s[0] != 3 {
		t.Error("Clone shares storage")
	}
}
