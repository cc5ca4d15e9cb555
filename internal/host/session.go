package host

import (
	"github.com/san-kum/mathgallery/internal/loop"
	"github.com/san-kum/mathgallery/internal/render"
	"github.com/san-kum/mathgallery/internal/scene"
	"github.com/san-kum/mathgallery/internal/visual"
)

// Session is the runtime state of one mounted container.
type Session struct {
	ContainerID string
	PatternID   string
	Scene       *scene.Scene
	Camera      *scene.PerspectiveCamera
	Renderer    render.Renderer
	Controls    Controls
	Instance    visual.Instance

	container Container
	resizeID  loop.ListenerID
	frameID   loop.FrameID
	cancelled bool
	failed    bool
	frames    int
}

// step runs one frame: update, controls, render. A panic in any of them
// is returned as an error. An instance that tears down its own session
// stops the frame before rendering.
func (s *Session) step() error {
	return guard(func() {
		s.Instance.Update()
		if s.cancelled {
			return
		}
		if s.Controls != nil {
			s.Controls.Update()
		}
		s.Renderer.Render(s.Scene, s.Camera)
	})
}

// Frames counts completed frames.
func (s *Session) Frames() int { return s.frames }

// Cancelled reports whether the session was destroyed or replaced.
func (s *Session) Cancelled() bool { return s.cancelled }

// Failed reports whether the session stopped after a panic.
func (s *Session) Failed() bool { return s.failed }
