package stream

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/juju/errors"

	"github.com/san-kum/mathgallery/internal/render"
	"github.com/san-kum/mathgallery/internal/visual"
)

// Message is the JSON envelope for both directions.
type Message struct {
	Type    string  `json:"type"`
	Pattern string  `json:"pattern,omitempty"`
	Param1  float64 `json:"param1"`
	Param2  float64 `json:"param2"`
	Width   int     `json:"width,omitempty"`
	Height  int     `json:"height,omitempty"`
	Frame   int     `json:"frame,omitempty"`
	Text    string  `json:"text,omitempty"`
	Error   string  `json:"error,omitempty"`
}

const (
	TypeMount     = "mount"
	TypeParams    = "params"
	TypeReset     = "reset"
	TypeRandomize = "randomize"
	TypeResize    = "resize"

	TypeMounted = "mounted"
	TypeFrame   = "frame"
	TypeError   = "error"
)

const writeWait = 5 * time.Second

type client struct {
	id   string
	srv  *Server
	conn *websocket.Conn

	// pattern is only touched on the loop goroutine after run starts.
	pattern string

	writeMu sync.Mutex
}

func (c *client) run(parent context.Context, w, h int) {
	ctx, cancel := context.WithCancel(parent)
	defer func() {
		cancel()
		c.srv.loop.Call(context.Background(), func() { c.srv.host.Destroy(c.id) })
		c.srv.page.Remove(c.id)
		c.conn.Close()
		logger.Debugf("client %s gone", c.id)
	}()

	c.srv.page.Add(c.id, w, h)
	if err := c.call(ctx, Message{Type: TypeMount, Pattern: c.pattern}); err != nil {
		logger.Warningf("client %s: %v", c.id, err)
		return
	}
	go c.pushFrames(ctx)

	for {
		var m Message
		if err := c.conn.ReadJSON(&m); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debugf("client %s read: %v", c.id, err)
			}
			return
		}
		if err := c.call(ctx, m); err != nil {
			c.write(Message{Type: TypeError, Error: err.Error()})
		}
	}
}

// call runs one request on the loop and writes its reply.
func (c *client) call(ctx context.Context, m Message) error {
	var reply *Message
	var herr error
	err := c.srv.loop.Call(ctx, func() { reply, herr = c.handle(m) })
	if err != nil {
		return errors.Trace(err)
	}
	if herr != nil {
		return herr
	}
	if reply != nil {
		return c.write(*reply)
	}
	return nil
}

func (c *client) handle(m Message) (*Message, error) {
	h := c.srv.host
	switch m.Type {
	case TypeMount:
		inst := h.Mount(c.id, m.Pattern)
		if inst == nil {
			return nil, errors.Errorf("container %s has no area", c.id)
		}
		c.pattern = m.Pattern
		p := inst.Params()
		return &Message{Type: TypeMounted, Pattern: m.Pattern, Param1: p.Param1, Param2: p.Param2}, nil
	case TypeParams:
		h.UpdateParams(c.pattern, m.Param1, m.Param2)
	case TypeReset:
		h.UpdateParams(c.pattern, visual.DefaultParam, visual.DefaultParam)
	case TypeRandomize:
		p1, p2 := randomParam(c.srv.rand), randomParam(c.srv.rand)
		h.UpdateParams(c.pattern, p1, p2)
		return &Message{Type: TypeParams, Pattern: c.pattern, Param1: p1, Param2: p2}, nil
	case TypeResize:
		if m.Width <= 0 || m.Height <= 0 {
			return nil, errors.Errorf("bad size %dx%d", m.Width, m.Height)
		}
		c.srv.page.Add(c.id, m.Width, m.Height)
		c.srv.loop.NotifyResize()
	default:
		return nil, errors.Errorf("unknown message type %q", m.Type)
	}
	return nil, nil
}

func (c *client) pushFrames(ctx context.Context) {
	ticker := time.NewTicker(c.srv.loop.Interval())
	defer ticker.Stop()
	last := -1
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		var m Message
		err := c.srv.loop.Call(ctx, func() { m = c.snapshot() })
		if err != nil {
			return
		}
		if m.Frame == 0 || m.Frame == last {
			continue
		}
		last = m.Frame
		if err := c.write(m); err != nil {
			logger.Debugf("client %s write: %v", c.id, err)
			return
		}
	}
}

func (c *client) snapshot() Message {
	sess, ok := c.srv.host.Session(c.id)
	if !ok {
		return Message{}
	}
	b, ok := sess.Renderer.(*render.Braille)
	if !ok {
		return Message{}
	}
	return Message{Type: TypeFrame, Pattern: sess.PatternID, Frame: sess.Frames(), Text: b.Canvas().String()}
}

func (c *client) write(m Message) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return errors.Trace(c.conn.WriteJSON(m))
}
