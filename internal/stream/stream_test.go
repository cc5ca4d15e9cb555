package stream

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/gorilla/websocket"

	"github.com/san-kum/mathgallery/internal/host"
	"github.com/san-kum/mathgallery/internal/loop"
	"github.com/san-kum/mathgallery/internal/pattern"
	"github.com/san-kum/mathgallery/internal/visual"
)

type fixture struct {
	srv  *Server
	http *httptest.Server
	host *host.Host
	loop *loop.Loop
}

func newFixture(c *qt.C) *fixture {
	l := loop.New(60)
	page := host.NewPage()
	h := host.New(host.Options{Document: page, Scheduler: l, Factory: visual.NewFactory()})
	srv := New(Config{Pattern: "lissajous", Width: 40, Height: 24, Seed: 7}, h, page, l, nil)
	ts := httptest.NewServer(srv.Handler())

	ctx, cancel := context.WithCancel(context.Background())
	go l.Run(ctx)
	c.Cleanup(func() {
		ts.Close()
		cancel()
	})
	return &fixture{srv: srv, http: ts, host: h, loop: l}
}

func (f *fixture) dial(c *qt.C, query string) *websocket.Conn {
	u := "ws" + strings.TrimPrefix(f.http.URL, "http") + "/ws" + query
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	c.Assert(err, qt.IsNil)
	c.Cleanup(func() { conn.Close() })
	return conn
}

// await reads messages until one of type typ arrives.
func await(c *qt.C, conn *websocket.Conn, typ string) Message {
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for {
		var m Message
		c.Assert(conn.ReadJSON(&m), qt.IsNil)
		if m.Type == typ {
			return m
		}
	}
}

func (f *fixture) onLoop(c *qt.C, fn func()) {
	c.Assert(f.loop.Call(context.Background(), fn), qt.IsNil)
}

// params copies the slider values of the only live session.
func (f *fixture) params(c *qt.C) visual.Params {
	var p visual.Params
	f.onLoop(c, func() {
		if sess, ok := f.host.Session(f.host.ContainerIDs()[0]); ok {
			p = *sess.Instance.Params()
		}
	})
	return p
}

func eventually(c *qt.C, cond func() bool) {
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			c.Fatalf("condition not met in time")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestConnectMountsDefaultPattern(t *testing.T) {
	c := qt.New(t)
	f := newFixture(c)
	conn := f.dial(c, "")

	m := await(c, conn, TypeMounted)
	c.Assert(m.Pattern, qt.Equals, "lissajous")
	c.Assert(m.Param1, qt.Equals, 0.5)

	frame := await(c, conn, TypeFrame)
	c.Assert(frame.Frame > 0, qt.IsTrue)
	c.Assert(strings.Count(frame.Text, "\n"), qt.Equals, 6)
}

func TestMessages(t *testing.T) {
	c := qt.New(t)
	f := newFixture(c)
	conn := f.dial(c, "?pattern=wave&w=30&h=10")
	c.Assert(await(c, conn, TypeMounted).Pattern, qt.Equals, "wave")

	c.Assert(conn.WriteJSON(Message{Type: TypeMount, Pattern: "platonic"}), qt.IsNil)
	c.Assert(await(c, conn, TypeMounted).Pattern, qt.Equals, "platonic")
	var n int
	f.onLoop(c, func() { n = f.host.Len() })
	c.Assert(n, qt.Equals, 1)

	c.Assert(conn.WriteJSON(Message{Type: TypeParams, Param1: 0.9, Param2: 0.1}), qt.IsNil)
	c.Assert(conn.WriteJSON(Message{Type: TypeRandomize}), qt.IsNil)
	r := await(c, conn, TypeParams)
	p := f.params(c)
	c.Assert([]float64{p.Param1, p.Param2}, qt.DeepEquals, []float64{r.Param1, r.Param2})

	c.Assert(conn.WriteJSON(Message{Type: TypeReset}), qt.IsNil)
	c.Assert(conn.WriteJSON(Message{Type: "dance"}), qt.IsNil)
	e := await(c, conn, TypeError)
	c.Assert(e.Error, qt.Matches, `unknown message type "dance"`)
	c.Assert(f.params(c).Param1, qt.Equals, 0.5)
}

func TestResize(t *testing.T) {
	c := qt.New(t)
	f := newFixture(c)
	conn := f.dial(c, "?w=40&h=20")
	await(c, conn, TypeMounted)

	c.Assert(conn.WriteJSON(Message{Type: TypeResize, Width: 20, Height: 5}), qt.IsNil)
	c.Assert(conn.WriteJSON(Message{Type: TypeResize}), qt.IsNil)
	await(c, conn, TypeError)
	var aspect float64
	f.onLoop(c, func() {
		if sess, ok := f.host.Session(f.host.ContainerIDs()[0]); ok {
			aspect = sess.Camera.Aspect
		}
	})
	c.Assert(aspect, qt.Equals, 4.0)
}

func TestDisconnectDestroysSession(t *testing.T) {
	c := qt.New(t)
	f := newFixture(c)
	conn := f.dial(c, "")
	await(c, conn, TypeMounted)
	conn.Close()

	eventually(c, func() bool {
		n := -1
		f.loop.Call(context.Background(), func() { n = f.host.Len() })
		return n == 0 && len(f.srv.page.IDs()) == 0
	})
}

func TestDefaultPatternFromCatalog(t *testing.T) {
	c := qt.New(t)
	reg := pattern.Default()
	srv := New(Config{}, nil, nil, nil, reg)
	c.Assert(srv.cfg.Pattern, qt.Equals, reg.IDs()[0])
	_, ok := reg.Get(srv.cfg.Pattern)
	c.Assert(ok, qt.IsTrue)
}

func TestRandomParamRange(t *testing.T) {
	c := qt.New(t)
	r := rand.New(rand.NewSource(3))
	seen := map[float64]bool{}
	for i := 0; i < 5000; i++ {
		v := randomParam(r)
		c.Assert(v >= 0 && v <= 0.99, qt.IsTrue, qt.Commentf("value %v", v))
		seen[v] = true
	}
	c.Assert(seen[0.99], qt.IsTrue)
	c.Assert(seen[1], qt.IsFalse)
}

func TestPatternList(t *testing.T) {
	c := qt.New(t)
	f := newFixture(c)
	resp, err := http.Get(f.http.URL + "/patterns")
	c.Assert(err, qt.IsNil)
	defer resp.Body.Close()

	var list []patternInfo
	c.Assert(json.NewDecoder(resp.Body).Decode(&list), qt.IsNil)
	c.Assert(list, qt.HasLen, 12)
	c.Assert(list[0].Color, qt.Matches, `#[0-9a-f]{6}`)
}

func TestCheckOrigin(t *testing.T) {
	c := qt.New(t)
	r := httptest.NewRequest("GET", "http://gallery.local/ws", nil)
	c.Assert(checkOrigin(r), qt.IsTrue)
	r.Header.Set("Origin", "http://gallery.local")
	c.Assert(checkOrigin(r), qt.IsTrue)
	r.Header.Set("Origin", "http://elsewhere.test")
	c.Assert(checkOrigin(r), qt.IsFalse)
}
