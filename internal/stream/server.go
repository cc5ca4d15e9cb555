package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/juju/errors"
	"github.com/juju/loggo"

	"github.com/san-kum/mathgallery/internal/host"
	"github.com/san-kum/mathgallery/internal/loop"
	"github.com/san-kum/mathgallery/internal/pattern"
)

var logger = loggo.GetLogger("mathgallery.stream")

type Config struct {
	Listen string
	// Pattern is mounted for clients that do not name one. Empty means
	// the first catalog entry.
	Pattern       string
	Width, Height int
	Seed          int64
}

// Server streams braille frames of host sessions to websocket clients.
// Each client gets its own container on the page; every host call is
// made on the loop goroutine.
type Server struct {
	cfg      Config
	host     *host.Host
	page     *host.Page
	loop     *loop.Loop
	patterns *pattern.Registry
	rand     *rand.Rand
	next     atomic.Uint64
	server   *http.Server
}

func New(cfg Config, h *host.Host, page *host.Page, l *loop.Loop, patterns *pattern.Registry) *Server {
	if patterns == nil {
		patterns = pattern.Default()
	}
	if cfg.Pattern == "" {
		cfg.Pattern = patterns.IDs()[0]
	}
	return &Server{
		cfg:      cfg,
		host:     h,
		page:     page,
		loop:     l,
		patterns: patterns,
		rand:     rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Serve listens on cfg.Listen and blocks until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	s.server = &http.Server{
		Addr:           s.cfg.Listen,
		Handler:        s.Handler(),
		ReadTimeout:    10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}
	go func() {
		<-ctx.Done()
		s.server.Close()
	}()
	logger.Infof("serving gallery stream at %s", s.cfg.Listen)
	err := s.server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return errors.Trace(err)
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWS)
	mux.HandleFunc("/patterns", s.servePatterns)
	return mux
}

type patternInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Param1      string `json:"param1"`
	Param2      string `json:"param2"`
}

func (s *Server) servePatterns(w http.ResponseWriter, r *http.Request) {
	all := s.patterns.All()
	out := make([]patternInfo, 0, len(all))
	for _, d := range all {
		out = append(out, patternInfo{
			ID:          d.ID,
			Name:        d.Name,
			Description: d.Description,
			Color:       d.Color.Hex(),
			Param1:      d.ParamLabel1,
			Param2:      d.ParamLabel2,
		})
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		logger.Warningf("writing pattern list: %v", err)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1 << 14,
	CheckOrigin:     checkOrigin,
}

// checkOrigin admits non-browser clients and same-host pages.
func checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	return err == nil && u.Host == r.Host
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warningf("failed to upgrade to WS: %s", err)
		return
	}
	q := r.URL.Query()
	c := &client{
		id:      fmt.Sprintf("ws-%d", s.next.Add(1)),
		srv:     s,
		conn:    ws,
		pattern: q.Get("pattern"),
	}
	if c.pattern == "" {
		c.pattern = s.cfg.Pattern
	}
	c.run(r.Context(), queryInt(q, "w", s.cfg.Width), queryInt(q, "h", s.cfg.Height))
}

// randomParam picks a whole percentage, like the slider would.
func randomParam(r *rand.Rand) float64 { return float64(r.Intn(100)) / 100 }

func queryInt(q url.Values, key string, def int) int {
	n, err := strconv.Atoi(q.Get(key))
	if err != nil || n <= 0 {
		return def
	}
	return n
}
