package loop

import (
	"context"
	"runtime/debug"
	"sync"
	"time"

	"github.com/juju/errors"
	"github.com/juju/loggo"
)

var logger = loggo.GetLogger("mathgallery.loop")

// ErrClosed is returned by Call once the loop has stopped.
var ErrClosed = errors.New("event loop closed")

// FrameID identifies a pending frame request. The zero value is never
// issued.
type FrameID uint64

// ListenerID identifies a resize listener.
type ListenerID uint64

// FrameFunc is called once for the tick that follows its request.
type FrameFunc func(now time.Time)

// Loop is a single-threaded cooperative scheduler. Posted tasks, frame
// callbacks and resize listeners all run on whichever goroutine calls
// Run, or Tick and Drain when the caller drives the loop itself.
type Loop struct {
	fps   int
	tasks chan func()
	done  chan struct{}
	once  sync.Once

	mu        sync.Mutex
	nextFrame FrameID
	frames    map[FrameID]FrameFunc
	order     []FrameID
	nextLis   ListenerID
	listeners map[ListenerID]func()
	lisOrder  []ListenerID
	ticks     uint64
}

func New(fps int) *Loop {
	if fps <= 0 {
		fps = 60
	}
	return &Loop{
		fps:       fps,
		tasks:     make(chan func(), 256),
		done:      make(chan struct{}),
		frames:    make(map[FrameID]FrameFunc),
		listeners: make(map[ListenerID]func()),
	}
}

func (l *Loop) FPS() int { return l.fps }

// Interval is the time between ticks under Run.
func (l *Loop) Interval() time.Duration { return time.Second / time.Duration(l.fps) }

// Post queues fn to run on the loop goroutine. It is safe to call from
// any goroutine and drops fn once the loop is closed.
func (l *Loop) Post(fn func()) {
	select {
	case <-l.done:
		logger.Debugf("post after close dropped")
		return
	default:
	}
	select {
	case <-l.done:
	case l.tasks <- fn:
	}
}

// Call runs fn on the loop goroutine and waits for it. It must not be
// called from the loop goroutine itself.
func (l *Loop) Call(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	task := func() {
		defer close(finished)
		fn()
	}
	select {
	case <-ctx.Done():
		return errors.Trace(ctx.Err())
	case <-l.done:
		return ErrClosed
	case l.tasks <- task:
	}
	select {
	case <-ctx.Done():
		return errors.Trace(ctx.Err())
	case <-l.done:
		return ErrClosed
	case <-finished:
		return nil
	}
}

// Drain runs every task queued so far without blocking.
func (l *Loop) Drain() int {
	n := 0
	for {
		select {
		case fn := <-l.tasks:
			l.safely("task", func() { fn() })
			n++
		default:
			return n
		}
	}
}

// RequestFrame schedules fn for the next tick.
func (l *Loop) RequestFrame(fn FrameFunc) FrameID {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextFrame++
	id := l.nextFrame
	l.frames[id] = fn
	l.order = append(l.order, id)
	return id
}

// CancelFrame drops a pending request. Unknown or already run ids are
// ignored.
func (l *Loop) CancelFrame(id FrameID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.frames, id)
}

// Pending counts frame requests waiting for the next tick.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.frames)
}

// Tick runs the callbacks requested before it started. Callbacks that
// request a frame while running are scheduled for the following tick.
func (l *Loop) Tick(now time.Time) {
	l.mu.Lock()
	order := l.order
	l.order = nil
	l.ticks++
	l.mu.Unlock()

	for _, id := range order {
		l.mu.Lock()
		fn, ok := l.frames[id]
		delete(l.frames, id)
		l.mu.Unlock()
		if !ok {
			continue
		}
		l.safely("frame", func() { fn(now) })
	}
}

// Ticks counts completed calls to Tick.
func (l *Loop) Ticks() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ticks
}

// AddResizeListener registers fn to run on every NotifyResize.
func (l *Loop) AddResizeListener(fn func()) ListenerID {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextLis++
	id := l.nextLis
	l.listeners[id] = fn
	l.lisOrder = append(l.lisOrder, id)
	return id
}

func (l *Loop) RemoveResizeListener(id ListenerID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.listeners[id]; !ok {
		return
	}
	delete(l.listeners, id)
	for i, v := range l.lisOrder {
		if v == id {
			l.lisOrder = append(l.lisOrder[:i], l.lisOrder[i+1:]...)
			break
		}
	}
}

// NotifyResize runs every resize listener in registration order.
func (l *Loop) NotifyResize() {
	l.mu.Lock()
	ids := append([]ListenerID(nil), l.lisOrder...)
	l.mu.Unlock()
	for _, id := range ids {
		l.mu.Lock()
		fn, ok := l.listeners[id]
		l.mu.Unlock()
		if ok {
			l.safely("resize", fn)
		}
	}
}

// Run ticks at the configured rate and runs posted tasks between ticks
// until ctx is cancelled. The loop is closed when Run returns.
func (l *Loop) Run(ctx context.Context) error {
	defer l.Close()
	ticker := time.NewTicker(l.Interval())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return errors.Trace(ctx.Err())
		case fn := <-l.tasks:
			l.safely("task", func() { fn() })
		case now := <-ticker.C:
			l.Drain()
			l.Tick(now)
		}
	}
}

// Close stops accepting work. Pending Call invocations return ErrClosed.
func (l *Loop) Close() {
	l.once.Do(func() { close(l.done) })
}

func (l *Loop) safely(what string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("%s panicked: %v\n%s", what, r, debug.Stack())
		}
	}()
	fn()
}
