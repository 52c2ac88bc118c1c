// Package engine runs compute passes on a dedicated background goroutine so
// the interactive loop never blocks on computation.
//
// The scheduler owns the view state. Event handlers mutate it through Update,
// which marks the state dirty and signals the worker. The worker snapshots
// the view, clears the dirty flag, computes unlocked, then publishes the
// frame together with the exact snapshot it was computed for. Mutations that
// arrive mid-pass are coalesced: only the latest view is computed next,
// superseded intermediate states are never dispatched.
package engine

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/marben/mandelzoom"
	"github.com/marben/mandelzoom/view"
)

// Frame is one published compute result, tagged with the view it was
// computed for and its display-normalization range. Immutable once
// published.
type Frame struct {
	Result *mandelzoom.Result
	View   view.Snapshot
	Mode   mandelzoom.PrecisionMode

	MinVal, MaxVal float64
	Elapsed        time.Duration
}

// PassFunc produces a frame for one view snapshot. Injectable for tests.
type PassFunc func(snap view.Snapshot, width, height int) (*Frame, error)

// Scheduler owns the view state and serializes compute passes.
type Scheduler struct {
	width, height int
	pass          PassFunc

	mu        sync.Mutex
	cond      *sync.Cond
	st        *view.State
	dirty     bool
	computing bool
	closed    bool

	frame atomic.Pointer[Frame]
	done  chan struct{}
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithPass replaces the default compute pass. Used by tests to observe the
// coalescing protocol without running kernels.
func WithPass(p PassFunc) Option {
	return func(s *Scheduler) { s.pass = p }
}

// New creates a scheduler owning st, computing width x height buffers.
// Call Start to launch the worker.
func New(st *view.State, width, height int, opts ...Option) *Scheduler {
	s := &Scheduler{
		width:  width,
		height: height,
		pass:   computePass,
		st:     st,
		done:   make(chan struct{}),
	}
	s.cond = sync.NewCond(&s.mu)
	for _, o := range opts {
		o(s)
	}
	return s
}

// Start launches the background worker.
func (s *Scheduler) Start() {
	go s.run()
}

// Update applies a mutation to the view state under the scheduler lock,
// repairs any violated invariant, and schedules a compute pass. Safe to call
// from any goroutine; never blocks on computation.
func (s *Scheduler) Update(fn func(*view.State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	fn(s.st)
	s.st.Repair()
	s.dirty = true
	s.cond.Signal()
}

// Invalidate schedules a pass for the current view without mutating it.
func (s *Scheduler) Invalidate() {
	s.Update(func(*view.State) {})
}

// Latest returns the most recently published frame, or nil before the first
// pass completes. The frame is an immutable snapshot; a newer frame replaces
// it atomically.
func (s *Scheduler) Latest() *Frame {
	return s.frame.Load()
}

// View returns a snapshot of the live view state.
func (s *Scheduler) View() view.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.Snapshot()
}

// Size returns the compute grid dimensions.
func (s *Scheduler) Size() (w, h int) {
	return s.width, s.height
}

// Computing reports whether a pass is currently in flight.
func (s *Scheduler) Computing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.computing
}

// Close stops the worker. A pass in flight runs to completion first.
func (s *Scheduler) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.cond.Broadcast()
	s.mu.Unlock()
	<-s.done
}

func (s *Scheduler) run() {
	defer close(s.done)
	for {
		s.mu.Lock()
		for !s.dirty && !s.closed {
			s.cond.Wait()
		}
		if s.closed {
			s.mu.Unlock()
			return
		}
		snap := s.st.Snapshot()
		s.dirty = false
		s.computing = true
		s.mu.Unlock()

		frame, err := s.safePass(snap)

		s.mu.Lock()
		s.computing = false
		if err != nil {
			// The previous frame stays visible; the scheduler returns to
			// idle and retries when the view next changes.
			mandelzoom.Logger().Error("compute pass failed", "err", err)
		} else {
			s.frame.Store(frame)
		}
		if !s.st.Snapshot().Equal(snap) {
			s.dirty = true
		}
		s.mu.Unlock()
	}
}

// safePass isolates kernel failures to the worker: a panic becomes an error
// instead of tearing down the process.
func (s *Scheduler) safePass(snap view.Snapshot) (f *Frame, err error) {
	defer func() {
		if r := recover(); r != nil {
			f, err = nil, fmt.Errorf("compute pass panicked: %v", r)
		}
	}()
	return s.pass(snap, s.width, s.height)
}

// computePass is the production pass: derive bounds, pick a precision mode,
// run the kernel and attach normalization stats.
func computePass(snap view.Snapshot, width, height int) (*Frame, error) {
	b := snap.Bounds(float64(width) / float64(height))
	req := mandelzoom.Request{
		Xmin: b.Xmin, Xmax: b.Xmax,
		Ymin: b.Ymin, Ymax: b.Ymax,
		Width: width, Height: height,
		MaxIter: snap.MaxIter,
	}
	mode := mandelzoom.SelectMode(req.Xmin, req.Xmax, width)

	start := time.Now()
	res, err := mandelzoom.ComputeWithMode(req, mode)
	if err != nil {
		return nil, err
	}
	minVal, maxVal := mandelzoom.Normalize(res)
	elapsed := time.Since(start)

	mandelzoom.Logger().Debug("pass complete",
		"mode", mode.String(),
		"zoom", snap.Zoom.Text('e', 3),
		"maxIter", snap.MaxIter,
		"elapsed", elapsed)

	return &Frame{
		Result:  res,
		View:    snap,
		Mode:    mode,
		MinVal:  minVal,
		MaxVal:  maxVal,
		Elapsed: elapsed,
	}, nil
}
