package flappy

import (
	"sync"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

// maxFrameDelta bounds how much elapsed time one frame may feed into the
// fixed-step accumulator, so a stalled frame does not trigger a burst of steps.
const maxFrameDelta = 250 * time.Millisecond

// FrameScheduler requests one callback on the next display refresh.
// The returned function cancels the request if it has not fired yet.
type FrameScheduler interface {
	RequestFrame(fn func(now time.Time)) (cancel func())
}

// TickerScheduler schedules frames at a fixed rate using timers.
type TickerScheduler struct {
	Interval time.Duration
}

// NewTickerScheduler returns a scheduler firing fps times per second.
func NewTickerScheduler(fps int) TickerScheduler {
	if fps <= 0 {
		fps = 60
	}
	return TickerScheduler{Interval: time.Second / time.Duration(fps)}
}

// RequestFrame schedules fn after one interval.
func (t TickerScheduler) RequestFrame(fn func(now time.Time)) func() {
	timer := time.AfterFunc(t.Interval, func() {
		fn(time.Now())
	})
	return func() { timer.Stop() }
}

// Loop drives a Simulation from a FrameScheduler: update, render, then
// schedule the next frame. At most one frame is pending at any time.
// Input and resize calls are serialized with frames.
type Loop struct {
	mu      sync.Mutex
	sim     *Simulation
	sched   FrameScheduler
	onFrame func(Snapshot)

	mode config.StepMode
	step time.Duration
	acc  time.Duration
	last time.Time

	running bool
	gen     uint64
	cancel  func()
}

// NewLoop creates a stopped loop.
func NewLoop(sim *Simulation, sched FrameScheduler, cfg config.LoopConfig) *Loop {
	l := &Loop{
		sim:   sim,
		sched: sched,
		mode:  cfg.Mode,
	}
	if cfg.Mode == config.StepFixed && cfg.StepHz > 0 {
		l.step = time.Second / time.Duration(cfg.StepHz)
	}
	return l
}

// OnFrame registers the render callback, invoked once per frame after the
// simulation has been updated.
func (l *Loop) OnFrame(fn func(Snapshot)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onFrame = fn
}

// Start begins scheduling frames. It is a no-op while already running.
func (l *Loop) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.running {
		return
	}
	l.running = true
	l.gen++
	l.acc = 0
	l.last = time.Time{}
	l.schedule()
}

// Stop cancels the pending frame. It is a no-op while already stopped.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.running {
		return
	}
	l.running = false
	// A frame that already fired is discarded by the generation check.
	l.gen++
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}

// Running reports whether frames are being scheduled.
func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

// Input delivers one activate signal to the simulation.
func (l *Loop) Input() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sim.HandleInput()
}

// Resize forwards a viewport change to the simulation.
func (l *Loop) Resize(width, height float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sim.Resize(width, height)
}

// Snapshot returns the simulation state.
func (l *Loop) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sim.Snapshot()
}

// schedule requests the next frame for the current generation. Caller holds mu.
func (l *Loop) schedule() {
	gen := l.gen
	l.cancel = l.sched.RequestFrame(func(now time.Time) {
		l.frame(gen, now)
	})
}

func (l *Loop) frame(gen uint64, now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.running || gen != l.gen {
		return
	}

	for i := l.steps(now); i > 0; i-- {
		l.sim.Tick()
	}

	if l.onFrame != nil {
		l.onFrame(l.sim.Snapshot())
	}
	l.schedule()
}

// steps returns how many simulation steps this frame runs.
func (l *Loop) steps(now time.Time) int {
	if l.mode != config.StepFixed || l.step <= 0 {
		return 1
	}

	if l.last.IsZero() {
		l.last = now
		return 0
	}
	delta := now.Sub(l.last)
	l.last = now
	if delta > maxFrameDelta {
		delta = maxFrameDelta
	}
	if delta > 0 {
		l.acc += delta
	}

	n := int(l.acc / l.step)
	l.acc -= time.Duration(n) * l.step
	return n
}
