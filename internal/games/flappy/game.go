// Package flappy implements the Flappy Bird simulation: a bird navigating a
// side-scrolling field of pipes, scoring a point per pipe cleared.
//
// Simulation is not safe for concurrent use. Presentation layers either call
// it from a single goroutine (Bubble Tea) or through a Loop, which serializes
// input with ticks.
package flappy

import (
	"errors"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// ID is the identifier rounds are recorded under in score storage.
const ID = "flappy"

// Title is the display name of the game.
const Title = "Flappy Bird"

// Mode is the round state machine.
type Mode int

const (
	ModeWaiting Mode = iota
	ModePlaying
	ModeGameOver
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeWaiting:
		return "WAITING"
	case ModePlaying:
		return "PLAYING"
	case ModeGameOver:
		return "GAME_OVER"
	default:
		return "UNKNOWN"
	}
}

// MarshalText encodes the mode by name.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// RoundResult describes a finished round.
type RoundResult struct {
	Score     int
	HighScore int // High score after this round
	NewBest   bool
	Ticks     int // Ticks spent in PLAYING
}

// Simulation owns the bird, the pipes and the scroller, and mediates all
// interaction between them.
type Simulation struct {
	cfg      config.FlappyConfig
	viewport core.Viewport

	bird     *Bird
	pipes    []*Pipe
	scroller *Scroller

	mode       Mode
	score      int
	highScore  int
	pipeTimer  int
	roundTicks int
	tick       uint64

	rng    *rand.Rand
	store  ScoreStore
	logger *log.Logger

	onTick     func(Snapshot)
	onRoundEnd func(RoundResult)
}

// New creates a simulation in WAITING mode. The high score is read from store
// once; a missing or unreadable value counts as 0. A nil store disables
// persistence. Seed 0 seeds from the clock.
func New(cfg config.FlappyConfig, vp core.Viewport, store ScoreStore, seed int64) *Simulation {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := &Simulation{
		cfg:      cfg,
		viewport: vp,
		scroller: NewScroller(cfg.Scroller),
		rng:      rand.New(rand.NewSource(seed)),
		store:    store,
		logger:   log.New(io.Discard),
	}
	s.highScore = s.loadHighScore()
	s.Reset()
	return s
}

// SetLogger replaces the discard logger.
func (s *Simulation) SetLogger(l *log.Logger) {
	if l != nil {
		s.logger = l
	}
}

// OnTick registers a callback invoked once per tick after the update.
func (s *Simulation) OnTick(fn func(Snapshot)) {
	s.onTick = fn
}

// OnRoundEnd registers a callback invoked when a round ends.
func (s *Simulation) OnRoundEnd(fn func(RoundResult)) {
	s.onRoundEnd = fn
}

// HandleInput applies one logical activate signal to the state machine.
func (s *Simulation) HandleInput() {
	switch s.mode {
	case ModeWaiting:
		s.mode = ModePlaying
		s.bird.Flap()
		s.logger.Debug("round started", "high_score", s.highScore)
	case ModePlaying:
		s.bird.Flap()
	case ModeGameOver:
		s.Reset()
	}
}

// Reset discards the round and returns to WAITING with a fresh bird.
// The high score is kept.
func (s *Simulation) Reset() {
	s.bird = s.newBird()
	s.pipes = nil
	s.score = 0
	s.pipeTimer = 0
	s.roundTicks = 0
	s.mode = ModeWaiting
}

// Resize updates the viewport. Geometry is derived from it on every tick, so
// a resize mid-round takes effect on the next tick.
func (s *Simulation) Resize(width, height float64) {
	s.viewport = core.Viewport{Width: width, Height: height}
}

// Tick advances the simulation by one fixed step.
func (s *Simulation) Tick() {
	s.tick++
	s.scroller.Update()

	if s.mode == ModePlaying {
		s.roundTicks++
		s.bird.Update()
		s.updatePipes()

		if s.checkCollisions() {
			s.gameOver()
		}
	}

	if s.onTick != nil {
		s.onTick(s.Snapshot())
	}
}

// updatePipes culls, advances and scores pipes, then runs the spawn cadence.
func (s *Simulation) updatePipes() {
	live := s.pipes[:0]
	for _, p := range s.pipes {
		if !p.IsOffScreen() {
			live = append(live, p)
		}
	}
	s.pipes = live

	birdX := s.bird.Position.X()
	for _, p := range s.pipes {
		p.Update()
		if p.HasPassedBird(birdX) {
			p.Passed = true
			s.score++
		}
	}

	s.pipeTimer++
	if s.pipeTimer >= s.cfg.Pipes.Spacing {
		s.pipes = append(s.pipes, NewPipe(s.viewport.Width, s.viewport.Height, s.cfg.Pipes, s.rng))
		s.pipeTimer = 0
	}
}

// checkCollisions tests the bird against the ground, the ceiling and every
// live pipe at their post-move positions.
func (s *Simulation) checkCollisions() bool {
	bounds := s.bird.Bounds()

	if bounds.Bottom() >= s.groundY() {
		return true
	}
	if bounds.Y <= 0 {
		return true
	}

	for _, p := range s.pipes {
		if bounds.Intersects(p.TopBounds()) || bounds.Intersects(p.BottomBounds(s.viewport.Height)) {
			return true
		}
	}
	return false
}

// gameOver freezes the round and records a strictly better score.
func (s *Simulation) gameOver() {
	s.mode = ModeGameOver

	// Another session sharing the store may have raised the record.
	if stored := s.loadHighScore(); stored > s.highScore {
		s.highScore = stored
	}

	newBest := s.score > s.highScore
	if newBest {
		s.highScore = s.score
		s.saveHighScore()
	}

	s.logger.Debug("round over", "score", s.score, "high_score", s.highScore, "ticks", s.roundTicks)

	if s.onRoundEnd != nil {
		s.onRoundEnd(RoundResult{
			Score:     s.score,
			HighScore: s.highScore,
			NewBest:   newBest,
			Ticks:     s.roundTicks,
		})
	}
}

func (s *Simulation) loadHighScore() int {
	if s.store == nil {
		return 0
	}
	raw, err := s.store.Get(s.cfg.Storage.HighScoreKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Warn("could not read high score", "error", err)
		}
		return 0
	}
	return parseHighScore(raw)
}

func (s *Simulation) saveHighScore() {
	if s.store == nil {
		return
	}
	if err := s.store.Set(s.cfg.Storage.HighScoreKey, formatHighScore(s.highScore)); err != nil {
		s.logger.Warn("could not save high score", "error", err)
	}
}

func (s *Simulation) newBird() *Bird {
	return NewBird(s.cfg.Bird.X, s.viewport.Height/2, s.cfg.Bird, s.cfg.Physics)
}

func (s *Simulation) groundY() float64 {
	return s.viewport.Height - s.cfg.World.GroundHeight
}

// Mode returns the current state.
func (s *Simulation) Mode() Mode {
	return s.mode
}

// Score returns the current round's score.
func (s *Simulation) Score() int {
	return s.score
}

// HighScore returns the best score seen, including the persisted one.
func (s *Simulation) HighScore() int {
	return s.highScore
}

// PipeTimer returns the ticks elapsed since the last spawn.
func (s *Simulation) PipeTimer() int {
	return s.pipeTimer
}

// Viewport returns the current drawable surface size.
func (s *Simulation) Viewport() core.Viewport {
	return s.viewport
}
