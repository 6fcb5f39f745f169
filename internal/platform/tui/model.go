package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// Options configures a game model.
type Options struct {
	Game    config.FlappyConfig
	Runtime core.RuntimeConfig

	// Store persists finished rounds and the high score. Nil keeps the high
	// score in HighScores, or in memory when that is nil too.
	Store      *storage.Store
	HighScores flappy.ScoreStore

	// Sounds plays cues when non-nil and initialized.
	Sounds *audio.SoundManager
	Logger *log.Logger

	// Standalone marks a program the model owns; screenshots are allowed.
	Standalone bool
}

// Model is the Bubble Tea model for one player's game.
type Model struct {
	sim        *flappy.Simulation
	screen     *core.Screen
	store      *storage.Store
	sounds     *audio.SoundManager
	logger     *log.Logger
	config     core.RuntimeConfig
	game       config.FlappyConfig
	keyMapper  *KeyMapper
	scoreboard ScoreboardModel
	standalone bool

	gen          uint64 // Current tick chain; bumped to orphan a pending tick
	paused       bool
	showScores   bool
	resumeOnBack bool
	quitting     bool
}

// NewModel creates a game model sized to opts.Runtime.
func NewModel(opts Options) Model {
	cfg := opts.Runtime
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	highScores := opts.HighScores
	if opts.Store != nil {
		highScores = opts.Store
	}
	if highScores == nil {
		highScores = flappy.NewMemoryStore()
	}

	sim := flappy.New(opts.Game, cfg.Viewport(), highScores, cfg.Seed)
	sim.SetLogger(logger)

	m := Model{
		sim:        sim,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      opts.Store,
		sounds:     opts.Sounds,
		logger:     logger,
		config:     cfg,
		game:       opts.Game,
		keyMapper:  NewKeyMapper(),
		scoreboard: NewScoreboardModel(opts.Store, cfg.ScreenW, cfg.ScreenH),
		standalone: opts.Standalone,
		gen:        1,
	}

	sim.OnRoundEnd(m.recordRound)
	if m.sounds != nil {
		sim.OnTick(m.sounds.Observe)
	}
	m.checkViewport()

	return m
}

// recordRound persists a finished round and plays the collision cue.
func (m Model) recordRound(r flappy.RoundResult) {
	if m.sounds != nil {
		m.sounds.PlayHit()
	}
	if m.store == nil || r.Score <= 0 {
		return
	}
	if _, err := m.store.SaveScore(flappy.ID, r.Score, r.Ticks); err != nil {
		m.logger.Warn("could not save round", "score", r.Score, "error", err)
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.gen, m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.showScores {
			return m.updateScoreboard(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.showScores {
			return m, nil
		}
		return m.handleAction(m.keyMapper.MapMouse(msg))

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}
	return m.handleAction(action)
}

// handleAction applies a logical action.
func (m Model) handleAction(action core.Action) (tea.Model, tea.Cmd) {
	switch action {
	case core.ActionActivate:
		if m.paused {
			return m, nil
		}
		m.sim.HandleInput()
		if m.sim.Mode() == flappy.ModePlaying && m.sounds != nil {
			m.sounds.PlayFlap()
		}

	case core.ActionPause:
		if m.paused {
			return m.resume()
		}
		m.pause()

	case core.ActionScores:
		m.resumeOnBack = !m.paused
		m.pause()
		m.showScores = true
		m.scoreboard.goingBack = false
		m.scoreboard.Reload()

	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// pause orphans the pending tick. Calling it while paused is a no-op.
func (m *Model) pause() {
	if m.paused {
		return
	}
	m.paused = true
	m.gen++
}

// resume starts a new tick chain. Calling it while running is a no-op.
func (m Model) resume() (tea.Model, tea.Cmd) {
	if !m.paused {
		return m, nil
	}
	m.paused = false
	m.gen++
	return m, tickCmd(m.gen, m.config.TickRate)
}

// updateScoreboard forwards input to the scoreboard until it is dismissed.
func (m Model) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scoreboard.Update(msg)
	if sb, ok := next.(ScoreboardModel); ok {
		m.scoreboard = sb
	}

	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scoreboard.IsGoingBack() {
		m.showScores = false
		if m.resumeOnBack {
			return m.resume()
		}
		return m, nil
	}
	return m, cmd
}

// handleResize keeps the round going on a resized viewport.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	vp := m.config.Viewport()
	m.sim.Resize(vp.Width, vp.Height)
	m.checkViewport()

	next, _ := m.scoreboard.Update(msg)
	if sb, ok := next.(ScoreboardModel); ok {
		m.scoreboard = sb
	}
	return m, nil
}

func (m Model) checkViewport() {
	vp := m.sim.Viewport()
	if !vp.Valid(m.game.MinViewportHeight()) {
		m.logger.Warn("terminal too small for a fair pipe gap",
			"rows", m.config.ScreenH,
			"min_rows", int(m.game.MinViewportHeight())/core.CellHeightPx+1)
	}
}

// handleTick runs one simulation step if msg belongs to the live chain.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.gen || m.paused {
		return m, nil
	}
	m.sim.Tick()
	return m, tickCmd(m.gen, m.config.TickRate)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	if !m.standalone {
		return
	}
	flappy.Render(m.screen, m.sim.Snapshot(), m.paused)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", flappy.ID, timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showScores {
		return m.scoreboard.View()
	}

	flappy.Render(m.screen, m.sim.Snapshot(), m.paused)
	return RenderScreen(m.screen)
}

// Simulation exposes the running simulation.
func (m Model) Simulation() *flappy.Simulation {
	return m.sim
}

// Paused reports whether the tick chain is stopped.
func (m Model) Paused() bool {
	return m.paused
}

// Run starts the Bubble Tea program with the given options.
func Run(opts Options) error {
	opts.Standalone = true
	model := NewModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
