// Package web serves the game to browsers: a canvas page plus a websocket
// that streams simulation snapshots and receives input.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/session"
)

//go:embed static
var staticFiles embed.FS

const (
	writeTimeout    = 5 * time.Second
	shutdownTimeout = 10 * time.Second
)

// RoundRecorder persists finished rounds.
type RoundRecorder interface {
	SaveScore(gameID string, score, ticks int) (int64, error)
}

// Options configures a Server.
type Options struct {
	Game config.FlappyConfig

	// HighScores holds the shared high score slot. Nil keeps it in memory.
	HighScores flappy.ScoreStore

	// Rounds records finished rounds when non-nil.
	Rounds RoundRecorder

	// Seed seeds every session's simulation; 0 seeds each from the clock.
	Seed int64

	Logger *log.Logger
}

// Server hands every websocket connection its own simulation and loop.
type Server struct {
	opts     Options
	upgrader websocket.Upgrader
	logger   *log.Logger
	mux      *http.ServeMux
	sessions *session.Registry
}

// NewServer creates a server. Call Handler to mount it.
func NewServer(opts Options) (*Server, error) {
	if opts.HighScores == nil {
		opts.HighScores = flappy.NewMemoryStore()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Server{
		opts: opts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger:   logger,
		mux:      http.NewServeMux(),
		sessions: session.NewRegistry(),
	}

	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return nil, fmt.Errorf("web: cannot load static files: %w", err)
	}
	s.mux.Handle("/", http.FileServer(http.FS(static)))
	s.mux.HandleFunc("/ws", s.HandleWS)

	return s, nil
}

// Handler returns the HTTP handler serving the page and the websocket.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Sessions returns the registry of connected players.
func (s *Server) Sessions() *session.Registry {
	return s.sessions
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting web server", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// HandleWS upgrades the request and runs one game session until the client
// disconnects.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	info := session.Info{
		ID:        session.NewID(),
		Transport: session.TransportWeb,
		Remote:    conn.RemoteAddr().String(),
	}
	logger := s.logger.With("session", info.ID, "remote", info.Remote)

	logger.Info("session started", "players", s.sessions.Register(info))
	defer func() {
		logger.Info("session ended", "players", s.sessions.Unregister(info.ID))
	}()

	newPlayer(s, NewSafeWriter(conn, writeTimeout), logger).run(conn)
}

// player is one browser playing one simulation.
type player struct {
	loop   *flappy.Loop
	writer *SafeWriter
	logger *log.Logger
	frames *session.Outbox[flappy.Snapshot]
}

func newPlayer(s *Server, writer *SafeWriter, logger *log.Logger) *player {
	cfg := s.opts.Game
	vp := core.Viewport{Width: cfg.World.Width, Height: cfg.World.Height}

	sim := flappy.New(cfg, vp, s.opts.HighScores, s.opts.Seed)
	sim.SetLogger(logger)
	sim.OnRoundEnd(func(r flappy.RoundResult) {
		if s.opts.Rounds == nil || r.Score <= 0 {
			return
		}
		if _, err := s.opts.Rounds.SaveScore(flappy.ID, r.Score, r.Ticks); err != nil {
			logger.Warn("could not save round", "score", r.Score, "error", err)
		}
	})

	p := &player{
		writer: writer,
		logger: logger,
		frames: session.NewOutbox[flappy.Snapshot](1),
	}
	p.loop = flappy.NewLoop(sim, flappy.NewTickerScheduler(cfg.Loop.FPS), cfg.Loop)
	// The loop never waits on the network; a slow client skips frames.
	p.loop.OnFrame(p.frames.Send)
	return p
}

func (p *player) run(conn *websocket.Conn) {
	go p.writeLoop()
	defer func() {
		p.loop.Stop()
		p.frames.Close()
		_ = p.writer.WriteClose(websocket.CloseNormalClosure, "")
		p.writer.Close()
	}()

	if err := p.writer.WriteJSON(newStateMessage(p.loop.Snapshot(), false)); err != nil {
		return
	}
	p.loop.Start()

	for {
		var msg ClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				p.logger.Debug("read failed", "error", err)
			}
			return
		}
		if err := p.handle(msg); err != nil {
			if werr := p.writer.WriteJSON(newErrorMessage(err.Error())); werr != nil {
				return
			}
		}
	}
}

func (p *player) writeLoop() {
	for {
		select {
		case <-p.frames.Done():
			return
		case snap := <-p.frames.Items():
			if err := p.writer.WriteJSON(newStateMessage(snap, false)); err != nil {
				p.logger.Debug("write failed", "error", err)
				return
			}
		}
	}
}

var (
	errUnknownType   = errors.New("unknown message type")
	errUnknownSource = errors.New("unknown input source")
	errBadSize       = errors.New("resize needs a positive width and height")
)

// handle applies one client message to the player's game.
func (p *player) handle(msg ClientMessage) error {
	switch msg.Type {
	case MessageInput:
		src, ok := core.ParseInputSource(msg.Source)
		if !ok {
			return errUnknownSource
		}
		if core.Normalize(src) == core.ActionActivate {
			p.loop.Input()
		}

	case MessageResize:
		if msg.Width <= 0 || msg.Height <= 0 {
			return errBadSize
		}
		vp := core.Aspect16x9(msg.Width, msg.Height)
		p.loop.Resize(vp.Width, vp.Height)
		if !p.loop.Running() {
			return p.writer.WriteJSON(newStateMessage(p.loop.Snapshot(), true))
		}

	case MessagePause:
		p.loop.Stop()
		return p.writer.WriteJSON(newStateMessage(p.loop.Snapshot(), true))

	case MessageResume:
		p.loop.Start()

	default:
		return errUnknownType
	}
	return nil
}
