package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/tomz197/skyraid/internal/config"
	"github.com/tomz197/skyraid/internal/loop"
)

const (
	idleTimeout     = 2 * time.Minute
	shutdownTimeout = 5 * time.Second
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "ssh"})

	cfg, err := config.FromEnv()
	if err != nil {
		logger.Fatal("load config", "err", err)
	}
	logger.SetLevel(cfg.LogLevel())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("server stopped", "err", err)
	}
}

func run(ctx context.Context, cfg config.Config, logger *log.Logger) error {
	workingDir, err := os.Getwd()
	if err != nil {
		logger.Warn("get working directory", "err", err)
	}
	logger.Info("ssh config", "host", cfg.SSH.Host, "port", cfg.SSH.Port, "host_key", cfg.SSH.HostKey, "dir", workingDir)

	games := &gameHandler{ctx: ctx, cfg: cfg, log: logger}
	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(cfg.SSH.Host, cfg.SSH.Port)),
		wish.WithMiddleware(
			games.middleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce input latency
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if cfg.SSH.HostKey != "" {
		opts = append(opts, wish.WithHostKeyPath(cfg.SSH.HostKey))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting ssh server", "addr", s.Addr)
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down", "sessions", games.active())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}

// gameHandler runs an independent game for every SSH session.
type gameHandler struct {
	ctx context.Context // Cancelled on server shutdown
	cfg config.Config
	log *log.Logger

	mu       sync.Mutex
	sessions int
}

func (h *gameHandler) active() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sessions
}

func (h *gameHandler) track(delta int) {
	h.mu.Lock()
	h.sessions += delta
	h.mu.Unlock()
}

// middleware handles SSH sessions and runs the game client.
func (h *gameHandler) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			wish.Fatalln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		id := uuid.NewString()
		logger := h.log.With("user", sess.User())
		logger.Info("game session", "session", id, "term", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		// The session ends on disconnect or server shutdown, whichever comes first.
		ctx, cancel := context.WithCancel(sess.Context())
		defer cancel()
		stopAfter := context.AfterFunc(h.ctx, cancel)
		defer stopAfter()

		h.track(1)
		defer h.track(-1)

		err := loop.Run(ctx, bufio.NewReader(sess), sess, loop.Options{
			TermSizeFunc: sizeTracker.getSize,
			Logger:       logger,
			Seed:         h.cfg.Game.Seed,
			SessionID:    id,
			IdleTimeout:  idleTimeout,
		})
		if err != nil {
			logger.Error("game error", "session", id, "err", err)
		}
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}
