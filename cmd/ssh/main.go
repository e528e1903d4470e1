package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/muesli/termenv"

	"github.com/tomz197/alieninvasion/internal/config"
	"github.com/tomz197/alieninvasion/internal/loop"
	loopconfig "github.com/tomz197/alieninvasion/internal/loop/config"
	"github.com/tomz197/alieninvasion/internal/settings"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
)

func main() {
	logger, closeLog, err := config.NewLogger(os.Stderr, "ssh")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeLog.Close()

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	idleTimeout := config.GetEnvDuration("SSH_IDLE_TIMEOUT", loopconfig.InactivityDisconnectUser)
	logger.Info("SSH config", "host", host, "port", port, "host_key", hostKeyPath, "idle_timeout", idleTimeout)

	s, err := config.LoadSettings()
	if err != nil {
		logger.Fatal("load settings", "err", err)
	}

	// Cancelled on shutdown to end every running game.
	serverCtx, cancelSessions := context.WithCancel(context.Background())
	defer cancelSessions()

	games := &gameHandler{
		ctx:         serverCtx,
		settings:    s,
		logger:      logger,
		idleTimeout: idleTimeout,
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			games.middleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	srv, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Starting SSH server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("Shutting down server...")
	cancelSessions()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
}

// gameHandler runs an independent game for every SSH session.
type gameHandler struct {
	ctx         context.Context
	settings    *settings.Settings
	logger      *log.Logger
	idleTimeout time.Duration
}

// middleware handles SSH sessions and runs the game.
func (h *gameHandler) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		logger := h.logger.With("user", sess.User())
		logger.Info("New game session", "terminal", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)

		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		ctx, cancel := context.WithCancel(sess.Context())
		defer cancel()
		stop := context.AfterFunc(h.ctx, cancel)
		defer stop()

		// Each session gets its own copy: speeds change as the game goes on.
		s := *h.settings

		renderer := lipgloss.NewRenderer(sess,
			termenv.WithEnvironment(newSessionEnv(sess.Environ(), pty.Term)),
			termenv.WithUnsafe(),
			termenv.WithColorCache(true),
		)

		err := loop.Run(ctx, bufio.NewReader(sess), sess, loop.Options{
			Settings:     &s,
			TermSizeFunc: sizeTracker.getSize,
			Logger:       logger,
			Renderer:     renderer,
			IdleTimeout:  h.idleTimeout,
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Game error", "err", err)
		}

		logger.Info("Session ended")
		next(sess)
	}
}
