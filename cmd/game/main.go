package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/tomz197/alieninvasion/internal/audio"
	"github.com/tomz197/alieninvasion/internal/config"
	"github.com/tomz197/alieninvasion/internal/game"
	"github.com/tomz197/alieninvasion/internal/loop"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	s, err := config.LoadSettings()
	if err != nil {
		return err
	}

	// The terminal is the game screen, so logs only go to a file.
	logger, closeLog, err := config.NewLogger(io.Discard, "invasion")
	if err != nil {
		return err
	}
	defer closeLog.Close()

	var listener game.Listener
	if config.GetEnvBool(config.EnvSound, true) {
		sm := audio.NewSoundManager(0.3)
		if err := sm.Initialize(); err != nil {
			logger.Warn("sound disabled", "err", err)
		} else {
			defer sm.Cleanup()
			listener = sm
		}
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reader := bufio.NewReader(os.Stdin)
	err = loop.Run(ctx, reader, os.Stdout, loop.Options{
		Settings: s,
		Logger:   logger,
		Listener: listener,
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
