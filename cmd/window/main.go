package main

import (
	"fmt"
	"os"

	"github.com/tomz197/alieninvasion/internal/audio"
	"github.com/tomz197/alieninvasion/internal/config"
	"github.com/tomz197/alieninvasion/internal/game"
	"github.com/tomz197/alieninvasion/internal/window"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger, closeLog, err := config.NewLogger(os.Stderr, "invasion")
	if err != nil {
		return err
	}
	defer closeLog.Close()

	s, err := config.LoadSettings()
	if err != nil {
		return err
	}

	opts := game.Options{Logger: logger}
	if config.GetEnvBool(config.EnvSound, true) {
		sm := audio.NewSoundManager(0.5)
		if err := sm.Initialize(); err != nil {
			logger.Warn("sound disabled", "err", err)
		} else {
			defer sm.Cleanup()
			opts.Listener = sm
		}
	}

	g := game.New(s, opts)
	logger.Info("opening window", "width", s.ScreenWidth, "height", s.ScreenHeight)
	if err := window.Run(g, "Alien Invasion"); err != nil {
		return err
	}
	logger.Info("window closed", "high_score", g.Stats.HighScore)
	return nil
}
