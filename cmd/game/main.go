package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/skyraid/internal/audio"
	"github.com/tomz197/skyraid/internal/config"
	"github.com/tomz197/skyraid/internal/game"
	"github.com/tomz197/skyraid/internal/loop"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "skyraid: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Log lines would tear the picture when stderr shares the terminal.
	var logOut io.Writer = io.Discard
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		logOut = os.Stderr
	}
	logger := log.NewWithOptions(logOut, log.Options{
		ReportTimestamp: true,
		Level:           cfg.LogLevel(),
		Prefix:          "game",
	})

	var sound game.Sound
	if cfg.Game.Sound {
		player := audio.NewPlayer(cfg.Game.Volume, logger)
		if err := player.Initialize(); err != nil {
			logger.Warn("audio unavailable, playing silently", "err", err)
		} else {
			defer player.Close()
			sound = player
		}
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = loop.Run(ctx, bufio.NewReader(os.Stdin), os.Stdout, loop.Options{
		Sound:  sound,
		Logger: logger,
		Seed:   cfg.Game.Seed,
	})
	if err != nil {
		return fmt.Errorf("game: %w", err)
	}
	return nil
}
