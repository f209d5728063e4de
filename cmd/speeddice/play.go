package main

import (
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/lox/speeddice/cmd/speeddice/shared"
	"github.com/lox/speeddice/internal/feedback"
	"github.com/lox/speeddice/internal/session"
	"github.com/lox/speeddice/internal/tui"
)

// PlayCmd runs the interactive terminal game.
type PlayCmd struct {
	Players *int          `kong:"help='Number of players (2-6), overrides the config file'"`
	Dice    *int          `kong:"help='Number of dice (2 or 3), overrides the config file'"`
	Seed    *int64        `kong:"help='Deterministic dice seed (optional)'"`
	Reveal  time.Duration `kong:"default='600ms',help='How long dice spin before the result is shown'"`
	Mute    bool          `kong:"help='Disable the terminal bell'"`
	LogFile string        `kong:"type='path',help='Write logs to this file while playing'"`
}

func (c *PlayCmd) Run(globals *Globals) error {
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logger = shared.SetupLogger(f, globals.Debug, globals.LogFormat)
	}

	cfg, err := globals.LoadConfig()
	if err != nil {
		return err
	}
	if c.Players != nil {
		cfg.Players = *c.Players
	}
	if c.Dice != nil {
		cfg.Dice = *c.Dice
	}
	if c.Seed != nil {
		cfg.Seed = c.Seed
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	settings := cfg.Feedback
	if c.Mute {
		settings.Sound = false
		settings.Vibration = false
	}
	sink := feedback.Multi(
		feedback.NewBellSink(os.Stderr, settings),
		feedback.NewLogSink(logger),
	)

	opts := append(cfg.SessionOptions(),
		session.WithLogger(logger),
		session.WithFeedback(sink),
	)
	ctrl, err := session.New(opts...)
	if err != nil {
		return err
	}
	defer ctrl.Close()
	logger.Info("Starting game", "session", ctrl.ID(), "players", ctrl.PlayerCount(), "dice", ctrl.Dice().Count())

	model := tui.New(ctrl, tui.Options{
		Logger:      logger,
		RevealDelay: c.Reveal,
	})
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("terminal UI: %w", err)
	}

	logger.Info("Game over", "session", ctrl.ID(), "rolls", ctrl.Ledger().Len())
	return nil
}
