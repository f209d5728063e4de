// Package config loads the house-rules file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/speeddice/internal/dice"
	"github.com/lox/speeddice/internal/feedback"
	"github.com/lox/speeddice/internal/rules"
	"github.com/lox/speeddice/internal/session"
)

// ErrSpeedModeDice is returned when speed mode is on with fewer than three
// dice, which only a command-line override can produce.
var ErrSpeedModeDice = errors.New("speed mode plays with 3 dice")

// File is the on-disk layout of a house-rules file.
type File struct {
	Players  int            `hcl:"players,optional"`
	Dice     int            `hcl:"dice,optional"`
	Seed     *int64         `hcl:"seed,optional"`
	Rules    *RulesBlock    `hcl:"rules,block"`
	Feedback *FeedbackBlock `hcl:"feedback,block"`
}

// RulesBlock toggles house rules. Unset rules keep their default.
type RulesBlock struct {
	DoubleTrouble *bool `hcl:"double_trouble,optional"`
	TripleThreat  *bool `hcl:"triple_threat,optional"`
	SequenceBonus *bool `hcl:"sequence_bonus,optional"`
	SpeedMode     *bool `hcl:"speed_mode,optional"`
}

// FeedbackBlock toggles feedback channels.
type FeedbackBlock struct {
	Vibration *bool `hcl:"vibration,optional"`
	Sound     *bool `hcl:"sound,optional"`
}

// Config is the resolved configuration for a session.
type Config struct {
	Players  int
	Dice     int
	Seed     *int64
	Rules    rules.Config
	Feedback feedback.Settings
}

// Default returns the standard table: two players, two dice, every rule on.
func Default() *Config {
	return &Config{
		Players:  session.DefaultPlayers,
		Dice:     session.DefaultDice,
		Rules:    rules.DefaultConfig(),
		Feedback: feedback.DefaultSettings(),
	}
}

// Load reads filename. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw File
	diags = gohcl.DecodeBody(file.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg := raw.resolve()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return cfg, nil
}

func (f File) resolve() *Config {
	cfg := Default()
	if f.Players != 0 {
		cfg.Players = f.Players
	}
	if f.Dice != 0 {
		cfg.Dice = f.Dice
	}
	cfg.Seed = f.Seed

	if r := f.Rules; r != nil {
		setBool(&cfg.Rules.DoubleTrouble, r.DoubleTrouble)
		setBool(&cfg.Rules.TripleThreat, r.TripleThreat)
		setBool(&cfg.Rules.SequenceBonus, r.SequenceBonus)
		if r.SpeedMode != nil && *r.SpeedMode {
			cfg.Rules.SetSpeedMode(true)
			cfg.Dice = dice.MaxCount
		}
	}
	if fb := f.Feedback; fb != nil {
		setBool(&cfg.Feedback.Vibration, fb.Vibration)
		setBool(&cfg.Feedback.Sound, fb.Sound)
	}
	return cfg
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// Validate checks player and dice counts, and that speed mode has all three
// dice.
func (c *Config) Validate() error {
	if c.Players < session.MinPlayers || c.Players > session.MaxPlayers {
		return fmt.Errorf("players = %d: %w", c.Players, session.ErrInvalidPlayerCount)
	}
	if !dice.ValidCount(c.Dice) {
		return fmt.Errorf("dice = %d: %w", c.Dice, dice.ErrInvalidCount)
	}
	if c.Rules.SpeedMode && c.Dice != dice.MaxCount {
		return fmt.Errorf("dice = %d: %w", c.Dice, ErrSpeedModeDice)
	}
	return nil
}

// SessionOptions turns the configuration into controller options. The
// feedback sink is left to the caller.
func (c *Config) SessionOptions() []session.Option {
	opts := []session.Option{
		session.WithPlayerCount(c.Players),
		session.WithDiceCount(c.Dice),
		session.WithRules(c.Rules),
	}
	if c.Seed != nil {
		opts = append(opts, session.WithSeed(*c.Seed))
	}
	return opts
}
