package session

import (
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/speeddice/internal/dice"
	"github.com/lox/speeddice/internal/feedback"
	"github.com/lox/speeddice/internal/rules"
)

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger. The default discards everything below error.
func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithClock sets the clock used to timestamp records.
func WithClock(clock quartz.Clock) Option {
	return func(c *Controller) {
		c.clock = clock
	}
}

// WithRoller sets the dice source.
func WithRoller(r dice.Roller) Option {
	return func(c *Controller) {
		c.roller = r
	}
}

// WithSeed uses a deterministic dice source.
func WithSeed(seed int64) Option {
	return WithRoller(dice.NewSource(seed))
}

// WithFeedback sets the sink notified on every roll.
func WithFeedback(sink feedback.Sink) Option {
	return func(c *Controller) {
		c.sink = sink
	}
}

// WithRules sets the initial house rules. Speed mode in cfg is applied as
// if it had been switched on.
func WithRules(cfg rules.Config) Option {
	return func(c *Controller) {
		c.rules = cfg
	}
}

// WithPlayerCount sets the initial number of players.
func WithPlayerCount(n int) Option {
	return func(c *Controller) {
		c.playerCount = n
	}
}

// WithDiceCount sets the initial number of dice.
func WithDiceCount(n int) Option {
	return func(c *Controller) {
		c.initialDice = n
	}
}
