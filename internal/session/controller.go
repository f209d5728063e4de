// Package session runs one game of speed dice: it owns the dice, the house
// rules, the turn state and the roll history, and applies player commands
// to them in order.
//
// A Controller is not safe for concurrent use. Independent controllers share
// nothing and can run side by side. Feedback cues are delivered on a
// separate goroutine; call Close when done with a controller.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/lox/speeddice/internal/dice"
	"github.com/lox/speeddice/internal/feedback"
	"github.com/lox/speeddice/internal/ledger"
	"github.com/lox/speeddice/internal/rules"
	"github.com/lox/speeddice/internal/turn"
)

const (
	MinPlayers     = 2
	MaxPlayers     = 6
	DefaultPlayers = 2
	DefaultDice    = dice.MinCount
)

var (
	// ErrGameStarted is returned when changing the player count after the
	// first roll of a session.
	ErrGameStarted = errors.New("player count cannot change once the game has started")

	// ErrInvalidPlayerCount is returned for player counts outside [2, 6].
	ErrInvalidPlayerCount = errors.New("player count must be between 2 and 6")
)

// Controller owns every piece of mutable state for one session.
type Controller struct {
	id     string
	logger *log.Logger
	clock  quartz.Clock
	roller dice.Roller
	sink   feedback.Sink
	guard  *feedback.Guard

	dice        dice.Set
	initialDice int
	rules       rules.Config
	turn        turn.State
	ledger      *ledger.Ledger
	playerCount int

	// labels of the roll awaiting Advance; None once the turn moves on
	raw       rules.Label
	effective rules.Label
}

// RollResult is what a roll produced.
type RollResult struct {
	Values    []int
	Total     int
	Raw       rules.Label // classification before house rules
	Effective rules.Label
	Player    int
	Record    ledger.Record
}

// New returns a controller for a fresh session.
func New(opts ...Option) (*Controller, error) {
	c := &Controller{
		id:          uuid.NewString(),
		rules:       rules.DefaultConfig(),
		playerCount: DefaultPlayers,
		initialDice: DefaultDice,
		ledger:      ledger.New(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	}
	c.logger = c.logger.With("session", c.id[:8])
	if c.clock == nil {
		c.clock = quartz.NewReal()
	}
	if c.roller == nil {
		c.roller = dice.NewRandomSource()
	}
	c.guard = feedback.NewGuard(c.sink, c.logger, c.clock)

	if !validPlayerCount(c.playerCount) {
		return nil, fmt.Errorf("new session with %d players: %w", c.playerCount, ErrInvalidPlayerCount)
	}
	set, err := dice.NewSet(c.initialDice)
	if err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}
	c.dice = set
	if c.rules.SpeedMode {
		c.SetSpeedMode(true)
	}
	return c, nil
}

// ID identifies the session in logs.
func (c *Controller) ID() string {
	return c.id
}

// Roll rolls the dice for the current player, records the result and
// leaves the turn waiting for Advance. It fails with turn.ErrAlreadyRolled
// if the current player has rolled already; doubles are no exception.
func (c *Controller) Roll(ctx context.Context) (RollResult, error) {
	if c.turn.Phase() != turn.AwaitingRoll {
		return RollResult{}, fmt.Errorf("roll: player %d: %w", c.turn.CurrentPlayer, turn.ErrAlreadyRolled)
	}
	player := c.turn.CurrentPlayer
	c.guard.Notify(ctx, feedback.StartCue(player))

	if err := c.dice.Roll(c.roller, c.dice.Count()); err != nil {
		return RollResult{}, fmt.Errorf("roll: %w", err)
	}
	values := c.dice.Active()
	raw := rules.MustClassify(values)
	effective := c.rules.Gate(raw)

	if err := c.turn.RecordRoll(); err != nil {
		return RollResult{}, fmt.Errorf("roll: %w", err)
	}
	c.raw, c.effective = raw, effective

	record := c.ledger.Append(ledger.NewRecord(player, values, effective, c.clock.Now()))

	c.logger.Debug("Rolled", "player", player, "values", values, "total", record.Total, "raw", raw, "effective", effective, "roll", record.Number)

	if effective.Special() {
		c.guard.Notify(ctx, feedback.SpecialCue(player, effective))
	}

	return RollResult{
		Values:    values,
		Total:     record.Total,
		Raw:       raw,
		Effective: effective,
		Player:    player,
		Record:    record,
	}, nil
}

// Advance ends the current turn and returns the next player. An effective
// double keeps the same player, who must then roll again.
func (c *Controller) Advance() (int, error) {
	from := c.turn.CurrentPlayer
	next, err := c.turn.Advance(c.effective, c.playerCount)
	if err != nil {
		return next, fmt.Errorf("advance: %w", err)
	}
	c.logger.Debug("Turn advanced", "from", from, "to", next, "effective", c.effective)
	c.raw, c.effective = rules.None, rules.None
	return next, nil
}

// ToggleDiceCount switches between two and three dice.
func (c *Controller) ToggleDiceCount() {
	n := dice.MaxCount
	if c.dice.Count() == dice.MaxCount {
		n = dice.MinCount
	}
	c.changeDiceCount(n)
}

// SetDiceCount sets the number of dice. Changing it behaves like
// ToggleDiceCount; setting the current count does nothing.
func (c *Controller) SetDiceCount(n int) error {
	if !dice.ValidCount(n) {
		return fmt.Errorf("set dice count %d: %w", n, dice.ErrInvalidCount)
	}
	if n != c.dice.Count() {
		c.changeDiceCount(n)
	}
	return nil
}

// changeDiceCount deals a fresh set, drops any pending roll and lets the
// current player roll again.
func (c *Controller) changeDiceCount(n int) {
	if err := c.dice.Roll(c.roller, n); err != nil {
		// n is always validated by callers
		panic(err)
	}
	c.raw, c.effective = rules.None, rules.None
	c.turn.ClearRoll()
	c.logger.Debug("Dice count changed", "dice", n, "values", c.dice.Active())
}

// SetPlayerCount changes how many players take turns. It is rejected once
// the game has started unless n is the current count.
func (c *Controller) SetPlayerCount(n int) error {
	if !validPlayerCount(n) {
		return fmt.Errorf("set player count %d: %w", n, ErrInvalidPlayerCount)
	}
	if n == c.playerCount {
		return nil
	}
	if c.turn.GameStarted {
		return fmt.Errorf("set player count %d: %w", n, ErrGameStarted)
	}
	c.playerCount = n
	if c.turn.CurrentPlayer >= n {
		c.turn.CurrentPlayer = 0
	}
	return nil
}

// SetDoubleTrouble toggles the double rule.
func (c *Controller) SetDoubleTrouble(on bool) {
	c.rules.DoubleTrouble = on
}

// SetTripleThreat toggles the triple rule.
func (c *Controller) SetTripleThreat(on bool) {
	c.rules.TripleThreat = on
}

// SetSequenceBonus toggles the sequence rule.
func (c *Controller) SetSequenceBonus(on bool) {
	c.rules.SequenceBonus = on
}

// SetSpeedMode toggles the speed preset. Switching it on moves to three
// dice and enables every rule once; switching it off changes nothing else.
func (c *Controller) SetSpeedMode(on bool) {
	c.rules.SetSpeedMode(on)
	if on && c.dice.Count() != dice.MaxCount {
		c.changeDiceCount(dice.MaxCount)
	}
}

// Reset starts the session over: empty history, player 0, two dice showing
// ones. Rules and player count are kept. Calling it twice is the same as
// calling it once.
func (c *Controller) Reset() {
	c.ledger.Clear()
	c.turn.Reset()
	c.dice.Reset()
	c.raw, c.effective = rules.None, rules.None
	c.logger.Debug("Session reset")
}

// ClearHistory empties the roll history. The turn, the dice and the
// started flag are left as they are, so the player count stays locked.
func (c *Controller) ClearHistory() {
	c.ledger.Clear()
	c.logger.Debug("History cleared")
}

// Close stops feedback delivery, waiting briefly for queued cues. The
// controller must not roll after Close.
func (c *Controller) Close() {
	c.guard.Close()
}

// Dice returns the dice on the table.
func (c *Controller) Dice() dice.Set {
	return c.dice
}

// Total is the sum of the dice in play.
func (c *Controller) Total() int {
	return c.dice.Total()
}

// Effective returns the effective label of the roll awaiting Advance.
func (c *Controller) Effective() rules.Label {
	return c.effective
}

// Turn returns a copy of the turn state.
func (c *Controller) Turn() turn.State {
	return c.turn
}

// Rules returns a copy of the house rules.
func (c *Controller) Rules() rules.Config {
	return c.rules
}

// PlayerCount returns the number of players.
func (c *Controller) PlayerCount() int {
	return c.playerCount
}

// Ledger returns a read-only view of the roll history.
func (c *Controller) Ledger() ledger.Reader {
	return c.ledger
}

// StatsFor returns the roll statistics for player.
func (c *Controller) StatsFor(player int) ledger.Stats {
	return c.ledger.StatsFor(player)
}

func validPlayerCount(n int) bool {
	return n >= MinPlayers && n <= MaxPlayers
}
