// Package turn tracks whose turn it is and whether they have rolled.
//
// A session starts NotStarted and becomes Active on the first recorded roll;
// only Reset returns it to NotStarted. Within a session each turn alternates
// between awaiting a roll and rolled:
//
//	AwaitingRoll --RecordRoll--> Rolled --Advance--> AwaitingRoll
//
// Advance always goes through, doubles included: a double keeps the same
// player but they still start again from AwaitingRoll.
package turn

import (
	"errors"
	"fmt"

	"github.com/lox/speeddice/internal/rules"
)

var (
	// ErrAlreadyRolled is returned by RecordRoll when the current player has
	// rolled and the turn has not been advanced.
	ErrAlreadyRolled = errors.New("player has already rolled this turn")

	// ErrNotRolled is returned by Advance before the current player rolled.
	ErrNotRolled = errors.New("player has not rolled this turn")
)

// State is the turn state for one session. The zero value is a fresh,
// not-started game with player 0 to roll.
type State struct {
	CurrentPlayer int
	HasRolled     bool
	GameStarted   bool
}

// Phase names the per-turn sub-state.
type Phase int

const (
	AwaitingRoll Phase = iota
	Rolled
)

func (p Phase) String() string {
	if p == Rolled {
		return "rolled"
	}
	return "awaiting_roll"
}

// Phase returns the current per-turn sub-state.
func (s State) Phase() Phase {
	if s.HasRolled {
		return Rolled
	}
	return AwaitingRoll
}

// RecordRoll moves the turn to Rolled and marks the game as started.
func (s *State) RecordRoll() error {
	if s.HasRolled {
		return fmt.Errorf("player %d: %w", s.CurrentPlayer, ErrAlreadyRolled)
	}
	s.HasRolled = true
	s.GameStarted = true
	return nil
}

// Advance hands the turn to the next player given the effective roll and
// returns the new current player.
func (s *State) Advance(effective rules.Label, playerCount int) (int, error) {
	if !s.HasRolled {
		return s.CurrentPlayer, fmt.Errorf("player %d: %w", s.CurrentPlayer, ErrNotRolled)
	}
	s.CurrentPlayer = NextPlayer(s.CurrentPlayer, playerCount, effective)
	s.HasRolled = false
	return s.CurrentPlayer, nil
}

// ClearRoll drops back to AwaitingRoll without changing the player.
func (s *State) ClearRoll() {
	s.HasRolled = false
}

// Reset returns to a fresh game. It cannot fail.
func (s *State) Reset() {
	*s = State{}
}

// NextPlayer returns who rolls after current. A double repeats the turn;
// anything else rotates, wrapping at playerCount.
func NextPlayer(current, playerCount int, effective rules.Label) int {
	if effective == rules.Double {
		return current
	}
	return (current + 1) % playerCount
}
