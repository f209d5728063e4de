// Package feedback delivers haptic and audio cues for rolls. Sinks are
// best-effort: nothing they do can affect the outcome of a roll.
package feedback

import (
	"context"
	"time"

	"github.com/lox/speeddice/internal/rules"
)

// Kind distinguishes the two cues a roll can produce.
type Kind int

const (
	// RollStarted fires once for every roll, before the outcome is known.
	RollStarted Kind = iota
	// SpecialConfirmed fires after a roll whose effective label is special.
	SpecialConfirmed
)

func (k Kind) String() string {
	if k == SpecialConfirmed {
		return "special_confirmed"
	}
	return "roll_started"
}

// Cue is sent to a sink. Label is None for RollStarted.
type Cue struct {
	Kind   Kind
	Label  rules.Label
	Player int
}

// StartCue is the cue sent when player starts a roll.
func StartCue(player int) Cue {
	return Cue{Kind: RollStarted, Player: player}
}

// SpecialCue is the cue sent when player's roll counted as label.
func SpecialCue(player int, label rules.Label) Cue {
	return Cue{Kind: SpecialConfirmed, Label: label, Player: player}
}

// Pattern returns the vibration pattern, alternating on and off durations.
func (c Cue) Pattern() []time.Duration {
	var ms []int
	switch c.Label {
	case rules.Double:
		ms = []int{100, 30, 100, 30, 300}
	case rules.Triple:
		ms = []int{100, 30, 100, 30, 100, 30, 500}
	case rules.Sequence:
		ms = []int{300, 100, 300}
	default:
		ms = []int{100, 50, 100}
	}
	out := make([]time.Duration, len(ms))
	for i, v := range ms {
		out[i] = time.Duration(v) * time.Millisecond
	}
	return out
}

// Sound names the sound effect for the cue.
func (c Cue) Sound() string {
	if c.Kind == RollStarted || !c.Label.Special() {
		return "roll"
	}
	return c.Label.String()
}

// Settings switches feedback channels on or off.
type Settings struct {
	Vibration bool
	Sound     bool
}

// DefaultSettings enables sound only; terminals have nothing to vibrate.
func DefaultSettings() Settings {
	return Settings{Sound: true}
}

// Sink receives cues. Callers deliver through a Guard, which runs the sink
// off the roll path.
type Sink interface {
	Cue(ctx context.Context, cue Cue) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, cue Cue) error

func (f SinkFunc) Cue(ctx context.Context, cue Cue) error {
	return f(ctx, cue)
}

// Discard drops every cue.
var Discard Sink = SinkFunc(func(context.Context, Cue) error { return nil })

// Multi fans a cue out to every sink, returning the first error after all
// sinks have been tried.
func Multi(sinks ...Sink) Sink {
	return SinkFunc(func(ctx context.Context, cue Cue) error {
		var first error
		for _, s := range sinks {
			if err := s.Cue(ctx, cue); err != nil && first == nil {
				first = err
			}
		}
		return first
	})
}
