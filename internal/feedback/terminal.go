package feedback

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
)

const bell = "\a"

// BellSink rings the terminal bell: once per roll, and once more for every
// pulse of a special roll's vibration pattern when vibration is on.
type BellSink struct {
	w        io.Writer
	settings Settings
}

// NewBellSink writes bells to w according to settings.
func NewBellSink(w io.Writer, settings Settings) *BellSink {
	return &BellSink{w: w, settings: settings}
}

func (s *BellSink) Cue(_ context.Context, cue Cue) error {
	rings := 0
	if s.settings.Sound {
		rings++
	}
	if s.settings.Vibration && cue.Kind == SpecialConfirmed {
		rings += (len(cue.Pattern()) + 1) / 2
	}
	for i := 0; i < rings; i++ {
		if _, err := io.WriteString(s.w, bell); err != nil {
			return err
		}
	}
	return nil
}

// LogSink records cues on a logger; useful with --debug and in simulations.
type LogSink struct {
	logger *log.Logger
}

// NewLogSink returns a sink that logs cues at debug level.
func NewLogSink(logger *log.Logger) *LogSink {
	return &LogSink{logger: logger.WithPrefix("feedback")}
}

func (s *LogSink) Cue(_ context.Context, cue Cue) error {
	s.logger.Debug("Cue", "kind", cue.Kind, "player", cue.Player, "label", cue.Label, "sound", cue.Sound(), "pattern", cue.Pattern())
	return nil
}
