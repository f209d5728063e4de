package feedback

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/speeddice/internal/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func TestCuePatterns(t *testing.T) {
	ms := time.Millisecond
	assert.Equal(t, []time.Duration{100 * ms, 50 * ms, 100 * ms}, StartCue(0).Pattern())
	assert.Equal(t, []time.Duration{300 * ms, 100 * ms, 300 * ms}, SpecialCue(0, rules.Sequence).Pattern())
	assert.Len(t, SpecialCue(0, rules.Triple).Pattern(), 7)
	assert.Len(t, SpecialCue(0, rules.Double).Pattern(), 5)
}

func TestCueSound(t *testing.T) {
	assert.Equal(t, "roll", StartCue(1).Sound())
	assert.Equal(t, "double", SpecialCue(1, rules.Double).Sound())
	assert.Equal(t, "roll", SpecialCue(1, rules.None).Sound())
}

func TestGuardSwallowsErrors(t *testing.T) {
	g := NewGuard(SinkFunc(func(context.Context, Cue) error {
		return errors.New("audio device missing")
	}), quietLogger(), quartz.NewMock(t))
	defer g.Close()

	assert.NotPanics(t, func() { g.Notify(context.Background(), StartCue(0)) })
}

func TestGuardRecoversPanics(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	g := NewGuard(SinkFunc(func(context.Context, Cue) error {
		panic("vibration motor on fire")
	}), logger, quartz.NewMock(t))

	assert.NotPanics(t, func() { g.Notify(context.Background(), SpecialCue(0, rules.Triple)) })
	g.Close()
	assert.Contains(t, buf.String(), "vibration motor on fire")
}

func TestGuardNilSink(t *testing.T) {
	g := NewGuard(nil, quietLogger(), nil)
	assert.NotPanics(t, func() { g.Notify(context.Background(), StartCue(0)) })
	g.Close()
}

func TestGuardDeliversInOrder(t *testing.T) {
	var got []Cue
	g := NewGuard(SinkFunc(func(_ context.Context, c Cue) error {
		got = append(got, c)
		return nil
	}), quietLogger(), quartz.NewMock(t))

	g.Notify(context.Background(), StartCue(1))
	g.Notify(context.Background(), SpecialCue(1, rules.Double))
	g.Close()

	assert.Equal(t, []Cue{StartCue(1), SpecialCue(1, rules.Double)}, got)
}

func TestGuardDoesNotWaitForStalledSink(t *testing.T) {
	block := make(chan struct{})
	delivered := make(chan Cue, QueueSize+2)
	g := NewGuard(SinkFunc(func(_ context.Context, c Cue) error {
		<-block
		delivered <- c
		return nil
	}), quietLogger(), quartz.NewMock(t))

	returned := make(chan struct{})
	go func() {
		for i := 0; i < QueueSize*2; i++ {
			g.Notify(context.Background(), StartCue(i))
		}
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(5 * time.Second):
		t.Fatal("Notify blocked on a stalled sink")
	}

	close(block)
	g.Close()
	close(delivered)

	count := 0
	for range delivered {
		count++
	}
	assert.LessOrEqual(t, count, QueueSize+1, "cues beyond the queue are dropped")
	assert.Positive(t, count)
}

func TestGuardIgnoresCuesAfterClose(t *testing.T) {
	calls := 0
	g := NewGuard(SinkFunc(func(context.Context, Cue) error {
		calls++
		return nil
	}), quietLogger(), quartz.NewMock(t))
	g.Close()
	g.Close()

	assert.NotPanics(t, func() { g.Notify(context.Background(), StartCue(0)) })
	assert.Zero(t, calls)
}

func TestMultiTriesEverySink(t *testing.T) {
	var got []string
	failing := SinkFunc(func(context.Context, Cue) error {
		got = append(got, "failing")
		return errors.New("boom")
	})
	ok := SinkFunc(func(_ context.Context, c Cue) error {
		got = append(got, c.Sound())
		return nil
	})

	err := Multi(failing, ok).Cue(context.Background(), SpecialCue(0, rules.Double))
	require.Error(t, err)
	assert.Equal(t, []string{"failing", "double"}, got)
}

func TestBellSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewBellSink(&buf, Settings{Sound: true})
	require.NoError(t, sink.Cue(context.Background(), StartCue(0)))
	assert.Equal(t, 1, strings.Count(buf.String(), bell))

	buf.Reset()
	sink = NewBellSink(&buf, Settings{Sound: true, Vibration: true})
	require.NoError(t, sink.Cue(context.Background(), SpecialCue(0, rules.Sequence)))
	assert.Equal(t, 3, strings.Count(buf.String(), bell))

	buf.Reset()
	sink = NewBellSink(&buf, Settings{})
	require.NoError(t, sink.Cue(context.Background(), SpecialCue(0, rules.Triple)))
	assert.Empty(t, buf.String())
}
