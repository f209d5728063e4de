// Package tui is an interactive terminal front-end for a single session.
package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/speeddice/internal/session"
	"github.com/lox/speeddice/internal/turn"
)

// DefaultRevealDelay is how long dice show as "?" after a roll.
const DefaultRevealDelay = 600 * time.Millisecond

// Options configures the model.
type Options struct {
	Logger      *log.Logger
	Clock       quartz.Clock
	RevealDelay time.Duration
	HistorySize int // rolls shown in the history pane
}

// Model is the Bubble Tea model for a game of speed dice. It never changes
// the session's state itself; every key maps to one controller command.
type Model struct {
	ctrl   *session.Controller
	logger *log.Logger
	clock  quartz.Clock

	keys keyMap
	help help.Model

	revealDelay time.Duration
	historySize int

	// revealing is true between a roll and its reveal tick. The result is
	// already final; only the display waits.
	revealing bool
	rollSeq   int

	status   string
	isError  bool
	width    int
	quitting bool
}

// revealMsg ends the cosmetic delay of roll number seq.
type revealMsg struct {
	seq int
}

// New returns a model driving ctrl.
func New(ctrl *session.Controller, opts Options) *Model {
	if opts.Clock == nil {
		opts.Clock = quartz.NewReal()
	}
	if opts.RevealDelay < 0 {
		opts.RevealDelay = 0
	}
	if opts.HistorySize <= 0 {
		opts.HistorySize = 8
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &Model{
		ctrl:        ctrl,
		logger:      logger.WithPrefix("tui"),
		clock:       opts.Clock,
		keys:        defaultKeyMap(),
		help:        help.New(),
		revealDelay: opts.RevealDelay,
		historySize: opts.HistorySize,
		status:      "Press r to roll",
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case revealMsg:
		if msg.seq == m.rollSeq {
			m.revealing = false
			m.announceRoll()
		}

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Roll):
		if m.revealing {
			return nil
		}
		res, err := m.ctrl.Roll(context.Background())
		if err != nil {
			m.fail(err)
			return nil
		}
		m.logger.Debug("Roll", "player", res.Player, "values", res.Values, "effective", res.Effective)
		m.rollSeq++
		m.revealing = true
		m.setStatus("Rolling...")
		return m.revealAfter(m.rollSeq)

	case key.Matches(msg, m.keys.Advance):
		if m.revealing {
			return nil
		}
		next, err := m.ctrl.Advance()
		if err != nil {
			m.fail(err)
			return nil
		}
		m.setStatus(playerName(next) + " to roll")

	case key.Matches(msg, m.keys.ToggleDice):
		m.stopReveal()
		m.ctrl.ToggleDiceCount()
		m.setStatus("Switched dice")

	case key.Matches(msg, m.keys.MorePlayers):
		m.changePlayers(1)

	case key.Matches(msg, m.keys.FewerPlayers):
		m.changePlayers(-1)

	case key.Matches(msg, m.keys.DoubleTrouble):
		m.ctrl.SetDoubleTrouble(!m.ctrl.Rules().DoubleTrouble)
		m.setStatus(onOff("Double trouble", m.ctrl.Rules().DoubleTrouble))

	case key.Matches(msg, m.keys.TripleThreat):
		m.ctrl.SetTripleThreat(!m.ctrl.Rules().TripleThreat)
		m.setStatus(onOff("Triple threat", m.ctrl.Rules().TripleThreat))

	case key.Matches(msg, m.keys.SequenceBonus):
		m.ctrl.SetSequenceBonus(!m.ctrl.Rules().SequenceBonus)
		m.setStatus(onOff("Sequence bonus", m.ctrl.Rules().SequenceBonus))

	case key.Matches(msg, m.keys.SpeedMode):
		on := !m.ctrl.Rules().SpeedMode
		if on {
			m.stopReveal()
		}
		m.ctrl.SetSpeedMode(on)
		m.setStatus(onOff("Speed mode", on))

	case key.Matches(msg, m.keys.Reset):
		m.stopReveal()
		m.ctrl.Reset()
		m.setStatus("New game")

	case key.Matches(msg, m.keys.ClearHistory):
		m.ctrl.ClearHistory()
		m.setStatus("History cleared")
	}
	return nil
}

// revealAfter waits out the reveal delay on the model's clock.
func (m *Model) revealAfter(seq int) tea.Cmd {
	if m.revealDelay == 0 {
		return func() tea.Msg { return revealMsg{seq: seq} }
	}
	clock, delay := m.clock, m.revealDelay
	return func() tea.Msg {
		t := clock.NewTimer(delay, "tui", "reveal")
		<-t.C
		return revealMsg{seq: seq}
	}
}

func (m *Model) stopReveal() {
	m.revealing = false
	m.rollSeq++
}

func (m *Model) announceRoll() {
	snap := m.ctrl.Snapshot()
	if msg := snap.Effective.Message(); msg != "" {
		m.setStatus(msg)
		return
	}
	m.setStatus(playerName(snap.Turn.CurrentPlayer) + " rolled " + itoa(snap.Total))
}

func (m *Model) changePlayers(delta int) {
	n := m.ctrl.PlayerCount() + delta
	if err := m.ctrl.SetPlayerCount(n); err != nil {
		m.fail(err)
		return
	}
	m.setStatus(itoa(n) + " players")
}

func (m *Model) fail(err error) {
	switch {
	case errors.Is(err, turn.ErrAlreadyRolled):
		m.status = "Already rolled: press n for the next turn"
	case errors.Is(err, turn.ErrNotRolled):
		m.status = "Roll the dice first"
	case errors.Is(err, session.ErrGameStarted):
		m.status = "Player count cannot change after the game has started"
	case errors.Is(err, session.ErrInvalidPlayerCount):
		m.status = "Between 2 and 6 players"
	default:
		m.status = err.Error()
	}
	m.isError = true
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.isError = false
}

func onOff(name string, on bool) string {
	if on {
		return name + " on"
	}
	return name + " off"
}
