package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/speeddice/internal/rules"
	"github.com/lox/speeddice/internal/session"
)

var playerIcons = []string{"👑", "🚀", "🏆", "🎯", "🎮", "🎲"}

func playerName(i int) string {
	return "Player " + strconv.Itoa(i+1)
}

func playerIcon(i int) string {
	return playerIcons[i%len(playerIcons)]
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func labelStyle(l rules.Label) lipgloss.Style {
	switch l {
	case rules.Double:
		return DoubleStyle
	case rules.Triple:
		return TripleStyle
	case rules.Sequence:
		return SequenceStyle
	default:
		return InfoStyle
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	snap := m.ctrl.Snapshot()

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Speed Dice"))
	b.WriteString("\n\n")
	b.WriteString(m.renderTable(snap))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		PaneStyle.Render(m.renderStats(snap)),
		PaneStyle.Render(m.renderHistory()),
	))
	b.WriteString("\n")
	b.WriteString(m.renderRules(snap))
	b.WriteString("\n")
	if m.isError {
		b.WriteString(ErrorStyle.Render(m.status))
	} else {
		b.WriteString(m.status)
	}
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) renderTable(snap session.Snapshot) string {
	dice := make([]string, len(snap.Dice))
	for i, v := range snap.Dice {
		face := strconv.Itoa(v)
		if m.revealing {
			face = "?"
		}
		dice[i] = DieStyle.Render(face)
	}

	total := "Total: " + strconv.Itoa(snap.Total)
	if m.revealing {
		total = "Total: ?"
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, dice...))
	b.WriteString("\n")
	b.WriteString(TotalStyle.Render(total))
	if !m.revealing && snap.Effective.Special() {
		b.WriteString("  ")
		b.WriteString(labelStyle(snap.Effective).Render(snap.Effective.Message()))
	}
	b.WriteString("\n\n")

	current := snap.Turn.CurrentPlayer
	b.WriteString(PlayerStyle.Render(fmt.Sprintf("%s %s", playerIcon(current), playerName(current))))
	switch {
	case snap.RepeatsTurn():
		b.WriteString(DoubleStyle.Render("  rolled a double: press n, then roll again"))
	case snap.Turn.HasRolled:
		b.WriteString(InfoStyle.Render(fmt.Sprintf("  press n to continue with %s %s", playerName(snap.NextPlayer), playerIcon(snap.NextPlayer))))
	default:
		b.WriteString(InfoStyle.Render("  to roll"))
	}
	b.WriteString("\n")
	return b.String()
}

func (m *Model) renderStats(snap session.Snapshot) string {
	var b strings.Builder
	b.WriteString("Player stats\n")
	stats := m.ctrl.Ledger().Summary(snap.PlayerCount)
	if m.revealing {
		// keep the newest roll out of the stats until it is revealed
		if r, ok := m.ctrl.Ledger().Latest(); ok && r.Player < len(stats) {
			stats[r.Player] = stats[r.Player].Without(r)
		}
	}
	for _, s := range stats {
		line := fmt.Sprintf("%s %-9s rolls %-3d avg %-4s special %d",
			playerIcon(s.Player), playerName(s.Player), s.Rolls, s.AverageString(), s.Specials)
		if s.Player == snap.Turn.CurrentPlayer {
			line = PlayerStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) renderHistory() string {
	records := m.ctrl.Ledger().Records()
	if len(records) == 0 {
		return "History\nNo rolls yet. Start rolling!"
	}
	if m.revealing {
		// the newest roll is not shown until it is revealed
		records = records[1:]
	}

	var b strings.Builder
	b.WriteString("History\n")
	for i, r := range records {
		if i == m.historySize {
			b.WriteString(InfoStyle.Render(fmt.Sprintf("... %d earlier", len(records)-i)))
			break
		}
		line := r.String()
		if r.Effective.Special() {
			line = labelStyle(r.Effective).Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) renderRules(snap session.Snapshot) string {
	flag := func(name string, on bool) string {
		if on {
			return "[x] " + name
		}
		return "[ ] " + name
	}
	parts := []string{
		fmt.Sprintf("%d players", snap.PlayerCount),
		fmt.Sprintf("%d dice", snap.DiceCount),
		flag("double trouble", snap.Rules.DoubleTrouble),
		flag("triple threat", snap.Rules.TripleThreat),
		flag("sequence bonus", snap.Rules.SequenceBonus),
		flag("speed mode", snap.Rules.SpeedMode),
	}
	return InfoStyle.Render(strings.Join(parts, " | "))
}
