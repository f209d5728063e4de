package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Roll          key.Binding
	Advance       key.Binding
	ToggleDice    key.Binding
	MorePlayers   key.Binding
	FewerPlayers  key.Binding
	DoubleTrouble key.Binding
	TripleThreat  key.Binding
	SequenceBonus key.Binding
	SpeedMode     key.Binding
	Reset         key.Binding
	ClearHistory  key.Binding
	Help          key.Binding
	Quit          key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Roll: key.NewBinding(
			key.WithKeys("r", " "),
			key.WithHelp("r/space", "roll"),
		),
		Advance: key.NewBinding(
			key.WithKeys("n", "enter"),
			key.WithHelp("n/enter", "next turn"),
		),
		ToggleDice: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "2/3 dice"),
		),
		MorePlayers: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "add player"),
		),
		FewerPlayers: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "remove player"),
		),
		DoubleTrouble: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "double trouble"),
		),
		TripleThreat: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "triple threat"),
		),
		SequenceBonus: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "sequence bonus"),
		),
		SpeedMode: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "speed mode"),
		),
		Reset: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "reset game"),
		),
		ClearHistory: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear history"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Roll, k.Advance, k.ToggleDice, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Roll, k.Advance, k.ToggleDice, k.Reset, k.ClearHistory},
		{k.MorePlayers, k.FewerPlayers, k.SpeedMode},
		{k.DoubleTrouble, k.TripleThreat, k.SequenceBonus},
		{k.Help, k.Quit},
	}
}
