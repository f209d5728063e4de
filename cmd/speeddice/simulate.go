package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/lox/speeddice/cmd/speeddice/shared"
	"github.com/lox/speeddice/internal/dice"
	"github.com/lox/speeddice/internal/rules"
	"github.com/lox/speeddice/internal/simulator"
)

// SimulateCmd plays many sessions without a UI.
type SimulateCmd struct {
	Sessions int    `kong:"default='100',help='Independent sessions to play'"`
	Rolls    int    `kong:"default='1000',help='Rolls per session'"`
	Players  *int   `kong:"help='Number of players (2-6), overrides the config file'"`
	Dice     *int   `kong:"help='Number of dice (2 or 3), overrides the config file'"`
	Seed     *int64 `kong:"help='Base seed; session i uses seed+i (default: config file or random)'"`
	Workers  int    `kong:"default='0',help='Sessions simulated in parallel (0 = GOMAXPROCS)'"`
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	warnStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
)

func (c *SimulateCmd) Run(globals *Globals) error {
	logger := globals.Logger()

	cfg, err := globals.LoadConfig()
	if err != nil {
		return err
	}
	if c.Players != nil {
		cfg.Players = *c.Players
	}
	if c.Dice != nil {
		cfg.Dice = *c.Dice
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	seed := dice.TimeSeed()
	switch {
	case c.Seed != nil:
		seed = *c.Seed
	case cfg.Seed != nil:
		seed = *cfg.Seed
	}

	ctx, cancel := shared.SetupSignalHandler(logger)
	defer cancel()

	logger.Info("Starting simulation", "sessions", c.Sessions, "rolls", c.Rolls, "players", cfg.Players, "dice", cfg.Dice, "seed", seed)
	start := time.Now()

	res, err := simulator.Run(ctx, simulator.Config{
		Sessions: c.Sessions,
		Rolls:    c.Rolls,
		Players:  cfg.Players,
		Dice:     cfg.Dice,
		Seed:     seed,
		Workers:  c.Workers,
		Rules:    cfg.Rules,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	logger.Info("Simulation finished", "duration", time.Since(start).Round(time.Millisecond))
	fmt.Fprintln(os.Stdout, renderReport(res))
	return nil
}

func renderReport(res *simulator.Result) string {
	pct := func(n int) string {
		if res.Rolls == 0 {
			return "-"
		}
		return strconv.FormatFloat(100*float64(n)/float64(res.Rolls), 'f', 2, 64) + "%"
	}

	labels := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("label", "raw", "raw %", "effective", "effective %")
	for _, l := range []rules.Label{rules.None, rules.Double, rules.Triple, rules.Sequence} {
		labels.Row(l.String(),
			strconv.Itoa(res.Raw[l]), pct(res.Raw[l]),
			strconv.Itoa(res.Effective[l]), pct(res.Effective[l]))
	}

	faces := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("face", "count")
	for f := dice.MinFace; f <= dice.MaxFace; f++ {
		faces.Row(strconv.Itoa(f), strconv.Itoa(res.Faces[f]))
	}

	players := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("player", "rolls")
	for i, n := range res.PlayerRolls {
		players.Row(strconv.Itoa(i+1), strconv.Itoa(n))
	}

	uniform := fmt.Sprintf("chi-square %.3f, p = %.4f", res.ChiSquare, res.PValue)
	if res.PValue < 0.01 {
		uniform = warnStyle.Render(uniform + " (dice look biased)")
	}

	summary := fmt.Sprintf("%d sessions, %d rolls, %d repeated turns\nmean total %.3f (sd %.3f)\n%s",
		res.Sessions, res.Rolls, res.Repeats, res.MeanTotal, res.StdDevTotal, uniform)

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Simulation"),
		summary,
		"",
		labels.String(),
		lipgloss.JoinHorizontal(lipgloss.Top, faces.String(), "  ", players.String()),
	)
}
