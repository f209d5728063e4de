// Package simulator plays many independent sessions to check the dice and
// the house rules behave as expected over large samples.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/lox/speeddice/internal/dice"
	"github.com/lox/speeddice/internal/rules"
	"github.com/lox/speeddice/internal/session"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Config holds configuration for running simulations
type Config struct {
	Sessions int   // independent sessions to play
	Rolls    int   // roll and advance cycles per session
	Players  int   // players per session
	Dice     int   // dice per roll
	Seed     int64 // session i is seeded Seed+i
	Workers  int   // sessions played at once; 0 means GOMAXPROCS
	Rules    rules.Config
	Logger   *log.Logger
}

// Result aggregates every simulated roll.
type Result struct {
	Sessions int
	Rolls    int

	Raw       map[rules.Label]int // classification before house rules
	Effective map[rules.Label]int
	Repeats   int // advances that kept the same player

	PlayerRolls []int
	Faces       [dice.MaxFace + 1]int // index 0 unused

	MeanTotal   float64
	StdDevTotal float64

	// Uniformity of the faces: chi-square statistic against a fair die and
	// its p-value with five degrees of freedom.
	ChiSquare float64
	PValue    float64
}

type sessionResult struct {
	raw       map[rules.Label]int
	effective map[rules.Label]int
	repeats   int
	players   []int
	faces     [dice.MaxFace + 1]int
	totals    []float64
}

// Validate checks the configuration before any session starts.
func (c Config) Validate() error {
	if c.Sessions < 1 {
		return errors.New("sessions must be positive")
	}
	if c.Rolls < 1 {
		return errors.New("rolls must be positive")
	}
	if c.Players < session.MinPlayers || c.Players > session.MaxPlayers {
		return fmt.Errorf("players = %d: %w", c.Players, session.ErrInvalidPlayerCount)
	}
	if !dice.ValidCount(c.Dice) {
		return fmt.Errorf("dice = %d: %w", c.Dice, dice.ErrInvalidCount)
	}
	return nil
}

// Run plays every session and returns the aggregate.
func Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	partials := make([]sessionResult, cfg.Sessions)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < cfg.Sessions; i++ {
		g.Go(func() error {
			res, err := playSession(ctx, cfg, cfg.Seed+int64(i))
			if err != nil {
				return fmt.Errorf("session %d: %w", i, err)
			}
			partials[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := merge(cfg, partials)
	cfg.Logger.Debug("Simulation complete", "sessions", res.Sessions, "rolls", res.Rolls, "p_value", res.PValue)
	return res, nil
}

func playSession(ctx context.Context, cfg Config, seed int64) (sessionResult, error) {
	c, err := session.New(
		session.WithSeed(seed),
		session.WithPlayerCount(cfg.Players),
		session.WithDiceCount(cfg.Dice),
		session.WithRules(cfg.Rules),
		session.WithLogger(cfg.Logger),
	)
	if err != nil {
		return sessionResult{}, err
	}
	defer c.Close()

	res := sessionResult{
		raw:       map[rules.Label]int{},
		effective: map[rules.Label]int{},
		players:   make([]int, cfg.Players),
	}

	for i := 0; i < cfg.Rolls; i++ {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return sessionResult{}, err
			}
		}
		roll, err := c.Roll(ctx)
		if err != nil {
			return sessionResult{}, err
		}
		res.raw[roll.Raw]++
		next, err := c.Advance()
		if err != nil {
			return sessionResult{}, err
		}
		if next == roll.Player {
			res.repeats++
		}
	}

	for _, r := range c.Ledger().Records() {
		res.effective[r.Effective]++
		res.players[r.Player]++
		res.totals = append(res.totals, float64(r.Total))
		for _, v := range r.Values {
			res.faces[v]++
		}
	}
	return res, nil
}

func merge(cfg Config, partials []sessionResult) *Result {
	res := &Result{
		Sessions:    len(partials),
		Raw:         map[rules.Label]int{},
		Effective:   map[rules.Label]int{},
		PlayerRolls: make([]int, cfg.Players),
	}

	var totals []float64
	for _, p := range partials {
		for l, n := range p.raw {
			res.Raw[l] += n
		}
		for l, n := range p.effective {
			res.Effective[l] += n
		}
		for i, n := range p.players {
			res.PlayerRolls[i] += n
		}
		for f := dice.MinFace; f <= dice.MaxFace; f++ {
			res.Faces[f] += p.faces[f]
		}
		res.Repeats += p.repeats
		totals = append(totals, p.totals...)
	}
	res.Rolls = len(totals)

	if len(totals) > 0 {
		res.MeanTotal, res.StdDevTotal = stat.MeanStdDev(totals, nil)
	}
	res.ChiSquare, res.PValue = uniformity(res.Faces)
	return res
}

// uniformity tests the face counts against a fair die.
func uniformity(faces [dice.MaxFace + 1]int) (chi2, p float64) {
	observed := make([]float64, 0, dice.MaxFace)
	n := 0
	for f := dice.MinFace; f <= dice.MaxFace; f++ {
		observed = append(observed, float64(faces[f]))
		n += faces[f]
	}
	if n == 0 {
		return 0, 1
	}
	expected := make([]float64, len(observed))
	for i := range expected {
		expected[i] = float64(n) / float64(len(observed))
	}
	chi2 = stat.ChiSquare(observed, expected)
	dist := distuv.ChiSquared{K: float64(len(observed) - 1)}
	return chi2, dist.Survival(chi2)
}
