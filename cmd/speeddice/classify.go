package main

import (
	"fmt"
	"io"
	"os"

	"github.com/lox/speeddice/internal/dice"
	"github.com/lox/speeddice/internal/rules"
)

// ClassifyCmd labels dice given on the command line.
type ClassifyCmd struct {
	Values []int  `kong:"arg,help='Two or three die faces (1-6)'"`
	Expect string `kong:"help='Fail unless the effective label is this (none, double, triple, sequence)'"`
}

func (c *ClassifyCmd) Run(globals *Globals) error {
	cfg, err := globals.LoadConfig()
	if err != nil {
		return err
	}
	return c.classify(os.Stdout, cfg.Rules)
}

func (c *ClassifyCmd) classify(w io.Writer, houseRules rules.Config) error {
	for _, v := range c.Values {
		if v < dice.MinFace || v > dice.MaxFace {
			return fmt.Errorf("face %d out of range 1-6", v)
		}
	}
	label, err := rules.Classify(c.Values)
	if err != nil {
		return err
	}
	effective := houseRules.Gate(label)

	fmt.Fprintf(w, "dice %v total %d: %s", c.Values, dice.Total(c.Values), label)
	if effective != label {
		fmt.Fprintf(w, " (ignored by house rules)")
	} else if msg := effective.Message(); msg != "" {
		fmt.Fprintf(w, " - %s", msg)
	}
	fmt.Fprintln(w)

	if c.Expect == "" {
		return nil
	}
	want, err := rules.ParseLabel(c.Expect)
	if err != nil {
		return err
	}
	if effective != want {
		return fmt.Errorf("expected %s, got %s", want, effective)
	}
	return nil
}
