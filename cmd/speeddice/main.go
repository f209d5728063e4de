package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/speeddice/cmd/speeddice/shared"
	"github.com/lox/speeddice/internal/config"
	"github.com/muesli/termenv"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	Config    string `kong:"default='speeddice.hcl',type='path',help='House rules file (HCL); missing file means defaults',env='SPEEDDICE_CONFIG'"`
	Debug     bool   `kong:"help='Enable debug logging'"`
	LogFormat string `kong:"default='text',enum='text,json,logfmt',help='Log format (text, json, logfmt)'"`
	NoColor   bool   `kong:"help='Disable colour output'"`
}

// Logger builds the logger for commands that log to stderr.
func (g *Globals) Logger() *log.Logger {
	return shared.SetupLogger(os.Stderr, g.Debug, g.LogFormat)
}

// LoadConfig reads the house rules file.
func (g *Globals) LoadConfig() (*config.Config, error) {
	return config.Load(g.Config)
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"1" help:"Play an interactive game in the terminal"`
	Simulate SimulateCmd      `cmd:"" help:"Simulate many sessions and report roll statistics"`
	Classify ClassifyCmd      `cmd:"" help:"Classify a set of dice under the configured house rules"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("speeddice"),
		kong.Description("Turn-based dice game with house rules for doubles, triples and sequences"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	if cli.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
