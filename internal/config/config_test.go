package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lox/speeddice/internal/dice"
	"github.com/lox/speeddice/internal/rules"
	"github.com/lox/speeddice/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad(t *testing.T) {
	path := writeFile(t, `
players = 4
dice    = 3
seed    = 42

rules {
  sequence_bonus = false
}

feedback {
  vibration = true
  sound     = false
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Players)
	assert.Equal(t, 3, cfg.Dice)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, int64(42), *cfg.Seed)
	assert.True(t, cfg.Rules.DoubleTrouble)
	assert.True(t, cfg.Rules.TripleThreat)
	assert.False(t, cfg.Rules.SequenceBonus)
	assert.True(t, cfg.Feedback.Vibration)
	assert.False(t, cfg.Feedback.Sound)
}

func TestLoadSpeedModeForcesThreeDice(t *testing.T) {
	path := writeFile(t, `
dice = 2
rules {
  double_trouble = false
  speed_mode     = true
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, dice.MaxCount, cfg.Dice)
	assert.True(t, cfg.Rules.SpeedMode)
	assert.True(t, cfg.Rules.DoubleTrouble)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	_, err := Load(writeFile(t, `players = 9`))
	assert.ErrorIs(t, err, session.ErrInvalidPlayerCount)

	_, err = Load(writeFile(t, `dice = 5`))
	assert.ErrorIs(t, err, dice.ErrInvalidCount)
}

func TestLoadReportsSyntaxErrors(t *testing.T) {
	_, err := Load(writeFile(t, `players = `))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse HCL file")

	_, err = Load(writeFile(t, `colour = "red"`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode HCL")
}

func TestSessionOptions(t *testing.T) {
	seed := int64(5)
	cfg := Default()
	cfg.Players = 5
	cfg.Dice = 3
	cfg.Seed = &seed
	cfg.Rules.TripleThreat = false

	c, err := session.New(cfg.SessionOptions()...)
	require.NoError(t, err)
	defer c.Close()
	assert.Equal(t, 5, c.PlayerCount())
	assert.Equal(t, 3, c.Dice().Count())
	assert.Equal(t, rules.None, c.Rules().Gate(rules.Triple))
}

func TestValidateRejectsTwoDiceInSpeedMode(t *testing.T) {
	cfg := Default()
	cfg.Rules.SetSpeedMode(true)
	cfg.Dice = 2
	assert.ErrorIs(t, cfg.Validate(), ErrSpeedModeDice)

	cfg.Dice = 3
	assert.NoError(t, cfg.Validate())
}
