package rules

// Config holds the house rules. The zero value has every rule off; use
// DefaultConfig for the standard table.
type Config struct {
	DoubleTrouble bool // a double gives the same player another roll
	TripleThreat  bool
	SequenceBonus bool

	// SpeedMode records that the speed preset was switched on. It only has
	// an effect at the moment it is enabled.
	SpeedMode bool
}

// DefaultConfig has all three rules enabled and speed mode off.
func DefaultConfig() Config {
	return Config{
		DoubleTrouble: true,
		TripleThreat:  true,
		SequenceBonus: true,
	}
}

// Enabled reports whether the rule for label is on. None is never enabled.
func (c Config) Enabled(label Label) bool {
	switch label {
	case Double:
		return c.DoubleTrouble
	case Triple:
		return c.TripleThreat
	case Sequence:
		return c.SequenceBonus
	default:
		return false
	}
}

// Gate suppresses label to None unless its rule is enabled. The result is
// the effective roll every turn and history decision is based on.
func (c Config) Gate(label Label) Label {
	if c.Enabled(label) {
		return label
	}
	return None
}

// SetSpeedMode toggles the preset. Enabling it turns every rule on once;
// rules can still be changed afterwards and disabling it reverts nothing.
func (c *Config) SetSpeedMode(on bool) {
	c.SpeedMode = on
	if on {
		c.DoubleTrouble = true
		c.TripleThreat = true
		c.SequenceBonus = true
	}
}
