package session

import (
	"github.com/lox/speeddice/internal/rules"
	"github.com/lox/speeddice/internal/turn"
)

// Snapshot is a read-only copy of everything a front-end displays.
type Snapshot struct {
	SessionID   string
	Dice        []int
	DiceCount   int
	Total       int
	Raw         rules.Label
	Effective   rules.Label
	Turn        turn.State
	PlayerCount int
	Rules       rules.Config
	Rolls       int

	// NextPlayer is who Advance would hand the turn to right now.
	NextPlayer int
}

// Snapshot captures the current state.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		SessionID:   c.id,
		Dice:        c.dice.Active(),
		DiceCount:   c.dice.Count(),
		Total:       c.dice.Total(),
		Raw:         c.raw,
		Effective:   c.effective,
		Turn:        c.turn,
		PlayerCount: c.playerCount,
		Rules:       c.rules,
		Rolls:       c.ledger.Len(),
		NextPlayer:  turn.NextPlayer(c.turn.CurrentPlayer, c.playerCount, c.effective),
	}
}

// RepeatsTurn reports whether advancing now keeps the same player.
func (s Snapshot) RepeatsTurn() bool {
	return s.Turn.HasRolled && s.Effective == rules.Double
}
