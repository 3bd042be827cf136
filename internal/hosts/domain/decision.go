package domain

// Decision is the outcome of checking one name against the override table.
// Pure value type, no external dependencies.
type Decision struct {
	Blocked bool   // true if the name matched an override entry
	Address string // substitute address when Blocked, "" otherwise
}

// IsBlocked is a convenience accessor.
func (d Decision) IsBlocked() bool { return d.Blocked }

// EmptyDecision returns a not-blocked decision.
func EmptyDecision() Decision { return Decision{} }
