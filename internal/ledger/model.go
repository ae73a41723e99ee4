package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rule records which resolution step assigned a record's entity.
type Rule int

const (
	RuleNone Rule = iota
	RuleSignal
	RuleHint
	RuleNewSheet
	RuleFallback
)

func (r Rule) String() string {
	switch r {
	case RuleSignal:
		return "signal"
	case RuleHint:
		return "hint"
	case RuleNewSheet:
		return "new-sheet"
	case RuleFallback:
		return "fallback"
	default:
		return "none"
	}
}

// Record is one ledger line.
type Record struct {
	Account  string // display form
	Key      string // match key
	Date     time.Time
	Level    string
	CleanPnL decimal.NullDecimal
	Actual   decimal.NullDecimal
	BookType string
	Signal   string // strong entity signal from the record or its source
	Source   string
	Entity   string
	Rule     Rule
}

// MappingEntry assigns an account to an entity. Sheet is the provenance
// sheet name, used only to break ties.
type MappingEntry struct {
	Account string
	Key     string
	Entity  string
	Sheet   string
}

// Summary counts what a consolidation run loaded, dropped and kept.
type Summary struct {
	Files           int
	Loaded          int
	MissingDate     int
	MissingAccount  int
	NullAmounts     int
	MappingRows     int
	MappingDropped  int
	Unmapped        int
	ConflictDropped int
	Retained        int
	ByRule          map[Rule]int
}
