package ledger

import "strings"

// Entity is a recognised legal entity. Hint is the code searched for in the
// reporting-level text; it defaults to the label.
type Entity struct {
	Label string `mapstructure:"label"`
	Hint  string `mapstructure:"hint"`
}

// Code returns the upper-case hint code.
func (e Entity) Code() string {
	if e.Hint != "" {
		return strings.ToUpper(strings.TrimSpace(e.Hint))
	}
	return strings.ToUpper(strings.TrimSpace(e.Label))
}

// Columns names the ledger columns as they appear in the source headers.
type Columns struct {
	Account  string `mapstructure:"account"`
	Date     string `mapstructure:"date"`
	Level    string `mapstructure:"level"`
	CleanPnL string `mapstructure:"clean_pnl"`
	Actual   string `mapstructure:"actual"`
	BookType string `mapstructure:"book_type"`
	Entity   string `mapstructure:"entity"` // optional per-record entity tag
}

// SourceConfig describes one ledger workbook. Entity, when set, tags every
// record of the source with a strong entity signal.
type SourceConfig struct {
	Path      string `mapstructure:"path"`
	Sheet     string `mapstructure:"sheet"`
	HeaderRow int    `mapstructure:"header_row"`
	Entity    string `mapstructure:"entity"`
}

type MappingConfig struct {
	Path          string `mapstructure:"path"`
	NewSheet      string `mapstructure:"new_sheet"`
	OldSheet      string `mapstructure:"old_sheet"`
	HeaderRow     int    `mapstructure:"header_row"`
	Prefix        string `mapstructure:"prefix"`
	AccountColumn string `mapstructure:"account_column"`
	EntityColumn  string `mapstructure:"entity_column"`
}

type Config struct {
	ExportGlob string        `mapstructure:"export_glob"`
	Export     SourceConfig  `mapstructure:"export"`
	MTD        SourceConfig  `mapstructure:"mtd"`
	Mapping    MappingConfig `mapstructure:"mapping"`
	Columns    Columns       `mapstructure:"columns"`
	Entities   []Entity      `mapstructure:"entities"`
	TBLabel    string        `mapstructure:"tb_label"`
	Output     string        `mapstructure:"output"`
}

// DefaultConfig returns the layout of the standard P&L exports.
func DefaultConfig() Config {
	return Config{
		ExportGlob: "exports/PnL_*.xlsx",
		Export:     SourceConfig{HeaderRow: 1},
		MTD:        SourceConfig{HeaderRow: 1},
		Mapping: MappingConfig{
			Path:          "exports/account_mapping.xlsx",
			NewSheet:      "new",
			OldSheet:      "old",
			HeaderRow:     1,
			Prefix:        "S2",
			AccountColumn: "Account",
			EntityColumn:  "Entity",
		},
		Columns: Columns{
			Account:  "Account",
			Date:     "Business Date",
			Level:    "Reporting Level",
			CleanPnL: "Clean P&L",
			Actual:   "Actual",
			BookType: "Book Type",
			Entity:   "Entity",
		},
		Entities: []Entity{{Label: "CGML"}, {Label: "CGME"}},
		TBLabel:  "TB",
		Output:   "consolidated.xlsx",
	}
}

// recognised reports whether label (already upper-cased) is a configured entity.
func (c Config) recognised(label string) bool {
	for _, e := range c.Entities {
		if strings.EqualFold(e.Label, label) {
			return true
		}
	}
	return false
}
