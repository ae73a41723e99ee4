package estimate

// Defaults of the size heuristic. They are empirical and only meant for
// ranking tables against each other.
const (
	DefaultAvgLongTextChars = 200
	DefaultTextFill         = 0.5
	DefaultRowOverhead      = 24
	DefaultIndexMultiplier  = 1.10
)

// Config holds the estimator tunables.
type Config struct {
	AvgLongTextChars int     `mapstructure:"avg_long_text_chars"`
	TextFill         float64 `mapstructure:"text_fill"`
	RowOverhead      int     `mapstructure:"row_overhead"`
	IndexMultiplier  float64 `mapstructure:"index_multiplier"`
	// SystemPrefix marks reserved system tables; empty disables the filter.
	SystemPrefix string `mapstructure:"system_prefix"`
}

// DefaultConfig returns the stock tunables with the given system-table prefix.
func DefaultConfig(systemPrefix string) Config {
	return Config{
		AvgLongTextChars: DefaultAvgLongTextChars,
		TextFill:         DefaultTextFill,
		RowOverhead:      DefaultRowOverhead,
		IndexMultiplier:  DefaultIndexMultiplier,
		SystemPrefix:     systemPrefix,
	}
}
