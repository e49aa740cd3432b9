package egraph

import (
	"io"
	"log/slog"
)

// Config bounds saturation and controls extraction.
type Config struct {
	MaxIterations  int          `yaml:"max_iterations"`  // Rounds before saturation is cut off.
	MaxNodes       int          `yaml:"max_nodes"`       // Node count that stops a round with ErrNodeLimit.
	SubsumePenalty int          `yaml:"subsume_penalty"` // Extra extraction cost of a subsumed node.
	Logger         *slog.Logger `yaml:"-"`               // Nil discards engine logs.
}

// DefaultConfig returns limits under which the built-in programs finish. The
// joint differentiate-and-simplify set does not saturate on products: it stops
// at MaxNodes and the cheapest term found so far is extracted.
func DefaultConfig() Config {
	return Config{
		MaxIterations:  64,
		MaxNodes:       50_000,
		SubsumePenalty: 1000,
	}
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
