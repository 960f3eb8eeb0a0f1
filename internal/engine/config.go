package engine

import (
	"os"
	"strconv"
)

// The trust threshold decides when a knowledge-base match is good enough
// to skip AI entirely. It only moves within a narrow band: below 0.60
// weak matches suppress better AI answers, above 0.70 the knowledge base
// barely fires.
const (
	defaultKBThreshold = 0.65
	minKBThreshold     = 0.60
	maxKBThreshold     = 0.70
)

// Config holds engine tuning.
type Config struct {
	KBThreshold float64
}

// DefaultConfig returns the standard engine settings.
func DefaultConfig() Config {
	return Config{KBThreshold: defaultKBThreshold}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset or unparseable values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("ERRDOCTOR_KB_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.KBThreshold = clampThreshold(f)
		}
	}
	return cfg
}

func clampThreshold(f float64) float64 {
	if f < minKBThreshold {
		return minKBThreshold
	}
	if f > maxKBThreshold {
		return maxKBThreshold
	}
	return f
}
