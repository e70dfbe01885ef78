package config

import (
	"log"
	"os"
	"strconv"
)

const (
	defaultDBPath = "./boxquote.db"

	// defaultMaxSheetLength is the corrugator length threshold in mm above
	// which the additional-flap policy kicks in.
	defaultMaxSheetLength = 2500.0
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	DBPath string

	// MaxSheetLength caps the cut-sheet length before the additional-flap
	// allowance applies; 0 disables the policy.
	MaxSheetLength float64
	// AdditionalFlapAllowance and FlatTrimAllowance override the engine's
	// built-in layout calibration values when set.
	AdditionalFlapAllowance float64
	FlatTrimAllowance       float64
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	// Best-effort: load local dev environment variables.
	// We don't fail if the file is missing; production should use real env injection.
	_ = loadDotEnv(".env")

	cfg := Config{
		DBPath:                  os.Getenv("DB_PATH"),
		MaxSheetLength:          envFloat("MAX_SHEET_LENGTH_MM", defaultMaxSheetLength),
		AdditionalFlapAllowance: envFloat("ADDITIONAL_FLAP_MM", 0),
		FlatTrimAllowance:       envFloat("FLAT_TRIM_MM", 0),
	}

	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}

	return cfg
}

// envFloat parses a float env var, keeping the fallback (and warning) on bad
// input so a typo in .env never stops the tool from starting.
func envFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("warning: %s=%q is not numeric, using %v", key, raw, fallback)
		return fallback
	}
	return value
}
