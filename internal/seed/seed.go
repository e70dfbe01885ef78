// Package seed populates a fresh price book with a usable kraft-paper rate
// ladder so the tool quotes sensibly before the admin tunes anything.
package seed

import (
	"database/sql"
	"fmt"
)

// defaultBFPrices is the starting BF -> rate-per-kg ladder for common kraft
// grades. Values are a starting point for the admin to tune, not market data.
var defaultBFPrices = []struct {
	BF         float64
	PricePerKg float64
}{
	{12, 27},
	{14, 28},
	{16, 29.5},
	{18, 31},
	{20, 33},
	{22, 35},
	{25, 38},
	{28, 41},
	{30, 44},
	{35, 50},
}

// defaultShadePremiums covers the shades customers most often ask for.
var defaultShadePremiums = []struct {
	Shade   string
	Premium float64
}{
	{"golden", 1.5},
	{"white", 2.5},
	{"natural", 0},
}

// Default pricing-rule singleton: light papers carry a small per-kg premium,
// heavy papers a smaller one, no market adjustment until the admin sets it.
const (
	defaultLowGSMLimit       = 120.0
	defaultHighGSMLimit      = 250.0
	defaultLowGSMAdjustment  = 1.5
	defaultHighGSMAdjustment = 1.0
	defaultMarketAdjustment  = 0.0
)

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

// Run executes the startup seed in an idempotent way: existing rows are left
// untouched so reseeding never clobbers admin edits.
func Run(db *sql.DB) (Stats, error) {
	tx, err := db.Begin()
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	if err := seedBFPrices(tx, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	if err := seedShadePremiums(tx, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	if err := ensurePricingRule(tx, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func seedBFPrices(tx *sql.Tx, stats *Stats) error {
	for _, p := range defaultBFPrices {
		var exists bool
		if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM bf_prices WHERE bf = ? LIMIT 1)`, p.BF).Scan(&exists); err != nil {
			return fmt.Errorf("check bf price existence: %w", err)
		}
		if exists {
			continue
		}

		if _, err := tx.Exec(`
			INSERT INTO bf_prices (bf, price_per_kg)
			VALUES (?, ?)
		`, p.BF, p.PricePerKg); err != nil {
			return fmt.Errorf("insert bf price: %w", err)
		}
		stats.Inserts++
	}
	return nil
}

func seedShadePremiums(tx *sql.Tx, stats *Stats) error {
	for _, p := range defaultShadePremiums {
		var exists bool
		if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM shade_premiums WHERE shade = ? LIMIT 1)`, p.Shade).Scan(&exists); err != nil {
			return fmt.Errorf("check shade premium existence: %w", err)
		}
		if exists {
			continue
		}

		if _, err := tx.Exec(`
			INSERT INTO shade_premiums (shade, premium)
			VALUES (?, ?)
		`, p.Shade, p.Premium); err != nil {
			return fmt.Errorf("insert shade premium: %w", err)
		}
		stats.Inserts++
	}
	return nil
}

func ensurePricingRule(tx *sql.Tx, stats *Stats) error {
	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM pricing_rules WHERE id = 1)`).Scan(&exists); err != nil {
		return fmt.Errorf("check pricing rule existence: %w", err)
	}
	if exists {
		return nil
	}

	if _, err := tx.Exec(`
		INSERT INTO pricing_rules (
			id,
			low_gsm_limit,
			high_gsm_limit,
			low_gsm_adjustment,
			high_gsm_adjustment,
			market_adjustment
		)
		VALUES (1, ?, ?, ?, ?, ?)
	`, defaultLowGSMLimit, defaultHighGSMLimit, defaultLowGSMAdjustment, defaultHighGSMAdjustment, defaultMarketAdjustment); err != nil {
		return fmt.Errorf("insert pricing rule singleton: %w", err)
	}
	stats.Inserts++
	return nil
}
