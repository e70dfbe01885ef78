// Package pricebook is the read-only configuration store the engine's
// callers load price tables from. A Load returns a point-in-time snapshot;
// the engine itself never touches the database.
package pricebook

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/kraftline/boxquote/internal/pricing"
)

// Store reads the price book and persists remembered manual rates.
type Store struct {
	db *sql.DB
}

// New wraps an open database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Load reads the BF price ladder, shade premiums, the pricing-rule singleton,
// and remembered manual rates into an in-memory snapshot. Later edits to the
// tables do not affect snapshots already handed out.
func (s *Store) Load() (pricing.Tables, error) {
	tables := pricing.Tables{Memory: pricing.RateMemory{}}

	rows, err := s.db.Query(`SELECT bf, price_per_kg FROM bf_prices ORDER BY bf`)
	if err != nil {
		return pricing.Tables{}, fmt.Errorf("query bf prices: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p pricing.BFPrice
		if err := rows.Scan(&p.BF, &p.PricePerKg); err != nil {
			return pricing.Tables{}, fmt.Errorf("scan bf price: %w", err)
		}
		tables.BFPrices = append(tables.BFPrices, p)
	}
	if err := rows.Err(); err != nil {
		return pricing.Tables{}, fmt.Errorf("iterate bf prices: %w", err)
	}

	if tables.ShadePremiums, err = s.loadShadePremiums(); err != nil {
		return pricing.Tables{}, err
	}
	if tables.Rule, err = s.loadRule(); err != nil {
		return pricing.Tables{}, err
	}
	if err := s.loadRateMemory(tables.Memory); err != nil {
		return pricing.Tables{}, err
	}

	return tables, nil
}

func (s *Store) loadShadePremiums() ([]pricing.ShadePremium, error) {
	rows, err := s.db.Query(`SELECT shade, premium FROM shade_premiums ORDER BY shade`)
	if err != nil {
		return nil, fmt.Errorf("query shade premiums: %w", err)
	}
	defer rows.Close()

	var premiums []pricing.ShadePremium
	for rows.Next() {
		var p pricing.ShadePremium
		if err := rows.Scan(&p.Shade, &p.Premium); err != nil {
			return nil, fmt.Errorf("scan shade premium: %w", err)
		}
		premiums = append(premiums, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shade premiums: %w", err)
	}
	return premiums, nil
}

// loadRule reads the singleton; a missing row is an empty rule, not an
// error, so a fresh database still calculates.
func (s *Store) loadRule() (pricing.Rule, error) {
	var r pricing.Rule
	err := s.db.QueryRow(`
		SELECT low_gsm_limit, high_gsm_limit, low_gsm_adjustment, high_gsm_adjustment, market_adjustment
		FROM pricing_rules
		WHERE id = 1
	`).Scan(&r.LowGSMLimit, &r.HighGSMLimit, &r.LowGSMAdjustment, &r.HighGSMAdjustment, &r.MarketAdjustment)
	if errors.Is(err, sql.ErrNoRows) {
		return pricing.Rule{}, nil
	}
	if err != nil {
		return pricing.Rule{}, fmt.Errorf("query pricing rule: %w", err)
	}
	return r, nil
}

func (s *Store) loadRateMemory(memory pricing.RateMemory) error {
	rows, err := s.db.Query(`SELECT bf, shade, rate FROM rate_memory`)
	if err != nil {
		return fmt.Errorf("query rate memory: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var bf, rate float64
		var shade string
		if err := rows.Scan(&bf, &shade, &rate); err != nil {
			return fmt.Errorf("scan rate memory: %w", err)
		}
		memory.Remember(bf, shade, rate)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate rate memory: %w", err)
	}
	return nil
}

// RememberRate persists a manually entered rate for a (BF, shade) pair so
// future layers with the same pair default to it when the price book misses.
func (s *Store) RememberRate(bf float64, shade string, rate float64) error {
	_, err := s.db.Exec(`
		INSERT INTO rate_memory (bf, shade, rate)
		VALUES (?, ?, ?)
		ON CONFLICT (bf, shade) DO UPDATE SET
			rate = excluded.rate,
			updated_at = CURRENT_TIMESTAMP
	`, bf, strings.ToLower(strings.TrimSpace(shade)), rate)
	if err != nil {
		return fmt.Errorf("upsert rate memory: %w", err)
	}
	return nil
}
