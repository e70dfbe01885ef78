package seed

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/kraftline/boxquote/internal/db"
	"github.com/kraftline/boxquote/internal/migrations"
)

func TestRunIsIdempotent(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "seed-test.db")
	database, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	defer database.Close()

	if err := migrations.Up(database, "../../migrations"); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	wantInserts := len(defaultBFPrices) + len(defaultShadePremiums) + 1

	for i := 0; i < 10; i++ {
		stats, err := Run(database)
		if err != nil {
			t.Fatalf("run seed (iteration=%d): %v", i, err)
		}
		if i == 0 {
			if stats.Inserts != wantInserts {
				t.Fatalf("expected %d inserts in first run, got %d", wantInserts, stats.Inserts)
			}
			continue
		}
		if stats.Inserts != 0 {
			t.Fatalf("expected 0 inserts in iteration %d, got %d", i, stats.Inserts)
		}
	}

	assertCount(t, database, `SELECT COUNT(*) FROM bf_prices`, len(defaultBFPrices))
	assertCount(t, database, `SELECT COUNT(*) FROM shade_premiums`, len(defaultShadePremiums))
	assertCount(t, database, `SELECT COUNT(*) FROM pricing_rules WHERE id = 1`, 1)

	var rate float64
	if err := database.QueryRow(`SELECT price_per_kg FROM bf_prices WHERE bf = 18`).Scan(&rate); err != nil {
		t.Fatalf("query bf 18 price: %v", err)
	}
	if rate != 31 {
		t.Fatalf("expected bf 18 price 31, got %v", rate)
	}
}

func TestRunDoesNotClobberAdminEdits(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "seed-edit-test.db")
	database, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	defer database.Close()

	if err := migrations.Up(database, "../../migrations"); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	if _, err := Run(database); err != nil {
		t.Fatalf("first seed run: %v", err)
	}

	if _, err := database.Exec(`UPDATE bf_prices SET price_per_kg = 99 WHERE bf = 18`); err != nil {
		t.Fatalf("update bf price: %v", err)
	}

	if _, err := Run(database); err != nil {
		t.Fatalf("second seed run: %v", err)
	}

	var rate float64
	if err := database.QueryRow(`SELECT price_per_kg FROM bf_prices WHERE bf = 18`).Scan(&rate); err != nil {
		t.Fatalf("query bf 18 price: %v", err)
	}
	if rate != 99 {
		t.Fatalf("seed clobbered the admin edit: got %v, want 99", rate)
	}
}

func assertCount(t *testing.T, database *sql.DB, query string, expected int) {
	t.Helper()

	var count int
	if err := database.QueryRow(query).Scan(&count); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != expected {
		t.Fatalf("expected count %d, got %d", expected, count)
	}
}
