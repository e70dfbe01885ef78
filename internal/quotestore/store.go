// Package quotestore persists quote-line snapshots. Items are stored as
// opaque JSON so a saved quote keeps reading back exactly what was priced,
// no matter how the price book changes afterwards.
package quotestore

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kraftline/boxquote/internal/quote"
)

// ErrNotFound is returned when no quote item matches the requested id.
var ErrNotFound = errors.New("quote item not found")

// Store persists and lists saved quote items.
type Store struct {
	db *sql.DB
}

// New wraps an open database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// ListItem is one row of the saved-quote listing.
type ListItem struct {
	ID         string
	CreatedAt  string
	Title      string
	TotalValue float64
}

// Save assigns the item its identity (id and creation time) and inserts the
// frozen snapshot. It returns the stored copy; the caller's value is not
// mutated.
func (s *Store) Save(item quote.QuoteItem, title, notes string) (quote.QuoteItem, error) {
	item.ID = uuid.NewString()
	item.CreatedAt = time.Now().UTC()

	payload, err := json.Marshal(item)
	if err != nil {
		return quote.QuoteItem{}, fmt.Errorf("marshal quote item: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO quote_items (id, created_at, title, notes, item_json)
		VALUES (?, ?, ?, ?, ?)
	`, item.ID, item.CreatedAt.Format(time.RFC3339), title, notes, string(payload))
	if err != nil {
		return quote.QuoteItem{}, fmt.Errorf("insert quote item: %w", err)
	}

	return item, nil
}

// Get reads one saved snapshot back.
func (s *Store) Get(id string) (quote.QuoteItem, error) {
	var payload string
	err := s.db.QueryRow(`SELECT item_json FROM quote_items WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return quote.QuoteItem{}, ErrNotFound
	}
	if err != nil {
		return quote.QuoteItem{}, fmt.Errorf("query quote item: %w", err)
	}

	var item quote.QuoteItem
	if err := json.Unmarshal([]byte(payload), &item); err != nil {
		return quote.QuoteItem{}, fmt.Errorf("unmarshal quote item: %w", err)
	}
	return item, nil
}

// Update replaces a saved snapshot after a non-destructive edit (negotiation
// or add-on correction). The item keeps its id and creation time.
func (s *Store) Update(item quote.QuoteItem) error {
	if item.ID == "" {
		return fmt.Errorf("update quote item: missing id")
	}

	payload, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("marshal quote item: %w", err)
	}

	result, err := s.db.Exec(`UPDATE quote_items SET item_json = ? WHERE id = ?`, string(payload), item.ID)
	if err != nil {
		return fmt.Errorf("update quote item: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update quote item: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns saved quote items newest-first, optionally filtered by a
// title/notes substring.
func (s *Store) List(query string) ([]ListItem, error) {
	search := "%" + query + "%"
	rows, err := s.db.Query(`
		SELECT id, created_at, COALESCE(title, ''), item_json
		FROM quote_items
		WHERE (? = '' OR COALESCE(title, '') LIKE ? OR COALESCE(notes, '') LIKE ?)
		ORDER BY datetime(created_at) DESC, id DESC
	`, query, search, search)
	if err != nil {
		return nil, fmt.Errorf("query quote items: %w", err)
	}
	defer rows.Close()

	items := make([]ListItem, 0)
	for rows.Next() {
		var item ListItem
		var payload string
		if err := rows.Scan(&item.ID, &item.CreatedAt, &item.Title, &payload); err != nil {
			return nil, fmt.Errorf("scan quote item: %w", err)
		}
		item.TotalValue = extractTotalValue(payload)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quote items: %w", err)
	}

	return items, nil
}

// extractTotalValue pulls the stored total out of the snapshot. A corrupt
// payload lists as zero rather than breaking the whole listing.
func extractTotalValue(payload string) float64 {
	var item quote.QuoteItem
	if err := json.Unmarshal([]byte(payload), &item); err != nil {
		return 0
	}
	return item.TotalValue
}
