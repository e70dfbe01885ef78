package pricing

import (
	"strconv"
	"strings"
)

// RateMemory remembers the last manually entered rate per (BF, shade) pair.
// It is consulted only when the price book has no matching BF entry, so a
// manually priced specialty paper keeps its last known rate between quotes.
type RateMemory map[string]float64

// MemoryKey builds the canonical "bf|shade" key. Shades are lowercased so
// memory lookups match the case-insensitive shade table.
func MemoryKey(bf float64, shade string) string {
	return strconv.FormatFloat(bf, 'f', -1, 64) + "|" + strings.ToLower(strings.TrimSpace(shade))
}

// Lookup returns the remembered rate for the pair, if any.
func (m RateMemory) Lookup(bf float64, shade string) (float64, bool) {
	rate, ok := m[MemoryKey(bf, shade)]
	return rate, ok
}

// Remember stores a manually entered rate for the pair.
func (m RateMemory) Remember(bf float64, shade string, rate float64) {
	m[MemoryKey(bf, shade)] = rate
}
