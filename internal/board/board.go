// Package board contains the structural side of the engine: cut-sheet layout,
// paper weight aggregation, and strength prediction for corrugated board.
package board

import (
	"log"

	"github.com/kraftline/boxquote/internal/pricing"
)

// LayerType distinguishes the role a paper layer plays within the board.
type LayerType string

const (
	Liner LayerType = "liner"
	Flute LayerType = "flute"
)

// LayerSpec describes one paper layer of a corrugated board together with its
// resolved pricing state. Once a layer is embedded in a saved quote item it is
// a frozen copy; later price-book edits never reach it.
type LayerSpec struct {
	LayerIndex    int       `json:"layerIndex"`
	LayerType     LayerType `json:"layerType"`
	GSM           float64   `json:"gsm"`
	BF            float64   `json:"bf"`
	FlutingFactor float64   `json:"flutingFactor"`
	RCTValue      float64   `json:"rctValue"`
	Shade         string    `json:"shade"`

	// Rate is the per-kg rate actually used for costing. It is either the
	// resolved calculated rate or, when PriceOverride is set, ManualRate.
	Rate           float64            `json:"rate"`
	PriceOverride  bool               `json:"priceOverride"`
	CalculatedRate float64            `json:"calculatedRate,omitempty"`
	ManualRate     float64            `json:"manualRate,omitempty"`
	Breakdown      *pricing.Breakdown `json:"priceBreakdown,omitempty"`
}

// DefaultPly is the documented fallback for unrecognized ply keys.
const DefaultPly = "3"

// plyLayerCounts lists the valid ply keys and their layer counts.
var plyLayerCounts = map[string]int{
	"1": 1,
	"3": 3,
	"5": 5,
	"7": 7,
	"9": 9,
}

// defaultPlyThickness is the per-ply board caliper lookup in mm. Mono board
// has no flute and therefore no caliper. Callers may override individual
// entries through configuration.
var defaultPlyThickness = map[string]float64{
	"1": 0,
	"3": 3,
	"5": 6,
	"7": 9,
	"9": 12,
}

// DefaultFluteCombination maps a ply key to its usual flute letters, one per
// corrugated layer of the board.
var DefaultFluteCombination = map[string]string{
	"1": "",
	"3": "B",
	"5": "BC",
	"7": "BCB",
	"9": "BCBC",
}

// fluteHeights is the flute profile height in mm per flute letter.
var fluteHeights = map[rune]float64{
	'A': 4.8,
	'B': 2.4,
	'C': 3.6,
	'E': 1.2,
	'F': 0.6,
}

// FluteTakeUpFactors lists the standard take-up (fluting) factor per flute
// letter: how much paper the corrugation consumes per linear meter of board.
var FluteTakeUpFactors = map[rune]float64{
	'A': 1.54,
	'B': 1.36,
	'C': 1.45,
	'E': 1.27,
	'F': 1.23,
}

// NormalizePly validates a ply key, falling back to DefaultPly for
// unrecognized values. The fallback is logged but not an error: the engine
// runs on every keystroke and must keep producing output.
func NormalizePly(ply string) string {
	if _, ok := plyLayerCounts[ply]; ok {
		return ply
	}
	log.Printf("warning: unknown ply %q, using ply %s", ply, DefaultPly)
	return DefaultPly
}

// LayerCount returns the number of paper layers for a ply key.
func LayerCount(ply string) int {
	return plyLayerCounts[NormalizePly(ply)]
}

// PlyThickness returns the per-ply board caliper in mm, honoring overrides.
func PlyThickness(ply string, overrides map[string]float64) float64 {
	ply = NormalizePly(ply)
	if overrides != nil {
		if t, ok := overrides[ply]; ok {
			return t
		}
	}
	return defaultPlyThickness[ply]
}

// BoardThickness returns the board caliper in mm. When useFluteHeights is
// set it sums the configured height of each flute letter in the combination;
// otherwise it uses the per-ply lookup. Mono board is always 0.
func BoardThickness(ply, combination string, useFluteHeights bool, overrides map[string]float64) float64 {
	ply = NormalizePly(ply)
	if ply == "1" {
		return 0
	}
	if !useFluteHeights {
		return PlyThickness(ply, overrides)
	}

	if combination == "" {
		combination = DefaultFluteCombination[ply]
	}
	total := 0.0
	for _, letter := range combination {
		total += fluteHeights[letter]
	}
	return total
}

// DefaultLayers generates the conventional layer stack for a ply: liners on
// even positions, flutes on odd. Index parity is only used here, for
// default generation; LayerType stays authoritative everywhere else.
func DefaultLayers(ply string, linerGSM, linerBF, fluteGSM, fluteBF, flutingFactor float64) []LayerSpec {
	count := LayerCount(ply)
	layers := make([]LayerSpec, count)
	for i := range layers {
		layers[i] = LayerSpec{
			LayerIndex: i,
			LayerType:  Liner,
			GSM:        linerGSM,
			BF:         linerBF,
		}
		if i%2 == 1 {
			layers[i].LayerType = Flute
			layers[i].GSM = fluteGSM
			layers[i].BF = fluteBF
			layers[i].FlutingFactor = flutingFactor
		}
	}
	return layers
}
