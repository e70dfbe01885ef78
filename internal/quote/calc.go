// Package quote composes the layout, weight, strength, and pricing pieces
// into priced quote line items and handles post-save negotiation.
package quote

import (
	"github.com/kraftline/boxquote/internal/board"
	"github.com/kraftline/boxquote/internal/pricing"
)

// CalcInput is everything needed to derive one box/sheet configuration.
type CalcInput struct {
	Layout       board.LayoutInput
	LayoutConfig board.LayoutConfig
	Layers       []board.LayerSpec

	// FluteCombination and UseFluteHeights select how board thickness is
	// derived; an empty combination uses the ply's default letters.
	FluteCombination string
	UseFluteHeights  bool

	Strength board.StrengthConfig
}

// CalculationResult is the full derived-value bundle for one configuration at
// a point in time. It is transient: recomputed on every input change and
// frozen into a QuoteItem only when the caller adds the line to a quote.
type CalculationResult struct {
	Input CalcInput

	SheetLength           float64
	SheetWidth            float64
	AdditionalFlapApplied bool

	SheetWeight  float64
	LayerWeights []float64
	PaperCost    float64

	BS             float64
	ECT            float64
	BCT            float64
	BoardThickness float64
	BoxPerimeter   float64

	// LayerSpecs carries the layers with their resolved rates and
	// breakdowns, index-aligned with LayerWeights.
	LayerSpecs []board.LayerSpec

	// UnresolvedLayers lists layer indexes whose rate could not be resolved
	// from the price book or rate memory and that have no manual rate. The
	// caller must prompt for those before the paper cost is trustworthy.
	UnresolvedLayers []int
}

// Calculate runs the whole pipeline: sheet layout, per-layer rate resolution,
// weight aggregation, and strength prediction. It returns nil when the layout
// input is insufficient. The tables snapshot is read-only for the duration of
// the call, so identical inputs always produce identical results.
func Calculate(in CalcInput, tables pricing.Tables) *CalculationResult {
	layout := board.ResolveSheetLayout(in.Layout, in.LayoutConfig)
	if layout == nil {
		return nil
	}

	layers := copyLayers(in.Layers)
	var unresolved []int
	for i := range layers {
		resolveLayer(&layers[i], tables)
		if layers[i].Rate == 0 {
			unresolved = append(unresolved, i)
		}
	}

	agg := board.AggregateLayers(layout.SheetLength, layout.SheetWidth, layers)

	thickness := board.BoardThickness(in.Layout.Ply, in.FluteCombination, in.UseFluteHeights, in.LayoutConfig.PlyThicknessOverrides)
	perimeter := 2 * (layout.AdjustedLength + layout.AdjustedWidth)
	strength := board.PredictStrength(layers, thickness, perimeter, in.Strength)

	return &CalculationResult{
		Input:                 in,
		SheetLength:           layout.SheetLength,
		SheetWidth:            layout.SheetWidth,
		AdditionalFlapApplied: layout.AdditionalFlapApplied,
		SheetWeight:           agg.TotalWeight,
		LayerWeights:          agg.LayerWeights,
		PaperCost:             agg.PaperCost,
		BS:                    strength.BS,
		ECT:                   strength.ECT,
		BCT:                   strength.BCT,
		BoardThickness:        thickness,
		BoxPerimeter:          perimeter,
		LayerSpecs:            layers,
		UnresolvedLayers:      unresolved,
	}
}

// resolveLayer runs the rate fallback chain for one layer. An overridden
// layer still gets its calculated rate and breakdown stored so the override
// can be compared against the book later.
func resolveLayer(layer *board.LayerSpec, tables pricing.Tables) {
	res := pricing.ResolveLayerRate(layer.GSM, layer.BF, layer.Shade, layer.ManualRate, tables)
	if res.Breakdown != nil {
		layer.CalculatedRate = res.Rate
		layer.Breakdown = res.Breakdown
	}

	if layer.PriceOverride && layer.ManualRate > 0 {
		layer.Rate = layer.ManualRate
		return
	}
	if res.Resolved() {
		layer.Rate = res.Rate
		return
	}
	layer.Rate = 0
}

// copyLayers returns a deep copy of the layer stack, including breakdowns, so
// results and saved quote items never alias the caller's slice.
func copyLayers(layers []board.LayerSpec) []board.LayerSpec {
	out := make([]board.LayerSpec, len(layers))
	copy(out, layers)
	for i := range out {
		if out[i].Breakdown != nil {
			b := *out[i].Breakdown
			out[i].Breakdown = &b
		}
	}
	return out
}
