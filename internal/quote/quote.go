package quote

import (
	"time"

	"github.com/kraftline/boxquote/internal/board"
)

// AddOn is one manufacturing finishing cost, toggled per quote line.
type AddOn struct {
	Enabled bool    `json:"enabled"`
	Cost    float64 `json:"cost"`
}

func (a AddOn) amount() float64 {
	if !a.Enabled {
		return 0
	}
	return a.Cost
}

// AddOns groups the per-box finishing costs a converter quotes on top of the
// paper cost.
type AddOns struct {
	Printing   AddOn `json:"printing"`
	Lamination AddOn `json:"lamination"`
	Die        AddOn `json:"die"`
	Punching   AddOn `json:"punching"`
	Varnish    AddOn `json:"varnish"`
}

// Total sums the enabled add-on costs.
func (a AddOns) Total() float64 {
	return a.Printing.amount() + a.Lamination.amount() + a.Die.amount() +
		a.Punching.amount() + a.Varnish.amount()
}

// NegotiationMode selects how a saved line's price was negotiated.
type NegotiationMode string

const (
	NegotiationNone       NegotiationMode = "none"
	NegotiationPercentage NegotiationMode = "percentage"
	NegotiationFixed      NegotiationMode = "fixed"
)

// AssembleInput carries the commercial terms applied on top of a calculation.
type AssembleInput struct {
	AddOns              AddOns
	MarkupPercent       float64
	ConversionCostPerKg float64
	Quantity            float64
}

// QuoteItem is the durable, append-only snapshot of a priced line. Everything
// needed to audit or re-total the line later is baked in; once saved it is
// never re-derived from live price tables.
type QuoteItem struct {
	ID        string    `json:"id,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitzero"`

	Length          float64          `json:"length"`
	Width           float64          `json:"width"`
	Height          float64          `json:"height"`
	Ply             string           `json:"ply"`
	GlueFlap        float64          `json:"glueFlap"`
	DeckleAllowance float64          `json:"deckleAllowance"`
	Convention      board.Convention `json:"convention"`
	FlatSheet       bool             `json:"flatSheet"`

	SheetLength           float64           `json:"sheetLength"`
	SheetWidth            float64           `json:"sheetWidth"`
	AdditionalFlapApplied bool              `json:"additionalFlapApplied"`
	SheetWeight           float64           `json:"sheetWeight"`
	LayerWeights          []float64         `json:"layerWeights"`
	LayerSpecs            []board.LayerSpec `json:"layerSpecs"`

	BS             float64 `json:"bs"`
	ECT            float64 `json:"ect"`
	BCT            float64 `json:"bct"`
	BoardThickness float64 `json:"boardThickness"`
	BoxPerimeter   float64 `json:"boxPerimeter"`

	PaperCost           float64 `json:"paperCost"`
	ConversionCostPerKg float64 `json:"conversionCostPerKg"`
	AddOns              AddOns  `json:"addOns"`
	MarkupPercent       float64 `json:"markupPercent"`
	TotalCostPerBox     float64 `json:"totalCostPerBox"`
	Quantity            float64 `json:"quantity"`
	TotalValue          float64 `json:"totalValue"`

	NegotiationMode  NegotiationMode `json:"negotiationMode,omitempty"`
	NegotiationValue float64         `json:"negotiationValue,omitempty"`
	OriginalPrice    float64         `json:"originalPrice,omitempty"`
	NegotiatedPrice  float64         `json:"negotiatedPrice,omitempty"`
}

// AssembleQuoteItem freezes a calculation into a quote line. The layer specs
// are deep-copied so later edits to the transient result cannot leak into the
// saved snapshot. ID and CreatedAt are left empty: the quote store assigns
// them at save time, keeping assembly a pure function of its inputs.
func AssembleQuoteItem(res *CalculationResult, in AssembleInput) QuoteItem {
	item := QuoteItem{
		Length:          res.Input.Layout.Length,
		Width:           res.Input.Layout.Width,
		Height:          res.Input.Layout.Height,
		Ply:             res.Input.Layout.Ply,
		GlueFlap:        res.Input.Layout.GlueFlap,
		DeckleAllowance: res.Input.Layout.DeckleAllowance,
		Convention:      res.Input.Layout.Convention,
		FlatSheet:       res.Input.Layout.FlatSheet,

		SheetLength:           res.SheetLength,
		SheetWidth:            res.SheetWidth,
		AdditionalFlapApplied: res.AdditionalFlapApplied,
		SheetWeight:           res.SheetWeight,
		LayerWeights:          append([]float64(nil), res.LayerWeights...),
		LayerSpecs:            copyLayers(res.LayerSpecs),

		BS:             res.BS,
		ECT:            res.ECT,
		BCT:            res.BCT,
		BoardThickness: res.BoardThickness,
		BoxPerimeter:   res.BoxPerimeter,

		PaperCost:           res.PaperCost,
		ConversionCostPerKg: in.ConversionCostPerKg,
		AddOns:              in.AddOns,
		MarkupPercent:       in.MarkupPercent,
		Quantity:            in.Quantity,
		NegotiationMode:     NegotiationNone,
	}

	item.TotalCostPerBox = costPerBox(item.PaperCost, item.SheetWeight, in)
	item.TotalValue = item.TotalCostPerBox * item.Quantity
	return item
}

func costPerBox(paperCost, sheetWeight float64, in AssembleInput) float64 {
	base := paperCost + in.ConversionCostPerKg*sheetWeight + in.AddOns.Total()
	return base * (1 + in.MarkupPercent/100)
}

// Negotiate returns a copy of the item with the negotiation applied. The
// negotiated price is always computed from the original cost per box, never
// from a previously negotiated price, so repeated negotiations overwrite
// instead of compounding. Mode none clears the negotiation entirely.
func Negotiate(item QuoteItem, mode NegotiationMode, value float64) QuoteItem {
	out := cloneItem(item)

	switch mode {
	case NegotiationPercentage:
		out.NegotiationMode = mode
		out.NegotiationValue = value
		out.OriginalPrice = item.TotalCostPerBox
		out.NegotiatedPrice = item.TotalCostPerBox * (1 - value/100)
	case NegotiationFixed:
		out.NegotiationMode = mode
		out.NegotiationValue = value
		out.OriginalPrice = item.TotalCostPerBox
		out.NegotiatedPrice = value
	default:
		out.NegotiationMode = NegotiationNone
		out.NegotiationValue = 0
		out.OriginalPrice = 0
		out.NegotiatedPrice = 0
		out.TotalValue = out.TotalCostPerBox * out.Quantity
		return out
	}

	out.TotalValue = out.NegotiatedPrice * out.Quantity
	return out
}

// RecomputeAddOns returns a copy of a saved item with new finishing costs,
// markup, and conversion cost applied. Totals are rebuilt from the stored
// paper cost and sheet weight; prices are never re-resolved from live tables,
// which is how finishing-cost corrections preserve the paper-cost history.
// An active negotiation is re-applied relative to the new cost per box.
func RecomputeAddOns(item QuoteItem, addOns AddOns, markupPercent, conversionCostPerKg float64) QuoteItem {
	out := cloneItem(item)
	out.AddOns = addOns
	out.MarkupPercent = markupPercent
	out.ConversionCostPerKg = conversionCostPerKg
	out.TotalCostPerBox = costPerBox(out.PaperCost, out.SheetWeight, AssembleInput{
		AddOns:              addOns,
		MarkupPercent:       markupPercent,
		ConversionCostPerKg: conversionCostPerKg,
	})
	out.TotalValue = out.TotalCostPerBox * out.Quantity

	if out.NegotiationMode != NegotiationNone && out.NegotiationMode != "" {
		return Negotiate(out, out.NegotiationMode, out.NegotiationValue)
	}
	return out
}

func cloneItem(item QuoteItem) QuoteItem {
	out := item
	out.LayerWeights = append([]float64(nil), item.LayerWeights...)
	out.LayerSpecs = copyLayers(item.LayerSpecs)
	return out
}
