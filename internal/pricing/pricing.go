package pricing

import "strings"

// BFPrice maps a bursting-factor value to a base paper rate per kg.
type BFPrice struct {
	BF         float64
	PricePerKg float64
}

// ShadePremium is an additive premium for a paper shade.
// Shade names are matched case-insensitively.
type ShadePremium struct {
	Shade   string
	Premium float64
}

// Rule holds the global pricing thresholds: the two-sided GSM band and the
// flat market adjustment applied to every layer.
type Rule struct {
	LowGSMLimit       float64
	HighGSMLimit      float64
	LowGSMAdjustment  float64
	HighGSMAdjustment float64
	MarketAdjustment  float64
}

// Breakdown contains the additive components of a resolved paper rate.
// It is stored alongside saved quotes so a historical rate can be audited
// component-by-component after the price book changes.
type Breakdown struct {
	BFBasePrice      float64 `json:"bfBasePrice"`
	GSMAdjustment    float64 `json:"gsmAdjustment"`
	ShadePremium     float64 `json:"shadePremium"`
	MarketAdjustment float64 `json:"marketAdjustment"`
}

// FinalRate returns the sum of all breakdown components.
func (b Breakdown) FinalRate() float64 {
	return b.BFBasePrice + b.GSMAdjustment + b.ShadePremium + b.MarketAdjustment
}

// Tables is a read-only price-book snapshot supplied by the caller for the
// duration of one calculation. The engine never reaches for global state, so
// two calls with the same Tables value always produce the same result.
type Tables struct {
	BFPrices      []BFPrice
	ShadePremiums []ShadePremium
	Rule          Rule
	Memory        RateMemory
}

// ResolvePaperPrice resolves a per-kg paper rate for one layer from the price
// book. It returns nil when the BF value has no exact match; the caller must
// then fall back to a remembered or manually entered rate.
func ResolvePaperPrice(gsm, bf float64, shade string, t Tables) *Breakdown {
	base, ok := lookupBFPrice(bf, t.BFPrices)
	if !ok {
		return nil
	}

	return &Breakdown{
		BFBasePrice:      base,
		GSMAdjustment:    gsmAdjustment(gsm, t.Rule),
		ShadePremium:     shadePremium(shade, t.ShadePremiums),
		MarketAdjustment: t.Rule.MarketAdjustment,
	}
}

func lookupBFPrice(bf float64, prices []BFPrice) (float64, bool) {
	for _, p := range prices {
		if p.BF == bf {
			return p.PricePerKg, true
		}
	}
	return 0, false
}

// gsmAdjustment applies the two-sided GSM band. Mid-range grammages get no
// adjustment; only the band edges move the rate.
func gsmAdjustment(gsm float64, rule Rule) float64 {
	switch {
	case rule.LowGSMLimit > 0 && gsm <= rule.LowGSMLimit:
		return rule.LowGSMAdjustment
	case rule.HighGSMLimit > 0 && gsm >= rule.HighGSMLimit:
		return rule.HighGSMAdjustment
	default:
		return 0
	}
}

func shadePremium(shade string, premiums []ShadePremium) float64 {
	for _, p := range premiums {
		if strings.EqualFold(p.Shade, shade) {
			return p.Premium
		}
	}
	return 0
}
