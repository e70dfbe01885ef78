package pricing

// RateSource tags which step of the fallback chain produced a layer rate.
type RateSource string

const (
	SourcePriceBook  RateSource = "price_book"
	SourceRateMemory RateSource = "rate_memory"
	SourceManual     RateSource = "manual"
	SourceUnresolved RateSource = "unresolved"
)

// Resolution is the outcome of resolving one layer's paper rate.
// Breakdown is non-nil only when the price book produced the rate.
type Resolution struct {
	Rate      float64
	Source    RateSource
	Breakdown *Breakdown
}

// Resolved reports whether any strategy produced a usable rate.
func (r Resolution) Resolved() bool {
	return r.Source != SourceUnresolved
}

// rateStrategy is one step of the ordered fallback chain. Keeping the chain
// as an explicit list keeps the fallback order auditable and testable on its
// own, instead of burying it in nested conditionals.
type rateStrategy struct {
	source  RateSource
	resolve func(gsm, bf float64, shade string, manualRate float64, t Tables) (float64, *Breakdown, bool)
}

var rateStrategies = []rateStrategy{
	{
		source: SourcePriceBook,
		resolve: func(gsm, bf float64, shade string, _ float64, t Tables) (float64, *Breakdown, bool) {
			breakdown := ResolvePaperPrice(gsm, bf, shade, t)
			if breakdown == nil {
				return 0, nil, false
			}
			return breakdown.FinalRate(), breakdown, true
		},
	},
	{
		source: SourceRateMemory,
		resolve: func(_, bf float64, shade string, _ float64, t Tables) (float64, *Breakdown, bool) {
			rate, ok := t.Memory.Lookup(bf, shade)
			return rate, nil, ok
		},
	},
	{
		source: SourceManual,
		resolve: func(_, _ float64, _ string, manualRate float64, _ Tables) (float64, *Breakdown, bool) {
			if manualRate <= 0 {
				return 0, nil, false
			}
			return manualRate, nil, true
		},
	},
}

// ResolveLayerRate evaluates the fallback chain for one layer, short-circuit:
// price book first, then remembered manual rates, then the caller-supplied
// manual rate. An unresolved result means the caller must prompt for a rate;
// it must never be silently treated as zero cost.
func ResolveLayerRate(gsm, bf float64, shade string, manualRate float64, t Tables) Resolution {
	for _, s := range rateStrategies {
		if rate, breakdown, ok := s.resolve(gsm, bf, shade, manualRate, t); ok {
			return Resolution{Rate: rate, Source: s.source, Breakdown: breakdown}
		}
	}
	return Resolution{Source: SourceUnresolved}
}
