package quote

import "testing"

func testItem(t *testing.T) QuoteItem {
	t.Helper()

	result := Calculate(testInput(), testTables())
	if result == nil {
		t.Fatalf("expected result, got nil")
	}
	return AssembleQuoteItem(result, AssembleInput{
		AddOns: AddOns{
			Printing: AddOn{Enabled: true, Cost: 3},
			Die:      AddOn{Enabled: false, Cost: 2},
		},
		MarkupPercent:       10,
		ConversionCostPerKg: 5,
		Quantity:            100,
	})
}

func TestAssembleQuoteItem_Totals(t *testing.T) {
	result := Calculate(testInput(), testTables())
	item := testItem(t)

	base := result.PaperCost + 5*result.SheetWeight + 3
	nearlyEqual(t, "totalCostPerBox", item.TotalCostPerBox, base*1.1)
	nearlyEqual(t, "totalValue", item.TotalValue, item.TotalCostPerBox*100)
	if item.NegotiationMode != NegotiationNone {
		t.Fatalf("fresh item has negotiation mode %q", item.NegotiationMode)
	}
	if item.ID != "" || !item.CreatedAt.IsZero() {
		t.Fatalf("assembly must not assign identity, got id=%q createdAt=%v", item.ID, item.CreatedAt)
	}
}

func TestAssembleQuoteItem_SnapshotSurvivesTableMutation(t *testing.T) {
	tables := testTables()
	result := Calculate(testInput(), tables)
	item := AssembleQuoteItem(result, AssembleInput{Quantity: 1})

	paperCost := item.PaperCost
	layerRate := item.LayerSpecs[0].Rate
	basePrice := item.LayerSpecs[0].Breakdown.BFBasePrice

	// A price-book change after save must not reach the snapshot.
	tables.BFPrices[1].PricePerKg = 999
	tables.Rule.MarketAdjustment = 50

	if item.PaperCost != paperCost || item.LayerSpecs[0].Rate != layerRate {
		t.Fatalf("snapshot changed after table mutation")
	}
	if item.LayerSpecs[0].Breakdown.BFBasePrice != basePrice {
		t.Fatalf("snapshot breakdown changed after table mutation")
	}
}

func TestAssembleQuoteItem_DoesNotAliasResultLayers(t *testing.T) {
	result := Calculate(testInput(), testTables())
	item := AssembleQuoteItem(result, AssembleInput{Quantity: 1})

	result.LayerSpecs[0].Rate = 12345
	result.LayerSpecs[0].Breakdown.BFBasePrice = 12345

	if item.LayerSpecs[0].Rate == 12345 || item.LayerSpecs[0].Breakdown.BFBasePrice == 12345 {
		t.Fatalf("quote item aliases the calculation result")
	}
}

func TestNegotiate_PercentageFromOriginal(t *testing.T) {
	item := testItem(t)

	first := Negotiate(item, NegotiationPercentage, 10)
	nearlyEqual(t, "originalPrice", first.OriginalPrice, item.TotalCostPerBox)
	nearlyEqual(t, "negotiatedPrice", first.NegotiatedPrice, item.TotalCostPerBox*0.9)
	nearlyEqual(t, "totalValue", first.TotalValue, first.NegotiatedPrice*100)

	// A second negotiation overwrites the first; it never compounds on the
	// already-discounted price.
	second := Negotiate(first, NegotiationPercentage, 20)
	nearlyEqual(t, "second negotiatedPrice", second.NegotiatedPrice, item.TotalCostPerBox*0.8)
}

func TestNegotiate_FixedMode(t *testing.T) {
	item := testItem(t)

	negotiated := Negotiate(item, NegotiationFixed, 42)
	nearlyEqual(t, "negotiatedPrice", negotiated.NegotiatedPrice, 42)
	nearlyEqual(t, "totalValue", negotiated.TotalValue, 4200)
	nearlyEqual(t, "originalPrice", negotiated.OriginalPrice, item.TotalCostPerBox)
}

func TestNegotiate_NoneClearsAndReverts(t *testing.T) {
	item := testItem(t)

	negotiated := Negotiate(item, NegotiationPercentage, 25)
	cleared := Negotiate(negotiated, NegotiationNone, 0)

	if cleared.NegotiationMode != NegotiationNone || cleared.NegotiationValue != 0 {
		t.Fatalf("negotiation fields not cleared: %+v", cleared)
	}
	if cleared.OriginalPrice != 0 || cleared.NegotiatedPrice != 0 {
		t.Fatalf("price fields not cleared: %+v", cleared)
	}
	nearlyEqual(t, "totalValue", cleared.TotalValue, item.TotalCostPerBox*100)
}

func TestNegotiate_ReturnsACopy(t *testing.T) {
	item := testItem(t)
	negotiated := Negotiate(item, NegotiationPercentage, 10)

	negotiated.LayerSpecs[0].Rate = 777
	if item.LayerSpecs[0].Rate == 777 {
		t.Fatalf("negotiation mutated the source item")
	}
	if item.NegotiationMode != NegotiationNone {
		t.Fatalf("negotiation mutated the source item's mode")
	}
}

func TestRecomputeAddOns_UsesStoredPaperCost(t *testing.T) {
	item := testItem(t)

	updated := RecomputeAddOns(item, AddOns{
		Printing: AddOn{Enabled: true, Cost: 6},
		Varnish:  AddOn{Enabled: true, Cost: 1},
	}, 10, 5)

	base := item.PaperCost + 5*item.SheetWeight + 7
	nearlyEqual(t, "totalCostPerBox", updated.TotalCostPerBox, base*1.1)
	nearlyEqual(t, "totalValue", updated.TotalValue, updated.TotalCostPerBox*100)
	nearlyEqual(t, "paperCost untouched", updated.PaperCost, item.PaperCost)
}

func TestRecomputeAddOns_ReappliesNegotiation(t *testing.T) {
	item := Negotiate(testItem(t), NegotiationPercentage, 10)

	updated := RecomputeAddOns(item, AddOns{}, 0, 0)

	nearlyEqual(t, "totalCostPerBox", updated.TotalCostPerBox, item.PaperCost)
	nearlyEqual(t, "negotiatedPrice", updated.NegotiatedPrice, updated.TotalCostPerBox*0.9)
	nearlyEqual(t, "totalValue", updated.TotalValue, updated.NegotiatedPrice*100)
}

func TestAddOns_TotalSumsEnabledOnly(t *testing.T) {
	addOns := AddOns{
		Printing:   AddOn{Enabled: true, Cost: 3},
		Lamination: AddOn{Enabled: false, Cost: 10},
		Die:        AddOn{Enabled: true, Cost: 2},
		Punching:   AddOn{Enabled: true, Cost: 0.5},
		Varnish:    AddOn{Enabled: false, Cost: 4},
	}
	nearlyEqual(t, "total", addOns.Total(), 5.5)
}
