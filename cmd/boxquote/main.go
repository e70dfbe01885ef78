package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/kraftline/boxquote/internal/board"
	"github.com/kraftline/boxquote/internal/config"
	"github.com/kraftline/boxquote/internal/db"
	"github.com/kraftline/boxquote/internal/migrations"
	"github.com/kraftline/boxquote/internal/pricebook"
	"github.com/kraftline/boxquote/internal/quote"
	"github.com/kraftline/boxquote/internal/quotestore"
	"github.com/kraftline/boxquote/internal/seed"
	"github.com/kraftline/boxquote/internal/units"
)

type flags struct {
	length float64
	width  float64
	height float64
	inches bool

	ply      string
	glueFlap float64
	deckle   float64
	od       bool
	flat     bool

	linerGSM      float64
	linerBF       float64
	linerRCT      float64
	fluteGSM      float64
	fluteBF       float64
	fluteRCT      float64
	flutingFactor float64
	shade         string

	fluteCombo   string
	fluteHeights bool

	conversion float64
	markup     float64
	printing   float64
	lamination float64
	die        float64
	punching   float64
	varnish    float64
	quantity   float64

	save  bool
	title string
	notes string

	list  bool
	query string

	negotiateID string
	mode        string
	value       float64

	rememberBF   float64
	rememberRate float64
}

func parseFlags() flags {
	var f flags

	flag.Float64Var(&f.length, "length", 0, "box/sheet length in mm")
	flag.Float64Var(&f.width, "width", 0, "box/sheet width in mm")
	flag.Float64Var(&f.height, "height", 0, "box height in mm (unused with -flat)")
	flag.BoolVar(&f.inches, "inches", false, "dimensions are given in inches")

	flag.StringVar(&f.ply, "ply", "3", "ply count: 1, 3, 5, 7 or 9")
	flag.Float64Var(&f.glueFlap, "glue-flap", 35, "glue flap allowance in mm")
	flag.Float64Var(&f.deckle, "deckle", 25, "deckle allowance in mm")
	flag.BoolVar(&f.od, "od", false, "dimensions are outside dimensions")
	flag.BoolVar(&f.flat, "flat", false, "quote a flat sheet instead of an RSC box")

	flag.Float64Var(&f.linerGSM, "liner-gsm", 180, "liner grammage")
	flag.Float64Var(&f.linerBF, "liner-bf", 18, "liner bursting factor")
	flag.Float64Var(&f.linerRCT, "liner-rct", 0, "liner ring crush value")
	flag.Float64Var(&f.fluteGSM, "flute-gsm", 120, "flute grammage")
	flag.Float64Var(&f.fluteBF, "flute-bf", 16, "flute bursting factor")
	flag.Float64Var(&f.fluteRCT, "flute-rct", 0, "flute ring crush value")
	flag.Float64Var(&f.flutingFactor, "fluting-factor", 1.45, "flute take-up factor")
	flag.StringVar(&f.shade, "shade", "natural", "paper shade")

	flag.StringVar(&f.fluteCombo, "flute-combo", "", "flute letters for board thickness, e.g. BC")
	flag.BoolVar(&f.fluteHeights, "flute-heights", false, "derive board thickness from flute heights instead of the per-ply lookup")

	flag.Float64Var(&f.conversion, "conversion", 0, "conversion cost per kg")
	flag.Float64Var(&f.markup, "markup", 0, "markup percent")
	flag.Float64Var(&f.printing, "printing", 0, "printing cost per box")
	flag.Float64Var(&f.lamination, "lamination", 0, "lamination cost per box")
	flag.Float64Var(&f.die, "die", 0, "die cost per box")
	flag.Float64Var(&f.punching, "punching", 0, "punching cost per box")
	flag.Float64Var(&f.varnish, "varnish", 0, "varnish cost per box")
	flag.Float64Var(&f.quantity, "quantity", 1, "number of boxes")

	flag.BoolVar(&f.save, "save", false, "save the quote line")
	flag.StringVar(&f.title, "title", "", "title for the saved quote line")
	flag.StringVar(&f.notes, "notes", "", "notes for the saved quote line")

	flag.BoolVar(&f.list, "list", false, "list saved quote lines")
	flag.StringVar(&f.query, "q", "", "filter saved quote lines by title or notes")

	flag.StringVar(&f.negotiateID, "negotiate", "", "id of a saved quote line to negotiate")
	flag.StringVar(&f.mode, "mode", "percentage", "negotiation mode: none, percentage or fixed")
	flag.Float64Var(&f.value, "value", 0, "negotiation value (percent or fixed price)")

	flag.Float64Var(&f.rememberBF, "remember-bf", 0, "BF value to remember a manual rate for")
	flag.Float64Var(&f.rememberRate, "remember-rate", 0, "manual per-kg rate to remember for -remember-bf and -shade")

	flag.Parse()
	return f
}

func main() {
	f := parseFlags()
	cfg := config.Load()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	if err := migrations.Up(database, "migrations"); err != nil {
		log.Fatalf("failed to run database migrations: %v", err)
	}
	if _, err := seed.Run(database); err != nil {
		log.Fatalf("failed to seed price book: %v", err)
	}

	book := pricebook.New(database)
	quotes := quotestore.New(database)

	switch {
	case f.list:
		err = runList(quotes, f.query)
	case f.negotiateID != "":
		err = runNegotiate(quotes, f.negotiateID, quote.NegotiationMode(f.mode), f.value)
	case f.rememberBF > 0 && f.rememberRate > 0:
		err = book.RememberRate(f.rememberBF, f.shade, f.rememberRate)
	default:
		err = runQuote(book, quotes, cfg, f)
	}
	if err != nil {
		log.Fatalf("%v", err)
	}
}

func runQuote(book *pricebook.Store, quotes *quotestore.Store, cfg config.Config, f flags) error {
	length, width, height := f.length, f.width, f.height
	if f.inches {
		length = units.InchToMm(length)
		width = units.InchToMm(width)
		height = units.InchToMm(height)
	}

	convention := board.InsideDimension
	if f.od {
		convention = board.OutsideDimension
	}

	layers := board.DefaultLayers(f.ply, f.linerGSM, f.linerBF, f.fluteGSM, f.fluteBF, f.flutingFactor)
	for i := range layers {
		layers[i].Shade = f.shade
		if layers[i].LayerType == board.Flute {
			layers[i].RCTValue = f.fluteRCT
		} else {
			layers[i].RCTValue = f.linerRCT
		}
	}

	in := quote.CalcInput{
		Layout: board.LayoutInput{
			Length:          length,
			Width:           width,
			Height:          height,
			Ply:             f.ply,
			GlueFlap:        f.glueFlap,
			DeckleAllowance: f.deckle,
			Convention:      convention,
			FlatSheet:       f.flat,
		},
		LayoutConfig: board.LayoutConfig{
			MaxSheetLength:          cfg.MaxSheetLength,
			AdditionalFlapAllowance: cfg.AdditionalFlapAllowance,
			FlatTrimAllowance:       cfg.FlatTrimAllowance,
		},
		Layers:           layers,
		FluteCombination: f.fluteCombo,
		UseFluteHeights:  f.fluteHeights,
	}

	tables, err := book.Load()
	if err != nil {
		return fmt.Errorf("load price book: %w", err)
	}

	result := quote.Calculate(in, tables)
	if result == nil {
		return fmt.Errorf("insufficient input: provide -length, -width%s", rscHeightHint(f.flat))
	}

	item := quote.AssembleQuoteItem(result, quote.AssembleInput{
		AddOns: quote.AddOns{
			Printing:   addOn(f.printing),
			Lamination: addOn(f.lamination),
			Die:        addOn(f.die),
			Punching:   addOn(f.punching),
			Varnish:    addOn(f.varnish),
		},
		MarkupPercent:       f.markup,
		ConversionCostPerKg: f.conversion,
		Quantity:            f.quantity,
	})

	printResult(result, item)

	if f.save {
		saved, err := quotes.Save(item, f.title, f.notes)
		if err != nil {
			return fmt.Errorf("save quote line: %w", err)
		}
		fmt.Printf("\nSaved as %s\n", saved.ID)
	}
	return nil
}

func rscHeightHint(flat bool) string {
	if flat {
		return ""
	}
	return " and -height"
}

func addOn(cost float64) quote.AddOn {
	return quote.AddOn{Enabled: cost > 0, Cost: cost}
}

func printResult(result *quote.CalculationResult, item quote.QuoteItem) {
	fmt.Printf("Sheet: %.1f x %.1f mm", result.SheetLength, result.SheetWidth)
	if result.AdditionalFlapApplied {
		fmt.Printf(" (additional flap applied)")
	}
	fmt.Println()

	fmt.Println("Layers:")
	for i, layer := range result.LayerSpecs {
		fmt.Printf("  %d. %-5s GSM %-5.0f BF %-4.0f rate %.2f/kg  weight %.4f kg",
			i+1, layer.LayerType, layer.GSM, layer.BF, layer.Rate, result.LayerWeights[i])
		if layer.Breakdown != nil {
			b := layer.Breakdown
			fmt.Printf("  (base %.2f, gsm %+.2f, shade %+.2f, market %+.2f)",
				b.BFBasePrice, b.GSMAdjustment, b.ShadePremium, b.MarketAdjustment)
		}
		fmt.Println()
	}
	for _, i := range result.UnresolvedLayers {
		fmt.Printf("  warning: layer %d has no price-book or remembered rate; use -remember-rate\n", i+1)
	}

	fmt.Printf("Sheet weight: %.4f kg\n", result.SheetWeight)
	fmt.Printf("Paper cost:   %.2f\n", result.PaperCost)
	fmt.Printf("Strength: BS %.2f  ECT %.2f  BCT %.2f (thickness %.1f mm, perimeter %.0f mm)\n",
		result.BS, result.ECT, result.BCT, result.BoardThickness, result.BoxPerimeter)
	fmt.Printf("Cost per box: %.2f\n", item.TotalCostPerBox)
	fmt.Printf("Total (%v pcs): %.2f\n", item.Quantity, item.TotalValue)
}

func runList(quotes *quotestore.Store, query string) error {
	items, err := quotes.List(query)
	if err != nil {
		return fmt.Errorf("list quote lines: %w", err)
	}
	if len(items) == 0 {
		fmt.Println("No saved quote lines.")
		return nil
	}

	w := os.Stdout
	for _, item := range items {
		fmt.Fprintf(w, "%s  %s  %-30s  %.2f\n", item.ID, item.CreatedAt, item.Title, item.TotalValue)
	}
	return nil
}

func runNegotiate(quotes *quotestore.Store, id string, mode quote.NegotiationMode, value float64) error {
	item, err := quotes.Get(id)
	if err != nil {
		return fmt.Errorf("load quote line: %w", err)
	}

	negotiated := quote.Negotiate(item, mode, value)
	if err := quotes.Update(negotiated); err != nil {
		return fmt.Errorf("store negotiated quote line: %w", err)
	}

	if negotiated.NegotiationMode == quote.NegotiationNone {
		fmt.Printf("Negotiation cleared. Total: %.2f\n", negotiated.TotalValue)
		return nil
	}
	fmt.Printf("Original %.2f -> negotiated %.2f per box. Total: %.2f\n",
		negotiated.OriginalPrice, negotiated.NegotiatedPrice, negotiated.TotalValue)
	return nil
}
