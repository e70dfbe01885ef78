package board

import (
	"reflect"
	"testing"
)

func TestResolveSheetLayout_RSC(t *testing.T) {
	layout := ResolveSheetLayout(LayoutInput{
		Length:          300,
		Width:           200,
		Height:          150,
		Ply:             "3",
		GlueFlap:        35,
		DeckleAllowance: 25,
		Convention:      InsideDimension,
	}, LayoutConfig{})

	if layout == nil {
		t.Fatalf("expected layout, got nil")
	}
	if layout.SheetLength != 2*(300+200)+35 {
		t.Fatalf("sheetLength = %v, want 1035", layout.SheetLength)
	}
	if layout.SheetWidth != 150+200+25 {
		t.Fatalf("sheetWidth = %v, want 375", layout.SheetWidth)
	}
	if layout.AdditionalFlapApplied {
		t.Fatalf("additional flap must not apply without a threshold")
	}
}

func TestResolveSheetLayout_InsufficientInputIsNil(t *testing.T) {
	cases := []struct {
		name string
		in   LayoutInput
	}{
		{"zero length", LayoutInput{Width: 200, Height: 150}},
		{"zero width", LayoutInput{Length: 300, Height: 150}},
		{"rsc needs height", LayoutInput{Length: 300, Width: 200}},
		{"negative height", LayoutInput{Length: 300, Width: 200, Height: -1}},
	}

	for _, tc := range cases {
		if layout := ResolveSheetLayout(tc.in, LayoutConfig{}); layout != nil {
			t.Fatalf("%s: expected nil, got %+v", tc.name, layout)
		}
	}
}

func TestResolveSheetLayout_FlatSheetSkipsHeightAndFlap(t *testing.T) {
	layout := ResolveSheetLayout(LayoutInput{
		Length:    600,
		Width:     400,
		FlatSheet: true,
	}, LayoutConfig{MaxSheetLength: 500})

	if layout == nil {
		t.Fatalf("expected layout, got nil")
	}
	if layout.SheetLength != 600+DefaultFlatTrimAllowance {
		t.Fatalf("sheetLength = %v, want %v", layout.SheetLength, 600+DefaultFlatTrimAllowance)
	}
	if layout.SheetWidth != 400+DefaultFlatTrimAllowance {
		t.Fatalf("sheetWidth = %v, want %v", layout.SheetWidth, 400+DefaultFlatTrimAllowance)
	}
	if layout.AdditionalFlapApplied {
		t.Fatalf("flat sheets must not trigger the flap policy")
	}
}

func TestResolveSheetLayout_AdditionalFlapOverThreshold(t *testing.T) {
	in := LayoutInput{
		Length:          1500,
		Width:           800,
		Height:          800,
		Ply:             "5",
		GlueFlap:        60,
		DeckleAllowance: 30,
		Convention:      InsideDimension,
	}

	layout := ResolveSheetLayout(in, LayoutConfig{MaxSheetLength: 1500})
	if layout == nil {
		t.Fatalf("expected layout, got nil")
	}

	// Raw length 2*(1500+800)+60 = 4660 exceeds the 1500 threshold.
	if !layout.AdditionalFlapApplied {
		t.Fatalf("expected additional flap for oversize blank")
	}
	if layout.SheetLength != 4660+DefaultAdditionalFlapAllowance {
		t.Fatalf("sheetLength = %v, want %v", layout.SheetLength, 4660+DefaultAdditionalFlapAllowance)
	}
	if layout.SheetWidth != 800+800+30 {
		t.Fatalf("sheetWidth = %v, want 1630", layout.SheetWidth)
	}
}

func TestResolveSheetLayout_ODMatchesIDPlusCaliper(t *testing.T) {
	id := LayoutInput{
		Length:          300,
		Width:           200,
		Height:          150,
		Ply:             "3",
		GlueFlap:        35,
		DeckleAllowance: 25,
		Convention:      InsideDimension,
	}

	// Ply 3 caliper is 3 mm: OD dims are ID plus twice the caliper on
	// length/width and once on height.
	od := id
	od.Convention = OutsideDimension
	od.Length += 2 * 3
	od.Width += 2 * 3
	od.Height += 3

	fromID := ResolveSheetLayout(id, LayoutConfig{})
	fromOD := ResolveSheetLayout(od, LayoutConfig{})
	if fromID == nil || fromOD == nil {
		t.Fatalf("expected layouts, got %+v and %+v", fromID, fromOD)
	}
	if !reflect.DeepEqual(fromID, fromOD) {
		t.Fatalf("OD layout %+v differs from ID layout %+v", fromOD, fromID)
	}
}

func TestResolveSheetLayout_IsIdempotent(t *testing.T) {
	in := LayoutInput{
		Length:          1200,
		Width:           450,
		Height:          350,
		Ply:             "5",
		GlueFlap:        40,
		DeckleAllowance: 20,
		Convention:      OutsideDimension,
	}
	cfg := LayoutConfig{MaxSheetLength: 2500}

	first := ResolveSheetLayout(in, cfg)
	second := ResolveSheetLayout(in, cfg)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical inputs produced %+v and %+v", first, second)
	}
}
