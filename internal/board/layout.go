package board

// Measurement convention for box dimensions.
type Convention string

const (
	// InsideDimension means the given dimensions are the box interior.
	InsideDimension Convention = "ID"
	// OutsideDimension means the given dimensions include the board shell,
	// so the board caliper is deducted before layout.
	OutsideDimension Convention = "OD"
)

// Layout allowance defaults in mm. Exposed as named constants because they
// are calibration values, not user input.
const (
	// DefaultAdditionalFlapAllowance is the extra sheet length granted when a
	// blank exceeds the corrugator's maximum length and must be run as a
	// multi-piece joint.
	DefaultAdditionalFlapAllowance = 30.0
	// DefaultFlatTrimAllowance is the symmetric trim added to each dimension
	// of a flat sheet.
	DefaultFlatTrimAllowance = 25.0
)

// LayoutInput carries the box (or flat sheet) dimensions in mm, already
// unit-converted by the caller.
type LayoutInput struct {
	Length float64
	Width  float64
	Height float64

	Ply             string
	GlueFlap        float64
	DeckleAllowance float64
	Convention      Convention

	// FlatSheet switches from RSC box layout to plain sheet layout.
	FlatSheet bool
}

// LayoutConfig holds the layout calibration values. Zero fields fall back to
// the package defaults, so the zero value is usable.
type LayoutConfig struct {
	// MaxSheetLength is the corrugator length threshold in mm; 0 disables
	// the additional-flap policy.
	MaxSheetLength          float64
	AdditionalFlapAllowance float64
	FlatTrimAllowance       float64

	// PlyThicknessOverrides replaces individual entries of the per-ply
	// caliper lookup used for OD deduction.
	PlyThicknessOverrides map[string]float64
}

func (c LayoutConfig) additionalFlapAllowance() float64 {
	if c.AdditionalFlapAllowance > 0 {
		return c.AdditionalFlapAllowance
	}
	return DefaultAdditionalFlapAllowance
}

func (c LayoutConfig) flatTrimAllowance() float64 {
	if c.FlatTrimAllowance > 0 {
		return c.FlatTrimAllowance
	}
	return DefaultFlatTrimAllowance
}

// SheetLayout is the resolved cut-sheet geometry. The adjusted box
// dimensions (post OD deduction) are carried along so the strength predictor
// can derive the box perimeter from the same values the layout used.
type SheetLayout struct {
	SheetLength float64
	SheetWidth  float64

	AdjustedLength float64
	AdjustedWidth  float64
	AdjustedHeight float64

	AdditionalFlapApplied bool
}

// ResolveSheetLayout derives the cut-sheet dimensions for an RSC box or a
// flat sheet. It returns nil when the input is insufficient (missing or
// non-positive dimensions); callers must treat nil as "not enough input yet",
// not as an error.
func ResolveSheetLayout(in LayoutInput, cfg LayoutConfig) *SheetLayout {
	if in.Length <= 0 || in.Width <= 0 {
		return nil
	}
	if !in.FlatSheet && in.Height <= 0 {
		return nil
	}

	length, width, height := in.Length, in.Width, in.Height
	if in.Convention == OutsideDimension {
		// The board occupies the outer shell: twice the caliper across
		// length and width, once across height.
		t := PlyThickness(in.Ply, cfg.PlyThicknessOverrides)
		length -= 2 * t
		width -= 2 * t
		height -= t
		if length <= 0 || width <= 0 || (!in.FlatSheet && height <= 0) {
			return nil
		}
	}

	layout := &SheetLayout{
		AdjustedLength: length,
		AdjustedWidth:  width,
		AdjustedHeight: height,
	}

	if in.FlatSheet {
		trim := cfg.flatTrimAllowance()
		layout.SheetLength = length + trim
		layout.SheetWidth = width + trim
		return layout
	}

	layout.SheetLength = 2*(length+width) + in.GlueFlap
	if cfg.MaxSheetLength > 0 && layout.SheetLength > cfg.MaxSheetLength {
		layout.SheetLength += cfg.additionalFlapAllowance()
		layout.AdditionalFlapApplied = true
	}
	layout.SheetWidth = height + width + in.DeckleAllowance

	return layout
}
