package board

import "math"

// Strength calibration constants. The McKee defaults are the simplified
// industry form BCT = 5.876 x ECT x sqrt(caliper x perimeter) with cm-based
// inputs; the ECT calibration divides the summed ring-crush contributions by
// the 152 mm RCT specimen width to land on kg/cm.
const (
	DefaultMcKeeConstant         = 5.876
	DefaultECTExponent           = 1.0
	DefaultThicknessExponent     = 0.5
	DefaultPerimeterExponent     = 0.5
	DefaultECTCalibrationDivisor = 15.2
	burstLinerDivisor            = 1000.0
	burstFluteDivisor            = 2000.0
)

// StrengthConfig overrides the strength calibration constants. Zero fields
// fall back to the package defaults, so the zero value is usable.
type StrengthConfig struct {
	McKeeConstant         float64
	ECTExponent           float64
	ThicknessExponent     float64
	PerimeterExponent     float64
	ECTCalibrationDivisor float64
}

func (c StrengthConfig) orDefaults() StrengthConfig {
	if c.McKeeConstant <= 0 {
		c.McKeeConstant = DefaultMcKeeConstant
	}
	if c.ECTExponent <= 0 {
		c.ECTExponent = DefaultECTExponent
	}
	if c.ThicknessExponent <= 0 {
		c.ThicknessExponent = DefaultThicknessExponent
	}
	if c.PerimeterExponent <= 0 {
		c.PerimeterExponent = DefaultPerimeterExponent
	}
	if c.ECTCalibrationDivisor <= 0 {
		c.ECTCalibrationDivisor = DefaultECTCalibrationDivisor
	}
	return c
}

// Strength bundles the predicted board and box strength values.
type Strength struct {
	// BS is the burst strength in kg/cm.
	BS float64
	// ECT is the edge crush value in kg/cm.
	ECT float64
	// BCT is the McKee-predicted box compression strength in kg.
	BCT float64
}

// PredictStrength computes burst strength, ECT, and the McKee box compression
// prediction. boardThickness and boxPerimeter are in mm; boxPerimeter is
// 2 x (length + width) of the post-adjustment dimensions. Layers with missing
// data contribute zero to the affected metric, and a missing thickness or
// perimeter zeroes BCT; the predictor never fails outright because the form
// it feeds must stay renderable with partial input.
func PredictStrength(layers []LayerSpec, boardThickness, boxPerimeter float64, cfg StrengthConfig) Strength {
	cfg = cfg.orDefaults()

	var s Strength
	for _, layer := range layers {
		s.BS += burstContribution(layer)
		s.ECT += ectContribution(layer)
	}
	s.ECT /= cfg.ECTCalibrationDivisor

	if s.ECT > 0 && boardThickness > 0 && boxPerimeter > 0 {
		s.BCT = cfg.McKeeConstant *
			math.Pow(s.ECT, cfg.ECTExponent) *
			math.Pow(boardThickness/10, cfg.ThicknessExponent) *
			math.Pow(boxPerimeter/10, cfg.PerimeterExponent)
	}
	return s
}

// burstContribution is gsm x bf scaled per role: flutes contribute at half
// efficiency per unit grammage because of the corrugation geometry.
func burstContribution(layer LayerSpec) float64 {
	if layer.GSM <= 0 || layer.BF <= 0 {
		return 0
	}
	if layer.LayerType == Flute {
		return layer.GSM * layer.BF / burstFluteDivisor
	}
	return layer.GSM * layer.BF / burstLinerDivisor
}

// ectContribution is the ring-crush contribution of one layer: liners count
// as-is, flutes are scaled up by their take-up factor.
func ectContribution(layer LayerSpec) float64 {
	if layer.RCTValue <= 0 {
		return 0
	}
	if layer.LayerType == Flute && layer.FlutingFactor > 0 {
		return layer.RCTValue * layer.FlutingFactor
	}
	return layer.RCTValue
}
