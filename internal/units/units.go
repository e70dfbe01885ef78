package units

// MmPerInch is the exact definition of the inch in millimeters.
const MmPerInch = 25.4

// MmToInch converts millimeters to inches.
func MmToInch(mm float64) float64 {
	return mm / MmPerInch
}

// InchToMm converts inches to millimeters.
func InchToMm(in float64) float64 {
	return in * MmPerInch
}
