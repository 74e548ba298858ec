package sheet

// LengthUnit is a unit of length for model geometry and dimension display.
type LengthUnit string

const (
	Millimeter LengthUnit = "mm"
	Centimeter LengthUnit = "cm"
	Meter      LengthUnit = "m"
	Inch       LengthUnit = "in"
	Foot       LengthUnit = "ft"
	Yard       LengthUnit = "yd"
	Micrometer LengthUnit = "um"
)

// ToMillimeters returns the factor converting one of this unit to millimeters.
// Unknown units return 0.
func (u LengthUnit) ToMillimeters() float64 {
	switch u {
	case Millimeter:
		return 1
	case Centimeter:
		return 10
	case Meter:
		return 1000
	case Inch:
		return 25.4
	case Foot:
		return 304.8
	case Yard:
		return 914.4
	case Micrometer:
		return 0.001
	default:
		return 0
	}
}

// FromMillimeters converts a length in millimeters to this unit.
func (u LengthUnit) FromMillimeters(mm float64) float64 {
	f := u.ToMillimeters()
	if f == 0 {
		return mm
	}
	return mm / f
}
