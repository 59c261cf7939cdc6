package typechart

import "math"

//go:generate go tool enumer -type=Category -trimprefix=Category -transform=lower -json -text

// Category is the display classification of a multiplier.
type Category int

const (
	CategoryNeutral Category = iota
	CategoryWeak
	CategoryResistant
	CategoryImmune
)

// tolerance absorbs float drift around the neutral multiplier, so that a
// product such as 0.5*2 computed as 0.9999999 is still neutral.
const tolerance = 1e-6

// Categorize classifies a multiplier. Exactly one category applies to every
// non-negative value.
func Categorize(m Multiplier) Category {
	switch {
	case m <= 0:
		return CategoryImmune
	case m > Neutral+tolerance:
		return CategoryWeak
	case m < Neutral-tolerance:
		return CategoryResistant
	default:
		return CategoryNeutral
	}
}

// Severe reports whether the multiplier is at least super effective (2x).
// Weak multipliers below 2 are still weaknesses, just not emphasized.
func (m Multiplier) Severe() bool {
	return m >= 2-tolerance
}

// EfficacyLevel is a multiplier expressed as an integer percentage, the way
// damage factors are stored.
type EfficacyLevel int

const (
	DoubleSuperEffective   EfficacyLevel = 400
	SuperEffective         EfficacyLevel = 200
	NormalEffective        EfficacyLevel = 100
	NotVeryEffective       EfficacyLevel = 50
	DoubleNotVeryEffective EfficacyLevel = 25
	Immune                 EfficacyLevel = 0
)

func (m Multiplier) Level() EfficacyLevel {
	return EfficacyLevel(math.Round(float64(m) * 100))
}

func (level EfficacyLevel) Multiplier() Multiplier {
	return Multiplier(level) / 100
}
