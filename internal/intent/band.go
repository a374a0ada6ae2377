package intent

// Band buckets a confidence score. The order is meaningful:
// BandHigh > BandMedium > BandLow.
type Band int

const (
	BandLow Band = iota
	BandMedium
	BandHigh
)

const (
	highThreshold   = 1.0
	mediumThreshold = 0.75
)

// bandOf is applied exactly once, when an Intent is constructed.
func bandOf(confidence float64) Band {
	switch {
	case confidence >= highThreshold:
		return BandHigh
	case confidence >= mediumThreshold:
		return BandMedium
	default:
		return BandLow
	}
}

// AtLeast reports whether b is at or above min.
func (b Band) AtLeast(min Band) bool { return b >= min }

func (b Band) String() string {
	switch b {
	case BandHigh:
		return "HIGH"
	case BandMedium:
		return "MEDIUM"
	default:
		return "LOW"
	}
}
