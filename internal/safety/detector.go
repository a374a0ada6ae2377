package safety

import "github.com/shahar-caura/sayso/internal/intent"

// DefaultScoreGap is the widest spread between the two best candidate
// scores still treated as ambiguous.
const DefaultScoreGap = 0.10

// ScoreGapDetector flags medium-band intents whose two best candidates
// scored within the configured gap of each other. High-band intents are
// never ambiguous: exact and alias matches leave no contenders.
type ScoreGapDetector struct {
	gap float64
}

// NewScoreGapDetector builds a detector with the given score gap.
func NewScoreGapDetector(gap float64) *ScoreGapDetector {
	return &ScoreGapDetector{gap: gap}
}

// Ambiguous reports whether the intent needs clarification instead of a
// plain confirmation.
func (d *ScoreGapDetector) Ambiguous(in intent.Intent) bool {
	if in.Band() != intent.BandMedium {
		return false
	}
	scores := in.CandidateScores()
	if len(scores) < 2 {
		return false
	}
	return scores[0]-scores[1] <= d.gap
}
