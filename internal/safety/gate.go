package safety

import (
	"github.com/shahar-caura/sayso/internal/intent"
)

// DangerClassifier decides whether an intent's command warrants explicit
// confirmation even at full confidence.
type DangerClassifier interface {
	Dangerous(in intent.Intent) bool
}

// AmbiguityDetector decides whether an intent's resolution was too close
// to call and should be clarified rather than confirmed.
type AmbiguityDetector interface {
	Ambiguous(in intent.Intent) bool
}

// Gate decides what may happen to an intent before any skill runs. It is
// pure: evaluation never prompts, logs, or executes anything.
type Gate struct {
	danger    DangerClassifier
	ambiguity AmbiguityDetector
}

// NewGate builds a Gate over the given classifier and detector.
func NewGate(danger DangerClassifier, ambiguity AmbiguityDetector) *Gate {
	return &Gate{danger: danger, ambiguity: ambiguity}
}

// Evaluate maps an intent to a verdict. Unresolved intents are rejected
// regardless of confidence; low confidence rejects, medium asks (clarify
// when ambiguous, confirm otherwise), high executes unless the command is
// dangerous, which demands confirmation.
func (g *Gate) Evaluate(in intent.Intent) Verdict {
	if !in.Resolved() {
		return VerdictReject
	}
	switch in.Band() {
	case intent.BandHigh:
		if g.danger.Dangerous(in) {
			return VerdictConfirm
		}
		return VerdictExecute
	case intent.BandMedium:
		if g.ambiguity.Ambiguous(in) {
			return VerdictClarify
		}
		return VerdictConfirm
	default:
		return VerdictReject
	}
}
