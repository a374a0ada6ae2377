package intent

import (
	"maps"
	"slices"

	"github.com/shahar-caura/sayso/internal/catalog"
)

// Intent is the immutable result of resolving one utterance. Values are
// built by Resolver and ContextualResolver; once built they never change,
// so an Intent can be handed around and stored in the session safely.
type Intent struct {
	raw        string
	normalized string
	command    *catalog.Command
	confidence float64
	band       Band
	params     map[string]string

	// Parallel lists, best score first. Populated only when resolution
	// found two fuzzy contenders close enough to report.
	candidates []catalog.Command
	scores     []float64
}

func newIntent(raw, normalized string, cmd *catalog.Command, confidence float64, params map[string]string) Intent {
	return Intent{
		raw:        raw,
		normalized: normalized,
		command:    cmd,
		confidence: confidence,
		band:       bandOf(confidence),
		params:     params,
	}
}

func newCandidateIntent(raw, normalized string, cmd *catalog.Command, confidence float64, candidates []catalog.Command, scores []float64) Intent {
	in := newIntent(raw, normalized, cmd, confidence, nil)
	in.candidates = candidates
	in.scores = scores
	return in
}

// Raw returns the utterance as given.
func (in Intent) Raw() string { return in.raw }

// Normalized returns the form the resolver matched against.
func (in Intent) Normalized() string { return in.normalized }

// Command returns the resolved command, if resolution succeeded.
func (in Intent) Command() (catalog.Command, bool) {
	if in.command == nil {
		return catalog.Command{}, false
	}
	return *in.command, true
}

// Resolved reports whether resolution produced a command.
func (in Intent) Resolved() bool { return in.command != nil }

// Confidence is the resolution score in [0,1].
func (in Intent) Confidence() float64 { return in.confidence }

// Band is the confidence band, fixed when the Intent was built.
func (in Intent) Band() Band { return in.band }

// Parameters returns a copy of the extracted parameters.
func (in Intent) Parameters() map[string]string { return maps.Clone(in.params) }

// Param returns one parameter value, or "" when absent.
func (in Intent) Param(key string) string { return in.params[key] }

// Candidates returns a copy of the close fuzzy contenders, best first.
func (in Intent) Candidates() []catalog.Command { return slices.Clone(in.candidates) }

// CandidateScores returns the contenders' scores, aligned with Candidates.
func (in Intent) CandidateScores() []float64 { return slices.Clone(in.scores) }

// ForTesting builds an Intent with explicit fields, bypassing resolution.
// Test helper only; production code obtains Intents from Resolver or
// ContextualResolver.
func ForTesting(raw, normalized string, cmd *catalog.Command, confidence float64, params map[string]string) Intent {
	return newIntent(raw, normalized, cmd, confidence, maps.Clone(params))
}

// ForTestingCandidates is ForTesting plus recorded fuzzy candidates.
// candidates and scores must be parallel, best first.
func ForTestingCandidates(raw, normalized string, cmd *catalog.Command, confidence float64, candidates []catalog.Command, scores []float64) Intent {
	return newCandidateIntent(raw, normalized, cmd, confidence, slices.Clone(candidates), slices.Clone(scores))
}
