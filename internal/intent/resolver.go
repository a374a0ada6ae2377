package intent

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/shahar-caura/sayso/internal/catalog"
)

// DefaultThreshold is the minimum fuzzy similarity accepted as a match.
const DefaultThreshold = 0.75

// tieMargin is the resolver's own too-close-to-call window: when the two
// best fuzzy scores for different commands sit closer than this, the
// resolver refuses to pick a winner.
const tieMargin = 0.05

// reportMargin bounds how far apart two fuzzy contenders may be and still
// get recorded on the Intent for downstream clarification. Mirrors the
// ambiguity detector's score gap.
const reportMargin = 0.10

// launchVerbs start utterances like "open chrome" that resolve to the
// application-launch command with the remainder as the app parameter.
var launchVerbs = map[string]bool{"open": true, "launch": true, "start": true, "run": true}

// Resolver matches utterances against the command catalog in stages:
// exact name, alias, launch-verb prefix, then fuzzy similarity.
type Resolver struct {
	commands  []catalog.Command
	threshold float64
	logger    *slog.Logger
}

// NewResolver builds a Resolver over the catalog's commands. commands must
// be non-empty and threshold must lie in [0,1].
func NewResolver(commands []catalog.Command, threshold float64, logger *slog.Logger) (*Resolver, error) {
	if len(commands) == 0 {
		return nil, fmt.Errorf("resolver: command list is empty")
	}
	if threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("resolver: threshold %v outside [0,1]", threshold)
	}
	return &Resolver{commands: commands, threshold: threshold, logger: logger}, nil
}

// Resolve runs the matching stages over raw input. The returned Intent is
// always usable: failed resolution yields an unresolved Intent whose
// confidence records the best score seen.
func (r *Resolver) Resolve(raw string) Intent {
	normalized := Normalize(raw)
	if normalized == "" {
		return newIntent(raw, normalized, nil, 0, nil)
	}

	for i := range r.commands {
		if NormalizeCommandName(r.commands[i].Name) == normalized {
			r.logger.Debug("resolved exact", "input", normalized, "command", r.commands[i].Name)
			return newIntent(raw, normalized, &r.commands[i], 1.0, nil)
		}
	}

	for i := range r.commands {
		if matchesAlias(&r.commands[i], normalized) {
			r.logger.Debug("resolved alias", "input", normalized, "command", r.commands[i].Name)
			return newIntent(raw, normalized, &r.commands[i], 1.0, nil)
		}
	}

	if in, ok := r.resolveLaunch(raw, normalized); ok {
		return in
	}

	return r.resolveFuzzy(raw, normalized)
}

// ResolveByCommand bypasses matching: the command is already known, e.g.
// picked off a numbered listing or a clarification prompt.
func (r *Resolver) ResolveByCommand(raw string, cmd catalog.Command) Intent {
	return newIntent(raw, Normalize(raw), &cmd, 1.0, nil)
}

func matchesAlias(cmd *catalog.Command, normalized string) bool {
	for _, a := range cmd.Aliases {
		if NormalizeCommandName(a) == normalized {
			return true
		}
	}
	return false
}

// resolveLaunch maps "open chrome" style utterances onto the designated
// launch command, when the catalog defines one. A bare verb falls through
// to fuzzy matching.
func (r *Resolver) resolveLaunch(raw, normalized string) (Intent, bool) {
	verb, app, ok := strings.Cut(normalized, " ")
	if !ok || !launchVerbs[verb] {
		return Intent{}, false
	}

	launch := r.findCommand(catalog.LaunchCommand)
	if launch == nil {
		return Intent{}, false
	}

	r.logger.Debug("resolved launch verb", "verb", verb, "app", app)
	return newIntent(raw, normalized, launch, 1.0, map[string]string{"app": app}), true
}

func (r *Resolver) findCommand(name string) *catalog.Command {
	for i := range r.commands {
		if strings.EqualFold(r.commands[i].Name, name) {
			return &r.commands[i]
		}
	}
	return nil
}

// resolveFuzzy scores every command against the input and applies the
// acceptance threshold and tie margin. Equal scores keep catalog order.
func (r *Resolver) resolveFuzzy(raw, normalized string) Intent {
	best, second := -1.0, -1.0
	var bestCmd, secondCmd *catalog.Command

	for i := range r.commands {
		score := commandScore(&r.commands[i], normalized)
		if score > best {
			second, secondCmd = best, bestCmd
			best, bestCmd = score, &r.commands[i]
		} else if score > second {
			second, secondCmd = score, &r.commands[i]
		}
	}

	if best < r.threshold {
		r.logger.Debug("no fuzzy match above threshold", "input", normalized, "best", best)
		return newIntent(raw, normalized, nil, best, nil)
	}

	var candidates []catalog.Command
	var scores []float64
	if secondCmd != nil && best-second <= reportMargin {
		candidates = []catalog.Command{*bestCmd, *secondCmd}
		scores = []float64{best, second}
	}

	if secondCmd != nil && best-second < tieMargin {
		r.logger.Debug("fuzzy tie, refusing to pick", "input", normalized,
			"top", bestCmd.Name, "top_score", best,
			"runner_up", secondCmd.Name, "runner_up_score", second)
		return newCandidateIntent(raw, normalized, nil, best, candidates, scores)
	}

	r.logger.Debug("resolved fuzzy", "input", normalized, "command", bestCmd.Name, "score", best)
	return newCandidateIntent(raw, normalized, bestCmd, best, candidates, scores)
}

// commandScore is the best similarity across the command's name and aliases.
func commandScore(cmd *catalog.Command, normalized string) float64 {
	score := Similarity(NormalizeCommandName(cmd.Name), normalized)
	for _, a := range cmd.Aliases {
		if s := Similarity(NormalizeCommandName(a), normalized); s > score {
			score = s
		}
	}
	return score
}
