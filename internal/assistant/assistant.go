package assistant

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shahar-caura/sayso/internal/catalog"
	"github.com/shahar-caura/sayso/internal/intent"
	"github.com/shahar-caura/sayso/internal/safety"
	"github.com/shahar-caura/sayso/internal/session"
	"github.com/shahar-caura/sayso/internal/skill"
)

// MaxSteps caps how many utterance steps run per turn; longer
// utterances are rejected whole.
const MaxSteps = 3

// SpeechInput supplies spoken utterances. nil means keyboard only.
type SpeechInput interface {
	Available(ctx context.Context) bool
	Listen(ctx context.Context) (string, error)
}

// Deps bundles the wired collaborators for an Assistant.
type Deps struct {
	Catalog    *catalog.Catalog
	Resolver   *intent.Resolver
	Contextual *intent.ContextualResolver
	Gate       *safety.Gate
	Skills     *skill.Registry
	Session    *session.Context
	Threshold  float64

	// Speech enables voice input when non-nil.
	Speech SpeechInput
	// Reloads delivers rebuilt catalogs when watching is enabled.
	Reloads <-chan *catalog.Catalog
}

// Assistant drives the listen → resolve → gate → execute loop. It owns
// the single input scanner shared with its confirmation and clarification
// prompts, and all mutation happens on the loop goroutine.
type Assistant struct {
	catalog    *catalog.Catalog
	resolver   *intent.Resolver
	contextual *intent.ContextualResolver
	gate       *safety.Gate
	skills     *skill.Registry
	session    *session.Context
	speech     SpeechInput
	reloads    <-chan *catalog.Catalog
	threshold  float64

	in        *bufio.Scanner
	out       io.Writer
	confirmer *safety.Confirmer
	clarifier *safety.Clarifier
	logger    *slog.Logger

	state State
	voice bool
}

// New builds an Assistant reading from in and writing prompts and
// results to out. Voice mode starts enabled whenever deps.Speech is set
// and degrades to keyboard on failure.
func New(deps Deps, in io.Reader, out io.Writer, logger *slog.Logger) (*Assistant, error) {
	switch {
	case deps.Catalog == nil:
		return nil, fmt.Errorf("assistant: catalog is required")
	case deps.Resolver == nil:
		return nil, fmt.Errorf("assistant: resolver is required")
	case deps.Contextual == nil:
		return nil, fmt.Errorf("assistant: contextual resolver is required")
	case deps.Gate == nil:
		return nil, fmt.Errorf("assistant: gate is required")
	case deps.Skills == nil:
		return nil, fmt.Errorf("assistant: skill registry is required")
	case deps.Session == nil:
		return nil, fmt.Errorf("assistant: session is required")
	}

	scanner := bufio.NewScanner(in)
	return &Assistant{
		catalog:    deps.Catalog,
		resolver:   deps.Resolver,
		contextual: deps.Contextual,
		gate:       deps.Gate,
		skills:     deps.Skills,
		session:    deps.Session,
		speech:     deps.Speech,
		reloads:    deps.Reloads,
		threshold:  deps.Threshold,
		in:         scanner,
		out:        out,
		confirmer:  safety.NewConfirmer(scanner, out),
		clarifier:  safety.NewClarifier(scanner, out),
		logger:     logger,
		state:      StateIdle,
		voice:      deps.Speech != nil,
	}, nil
}

// State reports where the assistant is in its loop.
func (a *Assistant) State() State { return a.state }

// Run is the interactive loop. It returns when the user quits or input
// is exhausted.
func (a *Assistant) Run(ctx context.Context) error {
	fmt.Fprintln(a.out, "sayso ready. Say a command, or 'help' to list them.")

	if a.voice && !a.speech.Available(ctx) {
		a.logger.Warn("speech server unavailable, falling back to keyboard")
		fmt.Fprintln(a.out, "Speech server unreachable; using keyboard input.")
		a.voice = false
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		a.drainReloads()

		raw, ok := a.nextUtterance(ctx)
		if !ok {
			return nil
		}
		if raw == "" {
			continue
		}

		if handled, quit := a.handleBuiltin(raw); handled {
			if quit {
				return nil
			}
			continue
		}

		if quit := a.HandleUtterance(ctx, raw); quit {
			return nil
		}
	}
}

// HandleUtterance resolves and executes one utterance, which may contain
// several steps ("open chrome and then go to youtube"). It reports
// whether a quit was dispatched. The first rejected, cancelled, or failed
// step aborts the rest.
func (a *Assistant) HandleUtterance(ctx context.Context, raw string) bool {
	defer func() { a.state = StateIdle }()

	steps := intent.Split(raw)
	if len(steps) == 0 {
		fmt.Fprintln(a.out, "I didn't catch a command in that.")
		return false
	}
	if len(steps) > MaxSteps {
		fmt.Fprintf(a.out, "That's %d steps; the most I can take at once is %d.\n", len(steps), MaxSteps)
		return false
	}

	for i, step := range steps {
		quit, ok := a.handleStep(ctx, step)
		if quit {
			return true
		}
		if !ok {
			if i < len(steps)-1 {
				fmt.Fprintln(a.out, "Skipping the remaining steps.")
			}
			return false
		}
	}
	return false
}

// handleStep resolves one step and walks it through the gate.
func (a *Assistant) handleStep(ctx context.Context, raw string) (quit, ok bool) {
	in := a.resolveStep(raw)

	if enriched, followed := a.contextual.Resolve(raw, in); followed {
		if cmd, resolved := enriched.Command(); resolved {
			fmt.Fprintf(a.out, "Treating that as a follow-up to '%s'.\n", cmd.Name)
		}
		in = enriched
	}

	return a.dispatch(ctx, in)
}

// resolveStep matches the step against the catalog. A bare number picks
// the corresponding entry from the numbered listing, in any step of a
// multi-step utterance.
func (a *Assistant) resolveStep(raw string) intent.Intent {
	if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
		if cmd, ok := a.catalog.Get(n); ok {
			return a.resolver.ResolveByCommand(raw, cmd)
		}
	}
	return a.resolver.Resolve(raw)
}

// dispatch applies the gate verdict, prompting where required. A command
// chosen at a clarification prompt re-enters here with a fresh intent.
func (a *Assistant) dispatch(ctx context.Context, in intent.Intent) (quit, ok bool) {
	switch a.gate.Evaluate(in) {
	case safety.VerdictReject:
		if !in.Resolved() {
			fmt.Fprintf(a.out, "Sorry, I don't understand %q.\n", in.Raw())
		} else {
			cmd, _ := in.Command()
			fmt.Fprintf(a.out, "Not confident enough to run '%s' (%.0f%% match).\n", cmd.Name, in.Confidence()*100)
		}
		return false, false

	case safety.VerdictClarify:
		a.state = StateAwaitingClarification
		cmd, chosen := a.clarifier.Clarify(in.Candidates())
		if !chosen {
			fmt.Fprintln(a.out, "Cancelled.")
			return false, false
		}
		return a.dispatch(ctx, a.resolver.ResolveByCommand(in.Raw(), cmd))

	case safety.VerdictConfirm:
		a.state = StateAwaitingConfirmation
		cmd, _ := in.Command()
		if !a.confirmer.Confirm(cmd) {
			fmt.Fprintln(a.out, "Cancelled.")
			return false, false
		}
		return a.execute(ctx, in)

	default:
		return a.execute(ctx, in)
	}
}

// execute dispatches the intent to the first claiming skill and records
// the turn in the session. A quit command exits the loop instead of
// running a skill.
func (a *Assistant) execute(ctx context.Context, in intent.Intent) (quit, ok bool) {
	a.state = StateExecuting
	cmd, _ := in.Command()

	if strings.EqualFold(cmd.Name, "quit") {
		fmt.Fprintln(a.out, "Goodbye.")
		return true, true
	}

	sk, found := a.skills.Find(in)
	if !found {
		a.logger.Warn("no skill claims command", "command", cmd.Name)
		fmt.Fprintf(a.out, "Nothing can handle '%s'.\n", cmd.Name)
		return false, false
	}

	if err := sk.Execute(ctx, in); err != nil {
		a.logger.Error("skill failed", "skill", sk.Name(), "command", cmd.Name, "error", err)
		fmt.Fprintf(a.out, "Failed: %v\n", err)
		return false, false
	}

	if err := a.session.Update(in, cmd, sk); err != nil {
		a.logger.Warn("session not updated", "error", err)
	}
	return false, true
}

// handleBuiltin intercepts loop controls before resolution. The typed
// quit words exit immediately without a confirmation prompt.
func (a *Assistant) handleBuiltin(raw string) (handled, quit bool) {
	switch strings.ToLower(raw) {
	case "q", "quit", "exit":
		fmt.Fprintln(a.out, "Goodbye.")
		return true, true
	case "help", "commands":
		a.printCommands()
		return true, false
	case "k", "keyboard":
		if a.voice {
			a.voice = false
			fmt.Fprintln(a.out, "Switched to keyboard input.")
		} else {
			fmt.Fprintln(a.out, "Already on keyboard input.")
		}
		return true, false
	}
	return false, false
}

// printCommands writes the numbered catalog listing.
func (a *Assistant) printCommands() {
	fmt.Fprintln(a.out, "Available commands:")
	for i, cmd := range a.catalog.Commands {
		fmt.Fprintf(a.out, "  %2d. %s", i+1, cmd.Name)
		if len(cmd.Aliases) > 0 {
			fmt.Fprintf(a.out, " (%s)", strings.Join(cmd.Aliases, ", "))
		}
		fmt.Fprintln(a.out)
	}
	fmt.Fprintln(a.out, "Say a number to run one, or 'q' to quit.")
}

// nextUtterance reads the next line of input, from speech when voice
// mode is on. ok is false when input is exhausted.
func (a *Assistant) nextUtterance(ctx context.Context) (raw string, ok bool) {
	a.state = StateListening

	if a.voice {
		fmt.Fprintln(a.out, "Listening... (say 'keyboard' to type instead)")
		text, err := a.speech.Listen(ctx)
		if err != nil {
			a.logger.Warn("speech input failed, falling back to keyboard", "error", err)
			fmt.Fprintln(a.out, "Speech input failed; using keyboard.")
			a.voice = false
			return "", true
		}
		if text != "" {
			fmt.Fprintf(a.out, "Heard: %q\n", text)
		}
		return text, true
	}

	fmt.Fprint(a.out, "> ")
	if !a.in.Scan() {
		if err := a.in.Err(); err != nil {
			a.logger.Warn("input closed", "error", err)
		}
		return "", false
	}
	return strings.TrimSpace(a.in.Text()), true
}

// drainReloads swaps in any catalogs the watcher delivered since the
// last utterance. Newest wins; the resolver is rebuilt to match.
func (a *Assistant) drainReloads() {
	for a.reloads != nil {
		select {
		case cat, open := <-a.reloads:
			if !open {
				a.reloads = nil
				return
			}
			a.applyCatalog(cat)
		default:
			return
		}
	}
}

func (a *Assistant) applyCatalog(cat *catalog.Catalog) {
	r, err := intent.NewResolver(cat.Commands, a.threshold, a.logger)
	if err != nil {
		a.logger.Warn("catalog reload rejected", "error", err)
		return
	}
	a.catalog = cat
	a.resolver = r
	a.logger.Info("catalog reloaded", "commands", len(cat.Commands))
}
