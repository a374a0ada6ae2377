package safety

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shahar-caura/sayso/internal/catalog"
)

// Clarifier lets the user pick between close-scoring candidates.
type Clarifier struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewClarifier reads answers from in and writes prompts to out.
func NewClarifier(in *bufio.Scanner, out io.Writer) *Clarifier {
	return &Clarifier{in: in, out: out}
}

// Clarify lists the candidates and reads one answer: a 1-based number or
// an exact candidate name, case-insensitively. Anything else leaves the
// choice unmade and the caller drops the intent.
func (c *Clarifier) Clarify(candidates []catalog.Command) (catalog.Command, bool) {
	if len(candidates) == 0 {
		return catalog.Command{}, false
	}

	fmt.Fprintln(c.out, "Did you mean:")
	for i, cmd := range candidates {
		fmt.Fprintf(c.out, "  %d. %s\n", i+1, cmd.Name)
	}
	fmt.Fprint(c.out, "> ")

	if !c.in.Scan() {
		return catalog.Command{}, false
	}
	answer := strings.TrimSpace(c.in.Text())

	if n, err := strconv.Atoi(answer); err == nil {
		if n >= 1 && n <= len(candidates) {
			return candidates[n-1], true
		}
		return catalog.Command{}, false
	}
	for _, cmd := range candidates {
		if strings.EqualFold(cmd.Name, answer) {
			return cmd, true
		}
	}
	return catalog.Command{}, false
}
