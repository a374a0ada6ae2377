package safety

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/shahar-caura/sayso/internal/catalog"
)

// confirmWords are the answers accepted as approval.
var confirmWords = map[string]bool{"yes": true, "yeah": true, "confirm": true}

// Confirmer asks the user to approve a command before it runs. It shares
// the caller's scanner so prompts and the main loop read the same stream.
type Confirmer struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewConfirmer reads answers from in and writes prompts to out.
func NewConfirmer(in *bufio.Scanner, out io.Writer) *Confirmer {
	return &Confirmer{in: in, out: out}
}

// Confirm prompts once and reports approval. Any answer other than
// yes/yeah/confirm declines, as does a failed read.
func (c *Confirmer) Confirm(cmd catalog.Command) bool {
	fmt.Fprintf(c.out, "Execute '%s'? [yes/no]: ", cmd.Name)
	if !c.in.Scan() {
		return false
	}
	return confirmWords[strings.ToLower(strings.TrimSpace(c.in.Text()))]
}
