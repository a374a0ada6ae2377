package safety

// Verdict is the gate's decision for a single intent.
type Verdict string

const (
	VerdictExecute Verdict = "execute"
	VerdictConfirm Verdict = "confirm"
	VerdictClarify Verdict = "clarify"
	VerdictReject  Verdict = "reject"
)
