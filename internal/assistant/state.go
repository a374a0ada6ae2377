package assistant

// State is the assistant's position in the interaction loop.
type State string

const (
	StateIdle                  State = "idle"
	StateListening             State = "listening"
	StateAwaitingConfirmation  State = "awaiting-confirmation"
	StateAwaitingClarification State = "awaiting-clarification"
	StateExecuting             State = "executing"
)
