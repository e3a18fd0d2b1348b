package schedule

// Confirmer is the human-in-the-loop gate for overlap and overtime
// decisions. Implementations must fail closed: when no user can answer,
// return false rather than auto-approve.
type Confirmer interface {
	Confirm(prompt string) bool
}

// DenyAll declines every confirmation. It is the correct Confirmer for
// non-interactive contexts.
type DenyAll struct{}

func (DenyAll) Confirm(string) bool { return false }

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }
