package notifier

// Kind classifies an operator notification.
type Kind string

const (
	KindSuccess Kind = "SUCCESS"
	KindError   Kind = "ERROR"
	KindInfo    Kind = "INFO"
)

// Notifier delivers human-readable status messages to the operator channel.
// Delivery is best-effort: implementations log and swallow their own failures
// and never propagate an error to the caller.
type Notifier interface {
	// Notify sends one message. txRef, when non-empty, is a transaction
	// reference to include alongside the text.
	Notify(kind Kind, text string, txRef string)
}
