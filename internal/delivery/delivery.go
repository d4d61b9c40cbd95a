package delivery

// Backend delivers a composed message to one messaging service.
// Backends are independent: the sender invokes each configured backend
// and a failure in one never blocks the others.
type Backend interface {
	// Name identifies the backend in logs
	Name() string
	// Configured reports whether the backend has the credentials it
	// needs; unconfigured backends are skipped, not failed
	Configured() bool
	// Send delivers the message, fire-and-forget with no retry
	Send(text string) error
}
