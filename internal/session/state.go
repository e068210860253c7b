package session

// State is the per-session lifecycle status exposed to the display surface.
//
// Transitions: NotChecked -> Checking -> (NotInstalled | Converting) ->
// (Ready | Failed). NotInstalled and Failed re-enter Checking on an explicit
// retry.
type State string

const (
	StateNotChecked   State = "notChecked"
	StateChecking     State = "checking"
	StateNotInstalled State = "notInstalled"
	StateConverting   State = "converting"
	StateReady        State = "ready"
	StateFailed       State = "failed"
)
