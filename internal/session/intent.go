package session

// Intent is a user request delivered to the controller by the menu,
// hotkeys or signal handler.
type Intent int

const (
	IntentChooseFile Intent = iota
	IntentMute
	IntentStop
	IntentExit
)

func (i Intent) String() string {
	switch i {
	case IntentChooseFile:
		return "choose-file"
	case IntentMute:
		return "mute"
	case IntentStop:
		return "stop"
	case IntentExit:
		return "exit"
	default:
		return "unknown"
	}
}
