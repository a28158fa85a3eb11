package voice

// State is the activity of an Agent. At most one recognition session and one
// synthesis are active at a time.
type State int

const (
	StateIdle State = iota
	StateListening
	StateSpeaking
)

func (s State) String() string {
	switch s {
	case StateListening:
		return "listening"
	case StateSpeaking:
		return "speaking"
	default:
		return "idle"
	}
}
