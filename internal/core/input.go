package core

// Action represents a semantic action, abstracted from physical input.
type Action int

const (
	ActionNone     Action = iota
	ActionActivate        // Space, click, tap - flap / start / restart
	ActionPause           // P - stop or resume the frame loop
	ActionScores          // Tab - open the scoreboard
	ActionBack            // Esc, B - leave a secondary screen
	ActionQuit            // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionActivate:
		return "Activate"
	case ActionPause:
		return "Pause"
	case ActionScores:
		return "Scores"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputSource identifies the kind of raw platform event that produced an input.
type InputSource string

const (
	SourceKey     InputSource = "key"     // Keyboard primary action key
	SourcePointer InputSource = "pointer" // Mouse/pointer press
	SourceTouch   InputSource = "touch"   // Touch start
)

// ParseInputSource converts a wire string into an InputSource.
// The second return value is false for unknown sources.
func ParseInputSource(s string) (InputSource, bool) {
	switch InputSource(s) {
	case SourceKey, SourcePointer, SourceTouch:
		return InputSource(s), true
	default:
		return "", false
	}
}

// Normalize maps a raw input source to the logical action it triggers.
// Every supported source collapses to ActionActivate.
func Normalize(src InputSource) Action {
	switch src {
	case SourceKey, SourcePointer, SourceTouch:
		return ActionActivate
	default:
		return ActionNone
	}
}
