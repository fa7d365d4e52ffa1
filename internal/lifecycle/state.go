package lifecycle

// State is the lifecycle position of one question slot.
type State int

const (
	StateIdle      State = iota // No question yet
	StateGenerated              // Question received, awaiting a checked answer
	StateChecked                // Answer checked; terminal for this question
	StateError                  // Last generate or check failed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateGenerated:
		return "generated"
	case StateChecked:
		return "checked"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Op names the request kinds a slot can have in flight.
type Op int

const (
	OpNone Op = iota
	OpGenerate
	OpCheck
)

// Affordances reports which actions and views are currently enabled.
type Affordances struct {
	AnswerInput bool
	Check       bool
	Generate    bool
	Explanation bool
	RawExchange bool
}

// User-facing messages.
const (
	MsgMissingSelection = "Please select exactly one subchapter."
	MsgEmptyAnswer      = "Type an answer first."
	MsgMissingIdentity  = "Question is missing question_id (cannot check)."
)
