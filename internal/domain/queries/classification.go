package queries

import (
	"errors"
	"strings"
)

// UnknownReply is the word the classifier answers with when no analysis fits.
const UnknownReply = "unknown"

// FailurePrefix tags classifier failures when they are rendered as text.
const FailurePrefix = "llm_error"

// Outcome is the variant tag of a Classification.
type Outcome int

const (
	OutcomeCommand Outcome = iota + 1
	OutcomeUnknown
	OutcomeUnrecognized
	OutcomeFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCommand:
		return "command"
	case OutcomeUnknown:
		return "unknown"
	case OutcomeUnrecognized:
		return "unrecognized"
	case OutcomeFailure:
		return "failure"
	default:
		return "invalid"
	}
}

// Classification is what the intent classifier makes of a query. Exactly one
// variant is populated: Command for OutcomeCommand, Reply for
// OutcomeUnrecognized, Err for OutcomeFailure.
type Classification struct {
	Outcome Outcome
	Command Command
	Reply   string
	Err     error
}

func Recognized(c Command) Classification {
	return Classification{Outcome: OutcomeCommand, Command: c}
}

func Unknown() Classification {
	return Classification{Outcome: OutcomeUnknown}
}

func Unrecognized(reply string) Classification {
	return Classification{Outcome: OutcomeUnrecognized, Reply: reply}
}

func Failure(err error) Classification {
	if err == nil {
		err = errors.New("classifier failed without an error")
	}
	return Classification{Outcome: OutcomeFailure, Err: err}
}

// String renders the classification the way the model would have said it;
// failures carry the FailurePrefix tag.
func (c Classification) String() string {
	switch c.Outcome {
	case OutcomeCommand:
		return c.Command.String()
	case OutcomeUnknown:
		return UnknownReply
	case OutcomeUnrecognized:
		return c.Reply
	case OutcomeFailure:
		return FailurePrefix + ": " + c.Err.Error()
	default:
		return ""
	}
}

// ParseReply interprets a single-line model reply. Surrounding whitespace,
// quotes and backticks are dropped; the rest must match a canonical name or
// UnknownReply exactly. A blank reply is not a decision; ok is false and the
// caller reports it as a failure.
func ParseReply(reply string) (c Classification, ok bool) {
	s := strings.Trim(strings.TrimSpace(reply), "'\"`")
	s = strings.TrimSpace(s)
	if s == "" {
		return Classification{}, false
	}
	if cmd, found := ParseCommand(s); found {
		return Recognized(cmd), true
	}
	if s == UnknownReply {
		return Unknown(), true
	}
	return Unrecognized(s), true
}
