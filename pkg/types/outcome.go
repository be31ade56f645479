package types

// OutcomeState is the result of a user action. The zero value means nothing has been
// reported yet.
type OutcomeState string

const (
	OutcomeUnset   OutcomeState = ""
	OutcomeSuccess OutcomeState = "success"
	OutcomeError   OutcomeState = "error"
)

// Outcome pairs an action's state with the message shown next to it
type Outcome struct {
	State OutcomeState `json:"state,omitempty"`
	Msg   string       `json:"msg"`
}

// IsSet reports whether the outcome should be rendered at all
func (o Outcome) IsSet() bool {
	return o.State != OutcomeUnset
}

// OutcomeSink receives the outcome of a single action invocation
type OutcomeSink func(Outcome)
