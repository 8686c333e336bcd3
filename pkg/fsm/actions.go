package fsm

import "carleadbot/pkg/state"

// Action is one outbound side effect emitted by a transition. The dispatcher
// executes actions in emission order, after the session save.
type Action interface{ isAction() }

// SendText sends a chat message, optionally with a reply-keyboard markup.
type SendText struct {
	Text   string
	Markup interface{}
}

// SendChatAction shows a transient status such as "typing".
type SendChatAction struct {
	Action string
}

// SendTerms asks the dispatcher to fetch the terms document and send it; on
// fetch failure FailText is sent instead. The session is identical on both
// outcomes, so the engine stays pure.
type SendTerms struct {
	FailText string
}

func (SendText) isAction()       {}
func (SendChatAction) isAction() {}
func (SendTerms) isAction()      {}

// Submission is an operator notification derived from accumulated form data.
// It exists only transiently during the submit transition.
type Submission struct {
	Subject string
	Body    string
	// LogFields, when non-empty, is appended to the application log after a
	// successful delivery.
	LogFields map[string]string
}

// Result is the full outcome of one transition. When Submit is set the
// dispatcher delivers the notification first and then persists either the
// success branch (Session/Actions) or the failure branch
// (FailSession/FailActions). Both branches are decided here, so the
// dispatcher never issues a compensating write.
type Result struct {
	Session state.Session
	Actions []Action

	Submit      *Submission
	FailSession *state.Session
	FailActions []Action
}
