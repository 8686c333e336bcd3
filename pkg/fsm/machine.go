package fsm

import (
	"context"

	"carleadbot/pkg/state"

	"github.com/looplab/fsm"
)

var anyState = []string{
	state.StateStart,
	state.StateAwaitingName,
	state.StateAwaitingPhone,
	state.StateAwaitingComment,
	state.StateAwaitingQuestion,
}

// newConversationFSM declares the legal transitions for one chat. Menu events
// fire from any state because menu labels preempt free-text handling; the
// form steps only advance from their own state.
func newConversationFSM(current string) *fsm.FSM {
	events := fsm.Events{
		{Name: EventStart, Src: anyState, Dst: state.StateStart},
		{Name: EventBeginRequest, Src: anyState, Dst: state.StateAwaitingName},
		{Name: EventShowTerms, Src: anyState, Dst: state.StateStart},
		{Name: EventBeginQuestion, Src: anyState, Dst: state.StateAwaitingQuestion},
		{Name: EventNameProvided, Src: []string{state.StateAwaitingName}, Dst: state.StateAwaitingPhone},
		{Name: EventPhoneProvided, Src: []string{state.StateAwaitingPhone}, Dst: state.StateAwaitingComment},
		{Name: EventCommentProvided, Src: []string{state.StateAwaitingComment}, Dst: state.StateStart},
		{Name: EventQuestionProvided, Src: []string{state.StateAwaitingQuestion}, Dst: state.StateStart},
	}
	return fsm.NewFSM(current, events, fsm.Callbacks{})
}

// advance fires event against the session's current state and returns the
// destination. The error reports an illegal transition; the caller decides
// how to degrade (usually a "not understood" reply).
func advance(ctx context.Context, current, event string) (string, error) {
	m := newConversationFSM(current)
	if err := m.Event(ctx, event); err != nil {
		if isNoTransitionError(err) {
			return m.Current(), nil
		}
		return current, err
	}
	return m.Current(), nil
}
