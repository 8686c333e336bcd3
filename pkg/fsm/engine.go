package fsm

import (
	"context"
	"fmt"
	"log"

	"carleadbot/pkg/config"
	"carleadbot/pkg/state"
)

// Engine is the pure conversation state machine. Transition never fails: for
// any (session, input) pair it returns a next session and an action list, and
// identical inputs always produce identical results.
type Engine struct {
	texts config.Texts
}

func NewEngine(texts config.Texts) *Engine {
	return &Engine{texts: texts}
}

// Transition maps one inbound event onto the session. /start is handled first
// regardless of state, then exact menu-label matches, then state-based
// free-text handling; anything else is answered with "not understood" and an
// unchanged session.
func (e *Engine) Transition(ctx context.Context, sess state.Session, in Input) Result {
	switch in.Command.Kind {
	case CommandStart:
		return e.handleStart(ctx, sess, in.Command.Payload)
	case CommandMenu:
		return e.handleMenu(ctx, sess, in.Command.Payload)
	default:
		return e.handleText(ctx, sess, in)
	}
}

func (e *Engine) handleStart(ctx context.Context, sess state.Session, payload string) Result {
	next, err := advance(ctx, sess.State, EventStart)
	if err != nil {
		log.Printf("[handleStart] FSM error for chat %d: %v", sess.ChatID, err)
	}
	sess.State = next

	greeting := e.texts.Greeting
	if payload != "" {
		sess.CarName = payload
		greeting = fmt.Sprintf(e.texts.GreetingWithCar, payload)
	}
	return Result{
		Session: sess,
		Actions: []Action{
			SendText{Text: greeting},
			SendText{Text: e.texts.MenuPrompt, Markup: mainMenuKeyboard()},
		},
	}
}

func (e *Engine) handleMenu(ctx context.Context, sess state.Session, label string) Result {
	switch label {
	case ButtonSubmitRequest:
		next, err := advance(ctx, sess.State, EventBeginRequest)
		if err != nil {
			return e.notUnderstood(sess)
		}
		sess.State = next
		return Result{
			Session: sess,
			Actions: []Action{SendText{Text: e.texts.AskName}},
		}

	case ButtonTerms:
		next, err := advance(ctx, sess.State, EventShowTerms)
		if err != nil {
			return e.notUnderstood(sess)
		}
		sess.State = next
		return Result{
			Session: sess,
			Actions: []Action{
				SendChatAction{Action: chatActionTyping},
				SendTerms{FailText: e.texts.TermsUnavailable},
				SendText{Text: e.texts.MenuPromptAgain, Markup: mainMenuKeyboard()},
			},
		}

	case ButtonAskQuestion:
		next, err := advance(ctx, sess.State, EventBeginQuestion)
		if err != nil {
			return e.notUnderstood(sess)
		}
		sess.State = next
		return Result{
			Session: sess,
			Actions: []Action{SendText{Text: e.texts.AskQuestion}},
		}
	}
	return e.notUnderstood(sess)
}

func (e *Engine) handleText(ctx context.Context, sess state.Session, in Input) Result {
	switch sess.State {
	case state.StateAwaitingName:
		next, err := advance(ctx, sess.State, EventNameProvided)
		if err != nil {
			return e.notUnderstood(sess)
		}
		sess.Name = in.Command.Payload
		sess.State = next
		return Result{
			Session: sess,
			Actions: []Action{SendText{Text: e.texts.AskPhone, Markup: contactKeyboard()}},
		}

	case state.StateAwaitingPhone:
		next, err := advance(ctx, sess.State, EventPhoneProvided)
		if err != nil {
			return e.notUnderstood(sess)
		}
		// A structured contact payload is authoritative over typed text.
		phone := in.ContactPhone
		if phone == "" {
			phone = in.Command.Payload
		}
		sess.Phone = phone
		sess.State = next
		return Result{
			Session: sess,
			Actions: []Action{SendText{Text: e.texts.AskComment, Markup: removeKeyboard()}},
		}

	case state.StateAwaitingComment:
		if _, err := advance(ctx, sess.State, EventCommentProvided); err != nil {
			return e.notUnderstood(sess)
		}
		retained := sess
		sess.Comment = in.Command.Payload // empty comment is valid

		confirm := e.texts.ConfirmRequest
		if sess.CarName != "" {
			confirm = fmt.Sprintf(e.texts.ConfirmRequestCar, sess.CarName)
		}
		return Result{
			Session: sess.Reset(),
			Actions: []Action{
				SendText{Text: confirm},
				SendText{Text: e.texts.MenuPromptAgain, Markup: mainMenuKeyboard()},
			},
			Submit:      buildApplication(sess),
			FailSession: &retained,
			FailActions: []Action{SendText{Text: e.texts.RequestSendFailed}},
		}

	case state.StateAwaitingQuestion:
		if _, err := advance(ctx, sess.State, EventQuestionProvided); err != nil {
			return e.notUnderstood(sess)
		}
		retained := sess
		return Result{
			Session: sess.Reset(),
			Actions: []Action{
				SendText{Text: e.texts.ConfirmQuestion},
				SendText{Text: e.texts.MenuPromptAgain, Markup: mainMenuKeyboard()},
			},
			Submit:      buildQuestion(sess.ChatID, in.FirstName, in.Command.Payload),
			FailSession: &retained,
			FailActions: []Action{SendText{Text: e.texts.QuestionSendFailed}},
		}
	}
	return e.notUnderstood(sess)
}

func (e *Engine) notUnderstood(sess state.Session) Result {
	return Result{
		Session: sess,
		Actions: []Action{
			SendText{Text: e.texts.NotUnderstood},
			SendText{Text: e.texts.MenuPrompt, Markup: mainMenuKeyboard()},
		},
	}
}
