package fsm

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"carleadbot/pkg/config"
	"carleadbot/pkg/state"
)

func newTestEngine() *Engine {
	return NewEngine(config.DefaultTexts())
}

func textInput(chatID int64, text string) Input {
	return Input{ChatID: chatID, Command: ParseCommand(text)}
}

func firstText(t *testing.T, actions []Action) SendText {
	t.Helper()
	for _, a := range actions {
		if st, ok := a.(SendText); ok {
			return st
		}
	}
	t.Fatalf("no SendText action in %+v", actions)
	return SendText{}
}

func TestStartWithPayloadCapturesCarName(t *testing.T) {
	e := newTestEngine()
	sess := state.NewSession(10)

	res := e.Transition(context.Background(), sess, textInput(10, "/start car123"))

	if res.Session.State != state.StateStart {
		t.Fatalf("expected state %q, got %q", state.StateStart, res.Session.State)
	}
	if res.Session.CarName != "car123" {
		t.Fatalf("expected car name 'car123', got %q", res.Session.CarName)
	}
	greeting := firstText(t, res.Actions)
	if !strings.Contains(greeting.Text, "car123") {
		t.Fatalf("expected greeting to reference car123, got %q", greeting.Text)
	}
	if len(res.Actions) != 2 {
		t.Fatalf("expected greeting + menu, got %d actions", len(res.Actions))
	}
	menu := res.Actions[1].(SendText)
	if menu.Markup == nil {
		t.Fatalf("expected main menu keyboard on %+v", menu)
	}
}

func TestStartWithEncodedPayload(t *testing.T) {
	e := newTestEngine()
	res := e.Transition(context.Background(), state.NewSession(1), textInput(1, "/start BMW%20X5"))
	if res.Session.CarName != "BMW X5" {
		t.Fatalf("expected decoded payload, got %q", res.Session.CarName)
	}
}

func TestStartResetsMidForm(t *testing.T) {
	e := newTestEngine()
	sess := state.Session{ChatID: 3, State: state.StateAwaitingPhone, Name: "Ivan"}

	res := e.Transition(context.Background(), sess, textInput(3, "/start"))

	if res.Session.State != state.StateStart {
		t.Fatalf("expected reset to start, got %q", res.Session.State)
	}
	if res.Session.Name != "Ivan" {
		t.Fatalf("expected accumulated data to survive /start, got %+v", res.Session)
	}
}

func TestNameStepStoresNameAndAdvances(t *testing.T) {
	e := newTestEngine()
	sess := state.Session{ChatID: 5, State: state.StateAwaitingName}

	res := e.Transition(context.Background(), sess, textInput(5, "Ivan"))

	if res.Session.State != state.StateAwaitingPhone {
		t.Fatalf("expected awaiting_phone, got %q", res.Session.State)
	}
	if res.Session.Name != "Ivan" {
		t.Fatalf("expected name 'Ivan', got %q", res.Session.Name)
	}
	prompt := firstText(t, res.Actions)
	if prompt.Markup == nil {
		t.Fatalf("expected contact-share keyboard on phone prompt")
	}
}

func TestStructuredContactBeatsTypedText(t *testing.T) {
	e := newTestEngine()
	sess := state.Session{ChatID: 6, State: state.StateAwaitingPhone, Name: "Ivan"}
	in := textInput(6, "555-0000")
	in.ContactPhone = "+1555"

	res := e.Transition(context.Background(), sess, in)

	if res.Session.Phone != "+1555" {
		t.Fatalf("expected structured contact to win, got %q", res.Session.Phone)
	}
	if res.Session.State != state.StateAwaitingComment {
		t.Fatalf("expected awaiting_comment, got %q", res.Session.State)
	}
}

func TestTypedPhoneUsedWithoutContact(t *testing.T) {
	e := newTestEngine()
	sess := state.Session{ChatID: 6, State: state.StateAwaitingPhone}

	res := e.Transition(context.Background(), sess, textInput(6, "555-0000"))

	if res.Session.Phone != "555-0000" {
		t.Fatalf("expected typed phone, got %q", res.Session.Phone)
	}
}

func TestEmptyCommentSubmitsAndResets(t *testing.T) {
	e := newTestEngine()
	sess := state.Session{
		ChatID: 7, State: state.StateAwaitingComment,
		CarName: "car123", Name: "Ivan", Phone: "+1555",
	}

	res := e.Transition(context.Background(), sess, textInput(7, ""))

	if res.Submit == nil {
		t.Fatalf("expected a submission")
	}
	if res.Session.State != state.StateStart || res.Session.Name != "" || res.Session.Phone != "" {
		t.Fatalf("expected reset session on success, got %+v", res.Session)
	}
	confirm := firstText(t, res.Actions)
	if !strings.Contains(confirm.Text, "car123") {
		t.Fatalf("expected confirmation to mention the car, got %q", confirm.Text)
	}
	if !strings.Contains(res.Submit.Body, "Ivan") || !strings.Contains(res.Submit.Body, "+1555") {
		t.Fatalf("expected submission body to carry form data, got %q", res.Submit.Body)
	}
	if !strings.Contains(res.Submit.Body, "Комментарий: Нет") {
		t.Fatalf("expected empty comment placeholder, got %q", res.Submit.Body)
	}
	if res.FailSession == nil || res.FailSession.State != state.StateAwaitingComment {
		t.Fatalf("expected failure branch to retain awaiting_comment, got %+v", res.FailSession)
	}
	if res.FailSession.Name != "Ivan" || res.FailSession.Phone != "+1555" {
		t.Fatalf("expected failure branch to retain data, got %+v", res.FailSession)
	}
}

func TestSubmissionWithoutCarUsesPlaceholder(t *testing.T) {
	e := newTestEngine()
	sess := state.Session{ChatID: 8, State: state.StateAwaitingComment, Name: "Ivan", Phone: "+1"}

	res := e.Transition(context.Background(), sess, textInput(8, "urgent"))

	if res.Submit == nil {
		t.Fatalf("expected submission")
	}
	if !strings.Contains(res.Submit.Subject, "Не указано") {
		t.Fatalf("expected placeholder in subject, got %q", res.Submit.Subject)
	}
	confirm := firstText(t, res.Actions)
	if confirm.Text != config.DefaultTexts().ConfirmRequest {
		t.Fatalf("expected generic confirmation, got %q", confirm.Text)
	}
}

func TestQuestionSubmission(t *testing.T) {
	e := newTestEngine()
	sess := state.Session{ChatID: 9, State: state.StateAwaitingQuestion}
	in := textInput(9, "Когда доставка?")
	in.FirstName = "Ivan"

	res := e.Transition(context.Background(), sess, in)

	if res.Submit == nil {
		t.Fatalf("expected question submission")
	}
	if !strings.Contains(res.Submit.Body, "Когда доставка?") || !strings.Contains(res.Submit.Body, "Ivan") {
		t.Fatalf("unexpected question body %q", res.Submit.Body)
	}
	if res.Submit.LogFields != nil {
		t.Fatalf("questions must not hit the application log")
	}
	if res.Session.State != state.StateStart {
		t.Fatalf("expected reset on success, got %q", res.Session.State)
	}
	if res.FailSession == nil || res.FailSession.State != state.StateAwaitingQuestion {
		t.Fatalf("expected failure branch to stay awaiting_question, got %+v", res.FailSession)
	}
}

func TestMenuLabelBeatsFreeTextInForm(t *testing.T) {
	e := newTestEngine()
	sess := state.Session{ChatID: 11, State: state.StateAwaitingName}

	res := e.Transition(context.Background(), sess, textInput(11, ButtonAskQuestion))

	if res.Session.State != state.StateAwaitingQuestion {
		t.Fatalf("expected menu label to preempt the name step, got %q", res.Session.State)
	}
	if res.Session.Name != "" {
		t.Fatalf("menu label must not be stored as a name, got %q", res.Session.Name)
	}
}

func TestTermsEmitsFetchAndKeepsStart(t *testing.T) {
	e := newTestEngine()
	sess := state.NewSession(12)

	res := e.Transition(context.Background(), sess, textInput(12, ButtonTerms))

	if res.Session.State != state.StateStart {
		t.Fatalf("expected start, got %q", res.Session.State)
	}
	if len(res.Actions) != 3 {
		t.Fatalf("expected typing + terms + menu, got %+v", res.Actions)
	}
	if _, ok := res.Actions[0].(SendChatAction); !ok {
		t.Fatalf("expected typing action first, got %T", res.Actions[0])
	}
	terms, ok := res.Actions[1].(SendTerms)
	if !ok || terms.FailText == "" {
		t.Fatalf("expected terms action with fallback text, got %+v", res.Actions[1])
	}
}

func TestUnmatchedInputLeavesSessionUnchanged(t *testing.T) {
	e := newTestEngine()
	sess := state.Session{ChatID: 13, State: state.StateStart, CarName: "car123"}

	res := e.Transition(context.Background(), sess, textInput(13, "что-то невнятное"))

	if !reflect.DeepEqual(res.Session, sess) {
		t.Fatalf("expected unchanged session, got %+v", res.Session)
	}
	reply := firstText(t, res.Actions)
	if reply.Text != config.DefaultTexts().NotUnderstood {
		t.Fatalf("expected not-understood reply, got %q", reply.Text)
	}
}

func TestTransitionIsDeterministic(t *testing.T) {
	e := newTestEngine()
	sess := state.Session{ChatID: 14, State: state.StateAwaitingName, CarName: "car"}
	in := textInput(14, "Ivan")

	first := e.Transition(context.Background(), sess, in)
	second := e.Transition(context.Background(), sess, in)

	if !reflect.DeepEqual(first.Session, second.Session) {
		t.Fatalf("sessions diverged: %+v vs %+v", first.Session, second.Session)
	}
	if !reflect.DeepEqual(first.Actions, second.Actions) {
		t.Fatalf("actions diverged")
	}
}

func TestResubmitAfterResetDoesNotResurrectOldData(t *testing.T) {
	e := newTestEngine()
	sess := state.Session{
		ChatID: 15, State: state.StateAwaitingComment,
		Name: "Ivan", Phone: "+1555",
	}

	first := e.Transition(context.Background(), sess, textInput(15, "ok"))
	// Replaying the same input on the already-reset session must not find
	// the cleared fields again.
	second := e.Transition(context.Background(), first.Session, textInput(15, "ok"))

	if second.Submit != nil {
		t.Fatalf("reset session must not produce a second submission")
	}
	if second.Session.Name != "" || second.Session.Phone != "" {
		t.Fatalf("stale data resurrected: %+v", second.Session)
	}
}
