package botport

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewBotErrorPreservesWrapped(t *testing.T) {
	cause := errors.New("boom")
	err := NewBotError("send_message", "bad_request", cause)

	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause to survive errors.Is")
	}
	if err.Error() != "send_message: bad_request: boom" {
		t.Fatalf("unexpected error string: %q", err.Error())
	}
}

func TestIsCodeMatchesThroughWrapping(t *testing.T) {
	err := NewBotError("send_message", "rate_limited", errors.New("too many requests"))
	wrapped := fmt.Errorf("dispatch turn: %w", err)

	if !IsCode(wrapped, "rate_limited") {
		t.Fatalf("expected IsCode to match through wrapping")
	}
	if IsCode(wrapped, "forbidden") {
		t.Fatalf("expected code mismatch to report false")
	}
}

func TestIsCodeRejectsNonBotErrors(t *testing.T) {
	if IsCode(nil, "rate_limited") {
		t.Fatalf("nil error must not match")
	}
	if IsCode(errors.New("plain"), "rate_limited") {
		t.Fatalf("plain error must not match")
	}
}
