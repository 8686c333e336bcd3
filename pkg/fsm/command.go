package fsm

import (
	"net/url"
	"strings"
)

// CommandKind discriminates the three shapes of inbound input.
type CommandKind int

const (
	CommandStart CommandKind = iota
	CommandMenu
	CommandText
)

// Command is the decoded form of a raw message text. Decoding happens once at
// the dispatcher boundary so the engine never branches on raw strings.
type Command struct {
	Kind    CommandKind
	Payload string // start payload, menu label, or free text
}

// Input is everything the engine sees about one inbound event.
type Input struct {
	ChatID       int64
	Command      Command
	ContactPhone string // structured contact payload, wins over typed text
	FirstName    string // best-effort sender name from transport metadata
}

// ParseCommand classifies raw text. "/start" is recognized first regardless of
// state; its payload is url-decoded since deep links arrive percent-encoded.
func ParseCommand(text string) Command {
	if strings.HasPrefix(text, "/start") {
		payload := strings.TrimSpace(strings.TrimPrefix(text, "/start"))
		if decoded, err := url.QueryUnescape(payload); err == nil {
			payload = decoded
		}
		return Command{Kind: CommandStart, Payload: payload}
	}
	switch text {
	case ButtonSubmitRequest, ButtonTerms, ButtonAskQuestion:
		return Command{Kind: CommandMenu, Payload: text}
	}
	return Command{Kind: CommandText, Payload: text}
}
