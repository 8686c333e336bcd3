package fsm

import (
	"context"
	"log"
	"time"

	"carleadbot/pkg/ports/botport"
	"carleadbot/pkg/ports/notifyport"
	"carleadbot/pkg/state"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Dispatcher orchestrates one inbound event end to end: parse, load session,
// run the engine, persist, execute side effects. All domain failures are
// absorbed here and translated into a user-facing message plus a log line.
type Dispatcher struct {
	store         state.Store
	engine        *Engine
	botPort       botport.BotPort
	notifier      notifyport.Notifier
	fetcher       notifyport.Fetcher
	appLog        notifyport.AppLogger
	conditionsURL string
	internalError string
}

func NewDispatcher(
	store state.Store,
	engine *Engine,
	botPort botport.BotPort,
	notifier notifyport.Notifier,
	fetcher notifyport.Fetcher,
	appLog notifyport.AppLogger,
	conditionsURL string,
) *Dispatcher {
	if appLog == nil {
		appLog = nopAppLogger{}
	}
	return &Dispatcher{
		store:         store,
		engine:        engine,
		botPort:       botPort,
		notifier:      notifier,
		fetcher:       fetcher,
		appLog:        appLog,
		conditionsURL: conditionsURL,
		internalError: engine.texts.InternalError,
	}
}

type nopAppLogger struct{}

func (nopAppLogger) Append(ctx context.Context, rec notifyport.Record) error { return nil }

// HandleUpdate processes one Telegram update. Updates without a message or
// chat are ignored; everything else runs a full turn. The per-chat critical
// section covers load, transition, notification delivery and save, so the
// persisted session always reflects the engine's branch decision and turns
// for one chat apply in acceptance order.
func (d *Dispatcher) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil {
		log.Printf("[HandleUpdate] Ignoring update %d without a message", update.UpdateID)
		return
	}
	if msg.Chat == nil {
		log.Printf("[HandleUpdate] Ignoring message without a chat (update %d)", update.UpdateID)
		return
	}

	chatID := msg.Chat.ID
	input := Input{
		ChatID:  chatID,
		Command: ParseCommand(msg.Text),
	}
	if msg.Contact != nil {
		input.ContactPhone = msg.Contact.PhoneNumber
	}
	if msg.From != nil {
		input.FirstName = msg.From.FirstName
	}

	var replies []Action
	err := d.store.Update(ctx, chatID, func(sess state.Session) (state.Session, error) {
		res := d.engine.Transition(ctx, sess, input)
		if res.Submit == nil {
			replies = res.Actions
			return res.Session, nil
		}

		if nerr := d.notifier.Send(ctx, res.Submit.Subject, res.Submit.Body); nerr != nil {
			log.Printf("[HandleUpdate] Notification delivery failed for chat %d: %v", chatID, nerr)
			replies = res.FailActions
			if res.FailSession != nil {
				return *res.FailSession, nil
			}
			return sess, nil
		}

		if len(res.Submit.LogFields) > 0 {
			rec := notifyport.Record{Timestamp: time.Now(), Fields: res.Submit.LogFields}
			if lerr := d.appLog.Append(ctx, rec); lerr != nil {
				log.Printf("[HandleUpdate] Application log append failed for chat %d: %v", chatID, lerr)
			}
		}
		replies = res.Actions
		return res.Session, nil
	})
	if err != nil {
		// The turn could not be made durable. Never confirm anything the
		// user could mistake for an accepted submission.
		log.Printf("[HandleUpdate] Failed to persist session for chat %d: %v", chatID, err)
		replies = []Action{SendText{Text: d.internalError}}
	}

	d.execute(ctx, chatID, replies)
}

// execute runs outbound actions in emission order. Send failures are logged
// and do not abort the remaining actions.
func (d *Dispatcher) execute(ctx context.Context, chatID int64, actions []Action) {
	for _, a := range actions {
		switch act := a.(type) {
		case SendChatAction:
			if err := d.botPort.SendChatAction(ctx, chatID, act.Action); err != nil {
				log.Printf("[execute] Chat action failed for chat %d: %v", chatID, err)
			}
		case SendText:
			if _, err := d.botPort.SendMessage(ctx, chatID, act.Text, act.Markup); err != nil {
				if botport.IsCode(err, "rate_limited") {
					log.Printf("[execute] Send rate limited for chat %d, dropping reply: %v", chatID, err)
				} else {
					log.Printf("[execute] Send failed for chat %d: %v", chatID, err)
				}
			}
		case SendTerms:
			text, err := d.fetcher.FetchText(ctx, d.conditionsURL)
			if err != nil {
				log.Printf("[execute] Terms fetch failed for chat %d: %v", chatID, err)
				text = act.FailText
			}
			if _, err := d.botPort.SendMessage(ctx, chatID, text, nil); err != nil {
				log.Printf("[execute] Terms send failed for chat %d: %v", chatID, err)
			}
		default:
			log.Printf("[execute] Unknown action %T for chat %d", a, chatID)
		}
	}
}
