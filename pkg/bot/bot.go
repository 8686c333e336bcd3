package bot

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Client struct {
	api  *tgbotapi.BotAPI
	Self *tgbotapi.User
}

func NewClient(token string) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("bot token cannot be empty")
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot api instance: %w", err)
	}

	api.Debug = false

	log.Printf("Verifying API token...")
	ok, err := api.GetMe()
	if err != nil {
		return nil, fmt.Errorf("failed to verify bot token with GetMe(): %w", err)
	}
	log.Printf("Token verified successfully.")

	client := &Client{
		api:  api,
		Self: &ok,
	}

	return client, nil
}

func (c *Client) SendMessage(chatID int64, text string, markup interface{}) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(chatID, text)

	msg.ParseMode = ""

	if markup != nil {
		msg.ReplyMarkup = markup
	}

	sentMsg, err := c.api.Send(msg)
	if err != nil {
		return tgbotapi.Message{}, fmt.Errorf("failed to send message: %w", err)
	}
	return sentMsg, nil
}

func (c *Client) SendChatAction(chatID int64, action string) error {
	cfg := tgbotapi.NewChatAction(chatID, action)
	_, err := c.api.Request(cfg)
	if err != nil {
		return fmt.Errorf("failed to send chat action %q: %w", action, err)
	}
	return nil
}

// RegisterWebhook points Telegram at the given public URL. An empty URL means
// the webhook is registered out of band (e.g. via curl during deployment).
func (c *Client) RegisterWebhook(publicURL string) error {
	if publicURL == "" {
		log.Printf("WEBHOOK_URL not set, assuming the webhook is registered out of band.")
		return nil
	}
	wh, err := tgbotapi.NewWebhook(publicURL)
	if err != nil {
		return fmt.Errorf("failed to build webhook config for %q: %w", publicURL, err)
	}
	if _, err := c.api.Request(wh); err != nil {
		return fmt.Errorf("failed to register webhook %q: %w", publicURL, err)
	}
	log.Printf("Webhook registered at %s", publicURL)
	return nil
}
