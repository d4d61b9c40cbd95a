package telegram

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	tele "gopkg.in/telebot.v3"
)

const sendTimeout = 20 * time.Second

// Backend delivers messages to a Telegram chat
type Backend struct {
	token  string
	chatID string
}

// New creates a Telegram backend. Empty credentials produce an
// unconfigured backend that the sender skips.
func New(token, chatID string) *Backend {
	return &Backend{token: token, chatID: chatID}
}

// Name implements delivery.Backend
func (b *Backend) Name() string {
	return "telegram"
}

// Configured implements delivery.Backend
func (b *Backend) Configured() bool {
	return b.token != "" && b.chatID != ""
}

// Send implements delivery.Backend. The bot handle is created per send;
// the program delivers at most one message per run.
func (b *Backend) Send(text string) error {
	chatID, err := strconv.ParseInt(b.chatID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid telegram chat id %q: %w", b.chatID, err)
	}

	bot, err := tele.NewBot(tele.Settings{
		Token:  b.token,
		Client: &http.Client{Timeout: sendTimeout},
	})
	if err != nil {
		return fmt.Errorf("create telegram bot: %w", err)
	}

	if _, err := bot.Send(tele.ChatID(chatID), text); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	return nil
}
