// Package notify delivers review reminders to the user's Telegram chat.
// Only outbound messages are sent; there is no interactive bot.
package notify

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramNotifier sends reminders through the Telegram Bot API
type TelegramNotifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier creates a notifier for the given bot token and chat
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram bot token is empty")
	}
	if chatID == 0 {
		return nil, fmt.Errorf("telegram chat ID is not set")
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	return &TelegramNotifier{api: api, chatID: chatID}, nil
}

// SendDueReminder tells the user how many words are waiting for review
func (n *TelegramNotifier) SendDueReminder(count int) error {
	text := fmt.Sprintf("You have %d %s due for review.", count, pluralWords(count))
	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send reminder: %w", err)
	}
	return nil
}

func pluralWords(count int) string {
	if count == 1 {
		return "word"
	}
	return "words"
}
