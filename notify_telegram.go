package main

import (
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// BotAPI abstracts the Telegram bot methods used by the app.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramChannel mirrors notifications to a Telegram chat.
type TelegramChannel struct {
	Bot    BotAPI
	ChatID int64
}

func (t *TelegramChannel) Publish(n Notification) {
	text := fmt.Sprintf("*%s*\n\n%s", n.Title, n.Body)
	msg := tgbotapi.NewMessage(t.ChatID, text)
	msg.ParseMode = "Markdown"
	if _, err := t.Bot.Send(msg); err != nil {
		slog.Error("Telegram send failed", "err", err)
	}
}
