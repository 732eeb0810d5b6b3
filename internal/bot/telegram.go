package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/omarshaarawi/flickerreport/internal/service"
)

// Telegram rejects messages longer than this, and a full weekly report with
// every table can exceed it.
const maxMessageLen = 4096

var commands = []tgbotapi.BotCommand{
	{Command: "report", Description: "Full weekly report"},
	{Command: "standings", Description: "Current standings"},
	{Command: "matchups", Description: "This week's matchups"},
	{Command: "help", Description: "List available commands"},
}

type TelegramBot struct {
	bot     *tgbotapi.BotAPI
	handler *Handler
	chatID  int64
}

func NewTelegramBot(token string, chatID int64, reportService *service.ReportService) (*TelegramBot, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		slog.Warn("Failed to register bot commands", "error", err)
	}

	handler := NewHandler(reportService)

	return &TelegramBot{
		bot:     bot,
		handler: handler,
		chatID:  chatID,
	}, nil
}

func (t *TelegramBot) Start(ctx context.Context) error {
	slog.Info("Authorized on account", "username", t.bot.Self.UserName)
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := t.bot.GetUpdatesChan(u)

	for {
		select {
		case update := <-updates:
			if update.Message == nil {
				continue
			}

			if update.Message.IsCommand() {
				msg := t.handler.HandleCommand(update)
				if err := t.send(msg.ChatID, msg.Text); err != nil {
					slog.Error("Error sending message", "error", err)
				}
			}
		case <-ctx.Done():
			return nil
		}
	}
}

func (t *TelegramBot) SendMessage(text string) error {
	if t.chatID == 0 {
		slog.Error("Chat ID not set")
		return fmt.Errorf("chat ID not set")
	}
	return t.send(t.chatID, text)
}

func (t *TelegramBot) send(chatID int64, text string) error {
	for _, chunk := range splitMessage(text) {
		msg := tgbotapi.NewMessage(chatID, chunk)
		msg.ParseMode = "Markdown"
		if _, err := t.bot.Send(msg); err != nil {
			slog.Error("Error sending message", "error", err)
			return err
		}
	}
	return nil
}

// splitMessage breaks text into chunks that fit the Telegram limit, cutting
// at the last newline before the limit so report sections stay intact.
func splitMessage(text string) []string {
	if len(text) <= maxMessageLen {
		return []string{text}
	}

	var chunks []string
	for len(text) > maxMessageLen {
		cut := strings.LastIndexByte(text[:maxMessageLen], '\n')
		if cut <= 0 {
			cut = maxMessageLen
		}
		chunks = append(chunks, strings.TrimRight(text[:cut], "\n"))
		text = strings.TrimLeft(text[cut:], "\n")
	}
	if text != "" {
		chunks = append(chunks, text)
	}
	return chunks
}

func helpText() string {
	var b strings.Builder
	b.WriteString("Available commands:\n")
	for _, c := range commands {
		fmt.Fprintf(&b, "/%s - %s\n", c.Command, c.Description)
	}
	return strings.TrimRight(b.String(), "\n")
}
