// Package notify tells the user about registered plan results.
package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/rustyeddy/compound/currency"
	"github.com/rustyeddy/compound/internal/logger"
	"github.com/rustyeddy/compound/journal"
)

type TelegramConfig struct {
	Enabled  bool   `json:"enabled" yaml:"enabled"`
	BotToken string `json:"bot_token,omitempty" yaml:"bot_token,omitempty"`
	ChatID   int64  `json:"chat_id,omitempty" yaml:"chat_id,omitempty"`
}

// Message is the text sent for one result, e.g.
// "Journal Updated: +$4.00 (step 1 WIN)".
func Message(step int, outcome journal.Outcome, amount float64, code currency.Code) string {
	return fmt.Sprintf("Journal Updated: %s (step %d %s)",
		currency.FormatSigned(amount, code), step, outcome)
}

type Notifier interface {
	NotifyResult(ctx context.Context, step int, outcome journal.Outcome, amount float64) error
}

// Nop discards notifications.
type Nop struct{}

func (Nop) NotifyResult(ctx context.Context, step int, outcome journal.Outcome, amount float64) error {
	return nil
}

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Telegram struct {
	bot      sender
	chatID   int64
	currency currency.Code
	logger   *logger.Logger
}

// NewTelegram connects the bot. A disabled or failing bot yields Nop so that
// notifications never block registrations.
func NewTelegram(cfg TelegramConfig, code currency.Code, log *logger.Logger) Notifier {
	if !cfg.Enabled {
		return Nop{}
	}

	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Error("failed to create telegram bot", "error", err)
		return Nop{}
	}
	log.Info("telegram bot connected", "username", bot.Self.UserName)

	return &Telegram{bot: bot, chatID: cfg.ChatID, currency: code, logger: log}
}

func (t *Telegram) NotifyResult(ctx context.Context, step int, outcome journal.Outcome, amount float64) error {
	msg := tgbotapi.NewMessage(t.chatID, Message(step, outcome, amount, t.currency))
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}
