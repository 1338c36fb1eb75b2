package notify

import (
	"officespace/internal/config"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// TelegramSender is the narrow slice of the bot API the sink needs.
type TelegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramSink pushes booking outcomes to a Telegram chat. Fire-and-forget:
// delivery errors are logged and never surface to the session.
type TelegramSink struct {
	bot    TelegramSender
	chatID int64
	logger zerolog.Logger
}

// NewTelegramSink connects to the bot API using the configured token.
func NewTelegramSink(cfg config.TelegramConfig, logger *zerolog.Logger) (*TelegramSink, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, err
	}
	bot.Debug = cfg.Debug

	return NewTelegramSinkWithSender(bot, cfg.ChatID, logger), nil
}

// NewTelegramSinkWithSender wires an existing sender; used in tests.
func NewTelegramSinkWithSender(bot TelegramSender, chatID int64, logger *zerolog.Logger) *TelegramSink {
	base := zerolog.Nop()
	if logger != nil {
		base = logger.With().Str("component", "telegram").Logger()
	}
	return &TelegramSink{bot: bot, chatID: chatID, logger: base}
}

func (s *TelegramSink) Success(message string) {
	s.send("✅ " + message)
}

func (s *TelegramSink) Failure(message string) {
	s.send("⚠️ " + message)
}

func (s *TelegramSink) send(text string) {
	msg := tgbotapi.NewMessage(s.chatID, text)
	if _, err := s.bot.Send(msg); err != nil {
		s.logger.Error().Err(err).Int64("chat_id", s.chatID).Msg("telegram send failed")
	}
}
