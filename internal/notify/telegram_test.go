package notify

import (
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	err  error
	sent []tgbotapi.MessageConfig
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{}, f.err
}

func TestTelegramSinkSuccess(t *testing.T) {
	sender := &fakeSender{}
	sink := NewTelegramSinkWithSender(sender, 42, nil)

	sink.Success("Место «A1» успешно забронировано на 1 час!")

	require.Len(t, sender.sent, 1)
	assert.Equal(t, int64(42), sender.sent[0].ChatID)
	assert.Equal(t, "✅ Место «A1» успешно забронировано на 1 час!", sender.sent[0].Text)
}

func TestTelegramSinkFailure(t *testing.T) {
	sender := &fakeSender{}
	sink := NewTelegramSinkWithSender(sender, 42, nil)

	sink.Failure("Не удалось забронировать место «A1»")

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "⚠️ Не удалось забронировать место «A1»", sender.sent[0].Text)
}

func TestTelegramSinkSendErrorIsSwallowed(t *testing.T) {
	sender := &fakeSender{err: errors.New("telegram down")}
	sink := NewTelegramSinkWithSender(sender, 42, nil)

	// Must not panic; delivery is best-effort.
	sink.Success("сообщение")
	sink.Failure("сообщение")
	assert.Len(t, sender.sent, 2)
}
