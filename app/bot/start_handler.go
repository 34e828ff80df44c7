package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

type StartHandler struct {
	neverPassthorugh
}

func (h StartHandler) Match(u tgbotapi.Update) bool {
	return u.Message != nil && u.Message.Command() == "start"
}

func (h StartHandler) Handle(ctx context.Context, b Bot, u tgbotapi.Update) {
	if _, err := b.Lookup().MountAs(chatSessionID(u.Message.Chat.ID)); err != nil {
		log.Error().Err(err).Int64("chat", u.Message.Chat.ID).Msg("failed to mount session")
		return
	}
	_, _ = b.Send(tgbotapi.NewMessage(u.Message.Chat.ID, "Hi! Send me a word, then /search to look it up."))
}

// StopHandler drops chat session on /stop
type StopHandler struct {
	neverPassthorugh
}

func (h StopHandler) Match(u tgbotapi.Update) bool {
	return u.Message != nil && u.Message.Command() == "stop"
}

func (h StopHandler) Handle(ctx context.Context, b Bot, u tgbotapi.Update) {
	if err := b.Lookup().Unmount(chatSessionID(u.Message.Chat.ID)); err != nil {
		log.Error().Err(err).Int64("chat", u.Message.Chat.ID).Msg("failed to unmount session")
		return
	}
	_, _ = b.Send(tgbotapi.NewMessage(u.Message.Chat.ID, "Bye!"))
}
