package bot

import (
	"strconv"

	"github.com/rbhz/dictionary-lookup/app/lookup"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot describes bot for handlers
type Bot interface {
	Send(tgbotapi.Chattable) (tgbotapi.Message, error)
	Lookup() *lookup.Service
}

// DefaultHandlers returns handlers in matching order
func DefaultHandlers() []Handler {
	return []Handler{
		StartHandler{},
		StopHandler{},
		SearchHandler{},
		QueryHandler{},
	}
}

// neverPassthorugh implements Passthrough with always false
type neverPassthorugh struct{}

// Passthrough always returns false
func (h neverPassthorugh) Passthrough(u tgbotapi.Update) bool {
	return false
}

// chatSessionID returns lookup session id for a chat
func chatSessionID(chatID int64) string {
	return "tg:" + strconv.FormatInt(chatID, 10)
}
