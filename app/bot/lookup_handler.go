package bot

import (
	"bytes"
	"context"
	"strings"
	"text/template"

	"github.com/rbhz/dictionary-lookup/app/db"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

var sessionTmpl = template.Must(template.New("session").Parse(sessionTemplate))

// GetSessionMessageText executes template with session state
func GetSessionMessageText(session db.Session) string {
	buf := &bytes.Buffer{}
	if err := sessionTmpl.Execute(buf, session); err != nil {
		log.Error().Err(err).Str("session", session.ID).Msg("failed to format session template")
	}
	return buf.String()
}

// audioURL makes protocol relative links absolute
func audioURL(audio string) string {
	if strings.HasPrefix(audio, "//") {
		return "https:" + audio
	}
	return audio
}

// QueryHandler stores plain text messages as the session query
type QueryHandler struct {
	neverPassthorugh
}

// Match returns true if message is a text
func (h QueryHandler) Match(u tgbotapi.Update) bool {
	return u.Message != nil && u.Message.Text != "" && !u.Message.IsCommand()
}

// Handle replaces session query with message text
func (h QueryHandler) Handle(ctx context.Context, b Bot, u tgbotapi.Update) {
	chatID := u.Message.Chat.ID
	id := chatSessionID(chatID)
	if _, err := b.Lookup().MountAs(id); err != nil {
		log.Error().Err(err).Int64("chat", chatID).Msg("failed to mount session")
		return
	}
	session, err := b.Lookup().TextChange(id, u.Message.Text)
	if err != nil {
		log.Error().Err(err).Int64("chat", chatID).Msg("failed to update query")
		return
	}
	_, _ = b.Send(tgbotapi.NewMessage(chatID, "Query: "+session.Query+"\nSend /search to look it up."))
}

// SearchHandler looks up the session query on /search
type SearchHandler struct {
	neverPassthorugh
}

// Match returns true for /search command
func (h SearchHandler) Match(u tgbotapi.Update) bool {
	return u.Message != nil && u.Message.Command() == "search"
}

// Handle triggers lookup and sends rendered state with pronunciation
func (h SearchHandler) Handle(ctx context.Context, b Bot, u tgbotapi.Update) {
	chatID := u.Message.Chat.ID
	id := chatSessionID(chatID)
	if _, err := b.Lookup().MountAs(id); err != nil {
		log.Error().Err(err).Int64("chat", chatID).Msg("failed to mount session")
		return
	}
	session, err := b.Lookup().Trigger(ctx, id)
	if err != nil {
		log.Error().Err(err).Int64("chat", chatID).Msg("failed to lookup word")
		return
	}

	text := tgbotapi.NewMessage(chatID, GetSessionMessageText(session))
	text.ParseMode = tgbotapi.ModeHTML
	if _, err := b.Send(text); err == nil && session.Result != nil && session.Result.HasAudio() {
		audio := tgbotapi.NewAudio(chatID, tgbotapi.FileURL(audioURL(session.Result.Phonetics.Audio)))
		_, _ = b.Send(audio)
	}
}
