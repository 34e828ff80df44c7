package bot

import (
	"context"
	"time"

	"github.com/rbhz/dictionary-lookup/app/lookup"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type Handler interface {
	Handle(ctx context.Context, b Bot, u tgbotapi.Update)
	Passthrough(tgbotapi.Update) bool
	Match(u tgbotapi.Update) bool
}

// TelegramBot handles Telegram API intragration and updates handling
type TelegramBot struct {
	UserName string
	api      *tgbotapi.BotAPI
	lookup   *lookup.Service
	handlers []Handler
	timeout  time.Duration
}

func (b *TelegramBot) processUpdate(ctx context.Context, u tgbotapi.Update) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	for _, handler := range b.handlers {
		if handler.Match(u) {
			handler.Handle(ctx, b, u)
			if !handler.Passthrough(u) {
				break
			}
		}
	}
}

// Start processes updates until ctx is cancelled
func (b *TelegramBot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()
	for u := range updates {
		b.processUpdate(ctx, u)
	}
}

func (b *TelegramBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	message, err := b.api.Send(c)
	if err != nil {
		log.Error().Err(err).Msg("failed to send")
	}
	return message, err
}

func (b *TelegramBot) Lookup() *lookup.Service {
	return b.lookup
}

// NewTelegramBot creates bot, lookups are limited by timeout
func NewTelegramBot(token string, service *lookup.Service, handlers []Handler, timeout time.Duration) (*TelegramBot, error) {
	botAPI, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize bot")
	}
	log.Info().Str("username", botAPI.Self.UserName).Msg("telegram bot initialized")
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &TelegramBot{
		UserName: botAPI.Self.UserName,
		api:      botAPI,
		lookup:   service,
		handlers: handlers,
		timeout:  timeout,
	}, nil
}
