package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rbhz/dictionary-lookup/app/api"
	"github.com/rbhz/dictionary-lookup/app/bot"
	"github.com/rbhz/dictionary-lookup/app/clients/dictionaryapi"
	"github.com/rbhz/dictionary-lookup/app/db"
	"github.com/rbhz/dictionary-lookup/app/lookup"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"
	log "github.com/rs/zerolog/log"
	bolt "go.etcd.io/bbolt"
)

type Opts struct {
	BotToken    string        `long:"bot-token" env:"BOT_TOKEN" description:"Telegram bot token, bot is disabled when empty"`
	BoltDB      string        `long:"boltdb" env:"BOLTDB" description:"Path to BoltDB for sessions"`
	RedisURL    string        `long:"redis" env:"REDIS_URL" description:"Redis database URL for sessions"`
	JWTSecret   string        `long:"jwt" env:"JWT_SECRET" required:"true" description:"JWT secret"`
	Port        int           `long:"port" env:"PORT" default:"8080" description:"Port to listen on"`
	APIURL      string        `long:"api-url" env:"DICTIONARY_API_URL" default:"https://api.dictionaryapi.dev/api/v2/entries/en/" description:"Dictionary API entries URL"`
	HTTPTimeout time.Duration `long:"http-timeout" env:"HTTP_TIMEOUT" default:"0s" description:"Dictionary API request timeout, 0 disables it"`
	Debug       bool          `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

func main() {
	var opts Opts
	_, err := flags.ParseArgs(&opts, os.Args)
	if err != nil {
		return
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if opts.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storage, closeStorage := getStorage(opts)
	defer closeStorage()

	client := dictionaryapi.NewClient(&http.Client{Timeout: opts.HTTPTimeout}, opts.APIURL)
	service := lookup.NewService(client, storage)

	// initialize Telegram bot
	if opts.BotToken != "" {
		b, err := bot.NewTelegramBot(opts.BotToken, service, bot.DefaultHandlers(), opts.HTTPTimeout)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize telegram bot")
		}
		go b.Start(ctx)
	}

	if err := api.NewServer(service, opts.JWTSecret).Run(ctx, opts.Port); err != nil {
		log.Fatal().Err(err).Msg("failed to run API server")
	}
	log.Info().Msg("server stopped")
}

func getStorage(opts Opts) (db.Storage, func()) {
	switch {
	case opts.RedisURL != "":
		redisStorage, err := db.NewRedisStorage(opts.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create redis client")
		}
		return redisStorage, func() {
			if err := redisStorage.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close redis client")
			}
		}
	case opts.BoltDB != "":
		boltDB, err := bolt.Open(opts.BoltDB, 0600, nil)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create boltDB database")
		}
		boltStorage, err := db.NewBoltStorage(boltDB)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to bolt storage")
		}
		return boltStorage, func() {
			err := boltDB.Close()
			if err != nil {
				log.Error().Err(err).Msg("failed to close boltDB database")
			}
		}
	default:
		return db.NewInMemoryStorage(), func() {}
	}
}
