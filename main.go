package main

import (
	"context"
	"os/signal"
	"syscall"

	"foros-bot/config"
	httpapi "foros-bot/internal/api/http"
	tgapi "foros-bot/internal/api/telegram"
	"foros-bot/internal/logging"
	"foros-bot/internal/service"
	"foros-bot/internal/storage"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

const reviewsTopic = "staff-reviews"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	var repo service.StaffRepository
	if cfg.DatabaseURL != "" {
		repo = storage.NewPostgresRepository(config.MustInitPostgres(cfg.DatabaseURL))
		log.Info().Msg("using postgres staff repository")
	} else {
		jsonRepo, err := storage.OpenJSONFile(cfg.DataFile)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.DataFile).Msg("failed to open staff data")
		}
		repo = jsonRepo
		log.Info().Str("path", cfg.DataFile).Msg("using JSON staff repository")
	}

	var sessions service.SessionStore
	if cfg.RedisAddr != "" {
		sessions = storage.NewRedisSessionStore(config.MustInitRedis(cfg.RedisAddr), cfg.SessionTTL)
	} else {
		sessions = storage.NewMemorySessionStore(cfg.SessionTTL)
	}

	var publisher service.ReviewPublisher
	if cfg.KafkaBroker != "" {
		publisher = storage.NewKafkaPublisher(config.NewKafkaWriter(cfg.KafkaBroker, reviewsTopic))
		log.Info().Str("broker", cfg.KafkaBroker).Str("topic", reviewsTopic).Msg("review events enabled")
	}

	reviews := service.NewReviewService(repo, publisher, logging.NewLogger("reviews"))
	ranking := service.NewRankingService(repo)

	if cfg.HTTPAddr != "" {
		router := httpapi.NewRouter(httpapi.NewHandler(ranking))
		go httpapi.StartServer(cfg.HTTPAddr, router, logging.NewLogger("http"))
	}

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Telegram")
	}

	gateway := tgapi.NewBotGateway(api, logging.NewLogger("gateway"))
	handler := tgapi.NewHandler(
		reviews, ranking, repo, sessions, gateway,
		&storage.PhotoDir{Dir: cfg.PhotosDir},
		&service.TipQRGenerator{},
		logging.NewLogger("bot"),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tgapi.Run(ctx, api, handler, logging.NewLogger("bot"))
}
