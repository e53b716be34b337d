package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"quizbot/internal/config"
	"quizbot/internal/logging"
	"quizbot/internal/service"
	"quizbot/internal/store"
	"quizbot/internal/telegram"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	if cfg.TelegramToken == "" {
		logger.Fatal("TELEGRAM_BOT_TOKEN environment variable is required")
	}

	corpus, err := service.LoadCorpus(cfg.QuizFile)
	if err != nil {
		logger.Fatal("loading quiz corpus failed", zap.Error(err))
	}
	logger.Info("quiz corpus loaded",
		zap.String("file", cfg.QuizFile), zap.Int("questions", corpus.Len()))

	sessions := newSessionStore(cfg, logger)
	engine := service.NewEngine(corpus, sessions, logger)

	bot, err := telegram.NewBot(cfg.TelegramToken, engine, logger)
	if err != nil {
		logger.Fatal("creating telegram bot failed", zap.Error(err))
	}

	logger.Info("telegram bot is starting")
	bot.Start()
}

// newSessionStore выбирает Redis, если он настроен, иначе память.
func newSessionStore(cfg *config.Config, logger *zap.Logger) service.SessionStore {
	if cfg.RedisAddr == "" {
		logger.Warn("REDIS_ADDR is not set, sessions will not survive restarts")
		return store.NewMemoryStore()
	}

	rs := store.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword)
	if err := rs.Ping(context.Background()); err != nil {
		logger.Fatal("redis is unreachable", zap.Error(err))
	}
	return rs
}
