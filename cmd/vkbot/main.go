package main

import (
	"context"
	"log"
	"strconv"

	"github.com/SevereCloud/vksdk/v3/api"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"quizbot/internal/config"
	"quizbot/internal/logging"
	"quizbot/internal/service"
	"quizbot/internal/store"
	"quizbot/internal/vk"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	if cfg.VKToken == "" {
		logger.Fatal("VK_BOT_TOKEN environment variable is required")
	}

	vkClient := api.NewVK(cfg.VKToken)

	// Предупреждения дублируются в чат администратора, если он задан.
	if cfg.VKAdminChatID != "" {
		adminID, err := strconv.Atoi(cfg.VKAdminChatID)
		if err != nil {
			logger.Fatal("invalid VK_ADMIN_CHAT_ID", zap.String("value", cfg.VKAdminChatID))
		}
		logger = logging.WithNotifier(logger, vk.Notifier(vkClient, adminID), zapcore.WarnLevel)
		logger.Info("log notifications enabled", zap.Int("admin_chat", adminID))
	}

	corpus, err := service.LoadCorpus(cfg.QuizFile)
	if err != nil {
		logger.Fatal("loading quiz corpus failed", zap.Error(err))
	}
	logger.Info("quiz corpus loaded",
		zap.String("file", cfg.QuizFile), zap.Int("questions", corpus.Len()))

	sessions := newSessionStore(cfg, logger)
	engine := service.NewEngine(corpus, sessions, logger)

	bot, err := vk.NewBot(vkClient, engine, logger)
	if err != nil {
		logger.Fatal("creating vk bot failed", zap.Error(err))
	}

	logger.Info("vk bot is starting")
	bot.Run()
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
