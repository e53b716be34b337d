// Package config reads application configuration from environment
// variables with sensible defaults. Secrets (bot tokens, redis
// password) have no defaults on purpose.
package config

import "os"

type Config struct {
	TelegramToken string
	VKToken       string

	RedisAddr     string
	RedisPassword string

	QuizFile string

	// VKAdminChatID — куда дублировать предупреждения из логов.
	// Пустая строка выключает дублирование.
	VKAdminChatID string

	LogLevel string
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		VKToken:       os.Getenv("VK_BOT_TOKEN"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		QuizFile:      getEnv("QUIZ_FILE", "quiz-questions/questions.txt"),
		VKAdminChatID: os.Getenv("VK_ADMIN_CHAT_ID"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}
}

// getEnv reads an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
