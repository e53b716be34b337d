package telegram

import (
	"context"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"quizbot/internal/service"
)

const handleTimeout = 10 * time.Second

type Bot struct {
	api    *tgbotapi.BotAPI
	engine *service.Engine
	logger *zap.Logger
}

func NewBot(token string, engine *service.Engine, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &Bot{
		api:    api,
		engine: engine,
		logger: logger,
	}, nil
}

func (b *Bot) Start() {
	b.logger.Info("authorised on account", zap.String("account", b.api.Self.UserName))

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		if update.Message == nil || update.Message.Text == "" {
			continue
		}
		b.handleMessage(update.Message)
	}
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	userID := strconv.FormatInt(msg.Chat.ID, 10)

	action, ok := Classify(msg.Text)
	if !ok {
		b.send(msg.Chat.ID, "Неизвестная команда", false)
		return
	}
	action.Name = displayName(msg.From)

	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	resp, err := b.engine.Handle(ctx, userID, action)
	if err != nil {
		b.logger.Error("handling message failed",
			zap.String("user", userID), zap.Error(err))
		b.send(msg.Chat.ID, "Что-то пошло не так, попробуй ещё раз позже", true)
		return
	}

	b.send(msg.Chat.ID, resp.Text, resp.ShowKeyboard)
}

func (b *Bot) send(chatID int64, text string, withKeyboard bool) {
	msg := tgbotapi.NewMessage(chatID, text)
	if withKeyboard {
		msg.ReplyMarkup = quizKeyboard()
	}
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("sending message failed", zap.Error(err))
	}
}

func quizKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("Новый вопрос"),
			tgbotapi.NewKeyboardButton("Сдаться"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("Мой счёт"),
			tgbotapi.NewKeyboardButton("Топ"),
		),
	)
}

func displayName(user *tgbotapi.User) string {
	if user == nil {
		return ""
	}
	if user.UserName != "" {
		return user.UserName
	}
	return user.FirstName
}
