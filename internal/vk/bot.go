package vk

import (
	"context"
	"strconv"
	"time"

	"github.com/SevereCloud/vksdk/v3/api"
	"github.com/SevereCloud/vksdk/v3/events"
	longpoll "github.com/SevereCloud/vksdk/v3/longpoll-bot"
	"github.com/SevereCloud/vksdk/v3/object"
	"go.uber.org/zap"

	"quizbot/internal/service"
)

const (
	handleTimeout  = 10 * time.Second
	reconnectDelay = 5 * time.Second
)

type Bot struct {
	vk     *api.VK
	lp     *longpoll.LongPoll
	engine *service.Engine
	logger *zap.Logger
}

func NewBot(vkClient *api.VK, engine *service.Engine, logger *zap.Logger) (*Bot, error) {
	lp, err := longpoll.NewLongPollCommunity(vkClient)
	if err != nil {
		return nil, err
	}

	b := &Bot{
		vk:     vkClient,
		lp:     lp,
		engine: engine,
		logger: logger,
	}
	lp.MessageNew(func(_ context.Context, obj events.MessageNewObject) {
		b.handleMessage(obj.Message)
	})
	return b, nil
}

// Run слушает long poll и переподключается после обрывов. Возвращается
// только после Shutdown.
func (b *Bot) Run() {
	for {
		b.logger.Info("listening for vk events")
		err := b.lp.Run()
		if err == nil {
			return
		}
		b.logger.Error("long poll failed, reconnecting", zap.Error(err))
		time.Sleep(reconnectDelay)
	}
}

func (b *Bot) Shutdown() {
	b.lp.Shutdown()
}

func (b *Bot) handleMessage(msg object.MessagesMessage) {
	userID := strconv.Itoa(msg.FromID)

	action, ok := Classify(msg.Text)
	if !ok {
		b.send(msg.PeerID, "Неизвестная команда", false)
		return
	}
	if action.Kind == service.ActionGreet || action.Kind == service.ActionQueryScore {
		action.Name = b.firstName(msg.FromID)
	}

	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	resp, err := b.engine.Handle(ctx, userID, action)
	if err != nil {
		b.logger.Error("handling message failed",
			zap.String("user", userID), zap.Error(err))
		b.send(msg.PeerID, "Что-то пошло не так, попробуй ещё раз позже", true)
		return
	}

	b.send(msg.PeerID, resp.Text, resp.ShowKeyboard)
}

func (b *Bot) send(peerID int, text string, withKeyboard bool) {
	p := api.Params{
		"peer_id":   peerID,
		"random_id": 0,
		"message":   text,
	}
	if withKeyboard {
		p["keyboard"] = quizKeyboard().ToJSON()
	}

	if _, err := b.vk.MessagesSend(p); err != nil {
		b.logger.Error("sending message failed", zap.Error(err))
	}
}

func (b *Bot) firstName(userID int) string {
	users, err := b.vk.UsersGet(api.Params{"user_ids": userID})
	if err != nil || len(users) == 0 {
		b.logger.Warn("resolving user name failed",
			zap.Int("user", userID), zap.Error(err))
		return ""
	}
	return users[0].FirstName
}

func quizKeyboard() *object.MessagesKeyboard {
	kb := object.NewMessagesKeyboard(true)
	kb.AddRow()
	kb.AddTextButton("Новый вопрос", "", "primary")
	kb.AddTextButton("Сдаться", "", "negative")
	kb.AddTextButton("Мой счёт", "", "positive")
	kb.AddRow()
	kb.AddTextButton("Топ", "", "secondary")
	return kb
}

// Notifier возвращает функцию доставки логов в чат администратора.
func Notifier(vkClient *api.VK, peerID int) func(text string) error {
	return func(text string) error {
		_, err := vkClient.MessagesSend(api.Params{
			"peer_id":   peerID,
			"random_id": 0,
			"message":   text,
		})
		return err
	}
}
