package vk

import (
	"strings"

	"quizbot/internal/service"
)

// Classify переводит входящий текст в действие. "Начать" шлёт
// стандартная VK-кнопка старта; остальные метки совпадают с
// клавиатурой бота.
func Classify(text string) (service.Action, bool) {
	trimmed := strings.TrimSpace(text)

	switch trimmed {
	case "/start", "Начать":
		return service.Action{Kind: service.ActionGreet}, true
	case "Новый_вопрос", "Новый вопрос":
		return service.Action{Kind: service.ActionNewQuestion}, true
	case "Сдаться":
		return service.Action{Kind: service.ActionGiveUp}, true
	case "Мой_счет", "Мой счёт":
		return service.Action{Kind: service.ActionQueryScore}, true
	case "Топ":
		return service.Action{Kind: service.ActionLeaderboard}, true
	}

	if strings.HasPrefix(trimmed, "/") {
		return service.Action{}, false
	}
	return service.Action{Kind: service.ActionSubmitAnswer, Text: text}, true
}
