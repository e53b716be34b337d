package telegram

import (
	"strings"

	"quizbot/internal/service"
)

// Classify переводит входящий текст в действие. Кнопки клавиатуры
// шлют обычный текст, поэтому команды принимаются и со слэшем, и без.
// Свободный текст без слэша считается ответом на вопрос; неизвестная
// слэш-команда до движка не доходит.
func Classify(text string) (service.Action, bool) {
	trimmed := strings.TrimSpace(text)

	switch trimmed {
	case "/start":
		return service.Action{Kind: service.ActionGreet}, true
	case "/Новый_вопрос", "Новый вопрос":
		return service.Action{Kind: service.ActionNewQuestion}, true
	case "/Сдаться", "Сдаться":
		return service.Action{Kind: service.ActionGiveUp}, true
	case "/Мой_счет", "Мой счёт":
		return service.Action{Kind: service.ActionQueryScore}, true
	case "/Топ", "Топ":
		return service.Action{Kind: service.ActionLeaderboard}, true
	}

	if strings.HasPrefix(trimmed, "/") {
		return service.Action{}, false
	}
	return service.Action{Kind: service.ActionSubmitAnswer, Text: text}, true
}
