package service

// ActionKind — распознанное намерение пользователя. Классификацией
// занимается транспорт, движок получает уже готовый Action.
type ActionKind int

const (
	ActionGreet ActionKind = iota
	ActionNewQuestion
	ActionSubmitAnswer
	ActionGiveUp
	ActionQueryScore
	ActionLeaderboard
)

// Action — одно входящее действие пользователя.
type Action struct {
	Kind ActionKind
	// Text — текст ответа для ActionSubmitAnswer.
	Text string
	// Name — отображаемое имя, которое транспорт разрешил сам.
	Name string
}

// Response — что показать пользователю. Транспорт сам решает, как
// именно отрисовать клавиатуру.
type Response struct {
	Text         string
	ShowKeyboard bool
}
