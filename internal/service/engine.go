package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Engine — машина состояний викторины. Своего состояния между
// вызовами не держит: всё живёт в SessionStore, поэтому один движок
// можно безопасно дёргать из обоих транспортов.
type Engine struct {
	corpus Corpus
	store  SessionStore
	logger *zap.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

func NewEngine(corpus Corpus, store SessionStore, logger *zap.Logger) *Engine {
	return &Engine{
		corpus: corpus,
		store:  store,
		logger: logger,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Handle обрабатывает одно действие пользователя и возвращает ответ.
// Ошибка означает недоступность хранилища; тексты для неё подбирает
// транспорт.
func (e *Engine) Handle(ctx context.Context, userID string, a Action) (Response, error) {
	switch a.Kind {
	case ActionGreet:
		return e.greet(ctx, userID, a.Name)
	case ActionNewQuestion:
		return e.newQuestion(ctx, userID)
	case ActionSubmitAnswer:
		return e.submitAnswer(ctx, userID, a.Text)
	case ActionGiveUp:
		return e.giveUp(ctx, userID)
	case ActionQueryScore:
		return e.queryScore(ctx, userID, a.Name)
	case ActionLeaderboard:
		return e.leaderboard(ctx)
	default:
		return Response{}, fmt.Errorf("unknown action kind %d", a.Kind)
	}
}

func (e *Engine) greet(ctx context.Context, userID, name string) (Response, error) {
	// Заводим счёт при первом контакте.
	if _, err := e.store.Score(ctx, userID); err != nil {
		return Response{}, err
	}
	if name != "" {
		if err := e.store.SetName(ctx, userID, name); err != nil {
			return Response{}, err
		}
	}

	e.logger.Info("new user greeted", zap.String("user", userID), zap.String("name", name))

	text := fmt.Sprintf(
		"🥳🥳🥳\nПриветствуем тебя, %s, в нашей викторине!\nНажми на кнопку «Новый вопрос»",
		displayName(name))
	return Response{Text: text, ShowKeyboard: true}, nil
}

func (e *Engine) newQuestion(ctx context.Context, userID string) (Response, error) {
	q := e.pick()
	if err := e.store.SetCurrentQuestion(ctx, userID, q); err != nil {
		return Response{}, err
	}

	e.logger.Info("new question issued",
		zap.String("user", userID), zap.Int("question", q.Index))

	return Response{Text: questionText(q)}, nil
}

func (e *Engine) submitAnswer(ctx context.Context, userID, answer string) (Response, error) {
	current, err := e.store.CurrentQuestion(ctx, userID)
	if err != nil {
		return Response{}, err
	}
	if current == nil {
		return Response{Text: "Сначала запроси новый вопрос!", ShowKeyboard: true}, nil
	}

	var text string
	if answersMatch(answer, current.Answer) {
		if err := e.store.IncrementScore(ctx, userID); err != nil {
			return Response{}, err
		}
		text = "✅ Правильно!"
	} else {
		text = "❌ Не-а"
	}

	// Следующий вопрос пользователь запрашивает сам.
	if err := e.store.ClearCurrentQuestion(ctx, userID); err != nil {
		return Response{}, err
	}

	e.logger.Info("answer checked",
		zap.String("user", userID), zap.Int("question", current.Index))

	text += "\nНажми «Новый вопрос» для продолжения!"
	return Response{Text: text, ShowKeyboard: true}, nil
}

func (e *Engine) giveUp(ctx context.Context, userID string) (Response, error) {
	current, err := e.store.CurrentQuestion(ctx, userID)
	if err != nil {
		return Response{}, err
	}
	if current == nil {
		return Response{Text: "Пожалуйста, запросите вопрос", ShowKeyboard: true}, nil
	}

	next := e.pickOther(current.Index)
	if err := e.store.SetCurrentQuestion(ctx, userID, next); err != nil {
		return Response{}, err
	}

	e.logger.Info("user gave up",
		zap.String("user", userID), zap.Int("question", current.Index))

	text := fmt.Sprintf("✅ Правильный ответ был: %s\n\n%s",
		current.Answer, questionText(next))
	return Response{Text: text, ShowKeyboard: true}, nil
}

func (e *Engine) queryScore(ctx context.Context, userID, name string) (Response, error) {
	score, err := e.store.Score(ctx, userID)
	if err != nil {
		return Response{}, err
	}

	text := fmt.Sprintf("%s, твой счёт: %d правильных ответов!", displayName(name), score)
	return Response{Text: text, ShowKeyboard: true}, nil
}

func (e *Engine) leaderboard(ctx context.Context) (Response, error) {
	top, err := e.store.Top(ctx, leaderboardSize)
	if err != nil {
		return Response{}, err
	}
	return Response{Text: formatLeaderboard(top), ShowKeyboard: true}, nil
}

// pick выбирает равновероятный вопрос из корпуса. Индексы 1..N,
// Intn даёт полуинтервал [0, N), так что выход за границы невозможен.
func (e *Engine) pick() Question {
	e.mu.Lock()
	index := e.rng.Intn(e.corpus.Len()) + 1
	e.mu.Unlock()
	return e.corpus.At(index)
}

// pickOther выбирает вопрос, отличный от exclude, когда это возможно.
func (e *Engine) pickOther(exclude int) Question {
	if e.corpus.Len() == 1 {
		return e.corpus.At(1)
	}
	for {
		q := e.pick()
		if q.Index != exclude {
			return q
		}
	}
}

func answersMatch(got, want string) bool {
	return strings.EqualFold(strings.TrimSpace(got), strings.TrimSpace(want))
}

func questionText(q Question) string {
	return fmt.Sprintf("🧐Новый вопрос:\n%s\n\nПожалуйста, напиши свой ответ:", q.Prompt)
}

func displayName(name string) string {
	if name == "" {
		return "Пользователь"
	}
	return name
}
