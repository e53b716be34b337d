package service

import (
	"context"
	"errors"
)

// ErrStoreUnavailable — хранилище недоступно. Транспорт отвечает
// пользователю "попробуй позже" и не роняет цикл приёма.
var ErrStoreUnavailable = errors.New("session store unavailable")

// LeaderboardEntry — строка таблицы лидеров.
type LeaderboardEntry struct {
	UserID string
	Name   string
	Score  int64
}

// SessionStore хранит состояние пользователей: текущий вопрос и счёт.
// Все операции ключуются userID; движок состояния между вызовами не
// держит.
type SessionStore interface {
	// Score возвращает счёт пользователя. При первом обращении ключ
	// создаётся со значением 0.
	Score(ctx context.Context, userID string) (int64, error)
	// IncrementScore атомарно увеличивает счёт на 1.
	IncrementScore(ctx context.Context, userID string) error
	// CurrentQuestion возвращает текущий вопрос или nil, если его нет.
	CurrentQuestion(ctx context.Context, userID string) (*Question, error)
	// SetCurrentQuestion безусловно перезаписывает текущий вопрос.
	SetCurrentQuestion(ctx context.Context, userID string, q Question) error
	// ClearCurrentQuestion удаляет текущий вопрос. Идемпотентна.
	ClearCurrentQuestion(ctx context.Context, userID string) error
	// SetName запоминает отображаемое имя для таблицы лидеров.
	SetName(ctx context.Context, userID, name string) error
	// Top возвращает до limit лучших результатов по убыванию счёта.
	Top(ctx context.Context, limit int) ([]LeaderboardEntry, error)
}
