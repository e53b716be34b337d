package store

import (
	"context"
	"sort"
	"sync"

	"quizbot/internal/service"
)

// MemoryStore — запасной вариант без Redis: данные живут в памяти
// процесса и теряются при рестарте.
type MemoryStore struct {
	mu        sync.RWMutex
	scores    map[string]int64
	questions map[string]service.Question
	names     map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		scores:    make(map[string]int64),
		questions: make(map[string]service.Question),
		names:     make(map[string]string),
	}
}

func (m *MemoryStore) Score(_ context.Context, userID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	score, ok := m.scores[userID]
	if !ok {
		m.scores[userID] = 0
	}
	return score, nil
}

func (m *MemoryStore) IncrementScore(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.scores[userID]++
	return nil
}

func (m *MemoryStore) CurrentQuestion(_ context.Context, userID string) (*service.Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	q, ok := m.questions[userID]
	if !ok {
		return nil, nil
	}
	return &q, nil
}

func (m *MemoryStore) SetCurrentQuestion(_ context.Context, userID string, q service.Question) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.questions[userID] = q
	return nil
}

func (m *MemoryStore) ClearCurrentQuestion(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.questions, userID)
	return nil
}

func (m *MemoryStore) SetName(_ context.Context, userID, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.names[userID] = name
	return nil
}

func (m *MemoryStore) Top(_ context.Context, limit int) ([]service.LeaderboardEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := make([]service.LeaderboardEntry, 0, len(m.scores))
	for userID, score := range m.scores {
		entries = append(entries, service.LeaderboardEntry{
			UserID: userID,
			Name:   m.names[userID],
			Score:  score,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score == entries[j].Score {
			return entries[i].UserID < entries[j].UserID
		}
		return entries[i].Score > entries[j].Score
	})

	if limit < len(entries) {
		entries = entries[:limit]
	}
	return entries, nil
}
