package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"quizbot/internal/service"
	"quizbot/internal/store"
)

func testCorpus(n int) service.Corpus {
	corpus := make(service.Corpus, 0, n)
	for i := 1; i <= n; i++ {
		corpus = append(corpus, service.Question{
			Index:  i,
			Prompt: fmt.Sprintf("Вопрос номер %d?", i),
			Answer: fmt.Sprintf("Ответ %d", i),
		})
	}
	return corpus
}

func newTestEngine(corpus service.Corpus) (*service.Engine, *store.MemoryStore) {
	sessions := store.NewMemoryStore()
	return service.NewEngine(corpus, sessions, zap.NewNop()), sessions
}

func TestGreetInitializesScore(t *testing.T) {
	ctx := context.Background()
	engine, sessions := newTestEngine(testCorpus(3))

	resp, err := engine.Handle(ctx, "42", service.Action{Kind: service.ActionGreet, Name: "Ваня"})
	require.NoError(t, err)
	assert.Contains(t, resp.Text, "Ваня")
	assert.True(t, resp.ShowKeyboard)

	score, err := sessions.Score(ctx, "42")
	require.NoError(t, err)
	assert.EqualValues(t, 0, score)

	// Повторное приветствие счёт не трогает.
	require.NoError(t, sessions.IncrementScore(ctx, "42"))
	_, err = engine.Handle(ctx, "42", service.Action{Kind: service.ActionGreet, Name: "Ваня"})
	require.NoError(t, err)
	score, err = sessions.Score(ctx, "42")
	require.NoError(t, err)
	assert.EqualValues(t, 1, score)
}

func TestNewQuestionAlwaysInRange(t *testing.T) {
	ctx := context.Background()
	corpus := testCorpus(5)
	engine, sessions := newTestEngine(corpus)

	seen := make(map[int]bool)
	for i := 0; i < 500; i++ {
		resp, err := engine.Handle(ctx, "42", service.Action{Kind: service.ActionNewQuestion})
		require.NoError(t, err)
		assert.Contains(t, resp.Text, "Новый вопрос")

		current, err := sessions.CurrentQuestion(ctx, "42")
		require.NoError(t, err)
		require.NotNil(t, current)
		require.GreaterOrEqual(t, current.Index, 1)
		require.LessOrEqual(t, current.Index, corpus.Len())
		seen[current.Index] = true
	}

	// За 500 раздач все пять вопросов должны встретиться.
	assert.Len(t, seen, corpus.Len())
}

func TestCorrectAnswerScenario(t *testing.T) {
	ctx := context.Background()
	corpus := service.Corpus{{Index: 1, Prompt: "2+2?", Answer: "4"}}
	engine, sessions := newTestEngine(corpus)

	resp, err := engine.Handle(ctx, "42", service.Action{Kind: service.ActionNewQuestion})
	require.NoError(t, err)
	assert.Contains(t, resp.Text, "2+2?")

	resp, err = engine.Handle(ctx, "42", service.Action{Kind: service.ActionSubmitAnswer, Text: "  4 "})
	require.NoError(t, err)
	assert.Contains(t, resp.Text, "Правильно")

	resp, err = engine.Handle(ctx, "42", service.Action{Kind: service.ActionQueryScore, Name: "Ваня"})
	require.NoError(t, err)
	assert.Contains(t, resp.Text, "твой счёт: 1")

	// Вопрос снят: следующий надо запросить явно.
	current, err := sessions.CurrentQuestion(ctx, "42")
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestAnswerIsCaseAndSpaceInsensitive(t *testing.T) {
	ctx := context.Background()
	corpus := service.Corpus{{Index: 1, Prompt: "Столица России?", Answer: "Москва"}}
	engine, sessions := newTestEngine(corpus)

	require.NoError(t, sessions.SetCurrentQuestion(ctx, "42", corpus.At(1)))

	resp, err := engine.Handle(ctx, "42", service.Action{Kind: service.ActionSubmitAnswer, Text: " москва  "})
	require.NoError(t, err)
	assert.Contains(t, resp.Text, "Правильно")

	score, err := sessions.Score(ctx, "42")
	require.NoError(t, err)
	assert.EqualValues(t, 1, score)
}

func TestWrongAnswerClearsQuestion(t *testing.T) {
	ctx := context.Background()
	corpus := testCorpus(1)
	engine, sessions := newTestEngine(corpus)

	require.NoError(t, sessions.SetCurrentQuestion(ctx, "42", corpus.At(1)))

	resp, err := engine.Handle(ctx, "42", service.Action{Kind: service.ActionSubmitAnswer, Text: "мимо"})
	require.NoError(t, err)
	assert.Contains(t, resp.Text, "Не-а")

	score, err := sessions.Score(ctx, "42")
	require.NoError(t, err)
	assert.EqualValues(t, 0, score)

	current, err := sessions.CurrentQuestion(ctx, "42")
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestAnswerWithoutQuestion(t *testing.T) {
	ctx := context.Background()
	engine, sessions := newTestEngine(testCorpus(3))

	resp, err := engine.Handle(ctx, "42", service.Action{Kind: service.ActionSubmitAnswer, Text: "наугад"})
	require.NoError(t, err)
	assert.Contains(t, resp.Text, "Сначала запроси новый вопрос")

	score, err := sessions.Score(ctx, "42")
	require.NoError(t, err)
	assert.EqualValues(t, 0, score)
}

func TestGiveUpRevealsAndRedraws(t *testing.T) {
	ctx := context.Background()
	corpus := testCorpus(2)
	engine, sessions := newTestEngine(corpus)

	for i := 0; i < 50; i++ {
		require.NoError(t, sessions.SetCurrentQuestion(ctx, "42", corpus.At(1)))

		resp, err := engine.Handle(ctx, "42", service.Action{Kind: service.ActionGiveUp})
		require.NoError(t, err)
		assert.Contains(t, resp.Text, "Правильный ответ был: Ответ 1")
		assert.Contains(t, resp.Text, "Новый вопрос")

		current, err := sessions.CurrentQuestion(ctx, "42")
		require.NoError(t, err)
		require.NotNil(t, current)
		require.Equal(t, 2, current.Index, "give up must draw a different question")
	}
}

func TestGiveUpSingleQuestionCorpus(t *testing.T) {
	ctx := context.Background()
	corpus := testCorpus(1)
	engine, sessions := newTestEngine(corpus)

	require.NoError(t, sessions.SetCurrentQuestion(ctx, "42", corpus.At(1)))

	_, err := engine.Handle(ctx, "42", service.Action{Kind: service.ActionGiveUp})
	require.NoError(t, err)

	current, err := sessions.CurrentQuestion(ctx, "42")
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, 1, current.Index)
}

func TestGiveUpWithoutQuestion(t *testing.T) {
	ctx := context.Background()
	engine, sessions := newTestEngine(testCorpus(3))

	resp, err := engine.Handle(ctx, "42", service.Action{Kind: service.ActionGiveUp})
	require.NoError(t, err)
	assert.Contains(t, resp.Text, "запросите вопрос")

	current, err := sessions.CurrentQuestion(ctx, "42")
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestQueryScoreKeepsQuestion(t *testing.T) {
	ctx := context.Background()
	corpus := testCorpus(2)
	engine, sessions := newTestEngine(corpus)

	require.NoError(t, sessions.SetCurrentQuestion(ctx, "42", corpus.At(2)))

	_, err := engine.Handle(ctx, "42", service.Action{Kind: service.ActionQueryScore})
	require.NoError(t, err)

	current, err := sessions.CurrentQuestion(ctx, "42")
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, 2, current.Index)
}

func TestLeaderboard(t *testing.T) {
	ctx := context.Background()
	engine, sessions := newTestEngine(testCorpus(3))

	resp, err := engine.Handle(ctx, "42", service.Action{Kind: service.ActionLeaderboard})
	require.NoError(t, err)
	assert.Contains(t, resp.Text, "Будьте первым")

	require.NoError(t, sessions.SetName(ctx, "1", "Ваня"))
	require.NoError(t, sessions.SetName(ctx, "2", "Петя"))
	for i := 0; i < 3; i++ {
		require.NoError(t, sessions.IncrementScore(ctx, "1"))
	}
	require.NoError(t, sessions.IncrementScore(ctx, "2"))

	resp, err = engine.Handle(ctx, "42", service.Action{Kind: service.ActionLeaderboard})
	require.NoError(t, err)
	assert.Contains(t, resp.Text, "🥇 1. Ваня — 3")
	assert.Contains(t, resp.Text, "🥈 2. Петя — 1")
}
