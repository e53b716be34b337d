package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"quizbot/internal/service"
)

const (
	namesKey       = "names"
	leaderboardKey = "leaderboard"
)

// RedisStore хранит сессии в Redis: счёт в "score:{id}", текущий
// вопрос целиком (JSON) в "question:{id}", имена в хэше и лучшие
// результаты в sorted set для таблицы лидеров.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(addr, password string) *RedisStore {
	opts := &redis.Options{Addr: addr}
	if password != "" {
		opts.Username = "default"
		opts.Password = password
	}
	return &RedisStore{client: redis.NewClient(opts)}
}

// Ping проверяет соединение; вызывается один раз на старте.
func (r *RedisStore) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return storeErr(err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

func (r *RedisStore) Score(ctx context.Context, userID string) (int64, error) {
	score, err := r.client.Get(ctx, scoreKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		// Первый контакт: заводим ключ и место в таблице лидеров.
		if err := r.client.SetNX(ctx, scoreKey(userID), 0, 0).Err(); err != nil {
			return 0, storeErr(err)
		}
		if err := r.client.ZAddNX(ctx, leaderboardKey, redis.Z{Member: userID}).Err(); err != nil {
			return 0, storeErr(err)
		}
		return 0, nil
	}
	if err != nil {
		return 0, storeErr(err)
	}
	return score, nil
}

func (r *RedisStore) IncrementScore(ctx context.Context, userID string) error {
	score, err := r.client.Incr(ctx, scoreKey(userID)).Result()
	if err != nil {
		return storeErr(err)
	}

	err = r.client.ZAdd(ctx, leaderboardKey, redis.Z{
		Score:  float64(score),
		Member: userID,
	}).Err()
	if err != nil {
		return storeErr(err)
	}
	return nil
}

func (r *RedisStore) CurrentQuestion(ctx context.Context, userID string) (*service.Question, error) {
	raw, err := r.client.Get(ctx, questionKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr(err)
	}

	var q service.Question
	if err := json.Unmarshal([]byte(raw), &q); err != nil {
		return nil, fmt.Errorf("decoding stored question: %w", err)
	}
	return &q, nil
}

func (r *RedisStore) SetCurrentQuestion(ctx context.Context, userID string, q service.Question) error {
	raw, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("encoding question: %w", err)
	}

	if err := r.client.Set(ctx, questionKey(userID), raw, 0).Err(); err != nil {
		return storeErr(err)
	}
	return nil
}

func (r *RedisStore) ClearCurrentQuestion(ctx context.Context, userID string) error {
	if err := r.client.Del(ctx, questionKey(userID)).Err(); err != nil {
		return storeErr(err)
	}
	return nil
}

func (r *RedisStore) SetName(ctx context.Context, userID, name string) error {
	if err := r.client.HSet(ctx, namesKey, userID, name).Err(); err != nil {
		return storeErr(err)
	}
	return nil
}

func (r *RedisStore) Top(ctx context.Context, limit int) ([]service.LeaderboardEntry, error) {
	best, err := r.client.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, storeErr(err)
	}
	if len(best) == 0 {
		return nil, nil
	}

	userIDs := make([]string, len(best))
	for i, z := range best {
		userIDs[i] = fmt.Sprint(z.Member)
	}

	names, err := r.client.HMGet(ctx, namesKey, userIDs...).Result()
	if err != nil {
		return nil, storeErr(err)
	}

	entries := make([]service.LeaderboardEntry, len(best))
	for i, z := range best {
		name := ""
		if s, ok := names[i].(string); ok {
			name = s
		}
		entries[i] = service.LeaderboardEntry{
			UserID: userIDs[i],
			Name:   name,
			Score:  int64(z.Score),
		}
	}
	return entries, nil
}

func scoreKey(userID string) string    { return "score:" + userID }
func questionKey(userID string) string { return "question:" + userID }

func storeErr(err error) error {
	return fmt.Errorf("%w: %v", service.ErrStoreUnavailable, err)
}
