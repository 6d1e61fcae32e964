// Package ranking menyimpan peringkat race multiplayer per course di Redis:
// ZSET skor = durasi detik (kecil = lebih cepat), HASH account_id -> username.
package ranking

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "multiplayer:ranking:"

type Entry struct {
	AccountID       uuid.UUID
	Username        string
	DurationSeconds int64
}

type Store interface {
	Record(ctx context.Context, courseID uuid.UUID, e Entry) error
	// Top urut durasi naik; limit <= 0 berarti semua.
	Top(ctx context.Context, courseID uuid.UUID, limit int64) ([]Entry, error)
	// Replace menimpa seluruh ranking course (dipakai job sinkronisasi).
	Replace(ctx context.Context, courseID uuid.UUID, entries []Entry) error
	// Exists false = cache course ini belum pernah diisi (atau sudah di-flush).
	Exists(ctx context.Context, courseID uuid.UUID) (bool, error)
}

func ScoreKey(courseID uuid.UUID) string { return keyPrefix + courseID.String() }

func NamesKey(courseID uuid.UUID) string { return ScoreKey(courseID) + ":names" }

type RedisRanking struct {
	client *redis.Client
}

func NewRedisRanking(client *redis.Client) *RedisRanking {
	return &RedisRanking{client: client}
}

func (r *RedisRanking) Record(ctx context.Context, courseID uuid.UUID, e Entry) error {
	_, err := r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.ZAdd(ctx, ScoreKey(courseID), redis.Z{Score: float64(e.DurationSeconds), Member: e.AccountID.String()})
		p.HSet(ctx, NamesKey(courseID), e.AccountID.String(), e.Username)
		return nil
	})
	if err != nil {
		return fmt.Errorf("ranking record %s: %w", courseID, err)
	}
	return nil
}

func (r *RedisRanking) Exists(ctx context.Context, courseID uuid.UUID) (bool, error) {
	n, err := r.client.Exists(ctx, ScoreKey(courseID)).Result()
	if err != nil {
		return false, fmt.Errorf("ranking exists %s: %w", courseID, err)
	}
	return n > 0, nil
}

func (r *RedisRanking) Top(ctx context.Context, courseID uuid.UUID, limit int64) ([]Entry, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = limit - 1
	}
	results, err := r.client.ZRangeWithScores(ctx, ScoreKey(courseID), 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("ranking top %s: %w", courseID, err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	members := make([]string, len(results))
	for i, z := range results {
		members[i], _ = z.Member.(string)
	}
	names, err := r.client.HMGet(ctx, NamesKey(courseID), members...).Result()
	if err != nil {
		return nil, fmt.Errorf("ranking names %s: %w", courseID, err)
	}

	out := make([]Entry, 0, len(results))
	for i, z := range results {
		id, err := uuid.Parse(members[i])
		if err != nil {
			continue
		}
		username, _ := names[i].(string)
		out = append(out, Entry{AccountID: id, Username: username, DurationSeconds: int64(z.Score)})
	}
	return out, nil
}

func (r *RedisRanking) Replace(ctx context.Context, courseID uuid.UUID, entries []Entry) error {
	_, err := r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, ScoreKey(courseID), NamesKey(courseID))
		if len(entries) == 0 {
			return nil
		}
		zs := make([]redis.Z, 0, len(entries))
		names := make(map[string]interface{}, len(entries))
		for _, e := range entries {
			zs = append(zs, redis.Z{Score: float64(e.DurationSeconds), Member: e.AccountID.String()})
			names[e.AccountID.String()] = e.Username
		}
		p.ZAdd(ctx, ScoreKey(courseID), zs...)
		p.HSet(ctx, NamesKey(courseID), names)
		return nil
	})
	if err != nil {
		return fmt.Errorf("ranking replace %s: %w", courseID, err)
	}
	return nil
}
