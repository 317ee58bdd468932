package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"woodsim/internal/domain/game"
)

const (
	gamesCollection = "games"
	runsCollection  = "runs"

	// ResultsChannel carries every finished game as JSON.
	ResultsChannel = "woodsim:results"
)

// RunKey is the Redis hash holding the live tally of one run.
func RunKey(runID string) string {
	return "woodsim:run:" + runID
}

type MongoResultStore struct {
	db  *mongo.Database
	log *zap.SugaredLogger
}

func NewMongoResultStore(db *mongo.Database, log *zap.SugaredLogger) *MongoResultStore {
	return &MongoResultStore{
		db:  db,
		log: log,
	}
}

func (m *MongoResultStore) Observe(ctx context.Context, result game.Result) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := m.db.Collection(gamesCollection).InsertOne(ctx, result); err != nil {
		return fmt.Errorf("insert game %d: %w", result.GameIndex, err)
	}
	return nil
}

func (m *MongoResultStore) Finish(ctx context.Context, summary game.Summary) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := m.db.Collection(runsCollection).InsertOne(ctx, summary); err != nil {
		return fmt.Errorf("insert run summary: %w", err)
	}
	m.log.Infow("run summary stored", "run_id", summary.RunID)
	return nil
}

type RedisResultStore struct {
	client redis.Cmdable
	log    *zap.SugaredLogger
}

func NewRedisResultStore(client redis.Cmdable, log *zap.SugaredLogger) *RedisResultStore {
	return &RedisResultStore{
		client: client,
		log:    log,
	}
}

func (r *RedisResultStore) Observe(ctx context.Context, result game.Result) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return err
	}

	key := RunKey(result.RunID)
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HIncrBy(ctx, key, string(result.Outcome), 1)
		pipe.HIncrBy(ctx, key, "total", 1)
		if result.Fallback {
			pipe.HIncrBy(ctx, key, "fallback", 1)
		}
		pipe.Publish(ctx, ResultsChannel, payload)
		return nil
	})
	if err != nil {
		return fmt.Errorf("update tally %s: %w", key, err)
	}
	return nil
}

func (r *RedisResultStore) Finish(ctx context.Context, summary game.Summary) error {
	key := RunKey(summary.RunID)
	err := r.client.HSet(ctx, key,
		"completed", summary.Completed,
		"elapsed_ms", summary.Elapsed.Milliseconds(),
		"black_los", summary.BlackLOS,
	).Err()
	if err != nil {
		return fmt.Errorf("close tally %s: %w", key, err)
	}
	return nil
}
