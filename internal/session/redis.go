package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spigell/resume-screener/internal/dialogue"
	"github.com/spigell/resume-screener/internal/resume"
)

const DefaultKeyPrefix = "resume-screener:session:"

// RedisConfig holds connection settings for the redis backend.
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
	TTL       time.Duration
}

// RedisStore keeps the session header as a JSON string and the turns as a list:
// <prefix><id>:facts and <prefix><id>:turns.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// header is what lives under the facts key.
type header struct {
	ID        string        `json:"id"`
	CreatedAt time.Time     `json:"created_at"`
	Facts     *resume.Facts `json:"facts"`
}

// NewRedisClient connects to redis and checks the connection.
func NewRedisClient(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis address is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// NewRedisStore uses an already connected client. An empty prefix falls back to DefaultKeyPrefix;
// a zero ttl keeps sessions forever.
func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) (*RedisStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client cannot be nil")
	}
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}, nil
}

func (r *RedisStore) factsKey(id string) string { return r.prefix + id + ":facts" }

func (r *RedisStore) turnsKey(id string) string { return r.prefix + id + ":turns" }

func (r *RedisStore) Create(ctx context.Context, s *Session) error {
	if s == nil {
		return fmt.Errorf("cannot create nil session")
	}
	if err := validateID(s.ID); err != nil {
		return err
	}

	payload, err := json.Marshal(header{ID: s.ID, CreatedAt: s.CreatedAt, Facts: s.Facts})
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", s.ID, err)
	}

	created, err := r.client.SetNX(ctx, r.factsKey(s.ID), payload, r.ttl).Result()
	if err != nil {
		return fmt.Errorf("create session %s in redis: %w", s.ID, err)
	}
	if !created {
		return fmt.Errorf("%s: %w", s.ID, ErrExists)
	}

	if len(s.Turns) == 0 {
		return nil
	}
	return r.push(ctx, s.ID, s.Turns)
}

func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	raw, err := r.client.Get(ctx, r.factsKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get session %s from redis: %w", id, err)
	}

	var h header
	if err := json.Unmarshal([]byte(raw), &h); err != nil {
		return nil, fmt.Errorf("unmarshal session %s: %w", id, err)
	}

	serialized, err := r.client.LRange(ctx, r.turnsKey(id), 0, -1).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("get turns of session %s from redis: %w", id, err)
	}

	s := New(h.ID, h.Facts, h.CreatedAt)
	turns := make([]dialogue.Turn, 0, len(serialized))
	for _, item := range serialized {
		var turn dialogue.Turn
		if err := json.Unmarshal([]byte(item), &turn); err != nil {
			return nil, fmt.Errorf("unmarshal turn of session %s: %w", id, err)
		}
		turns = append(turns, turn)
	}
	s.appendTurns(turns...)

	return s, nil
}

func (r *RedisStore) AppendTurns(ctx context.Context, id string, turns ...dialogue.Turn) error {
	exists, err := r.client.Exists(ctx, r.factsKey(id)).Result()
	if err != nil {
		return fmt.Errorf("check session %s in redis: %w", id, err)
	}
	if exists == 0 {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if len(turns) == 0 {
		return nil
	}
	return r.push(ctx, id, turns)
}

func (r *RedisStore) push(ctx context.Context, id string, turns []dialogue.Turn) error {
	pipe := r.client.TxPipeline()
	for _, turn := range turns {
		serialized, err := json.Marshal(turn)
		if err != nil {
			return fmt.Errorf("marshal turn of session %s: %w", id, err)
		}
		pipe.RPush(ctx, r.turnsKey(id), serialized)
	}
	if r.ttl > 0 {
		pipe.Expire(ctx, r.turnsKey(id), r.ttl)
		pipe.Expire(ctx, r.factsKey(id), r.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append turns to session %s in redis: %w", id, err)
	}
	return nil
}
