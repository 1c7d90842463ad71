package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-mood-analyzer/pkg/models"

	backend "github.com/redis/go-redis/v9"
)

const defaultPrefix = "mood:result:"

// RedisResultRepository caches results in Redis as JSON, keyed by the
// SHA-256 of the text.
type RedisResultRepository struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*RedisResultRepository)

// WithTTL sets the expiration for cached results.
func WithTTL(ttl time.Duration) Option {
	return func(r *RedisResultRepository) {
		r.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(r *RedisResultRepository) {
		r.prefix = prefix
	}
}

// NewRedisResultRepository creates a repository connected to address.
func NewRedisResultRepository(address, password string, db int, opts ...Option) *RedisResultRepository {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewRedisResultRepositoryFromClient(rdb, opts...)
}

// NewRedisResultRepositoryFromClient wraps an existing client.
func NewRedisResultRepositoryFromClient(client *backend.Client, opts ...Option) *RedisResultRepository {
	r := &RedisResultRepository{
		client: client,
		prefix: defaultPrefix,
		ttl:    24 * time.Hour,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *RedisResultRepository) key(text string) string {
	sum := sha256.Sum256([]byte(text))
	return r.prefix + hex.EncodeToString(sum[:])
}

// Get retrieves the cached result for text.
func (r *RedisResultRepository) Get(ctx context.Context, text string) (*models.AnalysisResult, error) {
	val, err := r.client.Get(ctx, r.key(text)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, ErrResultNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrRepositoryUnavailable, err)
	}

	var result models.AnalysisResult
	if err := json.Unmarshal(val, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached result: %w", err)
	}
	// A hash collision or a foreign writer must not leak another text.
	if result.Text != text || !result.Mood.Valid() {
		return nil, ErrResultNotFound
	}
	return &result, nil
}

// Save stores result with the configured TTL.
func (r *RedisResultRepository) Save(ctx context.Context, result *models.AnalysisResult) error {
	if result == nil {
		return errors.New("cannot cache nil result")
	}
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	if err := r.client.Set(ctx, r.key(result.Text), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRepositoryUnavailable, err)
	}
	return nil
}

// Ping checks the connection.
func (r *RedisResultRepository) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRepositoryUnavailable, err)
	}
	return nil
}

// Close closes the underlying client.
func (r *RedisResultRepository) Close() error {
	return r.client.Close()
}
