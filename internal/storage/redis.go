package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis persists snapshot keys as plain Redis strings. All keys of one
// snapshot are written in a single pipeline.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis wraps an existing client. The optional prefix namespaces keys.
func NewRedis(client *redis.Client, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

// Load returns the stored value for key.
func (r *Redis) Load(ctx context.Context, key string) ([]byte, bool, error) {
	raw, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("load snapshot %s: %w", key, err)
	}
	return raw, true, nil
}

// Save writes the whole snapshot through one pipeline.
func (r *Redis) Save(ctx context.Context, snapshot map[string][]byte) error {
	pipe := r.client.Pipeline()
	for key, value := range snapshot {
		pipe.Set(ctx, r.prefix+key, value, 0)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}
