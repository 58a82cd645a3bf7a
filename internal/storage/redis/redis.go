// Package redis provides a Redis-backed implementation of storage.KV, for
// running several server replicas against one shared bill collection.
package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/mmynk/dinesplit/internal/storage"
)

// maxTxAttempts bounds how often Modify retries after losing a race.
const maxTxAttempts = 50

// ErrContention is returned when Modify keeps losing to concurrent writers.
var ErrContention = errors.New("too many concurrent writers")

// Ensure KV implements storage.AtomicKV
var _ storage.AtomicKV = (*KV)(nil)

// KV stores each key as a plain Redis string under an optional prefix.
type KV struct {
	client *goredis.Client
	prefix string
}

// New connects to the Redis instance described by url
// (e.g. "redis://localhost:6379/0") and verifies it is reachable.
func New(ctx context.Context, url, prefix string) (*KV, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return NewWithClient(client, prefix), nil
}

// NewWithClient wraps an existing client. The KV owns it from then on.
func NewWithClient(client *goredis.Client, prefix string) *KV {
	return &KV{client: client, prefix: prefix}
}

func (k *KV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := k.client.Get(ctx, k.prefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return value, true, nil
}

func (k *KV) Set(ctx context.Context, key string, value []byte) error {
	if err := k.client.Set(ctx, k.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (k *KV) Remove(ctx context.Context, key string) error {
	if err := k.client.Del(ctx, k.prefix+key).Err(); err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

// Modify runs fn under WATCH and writes its result in a MULTI/EXEC block.
// If another client changes the key first, EXEC fails and fn runs again on
// the fresh value.
func (k *KV) Modify(ctx context.Context, key string, fn storage.ModifyFunc) error {
	fullKey := k.prefix + key
	var fnErr error
	txf := func(tx *goredis.Tx) error {
		fnErr = nil
		value, err := tx.Get(ctx, fullKey).Bytes()
		found := true
		if errors.Is(err, goredis.Nil) {
			value, found = nil, false
		} else if err != nil {
			return err
		}

		next, write, err := fn(value, found)
		if err != nil {
			fnErr = err
			return err
		}
		if !write {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, fullKey, next, 0)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		err := k.client.Watch(ctx, txf, fullKey)
		if fnErr != nil {
			return fnErr
		}
		if errors.Is(err, goredis.TxFailedErr) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to modify %s: %w", key, err)
		}
		return nil
	}
	return fmt.Errorf("failed to modify %s: %w", key, ErrContention)
}

func (k *KV) Close() error {
	return k.client.Close()
}
