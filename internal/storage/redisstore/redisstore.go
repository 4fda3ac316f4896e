// Package redisstore keeps settings profiles in Redis hashes.
package redisstore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/cristianoliveira/roomprefs/internal/storage/namespace"
	"github.com/redis/go-redis/v9"
)

const (
	// DefaultPrefix namespaces every key the backend writes.
	DefaultPrefix = "roomprefs"

	pingTimeout = 5 * time.Second
)

// deleteScript removes a field and drops the profile from the index once
// its hash is empty.
var deleteScript = redis.NewScript(`
redis.call("HDEL", KEYS[1], ARGV[1])
if redis.call("HLEN", KEYS[1]) == 0 then
	redis.call("SREM", KEYS[2], ARGV[2])
end
return 0
`)

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// Backend stores each profile in the hash <prefix>:profile:<name> and
// indexes profile names in the set <prefix>:profiles.
type Backend struct {
	client *redis.Client
	prefix string
}

// New connects to Redis and verifies the connection with PING.
func New(opts Options) (*Backend, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis storage: connect %s: %w", opts.Addr, err)
	}
	return NewWithClient(client, opts.Prefix), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client *redis.Client, prefix string) *Backend {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Backend{client: client, prefix: prefix}
}

func (b *Backend) profileKey(profile string) string {
	return b.prefix + ":profile:" + profile
}

func (b *Backend) indexKey() string {
	return b.prefix + ":profiles"
}

func (b *Backend) Load(ctx context.Context, profile string) (map[string]string, error) {
	if err := namespace.Validate(profile); err != nil {
		return nil, err
	}
	values, err := b.client.HGetAll(ctx, b.profileKey(profile)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis storage: load %s: %w", profile, err)
	}
	return values, nil
}

func (b *Backend) Store(ctx context.Context, profile, key, value string) error {
	if err := namespace.Validate(profile); err != nil {
		return err
	}
	_, err := b.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, b.profileKey(profile), key, value)
		pipe.SAdd(ctx, b.indexKey(), profile)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis storage: store %s/%s: %w", profile, key, err)
	}
	return nil
}

func (b *Backend) Delete(ctx context.Context, profile, key string) error {
	if err := namespace.Validate(profile); err != nil {
		return err
	}
	keys := []string{b.profileKey(profile), b.indexKey()}
	if err := deleteScript.Run(ctx, b.client, keys, key, profile).Err(); err != nil && err != redis.Nil {
		return fmt.Errorf("redis storage: delete %s/%s: %w", profile, key, err)
	}
	return nil
}

func (b *Backend) Profiles(ctx context.Context) ([]string, error) {
	names, err := b.client.SMembers(ctx, b.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("redis storage: list profiles: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

func (b *Backend) Close() error {
	return b.client.Close()
}
