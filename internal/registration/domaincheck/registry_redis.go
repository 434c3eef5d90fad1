package domaincheck

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// takenDomainsKey holds the set of registered tenant domains.
const takenDomainsKey = "tenantnotes:domains:taken"

// RedisRegistry keeps taken domains in a Redis set so every BFF instance
// sees registrations made through the others.
type RedisRegistry struct {
	client *redis.Client
	key    string
}

// RedisRegistryOption configures a RedisRegistry.
type RedisRegistryOption func(*RedisRegistry)

// WithKey overrides the Redis set key.
func WithKey(key string) RedisRegistryOption {
	return func(r *RedisRegistry) { r.key = key }
}

func NewRedisRegistry(client *redis.Client, opts ...RedisRegistryOption) *RedisRegistry {
	r := &RedisRegistry{client: client, key: takenDomainsKey}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *RedisRegistry) IsTaken(ctx context.Context, domain string) (bool, error) {
	return r.client.SIsMember(ctx, r.key, normalize(domain)).Result()
}

// Add marks domains as taken.
func (r *RedisRegistry) Add(ctx context.Context, domains ...string) error {
	if len(domains) == 0 {
		return nil
	}
	members := make([]any, len(domains))
	for i, d := range domains {
		members[i] = normalize(d)
	}
	return r.client.SAdd(ctx, r.key, members...).Err()
}
