package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"qr-quiz-service/internal/app"
)

// KeyValue stores one profile's identity as fields of a single hash:
//
//	HSET quiz:profile:{profile} quiz_user_id {uuid}
//	HSET quiz:profile:{profile} quiz_completed_{quizID} true
//
// With a non-zero TTL every read or write slides the expiry of the whole hash,
// so an active profile never loses part of its identity. A zero TTL keeps it forever.
type KeyValue struct {
	client  *redis.Client
	profile string
	ttl     time.Duration
}

func NewKeyValue(client *redis.Client, profile string, ttl time.Duration) *KeyValue {
	return &KeyValue{client: client, profile: profile, ttl: ttl}
}

func (kv *KeyValue) Get(ctx context.Context, key string) (string, bool, error) {
	var get *redis.StringCmd
	_, err := kv.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		get = pipe.HGet(ctx, kv.hash(), key)
		kv.touch(ctx, pipe)
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", false, err
	}
	v, err := get.Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (kv *KeyValue) Set(ctx context.Context, key, value string) error {
	_, err := kv.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, kv.hash(), key, value)
		kv.touch(ctx, pipe)
		return nil
	})
	return err
}

func (kv *KeyValue) SetIfAbsent(ctx context.Context, key, value string) (string, error) {
	var get *redis.StringCmd
	_, err := kv.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSetNX(ctx, kv.hash(), key, value)
		get = pipe.HGet(ctx, kv.hash(), key)
		kv.touch(ctx, pipe)
		return nil
	})
	if err != nil {
		return "", err
	}
	return get.Result()
}

func (kv *KeyValue) touch(ctx context.Context, pipe redis.Pipeliner) {
	if kv.ttl > 0 {
		pipe.Expire(ctx, kv.hash(), kv.ttl)
	}
}

func (kv *KeyValue) hash() string {
	return "quiz:profile:" + kv.profile
}

// IdentityProvider opens Redis-backed identities, so any server instance sees the same profile.
type IdentityProvider struct {
	client *redis.Client
	ttl    time.Duration
}

func NewIdentityProvider(client *redis.Client, ttl time.Duration) *IdentityProvider {
	return &IdentityProvider{client: client, ttl: ttl}
}

func (p *IdentityProvider) ForProfile(profile string) app.IdentityStore {
	return app.NewKVIdentity(NewKeyValue(p.client, profile, p.ttl))
}
