package memory

import (
	"context"
	"sync"

	"qr-quiz-service/internal/app"
)

// KeyValue is a process-local app.KeyValue.
type KeyValue struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewKeyValue() *KeyValue {
	return &KeyValue{data: make(map[string]string)}
}

func (kv *KeyValue) Get(_ context.Context, key string) (string, bool, error) {
	kv.mu.RLock()
	defer kv.mu.RUnlock()
	v, ok := kv.data[key]
	return v, ok, nil
}

func (kv *KeyValue) Set(_ context.Context, key, value string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	kv.data[key] = value
	return nil
}

func (kv *KeyValue) SetIfAbsent(_ context.Context, key, value string) (string, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	if existing, ok := kv.data[key]; ok {
		return existing, nil
	}
	kv.data[key] = value
	return value, nil
}

// IdentityProvider keeps one in-memory identity per profile.
type IdentityProvider struct {
	mu       sync.Mutex
	profiles map[string]*app.KVIdentity
}

func NewIdentityProvider() *IdentityProvider {
	return &IdentityProvider{profiles: make(map[string]*app.KVIdentity)}
}

func (p *IdentityProvider) ForProfile(profile string) app.IdentityStore {
	p.mu.Lock()
	defer p.mu.Unlock()
	if identity, ok := p.profiles[profile]; ok {
		return identity
	}
	identity := app.NewKVIdentity(NewKeyValue())
	p.profiles[profile] = identity
	return identity
}
