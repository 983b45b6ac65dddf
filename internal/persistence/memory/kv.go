package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/samber/lo"

	"github.com/shubhamdevjs/Reddit-Masterming/internal/core"
)

// KV is a process-local core.KeyValueClient. Values are copied in and out.
type KV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewKV() *KV {
	return &KV{data: map[string][]byte{}}
}

func (kv *KV) Init(_ context.Context) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	if kv.data == nil {
		kv.data = map[string][]byte{}
	}
	return nil
}

func (kv *KV) Get(_ context.Context, key string) ([]byte, error) {
	kv.mu.RLock()
	defer kv.mu.RUnlock()

	value, ok := kv.data[key]
	if !ok {
		return nil, core.ErrKeyNotFound
	}
	return slices.Clone(value), nil
}

func (kv *KV) Put(_ context.Context, key string, value []byte) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	if kv.data == nil {
		kv.data = map[string][]byte{}
	}
	kv.data[key] = slices.Clone(value)
	return nil
}

func (kv *KV) Delete(_ context.Context, key string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	if _, ok := kv.data[key]; !ok {
		return core.ErrKeyNotFound
	}
	delete(kv.data, key)
	return nil
}

func (kv *KV) Keys(_ context.Context) ([]string, error) {
	kv.mu.RLock()
	defer kv.mu.RUnlock()

	keys := lo.Keys(kv.data)
	slices.Sort(keys)
	return keys, nil
}
