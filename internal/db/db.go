package db

import (
	"context"
	"time"
)

// Store is the full surface of the backing database. The repositories
// depend on the narrower HashStore/KVStore interfaces; Store exists so
// main can wire one client through everything.
type Store interface {
	Pinger
	HashStore
	KVStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger reports database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HashSetItem pairs a key with the fields to write, for pipelined HSET.
type HashSetItem struct {
	Key    string
	Fields map[string]string
}

// HashStore covers hash-shaped records: one key per entity, one field
// per attribute.
type HashStore interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HSetMulti(ctx context.Context, items []HashSetItem) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, key string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// KVStore covers opaque single-value records such as the loader cursor.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
