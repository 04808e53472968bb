package cache

import (
	"context"
	"time"
)

type Cache interface {
	GetJSON(ctx context.Context, key string, dst interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) error
	DeleteByPrefix(ctx context.Context, prefix string) error
}

type Locker interface {
	AcquireLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key, value string) error
}

var (
	_ Cache  = (*RedisClient)(nil)
	_ Locker = (*RedisClient)(nil)
	_ Cache  = Noop{}
	_ Locker = Noop{}
)

// Noop stands in when Redis is not configured: every read misses and every
// lock is granted.
type Noop struct{}

func (Noop) GetJSON(context.Context, string, interface{}) (bool, error)               { return false, nil }
func (Noop) SetJSON(context.Context, string, interface{}, time.Duration) error        { return nil }
func (Noop) DeleteByPrefix(context.Context, string) error                             { return nil }
func (Noop) AcquireLock(context.Context, string, string, time.Duration) (bool, error) { return true, nil }
func (Noop) ReleaseLock(context.Context, string, string) error                        { return nil }
