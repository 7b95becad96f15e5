package repositories

import (
	"context"
	"time"
)

type CacheRepositoryInterface interface {
	// SetNX записывает ключ, только если его ещё нет. false - ключ уже был.
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error)
	Del(ctx context.Context, key ...string) error
}
