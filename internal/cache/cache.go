package cache

import (
	"context"
	"time"
)

// BytesCache — байтовый кэш "лучшего усилия": промах и ошибка для
// вызывающего кода эквивалентны.
type BytesCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
