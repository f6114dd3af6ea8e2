package redis

import (
	"errors"
	"time"

	"github.com/agritrade/goapi/base/ctx"
)

const (
	// Forever marks a key that should not expire
	Forever = time.Duration(-1)
)

var (
	// ErrNotFound is returned when the key does not exist
	ErrNotFound = errors.New("redis key not found")

	// ErrGapTime is returned when no pool is available for the command
	ErrGapTime = errors.New("no pool available")
)

// Service is the redis surface used by cache providers and health checks
type Service interface {
	Get(context ctx.Ctx, key string) (val []byte, err error)
	Set(context ctx.Ctx, key string, val []byte, expire time.Duration) error
	Del(context ctx.Ctx, key string) (affected int, err error)
	Exists(context ctx.Ctx, key string) (bool, error)
	Incrby(context ctx.Ctx, key string, increment int64) (int64, error)
	// TTL returns Forever when the key has no associated expire
	TTL(context ctx.Ctx, key string) (time.Duration, error)
	Ping(context ctx.Ctx) error
}
