package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/beepath/animate"
)

// DefaultLockExpiry bounds how long a crashed holder can block a grid.
const DefaultLockExpiry = 5 * time.Minute

// RedisGuard is an animate.Guard shared by every process talking to the
// same Redis. Acquire never waits: a held key fails immediately with
// animate.ErrSearchInProgress.
type RedisGuard struct {
	locker *redsync.Redsync
	prefix string
	expiry time.Duration
	log    *logrus.Logger
}

// NewRedisGuard builds a guard over client. Locks expire after expiry
// (DefaultLockExpiry when <= 0).
func NewRedisGuard(client *redis.Client, prefix string, expiry time.Duration, log *logrus.Logger) *RedisGuard {
	if prefix == "" {
		prefix = defaultPrefix
	}
	if expiry <= 0 {
		expiry = DefaultLockExpiry
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	pool := goredis.NewPool(client)
	return &RedisGuard{
		locker: redsync.New(pool),
		prefix: prefix,
		expiry: expiry,
		log:    log,
	}
}

// Acquire locks "<prefix>:search:<key>".
func (g *RedisGuard) Acquire(ctx context.Context, key string) (func(), error) {
	mutex := g.locker.NewMutex(
		fmt.Sprintf("%s:search:%s", g.prefix, key),
		redsync.WithExpiry(g.expiry),
		redsync.WithTries(1),
	)
	if err := mutex.LockContext(ctx); err != nil {
		var taken *redsync.ErrTaken
		var takenVal redsync.ErrTaken
		if errors.Is(err, redsync.ErrFailed) || errors.As(err, &taken) || errors.As(err, &takenVal) {
			return nil, fmt.Errorf("%w: %s", animate.ErrSearchInProgress, key)
		}
		return nil, fmt.Errorf("store: lock %s: %w", key, err)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			if _, err := mutex.UnlockContext(context.Background()); err != nil {
				g.log.WithError(err).WithField("grid", key).Warn("error while releasing search lock")
			}
		})
	}, nil
}
