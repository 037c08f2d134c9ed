package lock

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
)

const pollInterval = 5 * time.Millisecond

var ErrLockTimeout = errors.New("lock wait timeout")

// Keyed is a set of named mutexes, the zero value is ready to use.
type Keyed struct {
	lockMap sync.Map
}

// Lock blocks until key is free, ctx is cancelled or wait elapses.
// The returned func releases the key and must be called exactly once.
func (k *Keyed) Lock(ctx context.Context, key string, wait time.Duration) (unlock func(), err error) {
	isTimeout := time.After(wait)
	for {
		if _, loaded := k.lockMap.LoadOrStore(key, true); !loaded {
			return func() { k.lockMap.Delete(key) }, nil
		}
		select {
		case <-isTimeout:
			return nil, ErrLockTimeout
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}

// WithDelay runs safeCode while holding key. success is false and err carries the lock failure
// (ErrLockTimeout or the context error) when the key could not be taken.
func (k *Keyed) WithDelay(ctx context.Context, key string, wait time.Duration, safeCode func() error) (success bool, err error) {
	unlock, err := k.Lock(ctx, key, wait)
	if err != nil {
		return false, err
	}
	defer unlock()
	return true, safeCode()
}
