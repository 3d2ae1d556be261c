package lock

import (
	"context"
	"sync"
	"time"
)

var (
	lockMap sync.Map
)

// WithDelay выполняет safeCode под блокировкой key, ожидая ее не дольше wait.
// success == false, если блокировку получить не удалось.
func WithDelay(ctx context.Context, key string, wait time.Duration, safeCode func() error) (success bool, err error) {
	isTimeout := time.After(wait)
	for {
		if TryLock(key) {
			break
		}
		select {
		case <-isTimeout:
			return false, nil
		case <-ctx.Done():
			return false, nil
		case <-time.After(50 * time.Millisecond):
		}
	}
	defer Unlock(key)
	return true, safeCode()
}

func TryLock(key string) bool {
	_, loaded := lockMap.LoadOrStore(key, true)
	return !loaded
}

func Unlock(key string) {
	lockMap.Delete(key)
}
