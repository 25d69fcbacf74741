package lock

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jackyeh168/laundry_crm/src/internal/domain/shared"
	rd "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRedisLocker(t *testing.T, ttl, wait time.Duration) (*RedisLocker, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := rd.NewClient(&rd.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisLocker(client, ttl, wait, zap.NewNop()), mr
}

func TestRedisLocker_WithLock_ReleasesKey(t *testing.T) {
	locker, mr := newTestRedisLocker(t, 5*time.Second, time.Second)

	var sawKey bool
	err := locker.WithLock("c-1", func() error {
		sawKey = mr.Exists(CustomerLockKey("c-1"))
		return nil
	})

	require.NoError(t, err)
	assert.True(t, sawKey, "lock key should exist while fn runs")
	assert.False(t, mr.Exists(CustomerLockKey("c-1")), "lock key should be deleted after fn")
}

func TestRedisLocker_HeldByOther_ReturnsLockUnavailable(t *testing.T) {
	// Arrange: 另一個實例持有鎖
	locker, mr := newTestRedisLocker(t, 5*time.Second, 50*time.Millisecond)
	require.NoError(t, mr.Set(CustomerLockKey("c-1"), "other-token"))

	// Act
	err := locker.WithLock("c-1", func() error {
		t.Fatal("fn must not run without the lock")
		return nil
	})

	// Assert
	assert.ErrorIs(t, err, shared.ErrLockUnavailable)
	value, getErr := mr.Get(CustomerLockKey("c-1"))
	require.NoError(t, getErr)
	assert.Equal(t, "other-token", value, "someone else's lock must not be released")
}

func TestRedisLocker_DoesNotDeleteLockTakenOverAfterExpiry(t *testing.T) {
	locker, mr := newTestRedisLocker(t, 5*time.Second, time.Second)

	err := locker.WithLock("c-1", func() error {
		// 模擬鎖逾期後被其他實例取得
		mr.Del(CustomerLockKey("c-1"))
		return mr.Set(CustomerLockKey("c-1"), "new-owner")
	})

	require.NoError(t, err)
	value, getErr := mr.Get(CustomerLockKey("c-1"))
	require.NoError(t, getErr)
	assert.Equal(t, "new-owner", value)
}

func TestRedisLocker_SameKey_IsSerialized(t *testing.T) {
	locker, _ := newTestRedisLocker(t, 5*time.Second, 5*time.Second)
	var active, violations int32
	var wg sync.WaitGroup

	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := locker.WithLock("c-1", func() error {
				if atomic.AddInt32(&active, 1) > 1 {
					atomic.AddInt32(&violations, 1)
				}
				time.Sleep(5 * time.Millisecond)
				atomic.AddInt32(&active, -1)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(0), violations)
}
