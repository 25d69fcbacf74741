package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackyeh168/laundry_crm/src/internal/domain/shared"
	rd "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// luaReleaseIfMatch 只有鎖值仍是自己的 token 時才刪除，避免誤刪逾期後被別人取得的鎖
const luaReleaseIfMatch = `
local lockKey = KEYS[1]
local token = ARGV[1]
if redis.call('GET', lockKey) == token then
  return redis.call('DEL', lockKey)
end
return 0
`

var releaseScript = rd.NewScript(luaReleaseIfMatch)

const defaultRetryInterval = 20 * time.Millisecond

// RedisLocker 多實例部署時的客戶鎖（SET NX PX + Lua 釋放）
//
// ttl 必須大於臨界區最長執行時間；鎖逾期後另一個實例可以進入，
// 此時資料庫的 FOR UPDATE 與 version 檢查仍保證餘額不會被覆寫。
type RedisLocker struct {
	client        *rd.Client
	ttl           time.Duration
	wait          time.Duration
	retryInterval time.Duration
	logger        *zap.Logger
}

// NewRedisLocker 創建 Redis 鎖
func NewRedisLocker(client *rd.Client, ttl, wait time.Duration, logger *zap.Logger) *RedisLocker {
	return &RedisLocker{
		client:        client,
		ttl:           ttl,
		wait:          wait,
		retryInterval: defaultRetryInterval,
		logger:        logger,
	}
}

// WithLock 持有客戶鎖執行 fn
//
// 錯誤：
// - shared.ErrLockUnavailable: wait 時限內取不到鎖
// - Redis 連線錯誤：原樣包裝返回，fn 不會被執行
func (l *RedisLocker) WithLock(key string, fn func() error) error {
	lockKey := CustomerLockKey(key)
	token := uuid.NewString()

	if err := l.acquire(lockKey, token); err != nil {
		return err
	}
	defer l.release(lockKey, token)

	return fn()
}

func (l *RedisLocker) acquire(lockKey, token string) error {
	ctx, cancel := context.WithTimeout(context.Background(), l.wait)
	defer cancel()

	ticker := time.NewTicker(l.retryInterval)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, lockKey, token, l.ttl).Result()
		if err != nil && ctx.Err() == nil {
			return fmt.Errorf("failed to acquire redis lock %s: %w", lockKey, err)
		}
		if ok {
			return nil
		}

		select {
		case <-ctx.Done():
			return shared.ErrLockUnavailable.WithContext("key", lockKey, "wait", l.wait.String())
		case <-ticker.C:
		}
	}
}

func (l *RedisLocker) release(lockKey, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := releaseScript.Run(ctx, l.client, []string{lockKey}, token).Err(); err != nil {
		l.logger.Warn("failed to release redis lock",
			zap.String("key", lockKey),
			zap.Error(err),
		)
	}
}
