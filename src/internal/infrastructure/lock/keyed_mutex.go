package lock

import (
	"sync"
	"time"

	"github.com/jackyeh168/laundry_crm/src/internal/domain/shared"
)

// ===========================
// KeyedMutex（單一進程）
// ===========================

// KeyedMutex 以 key 序列化臨界區的進程內鎖
//
// 每個 key 對應一個容量為 1 的 channel（可以帶逾時地取得），
// 沒有等待者時 entry 會被回收，map 不會無限增長。
type KeyedMutex struct {
	mu      sync.Mutex
	entries map[string]*keyedEntry
	wait    time.Duration
}

type keyedEntry struct {
	slot chan struct{}
	refs int
}

// NewKeyedMutex 創建進程內鎖；wait <= 0 表示無限等待
func NewKeyedMutex(wait time.Duration) *KeyedMutex {
	return &KeyedMutex{
		entries: make(map[string]*keyedEntry),
		wait:    wait,
	}
}

// WithLock 持有 key 的鎖執行 fn
//
// 錯誤：shared.ErrLockUnavailable（在 wait 時限內取不到鎖）
func (m *KeyedMutex) WithLock(key string, fn func() error) error {
	entry := m.acquireRef(key)
	defer m.releaseRef(key, entry)

	if m.wait <= 0 {
		entry.slot <- struct{}{}
	} else {
		timer := time.NewTimer(m.wait)
		select {
		case entry.slot <- struct{}{}:
			timer.Stop()
		case <-timer.C:
			return shared.ErrLockUnavailable.WithContext("key", key, "wait", m.wait.String())
		}
	}
	defer func() { <-entry.slot }()

	return fn()
}

func (m *KeyedMutex) acquireRef(key string) *keyedEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok {
		entry = &keyedEntry{slot: make(chan struct{}, 1)}
		m.entries[key] = entry
	}
	entry.refs++
	return entry
}

func (m *KeyedMutex) releaseRef(key string, entry *keyedEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry.refs--
	if entry.refs == 0 {
		delete(m.entries, key)
	}
}

// size 目前仍在使用中的 key 數（測試用）
func (m *KeyedMutex) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
