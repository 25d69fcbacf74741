package persistence

import "time"

// RepositoryOption 訂單、衣物、充值記錄倉儲的選項
type RepositoryOption func(*repositoryConfig)

type repositoryConfig struct {
	legacyLocation *time.Location
}

// WithLegacyLocation 舊系統寫入、沒有時區的 create_time 以 loc 解讀
//
// 應傳入營業時區；未設定時使用 time.Local。
func WithLegacyLocation(loc *time.Location) RepositoryOption {
	return func(c *repositoryConfig) {
		if loc != nil {
			c.legacyLocation = loc
		}
	}
}

func newRepositoryConfig(opts []RepositoryOption) repositoryConfig {
	cfg := repositoryConfig{legacyLocation: time.Local}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
