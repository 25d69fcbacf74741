// Package config 讀取服務設定（命令列旗標 + 環境變數，環境變數優先）。
package config

import (
	"flag"
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/caarlos0/env/v11"
)

// Config 服務設定
type Config struct {
	RunAddress       string        `env:"RUN_ADDRESS"`
	DatabaseDriver   string        `env:"DATABASE_DRIVER"`
	DatabaseDSN      string        `env:"DATABASE_DSN"`
	RedisAddr        string        `env:"REDIS_ADDR"`
	LockTTL          time.Duration `env:"LOCK_TTL"`
	LockWait         time.Duration `env:"LOCK_WAIT"`
	BusinessTimezone string        `env:"BUSINESS_TIMEZONE"`
	LogLevel         string        `env:"LOG_LEVEL"`
}

// Parse 解析 args（不含程式名稱）與環境變數
//
// 優先序：環境變數 > 旗標 > 預設值。
func Parse(args []string) (*Config, error) {
	cfg := &Config{}

	fs := flag.NewFlagSet("laundry-crm", flag.ContinueOnError)
	fs.StringVar(&cfg.RunAddress, "a", "localhost:8080", "address and port for HTTP server")
	fs.StringVar(&cfg.DatabaseDriver, "driver", "sqlite", "database driver (sqlite|postgres)")
	fs.StringVar(&cfg.DatabaseDSN, "d", "laundry.db", "database DSN")
	fs.StringVar(&cfg.RedisAddr, "redis", "", "redis address for the distributed customer lock (empty: in-process lock)")
	fs.DurationVar(&cfg.LockTTL, "lock-ttl", 10*time.Second, "customer lock TTL (redis only)")
	fs.DurationVar(&cfg.LockWait, "lock-wait", 5*time.Second, "max time to wait for a customer lock")
	fs.StringVar(&cfg.BusinessTimezone, "tz", "Asia/Shanghai", "time zone used for daily/monthly statistics windows")
	fs.StringVar(&cfg.LogLevel, "l", "info", "log level")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DatabaseDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DatabaseDriver)
	}
	if c.DatabaseDSN == "" {
		return fmt.Errorf("DATABASE_DSN is required")
	}
	if c.LockWait <= 0 {
		return fmt.Errorf("LOCK_WAIT must be positive, got %s", c.LockWait)
	}
	if c.RedisAddr != "" && c.LockTTL <= 0 {
		return fmt.Errorf("LOCK_TTL must be positive, got %s", c.LockTTL)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location 營業時區（統計的日 / 月窗口依此切分）
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.BusinessTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid BUSINESS_TIMEZONE %q: %w", c.BusinessTimezone, err)
	}
	return loc, nil
}
