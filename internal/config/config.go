package config

import (
	"fmt"
	"os"
	"time"
)

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Path            string        `mapstructure:"path"`              // 数据库文件路径，":memory:" 表示内存库
	MaxOpenConns    int           `mapstructure:"max_open_conns"`    // 最大连接数
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`    // 最大空闲连接数
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"` // 连接最大生命周期
}

// Config 应用配置
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
}

// LoadConfig 加载配置（简化版，暂不依赖 Viper）
func LoadConfig() (*Config, error) {
	// 默认配置
	config := &Config{
		Database: DatabaseConfig{
			Path:            "./data/vaultix.db",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: time.Hour,
		},
	}

	// 支持环境变量覆盖
	if dbPath := os.Getenv("DATABASE_PATH"); dbPath != "" {
		config.Database.Path = dbPath
	}

	if maxOpen := os.Getenv("DATABASE_MAX_OPEN_CONNS"); maxOpen != "" {
		var n int
		if _, err := fmt.Sscanf(maxOpen, "%d", &n); err == nil && n > 0 {
			config.Database.MaxOpenConns = n
		}
	}

	return config, nil
}
