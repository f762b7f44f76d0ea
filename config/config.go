package config

import (
	"fmt"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type Config struct {
	Port     string
	DBDriver string
	DBSource string
	GinMode  string
}

func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		DBDriver: getEnv("DB_DRIVER", "sqlite"),
		DBSource: getEnv("DB_SOURCE", "dinesuite.db"),
		GinMode:  getEnv("GIN_MODE", "debug"),
	}
}

// InitDB opens the configured database. SQLite is the default for local
// runs; MySQL is used in deployments.
func InitDB(cfg *Config) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case "sqlite":
		return gorm.Open(sqlite.Open(cfg.DBSource), &gorm.Config{})
	case "mysql":
		return gorm.Open(mysql.Open(cfg.DBSource), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
