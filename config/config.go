package config

import (
	"fmt"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Get reads an environment variable with a fallback default.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// InitDB opens the database connection. MySQL in production; set
// DB_DRIVER=sqlite (with DB_NAME as the file path) for local development.
func InitDB() (*gorm.DB, error) {
	if Get("DB_DRIVER", "mysql") == "sqlite" {
		return gorm.Open(sqlite.Open(Get("DB_NAME", "spoke.db")), &gorm.Config{})
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		Get("DB_USER", "root"),
		Get("DB_PASSWORD", ""),
		Get("DB_HOST", "127.0.0.1"),
		Get("DB_PORT", "3306"),
		Get("DB_NAME", "spoke"),
	)
	return gorm.Open(mysql.Open(dsn), &gorm.Config{})
}
