package config

import (
	"os"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDB opens the store. Postgres when DB_URL is set, otherwise a local
// SQLite file at DB_PATH (default data.db) — one shop, one database file.
func ConnectDB() {
	var (
		db  *gorm.DB
		err error
	)

	if dsn := os.Getenv("DB_URL"); dsn != "" {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	} else {
		path := os.Getenv("DB_PATH")
		if path == "" {
			path = "data.db"
		}
		db, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
	}
	if err != nil {
		panic("Failed to connect database")
	}

	DB = db
}
