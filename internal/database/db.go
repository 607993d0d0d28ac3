// Package database opens the MySQL pool each service binary hands to
// its repositories.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Config collects the connection and pool knobs for one service's
// MySQL pool.  config.Load fills it from the environment.
type Config struct {
	User string
	Pass string
	Host string
	Port string
	Name string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	PingTimeout     time.Duration
}

// dsnParams pins DATE/DATETIME scans to UTC time.Time values and keeps
// the full utf8 charset on every connection.
const dsnParams = "charset=utf8mb4&parseTime=true&loc=UTC"

func (c Config) dsn() string {
	cred := c.User
	if c.Pass != "" {
		cred += ":" + c.Pass
	}
	return fmt.Sprintf("%s@tcp(%s:%s)/%s?%s", cred, c.Host, c.Port, c.Name, dsnParams)
}

// Open connects with cfg, applies the pool limits and verifies the
// connection before handing the pool out.
func Open(cfg Config) (*sql.DB, error) {
	db, err := sql.Open("mysql", cfg.dsn())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.PingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
