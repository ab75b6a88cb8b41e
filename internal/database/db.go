package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql" // registers the "mysql" driver
)

// userInfo builds the user[:password] part of a MySQL address.  An empty
// password is allowed for local development databases.
func userInfo(user, pass string) string {
	if pass == "" {
		return user
	}
	return fmt.Sprintf("%s:%s", user, pass)
}

// Open dials the rental-store database and verifies the connection with a
// bounded ping.  parseTime maps the DATETIME columns (date_out,
// date_returned, token expiries) onto time.Time, and loc=UTC keeps fee
// arithmetic independent of the server timezone.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		userInfo(user, pass), host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// One pool serves every repository.  Sized for a small back office: a
	// handful of clerk sessions plus catalogue cache refills.
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}
