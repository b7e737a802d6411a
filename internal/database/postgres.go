package database

import (
	"context"
	"database/sql"
)

type PgSocialMediaRepository struct {
	conn *sql.DB
}

func NewPgSocialMediaRepository(dsn string) (*PgSocialMediaRepository, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return NewPgSocialMediaRepositoryFromDB(db), nil
}

// NewPgSocialMediaRepositoryFromDB wraps an already opened pool.
func NewPgSocialMediaRepositoryFromDB(db *sql.DB) *PgSocialMediaRepository {
	return &PgSocialMediaRepository{conn: db}
}

func (db *PgSocialMediaRepository) Ping(ctx context.Context) error {
	if err := db.conn.PingContext(ctx); err != nil {
		return &StorageError{Op: "ping", Err: err}
	}
	return nil
}

func (db *PgSocialMediaRepository) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// withConn runs fn on a connection taken from the pool and always
// returns it, whatever fn does.
func (db *PgSocialMediaRepository) withConn(ctx context.Context, op string, fn func(conn *sql.Conn) error) error {
	conn, err := db.conn.Conn(ctx)
	if err != nil {
		return &StorageError{Op: op, Err: err}
	}
	defer conn.Close()

	if err := fn(conn); err != nil {
		return &StorageError{Op: op, Err: err}
	}
	return nil
}
