package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxIface is the slice of pgxpool.Pool the store uses. Keeping it an
// interface lets tests substitute a pgxmock pool.
type PgxIface interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// Database gives access to users and their reminders.
type Database struct {
	Conn PgxIface
}

// NewDatabase connects to Postgres and verifies the connection.
// The connection string looks like postgresql://localhost:5432/remindbot?user=admn&password=passwd
func NewDatabase(connStr string) (*Database, error) {
	pool, err := pgxpool.New(context.Background(), connStr)
	if err != nil {
		return nil, err
	}

	if err = pool.Ping(context.Background()); err != nil {
		return nil, err
	}

	return &Database{Conn: pool}, nil
}

// Close releases the underlying pool.
func (d *Database) Close() {
	d.Conn.Close()
}
