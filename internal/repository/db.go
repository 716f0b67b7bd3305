package repository

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by *sql.DB and *sql.Tx
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

// Queries runs the service's SQL against a DBTX
type Queries struct {
	db DBTX
}

// New creates a Queries over db
func New(db DBTX) *Queries {
	return &Queries{db: db}
}
