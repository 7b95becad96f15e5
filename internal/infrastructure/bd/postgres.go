package bd

import (
	"bytes"
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgxQuerier - общий интерфейс *pgxpool.Pool, *pgx.Conn и pgx.Tx.
type pgxQuerier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
}

type postgresStore struct {
	db pgxQuerier
}

// NewPostgresStore - хранилище с прямым подключением к базе проекта.
func NewPostgresStore(pool *pgxpool.Pool) Store {
	return &postgresStore{db: pool}
}

func (s *postgresStore) run(ctx context.Context, sql string, args []interface{}, dest interface{}) error {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return fromPg(err)
	}
	defer rows.Close()

	var buf bytes.Buffer
	buf.WriteByte('[')
	first := true
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return fromPg(err)
		}
		if !first {
			buf.WriteByte(',')
		}
		buf.Write(raw)
		first = false
	}
	if err := rows.Err(); err != nil {
		return fromPg(err)
	}
	buf.WriteByte(']')
	return decodeRows(buf.Bytes(), dest)
}

func (s *postgresStore) Select(ctx context.Context, q Query, dest interface{}) error {
	sql, args, err := buildSelect(q)
	if err != nil {
		return err
	}
	return s.run(ctx, sql, args, dest)
}

func (s *postgresStore) Insert(ctx context.Context, table string, row interface{}, dest interface{}) error {
	values, err := toColumns(row)
	if err != nil {
		return err
	}
	sql, args, err := buildInsert(table, values)
	if err != nil {
		return err
	}
	return s.run(ctx, sql, args, dest)
}

func (s *postgresStore) Update(ctx context.Context, q Query, values interface{}, dest interface{}) error {
	cols, err := toColumns(values)
	if err != nil {
		return err
	}
	sql, args, err := buildUpdate(q, cols)
	if err != nil {
		return err
	}
	return s.run(ctx, sql, args, dest)
}

func (s *postgresStore) Delete(ctx context.Context, q Query, dest interface{}) error {
	sql, args, err := buildDelete(q)
	if err != nil {
		return err
	}
	return s.run(ctx, sql, args, dest)
}

func fromPg(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &Error{
			Code:       pgErr.Code,
			Message:    pgErr.Message,
			Details:    pgErr.Detail,
			Constraint: pgErr.ConstraintName,
			Err:        err,
		}
	}
	return err
}
