// Package bd - табличное хранилище с двумя реализациями: PostgREST и прямое подключение к Postgres.
// Обе возвращают строки в одинаковом JSON-виде, поэтому репозитории не знают, какая из них работает.
package bd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
)

// Filter - условие равенства column = value.
type Filter struct {
	Column string
	Value  interface{}
}

func Eq(column string, value interface{}) Filter {
	return Filter{Column: column, Value: value}
}

type Query struct {
	Table   string
	Columns []string // пусто - все колонки
	Filters []Filter
	OrderBy []string // "created_at", "id.desc"
	Limit   int
}

// Store - операции над таблицами. dest - указатель на срез.
// Insert, Update и Delete возвращают затронутые строки: пустой результат значит, что цели не было.
type Store interface {
	Select(ctx context.Context, q Query, dest interface{}) error
	Insert(ctx context.Context, table string, row interface{}, dest interface{}) error
	Update(ctx context.Context, q Query, values interface{}, dest interface{}) error
	Delete(ctx context.Context, q Query, dest interface{}) error
}

// SQLSTATE, которые различают репозитории.
const (
	CodeForeignKeyViolation = "23503"
	CodeUniqueViolation     = "23505"
	CodeCheckViolation      = "23514"
	CodeInvalidText         = "22P02"
)

// Error - ошибка хранилища в общем для обоих бэкендов виде.
type Error struct {
	Code       string
	Message    string
	Details    string
	Constraint string
	Err        error
}

func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("bd: %s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("bd: %s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func codeOf(err error) string {
	var bdErr *Error
	if errors.As(err, &bdErr) {
		return bdErr.Code
	}
	return ""
}

func IsUniqueViolation(err error) bool { return codeOf(err) == CodeUniqueViolation }

func IsInvalidValue(err error) bool {
	code := codeOf(err)
	return code == CodeInvalidText || code == CodeCheckViolation
}

// Key (project_id)=(...) is not present in table "projects".
var fkDetailRe = regexp.MustCompile(`Key \(([a-zA-Z0-9_]+)\)=`)

// ForeignKeyColumn возвращает колонку, ссылка которой не нашлась, если err - нарушение внешнего ключа.
func ForeignKeyColumn(err error) (string, bool) {
	var bdErr *Error
	if !errors.As(err, &bdErr) || bdErr.Code != CodeForeignKeyViolation {
		return "", false
	}
	if m := fkDetailRe.FindStringSubmatch(bdErr.Details); len(m) == 2 {
		return m[1], true
	}
	if m := fkDetailRe.FindStringSubmatch(bdErr.Message); len(m) == 2 {
		return m[1], true
	}
	return "", true
}

func decodeRows(data []byte, dest interface{}) error {
	if dest == nil {
		return nil
	}
	if len(data) == 0 {
		data = []byte("[]")
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("decode rows: %w", err)
	}
	return nil
}
