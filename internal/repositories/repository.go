package repositories

import (
	"errors"
)

// ErrNotFound - запрошенной строки нет (или условная запись ничего не затронула).
var ErrNotFound = errors.New("запись не найдена")

func first[T any](rows []T) (*T, error) {
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}
