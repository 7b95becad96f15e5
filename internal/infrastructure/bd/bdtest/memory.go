// Package bdtest - хранилище в памяти для тестов сервисов и роутов.
// Строки хранятся в том же JSON-виде, который отдают настоящие бэкенды.
package bdtest

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/eneca-dev/enecawork-backend/internal/infrastructure/bd"
)

type row = map[string]interface{}

// ForeignKey - Table.Column должен ссылаться на существующее RefTable.RefColumn.
type ForeignKey struct {
	Table     string
	Column    string
	RefTable  string
	RefColumn string
}

// Store реализует bd.Store. Err, если задан, возвращается из любой операции.
type Store struct {
	mu     sync.Mutex
	tables map[string][]row
	fks    []ForeignKey
	unique map[string][]string

	Err   error
	Calls int
}

var _ bd.Store = (*Store)(nil)

func New(fks ...ForeignKey) *Store {
	return &Store{tables: make(map[string][]row), fks: fks, unique: make(map[string][]string)}
}

// Unique объявляет уникальные колонки таблицы.
func (s *Store) Unique(table string, columns ...string) *Store {
	s.unique[table] = append(s.unique[table], columns...)
	return s
}

// Seed кладёт строки как есть, без проверки ключей.
func (s *Store) Seed(table string, rows ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range rows {
		values, err := normalize(r)
		if err != nil {
			panic(err)
		}
		s.tables[table] = append(s.tables[table], values)
	}
}

// Rows возвращает копию содержимого таблицы.
func (s *Store) Rows(table string) []map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]map[string]interface{}, 0, len(s.tables[table]))
	for _, r := range s.tables[table] {
		out = append(out, clone(r))
	}
	return out
}

func normalize(v interface{}) (row, error) {
	encoded, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var values row
	if err := json.Unmarshal(encoded, &values); err != nil {
		return nil, fmt.Errorf("row must be an object: %w", err)
	}
	return values, nil
}

func clone(r row) row {
	out := make(row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

func key(v interface{}) string {
	if v == nil {
		return "<nil>"
	}
	return fmt.Sprint(v)
}

func matches(r row, filters []bd.Filter) bool {
	for _, f := range filters {
		if key(r[f.Column]) != key(f.Value) {
			return false
		}
	}
	return true
}

func project(r row, columns []string) row {
	if len(columns) == 0 {
		return clone(r)
	}
	out := make(row, len(columns))
	for _, c := range columns {
		out[c] = r[c]
	}
	return out
}

func encode(rows []row, dest interface{}) error {
	if dest == nil {
		return nil
	}
	encoded, err := json.Marshal(rows)
	if err != nil {
		return err
	}
	return json.Unmarshal(encoded, dest)
}

func (s *Store) begin() error {
	s.Calls++
	return s.Err
}

func (s *Store) Select(ctx context.Context, q bd.Query, dest interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return err
	}

	selected := make([]row, 0)
	for _, r := range s.tables[q.Table] {
		if matches(r, q.Filters) {
			selected = append(selected, r)
		}
	}
	if len(q.OrderBy) > 0 {
		sort.SliceStable(selected, func(i, j int) bool {
			for _, o := range q.OrderBy {
				col, dir, _ := strings.Cut(o, ".")
				a, b := key(selected[i][col]), key(selected[j][col])
				if a == b {
					continue
				}
				if dir == "desc" {
					return a > b
				}
				return a < b
			}
			return false
		})
	}
	if q.Limit > 0 && len(selected) > q.Limit {
		selected = selected[:q.Limit]
	}

	out := make([]row, 0, len(selected))
	for _, r := range selected {
		out = append(out, project(r, q.Columns))
	}
	return encode(out, dest)
}

func (s *Store) checkRefs(table string, r row) error {
	for _, fk := range s.fks {
		if fk.Table != table {
			continue
		}
		v, ok := r[fk.Column]
		if !ok || v == nil {
			continue
		}
		found := false
		for _, ref := range s.tables[fk.RefTable] {
			if key(ref[fk.RefColumn]) == key(v) {
				found = true
				break
			}
		}
		if !found {
			return &bd.Error{
				Code:    bd.CodeForeignKeyViolation,
				Message: fmt.Sprintf("insert or update on table %q violates foreign key constraint", table),
				Details: fmt.Sprintf("Key (%s)=(%v) is not present in table %q.", fk.Column, v, fk.RefTable),
			}
		}
	}
	for _, col := range s.unique[table] {
		for _, existing := range s.tables[table] {
			if key(existing[col]) == key(r[col]) {
				return &bd.Error{
					Code:    bd.CodeUniqueViolation,
					Message: "duplicate key value violates unique constraint",
					Details: fmt.Sprintf("Key (%s)=(%v) already exists.", col, r[col]),
				}
			}
		}
	}
	return nil
}

func (s *Store) Insert(ctx context.Context, table string, r interface{}, dest interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return err
	}

	values, err := normalize(r)
	if err != nil {
		return err
	}
	if _, ok := values["id"]; !ok {
		values["id"] = uuid.NewString()
	}
	if err := s.checkRefs(table, values); err != nil {
		return err
	}
	s.tables[table] = append(s.tables[table], values)
	return encode([]row{clone(values)}, dest)
}

func (s *Store) Update(ctx context.Context, q bd.Query, values interface{}, dest interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return err
	}
	if len(q.Filters) == 0 {
		return fmt.Errorf("update %s without filters is not allowed", q.Table)
	}

	patch, err := normalize(values)
	if err != nil {
		return err
	}
	updated := make([]row, 0)
	for _, r := range s.tables[q.Table] {
		if !matches(r, q.Filters) {
			continue
		}
		for k, v := range patch {
			r[k] = v
		}
		updated = append(updated, clone(r))
	}
	return encode(updated, dest)
}

func (s *Store) Delete(ctx context.Context, q bd.Query, dest interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return err
	}
	if len(q.Filters) == 0 {
		return fmt.Errorf("delete from %s without filters is not allowed", q.Table)
	}

	kept := s.tables[q.Table][:0]
	deleted := make([]row, 0)
	for _, r := range s.tables[q.Table] {
		if matches(r, q.Filters) {
			deleted = append(deleted, r)
			continue
		}
		kept = append(kept, r)
	}
	s.tables[q.Table] = kept
	return encode(deleted, dest)
}
