package bd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var identRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

func checkIdent(names ...string) error {
	for _, n := range names {
		if !identRe.MatchString(n) {
			return fmt.Errorf("invalid identifier %q", n)
		}
	}
	return nil
}

func whereEq(filters []Filter) (sq.Eq, error) {
	eq := sq.Eq{}
	for _, f := range filters {
		if err := checkIdent(f.Column); err != nil {
			return nil, err
		}
		eq["t."+f.Column] = f.Value
	}
	return eq, nil
}

// orderClause переводит "col" / "col.desc" в синтаксис SQL.
func orderClause(order string) (string, error) {
	col, dir, _ := strings.Cut(order, ".")
	if err := checkIdent(col); err != nil {
		return "", err
	}
	switch strings.ToLower(dir) {
	case "", "asc":
		return "t." + col + " ASC", nil
	case "desc":
		return "t." + col + " DESC", nil
	default:
		return "", fmt.Errorf("invalid order direction %q", dir)
	}
}

func projection(columns []string) (string, error) {
	if len(columns) == 0 {
		return "to_jsonb(t)", nil
	}
	if err := checkIdent(columns...); err != nil {
		return "", err
	}
	parts := make([]string, 0, len(columns))
	for _, c := range columns {
		parts = append(parts, fmt.Sprintf("'%s', t.%s", c, c))
	}
	return "jsonb_build_object(" + strings.Join(parts, ", ") + ")", nil
}

func buildSelect(q Query) (string, []interface{}, error) {
	if err := checkIdent(q.Table); err != nil {
		return "", nil, err
	}
	proj, err := projection(q.Columns)
	if err != nil {
		return "", nil, err
	}
	where, err := whereEq(q.Filters)
	if err != nil {
		return "", nil, err
	}

	builder := psql.Select(proj).From(q.Table + " t")
	if len(where) > 0 {
		builder = builder.Where(where)
	}
	for _, o := range q.OrderBy {
		clause, err := orderClause(o)
		if err != nil {
			return "", nil, err
		}
		builder = builder.OrderBy(clause)
	}
	if q.Limit > 0 {
		builder = builder.Limit(uint64(q.Limit))
	}
	return builder.ToSql()
}

// returning оборачивает изменяющий запрос так, чтобы затронутые строки вернулись как jsonb.
func returning(sql string) string {
	return "WITH t AS (" + sql + ") SELECT to_jsonb(t) FROM t"
}

func buildInsert(table string, values map[string]interface{}) (string, []interface{}, error) {
	if err := checkIdent(table); err != nil {
		return "", nil, err
	}
	for col := range values {
		if err := checkIdent(col); err != nil {
			return "", nil, err
		}
	}
	sql, args, err := psql.Insert(table).SetMap(values).Suffix("RETURNING *").ToSql()
	if err != nil {
		return "", nil, err
	}
	return returning(sql), args, nil
}

func buildUpdate(q Query, values map[string]interface{}) (string, []interface{}, error) {
	if err := checkIdent(q.Table); err != nil {
		return "", nil, err
	}
	if len(q.Filters) == 0 {
		return "", nil, fmt.Errorf("update %s without filters is not allowed", q.Table)
	}
	if len(values) == 0 {
		return "", nil, fmt.Errorf("update %s without values", q.Table)
	}
	for col := range values {
		if err := checkIdent(col); err != nil {
			return "", nil, err
		}
	}
	where, err := whereEq(q.Filters)
	if err != nil {
		return "", nil, err
	}
	sql, args, err := psql.Update(q.Table + " AS t").SetMap(values).Where(where).Suffix("RETURNING t.*").ToSql()
	if err != nil {
		return "", nil, err
	}
	return returning(sql), args, nil
}

func buildDelete(q Query) (string, []interface{}, error) {
	if err := checkIdent(q.Table); err != nil {
		return "", nil, err
	}
	if len(q.Filters) == 0 {
		return "", nil, fmt.Errorf("delete from %s without filters is not allowed", q.Table)
	}
	where, err := whereEq(q.Filters)
	if err != nil {
		return "", nil, err
	}
	sql, args, err := psql.Delete(q.Table + " AS t").Where(where).Suffix("RETURNING t.*").ToSql()
	if err != nil {
		return "", nil, err
	}
	return returning(sql), args, nil
}

// toColumns превращает строку (структуру с json-тегами или map) в набор колонок.
// Целые числа остаются int64, чтобы pgx не получал float64 для integer-колонок.
func toColumns(row interface{}) (map[string]interface{}, error) {
	encoded, err := json.Marshal(row)
	if err != nil {
		return nil, fmt.Errorf("encode row: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(encoded))
	dec.UseNumber()
	var values map[string]interface{}
	if err := dec.Decode(&values); err != nil {
		return nil, fmt.Errorf("row must be an object: %w", err)
	}
	for k, v := range values {
		n, ok := v.(json.Number)
		if !ok {
			continue
		}
		if i, err := n.Int64(); err == nil {
			values[k] = i
		} else if f, err := n.Float64(); err == nil {
			values[k] = f
		}
	}
	return values, nil
}
