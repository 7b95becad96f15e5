package bd

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSelect(t *testing.T) {
	sql, args, err := buildSelect(Query{
		Table:   "sections",
		Columns: []string{"id", "name"},
		Filters: []Filter{Eq("ws_project_id", "77")},
		OrderBy: []string{"name", "id.desc"},
		Limit:   10,
	})
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT jsonb_build_object('id', t.id, 'name', t.name) FROM sections t WHERE t.ws_project_id = $1 ORDER BY t.name ASC, t.id DESC LIMIT 10",
		sql)
	assert.Equal(t, []interface{}{"77"}, args)
}

func TestBuildSelect_AllColumns(t *testing.T) {
	sql, args, err := buildSelect(Query{Table: "projects"})
	require.NoError(t, err)
	assert.Equal(t, "SELECT to_jsonb(t) FROM projects t", sql)
	assert.Empty(t, args)
}

func TestBuildSelect_RejectsIdentifiers(t *testing.T) {
	_, _, err := buildSelect(Query{Table: "projects; drop table users"})
	assert.Error(t, err)

	_, _, err = buildSelect(Query{Table: "projects", OrderBy: []string{"name.sideways"}})
	assert.Error(t, err)

	_, _, err = buildSelect(Query{Table: "projects", Filters: []Filter{Eq("id = 1 OR 1", 1)}})
	assert.Error(t, err)
}

func TestBuildInsert(t *testing.T) {
	sql, args, err := buildInsert("assignments", map[string]interface{}{"text": "Сделать", "status": "Ожидается"})
	require.NoError(t, err)
	assert.Equal(t,
		"WITH t AS (INSERT INTO assignments (status,text) VALUES ($1,$2) RETURNING *) SELECT to_jsonb(t) FROM t",
		sql)
	assert.Equal(t, []interface{}{"Ожидается", "Сделать"}, args)
}

func TestBuildUpdate(t *testing.T) {
	sql, args, err := buildUpdate(
		Query{Table: "assignments", Filters: []Filter{Eq("id", "a1")}},
		map[string]interface{}{"status": "В работе"},
	)
	require.NoError(t, err)
	assert.Equal(t,
		"WITH t AS (UPDATE assignments AS t SET status = $1 WHERE t.id = $2 RETURNING t.*) SELECT to_jsonb(t) FROM t",
		sql)
	assert.Equal(t, []interface{}{"В работе", "a1"}, args)

	_, _, err = buildUpdate(Query{Table: "assignments"}, map[string]interface{}{"status": "x"})
	assert.Error(t, err, "обновление без фильтра запрещено")

	_, _, err = buildUpdate(Query{Table: "assignments", Filters: []Filter{Eq("id", "a1")}}, nil)
	assert.Error(t, err)
}

func TestBuildDelete(t *testing.T) {
	sql, args, err := buildDelete(Query{Table: "assignments", Filters: []Filter{Eq("id", "a1")}})
	require.NoError(t, err)
	assert.Equal(t,
		"WITH t AS (DELETE FROM assignments AS t WHERE t.id = $1 RETURNING t.*) SELECT to_jsonb(t) FROM t",
		sql)
	assert.Equal(t, []interface{}{"a1"}, args)

	_, _, err = buildDelete(Query{Table: "assignments"})
	assert.Error(t, err)
}

func TestToColumns(t *testing.T) {
	type row struct {
		ProjectID int64   `json:"project_id"`
		Ratio     float64 `json:"ratio"`
		Name      string  `json:"name"`
		Skip      string  `json:"-"`
	}
	values, err := toColumns(row{ProjectID: 42, Ratio: 0.5, Name: "Альфа", Skip: "x"})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"project_id": int64(42), "ratio": 0.5, "name": "Альфа"}, values)

	_, err = toColumns([]int{1, 2})
	assert.Error(t, err)
}

func TestQueryParams(t *testing.T) {
	params := queryParams(Query{
		Columns: []string{"id", "name"},
		Filters: []Filter{Eq("project_id", 42), Eq("digest_date", "2024-03-01")},
		OrderBy: []string{"created_at", "id"},
		Limit:   1,
	}, true)

	assert.Equal(t, "id,name", params.Get("select"))
	assert.Equal(t, "eq.42", params.Get("project_id"))
	assert.Equal(t, "eq.2024-03-01", params.Get("digest_date"))
	assert.Equal(t, "created_at,id", params.Get("order"))
	assert.Equal(t, "1", params.Get("limit"))

	assert.Equal(t, "*", queryParams(Query{}, true).Get("select"))
	assert.False(t, queryParams(Query{}, false).Has("select"))
}

func TestForeignKeyColumn(t *testing.T) {
	err := fmt.Errorf("insert: %w", &Error{
		Code:    CodeForeignKeyViolation,
		Message: `insert or update on table "assignments" violates foreign key constraint`,
		Details: `Key (to_section_id)=(9b1c) is not present in table "sections".`,
	})
	col, ok := ForeignKeyColumn(err)
	assert.True(t, ok)
	assert.Equal(t, "to_section_id", col)

	col, ok = ForeignKeyColumn(&Error{Code: CodeForeignKeyViolation, Message: "violates foreign key"})
	assert.True(t, ok)
	assert.Empty(t, col)

	_, ok = ForeignKeyColumn(&Error{Code: CodeUniqueViolation})
	assert.False(t, ok)

	assert.True(t, IsUniqueViolation(&Error{Code: CodeUniqueViolation}))
	assert.True(t, IsInvalidValue(&Error{Code: CodeInvalidText}))
	assert.True(t, IsInvalidValue(&Error{Code: CodeCheckViolation}))
	assert.False(t, IsInvalidValue(assert.AnError))
}

func TestDecodeRows(t *testing.T) {
	var rows []map[string]interface{}
	require.NoError(t, decodeRows(nil, &rows))
	assert.Empty(t, rows)

	require.NoError(t, decodeRows([]byte(`[{"id":1}]`), &rows))
	assert.Len(t, rows, 1)

	assert.NoError(t, decodeRows([]byte(`garbage`), nil))
	assert.Error(t, decodeRows([]byte(`garbage`), &rows))
}
