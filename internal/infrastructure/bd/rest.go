package bd

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/eneca-dev/enecawork-backend/pkg/supabase"
)

type restStore struct {
	rest *supabase.RestClient
}

// NewRestStore - хранилище поверх PostgREST.
func NewRestStore(rest *supabase.RestClient) Store {
	return &restStore{rest: rest}
}

func queryParams(q Query, withSelect bool) url.Values {
	params := url.Values{}
	if withSelect {
		cols := "*"
		if len(q.Columns) > 0 {
			cols = strings.Join(q.Columns, ",")
		}
		params.Set("select", cols)
	}
	for _, f := range q.Filters {
		params.Add(f.Column, "eq."+fmt.Sprint(f.Value))
	}
	if len(q.OrderBy) > 0 {
		params.Set("order", strings.Join(q.OrderBy, ","))
	}
	if q.Limit > 0 {
		params.Set("limit", fmt.Sprint(q.Limit))
	}
	return params
}

func (s *restStore) exec(ctx context.Context, req supabase.RestRequest, dest interface{}) error {
	body, err := s.rest.Do(ctx, req)
	if err != nil {
		return fromSupabase(err)
	}
	return decodeRows(body, dest)
}

func (s *restStore) Select(ctx context.Context, q Query, dest interface{}) error {
	return s.exec(ctx, supabase.RestRequest{
		Method: http.MethodGet,
		Table:  q.Table,
		Params: queryParams(q, true),
	}, dest)
}

func (s *restStore) Insert(ctx context.Context, table string, row interface{}, dest interface{}) error {
	return s.exec(ctx, supabase.RestRequest{
		Method: http.MethodPost,
		Table:  table,
		Body:   row,
		Prefer: "return=representation",
	}, dest)
}

func (s *restStore) Update(ctx context.Context, q Query, values interface{}, dest interface{}) error {
	if len(q.Filters) == 0 {
		return fmt.Errorf("update %s without filters is not allowed", q.Table)
	}
	return s.exec(ctx, supabase.RestRequest{
		Method: http.MethodPatch,
		Table:  q.Table,
		Params: queryParams(q, true),
		Body:   values,
		Prefer: "return=representation",
	}, dest)
}

func (s *restStore) Delete(ctx context.Context, q Query, dest interface{}) error {
	if len(q.Filters) == 0 {
		return fmt.Errorf("delete from %s without filters is not allowed", q.Table)
	}
	return s.exec(ctx, supabase.RestRequest{
		Method: http.MethodDelete,
		Table:  q.Table,
		Params: queryParams(q, true),
		Prefer: "return=representation",
	}, dest)
}

// fromSupabase переводит ошибку PostgREST в Error; транспортные ошибки и ошибки auth
// пробрасываются как есть.
func fromSupabase(err error) error {
	sbErr, ok := supabase.AsError(err)
	if !ok {
		return err
	}
	if sbErr.StatusCode == http.StatusUnauthorized || sbErr.StatusCode == http.StatusForbidden {
		return err
	}
	return &Error{
		Code:    sbErr.Code,
		Message: sbErr.Message,
		Details: sbErr.Details,
		Err:     err,
	}
}
