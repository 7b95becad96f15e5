package supabase

import (
	"context"
	"errors"
	"net/url"
)

// RestClient - транспорт PostgREST. Запросы идут с сервисным ключом.
type RestClient struct {
	client *Client
}

// RestRequest описывает один вызов /rest/v1/{table}.
type RestRequest struct {
	Method string
	Table  string
	Params url.Values
	Body   interface{}
	Prefer string
}

func (r *RestClient) Do(ctx context.Context, req RestRequest) ([]byte, error) {
	if req.Table == "" {
		return nil, errors.New("table is required")
	}
	rawURL := r.client.restURL + "/" + url.PathEscape(req.Table)
	if len(req.Params) > 0 {
		rawURL += "?" + req.Params.Encode()
	}
	headers := map[string]string{"Prefer": req.Prefer}
	return r.client.do(ctx, req.Method, rawURL, r.client.serviceKey, r.client.serviceKey, req.Body, headers)
}
