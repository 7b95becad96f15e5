// Package supabase - тонкий клиент платформы Supabase: GoTrue (/auth/v1) и PostgREST (/rest/v1).
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Config - параметры подключения к проекту Supabase.
type Config struct {
	URL        string
	AnonKey    string
	ServiceKey string // для таблиц; если пусто - используется AnonKey
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client создаётся один раз на процесс и безопасен для конкурентного использования.
type Client struct {
	httpClient *http.Client
	anonKey    string
	serviceKey string
	authURL    string
	restURL    string

	auth *AuthClient
	rest *RestClient
}

func New(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, errors.New("supabase url is required")
	}
	if cfg.AnonKey == "" {
		return nil, errors.New("supabase anon key is required")
	}
	base := strings.TrimRight(cfg.URL, "/")
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("invalid supabase url: %w", err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	serviceKey := cfg.ServiceKey
	if serviceKey == "" {
		serviceKey = cfg.AnonKey
	}

	c := &Client{
		httpClient: httpClient,
		anonKey:    cfg.AnonKey,
		serviceKey: serviceKey,
		authURL:    base + "/auth/v1",
		restURL:    base + "/rest/v1",
	}
	c.auth = &AuthClient{client: c}
	c.rest = &RestClient{client: c}
	return c, nil
}

func (c *Client) Auth() *AuthClient { return c.auth }

func (c *Client) Rest() *RestClient { return c.rest }

// do выполняет запрос. bearer - токен для Authorization; apikey всегда anon/service ключ.
func (c *Client) do(ctx context.Context, method, rawURL, apiKey, bearer string, payload interface{}, headers map[string]string) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		switch p := payload.(type) {
		case []byte:
			body = bytes.NewReader(p)
		default:
			encoded, err := json.Marshal(payload)
			if err != nil {
				return nil, fmt.Errorf("marshal request: %w", err)
			}
			body = bytes.NewReader(encoded)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", apiKey)
	req.Header.Set("Authorization", "Bearer "+bearer)
	for k, v := range headers {
		if v != "" {
			req.Header.Set(k, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, parseError(respBody, resp.StatusCode)
	}
	return respBody, nil
}
