package supabase

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(Config{URL: srv.URL + "/", AnonKey: "anon", ServiceKey: "service"})
	require.NoError(t, err)
	return c
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Config{AnonKey: "anon"})
	assert.Error(t, err)

	_, err = New(Config{URL: "http://localhost"})
	assert.Error(t, err)

	c, err := New(Config{URL: "http://localhost:54321/", AnonKey: "anon"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:54321/auth/v1", c.authURL)
	assert.Equal(t, "http://localhost:54321/rest/v1", c.restURL)
	assert.Equal(t, "anon", c.serviceKey, "без сервисного ключа используется anon")
}

func TestSignUp_WithSession(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/signup", r.URL.Path)
		assert.Equal(t, "anon", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer anon", r.Header.Get("Authorization"))

		var req SignUpRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ivan@example.com", req.Email)
		assert.Equal(t, "Иван", req.Data["first_name"])

		_, _ = io.WriteString(w, `{"access_token":"at","refresh_token":"rt","token_type":"bearer",
			"user":{"id":"8d5e4c1a-1f7b-4a59-9b0e-5a3c6c2d1e00","email":"ivan@example.com"}}`)
	})

	user, session, err := c.Auth().SignUp(context.Background(), SignUpRequest{
		Email:    "ivan@example.com",
		Password: "secret1",
		Data:     map[string]interface{}{"first_name": "Иван"},
	})
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "at", session.AccessToken)
	assert.Equal(t, "8d5e4c1a-1f7b-4a59-9b0e-5a3c6c2d1e00", user.ID)
}

func TestSignUp_ConfirmationRequired(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"id":"8d5e4c1a-1f7b-4a59-9b0e-5a3c6c2d1e00","email":"ivan@example.com",
			"user_metadata":{"first_name":"Иван"}}`)
	})

	user, session, err := c.Auth().SignUp(context.Background(), SignUpRequest{Email: "ivan@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Nil(t, session)
	require.NotNil(t, user)
	assert.Equal(t, "Иван", user.MetadataString("first_name"))
	assert.Equal(t, "", user.MetadataString("last_name"))
}

func TestSignIn_InvalidCredentials(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"code":400,"error_code":"invalid_credentials","msg":"Invalid login credentials"}`)
	})

	_, err := c.Auth().SignInWithPassword(context.Background(), "ivan@example.com", "wrong1")
	require.Error(t, err)
	assert.True(t, IsInvalidCredentials(err))
	assert.False(t, IsInvalidToken(err))

	sbErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, sbErr.StatusCode)
	assert.Equal(t, "Invalid login credentials", sbErr.Message)
}

func TestParseError_Formats(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		status  int
		code    string
		message string
	}{
		{"postgrest", `{"code":"23503","message":"insert violates fk","details":"Key (project_id)"}`, 409, "23503", "insert violates fk"},
		{"oauth", `{"error":"invalid_grant","error_description":"Invalid Refresh Token"}`, 400, "invalid_grant", "Invalid Refresh Token"},
		{"plain text", `upstream failed`, 502, "unknown", "upstream failed"},
		{"empty", ``, 503, "unknown", "Service Unavailable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parseError([]byte(tt.body), tt.status)
			sbErr, ok := AsError(err)
			require.True(t, ok)
			assert.Equal(t, tt.code, sbErr.Code)
			assert.Equal(t, tt.message, sbErr.Message)
			assert.Equal(t, tt.status, sbErr.StatusCode)
		})
	}
}

func TestErrorPredicates(t *testing.T) {
	assert.True(t, IsRateLimited(&Error{StatusCode: http.StatusTooManyRequests}))
	assert.True(t, IsRateLimited(&Error{StatusCode: 400, Code: "over_email_send_rate_limit"}))
	assert.True(t, IsUserAlreadyExists(&Error{StatusCode: 422, Message: "User already registered"}))
	assert.True(t, IsEmailNotConfirmed(&Error{StatusCode: 400, Code: "email_not_confirmed"}))
	assert.True(t, IsInvalidToken(&Error{StatusCode: http.StatusUnauthorized}))
	assert.True(t, IsInvalidToken(&Error{StatusCode: 400, Code: "refresh_token_not_found"}))
	assert.False(t, IsInvalidToken(assert.AnError))
}

func TestGetUser_EmptyToken(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) { called = true })

	_, err := c.Auth().GetUser(context.Background(), "")
	assert.True(t, IsInvalidToken(err))
	assert.False(t, called)
}

func TestSetSession_RefreshFallback(t *testing.T) {
	var refreshed bool
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/auth/v1/user":
			assert.Equal(t, "Bearer expired", r.Header.Get("Authorization"))
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"code":401,"error_code":"bad_jwt","msg":"invalid JWT"}`)
		case r.URL.Path == "/auth/v1/token" && r.URL.Query().Get("grant_type") == "refresh_token":
			refreshed = true
			_, _ = io.WriteString(w, `{"access_token":"fresh","refresh_token":"rt2","user":{"id":"u1","email":"a@b.cd"}}`)
		default:
			t.Errorf("неожиданный запрос %s", r.URL.String())
		}
	})

	session, err := c.Auth().SetSession(context.Background(), "expired", "rt")
	require.NoError(t, err)
	assert.True(t, refreshed)
	assert.Equal(t, "fresh", session.AccessToken)

	_, err = c.Auth().SetSession(context.Background(), "expired", "")
	assert.True(t, IsInvalidToken(err))
}

func TestResetPasswordForEmail_Redirect(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/recover", r.URL.Path)
		assert.Equal(t, "http://front/reset", r.URL.Query().Get("redirect_to"))
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, `{}`)
	})

	require.NoError(t, c.Auth().ResetPasswordForEmail(context.Background(), "a@b.cd", "http://front/reset"))
}

func TestRest_Do(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/assignments", r.URL.Path)
		assert.Equal(t, "service", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer service", r.Header.Get("Authorization"))
		assert.Equal(t, "return=representation", r.Header.Get("Prefer"))
		assert.Equal(t, "eq.42", r.URL.Query().Get("id"))
		_, _ = io.WriteString(w, `[{"id":42}]`)
	})

	body, err := c.Rest().Do(context.Background(), RestRequest{
		Method: http.MethodPatch,
		Table:  "assignments",
		Params: url.Values{"id": []string{"eq.42"}},
		Body:   map[string]string{"status": "В работе"},
		Prefer: "return=representation",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":42}]`, string(body))

	_, err = c.Rest().Do(context.Background(), RestRequest{Method: http.MethodGet})
	assert.Error(t, err)
}
