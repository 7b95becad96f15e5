package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// AuthClient - операции GoTrue.
type AuthClient struct {
	client *Client
}

func (a *AuthClient) call(ctx context.Context, method, path, bearer string, payload interface{}) ([]byte, error) {
	if bearer == "" {
		bearer = a.client.anonKey
	}
	return a.client.do(ctx, method, a.client.authURL+path, a.client.anonKey, bearer, payload, nil)
}

func decodeSession(body []byte) (*Session, error) {
	var session Session
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &session, nil
}

// SignUp создаёт пользователя. При включённом подтверждении email GoTrue возвращает
// пользователя без сессии - тогда session равна nil.
func (a *AuthClient) SignUp(ctx context.Context, req SignUpRequest) (*User, *Session, error) {
	body, err := a.call(ctx, http.MethodPost, "/signup", "", req)
	if err != nil {
		return nil, nil, err
	}

	var raw struct {
		Session
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, nil, fmt.Errorf("unmarshal signup response: %w", err)
	}

	if raw.AccessToken != "" && raw.User != nil {
		session := raw.Session
		return session.User, &session, nil
	}
	if raw.ID == "" {
		return nil, nil, nil
	}

	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, nil, fmt.Errorf("unmarshal signup user: %w", err)
	}
	return &user, nil, nil
}

func (a *AuthClient) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	body, err := a.call(ctx, http.MethodPost, "/token?grant_type=password", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	return decodeSession(body)
}

// GetUser проверяет access-токен на стороне платформы.
func (a *AuthClient) GetUser(ctx context.Context, accessToken string) (*User, error) {
	if accessToken == "" {
		return nil, &Error{StatusCode: http.StatusUnauthorized, Code: "bad_jwt", Message: "invalid token"}
	}
	body, err := a.call(ctx, http.MethodGet, "/user", accessToken, nil)
	if err != nil {
		return nil, err
	}
	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("unmarshal user: %w", err)
	}
	if user.ID == "" {
		return nil, &Error{StatusCode: http.StatusUnauthorized, Code: "bad_jwt", Message: "invalid token"}
	}
	return &user, nil
}

func (a *AuthClient) RefreshSession(ctx context.Context, refreshToken string) (*Session, error) {
	body, err := a.call(ctx, http.MethodPost, "/token?grant_type=refresh_token", "", map[string]string{
		"refresh_token": refreshToken,
	})
	if err != nil {
		return nil, err
	}
	return decodeSession(body)
}

// SetSession восстанавливает сессию по паре токенов: если access-токен отвергнут
// и есть refresh-токен, выполняется обновление.
func (a *AuthClient) SetSession(ctx context.Context, accessToken, refreshToken string) (*Session, error) {
	user, err := a.GetUser(ctx, accessToken)
	if err == nil {
		return &Session{AccessToken: accessToken, RefreshToken: refreshToken, TokenType: "bearer", User: user}, nil
	}
	if refreshToken == "" || !IsInvalidToken(err) {
		return nil, err
	}
	return a.RefreshSession(ctx, refreshToken)
}

func (a *AuthClient) UpdateUser(ctx context.Context, accessToken string, attrs UserAttributes) (*User, error) {
	if accessToken == "" {
		return nil, errors.New("access token is required")
	}
	body, err := a.call(ctx, http.MethodPut, "/user", accessToken, attrs)
	if err != nil {
		return nil, err
	}
	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("unmarshal user: %w", err)
	}
	return &user, nil
}

// ResetPasswordForEmail запускает письмо восстановления. Доставка не подтверждается.
func (a *AuthClient) ResetPasswordForEmail(ctx context.Context, email, redirectTo string) error {
	path := "/recover"
	if redirectTo != "" {
		path += "?redirect_to=" + url.QueryEscape(redirectTo)
	}
	_, err := a.call(ctx, http.MethodPost, path, "", map[string]string{"email": email})
	return err
}

func (a *AuthClient) SignOut(ctx context.Context, accessToken string) error {
	_, err := a.call(ctx, http.MethodPost, "/logout", accessToken, nil)
	return err
}
