// pkg/utils/context.go

package utils

import (
	"context"

	"github.com/eneca-dev/enecawork-backend/internal/entities"
	"github.com/eneca-dev/enecawork-backend/pkg/contextkeys"
	apperrors "github.com/eneca-dev/enecawork-backend/pkg/errors"
)

func WithAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, contextkeys.AccessTokenKey, token)
}

func WithPrincipal(ctx context.Context, p entities.Principal) context.Context {
	ctx = WithAccessToken(ctx, p.AccessToken)
	return context.WithValue(ctx, contextkeys.PrincipalKey, p)
}

// GetAccessTokenFromCtx возвращает сырой bearer-токен, который положил RequireBearer.
func GetAccessTokenFromCtx(ctx context.Context) (string, error) {
	token, ok := ctx.Value(contextkeys.AccessTokenKey).(string)
	if !ok || token == "" {
		return "", apperrors.ErrEmptyAuthHeader
	}
	return token, nil
}

func GetPrincipalFromCtx(ctx context.Context) (entities.Principal, error) {
	p, ok := ctx.Value(contextkeys.PrincipalKey).(entities.Principal)
	if !ok {
		return entities.Principal{}, apperrors.ErrUnauthorized
	}
	return p, nil
}
