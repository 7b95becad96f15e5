package contextkeys

type contextKey string

const (
	AccessTokenKey contextKey = "AccessToken"
	PrincipalKey   contextKey = "Principal"
)
