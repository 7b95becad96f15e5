package entities

import "github.com/google/uuid"

// Principal - аутентифицированный вызывающий. Создаётся middleware из заголовка Authorization
// и передаётся в сервисы как есть.
type Principal struct {
	UserID      uuid.UUID
	AccessToken string
}
