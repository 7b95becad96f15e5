// Файл: internal/entities/user_entity.go
package entities

import "github.com/google/uuid"

// User - строка профиля в таблице users. Ключ совпадает с id учётной записи в Auth.
type User struct {
	ID         uuid.UUID `json:"id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	Team       string    `json:"team"`
	Position   string    `json:"position"`
	Category   string    `json:"category"`
}
