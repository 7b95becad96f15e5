package dto

type RegisterDTO struct {
	FirstName       string `json:"first_name" validate:"required,min=2"`
	LastName        string `json:"last_name" validate:"required,min=2"`
	Department      string `json:"department" validate:"required"`
	Team            string `json:"team" validate:"omitempty,team"`
	Position        string `json:"position" validate:"required"`
	Category        string `json:"category" validate:"omitempty,category"`
	Email           string `json:"email" validate:"required,custom_email"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
}

type AuthRegisterResponse struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Department string `json:"department"`
	Team       string `json:"team"`
	Position   string `json:"position"`
	Category   string `json:"category"`
	Email      string `json:"email"`
}

type LoginDTO struct {
	Email    string `json:"email" validate:"required,custom_email"`
	Password string `json:"password" validate:"required"`
}

type AuthLoginResponse struct {
	Email        string `json:"email"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type ResetPasswordDTO struct {
	Email string `json:"email" validate:"required,custom_email"`
}

// UpdatePasswordDTO - access-токен берётся из заголовка Authorization, refresh-токен необязателен.
type UpdatePasswordDTO struct {
	RefreshToken    string `json:"refresh_token"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
}

type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
