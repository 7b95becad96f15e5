package dto

type UserInformationResponse struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Department string `json:"department"`
	Team       string `json:"team"`
	Position   string `json:"position"`
	Category   string `json:"category"`
	Email      string `json:"email"`
}
