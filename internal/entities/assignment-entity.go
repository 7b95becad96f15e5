package entities

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"

	"github.com/eneca-dev/enecawork-backend/pkg/types"
)

type Assignment struct {
	ID            uuid.UUID   `json:"id"`
	ProjectID     uuid.UUID   `json:"project_id"`
	FromSectionID uuid.UUID   `json:"from_section_id"`
	ToSectionID   uuid.UUID   `json:"to_section_id"`
	Text          string      `json:"text"`
	Link          null.String `json:"link"`
	Status        string      `json:"status"`
	DueDate       types.Date  `json:"due_date"`
	CreatedAt     time.Time   `json:"created_at"`
	CreatedBy     uuid.UUID   `json:"created_by"`
	UpdatedAt     null.Time   `json:"updated_at"`
	UpdatedBy     *uuid.UUID  `json:"updated_by"`
}
