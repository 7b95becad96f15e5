package dto

import (
	"encoding/json"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"

	"github.com/eneca-dev/enecawork-backend/pkg/types"
)

type CreateAssignmentDTO struct {
	FromSectionID uuid.UUID   `json:"from_section_id" validate:"required"`
	ToSectionID   uuid.UUID   `json:"to_section_id" validate:"required"`
	Text          string      `json:"text" validate:"required"`
	Link          null.String `json:"link" validate:"omitempty,url"`
	Status        string      `json:"status" validate:"omitempty,assignment_status"`
	DueDate       types.Date  `json:"due_date" validate:"required"`
}

// UpdateAssignmentDTO - частичное обновление: меняются только переданные поля.
// "link": null очищает ссылку, отсутствие ключа оставляет её как есть.
type UpdateAssignmentDTO struct {
	Text    *string     `json:"text" validate:"omitempty,min=1"`
	Link    null.String `json:"link" validate:"omitempty,url"`
	DueDate *types.Date `json:"due_date"`

	LinkSent bool `json:"-"`
}

func (d *UpdateAssignmentDTO) UnmarshalJSON(data []byte) error {
	var sent map[string]json.RawMessage
	if err := json.Unmarshal(data, &sent); err != nil {
		return err
	}
	type plain UpdateAssignmentDTO
	if err := json.Unmarshal(data, (*plain)(d)); err != nil {
		return err
	}
	_, d.LinkSent = sent["link"]
	return nil
}

type UpdateAssignmentStatusDTO struct {
	Status string `json:"status" validate:"required,assignment_status"`
}

type AssignmentResponse struct {
	ID            uuid.UUID  `json:"id"`
	ProjectID     uuid.UUID  `json:"project_id"`
	FromSectionID uuid.UUID  `json:"from_section_id"`
	ToSectionID   uuid.UUID  `json:"to_section_id"`
	Text          string     `json:"text"`
	Link          string     `json:"link"`
	Status        string     `json:"status"`
	DueDate       types.Date `json:"due_date"`
	CreatedAt     time.Time  `json:"created_at"`
	CreatedBy     uuid.UUID  `json:"created_by"`
	UpdatedAt     *time.Time `json:"updated_at"`
	UpdatedBy     *uuid.UUID `json:"updated_by"`
}
