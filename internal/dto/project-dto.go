package dto

import "github.com/google/uuid"

type ProjectResponse struct {
	ProjectID   uuid.UUID `json:"project_id"`
	ProjectName string    `json:"project_name"`
}

type SectionResponse struct {
	SectionID   uuid.UUID `json:"section_id"`
	ProjectID   uuid.UUID `json:"project_id"`
	SectionName string    `json:"section_name"`
}
