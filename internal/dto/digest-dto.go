package dto

import "github.com/eneca-dev/enecawork-backend/pkg/types"

type ProjectInfo struct {
	ProjectID           int64  `json:"project_id"`
	ProjectName         string `json:"project_name"`
	ProjectManager      string `json:"project_manager"`
	ProjectManagerEmail string `json:"project_manager_email"`
}

type DigestRequestDTO struct {
	ProjectID  int64      `json:"project_id" validate:"required"`
	DigestDate types.Date `json:"digest_date" validate:"required"`
}

type DigestResponse struct {
	DigestText string `json:"digest_text"`
}
