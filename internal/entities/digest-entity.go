package entities

import "github.com/eneca-dev/enecawork-backend/pkg/types"

// DigestReport - строка digest_reports. Таблицу наполняет внешний процесс, сервис её только читает.
type DigestReport struct {
	ProjectID           int64      `json:"project_id"`
	ProjectName         string     `json:"project_name"`
	ProjectManager      string     `json:"project_manager"`
	ProjectManagerEmail string     `json:"project_manager_email"`
	DigestDate          types.Date `json:"digest_date"`
	DigestText          string     `json:"digest_text"`
}
