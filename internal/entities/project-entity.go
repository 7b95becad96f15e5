package entities

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

type Project struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	WSProjectID WorkspaceID `json:"ws_project_id"`
}

type Section struct {
	ID          uuid.UUID   `json:"id"`
	WSProjectID WorkspaceID `json:"ws_project_id"`
	Name        string      `json:"name"`
}

// WorkspaceID - внутренний ключ, связывающий проект с его секциями.
// В разных инсталляциях колонка бывает и числом, и строкой.
type WorkspaceID string

func (w *WorkspaceID) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*w = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*w = WorkspaceID(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*w = WorkspaceID(n.String())
	return nil
}

func (w WorkspaceID) String() string { return string(w) }
