// pkg/constants/constants.go
package constants

//============== TABLES ==============

const (
	TableUsers         = "users"
	TableProjects      = "projects"
	TableSections      = "sections"
	TableAssignments   = "assignments"
	TableDigestReports = "digest_reports"
)

//============== ASSIGNMENT STATUSES ==============

// Значения совпадают с тем, что хранится в колонке assignments.status.
const (
	AssignmentStatusWaiting     = "Ожидается"
	AssignmentStatusInProgress  = "В работе"
	AssignmentStatusCompleted   = "Выполнено"
	AssignmentStatusCancelled   = "Отменено"
	AssignmentStatusTransferred = "Передано"
)

var AssignmentStatuses = []string{
	AssignmentStatusWaiting,
	AssignmentStatusInProgress,
	AssignmentStatusCompleted,
	AssignmentStatusCancelled,
	AssignmentStatusTransferred,
}

// IsAssignmentStatus - переходы между статусами не ограничены, проверяется только значение.
func IsAssignmentStatus(s string) bool {
	return contains(AssignmentStatuses, s)
}

//============== PROFILE ENUMS ==============

const (
	TeamGeneral     = "general"
	CategoryGeneral = "general"
)

var (
	Teams      = []string{TeamGeneral}
	Categories = []string{CategoryGeneral}
)

func IsTeam(s string) bool { return contains(Teams, s) }

func IsCategory(s string) bool { return contains(Categories, s) }

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
