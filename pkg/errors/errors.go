package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind - закрытый набор видов ошибок, общий для всех разделов API.
type Kind int

const (
	KindDatabase Kind = iota
	KindNotFound
	KindValidation
	KindBadRequest
	KindAuth
	KindConflict
	KindRateLimited
)

// Единая таблица соответствия вида ошибки и HTTP-статуса.
var kindStatus = map[Kind]int{
	KindDatabase:    http.StatusInternalServerError,
	KindNotFound:    http.StatusNotFound,
	KindValidation:  http.StatusUnprocessableEntity,
	KindBadRequest:  http.StatusBadRequest,
	KindAuth:        http.StatusUnauthorized,
	KindConflict:    http.StatusConflict,
	KindRateLimited: http.StatusTooManyRequests,
}

var kindNames = map[Kind]string{
	KindDatabase:    "database",
	KindNotFound:    "not_found",
	KindValidation:  "validation",
	KindBadRequest:  "bad_request",
	KindAuth:        "auth",
	KindConflict:    "conflict",
	KindRateLimited: "rate_limited",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// StatusOf возвращает HTTP-статус для вида ошибки. Неизвестный вид считается ошибкой БД.
func StatusOf(kind Kind) int {
	if code, ok := kindStatus[kind]; ok {
		return code
	}
	return http.StatusInternalServerError
}

// Разделы API, в которых возникают ошибки.
const (
	AreaAuth        = "auth"
	AreaUsers       = "users"
	AreaProjects    = "projects"
	AreaAssignments = "assignments"
	AreaDigest      = "digest"
)

// AppError - ошибка сервисного слоя. Message уходит клиенту, Err - только в лог.
type AppError struct {
	Kind    Kind
	Area    string
	Message string
	Err     error
	Context map[string]interface{}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s/%s: %s: %v", e.Area, e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s/%s: %s", e.Area, e.Kind, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

// Status - HTTP-статус ошибки по единой таблице.
func (e *AppError) Status() int { return StatusOf(e.Kind) }

// WithContext возвращает копию ошибки с дополнительным полем для лога.
// Исходная ошибка не меняется, поэтому вызывать можно и на общих ErrXxx.
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	cp := *e
	cp.Context = make(map[string]interface{}, len(e.Context)+1)
	for k, v := range e.Context {
		cp.Context[k] = v
	}
	cp.Context[key] = value
	return &cp
}

// New - ошибка с произвольным сообщением, когда готового конструктора нет.
func New(kind Kind, area, message string, err error) *AppError {
	return &AppError{Kind: kind, Area: area, Message: message, Err: err}
}

func NotFound(area, format string, args ...interface{}) *AppError {
	return New(KindNotFound, area, fmt.Sprintf(format, args...), nil)
}

func Validation(area, message string) *AppError {
	return New(KindValidation, area, message, nil)
}

func BadRequest(area, message string, err error) *AppError {
	return New(KindBadRequest, area, message, err)
}

func Auth(area, message string, err error) *AppError {
	return New(KindAuth, area, message, err)
}

func Conflict(area, message string, err error) *AppError {
	return New(KindConflict, area, message, err)
}

func RateLimited(area string, err error) *AppError {
	return New(KindRateLimited, area, "Too many requests", err)
}

// Database скрывает детали: клиент видит только операцию, причина пишется в лог.
func Database(area, operation string, err error) *AppError {
	return New(KindDatabase, area, "Ошибка базы данных при "+operation, err)
}

// KindOf возвращает вид ошибки; всё, что не AppError, считается ошибкой БД.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindDatabase
}

// IsKind проверяет вид ошибки в цепочке.
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}

var (
	// Авторизация
	ErrEmptyAuthHeader   = Auth(AreaAuth, "Authorization header is missing", nil)
	ErrInvalidAuthHeader = Auth(AreaAuth, "Invalid authorization header format. Use 'Bearer <token>'", nil)
	ErrInvalidToken      = Auth(AreaAuth, "Invalid token", nil)
	ErrUnauthorized      = Auth(AreaAuth, "Ошибка аутентификации", nil)

	// Общие
	ErrBadRequest = BadRequest("", "Неверный формат запроса", nil)
)
