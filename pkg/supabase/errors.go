package supabase

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// Error - ошибка, которую вернул GoTrue или PostgREST.
type Error struct {
	StatusCode int
	Code       string
	Message    string
	Details    string
	Hint       string
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("supabase: ")
	if e.Code != "" {
		b.WriteString(e.Code)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Details != "" {
		b.WriteString(" (")
		b.WriteString(e.Details)
		b.WriteString(")")
	}
	return b.String()
}

// parseError разбирает все известные форматы ошибок GoTrue и PostgREST.
func parseError(body []byte, statusCode int) error {
	var errResp struct {
		Code             json.RawMessage `json:"code"`
		ErrorCode        string          `json:"error_code"`
		Message          string          `json:"message"`
		Msg              string          `json:"msg"`
		Details          string          `json:"details"`
		Hint             string          `json:"hint"`
		Error            string          `json:"error"`
		ErrorDescription string          `json:"error_description"`
	}

	if err := json.Unmarshal(body, &errResp); err != nil {
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = http.StatusText(statusCode)
		}
		return &Error{StatusCode: statusCode, Code: "unknown", Message: msg}
	}

	msg := firstNonEmpty(errResp.Msg, errResp.Message, errResp.ErrorDescription, errResp.Error)
	if msg == "" {
		msg = http.StatusText(statusCode)
	}

	// GoTrue кладёт в code числовой HTTP-статус, PostgREST - строковый SQLSTATE.
	code := errResp.ErrorCode
	if code == "" && len(errResp.Code) > 0 {
		var s string
		if err := json.Unmarshal(errResp.Code, &s); err == nil {
			code = s
		}
	}
	if code == "" && errResp.ErrorDescription != "" {
		code = errResp.Error
	}

	return &Error{
		StatusCode: statusCode,
		Code:       code,
		Message:    msg,
		Details:    errResp.Details,
		Hint:       errResp.Hint,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// AsError достаёт *Error из цепочки.
func AsError(err error) (*Error, bool) {
	var sbErr *Error
	if errors.As(err, &sbErr) {
		return sbErr, true
	}
	return nil, false
}

func matches(err error, codes []string, fragments []string) bool {
	sbErr, ok := AsError(err)
	if !ok {
		return false
	}
	for _, c := range codes {
		if sbErr.Code == c {
			return true
		}
	}
	msg := strings.ToLower(sbErr.Message)
	for _, f := range fragments {
		if strings.Contains(msg, f) {
			return true
		}
	}
	return false
}

// IsRateLimited - платформа ограничила частоту запросов.
func IsRateLimited(err error) bool {
	if sbErr, ok := AsError(err); ok && sbErr.StatusCode == http.StatusTooManyRequests {
		return true
	}
	return matches(err, []string{"over_request_rate_limit", "over_email_send_rate_limit"}, []string{"rate limit"})
}

func IsInvalidCredentials(err error) bool {
	return matches(err, []string{"invalid_credentials"}, []string{"invalid login credentials"})
}

func IsEmailNotConfirmed(err error) bool {
	return matches(err, []string{"email_not_confirmed"}, []string{"email not confirmed"})
}

func IsUserAlreadyExists(err error) bool {
	return matches(err, []string{"user_already_exists", "email_exists"}, []string{"user already registered"})
}

// IsInvalidToken - токен или сессия недействительны либо истекли.
func IsInvalidToken(err error) bool {
	sbErr, ok := AsError(err)
	if !ok {
		return false
	}
	if sbErr.StatusCode == http.StatusUnauthorized || sbErr.StatusCode == http.StatusForbidden {
		return true
	}
	return matches(err,
		[]string{"bad_jwt", "session_not_found", "refresh_token_not_found", "refresh_token_already_used", "invalid_grant"},
		[]string{"invalid token", "invalid session", "invalid refresh token", "token is expired", "invalid jwt"},
	)
}
