package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
)

// Application error codes. They map 1:1 to an HTTP status but are
// transport-agnostic, so the services can be exercised without a server.
const (
	ECONFLICT        = "conflict"
	EINTERNAL        = "internal"
	EINVALID         = "invalid"
	ENOTFOUND        = "not_found"
	EUNAUTHENTICATED = "unauthenticated"
	EUNAUTHORIZED    = "unauthorized"
	EUNAVAILABLE     = "unavailable"
)

// Error is an application error with a machine-readable code and a
// human-readable message. The message of EINTERNAL and EUNAVAILABLE errors
// is never shown to clients.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("wtfSpaces error: code=%s message=%s", e.Code, e.Message)
}

// Errorf returns a new Error with the given code and formatted message.
func Errorf(code string, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode extracts the code of an error. Non-application errors are
// reported as EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage extracts the message of an error. Non-application errors get
// a generic message so internals never leak to clients.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// codeStatusMap translates application error codes to HTTP status codes.
var codeStatusMap = map[string]int{
	ECONFLICT:        http.StatusConflict,
	EINVALID:         http.StatusBadRequest,
	ENOTFOUND:        http.StatusNotFound,
	EUNAUTHENTICATED: http.StatusUnauthorized,
	EUNAUTHORIZED:    http.StatusForbidden,
	EUNAVAILABLE:     http.StatusServiceUnavailable,
	EINTERNAL:        http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status code for an application error code.
func ErrorStatusCode(code string) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// ReturnError writes an error to the response as json. Internal and
// availability errors are logged and replaced with a generic message.
func ReturnError(w http.ResponseWriter, r *http.Request, err error) {
	code, message := ErrorCode(err), ErrorMessage(err)
	if code == EINTERNAL || code == EUNAVAILABLE {
		LogError(r, err)
		message = "Sorry, something went wrong."
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(ErrorStatusCode(code))
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// LogError logs an error together with the request it happened on.
func LogError(r *http.Request, err error) {
	slog.Error("http request error",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("err", err.Error()),
	)
}
