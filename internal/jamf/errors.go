package jamf

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotAuthenticated 表示尚未拿到可用 token。
	ErrNotAuthenticated = errors.New("jamf: not authenticated")
	// ErrNotFound 表示记录不存在。
	ErrNotFound = errors.New("jamf: record not found")
)

// APIError 表示后端返回了非 2xx 状态码。
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s %s returned status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s %s returned status %d", e.Method, e.Path, e.StatusCode)
}

// Is 支持 errors.Is(err, ErrNotFound) 与 ErrNotAuthenticated。
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrNotAuthenticated:
		return e.StatusCode == http.StatusUnauthorized
	}
	return false
}

// Temporary 表示该错误是否值得对幂等请求重试。
func (e *APIError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}
