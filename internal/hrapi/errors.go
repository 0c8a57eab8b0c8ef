package hrapi

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"
)

// Error 后端非 2xx 响应
type Error struct {
	Status  int
	Message string // errorMessage，没有则为 message；都没有时为空
	Body    string // 截断后的原始响应体，只进日志，不给用户看
}

func (e *Error) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("backend status %d: %s", e.Status, e.Message)
	case e.Body != "":
		return fmt.Sprintf("backend status %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("backend status %d", e.Status)
}

const maxBodyRunes = 256

// truncate 按字符截断，避免切开多字节字符
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func newError(status int, body []byte) *Error {
	e := &Error{Status: status, Body: truncate(strings.TrimSpace(string(body)), maxBodyRunes)}
	var b struct {
		ErrorMessage string `json:"errorMessage"`
		Message      string `json:"message"`
	}
	if json.Unmarshal(body, &b) == nil {
		e.Message = cmp.Or(b.ErrorMessage, b.Message)
	}
	return e
}

func statusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return 0
}

func IsUnauthorized(err error) bool { return statusOf(err) == http.StatusUnauthorized }

func IsNotFound(err error) bool { return statusOf(err) == http.StatusNotFound }

// ServerMessage 后端给出的人类可读信息；不是后端错误或没有信息时返回 ""
func ServerMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return ""
}
