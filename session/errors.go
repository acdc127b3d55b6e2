package session

import (
	"fmt"

	"github.com/charlesren/netcli/driver"
)

// SessionErrorCode 会话错误码类型
type SessionErrorCode string

const (
	// 传输相关错误（对会话致命，核心不做重连）
	ErrCodeTransport  SessionErrorCode = "TRANSPORT_ERROR"
	ErrCodeTimeout    SessionErrorCode = "TIMEOUT"
	ErrCodeAuthFailed SessionErrorCode = "AUTH_FAILED"

	// 解码错误（对本次读致命，会话仍可用）
	ErrCodeEncoding SessionErrorCode = "ENCODING_ERROR"

	// 命令级错误（由厂商输出分类，会话仍可用）
	ErrCodeSyntax             SessionErrorCode = "SYNTAX_ERROR"
	ErrCodePermissionDenied   SessionErrorCode = "PERMISSION_DENIED"
	ErrCodeUnsupportedCommand SessionErrorCode = "UNSUPPORTED_COMMAND"

	// 模式转换失败（模式保持不变）
	ErrCodeModeTransition SessionErrorCode = "MODE_TRANSITION_FAILED"

	// 结构化解析失败
	ErrCodeParse SessionErrorCode = "PARSE_ERROR"

	// 会话使用错误
	ErrCodeSessionBusy   SessionErrorCode = "SESSION_BUSY"
	ErrCodeSessionClosed SessionErrorCode = "SESSION_CLOSED"
)

// SessionError 会话执行错误
type SessionError struct {
	Code    SessionErrorCode       `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"` // 原始错误，不参与JSON序列化
}

// Error 实现error接口
func (e *SessionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Unwrap
func (e *SessionError) Unwrap() error {
	return e.Cause
}

// IsCode 检查错误码是否匹配
func (e *SessionError) IsCode(code SessionErrorCode) bool {
	return e.Code == code
}

// AddDetail 添加错误详细信息
func (e *SessionError) AddDetail(key string, value interface{}) *SessionError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// NewSessionError 创建新的会话错误
func NewSessionError(code SessionErrorCode, message string) *SessionError {
	return &SessionError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// NewSessionErrorWithCause 创建带原因的会话错误
func NewSessionErrorWithCause(code SessionErrorCode, message string, cause error) *SessionError {
	return &SessionError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Cause:   cause,
	}
}

// NewSessionErrorWithDetails 创建带详细信息的会话错误
func NewSessionErrorWithDetails(code SessionErrorCode, message string, details map[string]interface{}) *SessionError {
	if details == nil {
		details = make(map[string]interface{})
	}
	return &SessionError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// IsSessionError 检查是否为SessionError
func IsSessionError(err error) bool {
	_, ok := err.(*SessionError)
	return ok
}

// GetSessionError 获取SessionError，如果不是则返回nil
func GetSessionError(err error) *SessionError {
	if sessErr, ok := err.(*SessionError); ok {
		return sessErr
	}
	return nil
}

// IsErrorCode 检查错误是否为指定错误码
func IsErrorCode(err error, code SessionErrorCode) bool {
	if sessErr := GetSessionError(err); sessErr != nil {
		return sessErr.IsCode(code)
	}
	return false
}

// IsCommandError reports whether the error is a vendor-rejected command:
// the session remains usable and the caller may continue.
func IsCommandError(err error) bool {
	if sessErr := GetSessionError(err); sessErr != nil {
		switch sessErr.Code {
		case ErrCodeSyntax, ErrCodePermissionDenied, ErrCodeUnsupportedCommand:
			return true
		}
	}
	return false
}

// IsFatal reports whether the error terminates the session.
func IsFatal(err error) bool {
	if sessErr := GetSessionError(err); sessErr != nil {
		switch sessErr.Code {
		case ErrCodeTransport, ErrCodeTimeout, ErrCodeAuthFailed, ErrCodeSessionClosed:
			return true
		}
	}
	return false
}

// errorKindCode 分类结果到错误码的映射，可移植性的接缝：
// 调用方只面对错误码，不面对厂商文本。
func errorKindCode(kind driver.ErrorKind) SessionErrorCode {
	switch kind {
	case driver.ErrorKindSyntax:
		return ErrCodeSyntax
	case driver.ErrorKindPermissionDenied:
		return ErrCodePermissionDenied
	case driver.ErrorKindUnsupportedCommand:
		return ErrCodeUnsupportedCommand
	default:
		return ErrCodeSyntax
	}
}

func errCommandRejected(kind driver.ErrorKind, command, matched string) *SessionError {
	e := NewSessionError(errorKindCode(kind),
		fmt.Sprintf("command rejected by device: %s", command))
	e.AddDetail("command", command)
	e.AddDetail("signature", matched)
	return e
}
