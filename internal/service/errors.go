package service

import "fmt"

// ErrorCode classifies pipeline failures
type ErrorCode string

const (
	ErrorConfig      ErrorCode = "CONFIG_ERROR"
	ErrorValidation  ErrorCode = "VALIDATION_ERROR"
	ErrorRetrieval   ErrorCode = "RETRIEVAL_ERROR"
	ErrorRateLimited ErrorCode = "RATE_LIMITED"
	ErrorUpstream    ErrorCode = "UPSTREAM_ERROR"
)

// User-facing messages returned over the wire. The wording is part of the
// API contract and must stay stable.
const (
	MsgAPIKeyMissing    = "API key no configurada"
	MsgMessageRequired  = "Message is required"
	MsgGenerationFailed = "Error al generar respuesta"
	MsgAPIConfigError   = "Error con la configuración de la API"
	MsgRateLimited      = "Has excedido el límite de mensajes. Intenta en unos minutos."
)

// Error is a typed pipeline error. Message is safe to show to end users;
// Err keeps the underlying cause for logs.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("service: %s (%s)", e.Code, e.Message)
	}
	return fmt.Sprintf("service: %s (%s): %v", e.Code, e.Message, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newError(code ErrorCode, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}
