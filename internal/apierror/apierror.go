// Package apierror provides the error envelope every 4xx/5xx response uses.
// Internal details (SQL errors, stack traces) never reach the client.
package apierror

// APIError is the canonical error envelope.
type APIError struct {
	Detail string `json:"detail"`
	Code   string `json:"code,omitempty"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// WithCode tags the envelope with a machine-readable code.
func WithCode(code, msg string) *APIError {
	return &APIError{Detail: msg, Code: code}
}

// Internal is the generic 500 body.
func Internal() *APIError {
	return &APIError{Detail: "Erro interno do servidor"}
}

// ValidationError wraps per-field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Erro de validação", Fields: fields}
}
