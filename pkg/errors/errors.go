package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Códigos de erro expostos aos clientes da API
const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeLimitReached    = "LIMIT_REACHED"
	CodeDuplicateName   = "DUPLICATE_NAME"
	CodeAlreadyArchived = "ALREADY_ARCHIVED"
	CodeAlreadyActive   = "ALREADY_ACTIVE"
	CodeInternal        = "INTERNAL_ERROR"
)

// Tipos de erro comuns
var (
	ErrNotFound       = errors.New("recurso não encontrado")
	ErrBadRequest     = errors.New("requisição inválida")
	ErrInternalServer = errors.New("erro interno do servidor")
	ErrDuplicate      = errors.New("recurso já existe")
)

// FieldViolation descreve uma violação de validação em um campo específico
type FieldViolation struct {
	Field   string `json:"campo"`
	Message string `json:"mensagem"`
}

// APIError representa um erro da API com informações adicionais
type APIError struct {
	Status      int         `json:"-"`
	Code        string      `json:"code"`
	Message     string      `json:"message"`
	Details     interface{} `json:"details,omitempty"`
	OriginalErr error       `json:"-"`
}

// Error implementa a interface error
func (e *APIError) Error() string {
	if e.OriginalErr != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.OriginalErr)
	}
	return e.Message
}

// Unwrap permite usar errors.Is e errors.As
func (e *APIError) Unwrap() error {
	return e.OriginalErr
}

// New cria um novo APIError
func New(status int, code, message string, err error) *APIError {
	return &APIError{
		Status:      status,
		Code:        code,
		Message:     message,
		OriginalErr: err,
	}
}

// WithDetails adiciona detalhes ao erro
func (e *APIError) WithDetails(details interface{}) *APIError {
	e.Details = details
	return e
}

// Validation cria um erro 400 com a lista de violações de campo
func Validation(violations []FieldViolation) *APIError {
	return New(http.StatusBadRequest, CodeValidation, "dados inválidos", nil).
		WithDetails(violations)
}

// NotFound cria um erro 404
func NotFound(resource string) *APIError {
	message := fmt.Sprintf("%s não encontrado", resource)
	return New(http.StatusNotFound, CodeNotFound, message, ErrNotFound)
}

// LimitReached cria um erro 400 para o limite de hábitos ativos
func LimitReached(limit int) *APIError {
	message := fmt.Sprintf("limite de %d hábitos ativos atingido", limit)
	return New(http.StatusBadRequest, CodeLimitReached, message, nil)
}

// DuplicateName cria um erro 400 para nome já em uso
func DuplicateName(nome string) *APIError {
	message := fmt.Sprintf("já existe um hábito com o nome %q", nome)
	return New(http.StatusBadRequest, CodeDuplicateName, message, ErrDuplicate)
}

// AlreadyArchived cria um erro 400 para arquivamento repetido
func AlreadyArchived() *APIError {
	return New(http.StatusBadRequest, CodeAlreadyArchived, "hábito já está arquivado", nil)
}

// AlreadyActive cria um erro 400 para restauração de hábito ativo
func AlreadyActive() *APIError {
	return New(http.StatusBadRequest, CodeAlreadyActive, "hábito já está ativo", nil)
}

// InternalServer cria um erro 500
func InternalServer(message string, err error) *APIError {
	if message == "" {
		message = "erro interno do servidor"
	}
	return New(http.StatusInternalServerError, CodeInternal, message, err)
}

// FromError converte qualquer erro em *APIError, tratando desconhecidos como internos
func FromError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return InternalServer("", err)
}
