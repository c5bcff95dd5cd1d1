package services

import "errors"

// Common service errors
var (
	ErrNotFound         = errors.New("registro não encontrado")
	ErrInvalidPassword  = errors.New("senha inválida")
	ErrUnauthorized     = errors.New("não autorizado")
	ErrInvalidState     = errors.New("transição de estado inválida")
	ErrDuplicate        = errors.New("registro duplicado")
	ErrInactiveRecord   = errors.New("registro arquivado ou inativo")
	ErrValidation       = errors.New("dados inválidos")
	ErrScheduleMismatch = errors.New("débito criado sem parcelas")
)
