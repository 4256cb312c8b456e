package domain

import "errors"

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound          = errors.New("recurso não encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflito com o estado atual")
	ErrValidationPending = errors.New("obrigação com erros de validação pendentes")
	ErrNotClassified     = errors.New("documento não classificado para apuração")
)
