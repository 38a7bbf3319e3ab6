package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")

	// Ledger: el caller debe resolver las referencias antes de aplicar un movimiento.
	ErrProductNotFound      = errors.New("producto no encontrado")
	ErrPreconditionViolated = errors.New("precondición violada")
	ErrInvalidMovement      = errors.New("movimiento inválido")

	// Reportes.
	ErrInvalidWindow = errors.New("ventana de días inválida")
)
