package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/sorveteria-estoque/internal/application/dto"
	"github.com/jhoicas/sorveteria-estoque/internal/domain"
)

// errorMapping código y status HTTP de cada error de dominio.
type errorMapping struct {
	status  int
	code    string
	message string
}

var errorTable = []struct {
	err error
	errorMapping
}{
	{domain.ErrProductNotFound, errorMapping{fiber.StatusNotFound, "PRODUCT_NOT_FOUND", "producto no encontrado"}},
	{domain.ErrUserNotFound, errorMapping{fiber.StatusNotFound, "USER_NOT_FOUND", "usuario no encontrado"}},
	{domain.ErrNotFound, errorMapping{fiber.StatusNotFound, "NOT_FOUND", "recurso no encontrado"}},
	{domain.ErrInvalidWindow, errorMapping{fiber.StatusBadRequest, "INVALID_WINDOW", "la ventana debe ser un número positivo de días"}},
	{domain.ErrInvalidMovement, errorMapping{fiber.StatusBadRequest, "INVALID_MOVEMENT", ""}},
	{domain.ErrInvalidInput, errorMapping{fiber.StatusBadRequest, "VALIDATION", ""}},
	{domain.ErrEmailAlreadyExists, errorMapping{fiber.StatusConflict, "EMAIL_EXISTS", "el email ya está registrado"}},
	{domain.ErrDuplicate, errorMapping{fiber.StatusConflict, "DUPLICATE", "recurso duplicado"}},
	{domain.ErrUnauthorized, errorMapping{fiber.StatusUnauthorized, "UNAUTHORIZED", "credenciales inválidas"}},
	{domain.ErrForbidden, errorMapping{fiber.StatusForbidden, "FORBIDDEN", "acceso denegado"}},
	{domain.ErrPreconditionViolated, errorMapping{fiber.StatusInternalServerError, "PRECONDITION", "estado inconsistente"}},
}

// writeError traduce un error de aplicación a dto.ErrorResponse.
// Los errores de validación conservan el mensaje del caso de uso (dice qué campo falló).
func writeError(c *fiber.Ctx, err error) error {
	for _, e := range errorTable {
		if errors.Is(err, e.err) {
			msg := e.message
			if msg == "" {
				msg = err.Error()
			}
			return c.Status(e.status).JSON(dto.ErrorResponse{Code: e.code, Message: msg})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func missingID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
}
