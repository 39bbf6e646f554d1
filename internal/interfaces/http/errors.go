package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/inventario-admin/internal/application/dto"
	"github.com/jhoicas/inventario-admin/internal/domain"
	"github.com/jhoicas/inventario-admin/internal/domain/assignment"
)

var (
	validate       = validator.New(validator.WithRequiredStructEnabled())
	errInvalidBody = errors.New("cuerpo inválido")
)

// bindJSON parsea el cuerpo y aplica los tags validate del DTO.
func bindJSON(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return errInvalidBody
	}
	if err := validate.Struct(out); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0]
			return &fieldError{field: f.Field(), tag: f.Tag()}
		}
		return domain.ErrInvalidInput
	}
	return nil
}

type fieldError struct {
	field string
	tag   string
}

func (e *fieldError) Error() string {
	return "campo " + e.field + " inválido (" + e.tag + ")"
}

func (e *fieldError) Unwrap() error { return domain.ErrInvalidInput }

// writeError traduce errores de dominio a respuestas HTTP.
// Un *domain.PartialFailureError responde 207: parte del cambio sí se aplicó.
func writeError(c *fiber.Ctx, err error) error {
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	msg := err.Error()
	switch {
	case errors.Is(err, errInvalidBody):
		status, code = fiber.StatusBadRequest, "INVALID_BODY"
	// Antes que NotFound/Validation: un fallo parcial expone las causas de cada ítem.
	case errors.Is(err, domain.ErrPartialFailure):
		status, code = fiber.StatusMultiStatus, "PARTIAL"
	case errors.Is(err, domain.ErrNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrValidation):
		status, code = fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrUnauthorized):
		status, code = fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		status, code = fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrConflict):
		status, code = fiber.StatusConflict, "CONFLICT"
	default:
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error no controlado")
		msg = "error interno"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

// reconcileStatus 207 si alguna operación de la reconciliación falló.
func reconcileStatus(outcome string) int {
	switch outcome {
	case assignment.OutcomePartial, assignment.OutcomeFailed:
		return fiber.StatusMultiStatus
	default:
		return fiber.StatusOK
	}
}

// pageParams lee limit/offset con los mismos topes en todos los listados.
func pageParams(c *fiber.Ctx) (limit, offset int) {
	var p dto.PageRequest
	_ = c.QueryParser(&p)
	p.DefaultPage()
	if p.Limit > 100 {
		p.Limit = 100
	}
	return p.Limit, p.Offset
}

func tenantOrAbort(c *fiber.Ctx) (string, bool) {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		_ = c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tenant_id requerido"})
		return "", false
	}
	return tenantID, true
}

