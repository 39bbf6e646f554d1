package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
// ErrConflict corresponde a una asignación activa duplicada; el reconciliador la trata como no-op.
var (
	ErrNotFound       = errors.New("recurso no encontrado")
	ErrValidation     = errors.New("validación fallida")
	ErrUnauthorized   = errors.New("no autorizado")
	ErrForbidden      = errors.New("acceso denegado")
	ErrConflict       = errors.New("conflicto con el estado actual")
	ErrTransport      = errors.New("fallo de transporte")
	ErrPartialFailure = errors.New("aplicación parcial de cambios")
)

// NotFound específicos.
var (
	ErrUserNotFound       = fmt.Errorf("usuario no encontrado: %w", ErrNotFound)
	ErrAreaNotFound       = fmt.Errorf("área no encontrada: %w", ErrNotFound)
	ErrWarehouseNotFound  = fmt.Errorf("bodega no encontrada: %w", ErrNotFound)
	ErrAssignmentNotFound = fmt.Errorf("asignación no encontrada: %w", ErrNotFound)
)

// Errores de validación específicos.
var (
	ErrInvalidInput   = fmt.Errorf("entrada inválida: %w", ErrValidation)
	ErrUnknownRole    = fmt.Errorf("rol desconocido: %w", ErrValidation)
	ErrInvalidStatus  = fmt.Errorf("estado de usuario inválido: %w", ErrValidation)
	ErrReasonRequired = fmt.Errorf("el motivo es obligatorio al deshabilitar un usuario: %w", ErrValidation)
	ErrDisabledTarget = fmt.Errorf("un usuario deshabilitado no puede recibir nuevas asignaciones: %w", ErrValidation)
	ErrRoleCapability = fmt.Errorf("el rol no permite este tipo de asignación: %w", ErrValidation)
)

// TransportError envuelve un fallo opaco de un puerto de repositorio (red, DB, timeout).
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Is permite errors.Is(err, ErrTransport).
func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// FailedItem describe un cambio de relación que no se pudo aplicar.
type FailedItem struct {
	Label string
	Err   error
}

// PartialFailureError reporta un lote donde algunas operaciones fallaron y otras no.
type PartialFailureError struct {
	Attempted int
	Failed    []FailedItem
}

func (e *PartialFailureError) Error() string {
	labels := make([]string, 0, len(e.Failed))
	for _, f := range e.Failed {
		labels = append(labels, f.Label)
	}
	return fmt.Sprintf("%d de %d operaciones fallaron: %s", len(e.Failed), e.Attempted, strings.Join(labels, ", "))
}

// Is permite errors.Is(err, ErrPartialFailure).
func (e *PartialFailureError) Is(target error) bool { return target == ErrPartialFailure }

// Unwrap expone las causas individuales para errors.Is/As.
func (e *PartialFailureError) Unwrap() []error {
	out := make([]error, 0, len(e.Failed))
	for _, f := range e.Failed {
		out = append(out, f.Err)
	}
	return out
}
