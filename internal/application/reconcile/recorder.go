package reconcile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-admin/internal/domain"
	"github.com/jhoicas/inventario-admin/internal/domain/assignment"
	"github.com/jhoicas/inventario-admin/internal/domain/entity"
	"github.com/jhoicas/inventario-admin/internal/domain/repository"
	"github.com/jhoicas/inventario-admin/pkg/logger"
)

// Snapshot relaciones de un usuario en un instante.
type Snapshot struct {
	Areas      []string
	Warehouses []string
}

// Recorder emite el historial inmutable de asignaciones y de habilitación.
// Nunca actualiza ni borra entradas: las correcciones son entradas nuevas.
type Recorder struct {
	assignments repository.AssignmentHistoryRepository
	enablement  repository.EnablementHistoryRepository
	log         *logger.Logger
	now         func() time.Time
	newID       func() string
}

// RecorderOption configura el Recorder.
type RecorderOption func(*Recorder)

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) RecorderOption {
	return func(r *Recorder) { r.now = now }
}

// WithIDGenerator reemplaza el generador de IDs (tests).
func WithIDGenerator(gen func() string) RecorderOption {
	return func(r *Recorder) { r.newID = gen }
}

// NewRecorder construye el Recorder sobre los puertos de historial.
func NewRecorder(
	assignments repository.AssignmentHistoryRepository,
	enablement repository.EnablementHistoryRepository,
	log *logger.Logger,
	opts ...RecorderOption,
) *Recorder {
	r := &Recorder{
		assignments: assignments,
		enablement:  enablement,
		log:         logger.OrNop(log).Component("recorder"),
		now:         time.Now,
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// UsingEnablement devuelve una copia del Recorder que escribe el historial de habilitación
// en enablement (p. ej. un repositorio atado a una transacción).
func (r *Recorder) UsingEnablement(enablement repository.EnablementHistoryRepository) *Recorder {
	c := *r
	c.enablement = enablement
	return &c
}

// At devuelve una copia del Recorder cuyas entradas usan siempre el instante at.
// Así una operación lógica que escribe varios historiales comparte un único timestamp.
func (r *Recorder) At(at time.Time) *Recorder {
	c := *r
	c.now = func() time.Time { return at }
	return &c
}

// RecordAssignmentDiff crea una entrada por cada área/bodega agregada o quitada entre before y after.
// Todas las entradas comparten el mismo Timestamp. Si alguna escritura falla, devuelve las entradas
// persistidas y un *domain.PartialFailureError con las que no se pudieron guardar.
func (r *Recorder) RecordAssignmentDiff(
	ctx context.Context,
	tenantID, userID string,
	before, after Snapshot,
	actor entity.Actor,
) ([]*entity.AssignmentHistoryEntry, error) {
	now := r.now().UTC()
	var pending []*entity.AssignmentHistoryEntry
	add := func(entityType string, d assignment.Diff[string]) {
		for _, id := range d.ToRemove {
			pending = append(pending, r.assignmentEntry(tenantID, userID, id, entityType, entity.HistoryActionRemoved, actor, now))
		}
		for _, id := range d.ToAdd {
			pending = append(pending, r.assignmentEntry(tenantID, userID, id, entityType, entity.HistoryActionAssigned, actor, now))
		}
	}
	add(entity.HistoryEntityArea, assignment.DiffSets(before.Areas, after.Areas))
	add(entity.HistoryEntityWarehouse, assignment.DiffSets(before.Warehouses, after.Warehouses))

	if len(pending) == 0 {
		return nil, nil
	}

	created := make([]*entity.AssignmentHistoryEntry, 0, len(pending))
	var failed []domain.FailedItem
	for _, e := range pending {
		if err := r.assignments.Create(ctx, e); err != nil {
			r.log.Error().
				Err(err).
				Str("user_id", userID).
				Str("entity_id", e.EntityID).
				Str("action", e.Action).
				Msg("no se pudo registrar el historial de asignación")
			failed = append(failed, domain.FailedItem{
				Label: fmt.Sprintf("historial %s %s %s", e.Action, e.EntityType, e.EntityID),
				Err:   err,
			})
			continue
		}
		created = append(created, e)
	}
	if len(failed) > 0 {
		return created, &domain.PartialFailureError{Attempted: len(pending), Failed: failed}
	}
	return created, nil
}

// ValidateEnablementChange exige un motivo no vacío al deshabilitar.
func ValidateEnablementChange(newStatus, reason string) error {
	if !entity.ValidStatus(newStatus) {
		return domain.ErrInvalidStatus
	}
	if newStatus == entity.UserStatusDisabled && strings.TrimSpace(reason) == "" {
		return domain.ErrReasonRequired
	}
	return nil
}

// RecordEnablementChange registra una transición de estado del usuario.
func (r *Recorder) RecordEnablementChange(
	ctx context.Context,
	tenantID, userID, newStatus string,
	actor entity.Actor,
	reason string,
) (*entity.UserEnablementHistoryEntry, error) {
	if err := ValidateEnablementChange(newStatus, reason); err != nil {
		return nil, err
	}
	action := entity.EnablementActionEnabled
	if newStatus == entity.UserStatusDisabled {
		action = entity.EnablementActionDisabled
	}
	e := &entity.UserEnablementHistoryEntry{
		ID:              r.newID(),
		TenantID:        tenantID,
		UserID:          userID,
		Action:          action,
		PerformedByID:   actor.ID,
		PerformedByName: actor.Name,
		Reason:          strings.TrimSpace(reason),
		OccurredAt:      r.now().UTC(),
	}
	if err := r.enablement.Create(ctx, e); err != nil {
		r.log.Error().Err(err).Str("user_id", userID).Str("action", action).Msg("no se pudo registrar el historial de habilitación")
		return nil, fmt.Errorf("registrar historial de habilitación: %w", err)
	}
	return e, nil
}

func (r *Recorder) assignmentEntry(tenantID, userID, entityID, entityType, action string, actor entity.Actor, at time.Time) *entity.AssignmentHistoryEntry {
	return &entity.AssignmentHistoryEntry{
		ID:              r.newID(),
		TenantID:        tenantID,
		UserID:          userID,
		EntityID:        entityID,
		EntityType:      entityType,
		Action:          action,
		PerformedBy:     actor.ID,
		PerformedByName: actor.Name,
		Timestamp:       at,
	}
}
