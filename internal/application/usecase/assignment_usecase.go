package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-admin/internal/application/dto"
	"github.com/jhoicas/inventario-admin/internal/application/reconcile"
	"github.com/jhoicas/inventario-admin/internal/domain"
	"github.com/jhoicas/inventario-admin/internal/domain/entity"
	"github.com/jhoicas/inventario-admin/internal/domain/repository"
	"github.com/jhoicas/inventario-admin/pkg/logger"
)

// AssignmentUseCase revocación puntual de asignaciones por ID.
type AssignmentUseCase struct {
	repo     repository.AssignmentRepository
	recorder *reconcile.Recorder
	log      *logger.Logger
}

// NewAssignmentUseCase construye el caso de uso.
func NewAssignmentUseCase(repo repository.AssignmentRepository, recorder *reconcile.Recorder, log *logger.Logger) *AssignmentUseCase {
	return &AssignmentUseCase{repo: repo, recorder: recorder, log: logger.OrNop(log).Component("assignment_usecase")}
}

// Revoke revoca la asignación activa id. Si es de usuario (jefe de área o supervisor de bodega)
// deja una entrada REMOVED en el historial. Un fallo del historial no deshace la revocación:
// se informa en HistoryErrors.
func (uc *AssignmentUseCase) Revoke(ctx context.Context, tenantID, id string, actor entity.Actor) (*dto.AssignmentRevokeResponse, error) {
	a, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("obtener asignación: %w", err)
	}
	if a == nil || !a.IsActive() {
		return nil, domain.ErrAssignmentNotFound
	}
	if err := uc.repo.RemoveAssignment(ctx, tenantID, id); err != nil {
		return nil, err
	}
	out := &dto.AssignmentRevokeResponse{AssignmentID: id, Revoked: true}

	before := reconcile.Snapshot{}
	switch a.Kind {
	case entity.AssignmentAreaManager:
		before.Areas = []string{a.EntityID}
	case entity.AssignmentWarehouseSupervisor:
		before.Warehouses = []string{a.EntityID}
	default:
		return out, nil
	}
	if _, err := uc.recorder.RecordAssignmentDiff(ctx, tenantID, a.SubjectID, before, reconcile.Snapshot{}, actor); err != nil {
		uc.log.Error().Err(err).Str("assignment_id", id).Msg("asignación revocada sin historial")
		out.HistoryErrors = append(out.HistoryErrors, err.Error())
	}
	return out, nil
}
