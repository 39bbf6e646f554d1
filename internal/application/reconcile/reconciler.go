// Package reconcile mantiene consistentes las asignaciones jefe-área y supervisor-bodega con el
// rol y las listas declaradas de cada usuario, y deja el rastro de auditoría de cada cambio.
package reconcile

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/inventario-admin/internal/domain"
	"github.com/jhoicas/inventario-admin/internal/domain/access"
	"github.com/jhoicas/inventario-admin/internal/domain/assignment"
	"github.com/jhoicas/inventario-admin/internal/domain/entity"
	"github.com/jhoicas/inventario-admin/internal/domain/repository"
	"github.com/jhoicas/inventario-admin/pkg/logger"
)

const defaultMaxConcurrency = 4

// Input estado previo y deseado de las relaciones de un usuario.
// Role es el rol NUEVO del usuario (el que queda tras la actualización).
type Input struct {
	TenantID           string
	UserID             string
	Role               string
	UserEnabled        bool
	PreviousAreas      []string
	DesiredAreas       []string
	PreviousWarehouses []string
	DesiredWarehouses  []string
}

// Reconciler calcula y aplica el mínimo de altas/bajas contra el puerto de asignaciones.
type Reconciler struct {
	repo           repository.AssignmentRepository
	log            *logger.Logger
	maxConcurrency int
	locks          *keyedMutex
}

// Option configura el Reconciler.
type Option func(*Reconciler)

// WithMaxConcurrency limita las llamadas simultáneas al puerto (mínimo 1).
func WithMaxConcurrency(n int) Option {
	return func(r *Reconciler) {
		if n >= 1 {
			r.maxConcurrency = n
		}
	}
}

// NewReconciler construye el reconciliador sobre el puerto de asignaciones.
func NewReconciler(repo repository.AssignmentRepository, log *logger.Logger, opts ...Option) *Reconciler {
	r := &Reconciler{
		repo:           repo,
		log:            logger.OrNop(log).Component("reconciler"),
		maxConcurrency: defaultMaxConcurrency,
		locks:          newKeyedMutex(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Plan devuelve las operaciones necesarias sin ejecutarlas.
// Las altas exigen la capacidad del rol y un usuario habilitado; las bajas siempre se permiten,
// así un cambio de rol puede limpiar relaciones que ya no le corresponden.
func (r *Reconciler) Plan(in Input) ([]assignment.Operation, error) {
	areas := assignment.DiffSets(in.PreviousAreas, in.DesiredAreas)
	warehouses := assignment.DiffSets(in.PreviousWarehouses, in.DesiredWarehouses)

	if len(areas.ToAdd) > 0 && !access.CanManageAreas(in.Role) {
		return nil, capabilityError(in.Role, entity.AssignmentAreaManager)
	}
	if len(warehouses.ToAdd) > 0 && !access.CanSuperviseWarehouses(in.Role) {
		return nil, capabilityError(in.Role, entity.AssignmentWarehouseSupervisor)
	}
	if !in.UserEnabled && len(areas.ToAdd)+len(warehouses.ToAdd) > 0 {
		return nil, domain.ErrDisabledTarget
	}

	ops := assignment.Operations(entity.AssignmentAreaManager, in.UserID, areas)
	ops = append(ops, assignment.Operations(entity.AssignmentWarehouseSupervisor, in.UserID, warehouses)...)
	return ops, nil
}

// Reconcile lleva las asignaciones del usuario del estado previo al deseado.
// Un error de validación no emite ninguna operación. Si alguna operación falla se devuelve el
// resultado itemizado junto con *domain.PartialFailureError.
func (r *Reconciler) Reconcile(ctx context.Context, in Input) (*assignment.Result, error) {
	ops, err := r.Plan(in)
	if err != nil {
		return nil, err
	}
	return r.Apply(ctx, in.TenantID, ops)
}

// ReconcileAreaWarehouses sincroniza las bodegas vinculadas a un área (AREA_WAREHOUSE).
func (r *Reconciler) ReconcileAreaWarehouses(ctx context.Context, tenantID, areaID string, previous, desired []string) (*assignment.Result, error) {
	ops := assignment.Operations(entity.AssignmentAreaWarehouse, areaID, assignment.DiffSets(previous, desired))
	return r.Apply(ctx, tenantID, ops)
}

// Apply ejecuta ops de forma concurrente (acotada). Operaciones sobre la misma tupla
// (tipo, sujeto, entidad) se serializan, también entre llamadas concurrentes a Apply.
// El fallo de una operación no impide intentar las demás.
func (r *Reconciler) Apply(ctx context.Context, tenantID string, ops []assignment.Operation) (*assignment.Result, error) {
	errs := make([]error, len(ops))
	noops := make([]bool, len(ops))

	var g errgroup.Group
	g.SetLimit(r.maxConcurrency)
	for i, op := range ops {
		i, op := i, op
		g.Go(func() error {
			unlock := r.locks.Lock(op.Key(tenantID))
			defer unlock()
			noops[i], errs[i] = r.execute(ctx, tenantID, op)
			return nil
		})
	}
	_ = g.Wait()

	res := &assignment.Result{}
	var failed []domain.FailedItem
	for i, op := range ops {
		if errs[i] != nil {
			r.log.Warn().
				Err(errs[i]).
				Str("tenant_id", tenantID).
				Str("subject_id", op.SubjectID).
				Str("entity_id", op.EntityID).
				Str("kind", op.Kind).
				Str("action", op.Action).
				Msg("operación de asignación fallida")
			res.Failed = append(res.Failed, assignment.FailedOperation{Operation: op, Err: errs[i]})
			failed = append(failed, domain.FailedItem{Label: op.String(), Err: errs[i]})
			continue
		}
		res.Applied = append(res.Applied, assignment.AppliedOperation{Operation: op, NoOp: noops[i]})
	}

	if len(failed) > 0 {
		return res, &domain.PartialFailureError{Attempted: len(ops), Failed: failed}
	}
	return res, nil
}

// execute llama al puerto. Conflicto en un alta o NotFound en una baja significan que el
// estado ya es el pedido: se aceptan como no-op.
func (r *Reconciler) execute(ctx context.Context, tenantID string, op assignment.Operation) (noop bool, err error) {
	switch op.Action {
	case assignment.ActionAssign:
		err = r.assign(ctx, tenantID, op)
		if errors.Is(err, domain.ErrConflict) {
			return true, nil
		}
	case assignment.ActionRemove:
		err = r.remove(ctx, tenantID, op)
		if errors.Is(err, domain.ErrNotFound) {
			return true, nil
		}
	default:
		return false, domain.ErrInvalidInput
	}
	if err == nil {
		return false, nil
	}
	var te *domain.TransportError
	if errors.As(err, &te) {
		return false, err
	}
	return false, &domain.TransportError{Op: op.String(), Err: err}
}

func (r *Reconciler) assign(ctx context.Context, tenantID string, op assignment.Operation) error {
	var err error
	switch op.Kind {
	case entity.AssignmentAreaManager:
		_, err = r.repo.AssignManagerToArea(ctx, tenantID, op.EntityID, op.SubjectID)
	case entity.AssignmentWarehouseSupervisor:
		_, err = r.repo.AssignSupervisorToWarehouse(ctx, tenantID, op.EntityID, op.SubjectID)
	case entity.AssignmentAreaWarehouse:
		_, err = r.repo.AssignWarehouseToArea(ctx, tenantID, op.SubjectID, op.EntityID)
	default:
		err = domain.ErrInvalidInput
	}
	return err
}

func (r *Reconciler) remove(ctx context.Context, tenantID string, op assignment.Operation) error {
	switch op.Kind {
	case entity.AssignmentAreaManager:
		return r.repo.RemoveManagerFromArea(ctx, tenantID, op.EntityID, op.SubjectID)
	case entity.AssignmentWarehouseSupervisor:
		return r.repo.RemoveSupervisorFromWarehouse(ctx, tenantID, op.EntityID, op.SubjectID)
	case entity.AssignmentAreaWarehouse:
		return r.repo.RemoveWarehouseFromArea(ctx, tenantID, op.SubjectID, op.EntityID)
	default:
		return domain.ErrInvalidInput
	}
}

func capabilityError(role, kind string) error {
	return fmt.Errorf("%w: rol %q, asignación %s", domain.ErrRoleCapability, role, kind)
}
