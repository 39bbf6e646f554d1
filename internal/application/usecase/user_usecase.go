package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/inventario-admin/internal/application/dto"
	"github.com/jhoicas/inventario-admin/internal/application/reconcile"
	"github.com/jhoicas/inventario-admin/internal/domain"
	"github.com/jhoicas/inventario-admin/internal/domain/access"
	"github.com/jhoicas/inventario-admin/internal/domain/assignment"
	"github.com/jhoicas/inventario-admin/internal/domain/entity"
	"github.com/jhoicas/inventario-admin/internal/domain/repository"
	"github.com/jhoicas/inventario-admin/pkg/logger"
)

// UserUseCase orquesta la actualización de usuarios: campos escalares, estado y relaciones.
type UserUseCase struct {
	users       repository.UserRepository
	areas       repository.AreaRepository
	warehouses  repository.WarehouseRepository
	assignments repository.AssignmentRepository
	history     repository.AssignmentHistoryRepository
	enablement  repository.EnablementHistoryRepository
	tx          TxRunner
	reconciler  *reconcile.Reconciler
	recorder    *reconcile.Recorder
	log         *logger.Logger
	now         func() time.Time
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(
	users repository.UserRepository,
	areas repository.AreaRepository,
	warehouses repository.WarehouseRepository,
	assignments repository.AssignmentRepository,
	history repository.AssignmentHistoryRepository,
	enablement repository.EnablementHistoryRepository,
	tx TxRunner,
	reconciler *reconcile.Reconciler,
	recorder *reconcile.Recorder,
	log *logger.Logger,
) *UserUseCase {
	return &UserUseCase{
		users:       users,
		areas:       areas,
		warehouses:  warehouses,
		assignments: assignments,
		history:     history,
		enablement:  enablement,
		tx:          tx,
		reconciler:  reconciler,
		recorder:    recorder,
		log:         logger.OrNop(log).Component("user_usecase"),
		now:         time.Now,
	}
}

// GetByID obtiene un usuario con sus áreas y bodegas activas.
func (uc *UserUseCase) GetByID(ctx context.Context, tenantID, id string) (*dto.UserResponse, error) {
	user, err := uc.load(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// List lista usuarios del tenant con paginación.
func (uc *UserUseCase) List(ctx context.Context, tenantID string, limit, offset int) (*dto.UserListResponse, error) {
	list, err := uc.users.ListByTenant(ctx, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar usuarios: %w", err)
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toUserResponse(u))
	}
	return &dto.UserListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// UpdateUserWithAssignments aplica una actualización parcial del usuario.
//
// Orden: validar todo (rol, estado, motivo, capacidad, existencia de áreas/bodegas) → persistir
// escalares y, en la misma transacción, el historial de habilitación → reconciliar relaciones con el rol NUEVO → historial de
// asignaciones. NotFound y validación abortan antes de cualquier escritura. Un fallo parcial de
// la reconciliación no es error: se informa en Assignments.Outcome = PARTIAL|FAILED.
func (uc *UserUseCase) UpdateUserWithAssignments(
	ctx context.Context,
	tenantID, id string,
	actor entity.Actor,
	in dto.UpdateUserRequest,
) (*dto.UserUpdateResponse, error) {
	user, err := uc.load(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	before := *user

	updated, err := applyScalarFields(user, in)
	if err != nil {
		return nil, err
	}
	statusChanged := updated.Status != before.Status
	if statusChanged {
		if err := reconcile.ValidateEnablementChange(updated.Status, in.Reason); err != nil {
			return nil, err
		}
	}

	desiredAreas, err := desiredSet(in.Areas, before.Areas, updated.Role, access.CanManageAreas, entity.AssignmentAreaManager)
	if err != nil {
		return nil, err
	}
	desiredWarehouses, err := desiredSet(in.Warehouses, before.Warehouses, updated.Role, access.CanSuperviseWarehouses, entity.AssignmentWarehouseSupervisor)
	if err != nil {
		return nil, err
	}

	input := reconcile.Input{
		TenantID:           tenantID,
		UserID:             id,
		Role:               updated.Role,
		UserEnabled:        updated.Status == entity.UserStatusEnabled,
		PreviousAreas:      before.Areas,
		DesiredAreas:       desiredAreas,
		PreviousWarehouses: before.Warehouses,
		DesiredWarehouses:  desiredWarehouses,
	}
	ops, err := uc.reconciler.Plan(input)
	if err != nil {
		return nil, err
	}
	if err := uc.ensureTargetsExist(ctx, tenantID, ops); err != nil {
		return nil, err
	}

	// Un solo instante para la actualización y todas sus entradas de historial.
	at := uc.now().UTC()
	recorder := uc.recorder.At(at)

	if scalarsChanged(&before, updated) {
		updated.UpdatedAt = at
		err := uc.tx.RunUserTx(ctx, func(users repository.UserRepository, enablement repository.EnablementHistoryRepository) error {
			if err := users.Update(ctx, updated); err != nil {
				return fmt.Errorf("actualizar usuario: %w", err)
			}
			if !statusChanged {
				return nil
			}
			_, err := recorder.UsingEnablement(enablement).RecordEnablementChange(ctx, tenantID, id, updated.Status, actor, in.Reason)
			return err
		})
		if err != nil {
			return nil, err
		}
	}

	var historyErrors []string

	result, err := uc.reconciler.Apply(ctx, tenantID, ops)
	if err != nil && !errors.Is(err, domain.ErrPartialFailure) {
		return nil, err
	}

	after := reconcile.Snapshot{
		Areas:      assignment.Apply(before.Areas, result.Changed(entity.AssignmentAreaManager, id)),
		Warehouses: assignment.Apply(before.Warehouses, result.Changed(entity.AssignmentWarehouseSupervisor, id)),
	}
	if _, err := recorder.RecordAssignmentDiff(ctx, tenantID, id,
		reconcile.Snapshot{Areas: before.Areas, Warehouses: before.Warehouses}, after, actor); err != nil {
		historyErrors = append(historyErrors, err.Error())
	}

	view := *updated
	view.Areas = assignment.Apply(nil, assignment.DiffSets(nil, desiredAreas))
	view.Warehouses = assignment.Apply(nil, assignment.DiffSets(nil, desiredWarehouses))

	outcome := result.Outcome()
	uc.log.Info().
		Str("tenant_id", tenantID).
		Str("user_id", id).
		Str("performed_by", actor.ID).
		Str("outcome", outcome).
		Int("operations", len(ops)).
		Int("failed", len(result.Failed)).
		Msg("usuario actualizado")

	return &dto.UserUpdateResponse{
		User:          *toUserResponse(&view),
		Assignments:   toResultResponse(result),
		HistoryErrors: historyErrors,
	}, nil
}

// SetUserStatus habilita o deshabilita un usuario y registra la transición.
// Pedir el estado actual no escribe nada (Changed=false).
func (uc *UserUseCase) SetUserStatus(
	ctx context.Context,
	tenantID, id string,
	actor entity.Actor,
	in dto.SetUserStatusRequest,
) (*dto.UserStatusResponse, error) {
	if err := reconcile.ValidateEnablementChange(in.Status, in.Reason); err != nil {
		return nil, err
	}
	user, err := uc.load(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if user.Status == in.Status {
		return &dto.UserStatusResponse{User: *toUserResponse(user)}, nil
	}

	at := uc.now().UTC()
	user.Status = in.Status
	user.UpdatedAt = at
	var entry *entity.UserEnablementHistoryEntry
	err = uc.tx.RunUserTx(ctx, func(users repository.UserRepository, enablement repository.EnablementHistoryRepository) error {
		if err := users.Update(ctx, user); err != nil {
			return fmt.Errorf("actualizar estado: %w", err)
		}
		var err error
		entry, err = uc.recorder.At(at).UsingEnablement(enablement).RecordEnablementChange(ctx, tenantID, id, in.Status, actor, in.Reason)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("tenant_id", tenantID).Str("user_id", id).Str("status", in.Status).Msg("estado de usuario cambiado")
	return &dto.UserStatusResponse{
		User:    *toUserResponse(user),
		Changed: true,
		Entry:   toEnablementResponse(entry),
	}, nil
}

// ListAssignmentHistory historial de asignaciones del usuario, el más reciente primero.
func (uc *UserUseCase) ListAssignmentHistory(ctx context.Context, tenantID, id string, limit, offset int) (*dto.AssignmentHistoryListResponse, error) {
	if _, err := uc.load(ctx, tenantID, id); err != nil {
		return nil, err
	}
	list, err := uc.history.ListByUser(ctx, tenantID, id, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar historial de asignaciones: %w", err)
	}
	items := make([]dto.AssignmentHistoryResponse, 0, len(list))
	for _, e := range list {
		items = append(items, toAssignmentHistoryResponse(e))
	}
	return &dto.AssignmentHistoryListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// ListEnablementHistory historial de habilitación del usuario, el más reciente primero.
func (uc *UserUseCase) ListEnablementHistory(ctx context.Context, tenantID, id string, limit, offset int) (*dto.EnablementHistoryListResponse, error) {
	if _, err := uc.load(ctx, tenantID, id); err != nil {
		return nil, err
	}
	list, err := uc.enablement.ListByUser(ctx, tenantID, id, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar historial de habilitación: %w", err)
	}
	items := make([]dto.EnablementHistoryResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toEnablementResponse(e))
	}
	return &dto.EnablementHistoryListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// ListActiveAssignments asignaciones activas del usuario leídas del repositorio.
func (uc *UserUseCase) ListActiveAssignments(ctx context.Context, tenantID, id string) (*dto.AssignmentListResponse, error) {
	if _, err := uc.load(ctx, tenantID, id); err != nil {
		return nil, err
	}
	list, err := uc.assignments.ListActiveBySubject(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("listar asignaciones: %w", err)
	}
	items := make([]dto.AssignmentResponse, 0, len(list))
	for _, a := range list {
		items = append(items, toAssignmentResponse(a))
	}
	return &dto.AssignmentListResponse{Items: items}, nil
}

func (uc *UserUseCase) load(ctx context.Context, tenantID, id string) (*entity.User, error) {
	user, err := uc.users.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("obtener usuario: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// ensureTargetsExist valida que existan las áreas/bodegas que se van a asignar.
func (uc *UserUseCase) ensureTargetsExist(ctx context.Context, tenantID string, ops []assignment.Operation) error {
	for _, op := range ops {
		if op.Action != assignment.ActionAssign {
			continue
		}
		switch op.Kind {
		case entity.AssignmentAreaManager:
			a, err := uc.areas.GetByID(ctx, tenantID, op.EntityID)
			if err != nil {
				return fmt.Errorf("obtener área: %w", err)
			}
			if a == nil {
				return fmt.Errorf("%w: %s", domain.ErrAreaNotFound, op.EntityID)
			}
		case entity.AssignmentWarehouseSupervisor:
			w, err := uc.warehouses.GetByID(ctx, tenantID, op.EntityID)
			if err != nil {
				return fmt.Errorf("obtener bodega: %w", err)
			}
			if w == nil {
				return fmt.Errorf("%w: %s", domain.ErrWarehouseNotFound, op.EntityID)
			}
		}
	}
	return nil
}

// applyScalarFields devuelve una copia de u con los campos escalares de in aplicados.
func applyScalarFields(u *entity.User, in dto.UpdateUserRequest) (*entity.User, error) {
	out := *u
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: el nombre no puede estar vacío", domain.ErrInvalidInput)
		}
		out.Name = name
	}
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if email == "" {
			return nil, fmt.Errorf("%w: el email no puede estar vacío", domain.ErrInvalidInput)
		}
		out.Email = email
	}
	if in.Phone != nil {
		out.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Role != nil {
		role, ok := access.NormalizeRole(*in.Role)
		if !ok {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnknownRole, *in.Role)
		}
		out.Role = role
	}
	if in.Status != nil {
		if !entity.ValidStatus(*in.Status) {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, *in.Status)
		}
		out.Status = *in.Status
	}
	return &out, nil
}

func scalarsChanged(a, b *entity.User) bool {
	return a.Name != b.Name ||
		a.Email != b.Email ||
		a.Phone != b.Phone ||
		a.Role != b.Role ||
		a.Status != b.Status
}

// desiredSet resuelve el conjunto deseado de una relación.
// Sin lista explícita se conserva el actual si el rol lo permite, y se vacía si no.
// Con un rol sin la capacidad, una lista que agrega entidades es error de validación;
// si no agrega nada (p. ej. reenvío del conjunto actual) el conjunto se vacía igual que sin lista.
func desiredSet(explicit *[]string, current []string, role string, capable func(string) bool, kind string) ([]string, error) {
	if explicit == nil {
		if capable(role) {
			return current, nil
		}
		return nil, nil
	}
	if capable(role) {
		return *explicit, nil
	}
	if added := assignment.DiffSets(current, *explicit).ToAdd; len(added) > 0 {
		return nil, fmt.Errorf("%w: rol %q, asignación %s %v", domain.ErrRoleCapability, role, kind, added)
	}
	return nil, nil
}
