package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-admin/internal/application/reconcile"
	"github.com/jhoicas/inventario-admin/internal/application/usecase"
	"github.com/jhoicas/inventario-admin/internal/domain/entity"
	"github.com/jhoicas/inventario-admin/internal/domain/repository"
	"github.com/jhoicas/inventario-admin/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	tenantID = "00000000-0000-0000-0000-0000000000aa"
	userID   = "00000000-0000-0000-0000-000000000001"
)

var actor = entity.Actor{ID: "admin-1", Name: "Ana Admin"}

type fixture struct {
	store       *memory.Store
	assignments repository.AssignmentRepository
	reconciler  *reconcile.Reconciler
	recorder    *reconcile.Recorder
	users       *usecase.UserUseCase
}

// newFixture crea un store con áreas A1..A3, bodegas W1..W3 y un jefe de área habilitado
// con las áreas A1 y A2. port permite envolver el repositorio de asignaciones.
func newFixture(t *testing.T, port func(repository.AssignmentRepository) repository.AssignmentRepository) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	now := time.Now().UTC()
	for _, id := range []string{"A1", "A2", "A3"} {
		require.NoError(t, store.Areas.Create(ctx, &entity.Area{ID: id, TenantID: tenantID, Name: "Área " + id, CreatedAt: now, UpdatedAt: now}))
	}
	for _, id := range []string{"W1", "W2", "W3"} {
		require.NoError(t, store.Warehouses.Create(ctx, &entity.Warehouse{ID: id, TenantID: tenantID, Name: "Bodega " + id, CreatedAt: now, UpdatedAt: now}))
	}
	store.Users.Put(&entity.User{
		ID:        userID,
		TenantID:  tenantID,
		Email:     "jefe@example.com",
		Name:      "Juan Jefe",
		Role:      entity.RoleAreaManager,
		Status:    entity.UserStatusEnabled,
		CreatedAt: now,
		UpdatedAt: now,
	})
	for _, a := range []string{"A1", "A2"} {
		_, err := store.Assignments.AssignManagerToArea(ctx, tenantID, a, userID)
		require.NoError(t, err)
	}

	var assignments repository.AssignmentRepository = store.Assignments
	if port != nil {
		assignments = port(assignments)
	}
	rec := reconcile.NewReconciler(assignments, nil)
	recorder := reconcile.NewRecorder(store.AssignmentHistory, store.EnablementHistory, nil)
	return &fixture{
		store:       store,
		assignments: assignments,
		reconciler:  rec,
		recorder:    recorder,
		users: usecase.NewUserUseCase(store.Users, store.Areas, store.Warehouses, assignments,
			store.AssignmentHistory, store.EnablementHistory, store.Tx, rec, recorder, nil),
	}
}

func (f *fixture) assignmentHistory(t *testing.T) []*entity.AssignmentHistoryEntry {
	t.Helper()
	list, err := f.store.AssignmentHistory.ListByUser(context.Background(), tenantID, userID, 0, 0)
	require.NoError(t, err)
	return list
}

func (f *fixture) enablementHistory(t *testing.T) []*entity.UserEnablementHistoryEntry {
	t.Helper()
	list, err := f.store.EnablementHistory.ListByUser(context.Background(), tenantID, userID, 0, 0)
	require.NoError(t, err)
	return list
}

func (f *fixture) stored(t *testing.T) *entity.User {
	t.Helper()
	u, err := f.store.Users.GetByID(context.Background(), tenantID, userID)
	require.NoError(t, err)
	require.NotNil(t, u)
	return u
}

// flakySupervisor falla al asignar las bodegas indicadas.
type flakySupervisor struct {
	repository.AssignmentRepository
	fail map[string]bool
}

func (f *flakySupervisor) AssignSupervisorToWarehouse(ctx context.Context, tenantID, warehouseID, userID string) (*entity.Assignment, error) {
	if f.fail[warehouseID] {
		return nil, errors.New("connection reset by peer")
	}
	return f.AssignmentRepository.AssignSupervisorToWarehouse(ctx, tenantID, warehouseID, userID)
}

func ptr[T any](v T) *T { return &v }

// brokenHistory historial de asignaciones que rechaza toda escritura.
type brokenHistory struct {
	repository.AssignmentHistoryRepository
}

func (brokenHistory) Create(context.Context, *entity.AssignmentHistoryEntry) error {
	return errors.New("no space left on device")
}

// withBrokenHistory devuelve un Recorder cuyo historial de asignaciones siempre falla.
func (f *fixture) withBrokenHistory() *reconcile.Recorder {
	return reconcile.NewRecorder(brokenHistory{f.store.AssignmentHistory}, f.store.EnablementHistory, nil)
}
