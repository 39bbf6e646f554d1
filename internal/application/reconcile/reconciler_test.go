package reconcile_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-admin/internal/application/reconcile"
	"github.com/jhoicas/inventario-admin/internal/domain"
	"github.com/jhoicas/inventario-admin/internal/domain/assignment"
	"github.com/jhoicas/inventario-admin/internal/domain/entity"
	"github.com/jhoicas/inventario-admin/internal/infrastructure/memory"
)

func seedAreas(t *testing.T, repo *memory.AssignmentRepo, areas ...string) {
	t.Helper()
	for _, a := range areas {
		_, err := repo.AssignManagerToArea(context.Background(), testTenant, a, testUser)
		require.NoError(t, err)
	}
}

func activeAreas(t *testing.T, repo *memory.AssignmentRepo) []string {
	t.Helper()
	list, err := repo.ListActiveBySubject(context.Background(), testTenant, testUser)
	require.NoError(t, err)
	var out []string
	for _, a := range list {
		if a.Kind == entity.AssignmentAreaManager {
			out = append(out, a.EntityID)
		}
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Diff mínimo
// ──────────────────────────────────────────────────────────────────────────────

func TestReconcile_JefeDeArea_SoloEmiteLasDiferencias(t *testing.T) {
	repo := memory.NewAssignmentRepository()
	seedAreas(t, repo, "A1", "A2")
	spy := newSpyPort(repo)
	rec := reconcile.NewReconciler(spy, nil)

	res, err := rec.Reconcile(context.Background(), reconcile.Input{
		TenantID:      testTenant,
		UserID:        testUser,
		Role:          entity.RoleAreaManager,
		UserEnabled:   true,
		PreviousAreas: []string{"A1", "A2"},
		DesiredAreas:  []string{"A2", "A3"},
	})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"removeManager:A1", "assignManager:A3"}, spy.Calls())
	assert.Equal(t, assignment.OutcomeApplied, res.Outcome())
	assert.Len(t, res.Applied, 2)
	assert.ElementsMatch(t, []string{"A2", "A3"}, activeAreas(t, repo))
}

func TestReconcile_NumeroDeOperacionesIgualAlDiff(t *testing.T) {
	repo := memory.NewAssignmentRepository()
	spy := newSpyPort(repo)
	rec := reconcile.NewReconciler(spy, nil)

	in := reconcile.Input{
		TenantID:           testTenant,
		UserID:             testUser,
		Role:               entity.RoleWarehouseSupervisor,
		UserEnabled:        true,
		PreviousWarehouses: []string{"W1", "W2", "W3"},
		DesiredWarehouses:  []string{"W3", "W4", "W4", "W5"},
	}
	d := assignment.DiffSets(in.PreviousWarehouses, in.DesiredWarehouses)

	ops, err := rec.Plan(in)
	require.NoError(t, err)
	assert.Len(t, ops, d.Len())
	assert.Equal(t, 4, d.Len(), "quitar W1,W2 y agregar W4,W5")
}

// ──────────────────────────────────────────────────────────────────────────────
// Idempotencia
// ──────────────────────────────────────────────────────────────────────────────

func TestReconcile_MismoEstado_NoLlamaAlPuerto(t *testing.T) {
	spy := newSpyPort(memory.NewAssignmentRepository())
	rec := reconcile.NewReconciler(spy, nil)

	res, err := rec.Reconcile(context.Background(), reconcile.Input{
		TenantID:      testTenant,
		UserID:        testUser,
		Role:          entity.RoleAreaManager,
		UserEnabled:   true,
		PreviousAreas: []string{"A1", "A2"},
		DesiredAreas:  []string{"A2", "A1", "A1"},
	})
	require.NoError(t, err)
	assert.Empty(t, spy.Calls())
	assert.Equal(t, assignment.OutcomeNoChanges, res.Outcome())
}

func TestReconcile_SegundaEjecucion_EsNoOp(t *testing.T) {
	repo := memory.NewAssignmentRepository()
	spy := newSpyPort(repo)
	rec := reconcile.NewReconciler(spy, nil)
	in := reconcile.Input{
		TenantID:      testTenant,
		UserID:        testUser,
		Role:          entity.RoleAreaManager,
		UserEnabled:   true,
		PreviousAreas: nil,
		DesiredAreas:  []string{"A1"},
	}

	_, err := rec.Reconcile(context.Background(), in)
	require.NoError(t, err)

	// Se repite con el mismo "previo" desactualizado: el puerto responde conflicto → no-op.
	res, err := rec.Reconcile(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, res.Applied, 1)
	assert.True(t, res.Applied[0].NoOp)
	assert.True(t, res.Changed(entity.AssignmentAreaManager, testUser).Empty())
	assert.Equal(t, []string{"A1"}, activeAreas(t, repo))
}

func TestReconcile_RemoverInexistente_EsNoOp(t *testing.T) {
	rec := reconcile.NewReconciler(memory.NewAssignmentRepository(), nil)

	res, err := rec.Reconcile(context.Background(), reconcile.Input{
		TenantID:      testTenant,
		UserID:        testUser,
		Role:          entity.RoleAreaManager,
		UserEnabled:   true,
		PreviousAreas: []string{"A9"},
	})
	require.NoError(t, err)
	require.Len(t, res.Applied, 1)
	assert.True(t, res.Applied[0].NoOp)
}

// ──────────────────────────────────────────────────────────────────────────────
// Capacidad del rol
// ──────────────────────────────────────────────────────────────────────────────

func TestReconcile_CambioDeRol_LimpiaAreasSinAgregarBodegas(t *testing.T) {
	repo := memory.NewAssignmentRepository()
	seedAreas(t, repo, "A1")
	spy := newSpyPort(repo)
	rec := reconcile.NewReconciler(spy, nil)

	// Pasó de AREA_MANAGER a WAREHOUSE_SUPERVISOR: sus áreas deben revocarse.
	res, err := rec.Reconcile(context.Background(), reconcile.Input{
		TenantID:      testTenant,
		UserID:        testUser,
		Role:          entity.RoleWarehouseSupervisor,
		UserEnabled:   true,
		PreviousAreas: []string{"A1"},
		DesiredAreas:  nil,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"removeManager:A1"}, spy.Calls())
	assert.Equal(t, assignment.OutcomeApplied, res.Outcome())
	assert.Empty(t, activeAreas(t, repo))
}

func TestReconcile_RolSinCapacidad_RechazaAltasSinMutar(t *testing.T) {
	spy := newSpyPort(memory.NewAssignmentRepository())
	rec := reconcile.NewReconciler(spy, nil)

	_, err := rec.Reconcile(context.Background(), reconcile.Input{
		TenantID:          testTenant,
		UserID:            testUser,
		Role:              entity.RoleAreaManager,
		UserEnabled:       true,
		PreviousAreas:     []string{"A1"},
		DesiredAreas:      nil,
		DesiredWarehouses: []string{"W1"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRoleCapability)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, spy.Calls(), "un error de validación no debe emitir operaciones")
}

func TestReconcile_Admin_NoAdministraAreas(t *testing.T) {
	rec := reconcile.NewReconciler(memory.NewAssignmentRepository(), nil)

	_, err := rec.Plan(reconcile.Input{
		UserID:       testUser,
		Role:         entity.RoleAdmin,
		UserEnabled:  true,
		DesiredAreas: []string{"A1"},
	})
	assert.ErrorIs(t, err, domain.ErrRoleCapability)
}

func TestReconcile_UsuarioDeshabilitado_SoloPermiteBajas(t *testing.T) {
	rec := reconcile.NewReconciler(memory.NewAssignmentRepository(), nil)

	_, err := rec.Plan(reconcile.Input{
		UserID:       testUser,
		Role:         entity.RoleAreaManager,
		UserEnabled:  false,
		DesiredAreas: []string{"A1"},
	})
	assert.ErrorIs(t, err, domain.ErrDisabledTarget)

	ops, err := rec.Plan(reconcile.Input{
		UserID:        testUser,
		Role:          entity.RoleAreaManager,
		UserEnabled:   false,
		PreviousAreas: []string{"A1"},
	})
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, assignment.ActionRemove, ops[0].Action)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fallos parciales
// ──────────────────────────────────────────────────────────────────────────────

func TestReconcile_FalloParcial_ContinuaYReportaItemizado(t *testing.T) {
	repo := memory.NewAssignmentRepository()
	spy := newSpyPort(repo)
	spy.failOn("W2", errors.New("timeout"))
	rec := reconcile.NewReconciler(spy, nil)

	res, err := rec.Reconcile(context.Background(), reconcile.Input{
		TenantID:          testTenant,
		UserID:            testUser,
		Role:              entity.RoleWarehouseSupervisor,
		UserEnabled:       true,
		DesiredWarehouses: []string{"W1", "W2", "W3"},
	})
	require.Error(t, err)

	var pf *domain.PartialFailureError
	require.ErrorAs(t, err, &pf)
	assert.Equal(t, 3, pf.Attempted)
	require.Len(t, pf.Failed, 1)
	assert.ErrorIs(t, err, domain.ErrTransport)

	require.NotNil(t, res)
	assert.Equal(t, assignment.OutcomePartial, res.Outcome())
	assert.Len(t, res.Applied, 2)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, "W2", res.Failed[0].EntityID)

	changed := res.Changed(entity.AssignmentWarehouseSupervisor, testUser)
	assert.ElementsMatch(t, []string{"W1", "W3"}, changed.ToAdd)
}

func TestReconcile_TodoFalla_OutcomeFailed(t *testing.T) {
	spy := newSpyPort(memory.NewAssignmentRepository())
	spy.failOn("A1", errors.New("conexión rechazada"))
	rec := reconcile.NewReconciler(spy, nil)

	res, err := rec.Reconcile(context.Background(), reconcile.Input{
		TenantID:     testTenant,
		UserID:       testUser,
		Role:         entity.RoleAreaManager,
		UserEnabled:  true,
		DesiredAreas: []string{"A1"},
	})
	assert.ErrorIs(t, err, domain.ErrPartialFailure)
	assert.Equal(t, assignment.OutcomeFailed, res.Outcome())
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia
// ──────────────────────────────────────────────────────────────────────────────

func TestReconcile_ConcurrenteMismaTupla_UnaSolaAsignacionActiva(t *testing.T) {
	repo := memory.NewAssignmentRepository()
	rec := reconcile.NewReconciler(repo, nil, reconcile.WithMaxConcurrency(8))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := rec.Reconcile(context.Background(), reconcile.Input{
				TenantID:     testTenant,
				UserID:       testUser,
				Role:         entity.RoleAreaManager,
				UserEnabled:  true,
				DesiredAreas: []string{"A1"},
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, []string{"A1"}, activeAreas(t, repo))
}

func TestReconcile_ConcurrenteTuplasDisjuntas_AplicaTodo(t *testing.T) {
	repo := memory.NewAssignmentRepository()
	rec := reconcile.NewReconciler(repo, nil, reconcile.WithMaxConcurrency(3))

	desired := make([]string, 0, 20)
	for i := 0; i < 20; i++ {
		desired = append(desired, fmt.Sprintf("A%02d", i))
	}
	res, err := rec.Reconcile(context.Background(), reconcile.Input{
		TenantID:     testTenant,
		UserID:       testUser,
		Role:         entity.RoleAreaManager,
		UserEnabled:  true,
		DesiredAreas: desired,
	})
	require.NoError(t, err)
	assert.Len(t, res.Applied, 20)
	// El resultado conserva el orden de las operaciones planificadas.
	for i, op := range res.Applied {
		assert.Equal(t, desired[i], op.EntityID)
	}
	assert.ElementsMatch(t, desired, activeAreas(t, repo))
}

// ──────────────────────────────────────────────────────────────────────────────
// Área ↔ bodega
// ──────────────────────────────────────────────────────────────────────────────

func TestReconcileAreaWarehouses_SincronizaVinculos(t *testing.T) {
	repo := memory.NewAssignmentRepository()
	_, err := repo.AssignWarehouseToArea(context.Background(), testTenant, "AREA", "W1")
	require.NoError(t, err)
	spy := newSpyPort(repo)
	rec := reconcile.NewReconciler(spy, nil)

	res, err := rec.ReconcileAreaWarehouses(context.Background(), testTenant, "AREA", []string{"W1"}, []string{"W2"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"removeAreaWarehouse:W1", "assignAreaWarehouse:W2"}, spy.Calls())
	assert.Equal(t, assignment.OutcomeApplied, res.Outcome())

	list, err := repo.ListActiveBySubject(context.Background(), testTenant, "AREA")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "W2", list[0].EntityID)
	assert.Equal(t, entity.AssignmentAreaWarehouse, list[0].Kind)
}
