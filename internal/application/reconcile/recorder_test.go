package reconcile_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-admin/internal/application/reconcile"
	"github.com/jhoicas/inventario-admin/internal/domain"
	"github.com/jhoicas/inventario-admin/internal/domain/entity"
	"github.com/jhoicas/inventario-admin/internal/infrastructure/memory"
)

var (
	fixedNow = time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	admin    = entity.Actor{ID: "admin-1", Name: "Ana Admin"}
)

func newTestRecorder(hist *memory.AssignmentHistoryRepo, en *memory.EnablementHistoryRepo) *reconcile.Recorder {
	n := 0
	return reconcile.NewRecorder(hist, en, nil,
		reconcile.WithClock(func() time.Time { return fixedNow }),
		reconcile.WithIDGenerator(func() string { n++; return fmt.Sprintf("h-%d", n) }),
	)
}

// failingHistory historial que rechaza una entidad concreta.
type failingHistory struct {
	*memory.AssignmentHistoryRepo
	entityID string
}

func (f *failingHistory) Create(ctx context.Context, e *entity.AssignmentHistoryEntry) error {
	if e.EntityID == f.entityID {
		return errors.New("disco lleno")
	}
	return f.AssignmentHistoryRepo.Create(ctx, e)
}

// ──────────────────────────────────────────────────────────────────────────────
// Historial de asignaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordAssignmentDiff_UnaEntradaPorCambio_MismoTimestamp(t *testing.T) {
	hist := memory.NewAssignmentHistoryRepository()
	rec := newTestRecorder(hist, memory.NewEnablementHistoryRepository())

	entries, err := rec.RecordAssignmentDiff(context.Background(), testTenant, testUser,
		reconcile.Snapshot{Areas: []string{"A1", "A2"}},
		reconcile.Snapshot{Areas: []string{"A2", "A3"}, Warehouses: []string{"W1"}},
		admin,
	)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	ids := map[string]bool{}
	for _, e := range entries {
		assert.Equal(t, fixedNow, e.Timestamp, "todas las entradas comparten el instante")
		assert.Equal(t, admin.ID, e.PerformedBy)
		assert.Equal(t, admin.Name, e.PerformedByName)
		ids[e.ID] = true
	}
	assert.Len(t, ids, 3, "cada entrada tiene ID único")

	assert.Equal(t, entity.HistoryActionRemoved, entries[0].Action)
	assert.Equal(t, "A1", entries[0].EntityID)
	assert.Equal(t, entity.HistoryEntityArea, entries[0].EntityType)
	assert.Equal(t, entity.HistoryActionAssigned, entries[1].Action)
	assert.Equal(t, "A3", entries[1].EntityID)
	assert.Equal(t, entity.HistoryEntityWarehouse, entries[2].EntityType)

	stored, err := hist.ListByUser(context.Background(), testTenant, testUser, 0, 0)
	require.NoError(t, err)
	assert.Len(t, stored, 3)
}

func TestRecordAssignmentDiff_SinCambios_NoEscribe(t *testing.T) {
	hist := memory.NewAssignmentHistoryRepository()
	rec := newTestRecorder(hist, memory.NewEnablementHistoryRepository())

	entries, err := rec.RecordAssignmentDiff(context.Background(), testTenant, testUser,
		reconcile.Snapshot{Areas: []string{"A1"}},
		reconcile.Snapshot{Areas: []string{"A1"}},
		admin,
	)
	require.NoError(t, err)
	assert.Empty(t, entries)

	stored, _ := hist.ListByUser(context.Background(), testTenant, testUser, 0, 0)
	assert.Empty(t, stored)
}

func TestRecordAssignmentDiff_FalloDeEscritura_SeReporta(t *testing.T) {
	hist := &failingHistory{AssignmentHistoryRepo: memory.NewAssignmentHistoryRepository(), entityID: "W2"}
	rec := reconcile.NewRecorder(hist, memory.NewEnablementHistoryRepository(), nil)

	entries, err := rec.RecordAssignmentDiff(context.Background(), testTenant, testUser,
		reconcile.Snapshot{},
		reconcile.Snapshot{Warehouses: []string{"W1", "W2"}},
		admin,
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPartialFailure)

	var pf *domain.PartialFailureError
	require.ErrorAs(t, err, &pf)
	assert.Equal(t, 2, pf.Attempted)
	assert.Len(t, pf.Failed, 1)
	require.Len(t, entries, 1)
	assert.Equal(t, "W1", entries[0].EntityID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Historial de habilitación
// ──────────────────────────────────────────────────────────────────────────────

func TestRecorderAt_AmbosHistorialesMismoInstante(t *testing.T) {
	hist := memory.NewAssignmentHistoryRepository()
	en := memory.NewEnablementHistoryRepository()
	pinned := fixedNow.Add(-time.Hour)
	rec := newTestRecorder(hist, en).At(pinned)

	entry, err := rec.RecordEnablementChange(context.Background(), testTenant, testUser, entity.UserStatusDisabled, admin, "licencia")
	require.NoError(t, err)
	entries, err := rec.RecordAssignmentDiff(context.Background(), testTenant, testUser,
		reconcile.Snapshot{Areas: []string{"A1"}}, reconcile.Snapshot{}, admin)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, pinned, entry.OccurredAt)
	assert.Equal(t, pinned, entries[0].Timestamp)
}

func TestRecordEnablementChange_DeshabilitarSinMotivo_Falla(t *testing.T) {
	en := memory.NewEnablementHistoryRepository()
	rec := newTestRecorder(memory.NewAssignmentHistoryRepository(), en)

	for _, reason := range []string{"", "   "} {
		_, err := rec.RecordEnablementChange(context.Background(), testTenant, testUser, entity.UserStatusDisabled, admin, reason)
		assert.ErrorIs(t, err, domain.ErrReasonRequired)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}

	stored, _ := en.ListByUser(context.Background(), testTenant, testUser, 0, 0)
	assert.Empty(t, stored, "no debe escribirse nada si falta el motivo")
}

func TestRecordEnablementChange_DeshabilitarConMotivo_UnaEntrada(t *testing.T) {
	en := memory.NewEnablementHistoryRepository()
	rec := newTestRecorder(memory.NewAssignmentHistoryRepository(), en)

	e, err := rec.RecordEnablementChange(context.Background(), testTenant, testUser, entity.UserStatusDisabled, admin, "  retiro voluntario ")
	require.NoError(t, err)
	assert.Equal(t, entity.EnablementActionDisabled, e.Action)
	assert.Equal(t, "retiro voluntario", e.Reason)
	assert.Equal(t, fixedNow, e.OccurredAt)

	stored, err := en.ListByUser(context.Background(), testTenant, testUser, 0, 0)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, e.ID, stored[0].ID)
}

func TestRecordEnablementChange_HabilitarNoRequiereMotivo(t *testing.T) {
	rec := newTestRecorder(memory.NewAssignmentHistoryRepository(), memory.NewEnablementHistoryRepository())

	e, err := rec.RecordEnablementChange(context.Background(), testTenant, testUser, entity.UserStatusEnabled, admin, "")
	require.NoError(t, err)
	assert.Equal(t, entity.EnablementActionEnabled, e.Action)
}

func TestRecordEnablementChange_EstadoInvalido(t *testing.T) {
	rec := newTestRecorder(memory.NewAssignmentHistoryRepository(), memory.NewEnablementHistoryRepository())

	_, err := rec.RecordEnablementChange(context.Background(), testTenant, testUser, "SUSPENDED", admin, "x")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}
