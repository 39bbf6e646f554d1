package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-admin/internal/application/usecase"
	"github.com/jhoicas/inventario-admin/internal/domain"
	"github.com/jhoicas/inventario-admin/internal/domain/entity"
)

func TestRevoke_PorID_RegistraRemoved(t *testing.T) {
	f := newFixture(t, nil)
	uc := usecase.NewAssignmentUseCase(f.assignments, f.recorder, nil)
	ctx := context.Background()

	active, err := f.store.Assignments.ListActiveBySubject(ctx, tenantID, userID)
	require.NoError(t, err)
	require.NotEmpty(t, active)
	target := active[0]

	out, err := uc.Revoke(ctx, tenantID, target.ID, actor)
	require.NoError(t, err)
	assert.True(t, out.Revoked)
	assert.Empty(t, out.HistoryErrors)

	hist := f.assignmentHistory(t)
	require.Len(t, hist, 1)
	assert.Equal(t, entity.HistoryActionRemoved, hist[0].Action)
	assert.Equal(t, target.EntityID, hist[0].EntityID)
	assert.NotContains(t, f.stored(t).Areas, target.EntityID)

	// Revocar de nuevo: ya no está activa.
	_, err = uc.Revoke(ctx, tenantID, target.ID, actor)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRevoke_Inexistente(t *testing.T) {
	f := newFixture(t, nil)
	uc := usecase.NewAssignmentUseCase(f.assignments, f.recorder, nil)

	out, err := uc.Revoke(context.Background(), tenantID, "nope", actor)
	assert.ErrorIs(t, err, domain.ErrAssignmentNotFound)
	assert.Nil(t, out)
}

// La revocación ya aplicada no se reporta como error aunque el historial falle.
func TestRevoke_FallaHistorial_RevocadaConHistoryErrors(t *testing.T) {
	f := newFixture(t, nil)
	uc := usecase.NewAssignmentUseCase(f.assignments, f.withBrokenHistory(), nil)
	ctx := context.Background()

	active, err := f.store.Assignments.ListActiveBySubject(ctx, tenantID, userID)
	require.NoError(t, err)
	require.NotEmpty(t, active)
	target := active[0]

	out, err := uc.Revoke(ctx, tenantID, target.ID, actor)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.True(t, out.Revoked)
	assert.Equal(t, target.ID, out.AssignmentID)
	require.NotEmpty(t, out.HistoryErrors)
	assert.Contains(t, out.HistoryErrors[0], target.EntityID)

	assert.NotContains(t, f.stored(t).Areas, target.EntityID, "la revocación se mantiene")
	assert.Empty(t, f.assignmentHistory(t))
}
