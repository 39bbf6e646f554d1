package reconcile_test

import (
	"context"
	"sync"

	"github.com/jhoicas/inventario-admin/internal/domain/entity"
	"github.com/jhoicas/inventario-admin/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testTenant = "00000000-0000-0000-0000-0000000000aa"
	testUser   = "00000000-0000-0000-0000-000000000001"
)

// spyPort envuelve un AssignmentRepository real: registra cada llamada y permite
// inyectar errores por entidad.
type spyPort struct {
	repository.AssignmentRepository

	mu    sync.Mutex
	calls []string
	fail  map[string]error
}

func newSpyPort(inner repository.AssignmentRepository) *spyPort {
	return &spyPort{AssignmentRepository: inner, fail: map[string]error{}}
}

func (s *spyPort) failOn(entityID string, err error) { s.fail[entityID] = err }

func (s *spyPort) record(call, entityID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call+":"+entityID)
	return s.fail[entityID]
}

func (s *spyPort) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func (s *spyPort) AssignManagerToArea(ctx context.Context, tenantID, areaID, userID string) (*entity.Assignment, error) {
	if err := s.record("assignManager", areaID); err != nil {
		return nil, err
	}
	return s.AssignmentRepository.AssignManagerToArea(ctx, tenantID, areaID, userID)
}

func (s *spyPort) RemoveManagerFromArea(ctx context.Context, tenantID, areaID, userID string) error {
	if err := s.record("removeManager", areaID); err != nil {
		return err
	}
	return s.AssignmentRepository.RemoveManagerFromArea(ctx, tenantID, areaID, userID)
}

func (s *spyPort) AssignSupervisorToWarehouse(ctx context.Context, tenantID, warehouseID, userID string) (*entity.Assignment, error) {
	if err := s.record("assignSupervisor", warehouseID); err != nil {
		return nil, err
	}
	return s.AssignmentRepository.AssignSupervisorToWarehouse(ctx, tenantID, warehouseID, userID)
}

func (s *spyPort) RemoveSupervisorFromWarehouse(ctx context.Context, tenantID, warehouseID, userID string) error {
	if err := s.record("removeSupervisor", warehouseID); err != nil {
		return err
	}
	return s.AssignmentRepository.RemoveSupervisorFromWarehouse(ctx, tenantID, warehouseID, userID)
}

func (s *spyPort) AssignWarehouseToArea(ctx context.Context, tenantID, areaID, warehouseID string) (*entity.Assignment, error) {
	if err := s.record("assignAreaWarehouse", warehouseID); err != nil {
		return nil, err
	}
	return s.AssignmentRepository.AssignWarehouseToArea(ctx, tenantID, areaID, warehouseID)
}

func (s *spyPort) RemoveWarehouseFromArea(ctx context.Context, tenantID, areaID, warehouseID string) error {
	if err := s.record("removeAreaWarehouse", warehouseID); err != nil {
		return err
	}
	return s.AssignmentRepository.RemoveWarehouseFromArea(ctx, tenantID, areaID, warehouseID)
}
