package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-admin/internal/application/dto"
	"github.com/jhoicas/inventario-admin/internal/application/reconcile"
	"github.com/jhoicas/inventario-admin/internal/domain"
	"github.com/jhoicas/inventario-admin/internal/domain/assignment"
	"github.com/jhoicas/inventario-admin/internal/domain/entity"
	"github.com/jhoicas/inventario-admin/internal/domain/repository"
)

// AreaUseCase casos de uso de áreas y de sus bodegas vinculadas.
type AreaUseCase struct {
	areas       repository.AreaRepository
	warehouses  repository.WarehouseRepository
	assignments repository.AssignmentRepository
	reconciler  *reconcile.Reconciler
}

// NewAreaUseCase construye el caso de uso.
func NewAreaUseCase(
	areas repository.AreaRepository,
	warehouses repository.WarehouseRepository,
	assignments repository.AssignmentRepository,
	reconciler *reconcile.Reconciler,
) *AreaUseCase {
	return &AreaUseCase{areas: areas, warehouses: warehouses, assignments: assignments, reconciler: reconciler}
}

// Create crea un área.
func (uc *AreaUseCase) Create(ctx context.Context, tenantID string, in dto.CreateAreaRequest) (*dto.AreaResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
	}
	now := time.Now().UTC()
	area := &entity.Area{
		ID:          uuid.New().String(),
		TenantID:    tenantID,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.areas.Create(ctx, area); err != nil {
		return nil, fmt.Errorf("crear área: %w", err)
	}
	return toAreaResponse(area), nil
}

// GetByID obtiene un área por ID.
func (uc *AreaUseCase) GetByID(ctx context.Context, tenantID, id string) (*dto.AreaResponse, error) {
	area, err := uc.areas.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if area == nil {
		return nil, domain.ErrAreaNotFound
	}
	return toAreaResponse(area), nil
}

// List lista áreas del tenant.
func (uc *AreaUseCase) List(ctx context.Context, tenantID string, limit, offset int) (*dto.AreaListResponse, error) {
	list, err := uc.areas.ListByTenant(ctx, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AreaResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAreaResponse(a))
	}
	return &dto.AreaListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// SetWarehouses deja vinculadas al área exactamente las bodegas indicadas.
// El estado previo se lee del repositorio; las bodegas nuevas deben existir.
func (uc *AreaUseCase) SetWarehouses(ctx context.Context, tenantID, areaID string, in dto.SetAreaWarehousesRequest) (*dto.AreaWarehousesResponse, error) {
	area, err := uc.areas.GetByID(ctx, tenantID, areaID)
	if err != nil {
		return nil, err
	}
	if area == nil {
		return nil, domain.ErrAreaNotFound
	}

	active, err := uc.assignments.ListActiveBySubject(ctx, tenantID, areaID)
	if err != nil {
		return nil, fmt.Errorf("listar bodegas del área: %w", err)
	}
	var previous []string
	for _, a := range active {
		if a.Kind == entity.AssignmentAreaWarehouse {
			previous = append(previous, a.EntityID)
		}
	}

	for _, id := range assignment.DiffSets(previous, in.WarehouseIDs).ToAdd {
		w, err := uc.warehouses.GetByID(ctx, tenantID, id)
		if err != nil {
			return nil, err
		}
		if w == nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrWarehouseNotFound, id)
		}
	}

	result, err := uc.reconciler.ReconcileAreaWarehouses(ctx, tenantID, areaID, previous, in.WarehouseIDs)
	if err != nil && !errors.Is(err, domain.ErrPartialFailure) {
		return nil, err
	}
	current := assignment.Apply(previous, result.Changed(entity.AssignmentAreaWarehouse, areaID))
	return &dto.AreaWarehousesResponse{
		AreaID:       areaID,
		WarehouseIDs: nonNil(current),
		Assignments:  toResultResponse(result),
	}, nil
}

func toAreaResponse(a *entity.Area) *dto.AreaResponse {
	if a == nil {
		return nil
	}
	return &dto.AreaResponse{
		ID:          a.ID,
		TenantID:    a.TenantID,
		Name:        a.Name,
		Description: a.Description,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
