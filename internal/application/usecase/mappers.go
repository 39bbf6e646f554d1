package usecase

import (
	"github.com/jhoicas/inventario-admin/internal/application/dto"
	"github.com/jhoicas/inventario-admin/internal/domain/assignment"
	"github.com/jhoicas/inventario-admin/internal/domain/entity"
)

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:         u.ID,
		TenantID:   u.TenantID,
		Email:      u.Email,
		Name:       u.Name,
		Phone:      u.Phone,
		Role:       u.Role,
		Status:     u.Status,
		Areas:      nonNil(u.Areas),
		Warehouses: nonNil(u.Warehouses),
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func toResultResponse(r *assignment.Result) dto.AssignmentResultResponse {
	out := dto.AssignmentResultResponse{
		Outcome: r.Outcome(),
		Applied: []dto.AssignmentOperationResponse{},
		Failed:  []dto.AssignmentOperationResponse{},
	}
	if r == nil {
		return out
	}
	for _, op := range r.Applied {
		out.Applied = append(out.Applied, dto.AssignmentOperationResponse{
			Kind:     op.Kind,
			Action:   op.Action,
			EntityID: op.EntityID,
			NoOp:     op.NoOp,
		})
	}
	for _, op := range r.Failed {
		out.Failed = append(out.Failed, dto.AssignmentOperationResponse{
			Kind:     op.Kind,
			Action:   op.Action,
			EntityID: op.EntityID,
			Error:    op.Err.Error(),
		})
	}
	return out
}

func toAssignmentHistoryResponse(e *entity.AssignmentHistoryEntry) dto.AssignmentHistoryResponse {
	return dto.AssignmentHistoryResponse{
		ID:              e.ID,
		UserID:          e.UserID,
		EntityID:        e.EntityID,
		EntityType:      e.EntityType,
		Action:          e.Action,
		PerformedBy:     e.PerformedBy,
		PerformedByName: e.PerformedByName,
		Timestamp:       e.Timestamp,
	}
}

func toEnablementResponse(e *entity.UserEnablementHistoryEntry) *dto.EnablementHistoryResponse {
	if e == nil {
		return nil
	}
	return &dto.EnablementHistoryResponse{
		ID:              e.ID,
		UserID:          e.UserID,
		Action:          e.Action,
		PerformedByID:   e.PerformedByID,
		PerformedByName: e.PerformedByName,
		Reason:          e.Reason,
		OccurredAt:      e.OccurredAt,
	}
}

func toAssignmentResponse(a *entity.Assignment) dto.AssignmentResponse {
	return dto.AssignmentResponse{
		ID:         a.ID,
		Kind:       a.Kind,
		SubjectID:  a.SubjectID,
		EntityID:   a.EntityID,
		AssignedAt: a.AssignedAt,
		RevokedAt:  a.RevokedAt,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
