package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/jhoicas/inventario-admin/internal/domain"
	"github.com/jhoicas/inventario-admin/internal/domain/entity"
	"github.com/jhoicas/inventario-admin/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria. Areas/Warehouses se derivan de AssignmentRepo, igual que en PostgreSQL.
type UserRepo struct {
	mu          sync.RWMutex
	users       map[string]*entity.User
	assignments *AssignmentRepo
}

// NewUserRepository construye el repositorio sobre las asignaciones compartidas.
func NewUserRepository(assignments *AssignmentRepo) *UserRepo {
	return &UserRepo{users: make(map[string]*entity.User), assignments: assignments}
}

// Put inserta o reemplaza un usuario (carga inicial). Ignora Areas/Warehouses.
func (r *UserRepo) Put(user *entity.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *user
	c.Areas, c.Warehouses = nil, nil
	r.users[c.ID] = &c
}

// GetByID devuelve una copia del usuario con sus relaciones activas, o (nil, nil).
func (r *UserRepo) GetByID(_ context.Context, tenantID, id string) (*entity.User, error) {
	r.mu.RLock()
	u, ok := r.users[id]
	var c entity.User
	if ok {
		c = *u
	}
	r.mu.RUnlock()
	if !ok || c.TenantID != tenantID {
		return nil, nil
	}
	return r.withRelations(&c), nil
}

// Update persiste solo los campos escalares.
func (r *UserRepo) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[user.ID]
	if !ok || u.TenantID != user.TenantID {
		return domain.ErrUserNotFound
	}
	u.Email = user.Email
	u.Name = user.Name
	u.Phone = user.Phone
	u.Role = user.Role
	u.Status = user.Status
	u.UpdatedAt = user.UpdatedAt
	return nil
}

// ListByTenant lista usuarios del tenant ordenados por nombre.
func (r *UserRepo) ListByTenant(_ context.Context, tenantID string, limit, offset int) ([]*entity.User, error) {
	r.mu.RLock()
	var list []*entity.User
	for _, u := range r.users {
		if u.TenantID == tenantID {
			c := *u
			list = append(list, &c)
		}
	}
	r.mu.RUnlock()
	slices.SortFunc(list, func(a, b *entity.User) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	list = page(list, limit, offset)
	for i := range list {
		list[i] = r.withRelations(list[i])
	}
	return list, nil
}

func (r *UserRepo) withRelations(u *entity.User) *entity.User {
	u.Areas = r.assignments.activeEntities(u.TenantID, entity.AssignmentAreaManager, u.ID)
	u.Warehouses = r.assignments.activeEntities(u.TenantID, entity.AssignmentWarehouseSupervisor, u.ID)
	return u
}
