// Package memory implementa los puertos de repositorio en memoria (STORAGE_DRIVER=memory).
// Es seguro para uso concurrente; no persiste entre reinicios.
package memory

// Store agrupa los repositorios en memoria que comparten estado.
type Store struct {
	Users             *UserRepo
	Areas             *AreaRepo
	Warehouses        *WarehouseRepo
	Assignments       *AssignmentRepo
	AssignmentHistory *AssignmentHistoryRepo
	EnablementHistory *EnablementHistoryRepo
	Tx                *TxRunner
}

// NewStore construye un Store vacío.
func NewStore() *Store {
	assignments := NewAssignmentRepository()
	s := &Store{
		Users:             NewUserRepository(assignments),
		Areas:             NewAreaRepository(),
		Warehouses:        NewWarehouseRepository(),
		Assignments:       assignments,
		AssignmentHistory: NewAssignmentHistoryRepository(),
		EnablementHistory: NewEnablementHistoryRepository(),
	}
	s.Tx = NewTxRunner(s.Users, s.EnablementHistory)
	return s
}

func page[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}
