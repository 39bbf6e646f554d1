package usecase

import (
	"context"

	"github.com/jhoicas/inventario-admin/internal/domain/repository"
)

// TxRunner ejecuta fn con repos atados a una misma transacción: el cambio de estado del
// usuario y su entrada de historial se confirman juntos o no se confirman.
type TxRunner interface {
	RunUserTx(ctx context.Context, fn func(
		users repository.UserRepository,
		enablement repository.EnablementHistoryRepository,
	) error) error
}
