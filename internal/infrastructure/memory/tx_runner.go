package memory

import (
	"context"

	"github.com/jhoicas/inventario-admin/internal/domain/repository"
)

// TxRunner pasa los repos tal cual; en memoria no hay rollback.
type TxRunner struct {
	users      repository.UserRepository
	enablement repository.EnablementHistoryRepository
}

// NewTxRunner construye el runner sobre los repos dados.
func NewTxRunner(users repository.UserRepository, enablement repository.EnablementHistoryRepository) *TxRunner {
	return &TxRunner{users: users, enablement: enablement}
}

// RunUserTx ejecuta fn con los repos configurados.
func (r *TxRunner) RunUserTx(_ context.Context, fn func(
	users repository.UserRepository,
	enablement repository.EnablementHistoryRepository,
) error) error {
	return fn(r.users, r.enablement)
}
