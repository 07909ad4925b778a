package sales

import (
	"context"

	"github.com/stocktrack/backend/internal/domain/inventory"
	"github.com/stocktrack/backend/internal/domain/sales"
)

// TransactionScope runs stock-mutating flows atomically. Invoice creation and
// import reconciliation both need several repository operations to commit or
// roll back together.
type TransactionScope interface {
	// Execute runs fn inside one database transaction. An error from fn
	// rolls everything back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories scoped to the running
// transaction.
type TransactionalRepositories interface {
	ItemRepo() inventory.ItemRepository
	InvoiceRepo() sales.InvoiceRepository
}

// NoOpTransactionScope executes without a real transaction, for tests that
// inject mock repositories.
type NoOpTransactionScope struct {
	itemRepo    inventory.ItemRepository
	invoiceRepo sales.InvoiceRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(itemRepo inventory.ItemRepository, invoiceRepo sales.InvoiceRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{itemRepo: itemRepo, invoiceRepo: invoiceRepo}
}

// Execute runs fn directly
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ItemRepo returns the item repository
func (s *NoOpTransactionScope) ItemRepo() inventory.ItemRepository {
	return s.itemRepo
}

// InvoiceRepo returns the invoice repository
func (s *NoOpTransactionScope) InvoiceRepo() sales.InvoiceRepository {
	return s.invoiceRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
