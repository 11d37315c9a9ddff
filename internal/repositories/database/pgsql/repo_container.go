package pgsql

import (
	portsrepo "github.com/openprocure/procurement_backend/internal/core/ports/repositories"

	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	lineItemRepo := newPgxLineItemRepository(dbPool)
	prRepo := newPgxPrRepository(dbPool)
	reconciliationRepo := newPgxReconciliationRepository(dbPool)
	auditRepo := newPgxAuditRepository(dbPool)

	return portsrepo.RepositoryProvider{
		LineItemRepo:       lineItemRepo,
		PrRepo:             prRepo,
		ReconciliationRepo: reconciliationRepo,
		AuditRepo:          auditRepo,
	}
}
