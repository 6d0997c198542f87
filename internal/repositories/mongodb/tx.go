package mongodb

import (
	"context"

	"fleetdesk/internal/repositories/interfaces"
	"fleetdesk/pkg/database"

	"go.mongodb.org/mongo-driver/mongo"
)

type transactionManager struct {
	db *database.MongoDB
}

// NewTransactionManager wraps the mongo session API so callers can run a
// multi-write sequence atomically. mongo.SessionContext satisfies
// context.Context, so the repositories work unchanged inside fn.
func NewTransactionManager(db *database.MongoDB) interfaces.TransactionManager {
	return &transactionManager{db: db}
}

func (t *transactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	_, err := t.db.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx)
	})
	if err != nil {
		return wrapStoreErr("transaction failed", err)
	}
	return nil
}
