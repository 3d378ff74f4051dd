package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// TxnRunner wraps a unit of work in a transaction so the judge can create a
// solve and its accepted submission atomically.
type TxnRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type mongoTxnRunner struct {
	client *mongo.Client
}

// NewTxnRunner creates a mongo-backed transaction runner. Requires the
// server to be a replica set, as multi-document transactions do.
func NewTxnRunner(client *mongo.Client) TxnRunner {
	return &mongoTxnRunner{client: client}
}

func (r *mongoTxnRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
