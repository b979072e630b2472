package database

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

// Transactor runs a function inside a multi-document transaction.  The
// context handed to fn carries the session, so repository calls made with
// it join the transaction.  Requires a replica set or mongos.
type Transactor struct {
	client *mongo.Client
}

func NewTransactor(client *mongo.Client) *Transactor { return &Transactor{client: client} }

// WithTransaction commits when fn returns nil and aborts otherwise.  The
// driver retries fn on transient transaction errors.
func (t *Transactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := t.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	opts := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority())
	_, err = session.WithTransaction(ctx, func(sctx mongo.SessionContext) (any, error) {
		return nil, fn(sctx)
	}, opts)
	return err
}
