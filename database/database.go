package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"portfolio-backend/errs"
)

// Connect opens a connection to the document store and verifies it with a
// ping. The caller owns the client and should call Disconnect on shutdown.
func Connect(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

type Database struct {
	client      *mongo.Client
	projectRepo *ProjectRepo
}

// New initializes a new Database struct with each repository using a shared client
func New(client *mongo.Client, dbName string) Database {
	db := client.Database(dbName)
	return Database{
		client:      client,
		projectRepo: NewProjectRepo(db.Collection("projects")),
	}
}

// Unavailable returns a Database whose every operation fails with the
// database-connection sentinel. Installed when a production deployment
// continues serving after a failed connect instead of exiting.
func Unavailable() Database {
	return Database{projectRepo: NewProjectRepo(nil)}
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

// Ping reports whether the underlying connection is live.
func (d Database) Ping(ctx context.Context) error {
	if d.client == nil {
		return errs.ErrDatabaseConnection
	}
	return d.client.Ping(ctx, readpref.Primary())
}

func (d Database) Disconnect(ctx context.Context) error {
	if d.client == nil {
		return nil
	}
	return d.client.Disconnect(ctx)
}
