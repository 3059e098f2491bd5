package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"projects_backend/internal/shared/apperror"
)

const (
	UsersCollection    = "users"
	ProjectsCollection = "projects"
)

// Store holds the single shared client for the life of the process.
// A Store without a client is the degraded mode: every store call
// returns apperror.ErrStoreUnavailable and nothing is dialled.
type Store struct {
	client     *mongo.Client
	db         *mongo.Database
	descriptor string
}

// NewStore wraps client; client may be nil when no descriptor was reachable.
func NewStore(client *mongo.Client, database, descriptor string) *Store {
	s := &Store{client: client, descriptor: descriptor}
	if client != nil {
		s.db = client.Database(database)
	}
	return s
}

// Available reports whether a client was acquired at startup.
func (s *Store) Available() bool {
	return s != nil && s.client != nil
}

// Descriptor names the connection strategy that won, or "" in degraded mode.
func (s *Store) Descriptor() string {
	if !s.Available() {
		return ""
	}
	return s.descriptor
}

// Collection returns the named collection of the configured database.
func (s *Store) Collection(name string) (*mongo.Collection, error) {
	if !s.Available() {
		return nil, apperror.ErrStoreUnavailable
	}
	return s.db.Collection(name), nil
}

// Ping issues a liveness probe against the primary.
func (s *Store) Ping(ctx context.Context) error {
	if !s.Available() {
		return apperror.ErrStoreUnavailable
	}
	return s.client.Ping(ctx, readpref.Primary())
}

// EnsureIndexes creates the unique email index that backs duplicate-registration detection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	users, err := s.Collection(UsersCollection)
	if err != nil {
		return err
	}
	_, err = users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return fmt.Errorf("create users.email index: %w", err)
	}
	return nil
}

// Close disconnects the client. It is a no-op in degraded mode.
func (s *Store) Close(ctx context.Context) error {
	if !s.Available() {
		return nil
	}
	return s.client.Disconnect(ctx)
}
