// Package storage binds the engine to its remote document store: a
// MongoDB-backed document layer plus the per-principal scoped key-value
// adapter the session orchestrator persists through.
package storage

import (
	"context"
	"errors"
	"fmt"

	"financewise/engine/appcontext"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ---- Abstractions for Testability ----

// DocumentStore is the remote document store contract: documents
// addressed by an id support read, merge-write, and delete. There is no
// ordering guarantee across documents and no transaction spans them.
type DocumentStore interface {
	Read(ctx context.Context, id string) (bson.Raw, bool, error)
	Write(ctx context.Context, id string, fields bson.M) error
	Delete(ctx context.Context, id string) error
}

// MongoClient is the slice of the driver's client the store needs. Tests
// substitute it to build a MongoStore without a live connection.
type MongoClient interface {
	Disconnect(ctx context.Context) error
	Database(name string, opts ...*options.DatabaseOptions) *mongo.Database
}

type mongoClientWrapper struct {
	*mongo.Client
}

// NewMongoClient adapts a connected driver client to MongoClient.
func NewMongoClient(client *mongo.Client) MongoClient {
	return &mongoClientWrapper{client}
}

// MongoStore implements DocumentStore on a single MongoDB collection,
// keying every document by its path string.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore creates a MongoStore over the given database and collection.
func NewMongoStore(client MongoClient, database, collection string) *MongoStore {
	return &MongoStore{coll: client.Database(database).Collection(collection)}
}

// Read fetches one document by id. A missing document is not an error.
func (s *MongoStore) Read(ctx context.Context, id string) (bson.Raw, bool, error) {
	var doc bson.Raw
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read document %s: %w", id, err)
	}

	return doc, true, nil
}

// Write upserts the given fields into the document with merge semantics:
// sibling fields already present are preserved.
func (s *MongoStore) Write(ctx context.Context, id string, fields bson.M) error {
	_, err := s.coll.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to write document %s: %w", id, err)
	}

	return nil
}

// Delete removes one document. Deleting a missing document is not an error.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete document %s: %w", id, err)
	}

	return nil
}

// ConnectToMongoDB establishes a connection to MongoDB.
func ConnectToMongoDB(ctx context.Context, uri string) (*mongo.Client, error) {
	logger := appcontext.LoggerFromContext(ctx)
	logger.DebugContext(ctx, "Attempting to connect to MongoDB", "uri", uri)

	clientOptions := options.Client().ApplyURI(uri)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	err = client.Ping(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logger.InfoContext(ctx, "Successfully established connection to MongoDB")
	return client, nil
}
