package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var mongoOperators = map[string]string{
	OpEqual:        "$eq",
	OpNotEqual:     "$ne",
	OpLess:         "$lt",
	OpLessEqual:    "$lte",
	OpGreater:      "$gt",
	OpGreaterEqual: "$gte",
	OpIn:           "$in",
	OpNotIn:        "$nin",
}

// MongoDocumentStore implements DocumentStore with one Mongo collection per
// store collection. The document id is kept in _id and stripped on read.
type MongoDocumentStore struct {
	client *mongo.Client
}

// ConnectMongoDB opens a client and verifies it with a primary ping.
func ConnectMongoDB(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	log.Println("Connected to MongoDB")
	return client, nil
}

func NewMongoDocumentStore(client *mongo.Client) *MongoDocumentStore {
	return &MongoDocumentStore{client: client}
}

func (s *MongoDocumentStore) collection(database, collection string) *mongo.Collection {
	return s.client.Database(database).Collection(collection)
}

func (s *MongoDocumentStore) AddDoc(ctx context.Context, database, collection, docID string, data Document) (string, error) {
	if docID == "" {
		docID = uuid.NewString()
	}

	doc := bson.M{}
	for k, v := range data {
		doc[k] = v
	}
	doc["_id"] = docID

	_, err := s.collection(database, collection).ReplaceOne(ctx, bson.M{"_id": docID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return "", fmt.Errorf("failed to store document %s/%s: %w", collection, docID, err)
	}
	log.Printf("[MongoDocumentStore] Document stored in %s/%s", collection, docID)
	return docID, nil
}

func (s *MongoDocumentStore) GetDoc(ctx context.Context, database, collection, docID string) (Document, error) {
	var doc bson.M
	err := s.collection(database, collection).FindOne(ctx, bson.M{"_id": docID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrDocNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document %s/%s: %w", collection, docID, err)
	}
	return fromBSON(doc), nil
}

func (s *MongoDocumentStore) GetAllDocs(ctx context.Context, database, collection string) ([]Document, error) {
	return s.find(ctx, database, collection, bson.D{})
}

func (s *MongoDocumentStore) UpdateDoc(ctx context.Context, database, collection, docID string, updates map[string]interface{}) error {
	set := bson.M{}
	for k, v := range updates {
		set[k] = v
	}
	res, err := s.collection(database, collection).UpdateOne(ctx, bson.M{"_id": docID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update document %s/%s: %w", collection, docID, err)
	}
	if res.MatchedCount == 0 {
		return ErrDocNotFound
	}
	log.Printf("[MongoDocumentStore] Document updated in %s/%s", collection, docID)
	return nil
}

func (s *MongoDocumentStore) DelDoc(ctx context.Context, database, collection, docID string) (bool, error) {
	res, err := s.collection(database, collection).DeleteOne(ctx, bson.M{"_id": docID})
	if err != nil {
		return false, fmt.Errorf("failed to delete document %s/%s: %w", collection, docID, err)
	}
	return res.DeletedCount > 0, nil
}

func (s *MongoDocumentStore) GetDocByQuery(ctx context.Context, database, collection string, queries []Query) ([]Document, error) {
	filter, err := mongoFilter(queries)
	if err != nil {
		return nil, err
	}
	return s.find(ctx, database, collection, filter)
}

func (s *MongoDocumentStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *MongoDocumentStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoDocumentStore) find(ctx context.Context, database, collection string, filter bson.D) ([]Document, error) {
	cursor, err := s.collection(database, collection).Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	var raw []bson.M
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode documents of %s: %w", collection, err)
	}

	docs := make([]Document, 0, len(raw))
	for _, doc := range raw {
		docs = append(docs, fromBSON(doc))
	}
	return docs, nil
}

// mongoFilter turns the AND chain into a single $and filter.
func mongoFilter(queries []Query) (bson.D, error) {
	if len(queries) == 0 {
		return bson.D{}, nil
	}

	conditions := bson.A{}
	for _, q := range queries {
		if err := q.Validate(); err != nil {
			return nil, err
		}

		var cond bson.M
		switch q.Operator {
		case OpArrayContains:
			cond = bson.M{"$all": bson.A{q.Value}}
		case OpIn, OpNotIn:
			values, _ := toSlice(q.Value)
			cond = bson.M{mongoOperators[q.Operator]: bson.A(values)}
		default:
			cond = bson.M{mongoOperators[q.Operator]: q.Value}
		}
		if q.Operator == OpNotEqual || q.Operator == OpNotIn {
			cond["$exists"] = true
		}
		conditions = append(conditions, bson.M{q.Field: cond})
	}
	return bson.D{{Key: "$and", Value: conditions}}, nil
}

func fromBSON(doc bson.M) Document {
	out := make(Document, len(doc))
	for k, v := range doc {
		if k == "_id" {
			continue
		}
		out[k] = plainValue(v)
	}
	return out
}

// plainValue replaces driver container types with plain maps and slices so the
// rest of the service sees the same shapes as the JSON-backed stores.
func plainValue(v interface{}) interface{} {
	switch t := v.(type) {
	case primitive.M:
		out := make(map[string]interface{}, len(t))
		for k, e := range t {
			out[k] = plainValue(e)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, e := range t {
			out[k] = plainValue(e)
		}
		return out
	case primitive.D:
		out := make(map[string]interface{}, len(t))
		for _, e := range t {
			out[e.Key] = plainValue(e.Value)
		}
		return out
	case primitive.A:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = plainValue(e)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = plainValue(e)
		}
		return out
	case primitive.DateTime:
		return t.Time().UTC()
	case primitive.ObjectID:
		return t.Hex()
	}
	return v
}
