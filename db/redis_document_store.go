package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// Each document is a JSON string; a sorted set per collection keeps store order.
const REDIS_DOC_KEY_FORMAT = "%s:%s:doc:%s"
const REDIS_COLLECTION_INDEX_KEY_FORMAT = "%s:%s:index"
const REDIS_COLLECTION_SEQ_KEY_FORMAT = "%s:%s:seq"

// RedisDocumentStore implements DocumentStore on top of a go-redis client.
type RedisDocumentStore struct {
	client *redis.Client
}

// NewRedisDocumentStore wraps an already configured client.
func NewRedisDocumentStore(client *redis.Client) *RedisDocumentStore {
	return &RedisDocumentStore{client: client}
}

func docKey(database, collection, docID string) string {
	return fmt.Sprintf(REDIS_DOC_KEY_FORMAT, database, collection, docID)
}

func indexKey(database, collection string) string {
	return fmt.Sprintf(REDIS_COLLECTION_INDEX_KEY_FORMAT, database, collection)
}

func seqKey(database, collection string) string {
	return fmt.Sprintf(REDIS_COLLECTION_SEQ_KEY_FORMAT, database, collection)
}

func (r *RedisDocumentStore) AddDoc(ctx context.Context, database, collection, docID string, data Document) (string, error) {
	if docID == "" {
		docID = uuid.NewString()
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to marshal document %s/%s: %w", collection, docID, err)
	}

	seq, err := r.client.Incr(ctx, seqKey(database, collection)).Result()
	if err != nil {
		return "", fmt.Errorf("failed to allocate sequence for %s: %w", collection, err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, docKey(database, collection, docID), jsonData, 0)
		// NX keeps the original position when a document is replaced.
		pipe.ZAddNX(ctx, indexKey(database, collection), &redis.Z{Score: float64(seq), Member: docID})
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to store document %s/%s: %w", collection, docID, err)
	}

	log.Printf("[RedisDocumentStore] Document stored in %s/%s", collection, docID)
	return docID, nil
}

func (r *RedisDocumentStore) GetDoc(ctx context.Context, database, collection, docID string) (Document, error) {
	data, err := r.client.Get(ctx, docKey(database, collection, docID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrDocNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document %s/%s: %w", collection, docID, err)
	}
	return decodeDocument(data)
}

func (r *RedisDocumentStore) GetAllDocs(ctx context.Context, database, collection string) ([]Document, error) {
	ids, err := r.client.ZRange(ctx, indexKey(database, collection), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list documents of %s: %w", collection, err)
	}

	docs := make([]Document, 0, len(ids))
	if len(ids) == 0 {
		return docs, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = docKey(database, collection, id)
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read documents of %s: %w", collection, err)
	}

	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			// index entry left behind by a document deleted out of band
			log.Printf("[RedisDocumentStore] Skipping member %s: no document", ids[i])
			continue
		}
		doc, err := decodeDocument(s)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (r *RedisDocumentStore) UpdateDoc(ctx context.Context, database, collection, docID string, updates map[string]interface{}) error {
	key := docKey(database, collection, docID)
	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			return ErrDocNotFound
		}
		if err != nil {
			return err
		}
		doc, err := decodeDocument(data)
		if err != nil {
			return err
		}
		jsonData, err := json.Marshal(ApplyUpdate(doc, updates))
		if err != nil {
			return fmt.Errorf("failed to marshal document: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, jsonData, 0)
			return nil
		})
		return err
	}, key)

	if errors.Is(err, ErrDocNotFound) {
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to update document %s/%s: %w", collection, docID, err)
	}
	log.Printf("[RedisDocumentStore] Document updated in %s/%s", collection, docID)
	return nil
}

func (r *RedisDocumentStore) DelDoc(ctx context.Context, database, collection, docID string) (bool, error) {
	var delCmd *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		delCmd = pipe.Del(ctx, docKey(database, collection, docID))
		pipe.ZRem(ctx, indexKey(database, collection), docID)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete document %s/%s: %w", collection, docID, err)
	}
	return delCmd.Val() > 0, nil
}

func (r *RedisDocumentStore) GetDocByQuery(ctx context.Context, database, collection string, queries []Query) ([]Document, error) {
	docs, err := r.GetAllDocs(ctx, database, collection)
	if err != nil {
		return nil, err
	}
	return FilterDocuments(docs, queries)
}

func (r *RedisDocumentStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisDocumentStore) Close(ctx context.Context) error {
	return r.client.Close()
}

func decodeDocument(data string) (Document, error) {
	var doc Document
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document JSON: %w", err)
	}
	return doc, nil
}
