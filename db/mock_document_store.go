package db

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
)

// MockDocumentStore keeps documents in memory. Collections remember insertion order.
type MockDocumentStore struct {
	mu          sync.RWMutex
	collections map[string]*mockCollection
}

type mockCollection struct {
	ids  []string
	docs map[string]Document
}

// NewMockDocumentStore initializes an empty MockDocumentStore.
func NewMockDocumentStore() *MockDocumentStore {
	return &MockDocumentStore{collections: make(map[string]*mockCollection)}
}

func mockCollectionKey(database, collection string) string {
	return fmt.Sprintf("%s/%s", database, collection)
}

func (m *MockDocumentStore) collection(database, collection string, create bool) *mockCollection {
	key := mockCollectionKey(database, collection)
	c, ok := m.collections[key]
	if !ok && create {
		c = &mockCollection{docs: make(map[string]Document)}
		m.collections[key] = c
	}
	return c
}

func (m *MockDocumentStore) AddDoc(ctx context.Context, database, collection, docID string, data Document) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if docID == "" {
		docID = uuid.NewString()
	}
	c := m.collection(database, collection, true)
	if _, exists := c.docs[docID]; !exists {
		c.ids = append(c.ids, docID)
	}
	c.docs[docID] = CopyDocument(data)
	return docID, nil
}

func (m *MockDocumentStore) GetDoc(ctx context.Context, database, collection, docID string) (Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c := m.collection(database, collection, false)
	if c == nil {
		return nil, ErrDocNotFound
	}
	doc, ok := c.docs[docID]
	if !ok {
		return nil, ErrDocNotFound
	}
	return CopyDocument(doc), nil
}

func (m *MockDocumentStore) GetAllDocs(ctx context.Context, database, collection string) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	docs := []Document{}
	c := m.collection(database, collection, false)
	if c == nil {
		return docs, nil
	}
	for _, id := range c.ids {
		docs = append(docs, CopyDocument(c.docs[id]))
	}
	return docs, nil
}

func (m *MockDocumentStore) UpdateDoc(ctx context.Context, database, collection, docID string, updates map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.collection(database, collection, false)
	if c == nil {
		return ErrDocNotFound
	}
	doc, ok := c.docs[docID]
	if !ok {
		return ErrDocNotFound
	}
	c.docs[docID] = ApplyUpdate(doc, updates)
	return nil
}

func (m *MockDocumentStore) DelDoc(ctx context.Context, database, collection, docID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.collection(database, collection, false)
	if c == nil {
		return false, nil
	}
	if _, ok := c.docs[docID]; !ok {
		return false, nil
	}
	delete(c.docs, docID)
	for i, id := range c.ids {
		if id == docID {
			c.ids = append(c.ids[:i], c.ids[i+1:]...)
			break
		}
	}
	return true, nil
}

func (m *MockDocumentStore) GetDocByQuery(ctx context.Context, database, collection string, queries []Query) ([]Document, error) {
	docs, err := m.GetAllDocs(ctx, database, collection)
	if err != nil {
		return nil, err
	}
	return FilterDocuments(docs, queries)
}

func (m *MockDocumentStore) Ping(ctx context.Context) error {
	log.Println("MockDocumentStore: Ping successful")
	return nil
}

func (m *MockDocumentStore) Close(ctx context.Context) error {
	return nil
}
