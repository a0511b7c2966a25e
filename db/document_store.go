package db

import (
	"context"
	"errors"
)

// ErrDocNotFound is returned when a document id has no stored document.
var ErrDocNotFound = errors.New("document not found")

// Document is a raw stored record. Values are whatever the backend decoded:
// strings, float64/int numbers, []interface{}, nested Documents, time.Time.
type Document = map[string]interface{}

// DocumentStore addresses documents by (database, collection, document id)
// or by collection plus an AND chain of predicates.
type DocumentStore interface {
	// AddDoc creates or replaces a document. An empty docID generates one.
	AddDoc(ctx context.Context, database, collection, docID string, data Document) (string, error)
	GetDoc(ctx context.Context, database, collection, docID string) (Document, error)
	// GetAllDocs returns every document of the collection in store order.
	GetAllDocs(ctx context.Context, database, collection string) ([]Document, error)
	// UpdateDoc sets the given fields; keys may be dotted paths ("assessments.Exam").
	UpdateDoc(ctx context.Context, database, collection, docID string, updates map[string]interface{}) error
	// DelDoc reports whether a document was removed.
	DelDoc(ctx context.Context, database, collection, docID string) (bool, error)
	GetDocByQuery(ctx context.Context, database, collection string, queries []Query) ([]Document, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
