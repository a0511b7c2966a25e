package db_test

import (
	"context"
	"testing"

	"course-server/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDatabase = "courseData"

func TestMockDocumentStore_AddAndGet(t *testing.T) {
	ctx := context.Background()
	store := db.NewMockDocumentStore()

	id, err := store.AddDoc(ctx, testDatabase, "CSCI", "CSCI3100", db.Document{"code": "CSCI3100"})
	require.NoError(t, err)
	assert.Equal(t, "CSCI3100", id)

	doc, err := store.GetDoc(ctx, testDatabase, "CSCI", "CSCI3100")
	require.NoError(t, err)
	assert.Equal(t, "CSCI3100", doc["code"])
}

func TestMockDocumentStore_GeneratesID(t *testing.T) {
	ctx := context.Background()
	store := db.NewMockDocumentStore()

	id, err := store.AddDoc(ctx, testDatabase, "CSCI", "", db.Document{"code": "CSCI1000"})
	require.NoError(t, err)
	assert.Len(t, id, 36)

	_, err = store.GetDoc(ctx, testDatabase, "CSCI", id)
	assert.NoError(t, err)
}

func TestMockDocumentStore_GetDocNotFound(t *testing.T) {
	ctx := context.Background()
	store := db.NewMockDocumentStore()

	_, err := store.GetDoc(ctx, testDatabase, "CSCI", "CSCI9999")
	assert.ErrorIs(t, err, db.ErrDocNotFound)

	_, _ = store.AddDoc(ctx, testDatabase, "CSCI", "CSCI3100", db.Document{})
	_, err = store.GetDoc(ctx, testDatabase, "CSCI", "CSCI9999")
	assert.ErrorIs(t, err, db.ErrDocNotFound)
}

func TestMockDocumentStore_GetAllDocsKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := db.NewMockDocumentStore()

	for _, code := range []string{"CSCI3100", "CSCI1130", "CSCI2100"} {
		_, err := store.AddDoc(ctx, testDatabase, "CSCI", code, db.Document{"code": code})
		require.NoError(t, err)
	}
	// replacing keeps the original position
	_, err := store.AddDoc(ctx, testDatabase, "CSCI", "CSCI3100", db.Document{"code": "CSCI3100", "title": "new"})
	require.NoError(t, err)

	docs, err := store.GetAllDocs(ctx, testDatabase, "CSCI")
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "CSCI3100", docs[0]["code"])
	assert.Equal(t, "new", docs[0]["title"])
	assert.Equal(t, "CSCI1130", docs[1]["code"])
	assert.Equal(t, "CSCI2100", docs[2]["code"])

	empty, err := store.GetAllDocs(ctx, testDatabase, "MATH")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestMockDocumentStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := db.NewMockDocumentStore()
	_, _ = store.AddDoc(ctx, testDatabase, "CSCI", "CSCI3100", db.Document{"title": "original"})

	doc, _ := store.GetDoc(ctx, testDatabase, "CSCI", "CSCI3100")
	doc["title"] = "mutated"

	again, _ := store.GetDoc(ctx, testDatabase, "CSCI", "CSCI3100")
	assert.Equal(t, "original", again["title"])
}

func TestMockDocumentStore_UpdateDoc(t *testing.T) {
	ctx := context.Background()
	store := db.NewMockDocumentStore()
	_, _ = store.AddDoc(ctx, testDatabase, "CSCI", "CSCI3100", db.Document{"title": "old", "units": "3"})

	require.NoError(t, store.UpdateDoc(ctx, testDatabase, "CSCI", "CSCI3100", map[string]interface{}{"title": "new"}))
	doc, _ := store.GetDoc(ctx, testDatabase, "CSCI", "CSCI3100")
	assert.Equal(t, "new", doc["title"])
	assert.Equal(t, "3", doc["units"])

	err := store.UpdateDoc(ctx, testDatabase, "CSCI", "CSCI9999", map[string]interface{}{"title": "x"})
	assert.ErrorIs(t, err, db.ErrDocNotFound)
}

func TestMockDocumentStore_DelDoc(t *testing.T) {
	ctx := context.Background()
	store := db.NewMockDocumentStore()
	_, _ = store.AddDoc(ctx, testDatabase, "CSCI", "CSCI3100", db.Document{})
	_, _ = store.AddDoc(ctx, testDatabase, "CSCI", "CSCI2100", db.Document{})

	deleted, err := store.DelDoc(ctx, testDatabase, "CSCI", "CSCI3100")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = store.DelDoc(ctx, testDatabase, "CSCI", "CSCI3100")
	require.NoError(t, err)
	assert.False(t, deleted)

	docs, _ := store.GetAllDocs(ctx, testDatabase, "CSCI")
	assert.Len(t, docs, 1)
}

func TestMockDocumentStore_GetDocByQuery(t *testing.T) {
	ctx := context.Background()
	store := db.NewMockDocumentStore()
	_, _ = store.AddDoc(ctx, testDatabase, "CSCI", "CSCI3100", db.Document{"code": "CSCI3100", "units": "3", "career": "Undergraduate"})
	_, _ = store.AddDoc(ctx, testDatabase, "CSCI", "CSCI5030", db.Document{"code": "CSCI5030", "units": "3", "career": "Postgraduate"})
	_, _ = store.AddDoc(ctx, testDatabase, "CSCI", "CSCI1130", db.Document{"code": "CSCI1130", "units": "2", "career": "Undergraduate"})

	docs, err := store.GetDocByQuery(ctx, testDatabase, "CSCI", []db.Query{
		{Field: "units", Operator: db.OpEqual, Value: "3"},
		{Field: "career", Operator: db.OpEqual, Value: "Undergraduate"},
	})

	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "CSCI3100", docs[0]["code"])
}
