package db

import (
	"context"
	"os"
	"testing"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisKeys(t *testing.T) {
	assert.Equal(t, "courseData:CSCI:doc:CSCI3100", docKey("courseData", "CSCI", "CSCI3100"))
	assert.Equal(t, "courseData:CSCI:index", indexKey("courseData", "CSCI"))
	assert.Equal(t, "courseData:CSCI:seq", seqKey("courseData", "CSCI"))
}

// Runs against a real server only when REDIS_TEST_ADDRESS is set.
func TestRedisDocumentStore_Integration(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDRESS")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDRESS not set")
	}

	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	store := NewRedisDocumentStore(client)
	defer store.Close(ctx)
	require.NoError(t, store.Ping(ctx))

	database := "courseDataTest"
	defer client.FlushDB(ctx)

	_, err := store.AddDoc(ctx, database, "CSCI", "CSCI3100", Document{"code": "CSCI3100", "units": "3"})
	require.NoError(t, err)
	_, err = store.AddDoc(ctx, database, "CSCI", "CSCI1130", Document{"code": "CSCI1130", "units": "2"})
	require.NoError(t, err)

	doc, err := store.GetDoc(ctx, database, "CSCI", "CSCI3100")
	require.NoError(t, err)
	assert.Equal(t, "CSCI3100", doc["code"])

	_, err = store.GetDoc(ctx, database, "CSCI", "CSCI9999")
	assert.ErrorIs(t, err, ErrDocNotFound)

	docs, err := store.GetAllDocs(ctx, database, "CSCI")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "CSCI3100", docs[0]["code"])

	require.NoError(t, store.UpdateDoc(ctx, database, "CSCI", "CSCI1130", map[string]interface{}{"units": "3"}))
	matched, err := store.GetDocByQuery(ctx, database, "CSCI", []Query{{Field: "units", Operator: OpEqual, Value: "3"}})
	require.NoError(t, err)
	assert.Len(t, matched, 2)

	deleted, err := store.DelDoc(ctx, database, "CSCI", "CSCI3100")
	require.NoError(t, err)
	assert.True(t, deleted)
}
