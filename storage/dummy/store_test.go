package dummystore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnogodumalon/kurs96/core/record"
)

func TestStoreCRUD(t *testing.T) {
	db := Open()
	ctx := context.Background()

	recs, err := db.List(ctx, "appA")
	require.NoError(t, err)
	assert.Empty(t, recs)

	rec, err := db.Create(ctx, "appA", map[string]interface{}{"name": "Dr. Anna Weber"})
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)

	got, err := db.Get(ctx, "appA", rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dr. Anna Weber", got.Fields["name"])

	// apps are isolated
	_, err = db.Get(ctx, "appB", rec.ID)
	assert.ErrorIs(t, err, record.ErrNotFound)

	require.NoError(t, db.Update(ctx, "appA", rec.ID, map[string]interface{}{"name": "X"}))
	got, err = db.Get(ctx, "appA", rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "X", got.Fields["name"])

	require.NoError(t, db.Delete(ctx, "appA", rec.ID))
	assert.ErrorIs(t, db.Delete(ctx, "appA", rec.ID), record.ErrNotFound)
}

func TestStoreCopiesFields(t *testing.T) {
	db := Open()
	ctx := context.Background()

	fields := map[string]interface{}{"name": "original"}
	rec, err := db.Create(ctx, "appA", fields)
	require.NoError(t, err)

	// mutating the caller's map must not leak into the store
	fields["name"] = "mutated"
	got, err := db.Get(ctx, "appA", rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", got.Fields["name"])

	// nor must mutating a returned record
	got.Fields["name"] = "mutated again"
	got, err = db.Get(ctx, "appA", rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", got.Fields["name"])
}
