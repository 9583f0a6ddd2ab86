package store_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"art-inventory/internal/domain/works"
	"art-inventory/internal/schema"
	"art-inventory/internal/store"
	"art-inventory/internal/testutil"
)

func TestUpsertInsertsThenOverwrites(t *testing.T) {
	db := testutil.DB(t)
	entities := store.NewEntities(db)
	ctx := context.Background()

	row := &works.Series{ID: 5, Name: "Blue Period", Description: "first"}
	require.NoError(t, entities.Upsert(ctx, nil, row))

	// same id, every column replaced
	row2 := &works.Series{ID: 5, Name: "Blue Period", Description: "second"}
	require.NoError(t, entities.Upsert(ctx, nil, row2))

	var got works.Series
	require.NoError(t, db.First(&got, 5).Error)
	require.Equal(t, "second", got.Description)

	n, err := entities.Count(ctx, schema.Series)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}

func TestUpsertIsIdempotent(t *testing.T) {
	db := testutil.DB(t)
	entities := store.NewEntities(db)
	ctx := context.Background()

	row := &works.Artwork{ID: 9, InventoryCode: "INV-9", Title: "X", Status: works.StatusAvailable}
	for i := 0; i < 3; i++ {
		require.NoError(t, entities.Upsert(ctx, nil, &works.Artwork{
			ID: 9, InventoryCode: "INV-9", Title: "X", Status: works.StatusAvailable,
		}))
	}

	n, err := entities.Count(ctx, schema.Artworks)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	var got works.Artwork
	require.NoError(t, db.First(&got, row.ID).Error)
	require.Equal(t, "INV-9", got.InventoryCode)
}

func TestResetSequenceAdvancesIDs(t *testing.T) {
	db := testutil.DB(t)
	entities := store.NewEntities(db)
	ctx := context.Background()

	require.NoError(t, entities.Upsert(ctx, nil, &works.Series{ID: 57, Name: "Late Works"}))

	maxID, err := entities.MaxID(ctx, schema.Series)
	require.NoError(t, err)
	require.EqualValues(t, 57, maxID)

	require.NoError(t, entities.ResetSequence(ctx, schema.Series, maxID+1))

	next := works.Series{Name: "After Restore"}
	require.NoError(t, db.Create(&next).Error)
	require.GreaterOrEqual(t, next.ID, uint(58))
}

func TestDecodeRowsUsesStaticSchema(t *testing.T) {
	entities := store.NewEntities(testutil.DB(t))

	raw := json.RawMessage(`[{"id":1,"name":"A","bogus_column":"ignored"}]`)
	rows, err := entities.DecodeRows(schema.Series, raw)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	s, ok := rows[0].(*works.Series)
	require.True(t, ok)
	require.EqualValues(t, 1, s.ID)
	require.Equal(t, "A", s.Name)

	// mistyped values fail the decode instead of reaching the database
	_, err = entities.DecodeRows(schema.Series, json.RawMessage(`[{"id":"not-a-number"}]`))
	require.Error(t, err)

	_, err = entities.DecodeRows("no_such_table", raw)
	require.ErrorIs(t, err, store.ErrUnknownEntity)
}

func TestDeleteAllAndCount(t *testing.T) {
	db := testutil.DB(t)
	entities := store.NewEntities(db)
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, db.Create(&works.Series{Name: name}).Error)
	}
	n, err := entities.Count(ctx, schema.Series)
	require.NoError(t, err)
	require.EqualValues(t, 3, n)

	require.NoError(t, entities.DeleteAll(ctx, schema.Series))
	n, err = entities.Count(ctx, schema.Series)
	require.NoError(t, err)
	require.Zero(t, n)
}
