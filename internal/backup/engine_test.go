package backup_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"art-inventory/internal/backup"
	"art-inventory/internal/domain/works"
	"art-inventory/internal/schema"
	"art-inventory/internal/store"
	"art-inventory/internal/testutil"
)

func newEngine(t *testing.T) (*backup.Engine, *store.Entities) {
	t.Helper()
	entities := store.NewEntities(testutil.DB(t))
	return backup.New(entities), entities
}

func seedArtwork(t *testing.T, entities *store.Entities, code string) works.Artwork {
	t.Helper()
	aw := works.Artwork{InventoryCode: code, Title: "Work " + code, Status: works.StatusAvailable, Visible: true}
	require.NoError(t, entities.DB().Create(&aw).Error)
	return aw
}

func TestExportImportRoundTrip(t *testing.T) {
	src, srcEntities := newEngine(t)
	seedArtwork(t, srcEntities, "INV-1")
	seedArtwork(t, srcEntities, "INV-2")

	snap, err := src.Export(context.Background())
	require.NoError(t, err)
	require.Equal(t, backup.SnapshotVersion, snap.Version)
	require.Len(t, snap.Data, len(schema.Types()))

	dst, dstEntities := newEngine(t)
	summary, err := dst.Import(context.Background(), snap)
	require.NoError(t, err)
	require.Equal(t, 2, summary.Types[schema.Artworks].Succeeded)

	var got []works.Artwork
	require.NoError(t, dstEntities.DB().Order("id").Find(&got).Error)
	require.Len(t, got, 2)
	require.Equal(t, "INV-1", got[0].InventoryCode)
}

func TestImportIsIdempotent(t *testing.T) {
	engine, entities := newEngine(t)
	aw := seedArtwork(t, entities, "INV-1")

	snap, err := engine.Export(context.Background())
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		summary, err := engine.Import(context.Background(), snap)
		require.NoError(t, err)
		require.Equal(t, 1, summary.Types[schema.Artworks].Succeeded)
		require.Equal(t, 0, summary.Types[schema.Artworks].Failed)
	}

	var n int64
	require.NoError(t, entities.DB().Model(&works.Artwork{}).Count(&n).Error)
	require.EqualValues(t, 1, n)

	var got works.Artwork
	require.NoError(t, entities.DB().First(&got, aw.ID).Error)
	require.Equal(t, "INV-1", got.InventoryCode)
}

func TestImportResolvesCrossTableReferences(t *testing.T) {
	engine, entities := newEngine(t)

	snap := &backup.Snapshot{
		Version: backup.SnapshotVersion,
		Data: map[string]json.RawMessage{
			schema.Series:   json.RawMessage(`[{"id": 1, "name": "A"}]`),
			schema.Artworks: json.RawMessage(`[{"id": 9, "series_id": 1, "title": "X"}]`),
		},
	}

	for i := 0; i < 2; i++ {
		_, err := engine.Import(context.Background(), snap)
		require.NoError(t, err)
	}

	var nSeries, nArtworks int64
	require.NoError(t, entities.DB().Model(&works.Series{}).Count(&nSeries).Error)
	require.NoError(t, entities.DB().Model(&works.Artwork{}).Count(&nArtworks).Error)
	require.EqualValues(t, 1, nSeries)
	require.EqualValues(t, 1, nArtworks)

	var a works.Artwork
	require.NoError(t, entities.DB().First(&a, 9).Error)
	require.Equal(t, "X", a.Title)
	require.NotNil(t, a.SeriesID)
	require.EqualValues(t, 1, *a.SeriesID)
}

func TestImportRepairsSequences(t *testing.T) {
	engine, entities := newEngine(t)

	rows, err := json.Marshal([]works.Series{{ID: 9, Name: "Late Works"}})
	require.NoError(t, err)
	snap := &backup.Snapshot{
		Version:   backup.SnapshotVersion,
		Timestamp: time.Now(),
		Data:      map[string]json.RawMessage{schema.Series: rows},
	}

	_, err = engine.Import(context.Background(), snap)
	require.NoError(t, err)

	next := works.Series{Name: "New Works"}
	require.NoError(t, entities.DB().Create(&next).Error)
	require.GreaterOrEqual(t, next.ID, uint(10))
}

func TestImportRejectsBadSnapshots(t *testing.T) {
	engine, _ := newEngine(t)
	ctx := context.Background()

	_, err := engine.Import(ctx, nil)
	require.ErrorIs(t, err, store.ErrInvalidSnapshot)

	_, err = engine.Import(ctx, &backup.Snapshot{Version: backup.SnapshotVersion})
	require.ErrorIs(t, err, store.ErrInvalidSnapshot)

	_, err = engine.Import(ctx, &backup.Snapshot{
		Version: "2.0",
		Data:    map[string]json.RawMessage{},
	})
	require.ErrorIs(t, err, store.ErrInvalidSnapshot)
}

func TestImportToleratesBadRows(t *testing.T) {
	engine, entities := newEngine(t)

	// second row carries a mistyped price and must not sink the first
	raw := json.RawMessage(`[
		{"id": 1, "inventory_code": "INV-1", "title": "One"},
		{"id": 2, "inventory_code": "INV-2", "title": "Two", "price": "lots"}
	]`)
	snap := &backup.Snapshot{
		Version: backup.SnapshotVersion,
		Data:    map[string]json.RawMessage{schema.Artworks: raw},
	}

	summary, err := engine.Import(context.Background(), snap)
	require.NoError(t, err)
	require.Equal(t, 2, summary.Types[schema.Artworks].Attempted)
	require.Equal(t, 1, summary.Types[schema.Artworks].Succeeded)
	require.Equal(t, 1, summary.Types[schema.Artworks].Failed)

	var n int64
	require.NoError(t, entities.DB().Model(&works.Artwork{}).Count(&n).Error)
	require.EqualValues(t, 1, n)
}

func TestImportSkipsUnknownTables(t *testing.T) {
	engine, _ := newEngine(t)

	snap := &backup.Snapshot{
		Version: backup.SnapshotVersion,
		Data: map[string]json.RawMessage{
			"no_such_table": json.RawMessage(`[{"id": 1}]`),
		},
	}

	summary, err := engine.Import(context.Background(), snap)
	require.NoError(t, err)
	require.Empty(t, summary.Types)
}

func TestClearEmptiesEverythingAndResetsIds(t *testing.T) {
	engine, entities := newEngine(t)
	seedArtwork(t, entities, "INV-1")
	seedArtwork(t, entities, "INV-2")

	summary, err := engine.Clear(context.Background())
	require.NoError(t, err)
	require.Empty(t, summary.Failed)
	require.Len(t, summary.Cleared, len(schema.Types()))

	var n int64
	require.NoError(t, entities.DB().Model(&works.Artwork{}).Count(&n).Error)
	require.EqualValues(t, 0, n)

	fresh := seedArtwork(t, entities, "INV-3")
	require.EqualValues(t, 1, fresh.ID)
}
