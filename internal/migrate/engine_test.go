package migrate_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"art-inventory/internal/domain/shows"
	"art-inventory/internal/domain/works"
	"art-inventory/internal/migrate"
	"art-inventory/internal/store"
	"art-inventory/internal/testutil"
)

func newEngine(t *testing.T) (*migrate.Engine, *store.Entities, *testutil.MemObjectStore) {
	t.Helper()
	entities := store.NewEntities(testutil.DB(t))
	objects := testutil.NewMemObjectStore()
	return migrate.New(entities, objects), entities, objects
}

func legacyArtwork(id int64, code string, images ...migrate.LegacyAsset) migrate.LegacyArtwork {
	return migrate.LegacyArtwork{
		ID:            id,
		InventoryCode: code,
		Title:         "Work " + code,
		Status:        works.StatusAvailable,
		Visible:       true,
		Images:        images,
	}
}

func TestRunUploadsSharedAssetOnce(t *testing.T) {
	engine, entities, objects := newEngine(t)

	shared := migrate.LegacyAsset{Ref: "blob-1", FileName: "a.jpg", MimeType: "image/jpeg", Data: []byte("x")}
	dump := &migrate.LegacyDump{
		Artworks: []migrate.LegacyArtwork{
			legacyArtwork(1, "INV-1", shared),
			legacyArtwork(2, "INV-2", shared),
		},
	}

	summary, err := engine.Run(context.Background(), dump, nil)
	require.NoError(t, err)
	require.True(t, summary.Success)
	require.Equal(t, 1, summary.Assets.Done)
	require.Equal(t, 1, objects.Uploads)

	var links []works.ArtworkImage
	require.NoError(t, entities.DB().Find(&links).Error)
	require.Len(t, links, 2)
	require.Equal(t, links[0].ImageID, links[1].ImageID)
}

func TestRunToleratesPerRecordFailures(t *testing.T) {
	engine, entities, _ := newEngine(t)

	dump := &migrate.LegacyDump{}
	for i := 1; i <= 10; i++ {
		code := fmt.Sprintf("INV-%d", i)
		if i == 5 {
			// duplicate business key, rejected by the unique index
			code = "INV-4"
		}
		dump.Artworks = append(dump.Artworks, legacyArtwork(int64(i), code))
	}

	summary, err := engine.Run(context.Background(), dump, nil)
	require.NoError(t, err)
	require.True(t, summary.Success)
	require.Equal(t, 10, summary.Artworks.Total)
	require.Equal(t, 9, summary.Artworks.Done)
	require.Equal(t, 1, summary.Artworks.Failed)

	// the works after the bad one still landed
	var got works.Artwork
	require.NoError(t, entities.DB().First(&got, "inventory_code = ?", "INV-10").Error)
}

func TestRunRemapsExhibitionLinks(t *testing.T) {
	engine, entities, _ := newEngine(t)

	dump := &migrate.LegacyDump{
		Artworks: []migrate.LegacyArtwork{
			legacyArtwork(100, "INV-A"),
			{ID: 101, Title: "missing inventory code"}, // fails validation
		},
		Exhibitions: []migrate.LegacyExhibition{
			{ID: 7, Name: "Spring Show", ArtworkIDs: []int64{100, 101}},
		},
	}

	summary, err := engine.Run(context.Background(), dump, nil)
	require.NoError(t, err)
	require.Equal(t, 1, summary.Artworks.Failed)
	require.Equal(t, 1, summary.Exhibitions.Done)

	var aw works.Artwork
	require.NoError(t, entities.DB().First(&aw, "inventory_code = ?", "INV-A").Error)

	// only the surviving work is linked, by its new id
	var links []shows.ArtworkExhibition
	require.NoError(t, entities.DB().Find(&links).Error)
	require.Len(t, links, 1)
	require.Equal(t, aw.ID, links[0].ArtworkID)
}

func TestRunDropsUnmappedImageRefs(t *testing.T) {
	engine, entities, objects := newEngine(t)
	objects.FailName["broken.jpg"] = true

	dump := &migrate.LegacyDump{
		Artworks: []migrate.LegacyArtwork{
			legacyArtwork(1, "INV-1",
				migrate.LegacyAsset{Ref: "good", FileName: "ok.jpg", Data: []byte("x")},
				migrate.LegacyAsset{Ref: "bad", FileName: "broken.jpg", Data: []byte("y")},
			),
		},
	}

	summary, err := engine.Run(context.Background(), dump, nil)
	require.NoError(t, err)
	require.True(t, summary.Success)
	require.Equal(t, 1, summary.Assets.Done)
	require.Equal(t, 1, summary.Assets.Failed)
	require.Equal(t, 1, summary.Artworks.Done)

	// the work kept its one good image instead of failing outright
	var links []works.ArtworkImage
	require.NoError(t, entities.DB().Find(&links).Error)
	require.Len(t, links, 1)
	require.True(t, links[0].IsPrimary)
}

type blockingObjectStore struct {
	*testutil.MemObjectStore
	entered chan struct{}
	release chan struct{}
}

func (b *blockingObjectStore) Upload(ctx context.Context, data []byte, filename, mime string) (store.ObjectInfo, error) {
	close(b.entered)
	<-b.release
	return b.MemObjectStore.Upload(ctx, data, filename, mime)
}

func TestRunRejectsConcurrentStart(t *testing.T) {
	entities := store.NewEntities(testutil.DB(t))
	objects := &blockingObjectStore{
		MemObjectStore: testutil.NewMemObjectStore(),
		entered:        make(chan struct{}),
		release:        make(chan struct{}),
	}
	engine := migrate.New(entities, objects)

	dump := &migrate.LegacyDump{
		Artworks: []migrate.LegacyArtwork{
			legacyArtwork(1, "INV-1", migrate.LegacyAsset{Ref: "r", FileName: "a.jpg", Data: []byte("x")}),
		},
	}

	done := make(chan error, 1)
	go func() {
		_, err := engine.Run(context.Background(), dump, nil)
		done <- err
	}()

	<-objects.entered
	require.True(t, engine.Status().Running)

	_, err := engine.Run(context.Background(), dump, nil)
	require.ErrorIs(t, err, store.ErrAlreadyInProgress)

	close(objects.release)
	require.NoError(t, <-done)
	require.False(t, engine.Status().Running)
}

func TestRunReportsProgress(t *testing.T) {
	engine, _, _ := newEngine(t)

	dump := &migrate.LegacyDump{
		Artworks: []migrate.LegacyArtwork{
			legacyArtwork(1, "INV-1", migrate.LegacyAsset{Ref: "r", FileName: "a.jpg", Data: []byte("x")}),
		},
		Exhibitions: []migrate.LegacyExhibition{{ID: 1, Name: "Solo"}},
	}

	var stages []string
	_, err := engine.Run(context.Background(), dump, func(p migrate.Progress) {
		stages = append(stages, p.Stage)
	})
	require.NoError(t, err)
	require.Equal(t, []string{"assets", "artworks", "exhibitions"}, stages)
}

// A work whose transaction rolls back on its last statement must not end up
// referenced by an exhibition, even though the work row itself was created
// inside the transaction.
func TestRunNeverLinksRolledBackWorks(t *testing.T) {
	entities := store.NewEntities(testutil.DB(t))
	objects := &blockingObjectStore{
		MemObjectStore: testutil.NewMemObjectStore(),
		entered:        make(chan struct{}),
		release:        make(chan struct{}),
	}
	engine := migrate.New(entities, objects)

	dump := &migrate.LegacyDump{
		Artworks: []migrate.LegacyArtwork{
			legacyArtwork(1, "INV-1", migrate.LegacyAsset{Ref: "r", FileName: "a.jpg", Data: []byte("x")}),
			legacyArtwork(2, "INV-2"),
		},
		Exhibitions: []migrate.LegacyExhibition{
			{ID: 7, Name: "Spring Show", ArtworkIDs: []int64{1, 2}},
		},
	}

	type result struct {
		summary *migrate.Summary
		err     error
	}
	done := make(chan result, 1)
	go func() {
		summary, err := engine.Run(context.Background(), dump, nil)
		done <- result{summary, err}
	}()

	// while the upload is in flight, break the link table so INV-1's
	// transaction fails after its artwork row was already inserted
	<-objects.entered
	require.NoError(t, entities.DB().Exec("DROP TABLE artwork_images").Error)
	close(objects.release)

	res := <-done
	require.NoError(t, res.err)
	summary := res.summary
	require.Equal(t, 1, summary.Artworks.Done)
	require.Equal(t, 1, summary.Artworks.Failed)

	// the rollback took the artwork row with it
	var n int64
	require.NoError(t, entities.DB().Model(&works.Artwork{}).Where("inventory_code = ?", "INV-1").Count(&n).Error)
	require.Zero(t, n)

	// the exhibition landed, linked only to the committed work
	var aw works.Artwork
	require.NoError(t, entities.DB().First(&aw, "inventory_code = ?", "INV-2").Error)
	var links []shows.ArtworkExhibition
	require.NoError(t, entities.DB().Find(&links).Error)
	require.Len(t, links, 1)
	require.Equal(t, aw.ID, links[0].ArtworkID)
}
