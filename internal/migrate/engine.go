package migrate

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"gorm.io/gorm"

	"art-inventory/internal/domain/media"
	"art-inventory/internal/domain/shows"
	"art-inventory/internal/domain/works"
	"art-inventory/internal/store"
	"art-inventory/pkg/log"
)

// ClassProgress counts one entity class: how many units were discovered, how
// many landed, how many were skipped after a per-record failure.
type ClassProgress struct {
	Total  int `json:"total"`
	Done   int `json:"done"`
	Failed int `json:"failed"`
}

// Status is a snapshot of a run's counters, safe to poll while the engine is
// working.
type Status struct {
	Running      bool          `json:"running"`
	Assets       ClassProgress `json:"assets"`
	Artworks     ClassProgress `json:"artworks"`
	DigitalWorks ClassProgress `json:"digital_works"`
	Exhibitions  ClassProgress `json:"exhibitions"`
}

// Progress is emitted after each completed unit of work.
type Progress struct {
	Stage string `json:"stage"`
	Item  string `json:"item"`
}

// Summary is the final report of one run. Success is false only for
// structural failures; per-record shortfalls show up in the class counters.
type Summary struct {
	Success      bool          `json:"success"`
	Assets       ClassProgress `json:"assets"`
	Artworks     ClassProgress `json:"artworks"`
	DigitalWorks ClassProgress `json:"digital_works"`
	Exhibitions  ClassProgress `json:"exhibitions"`
}

// Engine performs the one-shot legacy migration. At most one run per process
// may be in flight; concurrent starts fail fast with ErrAlreadyInProgress.
type Engine struct {
	entities *store.Entities
	objects  store.ObjectStore

	running atomic.Bool
	mu      sync.Mutex
	status  Status
}

func New(entities *store.Entities, objects store.ObjectStore) *Engine {
	return &Engine{entities: entities, objects: objects}
}

// Status returns a copy of the current counters.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

func (e *Engine) update(fn func(s *Status)) {
	e.mu.Lock()
	fn(&e.status)
	e.mu.Unlock()
}

// Run migrates the dump. Asset uploads come first, since works reference
// them; works are created next with their image references remapped, and
// exhibitions last with their work references remapped. A failed record is
// logged, counted and skipped — the batch keeps going.
func (e *Engine) Run(ctx context.Context, dump *LegacyDump, onProgress func(Progress)) (*Summary, error) {
	if !e.running.CompareAndSwap(false, true) {
		return nil, store.ErrAlreadyInProgress
	}
	defer e.running.Store(false)

	if onProgress == nil {
		onProgress = func(Progress) {}
	}

	// cheap reachability probe; an unreachable destination fails the whole
	// run before anything is written
	if err := e.entities.DB().WithContext(ctx).Exec("SELECT 1").Error; err != nil {
		return &Summary{Success: false}, err
	}

	assetRefs := collectAssetRefs(dump)
	e.update(func(s *Status) {
		*s = Status{Running: true}
		s.Assets.Total = len(assetRefs)
		s.Artworks.Total = len(dump.Artworks)
		s.DigitalWorks.Total = len(dump.DigitalWorks)
		s.Exhibitions.Total = len(dump.Exhibitions)
	})
	defer e.update(func(s *Status) { s.Running = false })

	imageIDs := e.migrateAssets(ctx, assetRefs, onProgress)
	if err := ctx.Err(); err != nil {
		return e.summary(false), err
	}

	artworkIDs := e.migrateArtworks(ctx, dump.Artworks, imageIDs, onProgress)
	if err := ctx.Err(); err != nil {
		return e.summary(false), err
	}

	digitalIDs := e.migrateDigitalWorks(ctx, dump.DigitalWorks, imageIDs, onProgress)
	if err := ctx.Err(); err != nil {
		return e.summary(false), err
	}

	e.migrateExhibitions(ctx, dump.Exhibitions, artworkIDs, digitalIDs, onProgress)

	return e.summary(true), nil
}

// collectAssetRefs walks every image attached to any work and keeps the
// first asset seen per legacy ref, in discovery order.
func collectAssetRefs(dump *LegacyDump) []LegacyAsset {
	seen := make(map[string]bool)
	var out []LegacyAsset
	add := func(assets []LegacyAsset) {
		for _, a := range assets {
			if a.Ref == "" || seen[a.Ref] {
				continue
			}
			seen[a.Ref] = true
			out = append(out, a)
		}
	}
	for _, w := range dump.Artworks {
		add(w.Images)
	}
	for _, w := range dump.DigitalWorks {
		add(w.Images)
	}
	return out
}

// migrateAssets uploads each unique asset once and returns the legacy ref →
// new gallery image id map. Refs whose upload failed stay unmapped; works
// referencing them simply end up with fewer images.
func (e *Engine) migrateAssets(ctx context.Context, assets []LegacyAsset, onProgress func(Progress)) map[string]uint {
	ids := make(map[string]uint, len(assets))
	for _, a := range assets {
		info, err := e.objects.Upload(ctx, a.Data, a.FileName, a.MimeType)
		if err != nil {
			log.Warnf("migrate: upload of asset %s failed, skipping: %v", a.Ref, err)
			e.update(func(s *Status) { s.Assets.Failed++ })
			continue
		}

		img := media.GalleryImage{
			StoredName:   info.Key,
			OriginalName: a.FileName,
			MimeType:     a.MimeType,
			FileSize:     int64(len(a.Data)),
			FilePath:     info.Key,
			UploadedAt:   time.Now(),
		}
		if err := e.entities.DB().WithContext(ctx).Create(&img).Error; err != nil {
			log.Warnf("migrate: record for asset %s failed, skipping: %v", a.Ref, err)
			e.update(func(s *Status) { s.Assets.Failed++ })
			continue
		}

		ids[a.Ref] = img.ID
		e.update(func(s *Status) { s.Assets.Done++ })
		onProgress(Progress{Stage: "assets", Item: a.Ref})
	}
	return ids
}

func (e *Engine) migrateArtworks(ctx context.Context, legacy []LegacyArtwork, imageIDs map[string]uint, onProgress func(Progress)) map[int64]uint {
	idMap := make(map[int64]uint, len(legacy))
	for _, lw := range legacy {
		lw := lw
		var newID uint
		err := e.entities.Transaction(ctx, func(tx *gorm.DB) error {
			if lw.InventoryCode == "" || lw.Title == "" {
				return store.Validationf("artwork %d: inventory code and title are required", lw.ID)
			}
			status := lw.Status
			if !works.ValidStatus(status) {
				status = works.StatusAvailable
			}

			w := works.Artwork{
				InventoryCode:   lw.InventoryCode,
				Title:           lw.Title,
				CreationDate:    lw.CreationDate,
				Medium:          lw.Medium,
				Dimensions:      lw.Dimensions,
				Status:          status,
				Price:           lw.Price,
				CurrentLocation: lw.CurrentLocation,
				Notes:           lw.Notes,
				Visible:         lw.Visible,
			}
			if err := tx.Create(&w).Error; err != nil {
				return err
			}

			for order, imgID := range resolveImages(lw.Images, imageIDs) {
				link := works.ArtworkImage{
					ArtworkID:    w.ID,
					ImageID:      imgID,
					IsPrimary:    order == 0,
					DisplayOrder: order,
				}
				if err := tx.Create(&link).Error; err != nil {
					return err
				}
			}

			newID = w.ID
			return nil
		})
		if err != nil {
			log.Warnf("migrate: artwork %d (%s) failed, skipping: %v", lw.ID, lw.InventoryCode, err)
			e.update(func(s *Status) { s.Artworks.Failed++ })
			continue
		}
		// map only after the transaction committed, so exhibitions never
		// link a work that was rolled back
		idMap[lw.ID] = newID
		e.update(func(s *Status) { s.Artworks.Done++ })
		onProgress(Progress{Stage: "artworks", Item: lw.InventoryCode})
	}
	return idMap
}

func (e *Engine) migrateDigitalWorks(ctx context.Context, legacy []LegacyDigitalWork, imageIDs map[string]uint, onProgress func(Progress)) map[int64]uint {
	idMap := make(map[int64]uint, len(legacy))
	for _, lw := range legacy {
		lw := lw
		var newID uint
		err := e.entities.Transaction(ctx, func(tx *gorm.DB) error {
			if lw.InventoryCode == "" || lw.Title == "" {
				return store.Validationf("digital work %d: inventory code and title are required", lw.ID)
			}
			status := lw.Status
			if !works.ValidStatus(status) {
				status = works.StatusAvailable
			}

			w := works.DigitalWork{
				InventoryCode: lw.InventoryCode,
				Title:         lw.Title,
				CreationDate:  lw.CreationDate,
				Medium:        lw.Medium,
				Status:        status,
				Price:         lw.Price,
				Notes:         lw.Notes,
				Visible:       lw.Visible,
				FileFormat:    lw.FileFormat,
				FileSize:      lw.FileSize,
				LicenseType:   lw.LicenseType,
				VideoURL:      lw.VideoURL,
				Platform:      lw.Platform,
			}
			if err := tx.Create(&w).Error; err != nil {
				return err
			}

			for order, imgID := range resolveImages(lw.Images, imageIDs) {
				link := works.DigitalWorkImage{
					DigitalWorkID: w.ID,
					ImageID:       imgID,
					IsPrimary:     order == 0,
					DisplayOrder:  order,
				}
				if err := tx.Create(&link).Error; err != nil {
					return err
				}
			}

			newID = w.ID
			return nil
		})
		if err != nil {
			log.Warnf("migrate: digital work %d (%s) failed, skipping: %v", lw.ID, lw.InventoryCode, err)
			e.update(func(s *Status) { s.DigitalWorks.Failed++ })
			continue
		}
		idMap[lw.ID] = newID
		e.update(func(s *Status) { s.DigitalWorks.Done++ })
		onProgress(Progress{Stage: "digital_works", Item: lw.InventoryCode})
	}
	return idMap
}

// migrateExhibitions creates each exhibition with its work links remapped to
// destination ids. Links to works that failed to migrate are dropped
// silently — the exhibition itself still lands.
func (e *Engine) migrateExhibitions(ctx context.Context, legacy []LegacyExhibition, artworkIDs, digitalIDs map[int64]uint, onProgress func(Progress)) {
	for _, lx := range legacy {
		lx := lx
		err := e.entities.Transaction(ctx, func(tx *gorm.DB) error {
			if lx.Name == "" {
				return store.Validationf("exhibition %d: name is required", lx.ID)
			}

			ex := shows.Exhibition{
				Name:        lx.Name,
				Venue:       lx.Venue,
				Description: lx.Description,
				Curator:     lx.Curator,
				Website:     lx.Website,
			}
			if err := tx.Create(&ex).Error; err != nil {
				return err
			}

			for _, oldID := range lx.ArtworkIDs {
				newID, ok := artworkIDs[oldID]
				if !ok {
					continue
				}
				if err := tx.Create(&shows.ArtworkExhibition{ArtworkID: newID, ExhibitionID: ex.ID}).Error; err != nil {
					return err
				}
			}
			for _, oldID := range lx.DigitalWorkIDs {
				newID, ok := digitalIDs[oldID]
				if !ok {
					continue
				}
				if err := tx.Create(&shows.DigitalWorkExhibition{DigitalWorkID: newID, ExhibitionID: ex.ID}).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			log.Warnf("migrate: exhibition %d (%s) failed, skipping: %v", lx.ID, lx.Name, err)
			e.update(func(s *Status) { s.Exhibitions.Failed++ })
			continue
		}
		e.update(func(s *Status) { s.Exhibitions.Done++ })
		onProgress(Progress{Stage: "exhibitions", Item: lx.Name})
	}
}

func resolveImages(assets []LegacyAsset, imageIDs map[string]uint) []uint {
	out := make([]uint, 0, len(assets))
	for _, a := range assets {
		if id, ok := imageIDs[a.Ref]; ok {
			out = append(out, id)
		}
	}
	return out
}

func (e *Engine) summary(success bool) *Summary {
	s := e.Status()
	return &Summary{
		Success:      success,
		Assets:       s.Assets,
		Artworks:     s.Artworks,
		DigitalWorks: s.DigitalWorks,
		Exhibitions:  s.Exhibitions,
	}
}
