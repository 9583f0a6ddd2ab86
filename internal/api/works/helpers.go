package works

import (
	"time"

	"gorm.io/gorm"

	"art-inventory/internal/domain/media"
	"art-inventory/internal/domain/sales"
	"art-inventory/internal/domain/tags"
	"art-inventory/internal/domain/works"
	"art-inventory/internal/store"
)

// replaceArtworkImages swaps the whole image link set for the given artwork.
// Every referenced image must exist; the first link becomes primary when none
// is flagged.
func replaceArtworkImages(tx *gorm.DB, artworkID uint, links []ImageLinkInput) error {
	if err := tx.Where("artwork_id = ?", artworkID).Delete(&works.ArtworkImage{}).Error; err != nil {
		return err
	}
	rows, err := buildImageLinks(tx, links)
	if err != nil {
		return err
	}
	for _, l := range rows {
		row := works.ArtworkImage{
			ArtworkID:    artworkID,
			ImageID:      l.ImageID,
			IsPrimary:    l.IsPrimary,
			DisplayOrder: l.DisplayOrder,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

func replaceDigitalWorkImages(tx *gorm.DB, workID uint, links []ImageLinkInput) error {
	if err := tx.Where("digital_work_id = ?", workID).Delete(&works.DigitalWorkImage{}).Error; err != nil {
		return err
	}
	rows, err := buildImageLinks(tx, links)
	if err != nil {
		return err
	}
	for _, l := range rows {
		row := works.DigitalWorkImage{
			DigitalWorkID: workID,
			ImageID:       l.ImageID,
			IsPrimary:     l.IsPrimary,
			DisplayOrder:  l.DisplayOrder,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

func buildImageLinks(tx *gorm.DB, links []ImageLinkInput) ([]ImageLinkInput, error) {
	hasPrimary := false
	for i, l := range links {
		var n int64
		if err := tx.Model(&media.GalleryImage{}).Where("id = ?", l.ImageID).Count(&n).Error; err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, store.Validationf("image %d does not exist", l.ImageID)
		}
		if l.DisplayOrder == 0 {
			links[i].DisplayOrder = i
		}
		if l.IsPrimary {
			hasPrimary = true
		}
	}
	if !hasPrimary && len(links) > 0 {
		links[0].IsPrimary = true
	}
	return links, nil
}

func replaceArtworkTags(tx *gorm.DB, artworkID uint, tagIDs []uint) error {
	if err := tx.Where("artwork_id = ?", artworkID).Delete(&tags.ArtworkTag{}).Error; err != nil {
		return err
	}
	for _, id := range tagIDs {
		if err := mustTagExist(tx, id); err != nil {
			return err
		}
		if err := tx.Create(&tags.ArtworkTag{ArtworkID: artworkID, TagID: id}).Error; err != nil {
			return err
		}
	}
	return nil
}

func replaceDigitalWorkTags(tx *gorm.DB, workID uint, tagIDs []uint) error {
	if err := tx.Where("digital_work_id = ?", workID).Delete(&tags.DigitalWorkTag{}).Error; err != nil {
		return err
	}
	for _, id := range tagIDs {
		if err := mustTagExist(tx, id); err != nil {
			return err
		}
		if err := tx.Create(&tags.DigitalWorkTag{DigitalWorkID: workID, TagID: id}).Error; err != nil {
			return err
		}
	}
	return nil
}

func mustTagExist(tx *gorm.DB, tagID uint) error {
	var n int64
	if err := tx.Model(&tags.Tag{}).Where("id = ?", tagID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return store.Validationf("tag %d does not exist", tagID)
	}
	return nil
}

// recordLocation appends an audit row whenever an artwork lands somewhere new.
func recordLocation(tx *gorm.DB, artworkID uint, location, notes string) error {
	row := sales.LocationHistory{
		ArtworkID: artworkID,
		Location:  location,
		Notes:     notes,
		MovedAt:   time.Now(),
	}
	return tx.Create(&row).Error
}

func normalizeStatus(s string) (string, error) {
	if s == "" {
		return works.StatusAvailable, nil
	}
	if !works.ValidStatus(s) {
		return "", store.Validationf("unknown status %q", s)
	}
	return s, nil
}

// parseDate accepts YYYY-MM-DD or RFC3339 and returns nil for empty input.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, store.Validationf("unparseable date %q", s)
	}
	return &t, nil
}
