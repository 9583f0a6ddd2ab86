package works

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"art-inventory/database"
	"art-inventory/internal/domain/sales"
	"art-inventory/internal/domain/shows"
	"art-inventory/internal/domain/tags"
	"art-inventory/internal/domain/works"
	"art-inventory/internal/store"
)

func fail(c *gin.Context, err error, notFoundMsg, failMsg string) {
	var ve *store.ValidationError
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
	case errors.Is(err, gorm.ErrDuplicatedKey):
		c.JSON(http.StatusConflict, gin.H{"error": "A record with that unique value already exists"})
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Reason})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": failMsg, "details": err.Error()})
	}
}

// ------------------------------
// GET /artworks
// ------------------------------
func ListArtworks(c *gin.Context) {
	q := database.DB.Preload("Images").Order("created_at DESC")

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if seriesID := c.Query("series_id"); seriesID != "" {
		q = q.Where("series_id = ?", seriesID)
	}
	if search := c.Query("q"); search != "" {
		like := "%" + search + "%"
		q = q.Where("title LIKE ? OR inventory_code LIKE ?", like, like)
	}

	var items []works.Artwork
	if err := q.Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load artworks"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// ------------------------------
// GET /artworks/:id
// ------------------------------
func GetArtworkByID(c *gin.Context) {
	id := c.Param("id")

	var a works.Artwork
	err := database.DB.
		Preload("Images").
		Preload("Series").
		First(&a, "id = ?", id).Error
	if err != nil {
		fail(c, err, "Artwork not found", "Failed to load artwork")
		return
	}
	c.JSON(http.StatusOK, a)
}

// ------------------------------
// POST /artworks
// ------------------------------
func CreateArtwork(c *gin.Context) {
	var req CreateArtworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, err := normalizeStatus(req.Status)
	if err != nil {
		fail(c, err, "", "Failed to create artwork")
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if req.SeriesID != nil {
			var s works.Series
			if err := tx.First(&s, "id = ?", *req.SeriesID).Error; err != nil {
				return err
			}
		}

		a := works.Artwork{
			InventoryCode:   req.InventoryCode,
			Title:           req.Title,
			CreationDate:    req.CreationDate,
			Medium:          req.Medium,
			Dimensions:      req.Dimensions,
			SeriesID:        req.SeriesID,
			Status:          status,
			Price:           req.Price,
			CurrentLocation: req.CurrentLocation,
			Notes:           req.Notes,
			Visible:         req.Visible == nil || *req.Visible,
		}
		if err := tx.Create(&a).Error; err != nil {
			return err
		}

		if len(req.Images) > 0 {
			if err := replaceArtworkImages(tx, a.ID, req.Images); err != nil {
				return err
			}
		}
		if len(req.TagIDs) > 0 {
			if err := replaceArtworkTags(tx, a.ID, req.TagIDs); err != nil {
				return err
			}
		}
		if a.CurrentLocation != "" {
			if err := recordLocation(tx, a.ID, a.CurrentLocation, "initial location"); err != nil {
				return err
			}
		}

		c.JSON(http.StatusCreated, gin.H{"id": a.ID})
		return nil
	})
	if err != nil {
		fail(c, err, "Series not found", "Failed to create artwork")
	}
}

// ------------------------------
// PUT /artworks/:id
// ------------------------------
func UpdateArtwork(c *gin.Context) {
	id := c.Param("id")

	var req UpdateArtworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var a works.Artwork
		if err := tx.First(&a, "id = ?", id).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if req.InventoryCode != nil {
			updates["inventory_code"] = *req.InventoryCode
		}
		if req.Title != nil {
			updates["title"] = *req.Title
		}
		if req.CreationDate != nil {
			updates["creation_date"] = *req.CreationDate
		}
		if req.Medium != nil {
			updates["medium"] = *req.Medium
		}
		if req.Dimensions != nil {
			updates["dimensions"] = *req.Dimensions
		}
		if req.DetachSeries {
			updates["series_id"] = nil
		} else if req.SeriesID != nil {
			var s works.Series
			if err := tx.First(&s, "id = ?", *req.SeriesID).Error; err != nil {
				return err
			}
			updates["series_id"] = *req.SeriesID
		}
		if req.Status != nil {
			status, err := normalizeStatus(*req.Status)
			if err != nil {
				return err
			}
			updates["status"] = status
		}
		if req.Price != nil {
			updates["price"] = *req.Price
		}
		if req.Notes != nil {
			updates["notes"] = *req.Notes
		}
		if req.Visible != nil {
			updates["visible"] = *req.Visible
		}
		if req.CurrentLocation != nil && *req.CurrentLocation != a.CurrentLocation {
			updates["current_location"] = *req.CurrentLocation
			if err := recordLocation(tx, a.ID, *req.CurrentLocation, ""); err != nil {
				return err
			}
		}

		if len(updates) > 0 {
			if err := tx.Model(&works.Artwork{}).Where("id = ?", a.ID).Updates(updates).Error; err != nil {
				return err
			}
		}

		if req.Images != nil {
			if err := replaceArtworkImages(tx, a.ID, *req.Images); err != nil {
				return err
			}
		}
		if req.TagIDs != nil {
			if err := replaceArtworkTags(tx, a.ID, *req.TagIDs); err != nil {
				return err
			}
		}

		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return nil
	})
	if err != nil {
		fail(c, err, "Artwork not found", "Failed to update artwork")
	}
}

// ------------------------------
// DELETE /artworks/:id
// ------------------------------
func DeleteArtwork(c *gin.Context) {
	id := c.Param("id")

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var a works.Artwork
		if err := tx.First(&a, "id = ?", id).Error; err != nil {
			return err
		}

		if err := tx.Where("artwork_id = ?", a.ID).Delete(&works.ArtworkImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("artwork_id = ?", a.ID).Delete(&tags.ArtworkTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("artwork_id = ?", a.ID).Delete(&shows.ArtworkExhibition{}).Error; err != nil {
			return err
		}
		if err := tx.Where("artwork_id = ?", a.ID).Delete(&sales.LocationHistory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("artwork_id = ?", a.ID).Delete(&sales.Sale{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&a).Error; err != nil {
			return err
		}

		c.JSON(http.StatusOK, gin.H{"status": "deleted"})
		return nil
	})
	if err != nil {
		fail(c, err, "Artwork not found", "Failed to delete artwork")
	}
}

// ------------------------------
// GET /artworks/:id/locations
// ------------------------------
func GetArtworkLocations(c *gin.Context) {
	id := c.Param("id")

	var a works.Artwork
	if err := database.DB.Select("id").First(&a, "id = ?", id).Error; err != nil {
		fail(c, err, "Artwork not found", "Failed to load artwork")
		return
	}

	var history []sales.LocationHistory
	err := database.DB.
		Where("artwork_id = ?", a.ID).
		Order("moved_at DESC").
		Find(&history).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load location history"})
		return
	}
	c.JSON(http.StatusOK, history)
}

// ------------------------------
// PATCH /artworks/bulk
// ------------------------------
func BulkUpdateArtworks(c *gin.Context) {
	var req BulkUpdateArtworksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.IDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ids required"})
		return
	}

	updates := map[string]interface{}{}
	if req.Set.Status != nil {
		status, err := normalizeStatus(*req.Set.Status)
		if err != nil {
			fail(c, err, "", "Failed to update artworks")
			return
		}
		updates["status"] = status
	}
	if req.Set.DetachSeries {
		updates["series_id"] = nil
	} else if req.Set.SeriesID != nil {
		updates["series_id"] = *req.Set.SeriesID
	}
	if req.Set.Visible != nil {
		updates["visible"] = *req.Set.Visible
	}
	if req.Set.Notes != nil {
		updates["notes"] = *req.Set.Notes
	}

	var updated int64
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if req.Set.SeriesID != nil && !req.Set.DetachSeries {
			var s works.Series
			if err := tx.First(&s, "id = ?", *req.Set.SeriesID).Error; err != nil {
				return err
			}
		}

		if len(updates) > 0 {
			res := tx.Model(&works.Artwork{}).Where("id IN ?", req.IDs).Updates(updates)
			if res.Error != nil {
				return res.Error
			}
			updated = res.RowsAffected
		}

		// location changes go through the audit trail one work at a time
		if req.Set.CurrentLocation != nil {
			var items []works.Artwork
			if err := tx.Select("id", "current_location").Where("id IN ?", req.IDs).Find(&items).Error; err != nil {
				return err
			}
			for _, a := range items {
				if a.CurrentLocation == *req.Set.CurrentLocation {
					continue
				}
				if err := tx.Model(&works.Artwork{}).Where("id = ?", a.ID).
					Update("current_location", *req.Set.CurrentLocation).Error; err != nil {
					return err
				}
				if err := recordLocation(tx, a.ID, *req.Set.CurrentLocation, "bulk move"); err != nil {
					return err
				}
			}
			if updated < int64(len(items)) {
				updated = int64(len(items))
			}
		}

		if req.PriceAdjustment != nil {
			switch req.PriceAdjustment.Mode {
			case "percent":
				if err := tx.Model(&works.Artwork{}).Where("id IN ?", req.IDs).
					Update("price", gorm.Expr("price * ?", 1+req.PriceAdjustment.Amount/100)).Error; err != nil {
					return err
				}
			case "fixed":
				if err := tx.Model(&works.Artwork{}).Where("id IN ?", req.IDs).
					Update("price", gorm.Expr("price + ?", req.PriceAdjustment.Amount)).Error; err != nil {
					return err
				}
			default:
				return store.Validationf("unknown price adjustment mode %q", req.PriceAdjustment.Mode)
			}
		}

		return nil
	})
	if err != nil {
		fail(c, err, "Series not found", "Failed to update artworks")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "updated": updated})
}
