package works

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"art-inventory/database"
	"art-inventory/internal/domain/sales"
	"art-inventory/internal/domain/shows"
	"art-inventory/internal/domain/tags"
	"art-inventory/internal/domain/works"
)

// ------------------------------
// GET /digital-works
// ------------------------------
func ListDigitalWorks(c *gin.Context) {
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

	var items []works.DigitalWork
	if err := q.Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load digital works"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// ------------------------------
// GET /digital-works/:id
// ------------------------------
func GetDigitalWorkByID(c *gin.Context) {
	id := c.Param("id")

	var w works.DigitalWork
	err := database.DB.
		Preload("Images").
		Preload("Series").
		First(&w, "id = ?", id).Error
	if err != nil {
		fail(c, err, "Digital work not found", "Failed to load digital work")
		return
	}
	c.JSON(http.StatusOK, w)
}

// ------------------------------
// POST /digital-works
// ------------------------------
func CreateDigitalWork(c *gin.Context) {
	var req CreateDigitalWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, err := normalizeStatus(req.Status)
	if err != nil {
		fail(c, err, "", "Failed to create digital work")
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if req.SeriesID != nil {
			var s works.Series
			if err := tx.First(&s, "id = ?", *req.SeriesID).Error; err != nil {
				return err
			}
		}

		w := works.DigitalWork{
			InventoryCode: req.InventoryCode,
			Title:         req.Title,
			CreationDate:  req.CreationDate,
			Medium:        req.Medium,
			Dimensions:    req.Dimensions,
			SeriesID:      req.SeriesID,
			Status:        status,
			Price:         req.Price,
			Notes:         req.Notes,
			Visible:       req.Visible == nil || *req.Visible,

			FileFormat:  req.FileFormat,
			FileSize:    req.FileSize,
			LicenseType: req.LicenseType,
			VideoURL:    req.VideoURL,
			EmbedURL:    req.EmbedURL,
			Platform:    req.Platform,

			NFTTokenID:         req.NFTTokenID,
			NFTContractAddress: req.NFTContractAddress,
			NFTBlockchain:      req.NFTBlockchain,
		}
		if err := tx.Create(&w).Error; err != nil {
			return err
		}

		if len(req.Images) > 0 {
			if err := replaceDigitalWorkImages(tx, w.ID, req.Images); err != nil {
				return err
			}
		}
		if len(req.TagIDs) > 0 {
			if err := replaceDigitalWorkTags(tx, w.ID, req.TagIDs); err != nil {
				return err
			}
		}

		c.JSON(http.StatusCreated, gin.H{"id": w.ID})
		return nil
	})
	if err != nil {
		fail(c, err, "Series not found", "Failed to create digital work")
	}
}

// ------------------------------
// PUT /digital-works/:id
// ------------------------------
func UpdateDigitalWork(c *gin.Context) {
	id := c.Param("id")

	var req UpdateDigitalWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var w works.DigitalWork
		if err := tx.First(&w, "id = ?", id).Error; err != nil {
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
		if req.FileFormat != nil {
			updates["file_format"] = *req.FileFormat
		}
		if req.FileSize != nil {
			updates["file_size"] = *req.FileSize
		}
		if req.LicenseType != nil {
			updates["license_type"] = *req.LicenseType
		}
		if req.VideoURL != nil {
			updates["video_url"] = *req.VideoURL
		}
		if req.EmbedURL != nil {
			updates["embed_url"] = *req.EmbedURL
		}
		if req.Platform != nil {
			updates["platform"] = *req.Platform
		}
		if req.NFTTokenID != nil {
			updates["nft_token_id"] = *req.NFTTokenID
		}
		if req.NFTContractAddress != nil {
			updates["nft_contract_address"] = *req.NFTContractAddress
		}
		if req.NFTBlockchain != nil {
			updates["nft_blockchain"] = *req.NFTBlockchain
		}

		if len(updates) > 0 {
			if err := tx.Model(&works.DigitalWork{}).Where("id = ?", w.ID).Updates(updates).Error; err != nil {
				return err
			}
		}

		if req.Images != nil {
			if err := replaceDigitalWorkImages(tx, w.ID, *req.Images); err != nil {
				return err
			}
		}
		if req.TagIDs != nil {
			if err := replaceDigitalWorkTags(tx, w.ID, *req.TagIDs); err != nil {
				return err
			}
		}

		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return nil
	})
	if err != nil {
		fail(c, err, "Digital work not found", "Failed to update digital work")
	}
}

// ------------------------------
// DELETE /digital-works/:id
// ------------------------------
func DeleteDigitalWork(c *gin.Context) {
	id := c.Param("id")

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var w works.DigitalWork
		if err := tx.First(&w, "id = ?", id).Error; err != nil {
			return err
		}

		if err := tx.Where("digital_work_id = ?", w.ID).Delete(&works.DigitalWorkImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("digital_work_id = ?", w.ID).Delete(&tags.DigitalWorkTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("digital_work_id = ?", w.ID).Delete(&shows.DigitalWorkExhibition{}).Error; err != nil {
			return err
		}
		if err := tx.Where("digital_work_id = ?", w.ID).Delete(&sales.Sale{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&w).Error; err != nil {
			return err
		}

		c.JSON(http.StatusOK, gin.H{"status": "deleted"})
		return nil
	})
	if err != nil {
		fail(c, err, "Digital work not found", "Failed to delete digital work")
	}
}
