package works

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"art-inventory/database"
	"art-inventory/internal/domain/works"
)

// ------------------------------
// GET /series
// ------------------------------
func ListSeries(c *gin.Context) {
	var items []works.Series
	if err := database.DB.Order("name ASC").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load series"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// ------------------------------
// GET /series/:id
// ------------------------------
func GetSeriesByID(c *gin.Context) {
	id := c.Param("id")

	var s works.Series
	if err := database.DB.First(&s, "id = ?", id).Error; err != nil {
		fail(c, err, "Series not found", "Failed to load series")
		return
	}

	var artworks []works.Artwork
	if err := database.DB.Where("series_id = ?", s.ID).Order("created_at ASC").Find(&artworks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load series"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"series": s, "artworks": artworks})
}

// ------------------------------
// POST /series
// ------------------------------
func CreateSeries(c *gin.Context) {
	var req CreateSeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		fail(c, err, "", "Failed to create series")
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		fail(c, err, "", "Failed to create series")
		return
	}

	s := works.Series{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   start,
		EndDate:     end,
	}
	if err := database.DB.Create(&s).Error; err != nil {
		fail(c, err, "", "Failed to create series")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": s.ID})
}

// ------------------------------
// PUT /series/:id
// ------------------------------
func UpdateSeries(c *gin.Context) {
	id := c.Param("id")

	var req UpdateSeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var s works.Series
		if err := tx.First(&s, "id = ?", id).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if req.Name != nil {
			updates["name"] = *req.Name
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.StartDate != nil {
			start, err := parseDate(*req.StartDate)
			if err != nil {
				return err
			}
			updates["start_date"] = start
		}
		if req.EndDate != nil {
			end, err := parseDate(*req.EndDate)
			if err != nil {
				return err
			}
			updates["end_date"] = end
		}

		if len(updates) > 0 {
			if err := tx.Model(&works.Series{}).Where("id = ?", s.ID).Updates(updates).Error; err != nil {
				return err
			}
		}

		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return nil
	})
	if err != nil {
		fail(c, err, "Series not found", "Failed to update series")
	}
}

// ------------------------------
// DELETE /series/:id
// ------------------------------
// Works in the series survive with their series pointer cleared.
func DeleteSeries(c *gin.Context) {
	id := c.Param("id")

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var s works.Series
		if err := tx.First(&s, "id = ?", id).Error; err != nil {
			return err
		}

		if err := tx.Model(&works.Artwork{}).Where("series_id = ?", s.ID).
			Update("series_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&works.DigitalWork{}).Where("series_id = ?", s.ID).
			Update("series_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Delete(&s).Error; err != nil {
			return err
		}

		c.JSON(http.StatusOK, gin.H{"status": "deleted"})
		return nil
	})
	if err != nil {
		fail(c, err, "Series not found", "Failed to delete series")
	}
}
