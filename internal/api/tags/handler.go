package tags

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"art-inventory/database"
	"art-inventory/internal/domain/tags"
)

type CreateTagRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
}

type UpdateTagRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

// ------------------------------
// GET /tags
// ------------------------------
func ListTags(c *gin.Context) {
	var items []tags.Tag
	if err := database.DB.Order("name ASC").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load tags"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// ------------------------------
// POST /tags
// ------------------------------
func CreateTag(c *gin.Context) {
	var req CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t := tags.Tag{Name: req.Name, Color: req.Color}
	if err := database.DB.Create(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Tag name already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tag", "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": t.ID})
}

// ------------------------------
// PUT /tags/:id
// ------------------------------
func UpdateTag(c *gin.Context) {
	id := c.Param("id")

	var req UpdateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var t tags.Tag
	if err := database.DB.First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tag", "details": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Color != nil {
		updates["color"] = *req.Color
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&tags.Tag{}).Where("id = ?", t.ID).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusConflict, gin.H{"error": "Tag name already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tag", "details": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ------------------------------
// DELETE /tags/:id
// ------------------------------
// Link rows on both work types go with the tag.
func DeleteTag(c *gin.Context) {
	id := c.Param("id")

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var t tags.Tag
		if err := tx.First(&t, "id = ?", id).Error; err != nil {
			return err
		}

		if err := tx.Where("tag_id = ?", t.ID).Delete(&tags.ArtworkTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("tag_id = ?", t.ID).Delete(&tags.DigitalWorkTag{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&t).Error; err != nil {
			return err
		}

		c.JSON(http.StatusOK, gin.H{"status": "deleted"})
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete tag", "details": err.Error()})
	}
}
