package shows

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"art-inventory/database"
	"art-inventory/internal/domain/shows"
	"art-inventory/internal/domain/works"
	"art-inventory/internal/store"
)

type CreateExhibitionRequest struct {
	Name        string `json:"name" binding:"required"`
	Venue       string `json:"venue"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description"`
	Curator     string `json:"curator"`
	Website     string `json:"website"`

	ArtworkIDs     []uint `json:"artwork_ids"`
	DigitalWorkIDs []uint `json:"digital_work_ids"`
}

type UpdateExhibitionRequest struct {
	Name        *string `json:"name"`
	Venue       *string `json:"venue"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Description *string `json:"description"`
	Curator     *string `json:"curator"`
	Website     *string `json:"website"`

	ArtworkIDs     *[]uint `json:"artwork_ids"`
	DigitalWorkIDs *[]uint `json:"digital_work_ids"`
}

type exhibitionResponse struct {
	shows.Exhibition
	ArtworkIDs     []uint `json:"artwork_ids"`
	DigitalWorkIDs []uint `json:"digital_work_ids"`
}

func fail(c *gin.Context, err error, failMsg string) {
	var ve *store.ValidationError
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Exhibition not found"})
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Reason})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": failMsg, "details": err.Error()})
	}
}

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

func loadWorkIDs(db *gorm.DB, exhibitionID uint) ([]uint, []uint, error) {
	var artworkLinks []shows.ArtworkExhibition
	if err := db.Where("exhibition_id = ?", exhibitionID).Find(&artworkLinks).Error; err != nil {
		return nil, nil, err
	}
	var digitalLinks []shows.DigitalWorkExhibition
	if err := db.Where("exhibition_id = ?", exhibitionID).Find(&digitalLinks).Error; err != nil {
		return nil, nil, err
	}

	artworkIDs := make([]uint, 0, len(artworkLinks))
	for _, l := range artworkLinks {
		artworkIDs = append(artworkIDs, l.ArtworkID)
	}
	digitalIDs := make([]uint, 0, len(digitalLinks))
	for _, l := range digitalLinks {
		digitalIDs = append(digitalIDs, l.DigitalWorkID)
	}
	return artworkIDs, digitalIDs, nil
}

// replaceWorkLinks swaps an exhibition's full work list. Every referenced
// work must exist.
func replaceWorkLinks(tx *gorm.DB, exhibitionID uint, artworkIDs, digitalWorkIDs []uint) error {
	if err := tx.Where("exhibition_id = ?", exhibitionID).Delete(&shows.ArtworkExhibition{}).Error; err != nil {
		return err
	}
	if err := tx.Where("exhibition_id = ?", exhibitionID).Delete(&shows.DigitalWorkExhibition{}).Error; err != nil {
		return err
	}

	for _, id := range artworkIDs {
		var n int64
		if err := tx.Model(&works.Artwork{}).Where("id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return store.Validationf("artwork %d does not exist", id)
		}
		if err := tx.Create(&shows.ArtworkExhibition{ArtworkID: id, ExhibitionID: exhibitionID}).Error; err != nil {
			return err
		}
	}
	for _, id := range digitalWorkIDs {
		var n int64
		if err := tx.Model(&works.DigitalWork{}).Where("id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return store.Validationf("digital work %d does not exist", id)
		}
		if err := tx.Create(&shows.DigitalWorkExhibition{DigitalWorkID: id, ExhibitionID: exhibitionID}).Error; err != nil {
			return err
		}
	}
	return nil
}

// ------------------------------
// GET /exhibitions
// ------------------------------
func ListExhibitions(c *gin.Context) {
	var items []shows.Exhibition
	if err := database.DB.Order("start_date DESC, created_at DESC").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load exhibitions"})
		return
	}

	out := make([]exhibitionResponse, 0, len(items))
	for _, e := range items {
		artworkIDs, digitalIDs, err := loadWorkIDs(database.DB, e.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load exhibitions"})
			return
		}
		out = append(out, exhibitionResponse{Exhibition: e, ArtworkIDs: artworkIDs, DigitalWorkIDs: digitalIDs})
	}
	c.JSON(http.StatusOK, out)
}

// ------------------------------
// GET /exhibitions/:id
// ------------------------------
func GetExhibitionByID(c *gin.Context) {
	id := c.Param("id")

	var e shows.Exhibition
	if err := database.DB.First(&e, "id = ?", id).Error; err != nil {
		fail(c, err, "Failed to load exhibition")
		return
	}

	artworkIDs, digitalIDs, err := loadWorkIDs(database.DB, e.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load exhibition"})
		return
	}
	c.JSON(http.StatusOK, exhibitionResponse{Exhibition: e, ArtworkIDs: artworkIDs, DigitalWorkIDs: digitalIDs})
}

// ------------------------------
// POST /exhibitions
// ------------------------------
func CreateExhibition(c *gin.Context) {
	var req CreateExhibitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		fail(c, err, "Failed to create exhibition")
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		fail(c, err, "Failed to create exhibition")
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		e := shows.Exhibition{
			Name:        req.Name,
			Venue:       req.Venue,
			StartDate:   start,
			EndDate:     end,
			Description: req.Description,
			Curator:     req.Curator,
			Website:     req.Website,
		}
		if err := tx.Create(&e).Error; err != nil {
			return err
		}

		if err := replaceWorkLinks(tx, e.ID, req.ArtworkIDs, req.DigitalWorkIDs); err != nil {
			return err
		}

		c.JSON(http.StatusCreated, gin.H{"id": e.ID})
		return nil
	})
	if err != nil {
		fail(c, err, "Failed to create exhibition")
	}
}

// ------------------------------
// PUT /exhibitions/:id
// ------------------------------
func UpdateExhibition(c *gin.Context) {
	id := c.Param("id")

	var req UpdateExhibitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var e shows.Exhibition
		if err := tx.First(&e, "id = ?", id).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if req.Name != nil {
			updates["name"] = *req.Name
		}
		if req.Venue != nil {
			updates["venue"] = *req.Venue
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
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.Curator != nil {
			updates["curator"] = *req.Curator
		}
		if req.Website != nil {
			updates["website"] = *req.Website
		}

		if len(updates) > 0 {
			if err := tx.Model(&shows.Exhibition{}).Where("id = ?", e.ID).Updates(updates).Error; err != nil {
				return err
			}
		}

		if req.ArtworkIDs != nil || req.DigitalWorkIDs != nil {
			artworkIDs, digitalIDs, err := loadWorkIDs(tx, e.ID)
			if err != nil {
				return err
			}
			if req.ArtworkIDs != nil {
				artworkIDs = *req.ArtworkIDs
			}
			if req.DigitalWorkIDs != nil {
				digitalIDs = *req.DigitalWorkIDs
			}
			if err := replaceWorkLinks(tx, e.ID, artworkIDs, digitalIDs); err != nil {
				return err
			}
		}

		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return nil
	})
	if err != nil {
		fail(c, err, "Failed to update exhibition")
	}
}

// ------------------------------
// DELETE /exhibitions/:id
// ------------------------------
func DeleteExhibition(c *gin.Context) {
	id := c.Param("id")

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var e shows.Exhibition
		if err := tx.First(&e, "id = ?", id).Error; err != nil {
			return err
		}

		if err := tx.Where("exhibition_id = ?", e.ID).Delete(&shows.ArtworkExhibition{}).Error; err != nil {
			return err
		}
		if err := tx.Where("exhibition_id = ?", e.ID).Delete(&shows.DigitalWorkExhibition{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&e).Error; err != nil {
			return err
		}

		c.JSON(http.StatusOK, gin.H{"status": "deleted"})
		return nil
	})
	if err != nil {
		fail(c, err, "Failed to delete exhibition")
	}
}
