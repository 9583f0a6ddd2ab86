package sales

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"art-inventory/database"
	"art-inventory/internal/domain/sales"
	"art-inventory/internal/domain/works"
	"art-inventory/internal/store"
)

// CreateSaleRequest records the sale of exactly one work. SalePrice is
// free-text currency input ("€1,200.50", "$300").
type CreateSaleRequest struct {
	ArtworkID     *uint `json:"artwork_id"`
	DigitalWorkID *uint `json:"digital_work_id"`

	SaleDate   string `json:"sale_date"`
	SalePrice  string `json:"sale_price" binding:"required"`
	BuyerName  string `json:"buyer_name"`
	BuyerEmail string `json:"buyer_email"`
	Platform   string `json:"platform"`
	Notes      string `json:"notes"`
}

func fail(c *gin.Context, err error, notFoundMsg, failMsg string) {
	var ve *store.ValidationError
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Reason})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": failMsg, "details": err.Error()})
	}
}

// ------------------------------
// GET /sales
// ------------------------------
func ListSales(c *gin.Context) {
	var items []sales.Sale
	if err := database.DB.Order("sale_date DESC, id DESC").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load sales"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// ------------------------------
// GET /sales/:id
// ------------------------------
func GetSaleByID(c *gin.Context) {
	id := c.Param("id")

	var s sales.Sale
	if err := database.DB.First(&s, "id = ?", id).Error; err != nil {
		fail(c, err, "Sale not found", "Failed to load sale")
		return
	}
	c.JSON(http.StatusOK, s)
}

// ------------------------------
// POST /sales
// ------------------------------
// The referenced work flips to "sold" in the same transaction.
func CreateSale(c *gin.Context) {
	var req CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if (req.ArtworkID == nil) == (req.DigitalWorkID == nil) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "exactly one of artwork_id or digital_work_id is required"})
		return
	}

	price, err := sales.ParsePrice(req.SalePrice)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unparseable sale price"})
		return
	}

	saleDate := time.Now()
	if req.SaleDate != "" {
		parsed, err := time.Parse("2006-01-02", req.SaleDate)
		if err != nil {
			parsed, err = time.Parse(time.RFC3339, req.SaleDate)
		}
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unparseable sale date"})
			return
		}
		saleDate = parsed
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if req.ArtworkID != nil {
			var a works.Artwork
			if err := tx.First(&a, "id = ?", *req.ArtworkID).Error; err != nil {
				return err
			}
			if err := tx.Model(&works.Artwork{}).Where("id = ?", a.ID).
				Update("status", works.StatusSold).Error; err != nil {
				return err
			}
		} else {
			var w works.DigitalWork
			if err := tx.First(&w, "id = ?", *req.DigitalWorkID).Error; err != nil {
				return err
			}
			if err := tx.Model(&works.DigitalWork{}).Where("id = ?", w.ID).
				Update("status", works.StatusSold).Error; err != nil {
				return err
			}
		}

		s := sales.Sale{
			ArtworkID:     req.ArtworkID,
			DigitalWorkID: req.DigitalWorkID,
			SaleDate:      saleDate,
			SalePrice:     price,
			BuyerName:     req.BuyerName,
			BuyerEmail:    req.BuyerEmail,
			Platform:      req.Platform,
			Notes:         req.Notes,
		}
		if err := tx.Create(&s).Error; err != nil {
			return err
		}

		c.JSON(http.StatusCreated, gin.H{"id": s.ID})
		return nil
	})
	if err != nil {
		fail(c, err, "Work not found", "Failed to create sale")
	}
}

// ------------------------------
// DELETE /sales/:id
// ------------------------------
// Deleting a sale puts the work back on the market.
func DeleteSale(c *gin.Context) {
	id := c.Param("id")

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var s sales.Sale
		if err := tx.First(&s, "id = ?", id).Error; err != nil {
			return err
		}

		if s.ArtworkID != nil {
			if err := tx.Model(&works.Artwork{}).Where("id = ?", *s.ArtworkID).
				Update("status", works.StatusAvailable).Error; err != nil {
				return err
			}
		}
		if s.DigitalWorkID != nil {
			if err := tx.Model(&works.DigitalWork{}).Where("id = ?", *s.DigitalWorkID).
				Update("status", works.StatusAvailable).Error; err != nil {
				return err
			}
		}

		if err := tx.Delete(&s).Error; err != nil {
			return err
		}

		c.JSON(http.StatusOK, gin.H{"status": "deleted"})
		return nil
	})
	if err != nil {
		fail(c, err, "Sale not found", "Failed to delete sale")
	}
}
