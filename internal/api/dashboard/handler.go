package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"art-inventory/internal/domain/works"
	"art-inventory/internal/schema"
	"art-inventory/internal/store"
)

// Handler serves the overview tiles: row counts per entity type plus a few
// quick sale figures.
type Handler struct {
	entities *store.Entities
}

func NewHandler(entities *store.Entities) *Handler {
	return &Handler{entities: entities}
}

// ------------------------------
// GET /dashboard
// ------------------------------
func (h *Handler) Overview(c *gin.Context) {
	ctx := c.Request.Context()

	counts := make(map[string]int64, len(schema.Types()))
	for _, name := range schema.Types() {
		n, err := h.entities.Count(ctx, name)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard", "details": err.Error()})
			return
		}
		counts[name] = n
	}

	var availableArtworks, soldArtworks int64
	db := h.entities.DB().WithContext(ctx)
	if err := db.Model(&works.Artwork{}).Where("status = ?", works.StatusAvailable).Count(&availableArtworks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}
	if err := db.Model(&works.Artwork{}).Where("status = ?", works.StatusSold).Count(&soldArtworks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}

	var totalSales float64
	if err := db.Table("sales").Select("COALESCE(SUM(sale_price), 0)").Scan(&totalSales).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"counts":             counts,
		"available_artworks": availableArtworks,
		"sold_artworks":      soldArtworks,
		"total_sales":        totalSales,
	})
}
