package backup

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"art-inventory/internal/backup"
	"art-inventory/internal/store"
)

// Handler exposes snapshot export, restore and full reset.
type Handler struct {
	engine *backup.Engine
}

func NewHandler(engine *backup.Engine) *Handler {
	return &Handler{engine: engine}
}

// ------------------------------
// GET /export
// ------------------------------
func (h *Handler) Export(c *gin.Context) {
	snap, err := h.engine.Export(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export backup", "details": err.Error()})
		return
	}

	filename := fmt.Sprintf("art-inventory-backup-%s.json", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.JSON(http.StatusOK, snap)
}

// ------------------------------
// POST /import
// ------------------------------
func (h *Handler) Import(c *gin.Context) {
	var snap backup.Snapshot
	if err := c.ShouldBindJSON(&snap); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid snapshot document", "details": err.Error()})
		return
	}

	summary, err := h.engine.Import(c.Request.Context(), &snap)
	if err != nil {
		if errors.Is(err, store.ErrInvalidSnapshot) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import backup", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ------------------------------
// POST /clear
// ------------------------------
func (h *Handler) Clear(c *gin.Context) {
	summary, err := h.engine.Clear(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear data", "details": err.Error()})
		return
	}
	if len(summary.Failed) > 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Some tables could not be cleared", "summary": summary})
		return
	}
	c.JSON(http.StatusOK, summary)
}
