package migrate

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"art-inventory/internal/migrate"
	"art-inventory/internal/store"
)

// Handler runs the one-shot legacy import. The client posts its full browser
// store as one JSON document and can poll progress from a second tab.
type Handler struct {
	engine *migrate.Engine
}

func NewHandler(engine *migrate.Engine) *Handler {
	return &Handler{engine: engine}
}

// ------------------------------
// POST /migrate
// ------------------------------
func (h *Handler) Run(c *gin.Context) {
	var dump migrate.LegacyDump
	if err := c.ShouldBindJSON(&dump); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid legacy dump", "details": err.Error()})
		return
	}

	summary, err := h.engine.Run(c.Request.Context(), &dump, nil)
	if err != nil {
		if errors.Is(err, store.ErrAlreadyInProgress) {
			c.JSON(http.StatusConflict, gin.H{"error": "A migration is already running"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Migration failed", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ------------------------------
// GET /migrate/status
// ------------------------------
func (h *Handler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.engine.Status())
}
