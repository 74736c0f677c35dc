package recipe

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	catalogue *Catalogue
}

// NewHandler serves cat. A nil catalogue answers 503.
func NewHandler(cat *Catalogue) *Handler {
	return &Handler{catalogue: cat}
}

// --------------------------------------------------
// Recipe by RCP_SEQ
// --------------------------------------------------
func (h *Handler) BySeq(c *gin.Context) {
	if h.catalogue == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "recipe catalogue not loaded"})
		return
	}

	seq := strings.TrimSpace(c.Param("seq"))
	if seq == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "seq is required"})
		return
	}

	rec, ok := h.catalogue.Get(seq)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found", "seq": seq})
		return
	}
	c.JSON(http.StatusOK, rec)
}
