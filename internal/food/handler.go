package food

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jbbaek/likelion-food/internal/hangul"
)

type Handler struct {
	service *Service
	log     logrus.FieldLogger
}

func NewHandler(service *Service, log logrus.FieldLogger) *Handler {
	return &Handler{service: service, log: log.WithField("component", "food")}
}

// --------------------------------------------------
// List / search
// --------------------------------------------------
func (h *Handler) List(c *gin.Context) {
	foods, err := h.service.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		h.log.WithError(err).Error("listing foods")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch foods"})
		return
	}
	c.JSON(http.StatusOK, foods)
}

// --------------------------------------------------
// Autocomplete
// --------------------------------------------------
func (h *Handler) Autocomplete(c *gin.Context) {
	names, err := h.service.Autocomplete(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.log.WithError(err).Error("autocomplete")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch suggestions"})
		return
	}
	c.JSON(http.StatusOK, names)
}

// --------------------------------------------------
// Search by initial consonant
// --------------------------------------------------
func (h *Handler) ByInitial(c *gin.Context) {
	initial := c.Query("initial")

	foods, err := h.service.ByInitial(c.Request.Context(), initial)
	var unsupported *hangul.UnsupportedConsonantError
	switch {
	case errors.Is(err, ErrMissingInitial):
		c.JSON(http.StatusBadRequest, gin.H{"error": "initial is required"})
		return
	case errors.As(err, &unsupported):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "unsupported initial consonant",
			"initial":   unsupported.Input,
			"supported": hangul.Supported(),
		})
		return
	case err != nil:
		h.log.WithError(err).Error("search by initial")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch foods"})
		return
	}

	c.JSON(http.StatusOK, foods)
}

// --------------------------------------------------
// Detail
// --------------------------------------------------
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid food id"})
		return
	}

	f, err := h.service.Get(c.Request.Context(), id)
	if errors.Is(err, ErrFoodNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "food not found"})
		return
	}
	if err != nil {
		h.log.WithError(err).Error("food detail")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch food"})
		return
	}

	c.JSON(http.StatusOK, f)
}
