package record

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jbbaek/likelion-food/internal/auth"
	"github.com/jbbaek/likelion-food/internal/weekly"
)

type Handler struct {
	service *Service
	log     logrus.FieldLogger
}

func NewHandler(service *Service, log logrus.FieldLogger) *Handler {
	return &Handler{service: service, log: log.WithField("component", "record")}
}

// --------------------------------------------------
// Add record
// --------------------------------------------------
func (h *Handler) Add(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	var in AddInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	rec, err := h.service.Add(c.Request.Context(), id.UserID, in)
	if err != nil {
		h.fail(c, err, "adding record")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "record added", "id": rec.ID})
}

// --------------------------------------------------
// List records of a day
// --------------------------------------------------
func (h *Handler) List(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	entries, err := h.service.List(c.Request.Context(), id.UserID, c.Query("record_date"))
	if err != nil {
		h.fail(c, err, "listing records")
		return
	}
	c.JSON(http.StatusOK, entries)
}

// --------------------------------------------------
// Delete record
// --------------------------------------------------
func (h *Handler) Delete(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	recordID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || recordID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid record id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id.UserID, recordID); err != nil {
		h.fail(c, err, "deleting record")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "record deleted"})
}

// --------------------------------------------------
// Daily summary
// --------------------------------------------------
func (h *Handler) Summary(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	sum, err := h.service.Summary(c.Request.Context(), id.UserID, c.Query("record_date"))
	if err != nil {
		h.fail(c, err, "summarizing records")
		return
	}
	c.JSON(http.StatusOK, sum)
}

// --------------------------------------------------
// Weekly
// --------------------------------------------------
func (h *Handler) WeeklySummary(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	totals, err := h.service.WeeklySummary(c.Request.Context(), id.UserID)
	if err != nil {
		h.fail(c, err, "weekly summary")
		return
	}
	c.JSON(http.StatusOK, totals)
}

func (h *Handler) WeeklyChart(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	chart, err := h.service.WeeklyChart(c.Request.Context(), id.UserID, c.Query("week"))
	if err != nil {
		h.fail(c, err, "weekly chart")
		return
	}
	c.JSON(http.StatusOK, chart)
}

func (h *Handler) WeeklyChartHTML(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	chart, err := h.service.WeeklyChart(c.Request.Context(), id.UserID, c.Query("week"))
	if err != nil {
		h.fail(c, err, "weekly chart")
		return
	}
	if chart.Week() == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no records in the last week"})
		return
	}

	var buf bytes.Buffer
	if err := weekly.RenderChart(&buf, "주간 섭취 칼로리", chart.Week()); err != nil {
		h.log.WithError(err).Error("rendering chart")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render chart"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func identity(c *gin.Context) (*auth.Identity, bool) {
	id, ok := auth.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "login required"})
	}
	return id, ok
}

func (h *Handler) fail(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, ErrMissingFields),
		errors.Is(err, ErrInvalidMealType),
		errors.Is(err, ErrInvalidDate),
		errors.Is(err, ErrInvalidQuantity),
		errors.Is(err, ErrUnknownFood):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrRecordNotFound), errors.Is(err, ErrUnknownWeek):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.log.WithError(err).Error(action)
		c.JSON(http.StatusInternalServerError, gin.H{"error": action + " failed"})
	}
}
