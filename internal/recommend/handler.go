package recommend

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jbbaek/likelion-food/internal/metrics"
)

type Handler struct {
	client *Client
	log    logrus.FieldLogger
}

func NewHandler(client *Client, log logrus.FieldLogger) *Handler {
	return &Handler{client: client, log: log.WithField("component", "recommend")}
}

// --------------------------------------------------
// Recommend
// --------------------------------------------------
func (h *Handler) Recommend(c *gin.Context) {
	var req struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	reply, err := h.client.Recommend(c.Request.Context(), req.Message)
	switch {
	case errors.Is(err, ErrEmptyMessage):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, ErrNotConfigured):
		metrics.ObserveRecommend("unconfigured")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "recommendation server is not configured"})
		return
	case err != nil:
		metrics.ObserveRecommend("upstream_error")
		h.log.WithError(err).Error("recommendation failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "recommendation server call failed"})
		return
	}

	metrics.ObserveRecommend("ok")
	c.JSON(http.StatusOK, reply)
}
