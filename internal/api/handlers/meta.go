package handlers

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fairway-labs/golf-agent/internal/agent"
	"github.com/fairway-labs/golf-agent/internal/providers"
)

// MetaHandler serves the discovery document, the icon asset, and health.
type MetaHandler struct {
	descriptor agent.Descriptor
	iconPath   string
	upstream   *providers.GolfClient
	logger     *logrus.Logger
}

func NewMetaHandler(descriptor agent.Descriptor, iconPath string, upstream *providers.GolfClient, logger *logrus.Logger) *MetaHandler {
	return &MetaHandler{
		descriptor: descriptor,
		iconPath:   iconPath,
		upstream:   upstream,
		logger:     logger,
	}
}

// GetDiscovery returns the static discovery/registration document.
func (h *MetaHandler) GetDiscovery(c *gin.Context) {
	c.JSON(http.StatusOK, h.descriptor)
}

// GetIcon serves the local icon file, or a plain-text 404 if it is absent.
func (h *MetaHandler) GetIcon(c *gin.Context) {
	data, err := os.ReadFile(h.iconPath)
	if err != nil {
		c.String(http.StatusNotFound, "icon not found")
		return
	}
	c.Data(http.StatusOK, "image/png", data)
}

// GetHealth returns liveness plus upstream circuit breaker states.
func (h *MetaHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"service":   h.descriptor.Name,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"upstream": gin.H{
			providers.TourPGA:  h.upstream.BreakerState(providers.TourPGA),
			providers.TourLPGA: h.upstream.BreakerState(providers.TourLPGA),
		},
	})
}
