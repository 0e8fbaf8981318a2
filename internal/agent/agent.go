// Package agent holds the priced entrypoint catalog and its HTTP binding.
// The agent is assembled once at process entry and passed by reference into
// all handler registrations; there is no reinitialization path.
package agent

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fairway-labs/golf-agent/internal/billing"
)

// Property describes a single input field of an entrypoint.
type Property struct {
	Type        string      `json:"type"`
	Description string      `json:"description,omitempty"`
	Default     interface{} `json:"default,omitempty"`
}

// InputSchema is the typed input contract of an entrypoint.
type InputSchema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties,omitempty"`
	Required   []string            `json:"required,omitempty"`
}

// Entrypoint is a named, priced, independently invocable capability.
type Entrypoint struct {
	Key         string
	Description string
	Price       int64 // minor units; zero means free tier
	Input       InputSchema
	Handle      gin.HandlerFunc
}

// Agent is the long-lived service instance tying entrypoints, pricing, and
// the usage tracker together.
type Agent struct {
	name        string
	description string
	version     string
	baseURL     string
	entrypoints []Entrypoint
	tracker     *billing.Tracker
	logger      *logrus.Logger
}

// New creates the agent. tracker may be nil when usage tracking is disabled.
func New(name, description, version, baseURL string, tracker *billing.Tracker, logger *logrus.Logger) *Agent {
	return &Agent{
		name:        name,
		description: description,
		version:     version,
		baseURL:     baseURL,
		tracker:     tracker,
		logger:      logger,
	}
}

// Register adds an entrypoint to the catalog.
func (a *Agent) Register(e Entrypoint) {
	a.entrypoints = append(a.entrypoints, e)
}

// Entrypoints returns the registered catalog in registration order.
func (a *Agent) Entrypoints() []Entrypoint {
	return a.entrypoints
}

// Bind mounts every entrypoint as POST /entrypoints/<key>, wrapped with
// usage metering.
func (a *Agent) Bind(router gin.IRouter) {
	for _, e := range a.entrypoints {
		router.POST("/entrypoints/"+e.Key, a.metered(e))
		a.logger.WithFields(logrus.Fields{
			"component":  "agent",
			"entrypoint": e.Key,
			"price":      billing.FormatMinorUnits(e.Price),
		}).Info("Entrypoint registered")
	}
}

// metered runs the entrypoint handler and records a charge for priced calls.
// Free entrypoints record nothing.
func (a *Agent) metered(e Entrypoint) gin.HandlerFunc {
	return func(c *gin.Context) {
		e.Handle(c)
		if e.Price > 0 && a.tracker != nil {
			a.tracker.Record(c.Request.Context(), e.Key, e.Price, c.Writer.Status() < 400)
		}
	}
}
