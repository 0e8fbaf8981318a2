package agent

import (
	"github.com/fairway-labs/golf-agent/internal/billing"
)

// Descriptor is the static discovery/registration document served at
// /.well-known/agent.json. It is built once at startup from the configured
// base URL.
type Descriptor struct {
	Name          string               `json:"name"`
	Description   string               `json:"description"`
	Version       string               `json:"version"`
	URL           string               `json:"url"`
	IconURL       string               `json:"iconUrl"`
	Payment       PaymentInfo          `json:"payment"`
	Entrypoints   []EndpointDescriptor `json:"entrypoints"`
	TrustModels   []string             `json:"trustModels"`
	Registrations []Registration       `json:"registrations"`
}

// PaymentInfo describes how priced entrypoints are settled.
type PaymentInfo struct {
	Network  string `json:"network"`
	Currency string `json:"currency"`
}

// Registration points at an external agent registry entry.
type Registration struct {
	AgentRegistry string `json:"agentRegistry"`
	AgentID       string `json:"agentId,omitempty"`
}

// EndpointDescriptor advertises one entrypoint with its cost and input
// contract.
type EndpointDescriptor struct {
	Key         string      `json:"key"`
	Description string      `json:"description"`
	Method      string      `json:"method"`
	Path        string      `json:"path"`
	Price       string      `json:"price"`
	PriceMinor  int64       `json:"priceMinor"`
	Currency    string      `json:"currency"`
	Input       InputSchema `json:"input"`
}

// Descriptor builds the discovery document from the registered catalog.
func (a *Agent) Descriptor() Descriptor {
	endpoints := make([]EndpointDescriptor, 0, len(a.entrypoints))
	for _, e := range a.entrypoints {
		endpoints = append(endpoints, EndpointDescriptor{
			Key:         e.Key,
			Description: e.Description,
			Method:      "POST",
			Path:        "/entrypoints/" + e.Key,
			Price:       billing.FormatMinorUnits(e.Price),
			PriceMinor:  e.Price,
			Currency:    billing.Currency,
			Input:       e.Input,
		})
	}

	return Descriptor{
		Name:        a.name,
		Description: a.description,
		Version:     a.version,
		URL:         a.baseURL,
		IconURL:     a.baseURL + "/icon.png",
		Payment: PaymentInfo{
			Network:  "base",
			Currency: billing.Currency,
		},
		Entrypoints:   endpoints,
		TrustModels:   []string{"feedback"},
		Registrations: []Registration{},
	}
}
