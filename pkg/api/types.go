package api

import (
	"github.com/sramdig/sramdig/pkg/layout"
	"github.com/sramdig/sramdig/pkg/savefile"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Session string      `json:"session,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port   int
	APIKey string // X-API-Key value protecting the analysis routes; empty disables auth
}

// Analysis bundles the immutable inputs every handler reads: the loaded
// save image and the layout describing it. Nothing is mutated after
// startup, so handlers need no locking.
type Analysis struct {
	Image  *savefile.Image
	Layout *layout.Layout
}
