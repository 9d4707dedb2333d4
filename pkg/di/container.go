// Package di provides dependency injection container
package di

import (
	"github.com/sramdig/sramdig/pkg/api"
)

// ServerStarter starts the inspection API server; swapped out in tests
// so the serve command can run without binding a socket.
type ServerStarter func(analysis api.Analysis, config api.ServerConfig) error

// Container holds all the dependencies for the application
type Container struct {
	serverStarter ServerStarter
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	return &Container{
		serverStarter: api.StartServer,
	}
}

// GetServerStarter returns the server starter
func (c *Container) GetServerStarter() ServerStarter {
	return c.serverStarter
}

// SetServerStarter allows overriding the server starter (for testing)
func (c *Container) SetServerStarter(starter ServerStarter) {
	c.serverStarter = starter
}
