package email

import (
	"context"
	"fmt"

	"github.com/pelatformlabs/toolkits-sub000/component"
	"github.com/pelatformlabs/toolkits-sub000/logger"
)

// Component wraps Service and implements component.Component for lifecycle
// management.
type Component struct {
	service *Service
	cfg     Config
	log     *logger.Logger
}

var _ component.Component = (*Component)(nil)

// NewComponent creates an email component for use with the component registry.
func NewComponent(cfg Config, log *logger.Logger) *Component {
	if log == nil {
		log = logger.Get("email")
	}
	c := &Component{cfg: cfg, log: log.WithComponent("email")}
	// Make the component logger retrievable by name.
	logger.Register("email", c.log)
	return c
}

// Service returns the underlying Service, or nil if not started.
func (c *Component) Service() *Service { return c.service }

// Name returns the component name.
func (c *Component) Name() string { return "email" }

// Start constructs the email service.
func (c *Component) Start(_ context.Context) error {
	if !c.cfg.Enabled {
		c.log.Info("email component is disabled")
		return nil
	}
	svc, err := NewService(c.cfg, c.log)
	if err != nil {
		return fmt.Errorf("email start: %w", err)
	}
	c.service = svc
	return nil
}

// Stop shuts down the email component.
func (c *Component) Stop(_ context.Context) error {
	c.service = nil
	return nil
}

// Health reports the component's health. Transports are connectionless, so
// a constructed service counts as healthy.
func (c *Component) Health(_ context.Context) component.Health {
	if !c.cfg.Enabled {
		return component.Health{Name: c.Name(), Status: component.StatusHealthy, Message: "disabled"}
	}
	if c.service == nil {
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: "email not initialized"}
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

// Describe returns infrastructure summary info for the bootstrap display.
func (c *Component) Describe() component.Description {
	details := fmt.Sprintf("provider=%s", c.cfg.Provider)
	if c.cfg.From != "" {
		details += fmt.Sprintf(" from=%s", c.cfg.From)
	}
	return component.Description{Name: "Email", Type: "email", Details: details}
}
