package container

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/garyjia/expense-journal/internal/application/service"
	"github.com/garyjia/expense-journal/internal/config"
	httpserver "github.com/garyjia/expense-journal/internal/interfaces/http"
	"github.com/garyjia/expense-journal/internal/packager"
	"github.com/garyjia/expense-journal/internal/settings"
	"github.com/garyjia/expense-journal/internal/voucher"
	"github.com/garyjia/expense-journal/pkg/utils"
	"go.uber.org/zap"
)

// Container owns the settings store, the application services and the HTTP
// server. It is the only holder of the active settings document.
type Container struct {
	config *config.Config
	logger *zap.Logger

	store    *settings.Store
	services *ServiceBundle
	server   *httpserver.Server

	mu     sync.Mutex
	ready  atomic.Bool
	closed atomic.Bool
}

// ServiceBundle groups all application services.
type ServiceBundle struct {
	Conversion service.ConversionService
	Settings   service.SettingsService
}

// HealthStatus represents the health of all components.
type HealthStatus struct {
	Overall    bool                       `json:"overall"`
	Components map[string]ComponentHealth `json:"components"`
}

// ComponentHealth represents health of a single component.
type ComponentHealth struct {
	Healthy bool   `json:"healthy"`
	Message string `json:"message,omitempty"`
}

// NewContainer creates a new container from configuration.
// It does not initialize components - call Init() to initialize.
func NewContainer(cfg *config.Config, logger *zap.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Container{
		config: cfg,
		logger: logger,
	}, nil
}

// Init loads the settings document and wires services and the HTTP server.
// A missing settings file is not an error; defaults apply.
func (c *Container) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return fmt.Errorf("container has been closed")
	}
	if c.ready.Load() {
		return fmt.Errorf("container already initialized")
	}

	c.store = settings.NewStore(c.config.Settings.Path, c.logger.Named("settings"))
	if _, err := c.store.Load(); err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	kv := utils.NewKeyValueLogger(c.logger)
	c.services = &ServiceBundle{
		Conversion: service.NewConversionService(
			c.store,
			voucher.NewConverter(c.logger.Named("voucher")),
			packager.New(c.logger.Named("packager")),
			time.Now,
			kv,
		),
		Settings: service.NewSettingsService(c.store, kv),
	}

	c.server = httpserver.NewServer(httpserver.ServerConfig{
		Host:           c.config.Server.Host,
		Port:           c.config.Server.Port,
		ReadTimeout:    c.config.Server.ReadTimeout,
		WriteTimeout:   c.config.Server.WriteTimeout,
		MaxUploadBytes: c.config.Server.MaxUploadBytes,
		Version:        c.config.App.Version,
	}, c.services.Conversion, c.services.Settings, kv)

	c.ready.Store(true)
	c.logger.Info("Container initialized",
		zap.String("settings_path", c.store.Path()),
		zap.String("address", c.server.Address()))

	return nil
}

// Run serves HTTP until ctx is cancelled, then shuts the server down
func (c *Container) Run(ctx context.Context) error {
	if !c.ready.Load() {
		return fmt.Errorf("container not initialized")
	}
	return c.server.Start(ctx)
}

// Close stops the HTTP server. It is safe to call after Run returned.
func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Swap(true) {
		return fmt.Errorf("container already closed")
	}

	c.logger.Info("Closing container")
	c.ready.Store(false)

	if c.server != nil {
		if err := c.server.Stop(); err != nil {
			return fmt.Errorf("stop http server: %w", err)
		}
	}

	c.logger.Info("Container closed")
	return nil
}

// Ready reports whether Init completed and Close has not been called
func (c *Container) Ready() bool {
	return c.ready.Load()
}

// Health reports the state of each component
func (c *Container) Health() *HealthStatus {
	status := &HealthStatus{
		Overall:    true,
		Components: make(map[string]ComponentHealth),
	}

	if c.store == nil {
		status.Components["settings"] = ComponentHealth{Healthy: false, Message: "not loaded"}
	} else if err := c.store.Current().Validate(); err != nil {
		status.Components["settings"] = ComponentHealth{Healthy: false, Message: err.Error()}
	} else {
		status.Components["settings"] = ComponentHealth{Healthy: true}
	}

	if c.server == nil {
		status.Components["http"] = ComponentHealth{Healthy: false, Message: "not initialized"}
	} else {
		status.Components["http"] = ComponentHealth{Healthy: true, Message: c.server.Address()}
	}

	for _, comp := range status.Components {
		if !comp.Healthy {
			status.Overall = false
		}
	}
	return status
}

// Services returns the application services
func (c *Container) Services() *ServiceBundle {
	return c.services
}

// Server returns the HTTP server
func (c *Container) Server() *httpserver.Server {
	return c.server
}

// Settings returns the settings store
func (c *Container) Settings() *settings.Store {
	return c.store
}
