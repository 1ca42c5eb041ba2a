package config

import (
	"fmt"
	"time"

	"github.com/rezkam/todolist/internal/env"
)

// ServerConfig holds all configuration for the server binary.
type ServerConfig struct {
	Storage         StorageConfig
	HTTP            HTTPConfig
	Auth            AuthConfig
	Todo            TodoConfig
	Observability   ObservabilityConfig
	ShutdownTimeout time.Duration `env:"TODOLIST_SHUTDOWN_TIMEOUT" default:"10s"`
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Host              string        `env:"TODOLIST_HTTP_HOST"`
	Port              string        `env:"TODOLIST_HTTP_PORT" default:"8080"`
	ReadTimeout       time.Duration `env:"TODOLIST_HTTP_READ_TIMEOUT" default:"5s"`
	WriteTimeout      time.Duration `env:"TODOLIST_HTTP_WRITE_TIMEOUT" default:"10s"`
	IdleTimeout       time.Duration `env:"TODOLIST_HTTP_IDLE_TIMEOUT" default:"120s"`
	ReadHeaderTimeout time.Duration `env:"TODOLIST_HTTP_READ_HEADER_TIMEOUT" default:"2s"`
	MaxHeaderBytes    int           `env:"TODOLIST_HTTP_MAX_HEADER_BYTES" default:"1048576"`
	MaxBodyBytes      int64         `env:"TODOLIST_HTTP_MAX_BODY_BYTES" default:"1048576"`
}

// Addr is the listen address.
func (c *HTTPConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("TODOLIST_HTTP_PORT is required")
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("TODOLIST_HTTP_MAX_BODY_BYTES must be positive, got %d", c.MaxBodyBytes)
	}
	return nil
}

// AuthConfig holds authenticator configuration.
type AuthConfig struct {
	OperationTimeout time.Duration `env:"TODOLIST_AUTH_OPERATION_TIMEOUT" default:"5s"`
	UpdateQueueSize  int           `env:"TODOLIST_AUTH_UPDATE_QUEUE_SIZE" default:"1000"`
}

// TodoConfig holds todo service and handler configuration.
type TodoConfig struct {
	MaxPageSize int `env:"TODOLIST_MAX_PAGE_SIZE" default:"100"`

	// Timezone decides which calendar day "today" is.
	Timezone *time.Location `env:"TODOLIST_TIMEZONE" default:"UTC"`

	ListsPageSize   int `env:"TODOLIST_LISTS_PAGE_SIZE" default:"5"`
	EntriesPageSize int `env:"TODOLIST_ENTRIES_PAGE_SIZE" default:"4"`
	NotesPageSize   int `env:"TODOLIST_NOTES_PAGE_SIZE" default:"3"`
}

// Validate validates the todo configuration.
func (c *TodoConfig) Validate() error {
	if c.MaxPageSize < 1 {
		return fmt.Errorf("TODOLIST_MAX_PAGE_SIZE must be at least 1, got %d", c.MaxPageSize)
	}
	for name, size := range map[string]int{
		"TODOLIST_LISTS_PAGE_SIZE":   c.ListsPageSize,
		"TODOLIST_ENTRIES_PAGE_SIZE": c.EntriesPageSize,
		"TODOLIST_NOTES_PAGE_SIZE":   c.NotesPageSize,
	} {
		if size < 1 || size > c.MaxPageSize {
			return fmt.Errorf("%s must be between 1 and %d, got %d", name, c.MaxPageSize, size)
		}
	}
	return nil
}

// ObservabilityConfig holds observability configuration.
type ObservabilityConfig struct {
	OTelEnabled bool   `env:"TODOLIST_OTEL_ENABLED" default:"false"`
	ServiceName string `env:"OTEL_SERVICE_NAME" default:"todolist"`
}

// LoadServerConfig loads and validates server configuration from environment.
func LoadServerConfig() (*ServerConfig, error) {
	cfg := &ServerConfig{}

	if err := env.Load(cfg); err != nil {
		return nil, fmt.Errorf("failed to load server config: %w", err)
	}

	return cfg, nil
}
