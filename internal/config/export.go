package config

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/rezkam/todolist/internal/env"
)

// Export sinks.
const (
	SinkFS  = "fs"
	SinkGCS = "gcs"
)

// ExportConfig holds all configuration for the export binary.
type ExportConfig struct {
	Storage StorageConfig

	Sink      string `env:"TODOLIST_EXPORT_SINK" default:"fs"`
	FSDir     string `env:"TODOLIST_EXPORT_FS_DIR" default:"./todolist-export"`
	GCSBucket string `env:"TODOLIST_EXPORT_GCS_BUCKET"`

	AccountID string
}

// LoadExportConfig loads export settings from the environment for the
// account given on the command line.
func LoadExportConfig(accountID string) (*ExportConfig, error) {
	cfg := &ExportConfig{AccountID: accountID}

	if err := env.Load(cfg); err != nil {
		return nil, fmt.Errorf("failed to load export config: %w", err)
	}

	return cfg, nil
}

// Validate validates the sink selection and the account.
func (c *ExportConfig) Validate() error {
	switch c.Sink {
	case SinkFS:
		if c.FSDir == "" {
			return fmt.Errorf("TODOLIST_EXPORT_FS_DIR is required when TODOLIST_EXPORT_SINK is 'fs'")
		}
	case SinkGCS:
		if c.GCSBucket == "" {
			return fmt.Errorf("TODOLIST_EXPORT_GCS_BUCKET is required when TODOLIST_EXPORT_SINK is 'gcs'")
		}
	default:
		return fmt.Errorf("unknown TODOLIST_EXPORT_SINK: %q", c.Sink)
	}
	if _, err := uuid.Parse(c.AccountID); err != nil {
		return fmt.Errorf("account must be a UUID (use -account flag): %w", err)
	}
	return nil
}
