package config

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/rezkam/todolist/internal/env"
)

// APIKeyGenConfig holds all configuration for the apikey binary.
// Name, AccountID and DaysValid come from flags.
type APIKeyGenConfig struct {
	Storage StorageConfig

	Name      string
	AccountID string
	DaysValid int
}

// LoadAPIKeyGenConfig loads storage settings from the environment and
// validates them together with the flag values.
func LoadAPIKeyGenConfig(name, accountID string, daysValid int) (*APIKeyGenConfig, error) {
	cfg := &APIKeyGenConfig{
		Name:      name,
		AccountID: accountID,
		DaysValid: daysValid,
	}

	if err := env.Load(cfg); err != nil {
		return nil, fmt.Errorf("failed to load apikey config: %w", err)
	}

	return cfg, nil
}

// Validate validates the flag values. Storage is validated by env.Load.
func (c *APIKeyGenConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("name is required (use -name flag)")
	}
	if _, err := uuid.Parse(c.AccountID); err != nil {
		return fmt.Errorf("account must be a UUID (use -account flag): %w", err)
	}
	if c.DaysValid < 0 {
		return fmt.Errorf("days must be >= 0 (0 = never expires)")
	}
	return nil
}
