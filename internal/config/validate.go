package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Validate checks business rules that struct tags cannot express.
func (c *Config) Validate() error {
	var errs []error

	if len(c.Auth.JWTSecret) < 32 {
		errs = append(errs, fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret)))
	}
	if c.Auth.CodeLength < 4 || c.Auth.CodeLength > 10 {
		errs = append(errs, fmt.Errorf("auth.code_length must be between 4 and 10 (got %d)", c.Auth.CodeLength))
	}

	switch strings.ToLower(c.Store.Backend) {
	case "postgres":
	case "supabase":
		if c.Supabase.URL == "" || c.Supabase.ServiceRoleKey == "" {
			errs = append(errs, errors.New("supabase store requires supabase.url and supabase.service_role_key"))
		}
	default:
		errs = append(errs, fmt.Errorf("store.backend must be postgres or supabase (got %q)", c.Store.Backend))
	}

	if _, err := time.LoadLocation(c.Catalog.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("catalog.timezone: %w", err))
	}
	if c.Catalog.BatchSize <= 0 {
		errs = append(errs, fmt.Errorf("catalog.batch_size must be > 0 (got %d)", c.Catalog.BatchSize))
	}

	if c.Reminder.Enabled {
		if _, err := cron.ParseStandard(c.Reminder.Schedule); err != nil {
			errs = append(errs, fmt.Errorf("reminder.schedule: %w", err))
		}
	}

	return errors.Join(errs...)
}

// Location returns the display time zone. Validate guarantees it loads.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Catalog.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
