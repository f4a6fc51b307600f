package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

var validate = validator.New()

// ValidateTimeout validates timeout duration
func ValidateTimeout(timeout time.Duration, name string) error {
	if timeout <= 0 {
		return fmt.Errorf("%s timeout must be positive", name)
	}
	if timeout > 30*time.Minute {
		return fmt.Errorf("%s timeout too large (max 30 minutes)", name)
	}
	return nil
}

// Validate checks the whole configuration and reports every problem at once.
// knownTypes lists the adapter types the factory can build.
func (c *Config) Validate(knownTypes []string) error {
	var problems []string

	if err := validate.Struct(c); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) {
			for _, fe := range fieldErrors {
				problems = append(problems, describeFieldError(fe))
			}
		} else {
			problems = append(problems, err.Error())
		}
	}

	timeouts := []struct {
		name  string
		value time.Duration
	}{
		{"read", c.Server.ReadTimeout},
		{"write", c.Server.WriteTimeout},
		{"idle", c.Server.IdleTimeout},
	}
	for _, timeout := range timeouts {
		if err := ValidateTimeout(timeout.value, timeout.name); err != nil {
			problems = append(problems, err.Error())
		}
	}

	for _, name := range c.Providers.ProviderNames() {
		pc := c.Providers.Providers[name]
		if pc.Priority < 0 {
			problems = append(problems, fmt.Sprintf("provider %s: priority must not be negative", name))
		}
		if pc.Performance.TimeoutSec < 0 {
			problems = append(problems, fmt.Sprintf("provider %s: timeout_sec must not be negative", name))
		}
		if knownTypes != nil && !lo.Contains(knownTypes, pc.Type) {
			problems = append(problems, fmt.Sprintf("provider %s: unknown type %q", name, pc.Type))
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(problems, "\n  - "))
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Namespace())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %v", fe.Namespace(), fe.Param(), fe.Value())
	case "min", "max":
		return fmt.Sprintf("%s out of range (%s=%s), got %v", fe.Namespace(), fe.Tag(), fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag())
	}
}
