package experiment

import "fmt"

// ConfigError reports a Config field the Runner cannot work with.
type ConfigError struct {
	Field string
	Value any
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Value)
}
