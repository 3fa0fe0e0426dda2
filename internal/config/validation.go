package config

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validateSize validates the size format (e.g., "10MB", "1GB"); empty is
// acceptable since both bounds are optional.
func validateSize(fl validator.FieldLevel) bool {
	value := strings.ToUpper(strings.TrimSpace(fl.Field().String()))
	if value == "" {
		return true
	}
	re := regexp.MustCompile(`^\d+(B|KB|MB|GB|TB|PB)$`)
	return re.MatchString(value)
}

// validateColorCode checks if the field contains a valid hex color code.
func validateColorCode(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	re := regexp.MustCompile(`^#([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)
	return re.MatchString(value)
}
