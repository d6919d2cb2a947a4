package utils

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps go-playground/validator so handlers get messages that
// name the offending fields instead of the library's raw error dump.
type CustomValidator struct {
	validate *validator.Validate
}

var (
	validatorOnce sync.Once
	sharedVal     *CustomValidator
)

// GetValidator returns the process-wide validator instance.
func GetValidator() *CustomValidator {
	validatorOnce.Do(func() {
		sharedVal = &CustomValidator{validate: validator.New()}
	})
	return sharedVal
}

// Validate checks the struct's validate tags. Required-field violations are
// collected into a single message naming each missing field.
func (v *CustomValidator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	var missing []string
	var other []string
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		if fe.Tag() == "required" {
			missing = append(missing, field)
			continue
		}
		other = append(other, fmt.Sprintf("%s is invalid (%s)", field, fe.Tag()))
	}

	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "please fill all required fields: "+strings.Join(missing, ", "))
	}
	parts = append(parts, other...)
	return fmt.Errorf("%s", strings.Join(parts, "; "))
}
