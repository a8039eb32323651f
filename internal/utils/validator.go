package utils

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prperemyshlev/task-manager/internal/domain"
)

// RegisterValidators installs the custom binding tags used by request DTOs:
// "notblank" rejects whitespace-only strings, "taskstatus" accepts known task statuses.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
	}

	if err := v.RegisterValidation("notblank", validateNotBlank); err != nil {
		return fmt.Errorf("failed to register notblank: %w", err)
	}
	if err := v.RegisterValidation("taskstatus", validateTaskStatus); err != nil {
		return fmt.Errorf("failed to register taskstatus: %w", err)
	}

	return nil
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func validateTaskStatus(fl validator.FieldLevel) bool {
	return domain.TaskStatus(fl.Field().String()).Valid()
}

// SanitizeEmail sanitizes an email address
func SanitizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
