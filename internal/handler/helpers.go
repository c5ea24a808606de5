package handler

import "github.com/uvichacks/showcase/pkg/validator"

func formatValidationError(err error) string {
	return validator.FormatValidationError(err)
}
