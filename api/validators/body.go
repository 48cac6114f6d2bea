// Package validators decodes and validates request bodies.
package validators

import (
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/chickorder/web/pkg/errors"
	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

var validate = validator.New(validator.WithRequiredStructEnabled())

// DecodeJSONBody parses the request body into dst and runs struct-tag
// validation. Failures come back as VALIDATION_ERROR with per-field details.
func DecodeJSONBody(r *http.Request, dst any) error {
	defer io.Copy(io.Discard, r.Body)

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return errors.Wrap(errors.CodeValidation, err, "invalid request body").
			WithDetails(map[string]string{"body": "must be valid JSON"})
	}

	if err := validate.Struct(dst); err != nil {
		var fieldErrors validator.ValidationErrors
		if stdErrors.As(err, &fieldErrors) {
			details := make(map[string]string, len(fieldErrors))
			for _, fe := range fieldErrors {
				details[strings.ToLower(fe.Field())] = tagMessage(fe)
			}
			return errors.New(errors.CodeValidation, "validation failed").WithDetails(details)
		}
		return errors.Wrap(errors.CodeValidation, err, "validation failed")
	}
	return nil
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
