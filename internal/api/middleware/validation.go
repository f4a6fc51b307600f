package middleware

import (
	stderrors "errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"briefly/internal/api/errors"
)

// Validator is implemented by request DTOs with rules beyond struct tags
type Validator interface {
	Validate() error
}

// ValidateRequest binds a JSON body and checks struct tags, then domain rules
func ValidateRequest(c *gin.Context, req interface{}) error {
	return validate(c.ShouldBindJSON(req), req, "invalid JSON format")
}

// ValidateQuery binds query parameters the same way ValidateRequest binds a body
func ValidateQuery(c *gin.Context, req interface{}) error {
	return validate(c.ShouldBindQuery(req), req, "invalid query parameters")
}

func validate(bindErr error, req interface{}, malformed string) error {
	if bindErr != nil {
		var fieldErrs validator.ValidationErrors
		if !stderrors.As(bindErr, &fieldErrs) {
			return errors.NewValidationError("Validation failed", map[string]string{"request": malformed})
		}

		details := make(map[string]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			details[strings.ToLower(fe.Field())] = describeTag(fe)
		}
		return errors.NewValidationError("Validation failed", details)
	}

	if v, ok := req.(Validator); ok {
		return v.Validate()
	}
	return nil
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "min":
		return "is too short"
	case "max":
		return "is too long"
	default:
		return "is invalid"
	}
}
