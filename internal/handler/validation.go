package handler

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator for request payload structs.
var validate = validator.New()

// fieldErrors flattens a validator error into a field → failed-tag map
// suitable for inline display next to the offending field.
func fieldErrors(err error) map[string]string {
	out := make(map[string]string)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			out[strings.ToLower(fe.Field())] = fe.Tag()
		}
	}
	return out
}
