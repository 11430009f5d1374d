package api

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"soulmate/backend/internal/catalog"
)

var validatorsOnce sync.Once

// registerValidators adds the custom tags to gin's validator.
func registerValidators() {
	validatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
			_, known := catalog.Lookup(catalog.Category(fl.Field().String()))
			return known
		})
	})
}

// fieldErrors flattens validator errors into field -> message.
func fieldErrors(err error) map[string]string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			out[fe.Field()] = "is required"
		case "category":
			out[fe.Field()] = fmt.Sprintf("unknown category %q", fe.Value())
		case "email":
			out[fe.Field()] = "must be an email address"
		case "gte", "min":
			out[fe.Field()] = fmt.Sprintf("must be at least %s", fe.Param())
		default:
			out[fe.Field()] = fmt.Sprintf("failed %s validation", fe.Tag())
		}
	}
	return out
}
