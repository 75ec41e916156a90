package middleware

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// SetupValidator configures the gin binding validator with custom tags
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	// Use JSON tag names for field names in errors
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})

	// papersize validates the paper size names slip templates accept
	_ = v.RegisterValidation("papersize", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "A4", "A5", "LETTER", "RECEIPT_80MM":
			return true
		}
		return false
	})

	// orientation validates page orientation names
	_ = v.RegisterValidation("orientation", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "PORTRAIT", "LANDSCAPE":
			return true
		}
		return false
	})
}
