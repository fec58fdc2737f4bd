package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/MikeMC777/swadishta/internal/validate"
)

// HTTPError represents a standard error in JSON.
// swagger:model
type HTTPError struct {
	// Error message
	// example: not found
	Error string `json:"error"`
	// Per-field problems, only for validation failures
	Errors []validate.FieldError `json:"errors,omitempty"`
}

// Fail aborts the request with a JSON error body.
func Fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, HTTPError{Error: msg})
}

func FailValidation(c *gin.Context, status int, errs validate.Errors) {
	c.AbortWithStatusJSON(status, HTTPError{Error: "validation failed", Errors: errs})
}

// FailBind answers a ShouldBind error with 400. Failed binding tags are
// listed per field; anything else is malformed JSON.
func FailBind(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		Fail(c, http.StatusBadRequest, "invalid json")
		return
	}
	FailValidation(c, http.StatusBadRequest, BindErrors(verrs))
}

// BindErrors converts validator output into field errors named by JSON
// path, e.g. items[1].quantity.
func BindErrors(verrs validator.ValidationErrors) validate.Errors {
	out := make(validate.Errors, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		if _, rest, ok := strings.Cut(field, "."); ok {
			field = rest
		}
		out.Add(field, bindMessage(fe))
	}
	return out
}

func bindMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
}

// UseJSONFieldNames makes gin's validator report fields by their json tag.
func UseJSONFieldNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}
