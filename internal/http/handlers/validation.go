package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/tbourn/pugorugh-backend/internal/domain"
)

// codeSets backs the `codeset=<name>` binding tag: the field is a
// comma-joined list whose every code must belong to the named set.
var codeSets = map[string][]string{
	"gender": domain.GenderCodes,
	"size":   domain.SizeCodes,
	"age":    domain.AgeCodes,
}

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterValidators installs the custom binding tags on gin's validator and
// makes validation errors report JSON field names. Safe to call repeatedly.
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("handlers: gin binding engine is not go-playground/validator")
			return
		}
		v.RegisterTagNameFunc(jsonFieldName)
		registerErr = v.RegisterValidation("codeset", validateCodeSet)
	})
	return registerErr
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

func validateCodeSet(fl validator.FieldLevel) bool {
	allowed, ok := codeSets[fl.Param()]
	if !ok {
		return false
	}
	for _, c := range domain.SplitCodes(fl.Field().String()) {
		if !domain.ValidCode(c, allowed) {
			return false
		}
	}
	return true
}

// bindingMessage turns a bind error into a client-facing message naming the
// offending fields and, for code fields, the allowed values.
func bindingMessage(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return "invalid JSON body"
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "codeset":
			msgs = append(msgs, fmt.Sprintf("%s: allowed values are %s", field, strings.Join(codeSets[fe.Param()], ", ")))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of %s", field, strings.ReplaceAll(fe.Param(), " ", ", ")))
		case "min", "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", field, fe.Param()))
		case "max", "lte":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s", field, fe.Param()))
		default:
			msgs = append(msgs, field+" is invalid")
		}
	}
	return strings.Join(msgs, "; ")
}
