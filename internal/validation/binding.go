package validation

import (
	"errors"
	"io"
	"reflect"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	binding.EnableDecoderDisallowUnknownFields = true
	binding.Validator = &ginValidator{validate: validate}
}

// ginValidator runs gin's ShouldBind* validation through the shared
// validator so bound requests get the validate tags and custom rules.
type ginValidator struct {
	validate *validator.Validate
}

func (g *ginValidator) ValidateStruct(obj any) error {
	if obj == nil {
		return nil
	}
	v := reflect.ValueOf(obj)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Struct:
		return g.validate.Struct(obj)
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if err := g.ValidateStruct(v.Index(i).Interface()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *ginValidator) Engine() any { return g.validate }

// BindError converts an error from gin's ShouldBind* into the client message.
func BindError(err error) *Error {
	var ve *Error
	var verrs validator.ValidationErrors
	switch {
	case err == nil:
		return nil
	case errors.As(err, &ve):
		return ve
	case errors.As(err, &verrs) && len(verrs) > 0:
		return &Error{Message: message(verrs[0])}
	case errors.Is(err, io.EOF):
		return newError(`"value" is required`)
	}
	return decodeError(err)
}
