package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Init configures the global validator used by Gin's binding.
// - Uses JSON tag names in errors.
// - Registers alias tags for the account rules.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		register(v)
	}
}

func register(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterAlias("pwd", "min=6,max=30")
	v.RegisterAlias("uname", "min=3,max=30")
}

// FirstMessage returns the message for the first failing field of req.
// Struct tags on that field override the generated text: `msg_<tag>` for a
// specific rule, then `msg` for any rule on the field.
func FirstMessage(err error, req any) string {
	if err == nil {
		return ""
	}
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) {
		if f, ok := fieldByJSONName(req, ute.Field); ok {
			if msg := tagMessage(f, "type"); msg != "" {
				return msg
			}
		}
		return ToDetails(err)["payload"]
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return ToDetails(err)["payload"]
	}
	fe := verrs[0]
	if f, ok := structType(req).FieldByName(fe.StructField()); ok {
		if msg := tagMessage(f, fe.Tag()); msg != "" {
			return msg
		}
	}
	return fe.Field() + " " + formatFieldError(fe)
}

func tagMessage(f reflect.StructField, tag string) string {
	if msg := f.Tag.Get("msg_" + tag); msg != "" {
		return msg
	}
	return f.Tag.Get("msg")
}

type noFields struct{}

func structType(req any) reflect.Type {
	t := reflect.TypeOf(req)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return reflect.TypeOf(noFields{})
	}
	return t
}

func fieldByJSONName(req any, name string) (reflect.StructField, bool) {
	t := structType(req)
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if strings.SplitN(f.Tag.Get("json"), ",", 2)[0] == name {
			return f, true
		}
	}
	return reflect.StructField{}, false
}

// ToDetails converts validation/binding errors into a map[field]message suitable for API error.details.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	// Invalid JSON payloads
	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		return map[string]string{"payload": "invalid json"}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = formatFieldError(fe)
		}
		return out
	}

	// Fallback
	return map[string]string{"payload": "invalid payload"}
}

func formatFieldError(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()

	switch tag {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "uuid", "uuid4":
		return "must be a valid UUID"
	case "numeric", "number":
		return "must be numeric"
	case "len":
		return fmt.Sprintf("must be exactly %s characters long", param)
	case "min", "max":
		word := "at least"
		if tag == "max" {
			word = "at most"
		}
		if isNumberKind(fe.Kind()) {
			return "must be " + word + " " + param
		}
		return "must be " + word + " " + param + " characters long"
	case "gte":
		return "must be greater than or equal to " + param
	case "lte":
		return "must be less than or equal to " + param
	case "eqfield":
		return "must be equal to " + param + " field"
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(param), ", ")
	case "pwd":
		return "must be between 6 and 30 characters"
	case "uname":
		return "must be between 3 and 30 characters"
	default:
		if param != "" {
			return fmt.Sprintf("validation failed for '%s' with parameter '%s'", tag, param)
		}
		return fmt.Sprintf("validation failed for '%s'", tag)
	}
}

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
