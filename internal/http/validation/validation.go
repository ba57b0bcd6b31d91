package validation

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type FieldErrors map[string]string

// FromBindError turns a bind/validation error into field -> message, keyed
// by the json tag of dst's fields.
func FromBindError(err error, dst any) FieldErrors {
	out := FieldErrors{}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			key := fieldKey(dst, fe.StructNamespace())
			out[key] = messageForTag(fe.Tag(), fe.Param())
		}
		return out
	}

	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) && ute.Field != "" {
		out[ute.Field] = "Wrong type."
		return out
	}

	out["_"] = "Request body is invalid."
	return out
}

// fieldKey resolves "Input.Address.Line1" to "address.line1".
func fieldKey(dst any, namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	t := reflect.TypeOf(dst)
	keys := make([]string, 0, len(parts))
	for _, p := range parts {
		for t != nil && (t.Kind() == reflect.Pointer || t.Kind() == reflect.Slice) {
			t = t.Elem()
		}
		name := p
		if i := strings.Index(name, "["); i >= 0 {
			name = name[:i]
		}
		key := strings.ToLower(name)
		if t != nil && t.Kind() == reflect.Struct {
			if f, ok := t.FieldByName(name); ok {
				if tag := jsonName(f); tag != "" {
					key = tag
				}
				t = f.Type
			} else {
				t = nil
			}
		}
		keys = append(keys, key)
	}
	return strings.Join(keys, ".")
}

func jsonName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" {
		tag = f.Tag.Get("form")
	}
	if i := strings.Index(tag, ","); i >= 0 {
		tag = tag[:i]
	}
	if tag == "-" {
		return ""
	}
	return tag
}

func messageForTag(tag, param string) string {
	switch tag {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid e-mail address."
	case "min":
		return "Must be at least " + param + "."
	case "max":
		return "Must be at most " + param + "."
	case "gte":
		return "Must be " + param + " or more."
	case "lte":
		return "Must be " + param + " or less."
	case "oneof":
		return "Must be one of: " + param + "."
	case "uuid", "uuid4":
		return "Must be a valid id."
	case "len":
		return "Must be exactly " + param + " characters."
	default:
		return "Invalid value."
	}
}
