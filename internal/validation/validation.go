// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

// Package validation holds the shared validator. Failures are reported with
// the field's wire name (json, query, or param tag) so API callers see the
// name they sent.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var instance = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(wireName)

	return v
}

// wireName picks the name a client uses for a struct field.
func wireName(
	f reflect.StructField,
) string {
	for _, tag := range []string{"json", "query", "param", "mapstructure"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}

	return f.Name
}

// Struct validates v and returns a message describing every failure.
func Struct(
	v any,
) (string, bool) {
	if err := instance.Struct(v); err != nil {
		return describe(err), false
	}

	return "", true
}

// Var validates a single value against tag.
func Var(
	field any,
	tag string,
) (string, bool) {
	if err := instance.Var(field, tag); err != nil {
		return describe(err), false
	}

	return "", true
}

// Instance returns the shared validator for registering custom rules.
func Instance() *validator.Validate {
	return instance
}

func describe(
	err error,
) string {
	var fes validator.ValidationErrors
	if !errors.As(err, &fes) {
		return err.Error()
	}

	msgs := make([]string, 0, len(fes))
	for _, fe := range fes {
		if fe.Field() == "" {
			msgs = append(msgs, reason(fe))
			continue
		}
		msgs = append(msgs, path(fe)+" "+reason(fe))
	}

	return strings.Join(msgs, "; ")
}

// path is the field's namespace without the root type, so nested config
// keys read as "api.server.security.signing_key".
func path(
	fe validator.FieldError,
) string {
	if _, rest, ok := strings.Cut(fe.Namespace(), "."); ok {
		return rest
	}

	return fe.Field()
}

func reason(
	fe validator.FieldError,
) string {
	if allowed, ok := enumValues(fe.Tag()); ok {
		return fmt.Sprintf("must be one of %s, got %q", strings.Join(allowed, ", "), fmt.Sprint(fe.Value()))
	}

	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "oneof":
		return fmt.Sprintf("must be one of %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "len":
		return fmt.Sprintf("must be exactly %s long", fe.Param())
	case "numeric":
		return "must be numeric"
	case "email":
		return "must be an email address"
	case "cidr":
		return "must be a CIDR range"
	case "uuid", "uuid4":
		return "must be a UUID"
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
