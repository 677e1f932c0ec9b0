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

package validation

import (
	"reflect"
	"slices"
	"sync"

	"github.com/go-playground/validator/v10"
)

var enums sync.Map

// RegisterEnum registers tag as a string rule accepting exactly allowed.
// Packages owning a closed set of values (roles, webhook sources) call it
// from init so struct tags can name the set without an import cycle.
func RegisterEnum(
	tag string,
	allowed ...string,
) {
	values := slices.Clone(allowed)
	enums.Store(tag, values)

	_ = instance.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() != reflect.String {
			return false
		}

		return slices.Contains(values, field.String())
	})
}

func enumValues(
	tag string,
) ([]string, bool) {
	v, ok := enums.Load(tag)
	if !ok {
		return nil, false
	}

	return v.([]string), true
}
