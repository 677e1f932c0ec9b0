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

package audit

import "strings"

// RedactedValue replaces the value of every sensitive key.
const RedactedValue = "[REDACTED]"

// sensitiveKeys holds normalized key names whose values never reach the log.
var sensitiveKeys = map[string]struct{}{
	"password":                {},
	"newpassword":             {},
	"currentpassword":         {},
	"passwordhash":            {},
	"token":                   {},
	"accesstoken":             {},
	"refreshtoken":            {},
	"authorization":           {},
	"secret":                  {},
	"nhsnumber":               {},
	"nationalinsurancenumber": {},
	"medicalhistory":          {},
	"diagnosis":               {},
	"emergencycontact":        {},
	"emergencycontacts":       {},
}

var keyNormalizer = strings.NewReplacer("_", "", "-", "", " ", "")

// IsSensitive reports whether key names a redacted field. Matching ignores
// case, underscores, hyphens, and spaces.
func IsSensitive(
	key string,
) bool {
	_, ok := sensitiveKeys[keyNormalizer.Replace(strings.ToLower(key))]
	return ok
}

// Redact returns a deep copy of details with every sensitive value
// replaced. It walks nested maps and slices of any shape and never mutates
// its input. Redacting an already redacted payload returns an equal payload.
func Redact(
	details map[string]any,
) map[string]any {
	if details == nil {
		return nil
	}

	return redactMap(details)
}

func redactMap(
	in map[string]any,
) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		if IsSensitive(k) {
			out[k] = RedactedValue
			continue
		}
		out[k] = redactValue(v)
	}

	return out
}

func redactValue(
	v any,
) any {
	switch t := v.(type) {
	case map[string]any:
		return redactMap(t)
	case map[string]string:
		m := make(map[string]any, len(t))
		for k, s := range t {
			m[k] = s
		}
		return redactMap(m)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = redactValue(item)
		}
		return out
	case []map[string]any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = redactMap(item)
		}
		return out
	default:
		return v
	}
}
