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

package principal

import (
	"errors"
	"fmt"

	"github.com/carehome-io/carehome/internal/authtoken"
)

// Resolution failures. Every error returned by Resolve wraps one of these.
var (
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrAccountDisabled  = errors.New("account disabled")
	ErrAccountLocked    = errors.New("account locked")
	ErrTokenStale       = errors.New("token predates credential change")
	ErrStoreUnavailable = errors.New("staff store unavailable")
)

// ResolveError carries the audit reason and the subject the token claimed,
// when the token verified far enough to name one.
type ResolveError struct {
	Reason  authtoken.ReasonCode
	Subject string
	Role    authtoken.Role
	Tenant  string
	kind    error
	cause   error
}

func (e *ResolveError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", e.kind.Error(), e.cause.Error())
	}

	return e.kind.Error()
}

// Is matches the sentinel kind and, through Unwrap, the cause.
func (e *ResolveError) Is(
	target error,
) bool {
	return target == e.kind
}

// Unwrap returns the underlying cause.
func (e *ResolveError) Unwrap() error {
	return e.cause
}

func newResolveError(
	kind error,
	reason authtoken.ReasonCode,
	claims *authtoken.CustomClaims,
	cause error,
) *ResolveError {
	e := &ResolveError{
		Reason: reason,
		kind:   kind,
		cause:  cause,
	}
	if claims != nil {
		e.Subject = claims.Subject
		e.Role = claims.Role
		e.Tenant = claims.TenantID
	}

	return e
}
