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

package auth

import (
	"log/slog"
	"time"

	"github.com/carehome-io/carehome/internal/api/gate"
	"github.com/carehome-io/carehome/internal/staff"
)

// New creates the authentication handlers.
func New(
	logger *slog.Logger,
	issuer TokenIssuer,
	resolver RefreshResolver,
	store staff.Store,
	recorder gate.Recorder,
	opts Options,
) *Auth {
	a := &Auth{
		logger:          logger,
		issuer:          issuer,
		resolver:        resolver,
		store:           store,
		recorder:        recorder,
		maxFailedLogins: opts.MaxFailedLogins,
		lockoutDuration: opts.LockoutDuration,
		now:             opts.Now,
	}

	if a.maxFailedLogins <= 0 {
		a.maxFailedLogins = DefaultMaxFailedLogins
	}
	if a.lockoutDuration <= 0 {
		a.lockoutDuration = DefaultLockoutDuration
	}
	if a.now == nil {
		a.now = time.Now
	}

	return a
}
