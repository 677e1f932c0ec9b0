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

package authtoken

// ReasonCode explains why a request was denied or failed. It is the only
// part of a permission decision that is ever persisted.
type ReasonCode string

// Reason codes for permission decisions.
const (
	ReasonRoleInsufficient ReasonCode = "role-insufficient"
	ReasonResourceNotOwned ReasonCode = "resource-not-owned"
	ReasonAccountLocked    ReasonCode = "account-locked"
	ReasonAccountInactive  ReasonCode = "account-inactive"
	ReasonTokenStale       ReasonCode = "token-stale"
)

// Reason codes for the remaining gate outcomes.
const (
	ReasonTokenMissing     ReasonCode = "token-missing"
	ReasonTokenInvalid     ReasonCode = "token-invalid"
	ReasonTokenExpired     ReasonCode = "token-expired"
	ReasonPrincipalUnknown ReasonCode = "principal-unknown"
	ReasonResourceNotFound ReasonCode = "resource-not-found"
	ReasonStoreUnavailable ReasonCode = "store-unavailable"
	ReasonHandlerError     ReasonCode = "handler-error"
	ReasonOutcomeUnknown   ReasonCode = "outcome-unknown"
	ReasonBadCredentials   ReasonCode = "bad-credentials"
)
