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

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v4"

	"github.com/carehome-io/carehome/internal/validation"
)

// Verify parses the token, checks its signature, and checks expiry against
// the codec clock. Failures wrap ErrInvalidToken or ErrExpiredToken.
func (t *Token) Verify(
	tokenString string,
) (*CustomClaims, error) {
	claims := &CustomClaims{}

	// Time-based claims are checked below against t.now so tests and
	// callers share one clock.
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	_, err := parser.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return t.signingKey, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidToken, err.Error())
	}

	if errMsg, ok := validation.Struct(claims); !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidToken, errMsg)
	}

	if claims.Subject == "" || claims.IssuedAt == nil || claims.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: missing registered claims", ErrInvalidToken)
	}

	if !claims.VerifyIssuer(Issuer, true) {
		return nil, fmt.Errorf("%w: unexpected issuer %q", ErrInvalidToken, claims.Issuer)
	}

	if !claims.VerifyExpiresAt(t.now(), true) {
		return nil, ErrExpiredToken
	}

	return claims, nil
}

// VerifyKind verifies the token and requires it to be of the given kind.
func (t *Token) VerifyKind(
	tokenString string,
	kind Kind,
) (*CustomClaims, error) {
	claims, err := t.Verify(tokenString)
	if err != nil {
		return nil, err
	}

	if claims.Kind != kind {
		return nil, fmt.Errorf("%w: expected %s token", ErrInvalidToken, kind)
	}

	return claims, nil
}

// ReasonFor maps a Verify error to the audit reason code.
func ReasonFor(
	err error,
) ReasonCode {
	if errors.Is(err, ErrExpiredToken) {
		return ReasonTokenExpired
	}

	return ReasonTokenInvalid
}
