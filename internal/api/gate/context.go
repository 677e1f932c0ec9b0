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

package gate

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/carehome-io/carehome/internal/audit"
	"github.com/carehome-io/carehome/internal/principal"
)

// PrincipalFrom returns the principal the gate resolved for this request,
// or nil on ungated routes.
func PrincipalFrom(
	c echo.Context,
) *principal.Principal {
	p, _ := c.Get(contextKeyPrincipal).(*principal.Principal)
	return p
}

// SetPrincipal attaches p to the request.
func SetPrincipal(
	c echo.Context,
	p *principal.Principal,
) {
	c.Set(contextKeyPrincipal, p)
}

// SetAuditDetails merges a coarse change summary into the request's audit
// record. Values are redacted before they are persisted.
func SetAuditDetails(
	c echo.Context,
	details map[string]any,
) {
	merged, _ := c.Get(contextKeyDetails).(map[string]any)
	if merged == nil {
		merged = make(map[string]any, len(details))
	}
	for k, v := range details {
		merged[k] = v
	}
	c.Set(contextKeyDetails, merged)
}

// SetTargetID names the audited target when the handler creates it.
func SetTargetID(
	c echo.Context,
	id string,
) {
	c.Set(contextKeyTargetID, id)
}

func detailsFrom(
	c echo.Context,
) map[string]any {
	d, _ := c.Get(contextKeyDetails).(map[string]any)
	return d
}

// NewEvent starts an audit event carrying the request's correlation fields.
func NewEvent(
	c echo.Context,
	action string,
	targetType string,
	category audit.Category,
) audit.Event {
	requestID := c.Response().Header().Get(echo.HeaderXRequestID)
	if requestID == "" {
		requestID = c.Request().Header.Get(echo.HeaderXRequestID)
	}

	return audit.Event{
		Action:     action,
		TargetType: targetType,
		Category:   category,
		RequestID:  requestID,
		SourceIP:   c.RealIP(),
	}
}

// BearerToken extracts the token from an "Authorization: Bearer" header.
func BearerToken(
	r *http.Request,
) (string, bool) {
	header := r.Header.Get(echo.HeaderAuthorization)
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)

	return token, token != ""
}

// Unauthorized writes the generic 401 body.
func Unauthorized(
	c echo.Context,
) error {
	return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: msgUnauthorized})
}

// Forbidden writes the generic 403 body.
func Forbidden(
	c echo.Context,
) error {
	return c.JSON(http.StatusForbidden, ErrorResponse{Error: msgForbidden})
}

// NotFound writes the generic 404 body.
func NotFound(
	c echo.Context,
) error {
	return c.JSON(http.StatusNotFound, ErrorResponse{Error: msgNotFound})
}

// Internal writes the generic 500 body.
func Internal(
	c echo.Context,
) error {
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: msgInternal})
}
