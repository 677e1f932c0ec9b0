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

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/carehome-io/carehome/internal/authtoken"
	"github.com/carehome-io/carehome/internal/cli"
)

// TokenVerifier parses and verifies session tokens.
type TokenVerifier interface {
	Verify(tokenString string) (*authtoken.CustomClaims, error)
}

// tokenValidateCmd represents the tokenValidate command.
var tokenValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a token signature and claims",
	Long: `Validate a session token by checking its signature, issuer, expiry and
claims. This does not consult the staff store, so a valid token may still
be rejected by the gate for a disabled or changed account.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		tokenString, _ := cmd.Flags().GetString("token")

		var tv TokenVerifier = newTokenCodec(logger)
		claims, err := tv.Verify(tokenString)
		if err != nil {
			cli.LogFatal(logger, "failed to validate token", err,
				"reason", string(authtoken.ReasonFor(err)))
		}

		fmt.Println()
		cli.PrintKV("Subject", claims.Subject, "Role", string(claims.Role))
		cli.PrintKV("Tenant", claims.TenantID, "Kind", string(claims.Kind))
		cli.PrintKV("Issued", claims.IssuedAt.Format(time.RFC3339),
			"Expires", claims.ExpiresAt.Format(time.RFC3339),
		)
	},
}

func init() {
	tokenCmd.AddCommand(tokenValidateCmd)

	tokenValidateCmd.PersistentFlags().StringP("token", "t", "", "The token string")

	_ = tokenValidateCmd.MarkPersistentFlagRequired("token")
}
