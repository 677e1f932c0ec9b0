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
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/carehome-io/carehome/internal/authtoken"
	"github.com/carehome-io/carehome/internal/cli"
	"github.com/carehome-io/carehome/internal/staff"
	"github.com/carehome-io/carehome/internal/validation"
)

// staffCreateInput is validated before any database work happens.
type staffCreateInput struct {
	Email  string `validate:"required,email"`
	Name   string `validate:"required"`
	Role   string `validate:"required,staff_role"`
	Tenant string `validate:"required"`
}

// staffCreateCmd represents the staffCreate command.
var staffCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a staff account",
	Long: `Create a staff account directly in the database. Use this to seed the
first administrator; later accounts can be created through the API.
The password is read from the terminal when --password is not given.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := cmd.Context()

		email, _ := cmd.Flags().GetString("email")
		name, _ := cmd.Flags().GetString("name")
		role, _ := cmd.Flags().GetString("role")
		tenant, _ := cmd.Flags().GetString("tenant")
		password, _ := cmd.Flags().GetString("password")

		input := staffCreateInput{
			Email:  strings.ToLower(strings.TrimSpace(email)),
			Name:   name,
			Role:   role,
			Tenant: tenant,
		}
		if errMsg, ok := validation.Struct(input); !ok {
			cli.LogFatal(logger, "invalid staff account", fmt.Errorf("%s", errMsg))
		}

		if password == "" {
			password = readPassword()
		}

		hash, err := staff.HashPassword(password)
		if err != nil {
			cli.LogFatal(logger, "failed to hash password", err)
		}

		db := openDatabase(ctx, logger)
		defer func() { _ = db.Close() }()

		now := time.Now().UTC()
		rec := &staff.Record{
			ID:                  uuid.NewString(),
			TenantID:            input.Tenant,
			Email:               input.Email,
			Name:                input.Name,
			Role:                authtoken.Role(input.Role),
			Active:              true,
			CredentialChangedAt: now,
			PasswordHash:        hash,
			CreatedAt:           now,
		}

		if err := staff.NewPGStore(db).Create(ctx, rec); err != nil {
			cli.LogFatal(logger, "failed to create staff account", err)
		}

		logger.Info(
			"created staff account",
			slog.String("id", rec.ID),
			slog.String("email", rec.Email),
			slog.String("role", string(rec.Role)),
		)
	},
}

func readPassword() string {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		cli.LogFatal(logger, "password required", fmt.Errorf("stdin is not a terminal"))
	}

	fmt.Print("Password: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		cli.LogFatal(logger, "failed to read password", err)
	}

	return string(raw)
}

func init() {
	staffCmd.AddCommand(staffCreateCmd)

	staffCreateCmd.Flags().String("email", "", "Login email address")
	staffCreateCmd.Flags().String("name", "", "Display name")
	staffCreateCmd.Flags().
		String("role", string(authtoken.RoleStaff),
			fmt.Sprintf("Role (allowed: %s)", strings.Join(authtoken.GenerateAllowedRoles(), ", ")))
	staffCreateCmd.Flags().String("tenant", "", "Care facility ID")
	staffCreateCmd.Flags().String("password", "", "Initial password")

	_ = staffCreateCmd.MarkFlagRequired("email")
	_ = staffCreateCmd.MarkFlagRequired("name")
	_ = staffCreateCmd.MarkFlagRequired("tenant")
}
