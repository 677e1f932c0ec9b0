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

	goversion "github.com/caarlos0/go-version"
	"github.com/spf13/cobra"
)

// Build details, set by main from linker flags.
var (
	buildVersion = ""
	buildCommit  = ""
	buildDate    = ""
)

// SetBuildInfo records the linker-provided build details.
func SetBuildInfo(
	version string,
	commit string,
	date string,
) {
	buildVersion = version
	buildCommit = commit
	buildDate = date
}

// versionInfo merges linker flags over the module's embedded build info.
func versionInfo() goversion.Info {
	return goversion.GetVersionInfo(
		goversion.WithAppDetails(
			"carehome",
			"Role-scoped access control and audit trail for care home records.",
			"https://github.com/carehome-io/carehome",
		),
		func(i *goversion.Info) {
			if buildVersion != "" {
				i.GitVersion = buildVersion
			}
			if buildCommit != "" {
				i.GitCommit = buildCommit
			}
			if buildDate != "" {
				i.BuildDate = buildDate
			}
		},
	)
}

// versionCmd represents the version command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build version information",
	RunE: func(cmd *cobra.Command, _ []string) error {
		info := versionInfo()
		if jsonOutput {
			out, err := info.JSONString()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		}

		_, err := fmt.Fprintln(cmd.OutOrStdout(), info.String())
		return err
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
