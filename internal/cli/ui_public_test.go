// Copyright (c) 2024 John Dewey

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

package cli_test

import (
	"io"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/carehome-io/carehome/internal/audit"
	"github.com/carehome-io/carehome/internal/authtoken"
	"github.com/carehome-io/carehome/internal/cli"
)

type UITestSuite struct {
	suite.Suite
}

func TestUITestSuite(t *testing.T) {
	suite.Run(t, new(UITestSuite))
}

func captureStdout(
	fn func(),
) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	fn()

	_ = w.Close()
	out, _ := io.ReadAll(r)
	os.Stdout = old

	return string(out)
}

func (suite *UITestSuite) TestBuildAuditTable() {
	ts := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		entries  []audit.Entry
		wantRows [][]string
	}{
		{
			name:     "when no entries returns headers only",
			entries:  nil,
			wantRows: [][]string{},
		},
		{
			name: "when target id present joins type and id",
			entries: []audit.Entry{
				{
					Timestamp:  ts,
					ActorID:    "staff-1",
					ActorRole:  authtoken.RoleStaff,
					TenantID:   "home-a",
					Action:     "care-log.create",
					TargetType: "resident",
					TargetID:   "res-9",
					Outcome:    audit.OutcomeAllow,
				},
			},
			wantRows: [][]string{
				{
					"2026-03-01T09:30:00Z", "2h 15m", "staff-1", "staff", "home-a",
					"care-log.create", "resident/res-9", "allow", "",
				},
			},
		},
		{
			name: "when target id absent shows type with reason",
			entries: []audit.Entry{
				{
					Timestamp:  ts,
					ActorID:    "staff-2",
					ActorRole:  authtoken.RoleStaff,
					TenantID:   "home-a",
					Action:     "audit.list",
					TargetType: "audit",
					Outcome:    audit.OutcomeDeny,
					ReasonCode: authtoken.ReasonRoleInsufficient,
				},
			},
			wantRows: [][]string{
				{
					"2026-03-01T09:30:00Z", "2h 15m", "staff-2", "staff", "home-a",
					"audit.list", "audit", "deny", string(authtoken.ReasonRoleInsufficient),
				},
			},
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			headers, rows := cli.BuildAuditTable(tc.entries, ts.Add(2*time.Hour+15*time.Minute))

			assert.Len(suite.T(), headers, 9)
			assert.Equal(suite.T(), "AGE", headers[1])
			assert.Equal(suite.T(), tc.wantRows, rows)
		})
	}
}

func (suite *UITestSuite) TestDisplayAuditEntry() {
	tests := []struct {
		name         string
		entry        *audit.Entry
		wantContains []string
	}{
		{
			name: "when details present renders details section",
			entry: &audit.Entry{
				ID:         "01HZY",
				ActorID:    "senior-1",
				Action:     "care-plan.update",
				Outcome:    audit.OutcomeAllow,
				ReasonCode: "",
				RedactedDetails: map[string]any{
					"note":    "[REDACTED]",
					"changes": []any{"dose"},
				},
			},
			wantContains: []string{"01HZY", "senior-1", "Details", "[REDACTED]", `["dose"]`},
		},
		{
			name: "when denied shows reason",
			entry: &audit.Entry{
				ID:         "01HZZ",
				Outcome:    audit.OutcomeDeny,
				ReasonCode: authtoken.ReasonResourceNotOwned,
			},
			wantContains: []string{"01HZZ", string(authtoken.ReasonResourceNotOwned)},
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			output := captureStdout(func() {
				cli.DisplayAuditEntry(tc.entry)
			})

			for _, want := range tc.wantContains {
				assert.Contains(suite.T(), output, want)
			}
		})
	}
}

func (suite *UITestSuite) TestPrintCompactTable() {
	tests := []struct {
		name         string
		sections     []cli.Section
		wantContains []string
	}{
		{
			name: "when section with title renders table",
			sections: []cli.Section{
				{
					Title:   "Residents",
					Headers: []string{"id", "name"},
					Rows:    [][]string{{"res-1", "Ada"}},
				},
			},
			wantContains: []string{"Residents", "ID", "NAME", "res-1", "Ada"},
		},
		{
			name: "when cell is multi-line flattens it",
			sections: []cli.Section{
				{
					Headers: []string{"NOTE"},
					Rows:    [][]string{{"first\nsecond"}},
				},
			},
			wantContains: []string{"first second"},
		},
		{
			name: "when cell exceeds max width truncates it",
			sections: []cli.Section{
				{
					Headers: []string{"A", "B"},
					Rows: [][]string{{
						"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
						"b",
					}},
				},
			},
			wantContains: []string{"…"},
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			output := captureStdout(func() {
				cli.PrintCompactTable(tc.sections)
			})

			for _, want := range tc.wantContains {
				assert.Contains(suite.T(), output, want)
			}
		})
	}
}

func (suite *UITestSuite) TestPrintStyledTable() {
	tests := []struct {
		name         string
		sections     []cli.Section
		wantContains []string
	}{
		{
			name: "when section with title renders table",
			sections: []cli.Section{
				{
					Title:   "Audit",
					Headers: []string{"ACTION", "OUTCOME"},
					Rows:    [][]string{{"resident.view", "allow"}},
				},
			},
			wantContains: []string{"Audit:", "resident.view", "allow"},
		},
		{
			name: "when table exceeds terminal width scales columns",
			sections: []cli.Section{
				{
					Headers: []string{"A", "B", "C", "D", "E"},
					Rows: [][]string{{
						"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
						"bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
						"cccccccccccccccccccccccccccccccccccccccc",
						"dddddddddddddddddddddddddddddddddddddddd",
						"eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee",
					}},
				},
			},
			wantContains: []string{"A", "E"},
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			output := captureStdout(func() {
				cli.PrintStyledTable(tc.sections)
			})

			for _, want := range tc.wantContains {
				assert.Contains(suite.T(), output, want)
			}
		})
	}
}

func (suite *UITestSuite) TestCalculateColumnWidths() {
	tests := []struct {
		name       string
		headers    []string
		rows       [][]string
		minPadding int
		want       []int
	}{
		{
			name:       "when empty headers returns empty",
			headers:    []string{},
			rows:       nil,
			minPadding: 1,
			want:       []int{},
		},
		{
			name:       "when headers wider than rows uses header width",
			headers:    []string{"RESIDENT", "STATUS"},
			rows:       [][]string{{"a", "b"}},
			minPadding: 1,
			want:       []int{10, 8},
		},
		{
			name:       "when rows wider than headers uses row width",
			headers:    []string{"A", "B"},
			rows:       [][]string{{"longvalue", "anotherlongvalue"}},
			minPadding: 1,
			want:       []int{11, 18},
		},
		{
			name:       "when multi-line content uses longest line width",
			headers:    []string{"DATA"},
			rows:       [][]string{{"short\nvery long line here"}},
			minPadding: 0,
			want:       []int{19},
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			got := cli.CalculateColumnWidths(tc.headers, tc.rows, tc.minPadding)

			assert.Equal(suite.T(), tc.want, got)
		})
	}
}

func (suite *UITestSuite) TestGetMaxLineWidth() {
	tests := []struct {
		name string
		text string
		want int
	}{
		{
			name: "when single line returns its length",
			text: "hello",
			want: 5,
		},
		{
			name: "when multi-line returns longest",
			text: "short\na much longer line\nmed",
			want: 18,
		},
		{
			name: "when empty returns zero",
			text: "",
			want: 0,
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			got := cli.GetMaxLineWidth(tc.text)

			assert.Equal(suite.T(), tc.want, got)
		})
	}
}

func (suite *UITestSuite) TestFormatAge() {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{name: "when zero returns empty", d: 0, want: ""},
		{name: "when seconds", d: 30 * time.Second, want: "30s"},
		{name: "when minutes", d: 45 * time.Minute, want: "45m"},
		{name: "when hours", d: 12*time.Hour + 30*time.Minute, want: "12h 30m"},
		{name: "when days", d: 76 * time.Hour, want: "3d 4h"},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			assert.Equal(suite.T(), tc.want, cli.FormatAge(tc.d))
		})
	}
}

func (suite *UITestSuite) TestFormatList() {
	tests := []struct {
		name string
		list []string
		want string
	}{
		{
			name: "when empty returns None",
			list: []string{},
			want: "None",
		},
		{
			name: "when single item returns it",
			list: []string{"alpha"},
			want: "alpha",
		},
		{
			name: "when multiple items joins with comma",
			list: []string{"alpha", "beta", "gamma"},
			want: "alpha, beta, gamma",
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			got := cli.FormatList(tc.list)

			assert.Equal(suite.T(), tc.want, got)
		})
	}
}


func (suite *UITestSuite) TestPrintKV() {
	tests := []struct {
		name       string
		pairs      []string
		wantOutput bool
	}{
		{
			name:       "when valid pairs prints output",
			pairs:      []string{"Key", "Value"},
			wantOutput: true,
		},
		{
			name:       "when multiple pairs prints all",
			pairs:      []string{"Name", "test", "Status", "ok"},
			wantOutput: true,
		},
		{
			name:       "when odd number of pairs prints nothing",
			pairs:      []string{"Key"},
			wantOutput: false,
		},
		{
			name:       "when empty prints nothing",
			pairs:      []string{},
			wantOutput: false,
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			output := captureStdout(func() {
				cli.PrintKV(tc.pairs...)
			})

			if tc.wantOutput {
				assert.NotEmpty(suite.T(), output)
			} else {
				assert.Empty(suite.T(), output)
			}
		})
	}
}
