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

// Package resident provides the care record handlers: residents, daily
// logs, versioned care plans, and the daily log report.
package resident

import (
	"log/slog"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/carehome-io/carehome/internal/api/gate"
	"github.com/carehome-io/carehome/internal/care"
)

// defaultLogLimit is used when no limit is given.
const defaultLogLimit = 50

// contextKeyResident holds the resident loaded by the owner lookup.
const contextKeyResident = "resident.record"

// Resident implements the care record endpoints.
type Resident struct {
	logger   *slog.Logger
	store    care.Store
	recorder gate.Recorder
	now      func() time.Time
}

// CreateRequest is the body of POST /residents.
type CreateRequest struct {
	Name             string        `json:"name"             validate:"required,max=200"`
	Room             string        `json:"room"             validate:"max=20"`
	KeyWorkerID      string        `json:"keyWorkerId"`
	AssignedStaffIDs []string      `json:"assignedStaffIds" validate:"max=50,dive,required"`
	NHSNumber        string        `json:"nhsNumber"        validate:"omitempty,len=10,numeric"`
	MedicalHistory   string        `json:"medicalHistory"   validate:"max=20000"`
	EmergencyContact *care.Contact `json:"emergencyContact"`
}

// LogRequest is the body of POST /residents/:id/logs.
type LogRequest struct {
	Category care.LogCategory `json:"category"`
	Note     string           `json:"note"`
}

// CarePlanRequest is the body of PUT /residents/:id/care-plan.
type CarePlanRequest struct {
	Goals        []string `json:"goals"`
	Instructions string   `json:"instructions"`
}

// ListLogsParams are the query parameters of GET /residents/:id/logs.
type ListLogsParams struct {
	Limit *int `validate:"omitempty,min=1,max=500"`
}

// ReportParams are the query parameters of GET /reports/daily-logs.
type ReportParams struct {
	Date openapi_types.Date
}

// DailyReport summarises one day of care logs for a tenant.
type DailyReport struct {
	Date       string                   `json:"date"`
	Total      int                      `json:"total"`
	ByCategory map[care.LogCategory]int `json:"byCategory"`
	Entries    []care.LogEntry          `json:"entries"`
}
