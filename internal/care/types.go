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

// Package care stores the resident records the request gate protects:
// profiles, daily care logs, and versioned care plans.
package care

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a resident or care plan does not exist.
var ErrNotFound = errors.New("care record not found")

// ErrVersionConflict is returned when two care plan versions race.
var ErrVersionConflict = errors.New("care plan version conflict")

// Contact is a resident's emergency contact.
type Contact struct {
	Name     string `json:"name"     validate:"required"`
	Relation string `json:"relation"`
	Phone    string `json:"phone"`
}

// Resident is a person in the home. KeyWorkerID and AssignedStaffIDs name
// the staff who own the record for ownership checks.
type Resident struct {
	ID               string    `json:"id"`
	TenantID         string    `json:"tenantId"`
	Name             string    `json:"name"             validate:"required,max=200"`
	Room             string    `json:"room"             validate:"max=20"`
	KeyWorkerID      string    `json:"keyWorkerId"`
	AssignedStaffIDs []string  `json:"assignedStaffIds"`
	NHSNumber        string    `json:"nhsNumber,omitempty"        validate:"omitempty,len=10,numeric"`
	MedicalHistory   string    `json:"medicalHistory,omitempty"`
	EmergencyContact *Contact  `json:"emergencyContact,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// OwnerIDs returns the staff who own the resident's record.
func (r *Resident) OwnerIDs() []string {
	owners := make([]string, 0, len(r.AssignedStaffIDs)+1)
	if r.KeyWorkerID != "" {
		owners = append(owners, r.KeyWorkerID)
	}

	return append(owners, r.AssignedStaffIDs...)
}

// LogCategory classifies a daily care log entry.
type LogCategory string

// Log categories.
const (
	LogPersonalCare LogCategory = "personal-care"
	LogNutrition    LogCategory = "nutrition"
	LogMedication   LogCategory = "medication"
	LogMobility     LogCategory = "mobility"
	LogWellbeing    LogCategory = "wellbeing"
	LogIncident     LogCategory = "incident"
)

// LogEntry is one daily care note.
type LogEntry struct {
	ID         string      `json:"id"`
	TenantID   string      `json:"tenantId"`
	ResidentID string      `json:"residentId"`
	AuthorID   string      `json:"authorId"`
	Category   LogCategory `json:"category"   validate:"required,oneof=personal-care nutrition medication mobility wellbeing incident"`
	Note       string      `json:"note"       validate:"required,max=4000"`
	RecordedAt time.Time   `json:"recordedAt"`
}

// CarePlan is one immutable version of a resident's plan.
type CarePlan struct {
	ResidentID   string    `json:"residentId"`
	TenantID     string    `json:"tenantId"`
	Version      int       `json:"version"`
	AuthorID     string    `json:"authorId"`
	Goals        []string  `json:"goals"        validate:"required,min=1,dive,required"`
	Instructions string    `json:"instructions" validate:"max=10000"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Store is the persistence boundary for care records.
type Store interface {
	// GetResident returns the resident or ErrNotFound. It does not filter
	// by tenant; callers compare tenants.
	GetResident(ctx context.Context, id string) (*Resident, error)
	// ListResidents returns a tenant's residents. A non-empty staffID
	// restricts the list to residents that staff member owns.
	ListResidents(ctx context.Context, tenantID string, staffID string) ([]Resident, error)
	// CreateResident inserts a resident.
	CreateResident(ctx context.Context, r *Resident) error
	// AddLog inserts a care log entry.
	AddLog(ctx context.Context, entry *LogEntry) error
	// ListLogs returns a resident's most recent logs, newest first.
	ListLogs(ctx context.Context, residentID string, limit int) ([]LogEntry, error)
	// LogsBetween returns a tenant's logs recorded in [from, to).
	LogsBetween(ctx context.Context, tenantID string, from time.Time, to time.Time) ([]LogEntry, error)
	// CurrentCarePlan returns the latest version or ErrNotFound.
	CurrentCarePlan(ctx context.Context, residentID string) (*CarePlan, error)
	// SaveCarePlan stores plan as the next version and sets plan.Version.
	SaveCarePlan(ctx context.Context, plan *CarePlan) error
}
