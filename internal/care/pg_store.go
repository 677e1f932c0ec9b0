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

package care

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// ensure PGStore implements Store at compile time.
var _ Store = (*PGStore)(nil)

// uniqueViolation is the PostgreSQL SQLSTATE for unique constraint failures.
const uniqueViolation = "23505"

const residentColumns = `id, tenant_id, name, room, key_worker_id, assigned_staff, profile, created_at`

const logColumns = `id, tenant_id, resident_id, author_id, category, note, recorded_at`

// profile is the JSONB document holding a resident's sensitive details.
type profile struct {
	NHSNumber        string   `json:"nhsNumber,omitempty"`
	MedicalHistory   string   `json:"medicalHistory,omitempty"`
	EmergencyContact *Contact `json:"emergencyContact,omitempty"`
}

// planDocument is the JSONB body of a care plan version.
type planDocument struct {
	Goals        []string `json:"goals"`
	Instructions string   `json:"instructions"`
}

// PGStore implements Store using PostgreSQL with JSONB documents.
type PGStore struct {
	db *sql.DB
}

// NewPGStore creates a new PGStore.
func NewPGStore(
	db *sql.DB,
) *PGStore {
	return &PGStore{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResident(
	row rowScanner,
) (*Resident, error) {
	var (
		r           Resident
		assignedRaw []byte
		profileRaw  []byte
	)

	err := row.Scan(
		&r.ID,
		&r.TenantID,
		&r.Name,
		&r.Room,
		&r.KeyWorkerID,
		&assignedRaw,
		&profileRaw,
		&r.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(assignedRaw, &r.AssignedStaffIDs); err != nil {
		return nil, fmt.Errorf("decode assigned staff: %w", err)
	}

	var p profile
	if err := json.Unmarshal(profileRaw, &p); err != nil {
		return nil, fmt.Errorf("decode resident profile: %w", err)
	}
	r.NHSNumber = p.NHSNumber
	r.MedicalHistory = p.MedicalHistory
	r.EmergencyContact = p.EmergencyContact

	return &r, nil
}

// GetResident returns the resident with the given id.
func (s *PGStore) GetResident(
	ctx context.Context,
	id string,
) (*Resident, error) {
	row := s.db.QueryRowContext(ctx,
		`select `+residentColumns+` from residents where id = $1`, id)

	r, err := scanResident(row)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("get resident: %w", err)
	}

	return r, err
}

// ListResidents returns a tenant's residents ordered by name.
func (s *PGStore) ListResidents(
	ctx context.Context,
	tenantID string,
	staffID string,
) ([]Resident, error) {
	query := `select ` + residentColumns + ` from residents where tenant_id = $1`
	args := []any{tenantID}
	if staffID != "" {
		query += ` and (key_worker_id = $2 or assigned_staff @> jsonb_build_array($2::text))`
		args = append(args, staffID)
	}
	query += ` order by name`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list residents: %w", err)
	}
	defer func() { _ = rows.Close() }()

	residents := []Resident{}
	for rows.Next() {
		r, err := scanResident(rows)
		if err != nil {
			return nil, fmt.Errorf("scan resident: %w", err)
		}
		residents = append(residents, *r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list residents: %w", err)
	}

	return residents, nil
}

// CreateResident inserts r.
func (s *PGStore) CreateResident(
	ctx context.Context,
	r *Resident,
) error {
	assigned := r.AssignedStaffIDs
	if assigned == nil {
		assigned = []string{}
	}

	assignedRaw, err := json.Marshal(assigned)
	if err != nil {
		return fmt.Errorf("encode assigned staff: %w", err)
	}

	profileRaw, err := json.Marshal(profile{
		NHSNumber:        r.NHSNumber,
		MedicalHistory:   r.MedicalHistory,
		EmergencyContact: r.EmergencyContact,
	})
	if err != nil {
		return fmt.Errorf("encode resident profile: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`insert into residents (`+residentColumns+`)
		values ($1, $2, $3, $4, $5, $6, $7, $8)`,
		r.ID,
		r.TenantID,
		r.Name,
		r.Room,
		r.KeyWorkerID,
		assignedRaw,
		profileRaw,
		r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert resident: %w", err)
	}

	return nil
}

// AddLog inserts a care log entry.
func (s *PGStore) AddLog(
	ctx context.Context,
	entry *LogEntry,
) error {
	_, err := s.db.ExecContext(ctx,
		`insert into care_logs (`+logColumns+`)
		values ($1, $2, $3, $4, $5, $6, $7)`,
		entry.ID,
		entry.TenantID,
		entry.ResidentID,
		entry.AuthorID,
		string(entry.Category),
		entry.Note,
		entry.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("insert care log: %w", err)
	}

	return nil
}

func (s *PGStore) queryLogs(
	ctx context.Context,
	query string,
	args ...any,
) ([]LogEntry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	entries := []LogEntry{}
	for rows.Next() {
		var (
			e        LogEntry
			category string
		)
		if err := rows.Scan(
			&e.ID,
			&e.TenantID,
			&e.ResidentID,
			&e.AuthorID,
			&category,
			&e.Note,
			&e.RecordedAt,
		); err != nil {
			return nil, err
		}
		e.Category = LogCategory(category)
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// ListLogs returns up to limit logs for a resident, newest first.
func (s *PGStore) ListLogs(
	ctx context.Context,
	residentID string,
	limit int,
) ([]LogEntry, error) {
	entries, err := s.queryLogs(ctx,
		`select `+logColumns+` from care_logs where resident_id = $1
		order by recorded_at desc limit $2`,
		residentID, limit)
	if err != nil {
		return nil, fmt.Errorf("list care logs: %w", err)
	}

	return entries, nil
}

// LogsBetween returns a tenant's logs in [from, to), oldest first.
func (s *PGStore) LogsBetween(
	ctx context.Context,
	tenantID string,
	from time.Time,
	to time.Time,
) ([]LogEntry, error) {
	entries, err := s.queryLogs(ctx,
		`select `+logColumns+` from care_logs
		where tenant_id = $1 and recorded_at >= $2 and recorded_at < $3
		order by recorded_at`,
		tenantID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list care logs between: %w", err)
	}

	return entries, nil
}

// CurrentCarePlan returns the latest care plan version.
func (s *PGStore) CurrentCarePlan(
	ctx context.Context,
	residentID string,
) (*CarePlan, error) {
	var (
		plan CarePlan
		doc  []byte
	)

	err := s.db.QueryRowContext(ctx,
		`select resident_id, tenant_id, version, author_id, document, created_at
		from care_plans where resident_id = $1
		order by version desc limit 1`, residentID).
		Scan(&plan.ResidentID, &plan.TenantID, &plan.Version, &plan.AuthorID, &doc, &plan.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get care plan: %w", err)
	}

	var d planDocument
	if err := json.Unmarshal(doc, &d); err != nil {
		return nil, fmt.Errorf("decode care plan: %w", err)
	}
	plan.Goals = d.Goals
	plan.Instructions = d.Instructions

	return &plan, nil
}

// SaveCarePlan inserts plan as the next version in one statement. The
// (resident_id, version) key rejects a concurrent writer with
// ErrVersionConflict.
func (s *PGStore) SaveCarePlan(
	ctx context.Context,
	plan *CarePlan,
) error {
	doc, err := json.Marshal(planDocument{
		Goals:        plan.Goals,
		Instructions: plan.Instructions,
	})
	if err != nil {
		return fmt.Errorf("encode care plan: %w", err)
	}

	err = s.db.QueryRowContext(ctx,
		`insert into care_plans (resident_id, version, tenant_id, author_id, document, created_at)
		select $1, coalesce(max(version), 0) + 1, $2, $3, $4, $5
		from care_plans where resident_id = $1
		returning version`,
		plan.ResidentID,
		plan.TenantID,
		plan.AuthorID,
		doc,
		plan.CreatedAt,
	).Scan(&plan.Version)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrVersionConflict
		}
		return fmt.Errorf("insert care plan: %w", err)
	}

	return nil
}
