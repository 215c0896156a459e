package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/aula/internal/db"
	"github.com/alexanderramin/aula/internal/domain"
)

// SQLiteProgressHeaderRepo implements ProgressHeaderRepo using a SQLite database.
type SQLiteProgressHeaderRepo struct {
	db db.DBTX
}

// NewSQLiteProgressHeaderRepo creates a new SQLiteProgressHeaderRepo.
func NewSQLiteProgressHeaderRepo(db db.DBTX) *SQLiteProgressHeaderRepo {
	return &SQLiteProgressHeaderRepo{db: db}
}

const headerColumns = `h.id, h.academic_load_id, h.term_id, h.status, h.reviewer_id, h.submitted_at,
	h.reviewed_at, h.final_follow_up_at, h.revision_count, h.created_at, h.updated_at`

func (r *SQLiteProgressHeaderRepo) Create(ctx context.Context, h *domain.ProgressHeader) error {
	query := `INSERT INTO progress_headers (id, academic_load_id, term_id, status, reviewer_id,
		submitted_at, reviewed_at, final_follow_up_at, revision_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		h.ID,
		h.AcademicLoadID,
		h.TermID,
		string(h.Status),
		nullableString(h.ReviewerID),
		nullableTimeToString(h.SubmittedAt, time.RFC3339),
		nullableTimeToString(h.ReviewedAt, time.RFC3339),
		nullableTimeToString(h.FinalFollowUpAt, time.RFC3339),
		h.RevisionCount,
		formatTimestamp(h.CreatedAt),
		formatTimestamp(h.UpdatedAt),
	)
	return writeErr("inserting progress header", err)
}

func (r *SQLiteProgressHeaderRepo) GetByID(ctx context.Context, id string) (*domain.ProgressHeader, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+headerColumns+` FROM progress_headers h WHERE h.id = ?`, id)
	h, err := scanHeader(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrUnknownProgress.With("progress header %s not found", id)
	}
	return h, err
}

func (r *SQLiteProgressHeaderRepo) ExistsForLoad(ctx context.Context, academicLoadID string) (bool, error) {
	var exists int
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM progress_headers WHERE academic_load_id = ?)`, academicLoadID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking progress header for load: %w", err)
	}
	return intToBool(exists), nil
}

// List returns headers matching f. ProfessorID filters through the owning
// academic load.
func (r *SQLiteProgressHeaderRepo) List(ctx context.Context, f HeaderFilter) ([]*domain.ProgressHeader, error) {
	var w where
	if f.TermID != "" {
		w.add("h.term_id = ?", f.TermID)
	}
	if f.ProfessorID != "" {
		w.add("l.professor_id = ?", f.ProfessorID)
	}
	if f.Status != "" {
		w.add("h.status = ?", string(f.Status))
	}

	query := `SELECT ` + headerColumns + ` FROM progress_headers h
		JOIN academic_loads l ON l.id = h.academic_load_id` + w.String() +
		` ORDER BY h.created_at, h.id`
	rows, err := r.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("listing progress headers: %w", err)
	}
	defer rows.Close()

	var headers []*domain.ProgressHeader
	for rows.Next() {
		h, err := scanHeader(rows)
		if err != nil {
			return nil, err
		}
		headers = append(headers, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating progress headers: %w", err)
	}
	return headers, nil
}

func (r *SQLiteProgressHeaderRepo) Update(ctx context.Context, h *domain.ProgressHeader) error {
	query := `UPDATE progress_headers SET status = ?, reviewer_id = ?, submitted_at = ?, reviewed_at = ?,
		final_follow_up_at = ?, revision_count = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		string(h.Status),
		nullableString(h.ReviewerID),
		nullableTimeToString(h.SubmittedAt, time.RFC3339),
		nullableTimeToString(h.ReviewedAt, time.RFC3339),
		nullableTimeToString(h.FinalFollowUpAt, time.RFC3339),
		h.RevisionCount,
		formatTimestamp(h.UpdatedAt),
		h.ID,
	)
	if err != nil {
		return writeErr("updating progress header", err)
	}
	return requireAffected(res, domain.ErrUnknownProgress.With("progress header %s not found", h.ID))
}

// SetTermForLoad rewrites the denormalized term of the header owned by
// academicLoadID. A load without a header affects no rows.
func (r *SQLiteProgressHeaderRepo) SetTermForLoad(ctx context.Context, academicLoadID, termID string) (int64, error) {
	return r.setTerm(ctx, `WHERE academic_load_id = ?`, termID, academicLoadID)
}

// SetTermForGroup rewrites the term of every header whose load belongs to groupID.
func (r *SQLiteProgressHeaderRepo) SetTermForGroup(ctx context.Context, groupID, termID string) (int64, error) {
	return r.setTerm(ctx, `WHERE academic_load_id IN (SELECT id FROM academic_loads WHERE group_id = ?)`, termID, groupID)
}

func (r *SQLiteProgressHeaderRepo) setTerm(ctx context.Context, where, termID, key string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE progress_headers SET term_id = ?, updated_at = ? `+where,
		termID, nowUTC(), key)
	if err != nil {
		return 0, writeErr("updating progress header terms", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading affected rows: %w", err)
	}
	return n, nil
}

// Delete removes the header; its lines go with it via ON DELETE CASCADE.
func (r *SQLiteProgressHeaderRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM progress_headers WHERE id = ?`, id)
	if err != nil {
		return writeErr("deleting progress header", err)
	}
	return requireAffected(res, domain.ErrUnknownProgress.With("progress header %s not found", id))
}

func scanHeader(row rowScanner) (*domain.ProgressHeader, error) {
	var h domain.ProgressHeader
	var status, createdAt, updatedAt string
	var reviewerID, submittedAt, reviewedAt, finalAt sql.NullString

	err := row.Scan(
		&h.ID, &h.AcademicLoadID, &h.TermID, &status, &reviewerID, &submittedAt,
		&reviewedAt, &finalAt, &h.RevisionCount, &createdAt, &updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning progress header: %w", err)
	}
	h.Status = domain.ProgressStatus(status)
	h.ReviewerID = stringPtr(reviewerID)
	h.SubmittedAt = parseNullableTime(submittedAt, time.RFC3339)
	h.ReviewedAt = parseNullableTime(reviewedAt, time.RFC3339)
	h.FinalFollowUpAt = parseNullableTime(finalAt, time.RFC3339)

	if h.CreatedAt, h.UpdatedAt, err = parseTimestamps(createdAt, updatedAt); err != nil {
		return nil, err
	}
	return &h, nil
}
