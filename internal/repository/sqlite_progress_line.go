package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/aula/internal/db"
	"github.com/alexanderramin/aula/internal/domain"
)

// SQLiteProgressLineRepo implements ProgressLineRepo using a SQLite database.
type SQLiteProgressLineRepo struct {
	db db.DBTX
}

// NewSQLiteProgressLineRepo creates a new SQLiteProgressLineRepo.
func NewSQLiteProgressLineRepo(db db.DBTX) *SQLiteProgressLineRepo {
	return &SQLiteProgressLineRepo{db: db}
}

const lineColumns = `id, header_id, topic, week_completed, advance_state, is_late,
	justification, corrective_actions, evidence, created_at, updated_at`

func (r *SQLiteProgressLineRepo) Create(ctx context.Context, l *domain.ProgressLine) error {
	query := `INSERT INTO progress_lines (` + lineColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		l.ID,
		l.HeaderID,
		l.Topic,
		l.WeekCompleted,
		string(l.AdvanceState),
		boolToInt(l.IsLate),
		nullableString(l.Justification),
		nullableString(l.CorrectiveActions),
		nullableString(l.Evidence),
		formatTimestamp(l.CreatedAt),
		formatTimestamp(l.UpdatedAt),
	)
	return writeErr("inserting progress line", err)
}

func (r *SQLiteProgressLineRepo) GetByID(ctx context.Context, id string) (*domain.ProgressLine, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+lineColumns+` FROM progress_lines WHERE id = ?`, id)
	l, err := scanLine(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrUnknownProgressLine.With("progress line %s not found", id)
	}
	return l, err
}

func (r *SQLiteProgressLineRepo) ListByHeader(ctx context.Context, headerID string) ([]*domain.ProgressLine, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+lineColumns+` FROM progress_lines WHERE header_id = ? ORDER BY week_completed, created_at`, headerID)
	if err != nil {
		return nil, fmt.Errorf("listing progress lines: %w", err)
	}
	defer rows.Close()

	var lines []*domain.ProgressLine
	for rows.Next() {
		l, err := scanLine(rows)
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating progress lines: %w", err)
	}
	return lines, nil
}

func (r *SQLiteProgressLineRepo) Update(ctx context.Context, l *domain.ProgressLine) error {
	query := `UPDATE progress_lines SET topic = ?, week_completed = ?, advance_state = ?, is_late = ?,
		justification = ?, corrective_actions = ?, evidence = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		l.Topic,
		l.WeekCompleted,
		string(l.AdvanceState),
		boolToInt(l.IsLate),
		nullableString(l.Justification),
		nullableString(l.CorrectiveActions),
		nullableString(l.Evidence),
		formatTimestamp(l.UpdatedAt),
		l.ID,
	)
	if err != nil {
		return writeErr("updating progress line", err)
	}
	return requireAffected(res, domain.ErrUnknownProgressLine.With("progress line %s not found", l.ID))
}

func (r *SQLiteProgressLineRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM progress_lines WHERE id = ?`, id)
	if err != nil {
		return writeErr("deleting progress line", err)
	}
	return requireAffected(res, domain.ErrUnknownProgressLine.With("progress line %s not found", id))
}

func scanLine(row rowScanner) (*domain.ProgressLine, error) {
	var l domain.ProgressLine
	var state, createdAt, updatedAt string
	var isLate int
	var justification, corrective, evidence sql.NullString

	err := row.Scan(
		&l.ID, &l.HeaderID, &l.Topic, &l.WeekCompleted, &state, &isLate,
		&justification, &corrective, &evidence, &createdAt, &updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning progress line: %w", err)
	}
	l.AdvanceState = domain.AdvanceState(state)
	l.IsLate = intToBool(isLate)
	l.Justification = stringPtr(justification)
	l.CorrectiveActions = stringPtr(corrective)
	l.Evidence = stringPtr(evidence)

	if l.CreatedAt, l.UpdatedAt, err = parseTimestamps(createdAt, updatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}
