package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/aula/internal/db"
	"github.com/alexanderramin/aula/internal/domain"
)

// SQLiteAcademicLoadRepo implements AcademicLoadRepo using a SQLite database.
type SQLiteAcademicLoadRepo struct {
	db db.DBTX
}

// NewSQLiteAcademicLoadRepo creates a new SQLiteAcademicLoadRepo.
func NewSQLiteAcademicLoadRepo(db db.DBTX) *SQLiteAcademicLoadRepo {
	return &SQLiteAcademicLoadRepo{db: db}
}

const loadColumns = `id, professor_id, career, subject, group_id, term_id, is_tutor, active, created_at, updated_at`

func (r *SQLiteAcademicLoadRepo) Create(ctx context.Context, l *domain.AcademicLoad) error {
	query := `INSERT INTO academic_loads (` + loadColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		l.ID,
		l.ProfessorID,
		l.Career,
		l.Subject,
		l.GroupID,
		l.TermID,
		boolToInt(l.IsTutor),
		boolToInt(l.Active),
		formatTimestamp(l.CreatedAt),
		formatTimestamp(l.UpdatedAt),
	)
	return writeErr("inserting academic load", err)
}

func (r *SQLiteAcademicLoadRepo) GetByID(ctx context.Context, id string) (*domain.AcademicLoad, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+loadColumns+` FROM academic_loads WHERE id = ?`, id)
	l, err := scanLoad(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrUnknownAcademicLoad.With("academic load %s not found", id)
	}
	return l, err
}

func (r *SQLiteAcademicLoadRepo) List(ctx context.Context, f LoadFilter) ([]*domain.AcademicLoad, error) {
	var w where
	if f.ProfessorID != "" {
		w.add("professor_id = ?", f.ProfessorID)
	}
	if f.GroupID != "" {
		w.add("group_id = ?", f.GroupID)
	}
	if f.TermID != "" {
		w.add("term_id = ?", f.TermID)
	}
	if f.ActiveOnly {
		w.add("active = 1")
	}

	query := `SELECT ` + loadColumns + ` FROM academic_loads` + w.String() + ` ORDER BY group_id, subject`
	rows, err := r.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("listing academic loads: %w", err)
	}
	defer rows.Close()

	var loads []*domain.AcademicLoad
	for rows.Next() {
		l, err := scanLoad(rows)
		if err != nil {
			return nil, err
		}
		loads = append(loads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating academic loads: %w", err)
	}
	return loads, nil
}

func (r *SQLiteAcademicLoadRepo) FindByGroupSubject(ctx context.Context, groupID, career, subject, excludeID string) (*domain.AcademicLoad, error) {
	query := `SELECT ` + loadColumns + ` FROM academic_loads
		WHERE group_id = ? AND career = ? AND subject = ? AND id != ?
		LIMIT 1`
	l, err := scanLoad(r.db.QueryRowContext(ctx, query, groupID, career, subject, excludeID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return l, err
}

func (r *SQLiteAcademicLoadRepo) ActiveTutorOtherGroup(ctx context.Context, professorID, groupID, termID, excludeID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM academic_loads
		WHERE professor_id = ? AND term_id = ? AND group_id != ? AND is_tutor = 1 AND active = 1 AND id != ?)`
	return r.exists(ctx, "checking professor tutor loads", query, professorID, termID, groupID, excludeID)
}

func (r *SQLiteAcademicLoadRepo) ActiveTutorForGroup(ctx context.Context, groupID, termID, excludeID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM academic_loads
		WHERE group_id = ? AND term_id = ? AND is_tutor = 1 AND active = 1 AND id != ?)`
	return r.exists(ctx, "checking group tutor loads", query, groupID, termID, excludeID)
}

func (r *SQLiteAcademicLoadRepo) exists(ctx context.Context, op, query string, args ...any) (bool, error) {
	var exists int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return intToBool(exists), nil
}

func (r *SQLiteAcademicLoadRepo) Update(ctx context.Context, l *domain.AcademicLoad) error {
	query := `UPDATE academic_loads SET professor_id = ?, career = ?, subject = ?, group_id = ?, term_id = ?,
		is_tutor = ?, active = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		l.ProfessorID,
		l.Career,
		l.Subject,
		l.GroupID,
		l.TermID,
		boolToInt(l.IsTutor),
		boolToInt(l.Active),
		formatTimestamp(l.UpdatedAt),
		l.ID,
	)
	if err != nil {
		return writeErr("updating academic load", err)
	}
	return requireAffected(res, domain.ErrUnknownAcademicLoad.With("academic load %s not found", l.ID))
}

func (r *SQLiteAcademicLoadRepo) SetTermForGroup(ctx context.Context, groupID, termID string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE academic_loads SET term_id = ?, updated_at = ? WHERE group_id = ?`,
		termID, nowUTC(), groupID)
	if err != nil {
		return 0, writeErr("updating academic load terms", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading affected rows: %w", err)
	}
	return n, nil
}

func (r *SQLiteAcademicLoadRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM academic_loads WHERE id = ?`, id)
	if err != nil {
		return writeErr("deleting academic load", err)
	}
	return requireAffected(res, domain.ErrUnknownAcademicLoad.With("academic load %s not found", id))
}

func scanLoad(row rowScanner) (*domain.AcademicLoad, error) {
	var l domain.AcademicLoad
	var createdAt, updatedAt string
	var isTutor, active int

	err := row.Scan(
		&l.ID, &l.ProfessorID, &l.Career, &l.Subject, &l.GroupID, &l.TermID,
		&isTutor, &active, &createdAt, &updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning academic load: %w", err)
	}
	l.IsTutor = intToBool(isTutor)
	l.Active = intToBool(active)

	if l.CreatedAt, l.UpdatedAt, err = parseTimestamps(createdAt, updatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}
