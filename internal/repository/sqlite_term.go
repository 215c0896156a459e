package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/aula/internal/db"
	"github.com/alexanderramin/aula/internal/domain"
)

// SQLiteTermRepo implements TermRepo using a SQLite database.
type SQLiteTermRepo struct {
	db db.DBTX
}

// NewSQLiteTermRepo creates a new SQLiteTermRepo.
func NewSQLiteTermRepo(db db.DBTX) *SQLiteTermRepo {
	return &SQLiteTermRepo{db: db}
}

const termColumns = `id, start_date, end_date, generated_name, active, created_at, updated_at`

func (r *SQLiteTermRepo) Create(ctx context.Context, t *domain.Term) error {
	query := `INSERT INTO terms (` + termColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.StartDate.Format(dateLayout),
		t.EndDate.Format(dateLayout),
		t.GeneratedName,
		boolToInt(t.Active),
		formatTimestamp(t.CreatedAt),
		formatTimestamp(t.UpdatedAt),
	)
	return writeErr("inserting term", err)
}

func (r *SQLiteTermRepo) GetByID(ctx context.Context, id string) (*domain.Term, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+termColumns+` FROM terms WHERE id = ?`, id)
	t, err := scanTerm(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrUnknownTerm.With("term %s not found", id)
	}
	return t, err
}

func (r *SQLiteTermRepo) List(ctx context.Context) ([]*domain.Term, error) {
	return r.query(ctx, `SELECT `+termColumns+` FROM terms ORDER BY start_date`)
}

func (r *SQLiteTermRepo) ListOverlapping(ctx context.Context, start, end time.Time, excludeID string) ([]*domain.Term, error) {
	query := `SELECT ` + termColumns + ` FROM terms
		WHERE start_date <= ? AND end_date >= ? AND id != ?
		ORDER BY start_date`
	return r.query(ctx, query, end.Format(dateLayout), start.Format(dateLayout), excludeID)
}

func (r *SQLiteTermRepo) Update(ctx context.Context, t *domain.Term) error {
	query := `UPDATE terms SET start_date = ?, end_date = ?, generated_name = ?, active = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.StartDate.Format(dateLayout),
		t.EndDate.Format(dateLayout),
		t.GeneratedName,
		boolToInt(t.Active),
		formatTimestamp(t.UpdatedAt),
		t.ID,
	)
	if err != nil {
		return writeErr("updating term", err)
	}
	return requireAffected(res, domain.ErrUnknownTerm.With("term %s not found", t.ID))
}

func (r *SQLiteTermRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM terms WHERE id = ?`, id)
	if err != nil {
		return writeErr("deleting term", err)
	}
	return requireAffected(res, domain.ErrUnknownTerm.With("term %s not found", id))
}

func (r *SQLiteTermRepo) query(ctx context.Context, query string, args ...any) ([]*domain.Term, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing terms: %w", err)
	}
	defer rows.Close()

	var terms []*domain.Term
	for rows.Next() {
		t, err := scanTerm(rows)
		if err != nil {
			return nil, err
		}
		terms = append(terms, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating terms: %w", err)
	}
	return terms, nil
}

func scanTerm(row rowScanner) (*domain.Term, error) {
	var t domain.Term
	var startStr, endStr, createdAt, updatedAt string
	var active int

	if err := row.Scan(&t.ID, &startStr, &endStr, &t.GeneratedName, &active, &createdAt, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning term: %w", err)
	}
	t.Active = intToBool(active)

	var err error
	if t.StartDate, err = time.Parse(dateLayout, startStr); err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}
	if t.EndDate, err = time.Parse(dateLayout, endStr); err != nil {
		return nil, fmt.Errorf("parsing end_date: %w", err)
	}
	if t.CreatedAt, t.UpdatedAt, err = parseTimestamps(createdAt, updatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}
