package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/aula/internal/db"
	"github.com/alexanderramin/aula/internal/domain"
)

// SQLiteGroupRepo implements GroupRepo using a SQLite database.
type SQLiteGroupRepo struct {
	db db.DBTX
}

// NewSQLiteGroupRepo creates a new SQLiteGroupRepo.
func NewSQLiteGroupRepo(db db.DBTX) *SQLiteGroupRepo {
	return &SQLiteGroupRepo{db: db}
}

const groupColumns = `id, career, term_number, group_number, generated_name, active, term_id, created_at, updated_at`

func (r *SQLiteGroupRepo) Create(ctx context.Context, g *domain.Group) error {
	query := `INSERT INTO class_groups (` + groupColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		g.ID,
		g.Career,
		g.TermNumber,
		g.GroupNumber,
		g.GeneratedName,
		boolToInt(g.Active),
		g.TermID,
		formatTimestamp(g.CreatedAt),
		formatTimestamp(g.UpdatedAt),
	)
	return writeErr("inserting group", err)
}

func (r *SQLiteGroupRepo) GetByID(ctx context.Context, id string) (*domain.Group, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+groupColumns+` FROM class_groups WHERE id = ?`, id)
	g, err := scanGroup(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrUnknownGroup.With("group %s not found", id)
	}
	return g, err
}

func (r *SQLiteGroupRepo) List(ctx context.Context, f GroupFilter) ([]*domain.Group, error) {
	var w where
	if f.TermID != "" {
		w.add("term_id = ?", f.TermID)
	}
	if f.Career != "" {
		w.add("career = ?", f.Career)
	}
	if f.ActiveOnly {
		w.add("active = 1")
	}

	query := `SELECT ` + groupColumns + ` FROM class_groups` + w.String() +
		` ORDER BY career, term_number, group_number`
	rows, err := r.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("listing groups: %w", err)
	}
	defer rows.Close()

	var groups []*domain.Group
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating groups: %w", err)
	}
	return groups, nil
}

func (r *SQLiteGroupRepo) ExistsIdentity(ctx context.Context, career string, termNumber, groupNumber int, excludeID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM class_groups
		WHERE career = ? AND term_number = ? AND group_number = ? AND id != ?)`
	var exists int
	if err := r.db.QueryRowContext(ctx, query, career, termNumber, groupNumber, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking group identity: %w", err)
	}
	return intToBool(exists), nil
}

func (r *SQLiteGroupRepo) Update(ctx context.Context, g *domain.Group) error {
	query := `UPDATE class_groups SET career = ?, term_number = ?, group_number = ?, generated_name = ?,
		active = ?, term_id = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		g.Career,
		g.TermNumber,
		g.GroupNumber,
		g.GeneratedName,
		boolToInt(g.Active),
		g.TermID,
		formatTimestamp(g.UpdatedAt),
		g.ID,
	)
	if err != nil {
		return writeErr("updating group", err)
	}
	return requireAffected(res, domain.ErrUnknownGroup.With("group %s not found", g.ID))
}

func (r *SQLiteGroupRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM class_groups WHERE id = ?`, id)
	if err != nil {
		return writeErr("deleting group", err)
	}
	return requireAffected(res, domain.ErrUnknownGroup.With("group %s not found", id))
}

func scanGroup(row rowScanner) (*domain.Group, error) {
	var g domain.Group
	var createdAt, updatedAt string
	var active int

	err := row.Scan(
		&g.ID, &g.Career, &g.TermNumber, &g.GroupNumber, &g.GeneratedName,
		&active, &g.TermID, &createdAt, &updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning group: %w", err)
	}
	g.Active = intToBool(active)

	if g.CreatedAt, g.UpdatedAt, err = parseTimestamps(createdAt, updatedAt); err != nil {
		return nil, err
	}
	return &g, nil
}
