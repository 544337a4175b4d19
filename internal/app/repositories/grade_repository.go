package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mfuentes/escolar/internal/app/models"
)

// GradeRepository handles database operations for grades
type GradeRepository struct {
	db *pgxpool.Pool
}

// NewGradeRepository creates a new grade repository
func NewGradeRepository(db *pgxpool.Pool) *GradeRepository {
	return &GradeRepository{db: db}
}

const gradeSelect = `
	SELECT g.id, g.name, g.description, g.institution_id, i.name
	FROM grades g
	JOIN institutions i ON i.id = g.institution_id
`

func scanGrade(row pgx.Row) (*models.Grade, error) {
	var g models.Grade
	err := row.Scan(&g.ID, &g.Name, &g.Description, &g.InstitutionID, &g.InstitutionName)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// GetByID retrieves a grade by ID, nil when no row matches.
func (r *GradeRepository) GetByID(ctx context.Context, id int64) (*models.Grade, error) {
	grade, err := scanGrade(r.db.QueryRow(ctx, gradeSelect+` WHERE g.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving grade: %w", err)
	}
	return grade, nil
}

// Exists reports whether a grade with the given ID exists.
func (r *GradeRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM grades WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking grade existence: %w", err)
	}
	return exists, nil
}

// GetAll retrieves all grades
func (r *GradeRepository) GetAll(ctx context.Context) ([]*models.Grade, error) {
	return r.queryGrades(ctx, gradeSelect)
}

// FilterByInstitution retrieves the grades of an institution
func (r *GradeRepository) FilterByInstitution(ctx context.Context, institutionID int64) ([]*models.Grade, error) {
	return r.queryGrades(ctx, gradeSelect+` WHERE g.institution_id = $1`, institutionID)
}

func (r *GradeRepository) queryGrades(ctx context.Context, query string, args ...interface{}) ([]*models.Grade, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying grades: %w", err)
	}
	defer rows.Close()

	var grades []*models.Grade
	for rows.Next() {
		grade, err := scanGrade(rows)
		if err != nil {
			return nil, err
		}
		grades = append(grades, grade)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return grades, nil
}

// Create inserts a new grade
func (r *GradeRepository) Create(ctx context.Context, grade *models.Grade) error {
	query := `
		INSERT INTO grades (name, description, institution_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	return r.db.QueryRow(ctx, query, grade.Name, grade.Description, grade.InstitutionID).Scan(&grade.ID)
}

// Update replaces the mutable fields of a grade
func (r *GradeRepository) Update(ctx context.Context, grade *models.Grade) error {
	query := `
		UPDATE grades
		SET name = $1, description = $2, institution_id = $3
		WHERE id = $4
	`
	cmdTag, err := r.db.Exec(ctx, query, grade.Name, grade.Description, grade.InstitutionID, grade.ID)
	if err != nil {
		return fmt.Errorf("error updating grade: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes a grade by ID. Students referencing the grade get their
// reference nulled by the store.
func (r *GradeRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM grades WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting grade: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
