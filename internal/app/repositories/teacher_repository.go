package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mfuentes/escolar/internal/app/models"
)

// TeacherRepository handles database operations for teachers
type TeacherRepository struct {
	db *pgxpool.Pool
}

// NewTeacherRepository creates a new teacher repository
func NewTeacherRepository(db *pgxpool.Pool) *TeacherRepository {
	return &TeacherRepository{db: db}
}

const teacherSelect = `SELECT id, first_name, last_name, email, phone, institution_id FROM teachers`

func scanTeacher(row pgx.Row) (*models.Teacher, error) {
	var t models.Teacher
	if err := row.Scan(&t.ID, &t.FirstName, &t.LastName, &t.Email, &t.Phone, &t.InstitutionID); err != nil {
		return nil, err
	}
	return &t, nil
}

// GetByID retrieves a teacher by ID, nil when no row matches.
func (r *TeacherRepository) GetByID(ctx context.Context, id int64) (*models.Teacher, error) {
	teacher, err := scanTeacher(r.db.QueryRow(ctx, teacherSelect+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving teacher: %w", err)
	}
	return teacher, nil
}

// Exists reports whether a teacher with the given ID exists.
func (r *TeacherRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM teachers WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking teacher existence: %w", err)
	}
	return exists, nil
}

// GetAll retrieves all teachers
func (r *TeacherRepository) GetAll(ctx context.Context) ([]*models.Teacher, error) {
	return r.queryTeachers(ctx, teacherSelect)
}

// FilterByInstitution retrieves the teachers of an institution
func (r *TeacherRepository) FilterByInstitution(ctx context.Context, institutionID int64) ([]*models.Teacher, error) {
	return r.queryTeachers(ctx, teacherSelect+` WHERE institution_id = $1`, institutionID)
}

func (r *TeacherRepository) queryTeachers(ctx context.Context, query string, args ...interface{}) ([]*models.Teacher, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying teachers: %w", err)
	}
	defer rows.Close()

	var teachers []*models.Teacher
	for rows.Next() {
		teacher, err := scanTeacher(rows)
		if err != nil {
			return nil, err
		}
		teachers = append(teachers, teacher)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return teachers, nil
}

// Create inserts a new teacher
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	query := `
		INSERT INTO teachers (first_name, last_name, email, phone, institution_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return r.db.QueryRow(ctx, query,
		teacher.FirstName, teacher.LastName, teacher.Email, teacher.Phone, teacher.InstitutionID,
	).Scan(&teacher.ID)
}

// Update replaces the mutable fields of a teacher
func (r *TeacherRepository) Update(ctx context.Context, teacher *models.Teacher) error {
	query := `
		UPDATE teachers
		SET first_name = $1, last_name = $2, email = $3, phone = $4, institution_id = $5
		WHERE id = $6
	`
	cmdTag, err := r.db.Exec(ctx, query,
		teacher.FirstName, teacher.LastName, teacher.Email, teacher.Phone, teacher.InstitutionID, teacher.ID)
	if err != nil {
		return fmt.Errorf("error updating teacher: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes a teacher by ID. Subjects keep existing with a nulled
// teacher reference.
func (r *TeacherRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM teachers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting teacher: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
