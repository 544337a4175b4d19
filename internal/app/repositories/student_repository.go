package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mfuentes/escolar/internal/app/models"
)

// StudentRegistrationCodeConstraint is the unique constraint guarding the
// registration code column. A 23505 on it during insert or update means a
// concurrent writer took the code first.
const StudentRegistrationCodeConstraint = "students_registration_code_key"

// StudentRepository handles database operations for students
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const studentSelect = `
	SELECT s.id, s.first_name, s.last_name, s.registration_code, s.birth_date, s.email, s.grade_id,
	       g.name, g.institution_id
	FROM students s
	LEFT JOIN grades g ON g.id = s.grade_id
`

// scanStudent scans a row produced by studentSelect.
func scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	var birthDate *time.Time
	var gradeName *string
	var gradeInstitutionID *int64

	err := row.Scan(
		&s.ID,
		&s.FirstName,
		&s.LastName,
		&s.RegistrationCode,
		&birthDate,
		&s.Email,
		&s.GradeID,
		&gradeName,
		&gradeInstitutionID,
	)
	if err != nil {
		return nil, err
	}

	if birthDate != nil {
		d := models.Date{Time: *birthDate}
		s.BirthDate = &d
	}
	if s.GradeID != nil && gradeName != nil && gradeInstitutionID != nil {
		s.Grade = &models.Grade{
			ID:            *s.GradeID,
			Name:          *gradeName,
			InstitutionID: *gradeInstitutionID,
		}
	}

	return &s, nil
}

// GetByID retrieves a student by ID, nil when no row matches.
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	student, err := scanStudent(r.db.QueryRow(ctx, studentSelect+` WHERE s.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return student, nil
}

// GetByCode retrieves a student by registration code, nil when no row matches.
func (r *StudentRepository) GetByCode(ctx context.Context, code string) (*models.Student, error) {
	student, err := scanStudent(r.db.QueryRow(ctx, studentSelect+` WHERE s.registration_code = $1`, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving student by code: %w", err)
	}
	return student, nil
}

// GetAll retrieves all students
func (r *StudentRepository) GetAll(ctx context.Context) ([]*models.Student, error) {
	return r.queryStudents(ctx, studentSelect)
}

// FilterByGrade retrieves the students of a grade
func (r *StudentRepository) FilterByGrade(ctx context.Context, gradeID int64) ([]*models.Student, error) {
	return r.queryStudents(ctx, studentSelect+` WHERE s.grade_id = $1`, gradeID)
}

// FilterByInstitution retrieves the students whose grade belongs to an institution
func (r *StudentRepository) FilterByInstitution(ctx context.Context, institutionID int64) ([]*models.Student, error) {
	return r.queryStudents(ctx, studentSelect+` WHERE g.institution_id = $1`, institutionID)
}

// likeEscaper escapes LIKE metacharacters so a search term matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search matches the term case-insensitively against first name, last name
// or registration code.
func (r *StudentRepository) Search(ctx context.Context, term string) ([]*models.Student, error) {
	pattern := "%" + likeEscaper.Replace(term) + "%"
	query := studentSelect + ` WHERE s.first_name ILIKE $1 OR s.last_name ILIKE $1 OR s.registration_code ILIKE $1`
	return r.queryStudents(ctx, query, pattern)
}

func (r *StudentRepository) queryStudents(ctx context.Context, query string, args ...interface{}) ([]*models.Student, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// Create inserts a new student. Unique violations bubble up as pg errors for
// the service layer to translate.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (first_name, last_name, registration_code, birth_date, email, grade_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var birthDate *time.Time
	if student.BirthDate != nil {
		birthDate = &student.BirthDate.Time
	}

	err := r.db.QueryRow(ctx, query,
		student.FirstName,
		student.LastName,
		student.RegistrationCode,
		birthDate,
		student.Email,
		student.GradeID,
	).Scan(&student.ID)
	if err != nil {
		return err
	}

	return nil
}

// Update applies the supplied attributes to an existing student. Nil fields
// are left untouched.
func (r *StudentRepository) Update(ctx context.Context, id int64, attrs *models.StudentAttrs) error {
	update := r.sb.Update("students").Where(squirrel.Eq{"id": id})

	changed := false
	if attrs.FirstName != nil {
		update = update.Set("first_name", *attrs.FirstName)
		changed = true
	}
	if attrs.LastName != nil {
		update = update.Set("last_name", *attrs.LastName)
		changed = true
	}
	if attrs.RegistrationCode != nil {
		update = update.Set("registration_code", *attrs.RegistrationCode)
		changed = true
	}
	if attrs.BirthDate != nil {
		update = update.Set("birth_date", attrs.BirthDate.Time)
		changed = true
	}
	if attrs.Email != nil {
		update = update.Set("email", *attrs.Email)
		changed = true
	}
	if attrs.GradeID != nil {
		update = update.Set("grade_id", *attrs.GradeID)
		changed = true
	}
	if !changed {
		return nil
	}

	sql, args, err := update.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return err
	}

	return nil
}

// Delete removes a student by ID. Scores referencing the student are removed
// by the store's cascade rule.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
