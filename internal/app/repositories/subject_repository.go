package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mfuentes/escolar/internal/app/models"
)

// SubjectRepository handles database operations for subjects
type SubjectRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSubjectRepository creates a new subject repository
func NewSubjectRepository(db *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const subjectSelect = `
	SELECT su.id, su.name, su.description, su.teacher_id, su.grade_id,
	       t.first_name, t.last_name, g.name
	FROM subjects su
	LEFT JOIN teachers t ON t.id = su.teacher_id
	JOIN grades g ON g.id = su.grade_id
`

func scanSubject(row pgx.Row) (*models.Subject, error) {
	var s models.Subject
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Description,
		&s.TeacherID,
		&s.GradeID,
		&s.TeacherFirstName,
		&s.TeacherLastName,
		&s.GradeName,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetByID retrieves a subject by ID, nil when no row matches.
func (r *SubjectRepository) GetByID(ctx context.Context, id int64) (*models.Subject, error) {
	subject, err := scanSubject(r.db.QueryRow(ctx, subjectSelect+` WHERE su.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving subject: %w", err)
	}
	return subject, nil
}

// Exists reports whether a subject with the given ID exists.
func (r *SubjectRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM subjects WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking subject existence: %w", err)
	}
	return exists, nil
}

// Filter retrieves subjects, optionally narrowed by grade and/or teacher.
func (r *SubjectRepository) Filter(ctx context.Context, gradeID, teacherID *int64) ([]*models.Subject, error) {
	builder := r.sb.Select(
		"su.id", "su.name", "su.description", "su.teacher_id", "su.grade_id",
		"t.first_name", "t.last_name", "g.name",
	).
		From("subjects su").
		LeftJoin("teachers t ON t.id = su.teacher_id").
		Join("grades g ON g.id = su.grade_id")

	if gradeID != nil {
		builder = builder.Where(squirrel.Eq{"su.grade_id": *gradeID})
	}
	if teacherID != nil {
		builder = builder.Where(squirrel.Eq{"su.teacher_id": *teacherID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build subject filter: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying subjects: %w", err)
	}
	defer rows.Close()

	var subjects []*models.Subject
	for rows.Next() {
		subject, err := scanSubject(rows)
		if err != nil {
			return nil, err
		}
		subjects = append(subjects, subject)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return subjects, nil
}

// Create inserts a new subject
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	query := `
		INSERT INTO subjects (name, description, teacher_id, grade_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.db.QueryRow(ctx, query,
		subject.Name, subject.Description, subject.TeacherID, subject.GradeID,
	).Scan(&subject.ID)
}

// Update replaces the mutable fields of a subject
func (r *SubjectRepository) Update(ctx context.Context, subject *models.Subject) error {
	query := `
		UPDATE subjects
		SET name = $1, description = $2, teacher_id = $3, grade_id = $4
		WHERE id = $5
	`
	cmdTag, err := r.db.Exec(ctx, query,
		subject.Name, subject.Description, subject.TeacherID, subject.GradeID, subject.ID)
	if err != nil {
		return fmt.Errorf("error updating subject: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes a subject by ID
func (r *SubjectRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM subjects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting subject: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
