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

// ScoreTripleConstraint is the unique constraint over
// (student_id, subject_id, period_id).
const ScoreTripleConstraint = "scores_student_id_subject_id_period_id_key"

// ScoreRepository handles database operations for scores
type ScoreRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewScoreRepository creates a new score repository
func NewScoreRepository(db *pgxpool.Pool) *ScoreRepository {
	return &ScoreRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanScore(row pgx.Row) (*models.Score, error) {
	var s models.Score
	if err := row.Scan(&s.ID, &s.StudentID, &s.SubjectID, &s.PeriodID, &s.Value); err != nil {
		return nil, err
	}
	return &s, nil
}

// GetByID retrieves a score by ID, nil when no row matches.
func (r *ScoreRepository) GetByID(ctx context.Context, id int64) (*models.Score, error) {
	score, err := scanScore(r.db.QueryRow(ctx,
		`SELECT id, student_id, subject_id, period_id, score FROM scores WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving score: %w", err)
	}
	return score, nil
}

// Filter retrieves scores narrowed by any combination of student, subject
// and period.
func (r *ScoreRepository) Filter(ctx context.Context, filter models.ScoreFilter) ([]*models.Score, error) {
	builder := r.sb.Select("id", "student_id", "subject_id", "period_id", "score").From("scores")

	if filter.StudentID != nil {
		builder = builder.Where(squirrel.Eq{"student_id": *filter.StudentID})
	}
	if filter.SubjectID != nil {
		builder = builder.Where(squirrel.Eq{"subject_id": *filter.SubjectID})
	}
	if filter.PeriodID != nil {
		builder = builder.Where(squirrel.Eq{"period_id": *filter.PeriodID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build score filter: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying scores: %w", err)
	}
	defer rows.Close()

	var scores []*models.Score
	for rows.Next() {
		score, err := scanScore(rows)
		if err != nil {
			return nil, err
		}
		scores = append(scores, score)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return scores, nil
}

// Create inserts a new score. Violations of the (student, subject, period)
// uniqueness bubble up as pg errors for the service layer to translate.
func (r *ScoreRepository) Create(ctx context.Context, score *models.Score) error {
	query := `
		INSERT INTO scores (student_id, subject_id, period_id, score)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.db.QueryRow(ctx, query,
		score.StudentID, score.SubjectID, score.PeriodID, score.Value,
	).Scan(&score.ID)
}

// Update replaces the mutable fields of a score
func (r *ScoreRepository) Update(ctx context.Context, score *models.Score) error {
	query := `
		UPDATE scores
		SET student_id = $1, subject_id = $2, period_id = $3, score = $4
		WHERE id = $5
	`
	cmdTag, err := r.db.Exec(ctx, query,
		score.StudentID, score.SubjectID, score.PeriodID, score.Value, score.ID)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes a score by ID
func (r *ScoreRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM scores WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting score: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
