package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mfuentes/escolar/internal/app/models"
	"github.com/mfuentes/escolar/internal/app/repositories"
	"github.com/mfuentes/escolar/internal/pkg/apperrors"
	"github.com/mfuentes/escolar/internal/pkg/dberrors"
)

// ScoreService handles score-related operations. A student holds at most one
// score per subject and period.
type ScoreService struct {
	scoreRepo   *repositories.ScoreRepository
	studentRepo *repositories.StudentRepository
	subjectRepo *repositories.SubjectRepository
	periodRepo  *repositories.PeriodRepository
}

// NewScoreService creates a new score service instance
func NewScoreService(scoreRepo *repositories.ScoreRepository, studentRepo *repositories.StudentRepository, subjectRepo *repositories.SubjectRepository, periodRepo *repositories.PeriodRepository) *ScoreService {
	return &ScoreService{
		scoreRepo:   scoreRepo,
		studentRepo: studentRepo,
		subjectRepo: subjectRepo,
		periodRepo:  periodRepo,
	}
}

// GetByID returns a score or ErrScoreNotFound.
func (s *ScoreService) GetByID(ctx context.Context, id int64) (*models.Score, error) {
	score, err := s.scoreRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if score == nil {
		return nil, apperrors.ErrScoreNotFound
	}
	return score, nil
}

// List returns scores matching the filter; criteria combine.
func (s *ScoreService) List(ctx context.Context, filter models.ScoreFilter) ([]*models.Score, error) {
	return s.scoreRepo.Filter(ctx, filter)
}

// Create persists a new score. All three references must exist and the
// (student, subject, period) triple must be unused.
func (s *ScoreService) Create(ctx context.Context, score *models.Score) (*models.Score, error) {
	if err := s.checkReferences(ctx, score); err != nil {
		return nil, err
	}
	if err := s.scoreRepo.Create(ctx, score); err != nil {
		if dberrors.IsDuplicateConstraintError(err, repositories.ScoreTripleConstraint) {
			return nil, apperrors.ErrDuplicateScore
		}
		return nil, err
	}
	return score, nil
}

// Update replaces a score's attributes.
func (s *ScoreService) Update(ctx context.Context, score *models.Score) (*models.Score, error) {
	if err := s.checkReferences(ctx, score); err != nil {
		return nil, err
	}
	if err := s.scoreRepo.Update(ctx, score); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrScoreNotFound
		}
		if dberrors.IsDuplicateConstraintError(err, repositories.ScoreTripleConstraint) {
			return nil, apperrors.ErrDuplicateScore
		}
		return nil, err
	}
	return score, nil
}

// Delete removes a score.
func (s *ScoreService) Delete(ctx context.Context, id int64) error {
	if err := s.scoreRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrScoreNotFound
		}
		return err
	}
	return nil
}

func (s *ScoreService) checkReferences(ctx context.Context, score *models.Score) error {
	student, err := s.studentRepo.GetByID(ctx, score.StudentID)
	if err != nil {
		return fmt.Errorf("error checking student: %w", err)
	}
	if student == nil {
		return apperrors.ErrStudentNotFound
	}

	subjectExists, err := s.subjectRepo.Exists(ctx, score.SubjectID)
	if err != nil {
		return fmt.Errorf("error checking subject: %w", err)
	}
	if !subjectExists {
		return apperrors.ErrSubjectNotFound
	}

	periodExists, err := s.periodRepo.Exists(ctx, score.PeriodID)
	if err != nil {
		return fmt.Errorf("error checking period: %w", err)
	}
	if !periodExists {
		return apperrors.ErrPeriodNotFound
	}

	return nil
}
