package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mfuentes/escolar/internal/app/models"
	"github.com/mfuentes/escolar/internal/app/repositories"
	"github.com/mfuentes/escolar/internal/pkg/apperrors"
)

// GradeService handles grade-related operations
type GradeService struct {
	gradeRepo       *repositories.GradeRepository
	institutionRepo *repositories.InstitutionRepository
}

// NewGradeService creates a new grade service instance
func NewGradeService(gradeRepo *repositories.GradeRepository, institutionRepo *repositories.InstitutionRepository) *GradeService {
	return &GradeService{
		gradeRepo:       gradeRepo,
		institutionRepo: institutionRepo,
	}
}

// GetByID returns a grade or ErrGradeNotFound.
func (s *GradeService) GetByID(ctx context.Context, id int64) (*models.Grade, error) {
	grade, err := s.gradeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if grade == nil {
		return nil, apperrors.ErrGradeNotFound
	}
	return grade, nil
}

// List returns grades, optionally restricted to one institution.
func (s *GradeService) List(ctx context.Context, institutionID *int64) ([]*models.Grade, error) {
	if institutionID != nil {
		return s.gradeRepo.FilterByInstitution(ctx, *institutionID)
	}
	return s.gradeRepo.GetAll(ctx)
}

// Create persists a new grade after checking its institution exists.
func (s *GradeService) Create(ctx context.Context, grade *models.Grade) (*models.Grade, error) {
	if err := s.checkInstitutionExists(ctx, grade.InstitutionID); err != nil {
		return nil, err
	}
	if err := s.gradeRepo.Create(ctx, grade); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, grade.ID)
}

// Update replaces a grade's attributes.
func (s *GradeService) Update(ctx context.Context, grade *models.Grade) (*models.Grade, error) {
	if err := s.checkInstitutionExists(ctx, grade.InstitutionID); err != nil {
		return nil, err
	}
	if err := s.gradeRepo.Update(ctx, grade); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrGradeNotFound
		}
		return nil, err
	}
	return s.GetByID(ctx, grade.ID)
}

// Delete removes a grade. Students referencing it keep their records with the
// reference nulled by the store.
func (s *GradeService) Delete(ctx context.Context, id int64) error {
	if err := s.gradeRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrGradeNotFound
		}
		return err
	}
	return nil
}

func (s *GradeService) checkInstitutionExists(ctx context.Context, institutionID int64) error {
	exists, err := s.institutionRepo.Exists(ctx, institutionID)
	if err != nil {
		return fmt.Errorf("error checking institution: %w", err)
	}
	if !exists {
		return apperrors.ErrInstitutionNotFound
	}
	return nil
}
