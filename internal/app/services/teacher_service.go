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

// TeacherService handles teacher-related operations
type TeacherService struct {
	teacherRepo     *repositories.TeacherRepository
	institutionRepo *repositories.InstitutionRepository
}

// NewTeacherService creates a new teacher service instance
func NewTeacherService(teacherRepo *repositories.TeacherRepository, institutionRepo *repositories.InstitutionRepository) *TeacherService {
	return &TeacherService{
		teacherRepo:     teacherRepo,
		institutionRepo: institutionRepo,
	}
}

// GetByID returns a teacher or ErrTeacherNotFound.
func (s *TeacherService) GetByID(ctx context.Context, id int64) (*models.Teacher, error) {
	teacher, err := s.teacherRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if teacher == nil {
		return nil, apperrors.ErrTeacherNotFound
	}
	return teacher, nil
}

// List returns teachers, optionally restricted to one institution.
func (s *TeacherService) List(ctx context.Context, institutionID *int64) ([]*models.Teacher, error) {
	if institutionID != nil {
		return s.teacherRepo.FilterByInstitution(ctx, *institutionID)
	}
	return s.teacherRepo.GetAll(ctx)
}

// Create persists a new teacher after checking their institution exists.
func (s *TeacherService) Create(ctx context.Context, teacher *models.Teacher) (*models.Teacher, error) {
	if err := s.checkInstitutionExists(ctx, teacher.InstitutionID); err != nil {
		return nil, err
	}
	if err := s.teacherRepo.Create(ctx, teacher); err != nil {
		return nil, err
	}
	return teacher, nil
}

// Update replaces a teacher's attributes.
func (s *TeacherService) Update(ctx context.Context, teacher *models.Teacher) (*models.Teacher, error) {
	if err := s.checkInstitutionExists(ctx, teacher.InstitutionID); err != nil {
		return nil, err
	}
	if err := s.teacherRepo.Update(ctx, teacher); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTeacherNotFound
		}
		return nil, err
	}
	return teacher, nil
}

// Delete removes a teacher. Subjects they taught keep their records with the
// reference nulled by the store.
func (s *TeacherService) Delete(ctx context.Context, id int64) error {
	if err := s.teacherRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrTeacherNotFound
		}
		return err
	}
	return nil
}

func (s *TeacherService) checkInstitutionExists(ctx context.Context, institutionID int64) error {
	exists, err := s.institutionRepo.Exists(ctx, institutionID)
	if err != nil {
		return fmt.Errorf("error checking institution: %w", err)
	}
	if !exists {
		return apperrors.ErrInstitutionNotFound
	}
	return nil
}
