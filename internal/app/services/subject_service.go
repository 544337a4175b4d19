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

// SubjectService handles subject-related operations
type SubjectService struct {
	subjectRepo *repositories.SubjectRepository
	gradeRepo   *repositories.GradeRepository
	teacherRepo *repositories.TeacherRepository
}

// NewSubjectService creates a new subject service instance
func NewSubjectService(subjectRepo *repositories.SubjectRepository, gradeRepo *repositories.GradeRepository, teacherRepo *repositories.TeacherRepository) *SubjectService {
	return &SubjectService{
		subjectRepo: subjectRepo,
		gradeRepo:   gradeRepo,
		teacherRepo: teacherRepo,
	}
}

// GetByID returns a subject or ErrSubjectNotFound.
func (s *SubjectService) GetByID(ctx context.Context, id int64) (*models.Subject, error) {
	subject, err := s.subjectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if subject == nil {
		return nil, apperrors.ErrSubjectNotFound
	}
	return subject, nil
}

// List returns subjects filtered by grade and/or teacher; criteria combine.
func (s *SubjectService) List(ctx context.Context, gradeID, teacherID *int64) ([]*models.Subject, error) {
	return s.subjectRepo.Filter(ctx, gradeID, teacherID)
}

// Create persists a new subject after checking its grade and optional teacher.
func (s *SubjectService) Create(ctx context.Context, subject *models.Subject) (*models.Subject, error) {
	if err := s.checkReferences(ctx, subject); err != nil {
		return nil, err
	}
	if err := s.subjectRepo.Create(ctx, subject); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, subject.ID)
}

// Update replaces a subject's attributes.
func (s *SubjectService) Update(ctx context.Context, subject *models.Subject) (*models.Subject, error) {
	if err := s.checkReferences(ctx, subject); err != nil {
		return nil, err
	}
	if err := s.subjectRepo.Update(ctx, subject); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubjectNotFound
		}
		return nil, err
	}
	return s.GetByID(ctx, subject.ID)
}

// Delete removes a subject. Scores recorded against it are removed by the
// store.
func (s *SubjectService) Delete(ctx context.Context, id int64) error {
	if err := s.subjectRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrSubjectNotFound
		}
		return err
	}
	return nil
}

func (s *SubjectService) checkReferences(ctx context.Context, subject *models.Subject) error {
	gradeExists, err := s.gradeRepo.Exists(ctx, subject.GradeID)
	if err != nil {
		return fmt.Errorf("error checking grade: %w", err)
	}
	if !gradeExists {
		return apperrors.ErrGradeNotFound
	}

	if subject.TeacherID != nil {
		teacherExists, err := s.teacherRepo.Exists(ctx, *subject.TeacherID)
		if err != nil {
			return fmt.Errorf("error checking teacher: %w", err)
		}
		if !teacherExists {
			return apperrors.ErrTeacherNotFound
		}
	}

	return nil
}
