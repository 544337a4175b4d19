package services

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/mfuentes/escolar/internal/app/models"
	"github.com/mfuentes/escolar/internal/app/repositories"
	"github.com/mfuentes/escolar/internal/pkg/apperrors"
)

// InstitutionService handles institution-related operations
type InstitutionService struct {
	institutionRepo *repositories.InstitutionRepository
}

// NewInstitutionService creates a new institution service instance
func NewInstitutionService(institutionRepo *repositories.InstitutionRepository) *InstitutionService {
	return &InstitutionService{institutionRepo: institutionRepo}
}

// GetByID returns an institution or ErrInstitutionNotFound.
func (s *InstitutionService) GetByID(ctx context.Context, id int64) (*models.Institution, error) {
	institution, err := s.institutionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if institution == nil {
		return nil, apperrors.ErrInstitutionNotFound
	}
	return institution, nil
}

// GetAll returns every institution.
func (s *InstitutionService) GetAll(ctx context.Context) ([]*models.Institution, error) {
	return s.institutionRepo.GetAll(ctx)
}

// Create persists a new institution.
func (s *InstitutionService) Create(ctx context.Context, institution *models.Institution) (*models.Institution, error) {
	if err := s.institutionRepo.Create(ctx, institution); err != nil {
		return nil, err
	}
	return institution, nil
}

// Update replaces an institution's attributes.
func (s *InstitutionService) Update(ctx context.Context, institution *models.Institution) (*models.Institution, error) {
	if err := s.institutionRepo.Update(ctx, institution); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInstitutionNotFound
		}
		return nil, err
	}
	return institution, nil
}

// Delete removes an institution. Its grades, teachers and staff references
// are handled by the store's referential actions.
func (s *InstitutionService) Delete(ctx context.Context, id int64) error {
	if err := s.institutionRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrInstitutionNotFound
		}
		return err
	}
	return nil
}
