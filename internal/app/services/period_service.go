package services

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/mfuentes/escolar/internal/app/models"
	"github.com/mfuentes/escolar/internal/app/repositories"
	"github.com/mfuentes/escolar/internal/pkg/apperrors"
)

// PeriodService handles academic period operations
type PeriodService struct {
	periodRepo *repositories.PeriodRepository
}

// NewPeriodService creates a new period service instance
func NewPeriodService(periodRepo *repositories.PeriodRepository) *PeriodService {
	return &PeriodService{periodRepo: periodRepo}
}

// GetByID returns a period or ErrPeriodNotFound.
func (s *PeriodService) GetByID(ctx context.Context, id int64) (*models.Period, error) {
	period, err := s.periodRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if period == nil {
		return nil, apperrors.ErrPeriodNotFound
	}
	return period, nil
}

// GetAll returns every period.
func (s *PeriodService) GetAll(ctx context.Context) ([]*models.Period, error) {
	return s.periodRepo.GetAll(ctx)
}

// Create persists a new period. End date must not precede the start date.
func (s *PeriodService) Create(ctx context.Context, period *models.Period) (*models.Period, error) {
	if period.EndDate.Before(period.StartDate.Time) {
		return nil, apperrors.ErrValidationFailed
	}
	if err := s.periodRepo.Create(ctx, period); err != nil {
		return nil, err
	}
	return period, nil
}

// Update replaces a period's attributes.
func (s *PeriodService) Update(ctx context.Context, period *models.Period) (*models.Period, error) {
	if period.EndDate.Before(period.StartDate.Time) {
		return nil, apperrors.ErrValidationFailed
	}
	if err := s.periodRepo.Update(ctx, period); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPeriodNotFound
		}
		return nil, err
	}
	return period, nil
}

// Delete removes a period. Scores recorded in it are removed by the store.
func (s *PeriodService) Delete(ctx context.Context, id int64) error {
	if err := s.periodRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrPeriodNotFound
		}
		return err
	}
	return nil
}
