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

// StaffService handles staff-related operations.
type StaffService struct {
	staffRepo       *repositories.StaffRepository
	institutionRepo *repositories.InstitutionRepository
}

// NewStaffService creates a new staff service instance
func NewStaffService(staffRepo *repositories.StaffRepository, institutionRepo *repositories.InstitutionRepository) *StaffService {
	return &StaffService{
		staffRepo:       staffRepo,
		institutionRepo: institutionRepo,
	}
}

// GetByID returns a staff member or ErrStaffNotFound.
func (s *StaffService) GetByID(ctx context.Context, id int64) (*models.Staff, error) {
	staff, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, apperrors.ErrStaffNotFound
	}
	return staff, nil
}

// List returns staff matching the filter; criteria combine.
func (s *StaffService) List(ctx context.Context, filter models.StaffFilter) ([]*models.Staff, error) {
	return s.staffRepo.Filter(ctx, filter)
}

// Create persists a new staff member. The ID number must be unused and the
// position one of the recognized roles.
func (s *StaffService) Create(ctx context.Context, staff *models.Staff) (*models.Staff, error) {
	if err := s.validateStaff(ctx, staff); err != nil {
		return nil, err
	}

	existing, err := s.staffRepo.GetByIDNumber(ctx, staff.IDNumber)
	if err != nil {
		return nil, fmt.Errorf("error checking ID number: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrDuplicateIDNumber
	}

	if err := s.staffRepo.Create(ctx, staff); err != nil {
		if dberrors.IsDuplicateConstraintError(err, repositories.StaffIDNumberConstraint) {
			return nil, apperrors.ErrDuplicateIDNumber
		}
		return nil, err
	}
	return staff, nil
}

// Update replaces a staff member's attributes. A changed ID number re-runs
// the duplicate check.
func (s *StaffService) Update(ctx context.Context, staff *models.Staff) (*models.Staff, error) {
	if err := s.validateStaff(ctx, staff); err != nil {
		return nil, err
	}

	current, err := s.staffRepo.GetByID(ctx, staff.ID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, apperrors.ErrStaffNotFound
	}

	if staff.IDNumber != current.IDNumber {
		existing, err := s.staffRepo.GetByIDNumber(ctx, staff.IDNumber)
		if err != nil {
			return nil, fmt.Errorf("error checking ID number: %w", err)
		}
		if existing != nil {
			return nil, apperrors.ErrDuplicateIDNumber
		}
	}

	if err := s.staffRepo.Update(ctx, staff); err != nil {
		if dberrors.IsDuplicateConstraintError(err, repositories.StaffIDNumberConstraint) {
			return nil, apperrors.ErrDuplicateIDNumber
		}
		return nil, err
	}
	return staff, nil
}

// Delete removes a staff member.
func (s *StaffService) Delete(ctx context.Context, id int64) error {
	if err := s.staffRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrStaffNotFound
		}
		return err
	}
	return nil
}

func (s *StaffService) validateStaff(ctx context.Context, staff *models.Staff) error {
	if !models.ValidStaffPosition(staff.Position) {
		return fmt.Errorf("%w: unknown position %q", apperrors.ErrValidationFailed, staff.Position)
	}

	if staff.InstitutionID != nil {
		exists, err := s.institutionRepo.Exists(ctx, *staff.InstitutionID)
		if err != nil {
			return fmt.Errorf("error checking institution: %w", err)
		}
		if !exists {
			return apperrors.ErrInstitutionNotFound
		}
	}

	return nil
}
