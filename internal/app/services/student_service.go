package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/mfuentes/escolar/internal/app/models"
	"github.com/mfuentes/escolar/internal/app/repositories"
	"github.com/mfuentes/escolar/internal/pkg/apperrors"
	"github.com/mfuentes/escolar/internal/pkg/dberrors"
	"github.com/mfuentes/escolar/internal/pkg/logger"
)

// maxCodeProbes caps the registration code collision probing loop. Without a
// cap two students created in a tight loop with the same name could keep the
// generator spinning indefinitely.
const maxCodeProbes = 1000

// StudentStore is the persistence surface the student service needs.
// *repositories.StudentRepository satisfies it.
type StudentStore interface {
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetByCode(ctx context.Context, code string) (*models.Student, error)
	GetAll(ctx context.Context) ([]*models.Student, error)
	FilterByGrade(ctx context.Context, gradeID int64) ([]*models.Student, error)
	FilterByInstitution(ctx context.Context, institutionID int64) ([]*models.Student, error)
	Search(ctx context.Context, term string) ([]*models.Student, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, id int64, attrs *models.StudentAttrs) error
	Delete(ctx context.Context, id int64) error
}

// GradeFinder answers grade existence checks for the student service.
// *repositories.GradeRepository satisfies it.
type GradeFinder interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// StudentService enforces the business rules around student records:
// registration code uniqueness and generation, grade reference integrity,
// and partial update semantics.
type StudentService struct {
	studentStore StudentStore
	gradeFinder  GradeFinder
}

// NewStudentService creates a new student service instance
func NewStudentService(studentStore StudentStore, gradeFinder GradeFinder) *StudentService {
	return &StudentService{
		studentStore: studentStore,
		gradeFinder:  gradeFinder,
	}
}

// Create persists a new student from the supplied attributes. A missing
// registration code is generated from the student's name; a supplied or
// generated code that is already taken fails with ErrDuplicateRegistration.
// A grade reference must resolve to an existing grade.
func (s *StudentService) Create(ctx context.Context, attrs *models.StudentAttrs) (*models.Student, error) {
	if attrs.GradeID != nil {
		if err := s.checkGradeExists(ctx, *attrs.GradeID); err != nil {
			return nil, err
		}
	}

	var code string
	if attrs.RegistrationCode != nil && *attrs.RegistrationCode != "" {
		code = *attrs.RegistrationCode
		existing, err := s.studentStore.GetByCode(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("error checking registration code: %w", err)
		}
		if existing != nil {
			return nil, apperrors.ErrDuplicateRegistration
		}
	} else {
		generated, err := s.generateCode(ctx, attrs.FirstName, attrs.LastName)
		if err != nil {
			return nil, err
		}
		code = generated
	}

	student := &models.Student{
		RegistrationCode: code,
		BirthDate:        attrs.BirthDate,
		Email:            attrs.Email,
		GradeID:          attrs.GradeID,
	}
	if attrs.FirstName != nil {
		student.FirstName = *attrs.FirstName
	}
	if attrs.LastName != nil {
		student.LastName = *attrs.LastName
	}

	if err := s.studentStore.Create(ctx, student); err != nil {
		// A concurrent create can take the code between our existence check
		// and the insert; the unique constraint catches it.
		if dberrors.IsDuplicateConstraintError(err, repositories.StudentRegistrationCodeConstraint) {
			logger.Warn().Str("code", code).Msg("Registration code taken by concurrent create")
			return nil, apperrors.ErrDuplicateRegistration
		}
		return nil, fmt.Errorf("error creating student: %w", err)
	}

	return s.GetByID(ctx, student.ID)
}

// GetByID returns a student or ErrStudentNotFound.
func (s *StudentService) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	student, err := s.studentStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, apperrors.ErrStudentNotFound
	}
	return student, nil
}

// List returns students matching the filter. Only one criterion is applied:
// a grade filter wins over an institution filter, which wins over a free-text
// search. With no criteria every student is returned.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) ([]*models.Student, error) {
	switch {
	case filter.GradeID != nil:
		return s.studentStore.FilterByGrade(ctx, *filter.GradeID)
	case filter.InstitutionID != nil:
		return s.studentStore.FilterByInstitution(ctx, *filter.InstitutionID)
	case filter.Search != "":
		return s.studentStore.Search(ctx, filter.Search)
	default:
		return s.studentStore.GetAll(ctx)
	}
}

// Update applies the supplied attributes to an existing student. Absent
// attributes are left untouched. A changed registration code re-runs the
// duplicate check and a supplied grade reference re-runs the existence check.
func (s *StudentService) Update(ctx context.Context, id int64, attrs *models.StudentAttrs) (*models.Student, error) {
	current, err := s.studentStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, apperrors.ErrStudentNotFound
	}

	// An empty supplied code means "not supplied", same as on create.
	if attrs.RegistrationCode != nil && *attrs.RegistrationCode == "" {
		attrs.RegistrationCode = nil
	}

	if attrs.RegistrationCode != nil && *attrs.RegistrationCode != current.RegistrationCode {
		existing, err := s.studentStore.GetByCode(ctx, *attrs.RegistrationCode)
		if err != nil {
			return nil, fmt.Errorf("error checking registration code: %w", err)
		}
		if existing != nil {
			return nil, apperrors.ErrDuplicateRegistration
		}
	}

	if attrs.GradeID != nil {
		if err := s.checkGradeExists(ctx, *attrs.GradeID); err != nil {
			return nil, err
		}
	}

	if err := s.studentStore.Update(ctx, id, attrs); err != nil {
		if dberrors.IsDuplicateConstraintError(err, repositories.StudentRegistrationCodeConstraint) {
			return nil, apperrors.ErrDuplicateRegistration
		}
		return nil, fmt.Errorf("error updating student: %w", err)
	}

	return s.GetByID(ctx, id)
}

// Delete removes a student or fails with ErrStudentNotFound.
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	student, err := s.studentStore.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if student == nil {
		return apperrors.ErrStudentNotFound
	}
	return s.studentStore.Delete(ctx, id)
}

// GradeExists reports whether a grade id resolves to a stored grade.
func (s *StudentService) GradeExists(ctx context.Context, id int64) (bool, error) {
	return s.gradeFinder.Exists(ctx, id)
}

func (s *StudentService) checkGradeExists(ctx context.Context, gradeID int64) error {
	exists, err := s.gradeFinder.Exists(ctx, gradeID)
	if err != nil {
		return fmt.Errorf("error checking grade: %w", err)
	}
	if !exists {
		return apperrors.ErrGradeNotFound
	}
	return nil
}

// generateCode derives a registration code from the student's name and probes
// for an unused variant: EST-<name3>-<family3>, then -1, -2 and so on.
func (s *StudentService) generateCode(ctx context.Context, firstName, lastName *string) (string, error) {
	base := fmt.Sprintf("EST-%s-%s", namePrefix(firstName, "EST"), namePrefix(lastName, "000"))

	for i := 0; i < maxCodeProbes; i++ {
		candidate := base
		if i > 0 {
			candidate = fmt.Sprintf("%s-%d", base, i)
		}
		existing, err := s.studentStore.GetByCode(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("error probing registration code: %w", err)
		}
		if existing == nil {
			return candidate, nil
		}
	}

	logger.Error().Str("base", base).Int("probes", maxCodeProbes).Msg("Registration code space exhausted")
	return "", apperrors.ErrRegistrationExhausted
}

// namePrefix takes the first three characters of a name, upper-cased, falling
// back to a fixed token when the name is missing or blank.
func namePrefix(name *string, fallback string) string {
	if name == nil {
		return fallback
	}
	trimmed := strings.TrimSpace(*name)
	if trimmed == "" {
		return fallback
	}
	runes := []rune(strings.ToUpper(trimmed))
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return string(runes)
}
