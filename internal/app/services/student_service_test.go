package services

import (
	"context"
	"strconv"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfuentes/escolar/internal/app/models"
	"github.com/mfuentes/escolar/internal/app/repositories"
	"github.com/mfuentes/escolar/internal/pkg/apperrors"
)

// fakeStudentStore is an in-memory StudentStore for service tests.
type fakeStudentStore struct {
	students map[int64]*models.Student
	nextID   int64

	// createErr, when set, is returned by Create once.
	createErr error
}

func newFakeStudentStore() *fakeStudentStore {
	return &fakeStudentStore{students: map[int64]*models.Student{}, nextID: 1}
}

func (f *fakeStudentStore) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	s, ok := f.students[id]
	if !ok {
		return nil, nil
	}
	copied := *s
	return &copied, nil
}

func (f *fakeStudentStore) GetByCode(ctx context.Context, code string) (*models.Student, error) {
	for _, s := range f.students {
		if s.RegistrationCode == code {
			copied := *s
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeStudentStore) GetAll(ctx context.Context) ([]*models.Student, error) {
	var out []*models.Student
	for _, s := range f.students {
		copied := *s
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeStudentStore) FilterByGrade(ctx context.Context, gradeID int64) ([]*models.Student, error) {
	var out []*models.Student
	for _, s := range f.students {
		if s.GradeID != nil && *s.GradeID == gradeID {
			copied := *s
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeStudentStore) FilterByInstitution(ctx context.Context, institutionID int64) ([]*models.Student, error) {
	var out []*models.Student
	for _, s := range f.students {
		if s.Grade != nil && s.Grade.InstitutionID == institutionID {
			copied := *s
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeStudentStore) Search(ctx context.Context, term string) ([]*models.Student, error) {
	var out []*models.Student
	for _, s := range f.students {
		if s.FirstName == term || s.LastName == term || s.RegistrationCode == term {
			copied := *s
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeStudentStore) Create(ctx context.Context, student *models.Student) error {
	if f.createErr != nil {
		err := f.createErr
		f.createErr = nil
		return err
	}
	for _, s := range f.students {
		if s.RegistrationCode == student.RegistrationCode {
			return &pgconn.PgError{Code: "23505", ConstraintName: repositories.StudentRegistrationCodeConstraint}
		}
	}
	student.ID = f.nextID
	f.nextID++
	copied := *student
	f.students[student.ID] = &copied
	return nil
}

func (f *fakeStudentStore) Update(ctx context.Context, id int64, attrs *models.StudentAttrs) error {
	s, ok := f.students[id]
	if !ok {
		return nil
	}
	if attrs.FirstName != nil {
		s.FirstName = *attrs.FirstName
	}
	if attrs.LastName != nil {
		s.LastName = *attrs.LastName
	}
	if attrs.RegistrationCode != nil {
		s.RegistrationCode = *attrs.RegistrationCode
	}
	if attrs.BirthDate != nil {
		s.BirthDate = attrs.BirthDate
	}
	if attrs.Email != nil {
		s.Email = attrs.Email
	}
	if attrs.GradeID != nil {
		s.GradeID = attrs.GradeID
	}
	return nil
}

func (f *fakeStudentStore) Delete(ctx context.Context, id int64) error {
	delete(f.students, id)
	return nil
}

// fakeGradeFinder answers existence checks from a fixed set of grade ids.
type fakeGradeFinder struct {
	grades map[int64]bool
}

func (f *fakeGradeFinder) Exists(ctx context.Context, id int64) (bool, error) {
	return f.grades[id], nil
}

func newTestService(gradeIDs ...int64) (*StudentService, *fakeStudentStore) {
	store := newFakeStudentStore()
	grades := map[int64]bool{}
	for _, id := range gradeIDs {
		grades[id] = true
	}
	return NewStudentService(store, &fakeGradeFinder{grades: grades}), store
}

func strPtr(s string) *string { return &s }

func int64Ptr(i int64) *int64 { return &i }

func TestStudentServiceCreateGeneratesCode(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	student, err := svc.Create(ctx, &models.StudentAttrs{
		FirstName: strPtr("Ana"),
		LastName:  strPtr("Lopez"),
	})
	require.NoError(t, err)
	assert.Equal(t, "EST-ANA-LOP", student.RegistrationCode)

	// Same name again probes to the next free suffix.
	second, err := svc.Create(ctx, &models.StudentAttrs{
		FirstName: strPtr("Ana"),
		LastName:  strPtr("Lopez"),
	})
	require.NoError(t, err)
	assert.Equal(t, "EST-ANA-LOP-1", second.RegistrationCode)

	third, err := svc.Create(ctx, &models.StudentAttrs{
		FirstName: strPtr("Ana"),
		LastName:  strPtr("Lopez"),
	})
	require.NoError(t, err)
	assert.Equal(t, "EST-ANA-LOP-2", third.RegistrationCode)
}

func TestStudentServiceCreateCodeDefaults(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	student, err := svc.Create(ctx, &models.StudentAttrs{})
	require.NoError(t, err)
	assert.Equal(t, "EST-EST-000", student.RegistrationCode)
}

func TestStudentServiceCreateShortNames(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	student, err := svc.Create(ctx, &models.StudentAttrs{
		FirstName: strPtr("Jo"),
		LastName:  strPtr("Li"),
	})
	require.NoError(t, err)
	assert.Equal(t, "EST-JO-LI", student.RegistrationCode)
}

func TestStudentServiceCreateDuplicateExplicitCode(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, &models.StudentAttrs{
		FirstName:        strPtr("Ana"),
		LastName:         strPtr("Lopez"),
		RegistrationCode: strPtr("EST-001"),
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &models.StudentAttrs{
		FirstName:        strPtr("Luis"),
		LastName:         strPtr("Perez"),
		RegistrationCode: strPtr("EST-001"),
	})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateRegistration)
	assert.Len(t, store.students, 1)
}

func TestStudentServiceCreateConcurrentDuplicate(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	// Simulate a concurrent writer taking the code between the existence
	// check and the insert.
	store.createErr = &pgconn.PgError{Code: "23505", ConstraintName: repositories.StudentRegistrationCodeConstraint}

	_, err := svc.Create(ctx, &models.StudentAttrs{
		FirstName:        strPtr("Ana"),
		LastName:         strPtr("Lopez"),
		RegistrationCode: strPtr("EST-RACE"),
	})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateRegistration)
}

func TestStudentServiceCreateGradeNotFound(t *testing.T) {
	svc, store := newTestService(5)
	ctx := context.Background()

	_, err := svc.Create(ctx, &models.StudentAttrs{
		FirstName: strPtr("Ana"),
		LastName:  strPtr("Lopez"),
		GradeID:   int64Ptr(99),
	})
	assert.ErrorIs(t, err, apperrors.ErrGradeNotFound)
	assert.Empty(t, store.students)

	student, err := svc.Create(ctx, &models.StudentAttrs{
		FirstName: strPtr("Ana"),
		LastName:  strPtr("Lopez"),
		GradeID:   int64Ptr(5),
	})
	require.NoError(t, err)
	require.NotNil(t, student.GradeID)
	assert.Equal(t, int64(5), *student.GradeID)
}

func TestStudentServiceCreateExhaustsProbing(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	store.students[0] = &models.Student{ID: 0, RegistrationCode: "EST-ANA-LOP"}
	for i := 1; i < maxCodeProbes; i++ {
		id := int64(i)
		store.students[id] = &models.Student{
			ID:               id,
			RegistrationCode: "EST-ANA-LOP-" + strconv.Itoa(i),
		}
	}
	store.nextID = int64(maxCodeProbes)

	_, err := svc.Create(ctx, &models.StudentAttrs{
		FirstName: strPtr("Ana"),
		LastName:  strPtr("Lopez"),
	})
	assert.ErrorIs(t, err, apperrors.ErrRegistrationExhausted)
}

func TestStudentServiceGetByID(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	store.students[7] = &models.Student{ID: 7, FirstName: "Ana", RegistrationCode: "EST-A"}

	student, err := svc.GetByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Ana", student.FirstName)

	_, err = svc.GetByID(ctx, 99)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestStudentServiceListFilterPrecedence(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	gradeID := int64(1)
	store.students[1] = &models.Student{
		ID: 1, FirstName: "Ana", RegistrationCode: "EST-A",
		GradeID: &gradeID,
		Grade:   &models.Grade{ID: gradeID, InstitutionID: 10},
	}
	store.students[2] = &models.Student{ID: 2, FirstName: "Luis", RegistrationCode: "EST-B"}

	// Grade filter wins even when all three criteria are present.
	result, err := svc.List(ctx, models.StudentFilter{
		GradeID:       &gradeID,
		InstitutionID: int64Ptr(999),
		Search:        "Luis",
	})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, int64(1), result[0].ID)

	// Institution filter wins over search.
	result, err = svc.List(ctx, models.StudentFilter{
		InstitutionID: int64Ptr(10),
		Search:        "Luis",
	})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, int64(1), result[0].ID)

	// Search alone.
	result, err = svc.List(ctx, models.StudentFilter{Search: "Luis"})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, int64(2), result[0].ID)

	// No filter returns everything.
	result, err = svc.List(ctx, models.StudentFilter{})
	require.NoError(t, err)
	assert.Len(t, result, 2)
}

func TestStudentServiceUpdatePartial(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	gradeID := int64(3)
	store.students[1] = &models.Student{
		ID: 1, FirstName: "Ana", LastName: "Lopez",
		RegistrationCode: "EST-ANA-LOP", GradeID: &gradeID,
	}

	email := "ana@example.com"
	student, err := svc.Update(ctx, 1, &models.StudentAttrs{Email: &email})
	require.NoError(t, err)

	assert.Equal(t, "Ana", student.FirstName)
	assert.Equal(t, "Lopez", student.LastName)
	assert.Equal(t, "EST-ANA-LOP", student.RegistrationCode)
	require.NotNil(t, student.GradeID)
	assert.Equal(t, gradeID, *student.GradeID)
	require.NotNil(t, student.Email)
	assert.Equal(t, email, *student.Email)
}

func TestStudentServiceUpdateDuplicateCode(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	store.students[1] = &models.Student{ID: 1, RegistrationCode: "EST-A"}
	store.students[2] = &models.Student{ID: 2, RegistrationCode: "EST-B"}

	_, err := svc.Update(ctx, 2, &models.StudentAttrs{RegistrationCode: strPtr("EST-A")})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateRegistration)

	// Re-supplying the current code is not a collision.
	_, err = svc.Update(ctx, 2, &models.StudentAttrs{RegistrationCode: strPtr("EST-B")})
	assert.NoError(t, err)
}

func TestStudentServiceUpdateBlankCodeIgnored(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	store.students[1] = &models.Student{ID: 1, FirstName: "Ana", LastName: "Lopez", RegistrationCode: "EST-ANA-LOP"}
	store.students[2] = &models.Student{ID: 2, FirstName: "Luis", LastName: "Perez", RegistrationCode: "EST-LUI-PER"}

	// An empty code in the payload leaves the stored code alone.
	student, err := svc.Update(ctx, 1, &models.StudentAttrs{RegistrationCode: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, "EST-ANA-LOP", student.RegistrationCode)

	// A second student updated the same way must not collide on "".
	student, err = svc.Update(ctx, 2, &models.StudentAttrs{RegistrationCode: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, "EST-LUI-PER", student.RegistrationCode)
}

func TestStudentServiceUpdateGradeNotFound(t *testing.T) {
	svc, store := newTestService(4)
	ctx := context.Background()

	store.students[1] = &models.Student{ID: 1, RegistrationCode: "EST-A"}

	_, err := svc.Update(ctx, 1, &models.StudentAttrs{GradeID: int64Ptr(99)})
	assert.ErrorIs(t, err, apperrors.ErrGradeNotFound)

	_, err = svc.Update(ctx, 1, &models.StudentAttrs{GradeID: int64Ptr(4)})
	assert.NoError(t, err)
}

func TestStudentServiceUpdateNotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Update(context.Background(), 42, &models.StudentAttrs{})
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestStudentServiceDelete(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	store.students[1] = &models.Student{ID: 1, RegistrationCode: "EST-A"}

	require.NoError(t, svc.Delete(ctx, 1))
	assert.Empty(t, store.students)

	assert.ErrorIs(t, svc.Delete(ctx, 1), apperrors.ErrStudentNotFound)
}
