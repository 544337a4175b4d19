package models

// Student is the central record of the system. The registration code is unique
// across all students; the grade reference is optional and nulled by the store
// when the grade is deleted.
//
// The wire representation of a student is produced by the dto package, which
// expands canonical fields into their client aliases. The model itself carries
// only canonical fields.
type Student struct {
	ID               int64   `db:"id"`
	FirstName        string  `db:"first_name"`
	LastName         string  `db:"last_name"`
	RegistrationCode string  `db:"registration_code"`
	BirthDate        *Date   `db:"birth_date"`
	Email            *string `db:"email"`
	GradeID          *int64  `db:"grade_id"`

	// Grade is populated from a join when the student has one.
	Grade *Grade
}

// StudentAttrs carries a partial set of student attributes for create and
// update operations. A nil field means "not supplied"; supplied fields are
// already alias-resolved and trimmed.
type StudentAttrs struct {
	FirstName        *string
	LastName         *string
	RegistrationCode *string
	BirthDate        *Date
	Email            *string
	GradeID          *int64
}

// StudentFilter selects students for listing. At most one criterion is
// applied: a grade filter wins over an institution filter, which wins over a
// free-text search.
type StudentFilter struct {
	GradeID       *int64
	InstitutionID *int64
	Search        string
}
