package dto

import (
	"strings"
	"time"

	"github.com/mfuentes/escolar/internal/app/models"
)

// Validation messages, kept verbatim for client compatibility.
const (
	msgNameTooShort     = "El nombre debe tener al menos 2 caracteres"
	msgLastNameTooShort = "El apellido debe tener al menos 2 caracteres"
	msgInvalidDate      = "Formato de fecha invalido, se espera YYYY-MM-DD"
)

// minNameLength is the minimum length of a student's given or family name
// after trimming surrounding whitespace.
const minNameLength = 2

// StudentPayload is the inbound wire shape for creating or updating a
// student. Several logical fields are accepted under more than one key; the
// canonical key wins when both are present:
//
//	registration code: matricula (canonical), cedula
//	birth date:        fecha_nacimiento (canonical), fechaNacimiento
//	email:             correo (canonical), email
//	grade reference:   grado (canonical), gradoEstudioId
type StudentPayload struct {
	FirstName *string `json:"nombre"`
	LastName  *string `json:"apellido"`

	RegistrationCode *string `json:"matricula"`
	IDNumber         *string `json:"cedula"`

	BirthDate      *string `json:"fecha_nacimiento"`
	BirthDateAlias *string `json:"fechaNacimiento"`

	EmailCanonical *string `json:"correo"`
	EmailAlias     *string `json:"email"`

	GradeID      *FlexInt `json:"grado"`
	GradeIDAlias *FlexInt `json:"gradoEstudioId"`
}

// GradeExistsFunc reports whether a grade with the given ID exists. The
// adapter uses it to silently drop alias-supplied grade references that do
// not resolve; canonical grade references pass through for the service to
// reject.
type GradeExistsFunc func(gradeID int64) bool

// Normalize collapses the aliased wire keys into canonical attributes and
// validates the name fields. Both names are required. Validation failures are
// reported field-by-field; on failure the returned attrs are nil.
func (p *StudentPayload) Normalize(gradeExists GradeExistsFunc) (*models.StudentAttrs, FieldErrors) {
	return p.normalize(gradeExists, true)
}

// NormalizePartial is Normalize with partial update semantics: absent name
// fields are left out instead of failing, present ones are still validated.
func (p *StudentPayload) NormalizePartial(gradeExists GradeExistsFunc) (*models.StudentAttrs, FieldErrors) {
	return p.normalize(gradeExists, false)
}

func (p *StudentPayload) normalize(gradeExists GradeExistsFunc, namesRequired bool) (*models.StudentAttrs, FieldErrors) {
	errs := FieldErrors{}
	attrs := &models.StudentAttrs{}

	if p.FirstName != nil || namesRequired {
		if name, ok := validName(p.FirstName); ok {
			attrs.FirstName = &name
		} else {
			errs.Add("nombre", msgNameTooShort)
		}
	}

	if p.LastName != nil || namesRequired {
		if name, ok := validName(p.LastName); ok {
			attrs.LastName = &name
		} else {
			errs.Add("apellido", msgLastNameTooShort)
		}
	}

	// Registration code: canonical key, then alias.
	switch {
	case p.RegistrationCode != nil:
		attrs.RegistrationCode = p.RegistrationCode
	case p.IDNumber != nil:
		attrs.RegistrationCode = p.IDNumber
	}

	// Birth date: canonical key, then alias.
	if raw, field := firstPresent(p.BirthDate, "fecha_nacimiento", p.BirthDateAlias, "fechaNacimiento"); raw != nil {
		if *raw != "" {
			t, err := time.Parse(models.DateFormat, *raw)
			if err != nil {
				errs.Add(field, msgInvalidDate)
			} else {
				d := models.Date{Time: t}
				attrs.BirthDate = &d
			}
		}
	}

	// Email: canonical key, then alias.
	switch {
	case p.EmailCanonical != nil:
		attrs.Email = p.EmailCanonical
	case p.EmailAlias != nil:
		attrs.Email = p.EmailAlias
	}

	// Grade reference. A canonical value passes through untouched so the
	// service can reject a dangling reference. An alias value is only copied
	// when it parses and resolves to an existing grade; otherwise it is
	// dropped and the student is simply left without a grade.
	switch {
	case p.GradeID != nil && p.GradeID.Valid:
		id := p.GradeID.Value
		attrs.GradeID = &id
	case p.GradeIDAlias != nil && p.GradeIDAlias.Valid:
		if gradeExists != nil && gradeExists(p.GradeIDAlias.Value) {
			id := p.GradeIDAlias.Value
			attrs.GradeID = &id
		}
	}

	if errs.HasErrors() {
		return nil, errs
	}
	return attrs, nil
}

// validName trims the value and checks the minimum length.
func validName(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	trimmed := strings.TrimSpace(*s)
	if len([]rune(trimmed)) < minNameLength {
		return "", false
	}
	return trimmed, true
}

// firstPresent returns the first non-nil value with its field name.
func firstPresent(a *string, aField string, b *string, bField string) (*string, string) {
	if a != nil {
		return a, aField
	}
	return b, bField
}

// StudentResponse is the outbound wire shape for a student. Every aliased
// field is exposed under both its canonical key and its alias, and a fixed
// set of compatibility fields is always present for legacy clients even
// though this system never stores them.
type StudentResponse struct {
	ID       int64  `json:"id"`
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`

	Matricula string `json:"matricula"`
	Cedula    string `json:"cedula"`

	FechaNacimiento      *string `json:"fecha_nacimiento"`
	FechaNacimientoAlias *string `json:"fechaNacimiento"`

	Correo *string `json:"correo"`
	Email  *string `json:"email"`

	Grado          *int64  `json:"grado"`
	GradoEstudioID *int64  `json:"gradoEstudioId"`
	GradoNombre    *string `json:"grado_nombre"`

	// Compatibility fields, always present, never derived from storage.
	Direccion             string  `json:"direccion"`
	Telefono              string  `json:"telefono"`
	NombreRepresentante   string  `json:"nombreRepresentante"`
	TelefonoRepresentante string  `json:"telefonoRepresentante"`
	Anio                  *int    `json:"año"`
	Periodo               string  `json:"periodo"`
	Estado                bool    `json:"estado"`
	FechaIngreso          *string `json:"fechaIngreso"`
}

// NewStudentResponse expands a student record into the aliased wire shape.
func NewStudentResponse(s *models.Student) StudentResponse {
	resp := StudentResponse{
		ID:        s.ID,
		Nombre:    s.FirstName,
		Apellido:  s.LastName,
		Matricula: s.RegistrationCode,
		Cedula:    s.RegistrationCode,
		Correo:    s.Email,
		Email:     s.Email,
		Estado:    true,
	}

	if s.BirthDate != nil {
		formatted := s.BirthDate.Format(models.DateFormat)
		resp.FechaNacimiento = &formatted
		resp.FechaNacimientoAlias = &formatted
	}

	if s.GradeID != nil {
		resp.Grado = s.GradeID
		resp.GradoEstudioID = s.GradeID
	}
	if s.Grade != nil {
		resp.GradoNombre = &s.Grade.Name
	}

	return resp
}

// NewStudentListResponse expands a list of students.
func NewStudentListResponse(students []*models.Student) []StudentResponse {
	out := make([]StudentResponse, 0, len(students))
	for _, s := range students {
		out = append(out, NewStudentResponse(s))
	}
	return out
}
