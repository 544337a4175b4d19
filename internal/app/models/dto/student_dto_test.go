package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfuentes/escolar/internal/app/models"
)

func anyGrade(int64) bool { return true }

func noGrade(int64) bool { return false }

func decodePayload(t *testing.T, raw string) *StudentPayload {
	t.Helper()
	var p StudentPayload
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	return &p
}

func TestNormalizeCanonicalFields(t *testing.T) {
	p := decodePayload(t, `{
		"nombre": "  Ana  ",
		"apellido": "Lopez",
		"matricula": "EST-001",
		"fecha_nacimiento": "2010-05-20",
		"correo": "ana@example.com",
		"grado": 3
	}`)

	attrs, errs := p.Normalize(anyGrade)
	require.Nil(t, errs)

	assert.Equal(t, "Ana", *attrs.FirstName)
	assert.Equal(t, "Lopez", *attrs.LastName)
	assert.Equal(t, "EST-001", *attrs.RegistrationCode)
	assert.Equal(t, "2010-05-20", attrs.BirthDate.Format(models.DateFormat))
	assert.Equal(t, "ana@example.com", *attrs.Email)
	require.NotNil(t, attrs.GradeID)
	assert.Equal(t, int64(3), *attrs.GradeID)
}

func TestNormalizeAliasFields(t *testing.T) {
	p := decodePayload(t, `{
		"nombre": "Ana",
		"apellido": "Lopez",
		"cedula": "V-123",
		"fechaNacimiento": "2010-05-20",
		"email": "ana@example.com",
		"gradoEstudioId": "7"
	}`)

	attrs, errs := p.Normalize(anyGrade)
	require.Nil(t, errs)

	assert.Equal(t, "V-123", *attrs.RegistrationCode)
	assert.Equal(t, "2010-05-20", attrs.BirthDate.Format(models.DateFormat))
	assert.Equal(t, "ana@example.com", *attrs.Email)
	require.NotNil(t, attrs.GradeID)
	assert.Equal(t, int64(7), *attrs.GradeID)
}

func TestNormalizeCanonicalWinsOverAlias(t *testing.T) {
	p := decodePayload(t, `{
		"nombre": "Ana",
		"apellido": "Lopez",
		"matricula": "EST-001",
		"cedula": "V-123",
		"correo": "canon@example.com",
		"email": "alias@example.com"
	}`)

	attrs, errs := p.Normalize(anyGrade)
	require.Nil(t, errs)

	assert.Equal(t, "EST-001", *attrs.RegistrationCode)
	assert.Equal(t, "canon@example.com", *attrs.Email)
}

func TestNormalizeNameValidation(t *testing.T) {
	p := decodePayload(t, `{"nombre": " A ", "apellido": ""}`)

	attrs, errs := p.Normalize(anyGrade)
	assert.Nil(t, attrs)
	require.NotNil(t, errs)
	assert.Equal(t, []string{"El nombre debe tener al menos 2 caracteres"}, errs["nombre"])
	assert.Equal(t, []string{"El apellido debe tener al menos 2 caracteres"}, errs["apellido"])
}

func TestNormalizeMissingNames(t *testing.T) {
	p := decodePayload(t, `{}`)

	attrs, errs := p.Normalize(anyGrade)
	assert.Nil(t, attrs)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "nombre")
	assert.Contains(t, errs, "apellido")
}

func TestNormalizeInvalidDate(t *testing.T) {
	p := decodePayload(t, `{"nombre": "Ana", "apellido": "Lopez", "fecha_nacimiento": "20-05-2010"}`)

	attrs, errs := p.Normalize(anyGrade)
	assert.Nil(t, attrs)
	require.NotNil(t, errs)
	assert.Equal(t, []string{"Formato de fecha invalido, se espera YYYY-MM-DD"}, errs["fecha_nacimiento"])

	// The alias key reports under its own name.
	p = decodePayload(t, `{"nombre": "Ana", "apellido": "Lopez", "fechaNacimiento": "garbage"}`)
	_, errs = p.Normalize(anyGrade)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "fechaNacimiento")
}

func TestNormalizeCanonicalGradePassesThrough(t *testing.T) {
	// A canonical grade reference is never dropped, even when it does not
	// resolve; rejecting it is the service's job.
	p := decodePayload(t, `{"nombre": "Ana", "apellido": "Lopez", "grado": 99}`)

	attrs, errs := p.Normalize(noGrade)
	require.Nil(t, errs)
	require.NotNil(t, attrs.GradeID)
	assert.Equal(t, int64(99), *attrs.GradeID)
}

func TestNormalizeAliasGradeDropped(t *testing.T) {
	// A nonexistent alias grade is silently dropped.
	p := decodePayload(t, `{"nombre": "Ana", "apellido": "Lopez", "gradoEstudioId": 99}`)
	attrs, errs := p.Normalize(noGrade)
	require.Nil(t, errs)
	assert.Nil(t, attrs.GradeID)

	// So is an unparseable one.
	p = decodePayload(t, `{"nombre": "Ana", "apellido": "Lopez", "gradoEstudioId": "abc"}`)
	attrs, errs = p.Normalize(anyGrade)
	require.Nil(t, errs)
	assert.Nil(t, attrs.GradeID)

	// And a null.
	p = decodePayload(t, `{"nombre": "Ana", "apellido": "Lopez", "gradoEstudioId": null}`)
	attrs, errs = p.Normalize(anyGrade)
	require.Nil(t, errs)
	assert.Nil(t, attrs.GradeID)
}

func TestNormalizePartialOmitsAbsentNames(t *testing.T) {
	p := decodePayload(t, `{"correo": "nuevo@example.com"}`)

	attrs, errs := p.NormalizePartial(anyGrade)
	require.Nil(t, errs)
	assert.Nil(t, attrs.FirstName)
	assert.Nil(t, attrs.LastName)
	require.NotNil(t, attrs.Email)
	assert.Equal(t, "nuevo@example.com", *attrs.Email)

	// A present but invalid name still fails.
	p = decodePayload(t, `{"nombre": "A"}`)
	attrs, errs = p.NormalizePartial(anyGrade)
	assert.Nil(t, attrs)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "nombre")
}

func TestFlexIntTolerance(t *testing.T) {
	cases := []struct {
		raw   string
		valid bool
		value int64
	}{
		{`5`, true, 5},
		{`"12"`, true, 12},
		{`null`, false, 0},
		{`"abc"`, false, 0},
		{`-3`, true, -3},
	}

	for _, tc := range cases {
		var f FlexInt
		require.NoError(t, json.Unmarshal([]byte(tc.raw), &f), tc.raw)
		assert.Equal(t, tc.valid, f.Valid, tc.raw)
		if tc.valid {
			assert.Equal(t, tc.value, f.Value, tc.raw)
		}
	}
}

func TestStudentResponseExpandsAliases(t *testing.T) {
	birth, err := time.Parse(models.DateFormat, "2010-05-20")
	require.NoError(t, err)
	email := "ana@example.com"
	gradeID := int64(3)

	student := &models.Student{
		ID:               1,
		FirstName:        "Ana",
		LastName:         "Lopez",
		RegistrationCode: "EST-ANA-LOP",
		BirthDate:        &models.Date{Time: birth},
		Email:            &email,
		GradeID:          &gradeID,
		Grade:            &models.Grade{ID: gradeID, Name: "Tercer Grado", InstitutionID: 1},
	}

	raw, err := json.Marshal(NewStudentResponse(student))
	require.NoError(t, err)

	var wire map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &wire))

	assert.Equal(t, "EST-ANA-LOP", wire["matricula"])
	assert.Equal(t, "EST-ANA-LOP", wire["cedula"])
	assert.Equal(t, "2010-05-20", wire["fecha_nacimiento"])
	assert.Equal(t, "2010-05-20", wire["fechaNacimiento"])
	assert.Equal(t, email, wire["correo"])
	assert.Equal(t, email, wire["email"])
	assert.Equal(t, float64(3), wire["grado"])
	assert.Equal(t, float64(3), wire["gradoEstudioId"])
	assert.Equal(t, "Tercer Grado", wire["grado_nombre"])

	// Compatibility fields are always present with fixed defaults.
	assert.Equal(t, "", wire["direccion"])
	assert.Equal(t, "", wire["telefono"])
	assert.Equal(t, "", wire["nombreRepresentante"])
	assert.Equal(t, "", wire["telefonoRepresentante"])
	assert.Equal(t, true, wire["estado"])
	assert.Equal(t, "", wire["periodo"])
	assert.Nil(t, wire["año"])
	assert.Nil(t, wire["fechaIngreso"])
}

func TestStudentResponseWithoutOptionalFields(t *testing.T) {
	student := &models.Student{
		ID:               2,
		FirstName:        "Luis",
		LastName:         "Perez",
		RegistrationCode: "EST-LUI-PER",
	}

	raw, err := json.Marshal(NewStudentResponse(student))
	require.NoError(t, err)

	var wire map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &wire))

	assert.Nil(t, wire["fecha_nacimiento"])
	assert.Nil(t, wire["correo"])
	assert.Nil(t, wire["grado"])
	assert.Nil(t, wire["grado_nombre"])
}

func TestNewStudentListResponseEmpty(t *testing.T) {
	out := NewStudentListResponse(nil)
	require.NotNil(t, out)
	assert.Empty(t, out)
}
