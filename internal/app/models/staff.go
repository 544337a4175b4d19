package models

// StaffPosition enumerates the recognized staff roles.
type StaffPosition string

const (
	PositionTeaching       StaffPosition = "Docente"
	PositionAdministrative StaffPosition = "Administrativo"
	PositionWorker         StaffPosition = "Obrero"
)

// ValidStaffPosition reports whether p is one of the recognized positions.
func ValidStaffPosition(p StaffPosition) bool {
	switch p {
	case PositionTeaching, PositionAdministrative, PositionWorker:
		return true
	}
	return false
}

// Staff represents a non-student member of an institution. The ID number
// (cedula) is unique across all staff.
type Staff struct {
	ID            int64         `json:"id" db:"id"`
	FirstName     string        `json:"nombre" db:"first_name" validate:"required,min=2"`
	LastName      string        `json:"apellido" db:"last_name" validate:"required,min=2"`
	IDNumber      string        `json:"cedula" db:"id_number" validate:"required"`
	Position      StaffPosition `json:"cargo" db:"position" validate:"required"`
	HireDate      Date          `json:"fecha_ingreso" db:"hire_date"`
	Active        bool          `json:"estado" db:"active"`
	Email         *string       `json:"email" db:"email"`
	Phone         *string       `json:"telefono" db:"phone"`
	InstitutionID *int64        `json:"institucion" db:"institution_id"`
}

// StaffFilter selects staff for listing; criteria combine.
type StaffFilter struct {
	Position      *StaffPosition
	InstitutionID *int64
	Active        *bool
	Search        string
}
