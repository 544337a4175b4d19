package models

// Teacher represents a subject teacher attached to an institution.
type Teacher struct {
	ID            int64   `json:"id" db:"id"`
	FirstName     string  `json:"nombre" db:"first_name" validate:"required,min=2"`
	LastName      string  `json:"apellido" db:"last_name" validate:"required,min=2"`
	Email         *string `json:"correo" db:"email" validate:"omitempty,email"`
	Phone         *string `json:"telefono" db:"phone"`
	InstitutionID int64   `json:"institucion" db:"institution_id" validate:"required"`
}
