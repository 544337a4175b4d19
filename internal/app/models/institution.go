package models

// Institution represents a school institution, the root entity grades,
// teachers and staff hang off.
type Institution struct {
	ID      int64   `json:"id" db:"id"`
	Name    string  `json:"nombre" db:"name" validate:"required,min=2"`
	Address string  `json:"direccion" db:"address"`
	Phone   *string `json:"telefono" db:"phone"`
	Email   *string `json:"correo" db:"email" validate:"omitempty,email"`
}
