package models

// Grade represents an academic cohort within an institution.
// Students may belong to at most one grade.
type Grade struct {
	ID            int64   `json:"id" db:"id"`
	Name          string  `json:"nombre" db:"name" validate:"required,min=2"`
	Description   *string `json:"descripcion" db:"description"`
	InstitutionID int64   `json:"institucion" db:"institution_id" validate:"required"`

	// InstitutionName is populated from a join, never written.
	InstitutionName string `json:"institucion_nombre"`
}
