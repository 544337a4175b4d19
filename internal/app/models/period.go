package models

// Period represents an academic term used to group scores.
type Period struct {
	ID        int64  `json:"id" db:"id"`
	Name      string `json:"nombre" db:"name" validate:"required,min=2"`
	StartDate Date   `json:"fecha_inicio" db:"start_date"`
	EndDate   Date   `json:"fecha_fin" db:"end_date"`
}
