package models

// Subject represents a course taught in a grade, optionally assigned a teacher.
type Subject struct {
	ID          int64   `json:"id" db:"id"`
	Name        string  `json:"nombre" db:"name" validate:"required,min=2"`
	Description *string `json:"descripcion" db:"description"`
	TeacherID   *int64  `json:"profesor" db:"teacher_id"`
	GradeID     int64   `json:"grado" db:"grade_id" validate:"required"`

	// Populated from joins, never written.
	TeacherFirstName *string `json:"profesor_nombre"`
	TeacherLastName  *string `json:"profesor_apellido"`
	GradeName        string  `json:"grado_nombre"`
}
