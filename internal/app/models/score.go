package models

// Score represents a grade/score a student obtained in a subject during a
// period. The (student, subject, period) triple is unique.
type Score struct {
	ID        int64   `json:"id" db:"id"`
	StudentID int64   `json:"alumno" db:"student_id" validate:"required"`
	SubjectID int64   `json:"materia" db:"subject_id" validate:"required"`
	PeriodID  int64   `json:"periodo" db:"period_id" validate:"required"`
	Value     float64 `json:"calificacion" db:"score" validate:"min=0,max=100"`
}

// ScoreFilter selects scores for listing; criteria combine.
type ScoreFilter struct {
	StudentID *int64
	SubjectID *int64
	PeriodID  *int64
}
