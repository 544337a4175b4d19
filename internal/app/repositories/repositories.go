package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	InstitutionRepository *InstitutionRepository
	PeriodRepository      *PeriodRepository
	GradeRepository       *GradeRepository
	TeacherRepository     *TeacherRepository
	SubjectRepository     *SubjectRepository
	StudentRepository     *StudentRepository
	ScoreRepository       *ScoreRepository
	StaffRepository       *StaffRepository
	UserRepository        *UserRepository
	TokenRepository       *TokenRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		InstitutionRepository: NewInstitutionRepository(db),
		PeriodRepository:      NewPeriodRepository(db),
		GradeRepository:       NewGradeRepository(db),
		TeacherRepository:     NewTeacherRepository(db),
		SubjectRepository:     NewSubjectRepository(db),
		StudentRepository:     NewStudentRepository(db),
		ScoreRepository:       NewScoreRepository(db),
		StaffRepository:       NewStaffRepository(db),
		UserRepository:        NewUserRepository(db),
		TokenRepository:       NewTokenRepository(db),
	}
}
