package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/mfuentes/escolar/internal/app/controllers"
	appMigrations "github.com/mfuentes/escolar/internal/app/migrations"
	appRepos "github.com/mfuentes/escolar/internal/app/repositories"
	appRoutes "github.com/mfuentes/escolar/internal/app/routes"
	appServices "github.com/mfuentes/escolar/internal/app/services"
	"github.com/mfuentes/escolar/internal/config"
	"github.com/mfuentes/escolar/internal/db"
	appMiddleware "github.com/mfuentes/escolar/internal/middleware"
	pkgAuth "github.com/mfuentes/escolar/internal/pkg/auth"
	"github.com/mfuentes/escolar/internal/pkg/helpers"
	"github.com/mfuentes/escolar/internal/pkg/logger"
	"github.com/mfuentes/escolar/internal/seed"
)

// Dependencies holds the wired application components.
type Dependencies struct {
	AuthController        *appControllers.AuthController
	InstitutionController *appControllers.InstitutionController
	PeriodController      *appControllers.PeriodController
	GradeController       *appControllers.GradeController
	TeacherController     *appControllers.TeacherController
	SubjectController     *appControllers.SubjectController
	StudentController     *appControllers.StudentController
	ScoreController       *appControllers.ScoreController
	StaffController       *appControllers.StaffController
	AuthMiddleware        *appMiddleware.AuthMiddleware
	Repos                 *appRepos.Repositories
	JWTService            *pkgAuth.JWTService
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(strings.ToLower(cfg.Logging.Level)),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase connects to Postgres, applies migrations and seeds default
// data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection established")

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	migrator := appMigrations.NewMigrator(database)
	if err := migrator.ApplyDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations applied")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Seed problems are logged but do not block startup.
		lgr.Warn().Err(err).Msg("Seeding default data reported errors")
	}

	return dbPool, nil
}

// BuildDependencies wires repositories, services, controllers and middleware.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool) *Dependencies {
	repos := appRepos.NewRepositories(dbPool)

	jwtService := pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 30*24*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	authService := appServices.NewAuthService(repos.UserRepository, repos.TokenRepository, jwtService)
	institutionService := appServices.NewInstitutionService(repos.InstitutionRepository)
	periodService := appServices.NewPeriodService(repos.PeriodRepository)
	gradeService := appServices.NewGradeService(repos.GradeRepository, repos.InstitutionRepository)
	teacherService := appServices.NewTeacherService(repos.TeacherRepository, repos.InstitutionRepository)
	subjectService := appServices.NewSubjectService(repos.SubjectRepository, repos.GradeRepository, repos.TeacherRepository)
	studentService := appServices.NewStudentService(repos.StudentRepository, repos.GradeRepository)
	scoreService := appServices.NewScoreService(repos.ScoreRepository, repos.StudentRepository, repos.SubjectRepository, repos.PeriodRepository)
	staffService := appServices.NewStaffService(repos.StaffRepository, repos.InstitutionRepository)

	return &Dependencies{
		AuthController:        appControllers.NewAuthController(authService),
		InstitutionController: appControllers.NewInstitutionController(institutionService),
		PeriodController:      appControllers.NewPeriodController(periodService),
		GradeController:       appControllers.NewGradeController(gradeService),
		TeacherController:     appControllers.NewTeacherController(teacherService),
		SubjectController:     appControllers.NewSubjectController(subjectService),
		StudentController:     appControllers.NewStudentController(studentService),
		ScoreController:       appControllers.NewScoreController(scoreService),
		StaffController:       appControllers.NewStaffController(staffService),
		AuthMiddleware:        appMiddleware.NewAuthMiddleware(jwtService, repos.UserRepository),
		Repos:                 repos,
		JWTService:            jwtService,
	}
}

// SetupRouter builds the gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())

	appRoutes.SetupRouter(
		router,
		deps.AuthController,
		deps.InstitutionController,
		deps.PeriodController,
		deps.GradeController,
		deps.TeacherController,
		deps.SubjectController,
		deps.StudentController,
		deps.ScoreController,
		deps.StaffController,
		deps.AuthMiddleware,
	)

	return router
}
