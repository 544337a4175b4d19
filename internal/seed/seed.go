package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/mfuentes/escolar/internal/app/models"
	"github.com/mfuentes/escolar/internal/app/repositories"
	"github.com/mfuentes/escolar/internal/pkg/auth"
)

const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
)

// CreateDefaultData creates the default admin account and a demo institution
// with a couple of grades when the database is empty. Failures are collected
// and reported but never abort startup.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := repositories.NewUserRepository(dbPool)
	institutionRepo := repositories.NewInstitutionRepository(dbPool)
	gradeRepo := repositories.NewGradeRepository(dbPool)

	var finalErr error

	// --- Default admin account --- //
	admin, err := userRepo.GetByUsername(ctx, defaultAdminUsername)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking for default admin user")
		finalErr = errors.Join(finalErr, err)
	} else if admin == nil {
		hash, err := auth.HashPassword(defaultAdminPassword)
		if err != nil {
			lgr.Error().Err(err).Msg("Error hashing default admin password")
			finalErr = errors.Join(finalErr, err)
		} else {
			user := &models.User{
				Username:  defaultAdminUsername,
				Password:  hash,
				FirstName: "Administrador",
				LastName:  "Sistema",
				IsActive:  true,
			}
			if err := userRepo.Create(ctx, user); err != nil {
				lgr.Error().Err(err).Msg("Error creating default admin user")
				finalErr = errors.Join(finalErr, err)
			} else {
				lgr.Info().Str("username", defaultAdminUsername).Msg("Default admin user created")
			}
		}
	}

	// --- Demo institution with grades --- //
	institutions, err := institutionRepo.GetAll(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking for existing institutions")
		return errors.Join(finalErr, err)
	}
	if len(institutions) > 0 {
		return finalErr
	}

	institution := &models.Institution{
		Name:    "Institucion Demo",
		Address: "Av. Principal 123",
	}
	if err := institutionRepo.Create(ctx, institution); err != nil {
		lgr.Error().Err(err).Msg("Error creating demo institution")
		return errors.Join(finalErr, err)
	}
	lgr.Info().Int64("institutionID", institution.ID).Msg("Demo institution created")

	for _, name := range []string{"Primer Grado", "Segundo Grado"} {
		grade := &models.Grade{Name: name, InstitutionID: institution.ID}
		if err := gradeRepo.Create(ctx, grade); err != nil {
			lgr.Error().Err(err).Str("grade", name).Msg("Error creating demo grade")
			finalErr = errors.Join(finalErr, err)
		}
	}

	return finalErr
}
