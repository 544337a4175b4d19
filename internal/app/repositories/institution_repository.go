package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mfuentes/escolar/internal/app/models"
)

// InstitutionRepository handles database operations for institutions
type InstitutionRepository struct {
	db *pgxpool.Pool
}

// NewInstitutionRepository creates a new institution repository
func NewInstitutionRepository(db *pgxpool.Pool) *InstitutionRepository {
	return &InstitutionRepository{db: db}
}

const institutionSelect = `SELECT id, name, address, phone, email FROM institutions`

func scanInstitution(row pgx.Row) (*models.Institution, error) {
	var i models.Institution
	if err := row.Scan(&i.ID, &i.Name, &i.Address, &i.Phone, &i.Email); err != nil {
		return nil, err
	}
	return &i, nil
}

// GetByID retrieves an institution by ID, nil when no row matches.
func (r *InstitutionRepository) GetByID(ctx context.Context, id int64) (*models.Institution, error) {
	institution, err := scanInstitution(r.db.QueryRow(ctx, institutionSelect+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving institution: %w", err)
	}
	return institution, nil
}

// Exists reports whether an institution with the given ID exists.
func (r *InstitutionRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM institutions WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking institution existence: %w", err)
	}
	return exists, nil
}

// GetAll retrieves all institutions
func (r *InstitutionRepository) GetAll(ctx context.Context) ([]*models.Institution, error) {
	rows, err := r.db.Query(ctx, institutionSelect)
	if err != nil {
		return nil, fmt.Errorf("error querying institutions: %w", err)
	}
	defer rows.Close()

	var institutions []*models.Institution
	for rows.Next() {
		institution, err := scanInstitution(rows)
		if err != nil {
			return nil, err
		}
		institutions = append(institutions, institution)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return institutions, nil
}

// Create inserts a new institution
func (r *InstitutionRepository) Create(ctx context.Context, institution *models.Institution) error {
	query := `
		INSERT INTO institutions (name, address, phone, email)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.db.QueryRow(ctx, query,
		institution.Name, institution.Address, institution.Phone, institution.Email,
	).Scan(&institution.ID)
}

// Update replaces the mutable fields of an institution
func (r *InstitutionRepository) Update(ctx context.Context, institution *models.Institution) error {
	query := `
		UPDATE institutions
		SET name = $1, address = $2, phone = $3, email = $4
		WHERE id = $5
	`
	cmdTag, err := r.db.Exec(ctx, query,
		institution.Name, institution.Address, institution.Phone, institution.Email, institution.ID)
	if err != nil {
		return fmt.Errorf("error updating institution: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes an institution by ID
func (r *InstitutionRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM institutions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting institution: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
