package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mfuentes/escolar/internal/app/models"
)

// PeriodRepository handles database operations for academic periods
type PeriodRepository struct {
	db *pgxpool.Pool
}

// NewPeriodRepository creates a new period repository
func NewPeriodRepository(db *pgxpool.Pool) *PeriodRepository {
	return &PeriodRepository{db: db}
}

const periodSelect = `SELECT id, name, start_date, end_date FROM periods`

func scanPeriod(row pgx.Row) (*models.Period, error) {
	var p models.Period
	if err := row.Scan(&p.ID, &p.Name, &p.StartDate, &p.EndDate); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByID retrieves a period by ID, nil when no row matches.
func (r *PeriodRepository) GetByID(ctx context.Context, id int64) (*models.Period, error) {
	period, err := scanPeriod(r.db.QueryRow(ctx, periodSelect+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving period: %w", err)
	}
	return period, nil
}

// Exists reports whether a period with the given ID exists.
func (r *PeriodRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM periods WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking period existence: %w", err)
	}
	return exists, nil
}

// GetAll retrieves all periods
func (r *PeriodRepository) GetAll(ctx context.Context) ([]*models.Period, error) {
	rows, err := r.db.Query(ctx, periodSelect)
	if err != nil {
		return nil, fmt.Errorf("error querying periods: %w", err)
	}
	defer rows.Close()

	var periods []*models.Period
	for rows.Next() {
		period, err := scanPeriod(rows)
		if err != nil {
			return nil, err
		}
		periods = append(periods, period)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return periods, nil
}

// Create inserts a new period
func (r *PeriodRepository) Create(ctx context.Context, period *models.Period) error {
	query := `
		INSERT INTO periods (name, start_date, end_date)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	return r.db.QueryRow(ctx, query, period.Name, period.StartDate.Time, period.EndDate.Time).Scan(&period.ID)
}

// Update replaces the mutable fields of a period
func (r *PeriodRepository) Update(ctx context.Context, period *models.Period) error {
	query := `
		UPDATE periods
		SET name = $1, start_date = $2, end_date = $3
		WHERE id = $4
	`
	cmdTag, err := r.db.Exec(ctx, query, period.Name, period.StartDate.Time, period.EndDate.Time, period.ID)
	if err != nil {
		return fmt.Errorf("error updating period: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes a period by ID
func (r *PeriodRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM periods WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting period: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
