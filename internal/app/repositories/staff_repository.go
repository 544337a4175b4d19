package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mfuentes/escolar/internal/app/models"
)

// StaffIDNumberConstraint is the unique constraint guarding the ID number column.
const StaffIDNumberConstraint = "staff_id_number_key"

// StaffRepository handles database operations for staff members
type StaffRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStaffRepository creates a new staff repository
func NewStaffRepository(db *pgxpool.Pool) *StaffRepository {
	return &StaffRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const staffSelect = `SELECT id, first_name, last_name, id_number, position, hire_date, active, email, phone, institution_id FROM staff`

func scanStaff(row pgx.Row) (*models.Staff, error) {
	var s models.Staff
	var hireDate time.Time
	err := row.Scan(
		&s.ID,
		&s.FirstName,
		&s.LastName,
		&s.IDNumber,
		&s.Position,
		&hireDate,
		&s.Active,
		&s.Email,
		&s.Phone,
		&s.InstitutionID,
	)
	if err != nil {
		return nil, err
	}
	s.HireDate = models.Date{Time: hireDate}
	return &s, nil
}

// GetByID retrieves a staff member by ID, nil when no row matches.
func (r *StaffRepository) GetByID(ctx context.Context, id int64) (*models.Staff, error) {
	staff, err := scanStaff(r.db.QueryRow(ctx, staffSelect+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving staff member: %w", err)
	}
	return staff, nil
}

// GetByIDNumber retrieves a staff member by ID number, nil when no row matches.
func (r *StaffRepository) GetByIDNumber(ctx context.Context, idNumber string) (*models.Staff, error) {
	staff, err := scanStaff(r.db.QueryRow(ctx, staffSelect+` WHERE id_number = $1`, idNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving staff member by ID number: %w", err)
	}
	return staff, nil
}

// Filter retrieves staff members narrowed by any combination of position,
// institution, active flag and free-text search.
func (r *StaffRepository) Filter(ctx context.Context, filter models.StaffFilter) ([]*models.Staff, error) {
	builder := r.sb.Select(
		"id", "first_name", "last_name", "id_number", "position",
		"hire_date", "active", "email", "phone", "institution_id",
	).From("staff")

	if filter.Position != nil {
		builder = builder.Where(squirrel.Eq{"position": *filter.Position})
	}
	if filter.InstitutionID != nil {
		builder = builder.Where(squirrel.Eq{"institution_id": *filter.InstitutionID})
	}
	if filter.Active != nil {
		builder = builder.Where(squirrel.Eq{"active": *filter.Active})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"first_name": pattern},
			squirrel.ILike{"last_name": pattern},
			squirrel.ILike{"id_number": pattern},
		})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build staff filter: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying staff: %w", err)
	}
	defer rows.Close()

	var staff []*models.Staff
	for rows.Next() {
		member, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		staff = append(staff, member)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return staff, nil
}

// Create inserts a new staff member
func (r *StaffRepository) Create(ctx context.Context, staff *models.Staff) error {
	query := `
		INSERT INTO staff (first_name, last_name, id_number, position, hire_date, active, email, phone, institution_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	return r.db.QueryRow(ctx, query,
		staff.FirstName, staff.LastName, staff.IDNumber, staff.Position,
		staff.HireDate.Time, staff.Active, staff.Email, staff.Phone, staff.InstitutionID,
	).Scan(&staff.ID)
}

// Update replaces the mutable fields of a staff member
func (r *StaffRepository) Update(ctx context.Context, staff *models.Staff) error {
	query := `
		UPDATE staff
		SET first_name = $1, last_name = $2, id_number = $3, position = $4,
		    hire_date = $5, active = $6, email = $7, phone = $8, institution_id = $9
		WHERE id = $10
	`
	cmdTag, err := r.db.Exec(ctx, query,
		staff.FirstName, staff.LastName, staff.IDNumber, staff.Position,
		staff.HireDate.Time, staff.Active, staff.Email, staff.Phone, staff.InstitutionID,
		staff.ID)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes a staff member by ID
func (r *StaffRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM staff WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting staff member: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
