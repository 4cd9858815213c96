package doctor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const doctorColumns = `
	id, name, specialization, phone, email,
	to_char(available_from, 'HH24:MI'), to_char(available_to, 'HH24:MI'),
	is_available, address, consultation_fee, experience_years, qualification, created_at`

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateDoctor(ctx context.Context, req CreateDoctorRequest) (*DoctorResponse, error) {
	doctorID := uuid.New()
	createdAt := time.Now()

	query := `
		INSERT INTO doctors
		(id, name, specialization, phone, email, available_from, available_to, is_available, address, consultation_fee, experience_years, qualification, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, true, $8, $9, $10, $11, $12)
		RETURNING` + doctorColumns

	var d DoctorResponse
	err := r.db.QueryRowContext(ctx, query,
		doctorID,
		req.Name,
		req.Specialization,
		req.Phone,
		req.Email,
		req.AvailableFrom,
		req.AvailableTo,
		req.Address,
		req.ConsultationFee,
		req.ExperienceYears,
		req.Qualification,
		createdAt,
	).Scan(
		&d.ID,
		&d.Name,
		&d.Specialization,
		&d.Phone,
		&d.Email,
		&d.AvailableFrom,
		&d.AvailableTo,
		&d.IsAvailable,
		&d.Address,
		&d.ConsultationFee,
		&d.ExperienceYears,
		&d.Qualification,
		&d.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert doctor: %w", err)
	}

	return &d, nil
}

func (r *Repository) ListDoctors(ctx context.Context) ([]DoctorResponse, error) {
	query := `
		SELECT` + doctorColumns + `
		FROM doctors
		ORDER BY name ASC`

	return r.queryDoctors(ctx, query)
}

// ListAvailableDoctors returns only doctors currently accepting appointments.
func (r *Repository) ListAvailableDoctors(ctx context.Context) ([]DoctorResponse, error) {
	query := `
		SELECT` + doctorColumns + `
		FROM doctors
		WHERE is_available = true
		ORDER BY name ASC`

	return r.queryDoctors(ctx, query)
}

func (r *Repository) queryDoctors(ctx context.Context, query string, args ...interface{}) ([]DoctorResponse, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query doctors: %w", err)
	}
	defer rows.Close()

	var doctors []DoctorResponse
	for rows.Next() {
		var d DoctorResponse
		err := rows.Scan(
			&d.ID,
			&d.Name,
			&d.Specialization,
			&d.Phone,
			&d.Email,
			&d.AvailableFrom,
			&d.AvailableTo,
			&d.IsAvailable,
			&d.Address,
			&d.ConsultationFee,
			&d.ExperienceYears,
			&d.Qualification,
			&d.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan doctor: %w", err)
		}
		doctors = append(doctors, d)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating doctors: %w", err)
	}

	return doctors, nil
}

func (r *Repository) GetDoctor(ctx context.Context, id string) (*DoctorResponse, error) {
	query := `
		SELECT` + doctorColumns + `
		FROM doctors
		WHERE id = $1`

	var d DoctorResponse
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&d.ID,
		&d.Name,
		&d.Specialization,
		&d.Phone,
		&d.Email,
		&d.AvailableFrom,
		&d.AvailableTo,
		&d.IsAvailable,
		&d.Address,
		&d.ConsultationFee,
		&d.ExperienceYears,
		&d.Qualification,
		&d.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDoctorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query doctor: %w", err)
	}

	return &d, nil
}

// UpdateDoctor replaces every mutable field of the record.
func (r *Repository) UpdateDoctor(ctx context.Context, id string, req UpdateDoctorRequest) (*DoctorResponse, error) {
	query := `
		UPDATE doctors
		SET name = $1, specialization = $2, phone = $3, email = $4,
		    available_from = $5, available_to = $6, is_available = $7,
		    address = $8, consultation_fee = $9, experience_years = $10, qualification = $11
		WHERE id = $12
		RETURNING` + doctorColumns

	var d DoctorResponse
	err := r.db.QueryRowContext(ctx, query,
		req.Name,
		req.Specialization,
		req.Phone,
		req.Email,
		req.AvailableFrom,
		req.AvailableTo,
		req.IsAvailable,
		req.Address,
		req.ConsultationFee,
		req.ExperienceYears,
		req.Qualification,
		id,
	).Scan(
		&d.ID,
		&d.Name,
		&d.Specialization,
		&d.Phone,
		&d.Email,
		&d.AvailableFrom,
		&d.AvailableTo,
		&d.IsAvailable,
		&d.Address,
		&d.ConsultationFee,
		&d.ExperienceYears,
		&d.Qualification,
		&d.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDoctorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update doctor: %w", err)
	}

	return &d, nil
}

func (r *Repository) DeleteDoctor(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM doctors WHERE id = $1`, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			// foreign_key_violation: appointments still reference the doctor
			return ErrDoctorInUse
		}
		return fmt.Errorf("failed to delete doctor: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrDoctorNotFound
	}

	return nil
}

func (r *Repository) CountDoctors(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM doctors`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count doctors: %w", err)
	}
	return count, nil
}
