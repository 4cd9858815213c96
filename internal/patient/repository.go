package patient

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const patientColumns = `
	id, name, date_of_birth::text, gender, phone, email,
	address, blood_group, emergency_contact, medical_history, created_at`

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreatePatient(ctx context.Context, req CreatePatientRequest) (*PatientResponse, error) {
	patientID := uuid.New()
	createdAt := time.Now()

	query := `
		INSERT INTO patients
		(id, name, date_of_birth, gender, phone, email, address, blood_group, emergency_contact, medical_history, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING` + patientColumns

	var p PatientResponse
	err := r.db.QueryRowContext(ctx, query,
		patientID,
		req.Name,
		req.DateOfBirth,
		req.Gender,
		req.Phone,
		req.Email,
		req.Address,
		req.BloodGroup,
		req.EmergencyContact,
		req.MedicalHistory,
		createdAt,
	).Scan(
		&p.ID,
		&p.Name,
		&p.DateOfBirth,
		&p.Gender,
		&p.Phone,
		&p.Email,
		&p.Address,
		&p.BloodGroup,
		&p.EmergencyContact,
		&p.MedicalHistory,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert patient: %w", err)
	}

	return &p, nil
}

// ListPatients returns a page of patients, newest registrations first,
// together with the total record count for pagination metadata.
func (r *Repository) ListPatients(ctx context.Context, limit, offset int) ([]PatientResponse, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM patients`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count patients: %w", err)
	}

	query := `
		SELECT` + patientColumns + `
		FROM patients
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query patients: %w", err)
	}
	defer rows.Close()

	var patients []PatientResponse
	for rows.Next() {
		var p PatientResponse
		err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.DateOfBirth,
			&p.Gender,
			&p.Phone,
			&p.Email,
			&p.Address,
			&p.BloodGroup,
			&p.EmergencyContact,
			&p.MedicalHistory,
			&p.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan patient: %w", err)
		}
		patients = append(patients, p)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating patients: %w", err)
	}

	return patients, total, nil
}

func (r *Repository) GetPatient(ctx context.Context, id string) (*PatientResponse, error) {
	query := `
		SELECT` + patientColumns + `
		FROM patients
		WHERE id = $1`

	var p PatientResponse
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&p.DateOfBirth,
		&p.Gender,
		&p.Phone,
		&p.Email,
		&p.Address,
		&p.BloodGroup,
		&p.EmergencyContact,
		&p.MedicalHistory,
		&p.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPatientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query patient: %w", err)
	}

	return &p, nil
}

// UpdatePatient replaces every mutable field of the record.
func (r *Repository) UpdatePatient(ctx context.Context, id string, req UpdatePatientRequest) (*PatientResponse, error) {
	query := `
		UPDATE patients
		SET name = $1, date_of_birth = $2, gender = $3, phone = $4, email = $5,
		    address = $6, blood_group = $7, emergency_contact = $8, medical_history = $9
		WHERE id = $10
		RETURNING` + patientColumns

	var p PatientResponse
	err := r.db.QueryRowContext(ctx, query,
		req.Name,
		req.DateOfBirth,
		req.Gender,
		req.Phone,
		req.Email,
		req.Address,
		req.BloodGroup,
		req.EmergencyContact,
		req.MedicalHistory,
		id,
	).Scan(
		&p.ID,
		&p.Name,
		&p.DateOfBirth,
		&p.Gender,
		&p.Phone,
		&p.Email,
		&p.Address,
		&p.BloodGroup,
		&p.EmergencyContact,
		&p.MedicalHistory,
		&p.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPatientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}

	return &p, nil
}

func (r *Repository) DeletePatient(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			// foreign_key_violation: appointments or bills still reference the patient
			return ErrPatientInUse
		}
		return fmt.Errorf("failed to delete patient: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrPatientNotFound
	}

	return nil
}

func (r *Repository) CountPatients(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM patients`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count patients: %w", err)
	}
	return count, nil
}
