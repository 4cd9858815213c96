package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const appointmentColumns = `
	a.id, a.doctor_id, d.name, a.patient_id, p.name,
	a.appointment_date::text, to_char(a.appointment_time, 'HH24:MI'),
	a.status, a.description, a.symptoms, a.diagnosis, a.prescription,
	a.created_at, a.updated_at`

const appointmentJoins = `
	FROM appointments a
	JOIN doctors d ON d.id = a.doctor_id
	JOIN patients p ON p.id = a.patient_id`

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// IsSlotAvailable reports whether the doctor has no live appointment at the
// given date and time. Cancelled appointments free their slot. excludeID lets
// an update skip the appointment being rescheduled.
func (r *Repository) IsSlotAvailable(ctx context.Context, doctorID, date, timeOfDay, excludeID string) (bool, error) {
	query := `
		SELECT COUNT(*)
		FROM appointments
		WHERE doctor_id = $1
		  AND appointment_date = $2
		  AND appointment_time = $3
		  AND status <> 'Cancelled'
		  AND ($4 = '' OR id <> $4::uuid)`

	var count int
	err := r.db.QueryRowContext(ctx, query, doctorID, date, timeOfDay, excludeID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check slot availability: %w", err)
	}

	return count == 0, nil
}

func (r *Repository) CreateAppointment(ctx context.Context, req CreateAppointmentRequest) (*AppointmentResponse, error) {
	appointmentID := uuid.New()
	createdAt := time.Now()

	query := `
		INSERT INTO appointments
		(id, doctor_id, patient_id, appointment_date, appointment_time, status, description, symptoms, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)`

	_, err := r.db.ExecContext(ctx, query,
		appointmentID,
		req.DoctorID,
		req.PatientID,
		req.AppointmentDate,
		req.AppointmentTime,
		StatusScheduled,
		req.Description,
		req.Symptoms,
		createdAt,
	)
	if err != nil {
		return nil, mapConstraintError(err)
	}

	return r.GetAppointment(ctx, appointmentID.String())
}

func (r *Repository) GetAppointment(ctx context.Context, id string) (*AppointmentResponse, error) {
	query := `SELECT` + appointmentColumns + appointmentJoins + `
	WHERE a.id = $1`

	a, err := scanAppointment(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query appointment: %w", err)
	}

	return a, nil
}

// ListAppointments returns a page of appointments, most recent dates first,
// optionally filtered by status.
func (r *Repository) ListAppointments(ctx context.Context, status string, limit, offset int) ([]AppointmentResponse, int, error) {
	countQuery := `SELECT COUNT(*) FROM appointments WHERE ($1 = '' OR status = $1)`

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, status).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count appointments: %w", err)
	}

	query := `SELECT` + appointmentColumns + appointmentJoins + `
	WHERE ($1 = '' OR a.status = $1)
	ORDER BY a.appointment_date DESC, a.appointment_time ASC
	LIMIT $2 OFFSET $3`

	appointments, err := r.queryAppointments(ctx, query, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	return appointments, total, nil
}

func (r *Repository) ListByDoctor(ctx context.Context, doctorID string) ([]AppointmentResponse, error) {
	query := `SELECT` + appointmentColumns + appointmentJoins + `
	WHERE a.doctor_id = $1
	ORDER BY a.appointment_date DESC, a.appointment_time ASC`

	return r.queryAppointments(ctx, query, doctorID)
}

func (r *Repository) ListByPatient(ctx context.Context, patientID string) ([]AppointmentResponse, error) {
	query := `SELECT` + appointmentColumns + appointmentJoins + `
	WHERE a.patient_id = $1
	ORDER BY a.appointment_date DESC, a.appointment_time ASC`

	return r.queryAppointments(ctx, query, patientID)
}

// ListToday returns today's appointments in visiting order.
func (r *Repository) ListToday(ctx context.Context) ([]AppointmentResponse, error) {
	query := `SELECT` + appointmentColumns + appointmentJoins + `
	WHERE a.appointment_date = CURRENT_DATE
	ORDER BY a.appointment_time ASC`

	return r.queryAppointments(ctx, query)
}

// ListUpcoming returns scheduled appointments from today through today+days.
func (r *Repository) ListUpcoming(ctx context.Context, days int) ([]AppointmentResponse, error) {
	query := `SELECT` + appointmentColumns + appointmentJoins + `
	WHERE a.status = 'Scheduled'
	  AND a.appointment_date >= CURRENT_DATE
	  AND a.appointment_date <= CURRENT_DATE + $1::int
	ORDER BY a.appointment_date ASC, a.appointment_time ASC`

	return r.queryAppointments(ctx, query, days)
}

// UpdateAppointment replaces the scheduling fields of an appointment.
func (r *Repository) UpdateAppointment(ctx context.Context, id string, req UpdateAppointmentRequest) (*AppointmentResponse, error) {
	query := `
		UPDATE appointments
		SET doctor_id = $1, patient_id = $2, appointment_date = $3, appointment_time = $4,
		    description = $5, symptoms = $6, diagnosis = $7, prescription = $8, updated_at = NOW()
		WHERE id = $9`

	result, err := r.db.ExecContext(ctx, query,
		req.DoctorID,
		req.PatientID,
		req.AppointmentDate,
		req.AppointmentTime,
		req.Description,
		req.Symptoms,
		req.Diagnosis,
		req.Prescription,
		id,
	)
	if err != nil {
		return nil, mapConstraintError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return nil, ErrAppointmentNotFound
	}

	return r.GetAppointment(ctx, id)
}

// UpdateAppointmentStatus moves an appointment into a new status.
// Transition validity is enforced by the service layer.
func (r *Repository) UpdateAppointmentStatus(ctx context.Context, id, status string) (*AppointmentResponse, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE appointments SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update appointment status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return nil, ErrAppointmentNotFound
	}

	return r.GetAppointment(ctx, id)
}

func (r *Repository) DeleteAppointment(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

func (r *Repository) CountAppointments(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM appointments`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count appointments: %w", err)
	}
	return count, nil
}

func (r *Repository) CountToday(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM appointments WHERE appointment_date = CURRENT_DATE`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count today's appointments: %w", err)
	}
	return count, nil
}

func (r *Repository) CountByStatus(ctx context.Context, status string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM appointments WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count appointments by status: %w", err)
	}
	return count, nil
}

func (r *Repository) queryAppointments(ctx context.Context, query string, args ...interface{}) ([]AppointmentResponse, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query appointments: %w", err)
	}
	defer rows.Close()

	var appointments []AppointmentResponse
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan appointment: %w", err)
		}
		appointments = append(appointments, *a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating appointments: %w", err)
	}

	return appointments, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*AppointmentResponse, error) {
	var a AppointmentResponse
	err := row.Scan(
		&a.ID,
		&a.DoctorID,
		&a.DoctorName,
		&a.PatientID,
		&a.PatientName,
		&a.AppointmentDate,
		&a.AppointmentTime,
		&a.Status,
		&a.Description,
		&a.Symptoms,
		&a.Diagnosis,
		&a.Prescription,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// mapConstraintError translates Postgres constraint violations on the
// appointments table into domain errors. The partial unique index on
// (doctor_id, appointment_date, appointment_time) is the authoritative
// double-booking guard; the pre-check in the service only gives a nicer
// error without a round trip through the insert.
func mapConstraintError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return fmt.Errorf("failed to write appointment: %w", err)
	}

	switch pqErr.Code {
	case "23505": // unique_violation on the slot index
		return ErrSlotTaken
	case "23503": // foreign_key_violation
		if strings.Contains(pqErr.Constraint, "doctor") {
			return ErrDoctorNotFound
		}
		return ErrPatientNotFound
	default:
		return fmt.Errorf("failed to write appointment: %w", err)
	}
}
