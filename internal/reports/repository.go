package reports

import (
	"context"
	"database/sql"
	"fmt"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// MonthlyTrend returns appointment counts, new-patient registrations and
// paid revenue per calendar month for the last `months` months, oldest
// first. Months without activity in any table are omitted.
func (r *Repository) MonthlyTrend(ctx context.Context, months int) ([]MonthlyTrendRow, error) {
	query := `
		WITH appts AS (
			SELECT date_trunc('month', appointment_date) AS month, COUNT(*) AS appointments
			FROM appointments
			WHERE appointment_date >= date_trunc('month', CURRENT_DATE) - ($1 - 1) * INTERVAL '1 month'
			GROUP BY 1
		),
		new_patients AS (
			SELECT date_trunc('month', created_at) AS month, COUNT(*) AS patients
			FROM patients
			WHERE created_at >= date_trunc('month', CURRENT_DATE) - ($1 - 1) * INTERVAL '1 month'
			GROUP BY 1
		),
		revenue AS (
			SELECT date_trunc('month', paid_date) AS month, SUM(total_amount) AS revenue
			FROM bills
			WHERE status = 'Paid'
			  AND paid_date >= date_trunc('month', CURRENT_DATE) - ($1 - 1) * INTERVAL '1 month'
			GROUP BY 1
		)
		SELECT to_char(COALESCE(a.month, n.month, r.month), 'YYYY-MM'),
		       COALESCE(a.appointments, 0),
		       COALESCE(n.patients, 0),
		       COALESCE(r.revenue, 0)
		FROM appts a
		FULL OUTER JOIN new_patients n ON a.month = n.month
		FULL OUTER JOIN revenue r ON COALESCE(a.month, n.month) = r.month
		ORDER BY 1 ASC`

	rows, err := r.db.QueryContext(ctx, query, months)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly trend: %w", err)
	}
	defer rows.Close()

	var trend []MonthlyTrendRow
	for rows.Next() {
		var row MonthlyTrendRow
		if err := rows.Scan(&row.Month, &row.Appointments, &row.NewPatients, &row.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan trend row: %w", err)
		}
		trend = append(trend, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly trend: %w", err)
	}

	return trend, nil
}

// ExportAppointments returns appointments with joined names, newest
// dates first, for the CSV export. Empty from/to leave the range open.
func (r *Repository) ExportAppointments(ctx context.Context, from, to string) ([]AppointmentExportRow, error) {
	query := `
		SELECT a.id, p.name, d.name, a.appointment_date::text,
		       to_char(a.appointment_time, 'HH24:MI'), a.status, a.description
		FROM appointments a
		JOIN doctors d ON d.id = a.doctor_id
		JOIN patients p ON p.id = a.patient_id
		WHERE ($1 = '' OR a.appointment_date >= $1::date)
		  AND ($2 = '' OR a.appointment_date <= $2::date)
		ORDER BY a.appointment_date DESC, a.appointment_time ASC`

	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query appointment export: %w", err)
	}
	defer rows.Close()

	var export []AppointmentExportRow
	for rows.Next() {
		var row AppointmentExportRow
		err := rows.Scan(&row.ID, &row.PatientName, &row.DoctorName,
			&row.Date, &row.Time, &row.Status, &row.Description)
		if err != nil {
			return nil, fmt.Errorf("failed to scan export row: %w", err)
		}
		export = append(export, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating appointment export: %w", err)
	}

	return export, nil
}

// ExportBills returns bills with the patient name, newest first, for
// the CSV export. Empty from/to leave the range open.
func (r *Repository) ExportBills(ctx context.Context, from, to string) ([]BillExportRow, error) {
	query := `
		SELECT b.id, p.name, b.bill_date::text, b.total_amount, b.status,
		       COALESCE(b.payment_method, '')
		FROM bills b
		JOIN patients p ON p.id = b.patient_id
		WHERE ($1 = '' OR b.bill_date >= $1::date)
		  AND ($2 = '' OR b.bill_date <= $2::date)
		ORDER BY b.bill_date DESC, b.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query bill export: %w", err)
	}
	defer rows.Close()

	var export []BillExportRow
	for rows.Next() {
		var row BillExportRow
		err := rows.Scan(&row.ID, &row.PatientName, &row.Date, &row.Amount, &row.Status, &row.PaymentMethod)
		if err != nil {
			return nil, fmt.Errorf("failed to scan export row: %w", err)
		}
		export = append(export, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bill export: %w", err)
	}

	return export, nil
}
