package billing

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const billColumns = `
	b.id, b.patient_id, p.name, b.appointment_id,
	b.bill_date::text, b.description, b.consultation_charge, b.medicine_charge,
	b.room_charge, b.other_charge, b.discount, b.tax_percent, b.subtotal,
	b.tax_amount, b.total_amount, b.status, b.payment_method, b.paid_date::text,
	b.created_at, b.updated_at`

const billJoins = `
	FROM bills b
	JOIN patients p ON p.id = b.patient_id`

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// billRecord carries the computed amounts from the service into the insert.
type billRecord struct {
	PatientID          string
	AppointmentID      string
	BillDate           string
	Description        string
	ConsultationCharge decimal.Decimal
	MedicineCharge     decimal.Decimal
	RoomCharge         decimal.Decimal
	OtherCharge        decimal.Decimal
	Discount           decimal.Decimal
	TaxPercent         decimal.Decimal
	Subtotal           decimal.Decimal
	TaxAmount          decimal.Decimal
	TotalAmount        decimal.Decimal
}

func (r *Repository) CreateBill(ctx context.Context, rec billRecord) (*BillResponse, error) {
	billID := uuid.New()
	createdAt := time.Now()

	var appointmentID interface{}
	if rec.AppointmentID != "" {
		appointmentID = rec.AppointmentID
	}

	query := `
		INSERT INTO bills
		(id, patient_id, appointment_id, bill_date, description, consultation_charge,
		 medicine_charge, room_charge, other_charge, discount, tax_percent, subtotal,
		 tax_amount, total_amount, status, payment_method, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, '', $16, $16)`

	_, err := r.db.ExecContext(ctx, query,
		billID,
		rec.PatientID,
		appointmentID,
		rec.BillDate,
		rec.Description,
		rec.ConsultationCharge,
		rec.MedicineCharge,
		rec.RoomCharge,
		rec.OtherCharge,
		rec.Discount,
		rec.TaxPercent,
		rec.Subtotal,
		rec.TaxAmount,
		rec.TotalAmount,
		StatusPending,
		createdAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("failed to insert bill: %w", err)
	}

	return r.GetBill(ctx, billID.String())
}

func (r *Repository) GetBill(ctx context.Context, id string) (*BillResponse, error) {
	query := `SELECT` + billColumns + billJoins + `
	WHERE b.id = $1`

	b, err := scanBill(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBillNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query bill: %w", err)
	}

	return b, nil
}

// ListBills returns a page of bills, newest bill dates first,
// optionally filtered by status.
func (r *Repository) ListBills(ctx context.Context, status string, limit, offset int) ([]BillResponse, int, error) {
	countQuery := `SELECT COUNT(*) FROM bills WHERE ($1 = '' OR status = $1)`

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, status).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count bills: %w", err)
	}

	query := `SELECT` + billColumns + billJoins + `
	WHERE ($1 = '' OR b.status = $1)
	ORDER BY b.bill_date DESC, b.created_at DESC
	LIMIT $2 OFFSET $3`

	bills, err := r.queryBills(ctx, query, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	return bills, total, nil
}

func (r *Repository) ListByPatient(ctx context.Context, patientID string) ([]BillResponse, error) {
	query := `SELECT` + billColumns + billJoins + `
	WHERE b.patient_id = $1
	ORDER BY b.bill_date DESC, b.created_at DESC`

	return r.queryBills(ctx, query, patientID)
}

// ListPending returns unpaid bills, oldest first so the front desk
// chases the longest-outstanding ones.
func (r *Repository) ListPending(ctx context.Context) ([]BillResponse, error) {
	query := `SELECT` + billColumns + billJoins + `
	WHERE b.status = 'Pending'
	ORDER BY b.bill_date ASC, b.created_at ASC`

	return r.queryBills(ctx, query)
}

// UpdateBill replaces the charge fields and recomputed amounts of a bill.
func (r *Repository) UpdateBill(ctx context.Context, id string, rec billRecord) (*BillResponse, error) {
	query := `
		UPDATE bills
		SET bill_date = $1, description = $2, consultation_charge = $3,
		    medicine_charge = $4, room_charge = $5, other_charge = $6, discount = $7,
		    tax_percent = $8, subtotal = $9, tax_amount = $10, total_amount = $11,
		    updated_at = NOW()
		WHERE id = $12`

	result, err := r.db.ExecContext(ctx, query,
		rec.BillDate,
		rec.Description,
		rec.ConsultationCharge,
		rec.MedicineCharge,
		rec.RoomCharge,
		rec.OtherCharge,
		rec.Discount,
		rec.TaxPercent,
		rec.Subtotal,
		rec.TaxAmount,
		rec.TotalAmount,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update bill: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return nil, ErrBillNotFound
	}

	return r.GetBill(ctx, id)
}

// MarkPaid settles a bill with the given payment method and paid date.
func (r *Repository) MarkPaid(ctx context.Context, id, paymentMethod, paidDate string) (*BillResponse, error) {
	query := `
		UPDATE bills
		SET status = $1, payment_method = $2, paid_date = $3, updated_at = NOW()
		WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query, StatusPaid, paymentMethod, paidDate, id)
	if err != nil {
		return nil, fmt.Errorf("failed to mark bill paid: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return nil, ErrBillNotFound
	}

	return r.GetBill(ctx, id)
}

func (r *Repository) UpdateBillStatus(ctx context.Context, id, status string) (*BillResponse, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE bills SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update bill status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return nil, ErrBillNotFound
	}

	return r.GetBill(ctx, id)
}

func (r *Repository) DeleteBill(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM bills WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrBillNotFound
	}

	return nil
}

// TotalRevenue sums the total of all paid bills.
func (r *Repository) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(total_amount), 0) FROM bills WHERE status = 'Paid'`).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum revenue: %w", err)
	}
	return total, nil
}

// MonthlyRevenue sums paid bills settled in the current calendar month.
func (r *Repository) MonthlyRevenue(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(total_amount), 0)
		FROM bills
		WHERE status = 'Paid'
		  AND date_trunc('month', paid_date) = date_trunc('month', CURRENT_DATE)`).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum monthly revenue: %w", err)
	}
	return total, nil
}

// RevenueReport returns per-day paid revenue for the inclusive date range.
func (r *Repository) RevenueReport(ctx context.Context, from, to string) ([]DailyRevenue, error) {
	query := `
		SELECT paid_date::text, COUNT(*), SUM(total_amount)
		FROM bills
		WHERE status = 'Paid'
		  AND paid_date >= $1
		  AND paid_date <= $2
		GROUP BY paid_date
		ORDER BY paid_date ASC`

	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query revenue report: %w", err)
	}
	defer rows.Close()

	var report []DailyRevenue
	for rows.Next() {
		var d DailyRevenue
		if err := rows.Scan(&d.Date, &d.Bills, &d.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan revenue row: %w", err)
		}
		report = append(report, d)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating revenue report: %w", err)
	}

	return report, nil
}

func (r *Repository) CountPending(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bills WHERE status = 'Pending'`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending bills: %w", err)
	}
	return count, nil
}

func (r *Repository) queryBills(ctx context.Context, query string, args ...interface{}) ([]BillResponse, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bills: %w", err)
	}
	defer rows.Close()

	var bills []BillResponse
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, *b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bills: %w", err)
	}

	return bills, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBill(row rowScanner) (*BillResponse, error) {
	var (
		b             BillResponse
		appointmentID sql.NullString
		paymentMethod sql.NullString
		paidDate      sql.NullString
	)

	err := row.Scan(
		&b.ID,
		&b.PatientID,
		&b.PatientName,
		&appointmentID,
		&b.BillDate,
		&b.Description,
		&b.ConsultationCharge,
		&b.MedicineCharge,
		&b.RoomCharge,
		&b.OtherCharge,
		&b.Discount,
		&b.TaxPercent,
		&b.Subtotal,
		&b.TaxAmount,
		&b.TotalAmount,
		&b.Status,
		&paymentMethod,
		&paidDate,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if appointmentID.Valid {
		b.AppointmentID = &appointmentID.String
	}
	if paymentMethod.Valid {
		b.PaymentMethod = paymentMethod.String
	}
	if paidDate.Valid {
		b.PaidDate = &paidDate.String
	}

	return &b, nil
}
