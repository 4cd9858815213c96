package reports

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/medicore-systems/hospital-service/internal/appointment"
)

// DefaultTrendMonths is the window used when no ?months is given.
const DefaultTrendMonths = 6

// Counter interfaces narrow the entity repositories to the aggregate
// queries the dashboard needs.
type DoctorCounter interface {
	CountDoctors(ctx context.Context) (int, error)
}

type PatientCounter interface {
	CountPatients(ctx context.Context) (int, error)
}

type AppointmentCounter interface {
	CountAppointments(ctx context.Context) (int, error)
	CountToday(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status string) (int, error)
}

type RevenueSource interface {
	TotalRevenue(ctx context.Context) (decimal.Decimal, error)
	MonthlyRevenue(ctx context.Context) (decimal.Decimal, error)
	CountPending(ctx context.Context) (int, error)
}

type Service struct {
	repo         RepositoryInterface
	doctors      DoctorCounter
	patients     PatientCounter
	appointments AppointmentCounter
	bills        RevenueSource
}

func NewService(
	repo RepositoryInterface,
	doctors DoctorCounter,
	patients PatientCounter,
	appointments AppointmentCounter,
	bills RevenueSource,
) *Service {
	return &Service{
		repo:         repo,
		doctors:      doctors,
		patients:     patients,
		appointments: appointments,
		bills:        bills,
	}
}

// Dashboard assembles the overview figures from the entity repositories.
func (s *Service) Dashboard(ctx context.Context) (*DashboardStats, error) {
	var (
		stats DashboardStats
		err   error
	)

	if stats.TotalAppointments, err = s.appointments.CountAppointments(ctx); err != nil {
		return nil, fmt.Errorf("failed to count appointments: %w", err)
	}
	if stats.TodayAppointments, err = s.appointments.CountToday(ctx); err != nil {
		return nil, fmt.Errorf("failed to count today's appointments: %w", err)
	}
	if stats.ScheduledAppointments, err = s.appointments.CountByStatus(ctx, appointment.StatusScheduled); err != nil {
		return nil, fmt.Errorf("failed to count scheduled appointments: %w", err)
	}
	if stats.CompletedAppointments, err = s.appointments.CountByStatus(ctx, appointment.StatusCompleted); err != nil {
		return nil, fmt.Errorf("failed to count completed appointments: %w", err)
	}
	if stats.TotalDoctors, err = s.doctors.CountDoctors(ctx); err != nil {
		return nil, fmt.Errorf("failed to count doctors: %w", err)
	}
	if stats.TotalPatients, err = s.patients.CountPatients(ctx); err != nil {
		return nil, fmt.Errorf("failed to count patients: %w", err)
	}
	if stats.TotalRevenue, err = s.bills.TotalRevenue(ctx); err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}
	if stats.MonthlyRevenue, err = s.bills.MonthlyRevenue(ctx); err != nil {
		return nil, fmt.Errorf("failed to sum monthly revenue: %w", err)
	}
	if stats.PendingBills, err = s.bills.CountPending(ctx); err != nil {
		return nil, fmt.Errorf("failed to count pending bills: %w", err)
	}

	return &stats, nil
}

func (s *Service) MonthlyTrend(ctx context.Context, months int) ([]MonthlyTrendRow, error) {
	if months <= 0 {
		months = DefaultTrendMonths
	}
	return s.repo.MonthlyTrend(ctx, months)
}

// WriteAppointmentsCSV streams the appointment export, optionally
// limited to a date range.
func (s *Service) WriteAppointmentsCSV(ctx context.Context, w io.Writer, from, to string) error {
	rows, err := s.repo.ExportAppointments(ctx, from, to)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Appointment ID", "Patient Name", "Doctor Name", "Date", "Time", "Status", "Description"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range rows {
		record := []string{row.ID, row.PatientName, row.DoctorName, row.Date, row.Time, row.Status, row.Description}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteBillsCSV streams the bill export, optionally limited to a
// date range.
func (s *Service) WriteBillsCSV(ctx context.Context, w io.Writer, from, to string) error {
	rows, err := s.repo.ExportBills(ctx, from, to)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Bill ID", "Patient Name", "Date", "Amount", "Status", "Payment Method"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range rows {
		record := []string{row.ID, row.PatientName, row.Date, row.Amount.StringFixed(2), row.Status, row.PaymentMethod}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
