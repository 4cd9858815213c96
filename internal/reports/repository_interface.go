package reports

import "context"

// RepositoryInterface defines the contract for report data access
type RepositoryInterface interface {
	MonthlyTrend(ctx context.Context, months int) ([]MonthlyTrendRow, error)
	ExportAppointments(ctx context.Context, from, to string) ([]AppointmentExportRow, error)
	ExportBills(ctx context.Context, from, to string) ([]BillExportRow, error)
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
