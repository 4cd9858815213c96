package reports

import (
	"context"
	"io"
)

// ServiceInterface defines the contract for reporting operations
type ServiceInterface interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
	MonthlyTrend(ctx context.Context, months int) ([]MonthlyTrendRow, error)
	WriteAppointmentsCSV(ctx context.Context, w io.Writer, from, to string) error
	WriteBillsCSV(ctx context.Context, w io.Writer, from, to string) error
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
