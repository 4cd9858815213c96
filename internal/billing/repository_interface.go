package billing

import (
	"context"

	"github.com/shopspring/decimal"
)

// RepositoryInterface defines the contract for billing data access
type RepositoryInterface interface {
	CreateBill(ctx context.Context, rec billRecord) (*BillResponse, error)
	GetBill(ctx context.Context, id string) (*BillResponse, error)
	ListBills(ctx context.Context, status string, limit, offset int) ([]BillResponse, int, error)
	ListByPatient(ctx context.Context, patientID string) ([]BillResponse, error)
	ListPending(ctx context.Context) ([]BillResponse, error)
	UpdateBill(ctx context.Context, id string, rec billRecord) (*BillResponse, error)
	MarkPaid(ctx context.Context, id, paymentMethod, paidDate string) (*BillResponse, error)
	UpdateBillStatus(ctx context.Context, id, status string) (*BillResponse, error)
	DeleteBill(ctx context.Context, id string) error
	TotalRevenue(ctx context.Context) (decimal.Decimal, error)
	MonthlyRevenue(ctx context.Context) (decimal.Decimal, error)
	RevenueReport(ctx context.Context, from, to string) ([]DailyRevenue, error)
	CountPending(ctx context.Context) (int, error)
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
