package billing

import (
	"context"

	"github.com/shopspring/decimal"
)

// ServiceInterface defines the contract for billing business logic operations
type ServiceInterface interface {
	CreateBill(ctx context.Context, req CreateBillRequest) (*BillResponse, error)
	GetBill(ctx context.Context, id string) (*BillResponse, error)
	ListBills(ctx context.Context, status string, limit, offset int) ([]BillResponse, int, error)
	ListByPatient(ctx context.Context, patientID string) ([]BillResponse, error)
	ListPending(ctx context.Context) ([]BillResponse, error)
	UpdateBill(ctx context.Context, id string, req UpdateBillRequest) (*BillResponse, error)
	PayBill(ctx context.Context, id string, req PayBillRequest) (*BillResponse, error)
	UpdateStatus(ctx context.Context, id, status string) (*BillResponse, error)
	DeleteBill(ctx context.Context, id string) error
	TotalRevenue(ctx context.Context) (decimal.Decimal, error)
	MonthlyRevenue(ctx context.Context) (decimal.Decimal, error)
	RevenueReport(ctx context.Context, from, to string) ([]DailyRevenue, error)
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
