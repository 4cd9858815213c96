package billing

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// TestComputeAmounts tests the derived subtotal, tax and total
func TestComputeAmounts(t *testing.T) {
	testCases := []struct {
		name         string
		consultation string
		medicine     string
		room         string
		other        string
		discount     string
		taxPercent   string
		wantSubtotal string
		wantTax      string
		wantTotal    string
		wantErr      error
	}{
		{
			name:         "Standard consultation with medicines",
			consultation: "800", medicine: "200", room: "0", other: "0",
			discount: "100", taxPercent: "18",
			wantSubtotal: "900.00", wantTax: "162.00", wantTotal: "1062.00",
		},
		{
			name:         "Zero tax",
			consultation: "500", medicine: "0", room: "0", other: "0",
			discount: "0", taxPercent: "0",
			wantSubtotal: "500.00", wantTax: "0.00", wantTotal: "500.00",
		},
		{
			name:         "Fractional tax rounds to 2 places",
			consultation: "333.33", medicine: "0", room: "0", other: "0",
			discount: "0", taxPercent: "5",
			wantSubtotal: "333.33", wantTax: "16.67", wantTotal: "350.00",
		},
		{
			name:         "Discount exactly cancels charges",
			consultation: "100", medicine: "0", room: "0", other: "0",
			discount: "100", taxPercent: "18",
			wantSubtotal: "0.00", wantTax: "0.00", wantTotal: "0.00",
		},
		{
			name:         "Negative charge rejected",
			consultation: "-1", medicine: "0", room: "0", other: "0",
			discount: "0", taxPercent: "18",
			wantErr: ErrNegativeCharge,
		},
		{
			name:         "Negative discount rejected",
			consultation: "100", medicine: "0", room: "0", other: "0",
			discount: "-10", taxPercent: "18",
			wantErr: ErrNegativeCharge,
		},
		{
			name:         "Discount larger than charges rejected",
			consultation: "100", medicine: "0", room: "0", other: "0",
			discount: "150", taxPercent: "18",
			wantErr: ErrDiscountExceedsSum,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			amt, err := computeAmounts(
				dec(tc.consultation), dec(tc.medicine), dec(tc.room),
				dec(tc.other), dec(tc.discount), dec(tc.taxPercent),
			)

			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Errorf("Expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}
			if got := amt.Subtotal.StringFixed(2); got != tc.wantSubtotal {
				t.Errorf("Expected subtotal %s, got %s", tc.wantSubtotal, got)
			}
			if got := amt.TaxAmount.StringFixed(2); got != tc.wantTax {
				t.Errorf("Expected tax %s, got %s", tc.wantTax, got)
			}
			if got := amt.TotalAmount.StringFixed(2); got != tc.wantTotal {
				t.Errorf("Expected total %s, got %s", tc.wantTotal, got)
			}
		})
	}
}

// TestCreateBill_Success tests bill creation with derived amounts
func TestCreateBill_Success(t *testing.T) {
	var captured billRecord
	mockRepo := &mockRepository{
		createBillFunc: func(ctx context.Context, rec billRecord) (*BillResponse, error) {
			captured = rec
			return &BillResponse{
				ID:          "bill-123",
				PatientID:   rec.PatientID,
				BillDate:    rec.BillDate,
				Description: rec.Description,
				Subtotal:    rec.Subtotal,
				TaxAmount:   rec.TaxAmount,
				TotalAmount: rec.TotalAmount,
				Status:      StatusPending,
			}, nil
		},
	}

	publisher := &mockPublisher{}
	service := NewService(mockRepo, publisher, nil)

	b, err := service.CreateBill(context.Background(), CreateBillRequest{
		PatientID:          "patient-1",
		BillDate:           "2026-08-28",
		Description:        "Consultation and medicines",
		ConsultationCharge: dec("800"),
		MedicineCharge:     dec("200"),
		Discount:           dec("100"),
		TaxPercent:         dec("18"),
	})

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if b.Status != StatusPending {
		t.Errorf("Expected status Pending, got %s", b.Status)
	}
	if captured.Description != "Consultation and medicines" {
		t.Errorf("Expected description to reach the repository, got %q", captured.Description)
	}
	if captured.TotalAmount.StringFixed(2) != "1062.00" {
		t.Errorf("Expected total 1062.00, got %s", captured.TotalAmount.StringFixed(2))
	}
	if len(publisher.published) != 1 || publisher.published[0] != "bill.created" {
		t.Errorf("Expected bill.created event, got %v", publisher.published)
	}
}

// TestCreateBill_DefaultsBillDate tests that bill_date defaults to today
func TestCreateBill_DefaultsBillDate(t *testing.T) {
	var captured billRecord
	mockRepo := &mockRepository{
		createBillFunc: func(ctx context.Context, rec billRecord) (*BillResponse, error) {
			captured = rec
			return &BillResponse{ID: "bill-1", Status: StatusPending}, nil
		},
	}

	service := NewService(mockRepo, &mockPublisher{}, nil)

	_, err := service.CreateBill(context.Background(), CreateBillRequest{
		PatientID:          "patient-1",
		Description:        "Consultation",
		ConsultationCharge: dec("500"),
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if captured.BillDate == "" {
		t.Error("Expected bill date to default to today")
	}
}

// TestCreateBill_ValidationError tests input validation
func TestCreateBill_ValidationError(t *testing.T) {
	service := NewService(&mockRepository{}, &mockPublisher{}, nil)

	testCases := []struct {
		name    string
		req     CreateBillRequest
		wantErr error
	}{
		{
			name:    "Missing patient",
			req:     CreateBillRequest{Description: "Consultation", ConsultationCharge: dec("500")},
			wantErr: ErrMissingPatientID,
		},
		{
			name:    "Missing description",
			req:     CreateBillRequest{PatientID: "patient-1", ConsultationCharge: dec("500")},
			wantErr: ErrMissingDescription,
		},
		{
			name:    "Malformed bill date",
			req:     CreateBillRequest{PatientID: "patient-1", Description: "Consultation", BillDate: "28-08-2026"},
			wantErr: ErrInvalidBillDate,
		},
		{
			name:    "Negative tax percent",
			req:     CreateBillRequest{PatientID: "patient-1", Description: "Consultation", TaxPercent: dec("-5")},
			wantErr: ErrNegativeCharge,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.CreateBill(context.Background(), tc.req)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

// TestPayBill_Success tests settling a pending bill
func TestPayBill_Success(t *testing.T) {
	paidDate := ""
	mockRepo := &mockRepository{
		getBillFunc: func(ctx context.Context, id string) (*BillResponse, error) {
			return &BillResponse{ID: id, PatientID: "patient-1", Status: StatusPending, TotalAmount: dec("1062")}, nil
		},
		markPaidFunc: func(ctx context.Context, id, paymentMethod, pd string) (*BillResponse, error) {
			paidDate = pd
			return &BillResponse{
				ID:            id,
				PatientID:     "patient-1",
				Status:        StatusPaid,
				PaymentMethod: paymentMethod,
				PaidDate:      &pd,
				TotalAmount:   dec("1062"),
			}, nil
		},
	}

	publisher := &mockPublisher{}
	service := NewService(mockRepo, publisher, nil)

	b, err := service.PayBill(context.Background(), "bill-123", PayBillRequest{PaymentMethod: "Card"})

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if b.Status != StatusPaid {
		t.Errorf("Expected status Paid, got %s", b.Status)
	}
	if paidDate == "" {
		t.Error("Expected paid date to be stamped")
	}
	if len(publisher.published) != 1 || publisher.published[0] != "bill.paid" {
		t.Errorf("Expected bill.paid event, got %v", publisher.published)
	}
}

// TestPayBill_AlreadySettled tests that paid and cancelled bills reject payment
func TestPayBill_AlreadySettled(t *testing.T) {
	for _, status := range []string{StatusPaid, StatusCancelled} {
		t.Run(status, func(t *testing.T) {
			mockRepo := &mockRepository{
				getBillFunc: func(ctx context.Context, id string) (*BillResponse, error) {
					return &BillResponse{ID: id, Status: status}, nil
				},
			}

			service := NewService(mockRepo, &mockPublisher{}, nil)

			_, err := service.PayBill(context.Background(), "bill-123", PayBillRequest{PaymentMethod: "Cash"})
			if !errors.Is(err, ErrBillNotPending) {
				t.Errorf("Expected ErrBillNotPending, got: %v", err)
			}
		})
	}
}

// TestPayBill_MissingMethod tests payment method validation
func TestPayBill_MissingMethod(t *testing.T) {
	service := NewService(&mockRepository{}, &mockPublisher{}, nil)

	_, err := service.PayBill(context.Background(), "bill-123", PayBillRequest{})
	if !errors.Is(err, ErrMissingPayment) {
		t.Errorf("Expected ErrMissingPayment, got: %v", err)
	}
}

// TestUpdateBill_NotPending tests that settled bills are immutable
func TestUpdateBill_NotPending(t *testing.T) {
	mockRepo := &mockRepository{
		getBillFunc: func(ctx context.Context, id string) (*BillResponse, error) {
			return &BillResponse{ID: id, Status: StatusPaid}, nil
		},
	}

	service := NewService(mockRepo, &mockPublisher{}, nil)

	_, err := service.UpdateBill(context.Background(), "bill-123", UpdateBillRequest{
		ConsultationCharge: dec("900"),
	})
	if !errors.Is(err, ErrBillNotPending) {
		t.Errorf("Expected ErrBillNotPending, got: %v", err)
	}
}

// TestUpdateBill_Recomputes tests that updates rederive the amounts
func TestUpdateBill_Recomputes(t *testing.T) {
	var captured billRecord
	mockRepo := &mockRepository{
		getBillFunc: func(ctx context.Context, id string) (*BillResponse, error) {
			return &BillResponse{ID: id, Status: StatusPending, BillDate: "2026-08-28", Description: "Consultation"}, nil
		},
		updateBillFunc: func(ctx context.Context, id string, rec billRecord) (*BillResponse, error) {
			captured = rec
			return &BillResponse{ID: id, Status: StatusPending, TotalAmount: rec.TotalAmount}, nil
		},
	}

	service := NewService(mockRepo, &mockPublisher{}, nil)

	_, err := service.UpdateBill(context.Background(), "bill-123", UpdateBillRequest{
		ConsultationCharge: dec("1000"),
		TaxPercent:         dec("10"),
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if captured.TotalAmount.StringFixed(2) != "1100.00" {
		t.Errorf("Expected recomputed total 1100.00, got %s", captured.TotalAmount.StringFixed(2))
	}
	if captured.BillDate != "2026-08-28" {
		t.Errorf("Expected bill date to carry over, got %s", captured.BillDate)
	}
	if captured.Description != "Consultation" {
		t.Errorf("Expected description to carry over, got %q", captured.Description)
	}
}

// TestUpdateStatus_PaidRequiresPayment tests that settling must go through PayBill
func TestUpdateStatus_PaidRequiresPayment(t *testing.T) {
	service := NewService(&mockRepository{}, &mockPublisher{}, nil)

	_, err := service.UpdateStatus(context.Background(), "bill-123", StatusPaid)
	if !errors.Is(err, ErrMissingPayment) {
		t.Errorf("Expected ErrMissingPayment, got: %v", err)
	}
}

// TestRevenueReport_InvalidRange tests range validation
func TestRevenueReport_InvalidRange(t *testing.T) {
	service := NewService(&mockRepository{}, &mockPublisher{}, nil)

	testCases := []struct {
		name string
		from string
		to   string
	}{
		{name: "Malformed from", from: "August", to: "2026-08-28"},
		{name: "Malformed to", from: "2026-08-01", to: "28/08/2026"},
		{name: "Reversed range", from: "2026-08-28", to: "2026-08-01"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.RevenueReport(context.Background(), tc.from, tc.to)
			if !errors.Is(err, ErrInvalidRange) {
				t.Errorf("Expected ErrInvalidRange, got: %v", err)
			}
		})
	}
}

// Mock implementations

type mockPublisher struct {
	published []string
}

func (m *mockPublisher) Publish(ctx context.Context, routingKey string, eventData interface{}) error {
	m.published = append(m.published, routingKey)
	return nil
}

func (m *mockPublisher) Close() error { return nil }

type mockRepository struct {
	createBillFunc       func(ctx context.Context, rec billRecord) (*BillResponse, error)
	getBillFunc          func(ctx context.Context, id string) (*BillResponse, error)
	listBillsFunc        func(ctx context.Context, status string, limit, offset int) ([]BillResponse, int, error)
	listByPatientFunc    func(ctx context.Context, patientID string) ([]BillResponse, error)
	listPendingFunc      func(ctx context.Context) ([]BillResponse, error)
	updateBillFunc       func(ctx context.Context, id string, rec billRecord) (*BillResponse, error)
	markPaidFunc         func(ctx context.Context, id, paymentMethod, paidDate string) (*BillResponse, error)
	updateBillStatusFunc func(ctx context.Context, id, status string) (*BillResponse, error)
	deleteBillFunc       func(ctx context.Context, id string) error
	totalRevenueFunc     func(ctx context.Context) (decimal.Decimal, error)
	monthlyRevenueFunc   func(ctx context.Context) (decimal.Decimal, error)
	revenueReportFunc    func(ctx context.Context, from, to string) ([]DailyRevenue, error)
	countPendingFunc     func(ctx context.Context) (int, error)
}

func (m *mockRepository) CreateBill(ctx context.Context, rec billRecord) (*BillResponse, error) {
	if m.createBillFunc != nil {
		return m.createBillFunc(ctx, rec)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) GetBill(ctx context.Context, id string) (*BillResponse, error) {
	if m.getBillFunc != nil {
		return m.getBillFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) ListBills(ctx context.Context, status string, limit, offset int) ([]BillResponse, int, error) {
	if m.listBillsFunc != nil {
		return m.listBillsFunc(ctx, status, limit, offset)
	}
	return nil, 0, errors.New("not implemented")
}

func (m *mockRepository) ListByPatient(ctx context.Context, patientID string) ([]BillResponse, error) {
	if m.listByPatientFunc != nil {
		return m.listByPatientFunc(ctx, patientID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) ListPending(ctx context.Context) ([]BillResponse, error) {
	if m.listPendingFunc != nil {
		return m.listPendingFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) UpdateBill(ctx context.Context, id string, rec billRecord) (*BillResponse, error) {
	if m.updateBillFunc != nil {
		return m.updateBillFunc(ctx, id, rec)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) MarkPaid(ctx context.Context, id, paymentMethod, paidDate string) (*BillResponse, error) {
	if m.markPaidFunc != nil {
		return m.markPaidFunc(ctx, id, paymentMethod, paidDate)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) UpdateBillStatus(ctx context.Context, id, status string) (*BillResponse, error) {
	if m.updateBillStatusFunc != nil {
		return m.updateBillStatusFunc(ctx, id, status)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) DeleteBill(ctx context.Context, id string) error {
	if m.deleteBillFunc != nil {
		return m.deleteBillFunc(ctx, id)
	}
	return errors.New("not implemented")
}

func (m *mockRepository) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	if m.totalRevenueFunc != nil {
		return m.totalRevenueFunc(ctx)
	}
	return decimal.Zero, errors.New("not implemented")
}

func (m *mockRepository) MonthlyRevenue(ctx context.Context) (decimal.Decimal, error) {
	if m.monthlyRevenueFunc != nil {
		return m.monthlyRevenueFunc(ctx)
	}
	return decimal.Zero, errors.New("not implemented")
}

func (m *mockRepository) RevenueReport(ctx context.Context, from, to string) ([]DailyRevenue, error) {
	if m.revenueReportFunc != nil {
		return m.revenueReportFunc(ctx, from, to)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) CountPending(ctx context.Context) (int, error) {
	if m.countPendingFunc != nil {
		return m.countPendingFunc(ctx)
	}
	return 0, errors.New("not implemented")
}
