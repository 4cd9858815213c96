package billing

import (
	"context"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"github.com/medicore-systems/hospital-service/internal/messaging"
	"github.com/medicore-systems/hospital-service/internal/telemetry"
)

type Service struct {
	repo      RepositoryInterface
	publisher messaging.PublisherInterface
	metrics   *telemetry.Metrics
}

func NewService(repo RepositoryInterface, publisher messaging.PublisherInterface, metrics *telemetry.Metrics) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		metrics:   metrics,
	}
}

// amounts holds the derived monetary fields of a bill, rounded to 2 places.
type amounts struct {
	Subtotal    decimal.Decimal
	TaxAmount   decimal.Decimal
	TotalAmount decimal.Decimal
}

// computeAmounts derives subtotal, tax and total from the charge fields.
//
//	subtotal = consultation + medicine + room + other - discount
//	tax      = subtotal * taxPercent / 100
//	total    = subtotal + tax
func computeAmounts(consultation, medicine, room, other, discount, taxPercent decimal.Decimal) (amounts, error) {
	for _, v := range []decimal.Decimal{consultation, medicine, room, other, discount, taxPercent} {
		if v.LessThan(decimal.Zero) {
			return amounts{}, ErrNegativeCharge
		}
	}

	charges := consultation.Add(medicine).Add(room).Add(other)
	subtotal := charges.Sub(discount)
	if subtotal.LessThan(decimal.Zero) {
		return amounts{}, ErrDiscountExceedsSum
	}
	subtotal = subtotal.Round(2)

	tax := subtotal.Mul(taxPercent).Div(decimal.NewFromInt(100)).Round(2)
	total := subtotal.Add(tax).Round(2)

	return amounts{
		Subtotal:    subtotal,
		TaxAmount:   tax,
		TotalAmount: total,
	}, nil
}

func (s *Service) CreateBill(ctx context.Context, req CreateBillRequest) (*BillResponse, error) {
	if req.PatientID == "" {
		return nil, ErrMissingPatientID
	}
	if req.Description == "" {
		return nil, ErrMissingDescription
	}
	if req.BillDate == "" {
		req.BillDate = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", req.BillDate); err != nil {
		return nil, ErrInvalidBillDate
	}

	amt, err := computeAmounts(
		req.ConsultationCharge, req.MedicineCharge, req.RoomCharge,
		req.OtherCharge, req.Discount, req.TaxPercent,
	)
	if err != nil {
		return nil, err
	}

	b, err := s.repo.CreateBill(ctx, billRecord{
		PatientID:          req.PatientID,
		AppointmentID:      req.AppointmentID,
		BillDate:           req.BillDate,
		Description:        req.Description,
		ConsultationCharge: req.ConsultationCharge.Round(2),
		MedicineCharge:     req.MedicineCharge.Round(2),
		RoomCharge:         req.RoomCharge.Round(2),
		OtherCharge:        req.OtherCharge.Round(2),
		Discount:           req.Discount.Round(2),
		TaxPercent:         req.TaxPercent,
		Subtotal:           amt.Subtotal,
		TaxAmount:          amt.TaxAmount,
		TotalAmount:        amt.TotalAmount,
	})
	if err != nil {
		return nil, err
	}

	s.recordOperation(ctx, "create")
	s.publishEvent(ctx, messaging.EventBillCreated, messaging.BillCreatedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventBillCreated),
		Data: messaging.BillCreatedData{
			BillID:      b.ID,
			PatientID:   b.PatientID,
			BillDate:    b.BillDate,
			TotalAmount: b.TotalAmount.StringFixed(2),
			CreatedAt:   b.CreatedAt,
		},
	})

	return b, nil
}

func (s *Service) GetBill(ctx context.Context, id string) (*BillResponse, error) {
	return s.repo.GetBill(ctx, id)
}

func (s *Service) ListBills(ctx context.Context, status string, limit, offset int) ([]BillResponse, int, error) {
	if status != "" && !isValidStatus(status) {
		return nil, 0, ErrInvalidStatus
	}
	return s.repo.ListBills(ctx, status, limit, offset)
}

func (s *Service) ListByPatient(ctx context.Context, patientID string) ([]BillResponse, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *Service) ListPending(ctx context.Context) ([]BillResponse, error) {
	return s.repo.ListPending(ctx)
}

// UpdateBill replaces the charges of a pending bill and recomputes the
// derived amounts. Paid and cancelled bills are immutable.
func (s *Service) UpdateBill(ctx context.Context, id string, req UpdateBillRequest) (*BillResponse, error) {
	existing, err := s.repo.GetBill(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Status != StatusPending {
		return nil, ErrBillNotPending
	}

	if req.BillDate == "" {
		req.BillDate = existing.BillDate
	}
	if _, err := time.Parse("2006-01-02", req.BillDate); err != nil {
		return nil, ErrInvalidBillDate
	}
	if req.Description == "" {
		req.Description = existing.Description
	}

	amt, err := computeAmounts(
		req.ConsultationCharge, req.MedicineCharge, req.RoomCharge,
		req.OtherCharge, req.Discount, req.TaxPercent,
	)
	if err != nil {
		return nil, err
	}

	b, err := s.repo.UpdateBill(ctx, id, billRecord{
		BillDate:           req.BillDate,
		Description:        req.Description,
		ConsultationCharge: req.ConsultationCharge.Round(2),
		MedicineCharge:     req.MedicineCharge.Round(2),
		RoomCharge:         req.RoomCharge.Round(2),
		OtherCharge:        req.OtherCharge.Round(2),
		Discount:           req.Discount.Round(2),
		TaxPercent:         req.TaxPercent,
		Subtotal:           amt.Subtotal,
		TaxAmount:          amt.TaxAmount,
		TotalAmount:        amt.TotalAmount,
	})
	if err != nil {
		return nil, err
	}

	s.recordOperation(ctx, "update")
	return b, nil
}

// PayBill settles a pending bill, stamping today's date as the paid date.
func (s *Service) PayBill(ctx context.Context, id string, req PayBillRequest) (*BillResponse, error) {
	if req.PaymentMethod == "" {
		return nil, ErrMissingPayment
	}

	existing, err := s.repo.GetBill(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Status != StatusPending {
		return nil, ErrBillNotPending
	}

	paidDate := time.Now().Format("2006-01-02")
	b, err := s.repo.MarkPaid(ctx, id, req.PaymentMethod, paidDate)
	if err != nil {
		return nil, err
	}

	s.recordOperation(ctx, "pay")
	s.publishEvent(ctx, messaging.EventBillPaid, messaging.BillPaidEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventBillPaid),
		Data: messaging.BillPaidData{
			BillID:        b.ID,
			PatientID:     b.PatientID,
			TotalAmount:   b.TotalAmount.StringFixed(2),
			PaymentMethod: b.PaymentMethod,
			PaidDate:      paidDate,
			PaidAt:        time.Now().UTC(),
		},
	})

	return b, nil
}

// UpdateStatus performs a validated status transition. Settling a bill
// must go through PayBill so the payment details get recorded.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (*BillResponse, error) {
	if !isValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	if status == StatusPaid {
		return nil, ErrMissingPayment
	}

	existing, err := s.repo.GetBill(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Status == status {
		return existing, nil
	}
	if existing.Status != StatusPending {
		return nil, ErrBillNotPending
	}

	b, err := s.repo.UpdateBillStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.recordOperation(ctx, "status_change")
	return b, nil
}

func (s *Service) DeleteBill(ctx context.Context, id string) error {
	if err := s.repo.DeleteBill(ctx, id); err != nil {
		return err
	}
	s.recordOperation(ctx, "delete")
	return nil
}

func (s *Service) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	return s.repo.TotalRevenue(ctx)
}

func (s *Service) MonthlyRevenue(ctx context.Context) (decimal.Decimal, error) {
	return s.repo.MonthlyRevenue(ctx)
}

// RevenueReport returns per-day paid revenue for the inclusive range.
func (s *Service) RevenueReport(ctx context.Context, from, to string) ([]DailyRevenue, error) {
	fromDate, err := time.Parse("2006-01-02", from)
	if err != nil {
		return nil, ErrInvalidRange
	}
	toDate, err := time.Parse("2006-01-02", to)
	if err != nil {
		return nil, ErrInvalidRange
	}
	if toDate.Before(fromDate) {
		return nil, ErrInvalidRange
	}

	return s.repo.RevenueReport(ctx, from, to)
}

func isValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusPaid, StatusCancelled:
		return true
	}
	return false
}

func (s *Service) publishEvent(ctx context.Context, routingKey string, event interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, routingKey, event); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}

func (s *Service) recordOperation(ctx context.Context, operation string) {
	if s.metrics != nil {
		s.metrics.RecordBillOperation(ctx, operation)
	}
}
