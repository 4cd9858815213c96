package appointment

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/medicore-systems/hospital-service/internal/messaging"
	"github.com/medicore-systems/hospital-service/internal/telemetry"
)

// DefaultUpcomingDays is the window used when no ?days is given.
const DefaultUpcomingDays = 7

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

func (s *Service) CreateAppointment(ctx context.Context, req CreateAppointmentRequest) (*AppointmentResponse, error) {
	if err := validateScheduling(req.DoctorID, req.PatientID, req.AppointmentDate, req.AppointmentTime); err != nil {
		return nil, err
	}

	available, err := s.repo.IsSlotAvailable(ctx, req.DoctorID, req.AppointmentDate, req.AppointmentTime, "")
	if err != nil {
		return nil, fmt.Errorf("failed to check slot: %w", err)
	}
	if !available {
		s.recordConflict(ctx, req.DoctorID)
		return nil, ErrSlotTaken
	}

	a, err := s.repo.CreateAppointment(ctx, req)
	if err != nil {
		// The unique index catches bookings that raced past the pre-check.
		if err == ErrSlotTaken {
			s.recordConflict(ctx, req.DoctorID)
		}
		return nil, err
	}

	s.recordOperation(ctx, "create")
	s.publishBooked(ctx, a)

	return a, nil
}

func (s *Service) GetAppointment(ctx context.Context, id string) (*AppointmentResponse, error) {
	return s.repo.GetAppointment(ctx, id)
}

func (s *Service) ListAppointments(ctx context.Context, status string, limit, offset int) ([]AppointmentResponse, int, error) {
	if status != "" && !isValidStatus(status) {
		return nil, 0, ErrInvalidStatus
	}
	return s.repo.ListAppointments(ctx, status, limit, offset)
}

func (s *Service) ListByDoctor(ctx context.Context, doctorID string) ([]AppointmentResponse, error) {
	return s.repo.ListByDoctor(ctx, doctorID)
}

func (s *Service) ListByPatient(ctx context.Context, patientID string) ([]AppointmentResponse, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *Service) ListToday(ctx context.Context) ([]AppointmentResponse, error) {
	return s.repo.ListToday(ctx)
}

func (s *Service) ListUpcoming(ctx context.Context, days int) ([]AppointmentResponse, error) {
	if days <= 0 {
		days = DefaultUpcomingDays
	}
	return s.repo.ListUpcoming(ctx, days)
}

// UpdateAppointment reschedules an appointment. When the doctor, date or time
// change, the target slot is re-checked with the appointment's own id excluded
// so an unchanged booking never conflicts with itself.
func (s *Service) UpdateAppointment(ctx context.Context, id string, req UpdateAppointmentRequest) (*AppointmentResponse, error) {
	if err := validateScheduling(req.DoctorID, req.PatientID, req.AppointmentDate, req.AppointmentTime); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	slotChanged := existing.DoctorID != req.DoctorID ||
		existing.AppointmentDate != req.AppointmentDate ||
		existing.AppointmentTime != req.AppointmentTime

	if slotChanged {
		available, err := s.repo.IsSlotAvailable(ctx, req.DoctorID, req.AppointmentDate, req.AppointmentTime, id)
		if err != nil {
			return nil, fmt.Errorf("failed to check slot: %w", err)
		}
		if !available {
			s.recordConflict(ctx, req.DoctorID)
			return nil, ErrSlotTaken
		}
	}

	a, err := s.repo.UpdateAppointment(ctx, id, req)
	if err != nil {
		if err == ErrSlotTaken {
			s.recordConflict(ctx, req.DoctorID)
		}
		return nil, err
	}

	s.recordOperation(ctx, "update")
	s.publishEvent(ctx, messaging.EventAppointmentUpdated, messaging.AppointmentBookedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventAppointmentUpdated),
		Data: messaging.AppointmentBookedData{
			AppointmentID:   a.ID,
			DoctorID:        a.DoctorID,
			PatientID:       a.PatientID,
			AppointmentDate: a.AppointmentDate,
			AppointmentTime: a.AppointmentTime,
			CreatedAt:       a.CreatedAt,
		},
	})

	return a, nil
}

// UpdateStatus performs a validated status transition.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (*AppointmentResponse, error) {
	if !isValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	existing, err := s.repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	if existing.Status == status {
		return existing, nil
	}
	if existing.Status != StatusScheduled {
		return nil, ErrInvalidTransition
	}

	a, err := s.repo.UpdateAppointmentStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.recordOperation(ctx, "status_change")
	s.publishEvent(ctx, messaging.EventAppointmentStatusChanged, messaging.AppointmentStatusChangedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventAppointmentStatusChanged),
		Data: messaging.AppointmentStatusChangedData{
			AppointmentID: a.ID,
			OldStatus:     existing.Status,
			NewStatus:     a.Status,
			ChangedAt:     time.Now().UTC(),
		},
	})

	return a, nil
}

func (s *Service) DeleteAppointment(ctx context.Context, id string) error {
	if err := s.repo.DeleteAppointment(ctx, id); err != nil {
		return err
	}

	s.recordOperation(ctx, "delete")
	s.publishEvent(ctx, messaging.EventAppointmentDeleted, map[string]interface{}{
		"event_type":     messaging.EventAppointmentDeleted,
		"appointment_id": id,
		"deleted_at":     time.Now().UTC(),
	})

	return nil
}

func validateScheduling(doctorID, patientID, date, timeOfDay string) error {
	if doctorID == "" {
		return ErrMissingDoctorID
	}
	if patientID == "" {
		return ErrMissingPatientID
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return ErrInvalidDate
	}
	if _, err := time.Parse("15:04", timeOfDay); err != nil {
		return ErrInvalidTime
	}
	return nil
}

func isValidStatus(status string) bool {
	switch status {
	case StatusScheduled, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

func (s *Service) publishBooked(ctx context.Context, a *AppointmentResponse) {
	s.publishEvent(ctx, messaging.EventAppointmentBooked, messaging.AppointmentBookedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventAppointmentBooked),
		Data: messaging.AppointmentBookedData{
			AppointmentID:   a.ID,
			DoctorID:        a.DoctorID,
			PatientID:       a.PatientID,
			AppointmentDate: a.AppointmentDate,
			AppointmentTime: a.AppointmentTime,
			CreatedAt:       a.CreatedAt,
		},
	})
}

// publishEvent fires an event without failing the request. Events are
// best-effort notifications, not part of the transaction.
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
		s.metrics.RecordAppointmentOperation(ctx, operation)
	}
}

func (s *Service) recordConflict(ctx context.Context, doctorID string) {
	if s.metrics != nil {
		s.metrics.RecordBookingConflict(ctx, doctorID)
	}
}
