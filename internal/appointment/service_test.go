package appointment

import (
	"context"
	"errors"
	"testing"
	"time"
)

// TestCreateAppointment_Success tests a clean booking
func TestCreateAppointment_Success(t *testing.T) {
	mockRepo := &mockRepository{
		isSlotAvailableFunc: func(ctx context.Context, doctorID, date, timeOfDay, excludeID string) (bool, error) {
			return true, nil
		},
		createAppointmentFunc: func(ctx context.Context, req CreateAppointmentRequest) (*AppointmentResponse, error) {
			return &AppointmentResponse{
				ID:              "appt-123",
				DoctorID:        req.DoctorID,
				PatientID:       req.PatientID,
				AppointmentDate: req.AppointmentDate,
				AppointmentTime: req.AppointmentTime,
				Status:          StatusScheduled,
				CreatedAt:       time.Now(),
			}, nil
		},
	}

	publisher := &mockPublisher{}
	service := NewService(mockRepo, publisher, nil)

	a, err := service.CreateAppointment(context.Background(), CreateAppointmentRequest{
		DoctorID:        "doctor-1",
		PatientID:       "patient-1",
		AppointmentDate: "2026-09-15",
		AppointmentTime: "10:30",
	})

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if a.Status != StatusScheduled {
		t.Errorf("Expected status Scheduled, got %s", a.Status)
	}
	if len(publisher.published) != 1 || publisher.published[0] != "appointment.booked" {
		t.Errorf("Expected appointment.booked event, got %v", publisher.published)
	}
}

// TestCreateAppointment_SlotTaken tests rejection when the slot is occupied
func TestCreateAppointment_SlotTaken(t *testing.T) {
	mockRepo := &mockRepository{
		isSlotAvailableFunc: func(ctx context.Context, doctorID, date, timeOfDay, excludeID string) (bool, error) {
			return false, nil
		},
	}

	publisher := &mockPublisher{}
	service := NewService(mockRepo, publisher, nil)

	_, err := service.CreateAppointment(context.Background(), CreateAppointmentRequest{
		DoctorID:        "doctor-1",
		PatientID:       "patient-1",
		AppointmentDate: "2026-09-15",
		AppointmentTime: "10:30",
	})

	if !errors.Is(err, ErrSlotTaken) {
		t.Errorf("Expected ErrSlotTaken, got: %v", err)
	}
	if len(publisher.published) != 0 {
		t.Error("Expected no event on rejected booking")
	}
}

// TestCreateAppointment_RacedInsert tests the unique-index backstop
func TestCreateAppointment_RacedInsert(t *testing.T) {
	mockRepo := &mockRepository{
		isSlotAvailableFunc: func(ctx context.Context, doctorID, date, timeOfDay, excludeID string) (bool, error) {
			return true, nil
		},
		createAppointmentFunc: func(ctx context.Context, req CreateAppointmentRequest) (*AppointmentResponse, error) {
			return nil, ErrSlotTaken
		},
	}

	service := NewService(mockRepo, &mockPublisher{}, nil)

	_, err := service.CreateAppointment(context.Background(), CreateAppointmentRequest{
		DoctorID:        "doctor-1",
		PatientID:       "patient-1",
		AppointmentDate: "2026-09-15",
		AppointmentTime: "10:30",
	})

	if !errors.Is(err, ErrSlotTaken) {
		t.Errorf("Expected ErrSlotTaken, got: %v", err)
	}
}

// TestCreateAppointment_ValidationError tests scheduling field validation
func TestCreateAppointment_ValidationError(t *testing.T) {
	service := NewService(&mockRepository{}, &mockPublisher{}, nil)

	testCases := []struct {
		name    string
		req     CreateAppointmentRequest
		wantErr error
	}{
		{
			name:    "Missing doctor",
			req:     CreateAppointmentRequest{PatientID: "patient-1", AppointmentDate: "2026-09-15", AppointmentTime: "10:30"},
			wantErr: ErrMissingDoctorID,
		},
		{
			name:    "Missing patient",
			req:     CreateAppointmentRequest{DoctorID: "doctor-1", AppointmentDate: "2026-09-15", AppointmentTime: "10:30"},
			wantErr: ErrMissingPatientID,
		},
		{
			name:    "Malformed date",
			req:     CreateAppointmentRequest{DoctorID: "doctor-1", PatientID: "patient-1", AppointmentDate: "15/09/2026", AppointmentTime: "10:30"},
			wantErr: ErrInvalidDate,
		},
		{
			name:    "Malformed time",
			req:     CreateAppointmentRequest{DoctorID: "doctor-1", PatientID: "patient-1", AppointmentDate: "2026-09-15", AppointmentTime: "10.30 AM"},
			wantErr: ErrInvalidTime,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.CreateAppointment(context.Background(), tc.req)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

// TestAppointment_CarriesClinicalFields tests that symptoms flow through
// booking, diagnosis/prescription through updates, and that responses
// carry the update timestamp
func TestAppointment_CarriesClinicalFields(t *testing.T) {
	var createdReq CreateAppointmentRequest
	var updatedReq UpdateAppointmentRequest
	now := time.Now()

	mockRepo := &mockRepository{
		isSlotAvailableFunc: func(ctx context.Context, doctorID, date, timeOfDay, excludeID string) (bool, error) {
			return true, nil
		},
		createAppointmentFunc: func(ctx context.Context, req CreateAppointmentRequest) (*AppointmentResponse, error) {
			createdReq = req
			return &AppointmentResponse{
				ID:              "appt-123",
				DoctorID:        req.DoctorID,
				PatientID:       req.PatientID,
				AppointmentDate: req.AppointmentDate,
				AppointmentTime: req.AppointmentTime,
				Symptoms:        req.Symptoms,
				Status:          StatusScheduled,
				CreatedAt:       now,
				UpdatedAt:       now,
			}, nil
		},
		getAppointmentFunc: func(ctx context.Context, id string) (*AppointmentResponse, error) {
			return &AppointmentResponse{
				ID:              id,
				DoctorID:        "doctor-1",
				PatientID:       "patient-1",
				AppointmentDate: "2026-09-15",
				AppointmentTime: "10:30",
				Status:          StatusScheduled,
			}, nil
		},
		updateAppointmentFunc: func(ctx context.Context, id string, req UpdateAppointmentRequest) (*AppointmentResponse, error) {
			updatedReq = req
			return &AppointmentResponse{
				ID:           id,
				Symptoms:     req.Symptoms,
				Diagnosis:    req.Diagnosis,
				Prescription: req.Prescription,
				Status:       StatusScheduled,
				CreatedAt:    now,
				UpdatedAt:    now.Add(time.Hour),
			}, nil
		},
	}

	service := NewService(mockRepo, &mockPublisher{}, nil)

	a, err := service.CreateAppointment(context.Background(), CreateAppointmentRequest{
		DoctorID:        "doctor-1",
		PatientID:       "patient-1",
		AppointmentDate: "2026-09-15",
		AppointmentTime: "10:30",
		Description:     "first visit",
		Symptoms:        "persistent cough",
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if createdReq.Symptoms != "persistent cough" {
		t.Errorf("Expected symptoms to reach the repository, got %q", createdReq.Symptoms)
	}
	if a.Symptoms != "persistent cough" {
		t.Errorf("Expected symptoms in the response, got %q", a.Symptoms)
	}

	updated, err := service.UpdateAppointment(context.Background(), "appt-123", UpdateAppointmentRequest{
		DoctorID:        "doctor-1",
		PatientID:       "patient-1",
		AppointmentDate: "2026-09-15",
		AppointmentTime: "10:30",
		Symptoms:        "persistent cough",
		Diagnosis:       "bronchitis",
		Prescription:    "amoxicillin 500mg",
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if updatedReq.Diagnosis != "bronchitis" || updatedReq.Prescription != "amoxicillin 500mg" {
		t.Errorf("Expected diagnosis and prescription to reach the repository, got %q / %q",
			updatedReq.Diagnosis, updatedReq.Prescription)
	}
	if !updated.UpdatedAt.After(updated.CreatedAt) {
		t.Error("Expected updated_at to move past created_at")
	}
}

// TestUpdateAppointment_RecheckExcludesSelf tests that rescheduling passes the
// appointment's own id to the slot check
func TestUpdateAppointment_RecheckExcludesSelf(t *testing.T) {
	var gotExcludeID string
	mockRepo := &mockRepository{
		getAppointmentFunc: func(ctx context.Context, id string) (*AppointmentResponse, error) {
			return &AppointmentResponse{
				ID:              id,
				DoctorID:        "doctor-1",
				PatientID:       "patient-1",
				AppointmentDate: "2026-09-15",
				AppointmentTime: "10:30",
				Status:          StatusScheduled,
			}, nil
		},
		isSlotAvailableFunc: func(ctx context.Context, doctorID, date, timeOfDay, excludeID string) (bool, error) {
			gotExcludeID = excludeID
			return true, nil
		},
		updateAppointmentFunc: func(ctx context.Context, id string, req UpdateAppointmentRequest) (*AppointmentResponse, error) {
			return &AppointmentResponse{ID: id, DoctorID: req.DoctorID, Status: StatusScheduled}, nil
		},
	}

	service := NewService(mockRepo, &mockPublisher{}, nil)

	_, err := service.UpdateAppointment(context.Background(), "appt-123", UpdateAppointmentRequest{
		DoctorID:        "doctor-1",
		PatientID:       "patient-1",
		AppointmentDate: "2026-09-16", // moved one day
		AppointmentTime: "10:30",
	})

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if gotExcludeID != "appt-123" {
		t.Errorf("Expected slot check to exclude appt-123, got %q", gotExcludeID)
	}
}

// TestUpdateAppointment_UnchangedSlotSkipsCheck tests that editing only the
// description does not hit the slot checker
func TestUpdateAppointment_UnchangedSlotSkipsCheck(t *testing.T) {
	slotChecked := false
	mockRepo := &mockRepository{
		getAppointmentFunc: func(ctx context.Context, id string) (*AppointmentResponse, error) {
			return &AppointmentResponse{
				ID:              id,
				DoctorID:        "doctor-1",
				PatientID:       "patient-1",
				AppointmentDate: "2026-09-15",
				AppointmentTime: "10:30",
				Status:          StatusScheduled,
			}, nil
		},
		isSlotAvailableFunc: func(ctx context.Context, doctorID, date, timeOfDay, excludeID string) (bool, error) {
			slotChecked = true
			return true, nil
		},
		updateAppointmentFunc: func(ctx context.Context, id string, req UpdateAppointmentRequest) (*AppointmentResponse, error) {
			return &AppointmentResponse{ID: id, Description: req.Description, Status: StatusScheduled}, nil
		},
	}

	service := NewService(mockRepo, &mockPublisher{}, nil)

	_, err := service.UpdateAppointment(context.Background(), "appt-123", UpdateAppointmentRequest{
		DoctorID:        "doctor-1",
		PatientID:       "patient-1",
		AppointmentDate: "2026-09-15",
		AppointmentTime: "10:30",
		Description:     "follow-up visit",
	})

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if slotChecked {
		t.Error("Expected no slot check when doctor/date/time are unchanged")
	}
}

// TestUpdateStatus_Transitions tests the status state machine
func TestUpdateStatus_Transitions(t *testing.T) {
	testCases := []struct {
		name      string
		current   string
		target    string
		wantErr   error
		wantEvent bool
	}{
		{name: "Scheduled to Completed", current: StatusScheduled, target: StatusCompleted, wantEvent: true},
		{name: "Scheduled to Cancelled", current: StatusScheduled, target: StatusCancelled, wantEvent: true},
		{name: "Scheduled to NoShow", current: StatusScheduled, target: StatusNoShow, wantEvent: true},
		{name: "Completed is terminal", current: StatusCompleted, target: StatusCancelled, wantErr: ErrInvalidTransition},
		{name: "Cancelled is terminal", current: StatusCancelled, target: StatusScheduled, wantErr: ErrInvalidTransition},
		{name: "Unknown status", current: StatusScheduled, target: "Done", wantErr: ErrInvalidStatus},
		{name: "Same status is a no-op", current: StatusScheduled, target: StatusScheduled},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := &mockRepository{
				getAppointmentFunc: func(ctx context.Context, id string) (*AppointmentResponse, error) {
					return &AppointmentResponse{ID: id, Status: tc.current}, nil
				},
				updateAppointmentStatusFunc: func(ctx context.Context, id, status string) (*AppointmentResponse, error) {
					return &AppointmentResponse{ID: id, Status: status}, nil
				},
			}

			publisher := &mockPublisher{}
			service := NewService(mockRepo, publisher, nil)

			_, err := service.UpdateStatus(context.Background(), "appt-123", tc.target)

			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Errorf("Expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}
			if tc.wantEvent && (len(publisher.published) != 1 || publisher.published[0] != "appointment.status_changed") {
				t.Errorf("Expected status_changed event, got %v", publisher.published)
			}
			if !tc.wantEvent && len(publisher.published) != 0 {
				t.Errorf("Expected no event, got %v", publisher.published)
			}
		})
	}
}

// TestListUpcoming_DefaultWindow tests the default 7-day window
func TestListUpcoming_DefaultWindow(t *testing.T) {
	var gotDays int
	mockRepo := &mockRepository{
		listUpcomingFunc: func(ctx context.Context, days int) ([]AppointmentResponse, error) {
			gotDays = days
			return nil, nil
		},
	}

	service := NewService(mockRepo, &mockPublisher{}, nil)

	if _, err := service.ListUpcoming(context.Background(), 0); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if gotDays != DefaultUpcomingDays {
		t.Errorf("Expected default window %d, got %d", DefaultUpcomingDays, gotDays)
	}
}

// TestListAppointments_InvalidStatusFilter tests status filter validation
func TestListAppointments_InvalidStatusFilter(t *testing.T) {
	service := NewService(&mockRepository{}, &mockPublisher{}, nil)

	_, _, err := service.ListAppointments(context.Background(), "Done", 20, 0)
	if !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("Expected ErrInvalidStatus, got: %v", err)
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
	isSlotAvailableFunc         func(ctx context.Context, doctorID, date, timeOfDay, excludeID string) (bool, error)
	createAppointmentFunc       func(ctx context.Context, req CreateAppointmentRequest) (*AppointmentResponse, error)
	getAppointmentFunc          func(ctx context.Context, id string) (*AppointmentResponse, error)
	listAppointmentsFunc        func(ctx context.Context, status string, limit, offset int) ([]AppointmentResponse, int, error)
	listByDoctorFunc            func(ctx context.Context, doctorID string) ([]AppointmentResponse, error)
	listByPatientFunc           func(ctx context.Context, patientID string) ([]AppointmentResponse, error)
	listTodayFunc               func(ctx context.Context) ([]AppointmentResponse, error)
	listUpcomingFunc            func(ctx context.Context, days int) ([]AppointmentResponse, error)
	updateAppointmentFunc       func(ctx context.Context, id string, req UpdateAppointmentRequest) (*AppointmentResponse, error)
	updateAppointmentStatusFunc func(ctx context.Context, id, status string) (*AppointmentResponse, error)
	deleteAppointmentFunc       func(ctx context.Context, id string) error
	countAppointmentsFunc       func(ctx context.Context) (int, error)
	countTodayFunc              func(ctx context.Context) (int, error)
	countByStatusFunc           func(ctx context.Context, status string) (int, error)
}

func (m *mockRepository) IsSlotAvailable(ctx context.Context, doctorID, date, timeOfDay, excludeID string) (bool, error) {
	if m.isSlotAvailableFunc != nil {
		return m.isSlotAvailableFunc(ctx, doctorID, date, timeOfDay, excludeID)
	}
	return false, errors.New("not implemented")
}

func (m *mockRepository) CreateAppointment(ctx context.Context, req CreateAppointmentRequest) (*AppointmentResponse, error) {
	if m.createAppointmentFunc != nil {
		return m.createAppointmentFunc(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) GetAppointment(ctx context.Context, id string) (*AppointmentResponse, error) {
	if m.getAppointmentFunc != nil {
		return m.getAppointmentFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) ListAppointments(ctx context.Context, status string, limit, offset int) ([]AppointmentResponse, int, error) {
	if m.listAppointmentsFunc != nil {
		return m.listAppointmentsFunc(ctx, status, limit, offset)
	}
	return nil, 0, errors.New("not implemented")
}

func (m *mockRepository) ListByDoctor(ctx context.Context, doctorID string) ([]AppointmentResponse, error) {
	if m.listByDoctorFunc != nil {
		return m.listByDoctorFunc(ctx, doctorID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) ListByPatient(ctx context.Context, patientID string) ([]AppointmentResponse, error) {
	if m.listByPatientFunc != nil {
		return m.listByPatientFunc(ctx, patientID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) ListToday(ctx context.Context) ([]AppointmentResponse, error) {
	if m.listTodayFunc != nil {
		return m.listTodayFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) ListUpcoming(ctx context.Context, days int) ([]AppointmentResponse, error) {
	if m.listUpcomingFunc != nil {
		return m.listUpcomingFunc(ctx, days)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) UpdateAppointment(ctx context.Context, id string, req UpdateAppointmentRequest) (*AppointmentResponse, error) {
	if m.updateAppointmentFunc != nil {
		return m.updateAppointmentFunc(ctx, id, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) UpdateAppointmentStatus(ctx context.Context, id, status string) (*AppointmentResponse, error) {
	if m.updateAppointmentStatusFunc != nil {
		return m.updateAppointmentStatusFunc(ctx, id, status)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) DeleteAppointment(ctx context.Context, id string) error {
	if m.deleteAppointmentFunc != nil {
		return m.deleteAppointmentFunc(ctx, id)
	}
	return errors.New("not implemented")
}

func (m *mockRepository) CountAppointments(ctx context.Context) (int, error) {
	if m.countAppointmentsFunc != nil {
		return m.countAppointmentsFunc(ctx)
	}
	return 0, errors.New("not implemented")
}

func (m *mockRepository) CountToday(ctx context.Context) (int, error) {
	if m.countTodayFunc != nil {
		return m.countTodayFunc(ctx)
	}
	return 0, errors.New("not implemented")
}

func (m *mockRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	if m.countByStatusFunc != nil {
		return m.countByStatusFunc(ctx, status)
	}
	return 0, errors.New("not implemented")
}
