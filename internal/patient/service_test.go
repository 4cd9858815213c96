package patient

import (
	"context"
	"errors"
	"testing"
	"time"
)

// TestCreatePatient_Success tests successful patient registration
func TestCreatePatient_Success(t *testing.T) {
	mockRepo := &mockRepository{
		createPatientFunc: func(ctx context.Context, req CreatePatientRequest) (*PatientResponse, error) {
			return &PatientResponse{
				ID:          "patient-123",
				Name:        req.Name,
				DateOfBirth: req.DateOfBirth,
				BloodGroup:  req.BloodGroup,
				CreatedAt:   time.Now(),
			}, nil
		},
	}

	service := NewService(mockRepo)

	p, err := service.CreatePatient(context.Background(), CreatePatientRequest{
		Name:        "Anita Sharma",
		DateOfBirth: "1988-04-12",
		Phone:       "9876543210",
		BloodGroup:  "B+",
	})

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if p == nil || p.ID != "patient-123" {
		t.Fatal("Expected patient in response")
	}
}

// TestCreatePatient_DefaultBloodGroup tests the Unknown default
func TestCreatePatient_DefaultBloodGroup(t *testing.T) {
	var captured CreatePatientRequest
	mockRepo := &mockRepository{
		createPatientFunc: func(ctx context.Context, req CreatePatientRequest) (*PatientResponse, error) {
			captured = req
			return &PatientResponse{ID: "patient-1", Name: req.Name}, nil
		},
	}

	service := NewService(mockRepo)

	_, err := service.CreatePatient(context.Background(), CreatePatientRequest{
		Name:        "Anita Sharma",
		DateOfBirth: "1988-04-12",
		Phone:       "9876543210",
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if captured.BloodGroup != "Unknown" {
		t.Errorf("Expected default blood group Unknown, got %q", captured.BloodGroup)
	}
}

// TestCreatePatient_ValidationError tests validation of required fields
func TestCreatePatient_ValidationError(t *testing.T) {
	service := NewService(&mockRepository{})

	futureDOB := time.Now().AddDate(1, 0, 0).Format("2006-01-02")

	testCases := []struct {
		name    string
		req     CreatePatientRequest
		wantErr error
	}{
		{
			name:    "Missing name",
			req:     CreatePatientRequest{DateOfBirth: "1988-04-12", Phone: "9876543210"},
			wantErr: ErrMissingName,
		},
		{
			name:    "Missing date of birth",
			req:     CreatePatientRequest{Name: "Anita", Phone: "9876543210"},
			wantErr: ErrMissingDateOfBirth,
		},
		{
			name:    "Malformed date of birth",
			req:     CreatePatientRequest{Name: "Anita", DateOfBirth: "12/04/1988", Phone: "9876543210"},
			wantErr: ErrInvalidDateOfBirth,
		},
		{
			name:    "Future date of birth",
			req:     CreatePatientRequest{Name: "Anita", DateOfBirth: futureDOB, Phone: "9876543210"},
			wantErr: ErrInvalidDateOfBirth,
		},
		{
			name:    "Missing phone",
			req:     CreatePatientRequest{Name: "Anita", DateOfBirth: "1988-04-12"},
			wantErr: ErrMissingPhone,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := service.CreatePatient(context.Background(), tc.req)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Expected %v, got %v", tc.wantErr, err)
			}
			if p != nil {
				t.Error("Expected nil patient")
			}
		})
	}
}

// TestListPatients_Success tests paginated listing
func TestListPatients_Success(t *testing.T) {
	mockRepo := &mockRepository{
		listPatientsFunc: func(ctx context.Context, limit, offset int) ([]PatientResponse, int, error) {
			if limit != 20 || offset != 0 {
				t.Errorf("Expected limit=20 offset=0, got limit=%d offset=%d", limit, offset)
			}
			return []PatientResponse{{ID: "patient-1"}, {ID: "patient-2"}}, 42, nil
		},
	}

	service := NewService(mockRepo)

	patients, total, err := service.ListPatients(context.Background(), 20, 0)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(patients) != 2 {
		t.Errorf("Expected 2 patients, got %d", len(patients))
	}
	if total != 42 {
		t.Errorf("Expected total 42, got %d", total)
	}
}

// TestDeletePatient_InUse tests FK-restricted delete
func TestDeletePatient_InUse(t *testing.T) {
	mockRepo := &mockRepository{
		deletePatientFunc: func(ctx context.Context, id string) error {
			return ErrPatientInUse
		},
	}

	service := NewService(mockRepo)

	err := service.DeletePatient(context.Background(), "patient-123")
	if !errors.Is(err, ErrPatientInUse) {
		t.Errorf("Expected ErrPatientInUse, got: %v", err)
	}
}

// Mock implementations

type mockRepository struct {
	createPatientFunc func(ctx context.Context, req CreatePatientRequest) (*PatientResponse, error)
	listPatientsFunc  func(ctx context.Context, limit, offset int) ([]PatientResponse, int, error)
	getPatientFunc    func(ctx context.Context, id string) (*PatientResponse, error)
	updatePatientFunc func(ctx context.Context, id string, req UpdatePatientRequest) (*PatientResponse, error)
	deletePatientFunc func(ctx context.Context, id string) error
	countPatientsFunc func(ctx context.Context) (int, error)
}

func (m *mockRepository) CreatePatient(ctx context.Context, req CreatePatientRequest) (*PatientResponse, error) {
	if m.createPatientFunc != nil {
		return m.createPatientFunc(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) ListPatients(ctx context.Context, limit, offset int) ([]PatientResponse, int, error) {
	if m.listPatientsFunc != nil {
		return m.listPatientsFunc(ctx, limit, offset)
	}
	return nil, 0, errors.New("not implemented")
}

func (m *mockRepository) GetPatient(ctx context.Context, id string) (*PatientResponse, error) {
	if m.getPatientFunc != nil {
		return m.getPatientFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) UpdatePatient(ctx context.Context, id string, req UpdatePatientRequest) (*PatientResponse, error) {
	if m.updatePatientFunc != nil {
		return m.updatePatientFunc(ctx, id, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) DeletePatient(ctx context.Context, id string) error {
	if m.deletePatientFunc != nil {
		return m.deletePatientFunc(ctx, id)
	}
	return errors.New("not implemented")
}

func (m *mockRepository) CountPatients(ctx context.Context) (int, error) {
	if m.countPatientsFunc != nil {
		return m.countPatientsFunc(ctx)
	}
	return 0, errors.New("not implemented")
}
