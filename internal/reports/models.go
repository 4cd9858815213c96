package reports

import "github.com/shopspring/decimal"

// DashboardStats is the front-desk overview. Every figure is computed
// from live data.
type DashboardStats struct {
	TotalAppointments     int             `json:"total_appointments"`
	TodayAppointments     int             `json:"today_appointments"`
	ScheduledAppointments int             `json:"scheduled_appointments"`
	CompletedAppointments int             `json:"completed_appointments"`
	TotalDoctors          int             `json:"total_doctors"`
	TotalPatients         int             `json:"total_patients"`
	TotalRevenue          decimal.Decimal `json:"total_revenue"`
	MonthlyRevenue        decimal.Decimal `json:"monthly_revenue"`
	PendingBills          int             `json:"pending_bills"`
}

// MonthlyTrendRow is one month of activity
type MonthlyTrendRow struct {
	Month        string          `json:"month"` // YYYY-MM
	Appointments int             `json:"appointments"`
	NewPatients  int             `json:"new_patients"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// AppointmentExportRow is one line of the appointment CSV export
type AppointmentExportRow struct {
	ID          string
	PatientName string
	DoctorName  string
	Date        string
	Time        string
	Status      string
	Description string
}

// BillExportRow is one line of the bill CSV export
type BillExportRow struct {
	ID            string
	PatientName   string
	Date          string
	Amount        decimal.Decimal
	Status        string
	PaymentMethod string
}
