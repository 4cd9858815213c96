package http

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/medicore-systems/hospital-service/internal/appointment"
	"github.com/medicore-systems/hospital-service/internal/auth"
	"github.com/medicore-systems/hospital-service/internal/billing"
	"github.com/medicore-systems/hospital-service/internal/doctor"
	"github.com/medicore-systems/hospital-service/internal/messaging"
	"github.com/medicore-systems/hospital-service/internal/patient"
	"github.com/medicore-systems/hospital-service/internal/reports"
	"github.com/medicore-systems/hospital-service/internal/telemetry"
)

// SetupRouter initializes all routes for the application
func SetupRouter(
	db *sql.DB,
	verifier *auth.Verifier,
	perms auth.Permissions,
	publisher messaging.PublisherInterface,
	metrics *telemetry.Metrics,
) *mux.Router {
	// Initialize doctor components
	doctorRepo := doctor.NewRepository(db)
	doctorService := doctor.NewService(doctorRepo)
	doctorHandler := doctor.NewHandler(doctorService)

	// Initialize patient components
	patientRepo := patient.NewRepository(db)
	patientService := patient.NewService(patientRepo)
	patientHandler := patient.NewHandler(patientService)

	// Initialize appointment components
	appointmentRepo := appointment.NewRepository(db)
	appointmentService := appointment.NewService(appointmentRepo, publisher, metrics)
	appointmentHandler := appointment.NewHandler(appointmentService)

	// Initialize billing components
	billingRepo := billing.NewRepository(db)
	billingService := billing.NewService(billingRepo, publisher, metrics)
	billingHandler := billing.NewHandler(billingService)

	// Initialize report components
	reportsRepo := reports.NewRepository(db)
	reportsService := reports.NewService(reportsRepo, doctorRepo, patientRepo, appointmentRepo, billingRepo)
	reportsHandler := reports.NewHandler(reportsService)

	r := mux.NewRouter()
	r.Use(otelmux.Middleware("hospital-service"))
	r.Use(CORSMiddleware)
	if metrics != nil {
		r.Use(httpMetricsMiddleware(metrics))
	}

	// Keep the interfaces nil when no metrics are configured; a typed
	// nil pointer would pass the middleware's nil checks.
	var authMetrics auth.MetricsRecorder
	var permMetrics auth.PermissionMetricsRecorder
	if metrics != nil {
		authMetrics = metrics
		permMetrics = metrics
	}

	// secure wraps a handler in authentication plus a permission check.
	secure := func(permission string, h http.HandlerFunc) http.Handler {
		return auth.MiddlewareWithMetrics(verifier, authMetrics)(
			auth.RequirePermissionWithMetrics(permission, perms, permMetrics)(h),
		)
	}

	// Public health endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"hospital-service"}`))
	}).Methods("GET")

	// Doctor routes
	r.Handle("/doctors", secure("doctor:create", doctorHandler.CreateDoctor)).Methods("POST")
	r.Handle("/doctors", secure("doctor:view", doctorHandler.ListDoctors)).Methods("GET")
	r.Handle("/doctors/{id}/appointments", secure("appointment:view", appointmentHandler.ListByDoctor)).Methods("GET")
	r.Handle("/doctors/{id}", secure("doctor:view", doctorHandler.GetDoctor)).Methods("GET")
	r.Handle("/doctors/{id}", secure("doctor:update", doctorHandler.UpdateDoctor)).Methods("PUT")
	r.Handle("/doctors/{id}", secure("doctor:delete", doctorHandler.DeleteDoctor)).Methods("DELETE")

	// Patient routes
	r.Handle("/patients", secure("patient:create", patientHandler.CreatePatient)).Methods("POST")
	r.Handle("/patients", secure("patient:view", patientHandler.ListPatients)).Methods("GET")
	r.Handle("/patients/{id}/appointments", secure("appointment:view", appointmentHandler.ListByPatient)).Methods("GET")
	r.Handle("/patients/{id}/bills", secure("bill:view", billingHandler.ListByPatient)).Methods("GET")
	r.Handle("/patients/{id}", secure("patient:view", patientHandler.GetPatient)).Methods("GET")
	r.Handle("/patients/{id}", secure("patient:update", patientHandler.UpdatePatient)).Methods("PUT")
	r.Handle("/patients/{id}", secure("patient:delete", patientHandler.DeletePatient)).Methods("DELETE")

	// Appointment routes. Fixed paths go before the {id} routes so
	// "today" and "upcoming" never match as ids.
	r.Handle("/appointments", secure("appointment:create", appointmentHandler.CreateAppointment)).Methods("POST")
	r.Handle("/appointments", secure("appointment:view", appointmentHandler.ListAppointments)).Methods("GET")
	r.Handle("/appointments/today", secure("appointment:view", appointmentHandler.ListToday)).Methods("GET")
	r.Handle("/appointments/upcoming", secure("appointment:view", appointmentHandler.ListUpcoming)).Methods("GET")
	r.Handle("/appointments/{id}/status", secure("appointment:update", appointmentHandler.UpdateStatus)).Methods("PATCH")
	r.Handle("/appointments/{id}", secure("appointment:view", appointmentHandler.GetAppointment)).Methods("GET")
	r.Handle("/appointments/{id}", secure("appointment:update", appointmentHandler.UpdateAppointment)).Methods("PUT")
	r.Handle("/appointments/{id}", secure("appointment:delete", appointmentHandler.DeleteAppointment)).Methods("DELETE")

	// Billing routes
	r.Handle("/bills", secure("bill:create", billingHandler.CreateBill)).Methods("POST")
	r.Handle("/bills", secure("bill:view", billingHandler.ListBills)).Methods("GET")
	r.Handle("/bills/pending", secure("bill:view", billingHandler.ListPending)).Methods("GET")
	r.Handle("/bills/revenue", secure("report:view", billingHandler.RevenueReport)).Methods("GET")
	r.Handle("/bills/{id}/pay", secure("bill:pay", billingHandler.PayBill)).Methods("POST")
	r.Handle("/bills/{id}/status", secure("bill:update", billingHandler.UpdateStatus)).Methods("PATCH")
	r.Handle("/bills/{id}", secure("bill:view", billingHandler.GetBill)).Methods("GET")
	r.Handle("/bills/{id}", secure("bill:update", billingHandler.UpdateBill)).Methods("PUT")
	r.Handle("/bills/{id}", secure("bill:delete", billingHandler.DeleteBill)).Methods("DELETE")

	// Report routes
	r.Handle("/reports/dashboard", secure("report:view", reportsHandler.Dashboard)).Methods("GET")
	r.Handle("/reports/trend", secure("report:view", reportsHandler.MonthlyTrend)).Methods("GET")
	r.Handle("/reports/appointments.csv", secure("report:export", reportsHandler.ExportAppointments)).Methods("GET")
	r.Handle("/reports/bills.csv", secure("report:export", reportsHandler.ExportBills)).Methods("GET")

	return r
}

// statusRecorder captures the response code for the metrics middleware.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func httpMetricsMiddleware(metrics *telemetry.Metrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			route := r.URL.Path
			if current := mux.CurrentRoute(r); current != nil {
				if tmpl, err := current.GetPathTemplate(); err == nil {
					route = tmpl
				}
			}

			metrics.RecordHTTPRequest(r.Context(), r.Method, route, rec.status,
				float64(time.Since(start).Microseconds())/1000.0)
		})
	}
}
