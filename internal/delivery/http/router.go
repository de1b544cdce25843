package http

import (
	"net/http"

	"online-health-consultation/internal/delivery/http/handler"
	"online-health-consultation/internal/delivery/http/middleware"
	"online-health-consultation/pkg/metrics"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	profileHandler      *handler.ProfileHandler
	doctorHandler       *handler.DoctorHandler
	appointmentHandler  *handler.AppointmentHandler
	recordHandler       *handler.RecordHandler
	prescriptionHandler *handler.PrescriptionHandler
	articleHandler      *handler.ArticleHandler
	consultationHandler *handler.ConsultationHandler
	emergencyHandler    *handler.EmergencyHandler
	dashboardHandler    *handler.DashboardHandler
	auditLogHandler     *handler.AuditLogHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
	loggingMiddleware   *middleware.LoggingMiddleware
	rateLimitMiddleware *middleware.RateLimitMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	doctorHandler *handler.DoctorHandler,
	appointmentHandler *handler.AppointmentHandler,
	recordHandler *handler.RecordHandler,
	prescriptionHandler *handler.PrescriptionHandler,
	articleHandler *handler.ArticleHandler,
	consultationHandler *handler.ConsultationHandler,
	emergencyHandler *handler.EmergencyHandler,
	dashboardHandler *handler.DashboardHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
	rateLimitMiddleware *middleware.RateLimitMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		profileHandler:      profileHandler,
		doctorHandler:       doctorHandler,
		appointmentHandler:  appointmentHandler,
		recordHandler:       recordHandler,
		prescriptionHandler: prescriptionHandler,
		articleHandler:      articleHandler,
		consultationHandler: consultationHandler,
		emergencyHandler:    emergencyHandler,
		dashboardHandler:    dashboardHandler,
		auditLogHandler:     auditLogHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
		loggingMiddleware:   loggingMiddleware,
		rateLimitMiddleware: rateLimitMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// Prometheus scrape endpoint
	r.router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Articles (public). Categories must be registered before the slug route.
	api.HandleFunc("/articles", r.articleHandler.ListArticles).Methods(http.MethodGet)
	api.HandleFunc("/articles/", r.articleHandler.ListArticles).Methods(http.MethodGet)
	api.HandleFunc("/articles/categories", r.articleHandler.ListCategories).Methods(http.MethodGet)
	api.HandleFunc("/articles/{slug}", r.articleHandler.GetArticle).Methods(http.MethodGet)

	// Emergency intake (public, rate limited)
	emergency := api.PathPrefix("/emergency").Subrouter()
	emergency.Use(r.rateLimitMiddleware.Limit)
	emergency.HandleFunc("/contact", r.emergencyHandler.SubmitEmergency).Methods(http.MethodPost)

	// Everything below requires a valid access token
	protected := api.NewRoute().Subrouter()
	protected.Use(r.authMiddleware.Authenticate)

	protected.HandleFunc("/auth/logout", r.authHandler.Logout).Methods(http.MethodPost)
	protected.HandleFunc("/auth/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	protected.HandleFunc("/profile", r.profileHandler.GetProfile).Methods(http.MethodGet)
	protected.HandleFunc("/profile", r.profileHandler.UpdateProfile).Methods(http.MethodPut)

	protected.HandleFunc("/doctors", r.doctorHandler.SearchDoctors).Methods(http.MethodGet)
	protected.HandleFunc("/doctors/{id}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)

	protected.HandleFunc("/questions", r.consultationHandler.ListQuestions).Methods(http.MethodGet)
	protected.HandleFunc("/questions/{id}", r.consultationHandler.GetQuestion).Methods(http.MethodGet)
	protected.HandleFunc("/tips", r.consultationHandler.ListTips).Methods(http.MethodGet)

	// Patient routes
	patient := protected.NewRoute().Subrouter()
	patient.Use(middleware.RequirePatient)

	patient.HandleFunc("/dashboard", r.dashboardHandler.PatientDashboard).Methods(http.MethodGet)

	patient.HandleFunc("/appointments", r.appointmentHandler.GetMyAppointments).Methods(http.MethodGet)
	patient.HandleFunc("/appointments/book", r.appointmentHandler.BookAppointment).Methods(http.MethodPost)
	patient.HandleFunc("/appointments/cancel/{id}", r.appointmentHandler.CancelAppointment).Methods(http.MethodPost)

	patient.HandleFunc("/records", r.recordHandler.GetMyRecords).Methods(http.MethodGet)
	patient.HandleFunc("/records/upload", r.recordHandler.UploadRecord).Methods(http.MethodPost)
	patient.HandleFunc("/records/{id}", r.recordHandler.GetRecord).Methods(http.MethodGet)

	patient.HandleFunc("/prescriptions", r.prescriptionHandler.GetMyPrescriptions).Methods(http.MethodGet)
	patient.HandleFunc("/prescriptions/{id}", r.prescriptionHandler.GetMyPrescription).Methods(http.MethodGet)

	patient.HandleFunc("/questions", r.consultationHandler.AskQuestion).Methods(http.MethodPost)

	// Authoring (doctor or admin)
	authors := protected.NewRoute().Subrouter()
	authors.Use(middleware.RequireAdminOrDoctor)
	authors.HandleFunc("/articles", r.articleHandler.CreateArticle).Methods(http.MethodPost)

	// Doctor actions outside the /doctor prefix
	doctorActions := protected.NewRoute().Subrouter()
	doctorActions.Use(middleware.RequireDoctor)
	doctorActions.HandleFunc("/questions/{id}/answer", r.consultationHandler.AnswerQuestion).Methods(http.MethodPost)
	doctorActions.HandleFunc("/tips", r.consultationHandler.CreateTip).Methods(http.MethodPost)

	// Doctor routes
	doctor := protected.PathPrefix("/doctor").Subrouter()
	doctor.Use(middleware.RequireDoctor)

	doctor.HandleFunc("/dashboard", r.dashboardHandler.DoctorDashboard).Methods(http.MethodGet)
	doctor.HandleFunc("/availability", r.doctorHandler.GetAvailability).Methods(http.MethodGet)
	doctor.HandleFunc("/availability", r.doctorHandler.UpdateAvailability).Methods(http.MethodPut)

	doctor.HandleFunc("/appointments", r.appointmentHandler.GetDoctorAppointments).Methods(http.MethodGet)
	doctor.HandleFunc("/consultations", r.appointmentHandler.GetDoctorAppointments).Methods(http.MethodGet)
	doctor.HandleFunc("/appointments/confirm/{id}", r.appointmentHandler.ConfirmAppointment).Methods(http.MethodPost)
	doctor.HandleFunc("/appointments/complete/{id}", r.appointmentHandler.CompleteAppointment).Methods(http.MethodPost)
	doctor.HandleFunc("/appointments/no-show/{id}", r.appointmentHandler.MarkNoShow).Methods(http.MethodPost)

	doctor.HandleFunc("/prescriptions", r.prescriptionHandler.GetDoctorPrescriptions).Methods(http.MethodGet)
	doctor.HandleFunc("/prescriptions", r.prescriptionHandler.CreatePrescription).Methods(http.MethodPost)
	doctor.HandleFunc("/prescriptions/{id}/deactivate", r.prescriptionHandler.DeactivatePrescription).Methods(http.MethodPost)

	// Admin routes (protected - admin only)
	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAdmin)

	admin.HandleFunc("/users", r.profileHandler.ListUsers).Methods(http.MethodGet)
	admin.HandleFunc("/profiles/backfill", r.profileHandler.BackfillProfiles).Methods(http.MethodPost)

	admin.HandleFunc("/appointments", r.appointmentHandler.GetAllAppointments).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{id}/status", r.appointmentHandler.UpdateAppointmentStatus).Methods(http.MethodPatch)

	admin.HandleFunc("/emergencies", r.emergencyHandler.ListEmergencies).Methods(http.MethodGet)
	admin.HandleFunc("/emergencies/{id}/resolve", r.emergencyHandler.ResolveEmergency).Methods(http.MethodPost)

	admin.HandleFunc("/categories", r.articleHandler.CreateCategory).Methods(http.MethodPost)

	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	r.router.Use(r.loggingMiddleware.Handle)
	r.router.Use(metrics.Middleware)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
