package http

import (
	"net/http"

	"hospital-management-system/internal/delivery/http/handler"
	"hospital-management-system/internal/delivery/http/middleware"
	"hospital-management-system/pkg/authz"

	"github.com/gorilla/mux"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth          *handler.AuthHandler
	User          *handler.UserHandler
	Department    *handler.DepartmentHandler
	Room          *handler.RoomHandler
	Patient       *handler.PatientHandler
	Appointment   *handler.AppointmentHandler
	MedicalRecord *handler.MedicalRecordHandler
	Prescription  *handler.PrescriptionHandler
	Statistics    *handler.StatisticsHandler
	Report        *handler.ReportHandler
	Settings      *handler.SettingsHandler
	Export        *handler.ExportHandler
	AuditLog      *handler.AuditLogHandler
}

type Router struct {
	router           *mux.Router
	handlers         Handlers
	authMiddleware   *middleware.AuthMiddleware
	accessMiddleware *middleware.AccessMiddleware
	corsMiddleware   *middleware.CORSMiddleware
}

func NewRouter(
	handlers Handlers,
	authMiddleware *middleware.AuthMiddleware,
	accessMiddleware *middleware.AccessMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:           mux.NewRouter(),
		handlers:         handlers,
		authMiddleware:   authMiddleware,
		accessMiddleware: accessMiddleware,
		corsMiddleware:   corsMiddleware,
	}
}

// guarded mounts routes on a subrouter where every handler first passes the
// capability check for its resource and action.
type guarded struct {
	router *mux.Router
	access *middleware.AccessMiddleware
	admin  bool
}

func (g guarded) handle(method, path string, resource authz.Resource, action authz.Action, h http.HandlerFunc) {
	if g.admin {
		resource = authz.AdminScope(resource)
	}
	g.router.Handle(path, g.access.AuthorizeFunc(resource, action, h)).Methods(method)
}

func (r *Router) protected(prefix string) guarded {
	sub := r.router.PathPrefix("/api/v1" + prefix).Subrouter()
	sub.Use(r.authMiddleware.Authenticate)
	return guarded{router: sub, access: r.accessMiddleware}
}

// administrative is protected with every resource checked in its admin
// scope, so clinical grants held by doctors do not open these routes.
func (r *Router) administrative(prefix string) guarded {
	g := r.protected(prefix)
	g.admin = true
	return g
}

func (r *Router) Setup() *mux.Router {
	h := r.handlers

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/signup", h.Auth.Signup).Methods(http.MethodPost)
	auth.HandleFunc("/login", h.Auth.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", h.Auth.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", h.Auth.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", h.Auth.GetCurrentUser).Methods(http.MethodGet)

	admin := r.administrative("/admin")

	// User management
	admin.handle(http.MethodPost, "/users", authz.ResourceUsers, authz.ActionCreate, h.User.CreateUser)
	admin.handle(http.MethodGet, "/users", authz.ResourceUsers, authz.ActionRead, h.User.GetAllUsers)
	admin.handle(http.MethodGet, "/users/doctors", authz.ResourceUsers, authz.ActionRead, h.User.GetDoctors)
	admin.handle(http.MethodGet, "/users/{id}", authz.ResourceUsers, authz.ActionRead, h.User.GetUser)
	admin.handle(http.MethodPatch, "/users/{id}/status", authz.ResourceUsers, authz.ActionUpdate, h.User.UpdateUserStatus)
	admin.handle(http.MethodDelete, "/users/{id}", authz.ResourceUsers, authz.ActionDelete, h.User.DeleteUser)

	// Department management
	admin.handle(http.MethodPost, "/departments", authz.ResourceDepartments, authz.ActionCreate, h.Department.CreateDepartment)
	admin.handle(http.MethodGet, "/departments", authz.ResourceDepartments, authz.ActionRead, h.Department.GetAllDepartments)
	admin.handle(http.MethodGet, "/departments/{id}", authz.ResourceDepartments, authz.ActionRead, h.Department.GetDepartment)
	admin.handle(http.MethodGet, "/departments/{id}/doctor-count", authz.ResourceDepartments, authz.ActionRead, h.Department.CountDoctors)
	admin.handle(http.MethodPatch, "/departments/{id}/status", authz.ResourceDepartments, authz.ActionUpdate, h.Department.UpdateDepartmentStatus)
	admin.handle(http.MethodDelete, "/departments/{id}", authz.ResourceDepartments, authz.ActionDelete, h.Department.DeleteDepartment)

	// Room management
	admin.handle(http.MethodPost, "/rooms", authz.ResourceRooms, authz.ActionCreate, h.Room.CreateRoom)
	admin.handle(http.MethodGet, "/rooms", authz.ResourceRooms, authz.ActionRead, h.Room.GetAllRooms)
	admin.handle(http.MethodGet, "/rooms/{id}", authz.ResourceRooms, authz.ActionRead, h.Room.GetRoom)
	admin.handle(http.MethodPatch, "/rooms/{id}/status", authz.ResourceRooms, authz.ActionUpdate, h.Room.UpdateRoomStatus)
	admin.handle(http.MethodPost, "/rooms/{id}/assign", authz.ResourceRooms, authz.ActionUpdate, h.Room.AssignPatient)
	admin.handle(http.MethodPost, "/rooms/{id}/release", authz.ResourceRooms, authz.ActionUpdate, h.Room.ReleaseRoom)
	admin.handle(http.MethodPost, "/rooms/{id}/clean", authz.ResourceRooms, authz.ActionUpdate, h.Room.MarkCleaned)
	admin.handle(http.MethodDelete, "/rooms/{id}", authz.ResourceRooms, authz.ActionDelete, h.Room.DeleteRoom)

	// Patient management
	admin.handle(http.MethodGet, "/patients", authz.ResourcePatients, authz.ActionRead, h.Patient.FilterPatients)
	admin.handle(http.MethodGet, "/patients/next-id", authz.ResourcePatients, authz.ActionRead, h.Patient.NextPatientIdentifier)
	admin.handle(http.MethodPost, "/patients", authz.ResourcePatients, authz.ActionCreate, h.Patient.CreatePatient)
	admin.handle(http.MethodGet, "/patients/{id}", authz.ResourcePatients, authz.ActionRead, h.Patient.GetPatient)
	admin.handle(http.MethodPut, "/patients/{id}", authz.ResourcePatients, authz.ActionUpdate, h.Patient.UpdatePatient)
	admin.handle(http.MethodPatch, "/patients/{id}/status", authz.ResourcePatients, authz.ActionUpdate, h.Patient.UpdatePatientStatus)
	admin.handle(http.MethodDelete, "/patients/{id}", authz.ResourcePatients, authz.ActionDelete, h.Patient.DeletePatient)

	// Clinical data overview
	admin.handle(http.MethodGet, "/appointments", authz.ResourceAppointments, authz.ActionRead, h.Appointment.GetAllAppointments)

	// Statistics, reports and dashboard
	admin.handle(http.MethodGet, "/statistics/patients", authz.ResourceStatistics, authz.ActionRead, h.Statistics.PatientStatistics)
	admin.handle(http.MethodGet, "/statistics/patients/new", authz.ResourceStatistics, authz.ActionRead, h.Statistics.NewPatients)
	admin.handle(http.MethodGet, "/statistics/{entity}/{field}", authz.ResourceStatistics, authz.ActionRead, h.Statistics.ComputeStatistics)
	admin.handle(http.MethodGet, "/reports/system/pdf", authz.ResourceReports, authz.ActionRead, h.Report.SystemReportPDF)
	admin.handle(http.MethodGet, "/reports/{name}", authz.ResourceReports, authz.ActionRead, h.Report.GenerateReport)
	admin.handle(http.MethodGet, "/dashboard", authz.ResourceDashboard, authz.ActionRead, h.Statistics.AdminDashboard)
	admin.handle(http.MethodGet, "/database/statistics", authz.ResourceSystem, authz.ActionRead, h.Statistics.DatabaseStatistics)

	// Settings
	admin.handle(http.MethodGet, "/settings", authz.ResourceSettings, authz.ActionRead, h.Settings.GetAll)
	admin.handle(http.MethodPut, "/settings", authz.ResourceSettings, authz.ActionUpdate, h.Settings.UpdateMany)
	admin.handle(http.MethodGet, "/settings/export", authz.ResourceSettings, authz.ActionRead, h.Settings.Export)
	admin.handle(http.MethodPost, "/settings/import", authz.ResourceSettings, authz.ActionUpdate, h.Settings.Import)
	admin.handle(http.MethodPost, "/settings/reset", authz.ResourceSettings, authz.ActionUpdate, h.Settings.Reset)
	admin.handle(http.MethodGet, "/settings/keys/{key}", authz.ResourceSettings, authz.ActionRead, h.Settings.Get)
	admin.handle(http.MethodGet, "/settings/{category}", authz.ResourceSettings, authz.ActionRead, h.Settings.GetCategory)
	admin.handle(http.MethodPut, "/settings/{category}/{key}", authz.ResourceSettings, authz.ActionUpdate, h.Settings.Update)
	admin.handle(http.MethodGet, "/system-info", authz.ResourceSystem, authz.ActionRead, h.Settings.SystemInfo)

	// Audit logs
	admin.handle(http.MethodGet, "/audit-logs", authz.ResourceAuditLogs, authz.ActionRead, h.AuditLog.GetAllAuditLogs)
	admin.handle(http.MethodGet, "/audit-logs/{id}", authz.ResourceAuditLogs, authz.ActionRead, h.AuditLog.GetAuditLog)

	doctor := r.protected("/doctor")

	doctor.handle(http.MethodGet, "/dashboard", authz.ResourceDashboard, authz.ActionRead, h.Statistics.DoctorDashboard)

	doctor.handle(http.MethodGet, "/patients", authz.ResourcePatients, authz.ActionRead, h.Patient.GetMyPatients)
	doctor.handle(http.MethodPost, "/patients", authz.ResourcePatients, authz.ActionCreate, h.Patient.AddPatient)
	doctor.handle(http.MethodGet, "/patients/{id}", authz.ResourcePatients, authz.ActionRead, h.Patient.GetPatient)
	doctor.handle(http.MethodGet, "/patients/{patientId}/medical-records", authz.ResourceMedicalRecords, authz.ActionRead, h.MedicalRecord.GetPatientRecords)
	doctor.handle(http.MethodGet, "/patients/{patientId}/prescriptions", authz.ResourcePrescriptions, authz.ActionRead, h.Prescription.GetPatientPrescriptions)

	doctor.handle(http.MethodPost, "/appointments", authz.ResourceAppointments, authz.ActionCreate, h.Appointment.ScheduleAppointment)
	doctor.handle(http.MethodGet, "/appointments", authz.ResourceAppointments, authz.ActionRead, h.Appointment.GetMyAppointments)
	doctor.handle(http.MethodGet, "/appointments/{id}", authz.ResourceAppointments, authz.ActionRead, h.Appointment.GetAppointment)
	doctor.handle(http.MethodPut, "/appointments/{id}", authz.ResourceAppointments, authz.ActionUpdate, h.Appointment.UpdateAppointment)

	doctor.handle(http.MethodPost, "/medical-records", authz.ResourceMedicalRecords, authz.ActionCreate, h.MedicalRecord.CreateRecord)
	doctor.handle(http.MethodGet, "/medical-records", authz.ResourceMedicalRecords, authz.ActionRead, h.MedicalRecord.GetMyRecords)
	doctor.handle(http.MethodGet, "/medical-records/{id}", authz.ResourceMedicalRecords, authz.ActionRead, h.MedicalRecord.GetRecord)
	doctor.handle(http.MethodPut, "/medical-records/{id}", authz.ResourceMedicalRecords, authz.ActionUpdate, h.MedicalRecord.UpdateRecord)

	doctor.handle(http.MethodPost, "/prescriptions", authz.ResourcePrescriptions, authz.ActionCreate, h.Prescription.CreatePrescription)
	doctor.handle(http.MethodGet, "/prescriptions", authz.ResourcePrescriptions, authz.ActionRead, h.Prescription.GetMyPrescriptions)
	doctor.handle(http.MethodGet, "/prescriptions/{id}", authz.ResourcePrescriptions, authz.ActionRead, h.Prescription.GetPrescription)
	doctor.handle(http.MethodPatch, "/prescriptions/{id}/status", authz.ResourcePrescriptions, authz.ActionUpdate, h.Prescription.UpdatePrescriptionStatus)

	export := r.protected("/export")
	export.handle(http.MethodGet, "/{entity}/{format}", authz.ResourceExport, authz.ActionRead, h.Export.Export)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
