package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"hospital-management-system/config"
	"hospital-management-system/internal/delivery/dto"
	"hospital-management-system/internal/delivery/http/handler"
	"hospital-management-system/internal/delivery/http/middleware"
	"hospital-management-system/internal/domain/entity"
	"hospital-management-system/internal/usecase"
	"hospital-management-system/pkg/authz"
	"hospital-management-system/pkg/jwt"
	"hospital-management-system/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// anyToken accepts every token id.
type anyToken struct{}

func (anyToken) Store(context.Context, jwt.TokenType, uuid.UUID, string, time.Duration) error {
	return nil
}

func (anyToken) Exists(context.Context, jwt.TokenType, uuid.UUID, string) (bool, error) {
	return true, nil
}

func (anyToken) Revoke(context.Context, jwt.TokenType, uuid.UUID, string) error { return nil }

func (anyToken) RevokeAll(context.Context, uuid.UUID) error { return nil }

type stubAppointments struct {
	usecase.AppointmentUsecase
}

func (stubAppointments) GetMyAppointments(context.Context) (*dto.AppointmentListResponse, error) {
	return &dto.AppointmentListResponse{Appointments: []dto.AppointmentResponse{}}, nil
}

func (stubAppointments) GetAllAppointments(context.Context) (*dto.AppointmentListResponse, error) {
	return &dto.AppointmentListResponse{Appointments: []dto.AppointmentResponse{}}, nil
}

type routerFixture struct {
	router     *mux.Router
	jwtService *jwt.JWTService
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:        "router-secret",
		AccessExpiry:  time.Minute,
		RefreshExpiry: time.Hour,
	})
	authorizer, err := authz.NewAuthorizer(authz.DefaultPolicies)
	require.NoError(t, err)

	v := validator.NewValidator()
	handlers := Handlers{
		Auth:          handler.NewAuthHandler(nil, v),
		User:          handler.NewUserHandler(nil, v),
		Department:    handler.NewDepartmentHandler(nil, v),
		Room:          handler.NewRoomHandler(nil, v),
		Patient:       handler.NewPatientHandler(nil, v),
		Appointment:   handler.NewAppointmentHandler(stubAppointments{}, v),
		MedicalRecord: handler.NewMedicalRecordHandler(nil, v),
		Prescription:  handler.NewPrescriptionHandler(nil, v),
		Statistics:    handler.NewStatisticsHandler(nil),
		Report:        handler.NewReportHandler(nil),
		Settings:      handler.NewSettingsHandler(nil, v),
		Export:        handler.NewExportHandler(nil),
		AuditLog:      handler.NewAuditLogHandler(nil),
	}

	r := NewRouter(
		handlers,
		middleware.NewAuthMiddleware(jwtService, anyToken{}),
		middleware.NewAccessMiddleware(authorizer, log),
		middleware.NewCORSMiddleware(nil),
	)
	return &routerFixture{router: r.Setup(), jwtService: jwtService}
}

func (f *routerFixture) bearer(t *testing.T, role entity.Role) string {
	t.Helper()
	token, _, err := f.jwtService.GenerateAccessToken(jwt.Subject{UserID: uuid.New(), Email: "staff@ppth.org", Role: string(role)})
	require.NoError(t, err)
	return "Bearer " + token
}

func (f *routerFixture) do(method, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", authorization)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

var pathVar = regexp.MustCompile(`\{[^}]+\}`)

type route struct {
	method, path string
}

// routesUnder lists every method route whose template starts with prefix,
// with path variables filled in.
func routesUnder(t *testing.T, r *mux.Router, prefix string) []route {
	t.Helper()
	var routes []route
	err := r.Walk(func(rt *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		tpl, err := rt.GetPathTemplate()
		if err != nil || !strings.HasPrefix(tpl, prefix) {
			return nil
		}
		methods, err := rt.GetMethods()
		if err != nil {
			return nil
		}
		path := pathVar.ReplaceAllString(tpl, uuid.NewString())
		for _, m := range methods {
			routes = append(routes, route{method: m, path: path})
		}
		return nil
	})
	require.NoError(t, err)
	return routes
}

func TestAdminRoutesRejectDoctors(t *testing.T) {
	f := newRouterFixture(t)
	doctor := f.bearer(t, entity.RoleDoctor)

	routes := routesUnder(t, f.router, "/api/v1/admin/")
	require.Greater(t, len(routes), 40)

	for _, rt := range routes {
		rec := f.do(rt.method, rt.path, doctor)
		assert.Equal(t, http.StatusForbidden, rec.Code, "%s %s", rt.method, rt.path)
	}
}

func TestExportRejectsDoctors(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(http.MethodGet, "/api/v1/export/patients/csv", f.bearer(t, entity.RoleDoctor))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAppointmentRoutesByRole(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(http.MethodGet, "/api/v1/admin/appointments", f.bearer(t, entity.RoleAdmin))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodGet, "/api/v1/doctor/appointments", f.bearer(t, entity.RoleDoctor))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodGet, "/api/v1/admin/appointments", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
