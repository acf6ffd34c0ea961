package usecase

import (
	"context"
	"testing"
	"time"

	"hospital-management-system/internal/delivery/dto"
	"hospital-management-system/internal/delivery/http/middleware"
	"hospital-management-system/internal/domain/entity"
	"hospital-management-system/internal/repository/memory"
	"hospital-management-system/internal/service"
	"hospital-management-system/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userFixture struct {
	usecase UserUsecase
	users   *memory.UserRepository
	tokens  *fakeTokenStore
}

func newUserFixture(t *testing.T, users ...*entity.User) *userFixture {
	t.Helper()
	log := quietLogger()
	userRepo := memory.NewUserRepository(users...)
	tokens := newFakeTokenStore()
	uc := NewUserUsecase(newTestDB(t), log, userRepo, memory.NewDepartmentRepository(),
		service.NewAuditService(log, memory.NewAuditLogRepository()), tokens)
	return &userFixture{usecase: uc, users: userRepo, tokens: tokens}
}

func TestCreateUser(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()

	res, err := f.usecase.CreateUser(ctx, &dto.CreateUserRequest{
		FirstName: "James",
		LastName:  "Wilson",
		Email:     "Wilson@PPTH.org",
		Password:  "oncology",
		Role:      "doctor",
	})
	require.NoError(t, err)
	assert.Equal(t, "wilson@ppth.org", res.Email)
	assert.Equal(t, string(entity.UserStatusActive), res.Status)

	_, err = f.usecase.CreateUser(ctx, &dto.CreateUserRequest{Email: "wilson@ppth.org", Password: "secret", Role: "DOCTOR"})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)

	missing := uuid.New()
	_, err = f.usecase.CreateUser(ctx, &dto.CreateUserRequest{Email: "new@ppth.org", Password: "secret", Role: "DOCTOR", DepartmentID: &missing})
	assert.ErrorIs(t, err, ErrDepartmentNotFound)

	_, err = f.usecase.CreateUser(ctx, &dto.CreateUserRequest{Email: "new@ppth.org", Password: "secret", Role: "DOCTOR", Status: "ON_LEAVE"})
	assert.ErrorIs(t, err, ErrInvalidEnumValue)
}

func TestGetDoctors(t *testing.T) {
	f := newUserFixture(t,
		&entity.User{ID: uuid.New(), Email: "b@x.com", LastName: "Wilson", Role: entity.RoleDoctor},
		&entity.User{ID: uuid.New(), Email: "a@x.com", LastName: "Cuddy", Role: entity.RoleAdmin},
		&entity.User{ID: uuid.New(), Email: "c@x.com", LastName: "House", Role: entity.RoleDoctor},
	)

	res, err := f.usecase.GetDoctors(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, res.Total)
	assert.Equal(t, "House", res.Users[0].LastName)
	assert.Equal(t, "Wilson", res.Users[1].LastName)
}

func TestUpdateUserStatus_RevokesSessions(t *testing.T) {
	user := &entity.User{ID: uuid.New(), Email: "house@x.com", Role: entity.RoleDoctor, Status: entity.UserStatusActive}
	f := newUserFixture(t, user)
	ctx := context.Background()
	require.NoError(t, f.tokens.Store(ctx, jwt.AccessToken, user.ID, "a1", time.Minute))
	require.NoError(t, f.tokens.Store(ctx, jwt.RefreshToken, user.ID, "r1", time.Hour))

	res, err := f.usecase.UpdateUserStatus(ctx, user.ID, entity.UserStatusSuspended)
	require.NoError(t, err)
	assert.Equal(t, string(entity.UserStatusSuspended), res.Status)
	assert.Zero(t, f.tokens.count(user.ID))

	_, err = f.usecase.UpdateUserStatus(ctx, uuid.New(), entity.UserStatusActive)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateUserStatus_ActivationKeepsSessions(t *testing.T) {
	user := &entity.User{ID: uuid.New(), Email: "house@x.com", Role: entity.RoleDoctor, Status: entity.UserStatusPendingApproval}
	f := newUserFixture(t, user)
	ctx := context.Background()
	require.NoError(t, f.tokens.Store(ctx, jwt.AccessToken, user.ID, "a1", time.Minute))

	_, err := f.usecase.UpdateUserStatus(ctx, user.ID, entity.UserStatusActive)
	require.NoError(t, err)
	assert.Equal(t, 1, f.tokens.count(user.ID))
}

func TestDeleteUser(t *testing.T) {
	admin := &entity.User{ID: uuid.New(), Email: "cuddy@x.com", Role: entity.RoleAdmin}
	doctor := &entity.User{ID: uuid.New(), Email: "house@x.com", Role: entity.RoleDoctor}
	f := newUserFixture(t, admin, doctor)
	ctx := middleware.WithUser(context.Background(), admin.ID, admin.Email, admin.Role)
	require.NoError(t, f.tokens.Store(ctx, jwt.RefreshToken, doctor.ID, "r1", time.Hour))

	err := f.usecase.DeleteUser(ctx, admin.ID)
	assert.ErrorIs(t, err, ErrDeleteSelf)
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, f.usecase.DeleteUser(ctx, doctor.ID))
	assert.Zero(t, f.tokens.count(doctor.ID))

	_, err = f.usecase.GetUser(ctx, doctor.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
