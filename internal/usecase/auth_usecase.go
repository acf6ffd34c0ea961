package usecase

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"hospital-management-system/internal/converter"
	"hospital-management-system/internal/delivery/dto"
	"hospital-management-system/internal/domain/entity"
	"hospital-management-system/internal/domain/repository"
	"hospital-management-system/internal/service"
	"hospital-management-system/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials   = fmt.Errorf("%w: invalid email or password", ErrUnauthenticated)
	ErrInvalidToken         = fmt.Errorf("%w: invalid or expired token", ErrUnauthenticated)
	ErrTokenRevoked         = fmt.Errorf("%w: token has been revoked", ErrUnauthenticated)
	ErrInvalidAdminKey      = fmt.Errorf("%w: invalid admin registration key", ErrForbidden)
	ErrAccountInactive      = fmt.Errorf("%w: account is not active", ErrForbidden)
	ErrTooManyLoginAttempts = fmt.Errorf("%w: too many failed login attempts, try again later", ErrTooManyAttempts)
)

type AuthUsecase interface {
	// Signup registers a staff account. ADMIN accounts need the admin key.
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	// Logout revokes the access token in use and, when given, the refresh token.
	Logout(ctx context.Context, userID uuid.UUID, accessTokenID, refreshToken string) error
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
}

type authUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	userRepo       repository.UserRepository
	departmentRepo repository.DepartmentRepository
	jwtService     *jwt.JWTService
	tokens         service.TokenStore
	throttle       service.LoginThrottle
	settings       SettingsUsecase
	auditService   service.AuditService
	adminKey       string
	now            func() time.Time
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	departmentRepo repository.DepartmentRepository,
	jwtService *jwt.JWTService,
	tokens service.TokenStore,
	throttle service.LoginThrottle,
	settings SettingsUsecase,
	auditService service.AuditService,
	adminKey string,
) AuthUsecase {
	return &authUsecase{
		db:             db,
		log:            log,
		userRepo:       userRepo,
		departmentRepo: departmentRepo,
		jwtService:     jwtService,
		tokens:         tokens,
		throttle:       throttle,
		settings:       settings,
		auditService:   auditService,
		adminKey:       adminKey,
		now:            time.Now,
	}
}

func (u *authUsecase) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.UserResponse, error) {
	role, err := entity.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}
	if role == entity.RoleAdmin && !u.validAdminKey(req.AdminKey) {
		return nil, ErrInvalidAdminKey
	}

	user, err := newUserFromRequest(&dto.CreateUserRequest{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Password:       req.Password,
		Role:           string(role),
		DepartmentID:   req.DepartmentID,
		PhoneNumber:    req.PhoneNumber,
		Specialization: req.Specialization,
		LicenseNumber:  req.LicenseNumber,
	})
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := insertUser(tx, u.userRepo, u.departmentRepo, user); err != nil {
		u.log.Warnf("Failed to register user: %+v", err)
		return nil, err
	}

	response := converter.UserToResponse(user)

	if err := u.auditService.LogCreate(ctx, tx, &user.ID, entity.AuditActionUserRegister, "user", user.ID.String(), response); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, storeError(err)
	}

	return response, nil
}

func (u *authUsecase) validAdminKey(key string) bool {
	if u.adminKey == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(key), []byte(u.adminKey)) == 1
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	attempts, err := u.throttle.Attempts(ctx, email)
	if err != nil {
		u.log.Warnf("Failed to read login attempts: %+v", err)
		return nil, storeError(err)
	}
	if attempts >= int64(u.settings.MaxLoginAttempts()) {
		return nil, ErrTooManyLoginAttempts
	}

	user, err := u.userRepo.FindByEmail(u.db.WithContext(ctx), email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, storeError(err)
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		if _, err := u.throttle.RecordFailure(ctx, email); err != nil {
			u.log.Warnf("Failed to record login failure: %+v", err)
		}
		return nil, ErrInvalidCredentials
	}
	if user.Status != entity.UserStatusActive {
		return nil, ErrAccountInactive
	}

	if err := u.throttle.Reset(ctx, email); err != nil {
		u.log.Warnf("Failed to reset login attempts: %+v", err)
	}

	tokens, err := u.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	now := u.now()
	user.LastLoginAt = &now
	if err := u.userRepo.Update(u.db.WithContext(ctx), user); err != nil {
		u.log.Warnf("Failed to update last login: %+v", err)
	}

	if err := u.auditService.LogEvent(ctx, u.db, &user.ID, entity.AuditActionUserLogin, entity.JSON{"email": user.Email}); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return tokens, nil
}

func (u *authUsecase) issueTokens(ctx context.Context, user *entity.User) (*dto.TokenResponse, error) {
	sub := jwt.Subject{UserID: user.ID, Email: user.Email, Role: string(user.Role)}

	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(sub)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(sub)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	if err := u.tokens.Store(ctx, jwt.AccessToken, user.ID, accessTokenID, u.jwtService.GetAccessExpiry()); err != nil {
		u.log.Warnf("Failed to store access token: %+v", err)
		return nil, storeError(err)
	}

	if err := u.tokens.Store(ctx, jwt.RefreshToken, user.ID, refreshTokenID, u.jwtService.GetRefreshExpiry()); err != nil {
		u.log.Warnf("Failed to store refresh token: %+v", err)
		return nil, storeError(err)
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}

func (u *authUsecase) Logout(ctx context.Context, userID uuid.UUID, accessTokenID, refreshToken string) error {
	if err := u.tokens.Revoke(ctx, jwt.AccessToken, userID, accessTokenID); err != nil {
		u.log.Warnf("Failed to revoke access token: %+v", err)
		return storeError(err)
	}

	if refreshToken != "" {
		claims, err := u.jwtService.ValidateToken(refreshToken)
		// A refresh token of another user is ignored rather than revoked.
		if err == nil && claims.TokenType == jwt.RefreshToken && claims.UserID == userID {
			if err := u.tokens.Revoke(ctx, jwt.RefreshToken, userID, claims.TokenID); err != nil {
				u.log.Warnf("Failed to revoke refresh token: %+v", err)
				return storeError(err)
			}
		}
	}

	if err := u.auditService.LogEvent(ctx, u.db, &userID, entity.AuditActionUserLogout, nil); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return nil
}

func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	live, err := u.tokens.Exists(ctx, jwt.RefreshToken, claims.UserID, claims.TokenID)
	if err != nil {
		u.log.Warnf("Failed to check refresh token: %+v", err)
		return nil, storeError(err)
	}
	if !live {
		return nil, ErrTokenRevoked
	}

	// Rotate: the presented refresh token is single use.
	if err := u.tokens.Revoke(ctx, jwt.RefreshToken, claims.UserID, claims.TokenID); err != nil {
		u.log.Warnf("Failed to delete old refresh token: %+v", err)
		return nil, storeError(err)
	}

	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), claims.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, storeError(err)
	}
	if user == nil {
		return nil, ErrInvalidToken
	}
	if user.Status != entity.UserStatusActive {
		return nil, ErrAccountInactive
	}

	return u.issueTokens(ctx, user)
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, storeError(err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}
