package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/emrekoc/schoolforum/internal/app/models"
	"github.com/emrekoc/schoolforum/internal/app/models/dto"
	"github.com/emrekoc/schoolforum/internal/app/services"
	"github.com/emrekoc/schoolforum/internal/pkg/apperrors"
	pkgAuth "github.com/emrekoc/schoolforum/internal/pkg/auth"
)

func newTestJWTService() *pkgAuth.JWTService {
	return pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      "test-secret-key",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "test-issuer",
	})
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func validRegisterRequest() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Username:  "jdoe",
		Email:     "jdoe@school.edu",
		Password:  "Secret123",
		FirstName: "John",
		LastName:  "Doe",
		Grade:     intPtr(9),
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("successful student registration", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := services.NewAuthService(userRepo, newTestJWTService(), zerolog.Nop())

		userRepo.On("UsernameExists", ctx, "jdoe").Return(false, nil)
		userRepo.On("EmailExists", ctx, "jdoe@school.edu").Return(false, nil)
		userRepo.On("Create", ctx, mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
			args.Get(1).(*models.User).ID = 42
		}).Return(nil)

		resp, err := svc.Register(ctx, validRegisterRequest())
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, int64(42), resp.User.ID)
		assert.Equal(t, "STUDENT", resp.User.Role)
		require.NotNil(t, resp.User.Grade)
		assert.Equal(t, 9, *resp.User.Grade)
		userRepo.AssertExpectations(t)
	})

	t.Run("email is normalized to lowercase", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := services.NewAuthService(userRepo, newTestJWTService(), zerolog.Nop())

		userRepo.On("UsernameExists", ctx, "jdoe").Return(false, nil)
		userRepo.On("EmailExists", ctx, "jdoe@school.edu").Return(false, nil)
		userRepo.On("Create", ctx, mock.MatchedBy(func(u *models.User) bool {
			return u.Email == "jdoe@school.edu"
		})).Return(nil)

		req := validRegisterRequest()
		req.Email = "JDoe@School.EDU"
		_, err := svc.Register(ctx, req)
		require.NoError(t, err)
		userRepo.AssertExpectations(t)
	})

	t.Run("student without grade is rejected", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := services.NewAuthService(userRepo, newTestJWTService(), zerolog.Nop())

		req := validRegisterRequest()
		req.Grade = nil
		_, err := svc.Register(ctx, req)
		require.Error(t, err)

		var verrs *apperrors.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		userRepo.AssertNotCalled(t, "Create")
	})

	t.Run("teacher without subject is rejected", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := services.NewAuthService(userRepo, newTestJWTService(), zerolog.Nop())

		req := validRegisterRequest()
		req.Role = "TEACHER"
		req.Subject = nil
		_, err := svc.Register(ctx, req)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("teacher registration drops the grade field", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := services.NewAuthService(userRepo, newTestJWTService(), zerolog.Nop())

		userRepo.On("UsernameExists", ctx, mock.Anything).Return(false, nil)
		userRepo.On("EmailExists", ctx, mock.Anything).Return(false, nil)
		userRepo.On("Create", ctx, mock.MatchedBy(func(u *models.User) bool {
			return u.Role == models.RoleTeacher && u.Grade == nil && u.Subject != nil
		})).Return(nil)

		req := validRegisterRequest()
		req.Role = "TEACHER"
		req.Subject = strPtr("Math")
		req.Grade = intPtr(9) // must be ignored for teachers
		_, err := svc.Register(ctx, req)
		require.NoError(t, err)
		userRepo.AssertExpectations(t)
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := services.NewAuthService(userRepo, newTestJWTService(), zerolog.Nop())

		req := validRegisterRequest()
		req.Role = "PRINCIPAL"
		_, err := svc.Register(ctx, req)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("duplicate username", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := services.NewAuthService(userRepo, newTestJWTService(), zerolog.Nop())

		userRepo.On("UsernameExists", ctx, "jdoe").Return(true, nil)

		_, err := svc.Register(ctx, validRegisterRequest())
		assert.ErrorIs(t, err, apperrors.ErrUsernameAlreadyExists)
		userRepo.AssertNotCalled(t, "Create")
	})

	t.Run("duplicate email", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := services.NewAuthService(userRepo, newTestJWTService(), zerolog.Nop())

		userRepo.On("UsernameExists", ctx, "jdoe").Return(false, nil)
		userRepo.On("EmailExists", ctx, "jdoe@school.edu").Return(true, nil)

		_, err := svc.Register(ctx, validRegisterRequest())
		assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
		userRepo.AssertNotCalled(t, "Create")
	})

	t.Run("weak password is rejected", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := services.NewAuthService(userRepo, newTestJWTService(), zerolog.Nop())

		req := validRegisterRequest()
		req.Password = "short"
		_, err := svc.Register(ctx, req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	hash, err := pkgAuth.HashPassword("Secret123")
	require.NoError(t, err)

	activeUser := func() *models.User {
		return &models.User{
			ID:       7,
			Username: "jdoe",
			Email:    "jdoe@school.edu",
			Password: hash,
			Role:     models.RoleStudent,
			IsActive: true,
		}
	}

	t.Run("successful login", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := services.NewAuthService(userRepo, newTestJWTService(), zerolog.Nop())

		userRepo.On("GetByEmail", ctx, "jdoe@school.edu").Return(activeUser(), nil)
		userRepo.On("UpdateLastLogin", ctx, int64(7)).Return(nil)

		resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "jdoe@school.edu", Password: "Secret123"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, int64(7), resp.User.ID)
		userRepo.AssertExpectations(t)
	})

	t.Run("unknown email yields invalid credentials", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := services.NewAuthService(userRepo, newTestJWTService(), zerolog.Nop())

		userRepo.On("GetByEmail", ctx, "nobody@school.edu").Return(nil, apperrors.ErrUserNotFound)

		_, err := svc.Login(ctx, &dto.LoginRequest{Email: "nobody@school.edu", Password: "Secret123"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("wrong password yields the same invalid credentials error", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := services.NewAuthService(userRepo, newTestJWTService(), zerolog.Nop())

		userRepo.On("GetByEmail", ctx, "jdoe@school.edu").Return(activeUser(), nil)

		_, err := svc.Login(ctx, &dto.LoginRequest{Email: "jdoe@school.edu", Password: "WrongPass1"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("disabled account is rejected after password check", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := services.NewAuthService(userRepo, newTestJWTService(), zerolog.Nop())

		disabled := activeUser()
		disabled.IsActive = false
		userRepo.On("GetByEmail", ctx, "jdoe@school.edu").Return(disabled, nil)

		_, err := svc.Login(ctx, &dto.LoginRequest{Email: "jdoe@school.edu", Password: "Secret123"})
		assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
	})

	t.Run("last login update failure does not fail login", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := services.NewAuthService(userRepo, newTestJWTService(), zerolog.Nop())

		userRepo.On("GetByEmail", ctx, "jdoe@school.edu").Return(activeUser(), nil)
		userRepo.On("UpdateLastLogin", ctx, int64(7)).Return(errors.New("connection reset"))

		resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "jdoe@school.edu", Password: "Secret123"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
	})
}
