package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/emrekoc/schoolforum/internal/app/models"
	"github.com/emrekoc/schoolforum/internal/app/models/dto"
	"github.com/emrekoc/schoolforum/internal/app/repositories"
	"github.com/emrekoc/schoolforum/internal/pkg/apperrors"
	"github.com/emrekoc/schoolforum/internal/pkg/auth"
	"github.com/emrekoc/schoolforum/internal/pkg/validation"
)

type authService struct {
	userRepo   repositories.IUserRepository
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repositories.IUserRepository, jwtService *auth.JWTService, logger zerolog.Logger) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// validateRegistration checks field formats and the role-conditional fields:
// students need a grade, teachers a subject, admins neither.
func validateRegistration(req *dto.RegisterRequest) (models.Role, error) {
	verrs := apperrors.NewValidationErrors()

	if !validation.IsValidUsername(req.Username) {
		verrs.Add("username", "username must be 3-30 characters of letters, digits or underscores")
	}
	if !validation.IsValidEmail(req.Email) {
		verrs.Add("email", "invalid email format")
	}
	if !validation.IsValidPassword(req.Password) {
		verrs.Add("password", "password must be at least 8 characters with a letter and a digit")
	}
	if !validation.IsValidName(req.FirstName) {
		verrs.Add("firstName", "first name must be 2-100 characters")
	}
	if !validation.IsValidName(req.LastName) {
		verrs.Add("lastName", "last name must be 2-100 characters")
	}

	role := models.RoleStudent
	if req.Role != "" {
		role = models.Role(req.Role)
		if !role.IsValid() {
			verrs.Add("role", "role must be STUDENT, TEACHER or ADMIN")
			return "", verrs
		}
	}

	switch role {
	case models.RoleStudent:
		if req.Grade == nil {
			verrs.Add("grade", "grade is required for students")
		}
	case models.RoleTeacher:
		if req.Subject == nil || *req.Subject == "" {
			verrs.Add("subject", "subject is required for teachers")
		}
	case models.RoleAdmin:
		// no role-conditional fields
	}

	if verrs.HasErrors() {
		return "", verrs
	}
	return role, nil
}

// Register creates a new user account and issues a token. The uniqueness
// pre-checks are not atomic against concurrent registrations; the storage
// constraints are the authoritative guard and surface as conflict errors.
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	role, err := validateRegistration(req)
	if err != nil {
		return nil, err
	}

	email := validation.NormalizeEmail(req.Email)

	exists, err := s.userRepo.UsernameExists(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("error checking username existence: %w", err)
	}
	if exists {
		return nil, apperrors.ErrUsernameAlreadyExists
	}

	exists, err = s.userRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error checking email existence: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Username:  req.Username,
		Email:     email,
		Password:  hash,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      role,
		Grade:     req.Grade,
		Subject:   req.Subject,
	}
	if role != models.RoleStudent {
		user.Grade = nil
	}
	if role != models.RoleTeacher {
		user.Subject = nil
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, _, err := s.jwtService.GenerateToken(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	s.logger.Info().Int64("userID", user.ID).Str("role", string(user.Role)).Msg("User registered")

	return &dto.AuthResponse{Token: token, User: dto.FromUser(user)}, nil
}

// Login authenticates by email and password. Unknown email and wrong
// password both return ErrInvalidCredentials so accounts cannot be
// enumerated.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := validation.NormalizeEmail(req.Email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		// Login still succeeds; the stale timestamp is logged only
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to refresh last login timestamp")
	}

	token, _, err := s.jwtService.GenerateToken(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	return &dto.AuthResponse{Token: token, User: dto.FromUser(user)}, nil
}
