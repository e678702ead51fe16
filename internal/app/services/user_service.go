package services

import (
	"context"

	"github.com/rs/zerolog"

	appauth "github.com/emrekoc/schoolforum/internal/app/auth"
	"github.com/emrekoc/schoolforum/internal/app/models"
	"github.com/emrekoc/schoolforum/internal/app/models/dto"
	"github.com/emrekoc/schoolforum/internal/app/repositories"
	"github.com/emrekoc/schoolforum/internal/pkg/apperrors"
	"github.com/emrekoc/schoolforum/internal/pkg/validation"
)

type userService struct {
	userRepo repositories.IUserRepository
	logger   zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.IUserRepository, logger zerolog.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// GetByID retrieves a user by ID
func (s *userService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateProfile updates the caller's own profile. The role-conditional
// fields keep their registration rules: students need a grade, teachers a
// subject.
func (s *userService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	verrs := apperrors.NewValidationErrors()
	if !validation.IsValidName(req.FirstName) {
		verrs.Add("firstName", "first name must be 2-100 characters")
	}
	if !validation.IsValidName(req.LastName) {
		verrs.Add("lastName", "last name must be 2-100 characters")
	}

	grade := req.Grade
	subject := req.Subject
	switch user.Role {
	case models.RoleStudent:
		if grade == nil {
			grade = user.Grade
		}
		if grade == nil {
			verrs.Add("grade", "grade is required for students")
		}
		subject = nil
	case models.RoleTeacher:
		if subject == nil || *subject == "" {
			subject = user.Subject
		}
		if subject == nil || *subject == "" {
			verrs.Add("subject", "subject is required for teachers")
		}
		grade = nil
	case models.RoleAdmin:
		grade = nil
		subject = nil
	}

	if verrs.HasErrors() {
		return nil, verrs
	}

	if err := s.userRepo.UpdateProfile(ctx, userID, req.FirstName, req.LastName, grade, subject); err != nil {
		return nil, err
	}

	return s.userRepo.GetByID(ctx, userID)
}

// List retrieves users with pagination. Admin only.
func (s *userService) List(ctx context.Context, actorRole models.Role, page, limit int) ([]models.User, int64, error) {
	if !appauth.CanManageUsers(actorRole) {
		return nil, 0, apperrors.ErrPermissionDenied
	}
	return s.userRepo.List(ctx, page, limit)
}

// SetActive activates or deactivates an account. Admin only; accounts are
// never hard-deleted.
func (s *userService) SetActive(ctx context.Context, actorRole models.Role, userID int64, active bool) error {
	if !appauth.CanManageUsers(actorRole) {
		return apperrors.ErrPermissionDenied
	}

	if err := s.userRepo.SetActive(ctx, userID, active); err != nil {
		return err
	}

	s.logger.Info().Int64("userID", userID).Bool("active", active).Msg("User active flag changed")
	return nil
}
