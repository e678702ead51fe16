package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	appModels "github.com/emrekoc/schoolforum/internal/app/models"
	appRepos "github.com/emrekoc/schoolforum/internal/app/repositories"
	"github.com/emrekoc/schoolforum/internal/pkg/apperrors"
)

// starterCategories are created on first boot so the forum is usable immediately.
var starterCategories = []appModels.Category{
	{Name: "General Discussion", Description: "Anything school related", Color: "#6366f1", Icon: "chat"},
	{Name: "Homework Help", Description: "Questions about assignments", Color: "#22c55e", Icon: "book"},
	{Name: "Announcements", Description: "Official school announcements", Color: "#ef4444", Icon: "megaphone"},
}

// CreateDefaultData creates the default admin account and starter categories
// if they don't exist. Safe to run on every startup.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, adminEmail, adminPassword string, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	categoryRepo := appRepos.NewCategoryRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error // Collect errors without stopping the process

	// --- Default Admin User --- //
	adminID := int64(0)
	exists, err := userRepo.EmailExists(ctx, adminEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if admin user exists")
		finalErr = errors.Join(finalErr, err)
	} else if !exists {
		lgr.Info().Msg("Creating default admin user...")

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			lgr.Error().Err(err).Msg("Error hashing admin password")
			finalErr = errors.Join(finalErr, err)
		} else {
			admin := &appModels.User{
				Username:  "admin",
				Email:     adminEmail,
				Password:  string(hashedPassword),
				FirstName: "System",
				LastName:  "Administrator",
				Role:      appModels.RoleAdmin,
				IsActive:  true,
			}

			if err := userRepo.Create(ctx, admin); err != nil {
				lgr.Error().Err(err).Msg("Error creating admin user")
				finalErr = errors.Join(finalErr, err)
			} else {
				adminID = admin.ID
				lgr.Info().Int64("adminID", admin.ID).Msg("Default admin user created successfully")
			}
		}
	} else {
		admin, errGet := userRepo.GetByEmail(ctx, adminEmail)
		if errGet != nil {
			lgr.Error().Err(errGet).Msg("Error loading existing admin user")
			finalErr = errors.Join(finalErr, errGet)
		} else {
			adminID = admin.ID
		}
		lgr.Info().Msg("Admin user already exists, skipping creation")
	}

	// --- Starter Categories --- //
	if adminID > 0 {
		for _, c := range starterCategories {
			category := c
			category.CreatedBy = adminID
			category.IsActive = true

			err := categoryRepo.Create(ctx, &category)
			if err != nil && !errors.Is(err, apperrors.ErrCategoryAlreadyExists) {
				lgr.Error().Err(err).Str("name", category.Name).Msg("Error creating starter category")
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}
