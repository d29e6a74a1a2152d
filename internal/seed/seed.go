package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxskaink/EventManager-sub001/internal/app/models"
	"github.com/maxskaink/EventManager-sub001/internal/app/repositories"
	"github.com/maxskaink/EventManager-sub001/internal/config"
	"github.com/maxskaink/EventManager-sub001/internal/pkg/apperrors"
	"github.com/maxskaink/EventManager-sub001/internal/pkg/auth"
	"github.com/maxskaink/EventManager-sub001/internal/pkg/logger"
)

// starterInterests are created on first boot so profiles and publications
// have something to tag
var starterInterests = []string{
	"ai",
	"web-development",
	"databases",
	"security",
	"open-source",
}

// CreateDefaultData ensures a mentor account and the starter interest
// catalog exist. Safe to run on every boot.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool) error {
	userRepo := repositories.NewUserRepository(dbPool)
	interestRepo := repositories.NewInterestRepository(dbPool)

	var finalErr error

	email := config.GetEnv("SEED_MENTOR_EMAIL", "mentor@community.org")
	if _, err := userRepo.GetByEmail(ctx, email); errors.Is(err, apperrors.ErrUserNotFound) {
		password := config.GetEnv("SEED_MENTOR_PASSWORD", "changeme-mentor")
		hashed, hashErr := auth.HashPassword(password)
		if hashErr != nil {
			return hashErr
		}

		mentor := &models.User{
			Email:     email,
			Password:  hashed,
			FirstName: "Default",
			LastName:  "Mentor",
			Role:      models.RoleMentor,
			IsActive:  true,
		}
		if _, createErr := userRepo.Create(ctx, mentor); createErr != nil && !errors.Is(createErr, apperrors.ErrEmailAlreadyExists) {
			logger.Error().Err(createErr).Msg("Error creating default mentor")
			finalErr = errors.Join(finalErr, createErr)
		} else {
			logger.Info().Str("email", email).Msg("Default mentor account created")
		}
	} else if err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	for _, keyword := range starterInterests {
		if _, err := interestRepo.Create(ctx, keyword); err != nil && !errors.Is(err, apperrors.ErrInterestAlreadyExists) {
			logger.Error().Err(err).Str("keyword", keyword).Msg("Error creating starter interest")
			finalErr = errors.Join(finalErr, err)
		}
	}

	return finalErr
}
