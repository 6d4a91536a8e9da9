package services

import (
	"github.com/rs/zerolog"

	"github.com/campusplace/backend/internal/app/repositories"
	"github.com/campusplace/backend/internal/config"
	"github.com/campusplace/backend/internal/pkg/auth"
	"github.com/campusplace/backend/internal/pkg/email"
	"github.com/campusplace/backend/internal/pkg/validation"
)

// Services holds all the service instances
type Services struct {
	AuthService         *AuthService
	ProfileService      *ProfileService
	DriveService        *DriveService
	ApplicationService  *ApplicationService
	UserService         *UserService
	NotificationService *NotificationService
	ReportService       *ReportService
}

// NewServices initializes all services
func NewServices(
	repos *repositories.Repositories,
	cfg *config.Config,
	jwtService *auth.JWTService,
	mailer email.EmailService,
	logger zerolog.Logger,
) *Services {
	dobWindow := validation.DOBWindow{
		MinYear: cfg.Profile.DOBMinYear,
		MaxYear: cfg.Profile.DOBMaxYear,
	}

	return &Services{
		AuthService: NewAuthService(
			repos.UserRepository,
			repos.TokenRepository,
			repos.PasswordResetTokenRepository,
			jwtService,
			mailer,
			logger,
		),
		ProfileService:     NewProfileService(repos.UserRepository, dobWindow, logger),
		DriveService:       NewDriveService(repos.DriveRepository, logger),
		ApplicationService: NewApplicationService(repos.ApplicationRepository, repos.DriveRepository, repos.UserRepository, logger),
		UserService:        NewUserService(repos.UserRepository, repos.TokenRepository, mailer, logger),
		NotificationService: NewNotificationService(
			repos.NotificationRepository,
			repos.UserRepository,
			logger,
		),
		ReportService: NewReportService(
			repos.UserRepository,
			repos.DriveRepository,
			repos.ApplicationRepository,
			logger,
		),
	}
}
