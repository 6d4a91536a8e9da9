package repositories

import (
	"github.com/campusplace/backend/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository               *UserRepository
	DriveRepository              *DriveRepository
	ApplicationRepository        *ApplicationRepository
	NotificationRepository       *NotificationRepository
	TokenRepository              *TokenRepository
	PasswordResetTokenRepository *PasswordResetTokenRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		UserRepository:               NewUserRepository(database),
		DriveRepository:              NewDriveRepository(database),
		ApplicationRepository:        NewApplicationRepository(database),
		NotificationRepository:       NewNotificationRepository(database),
		TokenRepository:              NewTokenRepository(database),
		PasswordResetTokenRepository: NewPasswordResetTokenRepository(database),
	}
}
