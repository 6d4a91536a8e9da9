package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/campusplace/backend/internal/app/models"
	"github.com/campusplace/backend/internal/app/models/dto"
	"github.com/campusplace/backend/internal/app/repositories"
	"github.com/campusplace/backend/internal/pkg/apperrors"
)

// NotificationService handles staff-to-student messages
type NotificationService struct {
	notificationRepo repositories.INotificationRepository
	userRepo         repositories.IUserRepository
	logger           zerolog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(
	notificationRepo repositories.INotificationRepository,
	userRepo repositories.IUserRepository,
	logger zerolog.Logger,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		logger:           logger,
	}
}

// Create sends a message to one student
func (s *NotificationService) Create(ctx context.Context, req *dto.CreateNotificationRequest) (*dto.NotificationResponse, error) {
	user, err := s.userRepo.GetByID(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	if user.RoleType != models.RoleStudent {
		return nil, apperrors.ErrStudentNotFound
	}

	notification := &models.Notification{
		StudentID: req.StudentID,
		Message:   req.Message,
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("studentID", req.StudentID).Msg("Notification sent")

	resp := dto.FromNotification(notification)
	return &resp, nil
}

// ListForStudent returns the caller's notifications, newest first
func (s *NotificationService) ListForStudent(ctx context.Context, studentID int64) (*dto.NotificationListResponse, error) {
	notifications, err := s.notificationRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		items = append(items, dto.FromNotification(n))
	}
	return &dto.NotificationListResponse{Notifications: items}, nil
}

// MarkSeen flags one of the caller's notifications as seen
func (s *NotificationService) MarkSeen(ctx context.Context, id, studentID int64) error {
	return s.notificationRepo.MarkSeen(ctx, id, studentID)
}
