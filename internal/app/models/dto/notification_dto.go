package dto

import (
	"time"

	"github.com/campusplace/backend/internal/app/models"
)

// CreateNotificationRequest sends a message to one student
type CreateNotificationRequest struct {
	StudentID int64  `json:"studentId" binding:"required,min=1"`
	Message   string `json:"message" binding:"required"`
}

// NotificationResponse represents a stored notification
type NotificationResponse struct {
	ID        int64     `json:"id"`
	StudentID int64     `json:"studentId"`
	Message   string    `json:"message"`
	Seen      bool      `json:"seen"`
	CreatedAt time.Time `json:"createdAt"`
}

// FromNotification converts a models.Notification to a NotificationResponse
func FromNotification(n *models.Notification) NotificationResponse {
	if n == nil {
		return NotificationResponse{}
	}
	return NotificationResponse{
		ID:        n.ID,
		StudentID: n.StudentID,
		Message:   n.Message,
		Seen:      n.Seen,
		CreatedAt: n.CreatedAt,
	}
}

// NotificationListResponse represents a list of notifications
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
}
