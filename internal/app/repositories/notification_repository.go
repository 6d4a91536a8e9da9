package repositories

import (
	"context"
	"fmt"

	"github.com/campusplace/backend/internal/app/models"
	"github.com/campusplace/backend/internal/db"
	"github.com/campusplace/backend/internal/pkg/apperrors"
	"github.com/campusplace/backend/internal/pkg/dberrors"
)

// INotificationRepository defines notification-related database operations
type INotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListByStudent(ctx context.Context, studentID int64) ([]*models.Notification, error)
	MarkSeen(ctx context.Context, id, studentID int64) error
}

// NotificationRepository handles database operations for notifications
type NotificationRepository struct {
	db *db.PostgresDB
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *db.PostgresDB) *NotificationRepository {
	return &NotificationRepository{
		db: db,
	}
}

// Create stores a notification for a student
func (r *NotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO notifications (student_id, message)
		VALUES ($1, $2)
		RETURNING id, seen, created_at`,
		notification.StudentID, notification.Message).
		Scan(&notification.ID, &notification.Seen, &notification.CreatedAt)
	if err != nil {
		// The target account can disappear between the service's role check
		// and the insert.
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrStudentNotFound
		}
		return fmt.Errorf("error creating notification: %w", err)
	}
	return nil
}

// ListByStudent retrieves a student's notifications, newest first
func (r *NotificationRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.Notification, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, student_id, message, seen, created_at
		FROM notifications
		WHERE student_id = $1
		ORDER BY created_at DESC`,
		studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		n := &models.Notification{}
		if err := rows.Scan(&n.ID, &n.StudentID, &n.Message, &n.Seen, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning notification row: %w", err)
		}
		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}

// MarkSeen flags a notification as seen. The student ID is part of the match
// so one student cannot acknowledge another's messages.
func (r *NotificationRepository) MarkSeen(ctx context.Context, id, studentID int64) error {
	cmdTag, err := r.db.Pool.Exec(ctx, `
		UPDATE notifications SET seen = TRUE WHERE id = $1 AND student_id = $2`,
		id, studentID)
	if err != nil {
		return fmt.Errorf("error marking notification seen: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotificationNotFound
	}
	return nil
}
