package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusplace/backend/internal/app/models"
	"github.com/campusplace/backend/internal/app/models/dto"
	"github.com/campusplace/backend/internal/pkg/apperrors"
)

func newNotificationFixture() (*NotificationService, *fakeUserRepo, *fakeNotificationRepo) {
	userRepo := newFakeUserRepo()
	notificationRepo := newFakeNotificationRepo()
	service := NewNotificationService(notificationRepo, userRepo, zerolog.Nop())
	return service, userRepo, notificationRepo
}

func TestNotificationCreate(t *testing.T) {
	service, userRepo, _ := newNotificationFixture()
	student := userRepo.add(&models.User{Email: "s@college.edu", RoleType: models.RoleStudent}, "2021000042")

	resp, err := service.Create(context.Background(), &dto.CreateNotificationRequest{
		StudentID: student.ID,
		Message:   "Interview scheduled for Monday",
	})
	require.NoError(t, err)
	assert.Equal(t, student.ID, resp.StudentID)
	assert.False(t, resp.Seen)
	assert.NotZero(t, resp.ID)
}

func TestNotificationCreate_TargetMustBeStudent(t *testing.T) {
	service, userRepo, _ := newNotificationFixture()
	staff := userRepo.add(&models.User{Email: "pto@college.edu", RoleType: models.RolePTO}, "")

	_, err := service.Create(context.Background(), &dto.CreateNotificationRequest{
		StudentID: staff.ID,
		Message:   "hello",
	})
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)

	_, err = service.Create(context.Background(), &dto.CreateNotificationRequest{
		StudentID: 404,
		Message:   "hello",
	})
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestNotificationMarkSeen_OwnerOnly(t *testing.T) {
	service, userRepo, _ := newNotificationFixture()
	owner := userRepo.add(&models.User{Email: "a@college.edu", RoleType: models.RoleStudent}, "2021000001")
	other := userRepo.add(&models.User{Email: "b@college.edu", RoleType: models.RoleStudent}, "2021000002")

	created, err := service.Create(context.Background(), &dto.CreateNotificationRequest{
		StudentID: owner.ID,
		Message:   "Results published",
	})
	require.NoError(t, err)

	err = service.MarkSeen(context.Background(), created.ID, other.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotificationNotFound)

	require.NoError(t, service.MarkSeen(context.Background(), created.ID, owner.ID))

	list, err := service.ListForStudent(context.Background(), owner.ID)
	require.NoError(t, err)
	require.Len(t, list.Notifications, 1)
	assert.True(t, list.Notifications[0].Seen)
}

func TestNotificationListForStudent_OnlyOwn(t *testing.T) {
	service, userRepo, _ := newNotificationFixture()
	first := userRepo.add(&models.User{Email: "a@college.edu", RoleType: models.RoleStudent}, "2021000001")
	second := userRepo.add(&models.User{Email: "b@college.edu", RoleType: models.RoleStudent}, "2021000002")

	for _, id := range []int64{first.ID, first.ID, second.ID} {
		_, err := service.Create(context.Background(), &dto.CreateNotificationRequest{
			StudentID: id, Message: "msg",
		})
		require.NoError(t, err)
	}

	list, err := service.ListForStudent(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Len(t, list.Notifications, 2)
}
