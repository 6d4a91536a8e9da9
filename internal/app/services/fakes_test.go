package services

import (
	"context"
	"time"

	"github.com/campusplace/backend/internal/app/models"
	"github.com/campusplace/backend/internal/app/repositories"
	"github.com/campusplace/backend/internal/pkg/apperrors"
)

// In-memory repository fakes. Each fake keeps its state in plain maps and
// mirrors the error mapping of the real repositories closely enough for the
// service-level paths under test.

type fakeUserRepo struct {
	users      map[int64]*models.User
	profiles   map[int64]*models.StudentProfile
	nextID     int64
	lastLogins map[int64]int
	failCreate error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:      make(map[int64]*models.User),
		profiles:   make(map[int64]*models.StudentProfile),
		nextID:     1,
		lastLogins: make(map[int64]int),
	}
}

func (f *fakeUserRepo) add(user *models.User, enrollmentNo string) *models.User {
	if user.ID == 0 {
		user.ID = f.nextID
		f.nextID++
	}
	f.users[user.ID] = user
	if user.RoleType == models.RoleStudent {
		f.profiles[user.ID] = &models.StudentProfile{UserID: user.ID, EnrollmentNo: enrollmentNo, User: user}
	}
	return user
}

func (f *fakeUserRepo) CreateStudentWithProfile(_ context.Context, user *models.User, enrollmentNo string) error {
	if f.failCreate != nil {
		return f.failCreate
	}
	for _, u := range f.users {
		if u.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	for _, p := range f.profiles {
		if p.EnrollmentNo == enrollmentNo {
			return apperrors.ErrEnrollmentNoExists
		}
	}
	f.add(user, enrollmentNo)
	return nil
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *models.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	f.add(user, "")
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	// Return a copy so later writes through the repo do not mutate structs
	// already handed to callers, matching the real repository.
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserRepo) UpdateLastLogin(_ context.Context, userID int64) error {
	f.lastLogins[userID]++
	return nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, userID int64, passwordHash string) error {
	user, ok := f.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.Password = passwordHash
	return nil
}

func (f *fakeUserRepo) UpdateNames(_ context.Context, userID int64, firstName, lastName string) error {
	user, ok := f.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.FirstName = firstName
	user.LastName = lastName
	return nil
}

func (f *fakeUserRepo) SetEnabled(_ context.Context, userID int64, enabled bool) error {
	user, ok := f.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.IsEnabled = enabled
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(f.users, id)
	delete(f.profiles, id)
	return nil
}

func (f *fakeUserRepo) GetProfileByUserID(_ context.Context, userID int64) (*models.StudentProfile, error) {
	profile, ok := f.profiles[userID]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return profile, nil
}

func (f *fakeUserRepo) UpdateProfile(_ context.Context, profile *models.StudentProfile) error {
	if _, ok := f.profiles[profile.UserID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	profile.User = f.users[profile.UserID]
	f.profiles[profile.UserID] = profile
	return nil
}

func (f *fakeUserRepo) CompleteProfile(_ context.Context, user *models.User, profile *models.StudentProfile) error {
	stored, ok := f.users[user.ID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	stored.FirstName = user.FirstName
	stored.LastName = user.LastName
	stored.ProfileCompleted = true
	profile.User = stored
	f.profiles[profile.UserID] = profile
	return nil
}

func (f *fakeUserRepo) ListStudents(_ context.Context, offset uint64, limit int) ([]*models.StudentProfile, int64, error) {
	all, err := f.AllStudents(context.Background())
	if err != nil {
		return nil, 0, err
	}
	total := int64(len(all))
	if int(offset) >= len(all) {
		return nil, total, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, total, nil
}

func (f *fakeUserRepo) AllStudents(_ context.Context) ([]*models.StudentProfile, error) {
	var out []*models.StudentProfile
	for _, p := range f.profiles {
		p.User = f.users[p.UserID]
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeUserRepo) ListByRole(_ context.Context, role models.RoleType) ([]*models.User, error) {
	var out []*models.User
	for _, u := range f.users {
		if u.RoleType == role {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeDriveRepo struct {
	drives       map[int64]*models.Drive
	ledgers      map[int64]*models.DriveLedger
	nextID       int64
	pruneCount   int
	failPrune    error
	failCreate   error
	deletedDrive []int64
}

func newFakeDriveRepo() *fakeDriveRepo {
	return &fakeDriveRepo{
		drives:  make(map[int64]*models.Drive),
		ledgers: make(map[int64]*models.DriveLedger),
		nextID:  1,
	}
}

func (f *fakeDriveRepo) add(drive *models.Drive) *models.Drive {
	if drive.ID == 0 {
		drive.ID = f.nextID
		f.nextID++
	}
	f.drives[drive.ID] = drive
	f.ledgers[drive.ID] = &models.DriveLedger{DriveID: drive.ID}
	return drive
}

func (f *fakeDriveRepo) CreateWithLedger(_ context.Context, drive *models.Drive) error {
	if f.failCreate != nil {
		return f.failCreate
	}
	for _, d := range f.drives {
		if d.Title == drive.Title && d.CompanyName == drive.CompanyName {
			return apperrors.ErrDriveAlreadyExists
		}
	}
	f.add(drive)
	return nil
}

func (f *fakeDriveRepo) GetByID(_ context.Context, id int64) (*models.Drive, error) {
	drive, ok := f.drives[id]
	if !ok {
		return nil, apperrors.ErrDriveNotFound
	}
	return drive, nil
}

func (f *fakeDriveRepo) ListActive(_ context.Context, filter repositories.DriveFilter, today time.Time, offset uint64, limit int) ([]*models.Drive, int64, error) {
	var out []*models.Drive
	for _, d := range f.drives {
		if !d.Expired(today) {
			out = append(out, d)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeDriveRepo) Update(_ context.Context, drive *models.Drive) error {
	if _, ok := f.drives[drive.ID]; !ok {
		return apperrors.ErrDriveNotFound
	}
	f.drives[drive.ID] = drive
	return nil
}

func (f *fakeDriveRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.drives[id]; !ok {
		return apperrors.ErrDriveNotFound
	}
	delete(f.drives, id)
	delete(f.ledgers, id)
	f.deletedDrive = append(f.deletedDrive, id)
	return nil
}

func (f *fakeDriveRepo) DeleteExpired(_ context.Context, today time.Time) (int64, error) {
	f.pruneCount++
	if f.failPrune != nil {
		return 0, f.failPrune
	}
	var removed int64
	for id, d := range f.drives {
		if d.Expired(today) {
			delete(f.drives, id)
			delete(f.ledgers, id)
			removed++
		}
	}
	return removed, nil
}

func (f *fakeDriveRepo) GetLedger(_ context.Context, driveID int64) (*models.DriveLedger, error) {
	ledger, ok := f.ledgers[driveID]
	if !ok {
		return nil, apperrors.ErrLedgerNotFound
	}
	return ledger, nil
}

func (f *fakeDriveRepo) AppendSelected(_ context.Context, driveID, studentID int64) error {
	ledger, ok := f.ledgers[driveID]
	if !ok {
		return apperrors.ErrLedgerNotFound
	}
	for _, id := range ledger.SelectedIDs {
		if id == studentID {
			return nil
		}
	}
	ledger.SelectedIDs = append(ledger.SelectedIDs, studentID)
	return nil
}

type fakeApplicationRepo struct {
	applications map[int64]*models.Application
	nextID       int64
	ledgers      *fakeDriveRepo
}

func newFakeApplicationRepo(drives *fakeDriveRepo) *fakeApplicationRepo {
	return &fakeApplicationRepo{
		applications: make(map[int64]*models.Application),
		nextID:       1,
		ledgers:      drives,
	}
}

func (f *fakeApplicationRepo) CreateWithLedgerAppend(_ context.Context, app *models.Application) error {
	for _, a := range f.applications {
		if a.StudentID == app.StudentID && a.DriveID == app.DriveID {
			return apperrors.ErrAlreadyApplied
		}
	}
	app.ID = f.nextID
	f.nextID++
	app.AppliedAt = time.Now()
	f.applications[app.ID] = app
	if ledger, ok := f.ledgers.ledgers[app.DriveID]; ok {
		ledger.AppliedIDs = append(ledger.AppliedIDs, app.StudentID)
	}
	return nil
}

func (f *fakeApplicationRepo) GetByID(_ context.Context, id int64) (*models.Application, error) {
	app, ok := f.applications[id]
	if !ok {
		return nil, apperrors.ErrApplicationNotFound
	}
	return app, nil
}

func (f *fakeApplicationRepo) ListByStudent(_ context.Context, studentID int64) ([]*models.Application, error) {
	var out []*models.Application
	for _, a := range f.applications {
		if a.StudentID == studentID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeApplicationRepo) ListByDrive(_ context.Context, driveID int64) ([]*models.Application, error) {
	var out []*models.Application
	for _, a := range f.applications {
		if a.DriveID == driveID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeApplicationRepo) HasApplied(_ context.Context, studentID, driveID int64) (bool, error) {
	for _, a := range f.applications {
		if a.StudentID == studentID && a.DriveID == driveID {
			return true, nil
		}
	}
	return false, nil
}

type fakeNotificationRepo struct {
	notifications map[int64]*models.Notification
	nextID        int64
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{notifications: make(map[int64]*models.Notification), nextID: 1}
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *models.Notification) error {
	n.ID = f.nextID
	f.nextID++
	n.CreatedAt = time.Now()
	f.notifications[n.ID] = n
	return nil
}

func (f *fakeNotificationRepo) ListByStudent(_ context.Context, studentID int64) ([]*models.Notification, error) {
	var out []*models.Notification
	for _, n := range f.notifications {
		if n.StudentID == studentID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) MarkSeen(_ context.Context, id, studentID int64) error {
	n, ok := f.notifications[id]
	if !ok || n.StudentID != studentID {
		return apperrors.ErrNotificationNotFound
	}
	n.Seen = true
	return nil
}

type storedRefreshToken struct {
	userID    int64
	expiresAt time.Time
	revoked   bool
}

type fakeTokenRepo struct {
	tokens map[string]*storedRefreshToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]*storedRefreshToken)}
}

func (f *fakeTokenRepo) CreateToken(_ context.Context, token string, userID int64, expiresAt time.Time) error {
	f.tokens[token] = &storedRefreshToken{userID: userID, expiresAt: expiresAt}
	return nil
}

func (f *fakeTokenRepo) GetTokenUser(_ context.Context, token string) (int64, error) {
	stored, ok := f.tokens[token]
	if !ok {
		return 0, apperrors.ErrTokenNotFound
	}
	if stored.revoked {
		return 0, apperrors.ErrTokenRevoked
	}
	if stored.expiresAt.Before(time.Now()) {
		return 0, apperrors.ErrTokenExpired
	}
	return stored.userID, nil
}

func (f *fakeTokenRepo) RevokeToken(_ context.Context, token string) error {
	stored, ok := f.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	stored.revoked = true
	return nil
}

func (f *fakeTokenRepo) RevokeAllUserTokens(_ context.Context, userID int64) error {
	for _, stored := range f.tokens {
		if stored.userID == userID {
			stored.revoked = true
		}
	}
	return nil
}

type storedResetToken struct {
	userID    int64
	expiresAt time.Time
	used      bool
}

type fakeResetTokenRepo struct {
	tokens map[string]*storedResetToken
}

func newFakeResetTokenRepo() *fakeResetTokenRepo {
	return &fakeResetTokenRepo{tokens: make(map[string]*storedResetToken)}
}

func (f *fakeResetTokenRepo) CreateToken(_ context.Context, userID int64, token string, expiresAt time.Time) error {
	f.tokens[token] = &storedResetToken{userID: userID, expiresAt: expiresAt}
	return nil
}

func (f *fakeResetTokenRepo) GetTokenInfo(_ context.Context, token string) (int64, time.Time, bool, error) {
	stored, ok := f.tokens[token]
	if !ok {
		return 0, time.Time{}, false, apperrors.ErrTokenNotFound
	}
	return stored.userID, stored.expiresAt, stored.used, nil
}

func (f *fakeResetTokenRepo) MarkTokenAsUsed(_ context.Context, token string) error {
	stored, ok := f.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	stored.used = true
	return nil
}

type fakeMailer struct {
	resetEmails   []string
	enabledEmails []string
	failSend      error
}

func (f *fakeMailer) SendPasswordResetEmail(toEmail, toName, token string) error {
	if f.failSend != nil {
		return f.failSend
	}
	f.resetEmails = append(f.resetEmails, toEmail)
	return nil
}

func (f *fakeMailer) SendAccountEnabledEmail(toEmail, toName string) error {
	if f.failSend != nil {
		return f.failSend
	}
	f.enabledEmails = append(f.enabledEmails, toEmail)
	return nil
}
