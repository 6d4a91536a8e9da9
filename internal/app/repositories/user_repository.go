package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/campusplace/backend/internal/app/models"
	"github.com/campusplace/backend/internal/db"
	"github.com/campusplace/backend/internal/pkg/apperrors"
	"github.com/campusplace/backend/internal/pkg/dberrors"
	"github.com/campusplace/backend/internal/pkg/logger"
)

// IUserRepository defines user-related database operations
type IUserRepository interface {
	CreateStudentWithProfile(ctx context.Context, user *models.User, enrollmentNo string) error
	CreateUser(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, userID int64) error
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
	UpdateNames(ctx context.Context, userID int64, firstName, lastName string) error
	SetEnabled(ctx context.Context, userID int64, enabled bool) error
	Delete(ctx context.Context, id int64) error

	GetProfileByUserID(ctx context.Context, userID int64) (*models.StudentProfile, error)
	UpdateProfile(ctx context.Context, profile *models.StudentProfile) error
	CompleteProfile(ctx context.Context, user *models.User, profile *models.StudentProfile) error

	ListStudents(ctx context.Context, offset uint64, limit int) ([]*models.StudentProfile, int64, error)
	AllStudents(ctx context.Context) ([]*models.StudentProfile, error)
	ListByRole(ctx context.Context, role models.RoleType) ([]*models.User, error)
}

const userColumns = "id, email, password, first_name, last_name, role_type, is_enabled, profile_completed, last_login_at, created_at, updated_at"

const profileColumns = `user_id, enrollment_no, date_of_birth, mobile, address, city, linkedin,
	course, college_name, passing_year, ssc_percent, hsc_percent, degree_percent,
	cgpa, previous_course, previous_college, start_year, end_year`

// UserRepository handles database operations for accounts and student profiles
type UserRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *db.PostgresDB) *UserRepository {
	return &UserRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName, &user.LastName,
		&user.RoleType, &user.IsEnabled, &user.ProfileCompleted,
		&user.LastLoginAt, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func scanProfile(row pgx.Row) (*models.StudentProfile, error) {
	p := &models.StudentProfile{}
	err := row.Scan(
		&p.UserID, &p.EnrollmentNo, &p.DateOfBirth, &p.Mobile, &p.Address, &p.City,
		&p.LinkedIn, &p.Course, &p.CollegeName, &p.PassingYear, &p.SscPercent,
		&p.HscPercent, &p.DegreePercent, &p.CGPA, &p.PreviousCourse,
		&p.PreviousCollege, &p.StartYear, &p.EndYear)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// CreateStudentWithProfile creates a student account and its profile skeleton
// in one transaction. The unique indexes on email and enrollment number close
// the duplicate-signup race.
func (r *UserRepository) CreateStudentWithProfile(ctx context.Context, user *models.User, enrollmentNo string) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO users (email, password, first_name, last_name, role_type, is_enabled, profile_completed)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at, updated_at`,
			user.Email, user.Password, user.FirstName, user.LastName,
			models.RoleStudent, false, false).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
		if err != nil {
			if dberrors.IsDuplicateConstraintError(err, "uq_users_email") {
				return apperrors.ErrEmailAlreadyExists
			}
			return fmt.Errorf("error creating user: %w", err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO student_profiles (user_id, enrollment_no)
			VALUES ($1, $2)`,
			user.ID, enrollmentNo)
		if err != nil {
			if dberrors.IsDuplicateConstraintError(err, "uq_student_profiles_enrollment_no") {
				return apperrors.ErrEnrollmentNoExists
			}
			return fmt.Errorf("error creating student profile: %w", err)
		}

		user.RoleType = models.RoleStudent
		return nil
	})
}

// CreateUser creates a staff or admin account
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO users (email, password, first_name, last_name, role_type, is_enabled, profile_completed)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`,
		user.Email, user.Password, user.FirstName, user.LastName,
		user.RoleType, user.IsEnabled, user.ProfileCompleted).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_users_email") {
			return apperrors.ErrEmailAlreadyExists
		}
		if dberrors.IsDuplicateError(err) {
			return apperrors.ErrResourceAlreadyExists
		}
		return fmt.Errorf("error creating user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	row := r.db.Pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.db.Pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return user, nil
}

// UpdateLastLogin records the login time
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID int64) error {
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE users SET last_login_at = $1 WHERE id = $2`,
		time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to update last login time: %w", err)
	}
	return nil
}

// UpdatePassword replaces the stored password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	cmdTag, err := r.db.Pool.Exec(ctx, `
		UPDATE users SET password = $1, updated_at = NOW() WHERE id = $2`,
		passwordHash, userID)
	if err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdateNames updates the account's first and last name
func (r *UserRepository) UpdateNames(ctx context.Context, userID int64, firstName, lastName string) error {
	cmdTag, err := r.db.Pool.Exec(ctx, `
		UPDATE users SET first_name = $1, last_name = $2, updated_at = NOW() WHERE id = $3`,
		firstName, lastName, userID)
	if err != nil {
		return fmt.Errorf("error updating names: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// SetEnabled flips the account's enabled flag
func (r *UserRepository) SetEnabled(ctx context.Context, userID int64, enabled bool) error {
	cmdTag, err := r.db.Pool.Exec(ctx, `
		UPDATE users SET is_enabled = $1, updated_at = NOW() WHERE id = $2`,
		enabled, userID)
	if err != nil {
		return fmt.Errorf("error updating enabled flag: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// Delete removes an account. Profile, tokens and notifications cascade.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// GetProfileByUserID retrieves a student profile
func (r *UserRepository) GetProfileByUserID(ctx context.Context, userID int64) (*models.StudentProfile, error) {
	row := r.db.Pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM student_profiles WHERE user_id = $1`, userID)
	profile, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student profile: %w", err)
	}
	return profile, nil
}

// UpdateProfile writes the mutable profile fields
func (r *UserRepository) UpdateProfile(ctx context.Context, profile *models.StudentProfile) error {
	sql, args, err := r.sb.Update("student_profiles").
		Set("date_of_birth", profile.DateOfBirth).
		Set("mobile", profile.Mobile).
		Set("address", profile.Address).
		Set("city", profile.City).
		Set("linkedin", profile.LinkedIn).
		Set("course", profile.Course).
		Set("college_name", profile.CollegeName).
		Set("passing_year", profile.PassingYear).
		Set("ssc_percent", profile.SscPercent).
		Set("hsc_percent", profile.HscPercent).
		Set("degree_percent", profile.DegreePercent).
		Set("cgpa", profile.CGPA).
		Set("previous_course", profile.PreviousCourse).
		Set("previous_college", profile.PreviousCollege).
		Set("start_year", profile.StartYear).
		Set("end_year", profile.EndYear).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"user_id": profile.UserID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update profile query: %w", err)
	}

	cmdTag, err := r.db.Pool.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating student profile: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// CompleteProfile persists the wizard output and flips profile_completed in
// one transaction, so a half-written profile never reads as complete.
func (r *UserRepository) CompleteProfile(ctx context.Context, user *models.User, profile *models.StudentProfile) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		cmdTag, err := tx.Exec(ctx, `
			UPDATE student_profiles SET
				date_of_birth = $1, mobile = $2, address = $3, city = $4, linkedin = $5,
				course = $6, college_name = $7, passing_year = $8, ssc_percent = $9,
				hsc_percent = $10, degree_percent = $11, cgpa = $12, previous_course = $13,
				previous_college = $14, start_year = $15, end_year = $16, updated_at = NOW()
			WHERE user_id = $17`,
			profile.DateOfBirth, profile.Mobile, profile.Address, profile.City,
			profile.LinkedIn, profile.Course, profile.CollegeName, profile.PassingYear,
			profile.SscPercent, profile.HscPercent, profile.DegreePercent, profile.CGPA,
			profile.PreviousCourse, profile.PreviousCollege, profile.StartYear,
			profile.EndYear, profile.UserID)
		if err != nil {
			return fmt.Errorf("error writing profile: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrStudentNotFound
		}

		_, err = tx.Exec(ctx, `
			UPDATE users SET first_name = $1, last_name = $2, profile_completed = TRUE, updated_at = NOW()
			WHERE id = $3`,
			user.FirstName, user.LastName, profile.UserID)
		if err != nil {
			return fmt.Errorf("error marking profile complete: %w", err)
		}

		return nil
	})
}

// ListStudents retrieves student profiles joined with their accounts, paginated
func (r *UserRepository) ListStudents(ctx context.Context, offset uint64, limit int) ([]*models.StudentProfile, int64, error) {
	var total int64
	err := r.db.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM users WHERE role_type = $1`,
		models.RoleStudent).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting students: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx,
		studentRosterQuery+` OFFSET $2 LIMIT $3`,
		models.RoleStudent, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	profiles, err := scanStudentRows(rows)
	if err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}

// AllStudents retrieves every student with their profile, without pagination
func (r *UserRepository) AllStudents(ctx context.Context) ([]*models.StudentProfile, error) {
	rows, err := r.db.Pool.Query(ctx, studentRosterQuery, models.RoleStudent)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	return scanStudentRows(rows)
}

const studentRosterQuery = `
	SELECT u.id, u.email, u.password, u.first_name, u.last_name, u.role_type,
		u.is_enabled, u.profile_completed, u.last_login_at, u.created_at, u.updated_at,
		p.user_id, p.enrollment_no, p.date_of_birth, p.mobile, p.address, p.city,
		p.linkedin, p.course, p.college_name, p.passing_year, p.ssc_percent,
		p.hsc_percent, p.degree_percent, p.cgpa, p.previous_course,
		p.previous_college, p.start_year, p.end_year
	FROM users u
	JOIN student_profiles p ON p.user_id = u.id
	WHERE u.role_type = $1
	ORDER BY p.enrollment_no`

func scanStudentRows(rows pgx.Rows) ([]*models.StudentProfile, error) {
	var profiles []*models.StudentProfile
	for rows.Next() {
		user := &models.User{}
		p := &models.StudentProfile{}
		if err := rows.Scan(
			&user.ID, &user.Email, &user.Password, &user.FirstName, &user.LastName,
			&user.RoleType, &user.IsEnabled, &user.ProfileCompleted,
			&user.LastLoginAt, &user.CreatedAt, &user.UpdatedAt,
			&p.UserID, &p.EnrollmentNo, &p.DateOfBirth, &p.Mobile, &p.Address, &p.City,
			&p.LinkedIn, &p.Course, &p.CollegeName, &p.PassingYear, &p.SscPercent,
			&p.HscPercent, &p.DegreePercent, &p.CGPA, &p.PreviousCourse,
			&p.PreviousCollege, &p.StartYear, &p.EndYear,
		); err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		p.User = user
		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return profiles, nil
}

// ListByRole retrieves all accounts with the given role
func (r *UserRepository) ListByRole(ctx context.Context, role models.RoleType) ([]*models.User, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE role_type = $1 ORDER BY created_at`, role)
	if err != nil {
		return nil, fmt.Errorf("error listing users by role: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning user row")
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}
