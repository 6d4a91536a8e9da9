package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/campusplace/backend/internal/app/models"
	"github.com/campusplace/backend/internal/db"
	"github.com/campusplace/backend/internal/pkg/apperrors"
	"github.com/campusplace/backend/internal/pkg/dberrors"
)

// IApplicationRepository defines application-related database operations
type IApplicationRepository interface {
	CreateWithLedgerAppend(ctx context.Context, app *models.Application) error
	GetByID(ctx context.Context, id int64) (*models.Application, error)
	ListByStudent(ctx context.Context, studentID int64) ([]*models.Application, error)
	ListByDrive(ctx context.Context, driveID int64) ([]*models.Application, error)
	HasApplied(ctx context.Context, studentID, driveID int64) (bool, error)
}

const applicationColumns = `id, drive_id, student_id, first_name, last_name, email,
	enrollment_no, ssc_percent, hsc_percent, degree_percent, drive_title, company_name, applied_at`

// ApplicationRepository handles database operations for application snapshots
type ApplicationRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *db.PostgresDB) *ApplicationRepository {
	return &ApplicationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanApplication(row pgx.Row) (*models.Application, error) {
	a := &models.Application{}
	err := row.Scan(
		&a.ID, &a.DriveID, &a.StudentID, &a.FirstName, &a.LastName, &a.Email,
		&a.EnrollmentNo, &a.SscPercent, &a.HscPercent, &a.DegreePercent,
		&a.DriveTitle, &a.CompanyName, &a.AppliedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// CreateWithLedgerAppend inserts the snapshot row and appends the student to
// the drive ledger's applied list in one transaction. The UNIQUE
// (student_id, drive_id) index closes the duplicate-click race regardless of
// any pre-check the caller ran.
func (r *ApplicationRepository) CreateWithLedgerAppend(ctx context.Context, app *models.Application) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO applications (drive_id, student_id, first_name, last_name, email,
				enrollment_no, ssc_percent, hsc_percent, degree_percent, drive_title, company_name)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING id, applied_at`,
			app.DriveID, app.StudentID, app.FirstName, app.LastName, app.Email,
			app.EnrollmentNo, app.SscPercent, app.HscPercent, app.DegreePercent,
			app.DriveTitle, app.CompanyName).Scan(&app.ID, &app.AppliedAt)
		if err != nil {
			if dberrors.IsDuplicateConstraintError(err, "uq_applications_student_drive") {
				return apperrors.ErrAlreadyApplied
			}
			return fmt.Errorf("error creating application: %w", err)
		}

		_, err = tx.Exec(ctx, `
			UPDATE drive_ledgers
			SET applied_ids = array_append(applied_ids, $2), updated_at = NOW()
			WHERE drive_id = $1 AND NOT ($2 = ANY(applied_ids))`,
			app.DriveID, app.StudentID)
		if err != nil {
			return fmt.Errorf("error updating drive ledger: %w", err)
		}

		return nil
	})
}

// GetByID retrieves an application by ID. Works even when the drive it
// referenced has been deleted.
func (r *ApplicationRepository) GetByID(ctx context.Context, id int64) (*models.Application, error) {
	row := r.db.Pool.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	app, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("error retrieving application: %w", err)
	}
	return app, nil
}

// ListByStudent retrieves a student's applications, newest first
func (r *ApplicationRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.Application, error) {
	return r.list(ctx, squirrel.Eq{"student_id": studentID})
}

// ListByDrive retrieves all applications for a drive, oldest first
func (r *ApplicationRepository) ListByDrive(ctx context.Context, driveID int64) ([]*models.Application, error) {
	sql, args, err := r.sb.Select(applicationColumns).
		From("applications").
		Where(squirrel.Eq{"drive_id": driveID}).
		OrderBy("applied_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build application list query: %w", err)
	}
	return r.query(ctx, sql, args)
}

// HasApplied checks whether the student already applied to the drive
func (r *ApplicationRepository) HasApplied(ctx context.Context, studentID, driveID int64) (bool, error) {
	var exists bool
	err := r.db.Pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM applications WHERE student_id = $1 AND drive_id = $2)`,
		studentID, driveID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking application existence: %w", err)
	}
	return exists, nil
}

func (r *ApplicationRepository) list(ctx context.Context, where squirrel.Sqlizer) ([]*models.Application, error) {
	sql, args, err := r.sb.Select(applicationColumns).
		From("applications").
		Where(where).
		OrderBy("applied_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build application list query: %w", err)
	}
	return r.query(ctx, sql, args)
}

func (r *ApplicationRepository) query(ctx context.Context, sql string, args []interface{}) ([]*models.Application, error) {
	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing applications: %w", err)
	}
	defer rows.Close()

	var apps []*models.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning application row: %w", err)
		}
		apps = append(apps, app)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return apps, nil
}
