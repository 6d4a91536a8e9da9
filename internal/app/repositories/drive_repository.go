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

// DriveFilter narrows drive listings
type DriveFilter struct {
	// Query matches title or company name, case-insensitive substring.
	Query string
}

// IDriveRepository defines drive-related database operations
type IDriveRepository interface {
	CreateWithLedger(ctx context.Context, drive *models.Drive) error
	GetByID(ctx context.Context, id int64) (*models.Drive, error)
	ListActive(ctx context.Context, filter DriveFilter, today time.Time, offset uint64, limit int) ([]*models.Drive, int64, error)
	Update(ctx context.Context, drive *models.Drive) error
	Delete(ctx context.Context, id int64) error
	DeleteExpired(ctx context.Context, today time.Time) (int64, error)
	GetLedger(ctx context.Context, driveID int64) (*models.DriveLedger, error)
	AppendSelected(ctx context.Context, driveID, studentID int64) error
}

const driveColumns = `id, title, company_name, last_date, salary, min_ssc_percent,
	min_hsc_percent, min_degree_percent, openings, bond, bond_months, description,
	interview_mode, website, contact_number, contact_person, created_at, updated_at`

// DriveRepository handles database operations for drives and their ledgers
type DriveRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewDriveRepository creates a new DriveRepository
func NewDriveRepository(db *db.PostgresDB) *DriveRepository {
	return &DriveRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanDrive(row pgx.Row) (*models.Drive, error) {
	d := &models.Drive{}
	err := row.Scan(
		&d.ID, &d.Title, &d.CompanyName, &d.LastDate, &d.Salary,
		&d.MinSscPercent, &d.MinHscPercent, &d.MinDegreePercent, &d.Openings,
		&d.Bond, &d.BondMonths, &d.Description, &d.InterviewMode, &d.Website,
		&d.ContactNumber, &d.ContactPerson, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// CreateWithLedger inserts a drive and its empty ledger in one transaction.
// The ledger shares the drive's identifier, so neither can exist alone.
func (r *DriveRepository) CreateWithLedger(ctx context.Context, drive *models.Drive) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO drives (title, company_name, last_date, salary, min_ssc_percent,
				min_hsc_percent, min_degree_percent, openings, bond, bond_months,
				description, interview_mode, website, contact_number, contact_person)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
			RETURNING id, created_at, updated_at`,
			drive.Title, drive.CompanyName, drive.LastDate, drive.Salary,
			drive.MinSscPercent, drive.MinHscPercent, drive.MinDegreePercent,
			drive.Openings, drive.Bond, drive.BondMonths, drive.Description,
			drive.InterviewMode, drive.Website, drive.ContactNumber, drive.ContactPerson).
			Scan(&drive.ID, &drive.CreatedAt, &drive.UpdatedAt)
		if err != nil {
			if dberrors.IsDuplicateConstraintError(err, "uq_drives_title_company") {
				return apperrors.ErrDriveAlreadyExists
			}
			return fmt.Errorf("error creating drive: %w", err)
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO drive_ledgers (drive_id) VALUES ($1)`, drive.ID); err != nil {
			return fmt.Errorf("error creating drive ledger: %w", err)
		}

		return nil
	})
}

// GetByID retrieves a drive by ID
func (r *DriveRepository) GetByID(ctx context.Context, id int64) (*models.Drive, error) {
	row := r.db.Pool.QueryRow(ctx,
		`SELECT `+driveColumns+` FROM drives WHERE id = $1`, id)
	drive, err := scanDrive(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDriveNotFound
		}
		return nil, fmt.Errorf("error retrieving drive: %w", err)
	}
	return drive, nil
}

// ListActive retrieves drives whose last date has not passed, newest first
func (r *DriveRepository) ListActive(ctx context.Context, filter DriveFilter, today time.Time, offset uint64, limit int) ([]*models.Drive, int64, error) {
	cutoff := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	where := squirrel.And{squirrel.GtOrEq{"last_date": cutoff}}
	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		where = append(where, squirrel.Or{
			squirrel.ILike{"title": pattern},
			squirrel.ILike{"company_name": pattern},
		})
	}

	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("drives").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build drive count query: %w", err)
	}

	var total int64
	if err := r.db.Pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting drives: %w", err)
	}

	listSQL, listArgs, err := r.sb.Select(driveColumns).
		From("drives").
		Where(where).
		OrderBy("created_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build drive list query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing drives: %w", err)
	}
	defer rows.Close()

	var drives []*models.Drive
	for rows.Next() {
		drive, err := scanDrive(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning drive row: %w", err)
		}
		drives = append(drives, drive)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return drives, total, nil
}

// Update rewrites a drive's fields, preserving created_at
func (r *DriveRepository) Update(ctx context.Context, drive *models.Drive) error {
	sql, args, err := r.sb.Update("drives").
		Set("title", drive.Title).
		Set("company_name", drive.CompanyName).
		Set("last_date", drive.LastDate).
		Set("salary", drive.Salary).
		Set("min_ssc_percent", drive.MinSscPercent).
		Set("min_hsc_percent", drive.MinHscPercent).
		Set("min_degree_percent", drive.MinDegreePercent).
		Set("openings", drive.Openings).
		Set("bond", drive.Bond).
		Set("bond_months", drive.BondMonths).
		Set("description", drive.Description).
		Set("interview_mode", drive.InterviewMode).
		Set("website", drive.Website).
		Set("contact_number", drive.ContactNumber).
		Set("contact_person", drive.ContactPerson).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": drive.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update drive query: %w", err)
	}

	cmdTag, err := r.db.Pool.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_drives_title_company") {
			return apperrors.ErrDriveAlreadyExists
		}
		return fmt.Errorf("error updating drive: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrDriveNotFound
	}
	return nil
}

// Delete removes a drive. The ledger row cascades with it; application
// snapshots stay behind on purpose.
func (r *DriveRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Pool.Exec(ctx, `DELETE FROM drives WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting drive: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrDriveNotFound
	}
	return nil
}

// DeleteExpired prunes drives whose last date is before today
func (r *DriveRepository) DeleteExpired(ctx context.Context, today time.Time) (int64, error) {
	cutoff := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	cmdTag, err := r.db.Pool.Exec(ctx, `DELETE FROM drives WHERE last_date < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("error pruning expired drives: %w", err)
	}

	pruned := cmdTag.RowsAffected()
	if pruned > 0 {
		logger.Info().Int64("pruned", pruned).Msg("Removed expired drives")
	}
	return pruned, nil
}

// GetLedger retrieves a drive's membership ledger
func (r *DriveRepository) GetLedger(ctx context.Context, driveID int64) (*models.DriveLedger, error) {
	ledger := &models.DriveLedger{}
	err := r.db.Pool.QueryRow(ctx, `
		SELECT drive_id, applied_ids, selected_ids
		FROM drive_ledgers WHERE drive_id = $1`,
		driveID).Scan(&ledger.DriveID, &ledger.AppliedIDs, &ledger.SelectedIDs)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLedgerNotFound
		}
		return nil, fmt.Errorf("error retrieving drive ledger: %w", err)
	}
	return ledger, nil
}

// AppendSelected adds a student to the ledger's selected list if absent
func (r *DriveRepository) AppendSelected(ctx context.Context, driveID, studentID int64) error {
	cmdTag, err := r.db.Pool.Exec(ctx, `
		UPDATE drive_ledgers
		SET selected_ids = array_append(selected_ids, $2), updated_at = NOW()
		WHERE drive_id = $1 AND NOT ($2 = ANY(selected_ids))`,
		driveID, studentID)
	if err != nil {
		return fmt.Errorf("error updating selected list: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		// Either the ledger is missing or the student is already selected.
		var exists bool
		if err := r.db.Pool.QueryRow(ctx, `
			SELECT EXISTS(SELECT 1 FROM drive_ledgers WHERE drive_id = $1)`,
			driveID).Scan(&exists); err != nil {
			return fmt.Errorf("error checking drive ledger: %w", err)
		}
		if !exists {
			return apperrors.ErrLedgerNotFound
		}
	}
	return nil
}
