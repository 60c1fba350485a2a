package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const attendanceColumns = `
	a.id, a.user_id, a.work_date, a.check_in_time, a.check_out_time,
	a.check_in_latitude, a.check_in_longitude, a.check_out_latitude, a.check_out_longitude,
	a.status, a.created_at, a.updated_at`

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// scanAttendance scans attendanceColumns followed by any extra destinations.
func scanAttendance(row pgx.Row, extra ...interface{}) (attendance.Attendance, error) {
	var att attendance.Attendance
	var status *string

	dest := []interface{}{
		&att.ID, &att.UserID, &att.WorkDate, &att.CheckInTime, &att.CheckOutTime,
		&att.CheckInLatitude, &att.CheckInLongitude, &att.CheckOutLatitude, &att.CheckOutLongitude,
		&status, &att.CreatedAt, &att.UpdatedAt,
	}
	dest = append(dest, extra...)

	if err := row.Scan(dest...); err != nil {
		return attendance.Attendance{}, err
	}
	if status != nil {
		att.Status = attendance.Status(*status)
	}
	return att, nil
}

func collectAttendances(rows pgx.Rows, withUser bool) ([]attendance.Attendance, error) {
	defer rows.Close()

	var result []attendance.Attendance
	for rows.Next() {
		var (
			att      attendance.Attendance
			err      error
			username string
			fullName string
		)
		if withUser {
			att, err = scanAttendance(rows, &username, &fullName)
			att.Username = &username
			att.FullName = &fullName
		} else {
			att, err = scanAttendance(rows)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		result = append(result, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return result, nil
}

// GetByUserAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByUserAndDate(ctx context.Context, userID string, workDate time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.user_id = $1 AND a.work_date = $2
		LIMIT 1`

	att, err := scanAttendance(q.QueryRow(ctx, query, userID, workDate))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by user and date: %w", err)
	}

	return &att, nil
}

// CreateCheckIn implements attendance.AttendanceRepository.
func (r *attendanceRepository) CreateCheckIn(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to generate attendance id: %w", err)
	}
	newAttendance.ID = id.String()

	query := `
		INSERT INTO attendances (
			id, user_id, work_date, check_in_time, check_in_latitude, check_in_longitude, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		) RETURNING created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		newAttendance.ID,
		newAttendance.UserID,
		newAttendance.WorkDate,
		newAttendance.CheckInTime,
		newAttendance.CheckInLatitude,
		newAttendance.CheckInLongitude,
		string(newAttendance.Status),
	).Scan(&newAttendance.CreatedAt, &newAttendance.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.Attendance{}, attendance.ErrRecordConflict
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return newAttendance, nil
}

// UpdateCheckOut implements attendance.AttendanceRepository.
func (r *attendanceRepository) UpdateCheckOut(ctx context.Context, userID string, workDate time.Time, at time.Time, latitude, longitude float64) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET check_out_time = $1,
			check_out_latitude = $2,
			check_out_longitude = $3,
			updated_at = NOW()
		WHERE user_id = $4
		  AND work_date = $5
		  AND check_in_time IS NOT NULL
		  AND check_out_time IS NULL
	`

	tag, err := q.Exec(ctx, query, at, latitude, longitude, userID, workDate)
	if err != nil {
		return 0, fmt.Errorf("failed to update check-out: %w", err)
	}

	return tag.RowsAffected(), nil
}

// ListByUser implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByUser(ctx context.Context, userID string) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.user_id = $1
		ORDER BY COALESCE(a.check_in_time, a.check_out_time) DESC NULLS LAST, a.work_date DESC`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances by user: %w", err)
	}

	return collectAttendances(rows, false)
}

// ListAllWithUser implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListAllWithUser(ctx context.Context) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + `, u.username, u.full_name
		FROM attendances a
		JOIN users u ON u.id = a.user_id
		WHERE u.role <> $1
		ORDER BY GREATEST(a.check_in_time, a.check_out_time) DESC NULLS LAST, a.work_date DESC`

	rows, err := q.Query(ctx, query, string(user.RoleAdmin))
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}

	return collectAttendances(rows, true)
}

// ListByDateWithUser implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByDateWithUser(ctx context.Context, workDate time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + `, u.username, u.full_name
		FROM attendances a
		JOIN users u ON u.id = a.user_id
		WHERE a.work_date = $1 AND u.role <> $2
		ORDER BY a.check_in_time DESC NULLS LAST`

	rows, err := q.Query(ctx, query, workDate, string(user.RoleAdmin))
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances by date: %w", err)
	}

	return collectAttendances(rows, true)
}

// ListOpenByDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListOpenByDate(ctx context.Context, workDate time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + `, u.username, u.full_name
		FROM attendances a
		JOIN users u ON u.id = a.user_id
		WHERE a.work_date = $1
		  AND a.check_in_time IS NOT NULL
		  AND a.check_out_time IS NULL
		ORDER BY a.check_in_time`

	rows, err := q.Query(ctx, query, workDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list open attendances: %w", err)
	}

	return collectAttendances(rows, true)
}
