package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// TIME columns travel as HH24:MI text so ClockTime parsing stays in one place.
const scheduleColumns = `
	to_char(check_in_start, 'HH24:MI'), to_char(check_in_end, 'HH24:MI'),
	to_char(check_out_start, 'HH24:MI'), to_char(check_out_end, 'HH24:MI'),
	updated_at`

type scheduleRepository struct {
	db *database.DB
}

func NewScheduleRepository(db *database.DB) schedule.ScheduleRepository {
	return &scheduleRepository{db: db}
}

func scanSchedule(row pgx.Row) (schedule.AttendanceSchedule, error) {
	var s schedule.AttendanceSchedule
	var inStart, inEnd, outStart, outEnd string
	if err := row.Scan(&inStart, &inEnd, &outStart, &outEnd, &s.UpdatedAt); err != nil {
		return schedule.AttendanceSchedule{}, err
	}

	var err error
	for _, f := range []struct {
		dst *schedule.ClockTime
		src string
	}{
		{&s.CheckInStart, inStart},
		{&s.CheckInEnd, inEnd},
		{&s.CheckOutStart, outStart},
		{&s.CheckOutEnd, outEnd},
	} {
		if *f.dst, err = schedule.ParseClockTime(f.src); err != nil {
			return schedule.AttendanceSchedule{}, err
		}
	}

	return s, nil
}

// Get implements schedule.ScheduleRepository.
func (r *scheduleRepository) Get(ctx context.Context) (*schedule.AttendanceSchedule, error) {
	q := GetQuerier(ctx, r.db)

	s, err := scanSchedule(q.QueryRow(ctx, `SELECT `+scheduleColumns+` FROM attendance_schedules WHERE id = 1`))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance schedule: %w", err)
	}

	return &s, nil
}

// Upsert implements schedule.ScheduleRepository.
func (r *scheduleRepository) Upsert(ctx context.Context, s schedule.AttendanceSchedule) (schedule.AttendanceSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_schedules (id, check_in_start, check_in_end, check_out_start, check_out_end, updated_at)
		VALUES (1, $1::time, $2::time, $3::time, $4::time, NOW())
		ON CONFLICT (id) DO UPDATE
		SET check_in_start = EXCLUDED.check_in_start,
			check_in_end = EXCLUDED.check_in_end,
			check_out_start = EXCLUDED.check_out_start,
			check_out_end = EXCLUDED.check_out_end,
			updated_at = NOW()
		RETURNING ` + scheduleColumns

	saved, err := scanSchedule(q.QueryRow(ctx, query,
		s.CheckInStart.String(),
		s.CheckInEnd.String(),
		s.CheckOutStart.String(),
		s.CheckOutEnd.String(),
	))
	if err != nil {
		return schedule.AttendanceSchedule{}, fmt.Errorf("failed to upsert attendance schedule: %w", err)
	}

	return saved, nil
}
