package attendance

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/utils"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(f float64) *float64 { return &f }

// north returns a point the given distance due north of (0,0).
func north(meters float64) (*float64, *float64) {
	return ptr(utils.MetersToLatitudeDegrees(meters)), ptr(0)
}

func checkInReq(userID string, meters float64) attendance.CheckInRequest {
	lat, lng := north(meters)
	return attendance.CheckInRequest{UserID: userID, Latitude: lat, Longitude: lng}
}

func checkOutReq(userID string, meters float64) attendance.CheckOutRequest {
	lat, lng := north(meters)
	return attendance.CheckOutRequest{UserID: userID, Latitude: lat, Longitude: lng}
}

// Test check-in at 50m, exactly 08:00 is accepted as present
func TestCheckIn_OnTime(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.at(2025, time.January, 6, 8, 0, 0)

	resp, err := env.svc.CheckIn(ctx, checkInReq("u-1", 50))

	require.NoError(t, err)
	assert.Equal(t, "present", resp.Status)
	assert.Equal(t, "2025-01-06", resp.Date)
	require.NotNil(t, resp.CheckInTime)
	assert.Equal(t, "2025-01-06 08:00:00", *resp.CheckInTime)
	assert.Nil(t, resp.CheckOutTime)
	assert.Equal(t, 1, env.records.creates)

	// Stored in UTC.
	require.Len(t, env.records.records, 1)
	assert.Equal(t, time.UTC, env.records.records[0].CheckInTime.Location())
	assert.Equal(t, 1, env.records.records[0].CheckInTime.Hour())

	require.Len(t, env.notifier.events, 1)
	assert.Equal(t, attendance.EventCheckIn, env.notifier.events[0].Type)
}

// Test check-in at 50m, 08:10 is after the start and recorded late
func TestCheckIn_AfterStartIsLate(t *testing.T) {
	env := newTestEnv()
	env.at(2025, time.January, 6, 8, 10, 0)

	resp, err := env.svc.CheckIn(context.Background(), checkInReq("u-1", 50))

	require.NoError(t, err)
	assert.Equal(t, "late", resp.Status)
	assert.Equal(t, attendance.StatusLate, env.records.records[0].Status)
}

// Test check-in at 09:10 is accepted within the buffer and recorded late
func TestCheckIn_LateWithinBuffer(t *testing.T) {
	env := newTestEnv()
	env.at(2025, time.January, 6, 9, 10, 0)

	resp, err := env.svc.CheckIn(context.Background(), checkInReq("u-1", 50))

	require.NoError(t, err)
	assert.Equal(t, "late", resp.Status)
}

func TestCheckIn_OutsideRadius(t *testing.T) {
	env := newTestEnv()
	env.at(2025, time.January, 6, 8, 10, 0)

	_, err := env.svc.CheckIn(context.Background(), checkInReq("u-1", 150))

	require.Error(t, err)
	assert.True(t, errors.Is(err, attendance.ErrOutsideOfficeRadius))
	assert.Contains(t, err.Error(), "150m from office, maximum 100m")
	assert.Equal(t, 0, env.records.creates)
	assert.Empty(t, env.notifier.events)
}

func TestCheckIn_RadiusBoundary(t *testing.T) {
	env := newTestEnv()
	env.at(2025, time.January, 6, 8, 0, 0)

	_, err := env.svc.CheckIn(context.Background(), checkInReq("u-1", 99.999))
	assert.NoError(t, err)

	_, err = env.svc.CheckIn(context.Background(), checkInReq("u-2", 101))
	assert.True(t, errors.Is(err, attendance.ErrOutsideOfficeRadius))
	assert.Contains(t, err.Error(), "101m from office")
}

func TestCheckIn_WindowBoundaries(t *testing.T) {
	tests := []struct {
		name    string
		hour    int
		minute  int
		second  int
		wantErr bool
		status  string
	}{
		{"start minus buffer", 7, 45, 0, false, "present"},
		{"seconds inside the first allowed minute", 7, 45, 59, false, "present"},
		{"one minute before", 7, 44, 59, true, ""},
		{"exactly start", 8, 0, 0, false, "present"},
		{"seconds past start stay on time", 8, 0, 59, false, "present"},
		{"one minute late", 8, 1, 0, false, "late"},
		{"end plus buffer", 9, 15, 0, false, "late"},
		{"one minute after", 9, 16, 0, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			env.at(2025, time.January, 6, tt.hour, tt.minute, tt.second)

			resp, err := env.svc.CheckIn(context.Background(), checkInReq("u-1", 10))

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, attendance.ErrOutsideCheckInWindow))
				assert.Contains(t, err.Error(), "allowed between 07:45 - 09:15")
				assert.Equal(t, 0, env.records.creates)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.Status)
		})
	}
}

// Test second check-in on the same day is rejected and never inserts
func TestCheckIn_Twice(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.at(2025, time.January, 6, 8, 5, 0)

	_, err := env.svc.CheckIn(ctx, checkInReq("u-1", 10))
	require.NoError(t, err)

	env.at(2025, time.January, 6, 8, 6, 0)
	_, err = env.svc.CheckIn(ctx, checkInReq("u-1", 10))
	assert.True(t, errors.Is(err, attendance.ErrAlreadyCheckedInPendingCheckout))

	env.at(2025, time.January, 6, 17, 30, 0)
	_, err = env.svc.CheckOut(ctx, checkOutReq("u-1", 10))
	require.NoError(t, err)

	env.at(2025, time.January, 6, 8, 30, 0)
	_, err = env.svc.CheckIn(ctx, checkInReq("u-1", 10))
	assert.True(t, errors.Is(err, attendance.ErrAlreadyCheckedInToday))

	assert.Equal(t, 1, env.records.creates)
	assert.Len(t, env.records.records, 1)
}

// Test a unique-constraint race is reported as already checked in
func TestCheckIn_ConcurrentInsertConflict(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.at(2025, time.January, 6, 8, 5, 0)

	_, err := env.svc.CheckIn(ctx, checkInReq("u-1", 10))
	require.NoError(t, err)

	env.records.staleReads = true
	_, err = env.svc.CheckIn(ctx, checkInReq("u-1", 10))

	assert.True(t, errors.Is(err, attendance.ErrAlreadyCheckedInToday))
	assert.Len(t, env.records.records, 1)
}

func TestCheckIn_NotConfigured(t *testing.T) {
	ctx := context.Background()

	env := newTestEnv()
	env.at(2025, time.January, 6, 8, 5, 0)
	env.locations.loc = nil
	_, err := env.svc.CheckIn(ctx, checkInReq("u-1", 10))
	assert.True(t, errors.Is(err, attendance.ErrOfficeLocationNotConfigured))

	env = newTestEnv()
	env.at(2025, time.January, 6, 8, 5, 0)
	env.schedules.s = nil
	_, err = env.svc.CheckIn(ctx, checkInReq("u-1", 10))
	assert.True(t, errors.Is(err, attendance.ErrScheduleNotConfigured))
	assert.Equal(t, 0, env.records.creates)
}

// captureLogs routes the default slog logger into a buffer for the rest of the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

// Test store failures surface as errors and are not logged as rejected attempts
func TestCheckInOut_StoreFailurePropagates(t *testing.T) {
	storeErr := errors.New("connection refused")

	tests := []struct {
		name   string
		action string
		breaks func(env *testEnv)
	}{
		{"check-in office location", "check-in", func(env *testEnv) { env.locations.err = storeErr }},
		{"check-in schedule", "check-in", func(env *testEnv) { env.schedules.err = storeErr }},
		{"check-out office location", "check-out", func(env *testEnv) { env.locations.err = storeErr }},
		{"check-out schedule", "check-out", func(env *testEnv) { env.schedules.err = storeErr }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			env := newTestEnv()

			var err error
			if tt.action == "check-in" {
				env.at(2025, time.January, 6, 8, 0, 0)
				tt.breaks(env)
				logs := captureLogs(t)
				_, err = env.svc.CheckIn(ctx, checkInReq("u-1", 10))
				assert.NotContains(t, logs.String(), "Attendance rejected")
			} else {
				env.at(2025, time.January, 6, 8, 0, 0)
				_, err = env.svc.CheckIn(ctx, checkInReq("u-1", 10))
				require.NoError(t, err)

				env.at(2025, time.January, 6, 17, 30, 0)
				tt.breaks(env)
				logs := captureLogs(t)
				_, err = env.svc.CheckOut(ctx, checkOutReq("u-1", 10))
				assert.NotContains(t, logs.String(), "Attendance rejected")
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, storeErr))
			assert.False(t, errors.Is(err, attendance.ErrOfficeLocationNotConfigured))
			assert.False(t, errors.Is(err, attendance.ErrScheduleNotConfigured))
		})
	}
}

func TestCheckIn_RejectionIsLogged(t *testing.T) {
	env := newTestEnv()
	env.at(2025, time.January, 6, 8, 0, 0)
	logs := captureLogs(t)

	_, err := env.svc.CheckIn(context.Background(), checkInReq("u-1", 150))

	assert.True(t, errors.Is(err, attendance.ErrOutsideOfficeRadius))
	assert.Contains(t, logs.String(), "Attendance rejected")
}

func TestCheckIn_InvalidRequest(t *testing.T) {
	env := newTestEnv()
	env.at(2025, time.January, 6, 8, 5, 0)

	_, err := env.svc.CheckIn(context.Background(), attendance.CheckInRequest{UserID: "u-1", Latitude: ptr(0)})

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "longitude is required", verrs.ToMap()["longitude"])
}

// Test the work date and minute-of-day come from the same zone around local midnight
func TestCheckIn_DayBoundaryUsesCalendarZone(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.schedules.s.CheckInStart = 0
	env.schedules.s.CheckInEnd = 30

	// 2025-01-06 17:10 UTC is 00:10 on the 7th in UTC+7.
	now := time.Date(2025, time.January, 6, 17, 10, 0, 0, time.UTC)
	env.svc.now = func() time.Time { return now }

	resp, err := env.svc.CheckIn(ctx, checkInReq("u-1", 10))
	require.NoError(t, err)
	assert.Equal(t, "2025-01-07", resp.Date)
	assert.Equal(t, "late", resp.Status)
	assert.True(t, env.records.records[0].WorkDate.Equal(time.Date(2025, time.January, 7, 0, 0, 0, 0, time.UTC)))
}

// Test the admission range quoted for a window just after midnight stays within the day
func TestCheckIn_OutsideWindowNearMidnight(t *testing.T) {
	env := newTestEnv()
	env.schedules.s.CheckInStart = 5
	env.schedules.s.CheckInEnd = 20

	// 2025-01-06 17:40 UTC is 00:40 on the 7th in UTC+7.
	now := time.Date(2025, time.January, 6, 17, 40, 0, 0, time.UTC)
	env.svc.now = func() time.Time { return now }

	_, err := env.svc.CheckIn(context.Background(), checkInReq("u-1", 10))

	assert.True(t, errors.Is(err, attendance.ErrOutsideCheckInWindow))
	assert.Contains(t, err.Error(), "allowed between 00:00 - 00:35")
}

func TestCheckOut_Success(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.at(2025, time.January, 6, 7, 55, 0)
	_, err := env.svc.CheckIn(ctx, checkInReq("u-1", 10))
	require.NoError(t, err)

	env.at(2025, time.January, 6, 17, 30, 0)
	resp, err := env.svc.CheckOut(ctx, checkOutReq("u-1", 20))

	require.NoError(t, err)
	require.NotNil(t, resp.CheckOutTime)
	assert.Equal(t, "2025-01-06 17:30:00", *resp.CheckOutTime)
	assert.Equal(t, "present", resp.Status, "check-out never changes the stored status")
	assert.Equal(t, 1, env.records.updates)
	assert.False(t, env.records.records[0].IsOpen())

	require.Len(t, env.notifier.events, 2)
	assert.Equal(t, attendance.EventCheckOut, env.notifier.events[1].Type)
}

func TestCheckOut_RequiresCheckIn(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.at(2025, time.January, 6, 17, 30, 0)

	_, err := env.svc.CheckOut(ctx, checkOutReq("u-1", 10))

	assert.True(t, errors.Is(err, attendance.ErrNotCheckedInToday))
	assert.Equal(t, 0, env.records.updates)
}

func TestCheckOut_Twice(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.at(2025, time.January, 6, 8, 5, 0)
	_, err := env.svc.CheckIn(ctx, checkInReq("u-1", 10))
	require.NoError(t, err)

	env.at(2025, time.January, 6, 17, 30, 0)
	_, err = env.svc.CheckOut(ctx, checkOutReq("u-1", 10))
	require.NoError(t, err)

	env.at(2025, time.January, 6, 17, 45, 0)
	_, err = env.svc.CheckOut(ctx, checkOutReq("u-1", 10))
	assert.True(t, errors.Is(err, attendance.ErrAlreadyCheckedOutToday))
	assert.Equal(t, 1, env.records.updates)
}

func TestCheckOut_OutsideWindowAndRadius(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.at(2025, time.January, 6, 8, 5, 0)
	_, err := env.svc.CheckIn(ctx, checkInReq("u-1", 10))
	require.NoError(t, err)

	env.at(2025, time.January, 6, 16, 44, 0)
	_, err = env.svc.CheckOut(ctx, checkOutReq("u-1", 10))
	assert.True(t, errors.Is(err, attendance.ErrOutsideCheckOutWindow))
	assert.Contains(t, err.Error(), "allowed between 16:45 - 18:15")

	env.at(2025, time.January, 6, 18, 15, 0)
	_, err = env.svc.CheckOut(ctx, checkOutReq("u-1", 500))
	assert.True(t, errors.Is(err, attendance.ErrOutsideOfficeRadius))

	assert.Equal(t, 0, env.records.updates)
	assert.True(t, env.records.records[0].IsOpen())
}

func TestCheckOut_ZeroRowsAffected(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.at(2025, time.January, 6, 8, 5, 0)
	_, err := env.svc.CheckIn(ctx, checkInReq("u-1", 10))
	require.NoError(t, err)

	zero := int64(0)
	env.records.forceAffected = &zero
	env.at(2025, time.January, 6, 17, 30, 0)
	_, err = env.svc.CheckOut(ctx, checkOutReq("u-1", 10))

	assert.True(t, errors.Is(err, attendance.ErrNoActiveCheckInFound))
	assert.Len(t, env.notifier.events, 1)
}

func TestServerTime(t *testing.T) {
	env := newTestEnv()
	env.at(2025, time.January, 6, 23, 59, 30)

	resp, err := env.svc.ServerTime(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "23:59:30", resp.Time)
	assert.Equal(t, "2025-01-06", resp.Date)
	assert.Equal(t, "2025-01-06 23:59:30", resp.DateTime)
	require.NotNil(t, resp.Schedule)
	assert.Equal(t, "07:45", resp.Schedule.CheckIn.EarliestAllowed)

	env.schedules.s = nil
	resp, err = env.svc.ServerTime(context.Background())
	require.NoError(t, err)
	assert.Nil(t, resp.Schedule)
}
