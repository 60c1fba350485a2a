package attendance

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/location"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/workday"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/ws"
)

type fakeAttendanceRepo struct {
	mu      sync.Mutex
	records []attendance.Attendance
	users   map[string]user.User

	// staleReads makes GetByUserAndDate miss existing rows, as a concurrent request would.
	staleReads    bool
	forceAffected *int64
	listErr       error

	creates int
	updates int
}

func (f *fakeAttendanceRepo) GetByUserAndDate(ctx context.Context, userID string, workDate time.Time) (*attendance.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.staleReads {
		return nil, nil
	}
	for _, r := range f.records {
		if r.UserID == userID && r.WorkDate.Equal(workDate) {
			rec := r
			return &rec, nil
		}
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) CreateCheckIn(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, r := range f.records {
		if r.UserID == a.UserID && r.WorkDate.Equal(a.WorkDate) {
			return attendance.Attendance{}, attendance.ErrRecordConflict
		}
	}
	f.creates++
	a.ID = fmt.Sprintf("att-%d", len(f.records)+1)
	a.CreatedAt = *a.CheckInTime
	a.UpdatedAt = *a.CheckInTime
	f.records = append(f.records, a)
	return a, nil
}

func (f *fakeAttendanceRepo) UpdateCheckOut(ctx context.Context, userID string, workDate time.Time, at time.Time, latitude, longitude float64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.forceAffected != nil {
		return *f.forceAffected, nil
	}
	for i, r := range f.records {
		if r.UserID == userID && r.WorkDate.Equal(workDate) && r.IsOpen() {
			f.updates++
			f.records[i].CheckOutTime = &at
			f.records[i].CheckOutLatitude = &latitude
			f.records[i].CheckOutLongitude = &longitude
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeAttendanceRepo) ListByUser(ctx context.Context, userID string) ([]attendance.Attendance, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []attendance.Attendance
	for _, r := range f.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sortByLatest(out)
	return out, nil
}

func (f *fakeAttendanceRepo) ListAllWithUser(ctx context.Context) ([]attendance.Attendance, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []attendance.Attendance
	for _, r := range f.records {
		if joined, ok := f.join(r); ok {
			out = append(out, joined)
		}
	}
	sortByLatest(out)
	return out, nil
}

func (f *fakeAttendanceRepo) ListByDateWithUser(ctx context.Context, workDate time.Time) ([]attendance.Attendance, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []attendance.Attendance
	for _, r := range f.records {
		if !r.WorkDate.Equal(workDate) {
			continue
		}
		if joined, ok := f.join(r); ok {
			out = append(out, joined)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListOpenByDate(ctx context.Context, workDate time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, r := range f.records {
		if r.WorkDate.Equal(workDate) && r.IsOpen() {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) join(r attendance.Attendance) (attendance.Attendance, bool) {
	u, ok := f.users[r.UserID]
	if !ok || u.IsAdmin() {
		return attendance.Attendance{}, false
	}
	username, fullName := u.Username, u.FullName
	r.Username = &username
	r.FullName = &fullName
	return r, true
}

func sortByLatest(records []attendance.Attendance) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i].LatestEvent(), records[j].LatestEvent()
		if a == nil || b == nil {
			return b == nil && a != nil
		}
		return a.After(*b)
	})
}

type fakeLocationRepo struct {
	loc *location.OfficeLocation
	err error
}

func (f *fakeLocationRepo) Get(ctx context.Context) (*location.OfficeLocation, error) {
	return f.loc, f.err
}

func (f *fakeLocationRepo) Upsert(ctx context.Context, loc location.OfficeLocation) (location.OfficeLocation, error) {
	f.loc = &loc
	return loc, nil
}

type fakeScheduleRepo struct {
	s   *schedule.AttendanceSchedule
	err error
}

func (f *fakeScheduleRepo) Get(ctx context.Context) (*schedule.AttendanceSchedule, error) {
	return f.s, f.err
}

func (f *fakeScheduleRepo) Upsert(ctx context.Context, s schedule.AttendanceSchedule) (schedule.AttendanceSchedule, error) {
	f.s = &s
	return s, nil
}

type fakeUserRepo struct {
	users []user.User
	err   error
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (user.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) Create(ctx context.Context, newUser user.User) (user.User, error) {
	f.users = append(f.users, newUser)
	return newUser, nil
}

func (f *fakeUserRepo) ListNonAdmin(ctx context.Context) ([]user.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []user.User
	for _, u := range f.users {
		if !u.IsAdmin() {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []ws.Event
}

func (f *fakeNotifier) Broadcast(event ws.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

type testEnv struct {
	svc       *AttendanceServiceImpl
	records   *fakeAttendanceRepo
	locations *fakeLocationRepo
	schedules *fakeScheduleRepo
	users     *fakeUserRepo
	notifier  *fakeNotifier
	calendar  workday.Calendar
}

var testUsers = []user.User{
	{ID: "u-1", Username: "alice", FullName: "Alice Putri", Role: user.RoleUser},
	{ID: "u-2", Username: "budi", FullName: "Budi Santoso", Role: user.RoleUser},
	{ID: "u-3", Username: "citra", FullName: "Citra Dewi", Role: user.RoleUser},
	{ID: "admin-1", Username: "admin", FullName: "Administrator", Role: user.RoleAdmin},
}

// newTestEnv configures an office at (0,0) with a 100m radius, check-in 08:00-09:00
// and check-out 17:00-18:00 on a UTC+7 calendar.
func newTestEnv() *testEnv {
	cal := workday.Default()

	userIndex := make(map[string]user.User, len(testUsers))
	for _, u := range testUsers {
		userIndex[u.ID] = u
	}

	env := &testEnv{
		records:   &fakeAttendanceRepo{users: userIndex},
		locations: &fakeLocationRepo{loc: &location.OfficeLocation{Latitude: 0, Longitude: 0, RadiusMeters: 100}},
		schedules: &fakeScheduleRepo{s: &schedule.AttendanceSchedule{
			CheckInStart:  schedule.MustParseClockTime("08:00"),
			CheckInEnd:    schedule.MustParseClockTime("09:00"),
			CheckOutStart: schedule.MustParseClockTime("17:00"),
			CheckOutEnd:   schedule.MustParseClockTime("18:00"),
		}},
		users:    &fakeUserRepo{users: testUsers},
		notifier: &fakeNotifier{},
		calendar: cal,
	}

	env.svc = NewAttendanceService(env.records, env.locations, env.schedules, env.users, cal, env.notifier).(*AttendanceServiceImpl)
	return env
}

// at pins the service clock to a local wall-clock time in the test calendar.
func (e *testEnv) at(year int, month time.Month, day, hour, minute, second int) time.Time {
	t := time.Date(year, month, day, hour, minute, second, 0, e.calendar.Location())
	e.svc.now = func() time.Time { return t }
	return t
}
