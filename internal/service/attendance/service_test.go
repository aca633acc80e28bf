package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guardsystem/guardpost-backend-go/internal/domain/attendance"
	"github.com/guardsystem/guardpost-backend-go/internal/domain/employee"
	"github.com/guardsystem/guardpost-backend-go/internal/domain/post"
	"github.com/guardsystem/guardpost-backend-go/internal/domain/roster"
	"github.com/guardsystem/guardpost-backend-go/internal/repository/memory"
)

var testLoc = time.FixedZone("BRT", -3*3600)

const (
	// Praça da Sé, São Paulo
	postLat = -23.5505
	postLon = -46.6333
)

type testEnv struct {
	store   *memory.Store
	service *AttendanceServiceImpl
	ctx     context.Context
}

// newTestEnv builds a service over memory repositories with one post,
// two authorized guards and a frozen clock at 08:00 local time.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewStoreFromState(memory.State{
		Employees: []employee.Employee{
			{ID: "emp-1", Name: "Carlos Silva", Active: true, Role: employee.RoleGuard},
			{ID: "emp-2", Name: "João Souza", Active: true, Role: employee.RoleGuard},
			{ID: "emp-3", Name: "Pedro Off", Active: false, Role: employee.RoleGuard},
		},
		Posts: []post.Post{
			{
				ID:                 "post-1",
				Name:               "Posto Central",
				Code:               "CENTRAL-QR",
				Latitude:           postLat,
				Longitude:          postLon,
				RadiusMeters:       100,
				AllowedEmployeeIDs: []string{"emp-1", "emp-2"},
				Windows: []post.ShiftWindow{
					{ID: post.WindowMorning, Active: true, Start: "06:00", End: "14:00"},
					{ID: post.WindowNight, Active: true, Start: "22:00", End: "06:00"},
				},
			},
			{
				ID:                 "post-2",
				Name:               "Posto Anexo",
				Code:               "ANEXO-QR",
				Latitude:           postLat + 0.1,
				Longitude:          postLon,
				RadiusMeters:       100,
				AllowedEmployeeIDs: []string{"emp-1", "emp-2"},
				Windows: []post.ShiftWindow{
					{ID: post.WindowMorning, Active: true, Start: "06:00", End: "14:00"},
				},
			},
		},
	}, testLoc)

	svc := NewAttendanceService(
		memory.NewAttendanceRepository(store),
		memory.NewPostRepository(store),
		memory.NewRosterRepository(store),
		memory.NewEmployeeRepository(store),
		testLoc,
	)
	svc.Clock = func() time.Time {
		// 08:00 local on 2025-03-10, inside the morning window
		return time.Date(2025, 3, 10, 8, 0, 0, 0, testLoc)
	}
	return &testEnv{store: store, service: svc, ctx: context.Background()}
}

func (e *testEnv) plan(t *testing.T, id, postID, employeeID, date string, window post.ShiftWindowID, createdAt time.Time) {
	t.Helper()
	repo := memory.NewRosterRepository(e.store)
	_, err := repo.Create(e.ctx, roster.PlannedShift{
		ID: id, PostID: postID, EmployeeID: employeeID,
		Date: date, Window: window, CreatedAt: createdAt,
	})
	require.NoError(t, err)
}

func (e *testEnv) ledger() []attendance.AttendanceRecord {
	return e.store.Snapshot().AttendanceRecords
}

func atPost(action attendance.ActionType, employeeID string) attendance.AttemptRequest {
	return attendance.AttemptRequest{
		EmployeeID: employeeID,
		Action:     action,
		PostID:     "post-1",
		Location:   attendance.Location{Latitude: postLat, Longitude: postLon},
	}
}

func TestAttemptCheckInOnRoster(t *testing.T) {
	env := newTestEnv(t)
	env.plan(t, "plan-1", "post-1", "emp-1", "2025-03-10", post.WindowMorning, time.Now())

	rec, err := env.service.Attempt(env.ctx, atPost(attendance.ActionCheckIn, "emp-1"))
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusValid, rec.Status)
	assert.Nil(t, rec.SubstitutedEmployeeID)
	assert.Equal(t, "post-1", rec.PostID)
	assert.NotEmpty(t, rec.ID)
	assert.Len(t, env.ledger(), 1)
}

func TestAttemptRejectsOutOfRange(t *testing.T) {
	env := newTestEnv(t)
	env.plan(t, "plan-1", "post-1", "emp-1", "2025-03-10", post.WindowMorning, time.Now())

	req := atPost(attendance.ActionCheckIn, "emp-1")
	// ~150m north of the post
	req.Location.Latitude = postLat + 0.00135

	_, err := env.service.Attempt(env.ctx, req)

	var oor *attendance.OutOfRangeError
	require.ErrorAs(t, err, &oor)
	assert.Greater(t, oor.DistanceMeters, 100.0)
	assert.Equal(t, 100, oor.RadiusMeters)
	assert.Empty(t, env.ledger(), "rejected attempts must not touch the ledger")
}

func TestAttemptAcceptsInsideRadius(t *testing.T) {
	env := newTestEnv(t)
	env.plan(t, "plan-1", "post-1", "emp-1", "2025-03-10", post.WindowMorning, time.Now())

	req := atPost(attendance.ActionCheckIn, "emp-1")
	// ~55m north, inside the 100m radius
	req.Location.Latitude = postLat + 0.0005

	rec, err := env.service.Attempt(env.ctx, req)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusValid, rec.Status)
	assert.Len(t, env.ledger(), 1)
}

func TestAttemptUnknownPost(t *testing.T) {
	env := newTestEnv(t)

	req := atPost(attendance.ActionCheckIn, "emp-1")
	req.PostID = "nope"

	_, err := env.service.Attempt(env.ctx, req)
	assert.ErrorIs(t, err, attendance.ErrUnknownPost)
	assert.Empty(t, env.ledger())
}

func TestAttemptUnauthorizedEmployee(t *testing.T) {
	env := newTestEnv(t)
	store := env.store
	repo := memory.NewEmployeeRepository(store)
	_, err := repo.Create(env.ctx, employee.Employee{ID: "emp-9", Name: "Outro", Active: true, Role: employee.RoleGuard})
	require.NoError(t, err)

	_, err = env.service.Attempt(env.ctx, atPost(attendance.ActionCheckIn, "emp-9"))
	assert.ErrorIs(t, err, attendance.ErrUnauthorizedEmployee)
	assert.Empty(t, env.ledger())
}

func TestAttemptInactiveEmployee(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.Attempt(env.ctx, atPost(attendance.ActionCheckIn, "emp-3"))
	assert.ErrorIs(t, err, employee.ErrEmployeeInactive)
	assert.Empty(t, env.ledger())
}

func TestAttemptCheckInWithActiveShift(t *testing.T) {
	env := newTestEnv(t)
	env.plan(t, "plan-1", "post-1", "emp-1", "2025-03-10", post.WindowMorning, time.Now())

	_, err := env.service.Attempt(env.ctx, atPost(attendance.ActionCheckIn, "emp-1"))
	require.NoError(t, err)

	_, err = env.service.Attempt(env.ctx, atPost(attendance.ActionCheckIn, "emp-1"))
	assert.ErrorIs(t, err, attendance.ErrShiftAlreadyActive)
	assert.Len(t, env.ledger(), 1)
}

func TestAttemptRondaWithoutActiveShift(t *testing.T) {
	env := newTestEnv(t)

	req := atPost(attendance.ActionRonda, "emp-1")
	req.Photos = []string{"photo-1"}

	_, err := env.service.Attempt(env.ctx, req)
	assert.ErrorIs(t, err, attendance.ErrNoActiveShift)

	_, err = env.service.Attempt(env.ctx, atPost(attendance.ActionCheckOut, "emp-1"))
	assert.ErrorIs(t, err, attendance.ErrNoActiveShift)
	assert.Empty(t, env.ledger())
}

func TestAttemptRondaRequiresEvidence(t *testing.T) {
	env := newTestEnv(t)
	env.plan(t, "plan-1", "post-1", "emp-1", "2025-03-10", post.WindowMorning, time.Now())

	_, err := env.service.Attempt(env.ctx, atPost(attendance.ActionCheckIn, "emp-1"))
	require.NoError(t, err)

	_, err = env.service.Attempt(env.ctx, atPost(attendance.ActionRonda, "emp-1"))
	assert.ErrorIs(t, err, attendance.ErrMissingEvidence)
	assert.Len(t, env.ledger(), 1, "failed ronda must not append")

	req := atPost(attendance.ActionRonda, "emp-1")
	req.Photos = []string{"photo-1", "photo-2"}
	rec, err := env.service.Attempt(env.ctx, req)
	require.NoError(t, err)
	assert.Equal(t, attendance.ActionRonda, rec.Type)
	assert.Len(t, rec.Photos, 2)
	assert.Len(t, env.ledger(), 2)
}

func TestAttemptRondaAtWrongPost(t *testing.T) {
	env := newTestEnv(t)
	env.plan(t, "plan-1", "post-1", "emp-1", "2025-03-10", post.WindowMorning, time.Now())

	_, err := env.service.Attempt(env.ctx, atPost(attendance.ActionCheckIn, "emp-1"))
	require.NoError(t, err)

	req := attendance.AttemptRequest{
		EmployeeID: "emp-1",
		Action:     attendance.ActionRonda,
		PostID:     "post-2",
		Location:   attendance.Location{Latitude: postLat + 0.1, Longitude: postLon},
		Photos:     []string{"photo-1"},
	}
	_, err = env.service.Attempt(env.ctx, req)
	assert.ErrorIs(t, err, attendance.ErrWrongPost)
	assert.Len(t, env.ledger(), 1)
}

func TestAttemptCheckOutClosesShift(t *testing.T) {
	env := newTestEnv(t)
	env.plan(t, "plan-1", "post-1", "emp-1", "2025-03-10", post.WindowMorning, time.Now())

	_, err := env.service.Attempt(env.ctx, atPost(attendance.ActionCheckIn, "emp-1"))
	require.NoError(t, err)

	active, err := env.service.ActiveShift(env.ctx, "emp-1")
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, "post-1", active.PostID)

	env.service.Clock = func() time.Time {
		return time.Date(2025, 3, 10, 13, 0, 0, 0, testLoc)
	}
	_, err = env.service.Attempt(env.ctx, atPost(attendance.ActionCheckOut, "emp-1"))
	require.NoError(t, err)

	active, err = env.service.ActiveShift(env.ctx, "emp-1")
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestAttemptCheckInOutsideEveryWindow(t *testing.T) {
	env := newTestEnv(t)
	env.plan(t, "plan-1", "post-1", "emp-1", "2025-03-10", post.WindowMorning, time.Now())

	// 16:30 local falls in no active window of post-1
	env.service.Clock = func() time.Time {
		return time.Date(2025, 3, 10, 16, 30, 0, 0, testLoc)
	}

	rec, err := env.service.Attempt(env.ctx, atPost(attendance.ActionCheckIn, "emp-2"))
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusMismatch, rec.Status)
	assert.Nil(t, rec.SubstitutedEmployeeID)
}

func TestAttemptCheckInAsSubstitute(t *testing.T) {
	env := newTestEnv(t)
	env.plan(t, "plan-1", "post-1", "emp-1", "2025-03-10", post.WindowMorning, time.Now())

	rec, err := env.service.Attempt(env.ctx, atPost(attendance.ActionCheckIn, "emp-2"))
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusSubstitution, rec.Status)
	require.NotNil(t, rec.SubstitutedEmployeeID)
	assert.Equal(t, "emp-1", *rec.SubstitutedEmployeeID)
}

func TestSubstitutionAttributedToEarliestEntry(t *testing.T) {
	env := newTestEnv(t)
	base := time.Date(2025, 3, 9, 12, 0, 0, 0, testLoc)
	env.plan(t, "plan-b", "post-1", "emp-1", "2025-03-10", post.WindowMorning, base)
	// A later duplicate entry for the same slot must not win
	repoEmp := memory.NewEmployeeRepository(env.store)
	_, err := repoEmp.Create(env.ctx, employee.Employee{ID: "emp-4", Name: "Quarto", Active: true, Role: employee.RoleGuard})
	require.NoError(t, err)
	env.plan(t, "plan-c", "post-1", "emp-4", "2025-03-10", post.WindowMorning, base.Add(time.Hour))

	rec, err := env.service.Attempt(env.ctx, atPost(attendance.ActionCheckIn, "emp-2"))
	require.NoError(t, err)
	require.NotNil(t, rec.SubstitutedEmployeeID)
	assert.Equal(t, "emp-1", *rec.SubstitutedEmployeeID)
}

func TestAttemptCheckInUnplannedSlot(t *testing.T) {
	env := newTestEnv(t)

	rec, err := env.service.Attempt(env.ctx, atPost(attendance.ActionCheckIn, "emp-1"))
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusSubstitution, rec.Status)
	assert.Nil(t, rec.SubstitutedEmployeeID, "nobody was planned, so nobody was substituted")
}

func TestValidateDoesNotAppend(t *testing.T) {
	env := newTestEnv(t)
	env.plan(t, "plan-1", "post-1", "emp-1", "2025-03-10", post.WindowMorning, time.Now())

	err := env.service.Validate(env.ctx, atPost(attendance.ActionCheckIn, "emp-1"))
	require.NoError(t, err)
	assert.Empty(t, env.ledger())

	req := atPost(attendance.ActionCheckIn, "emp-1")
	req.Location.Latitude = postLat + 0.01
	err = env.service.Validate(env.ctx, req)
	var oor *attendance.OutOfRangeError
	assert.ErrorAs(t, err, &oor)
}

func TestClassifyAtivo(t *testing.T) {
	env := newTestEnv(t)
	env.plan(t, "plan-1", "post-1", "emp-1", "2025-03-10", post.WindowMorning, time.Now())

	_, err := env.service.Attempt(env.ctx, atPost(attendance.ActionCheckIn, "emp-1"))
	require.NoError(t, err)
	env.service.Clock = func() time.Time {
		return time.Date(2025, 3, 10, 13, 30, 0, 0, testLoc)
	}
	_, err = env.service.Attempt(env.ctx, atPost(attendance.ActionCheckOut, "emp-1"))
	require.NoError(t, err)

	slots, err := env.service.Classify(env.ctx, "post-1", "2025-03-10")
	require.NoError(t, err)
	require.Len(t, slots, 1)

	assert.Equal(t, attendance.SlotAtivo, slots[0].Kind)
	assert.Equal(t, post.WindowMorning, slots[0].Window)
	assert.Equal(t, "emp-1", slots[0].EmployeeID)
	assert.Equal(t, "Carlos Silva", slots[0].EmployeeName)
	require.NotNil(t, slots[0].CheckIn)
	require.NotNil(t, slots[0].CheckOut)
	assert.True(t, slots[0].CheckOut.After(*slots[0].CheckIn))
}

func TestClassifyFalta(t *testing.T) {
	env := newTestEnv(t)
	env.plan(t, "plan-1", "post-1", "emp-1", "2025-03-10", post.WindowMorning, time.Now())

	slots, err := env.service.Classify(env.ctx, "post-1", "2025-03-10")
	require.NoError(t, err)
	require.Len(t, slots, 1)

	assert.Equal(t, attendance.SlotFalta, slots[0].Kind)
	assert.Equal(t, "emp-1", slots[0].EmployeeID)
	assert.Nil(t, slots[0].CheckIn)
}

func TestClassifySubstituicao(t *testing.T) {
	env := newTestEnv(t)
	env.plan(t, "plan-1", "post-1", "emp-1", "2025-03-10", post.WindowMorning, time.Now())

	_, err := env.service.Attempt(env.ctx, atPost(attendance.ActionCheckIn, "emp-2"))
	require.NoError(t, err)

	slots, err := env.service.Classify(env.ctx, "post-1", "2025-03-10")
	require.NoError(t, err)
	require.Len(t, slots, 1)

	assert.Equal(t, attendance.SlotSubstituicao, slots[0].Kind)
	assert.Equal(t, post.WindowMorning, slots[0].Window)
	assert.Equal(t, "emp-2", slots[0].EmployeeID)
	assert.Equal(t, "João Souza", slots[0].EmployeeName)
	assert.Equal(t, "emp-1", slots[0].SubstitutedEmployeeID)
	assert.Equal(t, "Carlos Silva", slots[0].SubstitutedName)
}

func TestClassifySurfacesEverySubstitute(t *testing.T) {
	env := newTestEnv(t)
	env.plan(t, "plan-1", "post-1", "emp-1", "2025-03-10", post.WindowMorning, time.Now())

	repoEmp := memory.NewEmployeeRepository(env.store)
	_, err := repoEmp.Create(env.ctx, employee.Employee{ID: "emp-5", Name: "Quinto", Active: true, Role: employee.RoleGuard})
	require.NoError(t, err)

	// Two manual substitutions for the same absent slot
	for _, sub := range []string{"emp-2", "emp-5"} {
		_, err := env.service.RegisterSubstitution(env.ctx, attendance.ManualSubstitutionRequest{
			PostID:                "post-1",
			Date:                  "2025-03-10",
			Window:                string(post.WindowMorning),
			SubstituteEmployeeID:  sub,
			SubstitutedEmployeeID: "emp-1",
		})
		require.NoError(t, err)
	}

	slots, err := env.service.Classify(env.ctx, "post-1", "2025-03-10")
	require.NoError(t, err)
	require.Len(t, slots, 2, "each substitute surfaces as its own entry")
	for _, s := range slots {
		assert.Equal(t, attendance.SlotSubstituicao, s.Kind)
		assert.Equal(t, "emp-1", s.SubstitutedEmployeeID)
	}
	assert.Equal(t, "emp-2", slots[0].EmployeeID)
	assert.Equal(t, "emp-5", slots[1].EmployeeID)
}

func TestClassifyPlaceholderForDeletedEmployee(t *testing.T) {
	env := newTestEnv(t)
	env.plan(t, "plan-1", "post-1", "emp-ghost", "2025-03-10", post.WindowMorning, time.Now())

	slots, err := env.service.Classify(env.ctx, "post-1", "2025-03-10")
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, employee.PlaceholderName, slots[0].EmployeeName)
}

func TestRegisterSubstitutionUsesPostCoordinatesAndServerTime(t *testing.T) {
	env := newTestEnv(t)

	rec, err := env.service.RegisterSubstitution(env.ctx, attendance.ManualSubstitutionRequest{
		PostID:                "post-1",
		Date:                  "2025-03-10",
		Window:                string(post.WindowMorning),
		SubstituteEmployeeID:  "emp-2",
		SubstitutedEmployeeID: "emp-1",
	})
	require.NoError(t, err)

	assert.Equal(t, postLat, rec.Latitude)
	assert.Equal(t, postLon, rec.Longitude)
	assert.Equal(t, attendance.ActionCheckIn, rec.Type)
	assert.Equal(t, attendance.StatusSubstitution, rec.Status)
	require.NotNil(t, rec.SubstitutedEmployeeID)
	assert.Equal(t, "emp-1", *rec.SubstitutedEmployeeID)
	assert.Equal(t, env.service.Clock().UTC(), rec.Timestamp)
}

func TestHistoryNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	env.plan(t, "plan-1", "post-1", "emp-1", "2025-03-10", post.WindowMorning, time.Now())

	_, err := env.service.Attempt(env.ctx, atPost(attendance.ActionCheckIn, "emp-1"))
	require.NoError(t, err)

	env.service.Clock = func() time.Time {
		return time.Date(2025, 3, 10, 13, 0, 0, 0, testLoc)
	}
	_, err = env.service.Attempt(env.ctx, atPost(attendance.ActionCheckOut, "emp-1"))
	require.NoError(t, err)

	records, err := env.service.History(env.ctx, "emp-1", 10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, attendance.ActionCheckOut, records[0].Type)
	assert.Equal(t, attendance.ActionCheckIn, records[1].Type)

	limited, err := env.service.History(env.ctx, "emp-1", 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, attendance.ActionCheckOut, limited[0].Type)
}
