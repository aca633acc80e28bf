package patrol

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guardsystem/guardpost-backend-go/internal/domain/attendance"
	"github.com/guardsystem/guardpost-backend-go/internal/domain/employee"
	"github.com/guardsystem/guardpost-backend-go/internal/domain/post"
	"github.com/guardsystem/guardpost-backend-go/internal/domain/roster"
	"github.com/guardsystem/guardpost-backend-go/internal/repository/memory"
	attendanceService "github.com/guardsystem/guardpost-backend-go/internal/service/attendance"
)

var testLoc = time.FixedZone("BRT", -3*3600)

const (
	postLat = -23.5505
	postLon = -46.6333
)

// fakeLocations replays a scripted sequence of readings and errors.
type fakeLocations struct {
	calls    int
	readings []attendance.Location
	errs     []error
}

func (f *fakeLocations) CurrentLocation(ctx context.Context) (attendance.Location, error) {
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return attendance.Location{}, f.errs[i]
	}
	if i < len(f.readings) {
		return f.readings[i], nil
	}
	return attendance.Location{Latitude: postLat, Longitude: postLon}, nil
}

func atThePost() attendance.Location {
	return attendance.Location{Latitude: postLat, Longitude: postLon}
}

func newWorkflowEnv(t *testing.T, locations LocationProvider) (*Workflow, *memory.Store) {
	t.Helper()
	store := memory.NewStoreFromState(memory.State{
		Employees: []employee.Employee{
			{ID: "emp-1", Name: "Carlos Silva", Active: true, Role: employee.RoleGuard},
		},
		Posts: []post.Post{
			{
				ID:                 "post-1",
				Name:               "Posto Central",
				Code:               "CENTRAL-QR",
				Latitude:           postLat,
				Longitude:          postLon,
				RadiusMeters:       100,
				AllowedEmployeeIDs: []string{"emp-1"},
				Windows: []post.ShiftWindow{
					{ID: post.WindowMorning, Active: true, Start: "06:00", End: "14:00"},
				},
			},
			{
				ID:                 "post-2",
				Name:               "Posto Anexo",
				Code:               "ANEXO-QR",
				Latitude:           postLat + 0.1,
				Longitude:          postLon,
				RadiusMeters:       100,
				AllowedEmployeeIDs: []string{"emp-1"},
				Windows: []post.ShiftWindow{
					{ID: post.WindowMorning, Active: true, Start: "06:00", End: "14:00"},
				},
			},
		},
		PlannedShifts: []roster.PlannedShift{
			{ID: "plan-1", PostID: "post-1", EmployeeID: "emp-1", Date: "2025-03-10", Window: post.WindowMorning},
		},
	}, testLoc)

	postRepo := memory.NewPostRepository(store)
	svc := attendanceService.NewAttendanceService(
		memory.NewAttendanceRepository(store),
		postRepo,
		memory.NewRosterRepository(store),
		memory.NewEmployeeRepository(store),
		testLoc,
	)
	svc.Clock = func() time.Time {
		return time.Date(2025, 3, 10, 8, 0, 0, 0, testLoc)
	}

	w := NewWorkflowWithOptions(svc, locations, RepositoryResolver{Posts: postRepo}, "emp-1", Options{
		LocationAttempts: 3,
		LocationTimeout:  50 * time.Millisecond,
		RetryDelay:       0,
	})
	return w, store
}

func TestStartCheckInByScannedCode(t *testing.T) {
	w, store := newWorkflowEnv(t, &fakeLocations{readings: []attendance.Location{atThePost()}})

	rec, err := w.Start(context.Background(), attendance.ActionCheckIn, ModeScan, "CENTRAL-QR")
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Equal(t, "post-1", rec.PostID)
	assert.Equal(t, attendance.StatusValid, rec.Status)
	assert.Equal(t, StateIdle, w.State())
	assert.Len(t, store.Snapshot().AttendanceRecords, 1)
}

func TestStartWithoutCodeOrActiveShift(t *testing.T) {
	w, store := newWorkflowEnv(t, &fakeLocations{})

	_, err := w.Start(context.Background(), attendance.ActionCheckIn, ModeManual, "")
	assert.ErrorIs(t, err, ErrNoPostContext)
	assert.Equal(t, StateAwaitingPostSelection, w.State())
	assert.Empty(t, store.Snapshot().AttendanceRecords)
}

func TestStartUnknownCode(t *testing.T) {
	w, _ := newWorkflowEnv(t, &fakeLocations{})

	_, err := w.Start(context.Background(), attendance.ActionCheckIn, ModeManual, "NOPE-QR")
	assert.ErrorIs(t, err, attendance.ErrUnknownPost)
	assert.Equal(t, StateAwaitingPostSelection, w.State())
}

func TestStartExhaustsLocationAttempts(t *testing.T) {
	gpsErr := fmt.Errorf("no fix")
	locations := &fakeLocations{errs: []error{gpsErr, gpsErr, gpsErr}}
	w, store := newWorkflowEnv(t, locations)

	_, err := w.Start(context.Background(), attendance.ActionCheckIn, ModeScan, "CENTRAL-QR")
	assert.ErrorIs(t, err, attendance.ErrGPSUnavailable)
	assert.Equal(t, 3, locations.calls)
	assert.Equal(t, StateIdle, w.State())
	assert.Empty(t, store.Snapshot().AttendanceRecords)
}

func TestStartRecoversOnLateFix(t *testing.T) {
	locations := &fakeLocations{
		errs:     []error{errors.New("no fix"), errors.New("no fix"), nil},
		readings: []attendance.Location{{}, {}, atThePost()},
	}
	w, _ := newWorkflowEnv(t, locations)

	rec, err := w.Start(context.Background(), attendance.ActionCheckIn, ModeScan, "CENTRAL-QR")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, 3, locations.calls)
}

func TestStartRejectsOutOfRange(t *testing.T) {
	far := attendance.Location{Latitude: postLat + 0.01, Longitude: postLon}
	w, store := newWorkflowEnv(t, &fakeLocations{readings: []attendance.Location{far}})

	_, err := w.Start(context.Background(), attendance.ActionCheckIn, ModeScan, "CENTRAL-QR")

	var oor *attendance.OutOfRangeError
	require.ErrorAs(t, err, &oor)
	assert.Equal(t, StateIdle, w.State())
	assert.Empty(t, store.Snapshot().AttendanceRecords)
}

func TestRondaCaptureFlow(t *testing.T) {
	w, store := newWorkflowEnv(t, &fakeLocations{})
	ctx := context.Background()

	_, err := w.Start(ctx, attendance.ActionCheckIn, ModeScan, "CENTRAL-QR")
	require.NoError(t, err)

	rec, err := w.Start(ctx, attendance.ActionRonda, ModeScan, "")
	require.NoError(t, err)
	assert.Nil(t, rec, "ronda commits on submit, not on start")
	assert.Equal(t, StateCapturingEvidence, w.State())

	require.NoError(t, w.AddPhoto("photo-1"))
	require.NoError(t, w.AddPhoto("photo-2"))
	assert.Equal(t, 2, w.PhotoCount())

	committed, err := w.Submit(ctx)
	require.NoError(t, err)
	require.NotNil(t, committed)
	assert.Equal(t, attendance.ActionRonda, committed.Type)
	assert.Len(t, committed.Photos, 2)
	assert.Equal(t, StateIdle, w.State())

	// Check-in plus the ronda
	assert.Len(t, store.Snapshot().AttendanceRecords, 2)
}

func TestAddPhotoCeiling(t *testing.T) {
	w, _ := newWorkflowEnv(t, &fakeLocations{})
	ctx := context.Background()

	_, err := w.Start(ctx, attendance.ActionCheckIn, ModeScan, "CENTRAL-QR")
	require.NoError(t, err)
	_, err = w.Start(ctx, attendance.ActionRonda, ModeScan, "")
	require.NoError(t, err)

	for i := 0; i < attendance.MaxRondaPhotos; i++ {
		require.NoError(t, w.AddPhoto(fmt.Sprintf("photo-%d", i)))
	}
	err = w.AddPhoto("one-too-many")
	assert.ErrorIs(t, err, ErrTooManyPhotos)
	assert.Equal(t, attendance.MaxRondaPhotos, w.PhotoCount())
}

func TestAddPhotoOutsideCapture(t *testing.T) {
	w, _ := newWorkflowEnv(t, &fakeLocations{})

	assert.ErrorIs(t, w.AddPhoto("photo-1"), ErrInvalidState)

	_, err := w.Submit(context.Background())
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestCancelReleasesState(t *testing.T) {
	w, store := newWorkflowEnv(t, &fakeLocations{})
	ctx := context.Background()

	_, err := w.Start(ctx, attendance.ActionCheckIn, ModeScan, "CENTRAL-QR")
	require.NoError(t, err)
	_, err = w.Start(ctx, attendance.ActionRonda, ModeScan, "")
	require.NoError(t, err)
	require.NoError(t, w.AddPhoto("photo-1"))

	w.Cancel()

	assert.Equal(t, StateIdle, w.State())
	assert.Equal(t, 0, w.PhotoCount())
	assert.ErrorIs(t, w.AddPhoto("photo-2"), ErrInvalidState)
	// Only the check-in made it to the ledger
	assert.Len(t, store.Snapshot().AttendanceRecords, 1)
}

func TestWrongPostReturnsToSelection(t *testing.T) {
	w, _ := newWorkflowEnv(t, &fakeLocations{})
	ctx := context.Background()

	_, err := w.Start(ctx, attendance.ActionCheckIn, ModeScan, "CENTRAL-QR")
	require.NoError(t, err)

	// Open shift is at post-1; scanning the other post must bounce back
	// to post selection rather than all the way to idle.
	_, err = w.Start(ctx, attendance.ActionCheckOut, ModeScan, "ANEXO-QR")
	assert.ErrorIs(t, err, attendance.ErrWrongPost)
	assert.Equal(t, StateAwaitingPostSelection, w.State())

	rec, err := w.Start(ctx, attendance.ActionCheckOut, ModeScan, "CENTRAL-QR")
	require.NoError(t, err)
	assert.Equal(t, attendance.ActionCheckOut, rec.Type)
	assert.Equal(t, StateIdle, w.State())
}
