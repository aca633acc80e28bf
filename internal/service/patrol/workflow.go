// Package patrol drives the interactive flow a guard walks through to
// record an action: pick a post, acquire a GPS reading, pass the
// geofence, capture evidence for rondas, and submit. The workflow holds
// no ledger state of its own; the single side effect of a run is the one
// record the attendance service appends on a successful submit.
package patrol

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/guardsystem/guardpost-backend-go/internal/domain/attendance"
	"github.com/guardsystem/guardpost-backend-go/internal/domain/post"
)

type State string

const (
	StateIdle                  State = "IDLE"
	StateAwaitingPostSelection State = "AWAITING_POST_SELECTION"
	StateLocating              State = "LOCATING"
	StateGeofenceCheck         State = "GEOFENCE_CHECK"
	StateCapturingEvidence     State = "CAPTURING_EVIDENCE"
	StateSubmitting            State = "SUBMITTING"
)

// ResolveMode says how the operator identified the post.
type ResolveMode string

const (
	ModeScan   ResolveMode = "SCAN"
	ModeManual ResolveMode = "MANUAL"
)

// LocationProvider supplies a single device GPS reading. Implementations
// must honor the context deadline.
type LocationProvider interface {
	CurrentLocation(ctx context.Context) (attendance.Location, error)
}

// PostResolver resolves an operator-entered or scanned code to a post.
type PostResolver interface {
	ResolveCode(ctx context.Context, code string) (post.Post, error)
}

// RepositoryResolver adapts a post repository to PostResolver.
type RepositoryResolver struct {
	Posts post.PostRepository
}

func (r RepositoryResolver) ResolveCode(ctx context.Context, code string) (post.Post, error) {
	return r.Posts.GetByCode(ctx, code)
}

// Workflow errors
var (
	ErrInvalidState  = errors.New("operation not available in the current workflow state")
	ErrNoPostContext = errors.New("select a post or open a shift before acting")
	ErrTooManyPhotos = fmt.Errorf("a ronda carries at most %d photos", attendance.MaxRondaPhotos)
)

// Options bound the location acquisition step.
type Options struct {
	LocationAttempts int
	LocationTimeout  time.Duration
	RetryDelay       time.Duration
}

func defaultOptions() Options {
	return Options{
		LocationAttempts: 3,
		LocationTimeout:  10 * time.Second,
		RetryDelay:       1500 * time.Millisecond,
	}
}

// Workflow is a single-operator interactive session. It is not safe for
// concurrent use; one workflow instance serves one device session, and
// at most one location acquisition is ever in flight.
type Workflow struct {
	validator  attendance.AttendanceService
	locations  LocationProvider
	posts      PostResolver
	employeeID string
	opts       Options

	state    State
	action   attendance.ActionType
	targetID string
	location *attendance.Location
	photos   []string
}

func NewWorkflow(validator attendance.AttendanceService, locations LocationProvider, posts PostResolver, employeeID string) *Workflow {
	return NewWorkflowWithOptions(validator, locations, posts, employeeID, defaultOptions())
}

func NewWorkflowWithOptions(validator attendance.AttendanceService, locations LocationProvider, posts PostResolver, employeeID string, opts Options) *Workflow {
	if opts.LocationAttempts <= 0 {
		opts.LocationAttempts = defaultOptions().LocationAttempts
	}
	if opts.LocationTimeout <= 0 {
		opts.LocationTimeout = defaultOptions().LocationTimeout
	}
	return &Workflow{
		validator:  validator,
		locations:  locations,
		posts:      posts,
		employeeID: employeeID,
		opts:       opts,
		state:      StateIdle,
	}
}

func (w *Workflow) State() State { return w.state }

// PhotoCount reports the evidence accumulated so far.
func (w *Workflow) PhotoCount() int { return len(w.photos) }

// Start runs the flow for one action. The post is resolved from the
// scanned or manually entered code; when the operator already has an
// active shift the action is bound to that shift's post, and a code
// naming any other post is a wrong-post failure.
//
// For CHECK_IN and CHECK_OUT the returned record is the committed ledger
// entry. For RONDA, Start returns nil and leaves the workflow in
// CapturingEvidence; the record is committed by Submit.
func (w *Workflow) Start(ctx context.Context, action attendance.ActionType, mode ResolveMode, code string) (*attendance.AttendanceRecord, error) {
	if w.state != StateIdle && w.state != StateAwaitingPostSelection {
		return nil, ErrInvalidState
	}
	w.state = StateAwaitingPostSelection
	w.action = action

	targetID, err := w.resolveTarget(ctx, code)
	if err != nil {
		w.reset(StateAwaitingPostSelection)
		return nil, err
	}
	w.targetID = targetID

	w.state = StateLocating
	loc, err := w.acquireLocation(ctx)
	if err != nil {
		w.reset(StateIdle)
		return nil, err
	}
	w.location = &loc

	w.state = StateGeofenceCheck
	req := attendance.AttemptRequest{
		EmployeeID: w.employeeID,
		Action:     action,
		PostID:     targetID,
		Location:   loc,
	}

	if action == attendance.ActionRonda {
		// Geofence and authorization only; evidence is withheld until the
		// operator submits.
		if err := w.validator.Validate(ctx, req); err != nil {
			w.fail(err)
			return nil, err
		}
		w.photos = nil
		w.state = StateCapturingEvidence
		return nil, nil
	}

	w.state = StateSubmitting
	rec, err := w.validator.Attempt(ctx, req)
	if err != nil {
		w.fail(err)
		return nil, err
	}
	w.reset(StateIdle)
	return &rec, nil
}

// AddPhoto appends one evidence payload during capture. The 15-photo
// ceiling is enforced here, at the capture stage.
func (w *Workflow) AddPhoto(payload string) error {
	if w.state != StateCapturingEvidence {
		return ErrInvalidState
	}
	if len(w.photos) >= attendance.MaxRondaPhotos {
		return ErrTooManyPhotos
	}
	w.photos = append(w.photos, payload)
	return nil
}

// Submit commits a ronda with the accumulated evidence.
func (w *Workflow) Submit(ctx context.Context) (*attendance.AttendanceRecord, error) {
	if w.state != StateCapturingEvidence {
		return nil, ErrInvalidState
	}
	w.state = StateSubmitting

	rec, err := w.validator.Attempt(ctx, attendance.AttemptRequest{
		EmployeeID: w.employeeID,
		Action:     attendance.ActionRonda,
		PostID:     w.targetID,
		Location:   *w.location,
		Photos:     w.photos,
	})
	if err != nil {
		w.fail(err)
		return nil, err
	}
	w.reset(StateIdle)
	return &rec, nil
}

// Cancel abandons the flow from any interactive state and releases held
// evidence and location state. No record is ever half-written: the only
// ledger append happens inside a successful Submit/Start.
func (w *Workflow) Cancel() {
	w.reset(StateIdle)
}

// resolveTarget turns the operator's selection into a post ID. An empty
// code is only valid when an active shift already binds the session to a
// post (the scan-on-open-shift shortcut).
func (w *Workflow) resolveTarget(ctx context.Context, code string) (string, error) {
	active, err := w.validator.ActiveShift(ctx, w.employeeID)
	if err != nil {
		return "", err
	}

	if code == "" {
		if active == nil {
			return "", ErrNoPostContext
		}
		return active.PostID, nil
	}

	target, err := w.posts.ResolveCode(ctx, code)
	if err != nil {
		if errors.Is(err, post.ErrPostNotFound) {
			return "", attendance.ErrUnknownPost
		}
		return "", err
	}
	if active != nil && target.ID != active.PostID {
		return "", attendance.ErrWrongPost
	}
	return target.ID, nil
}

// acquireLocation tries the provider a bounded number of times, each
// attempt under its own deadline, with a short pause between attempts.
// Acquisitions run strictly sequentially.
func (w *Workflow) acquireLocation(ctx context.Context) (attendance.Location, error) {
	var lastErr error
	for attempt := 0; attempt < w.opts.LocationAttempts; attempt++ {
		if attempt > 0 && w.opts.RetryDelay > 0 {
			select {
			case <-ctx.Done():
				return attendance.Location{}, ctx.Err()
			case <-time.After(w.opts.RetryDelay):
			}
		}

		attemptCtx, cancel := context.WithTimeout(ctx, w.opts.LocationTimeout)
		loc, err := w.locations.CurrentLocation(attemptCtx)
		cancel()
		if err == nil {
			return loc, nil
		}
		lastErr = err
	}
	return attendance.Location{}, fmt.Errorf("%w: %v", attendance.ErrGPSUnavailable, lastErr)
}

// fail routes a validator failure to the right recovery state: a wrong
// post sends the operator back to post selection, everything else back
// to idle.
func (w *Workflow) fail(err error) {
	if errors.Is(err, attendance.ErrWrongPost) {
		w.reset(StateAwaitingPostSelection)
		return
	}
	w.reset(StateIdle)
}

func (w *Workflow) reset(to State) {
	w.state = to
	w.photos = nil
	w.location = nil
	if to == StateIdle {
		w.targetID = ""
		w.action = ""
	}
}
