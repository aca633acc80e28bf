package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/guardsystem/guardpost-backend-go/internal/domain/attendance"
	"github.com/guardsystem/guardpost-backend-go/internal/domain/post"
)

type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
	postRepo          post.PostRepository
	loc               *time.Location
}

func NewAttendanceJobs(
	attendanceService attendance.AttendanceService,
	postRepo post.PostRepository,
	loc *time.Location,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceService: attendanceService,
		postRepo:          postRepo,
		loc:               loc,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("daily_absence_summary", 1*time.Hour, j.DailyAbsenceSummary)
}

// DailyAbsenceSummary logs, once per day, how many planned slots of the
// previous day ended up uncovered at each post. It is a visibility job
// only and writes nothing.
func (j *AttendanceJobs) DailyAbsenceSummary(ctx context.Context) error {
	// Only run in the first hour after the local day rolls over
	now := time.Now().In(j.loc)
	if now.Hour() != 0 {
		return nil
	}

	date := now.AddDate(0, 0, -1).Format("2006-01-02")
	slog.Info("Cron: Starting daily absence summary", "date", date)

	posts, err := j.postRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list posts: %w", err)
	}

	for _, p := range posts {
		statuses, err := j.attendanceService.Classify(ctx, p.ID, date)
		if err != nil {
			slog.Error("Cron: Failed to classify post coverage", "post_id", p.ID, "date", date, "error", err)
			continue
		}

		var absent, substituted int
		for _, s := range statuses {
			switch s.Kind {
			case attendance.SlotFalta:
				absent++
			case attendance.SlotSubstituicao:
				substituted++
			}
		}

		if absent > 0 || substituted > 0 {
			slog.Warn("Cron: Post had uncovered or substituted slots",
				"post", p.Name, "date", date,
				"absences", absent, "substitutions", substituted)
		}
	}

	return nil
}
