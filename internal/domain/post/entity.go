package post

import "time"

// ShiftWindowID identifies one of a post's configured shift windows.
type ShiftWindowID string

const (
	WindowMorning   ShiftWindowID = "MORNING"
	WindowAfternoon ShiftWindowID = "AFTERNOON"
	WindowNight     ShiftWindowID = "NIGHT"
)

var ShiftWindowValues = []string{
	string(WindowMorning),
	string(WindowAfternoon),
	string(WindowNight),
}

// ShiftWindow is one configurable duty window of a post. Start and End
// are local wall-clock times in "HH:MM" form; End earlier than Start
// means the window wraps through midnight.
type ShiftWindow struct {
	ID     ShiftWindowID
	Active bool
	Start  string
	End    string
}

// Post is a registered physical guard location. Attendance actions are
// only accepted from devices inside RadiusMeters of its coordinates, and
// only from employees in the allowed set.
type Post struct {
	ID                 string
	Name               string
	Code               string
	Latitude           float64
	Longitude          float64
	Altitude           float64
	RadiusMeters       int
	MinIntervalMinutes int
	QRURL              string
	AllowedEmployeeIDs []string
	Windows            []ShiftWindow
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Allows reports whether the employee is authorized to act at this post.
func (p Post) Allows(employeeID string) bool {
	for _, id := range p.AllowedEmployeeIDs {
		if id == employeeID {
			return true
		}
	}
	return false
}

// ActiveWindows returns the windows currently enabled on the post.
func (p Post) ActiveWindows() []ShiftWindow {
	var active []ShiftWindow
	for _, w := range p.Windows {
		if w.Active {
			active = append(active, w)
		}
	}
	return active
}
