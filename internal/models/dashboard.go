package models

// UnknownOrganizer is shown when an event names an alumnus that no longer exists
const UnknownOrganizer = "Unknown"

// DashboardQuery selects what the student dashboard shows
type DashboardQuery struct {
	StudentID  string `form:"studentId" binding:"max=100"`
	Search     string `form:"search" binding:"max=200"`
	Department string `form:"department" binding:"max=100"`
}

// AlumniCard is an alumnus as shown on the dashboard
type AlumniCard struct {
	Alumni
	Requested bool `json:"requested"`
}

// EventCard is an event as shown on the dashboard
type EventCard struct {
	Event
	DisplayDate      string `json:"displayDate"`
	OrganizerName    string `json:"organizerName,omitempty"`
	OrganizerNotable bool   `json:"organizerNotable"`
}

// Dashboard is the rendered state of the student dashboard
type Dashboard struct {
	Student       *Student     `json:"student,omitempty"`
	Search        string       `json:"search"`
	Department    string       `json:"department"`
	Departments   []string     `json:"departments"`
	Alumni        []AlumniCard `json:"alumni"`
	NotableAlumni []Alumni     `json:"notableAlumni"`
	Events        []EventCard  `json:"events"`
}
