package models

import "time"

// EventDateLayout is the date format events are stored in
const EventDateLayout = "2006-01-02"

// Event is a scheduled gathering. AlumniID optionally names the organizing alumnus.
type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Location    string `json:"location"`
	AlumniID    string `json:"alumniId,omitempty"`
}

// DisplayDate renders the date as "Jan 2, 2006", or verbatim if it does not parse
func (e Event) DisplayDate() string {
	t, err := time.Parse(EventDateLayout, e.Date)
	if err != nil {
		return e.Date
	}
	return t.Format("Jan 2, 2006")
}

// NewEvent carries the fields of an event to create; the id is assigned by the store
type NewEvent struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"required,max=5000"`
	Date        string `json:"date" binding:"required,datetime=2006-01-02"`
	Location    string `json:"location" binding:"required,max=200"`
	AlumniID    string `json:"alumniId" binding:"omitempty,max=100"`
}
