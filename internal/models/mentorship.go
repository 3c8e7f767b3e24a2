package models

import (
	"fmt"
	"time"
)

// MentorshipStatus is the lifecycle state of a mentorship request
type MentorshipStatus string

const (
	MentorshipPending  MentorshipStatus = "pending"
	MentorshipAccepted MentorshipStatus = "accepted"
	MentorshipRejected MentorshipStatus = "rejected"
)

// Mentorship links one student to one alumnus
type Mentorship struct {
	ID        string           `json:"id"`
	StudentID string           `json:"studentId"`
	AlumniID  string           `json:"alumniId"`
	Status    MentorshipStatus `json:"status"`
	CreatedAt time.Time        `json:"createdAt"`
}

// Role selects which side of the mentorship relation a user id is matched against
type Role string

const (
	RoleStudent Role = "student"
	RoleAlumni  Role = "alumni"
)

// ParseRole validates a role string
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleStudent, RoleAlumni:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// RequestMentorshipRequest is the payload for requesting a mentorship
type RequestMentorshipRequest struct {
	StudentID string `json:"studentId" form:"student_id" binding:"required,max=100"`
	AlumniID  string `json:"alumniId" form:"alumni_id" binding:"required,max=100"`
}

// MentorshipsResponse is the response for listing mentorships
type MentorshipsResponse struct {
	Mentorships []Mentorship `json:"mentorships"`
	Total       int          `json:"total"`
}
