package services

import (
	"context"

	"github.com/codeelevater/alumni-connect/internal/models"
)

// DirectoryServiceInterface defines read access to the collections and the dashboard
type DirectoryServiceInterface interface {
	IsReady() bool
	ListStudents(ctx context.Context) []models.Student
	GetStudent(ctx context.Context, id string) (*models.Student, error)
	ListAlumni(ctx context.Context) []models.Alumni
	NotableAlumni(ctx context.Context) []models.Alumni
	GetAlumni(ctx context.Context, id string) (*models.Alumni, error)
	ListEvents(ctx context.Context) []models.Event
	Dashboard(ctx context.Context, query models.DashboardQuery) (*models.Dashboard, error)
}

// MentorshipServiceInterface defines the interface for mentorship operations
type MentorshipServiceInterface interface {
	Request(ctx context.Context, studentID, alumniID string) (*models.Mentorship, error)
	List(ctx context.Context, userID, role string) (*models.MentorshipsResponse, error)
}

// AdminServiceInterface defines the interface for administrative mutations
type AdminServiceInterface interface {
	DeleteStudent(ctx context.Context, id string) error
	DeleteAlumni(ctx context.Context, id string) error
	AddEvent(ctx context.Context, req *models.NewEvent) (*models.Event, error)
	DeleteEvent(ctx context.Context, id string) error
	UpdateAlumniProfile(ctx context.Context, id string, update *models.AlumniUpdate) (*models.Alumni, error)
}

// ExportServiceInterface defines the interface for spreadsheet export
type ExportServiceInterface interface {
	Workbook(ctx context.Context) ([]byte, error)
}
