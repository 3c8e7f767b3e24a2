package services

import (
	"context"
	"strings"

	"github.com/codeelevater/alumni-connect/internal/cache"
	"github.com/codeelevater/alumni-connect/internal/models"
	"github.com/codeelevater/alumni-connect/internal/repository"
	"github.com/codeelevater/alumni-connect/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
)

// DirectoryService serves read access to the collections and builds the dashboard
type DirectoryService struct {
	store     repository.StoreInterface
	requested cache.RequestedCacheInterface
}

// NewDirectoryService creates a new directory service
func NewDirectoryService(store repository.StoreInterface, requested cache.RequestedCacheInterface) *DirectoryService {
	return &DirectoryService{
		store:     store,
		requested: requested,
	}
}

func (s *DirectoryService) IsReady() bool {
	return s.store.IsReady()
}

func (s *DirectoryService) ListStudents(_ context.Context) []models.Student {
	return s.store.Students()
}

func (s *DirectoryService) GetStudent(_ context.Context, id string) (*models.Student, error) {
	student, err := s.store.GetStudent(id)
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (s *DirectoryService) ListAlumni(_ context.Context) []models.Alumni {
	return s.store.Alumni()
}

func (s *DirectoryService) NotableAlumni(_ context.Context) []models.Alumni {
	return s.store.NotableAlumni()
}

func (s *DirectoryService) GetAlumni(_ context.Context, id string) (*models.Alumni, error) {
	alumni, err := s.store.GetAlumni(id)
	if err != nil {
		return nil, err
	}
	return &alumni, nil
}

func (s *DirectoryService) ListEvents(_ context.Context) []models.Event {
	return s.store.Events()
}

// Dashboard filters alumni and events for the query. When a student is given,
// alumni already requested in this session are flagged.
func (s *DirectoryService) Dashboard(ctx context.Context, query models.DashboardQuery) (*models.Dashboard, error) {
	_, span := tracing.StartSpan(ctx, "DirectoryService.Dashboard",
		attribute.String("dashboard.department", query.Department),
		attribute.Bool("dashboard.has_search", query.Search != ""))
	defer span.End()

	dashboard := &models.Dashboard{
		Search:     query.Search,
		Department: query.Department,
	}

	if query.StudentID != "" {
		student, err := s.store.GetStudent(query.StudentID)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		dashboard.Student = &student
	}

	alumni := s.store.Alumni()

	dashboard.Departments = Departments(alumni)
	dashboard.NotableAlumni = s.store.NotableAlumni()

	filtered := FilterAlumni(alumni, query.Search, query.Department)
	dashboard.Alumni = make([]models.AlumniCard, 0, len(filtered))
	for _, a := range filtered {
		dashboard.Alumni = append(dashboard.Alumni, models.AlumniCard{
			Alumni:    a,
			Requested: query.StudentID != "" && s.requested.Has(query.StudentID, a.ID),
		})
	}

	byID := make(map[string]models.Alumni, len(alumni))
	for _, a := range alumni {
		byID[a.ID] = a
	}

	events := FilterEvents(s.store.Events(), alumni, query.Department)
	dashboard.Events = make([]models.EventCard, 0, len(events))
	for _, e := range events {
		card := models.EventCard{Event: e, DisplayDate: e.DisplayDate()}
		if e.AlumniID != "" {
			if organizer, ok := byID[e.AlumniID]; ok {
				card.OrganizerName = organizer.Name
				card.OrganizerNotable = organizer.IsNotable
			} else {
				card.OrganizerName = models.UnknownOrganizer
			}
		}
		dashboard.Events = append(dashboard.Events, card)
	}

	span.SetAttributes(
		attribute.Int("dashboard.alumni", len(dashboard.Alumni)),
		attribute.Int("dashboard.events", len(dashboard.Events)))

	return dashboard, nil
}

// FilterAlumni keeps alumni whose name, position or company contains search
// (case-insensitive) and, when department is set, whose department matches exactly
func FilterAlumni(alumni []models.Alumni, search, department string) []models.Alumni {
	term := strings.ToLower(search)
	out := []models.Alumni{}
	for _, a := range alumni {
		matchesSearch := strings.Contains(strings.ToLower(a.Name), term) ||
			(a.Position != "" && strings.Contains(strings.ToLower(a.Position), term)) ||
			(a.Company != "" && strings.Contains(strings.ToLower(a.Company), term))
		matchesDepartment := department == "" || a.Department == department

		if matchesSearch && matchesDepartment {
			out = append(out, a)
		}
	}
	return out
}

// FilterEvents keeps every event when department is empty; otherwise only events
// whose organizing alumnus exists and belongs to department
func FilterEvents(events []models.Event, alumni []models.Alumni, department string) []models.Event {
	if department == "" {
		return append([]models.Event{}, events...)
	}

	departments := make(map[string]string, len(alumni))
	for _, a := range alumni {
		if _, seen := departments[a.ID]; !seen {
			departments[a.ID] = a.Department
		}
	}

	out := []models.Event{}
	for _, e := range events {
		if dept, ok := departments[e.AlumniID]; ok && dept == department {
			out = append(out, e)
		}
	}
	return out
}

// Departments returns the distinct alumni departments in first-seen order
func Departments(alumni []models.Alumni) []string {
	seen := make(map[string]struct{}, len(alumni))
	out := []string{}
	for _, a := range alumni {
		if _, ok := seen[a.Department]; ok {
			continue
		}
		seen[a.Department] = struct{}{}
		out = append(out, a.Department)
	}
	return out
}
