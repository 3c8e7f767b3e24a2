package services_test

import (
	"context"
	"testing"

	"github.com/codeelevater/alumni-connect/internal/models"
	"github.com/codeelevater/alumni-connect/internal/services"
	apperrors "github.com/codeelevater/alumni-connect/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func alumniIDs(alumni []models.Alumni) []string {
	ids := []string{}
	for _, a := range alumni {
		ids = append(ids, a.ID)
	}
	return ids
}

func TestFilterAlumni(t *testing.T) {
	alumni := models.SeedAlumni()

	tests := []struct {
		name       string
		search     string
		department string
		expected   []string
	}{
		{name: "empty query matches all", expected: []string{"alumni_1", "alumni_2", "alumni_3"}},
		{name: "name is case-insensitive", search: "SARAH", expected: []string{"alumni_1"}},
		{name: "matches position", search: "manager", expected: []string{"alumni_2"}},
		{name: "matches company", search: "amaz", expected: []string{"alumni_3"}},
		{name: "department only", department: "Engineering", expected: []string{"alumni_2"}},
		{name: "search and department both apply", search: "google", department: "Business", expected: []string{}},
		{name: "department is exact", department: "engineering", expected: []string{}},
		{name: "no match", search: "zzz", expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, alumniIDs(services.FilterAlumni(alumni, tt.search, tt.department)))
		})
	}
}

func TestFilterAlumni_MissingOptionalFields(t *testing.T) {
	alumni := []models.Alumni{{ID: "a", Name: "Plain Name", Department: "Math"}}

	assert.Empty(t, services.FilterAlumni(alumni, "google", ""))
	assert.Len(t, services.FilterAlumni(alumni, "plain", ""), 1)
}

func TestFilterEvents(t *testing.T) {
	alumni := models.SeedAlumni()
	events := []models.Event{
		{ID: "e1", AlumniID: "alumni_1"},
		{ID: "e2"},
		{ID: "e3", AlumniID: "alumni_3"},
		{ID: "e4", AlumniID: "alumni_gone"},
	}

	all := services.FilterEvents(events, alumni, "")
	assert.Equal(t, events, all)

	cs := services.FilterEvents(events, alumni, "Computer Science")
	require.Len(t, cs, 1)
	assert.Equal(t, "e1", cs[0].ID)

	assert.Empty(t, services.FilterEvents(events, alumni, "Engineering"))
}

func TestDepartments(t *testing.T) {
	alumni := append(models.SeedAlumni(), models.Alumni{ID: "alumni_4", Department: "Computer Science"})

	assert.Equal(t, []string{"Computer Science", "Engineering", "Business"}, services.Departments(alumni))
	assert.Empty(t, services.Departments(nil))
}

func TestDirectoryService_Dashboard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := services.NewDirectoryService(f.store, f.requested)

	_, err := f.store.AddEvent(ctx, models.NewEvent{Title: "Talk", Date: "2025-07-04", AlumniID: "alumni_1"})
	require.NoError(t, err)
	_, err = f.store.AddEvent(ctx, models.NewEvent{Title: "Orphan", Date: "2025-07-05", AlumniID: "alumni_gone"})
	require.NoError(t, err)
	f.requested.Mark("student_1", "alumni_3")

	dashboard, err := svc.Dashboard(ctx, models.DashboardQuery{StudentID: "student_1"})
	require.NoError(t, err)

	require.NotNil(t, dashboard.Student)
	assert.Equal(t, "John Smith", dashboard.Student.Name)
	assert.Equal(t, []string{"Computer Science", "Engineering", "Business"}, dashboard.Departments)
	assert.Len(t, dashboard.NotableAlumni, 2)

	require.Len(t, dashboard.Alumni, 3)
	assert.False(t, dashboard.Alumni[0].Requested)
	assert.True(t, dashboard.Alumni[2].Requested)

	require.Len(t, dashboard.Events, 4)
	assert.Equal(t, "Jun 15, 2025", dashboard.Events[0].DisplayDate)
	assert.Empty(t, dashboard.Events[0].OrganizerName)
	assert.Equal(t, "Sarah Wilson", dashboard.Events[2].OrganizerName)
	assert.True(t, dashboard.Events[2].OrganizerNotable)
	assert.Equal(t, models.UnknownOrganizer, dashboard.Events[3].OrganizerName)
	assert.False(t, dashboard.Events[3].OrganizerNotable)
}

func TestDirectoryService_DashboardFiltersByDepartment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := services.NewDirectoryService(f.store, f.requested)

	_, err := f.store.AddEvent(ctx, models.NewEvent{Title: "Pitch night", Date: "2025-08-01", AlumniID: "alumni_3"})
	require.NoError(t, err)

	dashboard, err := svc.Dashboard(ctx, models.DashboardQuery{Department: "Business"})
	require.NoError(t, err)

	assert.Nil(t, dashboard.Student)
	require.Len(t, dashboard.Alumni, 1)
	assert.Equal(t, "alumni_3", dashboard.Alumni[0].ID)
	require.Len(t, dashboard.Events, 1)
	assert.Equal(t, "Pitch night", dashboard.Events[0].Title)
	assert.Equal(t, []string{"Computer Science", "Engineering", "Business"}, dashboard.Departments)
}

func TestDirectoryService_DashboardUnknownStudent(t *testing.T) {
	f := newFixture(t)
	svc := services.NewDirectoryService(f.store, f.requested)

	_, err := svc.Dashboard(context.Background(), models.DashboardQuery{StudentID: "student_404"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDirectoryService_Lookups(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := services.NewDirectoryService(f.store, f.requested)

	assert.True(t, svc.IsReady())
	assert.Len(t, svc.ListStudents(ctx), 3)
	assert.Len(t, svc.ListAlumni(ctx), 3)
	assert.Len(t, svc.ListEvents(ctx), 2)
	assert.Equal(t, []string{"alumni_1", "alumni_3"}, alumniIDs(svc.NotableAlumni(ctx)))

	student, err := svc.GetStudent(ctx, "student_2")
	require.NoError(t, err)
	assert.Equal(t, "Emily Johnson", student.Name)

	_, err = svc.GetAlumni(ctx, "alumni_404")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
