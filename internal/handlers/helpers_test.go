package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/codeelevater/alumni-connect/config"
	"github.com/codeelevater/alumni-connect/internal/cache"
	"github.com/codeelevater/alumni-connect/internal/repository"
	"github.com/codeelevater/alumni-connect/internal/services"
	"github.com/codeelevater/alumni-connect/internal/storage"
	"github.com/codeelevater/alumni-connect/internal/views"
	"github.com/codeelevater/alumni-connect/pkg/httpclient"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type testApp struct {
	router    *gin.Engine
	store     *repository.Store
	requested *cache.RequestedCache
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	store := repository.New(storage.NewMemory(), repository.WithClock(func() time.Time { return testNow }))
	require.NoError(t, store.Load(context.Background()))
	requested := cache.NewRequestedCache(time.Minute)

	directory := services.NewDirectoryService(store, requested)
	mentorships := services.NewMentorshipService(store, requested, &config.Config{}, httpclient.NewStandardClient())
	admin := services.NewAdminService(store)

	students := NewStudentHandler(directory, admin)
	alumni := NewAlumniHandler(directory, admin)
	events := NewEventHandler(directory, admin)
	mentorshipHandler := NewMentorshipHandler(mentorships)
	dashboard := NewDashboardHandler(directory, mentorships)
	export := NewExportHandler(services.NewExportService(store))

	tmpl, err := views.Templates()
	require.NoError(t, err)

	router := gin.New()
	router.SetHTMLTemplate(tmpl)

	v1 := router.Group("/api/v1")
	v1.GET("/students", students.ListStudents)
	v1.GET("/students/:id", students.GetStudent)
	v1.DELETE("/students/:id", students.DeleteStudent)
	v1.GET("/alumni", alumni.ListAlumni)
	v1.GET("/alumni/notable", alumni.ListNotableAlumni)
	v1.GET("/alumni/:id", alumni.GetAlumni)
	v1.PATCH("/alumni/:id", alumni.UpdateAlumniProfile)
	v1.DELETE("/alumni/:id", alumni.DeleteAlumni)
	v1.GET("/events", events.ListEvents)
	v1.POST("/events", events.CreateEvent)
	v1.DELETE("/events/:id", events.DeleteEvent)
	v1.POST("/mentorships", mentorshipHandler.RequestMentorship)
	v1.GET("/mentorships", mentorshipHandler.ListMentorships)
	v1.GET("/dashboard", dashboard.GetDashboard)
	v1.GET("/admin/export", export.ExportWorkbook)

	router.GET("/dashboard", dashboard.RenderDashboard)
	router.POST("/dashboard/mentorships", dashboard.RequestMentorship)

	return &testApp{router: router, store: store, requested: requested}
}

func (a *testApp) do(method, target, contentType, body string) *httptest.ResponseRecorder {
	var reader io.Reader = http.NoBody
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) get(target string) *httptest.ResponseRecorder {
	return a.do(http.MethodGet, target, "", "")
}

func (a *testApp) sendJSON(method, target, body string) *httptest.ResponseRecorder {
	return a.do(method, target, "application/json", body)
}
