package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/codeelevater/alumni-connect/internal/models"
	"github.com/codeelevater/alumni-connect/internal/repository"
	"github.com/codeelevater/alumni-connect/pkg/logger"
	"github.com/codeelevater/alumni-connect/pkg/metrics"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Sheet names of the exported workbook
const (
	SheetStudents    = "Students"
	SheetAlumni      = "Alumni"
	SheetEvents      = "Events"
	SheetMentorships = "Mentorships"
)

// ExportService renders the collections as an xlsx workbook
type ExportService struct {
	store repository.StoreInterface
}

// NewExportService creates a new export service
func NewExportService(store repository.StoreInterface) *ExportService {
	return &ExportService{store: store}
}

// Workbook returns an xlsx file with one sheet per collection
func (s *ExportService) Workbook(_ context.Context) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warn("Failed to close workbook", zap.Error(err))
		}
	}()

	sheets := []struct {
		name   string
		header []any
		rows   [][]any
	}{
		{SheetStudents, []any{"ID", "Name", "Email", "Graduation Year", "Department", "Mentors"}, studentRows(s.store.Students())},
		{SheetAlumni, []any{"ID", "Name", "Email", "Graduation Year", "Department", "Company", "Position", "Achievements", "Notable", "Mentees"}, alumniRows(s.store.Alumni())},
		{SheetEvents, []any{"ID", "Title", "Description", "Date", "Location", "Organizer"}, eventRows(s.store.Events())},
		{SheetMentorships, []any{"ID", "Student", "Alumni", "Status", "Created At"}, mentorshipRows(s.store.Mentorships())},
	}

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.name); err != nil {
				return nil, s.fail(fmt.Errorf("failed to rename sheet: %w", err))
			}
		} else if _, err := f.NewSheet(sheet.name); err != nil {
			return nil, s.fail(fmt.Errorf("failed to create sheet %s: %w", sheet.name, err))
		}

		if err := writeRows(f, sheet.name, sheet.header, sheet.rows); err != nil {
			return nil, s.fail(err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, s.fail(fmt.Errorf("failed to write workbook: %w", err))
	}

	metrics.Exports.WithLabelValues("success").Inc()
	return buf.Bytes(), nil
}

func (s *ExportService) fail(err error) error {
	metrics.Exports.WithLabelValues("error").Inc()
	logger.Error("Export failed", zap.Error(err))
	return err
}

func writeRows(f *excelize.File, sheet string, header []any, rows [][]any) error {
	all := append([][]any{header}, rows...)
	for i, row := range all {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func studentRows(students []models.Student) [][]any {
	rows := make([][]any, 0, len(students))
	for _, st := range students {
		rows = append(rows, []any{st.ID, st.Name, st.Email, st.GraduationYear, st.Department, strings.Join(st.Mentors, ", ")})
	}
	return rows
}

func alumniRows(alumni []models.Alumni) [][]any {
	rows := make([][]any, 0, len(alumni))
	for _, a := range alumni {
		rows = append(rows, []any{
			a.ID, a.Name, a.Email, a.GraduationYear, a.Department, a.Company, a.Position,
			strings.Join(a.Achievements, "; "), a.IsNotable, strings.Join(a.Mentees, ", "),
		})
	}
	return rows
}

func eventRows(events []models.Event) [][]any {
	rows := make([][]any, 0, len(events))
	for _, e := range events {
		rows = append(rows, []any{e.ID, e.Title, e.Description, e.Date, e.Location, e.AlumniID})
	}
	return rows
}

func mentorshipRows(mentorships []models.Mentorship) [][]any {
	rows := make([][]any, 0, len(mentorships))
	for _, m := range mentorships {
		rows = append(rows, []any{m.ID, m.StudentID, m.AlumniID, string(m.Status), m.CreatedAt.Format(time.RFC3339)})
	}
	return rows
}
