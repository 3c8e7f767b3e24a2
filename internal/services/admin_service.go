package services

import (
	"context"

	"github.com/codeelevater/alumni-connect/internal/models"
	"github.com/codeelevater/alumni-connect/internal/repository"
	apperrors "github.com/codeelevater/alumni-connect/pkg/errors"
	"github.com/codeelevater/alumni-connect/pkg/logger"
	"github.com/codeelevater/alumni-connect/pkg/metrics"
	"go.uber.org/zap"
)

// AdminService handles administrative mutations of the collections
type AdminService struct {
	store repository.StoreInterface
}

// NewAdminService creates a new admin service
func NewAdminService(store repository.StoreInterface) *AdminService {
	return &AdminService{store: store}
}

func (s *AdminService) DeleteStudent(ctx context.Context, id string) error {
	if err := s.store.DeleteStudent(ctx, id); err != nil {
		return err
	}
	metrics.EntityDeletions.WithLabelValues("student").Inc()
	logger.Info("Student deleted", zap.String("student_id", id))
	return nil
}

func (s *AdminService) DeleteAlumni(ctx context.Context, id string) error {
	if err := s.store.DeleteAlumni(ctx, id); err != nil {
		return err
	}
	metrics.EntityDeletions.WithLabelValues("alumni").Inc()
	logger.Info("Alumni deleted", zap.String("alumni_id", id))
	return nil
}

// AddEvent creates an event. An organizer id, when given, must name an existing alumnus.
func (s *AdminService) AddEvent(ctx context.Context, req *models.NewEvent) (*models.Event, error) {
	if req.AlumniID != "" {
		if _, err := s.store.GetAlumni(req.AlumniID); err != nil {
			return nil, apperrors.InvalidInputError("alumniId", "unknown alumni "+req.AlumniID)
		}
	}

	event, err := s.store.AddEvent(ctx, *req)
	if err != nil {
		return nil, err
	}

	metrics.EventsCreated.Inc()
	logger.Info("Event created",
		zap.String("event_id", event.ID),
		zap.String("date", event.Date))

	return &event, nil
}

func (s *AdminService) DeleteEvent(ctx context.Context, id string) error {
	if err := s.store.DeleteEvent(ctx, id); err != nil {
		return err
	}
	metrics.EntityDeletions.WithLabelValues("event").Inc()
	logger.Info("Event deleted", zap.String("event_id", id))
	return nil
}

func (s *AdminService) UpdateAlumniProfile(ctx context.Context, id string, update *models.AlumniUpdate) (*models.Alumni, error) {
	// Nothing to merge, skip the write
	if update.IsEmpty() {
		alumni, err := s.store.GetAlumni(id)
		if err != nil {
			return nil, err
		}
		return &alumni, nil
	}

	alumni, err := s.store.UpdateAlumniProfile(ctx, id, *update)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			metrics.ProfileUpdates.WithLabelValues("not_found").Inc()
		} else {
			metrics.ProfileUpdates.WithLabelValues("error").Inc()
		}
		return nil, err
	}

	metrics.ProfileUpdates.WithLabelValues("success").Inc()
	logger.Info("Alumni profile updated", zap.String("alumni_id", id))

	return &alumni, nil
}
