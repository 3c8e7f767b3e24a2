package services

import (
	"context"

	"github.com/codeelevater/alumni-connect/config"
	"github.com/codeelevater/alumni-connect/internal/cache"
	"github.com/codeelevater/alumni-connect/internal/models"
	"github.com/codeelevater/alumni-connect/internal/repository"
	apperrors "github.com/codeelevater/alumni-connect/pkg/errors"
	"github.com/codeelevater/alumni-connect/pkg/httpclient"
	"github.com/codeelevater/alumni-connect/pkg/logger"
	"github.com/codeelevater/alumni-connect/pkg/metrics"
	"github.com/codeelevater/alumni-connect/pkg/tracing"
	"github.com/codeelevater/alumni-connect/pkg/trigger"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// MentorshipService handles mentorship requests coming from the HTTP surface
type MentorshipService struct {
	store      repository.StoreInterface
	requested  cache.RequestedCacheInterface
	config     *config.Config
	httpClient httpclient.Client
}

// NewMentorshipService creates a new mentorship service
func NewMentorshipService(
	store repository.StoreInterface,
	requested cache.RequestedCacheInterface,
	cfg *config.Config,
	httpClient httpclient.Client,
) *MentorshipService {
	return &MentorshipService{
		store:      store,
		requested:  requested,
		config:     cfg,
		httpClient: httpClient,
	}
}

// Request checks that both parties exist, records a pending mentorship and
// marks the alumnus as requested for the student
func (s *MentorshipService) Request(ctx context.Context, studentID, alumniID string) (*models.Mentorship, error) {
	ctx, span := tracing.StartSpan(ctx, "MentorshipService.Request",
		attribute.String("mentorship.student_id", studentID),
		attribute.String("mentorship.alumni_id", alumniID))
	defer span.End()

	if _, err := s.store.GetStudent(studentID); err != nil {
		metrics.MentorshipRequests.WithLabelValues("not_found").Inc()
		return nil, err
	}
	if _, err := s.store.GetAlumni(alumniID); err != nil {
		metrics.MentorshipRequests.WithLabelValues("not_found").Inc()
		return nil, err
	}

	mentorship, err := s.store.RequestMentorship(ctx, studentID, alumniID)
	if err != nil {
		metrics.MentorshipRequests.WithLabelValues("error").Inc()
		span.RecordError(err)
		logger.Error("Failed to record mentorship request",
			zap.String("student_id", studentID),
			zap.String("alumni_id", alumniID),
			zap.Error(err))
		return nil, err
	}

	s.requested.Mark(studentID, alumniID)
	metrics.MentorshipRequests.WithLabelValues("success").Inc()

	logger.Info("Mentorship requested",
		zap.String("mentorship_id", mentorship.ID),
		zap.String("student_id", studentID),
		zap.String("alumni_id", alumniID))

	// Non-blocking
	trigger.CallAsync(s.config.EventTriggers.MentorshipRequestedTriggerURL, mentorship.ID, mentorship, s.httpClient)

	return &mentorship, nil
}

// List returns the mentorships on the given side of the relation for userID
func (s *MentorshipService) List(_ context.Context, userID, role string) (*models.MentorshipsResponse, error) {
	if userID == "" {
		return nil, apperrors.InvalidInputError("userId", "is required")
	}

	parsed, err := models.ParseRole(role)
	if err != nil {
		return nil, apperrors.InvalidInputError("role", err.Error())
	}

	mentorships, err := s.store.MentorshipsFor(userID, parsed)
	if err != nil {
		return nil, err
	}

	return &models.MentorshipsResponse{
		Mentorships: mentorships,
		Total:       len(mentorships),
	}, nil
}
