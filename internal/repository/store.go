package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/codeelevater/alumni-connect/internal/models"
	"github.com/codeelevater/alumni-connect/internal/storage"
	apperrors "github.com/codeelevater/alumni-connect/pkg/errors"
	"github.com/codeelevater/alumni-connect/pkg/logger"
	"github.com/codeelevater/alumni-connect/pkg/metrics"
	"go.uber.org/zap"
)

// Snapshot keys, one JSON array per collection
const (
	KeyStudents    = "students"
	KeyAlumni      = "alumni"
	KeyEvents      = "events"
	KeyMentorships = "mentorships"
)

const (
	eventIDPrefix      = "event_"
	mentorshipIDPrefix = "mentorship_"
)

// ErrCorruptSnapshot is returned by Load when a stored collection is not valid JSON
var ErrCorruptSnapshot = errors.New("corrupt snapshot")

// StoreInterface is the store surface used by services
type StoreInterface interface {
	IsReady() bool
	Students() []models.Student
	Alumni() []models.Alumni
	Events() []models.Event
	Mentorships() []models.Mentorship
	GetStudent(id string) (models.Student, error)
	GetAlumni(id string) (models.Alumni, error)
	GetEvent(id string) (models.Event, error)
	NotableAlumni() []models.Alumni
	DeleteStudent(ctx context.Context, id string) error
	DeleteAlumni(ctx context.Context, id string) error
	AddEvent(ctx context.Context, event models.NewEvent) (models.Event, error)
	DeleteEvent(ctx context.Context, id string) error
	UpdateAlumniProfile(ctx context.Context, id string, update models.AlumniUpdate) (models.Alumni, error)
	RequestMentorship(ctx context.Context, studentID, alumniID string) (models.Mentorship, error)
	MentorshipsFor(userID string, role models.Role) ([]models.Mentorship, error)
}

// Option configures a Store
type Option func(*Store)

// WithClock replaces time.Now for id generation and timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Store owns the four collections. The in-memory copy is authoritative and
// every mutation rewrites the affected collections to the KV.
type Store struct {
	kv  storage.KV
	now func() time.Time

	mu          sync.RWMutex
	loaded      bool
	lastID      int64
	students    []models.Student
	alumni      []models.Alumni
	events      []models.Event
	mentorships []models.Mentorship
}

// New creates a store backed by kv. Load must be called before any other method.
func New(kv storage.KV, opts ...Option) *Store {
	s := &Store{
		kv:  kv,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load seeds absent collections and reads every collection from the KV.
// Calling it again after success is a no-op.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return nil
	}

	var (
		students    []models.Student
		alumni      []models.Alumni
		events      []models.Event
		mentorships []models.Mentorship
	)

	steps := []struct {
		key  string
		seed any
		dest any
	}{
		{KeyStudents, models.SeedStudents(), &students},
		{KeyAlumni, models.SeedAlumni(), &alumni},
		{KeyEvents, models.SeedEvents(), &events},
		{KeyMentorships, models.SeedMentorships(), &mentorships},
	}

	for _, step := range steps {
		if err := s.loadCollection(ctx, step.key, step.seed, step.dest); err != nil {
			return err
		}
	}

	s.students = nonNil(students)
	s.alumni = nonNil(alumni)
	s.events = nonNil(events)
	s.mentorships = nonNil(mentorships)
	s.lastID = s.highestGeneratedID()
	s.loaded = true
	s.recordSizes()

	logger.Info("Store loaded",
		zap.String("backend", s.kv.Name()),
		zap.Int("students", len(s.students)),
		zap.Int("alumni", len(s.alumni)),
		zap.Int("events", len(s.events)),
		zap.Int("mentorships", len(s.mentorships)))

	return nil
}

func (s *Store) loadCollection(ctx context.Context, key string, seed, dest any) error {
	raw, err := s.kv.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		logger.Info("Seeding collection", zap.String("key", key))
		if err := s.write(ctx, key, seed); err != nil {
			return err
		}
		raw, err = s.kv.Get(ctx, key)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("%w %s: %v", ErrCorruptSnapshot, key, err)
	}
	return nil
}

// IsReady reports whether Load has completed
func (s *Store) IsReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// must be called with the lock held
func (s *Store) mustBeLoaded() {
	if !s.loaded {
		panic("store used before Load")
	}
}

// Students returns a copy of all students in storage order
func (s *Store) Students() []models.Student {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.mustBeLoaded()

	out := make([]models.Student, len(s.students))
	for i, student := range s.students {
		out[i] = student.Clone()
	}
	return out
}

// Alumni returns a copy of all alumni in storage order
func (s *Store) Alumni() []models.Alumni {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.mustBeLoaded()

	out := make([]models.Alumni, len(s.alumni))
	for i, a := range s.alumni {
		out[i] = a.Clone()
	}
	return out
}

// Events returns a copy of all events in storage order
func (s *Store) Events() []models.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.mustBeLoaded()

	return append([]models.Event{}, s.events...)
}

// Mentorships returns a copy of all mentorships in storage order
func (s *Store) Mentorships() []models.Mentorship {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.mustBeLoaded()

	return append([]models.Mentorship{}, s.mentorships...)
}

func (s *Store) GetStudent(id string) (models.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.mustBeLoaded()

	if i := s.studentIndex(id); i >= 0 {
		return s.students[i].Clone(), nil
	}
	return models.Student{}, apperrors.NotFoundError("student", id)
}

func (s *Store) GetAlumni(id string) (models.Alumni, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.mustBeLoaded()

	if i := s.alumniIndex(id); i >= 0 {
		return s.alumni[i].Clone(), nil
	}
	return models.Alumni{}, apperrors.NotFoundError("alumni", id)
}

func (s *Store) GetEvent(id string) (models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.mustBeLoaded()

	for _, e := range s.events {
		if e.ID == id {
			return e, nil
		}
	}
	return models.Event{}, apperrors.NotFoundError("event", id)
}

// NotableAlumni returns the alumni flagged notable, in storage order
func (s *Store) NotableAlumni() []models.Alumni {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.mustBeLoaded()

	out := []models.Alumni{}
	for _, a := range s.alumni {
		if a.IsNotable {
			out = append(out, a.Clone())
		}
	}
	return out
}

// DeleteStudent removes the student and persists the remainder. Mentorships
// referencing the student are kept.
func (s *Store) DeleteStudent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mustBeLoaded()

	i := s.studentIndex(id)
	if i < 0 {
		return nil
	}
	s.students = append(s.students[:i:i], s.students[i+1:]...)

	return s.persist(ctx, KeyStudents)
}

// DeleteAlumni removes the alumnus and persists the remainder. Mentorships
// referencing the alumnus are kept.
func (s *Store) DeleteAlumni(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mustBeLoaded()

	i := s.alumniIndex(id)
	if i < 0 {
		return nil
	}
	s.alumni = append(s.alumni[:i:i], s.alumni[i+1:]...)

	return s.persist(ctx, KeyAlumni)
}

// AddEvent appends a new event with a generated id and returns it
func (s *Store) AddEvent(ctx context.Context, in models.NewEvent) (models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mustBeLoaded()

	event := models.Event{
		ID:          eventIDPrefix + strconv.FormatInt(s.nextID(), 10),
		Title:       in.Title,
		Description: in.Description,
		Date:        in.Date,
		Location:    in.Location,
		AlumniID:    in.AlumniID,
	}
	s.events = append(s.events, event)

	return event, s.persist(ctx, KeyEvents)
}

func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mustBeLoaded()

	for i, e := range s.events {
		if e.ID == id {
			s.events = append(s.events[:i:i], s.events[i+1:]...)
			return s.persist(ctx, KeyEvents)
		}
	}
	return nil
}

// UpdateAlumniProfile merges update into the alumnus and returns the result.
// The id and mentee list cannot be changed this way.
func (s *Store) UpdateAlumniProfile(ctx context.Context, id string, update models.AlumniUpdate) (models.Alumni, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mustBeLoaded()

	i := s.alumniIndex(id)
	if i < 0 {
		return models.Alumni{}, apperrors.NotFoundError("alumni", id)
	}

	s.alumni[i] = update.Apply(s.alumni[i])

	return s.alumni[i].Clone(), s.persist(ctx, KeyAlumni)
}

// RequestMentorship records a pending mentorship and links both sides.
// Ids are not checked and repeated requests create repeated records.
func (s *Store) RequestMentorship(ctx context.Context, studentID, alumniID string) (models.Mentorship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mustBeLoaded()

	now := s.now()
	mentorship := models.Mentorship{
		ID:        mentorshipIDPrefix + strconv.FormatInt(s.nextIDAt(now), 10),
		StudentID: studentID,
		AlumniID:  alumniID,
		Status:    models.MentorshipPending,
		CreatedAt: now.UTC(),
	}
	s.mentorships = append(s.mentorships, mentorship)

	if i := s.studentIndex(studentID); i >= 0 {
		s.students[i].Mentors = append(s.students[i].Mentors, alumniID)
	}
	if i := s.alumniIndex(alumniID); i >= 0 {
		s.alumni[i].Mentees = append(s.alumni[i].Mentees, studentID)
	}

	return mentorship, s.persist(ctx, KeyMentorships, KeyStudents, KeyAlumni)
}

// MentorshipsFor returns the mentorships where userID is on the given side
func (s *Store) MentorshipsFor(userID string, role models.Role) ([]models.Mentorship, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.mustBeLoaded()

	var match func(models.Mentorship) bool
	switch role {
	case models.RoleStudent:
		match = func(m models.Mentorship) bool { return m.StudentID == userID }
	case models.RoleAlumni:
		match = func(m models.Mentorship) bool { return m.AlumniID == userID }
	default:
		return nil, apperrors.InvalidInputError("role", fmt.Sprintf("unknown role %q", role))
	}

	out := []models.Mentorship{}
	for _, m := range s.mentorships {
		if match(m) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *Store) studentIndex(id string) int {
	for i := range s.students {
		if s.students[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) alumniIndex(id string) int {
	for i := range s.alumni {
		if s.alumni[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) nextID() int64 {
	return s.nextIDAt(s.now())
}

// nextIDAt returns the clock's unix millis, bumped past the last id handed out
// so ids stay unique when calls share a millisecond
func (s *Store) nextIDAt(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *Store) highestGeneratedID() int64 {
	var highest int64
	consider := func(id, prefix string) {
		if n, err := strconv.ParseInt(strings.TrimPrefix(id, prefix), 10, 64); err == nil && strings.HasPrefix(id, prefix) && n > highest {
			highest = n
		}
	}
	for _, e := range s.events {
		consider(e.ID, eventIDPrefix)
	}
	for _, m := range s.mentorships {
		consider(m.ID, mentorshipIDPrefix)
	}
	return highest
}

// persist writes the named collections; must be called with the write lock held
func (s *Store) persist(ctx context.Context, keys ...string) error {
	s.recordSizes()

	for _, key := range keys {
		var value any
		switch key {
		case KeyStudents:
			value = s.students
		case KeyAlumni:
			value = s.alumni
		case KeyEvents:
			value = s.events
		case KeyMentorships:
			value = s.mentorships
		}
		if err := s.write(ctx, key, value); err != nil {
			logger.Error("Failed to persist collection",
				zap.String("key", key),
				zap.String("backend", s.kv.Name()),
				zap.Error(err))
			return err
		}
	}
	return nil
}

func (s *Store) write(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.kv.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *Store) recordSizes() {
	metrics.CollectionSize.WithLabelValues(KeyStudents).Set(float64(len(s.students)))
	metrics.CollectionSize.WithLabelValues(KeyAlumni).Set(float64(len(s.alumni)))
	metrics.CollectionSize.WithLabelValues(KeyEvents).Set(float64(len(s.events)))
	metrics.CollectionSize.WithLabelValues(KeyMentorships).Set(float64(len(s.mentorships)))
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
