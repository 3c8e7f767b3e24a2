package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/codeelevater/alumni-connect/internal/models"
	"github.com/codeelevater/alumni-connect/internal/storage"
	apperrors "github.com/codeelevater/alumni-connect/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func newLoadedStore(t *testing.T) (*Store, storage.KV) {
	t.Helper()
	kv := storage.NewMemory()
	store := New(kv, WithClock(fixedClock))
	require.NoError(t, store.Load(context.Background()))
	return store, kv
}

// failingKV accepts reads from an inner store but rejects every write once armed
type failingKV struct {
	storage.KV
	failPuts bool
}

func (f *failingKV) Put(ctx context.Context, key string, value []byte) error {
	if f.failPuts {
		return errors.New("disk full")
	}
	return f.KV.Put(ctx, key, value)
}

func TestStore_LoadSeedsEmptyStorage(t *testing.T) {
	store, kv := newLoadedStore(t)

	assert.True(t, store.IsReady())
	assert.Equal(t, models.SeedStudents(), store.Students())
	assert.Equal(t, models.SeedAlumni(), store.Alumni())
	assert.Equal(t, models.SeedEvents(), store.Events())
	assert.Empty(t, store.Mentorships())

	for _, key := range []string{KeyStudents, KeyAlumni, KeyEvents, KeyMentorships} {
		raw, err := kv.Get(context.Background(), key)
		require.NoError(t, err, key)
		assert.True(t, json.Valid(raw), key)
	}
}

func TestStore_LoadKeepsExistingCollections(t *testing.T) {
	kv := storage.NewMemory()
	ctx := context.Background()
	require.NoError(t, kv.Put(ctx, KeyStudents, []byte(`[{"id":"s9","name":"Ada","email":"ada@x.edu","graduationYear":2030,"department":"Math","mentors":[]}]`)))

	store := New(kv)
	require.NoError(t, store.Load(ctx))

	students := store.Students()
	require.Len(t, students, 1)
	assert.Equal(t, "Ada", students[0].Name)
	assert.Len(t, store.Alumni(), 3)
}

func TestStore_LoadCorruptSnapshot(t *testing.T) {
	kv := storage.NewMemory()
	ctx := context.Background()
	require.NoError(t, kv.Put(ctx, KeyEvents, []byte(`{not json`)))

	store := New(kv)
	err := store.Load(ctx)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCorruptSnapshot)
	assert.False(t, store.IsReady())
}

func TestStore_LoadTwiceIsNoop(t *testing.T) {
	store, _ := newLoadedStore(t)
	require.NoError(t, store.DeleteStudent(context.Background(), "student_1"))

	require.NoError(t, store.Load(context.Background()))
	assert.Len(t, store.Students(), 2)
}

func TestStore_UseBeforeLoadPanics(t *testing.T) {
	store := New(storage.NewMemory())

	assert.False(t, store.IsReady())
	assert.PanicsWithValue(t, "store used before Load", func() { store.Students() })
	assert.PanicsWithValue(t, "store used before Load", func() {
		_, _ = store.RequestMentorship(context.Background(), "student_1", "alumni_1")
	})
}

func TestStore_DeleteThenLookupIsNotFound(t *testing.T) {
	store, _ := newLoadedStore(t)
	ctx := context.Background()

	require.NoError(t, store.DeleteStudent(ctx, "student_2"))
	_, err := store.GetStudent("student_2")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Len(t, store.Students(), 2)

	require.NoError(t, store.DeleteAlumni(ctx, "alumni_3"))
	_, err = store.GetAlumni("alumni_3")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, store.DeleteEvent(ctx, "event_1"))
	_, err = store.GetEvent("event_1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Len(t, store.Events(), 1)
}

func TestStore_DeleteAbsentIsNoop(t *testing.T) {
	store, _ := newLoadedStore(t)
	ctx := context.Background()

	require.NoError(t, store.DeleteStudent(ctx, "missing"))
	require.NoError(t, store.DeleteAlumni(ctx, "missing"))
	require.NoError(t, store.DeleteEvent(ctx, "missing"))

	assert.Len(t, store.Students(), 3)
	assert.Len(t, store.Alumni(), 3)
	assert.Len(t, store.Events(), 2)
}

func TestStore_DeleteDoesNotCascadeToMentorships(t *testing.T) {
	store, _ := newLoadedStore(t)
	ctx := context.Background()

	_, err := store.RequestMentorship(ctx, "student_1", "alumni_1")
	require.NoError(t, err)
	require.NoError(t, store.DeleteStudent(ctx, "student_1"))

	assert.Len(t, store.Mentorships(), 1)
	alumni, err := store.GetAlumni("alumni_1")
	require.NoError(t, err)
	assert.Equal(t, []string{"student_1"}, alumni.Mentees)
}

func TestStore_AddEvent(t *testing.T) {
	store, _ := newLoadedStore(t)
	ctx := context.Background()

	in := models.NewEvent{
		Title:       "Hackathon",
		Description: "24h build",
		Date:        "2025-09-01",
		Location:    "Lab 3",
		AlumniID:    "alumni_1",
	}
	event, err := store.AddEvent(ctx, in)
	require.NoError(t, err)

	assert.Equal(t, "event_1740830400000", event.ID)
	assert.Len(t, store.Events(), 3)

	got, err := store.GetEvent(event.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Event{
		ID:          event.ID,
		Title:       "Hackathon",
		Description: "24h build",
		Date:        "2025-09-01",
		Location:    "Lab 3",
		AlumniID:    "alumni_1",
	}, got)
}

func TestStore_GeneratedIDsAreUniqueWithinAMillisecond(t *testing.T) {
	store, _ := newLoadedStore(t)
	ctx := context.Background()

	first, err := store.AddEvent(ctx, models.NewEvent{Title: "a"})
	require.NoError(t, err)
	second, err := store.AddEvent(ctx, models.NewEvent{Title: "b"})
	require.NoError(t, err)
	mentorship, err := store.RequestMentorship(ctx, "student_1", "alumni_1")
	require.NoError(t, err)

	assert.Equal(t, "event_1740830400000", first.ID)
	assert.Equal(t, "event_1740830400001", second.ID)
	assert.Equal(t, "mentorship_1740830400002", mentorship.ID)
}

func TestStore_UpdateAlumniProfile(t *testing.T) {
	store, _ := newLoadedStore(t)
	ctx := context.Background()

	position := "Staff Engineer"
	updated, err := store.UpdateAlumniProfile(ctx, "alumni_1", models.AlumniUpdate{Position: &position})
	require.NoError(t, err)

	assert.Equal(t, "Staff Engineer", updated.Position)
	assert.Equal(t, "Google", updated.Company)
	assert.Equal(t, "alumni_1", updated.ID)

	got, err := store.GetAlumni("alumni_1")
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestStore_UpdateAlumniProfileAbsent(t *testing.T) {
	store, _ := newLoadedStore(t)
	before := store.Alumni()

	name := "Nobody"
	_, err := store.UpdateAlumniProfile(context.Background(), "alumni_99", models.AlumniUpdate{Name: &name})

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, before, store.Alumni())
}

func TestStore_NotableAlumni(t *testing.T) {
	store, _ := newLoadedStore(t)

	notable := store.NotableAlumni()
	require.Len(t, notable, 2)
	assert.Equal(t, "alumni_1", notable[0].ID)
	assert.Equal(t, "alumni_3", notable[1].ID)

	flag := true
	_, err := store.UpdateAlumniProfile(context.Background(), "alumni_2", models.AlumniUpdate{IsNotable: &flag})
	require.NoError(t, err)

	ids := []string{}
	for _, a := range store.NotableAlumni() {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []string{"alumni_1", "alumni_2", "alumni_3"}, ids)
}

func TestStore_RequestMentorshipSeedScenario(t *testing.T) {
	store, _ := newLoadedStore(t)

	mentorship, err := store.RequestMentorship(context.Background(), "student_1", "alumni_1")
	require.NoError(t, err)

	assert.Equal(t, models.MentorshipPending, mentorship.Status)
	assert.Equal(t, "student_1", mentorship.StudentID)
	assert.Equal(t, "alumni_1", mentorship.AlumniID)
	assert.Equal(t, fixedNow, mentorship.CreatedAt)
	assert.Equal(t, []models.Mentorship{mentorship}, store.Mentorships())

	student, err := store.GetStudent("student_1")
	require.NoError(t, err)
	assert.Equal(t, []string{"alumni_1"}, student.Mentors)

	alumni, err := store.GetAlumni("alumni_1")
	require.NoError(t, err)
	assert.Equal(t, []string{"student_1"}, alumni.Mentees)
}

func TestStore_RequestMentorshipDoesNotDeduplicateOrValidate(t *testing.T) {
	store, _ := newLoadedStore(t)
	ctx := context.Background()

	_, err := store.RequestMentorship(ctx, "student_1", "alumni_1")
	require.NoError(t, err)
	_, err = store.RequestMentorship(ctx, "student_1", "alumni_1")
	require.NoError(t, err)
	_, err = store.RequestMentorship(ctx, "ghost", "alumni_2")
	require.NoError(t, err)

	assert.Len(t, store.Mentorships(), 3)
	student, err := store.GetStudent("student_1")
	require.NoError(t, err)
	assert.Equal(t, []string{"alumni_1", "alumni_1"}, student.Mentors)

	alumni, err := store.GetAlumni("alumni_2")
	require.NoError(t, err)
	assert.Equal(t, []string{"ghost"}, alumni.Mentees)
}

func TestStore_MentorshipsFor(t *testing.T) {
	store, _ := newLoadedStore(t)
	ctx := context.Background()

	m1, err := store.RequestMentorship(ctx, "student_1", "alumni_1")
	require.NoError(t, err)
	m2, err := store.RequestMentorship(ctx, "student_2", "alumni_1")
	require.NoError(t, err)
	m3, err := store.RequestMentorship(ctx, "student_1", "alumni_3")
	require.NoError(t, err)

	forStudent, err := store.MentorshipsFor("student_1", models.RoleStudent)
	require.NoError(t, err)
	assert.Equal(t, []models.Mentorship{m1, m3}, forStudent)

	forAlumni, err := store.MentorshipsFor("alumni_1", models.RoleAlumni)
	require.NoError(t, err)
	assert.Equal(t, []models.Mentorship{m1, m2}, forAlumni)

	none, err := store.MentorshipsFor("alumni_2", models.RoleAlumni)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = store.MentorshipsFor("student_1", models.Role("staff"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestStore_ReloadReproducesState(t *testing.T) {
	store, kv := newLoadedStore(t)
	ctx := context.Background()

	_, err := store.RequestMentorship(ctx, "student_1", "alumni_1")
	require.NoError(t, err)
	_, err = store.AddEvent(ctx, models.NewEvent{Title: "Meetup", Description: "d", Date: "2025-05-05", Location: "Hall"})
	require.NoError(t, err)
	require.NoError(t, store.DeleteStudent(ctx, "student_3"))

	reloaded := New(kv, WithClock(fixedClock))
	require.NoError(t, reloaded.Load(ctx))

	assert.Equal(t, store.Students(), reloaded.Students())
	assert.Equal(t, store.Alumni(), reloaded.Alumni())
	assert.Equal(t, store.Events(), reloaded.Events())
	assert.Equal(t, store.Mentorships(), reloaded.Mentorships())

	next, err := reloaded.AddEvent(ctx, models.NewEvent{Title: "Next"})
	require.NoError(t, err)
	assert.Equal(t, "event_1740830400002", next.ID)
}

func TestStore_PersistFailureKeepsMemoryAndReturnsError(t *testing.T) {
	kv := &failingKV{KV: storage.NewMemory()}
	store := New(kv, WithClock(fixedClock))
	require.NoError(t, store.Load(context.Background()))

	kv.failPuts = true
	err := store.DeleteEvent(context.Background(), "event_2")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Len(t, store.Events(), 1)
}

func TestStore_ReturnedValuesAreCopies(t *testing.T) {
	store, _ := newLoadedStore(t)

	alumni := store.Alumni()
	alumni[0].Name = "Changed"
	alumni[0].Achievements[0] = "Changed"

	got, err := store.GetAlumni("alumni_1")
	require.NoError(t, err)
	assert.Equal(t, "Sarah Wilson", got.Name)
	assert.Equal(t, "Published research paper", got.Achievements[0])
}
