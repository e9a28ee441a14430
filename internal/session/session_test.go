// ABOUTME: Tests for the workout session model.
// ABOUTME: Covers set carry-forward, no-op semantics, finish and discard rules.
package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/harperreed/elevate/internal/catalog"
	"github.com/harperreed/elevate/internal/models"
	"github.com/harperreed/elevate/internal/notify"
)

var fixedNow = time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)

func newTestSession(t *testing.T, opts ...Option) (*Session, *notify.Recorder) {
	t.Helper()
	rec := &notify.Recorder{}
	opts = append([]Option{
		WithNotifier(rec),
		WithExercises(catalog.Default()),
		WithClock(func() time.Time { return fixedNow }),
	}, opts...)
	s := New(opts...)
	t.Cleanup(func() { _ = s.Close() })
	return s, rec
}

func confirmWith(answer bool, asked *int) Confirmer {
	return ConfirmFunc(func(ctx context.Context, prompt string) (bool, error) {
		*asked++
		if prompt != DiscardPrompt {
			return false, errors.New("unexpected prompt")
		}
		return answer, nil
	})
}

func TestNewSession(t *testing.T) {
	s, _ := newTestSession(t)
	w := s.Snapshot()

	if w.ID == "" {
		t.Error("expected workout ID")
	}
	if !w.Date.Equal(fixedNow) {
		t.Errorf("Date = %v, want %v", w.Date, fixedNow)
	}
	if w.Duration != 0 || w.Completed || len(w.ExerciseSets) != 0 {
		t.Errorf("unexpected initial workout %+v", w)
	}
	if s.State() != Active {
		t.Errorf("State = %s, want active", s.State())
	}
}

func TestAddExercise(t *testing.T) {
	s, rec := newTestSession(t)

	id, err := s.AddExercise("pull-up")
	if err != nil {
		t.Fatalf("AddExercise failed: %v", err)
	}
	if _, err := s.AddExercise("deadlift"); err != nil {
		t.Fatalf("AddExercise failed: %v", err)
	}

	w := s.Snapshot()
	if len(w.ExerciseSets) != 2 {
		t.Fatalf("expected 2 exercise sets, got %d", len(w.ExerciseSets))
	}
	es := w.ExerciseSets[0]
	if es.ID != id || es.ExerciseID != "pull-up" {
		t.Errorf("first exercise set = %+v", es)
	}
	if w.ExerciseSets[1].ExerciseID != "deadlift" {
		t.Error("exercise sets should keep insertion order")
	}
	if len(es.Sets) != 1 {
		t.Fatalf("expected 1 seed set, got %d", len(es.Sets))
	}
	seed := es.Sets[0]
	if seed.Weight != 0 || seed.Reps != 0 || seed.Completed || seed.ID == "" {
		t.Errorf("seed set not empty: %+v", seed)
	}

	last, ok := rec.Last()
	if !ok || last.Title != "Exercise added" {
		t.Fatalf("expected exercise added notification, got %+v", last)
	}
	if last.Description != "Straight Leg Deadlift has been added to your workout" {
		t.Errorf("Description = %q", last.Description)
	}
}

func TestAddExerciseUnknownIDIsSilent(t *testing.T) {
	s, rec := newTestSession(t)
	if _, err := s.AddExercise("custom-move"); err != nil {
		t.Fatalf("AddExercise failed: %v", err)
	}
	if len(rec.Messages()) != 0 {
		t.Error("expected no notification for unnamed exercise")
	}
}

func TestAddSetCarriesForward(t *testing.T) {
	s, _ := newTestSession(t)
	id, _ := s.AddExercise("lat-pulldown")

	prior := s.Snapshot().ExerciseSets[0].Sets[0]
	prior.Weight, prior.Reps, prior.Completed = 70, 10, true
	if err := s.UpdateSet(id, 0, prior); err != nil {
		t.Fatalf("UpdateSet failed: %v", err)
	}

	added, err := s.AddSet(id)
	if err != nil || !added {
		t.Fatalf("AddSet = %v, %v", added, err)
	}

	sets := s.Snapshot().ExerciseSets[0].Sets
	if len(sets) != 2 {
		t.Fatalf("expected 2 sets, got %d", len(sets))
	}
	got := sets[1]
	if got.Weight != 70 || got.Reps != 10 {
		t.Errorf("new set = %+v, want weight 70 reps 10", got)
	}
	if got.Completed {
		t.Error("new set must start uncompleted")
	}
	if got.ID == "" || got.ID == sets[0].ID {
		t.Error("new set needs a fresh ID")
	}
	if !got.Date.Equal(fixedNow) {
		t.Errorf("Date = %v, want %v", got.Date, fixedNow)
	}
}

func TestAddSetUnknownExerciseSetIsNoop(t *testing.T) {
	s, _ := newTestSession(t)
	_, _ = s.AddExercise("ez-curl")
	before := s.Snapshot()

	added, err := s.AddSet("stale-id")
	if err != nil {
		t.Fatalf("AddSet should not error: %v", err)
	}
	if added {
		t.Error("expected no set to be added")
	}
	after := s.Snapshot()
	if len(after.ExerciseSets[0].Sets) != len(before.ExerciseSets[0].Sets) {
		t.Error("workout changed on stale reference")
	}
}

func TestUpdateSet(t *testing.T) {
	s, _ := newTestSession(t)
	id, _ := s.AddExercise("bent-over-row")

	replacement := models.Set{ID: "custom", Weight: 60, Reps: 8, Completed: true, Date: fixedNow}
	if err := s.UpdateSet(id, 0, replacement); err != nil {
		t.Fatalf("UpdateSet failed: %v", err)
	}
	if got := s.Snapshot().ExerciseSets[0].Sets[0]; got != replacement {
		t.Errorf("set = %+v, want %+v", got, replacement)
	}

	for _, idx := range []int{-1, 1, 5} {
		if err := s.UpdateSet(id, idx, replacement); !errors.Is(err, ErrSetIndex) {
			t.Errorf("UpdateSet(index %d) err = %v, want ErrSetIndex", idx, err)
		}
	}

	if err := s.UpdateSet("unknown", 0, replacement); err != nil {
		t.Errorf("UpdateSet on unknown exercise set should be a no-op, got %v", err)
	}
}

func TestToggleSetCompletionPreservesFields(t *testing.T) {
	s, _ := newTestSession(t)
	id, _ := s.AddExercise("deadlift")
	orig := models.Set{ID: "s1", Weight: 100, Reps: 5, Date: fixedNow}
	_ = s.UpdateSet(id, 0, orig)

	if err := s.ToggleSetCompletion(id, 0, true); err != nil {
		t.Fatalf("ToggleSetCompletion failed: %v", err)
	}
	got := s.Snapshot().ExerciseSets[0].Sets[0]
	want := orig
	want.Completed = true
	if got != want {
		t.Errorf("set = %+v, want %+v", got, want)
	}

	_ = s.ToggleSetCompletion(id, 0, false)
	if s.Snapshot().ExerciseSets[0].Sets[0].Completed {
		t.Error("expected completion to be cleared")
	}

	if err := s.ToggleSetCompletion(id, 3, true); !errors.Is(err, ErrSetIndex) {
		t.Errorf("expected ErrSetIndex, got %v", err)
	}
}

func TestSetNotes(t *testing.T) {
	s, _ := newTestSession(t)
	id, _ := s.AddExercise("pull-up")

	if err := s.SetNotes(id, "wide grip"); err != nil {
		t.Fatalf("SetNotes failed: %v", err)
	}
	if err := s.SetNotes(id, "neutral grip"); err != nil {
		t.Fatalf("SetNotes failed: %v", err)
	}
	if got := s.Snapshot().ExerciseSets[0].Notes; got != "neutral grip" {
		t.Errorf("Notes = %q, want replacement", got)
	}
	if err := s.SetNotes("unknown", "x"); err != nil {
		t.Errorf("SetNotes on unknown id should be a no-op, got %v", err)
	}

	if err := s.SetWorkoutNotes("deload week"); err != nil {
		t.Fatalf("SetWorkoutNotes failed: %v", err)
	}
	if got := s.Snapshot().Notes; got != "deload week" {
		t.Errorf("workout Notes = %q", got)
	}
}

func TestRename(t *testing.T) {
	s, _ := newTestSession(t)

	if err := s.Rename("  Push Day "); err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	if got := s.Snapshot().Name; got != "Push Day" {
		t.Errorf("Name = %q, want trimmed", got)
	}
	if err := s.Rename("   "); err != nil {
		t.Fatal(err)
	}
	if got := s.Snapshot().Name; got != "Push Day" {
		t.Errorf("blank rename changed name to %q", got)
	}
}

func TestPrevious(t *testing.T) {
	s, _ := newTestSession(t)
	id, _ := s.AddExercise("ez-curl")
	_ = s.UpdateSet(id, 0, models.Set{ID: "first", Weight: 30, Reps: 12})
	_, _ = s.AddSet(id)

	prev, ok := s.Previous(id, 1)
	if !ok || prev.ID != "first" {
		t.Errorf("Previous(1) = %+v, %v", prev, ok)
	}
	if _, ok := s.Previous(id, 0); ok {
		t.Error("first set has no previous")
	}
	if _, ok := s.Previous("missing", 1); ok {
		t.Error("unknown exercise set has no previous")
	}
}

func TestTick(t *testing.T) {
	s, _ := newTestSession(t)
	for i := 0; i < 3; i++ {
		s.Tick()
	}
	if got := s.Duration(); got != 3 {
		t.Errorf("Duration = %d, want 3", got)
	}
}

func TestFinishEmptyWorkoutIsRejected(t *testing.T) {
	s, rec := newTestSession(t)
	s.Tick()

	w, err := s.Finish()
	if !errors.Is(err, ErrEmptyWorkout) {
		t.Fatalf("Finish err = %v, want ErrEmptyWorkout", err)
	}
	if w != nil {
		t.Error("expected no workout on rejection")
	}
	if s.State() != Active {
		t.Errorf("State = %s, want active", s.State())
	}
	if s.Snapshot().Completed {
		t.Error("workout must stay uncompleted")
	}

	last, _ := rec.Last()
	if last.Title != "Cannot finish empty workout" || last.Severity != notify.Destructive {
		t.Errorf("unexpected warning %+v", last)
	}

	// Still usable afterwards.
	if _, err := s.AddExercise("pull-up"); err != nil {
		t.Errorf("session should remain active: %v", err)
	}
}

func TestFinishFreezesDuration(t *testing.T) {
	s, rec := newTestSession(t)
	_, _ = s.AddExercise("pull-up")
	for i := 0; i < 90; i++ {
		s.Tick()
	}

	w, err := s.Finish()
	if err != nil {
		t.Fatalf("Finish failed: %v", err)
	}
	if !w.Completed || w.Duration != 90 {
		t.Errorf("finished workout = completed %v duration %d", w.Completed, w.Duration)
	}

	s.Tick()
	if got := s.Duration(); got != 90 {
		t.Errorf("Duration after finish = %d, want frozen 90", got)
	}
	if s.State() != Completed {
		t.Errorf("State = %s, want completed", s.State())
	}

	last, _ := rec.Last()
	if last.Title != "Workout completed" || last.Description != "New Workout finished in 1m 30s" {
		t.Errorf("unexpected completion message %+v", last)
	}
}

func TestMutationsAfterFinish(t *testing.T) {
	s, _ := newTestSession(t)
	id, _ := s.AddExercise("pull-up")
	if _, err := s.Finish(); err != nil {
		t.Fatalf("Finish failed: %v", err)
	}

	if _, err := s.AddExercise("deadlift"); !errors.Is(err, ErrNotActive) {
		t.Errorf("AddExercise err = %v", err)
	}
	if _, err := s.AddSet(id); !errors.Is(err, ErrNotActive) {
		t.Errorf("AddSet err = %v", err)
	}
	if err := s.SetNotes(id, "x"); !errors.Is(err, ErrNotActive) {
		t.Errorf("SetNotes err = %v", err)
	}
	if _, err := s.Finish(); !errors.Is(err, ErrNotActive) {
		t.Errorf("second Finish err = %v", err)
	}
	if _, err := s.Discard(context.Background(), nil); !errors.Is(err, ErrNotActive) {
		t.Errorf("Discard after finish err = %v", err)
	}
}

func TestDiscardEmptyNeedsNoConfirmation(t *testing.T) {
	s, _ := newTestSession(t)
	asked := 0

	ok, err := s.Discard(context.Background(), confirmWith(false, &asked))
	if err != nil || !ok {
		t.Fatalf("Discard = %v, %v", ok, err)
	}
	if asked != 0 {
		t.Error("empty workout should not ask for confirmation")
	}
	if s.State() != Discarded {
		t.Errorf("State = %s, want discarded", s.State())
	}
}

func TestDiscardNonEmptyRequiresConfirmation(t *testing.T) {
	s, _ := newTestSession(t)
	_, _ = s.AddExercise("deadlift")
	asked := 0

	ok, err := s.Discard(context.Background(), confirmWith(false, &asked))
	if err != nil {
		t.Fatalf("Discard failed: %v", err)
	}
	if ok || asked != 1 {
		t.Errorf("declined discard: ok=%v asked=%d", ok, asked)
	}
	if s.State() != Active {
		t.Error("declined discard must keep the session active")
	}

	ok, err = s.Discard(context.Background(), confirmWith(true, &asked))
	if err != nil || !ok {
		t.Fatalf("confirmed Discard = %v, %v", ok, err)
	}
	if s.State() != Discarded {
		t.Errorf("State = %s, want discarded", s.State())
	}
}

func TestDiscardWithoutConfirmerKeepsWorkout(t *testing.T) {
	s, _ := newTestSession(t)
	_, _ = s.AddExercise("deadlift")

	ok, err := s.Discard(context.Background(), nil)
	if err != nil || ok {
		t.Errorf("Discard(nil) = %v, %v; want false, nil", ok, err)
	}
}

func TestDiscardConfirmError(t *testing.T) {
	s, _ := newTestSession(t)
	_, _ = s.AddExercise("deadlift")
	boom := errors.New("stdin closed")

	_, err := s.Discard(context.Background(), ConfirmFunc(func(context.Context, string) (bool, error) {
		return false, boom
	}))
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped confirm error, got %v", err)
	}
	if s.State() != Active {
		t.Error("failed confirmation must keep the session active")
	}
}

func TestNewFromRoutine(t *testing.T) {
	r := models.Routine{
		ID:   "routine1",
		Name: "Pull Day",
		Exercises: []models.RoutineExercise{
			{ExerciseID: "pull-up", SuggestedSets: 3, SuggestedReps: 8},
			{ExerciseID: "ez-curl", SuggestedSets: 0, SuggestedReps: 12},
		},
	}
	s := NewFromRoutine(r, WithClock(func() time.Time { return fixedNow }))
	defer s.Close()

	w := s.Snapshot()
	if w.Name != "Pull Day" {
		t.Errorf("Name = %s, want Pull Day", w.Name)
	}
	if len(w.ExerciseSets) != 2 {
		t.Fatalf("expected 2 exercise sets, got %d", len(w.ExerciseSets))
	}
	if n := len(w.ExerciseSets[0].Sets); n != 3 {
		t.Errorf("pull-up sets = %d, want 3", n)
	}
	for _, set := range w.ExerciseSets[0].Sets {
		if set.Reps != 8 || set.Weight != 0 || set.Completed {
			t.Errorf("unexpected seeded set %+v", set)
		}
	}
	if n := len(w.ExerciseSets[1].Sets); n != 1 {
		t.Errorf("zero suggested sets should still seed one set, got %d", n)
	}
}

func TestSnapshotIsIsolated(t *testing.T) {
	s, _ := newTestSession(t)
	_, _ = s.AddExercise("pull-up")

	snap := s.Snapshot()
	snap.ExerciseSets[0].Sets[0].Weight = 999

	if s.Snapshot().ExerciseSets[0].Sets[0].Weight != 0 {
		t.Error("snapshot mutation leaked into session")
	}
}

func TestStateString(t *testing.T) {
	if Active.String() != "active" || Completed.String() != "completed" || Discarded.String() != "discarded" {
		t.Error("unexpected state names")
	}
	if State(9).String() != "State(9)" {
		t.Errorf("unknown state = %s", State(9))
	}
}
