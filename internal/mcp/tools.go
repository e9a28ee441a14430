// ABOUTME: MCP tool implementations for the workout tracker.
// ABOUTME: Catalog browsing, routines, the live workout, history and progress.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/elevate/internal/calc"
	"github.com/harperreed/elevate/internal/models"
	"github.com/harperreed/elevate/internal/notify"
	"github.com/harperreed/elevate/internal/progress"
	"github.com/harperreed/elevate/internal/session"
)

// ErrNoActiveWorkout is returned by live-workout tools when none is running.
var ErrNoActiveWorkout = errors.New("no active workout; call start_workout first")

// ErrUnsavedWorkout is returned by start_workout while a finished workout
// is still waiting to be saved.
var ErrUnsavedWorkout = errors.New("a finished workout has not been saved; call finish_workout to retry or discard_workout to drop it")

func (s *Server) registerTools() {
	// catalog
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_exercises",
		Description: "List catalog exercises, optionally filtered by muscle, equipment or a search term",
	}, s.handleListExercises)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_exercise",
		Description: "Get one exercise with muscles, equipment and instructions",
	}, s.handleGetExercise)

	// routines
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_routines",
		Description: "List built-in and saved workout routines",
	}, s.handleListRoutines)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "create_routine",
		Description: "Save a routine of exercises with suggested sets and reps",
	}, s.handleCreateRoutine)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_routine",
		Description: "Delete a saved routine. Built-in routines cannot be deleted",
	}, s.handleDeleteRoutine)

	// live workout
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "start_workout",
		Description: "Start a workout, empty or from a routine",
	}, s.handleStartWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_exercise",
		Description: "Add an exercise to the active workout",
	}, s.handleAddExercise)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_set",
		Description: "Add a set to an exercise, copying the previous set's weight and reps",
	}, s.handleAddSet)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_set",
		Description: "Set weight and reps of a set in the active workout",
	}, s.handleUpdateSet)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "complete_set",
		Description: "Mark a set completed or not completed",
	}, s.handleCompleteSet)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "set_notes",
		Description: "Set notes on an exercise, or on the workout when no exercise is given",
	}, s.handleSetNotes)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_active_workout",
		Description: "Show the active workout with its sets, duration and volume",
	}, s.handleGetActiveWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "finish_workout",
		Description: "Finish and save the active workout. If the save fails, call again to retry",
	}, s.handleFinishWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "discard_workout",
		Description: "Abandon the active workout, or a finished one that failed to save. Requires confirm when exercises were added",
	}, s.handleDiscardWorkout)

	// history
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_workouts",
		Description: "List saved workouts, newest first",
	}, s.handleListWorkouts)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_workout",
		Description: "Get a saved workout by ID or ID prefix",
	}, s.handleGetWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_workout",
		Description: "Delete a saved workout by ID or ID prefix",
	}, s.handleDeleteWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_progress",
		Description: "Max weight per workout for each exercise in the history",
	}, s.handleGetProgress)
}

// Tool input/output types

type listExercisesInput struct {
	Muscle    string `json:"muscle,omitempty" jsonschema:"Only exercises working this primary or secondary muscle"`
	Equipment string `json:"equipment,omitempty" jsonschema:"Only exercises using this equipment"`
	Search    string `json:"search,omitempty" jsonschema:"Case-insensitive match on name or muscle"`
}

type exercisesOutput struct {
	Exercises []models.Exercise `json:"exercises"`
}

type idInput struct {
	ID string `json:"id" jsonschema:"ID or ID prefix"`
}

type routinesOutput struct {
	Routines []routineView `json:"routines"`
}

type routineView struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	BuiltIn     bool         `json:"built_in"`
	Exercises   []targetView `json:"exercises"`
}

type targetView struct {
	ExerciseID    string `json:"exercise_id"`
	Name          string `json:"name"`
	SuggestedSets int    `json:"suggested_sets"`
	SuggestedReps int    `json:"suggested_reps"`
}

type targetInput struct {
	ExerciseID string `json:"exercise_id" jsonschema:"Catalog exercise ID"`
	Sets       int    `json:"sets" jsonschema:"Suggested number of sets"`
	Reps       int    `json:"reps" jsonschema:"Suggested reps per set"`
}

type createRoutineInput struct {
	Name        string        `json:"name" jsonschema:"Routine name"`
	Description string        `json:"description,omitempty" jsonschema:"What the routine is for"`
	Exercises   []targetInput `json:"exercises" jsonschema:"Exercises in order"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type startWorkoutInput struct {
	RoutineID string `json:"routine_id,omitempty" jsonschema:"Routine to pre-fill the workout from"`
	Name      string `json:"name,omitempty" jsonschema:"Workout name, overrides the routine name"`
}

type addExerciseInput struct {
	ExerciseID string `json:"exercise_id" jsonschema:"Catalog exercise ID"`
}

type exerciseSetInput struct {
	ExerciseSetID string `json:"exercise_set_id" jsonschema:"Exercise entry ID or prefix from get_active_workout"`
}

type updateSetInput struct {
	ExerciseSetID string  `json:"exercise_set_id" jsonschema:"Exercise entry ID or prefix from get_active_workout"`
	Index         int     `json:"index" jsonschema:"Zero-based set index"`
	Weight        float64 `json:"weight" jsonschema:"Weight in kg"`
	Reps          int     `json:"reps" jsonschema:"Repetitions"`
}

type completeSetInput struct {
	ExerciseSetID string `json:"exercise_set_id" jsonschema:"Exercise entry ID or prefix from get_active_workout"`
	Index         int    `json:"index" jsonschema:"Zero-based set index"`
	Completed     bool   `json:"completed" jsonschema:"Whether the set is done"`
}

type setNotesInput struct {
	ExerciseSetID string `json:"exercise_set_id,omitempty" jsonschema:"Exercise entry; omit for workout notes"`
	Notes         string `json:"notes" jsonschema:"Replacement notes"`
}

type discardInput struct {
	Confirm bool `json:"confirm,omitempty" jsonschema:"Confirm discarding a workout that has exercises"`
}

type workoutOutput struct {
	Workout workoutView `json:"workout"`
	Notices []string    `json:"notices,omitempty"`
	Message string      `json:"message,omitempty"`
}

type workoutView struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Date      string            `json:"date"`
	Duration  string            `json:"duration"`
	Seconds   int               `json:"seconds"`
	Volume    float64           `json:"volume"`
	Notes     string            `json:"notes,omitempty"`
	Completed bool              `json:"completed"`
	Exercises []exerciseSetView `json:"exercises"`
}

type exerciseSetView struct {
	ID         string    `json:"id"`
	ExerciseID string    `json:"exercise_id"`
	Name       string    `json:"name"`
	Notes      string    `json:"notes,omitempty"`
	Volume     float64   `json:"volume"`
	Sets       []setView `json:"sets"`
}

type setView struct {
	Weight    float64 `json:"weight"`
	Reps      int     `json:"reps"`
	Completed bool    `json:"completed"`
}

type listWorkoutsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type workoutsOutput struct {
	Workouts []workoutSummary `json:"workouts"`
}

type workoutSummary struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Date      string  `json:"date"`
	Duration  string  `json:"duration"`
	Exercises int     `json:"exercises"`
	Volume    float64 `json:"volume"`
}

type progressInput struct {
	ExerciseID string `json:"exercise_id,omitempty" jsonschema:"Only this exercise"`
}

type progressOutput struct {
	Exercises []progressView `json:"exercises"`
}

type progressView struct {
	ExerciseID string      `json:"exercise_id"`
	Name       string      `json:"name"`
	Best       float64     `json:"best"`
	Series     []pointView `json:"series"`
}

type pointView struct {
	Date      string  `json:"date"`
	MaxWeight float64 `json:"max_weight"`
	Sets      int     `json:"sets"`
}

// Views

func (s *Server) viewWorkout(w *models.Workout) workoutView {
	v := workoutView{
		ID:        w.ID,
		Name:      w.Name,
		Date:      w.Date.Format("2006-01-02 15:04"),
		Duration:  calc.FormatDuration(w.Duration),
		Seconds:   w.Duration,
		Volume:    calc.TotalVolume(w),
		Notes:     w.Notes,
		Completed: w.Completed,
		Exercises: make([]exerciseSetView, 0, len(w.ExerciseSets)),
	}
	for _, es := range w.ExerciseSets {
		ev := exerciseSetView{
			ID:         es.ID,
			ExerciseID: es.ExerciseID,
			Name:       s.catalog.Name(es.ExerciseID),
			Notes:      es.Notes,
			Volume:     calc.Volume(es.Sets),
			Sets:       make([]setView, 0, len(es.Sets)),
		}
		for _, set := range es.Sets {
			ev.Sets = append(ev.Sets, setView{Weight: set.Weight, Reps: set.Reps, Completed: set.Completed})
		}
		v.Exercises = append(v.Exercises, ev)
	}
	return v
}

func summarize(w *models.Workout) workoutSummary {
	return workoutSummary{
		ID:        models.ShortID(w.ID),
		Name:      w.Name,
		Date:      w.Date.Format("2006-01-02 15:04"),
		Duration:  calc.FormatDuration(w.Duration),
		Exercises: len(w.ExerciseSets),
		Volume:    calc.TotalVolume(w),
	}
}

func (s *Server) viewRoutine(r models.Routine) routineView {
	v := routineView{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		BuiltIn:     s.routines.IsSeed(r.ID),
		Exercises:   make([]targetView, 0, len(r.Exercises)),
	}
	for _, t := range r.Exercises {
		v.Exercises = append(v.Exercises, targetView{
			ExerciseID:    t.ExerciseID,
			Name:          s.catalog.Name(t.ExerciseID),
			SuggestedSets: t.SuggestedSets,
			SuggestedReps: t.SuggestedReps,
		})
	}
	return v
}

func notices(msgs []notify.Message) []string {
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, fmt.Sprintf("%s: %s", m.Title, m.Description))
	}
	return out
}

// Catalog handlers

func (s *Server) handleListExercises(ctx context.Context, req *mcp.CallToolRequest, input listExercisesInput) (*mcp.CallToolResult, exercisesOutput, error) {
	if err := s.requireAuth(); err != nil {
		return nil, exercisesOutput{}, err
	}

	list := s.catalog.All()
	if input.Muscle != "" {
		list = s.catalog.ByMuscle(input.Muscle)
	}
	if input.Equipment != "" {
		list = intersect(list, s.catalog.ByEquipment(input.Equipment))
	}
	if input.Search != "" {
		list = intersect(list, s.catalog.Search(input.Search))
	}
	if list == nil {
		list = []models.Exercise{}
	}
	return nil, exercisesOutput{Exercises: list}, nil
}

func intersect(a, b []models.Exercise) []models.Exercise {
	keep := make(map[string]bool, len(b))
	for _, e := range b {
		keep[e.ID] = true
	}
	var out []models.Exercise
	for _, e := range a {
		if keep[e.ID] {
			out = append(out, e)
		}
	}
	return out
}

func (s *Server) handleGetExercise(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, models.Exercise, error) {
	if err := s.requireAuth(); err != nil {
		return nil, models.Exercise{}, err
	}

	e, ok := s.catalog.Get(input.ID)
	if !ok {
		return nil, models.Exercise{}, fmt.Errorf("exercise not found: %s", input.ID)
	}
	return nil, *e, nil
}

// Routine handlers

func (s *Server) handleListRoutines(ctx context.Context, req *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, routinesOutput, error) {
	if err := s.requireAuth(); err != nil {
		return nil, routinesOutput{}, err
	}

	list, err := s.routines.List()
	if err != nil {
		return nil, routinesOutput{}, fmt.Errorf("failed to list routines: %w", err)
	}
	out := routinesOutput{Routines: make([]routineView, 0, len(list))}
	for _, r := range list {
		out.Routines = append(out.Routines, s.viewRoutine(r))
	}
	return nil, out, nil
}

func (s *Server) handleCreateRoutine(ctx context.Context, req *mcp.CallToolRequest, input createRoutineInput) (*mcp.CallToolResult, routineView, error) {
	if err := s.requireAuth(); err != nil {
		return nil, routineView{}, err
	}

	targets := make([]models.RoutineExercise, 0, len(input.Exercises))
	for _, t := range input.Exercises {
		targets = append(targets, models.RoutineExercise{
			ExerciseID:    t.ExerciseID,
			SuggestedSets: t.Sets,
			SuggestedReps: t.Reps,
		})
	}

	r, err := s.routines.Create(input.Name, input.Description, targets)
	if err != nil {
		return nil, routineView{}, err
	}
	s.logger.Info("routine created", "routine", models.ShortID(r.ID), "name", r.Name)
	return nil, s.viewRoutine(*r), nil
}

func (s *Server) handleDeleteRoutine(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.requireAuth(); err != nil {
		return nil, simpleOutput{}, err
	}

	if err := s.routines.Delete(input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete routine: %w", err)
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Deleted routine: %s", input.ID)}, nil
}

// Live workout handlers

// withActive runs fn against the active session and reports the workout
// plus any notifications fn produced.
func (s *Server) withActive(fn func(*session.Session) error) (*mcp.CallToolResult, workoutOutput, error) {
	if err := s.requireAuth(); err != nil {
		return nil, workoutOutput{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return nil, workoutOutput{}, ErrNoActiveWorkout
	}

	before := len(s.messages.Messages())
	if err := fn(s.active); err != nil {
		return nil, workoutOutput{}, err
	}
	return nil, workoutOutput{
		Workout: s.viewWorkout(s.active.Snapshot()),
		Notices: notices(s.messages.Messages()[before:]),
	}, nil
}

// resolveExerciseSet maps an ID or unique prefix to an exercise set of the
// active workout. Empty, unknown and ambiguous input is an error.
func resolveExerciseSet(w *models.Workout, idOrPrefix string) (string, error) {
	if idOrPrefix == "" {
		return "", errors.New("exercise_set_id is required")
	}
	var matches []string
	for _, es := range w.ExerciseSets {
		if es.ID == idOrPrefix {
			return es.ID, nil
		}
		if strings.HasPrefix(es.ID, idOrPrefix) {
			matches = append(matches, es.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("exercise entry not found: %s", idOrPrefix)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("exercise entry prefix %q is ambiguous", idOrPrefix)
	}
}

func (s *Server) handleStartWorkout(ctx context.Context, req *mcp.CallToolRequest, input startWorkoutInput) (*mcp.CallToolResult, workoutOutput, error) {
	if err := s.requireAuth(); err != nil {
		return nil, workoutOutput{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending != nil {
		return nil, workoutOutput{}, ErrUnsavedWorkout
	}
	if s.active != nil && s.active.State() == session.Active {
		return nil, workoutOutput{}, errors.New("a workout is already active; finish or discard it first")
	}

	recorder := &notify.Recorder{}
	opts := []session.Option{
		session.WithNotifier(recorder),
		session.WithExercises(s.catalog),
		session.WithLogger(s.logger),
	}

	var sess *session.Session
	if input.RoutineID != "" {
		r, ok, err := s.routines.Get(input.RoutineID)
		if err != nil {
			return nil, workoutOutput{}, fmt.Errorf("failed to load routine: %w", err)
		}
		if !ok {
			return nil, workoutOutput{}, fmt.Errorf("routine not found: %s", input.RoutineID)
		}
		sess = session.NewFromRoutine(*r, opts...)
	} else {
		sess = session.New(opts...)
	}
	if input.Name != "" {
		if err := sess.Rename(input.Name); err != nil {
			return nil, workoutOutput{}, err
		}
	}
	// The timer outlives this request; Close stops it.
	if err := sess.Start(context.Background()); err != nil {
		return nil, workoutOutput{}, err
	}

	s.active = sess
	s.messages = recorder
	w := sess.Snapshot()
	s.logger.Info("workout started", "workout", models.ShortID(w.ID), "routine", input.RoutineID)
	return nil, workoutOutput{
		Workout: s.viewWorkout(w),
		Message: fmt.Sprintf("Started %s (ID: %s)", w.Name, models.ShortID(w.ID)),
	}, nil
}

func (s *Server) handleAddExercise(ctx context.Context, req *mcp.CallToolRequest, input addExerciseInput) (*mcp.CallToolResult, workoutOutput, error) {
	if _, ok := s.catalog.Get(input.ExerciseID); !ok {
		return nil, workoutOutput{}, fmt.Errorf("exercise not found: %s", input.ExerciseID)
	}
	return s.withActive(func(sess *session.Session) error {
		_, err := sess.AddExercise(input.ExerciseID)
		return err
	})
}

func (s *Server) handleAddSet(ctx context.Context, req *mcp.CallToolRequest, input exerciseSetInput) (*mcp.CallToolResult, workoutOutput, error) {
	return s.withActive(func(sess *session.Session) error {
		id, err := resolveExerciseSet(sess.Snapshot(), input.ExerciseSetID)
		if err != nil {
			return err
		}
		_, err = sess.AddSet(id)
		return err
	})
}

func (s *Server) handleUpdateSet(ctx context.Context, req *mcp.CallToolRequest, input updateSetInput) (*mcp.CallToolResult, workoutOutput, error) {
	if input.Weight < 0 || input.Reps < 0 {
		return nil, workoutOutput{}, errors.New("weight and reps must not be negative")
	}
	return s.withActive(func(sess *session.Session) error {
		w := sess.Snapshot()
		id, err := resolveExerciseSet(w, input.ExerciseSetID)
		if err != nil {
			return err
		}
		es, _ := w.ExerciseSet(id)
		if input.Index < 0 || input.Index >= len(es.Sets) {
			return fmt.Errorf("%w: %d of %d", session.ErrSetIndex, input.Index, len(es.Sets))
		}
		set := es.Sets[input.Index].WithWeight(input.Weight).WithReps(input.Reps)
		return sess.UpdateSet(id, input.Index, set)
	})
}

func (s *Server) handleCompleteSet(ctx context.Context, req *mcp.CallToolRequest, input completeSetInput) (*mcp.CallToolResult, workoutOutput, error) {
	return s.withActive(func(sess *session.Session) error {
		id, err := resolveExerciseSet(sess.Snapshot(), input.ExerciseSetID)
		if err != nil {
			return err
		}
		return sess.ToggleSetCompletion(id, input.Index, input.Completed)
	})
}

func (s *Server) handleSetNotes(ctx context.Context, req *mcp.CallToolRequest, input setNotesInput) (*mcp.CallToolResult, workoutOutput, error) {
	return s.withActive(func(sess *session.Session) error {
		if input.ExerciseSetID == "" {
			return sess.SetWorkoutNotes(input.Notes)
		}
		id, err := resolveExerciseSet(sess.Snapshot(), input.ExerciseSetID)
		if err != nil {
			return err
		}
		return sess.SetNotes(id, input.Notes)
	})
}

func (s *Server) handleGetActiveWorkout(ctx context.Context, req *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, workoutOutput, error) {
	return s.withActive(func(*session.Session) error { return nil })
}

func (s *Server) handleFinishWorkout(ctx context.Context, req *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, workoutOutput, error) {
	if err := s.requireAuth(); err != nil {
		return nil, workoutOutput{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil && s.pending == nil {
		return nil, workoutOutput{}, ErrNoActiveWorkout
	}

	before := len(s.messages.Messages())
	done := s.pending
	if done == nil {
		w, err := s.active.Finish()
		if err != nil {
			return nil, workoutOutput{}, err
		}
		done = w
	}
	// A finished session cannot be finished again, so the workout is held
	// until a save succeeds.
	s.active = nil
	if err := s.repo.CreateWorkout(done); err != nil {
		s.pending = done
		s.logger.Warn("workout save failed", "workout", models.ShortID(done.ID), "err", err)
		return nil, workoutOutput{}, fmt.Errorf("failed to save workout (call finish_workout again to retry): %w", err)
	}
	s.pending = nil

	return nil, workoutOutput{
		Workout: s.viewWorkout(done),
		Notices: notices(s.messages.Messages()[before:]),
		Message: fmt.Sprintf("Saved %s (ID: %s)", done.Name, models.ShortID(done.ID)),
	}, nil
}

func (s *Server) handleDiscardWorkout(ctx context.Context, req *mcp.CallToolRequest, input discardInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.requireAuth(); err != nil {
		return nil, simpleOutput{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil && s.pending != nil {
		if !input.Confirm {
			return nil, simpleOutput{Message: "The finished workout has not been saved and will be lost. Call discard_workout again with confirm=true."}, nil
		}
		s.logger.Warn("unsaved workout dropped", "workout", models.ShortID(s.pending.ID))
		s.pending = nil
		return nil, simpleOutput{Message: "Workout discarded"}, nil
	}
	if s.active == nil {
		return nil, simpleOutput{}, ErrNoActiveWorkout
	}

	confirm := session.ConfirmFunc(func(context.Context, string) (bool, error) {
		return input.Confirm, nil
	})
	discarded, err := s.active.Discard(ctx, confirm)
	if err != nil {
		return nil, simpleOutput{}, err
	}
	if !discarded {
		return nil, simpleOutput{Message: session.DiscardPrompt + " Call discard_workout again with confirm=true."}, nil
	}
	s.active = nil
	return nil, simpleOutput{Message: "Workout discarded"}, nil
}

// History handlers

func (s *Server) handleListWorkouts(ctx context.Context, req *mcp.CallToolRequest, input listWorkoutsInput) (*mcp.CallToolResult, workoutsOutput, error) {
	if err := s.requireAuth(); err != nil {
		return nil, workoutsOutput{}, err
	}
	if input.Limit <= 0 {
		input.Limit = 20
	}

	workouts, err := s.repo.ListWorkouts(input.Limit)
	if err != nil {
		return nil, workoutsOutput{}, fmt.Errorf("failed to list workouts: %w", err)
	}
	out := workoutsOutput{Workouts: make([]workoutSummary, 0, len(workouts))}
	for _, w := range workouts {
		out.Workouts = append(out.Workouts, summarize(w))
	}
	return nil, out, nil
}

func (s *Server) handleGetWorkout(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, workoutView, error) {
	if err := s.requireAuth(); err != nil {
		return nil, workoutView{}, err
	}

	w, err := s.repo.GetWorkout(input.ID)
	if err != nil {
		return nil, workoutView{}, fmt.Errorf("workout not found: %w", err)
	}
	return nil, s.viewWorkout(w), nil
}

func (s *Server) handleDeleteWorkout(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.requireAuth(); err != nil {
		return nil, simpleOutput{}, err
	}

	if err := s.repo.DeleteWorkout(input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete workout: %w", err)
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Deleted workout: %s", input.ID)}, nil
}

func (s *Server) handleGetProgress(ctx context.Context, req *mcp.CallToolRequest, input progressInput) (*mcp.CallToolResult, progressOutput, error) {
	if err := s.requireAuth(); err != nil {
		return nil, progressOutput{}, err
	}

	report, err := s.progressReport()
	if err != nil {
		return nil, progressOutput{}, err
	}

	groups := report.Groups()
	if input.ExerciseID != "" {
		g, ok := report.Get(input.ExerciseID)
		if !ok {
			return nil, progressOutput{Exercises: []progressView{}}, nil
		}
		groups = []*progress.Group{g}
	}

	out := progressOutput{Exercises: make([]progressView, 0, len(groups))}
	for _, g := range groups {
		v := progressView{
			ExerciseID: g.Exercise.ID,
			Name:       g.Exercise.Name,
			Best:       g.Best(),
			Series:     make([]pointView, 0, len(g.Series)),
		}
		for _, p := range g.Series {
			v.Series = append(v.Series, pointView{
				Date:      p.Date.Format("2006-01-02"),
				MaxWeight: p.MaxWeight,
				Sets:      p.Sets,
			})
		}
		out.Exercises = append(out.Exercises, v)
	}
	return nil, out, nil
}

// progressReport aggregates the full history oldest first.
func (s *Server) progressReport() (*progress.Report, error) {
	history, err := s.repo.ListWorkouts(0)
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}
	for i, j := 0, len(history)-1; i < j; i, j = i+1, j-1 {
		history[i], history[j] = history[j], history[i]
	}
	return progress.Aggregate(history, s.catalog), nil
}
