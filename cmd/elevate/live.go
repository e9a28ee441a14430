// ABOUTME: Line-driven live workout loop behind 'elevate workout start'.
// ABOUTME: Reads commands from stdin and applies them to a session until finish or discard.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/harperreed/elevate/internal/calc"
	"github.com/harperreed/elevate/internal/models"
	"github.com/harperreed/elevate/internal/session"
)

const liveHelp = `Commands:
  add <exercise-id>      add an exercise and select it
  use <n>                select exercise n
  set                    add a set to the selected exercise
  weight <kg> [set]      set the weight (default: last set)
  reps <n> [set]         set the reps (default: last set)
  done [set]             mark a set completed (default: last set)
  undo [set]             mark a set not completed
  note <text>            notes for the selected exercise
  wnote <text>           notes for the whole workout
  rename <name>          rename the workout
  show                   show the workout
  finish                 finish and save
  discard                abandon the workout
  help                   this help`

// liveWorkout drives one session from a line source.
type liveWorkout struct {
	sess     *session.Session
	lines    <-chan string
	out      io.Writer
	selected int // index into ExerciseSets, -1 when none
}

// runLive reads commands until the workout is finished, discarded or the
// input ends. It returns the finished workout, or nil when none was finished.
func runLive(ctx context.Context, sess *session.Session, in io.Reader, out io.Writer) (*models.Workout, error) {
	readCtx, stopReading := context.WithCancel(ctx)
	defer stopReading()

	lw := &liveWorkout{sess: sess, lines: scanLines(readCtx, in), out: out, selected: -1}
	if n := len(sess.Snapshot().ExerciseSets); n > 0 {
		lw.selected = 0
	}

	lw.show()
	fmt.Fprintln(out, color.New(color.Faint).Sprint("Type 'help' for commands."))

	for {
		fmt.Fprint(out, "> ")
		line, ok := lw.next(ctx)
		if !ok {
			fmt.Fprintln(out)
			color.New(color.FgYellow).Fprintln(out, "Workout abandoned")
			return nil, ctx.Err()
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		verb, rest := fields[0], fields[1:]

		var err error
		switch verb {
		case "add":
			err = lw.add(rest)
		case "use":
			err = lw.use(rest)
		case "set":
			err = lw.addSet()
		case "weight", "reps":
			err = lw.update(verb, rest)
		case "done", "undo":
			err = lw.toggle(verb == "done", rest)
		case "note":
			err = lw.note(strings.TrimSpace(strings.TrimPrefix(line, "note")))
		case "wnote":
			err = sess.SetWorkoutNotes(strings.TrimSpace(strings.TrimPrefix(line, "wnote")))
		case "rename":
			err = sess.Rename(strings.TrimSpace(strings.TrimPrefix(line, "rename")))
		case "show":
			lw.show()
		case "finish":
			w, ferr := sess.Finish()
			if errors.Is(ferr, session.ErrEmptyWorkout) {
				continue
			}
			if ferr != nil {
				return nil, ferr
			}
			return w, nil
		case "discard":
			discarded, derr := sess.Discard(ctx, lw)
			if derr != nil {
				return nil, derr
			}
			if discarded {
				color.New(color.FgYellow).Fprintln(out, "Workout discarded")
				return nil, nil
			}
		case "help", "?":
			fmt.Fprintln(out, liveHelp)
		default:
			err = fmt.Errorf("unknown command %q (type 'help')", verb)
		}
		if err != nil {
			color.New(color.FgRed).Fprintf(out, "✗ %v\n", err)
		}
	}
}

// scanLines feeds input lines to a channel until EOF or ctx is done.
func scanLines(ctx context.Context, in io.Reader) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case ch <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

func (lw *liveWorkout) next(ctx context.Context) (string, bool) {
	select {
	case line, ok := <-lw.lines:
		return strings.TrimSpace(line), ok
	case <-ctx.Done():
		return "", false
	}
}

// Confirm asks on the same line source. Anything but y/yes declines.
func (lw *liveWorkout) Confirm(ctx context.Context, prompt string) (bool, error) {
	fmt.Fprintf(lw.out, "%s [y/N] ", prompt)
	answer, ok := lw.next(ctx)
	if !ok {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		return false, nil
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}

func (lw *liveWorkout) add(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: add <exercise-id>")
	}
	if _, ok := exercises.Get(args[0]); !ok {
		return fmt.Errorf("exercise not found: %s (see 'elevate exercise list')", args[0])
	}
	if _, err := lw.sess.AddExercise(args[0]); err != nil {
		return err
	}
	lw.selected = len(lw.sess.Snapshot().ExerciseSets) - 1
	return nil
}

func (lw *liveWorkout) use(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: use <n>")
	}
	n, err := strconv.Atoi(args[0])
	count := len(lw.sess.Snapshot().ExerciseSets)
	if err != nil || n < 1 || n > count {
		return fmt.Errorf("pick an exercise between 1 and %d", count)
	}
	lw.selected = n - 1
	return nil
}

// current returns the selected exercise set.
func (lw *liveWorkout) current() (models.ExerciseSet, error) {
	w := lw.sess.Snapshot()
	if lw.selected < 0 || lw.selected >= len(w.ExerciseSets) {
		return models.ExerciseSet{}, errors.New("no exercise selected; use 'add' or 'use'")
	}
	return w.ExerciseSets[lw.selected], nil
}

// setIndex resolves an optional 1-based set argument, defaulting to the last set.
func setIndex(es models.ExerciseSet, args []string) (int, error) {
	if len(args) == 0 {
		return len(es.Sets) - 1, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid set number: %s", args[0])
	}
	return n - 1, nil
}

func (lw *liveWorkout) addSet() error {
	es, err := lw.current()
	if err != nil {
		return err
	}
	_, err = lw.sess.AddSet(es.ID)
	return err
}

func (lw *liveWorkout) update(field string, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: %s <value> [set]", field)
	}
	es, err := lw.current()
	if err != nil {
		return err
	}
	i, err := setIndex(es, args[1:])
	if err != nil {
		return err
	}
	if i < 0 || i >= len(es.Sets) {
		return fmt.Errorf("%w: set %d of %d", session.ErrSetIndex, i+1, len(es.Sets))
	}

	set := es.Sets[i]
	switch field {
	case "weight":
		kg, err := strconv.ParseFloat(args[0], 64)
		if err != nil || kg < 0 {
			return fmt.Errorf("invalid weight: %s", args[0])
		}
		set = set.WithWeight(kg)
	case "reps":
		reps, err := strconv.Atoi(args[0])
		if err != nil || reps < 0 {
			return fmt.Errorf("invalid reps: %s", args[0])
		}
		set = set.WithReps(reps)
	}
	return lw.sess.UpdateSet(es.ID, i, set)
}

func (lw *liveWorkout) toggle(completed bool, args []string) error {
	es, err := lw.current()
	if err != nil {
		return err
	}
	i, err := setIndex(es, args)
	if err != nil {
		return err
	}
	return lw.sess.ToggleSetCompletion(es.ID, i, completed)
}

func (lw *liveWorkout) note(text string) error {
	es, err := lw.current()
	if err != nil {
		return err
	}
	return lw.sess.SetNotes(es.ID, text)
}

func (lw *liveWorkout) show() {
	printWorkout(lw.out, lw.sess.Snapshot(), lw.selected, lw.sess.Previous)
}

// printWorkout renders a workout with one table per exercise. previous, when
// non-nil, fills the column showing the set before each one.
func printWorkout(out io.Writer, w *models.Workout, selected int, previous func(string, int) (models.Set, bool)) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	fmt.Fprintf(out, "%s  %s  %s\n",
		bold.Sprint(w.Name),
		faint.Sprint(calc.FormatDuration(w.Duration)),
		faint.Sprintf("%g kg", calc.TotalVolume(w)))
	if w.Notes != "" {
		fmt.Fprintf(out, "%s\n", faint.Sprint(w.Notes))
	}
	if len(w.ExerciseSets) == 0 {
		fmt.Fprintln(out, faint.Sprint("No exercises yet."))
		return
	}

	for i, es := range w.ExerciseSets {
		marker := " "
		if i == selected {
			marker = "›"
		}
		fmt.Fprintf(out, "\n%s %d. %s\n", marker, i+1, bold.Sprint(exercises.Name(es.ExerciseID)))
		if es.Notes != "" {
			fmt.Fprintf(out, "     %s\n", faint.Sprint(es.Notes))
		}
		fmt.Fprintf(out, "     %s\n", faint.Sprint("set  previous      kg      reps  done"))
		for j, s := range es.Sets {
			prev := "-"
			if previous != nil {
				if p, ok := previous(es.ID, j); ok {
					prev = fmt.Sprintf("%gkg x %d", p.Weight, p.Reps)
				}
			}
			done := "·"
			if s.Completed {
				done = color.New(color.FgGreen).Sprint("✓")
			}
			fmt.Fprintf(out, "     %-4d %-13s %-7g %-5d %s\n", j+1, prev, s.Weight, s.Reps, done)
		}
	}
}
