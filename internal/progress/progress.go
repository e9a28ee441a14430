// ABOUTME: Folds workout history into per-exercise progress series.
// ABOUTME: Groups keep first-seen order; points keep history order.
package progress

import (
	"time"

	"github.com/harperreed/elevate/internal/calc"
	"github.com/harperreed/elevate/internal/models"
)

// ExerciseLookup resolves exercise IDs. *catalog.Catalog satisfies it.
type ExerciseLookup interface {
	Get(id string) (*models.Exercise, bool)
}

// Point is one exercise's showing in one workout.
type Point struct {
	Date      time.Time `json:"date"`
	MaxWeight float64   `json:"max_weight"`
	Sets      int       `json:"sets"`
}

// Group is the series for one exercise.
type Group struct {
	Exercise models.Exercise `json:"exercise"`
	Series   []Point         `json:"series"`
}

// Best returns the heaviest max weight in the series.
func (g *Group) Best() float64 {
	var best float64
	for _, p := range g.Series {
		if p.MaxWeight > best {
			best = p.MaxWeight
		}
	}
	return best
}

// Last returns the final point in the series.
func (g *Group) Last() (Point, bool) {
	if len(g.Series) == 0 {
		return Point{}, false
	}
	return g.Series[len(g.Series)-1], true
}

// Report maps exercise IDs to their progress groups.
type Report struct {
	order  []string
	groups map[string]*Group
}

// Aggregate walks history in the order given. Exercise sets whose exercise
// cannot be resolved are skipped.
func Aggregate(history []*models.Workout, exercises ExerciseLookup) *Report {
	r := &Report{groups: make(map[string]*Group)}
	for _, w := range history {
		if w == nil {
			continue
		}
		for _, es := range w.ExerciseSets {
			g, ok := r.groups[es.ExerciseID]
			if !ok {
				e, found := exercises.Get(es.ExerciseID)
				if !found {
					continue
				}
				g = &Group{Exercise: *e}
				r.groups[es.ExerciseID] = g
				r.order = append(r.order, es.ExerciseID)
			}
			g.Series = append(g.Series, Point{
				Date:      w.Date,
				MaxWeight: calc.MaxWeight(es.Sets),
				Sets:      len(es.Sets),
			})
		}
	}
	return r
}

// Len returns the number of exercise groups.
func (r *Report) Len() int {
	return len(r.order)
}

// Get returns the group for an exercise ID.
func (r *Report) Get(exerciseID string) (*Group, bool) {
	g, ok := r.groups[exerciseID]
	return g, ok
}

// Groups returns every group in first-seen order.
func (r *Report) Groups() []*Group {
	out := make([]*Group, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.groups[id])
	}
	return out
}

// Map returns the groups keyed by exercise ID.
func (r *Report) Map() map[string]*Group {
	out := make(map[string]*Group, len(r.groups))
	for id, g := range r.groups {
		out[id] = g
	}
	return out
}
