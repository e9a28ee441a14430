// ABOUTME: Pure volume, max-weight and duration calculations over workout data.
// ABOUTME: Used by the session view, progress reports and exports.
package calc

import (
	"fmt"

	"github.com/harperreed/elevate/internal/models"
)

// Volume sums weight*reps over every set. The completed flag is not
// considered: unfinished sets still count.
func Volume(sets []models.Set) float64 {
	var total float64
	for _, s := range sets {
		total += s.Weight * float64(s.Reps)
	}
	return total
}

// TotalVolume sums Volume over all exercise sets of a workout.
func TotalVolume(w *models.Workout) float64 {
	if w == nil {
		return 0
	}
	var total float64
	for _, es := range w.ExerciseSets {
		total += Volume(es.Sets)
	}
	return total
}

// MaxWeight returns the heaviest weight in sets, or 0 when sets is empty.
func MaxWeight(sets []models.Set) float64 {
	if len(sets) == 0 {
		return 0
	}
	heaviest := sets[0].Weight
	for _, s := range sets[1:] {
		if s.Weight > heaviest {
			heaviest = s.Weight
		}
	}
	return heaviest
}

// FormatDuration renders seconds as "45s", "1m", "1m 30s" or "1h 0m".
func FormatDuration(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}

	minutes := seconds / 60
	rem := seconds % 60
	if minutes < 60 {
		if rem > 0 {
			return fmt.Sprintf("%dm %ds", minutes, rem)
		}
		return fmt.Sprintf("%dm", minutes)
	}

	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
