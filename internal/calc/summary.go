// ABOUTME: History-level totals and the volume-over-time series.
// ABOUTME: Feeds the progress dashboard in the CLI and MCP server.
package calc

import (
	"time"

	"github.com/harperreed/elevate/internal/models"
)

// Summary holds totals across a workout history.
type Summary struct {
	Workouts      int     `json:"workouts"`
	TotalDuration int     `json:"total_duration"` // seconds
	TotalVolume   float64 `json:"total_volume"`
}

// Summarize totals the workout count, time and volume of history.
func Summarize(history []*models.Workout) Summary {
	var s Summary
	for _, w := range history {
		if w == nil {
			continue
		}
		s.Workouts++
		s.TotalDuration += w.Duration
		s.TotalVolume += TotalVolume(w)
	}
	return s
}

// VolumePoint is one workout on the volume chart.
type VolumePoint struct {
	Date    time.Time `json:"date"`
	Volume  float64   `json:"volume"`
	Minutes float64   `json:"minutes"`
}

// VolumeSeries maps a newest-first history to chart points in reverse, so
// the result reads oldest to newest.
func VolumeSeries(history []*models.Workout) []VolumePoint {
	points := make([]VolumePoint, 0, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		w := history[i]
		if w == nil {
			continue
		}
		points = append(points, VolumePoint{
			Date:    w.Date,
			Volume:  TotalVolume(w),
			Minutes: float64(w.Duration) / 60,
		})
	}
	return points
}
