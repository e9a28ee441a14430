// ABOUTME: Export and import functionality for elevate data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats; JSON and YAML import.
package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/elevate/internal/calc"
	"github.com/harperreed/elevate/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportVersion is written into every export file.
const ExportVersion = "1.0"

// ExportData represents the full export format for elevate data.
// Accounts are never exported.
type ExportData struct {
	Version    string            `json:"version" yaml:"version"`
	ExportedAt time.Time         `json:"exported_at" yaml:"exported_at"`
	Tool       string            `json:"tool" yaml:"tool"`
	Workouts   []*models.Workout `json:"workouts" yaml:"workouts"`
	Routines   []*models.Routine `json:"routines" yaml:"routines"`
}

// GetAllData retrieves all data for export.
func (d *DB) GetAllData() (*ExportData, error) {
	return collectExport(d)
}

// ImportData imports data from an export file.
func (d *DB) ImportData(data *ExportData) error {
	return applyImport(d, data)
}

func collectExport(repo Repository) (*ExportData, error) {
	workouts, err := repo.ListWorkouts(0)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	routines, err := repo.ListRoutines()
	if err != nil {
		return nil, fmt.Errorf("list routines: %w", err)
	}
	if workouts == nil {
		workouts = []*models.Workout{}
	}
	if routines == nil {
		routines = []*models.Routine{}
	}

	return &ExportData{
		Version:    ExportVersion,
		ExportedAt: time.Now(),
		Tool:       "elevate",
		Workouts:   workouts,
		Routines:   routines,
	}, nil
}

// applyImport creates every routine and workout not already present, so
// importing the same file twice is harmless.
func applyImport(repo Repository, data *ExportData) error {
	existing, err := repo.ListRoutines()
	if err != nil {
		return fmt.Errorf("list routines: %w", err)
	}
	seen := make(map[string]bool, len(existing))
	for _, r := range existing {
		seen[r.ID] = true
	}

	for _, r := range data.Routines {
		if seen[r.ID] {
			continue
		}
		if err := repo.CreateRoutine(r); err != nil {
			return fmt.Errorf("import routine: %w", err)
		}
		seen[r.ID] = true
	}

	for _, w := range data.Workouts {
		if _, err := repo.GetWorkout(w.ID); err == nil {
			continue
		}
		if err := repo.CreateWorkout(w); err != nil {
			return fmt.Errorf("import workout: %w", err)
		}
	}

	return nil
}

// ExportJSON exports all data as JSON.
func ExportJSON(repo Repository) ([]byte, error) {
	data, err := repo.GetAllData()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports all data as YAML.
func ExportYAML(repo Repository) ([]byte, error) {
	data, err := repo.GetAllData()
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(data)
}

// ExportWorkoutJSON wraps a single workout in the export format, so a
// workout that could not be saved can be brought back with ImportJSON.
func ExportWorkoutJSON(w *models.Workout) ([]byte, error) {
	data := &ExportData{
		Version:    ExportVersion,
		ExportedAt: time.Now(),
		Tool:       "elevate",
		Workouts:   []*models.Workout{w},
		Routines:   []*models.Routine{},
	}
	return json.MarshalIndent(data, "", "  ")
}

// ImportJSON imports data from JSON bytes.
func ImportJSON(repo Repository, raw []byte) error {
	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("unmarshal JSON: %w", err)
	}
	return repo.ImportData(&data)
}

// ImportYAML imports data from YAML bytes.
func ImportYAML(repo Repository, raw []byte) error {
	var data ExportData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("unmarshal YAML: %w", err)
	}
	return repo.ImportData(&data)
}

// ExportMarkdown renders a human-readable report. names maps exercise IDs to
// display names; since, when non-nil, drops older workouts.
//
//nolint:gocognit // Linear report rendering.
func ExportMarkdown(repo Repository, names func(id string) string, since *time.Time) (string, error) {
	data, err := repo.GetAllData()
	if err != nil {
		return "", err
	}

	workouts := data.Workouts
	if since != nil {
		var filtered []*models.Workout
		for _, w := range workouts {
			if !w.Date.Before(*since) {
				filtered = append(filtered, w)
			}
		}
		workouts = filtered
	}

	var sb strings.Builder
	now := time.Now()

	sb.WriteString(fmt.Sprintf("# Elevate Export - %s\n\n", now.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	summary := calc.Summarize(workouts)
	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Workouts | Total Time | Total Volume |\n")
	sb.WriteString("|----------|------------|--------------|\n")
	sb.WriteString(fmt.Sprintf("| %d | %s | %.0f kg |\n\n",
		summary.Workouts, calc.FormatDuration(summary.TotalDuration), summary.TotalVolume))

	if len(workouts) > 0 {
		sb.WriteString("## Workouts\n\n")
		for _, w := range workouts {
			sb.WriteString(fmt.Sprintf("### %s (%s)\n\n", w.Name, w.Date.Format("2006-01-02 15:04")))
			sb.WriteString(fmt.Sprintf("Duration: %s, Volume: %.0f kg\n\n",
				calc.FormatDuration(w.Duration), calc.TotalVolume(w)))
			if w.Notes != "" {
				sb.WriteString(w.Notes + "\n\n")
			}
			sb.WriteString("| Exercise | Set | Weight | Reps | Done |\n")
			sb.WriteString("|----------|-----|--------|------|------|\n")
			for _, es := range w.ExerciseSets {
				for i, s := range es.Sets {
					done := ""
					if s.Completed {
						done = "x"
					}
					sb.WriteString(fmt.Sprintf("| %s | %d | %g kg | %d | %s |\n",
						names(es.ExerciseID), i+1, s.Weight, s.Reps, done))
				}
			}
			sb.WriteString("\n")
		}
	}

	if len(data.Routines) > 0 {
		sb.WriteString("## Routines\n\n")
		for _, r := range data.Routines {
			sb.WriteString(fmt.Sprintf("### %s\n\n", r.Name))
			if r.Description != "" {
				sb.WriteString(r.Description + "\n\n")
			}
			sb.WriteString("| Exercise | Sets | Reps |\n")
			sb.WriteString("|----------|------|------|\n")
			for _, t := range r.Exercises {
				sb.WriteString(fmt.Sprintf("| %s | %d | %d |\n", names(t.ExerciseID), t.SuggestedSets, t.SuggestedReps))
			}
			sb.WriteString("\n")
		}
	}

	return sb.String(), nil
}
