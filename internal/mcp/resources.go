// ABOUTME: MCP resource implementations for the workout tracker.
// ABOUTME: Provides elevate://exercises, routines, recent, today and summary resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/elevate/internal/calc"
	"github.com/harperreed/elevate/internal/models"
)

func (s *Server) registerResources() {
	// elevate://exercises - the built-in exercise catalog
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "elevate://exercises",
		Name:        "Exercise Catalog",
		Description: "Every exercise with muscles, equipment and instructions",
		MIMEType:    "application/json",
	}, s.handleExercisesResource)

	// elevate://routines - built-in and saved routines
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "elevate://routines",
		Name:        "Workout Routines",
		Description: "Built-in and saved routines with their exercise targets",
		MIMEType:    "application/json",
	}, s.handleRoutinesResource)

	// elevate://recent - last 10 workouts plus the live one
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "elevate://recent",
		Name:        "Recent Workouts",
		Description: "Last 10 saved workouts and the active workout, if any",
		MIMEType:    "application/json",
	}, s.handleRecentResource)

	// elevate://today - workouts started today
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "elevate://today",
		Name:        "Today's Workouts",
		Description: "Workouts saved today with their volume",
		MIMEType:    "application/json",
	}, s.handleTodayResource)

	// elevate://summary - totals, volume trend and per-exercise bests
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "elevate://summary",
		Name:        "Training Summary",
		Description: "Workout count, total time and volume, volume trend and best lifts",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// Resource handlers

func (s *Server) handleExercisesResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	if err := s.requireAuth(); err != nil {
		return nil, err
	}

	return jsonResource("elevate://exercises", map[string]interface{}{
		"exercises": s.catalog.All(),
		"muscles":   s.catalog.Muscles(),
		"equipment": s.catalog.Equipment(),
	})
}

func (s *Server) handleRoutinesResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	if err := s.requireAuth(); err != nil {
		return nil, err
	}

	list, err := s.routines.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list routines: %w", err)
	}
	views := make([]routineView, 0, len(list))
	for _, r := range list {
		views = append(views, s.viewRoutine(r))
	}
	return jsonResource("elevate://routines", map[string]interface{}{"routines": views})
}

func (s *Server) handleRecentResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	if err := s.requireAuth(); err != nil {
		return nil, err
	}

	workouts, err := s.repo.ListWorkouts(10)
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}
	recent := make([]workoutSummary, 0, len(workouts))
	for _, w := range workouts {
		recent = append(recent, summarize(w))
	}

	result := map[string]interface{}{
		"workouts": recent,
	}

	s.mu.Lock()
	if s.active != nil {
		result["active"] = s.viewWorkout(s.active.Snapshot())
	}
	s.mu.Unlock()

	return jsonResource("elevate://recent", result)
}

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	if err := s.requireAuth(); err != nil {
		return nil, err
	}

	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	// newest first, so stop at the first one before midnight
	workouts, err := s.repo.ListWorkouts(0)
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}
	var today []*models.Workout
	for _, w := range workouts {
		if w.Date.Before(todayStart) {
			break
		}
		today = append(today, w)
	}

	views := make([]workoutView, 0, len(today))
	for _, w := range today {
		views = append(views, s.viewWorkout(w))
	}
	totals := calc.Summarize(today)

	return jsonResource("elevate://today", map[string]interface{}{
		"date":     todayStart.Format("2006-01-02"),
		"workouts": views,
		"totals":   totals,
	})
}

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	if err := s.requireAuth(); err != nil {
		return nil, err
	}

	workouts, err := s.repo.ListWorkouts(0)
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}
	report, err := s.progressReport()
	if err != nil {
		return nil, err
	}
	bests := make(map[string]float64, report.Len())
	for _, g := range report.Groups() {
		bests[g.Exercise.Name] = g.Best()
	}

	totals := calc.Summarize(workouts)
	result := map[string]interface{}{
		"generated_at":   time.Now().Format(time.RFC3339),
		"totals":         totals,
		"total_duration": calc.FormatDuration(totals.TotalDuration),
		"volume_series":  calc.VolumeSeries(workouts),
		"best_lifts":     bests,
	}
	return jsonResource("elevate://summary", result)
}
