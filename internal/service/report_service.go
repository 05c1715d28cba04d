package service

import (
	"context"
	"time"

	"fittrack/workout-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutSummary is the aggregate over an owner's completed workouts.
type WorkoutSummary struct {
	TotalCompleted int        `json:"totalCompleted"`
	TotalDuration  float64    `json:"totalDuration"`
	From           *time.Time `json:"from"`
	To             *time.Time `json:"to"`
}

// ReportService is the read-only aggregation over completed workouts and
// their logs.
type ReportService interface {
	Summary(ctx context.Context, ownerID primitive.ObjectID, from, to *time.Time) (*WorkoutSummary, error)
}

// --- Service Implementation ---

type reportService struct {
	workoutRepo repository.WorkoutRepository
}

// NewReportService creates a new instance of reportService.
func NewReportService(workoutRepo repository.WorkoutRepository) ReportService {
	return &reportService{workoutRepo: workoutRepo}
}

// Summary counts the owner's COMPLETED workouts and sums their log
// durations. When both bounds are set, a workout qualifies if at least one
// of its logs was performed within [from, to]; the duration sum still covers
// every log of each qualifying workout, including logs outside the range.
// "Any activity in range counts the whole session." A single bound on its
// own applies no restriction.
func (s *reportService) Summary(ctx context.Context, ownerID primitive.ObjectID, from, to *time.Time) (*WorkoutSummary, error) {
	var rangeFrom, rangeTo *time.Time
	if from != nil && to != nil {
		rangeFrom, rangeTo = from, to
	}

	workouts, err := s.workoutRepo.ListCompletedWithLogs(ctx, ownerID, rangeFrom, rangeTo)
	if err != nil {
		return nil, err
	}

	summary := &WorkoutSummary{
		TotalCompleted: len(workouts),
		From:           from,
		To:             to,
	}
	for _, w := range workouts {
		for _, log := range w.Logs {
			summary.TotalDuration += log.TotalDuration
		}
	}
	return summary, nil
}
