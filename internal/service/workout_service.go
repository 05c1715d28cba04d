package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fittrack/workout-api/internal/domain"
	"fittrack/workout-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrWorkoutNotFound         = errors.New("workout not found")
	ErrWorkoutAlreadyCompleted = errors.New("workout is already completed")
)

// ValidationError reports a malformed or missing required field by name.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid or missing field: %s", e.Field)
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field string) error {
	return &ValidationError{Field: field}
}

// ExerciseAssignmentInput is one planned exercise entry supplied on workout
// creation.
type ExerciseAssignmentInput struct {
	ExerciseID primitive.ObjectID
	Sets       int
	Reps       int
	Weight     float64
	OrderIndex int // 0 means unspecified; stored as 1
}

// CreateWorkoutInput carries the fields for a new workout.
type CreateWorkoutInput struct {
	Title       string
	Notes       string
	ScheduledAt time.Time
	Exercises   []ExerciseAssignmentInput
}

// CompleteWorkoutInput carries the performance data recorded on completion.
type CompleteWorkoutInput struct {
	TotalDuration float64
	PerformedAt   *time.Time // nil defaults to completion time
	Notes         string
}

// WorkoutService owns the workout lifecycle: creation with exercise
// assignments, partial updates, the PENDING -> COMPLETED transition, and the
// cascading delete. Every operation takes the authenticated owner and treats
// a wrong-owner workout exactly like a missing one.
type WorkoutService interface {
	List(ctx context.Context, ownerID primitive.ObjectID, status *domain.WorkoutStatus) ([]domain.Workout, error)
	Create(ctx context.Context, ownerID primitive.ObjectID, input CreateWorkoutInput) (*domain.Workout, error)
	Update(ctx context.Context, ownerID, workoutID primitive.ObjectID, update domain.WorkoutUpdate) (*domain.Workout, error)
	Delete(ctx context.Context, ownerID, workoutID primitive.ObjectID) error
	Complete(ctx context.Context, ownerID, workoutID primitive.ObjectID, input CompleteWorkoutInput) (*domain.WorkoutLog, error)
}

// --- Service Implementation ---

type workoutService struct {
	workoutRepo  repository.WorkoutRepository
	exerciseRepo repository.WorkoutExerciseRepository
	logRepo      repository.WorkoutLogRepository
	txManager    repository.TransactionManager
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(
	workoutRepo repository.WorkoutRepository,
	exerciseRepo repository.WorkoutExerciseRepository,
	logRepo repository.WorkoutLogRepository,
	txManager repository.TransactionManager,
) WorkoutService {
	return &workoutService{
		workoutRepo:  workoutRepo,
		exerciseRepo: exerciseRepo,
		logRepo:      logRepo,
		txManager:    txManager,
	}
}

// List returns the owner's workouts ordered by scheduled time ascending,
// optionally filtered by exact status, each hydrated with its exercise rows.
func (s *workoutService) List(ctx context.Context, ownerID primitive.ObjectID, status *domain.WorkoutStatus) ([]domain.Workout, error) {
	workouts, err := s.workoutRepo.ListByOwner(ctx, ownerID, status)
	if err != nil {
		return nil, err
	}

	for i := range workouts {
		exercises, err := s.exerciseRepo.GetByWorkoutID(ctx, workouts[i].ID)
		if err != nil {
			return nil, err
		}
		workouts[i].Exercises = exercises
	}
	return workouts, nil
}

// Create builds a new PENDING workout plus one exercise assignment per input
// entry, then re-reads the hydrated result.
func (s *workoutService) Create(ctx context.Context, ownerID primitive.ObjectID, input CreateWorkoutInput) (*domain.Workout, error) {
	if input.Title == "" {
		return nil, NewValidationError("title")
	}
	if input.ScheduledAt.IsZero() {
		return nil, NewValidationError("scheduled_at")
	}

	workout := &domain.Workout{
		OwnerID:     ownerID,
		Title:       input.Title,
		Notes:       input.Notes,
		ScheduledAt: input.ScheduledAt.UTC(),
		Status:      domain.StatusPending,
	}

	// Workout and its assignment rows land together or not at all.
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		workoutID, err := s.workoutRepo.Create(txCtx, workout)
		if err != nil {
			return err
		}
		for _, ex := range input.Exercises {
			orderIndex := ex.OrderIndex
			if orderIndex == 0 {
				orderIndex = 1
			}
			assignment := &domain.WorkoutExercise{
				WorkoutID:  workoutID,
				ExerciseID: ex.ExerciseID,
				Sets:       ex.Sets,
				Reps:       ex.Reps,
				Weight:     ex.Weight,
				OrderIndex: orderIndex,
			}
			if _, err := s.exerciseRepo.Create(txCtx, assignment); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.getHydrated(ctx, workout.ID, ownerID)
}

// Update applies a structured partial update. An empty update returns the
// current record without issuing a write. Status is not reachable from here;
// the only way out of PENDING is Complete.
func (s *workoutService) Update(ctx context.Context, ownerID, workoutID primitive.ObjectID, update domain.WorkoutUpdate) (*domain.Workout, error) {
	existing, err := s.workoutRepo.GetByIDAndOwner(ctx, workoutID, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}

	if update.IsEmpty() {
		existing.Exercises, err = s.exerciseRepo.GetByWorkoutID(ctx, existing.ID)
		if err != nil {
			return nil, err
		}
		return existing, nil
	}

	if update.Title != nil && *update.Title == "" {
		return nil, NewValidationError("title")
	}
	if update.ScheduledAt != nil && update.ScheduledAt.IsZero() {
		return nil, NewValidationError("scheduled_at")
	}

	if err := s.workoutRepo.Update(ctx, workoutID, ownerID, update); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}

	return s.getHydrated(ctx, workoutID, ownerID)
}

// Delete removes the workout and its children. The cascade is ordered
// children first and runs inside one transaction so a failure midway leaves
// nothing orphaned.
func (s *workoutService) Delete(ctx context.Context, ownerID, workoutID primitive.ObjectID) error {
	_, err := s.workoutRepo.GetByIDAndOwner(ctx, workoutID, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWorkoutNotFound
		}
		return err
	}

	return s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.exerciseRepo.DeleteByWorkoutID(txCtx, workoutID); err != nil {
			return err
		}
		if err := s.logRepo.DeleteByWorkoutID(txCtx, workoutID); err != nil {
			return err
		}
		return s.workoutRepo.Delete(txCtx, workoutID, ownerID)
	})
}

// Complete transitions a PENDING workout to COMPLETED and records exactly one
// immutable log, atomically. Completing an already-COMPLETED workout is
// rejected; re-completion never stacks duplicate logs.
func (s *workoutService) Complete(ctx context.Context, ownerID, workoutID primitive.ObjectID, input CompleteWorkoutInput) (*domain.WorkoutLog, error) {
	if input.TotalDuration <= 0 {
		return nil, NewValidationError("total_duration")
	}

	workout, err := s.workoutRepo.GetByIDAndOwner(ctx, workoutID, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	if workout.Status == domain.StatusCompleted {
		return nil, ErrWorkoutAlreadyCompleted
	}

	performedAt := time.Now().UTC()
	if input.PerformedAt != nil {
		performedAt = input.PerformedAt.UTC()
	}

	log := &domain.WorkoutLog{
		WorkoutID:     workoutID,
		PerformedAt:   performedAt,
		TotalDuration: input.TotalDuration,
		Notes:         input.Notes,
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.workoutRepo.SetStatus(txCtx, workoutID, ownerID, domain.StatusCompleted); err != nil {
			return err
		}
		_, err := s.logRepo.Create(txCtx, log)
		return err
	})
	if err != nil {
		return nil, err
	}

	return log, nil
}

// getHydrated re-reads a workout with its exercise rows attached.
func (s *workoutService) getHydrated(ctx context.Context, workoutID, ownerID primitive.ObjectID) (*domain.Workout, error) {
	workout, err := s.workoutRepo.GetByIDAndOwner(ctx, workoutID, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	workout.Exercises, err = s.exerciseRepo.GetByWorkoutID(ctx, workout.ID)
	if err != nil {
		return nil, err
	}
	return workout, nil
}
