package repository

import (
	"context"
	"time"

	"fittrack/workout-api/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound       = RepositoryError("not found")
	ErrDuplicateEmail = RepositoryError("email already exists")
	ErrUpdateFailed   = RepositoryError("update failed")
	ErrDeleteFailed   = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// WorkoutWithLogs pairs a workout with all of its logs, as returned by the
// reporting query.
type WorkoutWithLogs struct {
	domain.Workout `bson:",inline"`
	Logs           []domain.WorkoutLog `bson:"logs"`
}

// WorkoutRepository defines the interface for interacting with workout data.
// Every read or write that acts on a single workout filters by (id, ownerID)
// so a workout owned by someone else is indistinguishable from one that does
// not exist.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error)
	GetByIDAndOwner(ctx context.Context, id, ownerID primitive.ObjectID) (*domain.Workout, error)
	// ListByOwner returns the owner's workouts ordered by scheduledAt
	// ascending, optionally restricted to an exact status match.
	ListByOwner(ctx context.Context, ownerID primitive.ObjectID, status *domain.WorkoutStatus) ([]domain.Workout, error)
	Update(ctx context.Context, id, ownerID primitive.ObjectID, update domain.WorkoutUpdate) error
	SetStatus(ctx context.Context, id, ownerID primitive.ObjectID, status domain.WorkoutStatus) error
	Delete(ctx context.Context, id, ownerID primitive.ObjectID) error
	// ListCompletedWithLogs returns the owner's COMPLETED workouts with
	// their logs attached. When both from and to are set, only workouts
	// having at least one log performed within [from, to] qualify; the
	// attached logs are still the full set for each qualifying workout.
	ListCompletedWithLogs(ctx context.Context, ownerID primitive.ObjectID, from, to *time.Time) ([]WorkoutWithLogs, error)
}

// WorkoutExerciseRepository manages exercise assignments belonging to a
// workout.
type WorkoutExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.WorkoutExercise) (primitive.ObjectID, error)
	GetByWorkoutID(ctx context.Context, workoutID primitive.ObjectID) ([]domain.WorkoutExercise, error)
	DeleteByWorkoutID(ctx context.Context, workoutID primitive.ObjectID) error
}

// WorkoutLogRepository manages completion logs belonging to a workout.
type WorkoutLogRepository interface {
	Create(ctx context.Context, log *domain.WorkoutLog) (primitive.ObjectID, error)
	GetByWorkoutID(ctx context.Context, workoutID primitive.ObjectID) ([]domain.WorkoutLog, error)
	DeleteByWorkoutID(ctx context.Context, workoutID primitive.ObjectID) error
}

// ExerciseRepository defines the interface for the exercise catalog.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	GetAll(ctx context.Context) ([]domain.Exercise, error)
}

// TransactionManager runs fn inside a single storage transaction. The
// workout delete cascade and the complete operation's status+log pair must
// not leave partial state behind, so both run under it.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
