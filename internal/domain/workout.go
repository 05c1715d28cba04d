package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutStatus tracks the lifecycle of a workout session.
type WorkoutStatus string

const (
	StatusPending   WorkoutStatus = "PENDING"
	StatusCompleted WorkoutStatus = "COMPLETED"
)

// IsValid reports whether s is one of the known statuses.
func (s WorkoutStatus) IsValid() bool {
	return s == StatusPending || s == StatusCompleted
}

// Workout is a planned or completed training session owned by a single user.
// Status moves PENDING -> COMPLETED exactly once, only through the complete
// operation; the generic update path must never touch it.
type Workout struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID     primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	Title       string             `bson:"title" json:"title"`
	Notes       string             `bson:"notes,omitempty" json:"notes,omitempty"`
	ScheduledAt time.Time          `bson:"scheduledAt" json:"scheduledAt"`
	Status      WorkoutStatus      `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`

	// Exercises are stored in their own collection and attached when the
	// workout is read back hydrated. Never persisted on this document.
	Exercises []WorkoutExercise `bson:"-" json:"exercises"`
}

// WorkoutUpdate is a structured partial update for a workout. Nil fields are
// left untouched; this is how "absent" stays distinguishable from a zero
// value. Status is deliberately not here.
type WorkoutUpdate struct {
	Title       *string
	Notes       *string
	ScheduledAt *time.Time
}

// IsEmpty reports whether the update would change nothing.
func (u WorkoutUpdate) IsEmpty() bool {
	return u.Title == nil && u.Notes == nil && u.ScheduledAt == nil
}
