package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutLog is the immutable record written when a workout is completed.
// The duration unit is a caller convention (minutes in practice); the system
// only sums it, never interprets it.
type WorkoutLog struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	WorkoutID     primitive.ObjectID `bson:"workoutId" json:"workoutId"`
	PerformedAt   time.Time          `bson:"performedAt" json:"performedAt"`
	TotalDuration float64            `bson:"totalDuration" json:"totalDuration"`
	Notes         string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
