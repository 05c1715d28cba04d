package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutExercise assigns a catalog Exercise to a Workout with the planned
// sets/reps/weight. Rows are created together with their workout, never
// mutated individually, and removed when the workout is deleted.
type WorkoutExercise struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	WorkoutID  primitive.ObjectID `bson:"workoutId" json:"workoutId"`
	ExerciseID primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	Sets       int                `bson:"sets" json:"sets"`
	Reps       int                `bson:"reps" json:"reps"`
	Weight     float64            `bson:"weight" json:"weight"`
	// OrderIndex is advisory sequencing within the workout. It defaults to 1
	// and is not unique.
	OrderIndex int `bson:"orderIndex" json:"orderIndex"`
}
