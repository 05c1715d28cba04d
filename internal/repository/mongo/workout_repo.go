package mongo

import (
	"context"
	"errors"
	"time"

	"fittrack/workout-api/internal/domain"
	"fittrack/workout-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const workoutCollectionName = "workouts"

// mongoWorkoutRepository implements repository.WorkoutRepository
type mongoWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutRepository creates a new Workout repository.
func NewMongoWorkoutRepository(db *mongo.Database) repository.WorkoutRepository {
	return &mongoWorkoutRepository{
		collection: db.Collection(workoutCollectionName),
	}
}

// Create inserts a new workout.
func (r *mongoWorkoutRepository) Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	if workout.OwnerID == primitive.NilObjectID || workout.Title == "" {
		return primitive.NilObjectID, errors.New("workout requires ownerId and title")
	}
	workout.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	workout.CreatedAt = now
	workout.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, workout)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted workout ID")
	}
	return insertedID, nil
}

// GetByIDAndOwner retrieves a single workout, scoped to its owner. A workout
// that exists but belongs to another user decodes to ErrNotFound like any
// missing document.
func (r *mongoWorkoutRepository) GetByIDAndOwner(ctx context.Context, id, ownerID primitive.ObjectID) (*domain.Workout, error) {
	var workout domain.Workout
	filter := bson.M{"_id": id, "ownerId": ownerID}
	err := r.collection.FindOne(ctx, filter).Decode(&workout)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &workout, nil
}

// ListByOwner retrieves all workouts owned by ownerID, ordered by scheduled
// time ascending. A nil status means no status restriction.
func (r *mongoWorkoutRepository) ListByOwner(ctx context.Context, ownerID primitive.ObjectID, status *domain.WorkoutStatus) ([]domain.Workout, error) {
	filter := bson.M{"ownerId": ownerID}
	if status != nil {
		filter["status"] = *status
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "scheduledAt", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	workouts := []domain.Workout{}
	if err = cursor.All(ctx, &workouts); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return workouts, nil
}

// Update applies a partial update. Only fields present on the update are
// written; status is not writable through this path.
func (r *mongoWorkoutRepository) Update(ctx context.Context, id, ownerID primitive.ObjectID, update domain.WorkoutUpdate) error {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Notes != nil {
		set["notes"] = *update.Notes
	}
	if update.ScheduledAt != nil {
		set["scheduledAt"] = *update.ScheduledAt
	}

	filter := bson.M{"_id": id, "ownerId": ownerID}
	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// SetStatus writes the workout's status. The complete operation is the only
// caller; the generic update path never touches status.
func (r *mongoWorkoutRepository) SetStatus(ctx context.Context, id, ownerID primitive.ObjectID, status domain.WorkoutStatus) error {
	filter := bson.M{"_id": id, "ownerId": ownerID}
	updateDoc := bson.M{
		"$set": bson.M{
			"status":    status,
			"updatedAt": time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, updateDoc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes the workout document itself. Child rows are removed by
// their own repositories before this runs, inside the same transaction.
func (r *mongoWorkoutRepository) Delete(ctx context.Context, id, ownerID primitive.ObjectID) error {
	filter := bson.M{"_id": id, "ownerId": ownerID}

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ListCompletedWithLogs retrieves the owner's COMPLETED workouts with their
// logs joined in. When both bounds are set, the second $match keeps only
// workouts with at least one log performed inside [from, to]; the joined
// logs array stays complete either way, which is what the reporting sum
// wants.
func (r *mongoWorkoutRepository) ListCompletedWithLogs(ctx context.Context, ownerID primitive.ObjectID, from, to *time.Time) ([]repository.WorkoutWithLogs, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"ownerId": ownerID, "status": domain.StatusCompleted}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         workoutLogCollectionName,
			"localField":   "_id",
			"foreignField": "workoutId",
			"as":           "logs",
		}}},
	}
	if from != nil && to != nil {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.M{
			"logs": bson.M{"$elemMatch": bson.M{
				"performedAt": bson.M{"$gte": *from, "$lte": *to},
			}},
		}}})
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	results := []repository.WorkoutWithLogs{}
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// EnsureWorkoutIndexes creates necessary indexes. Call during startup.
func EnsureWorkoutIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Every lifecycle operation filters by owner; list also sorts
			// by scheduled time.
			Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "scheduledAt", Value: 1}},
			Options: options.Index(),
		},
		{
			// Reporting filters by owner + status.
			Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
