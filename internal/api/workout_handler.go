package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"fittrack/workout-api/internal/domain"
	"fittrack/workout-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutHandler holds the workout lifecycle service dependency.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// --- Request Structs ---

type ExerciseAssignmentRequest struct {
	ExerciseID string  `json:"exerciseId" binding:"required"`
	Sets       int     `json:"sets"`
	Reps       int     `json:"reps"`
	Weight     float64 `json:"weight"`
	OrderIndex int     `json:"orderIndex"`
}

type CreateWorkoutRequest struct {
	Title       string                      `json:"title"`
	Notes       string                      `json:"notes"`
	ScheduledAt time.Time                   `json:"scheduledAt"`
	Exercises   []ExerciseAssignmentRequest `json:"exercises"`
}

// UpdateWorkoutRequest is a sparse update: nil means "leave untouched".
// Status is listed only so a direct status write can be rejected with a
// clear error instead of being silently dropped.
type UpdateWorkoutRequest struct {
	Title       *string    `json:"title"`
	Notes       *string    `json:"notes"`
	ScheduledAt *time.Time `json:"scheduledAt"`
	Status      *string    `json:"status"`
}

type CompleteWorkoutRequest struct {
	TotalDuration *float64   `json:"totalDuration"`
	PerformedAt   *time.Time `json:"performedAt"`
	Notes         string     `json:"notes"`
}

// --- Handler Methods ---

// ListWorkouts returns the caller's workouts, optionally filtered by the
// `status` query parameter.
func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	ownerID, err := getOwnerIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to resolve user from token")
		return
	}

	var statusFilter *domain.WorkoutStatus
	if statusParam := c.Query("status"); statusParam != "" {
		status := domain.WorkoutStatus(statusParam)
		if !status.IsValid() {
			abortWithError(c, http.StatusBadRequest, "Invalid status filter")
			return
		}
		statusFilter = &status
	}

	workouts, err := h.workoutService.List(c.Request.Context(), ownerID, statusFilter)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list workouts")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": workouts})
}

// CreateWorkout creates a PENDING workout with its exercise assignments.
func (h *WorkoutHandler) CreateWorkout(c *gin.Context) {
	ownerID, err := getOwnerIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to resolve user from token")
		return
	}

	var req CreateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	input := service.CreateWorkoutInput{
		Title:       req.Title,
		Notes:       req.Notes,
		ScheduledAt: req.ScheduledAt,
	}
	for _, ex := range req.Exercises {
		exerciseID, err := primitive.ObjectIDFromHex(ex.ExerciseID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid exercise id in assignments")
			return
		}
		input.Exercises = append(input.Exercises, service.ExerciseAssignmentInput{
			ExerciseID: exerciseID,
			Sets:       ex.Sets,
			Reps:       ex.Reps,
			Weight:     ex.Weight,
			OrderIndex: ex.OrderIndex,
		})
	}

	workout, err := h.workoutService.Create(c.Request.Context(), ownerID, input)
	if err != nil {
		h.mapWorkoutError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": workout})
}

// UpdateWorkout applies a partial update to a workout the caller owns.
func (h *WorkoutHandler) UpdateWorkout(c *gin.Context) {
	ownerID, err := getOwnerIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to resolve user from token")
		return
	}

	workoutID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workout id")
		return
	}

	var req UpdateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	// Status transitions only happen through the complete endpoint.
	if req.Status != nil {
		abortWithError(c, http.StatusBadRequest, "invalid or missing field: status")
		return
	}

	update := domain.WorkoutUpdate{
		Title:       req.Title,
		Notes:       req.Notes,
		ScheduledAt: req.ScheduledAt,
	}

	workout, err := h.workoutService.Update(c.Request.Context(), ownerID, workoutID, update)
	if err != nil {
		h.mapWorkoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": workout})
}

// DeleteWorkout removes a workout with all of its assignments and logs.
func (h *WorkoutHandler) DeleteWorkout(c *gin.Context) {
	ownerID, err := getOwnerIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to resolve user from token")
		return
	}

	workoutID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workout id")
		return
	}

	if err := h.workoutService.Delete(c.Request.Context(), ownerID, workoutID); err != nil {
		h.mapWorkoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// CompleteWorkout marks a workout COMPLETED and records its performance log.
func (h *WorkoutHandler) CompleteWorkout(c *gin.Context) {
	ownerID, err := getOwnerIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to resolve user from token")
		return
	}

	workoutID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workout id")
		return
	}

	var req CompleteWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	if req.TotalDuration == nil {
		abortWithError(c, http.StatusBadRequest, "invalid or missing field: total_duration")
		return
	}

	input := service.CompleteWorkoutInput{
		TotalDuration: *req.TotalDuration,
		PerformedAt:   req.PerformedAt,
		Notes:         req.Notes,
	}

	log, err := h.workoutService.Complete(c.Request.Context(), ownerID, workoutID, input)
	if err != nil {
		h.mapWorkoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": log})
}

// mapWorkoutError translates lifecycle service errors to HTTP status codes.
// NotFound covers both missing and wrong-owner workouts; the response never
// distinguishes them.
func (h *WorkoutHandler) mapWorkoutError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	switch {
	case errors.Is(err, service.ErrWorkoutNotFound):
		abortWithError(c, http.StatusNotFound, "Workout not found")
	case errors.As(err, &validationErr):
		abortWithError(c, http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, service.ErrWorkoutAlreadyCompleted):
		abortWithError(c, http.StatusConflict, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
