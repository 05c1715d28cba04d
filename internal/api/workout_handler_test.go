package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fittrack/workout-api/internal/domain"
	"fittrack/workout-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testJWTSecret = "test-secret"

// --- stubs ---

type stubWorkoutService struct {
	listFn     func(ctx context.Context, ownerID primitive.ObjectID, status *domain.WorkoutStatus) ([]domain.Workout, error)
	createFn   func(ctx context.Context, ownerID primitive.ObjectID, input service.CreateWorkoutInput) (*domain.Workout, error)
	updateFn   func(ctx context.Context, ownerID, workoutID primitive.ObjectID, update domain.WorkoutUpdate) (*domain.Workout, error)
	deleteFn   func(ctx context.Context, ownerID, workoutID primitive.ObjectID) error
	completeFn func(ctx context.Context, ownerID, workoutID primitive.ObjectID, input service.CompleteWorkoutInput) (*domain.WorkoutLog, error)
}

func (s *stubWorkoutService) List(ctx context.Context, ownerID primitive.ObjectID, status *domain.WorkoutStatus) ([]domain.Workout, error) {
	if s.listFn != nil {
		return s.listFn(ctx, ownerID, status)
	}
	return []domain.Workout{}, nil
}

func (s *stubWorkoutService) Create(ctx context.Context, ownerID primitive.ObjectID, input service.CreateWorkoutInput) (*domain.Workout, error) {
	if s.createFn != nil {
		return s.createFn(ctx, ownerID, input)
	}
	return &domain.Workout{}, nil
}

func (s *stubWorkoutService) Update(ctx context.Context, ownerID, workoutID primitive.ObjectID, update domain.WorkoutUpdate) (*domain.Workout, error) {
	if s.updateFn != nil {
		return s.updateFn(ctx, ownerID, workoutID, update)
	}
	return &domain.Workout{}, nil
}

func (s *stubWorkoutService) Delete(ctx context.Context, ownerID, workoutID primitive.ObjectID) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, ownerID, workoutID)
	}
	return nil
}

func (s *stubWorkoutService) Complete(ctx context.Context, ownerID, workoutID primitive.ObjectID, input service.CompleteWorkoutInput) (*domain.WorkoutLog, error) {
	if s.completeFn != nil {
		return s.completeFn(ctx, ownerID, workoutID, input)
	}
	return &domain.WorkoutLog{}, nil
}

type stubAuthService struct{}

func (s *stubAuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	return &domain.User{}, nil
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return "", &domain.User{}, nil
}

func (s *stubAuthService) GetJWTSecret() string { return testJWTSecret }

type stubReportService struct {
	summaryFn func(ctx context.Context, ownerID primitive.ObjectID, from, to *time.Time) (*service.WorkoutSummary, error)
}

func (s *stubReportService) Summary(ctx context.Context, ownerID primitive.ObjectID, from, to *time.Time) (*service.WorkoutSummary, error) {
	if s.summaryFn != nil {
		return s.summaryFn(ctx, ownerID, from, to)
	}
	return &service.WorkoutSummary{}, nil
}

type stubExerciseService struct{}

func (s *stubExerciseService) CreateExercise(ctx context.Context, name, description, category string) (*domain.Exercise, error) {
	return &domain.Exercise{Name: name}, nil
}

func (s *stubExerciseService) GetExerciseByID(ctx context.Context, exerciseID primitive.ObjectID) (*domain.Exercise, error) {
	return &domain.Exercise{}, nil
}

func (s *stubExerciseService) ListExercises(ctx context.Context) ([]domain.Exercise, error) {
	return []domain.Exercise{}, nil
}

// --- helpers ---

func newTestRouter(workoutSvc service.WorkoutService, reportSvc service.ReportService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupRoutes(router, testJWTSecret, &stubAuthService{}, workoutSvc, reportSvc, &stubExerciseService{})
	return router
}

func bearerToken(t *testing.T, userID primitive.ObjectID) string {
	t.Helper()
	claims := &jwtClaims{
		UserID: userID.Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return "Bearer " + token
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body any, userID primitive.ObjectID) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerToken(t, userID))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// --- tests ---

func TestWorkoutHandler_ListWorkouts(t *testing.T) {
	ownerID := primitive.NewObjectID()

	t.Run("returns workouts for the caller", func(t *testing.T) {
		svc := &stubWorkoutService{
			listFn: func(ctx context.Context, gotOwner primitive.ObjectID, status *domain.WorkoutStatus) ([]domain.Workout, error) {
				assert.Equal(t, ownerID, gotOwner)
				assert.Nil(t, status)
				return []domain.Workout{{Title: "Push day"}}, nil
			},
		}
		router := newTestRouter(svc, &stubReportService{})

		rec := doRequest(t, router, http.MethodGet, "/api/v1/workouts", nil, ownerID)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Push day")
	})

	t.Run("passes status filter through", func(t *testing.T) {
		svc := &stubWorkoutService{
			listFn: func(ctx context.Context, gotOwner primitive.ObjectID, status *domain.WorkoutStatus) ([]domain.Workout, error) {
				require.NotNil(t, status)
				assert.Equal(t, domain.StatusCompleted, *status)
				return []domain.Workout{}, nil
			},
		}
		router := newTestRouter(svc, &stubReportService{})

		rec := doRequest(t, router, http.MethodGet, "/api/v1/workouts?status=COMPLETED", nil, ownerID)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejects unknown status filter", func(t *testing.T) {
		router := newTestRouter(&stubWorkoutService{}, &stubReportService{})
		rec := doRequest(t, router, http.MethodGet, "/api/v1/workouts?status=RUNNING", nil, ownerID)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestWorkoutHandler_CreateWorkout(t *testing.T) {
	ownerID := primitive.NewObjectID()

	t.Run("creates and returns 201", func(t *testing.T) {
		exerciseID := primitive.NewObjectID()
		svc := &stubWorkoutService{
			createFn: func(ctx context.Context, gotOwner primitive.ObjectID, input service.CreateWorkoutInput) (*domain.Workout, error) {
				assert.Equal(t, ownerID, gotOwner)
				assert.Equal(t, "Push day", input.Title)
				require.Len(t, input.Exercises, 1)
				assert.Equal(t, exerciseID, input.Exercises[0].ExerciseID)
				return &domain.Workout{Title: input.Title, Status: domain.StatusPending}, nil
			},
		}
		router := newTestRouter(svc, &stubReportService{})

		body := gin.H{
			"title":       "Push day",
			"scheduledAt": "2025-11-22T18:00:00Z",
			"exercises": []gin.H{
				{"exerciseId": exerciseID.Hex(), "sets": 3, "reps": 10, "weight": 40},
			},
		}
		rec := doRequest(t, router, http.MethodPost, "/api/v1/workouts", body, ownerID)
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("maps validation error to 400 with field name", func(t *testing.T) {
		svc := &stubWorkoutService{
			createFn: func(ctx context.Context, gotOwner primitive.ObjectID, input service.CreateWorkoutInput) (*domain.Workout, error) {
				return nil, service.NewValidationError("title")
			},
		}
		router := newTestRouter(svc, &stubReportService{})

		rec := doRequest(t, router, http.MethodPost, "/api/v1/workouts", gin.H{}, ownerID)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "title")
	})

	t.Run("rejects malformed exercise id before hitting the service", func(t *testing.T) {
		router := newTestRouter(&stubWorkoutService{}, &stubReportService{})
		body := gin.H{
			"title":       "Push day",
			"scheduledAt": "2025-11-22T18:00:00Z",
			"exercises":   []gin.H{{"exerciseId": "not-an-id"}},
		}
		rec := doRequest(t, router, http.MethodPost, "/api/v1/workouts", body, ownerID)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestWorkoutHandler_UpdateWorkout(t *testing.T) {
	ownerID := primitive.NewObjectID()
	workoutID := primitive.NewObjectID()

	t.Run("applies sparse update", func(t *testing.T) {
		svc := &stubWorkoutService{
			updateFn: func(ctx context.Context, gotOwner, gotWorkout primitive.ObjectID, update domain.WorkoutUpdate) (*domain.Workout, error) {
				require.NotNil(t, update.Title)
				assert.Equal(t, "Pull day", *update.Title)
				assert.Nil(t, update.Notes)
				assert.Nil(t, update.ScheduledAt)
				return &domain.Workout{Title: *update.Title}, nil
			},
		}
		router := newTestRouter(svc, &stubReportService{})

		rec := doRequest(t, router, http.MethodPatch, "/api/v1/workouts/"+workoutID.Hex(), gin.H{"title": "Pull day"}, ownerID)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejects direct status writes", func(t *testing.T) {
		router := newTestRouter(&stubWorkoutService{}, &stubReportService{})
		rec := doRequest(t, router, http.MethodPatch, "/api/v1/workouts/"+workoutID.Hex(), gin.H{"status": "COMPLETED"}, ownerID)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "status")
	})

	t.Run("maps not found to 404", func(t *testing.T) {
		svc := &stubWorkoutService{
			updateFn: func(ctx context.Context, gotOwner, gotWorkout primitive.ObjectID, update domain.WorkoutUpdate) (*domain.Workout, error) {
				return nil, service.ErrWorkoutNotFound
			},
		}
		router := newTestRouter(svc, &stubReportService{})

		rec := doRequest(t, router, http.MethodPatch, "/api/v1/workouts/"+workoutID.Hex(), gin.H{"title": "x"}, ownerID)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("rejects malformed workout id", func(t *testing.T) {
		router := newTestRouter(&stubWorkoutService{}, &stubReportService{})
		rec := doRequest(t, router, http.MethodPatch, "/api/v1/workouts/nope", gin.H{"title": "x"}, ownerID)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestWorkoutHandler_DeleteWorkout(t *testing.T) {
	ownerID := primitive.NewObjectID()
	workoutID := primitive.NewObjectID()

	t.Run("deletes and confirms", func(t *testing.T) {
		called := false
		svc := &stubWorkoutService{
			deleteFn: func(ctx context.Context, gotOwner, gotWorkout primitive.ObjectID) error {
				called = true
				assert.Equal(t, workoutID, gotWorkout)
				return nil
			},
		}
		router := newTestRouter(svc, &stubReportService{})

		rec := doRequest(t, router, http.MethodDelete, "/api/v1/workouts/"+workoutID.Hex(), nil, ownerID)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, called)
	})

	t.Run("maps not found to 404", func(t *testing.T) {
		svc := &stubWorkoutService{
			deleteFn: func(ctx context.Context, gotOwner, gotWorkout primitive.ObjectID) error {
				return service.ErrWorkoutNotFound
			},
		}
		router := newTestRouter(svc, &stubReportService{})

		rec := doRequest(t, router, http.MethodDelete, "/api/v1/workouts/"+workoutID.Hex(), nil, ownerID)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestWorkoutHandler_CompleteWorkout(t *testing.T) {
	ownerID := primitive.NewObjectID()
	workoutID := primitive.NewObjectID()
	path := "/api/v1/workouts/" + workoutID.Hex() + "/complete"

	t.Run("completes and returns the log", func(t *testing.T) {
		svc := &stubWorkoutService{
			completeFn: func(ctx context.Context, gotOwner, gotWorkout primitive.ObjectID, input service.CompleteWorkoutInput) (*domain.WorkoutLog, error) {
				assert.Equal(t, 45.0, input.TotalDuration)
				return &domain.WorkoutLog{WorkoutID: gotWorkout, TotalDuration: input.TotalDuration}, nil
			},
		}
		router := newTestRouter(svc, &stubReportService{})

		rec := doRequest(t, router, http.MethodPost, path, gin.H{"totalDuration": 45}, ownerID)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "45")
	})

	t.Run("missing duration is a 400 naming the field", func(t *testing.T) {
		router := newTestRouter(&stubWorkoutService{}, &stubReportService{})
		rec := doRequest(t, router, http.MethodPost, path, gin.H{"notes": "no duration"}, ownerID)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "total_duration")
	})

	t.Run("re-completion maps to 409", func(t *testing.T) {
		svc := &stubWorkoutService{
			completeFn: func(ctx context.Context, gotOwner, gotWorkout primitive.ObjectID, input service.CompleteWorkoutInput) (*domain.WorkoutLog, error) {
				return nil, service.ErrWorkoutAlreadyCompleted
			},
		}
		router := newTestRouter(svc, &stubReportService{})

		rec := doRequest(t, router, http.MethodPost, path, gin.H{"totalDuration": 45}, ownerID)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestReportHandler_GetWorkoutSummary(t *testing.T) {
	ownerID := primitive.NewObjectID()

	t.Run("passes parsed bounds through", func(t *testing.T) {
		svc := &stubReportService{
			summaryFn: func(ctx context.Context, gotOwner primitive.ObjectID, from, to *time.Time) (*service.WorkoutSummary, error) {
				require.NotNil(t, from)
				require.NotNil(t, to)
				assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), *from)
				return &service.WorkoutSummary{TotalCompleted: 2, TotalDuration: 75}, nil
			},
		}
		router := newTestRouter(&stubWorkoutService{}, svc)

		rec := doRequest(t, router, http.MethodGet, "/api/v1/reports/summary?from=2025-01-01&to=2026-02-01", nil, ownerID)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "75")
	})

	t.Run("rejects malformed dates", func(t *testing.T) {
		router := newTestRouter(&stubWorkoutService{}, &stubReportService{})
		rec := doRequest(t, router, http.MethodGet, "/api/v1/reports/summary?from=yesterday", nil, ownerID)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("omitted bounds stay nil", func(t *testing.T) {
		svc := &stubReportService{
			summaryFn: func(ctx context.Context, gotOwner primitive.ObjectID, from, to *time.Time) (*service.WorkoutSummary, error) {
				assert.Nil(t, from)
				assert.Nil(t, to)
				return &service.WorkoutSummary{}, nil
			},
		}
		router := newTestRouter(&stubWorkoutService{}, svc)

		rec := doRequest(t, router, http.MethodGet, "/api/v1/reports/summary", nil, ownerID)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
