package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"liftforge/hypertrophy-app/internal/domain"
	"liftforge/hypertrophy-app/internal/service"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// --- DTOs for API (Data Transfer Objects) ---

// ExerciseRequest defines the expected JSON for creating or updating an
// exercise. Contribution values must be 0.25, 0.5, 0.75 or 1.0.
type ExerciseRequest struct {
	Name                string             `json:"name" binding:"required"`
	Equipment           string             `json:"equipment" binding:"required"`
	MuscleContributions map[string]float64 `json:"muscle_contributions" binding:"required"`
	Description         string             `json:"description"`
}

// ImageUploadRequest asks for a presigned upload URL.
type ImageUploadRequest struct {
	ContentType string `json:"content_type" binding:"required"`
}

// ImageUploadResponse carries the presigned URL and the object key to
// confirm with once the upload finishes.
type ImageUploadResponse struct {
	UploadURL string `json:"upload_url"`
	ObjectKey string `json:"object_key"`
}

// ImageConfirmRequest records a completed upload.
type ImageConfirmRequest struct {
	ObjectKey string `json:"object_key" binding:"required"`
}

// ExerciseResponse is the DTO for returning exercise details.
type ExerciseResponse struct {
	ID                  string             `json:"id"`
	Name                string             `json:"name"`
	Equipment           string             `json:"equipment"`
	MuscleContributions map[string]float64 `json:"muscle_contributions"`
	PrimaryMuscles      []string           `json:"primary_muscles"`
	SecondaryMuscles    []string           `json:"secondary_muscles"`
	Description         string             `json:"description,omitempty"`
	ImageURL            string             `json:"image_url,omitempty"`
	IsGlobal            bool               `json:"is_global"`
	OrganizationID      *string            `json:"organization_id,omitempty"`
	IsCompound          bool               `json:"is_compound"`
	CreatedAt           time.Time          `json:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at"`
}

// MapExerciseToResponse converts a domain.Exercise to ExerciseResponse DTO.
func MapExerciseToResponse(ex *domain.Exercise) ExerciseResponse {
	if ex == nil {
		return ExerciseResponse{}
	}
	contributions := make(map[string]float64)
	for muscle, c := range ex.MuscleContributions() {
		contributions[string(muscle)] = c.Value()
	}
	resp := ExerciseResponse{
		ID:                  ex.ID().String(),
		Name:                ex.Name(),
		Equipment:           string(ex.Equipment()),
		MuscleContributions: contributions,
		PrimaryMuscles:      muscleNames(ex.PrimaryMuscles()),
		SecondaryMuscles:    muscleNames(ex.SecondaryMuscles()),
		Description:         ex.Description(),
		ImageURL:            ex.ImageURL(),
		IsGlobal:            ex.IsGlobal(),
		IsCompound:          ex.IsCompound(),
		CreatedAt:           ex.CreatedAt(),
		UpdatedAt:           ex.UpdatedAt(),
	}
	if orgID := ex.OrganizationID(); orgID != nil {
		s := orgID.String()
		resp.OrganizationID = &s
	}
	return resp
}

func muscleNames(muscles []domain.MuscleGroup) []string {
	out := make([]string, len(muscles))
	for i, m := range muscles {
		out[i] = string(m)
	}
	return out
}

// MapExercisesToResponse converts a slice of domain.Exercise to response DTOs.
func MapExercisesToResponse(exercises []*domain.Exercise) []ExerciseResponse {
	responses := make([]ExerciseResponse, len(exercises))
	for i, ex := range exercises {
		responses[i] = MapExerciseToResponse(ex)
	}
	return responses
}

func parseExerciseInput(req ExerciseRequest) (service.ExerciseInput, error) {
	contributions := make(map[domain.MuscleGroup]domain.VolumeContribution, len(req.MuscleContributions))
	for muscle, value := range req.MuscleContributions {
		c, err := domain.ContributionFromFloat(value)
		if err != nil {
			return service.ExerciseInput{}, err
		}
		contributions[domain.MuscleGroup(muscle)] = c
	}
	equipment, err := domain.ParseEquipment(req.Equipment)
	if err != nil {
		return service.ExerciseInput{}, err
	}
	return service.ExerciseInput{
		Name:                req.Name,
		Equipment:           equipment,
		MuscleContributions: contributions,
		Description:         req.Description,
	}, nil
}

// --- Handler Methods ---

// CreateExercise godoc
// @Summary Create a new exercise
// @Description Creates a global exercise (admins) or an organization exercise (Pro members).
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param exercise body ExerciseRequest true "Exercise details"
// @Success 201 {object} ExerciseResponse "Exercise created successfully"
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 402 {object} gin.H "Pro subscription required"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /exercises [post]
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	actorID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	input, err := parseExerciseInput(req)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	exercise, err := h.exerciseService.CreateExercise(c.Request.Context(), actorID, input)
	if err != nil {
		handleExerciseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, MapExerciseToResponse(exercise))
}

// ListExercises godoc
// @Summary List exercises visible to the authenticated user
// @Description Returns the global library plus the user's organization exercises, optionally filtered by equipment or targeted muscle.
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Param equipment query string false "Equipment filter"
// @Param muscle query string false "Muscle group filter"
// @Success 200 {array} ExerciseResponse "List of exercises"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /exercises [get]
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	actorID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	var opts service.ExerciseListOptions
	if v := c.Query("equipment"); v != "" {
		equipment, err := domain.ParseEquipment(v)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		opts.Equipment = &equipment
	}
	if v := c.Query("muscle"); v != "" {
		muscle, err := domain.ParseMuscleGroup(v)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		opts.Muscle = &muscle
	}

	exercises, err := h.exerciseService.ListExercises(c.Request.Context(), actorID, opts)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve exercises.")
		return
	}
	if exercises == nil {
		c.JSON(http.StatusOK, []ExerciseResponse{})
		return
	}
	c.JSON(http.StatusOK, MapExercisesToResponse(exercises))
}

// GetExercise godoc
// @Summary Get an exercise by ID
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exercise ID"
// @Success 200 {object} ExerciseResponse
// @Failure 404 {object} gin.H "Not found"
// @Router /exercises/{id} [get]
func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	actorID, exerciseID, ok := h.ids(c)
	if !ok {
		return
	}
	exercise, err := h.exerciseService.GetExerciseByID(c.Request.Context(), actorID, exerciseID)
	if err != nil {
		handleExerciseError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

// UpdateExercise godoc
// @Summary Update an exercise
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exercise ID"
// @Param exercise body ExerciseRequest true "Exercise details"
// @Success 200 {object} ExerciseResponse
// @Failure 403 {object} gin.H "Forbidden"
// @Failure 404 {object} gin.H "Not found"
// @Router /exercises/{id} [put]
func (h *ExerciseHandler) UpdateExercise(c *gin.Context) {
	actorID, exerciseID, ok := h.ids(c)
	if !ok {
		return
	}
	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	input, err := parseExerciseInput(req)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	exercise, err := h.exerciseService.UpdateExercise(c.Request.Context(), actorID, exerciseID, input)
	if err != nil {
		handleExerciseError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

// DeleteExercise godoc
// @Summary Delete an exercise
// @Tags Exercises
// @Security BearerAuth
// @Param id path string true "Exercise ID"
// @Success 204 "Deleted"
// @Failure 403 {object} gin.H "Forbidden"
// @Failure 404 {object} gin.H "Not found"
// @Router /exercises/{id} [delete]
func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	actorID, exerciseID, ok := h.ids(c)
	if !ok {
		return
	}
	if err := h.exerciseService.DeleteExercise(c.Request.Context(), actorID, exerciseID); err != nil {
		handleExerciseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RequestImageUpload godoc
// @Summary Request a presigned upload URL for an exercise image
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exercise ID"
// @Param upload body ImageUploadRequest true "Upload details"
// @Success 200 {object} ImageUploadResponse
// @Router /exercises/{id}/image [post]
func (h *ExerciseHandler) RequestImageUpload(c *gin.Context) {
	actorID, exerciseID, ok := h.ids(c)
	if !ok {
		return
	}
	var req ImageUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	uploadURL, objectKey, err := h.exerciseService.GenerateImageUploadURL(c.Request.Context(), actorID, exerciseID, req.ContentType)
	if err != nil {
		handleExerciseError(c, err)
		return
	}
	c.JSON(http.StatusOK, ImageUploadResponse{UploadURL: uploadURL, ObjectKey: objectKey})
}

// ConfirmImageUpload godoc
// @Summary Confirm a completed exercise image upload
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exercise ID"
// @Param confirm body ImageConfirmRequest true "Uploaded object key"
// @Success 200 {object} ExerciseResponse
// @Router /exercises/{id}/image/confirm [post]
func (h *ExerciseHandler) ConfirmImageUpload(c *gin.Context) {
	actorID, exerciseID, ok := h.ids(c)
	if !ok {
		return
	}
	var req ImageConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	exercise, err := h.exerciseService.ConfirmImageUpload(c.Request.Context(), actorID, exerciseID, req.ObjectKey)
	if err != nil {
		handleExerciseError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

func (h *ExerciseHandler) ids(c *gin.Context) (actorID, exerciseID uuid.UUID, ok bool) {
	actorID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return uuid.Nil, uuid.Nil, false
	}
	exerciseID, err = uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format.")
		return uuid.Nil, uuid.Nil, false
	}
	return actorID, exerciseID, true
}

func handleExerciseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExerciseNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrExerciseAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrCustomExercisesPro):
		abortWithError(c, http.StatusPaymentRequired, err.Error())
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrOrganizationNotFound):
		abortWithError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrValidation):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred.")
	}
}
