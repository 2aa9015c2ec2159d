package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"liftforge/hypertrophy-app/internal/domain"
	"liftforge/hypertrophy-app/internal/service"
)

// ProgramHandler holds the program service dependency.
type ProgramHandler struct {
	programService service.ProgramService
}

// NewProgramHandler creates a new ProgramHandler.
func NewProgramHandler(programService service.ProgramService) *ProgramHandler {
	return &ProgramHandler{programService: programService}
}

// --- DTOs for API (Data Transfer Objects) ---

type WorkoutExerciseRequest struct {
	ExerciseID     string `json:"exercise_id" binding:"required"`
	Sets           int    `json:"sets" binding:"required"`
	OrderInSession int    `json:"order_in_session" binding:"required"`
	Notes          string `json:"notes"`
}

type SessionRequest struct {
	Name           string                   `json:"name" binding:"required"`
	DayNumber      int                      `json:"day_number" binding:"required"`
	OrderInProgram int                      `json:"order_in_program" binding:"required"`
	Exercises      []WorkoutExerciseRequest `json:"exercises"`
}

type WeeklyStructureRequest struct {
	DaysPerWeek  int      `json:"days_per_week" binding:"required"`
	SelectedDays []string `json:"selected_days" binding:"required"`
}

type CyclicStructureRequest struct {
	DaysOn  int `json:"days_on" binding:"required"`
	DaysOff int `json:"days_off" binding:"required"`
}

type CreateProgramRequest struct {
	Name          string                  `json:"name" binding:"required"`
	Description   string                  `json:"description"`
	SplitType     string                  `json:"split_type" binding:"required"`
	StructureType string                  `json:"structure_type" binding:"required"`
	Weekly        *WeeklyStructureRequest `json:"weekly_structure,omitempty"`
	Cyclic        *CyclicStructureRequest `json:"cyclic_structure,omitempty"`
	Sessions      []SessionRequest        `json:"sessions" binding:"required"`
	DurationWeeks *int                    `json:"duration_weeks,omitempty"`
}

type UpdateProgramRequest struct {
	Name          *string `json:"name,omitempty"`
	Description   *string `json:"description,omitempty"`
	DurationWeeks *int    `json:"duration_weeks,omitempty"`
}

type CloneProgramRequest struct {
	Name string `json:"name"`
}

type WorkoutExerciseResponse struct {
	ExerciseID     string `json:"exercise_id"`
	Sets           int    `json:"sets"`
	OrderInSession int    `json:"order_in_session"`
	Notes          string `json:"notes,omitempty"`
}

type SessionResponse struct {
	ID             string                    `json:"id"`
	Name           string                    `json:"name"`
	DayNumber      int                       `json:"day_number"`
	OrderInProgram int                       `json:"order_in_program"`
	TotalSets      int                       `json:"total_sets"`
	Exercises      []WorkoutExerciseResponse `json:"exercises"`
}

type ProgramResponse struct {
	ID             string                  `json:"id"`
	Name           string                  `json:"name"`
	Description    string                  `json:"description,omitempty"`
	SplitType      string                  `json:"split_type"`
	StructureType  string                  `json:"structure_type"`
	Weekly         *WeeklyStructureRequest `json:"weekly_structure,omitempty"`
	Cyclic         *CyclicStructureRequest `json:"cyclic_structure,omitempty"`
	Sessions       []SessionResponse       `json:"sessions"`
	IsTemplate     bool                    `json:"is_template"`
	OrganizationID *string                 `json:"organization_id,omitempty"`
	DurationWeeks  *int                    `json:"duration_weeks,omitempty"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
}

type ProgramCreatedResponse struct {
	Program    ProgramResponse `json:"program"`
	Advisories []string        `json:"advisories,omitempty"`
}

type ScheduledSessionResponse struct {
	SessionID     string `json:"session_id"`
	SessionName   string `json:"session_name"`
	ScheduledDate string `json:"scheduled_date"`
	DayOfWeek     string `json:"day_of_week,omitempty"`
	CycleDay      *int   `json:"cycle_day,omitempty"`
}

type VolumeReportResponse struct {
	WeeklyVolume map[string]float64 `json:"weekly_volume"`
	Warnings     []string           `json:"warnings"`
}

// MapProgramToResponse converts a domain.TrainingProgram to its DTO.
func MapProgramToResponse(p *domain.TrainingProgram) ProgramResponse {
	if p == nil {
		return ProgramResponse{}
	}
	resp := ProgramResponse{
		ID:            p.ID().String(),
		Name:          p.Name(),
		Description:   p.Description(),
		SplitType:     string(p.SplitType()),
		StructureType: string(p.StructureType()),
		IsTemplate:    p.IsTemplate(),
		DurationWeeks: p.DurationWeeks(),
		CreatedAt:     p.CreatedAt(),
		UpdatedAt:     p.UpdatedAt(),
	}
	if w := p.WeeklyStructure(); w != nil {
		days := make([]string, 0, w.DaysPerWeek())
		for _, d := range w.OrderedDays() {
			days = append(days, string(d))
		}
		resp.Weekly = &WeeklyStructureRequest{DaysPerWeek: w.DaysPerWeek(), SelectedDays: days}
	}
	if c := p.CyclicStructure(); c != nil {
		resp.Cyclic = &CyclicStructureRequest{DaysOn: c.DaysOn(), DaysOff: c.DaysOff()}
	}
	if orgID := p.OrganizationID(); orgID != nil {
		s := orgID.String()
		resp.OrganizationID = &s
	}
	for _, session := range p.SessionsOrdered() {
		resp.Sessions = append(resp.Sessions, mapSessionToResponse(session))
	}
	return resp
}

func mapSessionToResponse(s *domain.WorkoutSession) SessionResponse {
	resp := SessionResponse{
		ID:             s.ID().String(),
		Name:           s.Name(),
		DayNumber:      s.DayNumber(),
		OrderInProgram: s.OrderInProgram(),
		TotalSets:      s.CalculateTotalSets(),
	}
	for _, ex := range s.ExercisesOrdered() {
		resp.Exercises = append(resp.Exercises, WorkoutExerciseResponse{
			ExerciseID:     ex.ExerciseID().String(),
			Sets:           ex.Sets(),
			OrderInSession: ex.OrderInSession(),
			Notes:          ex.Notes(),
		})
	}
	return resp
}

func parseSessionInputs(reqs []SessionRequest) ([]service.SessionInput, error) {
	inputs := make([]service.SessionInput, 0, len(reqs))
	for _, sr := range reqs {
		input := service.SessionInput{
			Name:           sr.Name,
			DayNumber:      sr.DayNumber,
			OrderInProgram: sr.OrderInProgram,
		}
		for _, er := range sr.Exercises {
			exerciseID, err := uuid.Parse(er.ExerciseID)
			if err != nil {
				return nil, errors.New("invalid exercise_id format")
			}
			input.Exercises = append(input.Exercises, service.WorkoutExerciseInput{
				ExerciseID:     exerciseID,
				Sets:           er.Sets,
				OrderInSession: er.OrderInSession,
				Notes:          er.Notes,
			})
		}
		inputs = append(inputs, input)
	}
	return inputs, nil
}

// --- Handler Methods ---

// CreateProgram godoc
// @Summary Create a training program
// @Description Creates a template (admins) or an organization program (Pro members). The response includes non-blocking advisories.
// @Tags Programs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param program body CreateProgramRequest true "Program details"
// @Success 201 {object} ProgramCreatedResponse "Program created"
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 402 {object} gin.H "Pro subscription required"
// @Router /programs [post]
func (h *ProgramHandler) CreateProgram(c *gin.Context) {
	actorID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	var req CreateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	input, err := parseProgramInput(req)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	program, advisories, err := h.programService.CreateProgram(c.Request.Context(), actorID, input)
	if err != nil {
		handleProgramError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ProgramCreatedResponse{
		Program:    MapProgramToResponse(program),
		Advisories: advisories,
	})
}

func parseProgramInput(req CreateProgramRequest) (service.ProgramInput, error) {
	splitType, err := domain.ParseSplitType(req.SplitType)
	if err != nil {
		return service.ProgramInput{}, err
	}
	structureType, err := domain.ParseStructureType(req.StructureType)
	if err != nil {
		return service.ProgramInput{}, err
	}

	input := service.ProgramInput{
		Name:          req.Name,
		Description:   req.Description,
		SplitType:     splitType,
		StructureType: structureType,
		DurationWeeks: req.DurationWeeks,
	}
	if req.Weekly != nil {
		days := make([]domain.WeekDay, 0, len(req.Weekly.SelectedDays))
		for _, d := range req.Weekly.SelectedDays {
			day, err := domain.ParseWeekDay(d)
			if err != nil {
				return service.ProgramInput{}, err
			}
			days = append(days, day)
		}
		input.Weekly = &service.WeeklyStructureInput{
			DaysPerWeek:  req.Weekly.DaysPerWeek,
			SelectedDays: days,
		}
	}
	if req.Cyclic != nil {
		input.Cyclic = &service.CyclicStructureInput{
			DaysOn:  req.Cyclic.DaysOn,
			DaysOff: req.Cyclic.DaysOff,
		}
	}
	input.Sessions, err = parseSessionInputs(req.Sessions)
	if err != nil {
		return service.ProgramInput{}, err
	}
	return input, nil
}

// ListPrograms godoc
// @Summary List the organization's programs
// @Tags Programs
// @Produce json
// @Security BearerAuth
// @Success 200 {array} ProgramResponse
// @Router /programs [get]
func (h *ProgramHandler) ListPrograms(c *gin.Context) {
	actorID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	programs, err := h.programService.ListPrograms(c.Request.Context(), actorID)
	if err != nil {
		handleProgramError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapProgramsToResponse(programs))
}

// ListTemplates godoc
// @Summary List the template program library
// @Tags Programs
// @Produce json
// @Security BearerAuth
// @Param split_type query string false "Split type filter"
// @Success 200 {array} ProgramResponse
// @Router /templates [get]
func (h *ProgramHandler) ListTemplates(c *gin.Context) {
	var splitType *domain.SplitType
	if v := c.Query("split_type"); v != "" {
		st, err := domain.ParseSplitType(v)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		splitType = &st
	}
	templates, err := h.programService.ListTemplates(c.Request.Context(), splitType)
	if err != nil {
		handleProgramError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapProgramsToResponse(templates))
}

func mapProgramsToResponse(programs []*domain.TrainingProgram) []ProgramResponse {
	responses := make([]ProgramResponse, len(programs))
	for i, p := range programs {
		responses[i] = MapProgramToResponse(p)
	}
	return responses
}

// GetProgram godoc
// @Summary Get a program by ID
// @Tags Programs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Program ID"
// @Success 200 {object} ProgramResponse
// @Failure 404 {object} gin.H "Not found"
// @Router /programs/{id} [get]
func (h *ProgramHandler) GetProgram(c *gin.Context) {
	actorID, programID, ok := h.ids(c)
	if !ok {
		return
	}
	program, err := h.programService.GetProgramByID(c.Request.Context(), actorID, programID)
	if err != nil {
		handleProgramError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapProgramToResponse(program))
}

// UpdateProgram godoc
// @Summary Update a program's details
// @Tags Programs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Program ID"
// @Param program body UpdateProgramRequest true "Fields to update"
// @Success 200 {object} ProgramResponse
// @Failure 403 {object} gin.H "Forbidden"
// @Failure 404 {object} gin.H "Not found"
// @Router /programs/{id} [put]
func (h *ProgramHandler) UpdateProgram(c *gin.Context) {
	actorID, programID, ok := h.ids(c)
	if !ok {
		return
	}
	var req UpdateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	program, err := h.programService.UpdateProgram(c.Request.Context(), actorID, programID, service.ProgramUpdateInput{
		Name:          req.Name,
		Description:   req.Description,
		DurationWeeks: req.DurationWeeks,
	})
	if err != nil {
		handleProgramError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapProgramToResponse(program))
}

// UpdateProgramSessions godoc
// @Summary Replace a program's session list
// @Tags Programs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Program ID"
// @Param sessions body []SessionRequest true "New session list"
// @Success 200 {object} ProgramCreatedResponse
// @Router /programs/{id}/sessions [put]
func (h *ProgramHandler) UpdateProgramSessions(c *gin.Context) {
	actorID, programID, ok := h.ids(c)
	if !ok {
		return
	}
	var reqs []SessionRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	inputs, err := parseSessionInputs(reqs)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	program, advisories, err := h.programService.UpdateProgramSessions(c.Request.Context(), actorID, programID, inputs)
	if err != nil {
		handleProgramError(c, err)
		return
	}
	c.JSON(http.StatusOK, ProgramCreatedResponse{
		Program:    MapProgramToResponse(program),
		Advisories: advisories,
	})
}

// DeleteProgram godoc
// @Summary Delete a program
// @Tags Programs
// @Security BearerAuth
// @Param id path string true "Program ID"
// @Success 204 "Deleted"
// @Failure 403 {object} gin.H "Forbidden"
// @Failure 404 {object} gin.H "Not found"
// @Router /programs/{id} [delete]
func (h *ProgramHandler) DeleteProgram(c *gin.Context) {
	actorID, programID, ok := h.ids(c)
	if !ok {
		return
	}
	if err := h.programService.DeleteProgram(c.Request.Context(), actorID, programID); err != nil {
		handleProgramError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CloneProgram godoc
// @Summary Clone a template program into the user's organization
// @Tags Programs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Template program ID"
// @Param clone body CloneProgramRequest false "Optional name for the copy"
// @Success 201 {object} ProgramResponse
// @Failure 400 {object} gin.H "Source is not a template"
// @Failure 402 {object} gin.H "Pro subscription required"
// @Router /programs/{id}/clone [post]
func (h *ProgramHandler) CloneProgram(c *gin.Context) {
	actorID, programID, ok := h.ids(c)
	if !ok {
		return
	}
	var req CloneProgramRequest
	// Body is optional; ignore bind errors from an empty body.
	_ = c.ShouldBindJSON(&req)

	clone, err := h.programService.CloneTemplate(c.Request.Context(), actorID, programID, req.Name)
	if err != nil {
		handleProgramError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapProgramToResponse(clone))
}

// GetSchedule godoc
// @Summary Generate a program's calendar schedule
// @Tags Programs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Program ID"
// @Param start query string false "Start date (YYYY-MM-DD, defaults to today)"
// @Param weeks query int false "Number of weeks (defaults to the program duration)"
// @Success 200 {array} ScheduledSessionResponse
// @Router /programs/{id}/schedule [get]
func (h *ProgramHandler) GetSchedule(c *gin.Context) {
	actorID, programID, ok := h.ids(c)
	if !ok {
		return
	}

	var start time.Time
	if v := c.Query("start"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid start date, expected YYYY-MM-DD.")
			return
		}
		start = parsed
	}
	weeks := 0
	if v := c.Query("weeks"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			abortWithError(c, http.StatusBadRequest, "Invalid weeks value.")
			return
		}
		weeks = parsed
	}

	schedule, err := h.programService.GetSchedule(c.Request.Context(), actorID, programID, start, weeks)
	if err != nil {
		handleProgramError(c, err)
		return
	}

	out := make([]ScheduledSessionResponse, len(schedule))
	for i, entry := range schedule {
		resp := ScheduledSessionResponse{
			SessionID:     entry.SessionID.String(),
			SessionName:   entry.SessionName,
			ScheduledDate: entry.ScheduledDate.Format("2006-01-02"),
			CycleDay:      entry.CycleDay,
		}
		if entry.DayOfWeek != nil {
			resp.DayOfWeek = string(*entry.DayOfWeek)
		}
		out[i] = resp
	}
	c.JSON(http.StatusOK, out)
}

// GetVolume godoc
// @Summary Get a program's weekly per-muscle volume
// @Tags Programs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Program ID"
// @Success 200 {object} VolumeReportResponse
// @Router /programs/{id}/volume [get]
func (h *ProgramHandler) GetVolume(c *gin.Context) {
	report, ok := h.volumeReport(c)
	if !ok {
		return
	}
	volume := make(map[string]float64, len(report.WeeklyVolume))
	for muscle, v := range report.WeeklyVolume {
		volume[string(muscle)] = v
	}
	c.JSON(http.StatusOK, VolumeReportResponse{WeeklyVolume: volume, Warnings: report.Warnings})
}

// GetVolumeWarnings godoc
// @Summary Get only the volume warnings for a program
// @Tags Programs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Program ID"
// @Success 200 {array} string
// @Router /programs/{id}/volume/warnings [get]
func (h *ProgramHandler) GetVolumeWarnings(c *gin.Context) {
	report, ok := h.volumeReport(c)
	if !ok {
		return
	}
	if report.Warnings == nil {
		c.JSON(http.StatusOK, []string{})
		return
	}
	c.JSON(http.StatusOK, report.Warnings)
}

func (h *ProgramHandler) volumeReport(c *gin.Context) (*service.ProgramVolumeReport, bool) {
	actorID, programID, ok := h.ids(c)
	if !ok {
		return nil, false
	}
	report, err := h.programService.GetVolumeReport(c.Request.Context(), actorID, programID)
	if err != nil {
		handleProgramError(c, err)
		return nil, false
	}
	return report, true
}

func (h *ProgramHandler) ids(c *gin.Context) (actorID, programID uuid.UUID, ok bool) {
	actorID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return uuid.Nil, uuid.Nil, false
	}
	programID, err = uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid program ID format.")
		return uuid.Nil, uuid.Nil, false
	}
	return actorID, programID, true
}

func handleProgramError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProgramNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrProgramAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrNotTemplate):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrProgramsRequirePro):
		abortWithError(c, http.StatusPaymentRequired, err.Error())
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrOrganizationNotFound):
		abortWithError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrValidation):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred.")
	}
}
