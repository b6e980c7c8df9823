package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "finfacil/internal/errors"
	"finfacil/internal/models"
	"finfacil/internal/pagination"
	"finfacil/internal/services"
)

// GoalHandler handles goal, ledger and progress requests.
type GoalHandler struct {
	goalService services.GoalServicer
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalService services.GoalServicer) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// CreateGoalRequest represents the request payload for creating a goal.
type CreateGoalRequest struct {
	Name            string                 `json:"name" binding:"required,min=1,max=100"`
	Description     string                 `json:"description" binding:"max=500"`
	Type            models.GoalType        `json:"type" binding:"required,goal_type"`
	Status          models.GoalStatus      `json:"status" binding:"omitempty,goal_status"`
	TargetAmount    *decimal.Decimal       `json:"target_amount" binding:"required" swaggertype:"string"`
	StartDate       *models.Date           `json:"start_date" swaggertype:"string"`
	TargetDate      *models.Date           `json:"target_date" binding:"required" swaggertype:"string"`
	Category        string                 `json:"category" binding:"max=50"`
	IsRecurring     bool                   `json:"is_recurring"`
	RecurringPeriod models.RecurringPeriod `json:"recurring_period" binding:"omitempty,recurring_period"`
}

// UpdateGoalRequest represents the request payload for updating a goal.
// Omitted fields are left unchanged.
type UpdateGoalRequest struct {
	Name            *string                 `json:"name" binding:"omitempty,min=1,max=100"`
	Description     *string                 `json:"description" binding:"omitempty,max=500"`
	Type            *models.GoalType        `json:"type" binding:"omitempty,goal_type"`
	Status          *models.GoalStatus      `json:"status" binding:"omitempty,goal_status"`
	TargetAmount    *decimal.Decimal        `json:"target_amount" swaggertype:"string"`
	StartDate       *models.Date            `json:"start_date" swaggertype:"string"`
	TargetDate      *models.Date            `json:"target_date" swaggertype:"string"`
	Category        *string                 `json:"category" binding:"omitempty,max=50"`
	IsRecurring     *bool                   `json:"is_recurring"`
	RecurringPeriod *models.RecurringPeriod `json:"recurring_period" binding:"omitempty,recurring_period"`
}

// AddEntryRequest represents the request payload for adding a ledger entry.
type AddEntryRequest struct {
	Amount      *decimal.Decimal `json:"amount" binding:"required" swaggertype:"string"`
	Type        models.EntryType `json:"type" binding:"required,entry_type"`
	Description string           `json:"description" binding:"max=200"`
}

// CreateGoal handles the creation of a new goal.
// @Summary     Create a goal
// @Description Create a new savings or spending goal with an empty ledger
// @Tags        goals
// @Accept      json
// @Produce     json
// @Param       request body CreateGoalRequest true "Goal details"
// @Success     201 {object} models.Goal "Goal created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals [post]
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input := services.CreateGoalInput{
		Name:            req.Name,
		Description:     req.Description,
		Type:            req.Type,
		Status:          req.Status,
		TargetAmount:    *req.TargetAmount,
		TargetDate:      *req.TargetDate,
		Category:        req.Category,
		IsRecurring:     req.IsRecurring,
		RecurringPeriod: req.RecurringPeriod,
	}
	if req.StartDate != nil {
		input.StartDate = *req.StartDate
	}

	goal, err := h.goalService.CreateGoal(c.Request.Context(), input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"goal": goal})
}

// GetGoals handles listing goals.
// @Summary     Get goals
// @Description Get a paginated list of goals, newest first
// @Tags        goals
// @Accept      json
// @Produce     json
// @Param       type      query string false "Filter by goal type"
// @Param       status    query string false "Filter by goal status"
// @Param       active    query bool   false "Only in-progress and at-risk goals"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Goal] "Paginated goals"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals [get]
func (h *GoalHandler) GetGoals(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var filter services.GoalFilter
	if v := c.Query("type"); v != "" {
		t := models.GoalType(v)
		if !t.Valid() {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid goal type"))
			return
		}
		filter.Type = &t
	}
	if v := c.Query("status"); v != "" {
		s := models.GoalStatus(v)
		if !s.Valid() {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid goal status"))
			return
		}
		filter.Status = &s
	}
	active, err := parseBoolQuery(c, "active")
	if err != nil {
		respondWithError(c, err)
		return
	}
	filter.Active = active

	result, err := h.goalService.GetGoals(page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetGoal handles retrieving a specific goal.
// @Summary     Get goal by ID
// @Description Get a goal with its current amount derived from the ledger
// @Tags        goals
// @Produce     json
// @Param       id path string true "Goal ID"
// @Success     200 {object} models.Goal "Goal details"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goals/{id} [get]
func (h *GoalHandler) GetGoal(c *gin.Context) {
	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	goal, err := h.goalService.GetGoalByID(goalID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// UpdateGoal handles updating an existing goal.
// @Summary     Update goal
// @Description Update an existing goal; omitted fields are unchanged
// @Tags        goals
// @Accept      json
// @Produce     json
// @Param       id      path string            true "Goal ID"
// @Param       request body UpdateGoalRequest true "Updated goal fields"
// @Success     200 {object} models.Goal "Updated goal"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/{id} [put]
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.goalService.UpdateGoal(c.Request.Context(), goalID, services.UpdateGoalInput{
		Name:            req.Name,
		Description:     req.Description,
		Type:            req.Type,
		Status:          req.Status,
		TargetAmount:    req.TargetAmount,
		StartDate:       req.StartDate,
		TargetDate:      req.TargetDate,
		Category:        req.Category,
		IsRecurring:     req.IsRecurring,
		RecurringPeriod: req.RecurringPeriod,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// DeleteGoal handles deleting a goal together with its ledger.
// @Summary     Delete goal
// @Description Delete a goal and every entry in its ledger
// @Tags        goals
// @Produce     json
// @Param       id path string true "Goal ID"
// @Success     200 {object} MessageResponse "Goal deleted"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/{id} [delete]
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	deleted, err := h.goalService.DeleteGoal(c.Request.Context(), goalID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if !deleted {
		respondWithError(c, apperrors.ErrGoalNotFound)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Goal deleted successfully"})
}

// AddEntry handles adding an income or expense to a goal's ledger.
// @Summary     Add ledger entry
// @Description Add an income or expense entry to a goal
// @Tags        entries
// @Accept      json
// @Produce     json
// @Param       id      path string          true "Goal ID"
// @Param       request body AddEntryRequest true "Entry details"
// @Success     201 {object} models.GoalEntry "Entry created"
// @Failure     400 {object} ErrorResponse "Invalid input or amount"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /goals/{id}/entries [post]
func (h *GoalHandler) AddEntry(c *gin.Context) {
	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AddEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	entry, err := h.goalService.AddEntry(c.Request.Context(), goalID, *req.Amount, req.Type, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

// GetEntries handles listing a goal's ledger.
// @Summary     Get goal entries
// @Description Get a paginated list of a goal's entries, newest first
// @Tags        entries
// @Produce     json
// @Param       id        path  string true  "Goal ID"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.GoalEntry] "Paginated entries"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goals/{id}/entries [get]
func (h *GoalHandler) GetEntries(c *gin.Context) {
	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.goalService.GetGoalEntries(goalID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// RemoveEntry handles deleting a ledger entry.
// @Summary     Remove ledger entry
// @Description Remove an entry and update the goal it belonged to
// @Tags        entries
// @Produce     json
// @Param       id path string true "Entry ID"
// @Success     200 {object} MessageResponse "Entry removed"
// @Failure     404 {object} ErrorResponse "Entry not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /entries/{id} [delete]
func (h *GoalHandler) RemoveEntry(c *gin.Context) {
	entryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	removed, err := h.goalService.RemoveEntry(c.Request.Context(), entryID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if !removed {
		respondWithError(c, apperrors.ErrEntryNotFound)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Entry removed successfully"})
}

// GetSummary handles retrieving a goal's ledger summary.
// @Summary     Get goal summary
// @Description Get money in, money out, balance and entry count for a goal
// @Tags        goals
// @Produce     json
// @Param       id path string true "Goal ID"
// @Success     200 {object} services.PotSummary "Ledger summary"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goals/{id}/summary [get]
func (h *GoalHandler) GetSummary(c *gin.Context) {
	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if _, err := h.goalService.GetGoalByID(goalID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": h.goalService.Summarize(goalID)})
}

// GetProgress handles retrieving a goal's progress metrics.
// @Summary     Get goal progress
// @Description Get completion, pacing and contribution targets for a goal
// @Tags        goals
// @Produce     json
// @Param       id path string true "Goal ID"
// @Success     200 {object} services.GoalProgress "Progress metrics"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goals/{id}/progress [get]
func (h *GoalHandler) GetProgress(c *gin.Context) {
	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	progress, err := h.goalService.GetProgress(goalID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"progress": progress})
}
