package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/f-kazuma/smardy1210/config"
	"github.com/f-kazuma/smardy1210/models"
	"github.com/f-kazuma/smardy1210/store"
	"github.com/f-kazuma/smardy1210/utils"
)

const dateLayout = "2006-01-02"

// parseDate reads a calendar date in YYYY-MM-DD form.
func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

type GoalsController struct {
	Store store.Store
	Cfg   *config.Config
	// Now is the clock behind the pacing view. Overridable for
	// deterministic tests; defaults to time.Now.
	Now func() time.Time
}

func NewGoalsController(st store.Store, cfg *config.Config) *GoalsController {
	return &GoalsController{Store: st, Cfg: cfg, Now: time.Now}
}

type GoalInput struct {
	SubjectID   string  `json:"subjectId"`
	Title       string  `json:"title"`
	BaseAmount  float64 `json:"baseAmount"`
	Repetitions int     `json:"repetitions"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
	Frequency   int     `json:"frequency"`
	Purpose     string  `json:"purpose"`
}

// CreateGoal validates the pacing inputs, derives targetAmount and
// dailyTarget in memory, and persists the goal in a single write. The derived
// fields are never recomputed afterwards; the pacing inputs are immutable
// once the goal exists.
func (gc *GoalsController) CreateGoal(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, gc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var input GoalInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Title == "" || input.SubjectID == "" {
		return utils.BadRequest(c, "title and subjectId are required")
	}
	if input.BaseAmount <= 0 || input.Repetitions < 1 || input.Frequency < 1 {
		return utils.BadRequest(c, "baseAmount must be positive, repetitions and frequency at least 1")
	}

	startDate, err := parseDate(input.StartDate)
	if err != nil {
		return utils.BadRequest(c, "startDate must be YYYY-MM-DD")
	}
	endDate, err := parseDate(input.EndDate)
	if err != nil {
		return utils.BadRequest(c, "endDate must be YYYY-MM-DD")
	}
	if endDate.Before(startDate) {
		return utils.Error(c, fiber.StatusBadRequest, utils.ErrInvalidGoalConfig)
	}

	// The subject must belong to the caller.
	if _, err := gc.Store.Subjects().Get(c.Context(), userID, input.SubjectID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return utils.NotFound(c, "Subject not found")
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load subject",
		})
	}

	totalDays := utils.DaysBetween(startDate, endDate)
	targetAmount := utils.TotalTarget(input.BaseAmount, input.Repetitions)
	dailyTarget, err := utils.DailyTarget(targetAmount, totalDays, input.Frequency)
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, err)
	}

	goal := models.Goal{
		UserID:       userID,
		SubjectID:    input.SubjectID,
		Title:        input.Title,
		BaseAmount:   input.BaseAmount,
		Repetitions:  input.Repetitions,
		TargetAmount: targetAmount,
		StartDate:    startDate,
		EndDate:      endDate,
		Frequency:    input.Frequency,
		DailyTarget:  dailyTarget,
		Progress:     0,
		Purpose:      input.Purpose,
	}

	if _, err := gc.Store.Goals().Create(c.Context(), &goal); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create goal",
		})
	}

	return utils.Created(c, goal)
}

func (gc *GoalsController) GetGoals(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, gc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var goals []models.Goal
	if subjectID := c.Query("subjectId"); subjectID != "" {
		goals, err = gc.Store.Goals().ListBySubject(c.Context(), userID, subjectID)
	} else {
		goals, err = gc.Store.Goals().ListByUser(c.Context(), userID)
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load goals",
		})
	}
	if goals == nil {
		goals = []models.Goal{}
	}

	return c.JSON(fiber.Map{"goals": goals})
}

// UpdateGoal edits the title. Pacing inputs and the derived targetAmount and
// dailyTarget cannot be changed after creation.
func (gc *GoalsController) UpdateGoal(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, gc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	type TitleInput struct {
		Title string `json:"title"`
	}
	var input TitleInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Title == "" {
		return utils.BadRequest(c, "title is required")
	}

	if err := gc.Store.Goals().UpdateTitle(c.Context(), userID, c.Params("id"), input.Title); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return utils.NotFound(c, "Goal not found")
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update goal",
		})
	}

	return utils.NoContent(c)
}

// AddProgress appends an increment to the goal's cumulative progress.
func (gc *GoalsController) AddProgress(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, gc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	type ProgressInput struct {
		Amount float64 `json:"amount"`
	}
	var input ProgressInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Amount < 0 {
		return utils.BadRequest(c, "amount must not be negative")
	}

	if err := gc.Store.Goals().AddProgress(c.Context(), userID, c.Params("id"), input.Amount); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return utils.NotFound(c, "Goal not found")
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update progress",
		})
	}

	return utils.NoContent(c)
}

// GetPacing returns the derived progress view of one goal: expected progress
// as of today, actual-vs-expected difference, completion percentage and the
// projected completion date.
func (gc *GoalsController) GetPacing(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, gc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	goal, err := gc.Store.Goals().Get(c.Context(), userID, c.Params("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return utils.NotFound(c, "Goal not found")
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load goal",
		})
	}

	expected := utils.ExpectedProgress(goal, gc.Now())

	completion, err := utils.EstimatedCompletionDate(goal.TargetAmount, goal.DailyTarget, goal.StartDate, goal.Frequency)
	if err != nil {
		// A stored goal with an uncomputable plan is surfaced, not patched.
		return utils.Error(c, fiber.StatusBadRequest, err)
	}

	return c.JSON(fiber.Map{
		"goalId":                  goal.ID.Hex(),
		"progress":                goal.Progress,
		"targetAmount":            goal.TargetAmount,
		"dailyTarget":             goal.DailyTarget,
		"expectedProgress":        expected,
		"progressPercentage":      utils.ProgressPercentage(goal.Progress, goal.TargetAmount),
		"progressDifference":      utils.ProgressDifference(goal.Progress, expected),
		"estimatedCompletionDate": completion.Format(dateLayout),
	})
}

func (gc *GoalsController) DeleteGoal(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, gc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	if err := gc.Store.Goals().Delete(c.Context(), userID, c.Params("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return utils.NotFound(c, "Goal not found")
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete goal",
		})
	}

	return utils.NoContent(c)
}
