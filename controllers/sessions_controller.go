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

type SessionsController struct {
	Store store.Store
	Cfg   *config.Config
	// Now is the clock used for the time-bucketed statistics. Overridable
	// for deterministic tests; defaults to time.Now.
	Now func() time.Time
}

func NewSessionsController(st store.Store, cfg *config.Config) *SessionsController {
	return &SessionsController{Store: st, Cfg: cfg, Now: time.Now}
}

type SessionInput struct {
	GoalID    string  `json:"goalId"`
	StartTime string  `json:"startTime"` // RFC3339
	Duration  int     `json:"duration"`  // minutes
	Amount    float64 `json:"amount"`
	Note      string  `json:"note"`
}

// CreateSession appends one entry to the immutable study log. Goal progress
// is not touched here; it advances only through the explicit progress
// endpoint.
func (sc *SessionsController) CreateSession(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var input SessionInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.GoalID == "" {
		return utils.BadRequest(c, "goalId is required")
	}
	if input.Duration < 0 {
		return utils.BadRequest(c, "duration must not be negative")
	}

	startTime, err := time.Parse(time.RFC3339, input.StartTime)
	if err != nil {
		return utils.BadRequest(c, "startTime must be RFC3339")
	}

	// The goal must exist and belong to the caller.
	if _, err := sc.Store.Goals().Get(c.Context(), userID, input.GoalID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return utils.NotFound(c, "Goal not found")
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load goal",
		})
	}

	session := models.StudySession{
		UserID:    userID,
		GoalID:    input.GoalID,
		StartTime: startTime,
		Duration:  input.Duration,
		Amount:    input.Amount,
		Note:      input.Note,
	}

	if _, err := sc.Store.Sessions().Create(c.Context(), &session); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save study session",
		})
	}

	return utils.Created(c, session)
}

func (sc *SessionsController) GetSessions(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	sessions, err := sc.Store.Sessions().ListByUser(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load study sessions",
		})
	}
	if sessions == nil {
		sessions = []models.StudySession{}
	}

	return c.JSON(fiber.Map{"sessions": sessions})
}

// GetStudyStats returns today/week/month/total study-time totals. The views
// are derived on read; nothing is cached between requests.
func (sc *SessionsController) GetStudyStats(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	sessions, err := sc.Store.Sessions().ListByUser(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load study sessions",
		})
	}

	return c.JSON(utils.ComputeStudyStats(sessions, sc.Now()))
}

// GetDailyStudyData returns the current week's study minutes per day,
// Sunday first.
func (sc *SessionsController) GetDailyStudyData(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	sessions, err := sc.Store.Sessions().ListByUser(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load study sessions",
		})
	}

	return c.JSON(fiber.Map{"days": utils.ComputeDailyStudyData(sessions, sc.Now())})
}

// GetSubjectDistribution returns total study minutes per goal.
func (sc *SessionsController) GetSubjectDistribution(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	sessions, err := sc.Store.Sessions().ListByUser(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load study sessions",
		})
	}

	return c.JSON(fiber.Map{"distribution": utils.ComputeSubjectDistribution(sessions)})
}
