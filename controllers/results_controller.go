package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/f-kazuma/smardy1210/config"
	"github.com/f-kazuma/smardy1210/models"
	"github.com/f-kazuma/smardy1210/store"
	"github.com/f-kazuma/smardy1210/utils"
)

type ResultsController struct {
	Store store.Store
	Cfg   *config.Config
}

func NewResultsController(st store.Store, cfg *config.Config) *ResultsController {
	return &ResultsController{Store: st, Cfg: cfg}
}

type ResultInput struct {
	Date       string                `json:"date"` // YYYY-MM-DD
	Type       string                `json:"type"` // "regular" or "mock"
	Subjects   []models.SubjectScore `json:"subjects"`
	Deviation  *float64              `json:"deviation"`
	SchoolRank *string               `json:"schoolRank"`
}

func (rc *ResultsController) CreateResult(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, rc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var input ResultInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Type != models.TestTypeRegular && input.Type != models.TestTypeMock {
		return utils.BadRequest(c, "type must be \"regular\" or \"mock\"")
	}
	if len(input.Subjects) == 0 {
		return utils.BadRequest(c, "at least one subject score is required")
	}
	// Deviation and school rank only make sense for mock exams.
	if input.Type == models.TestTypeRegular && (input.Deviation != nil || input.SchoolRank != nil) {
		return utils.BadRequest(c, "deviation and schoolRank apply to mock results only")
	}
	for _, sub := range input.Subjects {
		if sub.SubjectID == "" || sub.MaxScore <= 0 || sub.Score < 0 || sub.Score > sub.MaxScore {
			return utils.BadRequest(c, "each subject score needs subjectId and 0 <= score <= maxScore")
		}
	}

	date, err := parseDate(input.Date)
	if err != nil {
		return utils.BadRequest(c, "date must be YYYY-MM-DD")
	}

	result := models.TestResult{
		UserID:     userID,
		Date:       date,
		Type:       input.Type,
		Subjects:   input.Subjects,
		Deviation:  input.Deviation,
		SchoolRank: input.SchoolRank,
	}

	if _, err := rc.Store.Results().Create(c.Context(), &result); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save test result",
		})
	}

	return utils.Created(c, result)
}

func (rc *ResultsController) GetResults(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, rc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	results, err := rc.Store.Results().ListByUser(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load test results",
		})
	}
	if results == nil {
		results = []models.TestResult{}
	}

	return c.JSON(fiber.Map{"results": results})
}
