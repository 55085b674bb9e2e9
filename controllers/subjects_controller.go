package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/f-kazuma/smardy1210/config"
	"github.com/f-kazuma/smardy1210/models"
	"github.com/f-kazuma/smardy1210/store"
	"github.com/f-kazuma/smardy1210/utils"
)

type SubjectsController struct {
	Store store.Store
	Cfg   *config.Config
}

func NewSubjectsController(st store.Store, cfg *config.Config) *SubjectsController {
	return &SubjectsController{Store: st, Cfg: cfg}
}

type SubjectInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	TargetScore *int    `json:"targetScore"`
}

func (input *SubjectInput) validate() error {
	if input.Name == "" {
		return errors.New("name is required")
	}
	if input.TargetScore != nil && (*input.TargetScore < 0 || *input.TargetScore > 100) {
		return errors.New("targetScore must be between 0 and 100")
	}
	return nil
}

func (sc *SubjectsController) GetSubjects(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	subjects, err := sc.Store.Subjects().ListByUser(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load subjects",
		})
	}
	if subjects == nil {
		subjects = []models.Subject{}
	}

	return c.JSON(fiber.Map{"subjects": subjects})
}

func (sc *SubjectsController) CreateSubject(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var input SubjectInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := input.validate(); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	subject := models.Subject{
		UserID:      userID,
		Name:        input.Name,
		Description: input.Description,
		TargetScore: input.TargetScore,
	}

	if _, err := sc.Store.Subjects().Create(c.Context(), &subject); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create subject",
		})
	}

	return utils.Created(c, subject)
}

func (sc *SubjectsController) UpdateSubject(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var input SubjectInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := input.validate(); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	upd := store.SubjectUpdate{
		Name:        input.Name,
		Description: input.Description,
		TargetScore: input.TargetScore,
	}

	if err := sc.Store.Subjects().Update(c.Context(), userID, c.Params("id"), upd); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return utils.NotFound(c, "Subject not found")
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update subject",
		})
	}

	return utils.NoContent(c)
}

// DeleteSubject removes a subject and all goals referencing it. The cascade
// is two-phase: collect the dependent goal ids, delete each, then delete the
// parent only if every dependent went away. A partial failure keeps the
// parent and reports the goal ids that could not be deleted, so nothing is
// silently orphaned.
func (sc *SubjectsController) DeleteSubject(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	subjectID := c.Params("id")
	ctx := c.Context()

	if _, err := sc.Store.Subjects().Get(ctx, userID, subjectID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return utils.NotFound(c, "Subject not found")
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load subject",
		})
	}

	goals, err := sc.Store.Goals().ListBySubject(ctx, userID, subjectID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load dependent goals",
		})
	}

	var failedGoalIDs []string
	for _, goal := range goals {
		if err := sc.Store.Goals().Delete(ctx, userID, goal.ID.Hex()); err != nil && !errors.Is(err, store.ErrNotFound) {
			failedGoalIDs = append(failedGoalIDs, goal.ID.Hex())
		}
	}

	if len(failedGoalIDs) > 0 {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":         "Could not delete all dependent goals; subject kept",
			"failedGoalIds": failedGoalIDs,
		})
	}

	if err := sc.Store.Subjects().Delete(ctx, userID, subjectID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete subject",
		})
	}

	return utils.NoContent(c)
}
