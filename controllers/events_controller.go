package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/f-kazuma/smardy1210/config"
	"github.com/f-kazuma/smardy1210/models"
	"github.com/f-kazuma/smardy1210/store"
	"github.com/f-kazuma/smardy1210/utils"
)

type EventsController struct {
	Store store.Store
	Cfg   *config.Config
}

func NewEventsController(st store.Store, cfg *config.Config) *EventsController {
	return &EventsController{Store: st, Cfg: cfg}
}

type EventInput struct {
	Title       string  `json:"title"`
	Date        string  `json:"date"` // YYYY-MM-DD
	Type        string  `json:"type"`
	Description *string `json:"description"`
	TargetScore *int    `json:"targetScore"`
}

func (ec *EventsController) parseEvent(c *fiber.Ctx, userID string) (*models.Event, error) {
	var input EventInput
	if err := c.BodyParser(&input); err != nil {
		return nil, errors.New("Cannot parse JSON")
	}

	if input.Title == "" {
		return nil, errors.New("title is required")
	}
	if !models.ValidEventType(input.Type) {
		return nil, errors.New("type must be one of exam, test, deadline, goal")
	}

	date, err := parseDate(input.Date)
	if err != nil {
		return nil, errors.New("date must be YYYY-MM-DD")
	}

	return &models.Event{
		UserID:      userID,
		Title:       input.Title,
		Date:        date,
		Type:        input.Type,
		Description: input.Description,
		TargetScore: input.TargetScore,
	}, nil
}

func (ec *EventsController) CreateEvent(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ec.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	event, err := ec.parseEvent(c, userID)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	if _, err := ec.Store.Events().Create(c.Context(), event); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create event",
		})
	}

	return utils.Created(c, event)
}

func (ec *EventsController) GetEvents(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ec.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	events, err := ec.Store.Events().ListByUser(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load events",
		})
	}
	if events == nil {
		events = []models.Event{}
	}

	return c.JSON(fiber.Map{"events": events})
}

func (ec *EventsController) UpdateEvent(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ec.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	event, err := ec.parseEvent(c, userID)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	if err := ec.Store.Events().Update(c.Context(), userID, c.Params("id"), event); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return utils.NotFound(c, "Event not found")
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update event",
		})
	}

	return utils.NoContent(c)
}

func (ec *EventsController) DeleteEvent(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ec.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	if err := ec.Store.Events().Delete(c.Context(), userID, c.Params("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return utils.NotFound(c, "Event not found")
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete event",
		})
	}

	return utils.NoContent(c)
}
