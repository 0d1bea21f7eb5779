package handlers

import (
	"context"

	"recipe-crm/domain"
	"recipe-crm/internal/api/presenters"
	"recipe-crm/pkg/ingestion"
	"recipe-crm/pkg/jobs"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ScrapeHandler interface {
		ImportRecipe(c *fiber.Ctx) error
		GetTaskStatus(c *fiber.Ctx) error
		GetScrapedPages(c *fiber.Ctx) error
	}

	scrapeHandler struct {
		ingestionService ingestion.IngestionService
		dispatcher       jobs.Dispatcher
		validator        *validator.Validate
	}
)

func NewScrapeHandler(ingestionService ingestion.IngestionService, dispatcher jobs.Dispatcher, validator *validator.Validate) ScrapeHandler {
	return &scrapeHandler{
		ingestionService: ingestionService,
		dispatcher:       dispatcher,
		validator:        validator,
	}
}

// ImportRecipe enqueues the import and answers immediately with a task id;
// the client polls GetTaskStatus for the outcome.
func (h *scrapeHandler) ImportRecipe(c *fiber.Ctx) error {
	req := new(domain.ImportRecipeRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedEnqueueScrape, err)
	}

	url, restaurantID := req.URL, req.RestaurantID
	taskID, err := h.dispatcher.Submit(c.Context(), func(ctx context.Context) (interface{}, error) {
		return h.ingestionService.Import(ctx, url, restaurantID)
	})
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedEnqueueScrape, err)
	}

	res := domain.ImportRecipeResponse{
		Message: domain.MessageSuccessEnqueueScrape,
		TaskID:  taskID,
	}
	return presenters.SuccessResponse(c, res, fiber.StatusAccepted, domain.MessageSuccessEnqueueScrape)
}

func (h *scrapeHandler) GetTaskStatus(c *fiber.Ctx) error {
	taskID := c.Params("id")

	status := h.dispatcher.Status(c.Context(), taskID)
	res := domain.TaskStatusResponse{
		TaskID: taskID,
		State:  status.State,
		Detail: status.Detail,
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetTaskStatus)
}

func (h *scrapeHandler) GetScrapedPages(c *fiber.Ctx) error {
	res, err := h.ingestionService.GetScrapedPages(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetScrapedList, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetScrapedList)
}
