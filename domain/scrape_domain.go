package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessEnqueueScrape  = "scraping enqueued"
	MessageSuccessGetTaskStatus  = "success get task status"
	MessageSuccessGetScrapedList = "success get scraped pages"

	MessageFailedEnqueueScrape  = "failed to enqueue scraping"
	MessageFailedGetScrapedList = "failed to get scraped pages"

	MessageAlreadyImported = "This URL has already been imported."
	MessageRecipeImported  = "Recipe successfully imported."
	MessageRecipeReused    = "Existing recipe reused."

	ErrRecipeConflict = errors.New("a recipe with this name already exists with different data, please choose a new name")
)

type (
	// ExtractedRecipe is the structured result of parsing a recipe page.
	// Details carries the free-form label/value pairs of the page
	// ("Prep Time" -> prep_time) since the label vocabulary is not closed.
	ExtractedRecipe struct {
		Title       string            `json:"title"`
		ImageURL    string            `json:"image_url"`
		Ingredients []string          `json:"ingredients"`
		Details     map[string]string `json:"details"`
		Steps       []ExtractedStep   `json:"steps"`
	}

	ExtractedStep struct {
		StepNumber  int    `json:"step_number"`
		Instruction string `json:"instruction"`
	}

	ImportRecipeRequest struct {
		URL          string `json:"url" validate:"required,url"`
		RestaurantID string `json:"restaurant_id" validate:"required,uuid"`
	}

	ImportRecipeResponse struct {
		Message string `json:"message"`
		TaskID  string `json:"task_id"`
	}

	// ImportResult is the terminal payload of a finished ingestion job.
	ImportResult struct {
		Message  string `json:"message"`
		RecipeID string `json:"recipe_id,omitempty"`
	}

	TaskStatusResponse struct {
		TaskID string      `json:"task_id"`
		State  string      `json:"state"`
		Detail interface{} `json:"detail"`
	}

	ScrapedPageResponse struct {
		ID        string    `json:"id"`
		URL       string    `json:"url"`
		RecipeID  string    `json:"recipe_id,omitempty"`
		CreatedAt time.Time `json:"created_at"`
	}
)
