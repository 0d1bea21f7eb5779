package ingestion

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"recipe-crm/domain"
	"recipe-crm/entities"
	"recipe-crm/pkg/scraper"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var errRestaurantNotFound = errors.New("Restaurant not found.")

type (
	// IngestionService runs the import pipeline: fetch the page, extract a
	// structured recipe, reconcile it against the tenant catalog and persist
	// the outcome. It is designed to run inside a background job.
	IngestionService interface {
		Import(ctx context.Context, url, restaurantID string) (domain.ImportResult, error)
		GetScrapedPages(ctx context.Context) ([]domain.ScrapedPageResponse, error)
	}

	ingestionService struct {
		repository IngestionRepository
		fetcher    scraper.Fetcher
		extractor  scraper.Extractor
	}
)

func NewIngestionService(repository IngestionRepository, fetcher scraper.Fetcher, extractor scraper.Extractor) IngestionService {
	return &ingestionService{
		repository: repository,
		fetcher:    fetcher,
		extractor:  extractor,
	}
}

func (s *ingestionService) Import(ctx context.Context, url, restaurantID string) (domain.ImportResult, error) {
	exists, err := s.repository.ScrapedPageExists(ctx, url)
	if err != nil {
		return domain.ImportResult{}, err
	}
	if exists {
		return domain.ImportResult{Message: domain.MessageAlreadyImported}, nil
	}

	markup, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return domain.ImportResult{}, fmt.Errorf("Error during scraping: %w", err)
	}

	restaurant, err := s.repository.GetRestaurantByID(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ImportResult{}, errRestaurantNotFound
		}
		return domain.ImportResult{}, err
	}

	extracted := s.extractor.Extract(markup)

	var result domain.ImportResult
	err = s.repository.Transaction(ctx, func(tx *gorm.DB) error {
		repo := s.repository.WithTx(tx)

		page := &entities.ScrapedPage{
			ID:          uuid.New(),
			URL:         url,
			HTMLContent: string(markup),
		}
		if err := repo.CreateScrapedPage(ctx, page); err != nil {
			return err
		}

		recipe, created, err := s.reconcileOrCreate(ctx, repo, extracted, restaurant)
		if err != nil {
			return err
		}

		page.RecipeID = &recipe.ID
		if err := repo.UpdateScrapedPage(ctx, page); err != nil {
			return err
		}

		message := domain.MessageRecipeReused
		if created {
			message = domain.MessageRecipeImported
		}
		result = domain.ImportResult{Message: message, RecipeID: recipe.ID.String()}
		return nil
	})
	if err != nil {
		// Concurrent imports race on the unique url index; losing the race
		// means the page is already imported, not a failure.
		if IsUniqueViolation(err) {
			return domain.ImportResult{Message: domain.MessageAlreadyImported}, nil
		}
		return domain.ImportResult{}, err
	}
	return result, nil
}

func (s *ingestionService) reconcileOrCreate(ctx context.Context, repo IngestionRepository, extracted domain.ExtractedRecipe, restaurant *entities.Restaurant) (*entities.Recipe, bool, error) {
	candidates, err := repo.GetRecipesByName(ctx, extracted.Title)
	if err != nil {
		return nil, false, err
	}

	recipe, err := Reconcile(extracted, candidates)
	if err != nil {
		return nil, false, err
	}

	created := false
	if recipe == nil {
		recipe = newRecipeFromExtraction(extracted)
		if err := repo.CreateRecipe(ctx, recipe); err != nil {
			return nil, false, err
		}
		created = true
	}

	if err := repo.AssociateRestaurant(ctx, recipe.ID, restaurant.ID); err != nil {
		return nil, false, err
	}

	for _, name := range extracted.Ingredients {
		ingredient, err := repo.GetOrCreateIngredient(ctx, strings.TrimSpace(name))
		if err != nil {
			return nil, false, err
		}
		restaurantID := restaurant.ID
		if err := repo.GetOrCreateRecipeIngredient(ctx, recipe.ID, ingredient.ID, &restaurantID); err != nil {
			return nil, false, err
		}
	}

	if created {
		for _, step := range extracted.Steps {
			if err := repo.CreateStep(ctx, &entities.RecipeStep{
				ID:          uuid.New(),
				RecipeID:    recipe.ID,
				StepNumber:  step.StepNumber,
				Description: step.Instruction,
			}); err != nil {
				return nil, false, err
			}
		}
	}
	return recipe, created, nil
}

func newRecipeFromExtraction(extracted domain.ExtractedRecipe) *entities.Recipe {
	recipe := &entities.Recipe{
		ID:             uuid.New(),
		Name:           strings.TrimSpace(extracted.Title),
		Description:    "Imported recipe",
		ImageURL:       extracted.ImageURL,
		PrepTime:       extracted.Details["prep_time"],
		CookTime:       extracted.Details["cook_time"],
		AdditionalTime: extracted.Details["additional_time"],
		TotalTime:      extracted.Details["total_time"],
	}
	if raw, ok := extracted.Details["servings"]; ok {
		if servings, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
			recipe.Servings = &servings
		}
	}
	return recipe
}

func (s *ingestionService) GetScrapedPages(ctx context.Context) ([]domain.ScrapedPageResponse, error) {
	pages, err := s.repository.GetScrapedPages(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]domain.ScrapedPageResponse, 0, len(pages))
	for _, page := range pages {
		response := domain.ScrapedPageResponse{
			ID:        page.ID.String(),
			URL:       page.URL,
			CreatedAt: page.CreatedAt,
		}
		if page.RecipeID != nil {
			response.RecipeID = page.RecipeID.String()
		}
		responses = append(responses, response)
	}
	return responses, nil
}
