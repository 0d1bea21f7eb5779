package scraper

import (
	"bytes"
	"strings"

	"recipe-crm/domain"

	"github.com/PuerkitoBio/goquery"
)

// Extraction is coupled to one fixed page layout. The selectors live in a
// small rule table so a layout change is a data update, not a logic change.
type fieldRule struct {
	selectors []string // tried in document order, first hit wins
	fallback  string
}

var (
	titleRule = fieldRule{
		selectors: []string{"h1.article-heading.text-headline-400"},
		fallback:  "Title not found",
	}

	// The layout lazy-loads images, so data-src holds the real URL and is
	// preferred over src.
	imageRule = fieldRule{
		selectors: []string{
			"img.photo.mntl-image.universal-image__image.lazyloadwait.lazyloaded",
			"img.universal-image__image.lazyloadwait.lazyloaded",
			"img.primary-image__image.mntl-primary-image--blurry.loaded",
		},
		fallback: "Not Found",
	}
)

const (
	detailsContainerSelector = "div.mm-recipes-details__content"
	detailItemSelector       = "div.mm-recipes-details__item"
	detailLabelSelector      = "div.mm-recipes-details__label"
	detailValueSelector      = "div.mm-recipes-details__value"

	ingredientListSelector = "ul.mm-recipes-structured-ingredients__list"
	ingredientItemSelector = "li.mm-recipes-structured-ingredients__list-item"

	stepListSelector = "ol.comp.mntl-sc-block.mntl-sc-block-startgroup.mntl-sc-block-group--OL"
	stepItemSelector = "li.comp.mntl-sc-block.mntl-sc-block-startgroup.mntl-sc-block-group--LI"

	ingredientsFallback = "Ingredients not found"
)

type (
	Extractor interface {
		Extract(markup []byte) domain.ExtractedRecipe
	}

	recipeExtractor struct{}
)

func NewExtractor() Extractor {
	return &recipeExtractor{}
}

// Extract never fails: the page structure is outside our control, so missing
// elements degrade to fallback values instead of aborting the import.
func (e *recipeExtractor) Extract(markup []byte) domain.ExtractedRecipe {
	extracted := domain.ExtractedRecipe{
		Title:       titleRule.fallback,
		ImageURL:    imageRule.fallback,
		Ingredients: []string{},
		Details:     map[string]string{},
		Steps:       []domain.ExtractedStep{},
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		extracted.Ingredients = []string{ingredientsFallback}
		return extracted
	}

	extracted.Title = extractTitle(doc)
	extracted.Details = extractDetails(doc)
	extracted.ImageURL = extractImageURL(doc)
	extracted.Ingredients = extractIngredients(doc)
	extracted.Steps = extractSteps(doc)
	return extracted
}

func extractTitle(doc *goquery.Document) string {
	for _, selector := range titleRule.selectors {
		heading := doc.Find(selector).First()
		if heading.Length() > 0 {
			return strings.TrimSpace(heading.Text())
		}
	}
	return titleRule.fallback
}

// extractDetails turns the page's label/value pairs into a free-form map:
// "Prep Time" becomes the key prep_time.
func extractDetails(doc *goquery.Document) map[string]string {
	details := map[string]string{}

	container := doc.Find(detailsContainerSelector).First()
	if container.Length() == 0 {
		return details
	}

	container.Find(detailItemSelector).Each(func(_ int, item *goquery.Selection) {
		labelTag := item.Find(detailLabelSelector).First()
		valueTag := item.Find(detailValueSelector).First()
		// Presence of both tags is what counts; an empty value is stored.
		if labelTag.Length() == 0 || valueTag.Length() == 0 {
			return
		}
		label := strings.TrimSuffix(strings.TrimSpace(labelTag.Text()), ":")
		key := strings.ReplaceAll(strings.ToLower(label), " ", "_")
		details[key] = strings.TrimSpace(valueTag.Text())
	})

	return details
}

func extractImageURL(doc *goquery.Document) string {
	for _, selector := range imageRule.selectors {
		img := doc.Find(selector).First()
		if img.Length() == 0 {
			continue
		}
		if src, ok := img.Attr("data-src"); ok {
			return src
		}
		if src, ok := img.Attr("src"); ok {
			return src
		}
		break
	}
	return imageRule.fallback
}

func extractIngredients(doc *goquery.Document) []string {
	list := doc.Find(ingredientListSelector).First()
	if list.Length() == 0 {
		return []string{ingredientsFallback}
	}

	ingredients := []string{}
	list.Find(ingredientItemSelector).Each(func(_ int, item *goquery.Selection) {
		p := item.Find("p").First()
		if p.Length() == 0 {
			return
		}
		// Flatten quantity/unit/name fragments into one whitespace-joined string.
		text := strings.Join(strings.Fields(p.Text()), " ")
		if text != "" {
			ingredients = append(ingredients, text)
		}
	})
	return ingredients
}

func extractSteps(doc *goquery.Document) []domain.ExtractedStep {
	steps := []domain.ExtractedStep{}

	list := doc.Find(stepListSelector).First()
	if list.Length() == 0 {
		return steps
	}

	list.Find(stepItemSelector).Each(func(i int, item *goquery.Selection) {
		instruction := strings.TrimSpace(item.Find("p").First().Text())
		steps = append(steps, domain.ExtractedStep{
			StepNumber:  i + 1,
			Instruction: instruction,
		})
	})

	return steps
}
