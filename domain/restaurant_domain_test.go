package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRestaurantMessagesDefined(t *testing.T) {
	// Every restaurant operation has a success and a failure message for
	// the handlers to report.
	pairs := map[string]string{
		MessageSuccessCreateRestaurant: MessageFailedCreateRestaurant,
		MessageSuccessGetRestaurants:   MessageFailedGetRestaurants,
		MessageSuccessGetRecipesBrief:  MessageFailedGetRecipesBrief,
		MessageSuccessAddRecipe:        MessageFailedAddRecipe,
		MessageSuccessUploadImage:      MessageFailedUploadImage,
	}
	for success, failed := range pairs {
		assert.NotEmpty(t, success)
		assert.NotEmpty(t, failed)
	}
}
