package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectivePrice(t *testing.T) {
	product := &Product{Price: 2000}
	assert.Equal(t, 2000.0, product.EffectivePrice())

	product.DiscountPercentage = discount(25)
	assert.Equal(t, 1500.0, product.EffectivePrice())

	product.DiscountPercentage = discount(0)
	assert.Equal(t, 2000.0, product.EffectivePrice())

	product.DiscountPercentage = discount(100)
	assert.Equal(t, 0.0, product.EffectivePrice())
}

func TestProductCategoryIsValid(t *testing.T) {
	for _, category := range AllCategories {
		assert.True(t, category.IsValid(), string(category))
	}
	assert.False(t, ProductCategory("furniture").IsValid())
	assert.False(t, ProductCategory("").IsValid())
}

func TestImagesJSONRoundTrip(t *testing.T) {
	product := &Product{Images: []string{"/uploads/products/a.jpg", "/uploads/products/b.jpg"}}

	data, err := product.GetImagesJSON()
	assert.NoError(t, err)

	restored := &Product{}
	assert.NoError(t, restored.SetImagesFromJSON(data))
	assert.Equal(t, product.Images, restored.Images)
}

func TestImagesJSONEmpty(t *testing.T) {
	product := &Product{}
	data, err := product.GetImagesJSON()
	assert.NoError(t, err)
	assert.Equal(t, "[]", data)

	restored := &Product{}
	assert.NoError(t, restored.SetImagesFromJSON(""))
	assert.Empty(t, restored.Images)
}
