package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"photostore/internal/cache"
	"photostore/internal/models"
)

func taxonomyRouter(categories *fakeCategoryStore, subs *fakeSubCategoryStore) (*gin.Engine, *cache.Cache) {
	responseCache := cache.New(time.Minute)
	categoryHandler := NewCategoryHandler(categories, responseCache)
	subHandler := NewSubCategoryHandler(subs, responseCache)

	router := gin.New()
	router.POST("/categories", categoryHandler.CreateCategory)
	router.GET("/categories", categoryHandler.GetCategories)
	router.GET("/categories/name/:name", categoryHandler.GetCategoryByName)
	router.GET("/categories/:id", categoryHandler.GetCategory)
	router.PUT("/categories/:id", categoryHandler.UpdateCategory)
	router.DELETE("/categories/:id", categoryHandler.DeleteCategory)
	router.POST("/subcategories", subHandler.CreateSubCategory)
	router.GET("/subcategories", subHandler.GetSubCategories)
	router.DELETE("/subcategories/:id", subHandler.DeleteSubCategory)
	return router, responseCache
}

func testCategory(name string) *models.Category {
	return &models.Category{
		ID:            primitive.NewObjectID(),
		Name:          name,
		SubCategories: []primitive.ObjectID{},
	}
}

func TestCreateCategorySlugifiesName(t *testing.T) {
	categories := newFakeCategoryStore()
	router, _ := taxonomyRouter(categories, newFakeSubCategoryStore(categories))

	w := performRequest(t, router, http.MethodPost, "/categories", gin.H{"name": "Grand Format"})

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, categories.categories, 1)
	for _, category := range categories.categories {
		assert.Equal(t, "grand-format", category.Slug)
	}
}

func TestGetCategoryByNameIsCaseInsensitive(t *testing.T) {
	category := testCategory("Tirages")
	categories := newFakeCategoryStore(category)
	router, _ := taxonomyRouter(categories, newFakeSubCategoryStore(categories))

	w := performRequest(t, router, http.MethodGet, "/categories/name/tirages", nil)

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "Tirages", data["name"])
}

func TestUpdateCategoryValidatesNameLength(t *testing.T) {
	category := testCategory("Tirages")
	categories := newFakeCategoryStore(category)
	router, _ := taxonomyRouter(categories, newFakeSubCategoryStore(categories))

	w := performRequest(t, router, http.MethodPut, "/categories/"+category.ID.Hex(), gin.H{"name": "ab"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(t, router, http.MethodPut, "/categories/"+category.ID.Hex(), gin.H{"name": "Grands Tirages"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "grands-tirages", categories.categories[category.ID].Slug)
}

func TestCreateSubCategoryPushesIntoParent(t *testing.T) {
	category := testCategory("Tirages")
	categories := newFakeCategoryStore(category)
	subs := newFakeSubCategoryStore(categories)
	router, _ := taxonomyRouter(categories, subs)

	body := gin.H{"name": "Posters", "category": category.ID.Hex()}
	w := performRequest(t, router, http.MethodPost, "/subcategories", body)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, subs.subs, 1)
	for id := range subs.subs {
		assert.True(t, contains(categories.categories[category.ID].SubCategories, id))
	}
}

func TestCreateSubCategoryRequiresParent(t *testing.T) {
	categories := newFakeCategoryStore()
	subs := newFakeSubCategoryStore(categories)
	router, _ := taxonomyRouter(categories, subs)

	w := performRequest(t, router, http.MethodPost, "/subcategories", gin.H{"name": "Orphan"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, subs.subs)
}

func TestDeleteSubCategoryLeavesProductRefsDangling(t *testing.T) {
	category := testCategory("Tirages")
	categories := newFakeCategoryStore(category)
	subs := newFakeSubCategoryStore(categories)
	router, _ := taxonomyRouter(categories, subs)

	sub := &models.SubCategory{Name: "Posters", Category: category.ID}
	require.NoError(t, subs.Create(context.Background(), sub))

	product := &models.Product{
		ID:          primitive.NewObjectID(),
		Name:        "Poster",
		Price:       12,
		SubCategory: &sub.ID,
	}
	products := newFakeProductStore(product)

	w := performRequest(t, router, http.MethodDelete, "/subcategories/"+sub.ID.Hex(), nil)

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.NotContains(t, subs.subs, sub.ID)
	assert.False(t, contains(categories.categories[category.ID].SubCategories, sub.ID))
	// no cascading delete: the product keeps its forward reference
	require.NotNil(t, products.products[product.ID].SubCategory)
	assert.Equal(t, sub.ID, *products.products[product.ID].SubCategory)
}

func TestCategoryUpdateInvalidatesCatalogCache(t *testing.T) {
	category := testCategory("Tirages")
	categories := newFakeCategoryStore(category)
	router, responseCache := taxonomyRouter(categories, newFakeSubCategoryStore(categories))

	responseCache.Set("products:list:all", gin.H{}, time.Minute)
	w := performRequest(t, router, http.MethodPut, "/categories/"+category.ID.Hex(), gin.H{"name": "Affiches"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, responseCache.Size())
}
