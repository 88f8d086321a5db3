package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"photostore/internal/cache"
	"photostore/internal/models"
)

type CategoryHandler struct {
	categories CategoryStore
	cache      *cache.Cache
}

func NewCategoryHandler(categories CategoryStore, c *cache.Cache) *CategoryHandler {
	return &CategoryHandler{categories: categories, cache: c}
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var category models.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.categories.Create(c.Request.Context(), &category); err != nil {
		respondStoreError(c, err)
		return
	}
	respondData(c, http.StatusCreated, category)
}

func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.categories.FindAll(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondList(c, len(categories), categories)
}

func (h *CategoryHandler) GetCategory(c *gin.Context) {
	category, err := h.categories.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondData(c, http.StatusOK, category)
}

func (h *CategoryHandler) GetCategoryByName(c *gin.Context) {
	category, err := h.categories.FindByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondData(c, http.StatusOK, category)
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	var body struct {
		Name *string `json:"name"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if body.Name == nil {
		respondError(c, http.StatusBadRequest, "no valid fields to update")
		return
	}
	if len(*body.Name) < 3 || len(*body.Name) > 32 {
		respondError(c, http.StatusBadRequest, "category name must be 3 to 32 characters")
		return
	}

	fields := bson.M{"name": *body.Name, "slug": slug.Make(*body.Name)}
	if err := h.categories.Update(c.Request.Context(), c.Param("id"), fields); err != nil {
		respondStoreError(c, err)
		return
	}
	// Catalog listings denormalize category names.
	h.cache.DeleteByPrefix("products:")
	respondMessage(c, http.StatusOK, "category updated")
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	if err := h.categories.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondStoreError(c, err)
		return
	}
	h.cache.DeleteByPrefix("products:")
	c.Status(http.StatusNoContent)
}

type SubCategoryHandler struct {
	subcategories SubCategoryStore
	cache         *cache.Cache
}

func NewSubCategoryHandler(subcategories SubCategoryStore, c *cache.Cache) *SubCategoryHandler {
	return &SubCategoryHandler{subcategories: subcategories, cache: c}
}

// CreateSubCategory inserts the subcategory; the repository pushes it
// into the parent category's back-reference array.
func (h *SubCategoryHandler) CreateSubCategory(c *gin.Context) {
	var sub models.SubCategory
	if err := c.ShouldBindJSON(&sub); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if sub.Category.IsZero() {
		respondError(c, http.StatusBadRequest, "subcategory must belong to a parent category")
		return
	}
	if err := h.subcategories.Create(c.Request.Context(), &sub); err != nil {
		respondStoreError(c, err)
		return
	}
	h.cache.DeleteByPrefix("products:")
	respondData(c, http.StatusCreated, sub)
}

func (h *SubCategoryHandler) GetSubCategories(c *gin.Context) {
	subs, err := h.subcategories.FindAll(c.Request.Context(), c.Query("category"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondList(c, len(subs), subs)
}

func (h *SubCategoryHandler) GetSubCategory(c *gin.Context) {
	sub, err := h.subcategories.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondData(c, http.StatusOK, sub)
}

func (h *SubCategoryHandler) UpdateSubCategory(c *gin.Context) {
	var body struct {
		Name     *string             `json:"name"`
		Category *primitive.ObjectID `json:"category"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	fields := bson.M{}
	if body.Name != nil {
		fields["name"] = *body.Name
	}
	if body.Category != nil {
		fields["category"] = *body.Category
	}
	if len(fields) == 0 {
		respondError(c, http.StatusBadRequest, "no valid fields to update")
		return
	}

	if err := h.subcategories.Update(c.Request.Context(), c.Param("id"), fields); err != nil {
		respondStoreError(c, err)
		return
	}
	h.cache.DeleteByPrefix("products:")
	respondMessage(c, http.StatusOK, "subcategory updated")
}

// DeleteSubCategory removes the subcategory and its entry in the
// parent category. Products that still reference it are left with a
// dangling reference; there is no cascading delete.
func (h *SubCategoryHandler) DeleteSubCategory(c *gin.Context) {
	if err := h.subcategories.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondStoreError(c, err)
		return
	}
	h.cache.DeleteByPrefix("products:")
	c.Status(http.StatusNoContent)
}
