package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"photostore/internal/cache"
	"photostore/internal/models"
)

type FormatHandler struct {
	formats FormatStore
	cache   *cache.Cache
}

func NewFormatHandler(formats FormatStore, c *cache.Cache) *FormatHandler {
	return &FormatHandler{formats: formats, cache: c}
}

func (h *FormatHandler) CreateFormat(c *gin.Context) {
	var format models.Format
	if err := c.ShouldBindJSON(&format); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.formats.Create(c.Request.Context(), &format); err != nil {
		respondStoreError(c, err)
		return
	}
	// Catalog listings embed formats with their sizes.
	h.cache.DeleteByPrefix("products:")
	respondData(c, http.StatusCreated, format)
}

func (h *FormatHandler) GetFormats(c *gin.Context) {
	formats, err := h.formats.FindAll(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondList(c, len(formats), formats)
}

// GetFormat returns the format with its sizes resolved.
func (h *FormatHandler) GetFormat(c *gin.Context) {
	format, err := h.formats.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondData(c, http.StatusOK, format)
}

func (h *FormatHandler) UpdateFormat(c *gin.Context) {
	var body struct {
		Type *string `json:"type"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if body.Type == nil || *body.Type == "" {
		respondError(c, http.StatusBadRequest, "no valid fields to update")
		return
	}
	if err := h.formats.Update(c.Request.Context(), c.Param("id"), bson.M{"type": *body.Type}); err != nil {
		respondStoreError(c, err)
		return
	}
	h.cache.DeleteByPrefix("products:")
	respondMessage(c, http.StatusOK, "format updated")
}

func (h *FormatHandler) DeleteFormat(c *gin.Context) {
	if err := h.formats.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondStoreError(c, err)
		return
	}
	h.cache.DeleteByPrefix("products:")
	c.Status(http.StatusNoContent)
}

type SizeHandler struct {
	sizes SizeStore
	cache *cache.Cache
}

func NewSizeHandler(sizes SizeStore, c *cache.Cache) *SizeHandler {
	return &SizeHandler{sizes: sizes, cache: c}
}

func (h *SizeHandler) CreateSize(c *gin.Context) {
	var size models.Size
	if err := c.ShouldBindJSON(&size); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if size.Format.IsZero() {
		respondError(c, http.StatusBadRequest, "size must belong to a format")
		return
	}
	if size.Width <= 0 || size.Height <= 0 {
		respondError(c, http.StatusBadRequest, "width and height must be positive")
		return
	}
	if size.Price < 0 {
		respondError(c, http.StatusBadRequest, "price must not be negative")
		return
	}
	if err := h.sizes.Create(c.Request.Context(), &size); err != nil {
		respondStoreError(c, err)
		return
	}
	h.cache.DeleteByPrefix("products:")
	respondData(c, http.StatusCreated, size)
}

func (h *SizeHandler) GetSizes(c *gin.Context) {
	sizes, err := h.sizes.FindAll(c.Request.Context(), c.Query("format"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondList(c, len(sizes), sizes)
}

func (h *SizeHandler) GetSize(c *gin.Context) {
	size, err := h.sizes.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondData(c, http.StatusOK, size)
}

func (h *SizeHandler) UpdateSize(c *gin.Context) {
	var body struct {
		Width  *float64 `json:"width"`
		Height *float64 `json:"height"`
		Unit   *string  `json:"unit"`
		Price  *float64 `json:"price"`
		Image  *string  `json:"image"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	fields := bson.M{}
	if body.Width != nil {
		if *body.Width <= 0 {
			respondError(c, http.StatusBadRequest, "width must be positive")
			return
		}
		fields["width"] = *body.Width
	}
	if body.Height != nil {
		if *body.Height <= 0 {
			respondError(c, http.StatusBadRequest, "height must be positive")
			return
		}
		fields["height"] = *body.Height
	}
	if body.Unit != nil {
		switch *body.Unit {
		case "cm", "m", "inches":
			fields["unit"] = *body.Unit
		default:
			respondError(c, http.StatusBadRequest, "unit must be one of cm, m, inches")
			return
		}
	}
	if body.Price != nil {
		if *body.Price < 0 {
			respondError(c, http.StatusBadRequest, "price must not be negative")
			return
		}
		fields["price"] = *body.Price
	}
	if body.Image != nil {
		fields["image"] = *body.Image
	}
	if len(fields) == 0 {
		respondError(c, http.StatusBadRequest, "no valid fields to update")
		return
	}

	if err := h.sizes.Update(c.Request.Context(), c.Param("id"), fields); err != nil {
		respondStoreError(c, err)
		return
	}
	h.cache.DeleteByPrefix("products:")
	respondMessage(c, http.StatusOK, "size updated")
}

func (h *SizeHandler) DeleteSize(c *gin.Context) {
	if err := h.sizes.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondStoreError(c, err)
		return
	}
	h.cache.DeleteByPrefix("products:")
	c.Status(http.StatusNoContent)
}
