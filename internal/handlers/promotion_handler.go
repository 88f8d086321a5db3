package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"photostore/internal/cache"
	"photostore/internal/models"
)

type PromotionHandler struct {
	promotions PromotionStore
	products   ProductStore
	sizes      SizeStore
	cache      *cache.Cache
}

func NewPromotionHandler(promotions PromotionStore, products ProductStore, sizes SizeStore, c *cache.Cache) *PromotionHandler {
	return &PromotionHandler{
		promotions: promotions,
		products:   products,
		sizes:      sizes,
		cache:      c,
	}
}

// Cached catalog listings embed the effective price, so every write
// that can change a discount drops them.
func (h *PromotionHandler) invalidateCatalog() {
	h.cache.DeleteByPrefix("products:")
}

// CreatePromotion validates the percentage range and date ordering
// before anything is written; the calculator relies on that.
func (h *PromotionHandler) CreatePromotion(c *gin.Context) {
	var promotion models.Promotion
	if err := c.ShouldBindJSON(&promotion); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := promotion.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.promotions.Create(c.Request.Context(), &promotion); err != nil {
		respondStoreError(c, err)
		return
	}
	respondData(c, http.StatusCreated, promotion)
}

// GetPromotionsWithDetails joins every promotion with its attached
// products and sizes.
func (h *PromotionHandler) GetPromotionsWithDetails(c *gin.Context) {
	details, err := h.promotions.FindAllWithDetails(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondList(c, len(details), details)
}

func (h *PromotionHandler) GetPromotion(c *gin.Context) {
	promotion, err := h.promotions.FindByID(c.Request.Context(), c.Param("promotionId"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondData(c, http.StatusOK, promotion)
}

func (h *PromotionHandler) UpdatePromotion(c *gin.Context) {
	var body struct {
		Name               *string    `json:"name"`
		DiscountPercentage *float64   `json:"discountPercentage"`
		StartDate          *time.Time `json:"startDate"`
		EndDate            *time.Time `json:"endDate"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	fields := bson.M{}
	if body.Name != nil {
		fields["name"] = *body.Name
	}
	if body.DiscountPercentage != nil {
		if *body.DiscountPercentage < 0 || *body.DiscountPercentage > 100 {
			respondError(c, http.StatusBadRequest, "discountPercentage must be between 0 and 100")
			return
		}
		fields["discountPercentage"] = *body.DiscountPercentage
	}
	if body.StartDate != nil {
		fields["startDate"] = *body.StartDate
	}
	if body.EndDate != nil {
		fields["endDate"] = *body.EndDate
	}
	if body.StartDate != nil || body.EndDate != nil {
		// A single-date update must not invert the stored window, so
		// the check runs against the merged pair.
		current, err := h.promotions.FindByID(c.Request.Context(), c.Param("promotionId"))
		if err != nil {
			respondStoreError(c, err)
			return
		}
		start, end := current.StartDate, current.EndDate
		if body.StartDate != nil {
			start = *body.StartDate
		}
		if body.EndDate != nil {
			end = *body.EndDate
		}
		if !end.After(start) {
			respondError(c, http.StatusBadRequest, "endDate must be after startDate")
			return
		}
	}
	if len(fields) == 0 {
		respondError(c, http.StatusBadRequest, "no valid fields to update")
		return
	}

	if err := h.promotions.Update(c.Request.Context(), c.Param("promotionId"), fields); err != nil {
		respondStoreError(c, err)
		return
	}
	h.invalidateCatalog()
	respondMessage(c, http.StatusOK, "promotion updated")
}

func (h *PromotionHandler) DeletePromotion(c *gin.Context) {
	if err := h.promotions.Delete(c.Request.Context(), c.Param("promotionId")); err != nil {
		respondStoreError(c, err)
		return
	}
	h.invalidateCatalog()
	respondMessage(c, http.StatusOK, "promotion deleted")
}

// AttachToProduct links a promotion to a product. A previously
// attached promotion is detached first so no stale back-reference
// survives, and $addToSet semantics make repeated attaches a no-op.
func (h *PromotionHandler) AttachToProduct(c *gin.Context) {
	ctx := c.Request.Context()
	productID := c.Param("productId")

	product, err := h.products.FindByID(ctx, productID)
	if err != nil {
		respondError(c, http.StatusNotFound, "Product or Promotion not found")
		return
	}
	promotion, err := h.promotions.FindByID(ctx, c.Param("promotionId"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Product or Promotion not found")
		return
	}

	if product.Promotion != nil && *product.Promotion != promotion.ID {
		if err := h.promotions.RemoveProduct(ctx, *product.Promotion, product.ID); err != nil {
			respondStoreError(c, err)
			return
		}
	}
	if err := h.products.SetPromotion(ctx, productID, &promotion.ID); err != nil {
		respondStoreError(c, err)
		return
	}
	if err := h.promotions.AddProduct(ctx, promotion.ID, product.ID); err != nil {
		respondStoreError(c, err)
		return
	}

	h.invalidateCatalog()
	product.Promotion = &promotion.ID
	respondData(c, http.StatusOK, product)
}

// DetachFromProduct removes both the forward reference and the
// back-reference entry.
func (h *PromotionHandler) DetachFromProduct(c *gin.Context) {
	ctx := c.Request.Context()

	product, err := h.products.FindByID(ctx, c.Param("productId"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	promotion, err := h.promotions.FindByID(ctx, c.Param("promotionId"))
	if err != nil {
		respondStoreError(c, err)
		return
	}

	if err := h.products.SetPromotion(ctx, product.ID.Hex(), nil); err != nil {
		respondStoreError(c, err)
		return
	}
	if err := h.promotions.RemoveProduct(ctx, promotion.ID, product.ID); err != nil {
		respondStoreError(c, err)
		return
	}

	h.invalidateCatalog()
	product.Promotion = nil
	respondData(c, http.StatusOK, product)
}

// AttachToSize mirrors AttachToProduct for sizes.
func (h *PromotionHandler) AttachToSize(c *gin.Context) {
	ctx := c.Request.Context()
	sizeID := c.Param("tailleId")

	size, err := h.sizes.FindByID(ctx, sizeID)
	if err != nil {
		respondError(c, http.StatusNotFound, "Size or Promotion not found")
		return
	}
	promotion, err := h.promotions.FindByID(ctx, c.Param("promotionId"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Size or Promotion not found")
		return
	}

	if size.Promotion != nil && *size.Promotion != promotion.ID {
		if err := h.promotions.RemoveSize(ctx, *size.Promotion, size.ID); err != nil {
			respondStoreError(c, err)
			return
		}
	}
	if err := h.sizes.SetPromotion(ctx, sizeID, &promotion.ID); err != nil {
		respondStoreError(c, err)
		return
	}
	if err := h.promotions.AddSize(ctx, promotion.ID, size.ID); err != nil {
		respondStoreError(c, err)
		return
	}

	h.invalidateCatalog()
	size.Promotion = &promotion.ID
	respondData(c, http.StatusOK, size)
}

func (h *PromotionHandler) DetachFromSize(c *gin.Context) {
	ctx := c.Request.Context()

	size, err := h.sizes.FindByID(ctx, c.Param("tailleId"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	promotion, err := h.promotions.FindByID(ctx, c.Param("promotionId"))
	if err != nil {
		respondStoreError(c, err)
		return
	}

	if err := h.sizes.SetPromotion(ctx, size.ID.Hex(), nil); err != nil {
		respondStoreError(c, err)
		return
	}
	if err := h.promotions.RemoveSize(ctx, promotion.ID, size.ID); err != nil {
		respondStoreError(c, err)
		return
	}

	h.invalidateCatalog()
	size.Promotion = nil
	respondData(c, http.StatusOK, size)
}
