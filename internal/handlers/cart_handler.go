package handlers

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"photostore/internal/images"
	"photostore/internal/models"
	"photostore/internal/pricing"
)

type CartHandler struct {
	carts      CartStore
	products   ProductStore
	sizes      SizeStore
	promotions PromotionStore
	images     *images.Processor
}

func NewCartHandler(carts CartStore, products ProductStore, sizes SizeStore, promotions PromotionStore, proc *images.Processor) *CartHandler {
	return &CartHandler{
		carts:      carts,
		products:   products,
		sizes:      sizes,
		promotions: promotions,
		images:     proc,
	}
}

type createCartRequest struct {
	User     primitive.ObjectID  `json:"user" binding:"required"`
	Product  primitive.ObjectID  `json:"product" binding:"required"`
	Size     *primitive.ObjectID `json:"tailles"`
	Quantity int                 `json:"quantite"`
	Images   []string            `json:"images"`
}

// CreateCart adds one line to a user's cart. The line total is always
// derived server-side: effective unit price (size price when a size is
// given, product price otherwise, discounted by the active promotion)
// times quantity. Images arrive as base64 data URIs and are re-encoded
// to files before their names are stored.
func (h *CartHandler) CreateCart(c *gin.Context) {
	var req createCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	ctx := c.Request.Context()
	product, err := h.products.FindByID(ctx, req.Product.Hex())
	if err != nil {
		respondError(c, http.StatusNotFound, "Product not found")
		return
	}

	unit := product.Price
	promoRef := product.Promotion
	if req.Size != nil {
		size, err := h.sizes.FindByID(ctx, req.Size.Hex())
		if err != nil {
			respondError(c, http.StatusNotFound, "Size not found")
			return
		}
		unit = size.Price
		if size.Promotion != nil {
			promoRef = size.Promotion
		}
	}

	var promo *models.Promotion
	if promoRef != nil {
		if p, err := h.promotions.FindByID(ctx, promoRef.Hex()); err == nil {
			promo = p
		}
	}

	if len(req.Images) > 300 {
		respondError(c, http.StatusBadRequest, "too many images")
		return
	}
	var fileNames []string
	for i, data := range req.Images {
		raw, err := images.DecodeDataURI(data)
		if err != nil {
			continue
		}
		name, err := h.images.Save(bytes.NewReader(raw), "command", "command", strconv.Itoa(i+1))
		if err != nil {
			respondError(c, http.StatusInternalServerError, "image processing failed")
			return
		}
		fileNames = append(fileNames, name)
	}

	line := models.CartLine{
		User:       req.User,
		Product:    req.Product,
		Size:       req.Size,
		Quantity:   req.Quantity,
		TotalPrice: pricing.LineTotal(unit, promo, req.Quantity, time.Now()),
		Images:     fileNames,
	}
	if err := h.carts.Create(ctx, &line); err != nil {
		respondStoreError(c, err)
		return
	}
	respondData(c, http.StatusCreated, line)
}

func (h *CartHandler) GetCarts(c *gin.Context) {
	lines, err := h.carts.FindAll(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondList(c, len(lines), lines)
}

func (h *CartHandler) GetCart(c *gin.Context) {
	line, err := h.carts.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondData(c, http.StatusOK, line)
}

func (h *CartHandler) GetCartsByUser(c *gin.Context) {
	lines, err := h.carts.FindByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if len(lines) == 0 {
		respondError(c, http.StatusNotFound, "No cart lines found for this user")
		return
	}
	respondList(c, len(lines), lines)
}

// UpdateCart mutates quantity and total price only; snapshot images
// are kept as stored.
func (h *CartHandler) UpdateCart(c *gin.Context) {
	var body struct {
		Quantity   *int     `json:"quantite"`
		TotalPrice *float64 `json:"totalPrice"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if body.Quantity != nil && *body.Quantity < 1 {
		respondError(c, http.StatusBadRequest, "quantite must be at least 1")
		return
	}

	line, err := h.carts.Update(c.Request.Context(), c.Param("id"), body.Quantity, body.TotalPrice)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondData(c, http.StatusOK, line)
}

func (h *CartHandler) DeleteCart(c *gin.Context) {
	if err := h.carts.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondStoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
