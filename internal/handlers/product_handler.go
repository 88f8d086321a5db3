package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/bson"

	"photostore/internal/cache"
	"photostore/internal/images"
	"photostore/internal/models"
	"photostore/internal/pricing"
)

type ProductHandler struct {
	products   ProductStore
	promotions PromotionStore
	cache      *cache.Cache
	images     *images.Processor
	baseURL    string
}

func NewProductHandler(products ProductStore, promotions PromotionStore, c *cache.Cache, proc *images.Processor, baseURL string) *ProductHandler {
	return &ProductHandler{
		products:   products,
		promotions: promotions,
		cache:      c,
		images:     proc,
		baseURL:    baseURL,
	}
}

// imageURL resolves a stored cover filename against the public base
// URL. Only the bare name is persisted; responses carry the address
// clients can fetch from the static /uploads route.
func (h *ProductHandler) imageURL(name string) string {
	if name == "" || h.baseURL == "" || strings.Contains(name, "://") {
		return name
	}
	return h.baseURL + "/uploads/products/" + name
}

// CreateProduct accepts either a JSON body or a multipart form with a
// "product" JSON field plus imageCover / images file fields. Uploaded
// pictures are re-encoded before their filenames land on the product.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var product models.Product

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if err := json.Unmarshal([]byte(c.PostForm("product")), &product); err != nil {
			respondError(c, http.StatusBadRequest, "invalid product payload: "+err.Error())
			return
		}
		if err := h.attachUploads(c, &product); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
	} else if err := c.ShouldBindJSON(&product); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if product.Name == "" {
		respondError(c, http.StatusBadRequest, "name required")
		return
	}
	if product.Price < 0 {
		respondError(c, http.StatusBadRequest, "price cannot be negative")
		return
	}
	if err := product.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.products.Create(c.Request.Context(), &product); err != nil {
		respondStoreError(c, err)
		return
	}

	h.cache.DeleteByPrefix("products:")
	product.ImageCover = h.imageURL(product.ImageCover)
	respondData(c, http.StatusCreated, product)
}

func (h *ProductHandler) attachUploads(c *gin.Context, product *models.Product) error {
	form, err := c.MultipartForm()
	if err != nil {
		return err
	}
	if covers := form.File["imageCover"]; len(covers) > 0 {
		name, err := h.images.SaveUpload(covers[0], "products", "product", "cover")
		if err != nil {
			return err
		}
		product.ImageCover = name
	}
	for i, fh := range form.File["images"] {
		if i >= 5 {
			break
		}
		name, err := h.images.SaveUpload(fh, "products", "product", strconv.Itoa(i+1))
		if err != nil {
			return err
		}
		product.Images = append(product.Images, name)
	}
	return nil
}

// GetProducts serves the detailed catalog listing with slug,
// subcategory-name and category-name filters plus pagination.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	page, limit := paginationParams(c)
	q := models.CatalogQuery{
		Slug:            c.Query("slug"),
		SubCategoryName: c.Query("sousCategoryName"),
		CategoryName:    c.Query("category"),
		Page:            page,
		Limit:           limit,
	}
	if sort := c.Query("sort"); sort != "" {
		field, order, _ := strings.Cut(sort, ":")
		q.SortField = field
		q.SortAsc = order != "desc"
	}

	cacheKey := fmt.Sprintf("products:list:%s|%s|%s|%d|%d|%s|%v",
		q.Slug, q.SubCategoryName, q.CategoryName, q.Page, q.Limit, q.SortField, q.SortAsc)
	if cached, found := h.cache.Get(cacheKey); found {
		c.JSON(http.StatusOK, cached)
		return
	}

	details, total, err := h.products.ListDetailed(c.Request.Context(), q)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	for i := range details {
		details[i].ImageCover = h.imageURL(details[i].ImageCover)
	}

	response := gin.H{
		"status":     "success",
		"results":    len(details),
		"page":       page,
		"totalPages": totalPages(total, limit),
		"data":       details,
	}
	h.cache.Set(cacheKey, response, 2*time.Minute)
	c.JSON(http.StatusOK, response)
}

// GetProduct returns one product with its effective price attached.
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.products.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}

	var promo *models.Promotion
	if product.Promotion != nil {
		promo, err = h.promotions.FindByID(c.Request.Context(), product.Promotion.Hex())
		if err != nil {
			promo = nil
		}
	}
	discounted := pricing.Discounted(product.Price, promo, time.Now())
	product.ImageCover = h.imageURL(product.ImageCover)

	respondData(c, http.StatusOK, gin.H{
		"product":         product,
		"promotion":       promo,
		"discountedPrice": discounted,
	})
}

// UpdateProduct applies a partial update; fields absent in the body
// keep their stored values.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var update models.ProductUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	fields := bson.M{}
	if update.Name != nil {
		fields["name"] = *update.Name
		fields["slug"] = slug.Make(*update.Name)
	}
	if update.Price != nil {
		if *update.Price < 0 {
			respondError(c, http.StatusBadRequest, "price cannot be negative")
			return
		}
		fields["price"] = *update.Price
	}
	if update.Description != nil {
		fields["description"] = *update.Description
	}
	if update.PriceAfterDiscount != nil {
		fields["priceAfterDiscount"] = *update.PriceAfterDiscount
	}
	if update.SubCategory != nil {
		fields["sousCategorie"] = *update.SubCategory
	}
	if update.ImageCover != nil {
		fields["imageCover"] = *update.ImageCover
	}
	if update.Images != nil {
		fields["images"] = update.Images
	}
	if update.Formats != nil {
		fields["formats"] = update.Formats
	}
	if update.PhotoBook != nil {
		fields["photoBook"] = update.PhotoBook
	}
	if update.Calendar != nil {
		fields["calendar"] = update.Calendar
	}
	if update.Cards != nil {
		fields["cards"] = update.Cards
	}
	if update.GiftPhoto != nil {
		fields["giftPhoto"] = update.GiftPhoto
	}
	if update.Print != nil {
		fields["print"] = update.Print
	}
	if len(fields) == 0 {
		respondError(c, http.StatusBadRequest, "no valid fields to update")
		return
	}

	if err := h.products.Update(c.Request.Context(), c.Param("id"), fields); err != nil {
		respondStoreError(c, err)
		return
	}

	h.cache.DeleteByPrefix("products:")
	respondMessage(c, http.StatusOK, "product updated")
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.products.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondStoreError(c, err)
		return
	}
	h.cache.DeleteByPrefix("products:")
	respondMessage(c, http.StatusOK, "product deleted")
}

// ListKind serves the per-variant listing routes.
func (h *ProductHandler) ListKind(kind models.ProductKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := paginationParams(c)
		products, total, err := h.products.List(c.Request.Context(), kind, page, limit)
		if err != nil {
			respondStoreError(c, err)
			return
		}
		for i := range products {
			products[i].ImageCover = h.imageURL(products[i].ImageCover)
		}
		c.JSON(http.StatusOK, gin.H{
			"status":     "success",
			"results":    len(products),
			"page":       page,
			"totalPages": totalPages(total, limit),
			"data":       products,
		})
	}
}

// CreateKind forces the variant kind before the usual creation path.
func (h *ProductHandler) CreateKind(kind models.ProductKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := c.ShouldBindJSON(&product); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		product.Kind = kind
		if err := product.Validate(); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		if err := h.products.Create(c.Request.Context(), &product); err != nil {
			respondStoreError(c, err)
			return
		}
		h.cache.DeleteByPrefix("products:")
		product.ImageCover = h.imageURL(product.ImageCover)
		respondData(c, http.StatusCreated, product)
	}
}
