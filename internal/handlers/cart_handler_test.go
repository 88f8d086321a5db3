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

	"photostore/internal/images"
	"photostore/internal/models"
)

func cartRouter(t *testing.T, carts *fakeCartStore, products *fakeProductStore, sizes *fakeSizeStore, promotions *fakePromotionStore) *gin.Engine {
	t.Helper()
	proc, err := images.NewProcessor(t.TempDir())
	require.NoError(t, err)

	h := NewCartHandler(carts, products, sizes, promotions, proc)
	router := gin.New()
	router.POST("/panier", h.CreateCart)
	router.GET("/panier/user/:userId", h.GetCartsByUser)
	router.PUT("/panier/:id", h.UpdateCart)
	router.DELETE("/panier/:id", h.DeleteCart)
	return router
}

func TestCreateCartDerivesTotalFromPromotion(t *testing.T) {
	promotion := testPromotion("spring")
	product := &models.Product{
		ID:        primitive.NewObjectID(),
		Name:      "Photo Book",
		Price:     100,
		Promotion: &promotion.ID,
	}
	carts := newFakeCartStore()
	router := cartRouter(t, carts, newFakeProductStore(product), newFakeSizeStore(), newFakePromotionStore(promotion))

	body := gin.H{
		"user":     primitive.NewObjectID().Hex(),
		"product":  product.ID.Hex(),
		"quantite": 2,
	}
	w := performRequest(t, router, http.MethodPost, "/panier", body)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, carts.lines, 1)
	for _, line := range carts.lines {
		// 100 discounted by 20%, twice
		assert.Equal(t, 160.0, line.TotalPrice)
	}
}

func TestCreateCartIgnoresClientTotal(t *testing.T) {
	product := &models.Product{ID: primitive.NewObjectID(), Name: "Prints", Price: 25}
	carts := newFakeCartStore()
	router := cartRouter(t, carts, newFakeProductStore(product), newFakeSizeStore(), newFakePromotionStore())

	body := gin.H{
		"user":       primitive.NewObjectID().Hex(),
		"product":    product.ID.Hex(),
		"quantite":   1,
		"totalPrice": 1,
	}
	w := performRequest(t, router, http.MethodPost, "/panier", body)

	require.Equal(t, http.StatusCreated, w.Code)
	for _, line := range carts.lines {
		assert.Equal(t, 25.0, line.TotalPrice)
	}
}

func TestCreateCartUsesSizePrice(t *testing.T) {
	product := &models.Product{ID: primitive.NewObjectID(), Name: "Prints", Price: 10}
	size := &models.Size{
		ID:     primitive.NewObjectID(),
		Width:  30,
		Height: 45,
		Unit:   "cm",
		Price:  40,
		Format: primitive.NewObjectID(),
	}
	carts := newFakeCartStore()
	router := cartRouter(t, carts, newFakeProductStore(product), newFakeSizeStore(size), newFakePromotionStore())

	body := gin.H{
		"user":     primitive.NewObjectID().Hex(),
		"product":  product.ID.Hex(),
		"tailles":  size.ID.Hex(),
		"quantite": 3,
	}
	w := performRequest(t, router, http.MethodPost, "/panier", body)

	require.Equal(t, http.StatusCreated, w.Code)
	for _, line := range carts.lines {
		assert.Equal(t, 120.0, line.TotalPrice)
	}
}

func TestCreateCartDefaultsQuantityToOne(t *testing.T) {
	product := &models.Product{ID: primitive.NewObjectID(), Name: "Cards", Price: 8}
	carts := newFakeCartStore()
	router := cartRouter(t, carts, newFakeProductStore(product), newFakeSizeStore(), newFakePromotionStore())

	body := gin.H{
		"user":    primitive.NewObjectID().Hex(),
		"product": product.ID.Hex(),
	}
	w := performRequest(t, router, http.MethodPost, "/panier", body)

	require.Equal(t, http.StatusCreated, w.Code)
	for _, line := range carts.lines {
		assert.Equal(t, 1, line.Quantity)
		assert.Equal(t, 8.0, line.TotalPrice)
	}
}

func TestCreateCartUnknownProduct(t *testing.T) {
	router := cartRouter(t, newFakeCartStore(), newFakeProductStore(), newFakeSizeStore(), newFakePromotionStore())

	body := gin.H{
		"user":    primitive.NewObjectID().Hex(),
		"product": primitive.NewObjectID().Hex(),
	}
	w := performRequest(t, router, http.MethodPost, "/panier", body)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Product not found", decodeBody(t, w)["message"])
}

func TestCreateCartExpiredPromotionChargesFullPrice(t *testing.T) {
	promotion := testPromotion("over")
	promotion.StartDate = time.Now().Add(-48 * time.Hour)
	promotion.EndDate = time.Now().Add(-24 * time.Hour)
	product := &models.Product{
		ID:        primitive.NewObjectID(),
		Name:      "Calendar",
		Price:     50,
		Promotion: &promotion.ID,
	}
	carts := newFakeCartStore()
	router := cartRouter(t, carts, newFakeProductStore(product), newFakeSizeStore(), newFakePromotionStore(promotion))

	body := gin.H{
		"user":     primitive.NewObjectID().Hex(),
		"product":  product.ID.Hex(),
		"quantite": 1,
	}
	w := performRequest(t, router, http.MethodPost, "/panier", body)

	require.Equal(t, http.StatusCreated, w.Code)
	for _, line := range carts.lines {
		assert.Equal(t, 50.0, line.TotalPrice)
	}
}

func TestUpdateCartRejectsZeroQuantity(t *testing.T) {
	carts := newFakeCartStore()
	line := &models.CartLine{User: primitive.NewObjectID(), Product: primitive.NewObjectID(), Quantity: 2}
	require.NoError(t, carts.Create(context.Background(), line))
	router := cartRouter(t, carts, newFakeProductStore(), newFakeSizeStore(), newFakePromotionStore())

	w := performRequest(t, router, http.MethodPut, "/panier/"+line.ID.Hex(), gin.H{"quantite": 0})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 2, carts.lines[line.ID].Quantity)
}

func TestGetCartsByUserEmpty(t *testing.T) {
	router := cartRouter(t, newFakeCartStore(), newFakeProductStore(), newFakeSizeStore(), newFakePromotionStore())

	w := performRequest(t, router, http.MethodGet, "/panier/user/"+primitive.NewObjectID().Hex(), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteCart(t *testing.T) {
	carts := newFakeCartStore()
	line := &models.CartLine{User: primitive.NewObjectID(), Product: primitive.NewObjectID(), Quantity: 1}
	require.NoError(t, carts.Create(context.Background(), line))
	router := cartRouter(t, carts, newFakeProductStore(), newFakeSizeStore(), newFakePromotionStore())

	w := performRequest(t, router, http.MethodDelete, "/panier/"+line.ID.Hex(), nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, carts.lines)
}
