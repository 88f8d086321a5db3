package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"photostore/internal/cache"
	"photostore/internal/handlers"
	"photostore/internal/images"
	"photostore/internal/models"
	"photostore/internal/repository"
)

// RegisterRoutes wires the repositories, handlers and shared services
// onto the router. Processed images are served from uploadDir under
// /uploads; baseURL is the public address clients resolve image names
// against.
func RegisterRoutes(router *gin.Engine, db *mongo.Database, proc *images.Processor, uploadDir, baseURL string) {
	responseCache := cache.New(5 * time.Minute)

	products := repository.NewProductRepository(db)
	categories := repository.NewCategoryRepository(db)
	subcategories := repository.NewSubCategoryRepository(db)
	formats := repository.NewFormatRepository(db)
	sizes := repository.NewSizeRepository(db)
	promotions := repository.NewPromotionRepository(db)
	carts := repository.NewCartRepository(db)
	orders := repository.NewOrderRepository(db)
	deliveries := repository.NewDeliveryRepository(db)
	payments := repository.NewPaymentRepository(db)

	productHandler := handlers.NewProductHandler(products, promotions, responseCache, proc, baseURL)
	categoryHandler := handlers.NewCategoryHandler(categories, responseCache)
	subCategoryHandler := handlers.NewSubCategoryHandler(subcategories, responseCache)
	formatHandler := handlers.NewFormatHandler(formats, responseCache)
	sizeHandler := handlers.NewSizeHandler(sizes, responseCache)
	promotionHandler := handlers.NewPromotionHandler(promotions, products, sizes, responseCache)
	cartHandler := handlers.NewCartHandler(carts, products, sizes, promotions, proc)
	orderHandler := handlers.NewOrderHandler(orders)
	deliveryHandler := handlers.NewDeliveryHandler(deliveries)
	paymentHandler := handlers.NewPaymentHandler(payments)

	router.Static("/uploads", uploadDir)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/products", productHandler.CreateProduct)
		v1.GET("/products", productHandler.GetProducts)
		v1.GET("/products/:id", productHandler.GetProduct)
		v1.PUT("/products/:id", productHandler.UpdateProduct)
		v1.DELETE("/products/:id", productHandler.DeleteProduct)

		// Variant collections share the product store, narrowed by kind.
		variants := map[string]models.ProductKind{
			"photobooks": models.KindPhotoBook,
			"calendars":  models.KindCalendar,
			"cards":      models.KindCards,
			"giftphotos": models.KindGiftPhoto,
			"prints":     models.KindPrint,
		}
		for path, kind := range variants {
			v1.GET("/"+path, productHandler.ListKind(kind))
			v1.POST("/"+path, productHandler.CreateKind(kind))
			v1.GET("/"+path+"/:id", productHandler.GetProduct)
			v1.PUT("/"+path+"/:id", productHandler.UpdateProduct)
			v1.DELETE("/"+path+"/:id", productHandler.DeleteProduct)
		}

		v1.POST("/categories", categoryHandler.CreateCategory)
		v1.GET("/categories", categoryHandler.GetCategories)
		v1.GET("/categories/name/:name", categoryHandler.GetCategoryByName)
		v1.GET("/categories/:id", categoryHandler.GetCategory)
		v1.PUT("/categories/:id", categoryHandler.UpdateCategory)
		v1.DELETE("/categories/:id", categoryHandler.DeleteCategory)

		v1.POST("/subcategories", subCategoryHandler.CreateSubCategory)
		v1.GET("/subcategories", subCategoryHandler.GetSubCategories)
		v1.GET("/subcategories/:id", subCategoryHandler.GetSubCategory)
		v1.PUT("/subcategories/:id", subCategoryHandler.UpdateSubCategory)
		v1.DELETE("/subcategories/:id", subCategoryHandler.DeleteSubCategory)

		v1.POST("/formats", formatHandler.CreateFormat)
		v1.GET("/formats", formatHandler.GetFormats)
		v1.GET("/formats/:id", formatHandler.GetFormat)
		v1.PUT("/formats/:id", formatHandler.UpdateFormat)
		v1.DELETE("/formats/:id", formatHandler.DeleteFormat)

		v1.POST("/tailles", sizeHandler.CreateSize)
		v1.GET("/tailles", sizeHandler.GetSizes)
		v1.GET("/tailles/:id", sizeHandler.GetSize)
		v1.PUT("/tailles/:id", sizeHandler.UpdateSize)
		v1.DELETE("/tailles/:id", sizeHandler.DeleteSize)

		v1.POST("/promotions", promotionHandler.CreatePromotion)
		v1.GET("/promotions", promotionHandler.GetPromotionsWithDetails)
		v1.GET("/promotions/:promotionId", promotionHandler.GetPromotion)
		v1.PUT("/promotions/:promotionId", promotionHandler.UpdatePromotion)
		v1.DELETE("/promotions/:promotionId", promotionHandler.DeletePromotion)
		v1.POST("/promotions/:promotionId/products/:productId", promotionHandler.AttachToProduct)
		v1.DELETE("/promotions/:promotionId/products/:productId", promotionHandler.DetachFromProduct)
		v1.POST("/promotions/:promotionId/tailles/:tailleId", promotionHandler.AttachToSize)
		v1.DELETE("/promotions/:promotionId/tailles/:tailleId", promotionHandler.DetachFromSize)

		v1.POST("/panier", cartHandler.CreateCart)
		v1.GET("/panier", cartHandler.GetCarts)
		v1.GET("/panier/user/:userId", cartHandler.GetCartsByUser)
		v1.GET("/panier/:id", cartHandler.GetCart)
		v1.PUT("/panier/:id", cartHandler.UpdateCart)
		v1.DELETE("/panier/:id", cartHandler.DeleteCart)

		v1.POST("/command", orderHandler.CreateOrder)
		v1.GET("/command", orderHandler.GetOrders)
		v1.GET("/command/user/:userId", orderHandler.GetOrdersByUser)
		v1.GET("/command/suivi/:codeSuivi", orderHandler.GetOrderByTrackingCode)
		v1.GET("/command/:id", orderHandler.GetOrder)
		v1.PUT("/command/:id", orderHandler.UpdateOrder)
		v1.DELETE("/command/:id", orderHandler.DeleteOrder)

		v1.POST("/delivery", deliveryHandler.CreateDelivery)
		v1.GET("/delivery", deliveryHandler.GetDeliveries)
		v1.GET("/delivery/:id", deliveryHandler.GetDelivery)
		v1.PUT("/delivery/:id", deliveryHandler.UpdateDelivery)
		v1.DELETE("/delivery/:id", deliveryHandler.DeleteDelivery)

		v1.POST("/payment", paymentHandler.CreatePayment)
		v1.GET("/payment", paymentHandler.GetPayments)
		v1.GET("/payment/:id", paymentHandler.GetPayment)
		v1.DELETE("/payment/:id", paymentHandler.DeletePayment)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "route not found: " + c.Request.URL.Path,
		})
	})
}
