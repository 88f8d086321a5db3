package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"photostore/internal/models"
)

type OrderHandler struct {
	orders OrderStore
}

func NewOrderHandler(orders OrderStore) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// CreateOrder snapshots the submitted cart lines into an immutable
// order. The total price is taken as supplied and not recomputed from
// the lines. A tracking code is generated when none is given.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var order models.Order
	if err := c.ShouldBindJSON(&order); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if len(order.Lines) == 0 {
		respondError(c, http.StatusBadRequest, "panier must not be empty")
		return
	}

	if order.DeliveryStatus == "" {
		order.DeliveryStatus = models.StatusPending
	} else if !order.DeliveryStatus.Valid() {
		respondError(c, http.StatusBadRequest, "invalid etatLivraison")
		return
	}
	if order.PaymentMethod == "" {
		order.PaymentMethod = models.PayCash
	}
	if order.TaxPrice == 0 {
		order.TaxPrice = models.DefaultTaxPrice
	}
	if order.TrackingCode == "" {
		order.TrackingCode = uuid.NewString()
	}
	for i := range order.Lines {
		if order.Lines[i].Quantity < 1 {
			order.Lines[i].Quantity = 1
		}
	}

	if err := h.orders.Create(c.Request.Context(), &order); err != nil {
		respondStoreError(c, err)
		return
	}
	respondData(c, http.StatusCreated, order)
}

func (h *OrderHandler) GetOrders(c *gin.Context) {
	orders, err := h.orders.FindAll(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondList(c, len(orders), orders)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orders.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondData(c, http.StatusOK, order)
}

func (h *OrderHandler) GetOrdersByUser(c *gin.Context) {
	orders, err := h.orders.FindByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondList(c, len(orders), orders)
}

func (h *OrderHandler) GetOrderByTrackingCode(c *gin.Context) {
	order, err := h.orders.FindByTrackingCode(c.Request.Context(), c.Param("codeSuivi"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondData(c, http.StatusOK, order)
}

// UpdateOrder accepts only the delivery status and the paid flag;
// everything else on a placed order is immutable.
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	var update models.OrderUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if update.DeliveryStatus == nil && update.Paid == nil {
		respondError(c, http.StatusBadRequest, "no valid fields to update")
		return
	}
	if update.DeliveryStatus != nil && !update.DeliveryStatus.Valid() {
		respondError(c, http.StatusBadRequest, "invalid etatLivraison")
		return
	}

	order, err := h.orders.UpdateStatus(c.Request.Context(), c.Param("id"), update.DeliveryStatus, update.Paid)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondData(c, http.StatusOK, order)
}

func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	if err := h.orders.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondStoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
