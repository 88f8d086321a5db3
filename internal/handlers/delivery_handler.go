package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"photostore/internal/models"
)

type DeliveryHandler struct {
	deliveries DeliveryStore
}

func NewDeliveryHandler(deliveries DeliveryStore) *DeliveryHandler {
	return &DeliveryHandler{deliveries: deliveries}
}

func (h *DeliveryHandler) CreateDelivery(c *gin.Context) {
	var delivery models.Delivery
	if err := c.ShouldBindJSON(&delivery); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if delivery.Fee < 0 {
		respondError(c, http.StatusBadRequest, "fee must not be negative")
		return
	}
	if err := h.deliveries.Create(c.Request.Context(), &delivery); err != nil {
		respondStoreError(c, err)
		return
	}
	respondData(c, http.StatusCreated, delivery)
}

func (h *DeliveryHandler) GetDeliveries(c *gin.Context) {
	deliveries, err := h.deliveries.FindAll(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondList(c, len(deliveries), deliveries)
}

func (h *DeliveryHandler) GetDelivery(c *gin.Context) {
	delivery, err := h.deliveries.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondData(c, http.StatusOK, delivery)
}

func (h *DeliveryHandler) UpdateDelivery(c *gin.Context) {
	var body struct {
		Type          *string                 `json:"typeLivraison"`
		Fee           *float64                `json:"frais"`
		EstimatedDate *time.Time              `json:"dateEstimee"`
		Address       *models.DeliveryAddress `json:"adresse"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	fields := bson.M{}
	if body.Type != nil {
		fields["typeLivraison"] = *body.Type
	}
	if body.Fee != nil {
		if *body.Fee < 0 {
			respondError(c, http.StatusBadRequest, "fee must not be negative")
			return
		}
		fields["frais"] = *body.Fee
	}
	if body.EstimatedDate != nil {
		fields["dateEstimee"] = *body.EstimatedDate
	}
	if body.Address != nil {
		fields["adresse"] = *body.Address
	}
	if len(fields) == 0 {
		respondError(c, http.StatusBadRequest, "no valid fields to update")
		return
	}

	if err := h.deliveries.Update(c.Request.Context(), c.Param("id"), fields); err != nil {
		respondStoreError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "delivery updated")
}

func (h *DeliveryHandler) DeleteDelivery(c *gin.Context) {
	if err := h.deliveries.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondStoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type PaymentHandler struct {
	payments PaymentStore
}

func NewPaymentHandler(payments PaymentStore) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var payment models.Payment
	if err := c.ShouldBindJSON(&payment); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if payment.Amount < 0 {
		respondError(c, http.StatusBadRequest, "amount must not be negative")
		return
	}
	if payment.PaidAt.IsZero() {
		payment.PaidAt = time.Now()
	}
	if err := h.payments.Create(c.Request.Context(), &payment); err != nil {
		respondStoreError(c, err)
		return
	}
	respondData(c, http.StatusCreated, payment)
}

func (h *PaymentHandler) GetPayments(c *gin.Context) {
	payments, err := h.payments.FindAll(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondList(c, len(payments), payments)
}

func (h *PaymentHandler) GetPayment(c *gin.Context) {
	payment, err := h.payments.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondData(c, http.StatusOK, payment)
}

func (h *PaymentHandler) DeletePayment(c *gin.Context) {
	if err := h.payments.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondStoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
