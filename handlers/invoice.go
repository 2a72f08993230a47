package handlers

import (
	"net/http"
	"strings"

	"siteworks/models"
	"siteworks/services/billing"
	"siteworks/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// InvoiceHandler serves invoicing endpoints. Every response carries the
// derived financials and effective status alongside the stored document.
type InvoiceHandler struct {
	Billing billing.BillingService
}

// CreateInvoiceHandler creates a draft invoice.
func (h *InvoiceHandler) CreateInvoiceHandler(c *gin.Context) {
	var req models.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload", "detail": err.Error()})
		return
	}

	view, err := h.Billing.CreateInvoice(c.Request.Context(), req)
	if err != nil {
		utils.GetLogger().Error("CreateInvoice failed", zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, view)
}

// GetInvoiceHandler returns one invoice with derived financials.
func (h *InvoiceHandler) GetInvoiceHandler(c *gin.Context) {
	view, err := h.Billing.GetInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(statusForLookup(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

// ListInvoicesHandler lists invoices, filterable by project, client, and
// derived status.
func (h *InvoiceHandler) ListInvoicesHandler(c *gin.Context) {
	var filter models.InvoiceFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "detail": err.Error()})
		return
	}
	if filter.Status != "" && !filter.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status filter"})
		return
	}

	views, err := h.Billing.ListInvoices(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list invoices"})
		return
	}
	c.JSON(http.StatusOK, views)
}

// UpdateInvoiceHandler edits a draft invoice.
func (h *InvoiceHandler) UpdateInvoiceHandler(c *gin.Context) {
	var req models.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload", "detail": err.Error()})
		return
	}

	view, err := h.Billing.UpdateInvoice(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(statusForTransition(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

// DeleteInvoiceHandler removes a draft invoice.
func (h *InvoiceHandler) DeleteInvoiceHandler(c *gin.Context) {
	if err := h.Billing.DeleteInvoice(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(statusForTransition(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "invoice deleted"})
}

// RecordPaymentHandler appends a payment to the invoice's ledger.
func (h *InvoiceHandler) RecordPaymentHandler(c *gin.Context) {
	var req models.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload", "detail": err.Error()})
		return
	}

	view, err := h.Billing.RecordPayment(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(statusForTransition(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

// MarkSentHandler transitions a draft to sent.
func (h *InvoiceHandler) MarkSentHandler(c *gin.Context) {
	view, err := h.Billing.MarkSent(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(statusForTransition(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

// CancelInvoiceHandler voids an invoice.
func (h *InvoiceHandler) CancelInvoiceHandler(c *gin.Context) {
	view, err := h.Billing.CancelInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(statusForTransition(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

// CreatePaymentIntentHandler creates a Stripe PaymentIntent for the
// invoice's outstanding balance and returns its client secret.
func (h *InvoiceHandler) CreatePaymentIntentHandler(c *gin.Context) {
	clientSecret, err := h.Billing.CreatePaymentIntent(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(statusForTransition(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"clientSecret": clientSecret})
}

func statusForLookup(err error) int {
	if strings.Contains(err.Error(), "not found") {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func statusForTransition(err error) int {
	if strings.Contains(err.Error(), "not found") {
		return http.StatusNotFound
	}
	return http.StatusUnprocessableEntity
}
