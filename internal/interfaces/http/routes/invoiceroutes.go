package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/kinetix-inc/kinetix/internal/interfaces/http/handlers"
)

type InvoiceRouteConfig struct {
	InvoiceHandler *handlers.InvoiceHandler
}

func SetupInvoiceRoutes(engine *gin.Engine, cfg *InvoiceRouteConfig) {
	invoices := engine.Group("/api/v1/invoices")
	{
		invoices.POST("", cfg.InvoiceHandler.CreateInvoice)
		invoices.GET("", cfg.InvoiceHandler.ListInvoices)
		invoices.GET("/:id", cfg.InvoiceHandler.GetInvoice)
		invoices.POST("/:id/payments", cfg.InvoiceHandler.RecordPayment)
		invoices.POST("/:id/cancel", cfg.InvoiceHandler.CancelInvoice)
		invoices.POST("/:id/refund", cfg.InvoiceHandler.RefundInvoice)
	}
}
